// Command sqlcheck validates SQL statement text: batch from a file of
// semicolon-terminated statements (-f), or otherwise interactively from a
// REPL on stdin. Positional command-line arguments are not validated.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anshsgit/sqlcheck"
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/internal/config"
	"github.com/anshsgit/sqlcheck/internal/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.MaxDepth > 0 {
		expr.MaxDepth = opts.MaxDepth
	}
	log := logging.New(opts.JSON, opts.Verbose)

	switch {
	case opts.File != "":
		runBatch(opts.File, opts.JSON, log)
	default:
		runREPL(opts.JSON, log)
	}
}

// runBatch validates every statement in a file, printing one result per
// statement, and exits non-zero if any statement was invalid.
func runBatch(path string, asJSON bool, log *logrus.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Fatal("cannot read batch file")
	}

	statements := splitStatements(string(data))
	log.WithField("count", len(statements)).Debug("batch: statements found")

	failed := 0
	for i, stmt := range statements {
		d := sqlcheck.Validate(stmt)
		if d != nil {
			failed++
		}
		render(os.Stdout, stmt, d, asJSON)
		log.WithFields(logrus.Fields{"index": i, "ok": d == nil}).Debug("batch: statement checked")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// runREPL reads statements from stdin one at a time, terminated by a
// semicolon, and prints the result of each until EOF or ".exit".
func runREPL(asJSON bool, log *logrus.Logger) {
	fmt.Println("sqlcheck - SQL syntax and intra-statement semantic checker")
	fmt.Println(`Enter ".help" for usage hints.`)

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var pending strings.Builder

	for {
		if pending.Len() == 0 {
			fmt.Print("sqlcheck> ")
		} else {
			fmt.Print("     ...> ")
		}
		if !in.Scan() {
			break
		}
		line := in.Text()

		if pending.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if handleDotCommand(trimmed) {
					return
				}
				continue
			}
		}

		pending.WriteString(line)
		pending.WriteByte('\n')
		if !strings.Contains(line, ";") {
			continue
		}

		stmt := strings.TrimSpace(pending.String())
		pending.Reset()
		d := sqlcheck.Validate(stmt)
		render(os.Stdout, stmt, d, asJSON)
		log.WithField("ok", d == nil).Debug("repl: statement checked")
	}
}

func handleDotCommand(cmd string) (exit bool) {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case ".exit", ".quit":
		return true
	case ".help":
		fmt.Println(`
.exit, .quit       Exit this program
.help              Show this help message

Enter SQL statements terminated with a semicolon.
Multi-line statements are supported.`)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
	}
	return false
}

// render prints one validation result: a JSON object when asJSON is set,
// otherwise a success line or the diagnostic with its message, context and
// suggestion.
func render(w *os.File, stmt string, d *diag.Diagnostic, asJSON bool) {
	if asJSON {
		renderJSON(w, stmt, d)
		return
	}
	if d == nil {
		fmt.Fprintln(w, "OK: query is valid")
		return
	}
	fmt.Fprintf(w, "%s: %s\n", d.Kind, d.Error)
	if d.Message != "" {
		fmt.Fprintf(w, "  %s\n", d.Message)
	}
	if d.Context != "" {
		fmt.Fprintf(w, "  at: %s\n", d.Context)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(w, "  suggestion: %s\n", d.Suggestion)
	}
}

type jsonResult struct {
	Valid      bool   `json:"valid"`
	Kind       string `json:"kind,omitempty"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Context    string `json:"context,omitempty"`
}

func renderJSON(w *os.File, stmt string, d *diag.Diagnostic) {
	res := jsonResult{Valid: d == nil}
	if d != nil {
		res.Kind = d.Kind.String()
		res.Error = d.Error
		res.Message = d.Message
		res.Suggestion = d.Suggestion
		res.Context = d.Context
	}
	enc := json.NewEncoder(w)
	enc.Encode(res)
}

// splitStatements breaks batch file text into semicolon-terminated
// statements, respecting single- and double-quoted strings so a semicolon
// inside a literal does not end the statement early.
func splitStatements(text string) []string {
	var statements []string
	var cur strings.Builder
	var quote byte

	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			cur.WriteByte(c)
		case ';':
			cur.WriteByte(c)
			if s := strings.TrimSpace(cur.String()); s != "" {
				statements = append(statements, s)
			}
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		statements = append(statements, s)
	}
	return statements
}
