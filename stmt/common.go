// Package stmt implements C7, the shallow statement validators: ALTER,
// DELETE, INSERT, UPDATE, CREATE (TABLE/VIEW/INDEX/DATABASE), DROP,
// TRUNCATE, and the TCL statements (COMMIT/ROLLBACK/SAVEPOINT). Unlike the
// SELECT validator these check only surface structure, not the SELECT
// grammar's clause-level semantics.
package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/suggest"
	"github.com/anshsgit/sqlcheck/token"
)

func isIdentLike(t token.Token) bool { return t == token.IDENT || t == token.QIDENT }

func invalidIdentifier(kind, value string) *diag.Diagnostic {
	d := diag.New(diag.Syntax, "InvalidIdentifier", kind+" name is not a valid identifier").WithContext(value)
	if s := suggest.Best(value, token.Vocabulary); s != "" {
		return d.WithSuggestion(s)
	}
	return d
}

func unknownSubcommand(code, word string, vocabulary []string) *diag.Diagnostic {
	d := diag.New(diag.Syntax, code, "unrecognized keyword").WithContext(word)
	if s := suggest.Best(word, vocabulary); s != "" {
		return d.WithSuggestion(s)
	}
	return d
}
