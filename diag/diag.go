// Package diag defines the uniform diagnostic surface every validator in
// this module returns: nil for a well-formed statement, or a single
// *Diagnostic describing the first detected problem.
package diag

import "strings"

// Kind classifies a Diagnostic into the error taxonomy.
type Kind int

const (
	// Lexical covers unterminated strings and stray characters.
	Lexical Kind = iota
	// Structural covers missing/duplicate/out-of-order clauses, unbalanced
	// parentheses, and empty sub-parts.
	Structural
	// Syntax covers shape-rule violations inside a clause.
	Syntax
	// Semantic covers intra-statement semantic failures (alias resolution,
	// GROUP BY coverage, aggregate placement, and similar).
	Semantic
	// Unsupported covers dialect features this checker intentionally does
	// not model.
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "LexicalError"
	case Structural:
		return "StructuralError"
	case Syntax:
		return "SyntaxError"
	case Semantic:
		return "SemanticError"
	case Unsupported:
		return "Unsupported"
	default:
		return "UnknownError"
	}
}

// Diagnostic is the single result shape returned by any validator in this
// module on failure. A nil *Diagnostic means the input validated cleanly.
type Diagnostic struct {
	Kind       Kind
	Error      string      // short machine-readable error code, e.g. "AggregateInWhere"
	Message    string      // human-readable description
	Suggestion string      // human-readable fix hint, empty if none
	Details    *Diagnostic // nested diagnostic, e.g. for subquery failures
	Context    string      // free-text location hint, e.g. an offending token or alias
}

// New builds a Diagnostic with the given kind, code, and message.
func New(kind Kind, code, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Error: code, Message: message}
}

// WithSuggestion returns a copy of d with Suggestion set.
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	cp := *d
	cp.Suggestion = s
	return &cp
}

// WithContext returns a copy of d with Context set.
func (d *Diagnostic) WithContext(c string) *Diagnostic {
	cp := *d
	cp.Context = c
	return &cp
}

// WithDetails returns a copy of d wrapping inner as its Details.
func (d *Diagnostic) WithDetails(inner *Diagnostic) *Diagnostic {
	cp := *d
	cp.Details = inner
	return &cp
}

// String renders a human-readable one-line (plus nested, indented) summary.
func (d *Diagnostic) String() string {
	if d == nil {
		return "OK"
	}
	var b strings.Builder
	b.WriteString(d.Kind.String())
	b.WriteString(": ")
	b.WriteString(d.Error)
	if d.Message != "" {
		b.WriteString(" - ")
		b.WriteString(d.Message)
	}
	if d.Context != "" {
		b.WriteString(" (")
		b.WriteString(d.Context)
		b.WriteString(")")
	}
	if d.Suggestion != "" {
		b.WriteString("; suggestion: ")
		b.WriteString(d.Suggestion)
	}
	if d.Details != nil {
		b.WriteString("; details: [")
		b.WriteString(d.Details.String())
		b.WriteString("]")
	}
	return b.String()
}
