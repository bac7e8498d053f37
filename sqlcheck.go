// Package sqlcheck validates SQL statement text against the supported
// dialect (SELECT, INSERT, UPDATE, DELETE, ALTER/CREATE/DROP/TRUNCATE DDL,
// and the TCL statements) and reports the first diagnostic found, if any.
// It performs no catalog lookups, execution, or type inference: validation
// is purely syntactic and intra-statement semantic.
package sqlcheck

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/lexer"
	"github.com/anshsgit/sqlcheck/selectstmt"
	"github.com/anshsgit/sqlcheck/stmt"
	"github.com/anshsgit/sqlcheck/suggest"
	"github.com/anshsgit/sqlcheck/token"
)

var statementVocabulary = []string{
	"select", "insert", "update", "alter", "drop", "delete",
	"truncate", "create", "commit", "rollback", "savepoint",
}

// Validate checks one SQL statement and returns nil if it is well-formed,
// or the first Diagnostic describing why it is not.
func Validate(text string) *diag.Diagnostic {
	tokens, err := lexer.TokenizeAll(text)
	if err != nil {
		return diag.New(diag.Lexical, "LexicalError", err.Error())
	}
	// TokenizeAll always appends a trailing EOF; drop it before inspecting
	// the statement's own last token.
	tokens = tokens[:len(tokens)-1]
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "EmptyQuery", "query is empty")
	}

	tokens, d := stripSemicolon(tokens)
	if d != nil {
		return d
	}
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "EmptyQuery", "query is empty")
	}

	return dispatch(tokens)
}

// stripSemicolon tolerates a single trailing semicolon and removes it; a
// semicolon anywhere else in the statement is an error. A statement with no
// semicolon at all is left untouched.
func stripSemicolon(tokens []token.Item) ([]token.Item, *diag.Diagnostic) {
	last := tokens[len(tokens)-1]
	hasSemicolon := last.Type == token.SEMICOLON

	for _, t := range tokens[:len(tokens)-1] {
		if t.Type == token.SEMICOLON {
			return nil, diag.New(diag.Structural, "InvalidSemicolonUsage", "semicolon is only allowed at the end of the query")
		}
	}
	if !hasSemicolon {
		return tokens, nil
	}
	return tokens[:len(tokens)-1], nil
}

func dispatch(tokens []token.Item) *diag.Diagnostic {
	head := tokens[0]

	switch head.Type {
	case token.SELECT:
		_, d := selectstmt.Validate(tokens)
		return d
	case token.ALTER:
		return stmt.ValidateAlter(tokens)
	case token.DELETE:
		return stmt.ValidateDelete(tokens, newExprValidator())
	case token.INSERT:
		return stmt.ValidateInsert(tokens)
	case token.UPDATE:
		return stmt.ValidateUpdate(tokens, newExprValidator())
	case token.CREATE:
		return stmt.ValidateCreate(tokens, selectstmt.Validate)
	case token.DROP:
		return stmt.ValidateDrop(tokens)
	case token.TRUNCATE:
		return stmt.ValidateTruncate(tokens)
	case token.COMMIT, token.ROLLBACK, token.SAVEPOINT:
		return stmt.ValidateTCL(tokens)
	default:
		d := diag.New(diag.Syntax, "UnknownStatementType", "the start token is not a recognized SQL keyword").WithContext(head.Value)
		if s := suggest.Best(head.Value, statementVocabulary); s != "" {
			return d.WithSuggestion(s)
		}
		return d
	}
}

func newExprValidator() *expr.Validator {
	return expr.New(selectstmt.Validate, 0)
}
