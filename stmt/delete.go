package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateDelete validates DELETE FROM <table> [WHERE <condition>].
func ValidateDelete(tokens []token.Item, ev *expr.Validator) *diag.Diagnostic {
	if len(tokens) < 2 || tokens[1].Type != token.FROM {
		return diag.New(diag.Syntax, "ExpectedFromKeyword", "DELETE must be followed by FROM")
	}
	if len(tokens) < 3 || !isIdentLike(tokens[2].Type) {
		return diag.New(diag.Syntax, "InvalidTableName", "DELETE FROM requires a table name")
	}

	i := 3
	if i+1 < len(tokens) && tokens[i].Type == token.DOT && isIdentLike(tokens[i+1].Type) {
		i += 2
	}

	rest := tokens[i:]
	if len(rest) == 0 {
		return nil
	}
	if rest[0].Type != token.WHERE {
		return unknownSubcommand("UnexpectedTokensAfterTable", rest[0].Value, []string{"where"})
	}

	whereTokens := rest[1:]
	if len(whereTokens) == 0 {
		return diag.New(diag.Structural, "EmptyWhere", "WHERE clause cannot be empty")
	}
	return ev.ValidateBoolean(whereTokens, expr.CtxWhere)
}
