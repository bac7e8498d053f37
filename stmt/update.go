package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateUpdate validates UPDATE <table> SET col = val [, col = val]*
// [WHERE <condition>].
func ValidateUpdate(tokens []token.Item, ev *expr.Validator) *diag.Diagnostic {
	if len(tokens) < 2 || !isIdentLike(tokens[1].Type) {
		return diag.New(diag.Syntax, "InvalidTableName", "UPDATE requires a table name")
	}

	i := 2
	if i+1 < len(tokens) && tokens[i].Type == token.DOT && isIdentLike(tokens[i+1].Type) {
		i += 2
	}

	if i >= len(tokens) || tokens[i].Type != token.SET {
		return diag.New(diag.Structural, "MissingSetClause", "UPDATE requires a SET clause")
	}
	i++

	body := tokens[i:]
	whereIdx := identutil.FindTopLevel(body, map[token.Token]bool{token.WHERE: true})
	setTokens := body
	var rest []token.Item
	if whereIdx != -1 {
		setTokens = body[:whereIdx]
		rest = body[whereIdx:]
	}

	if len(setTokens) == 0 {
		return diag.New(diag.Structural, "EmptySetClause", "SET clause cannot be empty")
	}
	if setTokens[0].Type == token.COMMA || setTokens[len(setTokens)-1].Type == token.COMMA {
		return diag.New(diag.Structural, "InvalidSetAssignment", "SET clause has a misplaced comma")
	}

	for _, assignment := range identutil.SplitTopLevel(setTokens, token.COMMA) {
		if len(assignment) < 3 || !isIdentLike(assignment[0].Type) || assignment[1].Type != token.EQ {
			return diag.New(diag.Syntax, "InvalidSetAssignment", "use: column = value")
		}
		if d := ev.ValidateValue(assignment[2:], expr.CtxSelect); d != nil {
			return d
		}
	}

	if len(rest) == 0 {
		return nil
	}
	whereTokens := rest[1:]
	if len(whereTokens) == 0 {
		return diag.New(diag.Structural, "EmptyWhere", "WHERE clause cannot be empty")
	}
	return ev.ValidateBoolean(whereTokens, expr.CtxWhere)
}
