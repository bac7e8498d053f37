package clause

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// SelectItem is one validated SELECT-list entry.
type SelectItem struct {
	Expr          []token.Item // expression tokens, alias stripped
	Alias         string       // "" if none
	ExplicitAlias bool         // true only for `AS name`
	IsStar        bool
}

// QualifiedRef is an unresolved `alias.column` reference collected while
// walking a clause, to be checked against the FROM alias table later.
type QualifiedRef struct {
	Alias  string
	Column string
	Pos    token.Pos
}

// ValidateSelectList validates the SELECT list window and returns each
// item plus every qualified column reference found within it.
func ValidateSelectList(tokens []token.Item, ev *expr.Validator) ([]SelectItem, []QualifiedRef, *diag.Diagnostic) {
	if len(tokens) == 0 {
		return nil, nil, diag.New(diag.Structural, "EmptySelect", "SELECT list cannot be empty")
	}
	if tokens[0].Type == token.COMMA {
		return nil, nil, diag.New(diag.Structural, "EmptySelectItem", "SELECT list cannot start with a comma")
	}
	if tokens[len(tokens)-1].Type == token.COMMA {
		return nil, nil, diag.New(diag.Structural, "TrailingComma", "SELECT list cannot end with a comma")
	}

	if len(tokens) == 1 && tokens[0].Type == token.ASTERISK {
		return []SelectItem{{IsStar: true}}, nil, nil
	}

	rawItems := identutil.SplitTopLevel(tokens, token.COMMA)

	var items []SelectItem
	var refs []QualifiedRef

	for _, raw := range rawItems {
		if len(raw) == 0 {
			return nil, nil, diag.New(diag.Structural, "EmptySelectItem", "SELECT list contains an empty item")
		}
		if len(raw) == 1 && raw[0].Type == token.ASTERISK {
			return nil, nil, diag.New(diag.Syntax, "InvalidStarUsage", "* must be the only item in the SELECT list")
		}

		exprTokens, alias, explicit, d := splitAlias(raw)
		if d != nil {
			return nil, nil, d
		}

		if d := ev.ValidateValue(exprTokens, expr.CtxSelect); d != nil {
			return nil, nil, d
		}

		refs = append(refs, collectQualifiedColumns(exprTokens)...)

		items = append(items, SelectItem{Expr: exprTokens, Alias: alias, ExplicitAlias: explicit})
	}

	return items, refs, nil
}

// splitAlias separates an explicit `AS name` suffix, or an implicit bare
// trailing identifier, from its expression.
func splitAlias(item []token.Item) (exprTokens []token.Item, alias string, explicit bool, d *diag.Diagnostic) {
	if idx := identutil.FindTopLevel(item, map[token.Token]bool{token.AS: true}); idx != -1 {
		aliasTokens := item[idx+1:]
		exprPart := item[:idx]
		if len(exprPart) == 0 {
			return nil, "", false, diag.New(diag.Structural, "EmptyExpression", "expression before AS is empty")
		}
		if len(aliasTokens) != 1 || aliasTokens[0].Type != token.IDENT {
			return nil, "", false, diag.New(diag.Syntax, "InvalidAlias", "alias must be a single identifier")
		}
		return exprPart, aliasTokens[0].Value, true, nil
	}

	if len(item) >= 2 {
		last := item[len(item)-1]
		prev := item[len(item)-2]
		if last.Type == token.IDENT && isOperandEnd(prev.Type) {
			return item[:len(item)-1], last.Value, false, nil
		}
	}

	return item, "", false, nil
}

func isOperandEnd(t token.Token) bool {
	switch t {
	case token.RPAREN, token.IDENT, token.QIDENT, token.INT, token.STRING, token.ASTERISK:
		return true
	default:
		return false
	}
}

// collectQualifiedColumns scans a token window (at any depth) for
// `ident . ident` triples. A parenthesized subquery (`( select ...`) is
// skipped whole: its references resolve against its own FROM clause.
func collectQualifiedColumns(tokens []token.Item) []QualifiedRef {
	var refs []QualifiedRef
	i := 0
	for i+2 < len(tokens) {
		if tokens[i].Type == token.LPAREN && tokens[i+1].Type == token.SELECT {
			if next, _, ok := identutil.ConsumeParenthesized(tokens, i); ok {
				i = next
				continue
			}
		}
		if isIdentLikeTok(tokens[i].Type) && tokens[i+1].Type == token.DOT && isIdentLikeTok(tokens[i+2].Type) {
			refs = append(refs, QualifiedRef{Alias: tokens[i].Value, Column: tokens[i+2].Value, Pos: tokens[i].Pos})
			i += 3
			continue
		}
		i++
	}
	return refs
}

func isIdentLikeTok(t token.Token) bool { return t == token.IDENT || t == token.QIDENT }

// ContainsAggregate reports whether tokens contains a top-level (or nested)
// aggregate-function call.
func ContainsAggregate(tokens []token.Item) bool {
	for _, t := range tokens {
		switch t.Type {
		case token.SUM, token.COUNT, token.AVG, token.MIN, token.MAX:
			return true
		}
	}
	return false
}
