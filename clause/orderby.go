package clause

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateOrderBy validates the ORDER BY window. Each item is resolved in
// priority order: a SELECT-list alias, then a SELECT expression, then a
// GROUP BY expression, then any otherwise-valid expression (in which case an
// aggregate must already appear in SELECT or GROUP BY).
func ValidateOrderBy(tokens []token.Item, ev *expr.Validator, selItems []SelectItem, groupByExprs [][]token.Item) ([]QualifiedRef, *diag.Diagnostic) {
	if len(tokens) == 0 {
		return nil, diag.New(diag.Structural, "EmptyOrderBy", "ORDER BY clause cannot be empty")
	}
	if tokens[0].Type == token.COMMA || tokens[len(tokens)-1].Type == token.COMMA {
		return nil, diag.New(diag.Structural, "EmptyOrderByItem", "ORDER BY list has an empty item")
	}

	aliasSet := map[string]bool{}
	selectSet := map[string]bool{}
	for _, it := range selItems {
		if it.Alias != "" {
			aliasSet[it.Alias] = true
		}
		if !it.IsStar {
			selectSet[identutil.Normalize(it.Expr)] = true
		}
	}
	groupSet := map[string]bool{}
	for _, g := range groupByExprs {
		groupSet[identutil.Normalize(g)] = true
	}

	var refs []QualifiedRef

	for _, raw := range identutil.SplitTopLevel(tokens, token.COMMA) {
		if len(raw) == 0 {
			return nil, diag.New(diag.Structural, "EmptyOrderByItem", "ORDER BY list has an empty item")
		}

		item := raw
		if last := item[len(item)-1]; last.Type == token.ASC || last.Type == token.DESC {
			item = item[:len(item)-1]
		}
		if len(item) == 0 {
			return nil, diag.New(diag.Structural, "EmptyOrderByItem", "ORDER BY list has an empty item")
		}

		if len(item) == 1 && item[0].Type == token.IDENT && aliasSet[item[0].Value] {
			continue
		}

		normalized := identutil.Normalize(item)
		if selectSet[normalized] || groupSet[normalized] {
			refs = append(refs, collectQualifiedColumns(item)...)
			continue
		}

		if d := ev.ValidateValue(item, expr.CtxOrder); d != nil {
			return nil, d
		}
		for j := 0; j+1 < len(item); j++ {
			if !ContainsAggregate(item[j:j+1]) || item[j+1].Type != token.LPAREN {
				continue
			}
			next, _, ok := identutil.ConsumeParenthesized(item, j+1)
			if !ok {
				continue
			}
			if call := identutil.Normalize(item[j:next]); !selectSet[call] && !groupSet[call] {
				return nil, diag.New(diag.Semantic, "AggregateNotInSelectOrGroupBy", "ORDER BY aggregate must also appear in SELECT or GROUP BY").WithContext(call)
			}
		}
		refs = append(refs, collectQualifiedColumns(item)...)
	}

	return refs, nil
}
