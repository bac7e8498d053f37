package clause

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

var havingLogicalOps = map[token.Token]bool{token.AND: true, token.OR: true}
var havingInBetween = map[token.Token]bool{token.IN: true, token.BETWEEN: true}
var havingComparators = map[token.Token]bool{
	token.EQ: true, token.NEQ: true, token.LT: true, token.GT: true, token.LTE: true, token.GTE: true,
}

// ValidateHaving validates the HAVING window: general boolean-expression
// well-formedness (via ev), then the per-comparison rule that each side must
// be an aggregate, a grouped column/alias, or (on the right only) a numeric
// literal.
func ValidateHaving(tokens []token.Item, ev *expr.Validator, groupByExprs [][]token.Item, selItems []SelectItem) ([]QualifiedRef, *diag.Diagnostic) {
	if len(tokens) == 0 {
		return nil, diag.New(diag.Structural, "EmptyHaving", "HAVING clause cannot be empty")
	}
	if d := ev.ValidateBoolean(tokens, expr.CtxHaving); d != nil {
		return nil, d
	}

	grouped := map[string]bool{}
	for _, g := range groupByExprs {
		grouped[identutil.Normalize(g)] = true
	}
	aliases := map[string]bool{}
	for _, it := range selItems {
		if it.Alias != "" {
			aliases[it.Alias] = true
		}
	}

	refs := collectQualifiedColumns(tokens)
	if d := checkHavingComparisons(tokens, grouped, aliases); d != nil {
		return nil, d
	}
	return refs, nil
}

func checkHavingComparisons(tokens []token.Item, grouped, aliases map[string]bool) *diag.Diagnostic {
	stripped := identutil.StripOuterParens(tokens)
	if len(stripped) == 0 {
		return nil
	}

	if idx := identutil.FindTopLevel(stripped, havingLogicalOps); idx != -1 {
		left, right := stripped[:idx], stripped[idx+1:]
		if d := checkHavingComparisons(left, grouped, aliases); d != nil {
			return d
		}
		return checkHavingComparisons(right, grouped, aliases)
	}

	if identutil.FindTopLevel(stripped, havingInBetween) != -1 {
		return nil // IN/BETWEEN operand shape already enforced by the expression validator
	}

	cmpIdx := -1
	for i, t := range stripped {
		if havingComparators[t.Type] {
			cmpIdx = i
			break
		}
	}
	if cmpIdx == -1 {
		return nil
	}

	lhs, rhs := stripped[:cmpIdx], stripped[cmpIdx+1:]
	if d := checkHavingSide(lhs, grouped, aliases, false); d != nil {
		return d
	}
	return checkHavingSide(rhs, grouped, aliases, true)
}

func checkHavingSide(tokens []token.Item, grouped, aliases map[string]bool, allowNumericLiteral bool) *diag.Diagnostic {
	tokens = identutil.StripOuterParens(tokens)
	if ContainsAggregate(tokens) {
		return nil
	}
	if allowNumericLiteral && len(tokens) == 1 && tokens[0].Type == token.INT {
		return nil
	}
	normalized := identutil.Normalize(tokens)
	if grouped[normalized] {
		return nil
	}
	if len(tokens) == 1 && aliases[tokens[0].Value] {
		return nil
	}

	code := "HavingInvalidLHS"
	if allowNumericLiteral {
		code = "HavingInvalidRHS"
	}
	return diag.New(diag.Semantic, code, "HAVING operand must be an aggregate, a grouped column, or an alias").WithContext(normalized)
}
