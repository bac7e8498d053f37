package clause

import (
	"sort"

	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateGroupBy validates the GROUP BY window and returns each grouping
// expression's token slice (alias-free, as written) plus any qualified
// column references found within it.
func ValidateGroupBy(tokens []token.Item, ev *expr.Validator) ([][]token.Item, []QualifiedRef, *diag.Diagnostic) {
	if len(tokens) == 0 {
		return nil, nil, diag.New(diag.Structural, "EmptyGroupBy", "GROUP BY clause cannot be empty")
	}
	if tokens[0].Type == token.COMMA || tokens[len(tokens)-1].Type == token.COMMA {
		return nil, nil, diag.New(diag.Structural, "EmptyGroupByItem", "GROUP BY list has an empty item")
	}

	var exprs [][]token.Item
	var refs []QualifiedRef

	for _, item := range identutil.SplitTopLevel(tokens, token.COMMA) {
		if len(item) == 0 {
			return nil, nil, diag.New(diag.Structural, "EmptyGroupByItem", "GROUP BY list has an empty item")
		}
		if ContainsAggregate(item) {
			return nil, nil, diag.New(diag.Semantic, "AggregateInGroupBy", "GROUP BY cannot contain an aggregate function")
		}
		if d := ev.ValidateValue(item, expr.CtxSelect); d != nil {
			return nil, nil, d
		}
		refs = append(refs, collectQualifiedColumns(item)...)
		exprs = append(exprs, item)
	}

	return exprs, refs, nil
}

// NeedsGroupBy reports whether selItems mixes aggregate and non-aggregate,
// non-star expressions — which requires an explicit GROUP BY clause.
func NeedsGroupBy(selItems []SelectItem) bool {
	sawAggregate, sawPlain := false, false
	for _, it := range selItems {
		if it.IsStar {
			continue
		}
		if ContainsAggregate(it.Expr) {
			sawAggregate = true
		} else {
			sawPlain = true
		}
	}
	return sawAggregate && sawPlain
}

// CheckCoverage enforces that every non-aggregate, non-subquery SELECT
// expression is covered by an equal (as a set, after normalization) GROUP BY
// expression.
func CheckCoverage(selItems []SelectItem, groupByExprs [][]token.Item) *diag.Diagnostic {
	selectSet := map[string]bool{}
	for _, it := range selItems {
		if it.IsStar || ContainsAggregate(it.Expr) || isScalarSubqueryExpr(it.Expr) {
			continue
		}
		selectSet[identutil.Normalize(it.Expr)] = true
	}
	groupSet := map[string]bool{}
	for _, g := range groupByExprs {
		groupSet[identutil.Normalize(g)] = true
	}

	if setEqual(selectSet, groupSet) {
		return nil
	}

	var missing []string
	for k := range selectSet {
		if !groupSet[k] {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	ctx := ""
	for i, m := range missing {
		if i > 0 {
			ctx += ", "
		}
		ctx += m
	}
	return diag.New(diag.Semantic, "GroupByMismatch", "SELECT expressions and GROUP BY expressions must match").WithContext(ctx)
}

func isScalarSubqueryExpr(tokens []token.Item) bool {
	stripped := identutil.StripOuterParens(tokens)
	return len(stripped) > 0 && stripped[0].Type == token.SELECT
}

func setEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
