// Package selectstmt implements C6, the SELECT-statement validator: it
// sequences clause extraction, the per-clause validators in package clause,
// and expression validation in package expr into one statement-level check,
// and supplies the expr package's SelectValidator callback for scalar and
// derived-table subqueries.
package selectstmt

import (
	"github.com/anshsgit/sqlcheck/clause"
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/token"
)

// Validate validates a `select ...` token window (without a trailing
// semicolon) and reports how many expressions its SELECT list projects.
// Its signature matches expr.SelectValidator, so it is passed directly as
// the subquery callback — each nested SELECT gets a fresh Validate call and
// fresh per-call state, with no object reused across calls.
func Validate(tokens []token.Item) (int, *diag.Diagnostic) {
	if len(tokens) == 0 || tokens[0].Type != token.SELECT {
		return 0, diag.New(diag.Syntax, "NotASelect", "expected a SELECT statement")
	}
	ix, d := clause.Extract(tokens)
	if d != nil {
		return 0, d
	}

	ev := expr.New(Validate, 0)

	var refs []clause.QualifiedRef

	selItems, selRefs, d := clause.ValidateSelectList(ix.Window(tokens, clause.Select), ev)
	if d != nil {
		return 0, d
	}
	refs = append(refs, selRefs...)

	aliases, onRefs, d := clause.ValidateFrom(ix.Window(tokens, clause.From), ev, Validate)
	if d != nil {
		return 0, d
	}
	refs = append(refs, onRefs...)

	if _, ok := ix.At(clause.Where); ok {
		whereWindow := ix.Window(tokens, clause.Where)
		if len(whereWindow) == 0 {
			return 0, diag.New(diag.Structural, "EmptyWhere", "WHERE clause cannot be empty")
		}
		if d := ev.ValidateBoolean(whereWindow, expr.CtxWhere); d != nil {
			return 0, d
		}
		refs = append(refs, clause.CollectQualifiedColumns(whereWindow)...)
	}

	var groupByExprs [][]token.Item
	if _, ok := ix.At(clause.GroupBy); ok {
		var groupRefs []clause.QualifiedRef
		groupByExprs, groupRefs, d = clause.ValidateGroupBy(ix.Window(tokens, clause.GroupBy), ev)
		if d != nil {
			return 0, d
		}
		refs = append(refs, groupRefs...)
		if d := clause.CheckCoverage(selItems, groupByExprs); d != nil {
			return 0, d
		}
	} else if clause.NeedsGroupBy(selItems) {
		return 0, diag.New(diag.Semantic, "GroupByRequired", "mixing aggregate and non-aggregate SELECT expressions requires GROUP BY")
	}

	if _, ok := ix.At(clause.Having); ok {
		havingRefs, d := clause.ValidateHaving(ix.Window(tokens, clause.Having), ev, groupByExprs, selItems)
		if d != nil {
			return 0, d
		}
		refs = append(refs, havingRefs...)
	}

	if _, ok := ix.At(clause.OrderBy); ok {
		orderRefs, d := clause.ValidateOrderBy(ix.Window(tokens, clause.OrderBy), ev, selItems, groupByExprs)
		if d != nil {
			return 0, d
		}
		refs = append(refs, orderRefs...)
	}

	if _, ok := ix.At(clause.Limit); ok {
		if d := clause.ValidateLimit(ix.Window(tokens, clause.Limit)); d != nil {
			return 0, d
		}
	}

	if d := resolveRefs(refs, aliases); d != nil {
		return 0, d
	}

	return projectedColumns(selItems), nil
}

func resolveRefs(refs []clause.QualifiedRef, aliases clause.AliasTable) *diag.Diagnostic {
	for _, r := range refs {
		if _, ok := aliases[r.Alias]; !ok {
			return diag.New(diag.Semantic, "UnknownAliasInColumn", "qualified column references an alias not present in FROM").WithContext(r.Alias)
		}
	}
	return nil
}

func projectedColumns(items []clause.SelectItem) int {
	if len(items) == 1 && items[0].IsStar {
		return 1
	}
	return len(items)
}
