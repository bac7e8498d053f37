package expr

import (
	"testing"

	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/lexer"
	"github.com/anshsgit/sqlcheck/token"
)

// acceptAllSubquery treats any subquery as valid, projecting one column —
// enough to exercise expr's own grammar without depending on selectstmt.
func acceptAllSubquery(tokens []token.Item) (int, *diag.Diagnostic) {
	return 1, nil
}

func newValidator() *Validator {
	return New(acceptAllSubquery, DefaultMaxDepth)
}

func tokensOf(t *testing.T, sql string) []token.Item {
	t.Helper()
	items, err := lexer.TokenizeAll(sql)
	if err != nil {
		t.Fatalf("tokenize %q: %v", sql, err)
	}
	return items[:len(items)-1]
}

func TestValidateBooleanSimpleComparison(t *testing.T) {
	v := newValidator()
	if d := v.ValidateBoolean(tokensOf(t, "a = 1"), CtxWhere); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateBooleanAndOr(t *testing.T) {
	v := newValidator()
	if d := v.ValidateBoolean(tokensOf(t, "a = 1 and b = 2 or c = 3"), CtxWhere); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateBooleanDanglingLogicalOperator(t *testing.T) {
	v := newValidator()
	d := v.ValidateBoolean(tokensOf(t, "a = 1 and"), CtxWhere)
	if d == nil || d.Error != "LogicalOperatorWithoutOperand" {
		t.Errorf("got %v, want LogicalOperatorWithoutOperand", d)
	}
}

func TestValidateBooleanMultipleComparators(t *testing.T) {
	v := newValidator()
	d := v.ValidateBoolean(tokensOf(t, "a = b = c"), CtxWhere)
	if d == nil || d.Error != "MultipleComparisonOperators" {
		t.Errorf("got %v, want MultipleComparisonOperators", d)
	}
}

func TestValidateIn(t *testing.T) {
	v := newValidator()
	if d := v.ValidateBoolean(tokensOf(t, "a in (1, 2, 3)"), CtxWhere); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
	d := v.ValidateBoolean(tokensOf(t, "a in ()"), CtxWhere)
	if d == nil || d.Error != "EmptyInList" {
		t.Errorf("got %v, want EmptyInList", d)
	}
}

func TestValidateInSubquery(t *testing.T) {
	v := newValidator()
	if d := v.ValidateBoolean(tokensOf(t, "a in (select b from t)"), CtxWhere); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateBetween(t *testing.T) {
	v := newValidator()
	if d := v.ValidateBoolean(tokensOf(t, "a between 1 and 10"), CtxWhere); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
	d := v.ValidateBoolean(tokensOf(t, "a between 1"), CtxWhere)
	if d == nil || d.Error != "BetweenMissingAnd" {
		t.Errorf("got %v, want BetweenMissingAnd", d)
	}
}

func TestAggregateNotAllowedInWhere(t *testing.T) {
	v := newValidator()
	d := v.ValidateBoolean(tokensOf(t, "count(a) > 1"), CtxWhere)
	if d == nil || d.Error != "AggregateInWhere" {
		t.Errorf("got %v, want AggregateInWhere", d)
	}
}

func TestAggregateAllowedInHaving(t *testing.T) {
	v := newValidator()
	if d := v.ValidateBoolean(tokensOf(t, "count(a) > 1"), CtxHaving); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestNestedAggregateRejected(t *testing.T) {
	v := newValidator()
	d := v.ValidateBoolean(tokensOf(t, "sum(count(a)) > 1"), CtxHaving)
	if d == nil || d.Error != "NestedAggregate" {
		t.Errorf("got %v, want NestedAggregate", d)
	}
}

func TestCountStarAllowedOnlyForCount(t *testing.T) {
	v := newValidator()
	if d := v.ValidateValue(tokensOf(t, "count(*)"), CtxSelect); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
	d := v.ValidateValue(tokensOf(t, "sum(*)"), CtxSelect)
	if d == nil || d.Error != "InvalidAggregateArg" {
		t.Errorf("got %v, want InvalidAggregateArg", d)
	}
}

func TestValidateValueArithmeticChain(t *testing.T) {
	v := newValidator()
	if d := v.ValidateValue(tokensOf(t, "a + b * (c - 1)"), CtxSelect); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateValueDanglingOperator(t *testing.T) {
	v := newValidator()
	d := v.ValidateValue(tokensOf(t, "a +"), CtxSelect)
	if d == nil || d.Error != "DanglingOperator" {
		t.Errorf("got %v, want DanglingOperator", d)
	}
}

func TestValidateValueQualifiedColumn(t *testing.T) {
	v := newValidator()
	if d := v.ValidateValue(tokensOf(t, "t.a"), CtxSelect); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestArithmeticOnSubqueryRejected(t *testing.T) {
	v := newValidator()
	d := v.ValidateValue(tokensOf(t, "(select a from t) + 1"), CtxSelect)
	if d == nil || d.Error != "ArithmeticOnSubquery" {
		t.Errorf("got %v, want ArithmeticOnSubquery", d)
	}
}

func TestNestingTooDeep(t *testing.T) {
	v := New(acceptAllSubquery, 2)
	d := v.ValidateBoolean(tokensOf(t, "a = 1 and b = 2 and c = 3 and d = 4"), CtxWhere)
	if d == nil || d.Error != "NestingTooDeep" {
		t.Errorf("got %v, want NestingTooDeep", d)
	}
}

func TestNewZeroMaxDepthUsesPackageMaxDepth(t *testing.T) {
	old := MaxDepth
	defer func() { MaxDepth = old }()

	MaxDepth = 2
	v := New(acceptAllSubquery, 0)
	d := v.ValidateBoolean(tokensOf(t, "a = 1 and b = 2 and c = 3 and d = 4"), CtxWhere)
	if d == nil || d.Error != "NestingTooDeep" {
		t.Errorf("got %v, want NestingTooDeep", d)
	}
}
