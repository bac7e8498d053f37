package clause

import (
	"testing"

	"github.com/anshsgit/sqlcheck/token"
)

func TestValidateHavingAggregateComparison(t *testing.T) {
	refs, d := ValidateHaving(tokensOf(t, "count(a) > 1"), newEv(), nil, nil)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	_ = refs
}

func TestValidateHavingGroupedColumnAllowed(t *testing.T) {
	groupExprs := [][]token.Item{tokensOf(t, "a")}
	_, d := ValidateHaving(tokensOf(t, "a > 1"), newEv(), groupExprs, nil)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateHavingAliasAllowed(t *testing.T) {
	selItems := []SelectItem{{Expr: tokensOf(t, "count(a)"), Alias: "cnt"}}
	_, d := ValidateHaving(tokensOf(t, "cnt > 1"), newEv(), nil, selItems)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateHavingInvalidLHS(t *testing.T) {
	_, d := ValidateHaving(tokensOf(t, "b > 1"), newEv(), nil, nil)
	if d == nil || d.Error != "HavingInvalidLHS" {
		t.Errorf("got %v, want HavingInvalidLHS", d)
	}
}

func TestValidateHavingRHSAllowsNumericLiteralOnly(t *testing.T) {
	_, d := ValidateHaving(tokensOf(t, "count(a) > b"), newEv(), nil, nil)
	if d == nil || d.Error != "HavingInvalidRHS" {
		t.Errorf("got %v, want HavingInvalidRHS", d)
	}
}

func TestValidateHavingParenthesizedNumericLiteralRHSAllowed(t *testing.T) {
	_, d := ValidateHaving(tokensOf(t, "sum(b) > (10)"), newEv(), nil, nil)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateHavingParenthesizedAliasLHSAllowed(t *testing.T) {
	selItems := []SelectItem{{Expr: tokensOf(t, "count(a)"), Alias: "cnt"}}
	_, d := ValidateHaving(tokensOf(t, "(cnt) > 1"), newEv(), nil, selItems)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateHavingEmpty(t *testing.T) {
	_, d := ValidateHaving(nil, newEv(), nil, nil)
	if d == nil || d.Error != "EmptyHaving" {
		t.Errorf("got %v, want EmptyHaving", d)
	}
}
