package selectstmt

import (
	"testing"

	"github.com/anshsgit/sqlcheck/lexer"
	"github.com/anshsgit/sqlcheck/token"
)

func tokensOf(t *testing.T, sql string) []token.Item {
	t.Helper()
	items, err := lexer.TokenizeAll(sql)
	if err != nil {
		t.Fatalf("tokenize %q: %v", sql, err)
	}
	return items[:len(items)-1]
}

func TestValidateSimpleSelect(t *testing.T) {
	cols, d := Validate(tokensOf(t, "select a, b from t where a = 1"))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if cols != 2 {
		t.Errorf("projected columns = %d, want 2", cols)
	}
}

func TestValidateStarProjectsOne(t *testing.T) {
	cols, d := Validate(tokensOf(t, "select * from t"))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if cols != 1 {
		t.Errorf("projected columns = %d, want 1", cols)
	}
}

func TestValidateGroupByHavingOrderByLimit(t *testing.T) {
	sql := "select dept, count(*) from employees group by dept having count(*) > 2 order by dept limit 5"
	_, d := Validate(tokensOf(t, sql))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateMixedAggregateRequiresGroupBy(t *testing.T) {
	_, d := Validate(tokensOf(t, "select dept, count(*) from employees"))
	if d == nil || d.Error != "GroupByRequired" {
		t.Errorf("got %v, want GroupByRequired", d)
	}
}

func TestValidateJoinWithAliases(t *testing.T) {
	sql := "select o.id, c.name from orders as o join customers as c on o.customer_id = c.id"
	_, d := Validate(tokensOf(t, sql))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateUnknownAliasInColumn(t *testing.T) {
	sql := "select z.id from orders as o"
	_, d := Validate(tokensOf(t, sql))
	if d == nil || d.Error != "UnknownAliasInColumn" {
		t.Errorf("got %v, want UnknownAliasInColumn", d)
	}
}

func TestValidateScalarSubqueryInSelect(t *testing.T) {
	sql := "select (select count(*) from orders o where o.id = 1) from customers as c"
	_, d := Validate(tokensOf(t, sql))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCorrelatedSubqueryRejected(t *testing.T) {
	// A subquery's WHERE cannot reach an outer alias: each nested Validate
	// call resolves references against its own alias table only.
	sql := "select (select count(*) from orders o where o.customer_id = c.id) from customers as c"
	_, d := Validate(tokensOf(t, sql))
	if d == nil || d.Error != "InvalidSubquery" {
		t.Errorf("got %v, want InvalidSubquery", d)
	}
}

func TestValidateDerivedTable(t *testing.T) {
	sql := "select sub.total from (select sum(amount) as total from orders) as sub"
	_, d := Validate(tokensOf(t, sql))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateNotASelect(t *testing.T) {
	_, d := Validate(tokensOf(t, "delete from t"))
	if d == nil || d.Error != "NotASelect" {
		t.Errorf("got %v, want NotASelect", d)
	}
}

func TestValidateMissingFrom(t *testing.T) {
	_, d := Validate(tokensOf(t, "select a"))
	if d == nil || d.Error != "MissingMandatoryClause" {
		t.Errorf("got %v, want MissingMandatoryClause", d)
	}
}

func TestValidateOrderByAggregateMustAppearInSelect(t *testing.T) {
	_, d := Validate(tokensOf(t, "select a from t order by count(a)"))
	if d == nil || d.Error != "AggregateNotInSelectOrGroupBy" {
		t.Errorf("got %v, want AggregateNotInSelectOrGroupBy", d)
	}
}
