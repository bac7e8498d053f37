package stmt

import (
	"testing"

	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/lexer"
	"github.com/anshsgit/sqlcheck/token"
)

func acceptAllSubquery(tokens []token.Item) (int, *diag.Diagnostic) {
	return 1, nil
}

func newEv() *expr.Validator {
	return expr.New(acceptAllSubquery, expr.DefaultMaxDepth)
}

func tokensOf(t *testing.T, sql string) []token.Item {
	t.Helper()
	items, err := lexer.TokenizeAll(sql)
	if err != nil {
		t.Fatalf("tokenize %q: %v", sql, err)
	}
	return items[:len(items)-1]
}

func TestValidateAlterAddColumn(t *testing.T) {
	if d := ValidateAlter(tokensOf(t, "alter table t add column age int")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateAlterDropColumn(t *testing.T) {
	if d := ValidateAlter(tokensOf(t, "alter table t drop column age")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateAlterInvalidDataType(t *testing.T) {
	d := ValidateAlter(tokensOf(t, "alter table t add column age unobtainium"))
	if d == nil || d.Error != "InvalidDataType" {
		t.Errorf("got %v, want InvalidDataType", d)
	}
}

func TestValidateAlterWithPrecision(t *testing.T) {
	if d := ValidateAlter(tokensOf(t, "alter table t add column price decimal(10, 2)")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateAlterColumnTreatedAsModify(t *testing.T) {
	if d := ValidateAlter(tokensOf(t, "alter table t alter column age int")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateAlterExpectedTableKeyword(t *testing.T) {
	d := ValidateAlter(tokensOf(t, "alter t add column age int"))
	if d == nil || d.Error != "ExpectedTableKeyword" {
		t.Errorf("got %v, want ExpectedTableKeyword", d)
	}
}

func TestValidateDeleteNoWhere(t *testing.T) {
	if d := ValidateDelete(tokensOf(t, "delete from t"), newEv()); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateDeleteWithWhere(t *testing.T) {
	if d := ValidateDelete(tokensOf(t, "delete from t where id = 1"), newEv()); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateDeleteMissingFrom(t *testing.T) {
	d := ValidateDelete(tokensOf(t, "delete t"), newEv())
	if d == nil || d.Error != "ExpectedFromKeyword" {
		t.Errorf("got %v, want ExpectedFromKeyword", d)
	}
}

func TestValidateInsertBasic(t *testing.T) {
	if d := ValidateInsert(tokensOf(t, "insert into t values (1, 'a')")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateInsertWithColumns(t *testing.T) {
	if d := ValidateInsert(tokensOf(t, "insert into t (id, name) values (1, 'a')")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateInsertColumnValueCountMismatch(t *testing.T) {
	d := ValidateInsert(tokensOf(t, "insert into t (id, name) values (1)"))
	if d == nil || d.Error != "ColumnValueCountMismatch" {
		t.Errorf("got %v, want ColumnValueCountMismatch", d)
	}
}

func TestValidateInsertMultipleRows(t *testing.T) {
	if d := ValidateInsert(tokensOf(t, "insert into t values (1, 'a'), (2, 'b')")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateInsertMissingValues(t *testing.T) {
	d := ValidateInsert(tokensOf(t, "insert into t (id)"))
	if d == nil || d.Error != "MissingValuesClause" {
		t.Errorf("got %v, want MissingValuesClause", d)
	}
}

func TestValidateUpdateBasic(t *testing.T) {
	if d := ValidateUpdate(tokensOf(t, "update t set name = 'a'"), newEv()); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateUpdateWithWhere(t *testing.T) {
	if d := ValidateUpdate(tokensOf(t, "update t set name = 'a' where id = 1"), newEv()); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateUpdateMultipleAssignments(t *testing.T) {
	if d := ValidateUpdate(tokensOf(t, "update t set a = 1, b = 2"), newEv()); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateUpdateMissingSet(t *testing.T) {
	d := ValidateUpdate(tokensOf(t, "update t where id = 1"), newEv())
	if d == nil || d.Error != "MissingSetClause" {
		t.Errorf("got %v, want MissingSetClause", d)
	}
}

func TestValidateCreateTable(t *testing.T) {
	sql := "create table t (id int primary key, name varchar(50) not null)"
	if d := ValidateCreate(tokensOf(t, sql), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateTableWithForeignKeyConstraint(t *testing.T) {
	sql := "create table t (id int, uid int, foreign key (uid) references u (id))"
	if d := ValidateCreate(tokensOf(t, sql), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateTableIfNotExists(t *testing.T) {
	sql := "create table if not exists t (id int)"
	if d := ValidateCreate(tokensOf(t, sql), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateView(t *testing.T) {
	sql := "create view v as select a from t"
	if d := ValidateCreate(tokensOf(t, sql), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateOrReplaceView(t *testing.T) {
	sql := "create or replace view v as select a from t"
	if d := ValidateCreate(tokensOf(t, sql), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateIndex(t *testing.T) {
	sql := "create index idx_t_a on t (a)"
	if d := ValidateCreate(tokensOf(t, sql), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateUniqueIndex(t *testing.T) {
	sql := "create unique index idx_t_a on t (a desc)"
	if d := ValidateCreate(tokensOf(t, sql), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateDatabase(t *testing.T) {
	if d := ValidateCreate(tokensOf(t, "create database mydb"), acceptAllSubquery); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateCreateUnsupportedTarget(t *testing.T) {
	d := ValidateCreate(tokensOf(t, "create sequence s"), acceptAllSubquery)
	if d == nil || d.Error != "UnsupportedCreateTarget" {
		t.Errorf("got %v, want UnsupportedCreateTarget", d)
	}
}

func TestValidateDropTable(t *testing.T) {
	if d := ValidateDrop(tokensOf(t, "drop table t")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateDropIfExistsMultiple(t *testing.T) {
	if d := ValidateDrop(tokensOf(t, "drop table if exists t, u cascade")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateDropDatabaseOnlyOne(t *testing.T) {
	d := ValidateDrop(tokensOf(t, "drop database a"))
	if d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateDropUnsupportedTarget(t *testing.T) {
	d := ValidateDrop(tokensOf(t, "drop sequence s"))
	if d == nil || d.Error != "UnsupportedDropTarget" {
		t.Errorf("got %v, want UnsupportedDropTarget", d)
	}
}

func TestValidateTruncateBasic(t *testing.T) {
	if d := ValidateTruncate(tokensOf(t, "truncate table t")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateTruncateWithOptions(t *testing.T) {
	if d := ValidateTruncate(tokensOf(t, "truncate table t restart identity cascade")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateTruncateDuplicateIdentityOption(t *testing.T) {
	d := ValidateTruncate(tokensOf(t, "truncate table t restart identity continue identity"))
	if d == nil || d.Error != "DuplicateIdentityOption" {
		t.Errorf("got %v, want DuplicateIdentityOption", d)
	}
}

func TestValidateTCLCommit(t *testing.T) {
	if d := ValidateTCL(tokensOf(t, "commit")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateTCLRollbackToSavepoint(t *testing.T) {
	if d := ValidateTCL(tokensOf(t, "rollback to sp1")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateTCLSavepoint(t *testing.T) {
	if d := ValidateTCL(tokensOf(t, "savepoint sp1")); d != nil {
		t.Errorf("unexpected diagnostic: %v", d)
	}
}

func TestValidateTCLInvalidCommit(t *testing.T) {
	d := ValidateTCL(tokensOf(t, "commit now"))
	if d == nil || d.Error != "InvalidCommitUsage" {
		t.Errorf("got %v, want InvalidCommitUsage", d)
	}
}
