package clause

import "testing"

func TestValidateFromSimpleTable(t *testing.T) {
	aliases, _, d := ValidateFrom(tokensOf(t, "t"), newEv(), acceptAllSubquery)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if aliases["t"].Origin != "t" {
		t.Errorf("aliases = %+v", aliases)
	}
}

func TestValidateFromImplicitAliasEqualsTableIsFine(t *testing.T) {
	// A bare "FROM t" defaults its alias to "t" itself -- not an error,
	// since no alias was explicitly given.
	_, _, d := ValidateFrom(tokensOf(t, "t"), newEv(), acceptAllSubquery)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
}

func TestValidateFromExplicitAliasEqualsTableIsError(t *testing.T) {
	_, _, d := ValidateFrom(tokensOf(t, "t as t"), newEv(), acceptAllSubquery)
	if d == nil || d.Error != "AliasEqualsTable" {
		t.Errorf("got %v, want AliasEqualsTable", d)
	}
}

func TestValidateFromCommaJoined(t *testing.T) {
	aliases, _, d := ValidateFrom(tokensOf(t, "t as a, u as b"), newEv(), acceptAllSubquery)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if len(aliases) != 2 {
		t.Errorf("aliases = %+v, want 2 entries", aliases)
	}
}

func TestValidateFromDuplicateAlias(t *testing.T) {
	_, _, d := ValidateFrom(tokensOf(t, "t as a, u as a"), newEv(), acceptAllSubquery)
	if d == nil || d.Error != "DuplicateAlias" {
		t.Errorf("got %v, want DuplicateAlias", d)
	}
}

func TestValidateFromMixedJoinStyles(t *testing.T) {
	_, _, d := ValidateFrom(tokensOf(t, "t, u join v on u.id = v.id"), newEv(), acceptAllSubquery)
	if d == nil || d.Error != "MixedJoinStyles" {
		t.Errorf("got %v, want MixedJoinStyles", d)
	}
}

func TestValidateFromJoinChain(t *testing.T) {
	aliases, refs, d := ValidateFrom(tokensOf(t, "t as a join u as b on a.id = b.id"), newEv(), acceptAllSubquery)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if len(aliases) != 2 {
		t.Errorf("aliases = %+v", aliases)
	}
	if len(refs) != 2 {
		t.Errorf("refs = %+v, want 2 qualified columns from the ON clause", refs)
	}
}

func TestValidateFromJoinChainUnknownAliasInOn(t *testing.T) {
	_, _, d := ValidateFrom(tokensOf(t, "t as a join u as b on a.id = c.id"), newEv(), acceptAllSubquery)
	if d == nil || d.Error != "UnknownAliasInOn" {
		t.Errorf("got %v, want UnknownAliasInOn", d)
	}
}

func TestValidateFromJoinMissingOn(t *testing.T) {
	_, _, d := ValidateFrom(tokensOf(t, "t as a join u as b"), newEv(), acceptAllSubquery)
	if d == nil || d.Error != "MissingOnClause" {
		t.Errorf("got %v, want MissingOnClause", d)
	}
}

func TestValidateFromDerivedTableRequiresAlias(t *testing.T) {
	_, _, d := ValidateFrom(tokensOf(t, "(select a from t)"), newEv(), acceptAllSubquery)
	if d == nil || d.Error != "DerivedTableMissingAlias" {
		t.Errorf("got %v, want DerivedTableMissingAlias", d)
	}
}

func TestValidateFromDerivedTable(t *testing.T) {
	aliases, _, d := ValidateFrom(tokensOf(t, "(select a from t) as sub"), newEv(), acceptAllSubquery)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if aliases["sub"].Origin != "derived" {
		t.Errorf("aliases = %+v", aliases)
	}
}

func TestValidateFromEmpty(t *testing.T) {
	_, _, d := ValidateFrom(nil, newEv(), acceptAllSubquery)
	if d == nil || d.Error != "EmptyFrom" {
		t.Errorf("got %v, want EmptyFrom", d)
	}
}
