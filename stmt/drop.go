package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

var dropObjectTypes = map[token.Token]bool{
	token.TABLE: true, token.DATABASE: true, token.VIEW: true, token.INDEX: true,
}

// ValidateDrop validates DROP TABLE|DATABASE|VIEW|INDEX [IF EXISTS]
// name[, name...] [CASCADE|RESTRICT].
func ValidateDrop(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) < 2 {
		return diag.New(diag.Structural, "IncompleteDropStatement", "DROP statement is incomplete")
	}
	objectType := tokens[1].Type
	if !dropObjectTypes[objectType] {
		return diag.New(diag.Syntax, "UnsupportedDropTarget", "DROP supports TABLE, DATABASE, VIEW, or INDEX only").WithContext(tokens[1].Value)
	}

	rest := tokens[2:]
	idx := 0
	if len(rest) >= 2 && rest[0].Type == token.IF && rest[1].Type == token.EXISTS {
		idx = 2
	}
	if idx >= len(rest) {
		return diag.New(diag.Structural, "MissingObjectName", "object name is missing")
	}
	names := rest[idx:]

	if objectType == token.DATABASE {
		if len(names) != 1 || !isIdentLike(names[0].Type) {
			return diag.New(diag.Syntax, "InvalidDatabaseName", "only one database can be dropped at a time")
		}
		return nil
	}

	if last := names[len(names)-1]; last.Type == token.CASCADE || last.Type == token.RESTRICT {
		names = names[:len(names)-1]
		if len(names) == 0 {
			return diag.New(diag.Structural, "CascadeRestrictNeedsObject", last.Value+" must follow at least one object name")
		}
	}
	for _, t := range names {
		if t.Type == token.CASCADE || t.Type == token.RESTRICT {
			return diag.New(diag.Syntax, "DuplicateOption", "only one of CASCADE or RESTRICT is allowed")
		}
	}

	if names[0].Type == token.COMMA || names[len(names)-1].Type == token.COMMA {
		return diag.New(diag.Structural, "EmptyObjectName", "empty object name between commas is not allowed")
	}

	for _, n := range identutil.SplitTopLevel(names, token.COMMA) {
		if len(n) != 1 || !isIdentLike(n[0].Type) {
			return diag.New(diag.Syntax, "InvalidObjectName", "invalid object name in DROP list")
		}
	}
	return nil
}
