package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/suggest"
	"github.com/anshsgit/sqlcheck/token"
)

var dataTypeNames = map[string]bool{
	"int": true, "integer": true, "varchar": true, "char": true, "text": true,
	"date": true, "datetime": true, "decimal": true, "float": true, "boolean": true,
}

var alterActionVocabulary = []string{"add", "drop", "modify", "alter"}

// ValidateAlter validates an ALTER TABLE statement: ALTER TABLE <name>
// followed by one or more comma-separated ADD/DROP/MODIFY actions.
func ValidateAlter(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) < 2 || tokens[1].Type != token.TABLE {
		return diag.New(diag.Syntax, "ExpectedTableKeyword", "ALTER must be followed by TABLE").WithSuggestion("TABLE")
	}
	if len(tokens) < 3 || !isIdentLike(tokens[2].Type) {
		return diag.New(diag.Syntax, "InvalidTableName", "ALTER TABLE requires a table name")
	}

	actions := tokens[3:]
	if len(actions) == 0 {
		return diag.New(diag.Structural, "NoAlterAction", "ALTER TABLE requires at least one action")
	}

	for _, action := range identutil.SplitTopLevel(actions, token.COMMA) {
		if d := validateAlterAction(action); d != nil {
			return d
		}
	}
	return nil
}

func validateAlterAction(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "EmptyAlterAction", "ALTER TABLE action cannot be empty")
	}

	switch tokens[0].Type {
	case token.ADD:
		return validateAddOrModify(tokens[1:], "Add")
	case token.MODIFY, token.ALTER:
		return validateAddOrModify(tokens[1:], "Modify")
	case token.DROP:
		return validateDropColumn(tokens[1:])
	default:
		return unknownSubcommand("InvalidAlterAction", tokens[0].Value, alterActionVocabulary)
	}
}

func validateAddOrModify(tokens []token.Item, label string) *diag.Diagnostic {
	if len(tokens) > 0 && tokens[0].Type == token.COLUMN {
		tokens = tokens[1:]
	}
	if len(tokens) < 2 || !isIdentLike(tokens[0].Type) {
		return diag.New(diag.Structural, "Incomplete"+label+"Action", label+" requires a column name and a data type")
	}
	return validateDataType(tokens[1:])
}

func validateDropColumn(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) > 0 && tokens[0].Type == token.COLUMN {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "IncompleteDropAction", "DROP requires a column name")
	}
	if len(tokens) > 1 {
		return diag.New(diag.Syntax, "TooManyArguments", "DROP COLUMN accepts exactly one column name")
	}
	if !isIdentLike(tokens[0].Type) {
		return invalidIdentifier("column", tokens[0].Value)
	}
	return nil
}

func validateDataType(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "EmptyDataType", "column data type is missing")
	}
	name := tokens[0].Value
	if !dataTypeNames[name] {
		d := diag.New(diag.Semantic, "InvalidDataType", "unsupported column data type").WithContext(name)
		names := make([]string, 0, len(dataTypeNames))
		for n := range dataTypeNames {
			names = append(names, n)
		}
		if s := suggest.Best(name, names); s != "" {
			return d.WithSuggestion(s)
		}
		return d
	}

	rest := tokens[1:]
	if len(rest) == 0 {
		return nil
	}
	if rest[0].Type != token.LPAREN {
		return diag.New(diag.Syntax, "UnexpectedTokensAfterType", "unexpected tokens after data type")
	}
	next, inner, ok := identutil.ConsumeParenthesized(rest, 0)
	if !ok {
		return diag.New(diag.Structural, "UnmatchedParenthesis", "data type precision parenthesis is never closed")
	}
	if next != len(rest) {
		return diag.New(diag.Syntax, "UnexpectedTokensAfterType", "unexpected tokens after data type")
	}

	precision := identutil.SplitTopLevel(inner, token.COMMA)
	if len(precision) == 0 || len(precision) > 2 {
		return diag.New(diag.Syntax, "InvalidTypePrecision", "data type precision must have one or two integers")
	}
	for _, p := range precision {
		if len(p) != 1 || p[0].Type != token.INT {
			return diag.New(diag.Syntax, "InvalidTypePrecision", "data type precision must be an integer")
		}
	}
	return nil
}
