package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateCreate dispatches CREATE TABLE / CREATE [OR REPLACE] VIEW /
// CREATE [UNIQUE] INDEX / CREATE DATABASE to their respective validators.
// sv validates a CREATE VIEW's SELECT body.
func ValidateCreate(tokens []token.Item, sv expr.SelectValidator) *diag.Diagnostic {
	if len(tokens) < 2 {
		return diag.New(diag.Structural, "IncompleteCreateStatement", "CREATE statement is incomplete")
	}

	switch tokens[1].Type {
	case token.TABLE:
		return validateCreateTable(tokens[2:])
	case token.VIEW:
		return validateCreateView(tokens[2:], sv)
	case token.INDEX:
		return validateCreateIndex(tokens[2:])
	case token.UNIQUE:
		if len(tokens) < 3 || tokens[2].Type != token.INDEX {
			return diag.New(diag.Syntax, "ExpectedIndexKeyword", "CREATE UNIQUE must be followed by INDEX")
		}
		return validateCreateIndex(tokens[3:])
	case token.DATABASE:
		return validateCreateDatabase(tokens[2:])
	case token.OR:
		if len(tokens) < 4 || tokens[2].Type != token.REPLACE || tokens[3].Type != token.VIEW {
			return diag.New(diag.Syntax, "ExpectedViewKeyword", "CREATE OR REPLACE must be followed by VIEW")
		}
		return validateCreateView(tokens[4:], sv)
	default:
		return diag.New(diag.Syntax, "UnsupportedCreateTarget", "CREATE supports TABLE, VIEW, INDEX, or DATABASE").WithContext(tokens[1].Value)
	}
}

func consumeIfNotExists(rest []token.Item) int {
	if len(rest) >= 3 && rest[0].Type == token.IF && rest[1].Type == token.NOT && rest[2].Type == token.EXISTS {
		return 3
	}
	return 0
}

func validateCreateTable(rest []token.Item) *diag.Diagnostic {
	idx := consumeIfNotExists(rest)
	if idx >= len(rest) {
		return diag.New(diag.Structural, "MissingTableName", "table name is missing")
	}
	if !isIdentLike(rest[idx].Type) {
		return invalidIdentifier("table", rest[idx].Value)
	}
	idx++

	if idx >= len(rest) || rest[idx].Type != token.LPAREN {
		return diag.New(diag.Structural, "ColumnDefsRequired", "column definitions must be enclosed in parentheses")
	}
	next, inner, ok := identutil.ConsumeParenthesized(rest, idx)
	if !ok {
		return diag.New(diag.Structural, "UnmatchedParenthesis", "column definition parenthesis is never closed")
	}
	if next != len(rest) {
		return diag.New(diag.Syntax, "UnexpectedTokensAfterColumns", "unexpected tokens after column definitions")
	}
	if len(inner) == 0 {
		return diag.New(diag.Structural, "EmptyColumnList", "table must have at least one column")
	}
	if inner[len(inner)-1].Type == token.COMMA {
		return diag.New(diag.Structural, "TrailingComma", "trailing comma in column definitions")
	}

	hasColumn := false
	for _, def := range identutil.SplitTopLevel(inner, token.COMMA) {
		if len(def) == 0 {
			return diag.New(diag.Structural, "EmptyColumnDefinition", "column definition cannot be empty")
		}
		if isTableConstraint(def[0].Type) {
			continue
		}
		if d := validateColumnDefinition(def); d != nil {
			return d
		}
		hasColumn = true
	}
	if !hasColumn {
		return diag.New(diag.Structural, "TableMustHaveColumn", "table must contain at least one column")
	}
	return nil
}

func isTableConstraint(t token.Token) bool {
	switch t {
	case token.PRIMARY, token.UNIQUE, token.FOREIGN, token.CHECK:
		return true
	default:
		return false
	}
}

func validateColumnDefinition(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) < 2 {
		return diag.New(diag.Structural, "IncompleteColumnDefinition", "column definition must include a name and a data type")
	}
	if !isIdentLike(tokens[0].Type) {
		return invalidIdentifier("column", tokens[0].Value)
	}

	i := 2
	if i < len(tokens) && tokens[i].Type == token.LPAREN {
		next, _, ok := identutil.ConsumeParenthesized(tokens, i)
		if !ok {
			return diag.New(diag.Structural, "UnmatchedParenthesis", "data type parenthesis is never closed")
		}
		i = next
	}
	for i < len(tokens) {
		switch tokens[i].Type {
		case token.PRIMARY:
			if i+1 < len(tokens) && tokens[i+1].Type == token.KEY {
				i += 2
				continue
			}
			return diag.New(diag.Syntax, "PrimaryRequiresKey", "PRIMARY must be followed by KEY")
		case token.UNIQUE:
			i++
		case token.NOT:
			if i+1 < len(tokens) && tokens[i+1].Type == token.NULL {
				i += 2
				continue
			}
			return diag.New(diag.Syntax, "NotRequiresNull", "NOT must be followed by NULL")
		case token.DEFAULT:
			if i+1 >= len(tokens) {
				return diag.New(diag.Structural, "DefaultRequiresValue", "DEFAULT must have a value")
			}
			i += 2
		case token.CHECK:
			if i+1 >= len(tokens) || tokens[i+1].Type != token.LPAREN {
				return diag.New(diag.Structural, "CheckRequiresParens", "CHECK constraint must be enclosed in parentheses")
			}
			if _, _, ok := identutil.ConsumeParenthesized(tokens, i+1); !ok {
				return diag.New(diag.Structural, "UnmatchedParenthesis", "CHECK constraint parenthesis is never closed")
			}
			return nil
		case token.REFERENCES:
			if i+1 >= len(tokens) || !isIdentLike(tokens[i+1].Type) {
				return diag.New(diag.Structural, "ReferencesRequiresTable", "REFERENCES must specify a table")
			}
			if i+2 >= len(tokens) || tokens[i+2].Type != token.LPAREN {
				return diag.New(diag.Structural, "ReferencesRequiresColumn", "REFERENCES must specify a referenced column")
			}
			if _, _, ok := identutil.ConsumeParenthesized(tokens, i+2); !ok {
				return diag.New(diag.Structural, "UnmatchedParenthesis", "REFERENCES column parenthesis is never closed")
			}
			return nil
		default:
			return diag.New(diag.Syntax, "InvalidColumnConstraint", "invalid column constraint").WithContext(tokens[i].Value)
		}
	}
	return nil
}

func validateCreateView(rest []token.Item, sv expr.SelectValidator) *diag.Diagnostic {
	idx := consumeIfNotExists(rest)
	if idx >= len(rest) {
		return diag.New(diag.Structural, "MissingViewName", "view name is missing")
	}
	if !isIdentLike(rest[idx].Type) {
		return invalidIdentifier("view", rest[idx].Value)
	}
	idx++

	if idx < len(rest) && rest[idx].Type == token.LPAREN {
		next, inner, ok := identutil.ConsumeParenthesized(rest, idx)
		if !ok {
			return diag.New(diag.Structural, "UnmatchedParenthesis", "view column list parenthesis is never closed")
		}
		if len(inner) == 0 {
			return diag.New(diag.Structural, "EmptyColumnList", "view column list cannot be empty")
		}
		if inner[len(inner)-1].Type == token.COMMA {
			return diag.New(diag.Structural, "TrailingComma", "trailing comma in view column list")
		}
		for _, c := range identutil.SplitTopLevel(inner, token.COMMA) {
			if len(c) != 1 || !isIdentLike(c[0].Type) {
				return diag.New(diag.Syntax, "InvalidColumnName", "view column list entries must be identifiers")
			}
		}
		idx = next
	}

	if idx >= len(rest) || rest[idx].Type != token.AS {
		return diag.New(diag.Structural, "MissingAsKeyword", "CREATE VIEW requires AS")
	}
	idx++

	selectTokens := rest[idx:]
	if len(selectTokens) == 0 || selectTokens[0].Type != token.SELECT {
		return diag.New(diag.Syntax, "ViewRequiresSelect", "CREATE VIEW must use SELECT")
	}
	_, d := sv(selectTokens)
	return d
}

func validateCreateIndex(rest []token.Item) *diag.Diagnostic {
	idx := 0
	if idx >= len(rest) || !isIdentLike(rest[idx].Type) {
		return diag.New(diag.Structural, "MissingIndexName", "index name is missing")
	}
	idx++

	if idx >= len(rest) || rest[idx].Type != token.ON {
		return diag.New(diag.Structural, "MissingOnKeyword", "CREATE INDEX requires ON")
	}
	idx++

	if idx >= len(rest) || !isIdentLike(rest[idx].Type) {
		return diag.New(diag.Structural, "MissingTableName", "table name is missing")
	}
	idx++
	if idx+1 < len(rest) && rest[idx].Type == token.DOT && isIdentLike(rest[idx+1].Type) {
		idx += 2
	}

	if idx >= len(rest) || rest[idx].Type != token.LPAREN {
		return diag.New(diag.Structural, "ColumnListRequired", "index column list must be enclosed in parentheses")
	}
	next, inner, ok := identutil.ConsumeParenthesized(rest, idx)
	if !ok {
		return diag.New(diag.Structural, "UnmatchedParenthesis", "index column list parenthesis is never closed")
	}
	if next != len(rest) {
		return diag.New(diag.Syntax, "UnexpectedTokensAfterColumns", "unexpected tokens after column list")
	}
	if len(inner) == 0 {
		return diag.New(diag.Structural, "EmptyColumnList", "index must contain at least one column")
	}
	if inner[len(inner)-1].Type == token.COMMA {
		return diag.New(diag.Structural, "TrailingComma", "trailing comma in index column list")
	}

	for _, c := range identutil.SplitTopLevel(inner, token.COMMA) {
		if len(c) == 0 {
			return diag.New(diag.Structural, "EmptyColumnDefinition", "index column definition cannot be empty")
		}
		if !isIdentLike(c[0].Type) {
			return invalidIdentifier("index column", c[0].Value)
		}
		if len(c) > 1 {
			if len(c) != 2 || (c[1].Type != token.ASC && c[1].Type != token.DESC) {
				return diag.New(diag.Syntax, "InvalidSortOrder", "index column sort order must be ASC or DESC")
			}
		}
	}
	return nil
}

func validateCreateDatabase(rest []token.Item) *diag.Diagnostic {
	idx := consumeIfNotExists(rest)
	if idx >= len(rest) {
		return diag.New(diag.Structural, "MissingDatabaseName", "database name is missing")
	}
	if idx+1 < len(rest) {
		return diag.New(diag.Syntax, "UnexpectedExtraTokens", "unexpected tokens after database name")
	}
	if !isIdentLike(rest[idx].Type) {
		return invalidIdentifier("database", rest[idx].Value)
	}
	return nil
}
