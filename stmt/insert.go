package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateInsert validates INSERT INTO <table> [(col, ...)] VALUES
// (v, ...)[, (v, ...)]*.
func ValidateInsert(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) < 2 || tokens[1].Type != token.INTO {
		return diag.New(diag.Syntax, "ExpectedIntoKeyword", "INSERT must be followed by INTO")
	}
	if len(tokens) < 3 || !isIdentLike(tokens[2].Type) {
		return diag.New(diag.Syntax, "InvalidTableName", "INSERT INTO requires a table name")
	}

	i := 3
	if i+1 < len(tokens) && tokens[i].Type == token.DOT && isIdentLike(tokens[i+1].Type) {
		i += 2
	}

	var columns []string
	if i < len(tokens) && tokens[i].Type == token.LPAREN {
		next, inner, ok := identutil.ConsumeParenthesized(tokens, i)
		if !ok {
			return diag.New(diag.Structural, "UnmatchedParenthesis", "column list parenthesis is never closed")
		}
		if len(inner) == 0 {
			return diag.New(diag.Structural, "EmptyColumnList", "column list cannot be empty")
		}
		for _, c := range identutil.SplitTopLevel(inner, token.COMMA) {
			if len(c) != 1 || !isIdentLike(c[0].Type) {
				return diag.New(diag.Syntax, "InvalidColumnName", "column list entries must be identifiers")
			}
			columns = append(columns, c[0].Value)
		}
		i = next
	}

	if i >= len(tokens) || tokens[i].Type != token.VALUES {
		return diag.New(diag.Structural, "MissingValuesClause", "INSERT requires a VALUES clause")
	}
	i++

	rowLists := identutil.SplitTopLevel(tokens[i:], token.COMMA)
	if len(rowLists) == 0 {
		return diag.New(diag.Structural, "EmptyValuesClause", "VALUES clause cannot be empty")
	}

	for _, row := range rowLists {
		if len(row) == 0 || row[0].Type != token.LPAREN || row[len(row)-1].Type != token.RPAREN {
			return diag.New(diag.Syntax, "InvalidValuesFormat", "VALUES must contain a parenthesized value list")
		}
		values := identutil.StripOuterParens(row)
		if len(values) == 0 {
			return diag.New(diag.Structural, "EmptyValuesList", "VALUES list cannot be empty")
		}
		valueItems := identutil.SplitTopLevel(values, token.COMMA)
		if len(valueItems) == 0 {
			return diag.New(diag.Structural, "EmptyValuesList", "VALUES list cannot be empty")
		}
		for _, v := range valueItems {
			if len(v) == 0 {
				return diag.New(diag.Structural, "EmptyValuesList", "VALUES list contains an empty value")
			}
		}
		if columns != nil && len(valueItems) != len(columns) {
			return diag.New(diag.Semantic, "ColumnValueCountMismatch", "number of values does not match number of columns")
		}
	}

	return nil
}
