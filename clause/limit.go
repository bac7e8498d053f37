package clause

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateLimit validates the LIMIT window: exactly one non-negative integer
// literal. Leading zeros ("007") are tolerated.
func ValidateLimit(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "EmptyLimit", "LIMIT clause cannot be empty")
	}
	if len(tokens) != 1 || tokens[0].Type != token.INT {
		return diag.New(diag.Syntax, "LimitRequiresInteger", "LIMIT requires a single integer literal")
	}
	for _, c := range tokens[0].Value {
		if c < '0' || c > '9' {
			return diag.New(diag.Syntax, "LimitRequiresInteger", "LIMIT requires a single integer literal")
		}
	}
	return nil
}
