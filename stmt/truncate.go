package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateTruncate validates TRUNCATE TABLE <name> [RESTART|CONTINUE
// IDENTITY] [CASCADE|RESTRICT].
func ValidateTruncate(tokens []token.Item) *diag.Diagnostic {
	if len(tokens) < 2 || tokens[1].Type != token.TABLE {
		return diag.New(diag.Syntax, "ExpectedTableKeyword", "TRUNCATE requires the TABLE keyword")
	}
	if len(tokens) < 3 || !isIdentLike(tokens[2].Type) {
		return diag.New(diag.Syntax, "InvalidTableName", "table name is missing")
	}

	idx := 3
	haveIdentity, haveReferential := false, false

	for idx < len(tokens) {
		switch tokens[idx].Type {
		case token.RESTART, token.CONTINUE:
			if haveIdentity {
				return diag.New(diag.Semantic, "DuplicateIdentityOption", "identity option specified more than once")
			}
			if idx+1 >= len(tokens) || tokens[idx+1].Type != token.IDENTITY {
				return diag.New(diag.Syntax, "IdentityKeywordRequired", "RESTART/CONTINUE must be followed by IDENTITY")
			}
			haveIdentity = true
			idx += 2
		case token.CASCADE, token.RESTRICT:
			if haveReferential {
				return diag.New(diag.Semantic, "DuplicateOption", "referential option specified more than once")
			}
			haveReferential = true
			idx++
		default:
			return diag.New(diag.Syntax, "UnexpectedKeyword", "unexpected keyword in TRUNCATE statement").WithContext(tokens[idx].Value)
		}
	}
	return nil
}
