package stmt

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/token"
)

// ValidateTCL validates the transaction-control statements: COMMIT,
// ROLLBACK [TO <savepoint>], and SAVEPOINT <name>. Statement termination is
// enforced by the dispatcher before these tokens are seen.
func ValidateTCL(tokens []token.Item) *diag.Diagnostic {
	switch tokens[0].Type {
	case token.COMMIT:
		if len(tokens) != 1 {
			return diag.New(diag.Syntax, "InvalidCommitUsage", "COMMIT takes no arguments")
		}
		return nil
	case token.ROLLBACK:
		if len(tokens) == 1 {
			return nil
		}
		if len(tokens) == 3 && tokens[1].Type == token.TO && isIdentLike(tokens[2].Type) {
			return nil
		}
		return diag.New(diag.Syntax, "InvalidRollbackSyntax", "use ROLLBACK or ROLLBACK TO <savepoint>")
	case token.SAVEPOINT:
		if len(tokens) != 2 || !isIdentLike(tokens[1].Type) {
			return diag.New(diag.Syntax, "InvalidSavepointSyntax", "use SAVEPOINT <name>")
		}
		return nil
	default:
		return diag.New(diag.Unsupported, "UnsupportedTCLStatement", "use COMMIT, ROLLBACK, ROLLBACK TO <savepoint>, or SAVEPOINT <name>")
	}
}
