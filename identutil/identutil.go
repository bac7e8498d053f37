// Package identutil provides the identifier-shape and paren/token-window
// utilities shared by every clause and statement validator: balanced
// parentheses, depth-0 splitting, redundant-paren stripping, and identifier
// validity (simple, quoted, or schema-qualified).
package identutil

import (
	"strings"

	"github.com/anshsgit/sqlcheck/token"
	"golang.org/x/text/width"
)

// IsSimpleIdentifier reports whether name is a bare identifier: first rune
// alpha or underscore, remaining runes alphanumeric or underscore.
func IsSimpleIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
			continue
		}
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// IsQuotedIdentifier reports whether name is wrapped in double quotes.
func IsQuotedIdentifier(name string) bool {
	return len(name) >= 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`)
}

// IsValidIdentifier accepts a simple identifier, a quoted identifier (with
// non-empty inner content, width-folded before the emptiness check so a
// fullwidth-space-only quoted name is correctly rejected), or a two-part
// schema-qualified simple identifier (`schema.name`).
func IsValidIdentifier(name string) bool {
	name = strings.TrimSpace(name)
	if IsQuotedIdentifier(name) {
		inner := strings.TrimSpace(width.Narrow.String(name[1 : len(name)-1]))
		return inner != ""
	}
	if strings.Contains(name, ".") {
		parts := strings.Split(name, ".")
		if len(parts) != 2 {
			return false
		}
		return IsSimpleIdentifier(parts[0]) && IsSimpleIdentifier(parts[1])
	}
	return IsSimpleIdentifier(name)
}

// HasBalancedParens reports whether the token window's parentheses are
// balanced and never close before they open.
func HasBalancedParens(tokens []token.Item) bool {
	depth := 0
	for _, t := range tokens {
		switch t.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// FindTopLevel returns the index of the first token at depth 0 whose type is
// in targets, or -1 if none is found.
func FindTopLevel(tokens []token.Item, targets map[token.Token]bool) int {
	depth := 0
	for i, t := range tokens {
		switch t.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		default:
			if depth == 0 && targets[t.Type] {
				return i
			}
		}
	}
	return -1
}

// SplitTopLevel splits tokens on every occurrence of sep at depth 0.
func SplitTopLevel(tokens []token.Item, sep token.Token) [][]token.Item {
	var parts [][]token.Item
	depth, start := 0, 0
	for i, t := range tokens {
		switch t.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		default:
			if depth == 0 && t.Type == sep {
				parts = append(parts, tokens[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, tokens[start:])
	return parts
}

// StripOuterParens removes a redundant outermost parenthesis pair: one whose
// matching close is the window's last token. It is idempotent.
func StripOuterParens(tokens []token.Item) []token.Item {
	for len(tokens) >= 2 && tokens[0].Type == token.LPAREN && tokens[len(tokens)-1].Type == token.RPAREN {
		depth := 0
		valid := true
		for i, t := range tokens {
			switch t.Type {
			case token.LPAREN:
				depth++
			case token.RPAREN:
				depth--
			}
			if depth == 0 && i < len(tokens)-1 {
				valid = false
				break
			}
		}
		if !valid {
			break
		}
		tokens = tokens[1 : len(tokens)-1]
	}
	return tokens
}

// ConsumeParenthesized expects tokens[i] to be an LPAREN and returns the
// index just past its matching RPAREN plus the inner tokens (outer parens
// stripped), or ok=false if the parenthesis never closes.
func ConsumeParenthesized(tokens []token.Item, i int) (next int, inner []token.Item, ok bool) {
	if i >= len(tokens) || tokens[i].Type != token.LPAREN {
		return 0, nil, false
	}
	depth := 1
	j := i + 1
	for j < len(tokens) && depth > 0 {
		switch tokens[j].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		j++
	}
	if depth != 0 {
		return 0, nil, false
	}
	return j, StripOuterParens(tokens[i : j]), true
}

// Normalize renders a token window into a canonical comparable string: outer
// parens stripped, tokens joined by single spaces, using each token's
// canonical (already lowercase-folded) value.
func Normalize(tokens []token.Item) string {
	tokens = StripOuterParens(tokens)
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return strings.Join(values, " ")
}

// Join renders a token window back into source-like text, single-spaced.
func Join(tokens []token.Item) string {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return strings.Join(values, " ")
}
