package clause

import "github.com/anshsgit/sqlcheck/token"

// tokenIndexOf returns the token-stream index whose Pos.Offset matches
// offset (clause keyword positions are recorded by byte offset, which is
// unique per token).
func tokenIndexOf(tokens []token.Item, offset int) int {
	for i, t := range tokens {
		if t.Pos.Offset == offset {
			return i
		}
	}
	return len(tokens)
}

// clauseStartIndex returns the index just after a clause's keyword(s): one
// token for single-word clauses, two for `group by`/`order by`.
func clauseStartIndex(tokens []token.Item, offset int) int {
	i := tokenIndexOf(tokens, offset)
	if i < len(tokens) && (tokens[i].Type == token.GROUP || tokens[i].Type == token.ORDER) {
		return i + 2
	}
	return i + 1
}

// Window returns the token slice belonging to clause kind: from just after
// its keyword(s) up to the keyword that starts the next clause present in
// this statement (in stream order), or end of input for the last clause.
// ix must come from a successful Extract, so Positions is known to be in
// canonical order.
func (ix *Index) Window(tokens []token.Item, kind Kind) []token.Item {
	offset, ok := ix.At(kind)
	if !ok {
		return nil
	}
	start := clauseStartIndex(tokens, offset)

	end := len(tokens)
	for i, p := range ix.Positions {
		if p.Kind == kind && i+1 < len(ix.Positions) {
			next := ix.Positions[i+1]
			nextOffset, _ := ix.At(next.Kind)
			end = tokenIndexOf(tokens, nextOffset)
			break
		}
	}
	if end < start {
		end = start
	}
	return tokens[start:end]
}
