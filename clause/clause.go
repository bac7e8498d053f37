// Package clause implements C6's clause-index extraction and ordering
// rules: detecting SELECT/FROM/WHERE/GROUP BY/HAVING/ORDER BY/LIMIT at
// depth 0, and enforcing uniqueness, mandatory presence, and canonical
// order.
package clause

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/token"
)

// Kind identifies one of the seven recognized SELECT clauses.
type Kind int

const (
	Select Kind = iota
	From
	Where
	GroupBy
	Having
	OrderBy
	Limit
)

func (k Kind) String() string {
	switch k {
	case Select:
		return "select"
	case From:
		return "from"
	case Where:
		return "where"
	case GroupBy:
		return "group by"
	case Having:
		return "having"
	case OrderBy:
		return "order by"
	case Limit:
		return "limit"
	default:
		return "unknown"
	}
}

// canonicalOrder gives each clause kind's position in the required
// ascending sequence.
var canonicalOrder = map[Kind]int{
	Select: 1, From: 2, Where: 3, GroupBy: 4, Having: 5, OrderBy: 6, Limit: 7,
}

// Position records where a clause keyword begins in the token stream.
type Position struct {
	Kind  Kind
	Index int
}

// Index is the ordered clause index of one SELECT statement.
type Index struct {
	Positions []Position
	byKind    map[Kind]int // kind -> keyword byte offset (Pos.Offset), first occurrence only
}

// At returns the byte offset (Pos.Offset) of the keyword of kind's first
// occurrence, and whether it was present at all.
func (ix *Index) At(k Kind) (int, bool) {
	i, ok := ix.byKind[k]
	return i, ok
}

// CollectQualifiedColumns scans a token window (at any depth, skipping
// parenthesized subqueries) for `ident . ident` triples, for callers outside
// this package.
func CollectQualifiedColumns(tokens []token.Item) []QualifiedRef {
	return collectQualifiedColumns(tokens)
}

// Extract scans tokens at depth 0 for clause keywords, builds the ordered
// Index, and validates uniqueness, mandatory presence, HAVING-requires-
// GROUP-BY, and canonical ordering — returning the first violation found.
func Extract(tokens []token.Item) (*Index, *diag.Diagnostic) {
	ix := &Index{byKind: map[Kind]int{}}
	depth := 0

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Type {
		case token.LPAREN:
			depth++
			continue
		case token.RPAREN:
			depth--
			continue
		}
		if depth != 0 {
			continue
		}

		var kind Kind
		switch t.Type {
		case token.SELECT:
			kind = Select
		case token.FROM:
			kind = From
		case token.WHERE:
			kind = Where
		case token.LIMIT:
			kind = Limit
		case token.GROUP:
			if i+1 < len(tokens) && tokens[i+1].Type == token.BY {
				kind = GroupBy
				i++
			} else {
				continue
			}
		case token.HAVING:
			kind = Having
		case token.ORDER:
			if i+1 < len(tokens) && tokens[i+1].Type == token.BY {
				kind = OrderBy
				i++
			} else {
				continue
			}
		default:
			continue
		}

		if first, seen := ix.byKind[kind]; seen {
			return nil, diag.New(diag.Structural, "DuplicateClause", "clause appears more than once").
				WithContext(kind.String()).
				WithDetails(diag.New(diag.Structural, "FirstOccurrence", "").WithContext(positionLabel(first) + ", again at " + positionLabel(t.Pos.Offset)))
		}
		ix.byKind[kind] = t.Pos.Offset
		ix.Positions = append(ix.Positions, Position{Kind: kind, Index: i - boolToInt(kind == GroupBy || kind == OrderBy)})
	}

	if d := checkMandatory(ix); d != nil {
		return nil, d
	}
	if d := checkHavingWithoutGroupBy(ix); d != nil {
		return nil, d
	}
	if d := checkOrder(ix); d != nil {
		return nil, d
	}

	return ix, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func positionLabel(offset int) string {
	return "offset " + itoa(offset)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func checkMandatory(ix *Index) *diag.Diagnostic {
	var missing []string
	if _, ok := ix.At(Select); !ok {
		missing = append(missing, "select")
	}
	if _, ok := ix.At(From); !ok {
		missing = append(missing, "from")
	}
	if len(missing) == 0 {
		return nil
	}
	ctx := missing[0]
	for _, m := range missing[1:] {
		ctx += ", " + m
	}
	return diag.New(diag.Structural, "MissingMandatoryClause", "required clause is missing").WithContext(ctx)
}

func checkHavingWithoutGroupBy(ix *Index) *diag.Diagnostic {
	_, hasHaving := ix.At(Having)
	_, hasGroupBy := ix.At(GroupBy)
	if hasHaving && !hasGroupBy {
		return diag.New(diag.Structural, "HavingWithoutGroupBy", "HAVING requires a GROUP BY clause")
	}
	return nil
}

func checkOrder(ix *Index) *diag.Diagnostic {
	lastOrder := 0
	for _, p := range ix.Positions {
		order := canonicalOrder[p.Kind]
		if order < lastOrder {
			return diag.New(diag.Structural, "ClauseOrderError", "clause appears out of order").WithContext(p.Kind.String())
		}
		lastOrder = order
	}
	return nil
}
