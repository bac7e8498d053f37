package clause

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/expr"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// AliasEntry records one FROM-alias binding: either a concrete table name
// or the "derived" sentinel for a subquery.
type AliasEntry struct {
	Alias  string
	Origin string // table name ("schema.table" preserved), or "derived"
}

// AliasTable maps alias -> AliasEntry for one statement's FROM clause.
type AliasTable map[string]AliasEntry

var joinStarters = map[token.Token]bool{
	token.JOIN: true, token.INNER: true, token.LEFT: true, token.RIGHT: true, token.FULL: true,
}

// ValidateFrom validates the FROM clause window, returning the alias table
// and any qualified-column references collected from ON clauses.
func ValidateFrom(tokens []token.Item, ev *expr.Validator, sv expr.SelectValidator) (AliasTable, []QualifiedRef, *diag.Diagnostic) {
	if len(tokens) == 0 {
		return nil, nil, diag.New(diag.Structural, "EmptyFrom", "FROM clause cannot be empty")
	}

	hasJoin := identutil.FindTopLevel(tokens, joinStarters) != -1
	hasComma := identutil.FindTopLevel(tokens, map[token.Token]bool{token.COMMA: true}) != -1

	if hasJoin && hasComma {
		return nil, nil, diag.New(diag.Structural, "MixedJoinStyles", "FROM cannot mix comma-joins with JOIN syntax")
	}

	if hasJoin {
		return validateJoinChain(tokens, ev, sv)
	}
	return validateCommaJoined(tokens, sv)
}

func validateCommaJoined(tokens []token.Item, sv expr.SelectValidator) (AliasTable, []QualifiedRef, *diag.Diagnostic) {
	aliases := AliasTable{}
	for _, ref := range identutil.SplitTopLevel(tokens, token.COMMA) {
		entry, d := parseRef(ref, sv)
		if d != nil {
			return nil, nil, d
		}
		if d := addAlias(aliases, entry); d != nil {
			return nil, nil, d
		}
	}
	return aliases, nil, nil
}

func validateJoinChain(tokens []token.Item, ev *expr.Validator, sv expr.SelectValidator) (AliasTable, []QualifiedRef, *diag.Diagnostic) {
	aliases := AliasTable{}
	var refs []QualifiedRef

	firstJoin := identutil.FindTopLevel(tokens, joinStarters)
	if firstJoin <= 0 {
		return nil, nil, diag.New(diag.Structural, "EmptyTableRef", "FROM is missing a base table before JOIN")
	}

	baseEntry, d := parseRef(tokens[:firstJoin], sv)
	if d != nil {
		return nil, nil, d
	}
	if d := addAlias(aliases, baseEntry); d != nil {
		return nil, nil, d
	}

	i := firstJoin
	for i < len(tokens) {
		if joinKindToken(tokens[i].Type) {
			i++
		}
		if i >= len(tokens) || tokens[i].Type != token.JOIN {
			return nil, nil, diag.New(diag.Syntax, "InvalidTable", "expected JOIN keyword")
		}
		i++

		onIdx := findTopLevelFrom(tokens, i, map[token.Token]bool{token.ON: true})
		if onIdx == -1 {
			return nil, nil, diag.New(diag.Structural, "MissingOnClause", "JOIN requires an ON clause")
		}
		refTokens := tokens[i:onIdx]
		entry, d := parseRef(refTokens, sv)
		if d != nil {
			return nil, nil, d
		}
		if d := addAlias(aliases, entry); d != nil {
			return nil, nil, d
		}

		onStart := onIdx + 1
		nextJoin := findTopLevelFrom(tokens, onStart, joinStarters)
		onEnd := len(tokens)
		if nextJoin != -1 {
			onEnd = nextJoin
		}
		onTokens := tokens[onStart:onEnd]
		if len(onTokens) == 0 {
			return nil, nil, diag.New(diag.Structural, "EmptyOnClause", "ON clause cannot be empty")
		}

		onRefs := collectQualifiedColumns(onTokens)
		for _, r := range onRefs {
			if _, ok := aliases[r.Alias]; !ok {
				return nil, nil, diag.New(diag.Semantic, "UnknownAliasInOn", "ON clause references an alias not yet joined").WithContext(r.Alias)
			}
		}
		refs = append(refs, onRefs...)

		if d := ev.ValidateBoolean(onTokens, expr.CtxOn); d != nil {
			return nil, nil, d
		}

		i = onEnd
	}

	return aliases, refs, nil
}

func joinKindToken(t token.Token) bool {
	switch t {
	case token.INNER, token.LEFT, token.RIGHT, token.FULL:
		return true
	default:
		return false
	}
}

// findTopLevelFrom scans tokens[from:] at depth 0 for a token in targets,
// returning an absolute index, or -1.
func findTopLevelFrom(tokens []token.Item, from int, targets map[token.Token]bool) int {
	idx := identutil.FindTopLevel(tokens[from:], targets)
	if idx == -1 {
		return -1
	}
	return from + idx
}

// parseRef parses one FROM reference window: a table reference (optionally
// aliased) or a derived table `(subquery) alias`.
func parseRef(tokens []token.Item, sv expr.SelectValidator) (AliasEntry, *diag.Diagnostic) {
	if len(tokens) == 0 {
		return AliasEntry{}, diag.New(diag.Structural, "EmptyTableRef", "table reference cannot be empty")
	}

	if tokens[0].Type == token.LPAREN {
		next, inner, ok := identutil.ConsumeParenthesized(tokens, 0)
		if !ok {
			return AliasEntry{}, diag.New(diag.Structural, "UnmatchedParenthesis", "derived table parenthesis is never closed")
		}
		if len(inner) == 0 || inner[0].Type != token.SELECT {
			return AliasEntry{}, diag.New(diag.Syntax, "InvalidSubqueryInFrom", "derived table must begin with SELECT")
		}
		if _, d := sv(inner); d != nil {
			return AliasEntry{}, diag.New(diag.Semantic, "InvalidSubqueryInFrom", "derived table subquery failed validation").WithDetails(d)
		}

		aliasTokens := tokens[next:]
		if len(aliasTokens) == 0 {
			return AliasEntry{}, diag.New(diag.Syntax, "DerivedTableMissingAlias", "derived table requires an alias")
		}
		alias, explicit, d := parseAliasSuffix(aliasTokens)
		if d != nil {
			return AliasEntry{}, d
		}
		if !explicit {
			return AliasEntry{}, diag.New(diag.Syntax, "DerivedTableMissingAlias", "derived table requires an alias")
		}
		return AliasEntry{Alias: alias, Origin: "derived"}, nil
	}

	nameEnd := 1
	if !isIdentLikeTok(tokens[0].Type) {
		return AliasEntry{}, diag.New(diag.Syntax, "InvalidTable", "invalid table name").WithContext(tokens[0].Value)
	}
	if len(tokens) >= 3 && tokens[1].Type == token.DOT && isIdentLikeTok(tokens[2].Type) {
		nameEnd = 3
	}
	nameTokens := tokens[:nameEnd]
	origin := ""
	for _, nt := range nameTokens {
		origin += nt.Value
	}
	baseName := nameTokens[len(nameTokens)-1].Value

	rest := tokens[nameEnd:]
	if len(rest) == 0 {
		return AliasEntry{Alias: baseName, Origin: origin}, nil
	}

	alias, explicit, d := parseAliasSuffix(rest)
	if d != nil {
		return AliasEntry{}, d
	}
	if explicit && alias == baseName {
		return AliasEntry{}, diag.New(diag.Semantic, "AliasEqualsTable", "alias must not equal its base table name").WithContext(alias)
	}
	return AliasEntry{Alias: alias, Origin: origin}, nil
}

// parseAliasSuffix consumes an optional `[AS] name` alias suffix. If tokens
// is non-empty and malformed, it is always an error (callers pre-check
// emptiness when an alias is mandatory).
func parseAliasSuffix(tokens []token.Item) (alias string, explicit bool, d *diag.Diagnostic) {
	if len(tokens) == 0 {
		return "", false, nil
	}
	if tokens[0].Type == token.AS {
		tokens = tokens[1:]
	}
	if len(tokens) != 1 || !isIdentLikeTok(tokens[0].Type) {
		return "", false, diag.New(diag.Syntax, "InvalidAlias", "alias must be a single identifier")
	}
	return tokens[0].Value, true, nil
}

func addAlias(table AliasTable, entry AliasEntry) *diag.Diagnostic {
	if !identutil.IsValidIdentifier(entry.Alias) {
		return diag.New(diag.Syntax, "InvalidAlias", "alias is not a valid identifier").WithContext(entry.Alias)
	}
	if _, dup := table[entry.Alias]; dup {
		return diag.New(diag.Semantic, "DuplicateAlias", "alias is already in use in this FROM clause").WithContext(entry.Alias)
	}
	table[entry.Alias] = entry
	return nil
}
