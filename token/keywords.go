package token

// keywords maps lowercase keyword strings to token types. The set is the
// closed vocabulary of the dialect this checker validates.
var keywords map[string]Token

func init() {
	keywords = map[string]Token{
		"select": SELECT, "from": FROM, "where": WHERE, "group": GROUP,
		"by": BY, "having": HAVING, "order": ORDER, "limit": LIMIT, "as": AS,

		"and": AND, "or": OR, "not": NOT, "in": IN, "between": BETWEEN,
		"is": IS, "null": NULL,

		"join": JOIN, "inner": INNER, "left": LEFT, "right": RIGHT,
		"full": FULL, "on": ON,

		"sum": SUM, "count": COUNT, "avg": AVG, "min": MIN, "max": MAX,

		"insert": INSERT, "update": UPDATE, "alter": ALTER, "drop": DROP,
		"delete": DELETE, "truncate": TRUNCATE, "create": CREATE,
		"commit": COMMIT, "rollback": ROLLBACK, "savepoint": SAVEPOINT,

		"table": TABLE, "view": VIEW, "index": INDEX, "database": DATABASE,
		"add": ADD, "modify": MODIFY, "column": COLUMN, "into": INTO,
		"values": VALUES, "set": SET, "references": REFERENCES,
		"primary": PRIMARY, "foreign": FOREIGN, "key": KEY, "unique": UNIQUE, "default": DEFAULT,
		"check": CHECK, "if": IF, "exists": EXISTS, "cascade": CASCADE,
		"restrict": RESTRICT, "restart": RESTART, "continue": CONTINUE,
		"identity": IDENTITY, "replace": REPLACE, "to": TO,
		"asc": ASC, "desc": DESC,
	}
}

// Lookup returns the keyword token for a lowercase word, and whether it is
// a recognized keyword at all.
func Lookup(word string) (Token, bool) {
	tok, ok := keywords[word]
	return tok, ok
}

// AggregateNames is the closed set of aggregate function names.
var AggregateNames = map[string]bool{
	"sum": true, "count": true, "avg": true, "min": true, "max": true,
}

// Vocabulary is the full closed keyword list, used by the spell-suggester.
var Vocabulary = func() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	return words
}()
