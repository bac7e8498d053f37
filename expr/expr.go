// Package expr implements the recursive-descent expression validator (C5):
// boolean, comparison, arithmetic, BETWEEN, IN, aggregate, and scalar-
// subquery expressions, parameterized by clause Context.
package expr

import (
	"github.com/anshsgit/sqlcheck/diag"
	"github.com/anshsgit/sqlcheck/identutil"
	"github.com/anshsgit/sqlcheck/token"
)

// Context identifies which clause an expression window came from; it
// changes a small number of rules (aggregates forbidden in WHERE, for
// instance).
type Context int

const (
	CtxWhere Context = iota
	CtxHaving
	CtxOn
	CtxSelect
	CtxOrder
)

// DefaultMaxDepth bounds recursion through nested parentheses within one
// Validator. A subquery is handed to the SelectValidator callback, and the
// SELECT validator checks it with a fresh Validator whose depth count starts
// at zero, so the nesting of subqueries inside subqueries is not bounded.
const DefaultMaxDepth = 128

// MaxDepth is the nesting-depth limit callers get when they pass maxDepth <=
// 0 to New. It starts at DefaultMaxDepth; a CLI entry point may lower or
// raise it once at startup (see internal/config's MaxDepth option) to make
// the limit configurable without threading a depth argument through every
// validator constructor.
var MaxDepth = DefaultMaxDepth

var logicalOps = map[token.Token]bool{token.AND: true, token.OR: true}
var inBetween = map[token.Token]bool{token.IN: true, token.BETWEEN: true}
var arithmeticOps = map[token.Token]bool{
	token.PLUS: true, token.MINUS: true, token.ASTERISK: true, token.SLASH: true,
}
var comparisonOps = map[token.Token]bool{
	token.EQ: true, token.NEQ: true, token.LT: true, token.GT: true,
	token.LTE: true, token.GTE: true,
}

// SelectValidator validates a subquery's token window (the full `select ...`
// tokens, not including the wrapping parentheses) and reports how many
// top-level SELECT-list expressions it projects. It is supplied by the
// select package at construction time, breaking the expr<->select import
// cycle.
type SelectValidator func(tokens []token.Item) (projectedColumns int, diagnostic *diag.Diagnostic)

// Validator validates expressions within one statement's scope.
type Validator struct {
	selectValidator SelectValidator
	maxDepth        int
}

// New builds a Validator. selectValidator must not be nil; maxDepth <= 0
// falls back to the current MaxDepth.
func New(selectValidator SelectValidator, maxDepth int) *Validator {
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	return &Validator{selectValidator: selectValidator, maxDepth: maxDepth}
}

// ValidateBoolean validates tokens as a boolean expression (the WHERE/
// HAVING/ON grammar entry point).
func (v *Validator) ValidateBoolean(tokens []token.Item, ctx Context) *diag.Diagnostic {
	return v.validateBoolean(tokens, ctx, 0)
}

// ValidateValue validates tokens as a value expression (the SELECT-item/
// ORDER-BY/aggregate-argument grammar entry point).
func (v *Validator) ValidateValue(tokens []token.Item, ctx Context) *diag.Diagnostic {
	return v.validateExpression(tokens, ctx, false, 0)
}

func nestingTooDeep() *diag.Diagnostic {
	return diag.New(diag.Structural, "NestingTooDeep", "expression nesting exceeds the maximum supported depth")
}

func (v *Validator) validateBoolean(tokens []token.Item, ctx Context, depth int) *diag.Diagnostic {
	if depth > v.maxDepth {
		return nestingTooDeep()
	}
	tokens = identutil.StripOuterParens(tokens)
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "EmptyExpression", "expression is empty")
	}

	if identutil.FindTopLevel(tokens, inBetween) != -1 {
		return v.validateComparison(tokens, ctx, depth)
	}

	if idx := identutil.FindTopLevel(tokens, logicalOps); idx != -1 {
		left, right := tokens[:idx], tokens[idx+1:]
		if len(left) == 0 || len(right) == 0 {
			return diag.New(diag.Syntax, "LogicalOperatorWithoutOperand", "AND/OR must have an operand on both sides")
		}
		if d := v.validateBoolean(left, ctx, depth+1); d != nil {
			return d
		}
		return v.validateBoolean(right, ctx, depth+1)
	}

	return v.validateComparison(tokens, ctx, depth)
}

func (v *Validator) validateComparison(tokens []token.Item, ctx Context, depth int) *diag.Diagnostic {
	tokens = identutil.StripOuterParens(tokens)

	if identutil.FindTopLevel(tokens, map[token.Token]bool{token.IN: true}) != -1 {
		return v.validateIn(tokens, ctx, depth)
	}
	if identutil.FindTopLevel(tokens, map[token.Token]bool{token.BETWEEN: true}) != -1 {
		return v.validateBetween(tokens, ctx, depth)
	}
	return v.validateBinaryComparison(tokens, ctx, depth)
}

func (v *Validator) validateIn(tokens []token.Item, ctx Context, depth int) *diag.Diagnostic {
	idx := identutil.FindTopLevel(tokens, map[token.Token]bool{token.IN: true})
	lhs := tokens[:idx]
	if idx > 0 && tokens[idx-1].Type == token.NOT {
		lhs = tokens[:idx-1]
	}
	rhs := tokens[idx+1:]

	if len(lhs) == 0 || len(rhs) == 0 {
		return diag.New(diag.Structural, "IncompleteInExpression", "IN expression is missing its left- or right-hand side")
	}

	if d := v.validateExpression(lhs, ctx, false, depth+1); d != nil {
		return d
	}

	if rhs[0].Type != token.LPAREN || rhs[len(rhs)-1].Type != token.RPAREN {
		return diag.New(diag.Syntax, "InRequiresParenList", "IN requires a parenthesized value list or subquery")
	}
	items := identutil.StripOuterParens(rhs)
	if len(items) == 0 {
		return diag.New(diag.Structural, "EmptyInList", "IN list cannot be empty")
	}

	if items[0].Type == token.SELECT {
		return v.validateScalarSubquery(items, depth)
	}

	for _, value := range identutil.SplitTopLevel(items, token.COMMA) {
		if len(value) == 0 {
			return diag.New(diag.Structural, "EmptyInListValue", "IN list contains an empty value")
		}
		if d := v.validateExpression(value, ctx, false, depth+1); d != nil {
			return d
		}
	}
	return nil
}

func (v *Validator) validateBetween(tokens []token.Item, ctx Context, depth int) *diag.Diagnostic {
	idx := identutil.FindTopLevel(tokens, map[token.Token]bool{token.BETWEEN: true})
	lhs := tokens[:idx]
	rest := tokens[idx+1:]

	if len(lhs) == 0 || len(rest) == 0 {
		return diag.New(diag.Structural, "IncompleteBetweenExpression", "BETWEEN is missing its operand")
	}

	andIdx := identutil.FindTopLevel(rest, map[token.Token]bool{token.AND: true})
	if andIdx == -1 {
		return diag.New(diag.Syntax, "BetweenMissingAnd", "BETWEEN requires AND separating its bounds")
	}
	low, high := rest[:andIdx], rest[andIdx+1:]
	if len(low) == 0 || len(high) == 0 {
		return diag.New(diag.Structural, "IncompleteBetweenBounds", "BETWEEN bounds cannot be empty")
	}

	for _, part := range [][]token.Item{lhs, low, high} {
		if d := v.validateExpression(part, ctx, false, depth+1); d != nil {
			return d
		}
	}
	return nil
}

func (v *Validator) validateBinaryComparison(tokens []token.Item, ctx Context, depth int) *diag.Diagnostic {
	depthCount := 0
	opIndex := -1

	for i, t := range tokens {
		switch t.Type {
		case token.LPAREN:
			depthCount++
		case token.RPAREN:
			depthCount--
		default:
			if depthCount == 0 && isComparatorLike(t.Type) {
				if !comparisonOps[t.Type] {
					return diag.New(diag.Syntax, "InvalidComparator", "unsupported comparison operator").WithContext(t.Value)
				}
				if opIndex != -1 {
					return diag.New(diag.Syntax, "MultipleComparisonOperators", "expression contains more than one comparison operator")
				}
				opIndex = i
			}
		}
	}

	if opIndex == -1 {
		return diag.New(diag.Structural, "IncompleteComparison", "expression is missing a comparison operator")
	}

	lhs := identutil.StripOuterParens(tokens[:opIndex])
	rhs := identutil.StripOuterParens(tokens[opIndex+1:])
	if len(lhs) == 0 || len(rhs) == 0 {
		return diag.New(diag.Structural, "IncompleteComparison", "comparison is missing an operand")
	}

	if d := v.validateExpression(lhs, ctx, false, depth+1); d != nil {
		return d
	}
	return v.validateExpression(rhs, ctx, false, depth+1)
}

func isComparatorLike(t token.Token) bool {
	switch t {
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE:
		return true
	default:
		return false
	}
}

func (v *Validator) validateScalarSubquery(tokens []token.Item, depth int) *diag.Diagnostic {
	if depth > v.maxDepth {
		return nestingTooDeep()
	}
	cols, d := v.selectValidator(tokens)
	if d != nil {
		return diag.New(diag.Semantic, "InvalidSubquery", "subquery failed validation").WithDetails(d)
	}
	if cols != 1 {
		return diag.New(diag.Semantic, "MultiColumnScalarSubquery", "a subquery used as a value must project exactly one column")
	}
	return nil
}

func (v *Validator) validateExpression(tokens []token.Item, ctx Context, insideAggregate bool, depth int) *diag.Diagnostic {
	if depth > v.maxDepth {
		return nestingTooDeep()
	}
	tokens = identutil.StripOuterParens(tokens)
	if len(tokens) == 0 {
		return diag.New(diag.Structural, "EmptyExpression", "expression is empty")
	}

	if tokens[0].Type == token.SELECT {
		return v.validateScalarSubquery(tokens, depth)
	}

	if len(tokens) == 1 && tokens[0].Type == token.ASTERISK {
		return nil
	}

	return v.validateArithmeticChain(tokens, ctx, insideAggregate, depth)
}

func (v *Validator) validateArithmeticChain(tokens []token.Item, ctx Context, insideAggregate bool, depth int) *diag.Diagnostic {
	expectingOperand := true
	i := 0

	for i < len(tokens) {
		if expectingOperand {
			if tokens[i].Type == token.LPAREN {
				next, inner, ok := identutil.ConsumeParenthesized(tokens, i)
				if !ok {
					return diag.New(diag.Structural, "UnmatchedParenthesis", "parenthesis is never closed")
				}

				if len(inner) > 0 && inner[0].Type == token.SELECT {
					if d := v.validateScalarSubquery(inner, depth+1); d != nil {
						return d
					}
					if next < len(tokens) && arithmeticOps[tokens[next].Type] {
						return diag.New(diag.Semantic, "ArithmeticOnSubquery", "arithmetic on a scalar subquery result is not allowed")
					}
					i = next
					expectingOperand = false
					continue
				}

				if d := v.validateExpression(inner, ctx, insideAggregate, depth+1); d != nil {
					return d
				}
				i = next
				expectingOperand = false
				continue
			}

			next, d := v.validateOperand(tokens, i, ctx, insideAggregate, depth)
			if d != nil {
				return d
			}
			i = next
			expectingOperand = false
			continue
		}

		if arithmeticOps[tokens[i].Type] {
			expectingOperand = true
			i++
			continue
		}
		return diag.New(diag.Syntax, "UnexpectedOperator", "expected an arithmetic operator").WithContext(tokens[i].Value)
	}

	if expectingOperand {
		return diag.New(diag.Structural, "DanglingOperator", "expression cannot end with an operator")
	}
	return nil
}

func (v *Validator) validateOperand(tokens []token.Item, i int, ctx Context, insideAggregate bool, depth int) (int, *diag.Diagnostic) {
	t := tokens[i]

	if isQualifiedColumnAt(tokens, i) {
		return i + 3, nil
	}

	if isAggregateToken(t.Type) {
		if insideAggregate {
			return 0, diag.New(diag.Semantic, "NestedAggregate", "aggregate functions cannot be nested").WithContext(t.Value)
		}
		if ctx == CtxWhere {
			return 0, diag.New(diag.Semantic, "AggregateInWhere", "aggregate functions are not allowed in the WHERE clause").WithContext(t.Value)
		}
		if i+1 >= len(tokens) || tokens[i+1].Type != token.LPAREN {
			return 0, diag.New(diag.Syntax, "InvalidAggregateUsage", "aggregate function must be followed by (").WithContext(t.Value)
		}
		next, inner, ok := identutil.ConsumeParenthesized(tokens, i+1)
		if !ok {
			return 0, diag.New(diag.Structural, "UnmatchedParenthesis", "aggregate argument parenthesis is never closed")
		}
		if len(inner) == 1 && inner[0].Type == token.ASTERISK {
			if t.Type != token.COUNT {
				return 0, diag.New(diag.Syntax, "InvalidAggregateArg", "only COUNT accepts * as its argument").WithContext(t.Value)
			}
			return next, nil
		}
		if len(inner) == 0 {
			return 0, diag.New(diag.Structural, "EmptyAggregateArg", "aggregate function argument cannot be empty").WithContext(t.Value)
		}
		if d := v.validateExpression(inner, ctx, true, depth+1); d != nil {
			return 0, d
		}
		return next, nil
	}

	if isAtomicOperand(t.Type) {
		return i + 1, nil
	}

	return 0, diag.New(diag.Syntax, "UnexpectedOperand", "expected a column, literal, or expression").WithContext(t.Value)
}

func isQualifiedColumnAt(tokens []token.Item, i int) bool {
	if i+2 >= len(tokens) {
		return false
	}
	return isIdentLike(tokens[i].Type) && tokens[i+1].Type == token.DOT && isIdentLike(tokens[i+2].Type)
}

func isIdentLike(t token.Token) bool { return t == token.IDENT || t == token.QIDENT }

func isAtomicOperand(t token.Token) bool {
	return t == token.IDENT || t == token.QIDENT || t == token.INT || t == token.STRING
}

func isAggregateToken(t token.Token) bool {
	switch t {
	case token.SUM, token.COUNT, token.AVG, token.MIN, token.MAX:
		return true
	default:
		return false
	}
}
