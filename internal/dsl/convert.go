package dsl

import (
	"strings"

	"github.com/JrodM/a-tree-go/internal/ast"
	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/predicates"
	"github.com/JrodM/a-tree-go/internal/strtable"
	"github.com/shopspring/decimal"
)

// convertExpr walks the parsed Expr into a raw ast.Node, resolving every
// identifier against attrs and interning every string literal against
// strings as it goes.
func convertExpr(e *Expr, attrs *attributes.Table, strings *strtable.Table) (*ast.Node, error) {
	return convertOr(e.Or, attrs, strings)
}

func convertOr(o *OrExpr, attrs *attributes.Table, strings *strtable.Table) (*ast.Node, error) {
	node, err := convertAnd(o.Left, attrs, strings)
	if err != nil {
		return nil, err
	}
	for _, tail := range o.Rest {
		right, err := convertAnd(tail.Right, attrs, strings)
		if err != nil {
			return nil, err
		}
		node = ast.NewOr(node, right)
	}
	return node, nil
}

func convertAnd(a *AndExpr, attrs *attributes.Table, strings *strtable.Table) (*ast.Node, error) {
	node, err := convertNot(a.Left, attrs, strings)
	if err != nil {
		return nil, err
	}
	for _, tail := range a.Rest {
		right, err := convertNot(tail.Right, attrs, strings)
		if err != nil {
			return nil, err
		}
		node = ast.NewAnd(node, right)
	}
	return node, nil
}

func convertNot(n *NotExpr, attrs *attributes.Table, strings *strtable.Table) (*ast.Node, error) {
	node, err := convertAtom(n.Atom, attrs, strings)
	if err != nil {
		return nil, err
	}
	if len(n.Negations)%2 == 1 {
		return ast.NewNot(node), nil
	}
	return node, nil
}

func convertAtom(a *Atom, attrs *attributes.Table, strings *strtable.Table) (*ast.Node, error) {
	switch {
	case a.Paren != nil:
		return convertOr(a.Paren, attrs, strings)
	case a.Swapped != nil:
		return convertSwapped(a.Swapped, attrs)
	default:
		return convertPredicate(a.Predicate, attrs, strings)
	}
}

// convertSwapped handles the literal-first comparison form ("15 < price")
// by flipping the operator and re-expressing it as the equivalent
// identifier-first comparison ("price > 15").
func convertSwapped(s *SwappedComparisonAST, attrs *attributes.Table) (*ast.Node, error) {
	value, err := numericComparisonValue(s.Value)
	if err != nil {
		return nil, err
	}
	p, err := predicates.NewComparison(attrs, s.Ident, flipComparisonOp(s.Op), value)
	if err != nil {
		return nil, wrapTypeError(err)
	}
	return ast.NewValue(p), nil
}

func convertPredicate(p *PredicateAST, attrs *attributes.Table, strings *strtable.Table) (*ast.Node, error) {
	if p.Tail == nil {
		pred, err := predicates.NewVariable(attrs, p.Ident)
		if err != nil {
			return nil, wrapTypeError(err)
		}
		return ast.NewValue(pred), nil
	}

	tail := p.Tail
	switch {
	case tail.Null != nil:
		pred, err := predicates.NewNull(attrs, p.Ident, nullOpOf(tail.Null))
		if err != nil {
			return nil, wrapTypeError(err)
		}
		return ast.NewValue(pred), nil

	case tail.Comparison != nil:
		value, err := numericComparisonValue(tail.Comparison.Value)
		if err != nil {
			return nil, err
		}
		pred, err := predicates.NewComparison(attrs, p.Ident, comparisonOpOf(tail.Comparison.Op), value)
		if err != nil {
			return nil, wrapTypeError(err)
		}
		return ast.NewValue(pred), nil

	case tail.Equality != nil:
		value, err := scalarEqualityValue(tail.Equality.Value, strings)
		if err != nil {
			return nil, err
		}
		pred, err := predicates.NewEquality(attrs, p.Ident, equalityOpOf(tail.Equality.Op), value)
		if err != nil {
			return nil, wrapTypeError(err)
		}
		return ast.NewValue(pred), nil

	case tail.Set != nil:
		literal, err := listLiteralOf(tail.Set.List, strings)
		if err != nil {
			return nil, err
		}
		pred, err := predicates.NewSet(attrs, p.Ident, setOpOf(tail.Set.Op), literal)
		if err != nil {
			return nil, wrapTypeError(err)
		}
		return ast.NewValue(pred), nil

	default: // tail.List != nil
		literal, err := listLiteralOf(tail.List.List, strings)
		if err != nil {
			return nil, err
		}
		pred, err := predicates.NewList(attrs, p.Ident, listOpOf(tail.List.Op), literal)
		if err != nil {
			return nil, wrapTypeError(err)
		}
		return ast.NewValue(pred), nil
	}
}

func wrapTypeError(err error) error {
	return ParseError{Kind: "IncompatibleType", Message: err.Error()}
}

func nullOpOf(n *NullTail) predicates.NullOp {
	switch {
	case n.IsNotNull:
		return predicates.IsNotNull
	case n.IsEmpty:
		return predicates.IsEmpty
	case n.IsNotEmpty:
		return predicates.IsNotEmpty
	default: // IsNull
		return predicates.IsNull
	}
}

func comparisonOpOf(op string) predicates.ComparisonOp {
	switch op {
	case "<":
		return predicates.LessThan
	case "<=":
		return predicates.LessThanEqual
	case ">":
		return predicates.GreaterThan
	default: // ">="
		return predicates.GreaterThanEqual
	}
}

// flipComparisonOp reverses a comparison operator so that "15 < price"
// becomes the equivalent "price > 15".
func flipComparisonOp(op string) predicates.ComparisonOp {
	switch op {
	case "<":
		return predicates.GreaterThan
	case "<=":
		return predicates.GreaterThanEqual
	case ">":
		return predicates.LessThan
	default: // ">="
		return predicates.LessThanEqual
	}
}

func equalityOpOf(op string) predicates.EqualityOp {
	if op == "<>" {
		return predicates.NotEqual
	}
	return predicates.Equal
}

func setOpOf(op string) predicates.SetOp {
	if op == "not in" {
		return predicates.NotIn
	}
	return predicates.In
}

// listOpOf maps surface syntax to a ListOp. NotAllOf has no case here: it
// is never typed directly, only reached by zero-suppression negating
// AllOf (see ast.Node.zeroSuppress).
func listOpOf(op string) predicates.ListOp {
	switch op {
	case "none of":
		return predicates.NoneOf
	case "all of":
		return predicates.AllOf
	default: // "one of"
		return predicates.OneOf
	}
}

func numericComparisonValue(n *NumericLiteral) (predicates.ComparisonValue, error) {
	if n.Float != nil {
		return predicates.FloatComparisonValue(decimal.NewFromFloat(*n.Float)), nil
	}
	return predicates.IntComparisonValue(*n.Int), nil
}

func scalarEqualityValue(s *ScalarLiteral, table *strtable.Table) (predicates.EqualityValue, error) {
	switch {
	case s.Float != nil:
		return predicates.FloatEqualityValue(decimal.NewFromFloat(*s.Float)), nil
	case s.Int != nil:
		return predicates.IntEqualityValue(*s.Int), nil
	default:
		return predicates.StringEqualityValue(table.GetOrIntern(unquote(*s.Str))), nil
	}
}

// listLiteralOf builds a ListLiteral from a parsed list, rejecting empty
// and mixed-kind lists. Empty is structurally impossible from the
// grammar (at least one item is required), but mixed int/string lists
// are a semantic error the grammar alone cannot catch.
func listLiteralOf(list *ListLiteralAST, table *strtable.Table) (predicates.ListLiteral, error) {
	items := list.Bracketed
	if items == nil {
		items = list.Rounded
	}
	if len(items) == 0 {
		return predicates.ListLiteral{}, ParseError{Kind: "EmptyListLiteral", Message: "list literal must contain at least one element"}
	}

	isString := items[0].Str != nil
	if isString {
		ids := make([]uint32, 0, len(items))
		for _, item := range items {
			if item.Str == nil {
				return predicates.ListLiteral{}, ParseError{Kind: "MixedListLiteral", Message: "list literal mixes string and integer elements"}
			}
			ids = append(ids, table.GetOrIntern(unquote(*item.Str)))
		}
		return predicates.StringListLiteral(ids), nil
	}

	ints := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Int == nil {
			return predicates.ListLiteral{}, ParseError{Kind: "MixedListLiteral", Message: "list literal mixes string and integer elements"}
		}
		ints = append(ints, *item.Int)
	}
	return predicates.IntListLiteral(ints), nil
}

// unquote strips the surrounding quote characters a String token carries
// and resolves backslash escapes, which only ever escape the next rune
// verbatim in this grammar (no \n/\t expansion).
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(body))
	escaped := false
	for _, r := range body {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
