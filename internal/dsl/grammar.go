package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes expression text. Multi-word keywords are listed
// before the bare keywords they contain ("is not null" before "not", "not
// in" before "in"), and two-character operators are listed before their
// one-character prefixes, so the simple lexer's first-match-wins scan
// never truncates a longer token. Unlike the teacher's DSL, no rule
// carries (?i): keywords and identifiers are case-sensitive throughout.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "IsNotNull", Pattern: `is not null`},
	{Name: "IsNotEmpty", Pattern: `is not empty`},
	{Name: "IsNull", Pattern: `is null`},
	{Name: "IsEmpty", Pattern: `is empty`},
	{Name: "NotIn", Pattern: `not in`},
	{Name: "OneOf", Pattern: `one of`},
	{Name: "NoneOf", Pattern: `none of`},
	{Name: "AllOf", Pattern: `all of`},
	{Name: "Keyword", Pattern: `\b(and|or|not|in|true|false)\b`},
	{Name: "Float", Pattern: `-?\d+\.\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Op", Pattern: `<=|>=|<>|&&|\|\||<|>|=|!`},
	{Name: "Punct", Pattern: `[()\[\],]`},
})

// Expr is the grammar's top-level production: an OR-chain.
type Expr struct {
	Or *OrExpr `parser:"@@"`
}

// OrExpr is a left-associative chain of AND-expressions joined by or/||.
type OrExpr struct {
	Left *AndExpr  `parser:"@@"`
	Rest []*OrTail `parser:"@@*"`
}

type OrTail struct {
	Right *AndExpr `parser:"(\"or\" | \"||\") @@"`
}

// AndExpr is a left-associative chain of NotExprs joined by and/&&.
type AndExpr struct {
	Left *NotExpr   `parser:"@@"`
	Rest []*AndTail `parser:"@@*"`
}

type AndTail struct {
	Right *NotExpr `parser:"(\"and\" | \"&&\") @@"`
}

// NotExpr is an Atom preceded by zero or more not/! markers; not/! binds
// tighter than and/or. An odd number of markers negates the atom, an even
// number (including zero) leaves it as-is — convert.go folds the count.
type NotExpr struct {
	Negations []string `parser:"@(\"not\" | \"!\")*"`
	Atom      *Atom    `parser:"@@"`
}

// Atom is a parenthesized sub-expression, a literal-first comparison
// (operand-swap form), or an identifier-first predicate.
type Atom struct {
	Paren     *OrExpr               `parser:"\"(\" @@ \")\""`
	Swapped   *SwappedComparisonAST `parser:"| @@"`
	Predicate *PredicateAST         `parser:"| @@"`
}

// SwappedComparisonAST is the "15 < price" form: a numeric literal on the
// left, normalized back into an identifier-first comparison by convert.go
// flipping the operator (a < b  ==  b > a).
type SwappedComparisonAST struct {
	Value *NumericLiteral `parser:"@@"`
	Op    string          `parser:"@(\"<=\" | \">=\" | \"<\" | \">\")"`
	Ident string          `parser:"@Ident"`
}

// PredicateAST is an identifier optionally followed by one operator tail;
// a bare identifier with no tail is a Variable (or, negated, a
// NegatedVariable) predicate.
type PredicateAST struct {
	Ident string         `parser:"@Ident"`
	Tail  *PredicateTail `parser:"@@?"`
}

type PredicateTail struct {
	Null       *NullTail       `parser:"  @@"`
	Comparison *ComparisonTail `parser:"| @@"`
	Equality   *EqualityTail   `parser:"| @@"`
	Set        *SetTail        `parser:"| @@"`
	List       *ListTail       `parser:"| @@"`
}

type NullTail struct {
	IsNull     bool `parser:"  @IsNull"`
	IsNotNull  bool `parser:"| @IsNotNull"`
	IsEmpty    bool `parser:"| @IsEmpty"`
	IsNotEmpty bool `parser:"| @IsNotEmpty"`
}

type ComparisonTail struct {
	Op    string          `parser:"@(\"<=\" | \">=\" | \"<\" | \">\")"`
	Value *NumericLiteral `parser:"@@"`
}

type EqualityTail struct {
	Op    string         `parser:"@(\"=\" | \"<>\")"`
	Value *ScalarLiteral `parser:"@@"`
}

type SetTail struct {
	Op   string          `parser:"@(\"not in\" | \"in\")"`
	List *ListLiteralAST `parser:"@@"`
}

// NotAllOf has no surface syntax: it is produced only by zero-suppression
// negating AllOf, never typed directly by a user.
type ListTail struct {
	Op   string          `parser:"@(\"one of\" | \"none of\" | \"all of\")"`
	List *ListLiteralAST `parser:"@@"`
}

// NumericLiteral is an Int or Float, the only operand kinds Comparison
// accepts.
type NumericLiteral struct {
	Float *float64 `parser:"  @Float"`
	Int   *int64   `parser:"| @Int"`
}

// ScalarLiteral is an Int, Float, or String, the operand kinds Equality
// accepts.
type ScalarLiteral struct {
	Float *float64 `parser:"  @Float"`
	Int   *int64   `parser:"| @Int"`
	Str   *string  `parser:"| @String"`
}

// ListLiteralAST is a non-empty, comma-separated, bracketed or
// parenthesized list of int or string literals.
type ListLiteralAST struct {
	Bracketed []*ListItem `parser:"  \"[\" @@ (\",\" @@)* \"]\""`
	Rounded   []*ListItem `parser:"| \"(\" @@ (\",\" @@)* \")\""`
}

type ListItem struct {
	Str *string `parser:"  @String"`
	Int *int64  `parser:"| @Int"`
}

var exprParser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
