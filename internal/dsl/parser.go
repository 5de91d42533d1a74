// Package dsl parses the textual boolean expression language subscriptions
// are written in into an optimized ast.OptimizedNode ready for insertion
// into an A-Tree, resolving every identifier against an attributes.Table
// and interning every string literal against a strtable.Table as it goes.
package dsl

import (
	"fmt"

	"github.com/JrodM/a-tree-go/internal/ast"
	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/strtable"
)

// Parse compiles expression text into an optimized, NOT-free AST. attrs
// resolves identifiers and their kinds; strings interns every string
// literal the expression mentions, so the returned predicates compare
// against the same ids the target Event was built with.
func Parse(attrs *attributes.Table, strings *strtable.Table, text string) (*ast.OptimizedNode, error) {
	parsed, err := exprParser.ParseString("", text)
	if err != nil {
		return nil, wrapSyntaxError(text, err)
	}

	node, err := convertExpr(parsed, attrs, strings)
	if err != nil {
		return nil, err
	}

	return node.Optimize(), nil
}

// wrapSyntaxError reports a lexer or grammar failure as a ParseError,
// keeping participle's own line:column position in the message.
func wrapSyntaxError(text string, err error) error {
	return ParseError{
		Kind:    "Syntax",
		Message: fmt.Sprintf("%v (input: %q)", err, text),
	}
}
