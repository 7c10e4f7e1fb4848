// Package parser turns a small structured-imperative concrete syntax into
// internal/ir nodes for the ssa package to consume. It is a minimal front
// end, not a general-purpose language: enough grammar to exercise defines,
// assigns, if/else, for-loops, indexing and operators end to end.
package parser

import "github.com/alecthomas/participle/v2/lexer"

var sourceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Operator", `(==|!=|<=|>=|&&|\|\||[-+*/%<>])`, nil},
		{"Punctuation", `[{}()\[\]:;,=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
