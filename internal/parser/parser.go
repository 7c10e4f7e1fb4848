package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"ssaform/internal/ir"
)

var grammarParser = participle.MustBuild[Program](
	participle.Lexer(sourceLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// ParseError wraps a participle syntax error so the cmd/ssac front end can
// recover its position for caret formatting; kept distinct from ssa.Error since a syntax
// failure and an SSA construction failure are different phases with
// different callers.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads source under the given name and returns the single function
// it declares as an ir.Function, ready for ssa.Transform.
func Parse(name, source string) (*ir.Function, error) {
	prog, err := grammarParser.ParseString(name, source)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	fn, err := Build(prog)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return fn, nil
}
