package compiler

import (
	"github.com/mcc-lang/mcc/compiler/ast"
	"github.com/mcc-lang/mcc/compiler/parser"
)

// Compile parses chunk into its ast. chunkName labels error messages,
// usually the file path.
func Compile(chunk, chunkName string) (*ast.Function, error) {
	return parser.Parse(chunk, chunkName)
}

// CompileOptimized is Compile plus constant folding.
func CompileOptimized(chunk, chunkName string) (*ast.Function, error) {
	fn, err := parser.Parse(chunk, chunkName)
	if err != nil {
		return nil, err
	}
	fn.Body = parser.Optimize(fn.Body)
	return fn, nil
}
