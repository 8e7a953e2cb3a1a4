package compiler

import (
	"testing"

	"github.com/mcc-lang/mcc/compiler/ast"
)

func TestCompile(t *testing.T) {
	fn, err := Compile("{ return 1 + 2; }", "demo.mc")
	if err != nil {
		t.Fatal(err)
	}
	ret := fn.Body.Stmts[0]
	if ret.Kind != ast.NODE_RETURN || ret.Lhs.Kind != ast.NODE_ADD {
		t.Fatalf("tree %v", fn.Body)
	}

	if _, err = Compile("{ return 1 + ; }", "demo.mc"); err == nil {
		t.Fatal("want parse error")
	}
}

func TestCompileOptimized(t *testing.T) {
	fn, err := CompileOptimized("{ return 1 + 2 * 3; }", "demo.mc")
	if err != nil {
		t.Fatal(err)
	}
	ret := fn.Body.Stmts[0]
	if ret.Lhs.Kind != ast.NODE_NUM || ret.Lhs.Val != 7 {
		t.Fatalf("folded %v", ret.Lhs)
	}
}
