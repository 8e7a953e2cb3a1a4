package parser

import (
	"reflect"
	"strings"
	"testing"

	. "github.com/mcc-lang/mcc/compiler/ast"
	"github.com/mcc-lang/mcc/compiler/lexer"
)

func parse(t *testing.T, chunk string) *Function {
	t.Helper()
	fn, err := Parse(chunk, "test.mc")
	if err != nil {
		t.Fatal(err)
	}
	return fn
}

func parseExp(t *testing.T, chunk string) *Node {
	t.Helper()
	exp, err := ParseExp(chunk, "test.mc")
	if err != nil {
		t.Fatal(err)
	}
	return exp
}

func parseErr(t *testing.T, chunk string) *Error {
	t.Helper()
	_, err := Parse(chunk, "test.mc")
	if err == nil {
		t.Fatalf("expect error for %q", chunk)
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	return pe
}

func TestPrecedence(t *testing.T) {
	node := parseExp(t, "1+2*3")
	want := &Node{
		Kind: NODE_ADD, Line: 1,
		Lhs: &Node{Kind: NODE_NUM, Val: 1, Line: 1},
		Rhs: &Node{
			Kind: NODE_MUL, Line: 1,
			Lhs:  &Node{Kind: NODE_NUM, Val: 2, Line: 1},
			Rhs:  &Node{Kind: NODE_NUM, Val: 3, Line: 1},
		},
	}
	if !reflect.DeepEqual(node, want) {
		t.Fatalf("tree %+v", node)
	}

	fn := parse(t, "{ 1+2*3; }")
	stmt := fn.Body.Stmts[0]
	if stmt.Kind != NODE_EXPR_STMT || !reflect.DeepEqual(stmt.Lhs, want) {
		t.Fatalf("stmt %+v", stmt)
	}

	node = parseExp(t, "(1+2)*3")
	if node.Kind != NODE_MUL || node.Lhs.Kind != NODE_ADD {
		t.Fatalf("kinds %s, %s", node.Kind, node.Lhs.Kind)
	}
}

func TestRelationalSwap(t *testing.T) {
	if !reflect.DeepEqual(parseExp(t, "a > 1"), parseExp(t, "1 < a")) {
		t.Fatal("a > 1 should parse as 1 < a")
	}
	if !reflect.DeepEqual(parseExp(t, "a >= 1"), parseExp(t, "1 <= a")) {
		t.Fatal("a >= 1 should parse as 1 <= a")
	}
	lt := parseExp(t, "a < 1")
	if lt.Kind != NODE_LT || lt.Lhs.Name != "a" {
		t.Fatalf("tree %+v", lt)
	}
}

func TestUnary(t *testing.T) {
	neg := parseExp(t, "-x")
	if neg.Kind != NODE_SUB || neg.Lhs.Kind != NODE_NUM || neg.Lhs.Val != 0 {
		t.Fatalf("tree %+v", neg)
	}
	if neg.Rhs.Kind != NODE_VAR || neg.Rhs.Name != "x" {
		t.Fatalf("tree %+v", neg)
	}

	if parseExp(t, "+x").Kind != NODE_VAR {
		t.Fatal("+x should parse as x")
	}

	double := parseExp(t, "- -x")
	if double.Kind != NODE_SUB || double.Rhs.Kind != NODE_SUB {
		t.Fatalf("tree %+v", double)
	}
}

func TestAssignRightAssoc(t *testing.T) {
	node := parseExp(t, "a = b = 3")
	if node.Kind != NODE_ASSIGN || node.Lhs.Name != "a" {
		t.Fatalf("tree %+v", node)
	}
	inner := node.Rhs
	if inner.Kind != NODE_ASSIGN || inner.Lhs.Name != "b" || inner.Rhs.Val != 3 {
		t.Fatalf("tree %+v", inner)
	}
}

func TestLocalsOrder(t *testing.T) {
	fn := parse(t, "{ a = b; b = a; c = 1; }")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(fn.Locals, want) {
		t.Fatalf("locals %v", fn.Locals)
	}
}

func TestEmptyStmts(t *testing.T) {
	fn := parse(t, "{ ; {} }")
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("stmt count %d", len(fn.Body.Stmts))
	}
	for _, stmt := range fn.Body.Stmts {
		if stmt.Kind != NODE_BLOCK || len(stmt.Stmts) != 0 {
			t.Fatalf("stmt %+v", stmt)
		}
	}
}

func TestIfElse(t *testing.T) {
	fn := parse(t, "{ if (a) if (b) 1; else 2; }")
	outer := fn.Body.Stmts[0]
	if outer.Els != nil {
		t.Fatal("else should bind to the inner if")
	}
	inner := outer.Then
	if inner.Kind != NODE_IF || inner.Els == nil {
		t.Fatalf("tree %+v", inner)
	}
}

func TestWhileIsFor(t *testing.T) {
	w := parse(t, "{ while (x) 1; }")
	f := parse(t, "{ for (; x; ) 1; }")
	if !reflect.DeepEqual(w, f) {
		t.Fatalf("while %+v != for %+v", w.Body.Stmts[0], f.Body.Stmts[0])
	}
	node := w.Body.Stmts[0]
	if node.Kind != NODE_FOR || node.Init != nil || node.Inc != nil || node.Cond == nil {
		t.Fatalf("tree %+v", node)
	}
}

func TestForParts(t *testing.T) {
	node := parse(t, "{ for (i = 0; i < 3; i = i + 1) x = x + i; }").Body.Stmts[0]
	if node.Init == nil || node.Cond == nil || node.Inc == nil {
		t.Fatalf("tree %+v", node)
	}
	if node.Init.Kind != NODE_EXPR_STMT {
		t.Fatalf("init kind %s", node.Init.Kind)
	}

	bare := parse(t, "{ for (;;) 1; }").Body.Stmts[0]
	if bare.Init != nil || bare.Cond != nil || bare.Inc != nil || bare.Then == nil {
		t.Fatalf("tree %+v", bare)
	}
}

func TestParseStmts(t *testing.T) {
	fn, err := ParseStmts("a = 1; return a;", "stdin")
	if err != nil {
		t.Fatal(err)
	}
	if len(fn.Body.Stmts) != 2 || fn.Body.Stmts[1].Kind != NODE_RETURN {
		t.Fatalf("stmts %+v", fn.Body.Stmts)
	}
	if !reflect.DeepEqual(fn.Locals, []string{"a"}) {
		t.Fatalf("locals %v", fn.Locals)
	}
}

func TestParseExpRejectsTrailing(t *testing.T) {
	if _, err := ParseExp("1 + 2", "stdin"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseExp("1 + 2;", "stdin"); err == nil {
		t.Fatal("expect error on trailing ';'")
	}
}

func TestErrExpectedNumber(t *testing.T) {
	pe := parseErr(t, "{ a = 1 + ; }")
	if pe.Kind != ErrExpectedNumber {
		t.Fatalf("kind %s", pe.Kind)
	}
	if pe.Index != 5 {
		t.Fatalf("index %d", pe.Index)
	}
	if pe.Token.Line != 1 || pe.Token.Col != 11 {
		t.Fatalf("position %d:%d", pe.Token.Line, pe.Token.Col)
	}
}

func TestErrExpectedToken(t *testing.T) {
	pe := parseErr(t, "{ return 1 }")
	if pe.Kind != ErrExpectedToken {
		t.Fatalf("kind %s", pe.Kind)
	}
	if pe.Token.Text != "}" {
		t.Fatalf("token %q", pe.Token.Text)
	}
	if !strings.Contains(pe.Msg, "expected ';'") {
		t.Fatalf("msg %q", pe.Msg)
	}
}

func TestErrUnexpectedEOF(t *testing.T) {
	pe := parseErr(t, "{ return 1;")
	if pe.Kind != ErrUnexpectedEOF {
		t.Fatalf("kind %s", pe.Kind)
	}
	if pe.Token.Kind != lexer.TOKEN_EOF {
		t.Fatalf("token kind %d", pe.Token.Kind)
	}

	pe = parseErr(t, "{ a = ")
	if pe.Kind != ErrUnexpectedEOF {
		t.Fatalf("kind %s", pe.Kind)
	}
}

func TestErrTrailingInput(t *testing.T) {
	pe := parseErr(t, "{} }")
	if pe.Kind != ErrExpectedToken || !strings.Contains(pe.Msg, "end of input") {
		t.Fatalf("kind %s msg %q", pe.Kind, pe.Msg)
	}
}

func TestErrDiagnosticRendering(t *testing.T) {
	_, err := Parse("{\n  a = 1 + ;\n}", "demo.mc")
	if err == nil {
		t.Fatal("expect error")
	}
	s := err.Error()
	if !strings.HasPrefix(s, "demo.mc:2:11:") {
		t.Fatalf("header %q", s)
	}
	if !strings.Contains(s, "   2 |   a = 1 + ;") {
		t.Fatalf("source line %q", s)
	}
}
