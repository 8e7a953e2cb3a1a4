package interp

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mcc-lang/mcc/compiler/parser"
)

func run(t *testing.T, chunk string) int64 {
	t.Helper()
	fn, err := parser.Parse(chunk, "test.mc")
	if err != nil {
		t.Fatal(err)
	}
	val, err := Exec(fn)
	if err != nil {
		t.Fatal(err)
	}
	return val
}

func TestPrograms(t *testing.T) {
	cases := []struct {
		chunk string
		want  int64
	}{
		{"{ return 0; }", 0},
		{"{ return 42; }", 42},
		{"{ return 5+20-4; }", 21},
		{"{ return 5 * (9 - 6); }", 15},
		{"{ return (3 + 5) / 2; }", 4},
		{"{ return -10 + 20; }", 10},
		{"{ return 10 / 3; }", 3},
		{"{ return 1 == 1; }", 1},
		{"{ return 1 >= 2; }", 0},
		{"{ a = 3; b = 5 * 6 - 8; return a + b / 2; }", 14},
		{"{ a = b = 3; return a + b; }", 6},
		{"{ foo = 3; bar = 5; return foo + bar; }", 8},
		{"{ if (1) return 2; return 3; }", 2},
		{"{ if (0) return 2; return 3; }", 3},
		{"{ if (0) return 2; else return 3; return 4; }", 3},
		{"{ i = 0; while (i < 10) i = i + 1; return i; }", 10},
		{"{ sum = 0; for (i = 0; i < 10; i = i + 1) sum = sum + i; return sum; }", 45},
		{"{ for (;;) return 7; }", 7},
		{"{ ; {} return 1; }", 1},
		{"{ a = 1; }", 0},
		{"{ return q; }", 0},
	}
	for _, c := range cases {
		if got := run(t, c.chunk); got != c.want {
			t.Fatalf("%q = %d, want %d", c.chunk, got, c.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	fn, err := parser.Parse("{ return 1 / 0; }", "test.mc")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Exec(fn); err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("err %v", err)
	}
}

func TestDivisionOverflow(t *testing.T) {
	fn, err := parser.Parse("{ a = 0 - 9223372036854775807 - 1; return a / -1; }", "test.mc")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Exec(fn); err == nil || !strings.Contains(err.Error(), "division overflow") {
		t.Fatalf("err %v", err)
	}
}

func TestPersistentEnv(t *testing.T) {
	ip := New()

	fn, err := parser.ParseStmts("a = 40;", "stdin")
	if err != nil {
		t.Fatal(err)
	}
	_, returned, err := ip.Exec(fn)
	if err != nil || returned {
		t.Fatalf("returned %v err %v", returned, err)
	}

	exp, err := parser.ParseExp("a + 2", "stdin")
	if err != nil {
		t.Fatal(err)
	}
	val, err := ip.Eval(exp)
	if err != nil {
		t.Fatal(err)
	}
	if val != 42 {
		t.Fatalf("val %d", val)
	}

	fn, err = parser.ParseStmts("return a * 2;", "stdin")
	if err != nil {
		t.Fatal(err)
	}
	val, returned, err = ip.Exec(fn)
	if err != nil || !returned || val != 80 {
		t.Fatalf("val %d returned %v err %v", val, returned, err)
	}
}

func TestVars(t *testing.T) {
	ip := New()
	fn, err := parser.ParseStmts("b = 2; a = 1;", "stdin")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err = ip.Exec(fn); err != nil {
		t.Fatal(err)
	}
	want := []string{"a = 1", "b = 2"}
	if got := ip.Vars(); !reflect.DeepEqual(got, want) {
		t.Fatalf("vars %v", got)
	}
}
