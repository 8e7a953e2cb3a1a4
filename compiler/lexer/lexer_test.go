package lexer

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenKinds(t *testing.T) {
	tokens, err := Tokenize("{ a = 1 + 23; }", "")
	if err != nil {
		t.Fatal(err)
	}
	kinds := []int{}
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	expect := []int{
		TOKEN_RESERVED, TOKEN_IDENTIFIER, TOKEN_RESERVED, TOKEN_NUMBER,
		TOKEN_RESERVED, TOKEN_NUMBER, TOKEN_RESERVED, TOKEN_RESERVED,
		TOKEN_EOF,
	}
	if !reflect.DeepEqual(kinds, expect) {
		t.Fatalf("kinds %v", kinds)
	}
	if tokens[5].Val != 23 {
		t.Fatalf("number value %d", tokens[5].Val)
	}
}

func TestTwoCharOperators(t *testing.T) {
	tokens, err := Tokenize("a <= b == c != d >= e", "")
	if err != nil {
		t.Fatal(err)
	}
	texts := []string{}
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	expect := []string{"a", "<=", "b", "==", "c", "!=", "d", ">=", "e", ""}
	if !reflect.DeepEqual(texts, expect) {
		t.Fatalf("texts %v", texts)
	}
}

func TestKeywords(t *testing.T) {
	tokens, err := Tokenize("return returned", "")
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Kind != TOKEN_RESERVED {
		t.Fatalf("keyword kind %d", tokens[0].Kind)
	}
	if tokens[1].Kind != TOKEN_IDENTIFIER {
		t.Fatalf("identifier kind %d", tokens[1].Kind)
	}
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("a = 1;\n  b = 2;", "")
	if err != nil {
		t.Fatal(err)
	}
	b := tokens[4]
	if b.Text != "b" {
		t.Fatalf("token %q", b.Text)
	}
	if b.Line != 2 || b.Col != 3 || b.Offset != 9 {
		t.Fatalf("position %d:%d offset %d", b.Line, b.Col, b.Offset)
	}
}

func TestComments(t *testing.T) {
	tokens, err := Tokenize("a // one\n/* two\nlines */ b", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("token count %d", len(tokens))
	}
	if tokens[1].Text != "b" || tokens[1].Line != 3 {
		t.Fatalf("token %q at line %d", tokens[1].Text, tokens[1].Line)
	}
}

func TestLexErrors(t *testing.T) {
	bad := []string{"a @ b", "a ! b", "/* no end", "99999999999999999999"}
	for _, chunk := range bad {
		if _, err := Tokenize(chunk, ""); err == nil {
			t.Fatalf("expect error for %q", chunk)
		}
	}
}

func TestPrettyError(t *testing.T) {
	_, err := Tokenize("a = 1;\nb = @;", "demo.mc")
	if err == nil {
		t.Fatal("expect error")
	}
	le, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if le.Line != 2 || le.Col != 5 {
		t.Fatalf("position %d:%d", le.Line, le.Col)
	}
	s := err.Error()
	if !strings.HasPrefix(s, "demo.mc:2:5:") {
		t.Fatalf("header %q", s)
	}
	if !strings.Contains(s, "   2 | b = @;") {
		t.Fatalf("source line %q", s)
	}
	if !strings.HasSuffix(s, "|     ^") {
		t.Fatalf("caret %q", s)
	}
}
