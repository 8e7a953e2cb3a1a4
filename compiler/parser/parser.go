package parser

import (
	"fmt"

	. "github.com/mcc-lang/mcc/compiler/ast"
	"github.com/mcc-lang/mcc/compiler/lexer"
)

/* recursive descent parser */

// Parser consumes a finite token stream and builds one Function.
// The cursor only moves forward and locals only grows, so a failed
// parse can report exactly which token stopped it.
type Parser struct {
	chunk     string
	chunkName string
	tokens    []lexer.Token
	cursor    int

	locals   []string
	localIdx map[string]int
}

// New wraps an already lexed stream. The stream must end with exactly
// one TOKEN_EOF.
func New(chunk, chunkName string, tokens []lexer.Token) *Parser {
	return &Parser{
		chunk:     chunk,
		chunkName: chunkName,
		tokens:    tokens,
		locals:    make([]string, 0, 8),
		localIdx:  map[string]int{},
	}
}

// Parse reads a whole program: a single braced block followed by end
// of input.
func Parse(chunk, chunkName string) (*Function, error) {
	tokens, err := lexer.Tokenize(chunk, chunkName)
	if err != nil {
		return nil, err
	}
	return New(chunk, chunkName, tokens).parse()
}

// ParseStmts reads a loose statement sequence with no surrounding
// braces, the shape the repl feeds in.
func ParseStmts(chunk, chunkName string) (*Function, error) {
	tokens, err := lexer.Tokenize(chunk, chunkName)
	if err != nil {
		return nil, err
	}
	p := New(chunk, chunkName, tokens)
	stmts := make([]*Node, 0, 8)
	for !p.atEOF() {
		stmt, err := p.stmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &Function{
		Body:   &Node{Kind: NODE_BLOCK, Stmts: stmts, Line: 1},
		Locals: p.locals,
	}, nil
}

// ParseExp reads a single expression followed by end of input.
func ParseExp(chunk, chunkName string) (*Node, error) {
	tokens, err := lexer.Tokenize(chunk, chunkName)
	if err != nil {
		return nil, err
	}
	p := New(chunk, chunkName, tokens)
	exp, err := p.exp()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.newError(ErrExpectedToken, "expected end of input")
	}
	return exp, nil
}

func (self *Parser) peek() lexer.Token {
	return self.tokens[self.cursor]
}

func (self *Parser) atEOF() bool {
	return self.peek().Kind == lexer.TOKEN_EOF
}

// consume advances past the next token iff it is the reserved token op.
func (self *Parser) consume(op string) bool {
	tok := self.peek()
	if tok.Kind != lexer.TOKEN_RESERVED || tok.Text != op {
		return false
	}
	self.cursor++
	return true
}

// expect consumes the reserved token op or fails.
func (self *Parser) expect(op string) error {
	if self.consume(op) {
		return nil
	}
	return self.newError(ErrExpectedToken, fmt.Sprintf("expected '%s'", op))
}

// expectNumber consumes a number literal and yields its value.
func (self *Parser) expectNumber() (int64, error) {
	tok := self.peek()
	if tok.Kind != lexer.TOKEN_NUMBER {
		return 0, self.newError(ErrExpectedNumber, "expected a number")
	}
	self.cursor++
	return tok.Val, nil
}

// registerLocal records a variable reference. Later references of the
// same name keep the first slot.
func (self *Parser) registerLocal(name string) {
	if _, ok := self.localIdx[name]; ok {
		return
	}
	self.localIdx[name] = len(self.locals)
	self.locals = append(self.locals, name)
}
