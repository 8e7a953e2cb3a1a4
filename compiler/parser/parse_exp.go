package parser

import (
	. "github.com/mcc-lang/mcc/compiler/ast"
	"github.com/mcc-lang/mcc/compiler/lexer"
)

/*
exp        ::= assign
assign     ::= equality ['=' assign]
equality   ::= relational {('==' | '!=') relational}
relational ::= add {('<' | '<=' | '>' | '>=') add}
add        ::= mul {('+' | '-') mul}
mul        ::= unary {('*' | '/') unary}
unary      ::= ['+' | '-'] unary | primary
primary    ::= '(' exp ')' | Identifier | Number
*/
func (self *Parser) exp() (*Node, error) {
	return self.assign()
}

// assignment is right associative: a = b = 3 assigns b first
func (self *Parser) assign() (*Node, error) {
	node, err := self.equality()
	if err != nil {
		return nil, err
	}
	line := self.peek().Line
	if self.consume("=") {
		rhs, err := self.assign()
		if err != nil {
			return nil, err
		}
		node = binary(NODE_ASSIGN, node, rhs, line)
	}
	return node, nil
}

func (self *Parser) equality() (*Node, error) {
	node, err := self.relational()
	if err != nil {
		return nil, err
	}
	for {
		line := self.peek().Line
		switch {
		case self.consume("=="):
			rhs, err := self.relational()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_EQ, node, rhs, line)
		case self.consume("!="):
			rhs, err := self.relational()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_NE, node, rhs, line)
		default:
			return node, nil
		}
	}
}

// only lt and le exist in the tree: a > b parses as b < a
func (self *Parser) relational() (*Node, error) {
	node, err := self.add()
	if err != nil {
		return nil, err
	}
	for {
		line := self.peek().Line
		switch {
		case self.consume("<"):
			rhs, err := self.add()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_LT, node, rhs, line)
		case self.consume("<="):
			rhs, err := self.add()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_LE, node, rhs, line)
		case self.consume(">"):
			rhs, err := self.add()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_LT, rhs, node, line)
		case self.consume(">="):
			rhs, err := self.add()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_LE, rhs, node, line)
		default:
			return node, nil
		}
	}
}

func (self *Parser) add() (*Node, error) {
	node, err := self.mul()
	if err != nil {
		return nil, err
	}
	for {
		line := self.peek().Line
		switch {
		case self.consume("+"):
			rhs, err := self.mul()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_ADD, node, rhs, line)
		case self.consume("-"):
			rhs, err := self.mul()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_SUB, node, rhs, line)
		default:
			return node, nil
		}
	}
}

func (self *Parser) mul() (*Node, error) {
	node, err := self.unary()
	if err != nil {
		return nil, err
	}
	for {
		line := self.peek().Line
		switch {
		case self.consume("*"):
			rhs, err := self.unary()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_MUL, node, rhs, line)
		case self.consume("/"):
			rhs, err := self.unary()
			if err != nil {
				return nil, err
			}
			node = binary(NODE_DIV, node, rhs, line)
		default:
			return node, nil
		}
	}
}

func (self *Parser) unary() (*Node, error) {
	line := self.peek().Line
	if self.consume("+") {
		return self.unary()
	}
	// -x parses as 0 - x
	if self.consume("-") {
		rhs, err := self.unary()
		if err != nil {
			return nil, err
		}
		return binary(NODE_SUB, &Node{Kind: NODE_NUM, Line: line}, rhs, line), nil
	}
	return self.primary()
}

func (self *Parser) primary() (*Node, error) {
	if self.consume("(") {
		exp, err := self.exp()
		if err != nil {
			return nil, err
		}
		if err = self.expect(")"); err != nil {
			return nil, err
		}
		return exp, nil
	}

	tok := self.peek()
	if tok.Kind == lexer.TOKEN_IDENTIFIER {
		self.registerLocal(tok.Text)
		self.cursor++
		return &Node{Kind: NODE_VAR, Name: tok.Text, Line: tok.Line}, nil
	}

	val, err := self.expectNumber()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: NODE_NUM, Val: val, Line: tok.Line}, nil
}

func binary(kind NodeKind, lhs, rhs *Node, line int) *Node {
	return &Node{Kind: kind, Lhs: lhs, Rhs: rhs, Line: line}
}
