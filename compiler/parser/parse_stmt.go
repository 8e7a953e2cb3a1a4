package parser

import (
	. "github.com/mcc-lang/mcc/compiler/ast"
)

// program ::= '{' compoundstmt
func (self *Parser) parse() (*Function, error) {
	if err := self.expect("{"); err != nil {
		return nil, err
	}
	body, err := self.compoundStmt()
	if err != nil {
		return nil, err
	}
	if !self.atEOF() {
		return nil, self.newError(ErrExpectedToken, "expected end of input")
	}
	return &Function{Body: body, Locals: self.locals}, nil
}

// compoundstmt ::= {stmt} '}'
//
// The opening brace is already consumed by the caller.
func (self *Parser) compoundStmt() (*Node, error) {
	line := self.peek().Line
	stmts := make([]*Node, 0, 8)
	for !self.consume("}") {
		if self.atEOF() {
			return nil, self.newError(ErrExpectedToken, "expected '}'")
		}
		stmt, err := self.stmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &Node{Kind: NODE_BLOCK, Stmts: stmts, Line: line}, nil
}

// stmt ::= 'return' exp ';'
//        | 'if' '(' exp ')' stmt ['else' stmt]
//        | 'for' '(' exprstmt [exp] ';' [exp] ')' stmt
//        | 'while' '(' exp ')' stmt
//        | '{' compoundstmt
//        | exprstmt
func (self *Parser) stmt() (*Node, error) {
	line := self.peek().Line

	if self.consume("return") {
		exp, err := self.exp()
		if err != nil {
			return nil, err
		}
		if err = self.expect(";"); err != nil {
			return nil, err
		}
		return &Node{Kind: NODE_RETURN, Lhs: exp, Line: line}, nil
	}

	if self.consume("if") {
		if err := self.expect("("); err != nil {
			return nil, err
		}
		cond, err := self.exp()
		if err != nil {
			return nil, err
		}
		if err = self.expect(")"); err != nil {
			return nil, err
		}
		then, err := self.stmt()
		if err != nil {
			return nil, err
		}
		node := &Node{Kind: NODE_IF, Cond: cond, Then: then, Line: line}
		if self.consume("else") {
			els, err := self.stmt()
			if err != nil {
				return nil, err
			}
			node.Els = els
		}
		return node, nil
	}

	if self.consume("for") {
		if err := self.expect("("); err != nil {
			return nil, err
		}
		init, err := self.exprStmt()
		if err != nil {
			return nil, err
		}
		node := &Node{Kind: NODE_FOR, Line: line}
		// a bare ';' init is no init at all, so for (;c;) s and
		// while (c) s build the same tree
		if !emptyBlock(init) {
			node.Init = init
		}
		if !self.consume(";") {
			cond, err := self.exp()
			if err != nil {
				return nil, err
			}
			if err = self.expect(";"); err != nil {
				return nil, err
			}
			node.Cond = cond
		}
		if !self.consume(")") {
			inc, err := self.exp()
			if err != nil {
				return nil, err
			}
			if err = self.expect(")"); err != nil {
				return nil, err
			}
			node.Inc = inc
		}
		then, err := self.stmt()
		if err != nil {
			return nil, err
		}
		node.Then = then
		return node, nil
	}

	// while lowers to a for with no init and no inc
	if self.consume("while") {
		if err := self.expect("("); err != nil {
			return nil, err
		}
		cond, err := self.exp()
		if err != nil {
			return nil, err
		}
		if err = self.expect(")"); err != nil {
			return nil, err
		}
		then, err := self.stmt()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NODE_FOR, Cond: cond, Then: then, Line: line}, nil
	}

	if self.consume("{") {
		return self.compoundStmt()
	}

	return self.exprStmt()
}

// exprstmt ::= [exp] ';'
//
// A bare ';' yields an empty block, so every statement slot holds a
// real node.
func (self *Parser) exprStmt() (*Node, error) {
	line := self.peek().Line
	if self.consume(";") {
		return &Node{Kind: NODE_BLOCK, Stmts: []*Node{}, Line: line}, nil
	}
	exp, err := self.exp()
	if err != nil {
		return nil, err
	}
	if err = self.expect(";"); err != nil {
		return nil, err
	}
	return &Node{Kind: NODE_EXPR_STMT, Lhs: exp, Line: line}, nil
}

func emptyBlock(node *Node) bool {
	return node.Kind == NODE_BLOCK && len(node.Stmts) == 0
}
