package parser

import (
	. "github.com/mcc-lang/mcc/compiler/ast"
)

// Optimize folds constant subexpressions bottom-up and returns the
// rewritten tree. It runs as its own pass so freshly parsed trees keep
// their grammar shape.
func Optimize(node *Node) *Node {
	if node == nil {
		return nil
	}
	node.Lhs = Optimize(node.Lhs)
	node.Rhs = Optimize(node.Rhs)
	node.Cond = Optimize(node.Cond)
	node.Then = Optimize(node.Then)
	node.Els = Optimize(node.Els)
	node.Init = Optimize(node.Init)
	node.Inc = Optimize(node.Inc)
	for i := range node.Stmts {
		node.Stmts[i] = Optimize(node.Stmts[i])
	}
	switch node.Kind {
	case NODE_ADD, NODE_SUB, NODE_MUL, NODE_DIV:
		return optimizeArithBinaryOp(node)
	case NODE_EQ, NODE_NE, NODE_LT, NODE_LE:
		return optimizeRelationalOp(node)
	}
	return node
}

func optimizeArithBinaryOp(node *Node) *Node {
	x, y, ok := constOperands(node)
	if !ok {
		return node
	}
	switch node.Kind {
	case NODE_ADD:
		return &Node{Kind: NODE_NUM, Val: x + y, Line: node.Line}
	case NODE_SUB:
		return &Node{Kind: NODE_NUM, Val: x - y, Line: node.Line}
	case NODE_MUL:
		return &Node{Kind: NODE_NUM, Val: x * y, Line: node.Line}
	case NODE_DIV:
		// x / 0 keeps its runtime error
		if y != 0 {
			return &Node{Kind: NODE_NUM, Val: x / y, Line: node.Line}
		}
	}
	return node
}

func optimizeRelationalOp(node *Node) *Node {
	x, y, ok := constOperands(node)
	if !ok {
		return node
	}
	switch node.Kind {
	case NODE_EQ:
		return &Node{Kind: NODE_NUM, Val: b2i(x == y), Line: node.Line}
	case NODE_NE:
		return &Node{Kind: NODE_NUM, Val: b2i(x != y), Line: node.Line}
	case NODE_LT:
		return &Node{Kind: NODE_NUM, Val: b2i(x < y), Line: node.Line}
	case NODE_LE:
		return &Node{Kind: NODE_NUM, Val: b2i(x <= y), Line: node.Line}
	}
	return node
}

func constOperands(node *Node) (int64, int64, bool) {
	if node.Lhs == nil || node.Rhs == nil {
		return 0, 0, false
	}
	if node.Lhs.Kind != NODE_NUM || node.Rhs.Kind != NODE_NUM {
		return 0, 0, false
	}
	return node.Lhs.Val, node.Rhs.Val, true
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
