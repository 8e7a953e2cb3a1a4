package interp

import (
	"fmt"
	"math"
	"sort"

	. "github.com/mcc-lang/mcc/compiler/ast"
)

// Interp is a tree walking evaluator with a persistent variable
// environment. The repl keeps one alive across inputs; one shot runs
// go through the package level Exec.
type Interp struct {
	env map[string]int64
}

func New() *Interp {
	return &Interp{env: map[string]int64{}}
}

// Exec runs fn in a fresh environment and yields its return value.
// A body that never returns yields 0.
func Exec(fn *Function) (int64, error) {
	val, _, err := New().Exec(fn)
	return val, err
}

// Exec runs one function body. Locals keep any value a previous run
// left behind; new ones start at 0. returned reports whether a return
// statement fired.
func (self *Interp) Exec(fn *Function) (val int64, returned bool, err error) {
	for _, name := range fn.Locals {
		if _, ok := self.env[name]; !ok {
			self.env[name] = 0
		}
	}
	val, returned, err = self.execStmt(fn.Body)
	if err != nil {
		return 0, false, err
	}
	if !returned {
		return 0, false, nil
	}
	return val, true, nil
}

// Eval evaluates a single expression in the persistent environment.
func (self *Interp) Eval(node *Node) (int64, error) {
	return self.evalExp(node)
}

// Vars lists the environment as "name = value" lines, sorted by name.
func (self *Interp) Vars() []string {
	names := make([]string, 0, len(self.env))
	for name := range self.env {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s = %d", name, self.env[name]))
	}
	return lines
}

func (self *Interp) execStmt(node *Node) (int64, bool, error) {
	switch node.Kind {
	case NODE_BLOCK:
		for _, stmt := range node.Stmts {
			val, returned, err := self.execStmt(stmt)
			if returned || err != nil {
				return val, returned, err
			}
		}
		return 0, false, nil

	case NODE_EXPR_STMT:
		_, err := self.evalExp(node.Lhs)
		return 0, false, err

	case NODE_RETURN:
		val, err := self.evalExp(node.Lhs)
		if err != nil {
			return 0, false, err
		}
		return val, true, nil

	case NODE_IF:
		cond, err := self.evalExp(node.Cond)
		if err != nil {
			return 0, false, err
		}
		if cond != 0 {
			return self.execStmt(node.Then)
		}
		if node.Els != nil {
			return self.execStmt(node.Els)
		}
		return 0, false, nil

	case NODE_FOR:
		if node.Init != nil {
			if _, _, err := self.execStmt(node.Init); err != nil {
				return 0, false, err
			}
		}
		for {
			if node.Cond != nil {
				cond, err := self.evalExp(node.Cond)
				if err != nil {
					return 0, false, err
				}
				if cond == 0 {
					break
				}
			}
			val, returned, err := self.execStmt(node.Then)
			if returned || err != nil {
				return val, returned, err
			}
			if node.Inc != nil {
				if _, err := self.evalExp(node.Inc); err != nil {
					return 0, false, err
				}
			}
		}
		return 0, false, nil
	}

	return 0, false, fmt.Errorf("line %d: not a statement: %s", node.Line, node.Kind)
}

func (self *Interp) evalExp(node *Node) (int64, error) {
	switch node.Kind {
	case NODE_NUM:
		return node.Val, nil

	case NODE_VAR:
		return self.env[node.Name], nil

	case NODE_ASSIGN:
		if node.Lhs.Kind != NODE_VAR {
			return 0, fmt.Errorf("line %d: not an lvalue", node.Lhs.Line)
		}
		val, err := self.evalExp(node.Rhs)
		if err != nil {
			return 0, err
		}
		self.env[node.Lhs.Name] = val
		return val, nil
	}

	if node.Lhs == nil || node.Rhs == nil {
		return 0, fmt.Errorf("line %d: not an expression: %s", node.Line, node.Kind)
	}
	x, err := self.evalExp(node.Lhs)
	if err != nil {
		return 0, err
	}
	y, err := self.evalExp(node.Rhs)
	if err != nil {
		return 0, err
	}

	switch node.Kind {
	case NODE_ADD:
		return x + y, nil
	case NODE_SUB:
		return x - y, nil
	case NODE_MUL:
		return x * y, nil
	case NODE_DIV:
		if y == 0 {
			return 0, fmt.Errorf("line %d: division by zero", node.Line)
		}
		// idiv faults on this one too
		if x == math.MinInt64 && y == -1 {
			return 0, fmt.Errorf("line %d: division overflow", node.Line)
		}
		return x / y, nil
	case NODE_EQ:
		return b2i(x == y), nil
	case NODE_NE:
		return b2i(x != y), nil
	case NODE_LT:
		return b2i(x < y), nil
	case NODE_LE:
		return b2i(x <= y), nil
	}

	return 0, fmt.Errorf("line %d: not an expression: %s", node.Line, node.Kind)
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
