package codegen

import (
	"fmt"
	"io"

	. "github.com/mcc-lang/mcc/compiler/ast"
)

// generator carries the output writer and the frame layout of the one
// function being emitted.
type generator struct {
	o      io.Writer
	slot   map[string]int // local name -> frame slot
	labels int
}

// Gen emits x86-64 assembly (AT&T syntax) for one function body. The
// program entry is main; the function's return value becomes the
// process exit status. Locals start at zero, like the evaluator's. A
// body that never returns produces 0.
func Gen(fn *Function, o io.Writer) error {
	g := &generator{o: o, slot: map[string]int{}}
	for i, name := range fn.Locals {
		g.slot[name] = i
	}

	g.emit(".global main\n")
	g.emit("main:\n")

	g.emiti("push %%rbp\n")
	g.emiti("mov %%rsp, %%rbp\n")
	if n := frameSize(len(fn.Locals)); n > 0 {
		g.emiti("sub $%d, %%rsp\n", n)
	}
	for i := range fn.Locals {
		g.emiti("movq $0, %d(%%rbp)\n", -8*(i+1))
	}

	if err := cgStmt(g, fn.Body); err != nil {
		return err
	}

	g.emiti("mov $0, %%rax\n")
	g.emit(".Lreturn:\n")
	g.emiti("mov %%rbp, %%rsp\n")
	g.emiti("pop %%rbp\n")
	g.emiti("ret\n")
	return nil
}

// frameSize rounds the locals area up to 16 bytes, keeping rsp aligned
// across the body.
func frameSize(locals int) int {
	return (8*locals + 15) / 16 * 16
}

func (g *generator) emit(s string, args ...any) {
	fmt.Fprintf(g.o, s, args...)
}

func (g *generator) emiti(s string, args ...any) {
	g.emit("  "+s, args...)
}

func (g *generator) nextLabel() int {
	g.labels++
	return g.labels
}

func cgStmt(g *generator, node *Node) error {
	switch node.Kind {
	case NODE_BLOCK:
		for _, stmt := range node.Stmts {
			if err := cgStmt(g, stmt); err != nil {
				return err
			}
		}
		return nil

	case NODE_EXPR_STMT:
		if err := cgExp(g, node.Lhs); err != nil {
			return err
		}
		// drop the statement value
		g.emiti("pop %%rax\n")
		return nil

	case NODE_RETURN:
		if err := cgExp(g, node.Lhs); err != nil {
			return err
		}
		g.emiti("pop %%rax\n")
		g.emiti("jmp .Lreturn\n")
		return nil

	case NODE_IF:
		n := g.nextLabel()
		if err := cgExp(g, node.Cond); err != nil {
			return err
		}
		g.emiti("pop %%rax\n")
		g.emiti("cmp $0, %%rax\n")
		if node.Els == nil {
			g.emiti("je .Lend%d\n", n)
			if err := cgStmt(g, node.Then); err != nil {
				return err
			}
			g.emit(".Lend%d:\n", n)
			return nil
		}
		g.emiti("je .Lelse%d\n", n)
		if err := cgStmt(g, node.Then); err != nil {
			return err
		}
		g.emiti("jmp .Lend%d\n", n)
		g.emit(".Lelse%d:\n", n)
		if err := cgStmt(g, node.Els); err != nil {
			return err
		}
		g.emit(".Lend%d:\n", n)
		return nil

	case NODE_FOR:
		n := g.nextLabel()
		if node.Init != nil {
			if err := cgStmt(g, node.Init); err != nil {
				return err
			}
		}
		g.emit(".Lbegin%d:\n", n)
		if node.Cond != nil {
			if err := cgExp(g, node.Cond); err != nil {
				return err
			}
			g.emiti("pop %%rax\n")
			g.emiti("cmp $0, %%rax\n")
			g.emiti("je .Lend%d\n", n)
		}
		if err := cgStmt(g, node.Then); err != nil {
			return err
		}
		if node.Inc != nil {
			if err := cgExp(g, node.Inc); err != nil {
				return err
			}
			g.emiti("pop %%rax\n")
		}
		g.emiti("jmp .Lbegin%d\n", n)
		g.emit(".Lend%d:\n", n)
		return nil
	}

	return fmt.Errorf("line %d: not a statement: %s", node.Line, node.Kind)
}

// cgExp emits code leaving the expression value on the stack.
func cgExp(g *generator, node *Node) error {
	switch node.Kind {
	case NODE_NUM:
		g.emiti("push $%d\n", node.Val)
		return nil

	case NODE_VAR:
		if err := cgAddr(g, node); err != nil {
			return err
		}
		g.emiti("pop %%rax\n")
		g.emiti("mov (%%rax), %%rax\n")
		g.emiti("push %%rax\n")
		return nil

	case NODE_ASSIGN:
		if err := cgAddr(g, node.Lhs); err != nil {
			return err
		}
		if err := cgExp(g, node.Rhs); err != nil {
			return err
		}
		g.emiti("pop %%rdi\n")
		g.emiti("pop %%rax\n")
		g.emiti("mov %%rdi, (%%rax)\n")
		g.emiti("push %%rdi\n")
		return nil
	}

	if node.Lhs == nil || node.Rhs == nil {
		return fmt.Errorf("line %d: not an expression: %s", node.Line, node.Kind)
	}
	if err := cgExp(g, node.Lhs); err != nil {
		return err
	}
	if err := cgExp(g, node.Rhs); err != nil {
		return err
	}
	g.emiti("pop %%rdi\n")
	g.emiti("pop %%rax\n")

	switch node.Kind {
	case NODE_ADD:
		g.emiti("add %%rdi, %%rax\n")
	case NODE_SUB:
		g.emiti("sub %%rdi, %%rax\n")
	case NODE_MUL:
		g.emiti("imul %%rdi, %%rax\n")
	case NODE_DIV:
		g.emiti("cqo\n")
		g.emiti("idiv %%rdi\n")
	case NODE_EQ:
		g.emiti("cmp %%rdi, %%rax\n")
		g.emiti("sete %%al\n")
		g.emiti("movzb %%al, %%rax\n")
	case NODE_NE:
		g.emiti("cmp %%rdi, %%rax\n")
		g.emiti("setne %%al\n")
		g.emiti("movzb %%al, %%rax\n")
	case NODE_LT:
		g.emiti("cmp %%rdi, %%rax\n")
		g.emiti("setl %%al\n")
		g.emiti("movzb %%al, %%rax\n")
	case NODE_LE:
		g.emiti("cmp %%rdi, %%rax\n")
		g.emiti("setle %%al\n")
		g.emiti("movzb %%al, %%rax\n")
	default:
		return fmt.Errorf("line %d: not an expression: %s", node.Line, node.Kind)
	}

	g.emiti("push %%rax\n")
	return nil
}

// cgAddr pushes the address of an lvalue.
func cgAddr(g *generator, node *Node) error {
	if node.Kind != NODE_VAR {
		return fmt.Errorf("line %d: not an lvalue", node.Line)
	}
	idx, ok := g.slot[node.Name]
	if !ok {
		return fmt.Errorf("line %d: no slot for variable %q", node.Line, node.Name)
	}
	g.emiti("lea %d(%%rbp), %%rax\n", -8*(idx+1))
	g.emiti("push %%rax\n")
	return nil
}
