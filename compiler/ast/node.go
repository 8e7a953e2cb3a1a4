package ast

/*
stmt ::= 'return' exp ';'
       | 'if' '(' exp ')' stmt ['else' stmt]
       | 'for' '(' exprstmt [exp] ';' [exp] ')' stmt
       | 'while' '(' exp ')' stmt
       | '{' {stmt} '}'
       | [exp] ';'

exp ::= assign
*/

import (
	"fmt"
	"strconv"
)

// NodeKind tags a Node with the production it came from.
type NodeKind int

const (
	NODE_ADD NodeKind = iota // lhs + rhs
	NODE_SUB                 // lhs - rhs
	NODE_MUL                 // lhs * rhs
	NODE_DIV                 // lhs / rhs
	NODE_EQ                  // lhs == rhs
	NODE_NE                  // lhs != rhs
	NODE_LT                  // lhs < rhs
	NODE_LE                  // lhs <= rhs
	NODE_ASSIGN              // lhs = rhs
	NODE_NUM                 // integer literal
	NODE_VAR                 // variable reference
	NODE_EXPR_STMT           // expression statement
	NODE_RETURN              // return statement
	NODE_BLOCK               // compound statement
	NODE_IF                  // if statement
	NODE_FOR                 // for and while statements
)

var kindNames = map[NodeKind]string{
	NODE_ADD:       "add",
	NODE_SUB:       "sub",
	NODE_MUL:       "mul",
	NODE_DIV:       "div",
	NODE_EQ:        "eq",
	NODE_NE:        "ne",
	NODE_LT:        "lt",
	NODE_LE:        "le",
	NODE_ASSIGN:    "assign",
	NODE_NUM:       "num",
	NODE_VAR:       "var",
	NODE_EXPR_STMT: "exprstmt",
	NODE_RETURN:    "return",
	NODE_BLOCK:     "block",
	NODE_IF:        "if",
	NODE_FOR:       "for",
}

var kindOf = map[string]NodeKind{}

func init() {
	for kind, name := range kindNames {
		kindOf[name] = kind
	}
}

func (self NodeKind) String() string {
	name, ok := kindNames[self]
	if !ok {
		return "unknown"
	}
	return name
}

// NodeKind serializes as its name, so dumped trees stay readable and
// queryable and survive renumbering of the constants.
func (self NodeKind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(self.String())), nil
}

func (self *NodeKind) UnmarshalJSON(data []byte) error {
	name, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	kind, ok := kindOf[name]
	if !ok {
		return fmt.Errorf("unknown node kind %q", name)
	}
	*self = kind
	return nil
}

// Node is one AST vertex. Binary kinds use Lhs and Rhs; the compound
// kinds carry named children. Unused fields stay nil and are omitted
// from dumps.
type Node struct {
	Kind NodeKind `json:"k"`
	Line int      `json:"ln,omitempty"`

	Lhs *Node `json:"l,omitempty"`
	Rhs *Node `json:"r,omitempty"`

	// NODE_IF and NODE_FOR
	Cond *Node `json:"c,omitempty"`
	Then *Node `json:"t,omitempty"`
	Els  *Node `json:"e,omitempty"`
	Init *Node `json:"i,omitempty"`
	Inc  *Node `json:"u,omitempty"`

	// NODE_BLOCK
	Stmts []*Node `json:"s,omitempty"`

	Val  int64  `json:"v,omitempty"` // NODE_NUM
	Name string `json:"n,omitempty"` // NODE_VAR
}

// Function is one parsed function body plus the variables it
// references, in order of first appearance.
type Function struct {
	Body   *Node    `json:"b"`
	Locals []string `json:"lv,omitempty"`
}
