package lexer

import (
	"fmt"
	"strings"
)

// Error is a lexical error bound to a source position.
type Error struct {
	ChunkName string
	Line      int
	Col       int
	Msg       string

	chunk string
}

func (self *Error) Error() string {
	return PrettyError(self.chunk, self.ChunkName, self.Line, self.Col, self.Msg)
}

// PrettyError renders a three line diagnostic: a header with the
// position, the offending source line, and a caret under the column.
//
//	demo.mc:2:9: expected ';'
//	   2 | a = 1 + 2
//	     |         ^
func PrettyError(chunk, chunkName string, line, col int, msg string) string {
	lines := strings.Split(chunk, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	src := strings.TrimSuffix(lines[line-1], "\r")
	if col < 1 {
		col = 1
	}
	if col > len(src)+1 {
		col = len(src) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d: %s\n", chunkName, line, col, msg)
	fmt.Fprintf(&sb, "%4d | %s\n", line, src)
	fmt.Fprintf(&sb, "     | %s^", strings.Repeat(" ", col-1))
	return sb.String()
}
