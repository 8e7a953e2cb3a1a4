package parser

import (
	"github.com/mcc-lang/mcc/compiler/lexer"
)

// ErrKind classifies parse failures.
type ErrKind int

const (
	// ErrExpectedToken: a specific reserved token was required.
	ErrExpectedToken ErrKind = iota
	// ErrExpectedNumber: a number literal was required.
	ErrExpectedNumber
	// ErrUnexpectedEOF: the input stopped short of either of the above.
	ErrUnexpectedEOF
)

func (self ErrKind) String() string {
	switch self {
	case ErrExpectedToken:
		return "expected token"
	case ErrExpectedNumber:
		return "expected number"
	case ErrUnexpectedEOF:
		return "unexpected eof"
	}
	return "unknown"
}

// Error is a parse failure bound to the token that triggered it. The
// parse stops at the first one; no partial tree escapes.
type Error struct {
	Kind  ErrKind
	Index int         // index of the offending token in the stream
	Token lexer.Token // the offending token itself
	Msg   string

	chunk     string
	chunkName string
}

func (self *Error) Error() string {
	return lexer.PrettyError(self.chunk, self.chunkName, self.Token.Line, self.Token.Col, self.Msg)
}

// newError builds an Error for the token under the cursor. Failures at
// end of input reclassify as ErrUnexpectedEOF.
func (self *Parser) newError(kind ErrKind, msg string) *Error {
	tok := self.peek()
	if tok.Kind == lexer.TOKEN_EOF {
		kind = ErrUnexpectedEOF
	}
	return &Error{
		Kind:      kind,
		Index:     self.cursor,
		Token:     tok,
		Msg:       msg,
		chunk:     self.chunk,
		chunkName: self.chunkName,
	}
}
