package lexer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reIdentifier = regexp.MustCompile(`^[_\d\w]+`)
var reNumber = regexp.MustCompile(`^[0-9]+`)

type Lexer struct {
	chunk     string // source code, kept whole for diagnostics
	chunkName string // source name
	pos       int    // byte offset of the next unread byte
	line      int    // current line number
	col       int    // current column, in bytes
}

func NewLexer(chunk, chunkName string) *Lexer {
	return &Lexer{chunk, chunkName, 0, 1, 1}
}

// Tokenize scans the whole chunk. The returned stream always ends with
// a single TOKEN_EOF.
func Tokenize(chunk, chunkName string) ([]Token, error) {
	lexer := NewLexer(chunk, chunkName)
	tokens := make([]Token, 0, 16)
	for {
		token, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Kind == TOKEN_EOF {
			return tokens, nil
		}
	}
}

func (self *Lexer) NextToken() (Token, error) {
	if err := self.skipWhiteSpaces(); err != nil {
		return Token{}, err
	}

	line, col, offset := self.line, self.col, self.pos
	if self.pos >= len(self.chunk) {
		return Token{Kind: TOKEN_EOF, Line: line, Col: col, Offset: offset}, nil
	}

	c := self.chunk[self.pos]
	switch c {
	case ';', '(', ')', '{', '}', '+', '-', '*', '/':
		return self.reserved(string(c), line, col, offset), nil
	case '=':
		if self.test("==") {
			return self.reserved("==", line, col, offset), nil
		}
		return self.reserved("=", line, col, offset), nil
	case '!':
		if self.test("!=") {
			return self.reserved("!=", line, col, offset), nil
		}
		return Token{}, self.errorf("unexpected symbol near %q", c)
	case '<':
		if self.test("<=") {
			return self.reserved("<=", line, col, offset), nil
		}
		return self.reserved("<", line, col, offset), nil
	case '>':
		if self.test(">=") {
			return self.reserved(">=", line, col, offset), nil
		}
		return self.reserved(">", line, col, offset), nil
	}

	if isDigit(c) {
		text := self.scan(reNumber)
		val, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Token{}, self.errorAt(line, col, "number literal out of range: %s", text)
		}
		return Token{Kind: TOKEN_NUMBER, Text: text, Val: val, Line: line, Col: col, Offset: offset}, nil
	}
	if c == '_' || isLetter(c) {
		text := self.scan(reIdentifier)
		kind := TOKEN_IDENTIFIER
		if keywords[text] {
			kind = TOKEN_RESERVED
		}
		return Token{Kind: kind, Text: text, Line: line, Col: col, Offset: offset}, nil
	}

	return Token{}, self.errorf("unexpected symbol near %q", c)
}

func (self *Lexer) reserved(s string, line, col, offset int) Token {
	self.next(len(s))
	return Token{Kind: TOKEN_RESERVED, Text: s, Line: line, Col: col, Offset: offset}
}

// next advances n bytes, tracking line and column.
func (self *Lexer) next(n int) {
	for i := 0; i < n; i++ {
		if self.chunk[self.pos] == '\n' {
			self.line += 1
			self.col = 1
		} else {
			self.col += 1
		}
		self.pos += 1
	}
}

func (self *Lexer) test(s string) bool {
	return strings.HasPrefix(self.chunk[self.pos:], s)
}

func (self *Lexer) scan(re *regexp.Regexp) string {
	if token := re.FindString(self.chunk[self.pos:]); token != "" {
		self.next(len(token))
		return token
	}
	panic("unreachable!")
}

func (self *Lexer) skipWhiteSpaces() error {
	for self.pos < len(self.chunk) {
		if self.test("//") {
			self.skipComment()
		} else if self.test("/*") {
			if err := self.skipLongComment(); err != nil {
				return err
			}
		} else if isWhiteSpace(self.chunk[self.pos]) {
			self.next(1)
		} else {
			break
		}
	}
	return nil
}

func (self *Lexer) skipComment() {
	self.next(2) // skip `//`
	for self.pos < len(self.chunk) && !isNewLine(self.chunk[self.pos]) {
		self.next(1)
	}
}

func (self *Lexer) skipLongComment() error {
	idx := strings.Index(self.chunk[self.pos+2:], "*/")
	if idx < 0 {
		return self.errorf("unfinished long comment")
	}
	self.next(2 + idx + 2)
	return nil
}

func (self *Lexer) errorf(f string, a ...any) error {
	return self.errorAt(self.line, self.col, f, a...)
}

func (self *Lexer) errorAt(line, col int, f string, a ...any) error {
	return &Error{
		ChunkName: self.chunkName,
		Line:      line,
		Col:       col,
		Msg:       fmt.Sprintf(f, a...),
		chunk:     self.chunk,
	}
}

func isWhiteSpace(c byte) bool {
	switch c {
	case '\t', '\n', '\v', '\f', '\r', ' ':
		return true
	}
	return false
}

func isNewLine(c byte) bool {
	return c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
