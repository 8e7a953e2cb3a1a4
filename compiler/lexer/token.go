package lexer

// token kind
const (
	TOKEN_EOF        = iota // end of input
	TOKEN_RESERVED          // punctuation and keywords
	TOKEN_IDENTIFIER        // variable name
	TOKEN_NUMBER            // integer literal
)

// keywords lex as TOKEN_RESERVED, same as punctuation.
var keywords = map[string]bool{
	"return": true,
	"if":     true,
	"else":   true,
	"while":  true,
	"for":    true,
}

// Token is one classified unit of source text.
type Token struct {
	Kind int
	Text string
	Val  int64 // decoded value, TOKEN_NUMBER only

	Line   int // 1-based
	Col    int // 1-based, in bytes
	Offset int // byte offset into the chunk
}
