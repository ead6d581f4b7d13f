package formula

import "fmt"

// TokenType identifies the kind of a lexical token.
type TokenType int

// Token types.
const (
	TOKEN_ILLEGAL TokenType = iota
	TOKEN_EOF
	TOKEN_SYMBOL // Upper-case letter followed by lower-case letters
	TOKEN_COUNT  // Run of decimal digits
	TOKEN_LOWER  // Lower-case letters not attached to a symbol
)

var tokenNames = map[TokenType]string{
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_EOF:     "EOF",
	TOKEN_SYMBOL:  "SYMBOL",
	TOKEN_COUNT:   "COUNT",
	TOKEN_LOWER:   "LOWER",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position is a location in a formula string.
type Position struct {
	Offset int // 0-based byte offset
	Column int // 1-based column
}

// IsValid returns true if the position refers to a column.
func (p Position) IsValid() bool {
	return p.Column > 0
}

// Token is a lexical token of a formula.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Literal, t.Pos.Column)
}
