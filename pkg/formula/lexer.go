package formula

// Lexer tokenizes a formula string.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// atEOF reports whether the whole input has been consumed. A literal NUL byte
// inside the input is not EOF.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) currentPos() Position {
	return Position{Offset: l.pos, Column: l.pos + 1}
}

// NextToken returns the next token. After EOF every call returns EOF again.
func (l *Lexer) NextToken() Token {
	pos := l.currentPos()

	switch {
	case l.atEOF():
		return Token{Type: TOKEN_EOF, Pos: pos}
	case isUpper(l.ch):
		start := l.pos
		l.readChar()
		for !l.atEOF() && isLower(l.ch) {
			l.readChar()
		}
		return Token{Type: TOKEN_SYMBOL, Literal: l.input[start:l.pos], Pos: pos}
	case isDigit(l.ch):
		start := l.pos
		for !l.atEOF() && isDigit(l.ch) {
			l.readChar()
		}
		return Token{Type: TOKEN_COUNT, Literal: l.input[start:l.pos], Pos: pos}
	case isLower(l.ch):
		start := l.pos
		for !l.atEOF() && isLower(l.ch) {
			l.readChar()
		}
		return Token{Type: TOKEN_LOWER, Literal: l.input[start:l.pos], Pos: pos}
	default:
		tok := Token{Type: TOKEN_ILLEGAL, Literal: string(l.ch), Pos: pos}
		l.readChar()
		return tok
	}
}

// Tokenize returns all tokens up to and including EOF or the first ILLEGAL token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF || tok.Type == TOKEN_ILLEGAL {
			return tokens
		}
	}
}

func isUpper(ch byte) bool {
	return 'A' <= ch && ch <= 'Z'
}

func isLower(ch byte) bool {
	return 'a' <= ch && ch <= 'z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
