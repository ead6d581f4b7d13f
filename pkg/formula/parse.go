package formula

import (
	"errors"
	"fmt"
	"strconv"
)

// Parse validates raw against lookup and returns the aggregated formula.
//
// Every character must be an ASCII letter or digit and the first one must be
// upper-case. A symbol is an upper-case letter followed by lower-case letters
// and must exist in lookup. A count is a run of digits directly after a
// symbol, without a leading zero. Scanning stops at the first violation; the
// returned error then matches ErrInvalidFormula and is a *SyntaxError or an
// *UnknownElementError.
func Parse(raw string, lookup Lookup) (*Formula, error) {
	if raw == "" {
		return nil, &SyntaxError{Message: ErrMsgEmpty}
	}

	l := NewLexer(raw)
	agg := NewAggregator()

	tok := l.NextToken()
	if tok.Type != TOKEN_SYMBOL && tok.Type != TOKEN_ILLEGAL {
		return nil, &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(ErrMsgLeadingChar, raw[:1])}
	}

	for tok.Type != TOKEN_EOF {
		switch tok.Type {
		case TOKEN_SYMBOL:
			sym := Symbol(tok.Literal)
			if _, ok := lookup.Lookup(sym); !ok {
				return nil, &UnknownElementError{Pos: tok.Pos, Symbol: sym}
			}

			count := Implicit()
			next := l.NextToken()
			if next.Type == TOKEN_COUNT {
				c, err := parseCount(next)
				if err != nil {
					return nil, err
				}
				count = c
				next = l.NextToken()
			}

			if err := agg.Accumulate(sym, count); err != nil {
				var se *SyntaxError
				if errors.As(err, &se) {
					se.Pos = tok.Pos
				}
				return nil, err
			}
			tok = next
		case TOKEN_COUNT:
			return nil, &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(ErrMsgOrphanCount, tok.Literal)}
		case TOKEN_LOWER:
			return nil, &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(ErrMsgOrphanLower, tok.Literal)}
		case TOKEN_ILLEGAL:
			return nil, &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(ErrMsgIllegalChar, tok.Literal)}
		default:
			return nil, &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(ErrMsgUnexpectedToken, tok.Type)}
		}
	}

	return agg.Formula(), nil
}

// Valid reports whether raw parses against lookup.
func Valid(raw string, lookup Lookup) bool {
	_, err := Parse(raw, lookup)
	return err == nil
}

func parseCount(tok Token) (Count, error) {
	if tok.Literal[0] == '0' {
		return Count{}, &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(ErrMsgLeadingZero, tok.Literal)}
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil || n > MaxCount {
		return Count{}, &SyntaxError{Pos: tok.Pos, Message: fmt.Sprintf(ErrMsgCountOverflow, tok.Literal, MaxCount)}
	}
	return Explicit(n), nil
}
