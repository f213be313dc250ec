package calculator

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Scanner splits an expression into tokens. Characters it does not recognize
// are skipped without producing a token.
type Scanner struct {
	r   *bufio.Reader
	pos int
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Tokenize scans the whole expression. The only failure is a numeral that
// cannot be read as a float64.
func Tokenize(expression string) ([]Token, error) {
	s := NewScanner(strings.NewReader(expression))
	var tokens []Token
	for {
		tok, err := s.Scan()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Scan returns the next token, or a token of kind EOF once the input is
// exhausted.
func (s *Scanner) Scan() (Token, error) {
	for {
		start := s.pos
		c, ok := s.read()
		if !ok {
			return Token{Kind: EOF, Pos: start}, nil
		}

		if isDigit(c) {
			s.unread()
			return s.scanNumber()
		}

		tok := Token{Pos: start}
		switch c {
		case '+', '-', '*', '/', '^', '(', ')', '%', '!':
			tok.Kind, tok.Text = OPERATOR, string(c)
			return tok, nil
		case '<', '>':
			if s.accept(c) {
				tok.Kind, tok.Text = OPERATOR, string(c)+string(c)
				return tok, nil
			}
		case 'l':
			if s.accept('o') {
				if s.accept('g') {
					tok.Kind, tok.Text = FUNCTION, "log"
					return tok, nil
				}
			} else if s.accept('n') {
				tok.Kind, tok.Text = FUNCTION, "ln"
				return tok, nil
			}
		case 'e':
			tok.Kind, tok.Text = CONSTANT, "e"
			return tok, nil
		case 'p':
			if s.accept('i') {
				tok.Kind, tok.Text = CONSTANT, "pi"
				return tok, nil
			}
		case 'P':
			if s.accept('I') {
				tok.Kind, tok.Text = CONSTANT, "PI"
				return tok, nil
			}
		}
	}
}

func (s *Scanner) scanNumber() (Token, error) {
	var buf bytes.Buffer
	start := s.pos

	for {
		c, ok := s.read()
		if !ok {
			break
		} else if !isDigit(c) {
			s.unread()
			break
		}
		buf.WriteRune(c)
	}

	text := buf.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Out of range numerals round to ±Inf or 0 and are still numbers.
		var ne *strconv.NumError
		if !errors.As(err, &ne) || ne.Err != strconv.ErrRange {
			return Token{}, &MalformedNumeralError{Pos: start, Text: text}
		}
	}
	return Token{Kind: NUMBER, Value: v, Text: text, Pos: start}, nil
}

// accept consumes the next rune if it is want.
func (s *Scanner) accept(want rune) bool {
	c, ok := s.read()
	if !ok {
		return false
	}
	if c != want {
		s.unread()
		return false
	}
	return true
}

func (s *Scanner) read() (rune, bool) {
	c, _, err := s.r.ReadRune()
	if err != nil {
		return 0, false
	}
	s.pos++
	return c, true
}

func (s *Scanner) unread() {
	if s.r.UnreadRune() == nil {
		s.pos--
	}
}

// isDigit reports whether c can appear in a numeral. Only ASCII digits and the
// decimal point qualify; exponents are not part of the syntax.
func isDigit(c rune) bool {
	return (c >= '0' && c <= '9') || c == '.'
}
