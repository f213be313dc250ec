package calculator

import "strconv"

type TokenKind int

const (
	// Special tokens
	ILLEGAL TokenKind = iota
	EOF

	// Literals
	NUMBER   // 12, 3.5, .25
	CONSTANT // e, pi, PI

	// Operators
	OPERATOR // + - * / ^ ( ) % ! << >>
	FUNCTION // log, ln
)

var kindNames = [...]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	NUMBER:   "NUMBER",
	CONSTANT: "CONSTANT",
	OPERATOR: "OPERATOR",
	FUNCTION: "FUNCTION",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single lexical unit of an expression. Value is only meaningful for
// NUMBER tokens; Text holds the operator symbol, function name or constant name.
// Pos is the rune offset of the token's first character.
type Token struct {
	Kind  TokenKind
	Value float64
	Text  string
	Pos   int
}

func Number(v float64) Token {
	return Token{Kind: NUMBER, Value: v, Text: strconv.FormatFloat(v, 'g', -1, 64)}
}

func Operator(symbol string) Token {
	return Token{Kind: OPERATOR, Text: symbol}
}

func Function(name string) Token {
	return Token{Kind: FUNCTION, Text: name}
}

func Constant(name string) Token {
	return Token{Kind: CONSTANT, Text: name}
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// is reports whether t is the operator op.
func (t Token) is(op string) bool {
	return t.Kind == OPERATOR && t.Text == op
}
