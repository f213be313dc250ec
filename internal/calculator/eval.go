// Package calculator evaluates arithmetic expressions such as "2^3^2",
// "(1+2)*3!" or "ln(e)" to a float64.
//
// Precedence from loosest to tightest is: + and -; *, / and %; ^, << and >>
// together with postfix !; then numbers, constants, unary minus, parentheses
// and function calls. ^ groups to the right.
//
// Malformed structure is not an error. An unclosed parenthesis, an unknown
// function or a missing operand contributes 0 to the result, and anything
// after a complete expression is ignored. Only numerals that cannot be read
// and factorials of values other than non-negative integers are errors.
//
// Note that log(x) is 10^x, not the base 10 logarithm.
package calculator

import "math"

// Evaluate tokenizes and evaluates expression.
func Evaluate(expression string) (float64, error) {
	tokens, err := Tokenize(expression)
	if err != nil {
		return 0, err
	}
	return EvaluateTokens(tokens)
}

// EvaluateTokens evaluates an already scanned token sequence. tokens is not
// modified.
func EvaluateTokens(tokens []Token) (float64, error) {
	p := parser{tokens: tokens}
	v := p.expression()
	if p.err != nil {
		return 0, p.err
	}
	return v, nil
}

// parser evaluates while it descends; there is no intermediate tree. err holds
// the first evaluation error, after which results are meaningless but parsing
// still runs to completion.
type parser struct {
	tokens []Token
	pos    int
	err    error
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// peekOperator returns the symbol of the next token if it is an operator.
func (p *parser) peekOperator() (string, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != OPERATOR {
		return "", false
	}
	return tok.Text, true
}

// expression := term (('+' | '-') term)*
func (p *parser) expression() float64 {
	v := p.term()
	for {
		op, _ := p.peekOperator()
		switch op {
		case "+":
			p.pos++
			v += p.term()
		case "-":
			p.pos++
			v -= p.term()
		default:
			return v
		}
	}
}

// term := factor (('*' | '/' | '%') factor)*
func (p *parser) term() float64 {
	v := p.factor()
	for {
		op, _ := p.peekOperator()
		switch op {
		case "*":
			p.pos++
			v *= p.factor()
		case "/":
			p.pos++
			v /= p.factor()
		case "%":
			p.pos++
			v = math.Mod(v, p.factor())
		default:
			return v
		}
	}
}

// factor := base ('^' factor | '<<' factor | '>>' factor | '!')*
//
// The right operand of ^ is a whole factor, which makes ^ right associative.
func (p *parser) factor() float64 {
	v := p.base()
	for {
		op, _ := p.peekOperator()
		switch op {
		case "^":
			p.pos++
			v = math.Pow(v, p.factor())
		case "<<":
			p.pos++
			v = float64(toInt64(v) << shiftCount(p.factor()))
		case ">>":
			p.pos++
			v = float64(toInt64(v) >> shiftCount(p.factor()))
		case "!":
			p.pos++
			f, err := factorial(v)
			if err != nil && p.err == nil {
				p.err = err
			}
			v = f
		default:
			return v
		}
	}
}

// base := number | constant | '-' base | '(' expression ')' | function base
func (p *parser) base() float64 {
	tok, ok := p.next()
	if !ok {
		return 0
	}
	switch tok.Kind {
	case NUMBER:
		return tok.Value
	case OPERATOR:
		switch tok.Text {
		case "-":
			return -p.base()
		case "(":
			v := p.expression()
			// The token after the expression is consumed whether or not it
			// closes the parenthesis.
			if closing, ok := p.next(); ok && closing.is(")") {
				return v
			}
			return 0
		}
	case FUNCTION:
		switch tok.Text {
		case "log":
			return math.Pow(10, p.base())
		case "ln":
			return math.Log(p.base())
		}
	case CONSTANT:
		switch tok.Text {
		case "e":
			return math.E
		case "pi", "PI":
			return math.Pi
		}
	}
	return 0
}

// toInt64 converts like a saturating cast: NaN becomes 0 and values outside
// the int64 range clamp to its bounds.
func toInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// shiftCount wraps the count into 0..63.
func shiftCount(f float64) uint {
	return uint(toInt64(f)) & 63
}
