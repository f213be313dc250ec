package calculator_test

import (
	"errors"
	"strings"
	"testing"

	"calcbot/internal/calculator"
)

func TestScanner_Scan(t *testing.T) {
	var tests = []struct {
		s    string
		kind calculator.TokenKind
		text string
	}{
		// EOF
		{s: ``, kind: calculator.EOF},
		{s: ` `, kind: calculator.EOF},
		{s: `?#&`, kind: calculator.EOF},
		{s: `<`, kind: calculator.EOF},
		{s: `l`, kind: calculator.EOF},

		// Literals
		{s: `42`, kind: calculator.NUMBER, text: "42"},
		{s: `3.25`, kind: calculator.NUMBER, text: "3.25"},
		{s: `.5`, kind: calculator.NUMBER, text: ".5"},
		{s: `7.`, kind: calculator.NUMBER, text: "7."},
		{s: `  9`, kind: calculator.NUMBER, text: "9"},

		// Constants
		{s: `e`, kind: calculator.CONSTANT, text: "e"},
		{s: `pi`, kind: calculator.CONSTANT, text: "pi"},
		{s: `PI`, kind: calculator.CONSTANT, text: "PI"},
		{s: `Pi`, kind: calculator.EOF},

		// Functions
		{s: `log`, kind: calculator.FUNCTION, text: "log"},
		{s: `ln`, kind: calculator.FUNCTION, text: "ln"},

		// Operators
		{s: `+`, kind: calculator.OPERATOR, text: "+"},
		{s: `-`, kind: calculator.OPERATOR, text: "-"},
		{s: `*`, kind: calculator.OPERATOR, text: "*"},
		{s: `/`, kind: calculator.OPERATOR, text: "/"},
		{s: `^`, kind: calculator.OPERATOR, text: "^"},
		{s: `(`, kind: calculator.OPERATOR, text: "("},
		{s: `)`, kind: calculator.OPERATOR, text: ")"},
		{s: `%`, kind: calculator.OPERATOR, text: "%"},
		{s: `!`, kind: calculator.OPERATOR, text: "!"},
		{s: `<<`, kind: calculator.OPERATOR, text: "<<"},
		{s: `>>`, kind: calculator.OPERATOR, text: ">>"},
	}

	for i, tt := range tests {
		s := calculator.NewScanner(strings.NewReader(tt.s))
		tok, err := s.Scan()
		if err != nil {
			t.Errorf("%d. %q unexpected error: %v", i, tt.s, err)
		} else if tt.kind != tok.Kind {
			t.Errorf("%d. %q kind mismatch: exp=%v got=%v <%q>", i, tt.s, tt.kind, tok.Kind, tok.Text)
		} else if tt.text != tok.Text {
			t.Errorf("%d. %q text mismatch: exp=%q got=%q", i, tt.s, tt.text, tok.Text)
		}
	}
}

func TestTokenize(t *testing.T) {
	var tests = []struct {
		s      string
		tokens []string
	}{
		{s: "", tokens: nil},
		{s: "2+3*4", tokens: []string{"NUMBER:2@0", "OPERATOR:+@1", "NUMBER:3@2", "OPERATOR:*@3", "NUMBER:4@4"}},
		{s: "1 2", tokens: []string{"NUMBER:1@0", "NUMBER:2@2"}},
		{s: "ln(e)", tokens: []string{"FUNCTION:ln@0", "OPERATOR:(@2", "CONSTANT:e@3", "OPERATOR:)@4"}},
		{s: "log2", tokens: []string{"FUNCTION:log@0", "NUMBER:2@3"}},
		// "lo" without "g" is dropped, the following rune is scanned normally.
		{s: "lo2", tokens: []string{"NUMBER:2@2"}},
		{s: "lop", tokens: nil},
		{s: "lx5", tokens: []string{"NUMBER:5@2"}},
		// e is a constant wherever it appears.
		{s: "apple", tokens: []string{"CONSTANT:e@4"}},
		{s: "1e5", tokens: []string{"NUMBER:1@0", "CONSTANT:e@1", "NUMBER:5@2"}},
		{s: "foo(2)", tokens: []string{"OPERATOR:(@3", "NUMBER:2@4", "OPERATOR:)@5"}},
		{s: "1<2", tokens: []string{"NUMBER:1@0", "NUMBER:2@2"}},
		{s: "1<<<2", tokens: []string{"NUMBER:1@0", "OPERATOR:<<@1", "NUMBER:2@4"}},
		{s: "3!!", tokens: []string{"NUMBER:3@0", "OPERATOR:!@1", "OPERATOR:!@2"}},
		{s: "π+1", tokens: []string{"OPERATOR:+@1", "NUMBER:1@2"}},
	}

	for i, tt := range tests {
		tokens, err := calculator.Tokenize(tt.s)
		if err != nil {
			t.Errorf("%d. %q unexpected error: %v", i, tt.s, err)
			continue
		}
		if len(tokens) != len(tt.tokens) {
			t.Errorf("%d. %q length mismatch: exp=%v got=%v", i, tt.s, tt.tokens, tokens)
			continue
		}
		for j, tok := range tokens {
			if tok.String() != tt.tokens[j] {
				t.Errorf("%d. %q token %d mismatch: exp=%s got=%s", i, tt.s, j, tt.tokens[j], tok)
			}
		}
	}
}

func TestTokenize_MalformedNumeral(t *testing.T) {
	var tests = []struct {
		s    string
		pos  int
		text string
	}{
		{s: "1.2.3", pos: 0, text: "1.2.3"},
		{s: "3+1..2", pos: 2, text: "1..2"},
		{s: "(.)", pos: 1, text: "."},
	}

	for i, tt := range tests {
		_, err := calculator.Tokenize(tt.s)
		var mne *calculator.MalformedNumeralError
		if !errors.As(err, &mne) {
			t.Errorf("%d. %q expected MalformedNumeralError, got %v", i, tt.s, err)
			continue
		}
		if mne.Pos != tt.pos || mne.Text != tt.text {
			t.Errorf("%d. %q error mismatch: exp=%d %q got=%d %q", i, tt.s, tt.pos, tt.text, mne.Pos, mne.Text)
		}
	}
}

func TestTokenize_HugeNumeral(t *testing.T) {
	tokens, err := calculator.Tokenize("1" + strings.Repeat("0", 400))
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Value <= 1e308 {
		t.Errorf("expected a single +Inf number, got %v", tokens)
	}
}
