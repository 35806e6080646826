package parser

import (
	"strings"
	"unicode"
)

// Lexer scans an expression into tokens.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize processes the entire input. The returned slice always ends with
// a TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		start := l.position
		c := l.input[l.position]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.position++
		case isDigit(c) || c == '.':
			if err := l.lexNumber(start); err != nil {
				return nil, err
			}
		case isLetter(c):
			l.lexWord(start)
		case strings.HasPrefix(l.input[start:], "<=") ||
			strings.HasPrefix(l.input[start:], ">=") ||
			strings.HasPrefix(l.input[start:], "!="):
			l.addToken(TokenOp, l.input[start:start+2], start)
			l.position += 2
		case strings.ContainsRune("+-*/^=<>(){},", rune(c)):
			l.addToken(TokenOp, string(c), start)
			l.position++
		default:
			return nil, &SyntaxError{Pos: start, Msg: "unexpected character " + string(c)}
		}
	}
	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

func (l *Lexer) lexNumber(start int) error {
	seenDot := false
	for l.position < len(l.input) {
		c := l.input[l.position]
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if !isDigit(c) {
			break
		}
		l.position++
	}
	lit := l.input[start:l.position]
	if lit == "." || strings.HasSuffix(lit, ".") {
		return &SyntaxError{Pos: start, Msg: "malformed number " + lit}
	}
	if strings.HasPrefix(lit, ".") {
		lit = "0" + lit
	}
	l.addToken(TokenNumber, lit, start)
	return nil
}

// lexWord reads a run of letters. Keywords and function names are single
// tokens; anything else is juxtaposed single-letter variables, so "xy" is
// x times y.
func (l *Lexer) lexWord(start int) {
	for l.position < len(l.input) && isLetter(l.input[l.position]) {
		l.position++
	}
	word := l.input[start:l.position]
	switch {
	case keywords[word]:
		l.addToken(TokenKeyword, word, start)
	case functions[word]:
		l.addToken(TokenFunc, word, start)
	default:
		for i, r := range word {
			l.addToken(TokenIdent, string(r), start+i)
		}
	}
}

func (l *Lexer) addToken(typ TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Position: pos})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return c < 0x80 && unicode.IsLetter(rune(c)) }
