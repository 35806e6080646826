package parser

import "fmt"

// TokenType defines the kinds of tokens produced by the lexer.
type TokenType int

const (
	TokenNumber  TokenType = iota // 12, 17.8
	TokenIdent                    // single-letter variable
	TokenFunc                     // sqrt, root, sin, ...
	TokenKeyword                  // and, or, not, true, false
	TokenOp                       // + - * / ^ = != < <= > >= ( ) { } ,
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "number"
	case TokenIdent:
		return "identifier"
	case TokenFunc:
		return "function"
	case TokenKeyword:
		return "keyword"
	case TokenOp:
		return "operator"
	case TokenEOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Token is a lexeme with its byte offset in the input.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

func (t Token) is(typ TokenType, value string) bool {
	return t.Type == typ && t.Value == value
}

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

var keywords = map[string]bool{
	"and":   true,
	"or":    true,
	"not":   true,
	"true":  true,
	"false": true,
}

// functions lists the names read as function application. Any other run of
// letters is a product of single-letter variables.
var functions = map[string]bool{
	"sqrt": true,
	"root": true,
	"abs":  true,
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"log":  true,
	"ln":   true,
	"exp":  true,
	"lim":  true,
	"diff": true,
	"int":  true,
}
