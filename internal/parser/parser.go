// Package parser reads infix algebra into semantic trees.
//
//	relation := sum ('=' sum)+ | sum cmp sum | sum
//	sum      := term (('+' | '-') term)*
//	term     := unary (('*' | '/') unary | power)*
//	unary    := '-' unary | power
//	power    := atom ('^' unary)?
//
// Juxtaposed factors build an implicit product, a - b builds a subtraction,
// and relations may be joined with not, and, or.
package parser

import (
	"fmt"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// Parser consumes tokens produced by the lexer and builds a tree.
type Parser struct {
	tokens  []Token
	current int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse reads a single expression from src.
func Parse(src string) (semantic.Node, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and literals known to be valid.
func MustParse(src string) semantic.Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

// Parse builds the tree for the whole token stream.
func (p *Parser) Parse() (semantic.Node, error) {
	if p.peek().Type == TokenEOF {
		return nil, p.errorf("empty expression")
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.errorf("unexpected %s %q", tok.Type, tok.Value)
	}
	return n, nil
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) accept(typ TokenType, value string) bool {
	if p.peek().is(typ, value) {
		p.current++
		return true
	}
	return false
}

func (p *Parser) expect(value string) error {
	if !p.accept(TokenOp, value) {
		tok := p.peek()
		return p.errorf("expected %q, found %s %q", value, tok.Type, tok.Value)
	}
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.peek().Position, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) parseOr() (semantic.Node, error) {
	return p.parseLogic(semantic.OpOr, "or", p.parseAnd)
}

func (p *Parser) parseAnd() (semantic.Node, error) {
	return p.parseLogic(semantic.OpAnd, "and", p.parseNot)
}

func (p *Parser) parseLogic(op semantic.LogicOp, word string, operand func() (semantic.Node, error)) (semantic.Node, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	args := []semantic.Node{first}
	for p.accept(TokenKeyword, word) {
		arg, err := operand()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 1 {
		return first, nil
	}
	return semantic.NewLogic(op, args...), nil
}

func (p *Parser) parseNot() (semantic.Node, error) {
	if p.accept(TokenKeyword, "not") {
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return semantic.NewNot(arg), nil
	}
	return p.parseRelation()
}

var compareOps = map[string]semantic.CompareOp{
	"!=": semantic.OpNeq,
	"<":  semantic.OpLt,
	"<=": semantic.OpLte,
	">":  semantic.OpGt,
	">=": semantic.OpGte,
}

func (p *Parser) parseRelation() (semantic.Node, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type == TokenOp {
		if op, ok := compareOps[tok.Value]; ok {
			p.current++
			right, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			return semantic.NewCompare(op, left, right), nil
		}
	}

	sides := []semantic.Node{left}
	for p.accept(TokenOp, "=") {
		side, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		sides = append(sides, side)
	}
	if len(sides) == 1 {
		return left, nil
	}
	return semantic.NewEq(sides...), nil
}

func (p *Parser) parseSum() (semantic.Node, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []semantic.Node{first}
	for {
		switch {
		case p.accept(TokenOp, "+"):
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		case p.accept(TokenOp, "-"):
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, semantic.NewSub(t))
		default:
			return semantic.Sum(terms...), nil
		}
	}
}

func (p *Parser) parseTerm() (semantic.Node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []semantic.Node{first}
	implicit := true
	for {
		switch {
		case p.accept(TokenOp, "*"):
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
			implicit = false
		case p.accept(TokenOp, "/"):
			den, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			num := semantic.Product(implicit, factors...)
			factors = []semantic.Node{semantic.NewDiv(num, den)}
			implicit = true
		case p.startsAtom():
			f, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		default:
			return semantic.Product(implicit, factors...), nil
		}
	}
}

func (p *Parser) startsAtom() bool {
	tok := p.peek()
	switch tok.Type {
	case TokenNumber, TokenIdent, TokenFunc:
		return true
	case TokenKeyword:
		return tok.Value == "true" || tok.Value == "false"
	case TokenOp:
		return tok.Value == "("
	default:
		return false
	}
}

func (p *Parser) parseUnary() (semantic.Node, error) {
	if p.accept(TokenOp, "-") {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return semantic.NewNeg(arg), nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (semantic.Node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.accept(TokenOp, "^") {
		return base, nil
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return semantic.NewPow(base, exp), nil
}

func (p *Parser) parseAtom() (semantic.Node, error) {
	tok := p.peek()
	switch {
	case tok.Type == TokenNumber:
		p.current++
		return semantic.NewNumber(tok.Value), nil
	case tok.Type == TokenIdent:
		p.current++
		return semantic.NewIdentifier(tok.Value), nil
	case tok.Type == TokenFunc:
		p.current++
		return p.parseCall(tok)
	case tok.is(TokenKeyword, "true"), tok.is(TokenKeyword, "false"):
		p.current++
		return semantic.NewBool(tok.Value == "true"), nil
	case tok.is(TokenOp, "("):
		p.current++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case tok.is(TokenOp, "{"):
		p.current++
		elems, err := p.parseList("}")
		if err != nil {
			return nil, err
		}
		return semantic.NewSet(elems...), nil
	default:
		return nil, p.errorf("unexpected %s %q", tok.Type, tok.Value)
	}
}

func (p *Parser) parseCall(fn Token) (semantic.Node, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args, err := p.parseList(")")
	if err != nil {
		return nil, err
	}

	switch fn.Value {
	case "sqrt":
		if len(args) != 1 {
			return nil, &SyntaxError{Pos: fn.Position, Msg: "sqrt takes one argument"}
		}
		return semantic.NewSqrt(args[0]), nil
	case "root":
		if len(args) != 2 {
			return nil, &SyntaxError{Pos: fn.Position, Msg: "root takes a radicand and an index"}
		}
		return semantic.NewRoot(args[0], args[1]), nil
	default:
		return semantic.NewApply(fn.Value, args...), nil
	}
}

// parseList reads comma separated expressions up to and including the
// closing token.
func (p *Parser) parseList(closing string) ([]semantic.Node, error) {
	var elems []semantic.Node
	if p.accept(TokenOp, closing) {
		return elems, nil
	}
	for {
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.accept(TokenOp, ",") {
			continue
		}
		if err := p.expect(closing); err != nil {
			return nil, err
		}
		return elems, nil
	}
}
