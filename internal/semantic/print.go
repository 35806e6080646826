package semantic

import (
	"strings"
)

// binding strength, loosest first
const (
	precOr = iota + 1
	precAnd
	precNot
	precRelation
	precAdd
	precMul
	precNeg
	precPow
	precAtom
)

func precedence(n Node) int {
	switch n := n.(type) {
	case *Logic:
		if n.Op == OpOr {
			return precOr
		}
		return precAnd
	case *Not:
		return precNot
	case *Eq, *Compare:
		return precRelation
	case *Add:
		return precAdd
	case *Mul, *Div:
		return precMul
	case *Neg:
		return precNeg
	case *Pow:
		return precPow
	default:
		return precAtom
	}
}

// Print renders n in the infix notation accepted by the parser.
func Print(n Node) string {
	var sb strings.Builder
	write(&sb, n)
	return sb.String()
}

func write(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Number:
		sb.WriteString(n.Value)
	case *Identifier:
		sb.WriteString(n.Name)
	case *Bool:
		if n.Value {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case *Neg:
		sb.WriteByte('-')
		writeOperand(sb, n.Arg, precNeg, true)
	case *Add:
		for i, t := range n.Args {
			if i > 0 {
				if neg, ok := t.(*Neg); ok && neg.Subtraction {
					sb.WriteString(" - ")
					writeOperand(sb, neg.Arg, precAdd, true)
					continue
				}
				sb.WriteString(" + ")
			}
			writeOperand(sb, t, precAdd, true)
		}
	case *Mul:
		for i, f := range n.Args {
			var fb strings.Builder
			if i > 0 && f.Kind() == KindNeg {
				writeOperand(&fb, f, precNeg, true)
			} else {
				writeOperand(&fb, f, precMul, true)
			}
			text := fb.String()
			if i > 0 {
				sb.WriteString(mulSeparator(n, sb.String(), text))
			}
			sb.WriteString(text)
		}
	case *Div:
		writeOperand(sb, n.Num, precMul, false)
		sb.WriteString(" / ")
		writeOperand(sb, n.Den, precMul, true)
	case *Pow:
		writeOperand(sb, n.Base, precPow, true)
		sb.WriteByte('^')
		writeOperand(sb, n.Exp, precNeg, false)
	case *Root:
		if num, ok := n.Index.(*Number); ok && num.Value == "2" {
			sb.WriteString("sqrt(")
			write(sb, n.Radicand)
			sb.WriteByte(')')
			return
		}
		sb.WriteString("root(")
		write(sb, n.Radicand)
		sb.WriteString(", ")
		write(sb, n.Index)
		sb.WriteByte(')')
	case *Eq:
		writeJoined(sb, n.Args, " = ", precRelation)
	case *Compare:
		writeOperand(sb, n.Left, precRelation, true)
		sb.WriteString(" " + n.Op.String() + " ")
		writeOperand(sb, n.Right, precRelation, true)
	case *Logic:
		writeJoined(sb, n.Args, " "+n.Op.String()+" ", precedence(n))
	case *Not:
		sb.WriteString("not ")
		writeOperand(sb, n.Arg, precNot, false)
	case *Set:
		sb.WriteByte('{')
		writeList(sb, n.Elems)
		sb.WriteByte('}')
	case *Apply:
		sb.WriteString(n.Func)
		sb.WriteByte('(')
		writeList(sb, n.Args)
		sb.WriteByte(')')
	default:
		panic(unreachable(n))
	}
}

// writeOperand parenthesizes n when it binds looser than the context, or
// equally loose when strict is set.
func writeOperand(sb *strings.Builder, n Node, ctx int, strict bool) {
	p := precedence(n)
	if p < ctx || (strict && p == ctx) {
		sb.WriteByte('(')
		write(sb, n)
		sb.WriteByte(')')
		return
	}
	write(sb, n)
}

func writeJoined(sb *strings.Builder, ns []Node, sep string, ctx int) {
	for i, a := range ns {
		if i > 0 {
			sb.WriteString(sep)
		}
		writeOperand(sb, a, ctx, true)
	}
}

func writeList(sb *strings.Builder, ns []Node) {
	for i, a := range ns {
		if i > 0 {
			sb.WriteString(", ")
		}
		write(sb, a)
	}
}

func mulSeparator(m *Mul, left, right string) string {
	if !m.Implicit {
		return " * "
	}
	// 2 3 must not read as 23
	if isDigit(left[len(left)-1]) && (isDigit(right[0]) || right[0] == '.') {
		return " "
	}
	return ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
