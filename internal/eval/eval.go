// Package eval reduces closed numeric expressions to exact rationals.
package eval

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

var (
	// ErrNotEvaluable is returned for trees that have no numeric value on
	// their own, such as free identifiers or disabled fraction evaluation.
	ErrNotEvaluable = errors.New("expression is not evaluable")
	// ErrUnsupported is returned for operators the evaluator does not
	// implement (roots, function application, limits and the like).
	ErrUnsupported = errors.New("unsupported operator")

	ErrDivisionByZero = errors.New("division by zero")
)

// maxExponent bounds integer powers so a single literal cannot exhaust memory.
const maxExponent = 1024

// Options tunes evaluation.
type Options struct {
	// EvalFractions allows Div nodes to be reduced to rationals.
	EvalFractions bool
}

// Eval computes the exact value of a tree built from numbers, sums, products,
// negations, integer powers and, with EvalFractions, quotients.
func Eval(n semantic.Node, opts Options) (Value, error) {
	switch n := n.(type) {
	case *semantic.Number:
		v, ok := Parse(n.Value)
		if !ok {
			return Value{}, fmt.Errorf("%w: malformed number %q", ErrNotEvaluable, n.Value)
		}
		return v, nil
	case *semantic.Identifier:
		return Value{}, fmt.Errorf("%w: free variable %s", ErrNotEvaluable, n.Name)
	case *semantic.Neg:
		v, err := Eval(n.Arg, opts)
		if err != nil {
			return Value{}, err
		}
		return v.Neg(), nil
	case *semantic.Add:
		sum := Int(0)
		for _, t := range n.Args {
			v, err := Eval(t, opts)
			if err != nil {
				return Value{}, err
			}
			sum = sum.Add(v)
		}
		return sum, nil
	case *semantic.Mul:
		prod := Int(1)
		for _, f := range n.Args {
			v, err := Eval(f, opts)
			if err != nil {
				return Value{}, err
			}
			prod = prod.Mul(v)
		}
		return prod, nil
	case *semantic.Div:
		if !opts.EvalFractions {
			return Value{}, fmt.Errorf("%w: fraction evaluation is disabled", ErrNotEvaluable)
		}
		num, err := Eval(n.Num, opts)
		if err != nil {
			return Value{}, err
		}
		den, err := Eval(n.Den, opts)
		if err != nil {
			return Value{}, err
		}
		q, ok := num.Quo(den)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s", ErrDivisionByZero, n)
		}
		return q, nil
	case *semantic.Pow:
		return evalPow(n, opts)
	case *semantic.Root, *semantic.Apply:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupported, n.Kind())
	default:
		return Value{}, fmt.Errorf("%w: %s is not numeric", ErrNotEvaluable, n.Kind())
	}
}

func evalPow(n *semantic.Pow, opts Options) (Value, error) {
	base, err := Eval(n.Base, opts)
	if err != nil {
		return Value{}, err
	}
	exp, err := Eval(n.Exp, opts)
	if err != nil {
		return Value{}, err
	}
	e, ok := exp.Int64()
	if !ok {
		return Value{}, fmt.Errorf("%w: non-integer exponent %s", ErrUnsupported, exp)
	}
	if e > maxExponent || e < -maxExponent {
		return Value{}, fmt.Errorf("%w: exponent %d is too large", ErrUnsupported, e)
	}

	neg := e < 0
	if neg {
		e = -e
	}
	result := Int(1)
	for i := int64(0); i < e; i++ {
		result = result.Mul(base)
	}
	if !neg {
		return result, nil
	}
	inv, ok := Int(1).Quo(result)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrDivisionByZero, n)
	}
	return inv, nil
}
