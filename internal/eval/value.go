package eval

import (
	"math/big"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// Value is an exact rational number. The zero Value is 0.
type Value struct {
	r *big.Rat
}

func Int(n int64) Value { return Value{r: new(big.Rat).SetInt64(n)} }

func Frac(p, q int64) Value {
	return Value{r: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// Parse reads a decimal or p/q literal.
func Parse(s string) (Value, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Value{}, false
	}
	return Value{r: r}, true
}

func (v Value) rat() *big.Rat {
	if v.r == nil {
		return new(big.Rat)
	}
	return v.r
}

// Rat returns a copy of the underlying rational.
func (v Value) Rat() *big.Rat { return new(big.Rat).Set(v.rat()) }

func (v Value) Add(o Value) Value { return Value{r: new(big.Rat).Add(v.rat(), o.rat())} }
func (v Value) Sub(o Value) Value { return Value{r: new(big.Rat).Sub(v.rat(), o.rat())} }
func (v Value) Mul(o Value) Value { return Value{r: new(big.Rat).Mul(v.rat(), o.rat())} }
func (v Value) Neg() Value        { return Value{r: new(big.Rat).Neg(v.rat())} }

// Quo divides v by o; ok is false when o is zero.
func (v Value) Quo(o Value) (Value, bool) {
	if o.IsZero() {
		return Value{}, false
	}
	return Value{r: new(big.Rat).Quo(v.rat(), o.rat())}, true
}

func (v Value) Equals(o Value) bool { return v.rat().Cmp(o.rat()) == 0 }

func (v Value) EqualsInt(n int64) bool { return v.rat().Cmp(new(big.Rat).SetInt64(n)) == 0 }

func (v Value) Cmp(o Value) int { return v.rat().Cmp(o.rat()) }

func (v Value) Sign() int { return v.rat().Sign() }

func (v Value) IsZero() bool { return v.Sign() == 0 }

func (v Value) IsInt() bool { return v.rat().IsInt() }

// Int64 returns v as an int64 when it is an integer that fits.
func (v Value) Int64() (int64, bool) {
	if !v.IsInt() || !v.rat().Num().IsInt64() {
		return 0, false
	}
	return v.rat().Num().Int64(), true
}

// Num and Denom return the numerator and the positive denominator of v in
// lowest terms.
func (v Value) Num() *big.Int   { return new(big.Int).Set(v.rat().Num()) }
func (v Value) Denom() *big.Int { return new(big.Int).Set(v.rat().Denom()) }

// String renders v in lowest terms; integers have no denominator.
func (v Value) String() string {
	if v.IsInt() {
		return v.rat().Num().String()
	}
	return v.rat().RatString()
}

// Node builds the literal tree denoting v: a Number, a Neg of one, or a Div
// of integers.
func (v Value) Node() semantic.Node {
	abs := new(big.Rat).Abs(v.rat())
	var n semantic.Node
	if abs.IsInt() {
		n = semantic.NewNumber(abs.Num().String())
	} else {
		n = semantic.NewDiv(
			semantic.NewNumber(abs.Num().String()),
			semantic.NewNumber(abs.Denom().String()),
		)
	}
	if v.Sign() < 0 {
		return semantic.NewNeg(n)
	}
	return n
}
