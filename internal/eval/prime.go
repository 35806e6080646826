package eval

import "math/big"

// PrimeDecomp factors a positive integer by trial division, smallest prime
// first. 1 and primes decompose to themselves; non-integers and values that
// are not positive decompose to nothing.
func PrimeDecomp(v Value) []int64 {
	n, ok := v.Int64()
	if !ok || n < 1 {
		return nil
	}
	if n == 1 {
		return []int64{1}
	}

	var factors []int64
	for p := int64(2); p*p <= n; p++ {
		for n%p == 0 {
			factors = append(factors, p)
			n /= p
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// GCD returns the greatest common divisor of two integer values, or 1 when
// either is not an integer.
func GCD(a, b Value) Value {
	if !a.IsInt() || !b.IsInt() {
		return Int(1)
	}
	x, y := a.Num(), b.Num()
	x.Abs(x)
	y.Abs(y)
	g := x.GCD(nil, nil, x, y)
	return Value{r: new(big.Rat).SetInt(g)}
}
