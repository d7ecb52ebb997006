package intexpr

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/zephyrtronium/bigfloat"
)

// ExtensionOps contains the operator characters whose prefix meaning is
// defined by a Hook.
const ExtensionOps = `<>&|^*/\@=`

// Hook defines the meaning of the extension operators when used as prefix
// operators. Apply receives the operator and its evaluated operand and returns
// the result of the operation. Apply is only called for operators in
// ExtensionOps, and only when the expression is being evaluated; operands in
// untaken conditional branches and in Verify do not reach the hook.
//
// A Hook used by concurrent evaluations must be safe for concurrent use.
type Hook interface {
	Apply(op byte, x uint64) uint64
}

// HookFunc adapts a function to a Hook.
type HookFunc func(op byte, x uint64) uint64

// Apply calls f(op, x).
func (f HookFunc) Apply(op byte, x uint64) uint64 {
	return f(op, x)
}

type identity struct{}

func (identity) Apply(op byte, x uint64) uint64 {
	return x
}

// Identity is the default hook. Every extension operator returns its operand
// unchanged, making it equivalent to unary +.
var Identity Hook = identity{}

// Ops is a Hook defined by a table of operations. Operators missing from the
// table return their operands unchanged.
type Ops map[byte]func(uint64) uint64

// Apply applies the operation for op.
func (o Ops) Apply(op byte, x uint64) uint64 {
	f := o[op]
	if f == nil {
		return x
	}
	return f(x)
}

// MathHook returns a hook giving the extension operators mathematical
// meanings:
//
// 	*x	x squared, wrapping
// 	/x	integer square root
// 	^x	integer cube root
// 	<x	floor of the base 2 logarithm, or 0 if x is 0
// 	>x	2 to the x, or 0 if x is 64 or more
// 	\x	floor of the natural logarithm, or 0 if x is 0
// 	@x	floor of e to the x, or the maximum value if that overflows
// 	=x	number of one bits
//
// & and | are unchanged.
func MathHook() Hook {
	return mathops
}

var mathops = Ops{
	'*': func(x uint64) uint64 { return x * x },
	'/': isqrt,
	'^': icbrt,
	'<': func(x uint64) uint64 {
		if x == 0 {
			return 0
		}
		return uint64(bits.Len64(x) - 1)
	},
	'>': func(x uint64) uint64 {
		if x >= 64 {
			return 0
		}
		return 1 << x
	},
	'\\': iln,
	'@':  iexp,
	'=':  func(x uint64) uint64 { return uint64(bits.OnesCount64(x)) },
}

// mathprec is the precision of the floating-point operations in MathHook.
// It leaves plenty of fraction bits after the 64 integer bits.
const mathprec = 256

func isqrt(x uint64) uint64 {
	var z big.Int
	return z.Sqrt(new(big.Int).SetUint64(x)).Uint64()
}

func icbrt(x uint64) uint64 {
	if x < 2 {
		return x
	}
	in := new(big.Float).SetPrec(mathprec).SetUint64(x)
	third := new(big.Float).SetPrec(mathprec).SetInt64(1)
	third.Quo(third, new(big.Float).SetPrec(mathprec).SetInt64(3))
	z := new(big.Float).SetPrec(mathprec)
	bigfloat.Pow(z, in, third)
	r, _ := z.Uint64()
	// The root of a perfect cube can come out just below the integer.
	want := new(big.Int).SetUint64(x)
	cube := func(r uint64) *big.Int {
		c := new(big.Int).SetUint64(r)
		return c.Mul(c, c).Mul(c, new(big.Int).SetUint64(r))
	}
	for cube(r+1).Cmp(want) <= 0 {
		r++
	}
	for cube(r).Cmp(want) > 0 {
		r--
	}
	return r
}

func iln(x uint64) uint64 {
	if x < 2 {
		// ln 0 is defined as 0.
		return 0
	}
	in := new(big.Float).SetPrec(mathprec).SetUint64(x)
	z := new(big.Float).SetPrec(mathprec)
	bigfloat.Log(z, in)
	r, _ := z.Uint64()
	return r
}

// maxexp is the smallest x for which e^x exceeds math.MaxUint64.
const maxexp = 45

func iexp(x uint64) uint64 {
	switch {
	case x == 0:
		return 1
	case x >= maxexp:
		return math.MaxUint64
	}
	in := new(big.Float).SetPrec(mathprec).SetUint64(x)
	z := new(big.Float).SetPrec(mathprec)
	bigfloat.Exp(z, in)
	r, _ := z.Uint64()
	return r
}
