// Package bn implements signed multiple-precision integers on a
// fixed-capacity digit vector.
//
// An Int holds its magnitude in a fixed array of 64-bit digits, least
// significant digit first, together with a sign and a used-digit count.
// Nothing is ever heap-grown: operations whose exact result would not fit
// the digit capacity panic, since exceeding the capacity is a programming
// error rather than a data-dependent failure.
//
// All arithmetic follows the output-parameter convention of math/big:
// z.Op(x, y) stores the result in z and returns z. The receiver may alias
// any operand.
package bn

import "math/bits"

const (
	// Digits is the fixed digit capacity of an Int (4096 bits).
	Digits = 64

	// doubleDigits is the scratch capacity used for products before the
	// capacity check.
	doubleDigits = 2 * Digits

	// DigitBits is the width of a single digit.
	DigitBits = 64
)

// Int is a signed multiple-precision integer with a fixed digit capacity.
// Ints are created with New and friends; a new Int represents 0.
type Int struct {
	w    [Digits]uint64
	used int
	neg  bool
}

// New returns a new Int set to 0.
func New() *Int {
	return &Int{used: 1}
}

// NewUint64 returns a new Int set to v.
func NewUint64(v uint64) *Int {
	z := New()
	return z.SetUint64(v)
}

// NewInt64 returns a new Int set to v.
func NewInt64(v int64) *Int {
	z := New()
	if v < 0 {
		z.SetUint64(uint64(-v))
		z.neg = !z.IsZero()
		return z
	}
	return z.SetUint64(uint64(v))
}

// SetZero sets z to 0 and returns z.
func (z *Int) SetZero() *Int {
	for i := 1; i < z.used; i++ {
		z.w[i] = 0
	}
	z.w[0] = 0
	z.used = 1
	z.neg = false
	return z
}

// SetUint64 sets z to v and returns z.
func (z *Int) SetUint64(v uint64) *Int {
	z.SetZero()
	z.w[0] = v
	return z
}

// Set sets z to x and returns z.
func (z *Int) Set(x *Int) *Int {
	if z == x {
		return z
	}
	for i := z.used; i > x.used; i-- {
		z.w[i-1] = 0
	}
	copy(z.w[:x.used], x.w[:x.used])
	z.used = x.used
	z.neg = x.neg
	return z
}

// norm trims leading zero digits and canonicalizes the sign of zero.
func (z *Int) norm() *Int {
	for z.used > 1 && z.w[z.used-1] == 0 {
		z.used--
	}
	if z.used == 1 && z.w[0] == 0 {
		z.neg = false
	}
	return z
}

// Sign returns -1, 0 or +1 depending on the sign of z.
func (z *Int) Sign() int {
	if z.IsZero() {
		return 0
	}
	if z.neg {
		return -1
	}
	return 1
}

// IsZero reports whether z is 0.
func (z *Int) IsZero() bool {
	return z.used == 1 && z.w[0] == 0
}

// IsOdd reports whether z is odd.
func (z *Int) IsOdd() bool {
	return z.w[0]&1 == 1
}

// Uint64 returns the least significant 64 bits of the magnitude of z.
func (z *Int) Uint64() uint64 {
	return z.w[0]
}

// Abs sets z to |x| and returns z.
func (z *Int) Abs(x *Int) *Int {
	z.Set(x)
	z.neg = false
	return z
}

// Neg sets z to -x and returns z.
func (z *Int) Neg(x *Int) *Int {
	z.Set(x)
	if !z.IsZero() {
		z.neg = !z.neg
	}
	return z
}

// BitLen returns the length of the magnitude of z in bits. BitLen(0) is 0.
func (z *Int) BitLen() int {
	top := z.w[z.used-1]
	if top == 0 {
		return 0
	}
	return (z.used-1)*DigitBits + bits.Len64(top)
}

// Bit returns bit i of the magnitude of z, 0-indexed from the least
// significant bit. Bits beyond the capacity read as 0.
func (z *Int) Bit(i int) uint {
	if i < 0 || i >= Digits*DigitBits {
		return 0
	}
	return uint(z.w[i/DigitBits]>>(i%DigitBits)) & 1
}

// SetBit sets bit i of the magnitude of z to b (0 or 1) and returns z.
func (z *Int) SetBit(i int, b uint) *Int {
	if i < 0 || i >= Digits*DigitBits {
		panic("bn: SetBit index out of range")
	}
	d := i / DigitBits
	mask := uint64(1) << (i % DigitBits)
	if b == 0 {
		z.w[d] &^= mask
	} else {
		z.w[d] |= mask
		if d >= z.used {
			z.used = d + 1
		}
	}
	return z.norm()
}

// CmpAbs compares the magnitudes of z and x, returning -1, 0 or +1.
func (z *Int) CmpAbs(x *Int) int {
	if z.used != x.used {
		if z.used < x.used {
			return -1
		}
		return 1
	}
	for i := z.used - 1; i >= 0; i-- {
		if z.w[i] != x.w[i] {
			if z.w[i] < x.w[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp compares z and x as signed values, returning -1, 0 or +1. Zero
// compares equal to zero regardless of how either sign flag is stored.
func (z *Int) Cmp(x *Int) int {
	zs, xs := z.Sign(), x.Sign()
	switch {
	case zs < xs:
		return -1
	case zs > xs:
		return 1
	case zs == 0:
		return 0
	}
	c := z.CmpAbs(x)
	if zs < 0 {
		return -c
	}
	return c
}

// Equal reports whether z and x represent the same integer.
func (z *Int) Equal(x *Int) bool {
	return z.Cmp(x) == 0
}

// String returns the decimal representation of z.
func (z *Int) String() string {
	return z.Text(10)
}
