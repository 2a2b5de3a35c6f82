package bn

import (
	"errors"
	"math/bits"
)

// ErrSyntax is returned when SetString meets a malformed number.
var ErrSyntax = errors.New("bn: malformed number literal")

// digitAlphabet encodes values 0..63 for the string representation. The
// same alphabet serves every radix from 2 to 64.
const digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ+/"

// SizeBin returns the length in bytes of the binary form of z: the minimal
// big-endian magnitude encoding. The size of zero is 0.
func (z *Int) SizeBin() int {
	return (z.BitLen() + 7) / 8
}

// Bytes returns the magnitude of z as a minimal big-endian byte slice. The
// sign is not encoded; zero encodes as an empty slice.
func (z *Int) Bytes() []byte {
	n := z.SizeBin()
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[n-1-i] = byte(z.w[i/8] >> (8 * (i % 8)))
	}
	return buf
}

// SetBytes sets z to the non-negative integer with the given big-endian
// magnitude encoding and returns z. Leading zero bytes are accepted.
// Panics if the value exceeds the digit capacity.
func (z *Int) SetBytes(buf []byte) *Int {
	if len(buf) > Digits*8 {
		panic("bn: encoding exceeds digit capacity")
	}
	z.SetZero()
	n := len(buf)
	for i := 0; i < n; i++ {
		b := buf[n-1-i]
		z.w[i/8] |= uint64(b) << (8 * (i % 8))
	}
	z.used = (n + 7) / 8
	if z.used == 0 {
		z.used = 1
	}
	return z.norm()
}

// divDigit sets z to the magnitude quotient |z| / d and returns the
// remainder. d must be non-zero.
func (z *Int) divDigit(d uint64) uint64 {
	var rem uint64
	for i := z.used - 1; i >= 0; i-- {
		z.w[i], rem = bits.Div64(rem, z.w[i], d)
	}
	return rem
}

// mulAddDigit sets the magnitude of z to |z|*m + a.
func (z *Int) mulAddDigit(m, a uint64) {
	carry := a
	for i := 0; i < z.used; i++ {
		hi, lo := bits.Mul64(z.w[i], m)
		var c uint64
		lo, c = bits.Add64(lo, carry, 0)
		z.w[i] = lo
		carry = hi + c
	}
	if carry != 0 {
		if z.used == Digits {
			panic("bn: mulAddDigit overflows digit capacity")
		}
		z.w[z.used] = carry
		z.used++
	}
	z.norm()
}

// Text returns the string representation of z in the given radix, which
// must be between 2 and 64. Negative values carry a leading minus sign.
func (z *Int) Text(radix int) string {
	if radix < 2 || radix > 64 {
		panic("bn: radix out of range")
	}
	if z.IsZero() {
		return "0"
	}
	t := New().Abs(z)
	var out []byte
	for !t.IsZero() {
		r := t.divDigit(uint64(radix))
		t.norm()
		out = append(out, digitAlphabet[r])
	}
	if z.neg {
		out = append(out, '-')
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// digitValue maps an alphabet character back to its value for the given
// radix. For radices up to 36 uppercase letters are folded to lowercase, so
// conventional hexadecimal parses either way.
func digitValue(c byte, radix int) (uint64, bool) {
	if radix <= 36 && c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	var v uint64
	switch {
	case c >= '0' && c <= '9':
		v = uint64(c - '0')
	case c >= 'a' && c <= 'z':
		v = uint64(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = uint64(c-'A') + 36
	case c == '+':
		v = 62
	case c == '/':
		v = 63
	default:
		return 0, false
	}
	if v >= uint64(radix) {
		return 0, false
	}
	return v, true
}

// SetString sets z to the value of s interpreted in the given radix
// (2 to 64) and returns z. A leading '-' negates. Round-trips exactly with
// Text at every radix.
func (z *Int) SetString(s string, radix int) (*Int, error) {
	if radix < 2 || radix > 64 {
		panic("bn: radix out of range")
	}
	if len(s) == 0 {
		return nil, ErrSyntax
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
		if len(s) == 0 {
			return nil, ErrSyntax
		}
	}
	t := New()
	for i := 0; i < len(s); i++ {
		v, ok := digitValue(s[i], radix)
		if !ok {
			return nil, ErrSyntax
		}
		t.mulAddDigit(uint64(radix), v)
	}
	t.neg = neg && !t.IsZero()
	return z.Set(t), nil
}
