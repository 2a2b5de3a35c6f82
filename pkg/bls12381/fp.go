// Package bls12381 implements the BLS12-381 pairing-friendly curve: base
// and extension field arithmetic, the G1 and G2 curve groups, the target
// group GT and the optimal ate pairing between them.
//
// Field elements are fixed six-word (384-bit) arrays in Montgomery form
// and are always kept canonically reduced. Curve points use Jacobian
// projective coordinates with z = 0 denoting the identity. Scalars are
// bn.Int values from the companion big-number package.
package bls12381

import (
	"errors"
	"math/big"
	"math/bits"
)

const (
	fpWords = 6
	// FpBytes is the byte length of a serialized base field element.
	FpBytes = 48
)

// fpModulusHex is the base field prime p.
const fpModulusHex = "1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab"

// fe is a base field element: six 64-bit little-endian words in Montgomery
// form, canonically reduced below p.
type fe [fpWords]uint64

func (z *fe) set(x *fe) *fe {
	*z = *x
	return z
}

// Errors shared by the field and point decoders.
var (
	ErrInvalidEncoding  = errors.New("bls12381: invalid encoding length")
	ErrNonCanonical     = errors.New("bls12381: encoding not a canonical field element")
	ErrPointNotOnCurve  = errors.New("bls12381: point not on curve")
	ErrPointWrongGroup  = errors.New("bls12381: point not in prime-order subgroup")
	ErrNoSquareRoot     = errors.New("bls12381: no square root for packed x-coordinate")
	ErrInvalidPointFlag = errors.New("bls12381: invalid point encoding flags")
)

// Montgomery parameters, derived from the modulus at package init. Deriving
// them from the single hex constant keeps hand-transcription out of the
// arithmetic.
var (
	modulus fe     // p
	fpR1    fe     // 2^384 mod p, the Montgomery image of 1
	fpR2    fe     // (2^384)^2 mod p, for conversion into Montgomery form
	fpInv0  uint64 // -p^-1 mod 2^64

	fpBig *big.Int // p as big.Int, for init-time constant derivation only

	pm2Words   []uint64 // p - 2, the Fermat inversion exponent
	pp1d4Words []uint64 // (p + 1) / 4, the square root exponent (p = 3 mod 4)
	pm1d2Words []uint64 // (p - 1) / 2, the Euler criterion exponent
)

func init() {
	var ok bool
	fpBig, ok = new(big.Int).SetString(fpModulusHex, 16)
	if !ok {
		panic("bls12381: bad modulus constant")
	}
	wordsToFe(&modulus, bigToWords(fpBig))

	r := new(big.Int).Lsh(big.NewInt(1), fpWords*64)
	wordsToFe(&fpR1, bigToWords(new(big.Int).Mod(r, fpBig)))
	wordsToFe(&fpR2, bigToWords(new(big.Int).Mod(new(big.Int).Mul(r, r), fpBig)))

	inv := new(big.Int).ModInverse(fpBig, new(big.Int).Lsh(big.NewInt(1), 64))
	inv.Neg(inv)
	inv.Mod(inv, new(big.Int).Lsh(big.NewInt(1), 64))
	fpInv0 = inv.Uint64()

	pm2Words = bigToWords(new(big.Int).Sub(fpBig, big.NewInt(2)))
	pp1d4Words = bigToWords(new(big.Int).Rsh(new(big.Int).Add(fpBig, big.NewInt(1)), 2))
	pm1d2Words = bigToWords(new(big.Int).Rsh(new(big.Int).Sub(fpBig, big.NewInt(1)), 1))

	// Derived tower and pairing constants depend on the Montgomery
	// parameters above, so they are chained here rather than spread over
	// per-file init functions.
	fp12InitConstants()
	curveInitConstants()
	pairingInitConstants()
	mapInitConstants()
}

// bigToWords returns the little-endian 64-bit words of a non-negative
// big.Int.
func bigToWords(b *big.Int) []uint64 {
	n := (b.BitLen() + 63) / 64
	if n == 0 {
		n = 1
	}
	w := make([]uint64, n)
	t := new(big.Int).Set(b)
	mask := new(big.Int).SetUint64(^uint64(0))
	for i := 0; i < n; i++ {
		w[i] = new(big.Int).And(t, mask).Uint64()
		t.Rsh(t, 64)
	}
	return w
}

func wordsToFe(z *fe, w []uint64) {
	if len(w) > fpWords {
		panic("bls12381: constant exceeds field width")
	}
	var t fe
	copy(t[:], w)
	*z = t
}

// feFromHex parses a raw (non-Montgomery) hex constant into Montgomery
// form. Init-time only; panics on malformed input.
func feFromHex(s string) *fe {
	b, ok := new(big.Int).SetString(s, 16)
	if !ok || b.Sign() < 0 || b.Cmp(fpBig) >= 0 {
		panic("bls12381: bad field constant " + s)
	}
	var z fe
	wordsToFe(&z, bigToWords(b))
	out := new(fe)
	fpMul(out, &z, &fpR2)
	return out
}

// mac returns the high and low words of a*b + t + c.
func mac(a, b, t, c uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(a, b)
	var carry uint64
	lo, carry = bits.Add64(lo, t, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return hi, lo
}

// fpMul sets z = x * y in Montgomery form, by word-interleaved (CIOS)
// Montgomery multiplication.
func fpMul(z, x, y *fe) {
	var t [fpWords + 2]uint64
	for i := 0; i < fpWords; i++ {
		var c uint64
		for j := 0; j < fpWords; j++ {
			c, t[j] = mac(x[j], y[i], t[j], c)
		}
		var carry uint64
		t[fpWords], carry = bits.Add64(t[fpWords], c, 0)
		t[fpWords+1] = carry

		m := t[0] * fpInv0
		c, _ = mac(m, modulus[0], t[0], 0)
		for j := 1; j < fpWords; j++ {
			c, t[j-1] = mac(m, modulus[j], t[j], c)
		}
		t[fpWords-1], carry = bits.Add64(t[fpWords], c, 0)
		t[fpWords] = t[fpWords+1] + carry
	}

	// At most one final subtraction of p is needed (4p < 2^384).
	var d fe
	var borrow uint64
	for i := 0; i < fpWords; i++ {
		d[i], borrow = bits.Sub64(t[i], modulus[i], borrow)
	}
	mask := selectMask(t[fpWords] != 0 || borrow == 0)
	for i := 0; i < fpWords; i++ {
		z[i] = (d[i] & mask) | (t[i] &^ mask)
	}
}

// fpSqr sets z = x^2.
func fpSqr(z, x *fe) {
	fpMul(z, x, x)
}

// selectMask returns all-ones when cond is true, zero otherwise.
func selectMask(cond bool) uint64 {
	if cond {
		return ^uint64(0)
	}
	return 0
}

// nonZeroMask returns all-ones when v is non-zero, in a branch-free way.
func nonZeroMask(v uint64) uint64 {
	return uint64(int64(v|-v) >> 63)
}

// fpAdd sets z = x + y.
func fpAdd(z, x, y *fe) {
	var s fe
	var carry uint64
	for i := 0; i < fpWords; i++ {
		s[i], carry = bits.Add64(x[i], y[i], carry)
	}
	var d fe
	var borrow uint64
	for i := 0; i < fpWords; i++ {
		d[i], borrow = bits.Sub64(s[i], modulus[i], borrow)
	}
	mask := nonZeroMask(carry) | ^nonZeroMask(borrow)
	for i := 0; i < fpWords; i++ {
		z[i] = (d[i] & mask) | (s[i] &^ mask)
	}
}

// fpDouble sets z = 2x.
func fpDouble(z, x *fe) {
	fpAdd(z, x, x)
}

// fpSub sets z = x - y.
func fpSub(z, x, y *fe) {
	var d fe
	var borrow uint64
	for i := 0; i < fpWords; i++ {
		d[i], borrow = bits.Sub64(x[i], y[i], borrow)
	}
	// Add p back when the subtraction borrowed.
	mask := nonZeroMask(borrow)
	var carry uint64
	for i := 0; i < fpWords; i++ {
		z[i], carry = bits.Add64(d[i], modulus[i]&mask, carry)
	}
}

// fpNeg sets z = -x, keeping zero canonical.
func fpNeg(z, x *fe) {
	var d fe
	var borrow uint64
	for i := 0; i < fpWords; i++ {
		d[i], borrow = bits.Sub64(modulus[i], x[i], borrow)
	}
	mask := ^feIsZeroMask(x)
	for i := 0; i < fpWords; i++ {
		z[i] = d[i] & mask
	}
}

// feIsZeroMask returns all-ones when x == 0, without branching on the
// value under test.
func feIsZeroMask(x *fe) uint64 {
	var acc uint64
	for i := 0; i < fpWords; i++ {
		acc |= x[i]
	}
	return ^nonZeroMask(acc)
}

func feIsZero(x *fe) bool {
	return feIsZeroMask(x) == ^uint64(0)
}

// feEqual compares two field elements without branching on their values.
func feEqual(x, y *fe) bool {
	var acc uint64
	for i := 0; i < fpWords; i++ {
		acc |= x[i] ^ y[i]
	}
	return nonZeroMask(acc) == 0
}

// fpSelect sets z = a when cond is 1, b when cond is 0, branch-free.
func fpSelect(z, a, b *fe, cond uint64) {
	mask := nonZeroMask(cond)
	for i := 0; i < fpWords; i++ {
		z[i] = (a[i] & mask) | (b[i] &^ mask)
	}
}

// fpExp sets z = x^e where e is given as little-endian words (a plain
// integer, not a field element).
func fpExp(z, x *fe, e []uint64) {
	r := fpR1
	n := len(e) * 64
	for i := n - 1; i >= 0; i-- {
		fpSqr(&r, &r)
		if e[i/64]>>(i%64)&1 == 1 {
			fpMul(&r, &r, x)
		}
	}
	*z = r
}

// fpInverse sets z = x^-1 via Fermat's little theorem. The inverse of zero
// is zero; callers guard the zero case where it matters.
func fpInverse(z, x *fe) {
	fpExp(z, x, pm2Words)
}

// fpSqrt sets z to a square root of x and reports whether one exists.
// p = 3 mod 4, so the candidate root is x^((p+1)/4).
func fpSqrt(z, x *fe) bool {
	var r, check fe
	fpExp(&r, x, pp1d4Words)
	fpSqr(&check, &r)
	if !feEqual(&check, x) {
		return false
	}
	*z = r
	return true
}

// fpIsSquare reports whether x is a quadratic residue, by Euler's
// criterion. Zero counts as a square.
func fpIsSquare(x *fe) bool {
	if feIsZero(x) {
		return true
	}
	var r fe
	fpExp(&r, x, pm1d2Words)
	return feEqual(&r, &fpR1)
}

// fpSgn0 returns the parity of the canonical (non-Montgomery) value of x,
// per the sign convention used for packed point encodings.
func fpSgn0(x *fe) int {
	var plain fe
	fromMont(&plain, x)
	return int(plain[0] & 1)
}

// toMont converts a canonical residue into Montgomery form.
func toMont(z, x *fe) {
	fpMul(z, x, &fpR2)
}

// fromMont converts a Montgomery-form element back to its canonical
// residue, via a Montgomery multiplication by 1.
func fromMont(z, x *fe) {
	one := fe{1}
	fpMul(z, x, &one)
}

// feToBytes returns the fixed-width big-endian encoding of the canonical
// residue.
func feToBytes(x *fe) []byte {
	var plain fe
	fromMont(&plain, x)
	out := make([]byte, FpBytes)
	for i := 0; i < FpBytes; i++ {
		out[FpBytes-1-i] = byte(plain[i/8] >> (8 * (i % 8)))
	}
	return out
}

// feFromBytes parses a fixed-width big-endian encoding, rejecting values
// outside [0, p).
func feFromBytes(z *fe, in []byte) error {
	if len(in) != FpBytes {
		return ErrInvalidEncoding
	}
	var plain fe
	for i := 0; i < FpBytes; i++ {
		plain[i/8] |= uint64(in[FpBytes-1-i]) << (8 * (i % 8))
	}
	// Reject non-canonical residues.
	var borrow uint64
	for i := 0; i < fpWords; i++ {
		_, borrow = bits.Sub64(plain[i], modulus[i], borrow)
	}
	if borrow == 0 {
		return ErrNonCanonical
	}
	toMont(z, &plain)
	return nil
}
