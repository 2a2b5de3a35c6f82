package bn

import (
	"crypto/rand"
	"errors"
	"math/bits"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/bilinearlabs/pairing/pkg/log"
)

// Errors reported by the randomized generators.
var (
	// ErrPrimeSearchExhausted is returned when a prime search exceeds its
	// retry ceiling. The ceilings are sized so that this is effectively
	// unreachable for satisfiable bit lengths.
	ErrPrimeSearchExhausted = errors.New("bn: prime search exhausted retry ceiling")

	// ErrPrimeBits is returned for bit lengths too small to generate the
	// requested kind of prime.
	ErrPrimeBits = errors.New("bn: unsupported prime bit length")
)

// sieveBound bounds the small primes used for trial-division pre-screening.
const sieveBound = 1 << 16

var (
	sieveOnce   sync.Once
	smallPrimes []uint64
)

// smallPrimeList returns the primes below sieveBound, computed once with a
// sieve of Eratosthenes over a bitset.
func smallPrimeList() []uint64 {
	sieveOnce.Do(func() {
		composite := bitset.New(sieveBound)
		for p := uint(2); p*p < sieveBound; p++ {
			if composite.Test(p) {
				continue
			}
			for q := p * p; q < sieveBound; q += p {
				composite.Set(q)
			}
		}
		for p := uint(2); p < sieveBound; p++ {
			if !composite.Test(p) {
				smallPrimes = append(smallPrimes, uint64(p))
			}
		}
	})
	return smallPrimes
}

// modDigit returns the magnitude of z reduced modulo the single digit d.
func (z *Int) modDigit(d uint64) uint64 {
	var rem uint64
	for i := z.used - 1; i >= 0; i-- {
		_, rem = bits.Div64(rem, z.w[i], d)
	}
	return rem
}

// trailingZeroBits returns the number of consecutive zero bits at the least
// significant end of the magnitude of z. z must be non-zero.
func (z *Int) trailingZeroBits() int {
	for i := 0; i < z.used; i++ {
		if z.w[i] != 0 {
			return i*DigitBits + bits.TrailingZeros64(z.w[i])
		}
	}
	panic("bn: trailingZeroBits of zero")
}

// millerRabinRounds picks the witness count by operand size. The counts
// keep the composite misclassification probability below 2^-80 at every
// size.
func millerRabinRounds(bitLen int) int {
	switch {
	case bitLen <= 128:
		return 40
	case bitLen <= 256:
		return 32
	case bitLen <= 512:
		return 24
	case bitLen <= 768:
		return 18
	default:
		return 12
	}
}

// IsPrime reports whether z is (probably) prime, using trial division by a
// sieved table of small primes followed by Miller-Rabin with randomized
// witnesses. Composites are misclassified with probability below 2^-80,
// sufficient for cryptographic key generation. Negative numbers, zero and
// one are not prime.
func (z *Int) IsPrime() bool {
	if z.Sign() <= 0 {
		return false
	}
	if z.BitLen() <= 1 {
		return false // 0 and 1
	}
	if !z.IsOdd() {
		return z.used == 1 && z.w[0] == 2
	}
	for _, p := range smallPrimeList() {
		if z.modDigit(p) == 0 {
			return z.used == 1 && z.w[0] == p
		}
	}
	if z.used == 1 && z.w[0] < sieveBound*sieveBound {
		// Fully trial-divided below the square of the sieve bound.
		return true
	}
	return z.millerRabin(millerRabinRounds(z.BitLen()))
}

// millerRabin runs the given number of Miller-Rabin rounds with witnesses
// drawn uniformly from [2, z-2]. z must be odd and > 3.
func (z *Int) millerRabin(rounds int) bool {
	one := NewUint64(1)
	nm1 := New().Sub(z, one)
	s := nm1.trailingZeroBits()
	d := New().Rsh(nm1, uint(s))

	nm3 := New().Sub(nm1, NewUint64(2))
	x := New()
	for round := 0; round < rounds; round++ {
		a, err := RandMod(nm3)
		if err != nil {
			return false
		}
		a.Add(a, NewUint64(2)) // a in [2, z-2]

		x.ModExp(a, d, z)
		if x.Equal(one) || x.Equal(nm1) {
			continue
		}
		witness := true
		for i := 0; i < s-1; i++ {
			x.Mul(x, x)
			x.Mod(x, z)
			if x.Equal(nm1) {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// Rand returns a uniformly random non-negative Int of at most the given
// number of bits, read from crypto/rand.
func Rand(bitLen int) (*Int, error) {
	if bitLen <= 0 || bitLen > Digits*DigitBits {
		return nil, ErrPrimeBits
	}
	buf := make([]byte, (bitLen+7)/8)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	if rem := bitLen % 8; rem != 0 {
		buf[0] &= byte(1<<rem) - 1
	}
	z := New()
	z.SetBytes(buf)
	return z, nil
}

// RandMod returns a uniformly random Int in [0, m), by rejection sampling.
// m must be positive.
func RandMod(m *Int) (*Int, error) {
	if m.Sign() <= 0 {
		panic("bn: non-positive modulus")
	}
	bl := m.BitLen()
	for {
		z, err := Rand(bl)
		if err != nil {
			return nil, err
		}
		if z.CmpAbs(m) < 0 {
			return z, nil
		}
	}
}

// primeCandidate returns a random odd Int of exactly bitLen bits.
func primeCandidate(bitLen int) (*Int, error) {
	z, err := Rand(bitLen)
	if err != nil {
		return nil, err
	}
	z.SetBit(bitLen-1, 1)
	z.SetBit(0, 1)
	return z, nil
}

// GenPrime generates a probable prime of exactly the given bit length. The
// search retries random candidates up to a fixed ceiling (30 candidates per
// bit, roughly two orders of magnitude above the expected count by the
// prime number theorem) before giving up with ErrPrimeSearchExhausted.
func GenPrime(bitLen int) (*Int, error) {
	if bitLen < 2 {
		return nil, ErrPrimeBits
	}
	if bitLen == 2 {
		return NewUint64(3), nil
	}
	limit := 30 * bitLen
	if limit < 100 {
		limit = 100
	}
	for attempt := 0; attempt < limit; attempt++ {
		z, err := primeCandidate(bitLen)
		if err != nil {
			return nil, err
		}
		if z.IsPrime() {
			return z, nil
		}
	}
	log.Default().Module("bn").Warn("prime search exhausted", "bits", bitLen)
	return nil, ErrPrimeSearchExhausted
}

// GenPrimeSafe generates a safe prime p of exactly the given bit length,
// i.e. one for which (p-1)/2 is also prime.
func GenPrimeSafe(bitLen int) (*Int, error) {
	if bitLen < 3 {
		return nil, ErrPrimeBits
	}
	limit := 20 * bitLen
	one := NewUint64(1)
	for attempt := 0; attempt < limit; attempt++ {
		q, err := GenPrime(bitLen - 1)
		if err != nil {
			return nil, err
		}
		// p = 2q + 1
		p := New().Lsh(q, 1)
		p.Add(p, one)
		if p.BitLen() == bitLen && p.IsPrime() {
			return p, nil
		}
	}
	log.Default().Module("bn").Warn("safe prime search exhausted", "bits", bitLen)
	return nil, ErrPrimeSearchExhausted
}

// GenPrimeStrong generates a strong prime p of exactly the given bit
// length, following Gordon's algorithm: p-1 has a large prime factor r,
// p+1 has a large prime factor s, and r-1 has a large prime factor t.
// Bit lengths below 128 are rejected; the construction needs room for the
// auxiliary primes.
func GenPrimeStrong(bitLen int) (*Int, error) {
	if bitLen < 128 {
		return nil, ErrPrimeBits
	}
	auxBits := bitLen/2 - 16

	one := NewUint64(1)
	two := NewUint64(2)
	for attempt := 0; attempt < 10; attempt++ {
		s, err := GenPrime(auxBits)
		if err != nil {
			return nil, err
		}
		t, err := GenPrime(auxBits)
		if err != nil {
			return nil, err
		}

		// r = 2it + 1, first prime over i = 1, 2, ...
		r := New().Lsh(t, 1)
		step := New().Set(r)
		r.Add(r, one)
		found := false
		for i := 0; i < 4*auxBits; i++ {
			if r.IsPrime() {
				found = true
				break
			}
			r.Add(r, step)
		}
		if !found {
			continue
		}

		// CRT residue R = 2(s^(r-2) mod r)s - 1, which is 1 mod r and
		// -1 mod s.
		exp := New().Sub(r, two)
		u := New().ModExp(s, exp, r)
		R := New().Mul(u, s)
		R.Lsh(R, 1)
		R.Sub(R, one)

		// modulus = 2rs; align a full-size random start X onto the
		// residue class R mod 2rs, then walk the class upward.
		modulus := New().Mul(r, s)
		modulus.Lsh(modulus, 1)

		x, err := Rand(bitLen)
		if err != nil {
			return nil, err
		}
		x.SetBit(bitLen-1, 1)
		diff := New().Sub(R, x)
		diff.Mod(diff, modulus)
		p := New().Add(x, diff)

		for j := 0; j < 20*bitLen; j++ {
			if p.BitLen() > bitLen {
				break
			}
			if p.BitLen() == bitLen && p.IsPrime() {
				return p, nil
			}
			p.Add(p, modulus)
		}
	}
	log.Default().Module("bn").Warn("strong prime search exhausted", "bits", bitLen)
	return nil, ErrPrimeSearchExhausted
}
