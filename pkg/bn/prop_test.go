package bn

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// genInt produces random signed Ints from raw byte material.
func genInt(maxBytes int) gopter.Gen {
	return gen.SliceOfN(maxBytes, gen.UInt8()).Map(func(b []byte) *Int {
		z := New().SetBytes(b)
		if len(b) > 0 && b[0]&1 == 1 {
			z.Neg(z)
		}
		return z
	})
}

func TestPropModSignLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("mod(a, m) is in [0, m) for any sign of a", prop.ForAll(
		func(a, m *Int) bool {
			if m.IsZero() {
				return true
			}
			m.Abs(m)
			r := New().Mod(a, m)
			return r.Sign() >= 0 && r.Cmp(m) < 0
		},
		genInt(48), genInt(24),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPropAddSubInverse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("(a + b) - b == a", prop.ForAll(
		func(a, b *Int) bool {
			s := New().Add(a, b)
			s.Sub(s, b)
			return s.Cmp(a) == 0
		},
		genInt(64), genInt(64),
	))
	properties.Property("a + (-a) == 0", prop.ForAll(
		func(a *Int) bool {
			return New().Add(a, New().Neg(a)).IsZero()
		},
		genInt(64),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPropStringRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("SetString(Text(a, radix), radix) == a", prop.ForAll(
		func(a *Int, radix uint8) bool {
			r := 2 + int(radix)%63
			back, err := New().SetString(a.Text(r), r)
			return err == nil && back.Cmp(a) == 0
		},
		genInt(48), gen.UInt8(),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Cross-checks against holiman/uint256 for operands that fit 256 bits.

func TestUint256CrossCheckAddMul(t *testing.T) {
	rng := newTestRand(20)
	for i := 0; i < 300; i++ {
		ab := randBytes(rng, 16)
		bb := randBytes(rng, 16)

		a := New().SetBytes(ab)
		b := New().SetBytes(bb)
		ua := new(uint256.Int).SetBytes(ab)
		ub := new(uint256.Int).SetBytes(bb)

		sum := New().Add(a, b)
		usum := new(uint256.Int).Add(ua, ub)
		require.Equal(t, usum.Bytes(), sum.Bytes(), "add mismatch")

		prod := New().Mul(a, b)
		uprod := new(uint256.Int).Mul(ua, ub)
		require.Equal(t, uprod.Bytes(), prod.Bytes(), "mul mismatch")
	}
}

func TestUint256CrossCheckDivMod(t *testing.T) {
	rng := newTestRand(21)
	for i := 0; i < 300; i++ {
		ab := randBytes(rng, 32)
		bb := randBytes(rng, 12)

		a := New().SetBytes(ab)
		b := New().SetBytes(bb)
		if b.IsZero() {
			continue
		}
		ua := new(uint256.Int).SetBytes(ab)
		ub := new(uint256.Int).SetBytes(bb)

		q := New().Div(a, b)
		uq := new(uint256.Int).Div(ua, ub)
		require.Equal(t, uq.Bytes(), q.Bytes(), "div mismatch")

		r := New().Mod(a, b)
		ur := new(uint256.Int).Mod(ua, ub)
		require.Equal(t, ur.Bytes(), r.Bytes(), "mod mismatch")
	}
}
