package bls12381

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/bilinearlabs/pairing/pkg/bn"
)

// genSmallScalar produces positive scalars up to 64 bits, enough to
// exercise the ladders without making the pairing properties slow.
func genSmallScalar() gopter.Gen {
	return gen.UInt64().Map(func(v uint64) *bn.Int {
		return bn.NewUint64(v)
	})
}

func TestPropG1ScalarDistributes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)
	properties.Property("[a+b]P == [a]P + [b]P", prop.ForAll(
		func(a, b *bn.Int) bool {
			p := G1Generator()
			s := new(bn.Int).Add(a, b)
			return G1Mul(p, s).Equal(G1Add(G1Mul(p, a), G1Mul(p, b)))
		},
		genSmallScalar(), genSmallScalar(),
	))
	properties.Property("mulsim matches separate muls", prop.ForAll(
		func(a, b *bn.Int) bool {
			p := G1Generator()
			q := G1Double(p)
			want := G1Add(G1Mul(p, a), G1Mul(q, b))
			return G1MulSim(p, a, q, b).Equal(want)
		},
		genSmallScalar(), genSmallScalar(),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPropG2ScalarDistributes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 6

	properties := gopter.NewProperties(parameters)
	properties.Property("[a+b]P == [a]P + [b]P", prop.ForAll(
		func(a, b *bn.Int) bool {
			p := G2Generator()
			s := new(bn.Int).Add(a, b)
			return G2Mul(p, s).Equal(G2Add(G2Mul(p, a), G2Mul(p, b)))
		},
		genSmallScalar(), genSmallScalar(),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPropPairingBilinear(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 3

	base := Pair(G1Generator(), G2Generator())

	properties := gopter.NewProperties(parameters)
	properties.Property("e([a]P, [b]Q) == e(P, Q)^(a*b)", prop.ForAll(
		func(a, b uint64) bool {
			// Cap the scalars so a*b stays within one word.
			a, b = a%(1<<32), b%(1<<32)
			lhs := Pair(
				G1Mul(G1Generator(), bn.NewUint64(a)),
				G2Mul(G2Generator(), bn.NewUint64(b)),
			)
			return lhs.Equal(GTExpDig(base, a*b))
		},
		gen.UInt64(), gen.UInt64(),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
