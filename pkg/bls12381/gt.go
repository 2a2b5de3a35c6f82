package bls12381

import "github.com/bilinearlabs/pairing/pkg/bn"

// GTBytes is the encoding size of a GT element: twelve base field
// coefficients.
const GTBytes = 12 * FpBytes

// GT is an element of the target group, the r-order subgroup of the
// multiplicative group of Fp12. The zero value is not a valid element;
// use SetUnity, Pair, or SetBytes.
type GT struct {
	e fe12
}

// GTOne returns the identity of GT.
func GTOne() *GT {
	g := &GT{}
	g.e.set(fp12One())
	return g
}

// Set copies b into g.
func (g *GT) Set(b *GT) *GT {
	g.e.set(&b.e)
	return g
}

// SetUnity sets g to the identity.
func (g *GT) SetUnity() *GT {
	g.e.set(fp12One())
	return g
}

// IsUnity reports whether g is the identity.
func (g *GT) IsUnity() bool {
	return g.e.isOne()
}

// Equal reports whether g and b are the same element.
func (g *GT) Equal(b *GT) bool {
	return g.e.equal(&b.e)
}

// GTMul returns a * b.
func GTMul(a, b *GT) *GT {
	g := &GT{}
	g.e.set(fp12Mul(&a.e, &b.e))
	return g
}

// GTSqr returns a^2.
func GTSqr(a *GT) *GT {
	g := &GT{}
	g.e.set(fp12Sqr(&a.e))
	return g
}

// GTInv returns a^-1. On the pairing subgroup this equals the
// conjugate; the general inversion is used so arbitrary decoded values
// invert correctly too.
func GTInv(a *GT) *GT {
	g := &GT{}
	g.e.set(fp12Inv(&a.e))
	return g
}

// GTExp returns a^k for an arbitrary signed scalar.
func GTExp(a *GT, k *bn.Int) *GT {
	if k.IsZero() {
		return GTOne()
	}
	g := &GT{}
	g.e.set(fp12ExpWords(&a.e, scalarWords(k)))
	if k.Sign() < 0 {
		g = GTInv(g)
	}
	return g
}

// GTExpDig returns a^k for a single-word exponent.
func GTExpDig(a *GT, k uint64) *GT {
	if k == 0 {
		return GTOne()
	}
	g := &GT{}
	g.e.set(fp12ExpWords(&a.e, []uint64{k}))
	return g
}

// IsValid reports whether g lies in the r-order subgroup: g^r == 1.
func (g *GT) IsValid() bool {
	return fp12ExpWords(&g.e, orderWords).isOne()
}

// Bytes encodes g as the twelve base field coefficients in tower order,
// c0 before c1 at every level, each 48 bytes big endian.
func (g *GT) Bytes() []byte {
	out := make([]byte, 0, GTBytes)
	for _, c6 := range []*fe6{&g.e.c0, &g.e.c1} {
		for _, c2 := range []*fe2{&c6.c0, &c6.c1, &c6.c2} {
			out = append(out, feToBytes(&c2.c0)...)
			out = append(out, feToBytes(&c2.c1)...)
		}
	}
	return out
}

// SetBytes decodes an encoding produced by Bytes. Coefficients must be
// canonical; subgroup membership is IsValid's job.
func (g *GT) SetBytes(in []byte) error {
	if len(in) != GTBytes {
		return ErrInvalidEncoding
	}
	var t fe12
	i := 0
	for _, c6 := range []*fe6{&t.c0, &t.c1} {
		for _, c2 := range []*fe2{&c6.c0, &c6.c1, &c6.c2} {
			if err := feFromBytes(&c2.c0, in[i:i+FpBytes]); err != nil {
				return err
			}
			i += FpBytes
			if err := feFromBytes(&c2.c1, in[i:i+FpBytes]); err != nil {
				return err
			}
			i += FpBytes
		}
	}
	g.e.set(&t)
	return nil
}
