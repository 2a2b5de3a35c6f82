package bls12381

// Deterministic hash-to-curve for G1 and G2.
//
// A SHAKE-256 XOF over the domain tag and message derives uniform field
// elements. Each element maps to the curve by try-and-increment with the
// sign of y aligned to the sign of the input, two mapped points are added,
// and the cofactor is cleared. The mapping is not constant time.

import (
	"golang.org/x/crypto/sha3"

	"github.com/bilinearlabs/pairing/pkg/bn"
)

const (
	g1MapDomain = "BLS12381G1_XOF:SHAKE-256_TAI_RO_"
	g2MapDomain = "BLS12381G2_XOF:SHAKE-256_TAI_RO_"

	// Bytes drawn from the XOF per field element. 128 bits beyond the
	// field size keeps the mod-p bias negligible.
	mapFieldDraw = FpBytes + 16
)

var modulusBn *bn.Int

func mapInitConstants() {
	modulusBn = new(bn.Int).SetBytes(fpBig.Bytes())
}

// hashToFp derives count base field elements from msg under the given
// domain tag.
func hashToFp(domain string, msg []byte, count int) []*fe {
	h := sha3.NewShake256()
	h.Write([]byte(domain))
	h.Write(msg)

	out := make([]*fe, count)
	buf := make([]byte, mapFieldDraw)
	t := bn.New()
	for i := range out {
		h.Read(buf)
		t.SetBytes(buf)
		t.Mod(t, modulusBn)

		enc := make([]byte, FpBytes)
		b := t.Bytes()
		copy(enc[FpBytes-len(b):], b)
		out[i] = &fe{}
		if err := feFromBytes(out[i], enc); err != nil {
			panic("bls12381: reduced element out of range")
		}
	}
	return out
}

// mapToG1 maps a field element to a curve point by walking x = u, u+1, ...
// until x^3 + 4 is a square, then picking the root whose sign matches u.
// The walk is bounded; on the way every residue has an independent 1/2
// chance of being square, so the bound is unreachable in practice.
func mapToG1(u *fe) *PointG1 {
	var x, rhs, y fe
	x.set(u)
	for i := 0; i < 256; i++ {
		fpSqr(&rhs, &x)
		fpMul(&rhs, &rhs, &x)
		fpAdd(&rhs, &rhs, &curveB)
		if fpSqrt(&y, &rhs) {
			if fpSgn0(&y) != fpSgn0(u) {
				fpNeg(&y, &y)
			}
			p := &PointG1{}
			p.x.set(&x)
			p.y.set(&y)
			p.z.set(&fpR1)
			return p
		}
		fpAdd(&x, &x, &fpR1)
	}
	return G1Infinity()
}

// mapToG2 is the G2 counterpart on the twist, incrementing the real part.
func mapToG2(u *fe2) *PointG2 {
	x := new(fe2).set(u)
	for i := 0; i < 256; i++ {
		rhs := fp2Add(fp2Mul(fp2Sqr(x), x), &twistB)
		if y := fp2Sqrt(rhs); y != nil {
			if fp2Sgn0(y) != fp2Sgn0(u) {
				y = fp2Neg(y)
			}
			p := &PointG2{}
			p.x.set(x)
			p.y.set(y)
			p.z.set(fp2One())
			return p
		}
		fpAdd(&x.c0, &x.c0, &fpR1)
	}
	return G2Infinity()
}

// G1Map hashes a message to a point of G1. The result always passes
// IsValid.
func G1Map(msg []byte) *PointG1 {
	u := hashToFp(g1MapDomain, msg, 2)
	p := G1Add(mapToG1(u[0]), mapToG1(u[1]))
	return g1MulWords(p, g1CofactorWords)
}

// G2Map hashes a message to a point of G2.
func G2Map(msg []byte) *PointG2 {
	u := hashToFp(g2MapDomain, msg, 4)
	a := &fe2{c0: *u[0], c1: *u[1]}
	b := &fe2{c0: *u[2], c1: *u[3]}
	p := G2Add(mapToG2(a), mapToG2(b))
	return g2MulWords(p, g2CofactorWords)
}
