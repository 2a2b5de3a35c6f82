package bls12381

// G1 points on y^2 = x^3 + 4 over the base field.
//
// Points are held in Jacobian coordinates (X, Y, Z) where the affine point
// is (X/Z^2, Y/Z^3). The identity has Z = 0.

import (
	"math/big"

	"github.com/bilinearlabs/pairing/pkg/bn"
)

// G1Bytes is the packed (compressed) encoding size of a G1 point. The
// unpacked form is twice that.
const G1Bytes = FpBytes

const (
	g1GenXHex = "17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"
	g1GenYHex = "08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1"

	groupOrderHex = "73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001"
	g1CofactorHex = "396c8c005555e1568c00aaab0000aaab"
	g2CofactorHex = "5d543a95414e7f1091d50792876a202cd91de4547085abaa68a205b2e5a7ddfa628f1cb4d9e82ef21537e293a6691ae1616ec6e786f0c70cf1c38e31c7238e5"
	loopParamHex  = "d201000000010000" // |x|, the BLS parameter magnitude; x itself is negative
)

var (
	curveB fe // 4, the G1 curve coefficient
	g1GenX fe
	g1GenY fe

	orderBig        *big.Int
	orderWords      []uint64
	g1CofactorWords []uint64
)

func curveInitConstants() {
	four := new(big.Int).SetInt64(4)
	wordsToFe(&curveB, bigToWords(four))
	toMont(&curveB, &curveB)

	g1GenX = *feFromHex(g1GenXHex)
	g1GenY = *feFromHex(g1GenYHex)

	var ok bool
	orderBig, ok = new(big.Int).SetString(groupOrderHex, 16)
	if !ok {
		panic("bls12381: bad group order constant")
	}
	orderWords = bigToWords(orderBig)

	h1, ok := new(big.Int).SetString(g1CofactorHex, 16)
	if !ok {
		panic("bls12381: bad cofactor constant")
	}
	g1CofactorWords = bigToWords(h1)

	g2InitConstants()
}

// PointG1 is a point of G1 in Jacobian coordinates. The zero value is the
// identity.
type PointG1 struct {
	x, y, z fe
}

// G1Generator returns the fixed generator of G1.
func G1Generator() *PointG1 {
	p := &PointG1{x: g1GenX, y: g1GenY}
	p.z.set(&fpR1)
	return p
}

// G1Infinity returns the identity of G1.
func G1Infinity() *PointG1 {
	return &PointG1{}
}

// Set copies q into p.
func (p *PointG1) Set(q *PointG1) *PointG1 {
	p.x.set(&q.x)
	p.y.set(&q.y)
	p.z.set(&q.z)
	return p
}

// IsInfinity reports whether p is the identity (Z = 0).
func (p *PointG1) IsInfinity() bool {
	return feIsZero(&p.z)
}

// SetInfinity sets p to the identity.
func (p *PointG1) SetInfinity() *PointG1 {
	*p = PointG1{}
	return p
}

// Normalize scales p so that Z = 1, leaving the identity untouched. One
// field inversion; affine coordinates can then be read directly.
func (p *PointG1) Normalize() *PointG1 {
	if p.IsInfinity() {
		return p
	}
	var zInv, zInv2 fe
	fpInverse(&zInv, &p.z)
	fpSqr(&zInv2, &zInv)
	fpMul(&p.x, &p.x, &zInv2)
	fpMul(&zInv2, &zInv2, &zInv)
	fpMul(&p.y, &p.y, &zInv2)
	p.z.set(&fpR1)
	return p
}

// Equal reports whether p and q are the same point, comparing in Jacobian
// form by cross multiplication.
func (p *PointG1) Equal(q *PointG1) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	var pz2, qz2, l, r fe
	fpSqr(&pz2, &p.z)
	fpSqr(&qz2, &q.z)
	fpMul(&l, &p.x, &qz2)
	fpMul(&r, &q.x, &pz2)
	if !feEqual(&l, &r) {
		return false
	}
	fpMul(&pz2, &pz2, &p.z)
	fpMul(&qz2, &qz2, &q.z)
	fpMul(&l, &p.y, &qz2)
	fpMul(&r, &q.y, &pz2)
	return feEqual(&l, &r)
}

// G1Add returns a + b.
func G1Add(a, b *PointG1) *PointG1 {
	if a.IsInfinity() {
		return new(PointG1).Set(b)
	}
	if b.IsInfinity() {
		return new(PointG1).Set(a)
	}

	var z1sq, z2sq, u1, u2, s1, s2, t fe
	fpSqr(&z1sq, &a.z)
	fpSqr(&z2sq, &b.z)
	fpMul(&u1, &a.x, &z2sq)
	fpMul(&u2, &b.x, &z1sq)
	fpMul(&t, &b.z, &z2sq)
	fpMul(&s1, &a.y, &t)
	fpMul(&t, &a.z, &z1sq)
	fpMul(&s2, &b.y, &t)

	if feEqual(&u1, &u2) {
		if feEqual(&s1, &s2) {
			return G1Double(a)
		}
		return G1Infinity()
	}

	var h, i, j, r, v fe
	fpSub(&h, &u2, &u1)
	fpDouble(&i, &h)
	fpSqr(&i, &i)
	fpMul(&j, &h, &i)
	fpSub(&r, &s2, &s1)
	fpDouble(&r, &r)
	fpMul(&v, &u1, &i)

	p := &PointG1{}
	fpSqr(&t, &r)
	fpSub(&t, &t, &j)
	fpDouble(&i, &v)
	fpSub(&p.x, &t, &i)

	fpSub(&t, &v, &p.x)
	fpMul(&t, &r, &t)
	fpMul(&i, &s1, &j)
	fpDouble(&i, &i)
	fpSub(&p.y, &t, &i)

	fpAdd(&t, &a.z, &b.z)
	fpSqr(&t, &t)
	fpSub(&t, &t, &z1sq)
	fpSub(&t, &t, &z2sq)
	fpMul(&p.z, &t, &h)
	return p
}

// G1Double returns 2a. The curve has no x term, so the a = 0 doubling
// formula applies.
func G1Double(a *PointG1) *PointG1 {
	if a.IsInfinity() {
		return G1Infinity()
	}

	var xx, yy, yyyy, d, e, t fe
	fpSqr(&xx, &a.x)
	fpSqr(&yy, &a.y)
	fpSqr(&yyyy, &yy)

	fpAdd(&d, &a.x, &yy)
	fpSqr(&d, &d)
	fpSub(&d, &d, &xx)
	fpSub(&d, &d, &yyyy)
	fpDouble(&d, &d)

	fpDouble(&e, &xx)
	fpAdd(&e, &e, &xx)

	p := &PointG1{}
	fpSqr(&t, &e)
	fpDouble(&xx, &d)
	fpSub(&p.x, &t, &xx)

	fpSub(&t, &d, &p.x)
	fpMul(&t, &e, &t)
	fpDouble(&yyyy, &yyyy)
	fpDouble(&yyyy, &yyyy)
	fpDouble(&yyyy, &yyyy)
	fpSub(&p.y, &t, &yyyy)

	fpDouble(&t, &a.y)
	fpMul(&p.z, &t, &a.z)
	return p
}

// G1Neg returns -a.
func G1Neg(a *PointG1) *PointG1 {
	p := new(PointG1).Set(a)
	fpNeg(&p.y, &p.y)
	return p
}

// G1Sub returns a - b.
func G1Sub(a, b *PointG1) *PointG1 {
	return G1Add(a, G1Neg(b))
}

// g1Select returns a when cond is nonzero and b otherwise, without
// branching on cond.
func g1Select(a, b *PointG1, cond uint64) *PointG1 {
	p := &PointG1{}
	fpSelect(&p.x, &a.x, &b.x, cond)
	fpSelect(&p.y, &a.y, &b.y, cond)
	fpSelect(&p.z, &a.z, &b.z, cond)
	return p
}

// g1MulWords computes [k]p for a little-endian word scalar with a
// double-and-always-add ladder: the point operation sequence does not
// depend on the scalar bits, only the select condition does.
func g1MulWords(p *PointG1, k []uint64) *PointG1 {
	acc := G1Infinity()
	n := len(k) * 64
	for i := n - 1; i >= 0; i-- {
		acc = G1Double(acc)
		sum := G1Add(acc, p)
		acc = g1Select(sum, acc, k[i/64]>>uint(i%64)&1)
	}
	return acc
}

// G1Mul returns [k]p for an arbitrary signed scalar. A negative scalar
// multiplies by the magnitude and negates the result.
func G1Mul(p *PointG1, k *bn.Int) *PointG1 {
	if k.IsZero() || p.IsInfinity() {
		return G1Infinity()
	}
	r := g1MulWords(p, scalarWords(k))
	if k.Sign() < 0 {
		r = G1Neg(r)
	}
	return r
}

// scalarWords returns the little-endian words of |k|, without trailing
// zero words.
func scalarWords(k *bn.Int) []uint64 {
	n := (k.BitLen() + 63) / 64
	if n == 0 {
		n = 1
	}
	w := make([]uint64, n)
	for i := 0; i < n*64; i++ {
		w[i/64] |= uint64(k.Bit(i)) << uint(i%64)
	}
	return w
}

// G1MulSim returns [k]p + [m]q with Shamir interleaving over the shared
// bit scan, using the precomputed p + q.
func G1MulSim(p *PointG1, k *bn.Int, q *PointG1, m *bn.Int) *PointG1 {
	if k.Sign() < 0 || m.Sign() < 0 {
		// Fold signs into the points so the joint scan sees magnitudes.
		pp, qq := p, q
		ka, ma := new(bn.Int).Abs(k), new(bn.Int).Abs(m)
		if k.Sign() < 0 {
			pp = G1Neg(p)
		}
		if m.Sign() < 0 {
			qq = G1Neg(q)
		}
		return G1MulSim(pp, ka, qq, ma)
	}

	sum := G1Add(p, q)
	acc := G1Infinity()
	n := k.BitLen()
	if m.BitLen() > n {
		n = m.BitLen()
	}
	for i := n - 1; i >= 0; i-- {
		acc = G1Double(acc)
		switch k.Bit(i)<<1 | m.Bit(i) {
		case 1:
			acc = G1Add(acc, q)
		case 2:
			acc = G1Add(acc, p)
		case 3:
			acc = G1Add(acc, sum)
		}
	}
	return acc
}

// IsOnCurve reports whether p satisfies the curve equation. The identity
// is on the curve.
func (p *PointG1) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	// Jacobian form of y^2 = x^3 + 4: Y^2 = X^3 + 4 Z^6.
	var lhs, rhs, z2, z6 fe
	fpSqr(&lhs, &p.y)
	fpSqr(&rhs, &p.x)
	fpMul(&rhs, &rhs, &p.x)
	fpSqr(&z2, &p.z)
	fpMul(&z6, &z2, &z2)
	fpMul(&z6, &z6, &z2)
	fpMul(&z6, &z6, &curveB)
	fpAdd(&rhs, &rhs, &z6)
	return feEqual(&lhs, &rhs)
}

// IsValid reports whether p is a usable group element: on the curve and in
// the prime-order subgroup. Both checks are required; a point on the curve
// but outside the subgroup is rejected.
func (p *PointG1) IsValid() bool {
	if !p.IsOnCurve() {
		return false
	}
	if p.IsInfinity() {
		return true
	}
	return g1MulWords(p, orderWords).IsInfinity()
}

// Bytes encodes p. Packed form is the affine x coordinate with flag bits
// in byte 0: bit 7 is always set and marks the encoding as packed, bit 6
// marks the identity and bit 5 carries sgn0(y). A cleared bit 7 is never a
// valid packed encoding, so corrupting the top bit is detected on decode.
// Unpacked form is affine x||y with the identity as all zeros; canonical
// coordinates keep the top three bits of byte 0 clear there.
func (p *PointG1) Bytes(packed bool) []byte {
	a := new(PointG1).Set(p).Normalize()
	if packed {
		out := make([]byte, G1Bytes)
		if a.IsInfinity() {
			out[0] = flagPacked | flagInfinity
			return out
		}
		copy(out, feToBytes(&a.x))
		out[0] |= flagPacked
		if fpSgn0(&a.y) == 1 {
			out[0] |= flagSign
		}
		return out
	}
	out := make([]byte, 2*G1Bytes)
	if a.IsInfinity() {
		return out
	}
	copy(out, feToBytes(&a.x))
	copy(out[G1Bytes:], feToBytes(&a.y))
	return out
}

// SizeBytes reports the encoding length Bytes produces for the given form.
func (p *PointG1) SizeBytes(packed bool) int {
	if packed {
		return G1Bytes
	}
	return 2 * G1Bytes
}

// Point flags in byte 0 of a packed encoding.
const (
	flagPacked   = 0x80
	flagInfinity = 0x40
	flagSign     = 0x20
	flagMask     = flagPacked | flagInfinity | flagSign
)

// SetBytes decodes an encoding produced by Bytes, accepting either length.
// Packed decoding recomputes y from the curve equation and picks the root
// matching the sign flag. Subgroup membership is not checked here; call
// IsValid before trusting a decoded point.
func (p *PointG1) SetBytes(in []byte) error {
	switch len(in) {
	case G1Bytes:
		flags := in[0] & flagMask
		if flags&flagPacked == 0 {
			return ErrInvalidPointFlag
		}
		buf := make([]byte, G1Bytes)
		copy(buf, in)
		buf[0] &^= flagMask
		var x fe
		if err := feFromBytes(&x, buf); err != nil {
			return err
		}
		if flags&flagInfinity != 0 {
			if !feIsZero(&x) || flags&flagSign != 0 {
				return ErrInvalidPointFlag
			}
			p.SetInfinity()
			return nil
		}
		// y^2 = x^3 + 4
		var y2, y fe
		fpSqr(&y2, &x)
		fpMul(&y2, &y2, &x)
		fpAdd(&y2, &y2, &curveB)
		if !fpSqrt(&y, &y2) {
			return ErrNoSquareRoot
		}
		want := 0
		if flags&flagSign != 0 {
			want = 1
		}
		if fpSgn0(&y) != want {
			fpNeg(&y, &y)
		}
		p.x.set(&x)
		p.y.set(&y)
		p.z.set(&fpR1)
		return nil
	case 2 * G1Bytes:
		var x, y fe
		if err := feFromBytes(&x, in[:G1Bytes]); err != nil {
			return err
		}
		if err := feFromBytes(&y, in[G1Bytes:]); err != nil {
			return err
		}
		if feIsZero(&x) && feIsZero(&y) {
			p.SetInfinity()
			return nil
		}
		q := &PointG1{x: x, y: y}
		q.z.set(&fpR1)
		if !q.IsOnCurve() {
			return ErrPointNotOnCurve
		}
		p.Set(q)
		return nil
	default:
		return ErrInvalidEncoding
	}
}
