package bls12381

// G2 points on the twist y^2 = x^3 + 4(1+u) over Fp2, in Jacobian
// coordinates with the identity at Z = 0.

import (
	"math/big"

	"github.com/bilinearlabs/pairing/pkg/bn"
)

// G2Bytes is the packed encoding size of a G2 point.
const G2Bytes = 2 * FpBytes

const (
	g2GenX0Hex = "024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8"
	g2GenX1Hex = "13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e"
	g2GenY0Hex = "0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801"
	g2GenY1Hex = "0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be"
)

var (
	twistB fe2 // 4(1+u), the twist curve coefficient
	g2GenX fe2
	g2GenY fe2

	g2CofactorWords []uint64
)

func g2InitConstants() {
	twistB.c0.set(&curveB)
	twistB.c1.set(&curveB)

	g2GenX.c0.set(feFromHex(g2GenX0Hex))
	g2GenX.c1.set(feFromHex(g2GenX1Hex))
	g2GenY.c0.set(feFromHex(g2GenY0Hex))
	g2GenY.c1.set(feFromHex(g2GenY1Hex))

	h2, ok := new(big.Int).SetString(g2CofactorHex, 16)
	if !ok {
		panic("bls12381: bad cofactor constant")
	}
	g2CofactorWords = bigToWords(h2)
}

// PointG2 is a point of G2 in Jacobian coordinates. The zero value is the
// identity.
type PointG2 struct {
	x, y, z fe2
}

// G2Generator returns the fixed generator of G2.
func G2Generator() *PointG2 {
	p := &PointG2{}
	p.x.set(&g2GenX)
	p.y.set(&g2GenY)
	p.z.set(fp2One())
	return p
}

// G2Infinity returns the identity of G2.
func G2Infinity() *PointG2 {
	return &PointG2{}
}

// Set copies q into p.
func (p *PointG2) Set(q *PointG2) *PointG2 {
	p.x.set(&q.x)
	p.y.set(&q.y)
	p.z.set(&q.z)
	return p
}

// IsInfinity reports whether p is the identity (Z = 0).
func (p *PointG2) IsInfinity() bool {
	return p.z.isZero()
}

// SetInfinity sets p to the identity.
func (p *PointG2) SetInfinity() *PointG2 {
	*p = PointG2{}
	return p
}

// Normalize scales p so that Z = 1, leaving the identity untouched.
func (p *PointG2) Normalize() *PointG2 {
	if p.IsInfinity() {
		return p
	}
	zInv := fp2Inv(&p.z)
	zInv2 := fp2Sqr(zInv)
	p.x.set(fp2Mul(&p.x, zInv2))
	p.y.set(fp2Mul(&p.y, fp2Mul(zInv2, zInv)))
	p.z.set(fp2One())
	return p
}

// Equal reports whether p and q are the same point.
func (p *PointG2) Equal(q *PointG2) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	pz2 := fp2Sqr(&p.z)
	qz2 := fp2Sqr(&q.z)
	if !fp2Mul(&p.x, qz2).equal(fp2Mul(&q.x, pz2)) {
		return false
	}
	pz3 := fp2Mul(pz2, &p.z)
	qz3 := fp2Mul(qz2, &q.z)
	return fp2Mul(&p.y, qz3).equal(fp2Mul(&q.y, pz3))
}

// G2Add returns a + b.
func G2Add(a, b *PointG2) *PointG2 {
	if a.IsInfinity() {
		return new(PointG2).Set(b)
	}
	if b.IsInfinity() {
		return new(PointG2).Set(a)
	}

	z1sq := fp2Sqr(&a.z)
	z2sq := fp2Sqr(&b.z)
	u1 := fp2Mul(&a.x, z2sq)
	u2 := fp2Mul(&b.x, z1sq)
	s1 := fp2Mul(&a.y, fp2Mul(&b.z, z2sq))
	s2 := fp2Mul(&b.y, fp2Mul(&a.z, z1sq))

	if u1.equal(u2) {
		if s1.equal(s2) {
			return G2Double(a)
		}
		return G2Infinity()
	}

	h := fp2Sub(u2, u1)
	i := fp2Sqr(fp2Add(h, h))
	j := fp2Mul(h, i)
	r := fp2Sub(s2, s1)
	r = fp2Add(r, r)
	v := fp2Mul(u1, i)

	x3 := fp2Sub(fp2Sub(fp2Sqr(r), j), fp2Add(v, v))
	s1j := fp2Mul(s1, j)
	y3 := fp2Sub(fp2Mul(r, fp2Sub(v, x3)), fp2Add(s1j, s1j))
	z3 := fp2Mul(fp2Sub(fp2Sub(fp2Sqr(fp2Add(&a.z, &b.z)), z1sq), z2sq), h)

	p := &PointG2{}
	p.x.set(x3)
	p.y.set(y3)
	p.z.set(z3)
	return p
}

// G2Double returns 2a.
func G2Double(a *PointG2) *PointG2 {
	if a.IsInfinity() {
		return G2Infinity()
	}

	xx := fp2Sqr(&a.x)
	yy := fp2Sqr(&a.y)
	yyyy := fp2Sqr(yy)

	d := fp2Sub(fp2Sub(fp2Sqr(fp2Add(&a.x, yy)), xx), yyyy)
	d = fp2Add(d, d)

	e := fp2Add(fp2Add(xx, xx), xx)

	x3 := fp2Sub(fp2Sqr(e), fp2Add(d, d))
	eight := fp2Add(yyyy, yyyy)
	eight = fp2Add(eight, eight)
	eight = fp2Add(eight, eight)
	y3 := fp2Sub(fp2Mul(e, fp2Sub(d, x3)), eight)
	z3 := fp2Mul(fp2Add(&a.y, &a.y), &a.z)

	p := &PointG2{}
	p.x.set(x3)
	p.y.set(y3)
	p.z.set(z3)
	return p
}

// G2Neg returns -a.
func G2Neg(a *PointG2) *PointG2 {
	p := new(PointG2).Set(a)
	p.y.set(fp2Neg(&p.y))
	return p
}

// G2Sub returns a - b.
func G2Sub(a, b *PointG2) *PointG2 {
	return G2Add(a, G2Neg(b))
}

func g2Select(a, b *PointG2, cond uint64) *PointG2 {
	p := &PointG2{}
	p.x.set(fp2Select(&a.x, &b.x, cond))
	p.y.set(fp2Select(&a.y, &b.y, cond))
	p.z.set(fp2Select(&a.z, &b.z, cond))
	return p
}

// g2MulWords computes [k]p with the same always-add ladder as g1MulWords.
func g2MulWords(p *PointG2, k []uint64) *PointG2 {
	acc := G2Infinity()
	n := len(k) * 64
	for i := n - 1; i >= 0; i-- {
		acc = G2Double(acc)
		sum := G2Add(acc, p)
		acc = g2Select(sum, acc, k[i/64]>>uint(i%64)&1)
	}
	return acc
}

// G2Mul returns [k]p for an arbitrary signed scalar.
func G2Mul(p *PointG2, k *bn.Int) *PointG2 {
	if k.IsZero() || p.IsInfinity() {
		return G2Infinity()
	}
	r := g2MulWords(p, scalarWords(k))
	if k.Sign() < 0 {
		r = G2Neg(r)
	}
	return r
}

// G2MulSim returns [k]p + [m]q with Shamir interleaving.
func G2MulSim(p *PointG2, k *bn.Int, q *PointG2, m *bn.Int) *PointG2 {
	if k.Sign() < 0 || m.Sign() < 0 {
		pp, qq := p, q
		ka, ma := new(bn.Int).Abs(k), new(bn.Int).Abs(m)
		if k.Sign() < 0 {
			pp = G2Neg(p)
		}
		if m.Sign() < 0 {
			qq = G2Neg(q)
		}
		return G2MulSim(pp, ka, qq, ma)
	}

	sum := G2Add(p, q)
	acc := G2Infinity()
	n := k.BitLen()
	if m.BitLen() > n {
		n = m.BitLen()
	}
	for i := n - 1; i >= 0; i-- {
		acc = G2Double(acc)
		switch k.Bit(i)<<1 | m.Bit(i) {
		case 1:
			acc = G2Add(acc, q)
		case 2:
			acc = G2Add(acc, p)
		case 3:
			acc = G2Add(acc, sum)
		}
	}
	return acc
}

// IsOnCurve reports whether p satisfies the twist equation.
func (p *PointG2) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	// Jacobian form: Y^2 = X^3 + b' Z^6.
	lhs := fp2Sqr(&p.y)
	rhs := fp2Mul(fp2Sqr(&p.x), &p.x)
	z2 := fp2Sqr(&p.z)
	z6 := fp2Mul(fp2Mul(z2, z2), z2)
	rhs = fp2Add(rhs, fp2Mul(z6, &twistB))
	return lhs.equal(rhs)
}

// IsValid reports whether p is on the twist and in the prime-order
// subgroup.
func (p *PointG2) IsValid() bool {
	if !p.IsOnCurve() {
		return false
	}
	if p.IsInfinity() {
		return true
	}
	return g2MulWords(p, orderWords).IsInfinity()
}

// Bytes encodes p with the same flag layout as G1: packed form is affine x
// (c0 then c1) with the packed marker in bit 7 of byte 0, the identity
// flag in bit 6 and sgn0(y) in bit 5; unpacked form is x||y with all zeros
// for the identity.
func (p *PointG2) Bytes(packed bool) []byte {
	a := new(PointG2).Set(p).Normalize()
	if packed {
		out := make([]byte, G2Bytes)
		if a.IsInfinity() {
			out[0] = flagPacked | flagInfinity
			return out
		}
		copy(out, fp2ToBytes(&a.x))
		out[0] |= flagPacked
		if fp2Sgn0(&a.y) == 1 {
			out[0] |= flagSign
		}
		return out
	}
	out := make([]byte, 2*G2Bytes)
	if a.IsInfinity() {
		return out
	}
	copy(out, fp2ToBytes(&a.x))
	copy(out[G2Bytes:], fp2ToBytes(&a.y))
	return out
}

// SizeBytes reports the encoding length Bytes produces for the given form.
func (p *PointG2) SizeBytes(packed bool) int {
	if packed {
		return G2Bytes
	}
	return 2 * G2Bytes
}

// SetBytes decodes an encoding produced by Bytes. Packed decoding solves
// the twist equation for y; subgroup membership is checked by IsValid, not
// here.
func (p *PointG2) SetBytes(in []byte) error {
	switch len(in) {
	case G2Bytes:
		flags := in[0] & flagMask
		if flags&flagPacked == 0 {
			return ErrInvalidPointFlag
		}
		buf := make([]byte, G2Bytes)
		copy(buf, in)
		buf[0] &^= flagMask
		var x fe2
		if err := fp2FromBytes(&x, buf); err != nil {
			return err
		}
		if flags&flagInfinity != 0 {
			if !x.isZero() || flags&flagSign != 0 {
				return ErrInvalidPointFlag
			}
			p.SetInfinity()
			return nil
		}
		y2 := fp2Add(fp2Mul(fp2Sqr(&x), &x), &twistB)
		y := fp2Sqrt(y2)
		if y == nil {
			return ErrNoSquareRoot
		}
		want := 0
		if flags&flagSign != 0 {
			want = 1
		}
		if fp2Sgn0(y) != want {
			y = fp2Neg(y)
		}
		p.x.set(&x)
		p.y.set(y)
		p.z.set(fp2One())
		return nil
	case 2 * G2Bytes:
		var x, y fe2
		if err := fp2FromBytes(&x, in[:G2Bytes]); err != nil {
			return err
		}
		if err := fp2FromBytes(&y, in[G2Bytes:]); err != nil {
			return err
		}
		if x.isZero() && y.isZero() {
			p.SetInfinity()
			return nil
		}
		q := &PointG2{}
		q.x.set(&x)
		q.y.set(&y)
		q.z.set(fp2One())
		if !q.IsOnCurve() {
			return ErrPointNotOnCurve
		}
		p.Set(q)
		return nil
	default:
		return ErrInvalidEncoding
	}
}
