package bls12381

import "math/big"

// Fp12 = Fp6[w] / (w^2 - v). Elements are c0 + c1*w, the top of the tower
// and the carrier of pairing values.

type fe12 struct {
	c0, c1 fe6
}

// Frobenius coefficients for the p^2 power map. All three lie in the base
// field: w^6 = 1+u and (1+u)^(p+1) = 2, so w^(p^2-1) = 2^((p-1)/6) and the
// v coefficients are its square and fourth power.
var (
	frobP2W  fe // 2^((p-1)/6)
	frobP2V  fe // 2^((p-1)/3), multiplies the v coefficient
	frobP2V2 fe // 2^(2(p-1)/3), multiplies the v^2 coefficient
)

func fp12InitConstants() {
	e := new(big.Int).Sub(fpBig, big.NewInt(1))
	e.Div(e, big.NewInt(6))
	var two fe
	wordsToFe(&two, []uint64{2})
	toMont(&two, &two)
	fpExp(&frobP2W, &two, bigToWords(e))
	fpSqr(&frobP2V, &frobP2W)
	fpSqr(&frobP2V2, &frobP2V)
}

func fp12Zero() *fe12 {
	return &fe12{}
}

func fp12One() *fe12 {
	return &fe12{c0: *fp6One()}
}

func (a *fe12) set(b *fe12) *fe12 {
	a.c0.set(&b.c0)
	a.c1.set(&b.c1)
	return a
}

func (a *fe12) isOne() bool {
	return a.c0.equal(fp6One()) && a.c1.isZero()
}

func (a *fe12) equal(b *fe12) bool {
	return a.c0.equal(&b.c0) && a.c1.equal(&b.c1)
}

func fp12Mul(a, b *fe12) *fe12 {
	t0 := fp6Mul(&a.c0, &b.c0)
	t1 := fp6Mul(&a.c1, &b.c1)
	c1 := fp6Sub(fp6Mul(fp6Add(&a.c0, &a.c1), fp6Add(&b.c0, &b.c1)), fp6Add(t0, t1))
	c0 := fp6Add(t0, fp6MulByV(t1))
	return &fe12{c0: *c0, c1: *c1}
}

func fp12Sqr(a *fe12) *fe12 {
	t0 := fp6Mul(&a.c0, &a.c1)
	c0 := fp6Sub(fp6Mul(fp6Add(&a.c0, &a.c1), fp6Add(&a.c0, fp6MulByV(&a.c1))),
		fp6Add(t0, fp6MulByV(t0)))
	c1 := fp6Add(t0, t0)
	return &fe12{c0: *c0, c1: *c1}
}

// fp12Conj returns the conjugate c0 - c1*w, which is a^(p^6). For
// unitary elements (pairing values after the easy part) this is also the
// inverse.
func fp12Conj(a *fe12) *fe12 {
	return &fe12{c0: a.c0, c1: *fp6Neg(&a.c1)}
}

func fp12Inv(a *fe12) *fe12 {
	t := fp6Inv(fp6Sub(fp6Sqr(&a.c0), fp6MulByV(fp6Sqr(&a.c1))))
	return &fe12{
		c0: *fp6Mul(&a.c0, t),
		c1: *fp6Neg(fp6Mul(&a.c1, t)),
	}
}

// fp12FrobeniusP2 returns a^(p^2). Fp2 coefficients are fixed by the map,
// so it reduces to base field scalar multiplications.
func fp12FrobeniusP2(a *fe12) *fe12 {
	z := &fe12{}
	z.c0.c0.set(&a.c0.c0)
	z.c0.c1.set(fp2MulScalar(&a.c0.c1, &frobP2V))
	z.c0.c2.set(fp2MulScalar(&a.c0.c2, &frobP2V2))
	z.c1.c0.set(fp2MulScalar(&a.c1.c0, &frobP2W))
	z.c1.c1.set(fp2MulScalar(fp2MulScalar(&a.c1.c1, &frobP2V), &frobP2W))
	z.c1.c2.set(fp2MulScalar(fp2MulScalar(&a.c1.c2, &frobP2V2), &frobP2W))
	return z
}

// fp12ExpWords returns a^e for a little-endian word exponent, scanning
// bits from the most significant end.
func fp12ExpWords(a *fe12, e []uint64) *fe12 {
	z := fp12One()
	started := false
	for i := len(e) - 1; i >= 0; i-- {
		for j := 63; j >= 0; j-- {
			if started {
				z = fp12Sqr(z)
			}
			if e[i]>>uint(j)&1 == 1 {
				if started {
					z = fp12Mul(z, a)
				} else {
					z = new(fe12).set(a)
					started = true
				}
			}
		}
	}
	return z
}
