package bls12381

// Fp2 = Fp[u] / (u^2 + 1). Elements are c0 + c1*u. G2 point coordinates
// live here, and the 2-6-12 extension tower is built on it.

type fe2 struct {
	c0, c1 fe
}

func fp2Zero() *fe2 {
	return &fe2{}
}

func fp2One() *fe2 {
	return &fe2{c0: fpR1}
}

func (e *fe2) set(a *fe2) *fe2 {
	e.c0 = a.c0
	e.c1 = a.c1
	return e
}

func (e *fe2) isZero() bool {
	return feIsZero(&e.c0) && feIsZero(&e.c1)
}

func (e *fe2) isOne() bool {
	return feEqual(&e.c0, &fpR1) && feIsZero(&e.c1)
}

func (e *fe2) equal(f *fe2) bool {
	return feEqual(&e.c0, &f.c0) && feEqual(&e.c1, &f.c1)
}

// fp2Add returns e + f.
func fp2Add(e, f *fe2) *fe2 {
	r := new(fe2)
	fpAdd(&r.c0, &e.c0, &f.c0)
	fpAdd(&r.c1, &e.c1, &f.c1)
	return r
}

// fp2Sub returns e - f.
func fp2Sub(e, f *fe2) *fe2 {
	r := new(fe2)
	fpSub(&r.c0, &e.c0, &f.c0)
	fpSub(&r.c1, &e.c1, &f.c1)
	return r
}

// fp2Neg returns -e.
func fp2Neg(e *fe2) *fe2 {
	r := new(fe2)
	fpNeg(&r.c0, &e.c0)
	fpNeg(&r.c1, &e.c1)
	return r
}

// fp2Conj returns the conjugate c0 - c1*u.
func fp2Conj(e *fe2) *fe2 {
	r := new(fe2)
	r.c0 = e.c0
	fpNeg(&r.c1, &e.c1)
	return r
}

// fp2Mul returns e * f using the Karatsuba shape: three base
// multiplications instead of four.
// (a0 + a1*u)(b0 + b1*u) = (a0*b0 - a1*b1) + ((a0+a1)(b0+b1) - a0*b0 - a1*b1)*u
func fp2Mul(e, f *fe2) *fe2 {
	var v0, v1, s0, s1, t fe
	fpMul(&v0, &e.c0, &f.c0)
	fpMul(&v1, &e.c1, &f.c1)
	fpAdd(&s0, &e.c0, &e.c1)
	fpAdd(&s1, &f.c0, &f.c1)
	fpMul(&t, &s0, &s1)

	r := new(fe2)
	fpSub(&r.c0, &v0, &v1)
	fpSub(&t, &t, &v0)
	fpSub(&r.c1, &t, &v1)
	return r
}

// fp2Sqr returns e^2 using the complex squaring shape: two base
// multiplications.
func fp2Sqr(e *fe2) *fe2 {
	var sum, diff, ab fe
	fpAdd(&sum, &e.c0, &e.c1)
	fpSub(&diff, &e.c0, &e.c1)
	fpMul(&ab, &e.c0, &e.c1)

	r := new(fe2)
	fpMul(&r.c0, &sum, &diff)
	fpDouble(&r.c1, &ab)
	return r
}

// fp2MulScalar returns e * s for a base field scalar s.
func fp2MulScalar(e *fe2, s *fe) *fe2 {
	r := new(fe2)
	fpMul(&r.c0, &e.c0, s)
	fpMul(&r.c1, &e.c1, s)
	return r
}

// fp2MulByU returns u * e = -c1 + c0*u.
func fp2MulByU(e *fe2) *fe2 {
	r := new(fe2)
	fpNeg(&r.c0, &e.c1)
	r.c1 = e.c0
	return r
}

// fp2MulByNonResidue returns (1+u) * e, the Fp6 tower non-residue.
// (1+u)(a + b*u) = (a-b) + (a+b)*u
func fp2MulByNonResidue(e *fe2) *fe2 {
	r := new(fe2)
	fpSub(&r.c0, &e.c0, &e.c1)
	fpAdd(&r.c1, &e.c0, &e.c1)
	return r
}

// fp2Inv returns e^-1 by descending through the norm: the conjugate over
// the norm c0^2 + c1^2 costs a single base field inversion.
func fp2Inv(e *fe2) *fe2 {
	var n, t0, t1 fe
	fpSqr(&t0, &e.c0)
	fpSqr(&t1, &e.c1)
	fpAdd(&n, &t0, &t1)
	fpInverse(&n, &n)

	r := new(fe2)
	fpMul(&r.c0, &e.c0, &n)
	fpMul(&t0, &e.c1, &n)
	fpNeg(&r.c1, &t0)
	return r
}

// fp2Select returns a when cond is 1, b when cond is 0, branch-free.
func fp2Select(a, b *fe2, cond uint64) *fe2 {
	r := new(fe2)
	fpSelect(&r.c0, &a.c0, &b.c0, cond)
	fpSelect(&r.c1, &a.c1, &b.c1, cond)
	return r
}

// fp2Sgn0 extends the base field sign to Fp2:
// sgn0(c0) when c0 != 0, sgn0(c1) otherwise.
func fp2Sgn0(e *fe2) int {
	s0 := fpSgn0(&e.c0)
	z0 := 0
	if feIsZero(&e.c0) {
		z0 = 1
	}
	return s0 | (z0 & fpSgn0(&e.c1))
}

// fp2IsSquare reports whether e is a quadratic residue. With p = 3 mod 4,
// e is a square iff its norm c0^2 + c1^2 is a square in Fp.
func fp2IsSquare(e *fe2) bool {
	if e.isZero() {
		return true
	}
	var n, t0, t1 fe
	fpSqr(&t0, &e.c0)
	fpSqr(&t1, &e.c1)
	fpAdd(&n, &t0, &t1)
	return fpIsSquare(&n)
}

// fp2Sqrt returns a square root of e, or nil if none exists. The root is
// reconstructed from a base field square root of the norm: if
// (a+bu)^2 = e then a^2 = (c0 ± sqrt(norm))/2 for one choice of sign.
func fp2Sqrt(e *fe2) *fe2 {
	if e.isZero() {
		return fp2Zero()
	}

	var n, t0, t1 fe
	fpSqr(&t0, &e.c0)
	fpSqr(&t1, &e.c1)
	fpAdd(&n, &t0, &t1)

	var sqrtNorm fe
	if !fpSqrt(&sqrtNorm, &n) {
		return nil
	}

	two := feFromHex("2")
	var twoInv fe
	fpInverse(&twoInv, two)

	for _, sign := range [2]bool{false, true} {
		var x0 fe
		if !sign {
			fpAdd(&x0, &e.c0, &sqrtNorm)
		} else {
			fpSub(&x0, &e.c0, &sqrtNorm)
		}
		fpMul(&x0, &x0, &twoInv)

		var a fe
		if !fpSqrt(&a, &x0) {
			continue
		}
		if feIsZero(&a) {
			continue
		}
		// b = c1 / (2a)
		var b, d fe
		fpDouble(&d, &a)
		fpInverse(&d, &d)
		fpMul(&b, &e.c1, &d)

		r := &fe2{c0: a, c1: b}
		if fp2Sqr(r).equal(e) {
			return r
		}
	}

	// Pure imaginary roots: e = (bu)^2 = -b^2 with c1 == 0.
	if feIsZero(&e.c1) {
		var negc0, b fe
		fpNeg(&negc0, &e.c0)
		if fpSqrt(&b, &negc0) {
			r := &fe2{c1: b}
			if fp2Sqr(r).equal(e) {
				return r
			}
		}
	}
	return nil
}

// fp2ToBytes returns the 96-byte encoding: c0 big-endian then c1.
func fp2ToBytes(e *fe2) []byte {
	out := make([]byte, 2*FpBytes)
	copy(out[:FpBytes], feToBytes(&e.c0))
	copy(out[FpBytes:], feToBytes(&e.c1))
	return out
}

// fp2FromBytes parses the 96-byte encoding.
func fp2FromBytes(e *fe2, in []byte) error {
	if len(in) != 2*FpBytes {
		return ErrInvalidEncoding
	}
	if err := feFromBytes(&e.c0, in[:FpBytes]); err != nil {
		return err
	}
	return feFromBytes(&e.c1, in[FpBytes:])
}
