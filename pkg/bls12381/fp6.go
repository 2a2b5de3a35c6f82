package bls12381

// Fp6 = Fp2[v] / (v^3 - (1+u)). Elements are c0 + c1*v + c2*v^2.

type fe6 struct {
	c0, c1, c2 fe2
}

func fp6Zero() *fe6 {
	return &fe6{}
}

func fp6One() *fe6 {
	return &fe6{c0: *fp2One()}
}

func (a *fe6) set(b *fe6) *fe6 {
	a.c0.set(&b.c0)
	a.c1.set(&b.c1)
	a.c2.set(&b.c2)
	return a
}

func (a *fe6) isZero() bool {
	return a.c0.isZero() && a.c1.isZero() && a.c2.isZero()
}

func (a *fe6) equal(b *fe6) bool {
	return a.c0.equal(&b.c0) && a.c1.equal(&b.c1) && a.c2.equal(&b.c2)
}

func fp6Add(a, b *fe6) *fe6 {
	return &fe6{
		c0: *fp2Add(&a.c0, &b.c0),
		c1: *fp2Add(&a.c1, &b.c1),
		c2: *fp2Add(&a.c2, &b.c2),
	}
}

func fp6Sub(a, b *fe6) *fe6 {
	return &fe6{
		c0: *fp2Sub(&a.c0, &b.c0),
		c1: *fp2Sub(&a.c1, &b.c1),
		c2: *fp2Sub(&a.c2, &b.c2),
	}
}

func fp6Neg(a *fe6) *fe6 {
	return &fe6{
		c0: *fp2Neg(&a.c0),
		c1: *fp2Neg(&a.c1),
		c2: *fp2Neg(&a.c2),
	}
}

// fp6Mul returns a * b with the Karatsuba interpolation: six Fp2
// multiplications instead of nine.
func fp6Mul(a, b *fe6) *fe6 {
	t0 := fp2Mul(&a.c0, &b.c0)
	t1 := fp2Mul(&a.c1, &b.c1)
	t2 := fp2Mul(&a.c2, &b.c2)

	c0 := fp2Add(t0, fp2MulByNonResidue(
		fp2Sub(fp2Mul(fp2Add(&a.c1, &a.c2), fp2Add(&b.c1, &b.c2)), fp2Add(t1, t2))))
	c1 := fp2Add(fp2Sub(fp2Mul(fp2Add(&a.c0, &a.c1), fp2Add(&b.c0, &b.c1)), fp2Add(t0, t1)),
		fp2MulByNonResidue(t2))
	c2 := fp2Add(fp2Sub(fp2Mul(fp2Add(&a.c0, &a.c2), fp2Add(&b.c0, &b.c2)), fp2Add(t0, t2)), t1)

	return &fe6{c0: *c0, c1: *c1, c2: *c2}
}

// fp6Sqr returns a^2.
func fp6Sqr(a *fe6) *fe6 {
	s0 := fp2Sqr(&a.c0)
	ab := fp2Mul(&a.c0, &a.c1)
	s1 := fp2Add(ab, ab)
	s2 := fp2Sqr(fp2Sub(fp2Add(&a.c0, &a.c2), &a.c1))
	bc := fp2Mul(&a.c1, &a.c2)
	s3 := fp2Add(bc, bc)
	s4 := fp2Sqr(&a.c2)

	c0 := fp2Add(s0, fp2MulByNonResidue(s3))
	c1 := fp2Add(s1, fp2MulByNonResidue(s4))
	c2 := fp2Add(fp2Add(fp2Add(s1, s2), s3), fp2Sub(fp2Neg(s0), s4))

	return &fe6{c0: *c0, c1: *c1, c2: *c2}
}

// fp6MulByV returns v * a = (1+u)*c2 + c0*v + c1*v^2.
func fp6MulByV(a *fe6) *fe6 {
	return &fe6{
		c0: *fp2MulByNonResidue(&a.c2),
		c1: a.c0,
		c2: a.c1,
	}
}

// fp6Inv returns a^-1 by the adjoint-over-norm descent: one Fp2 inversion
// (itself one base field inversion) rather than repeated base inversions.
func fp6Inv(a *fe6) *fe6 {
	t0 := fp2Sqr(&a.c0)
	t1 := fp2Sqr(&a.c1)
	t2 := fp2Sqr(&a.c2)
	t3 := fp2Mul(&a.c0, &a.c1)
	t4 := fp2Mul(&a.c0, &a.c2)
	t5 := fp2Mul(&a.c1, &a.c2)

	c0 := fp2Sub(t0, fp2MulByNonResidue(t5))
	c1 := fp2Sub(fp2MulByNonResidue(t2), t3)
	c2 := fp2Sub(t1, t4)

	t6 := fp2Mul(&a.c0, c0)
	t6 = fp2Add(t6, fp2MulByNonResidue(fp2Add(fp2Mul(&a.c2, c1), fp2Mul(&a.c1, c2))))
	t6 = fp2Inv(t6)

	return &fe6{
		c0: *fp2Mul(c0, t6),
		c1: *fp2Mul(c1, t6),
		c2: *fp2Mul(c2, t6),
	}
}
