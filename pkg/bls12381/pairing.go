package bls12381

// Optimal ate pairing e: G1 x G2 -> GT. A Miller loop over the BLS
// parameter followed by the final exponentiation.
//
// The parameter x = -0xd201000000010000; the loop runs over |x| and the
// negative sign is folded in as a conjugation of the loop value.

import "math/big"

var (
	loopParamBig *big.Int
	hardExpWords []uint64 // 3 (p^4 - p^2 + 1) / r
)

func pairingInitConstants() {
	var ok bool
	loopParamBig, ok = new(big.Int).SetString(loopParamHex, 16)
	if !ok {
		panic("bls12381: bad loop parameter constant")
	}

	// Hard part of the final exponentiation, scaled by 3. The scaled
	// exponent is the one the Hayashida-Hayasaka-Teruya chain computes, so
	// it is what every interoperable BLS12-381 implementation outputs.
	p2 := new(big.Int).Mul(fpBig, fpBig)
	p4 := new(big.Int).Mul(p2, p2)
	hard := new(big.Int).Sub(p4, p2)
	hard.Add(hard, big.NewInt(1))
	hard.Div(hard, orderBig)
	hard.Mul(hard, big.NewInt(3))
	hardExpWords = bigToWords(hard)
}

// sparseLine assembles the Fp12 line evaluation
//
//	l(P) = (lambda*rx - ry) + (-lambda*px)*v + py*v*w
//
// which is the chord or tangent through the untwisted G2 points evaluated
// at P, with denominators cleared by w^3. The cleared factor lies in a
// proper subfield and is killed by the final exponentiation.
func sparseLine(lambda, rx, ry *fe2, px, py *fe) *fe12 {
	l := fp12Zero()
	l.c0.c0.set(fp2Sub(fp2Mul(lambda, rx), ry))
	l.c0.c1.set(fp2Neg(fp2MulScalar(lambda, px)))
	l.c1.c1.c0.set(py)
	return l
}

// lineDouble evaluates the tangent line at r through P and returns 2r in
// affine form. A zero y coordinate cannot occur for odd-order input but is
// guarded: the vertical tangent contributes a subfield factor, so the line
// value degenerates to one.
func lineDouble(r *PointG2, px, py *fe) (*fe12, *PointG2) {
	if r.IsInfinity() {
		return fp12One(), G2Infinity()
	}
	if r.y.isZero() {
		return fp12One(), G2Infinity()
	}

	// lambda = 3 rx^2 / (2 ry)
	num := fp2Sqr(&r.x)
	num = fp2Add(fp2Add(num, num), num)
	lambda := fp2Mul(num, fp2Inv(fp2Add(&r.y, &r.y)))

	l := sparseLine(lambda, &r.x, &r.y, px, py)

	x3 := fp2Sub(fp2Sqr(lambda), fp2Add(&r.x, &r.x))
	y3 := fp2Sub(fp2Mul(lambda, fp2Sub(&r.x, x3)), &r.y)
	n := &PointG2{}
	n.x.set(x3)
	n.y.set(y3)
	n.z.set(fp2One())
	return l, n
}

// lineAdd evaluates the chord through r and q at P and returns r + q in
// affine form.
func lineAdd(r *PointG2, qx, qy *fe2, px, py *fe) (*fe12, *PointG2) {
	if r.IsInfinity() {
		n := &PointG2{}
		n.x.set(qx)
		n.y.set(qy)
		n.z.set(fp2One())
		return fp12One(), n
	}
	if r.x.equal(qx) {
		if r.y.equal(qy) {
			return lineDouble(r, px, py)
		}
		// Vertical chord, subfield factor only.
		return fp12One(), G2Infinity()
	}

	// lambda = (qy - ry) / (qx - rx)
	lambda := fp2Mul(fp2Sub(qy, &r.y), fp2Inv(fp2Sub(qx, &r.x)))

	l := sparseLine(lambda, &r.x, &r.y, px, py)

	x3 := fp2Sub(fp2Sub(fp2Sqr(lambda), &r.x), qx)
	y3 := fp2Sub(fp2Mul(lambda, fp2Sub(&r.x, x3)), &r.y)
	n := &PointG2{}
	n.x.set(x3)
	n.y.set(y3)
	n.z.set(fp2One())
	return l, n
}

// millerLoop accumulates the line evaluations over the bits of |x|,
// scanning from the second-highest bit. The final conjugation accounts
// for the negative parameter.
func millerLoop(p *PointG1, q *PointG2) *fe12 {
	if p.IsInfinity() || q.IsInfinity() {
		return fp12One()
	}

	a := new(PointG1).Set(p).Normalize()
	b := new(PointG2).Set(q).Normalize()
	px, py := &a.x, &a.y
	qx, qy := &b.x, &b.y

	f := fp12One()
	r := new(PointG2).Set(b)

	for i := loopParamBig.BitLen() - 2; i >= 0; i-- {
		f = fp12Sqr(f)
		var l *fe12
		l, r = lineDouble(r, px, py)
		f = fp12Mul(f, l)
		if loopParamBig.Bit(i) == 1 {
			l, r = lineAdd(r, qx, qy, px, py)
			f = fp12Mul(f, l)
		}
	}

	return fp12Conj(f)
}

// finalExp raises the Miller loop value to 3 (p^12 - 1) / r, factored as
// (p^6 - 1)(p^2 + 1) times the hard part 3 (p^4 - p^2 + 1)/r. The factor 3
// is coprime to r, so the image still generates the full r-order subgroup.
func finalExp(f *fe12) *fe12 {
	// f^(p^6 - 1) = conj(f) * f^-1, then the result is unitary.
	f1 := fp12Mul(fp12Conj(f), fp12Inv(f))
	// f1^(p^2 + 1) via the p^2 Frobenius.
	f2 := fp12Mul(fp12FrobeniusP2(f1), f1)
	return fp12ExpWords(f2, hardExpWords)
}

// Pair computes the pairing e(p, q). Either input at infinity yields the
// GT identity. Inputs are not subgroup checked; callers hand in points
// that passed IsValid.
func Pair(p *PointG1, q *PointG2) *GT {
	g := &GT{}
	g.e.set(finalExp(millerLoop(p, q)))
	return g
}

// PairingCheck reports whether the product of the pairings e(p[i], q[i])
// is the GT identity. Terms with an infinity on either side contribute
// nothing. One shared final exponentiation covers the whole product.
func PairingCheck(ps []*PointG1, qs []*PointG2) bool {
	if len(ps) != len(qs) {
		return false
	}
	f := fp12One()
	for i := range ps {
		if ps[i].IsInfinity() || qs[i].IsInfinity() {
			continue
		}
		f = fp12Mul(f, millerLoop(ps[i], qs[i]))
	}
	return finalExp(f).isOne()
}
