package bn

import "math/bits"

// Magnitude helpers. These operate on absolute values only; callers fix up
// signs. The digit invariant (digits above used are zero) is restored before
// returning.

// clearAbove zeroes any stale digits of z in [n, old).
func (z *Int) clearAbove(n, old int) {
	for i := n; i < old; i++ {
		z.w[i] = 0
	}
}

// addAbs sets the magnitude of z to |x| + |y|. Panics if the sum exceeds the
// digit capacity.
func (z *Int) addAbs(x, y *Int) {
	if x.used < y.used {
		x, y = y, x
	}
	old := z.used
	var c uint64
	for i := 0; i < y.used; i++ {
		z.w[i], c = add64c(x.w[i], y.w[i], c)
	}
	for i := y.used; i < x.used; i++ {
		z.w[i], c = add64c(x.w[i], 0, c)
	}
	n := x.used
	if c != 0 {
		if n == Digits {
			panic("bn: add overflows digit capacity")
		}
		z.w[n] = c
		n++
	}
	z.used = n
	z.clearAbove(n, old)
	z.norm()
}

// subAbs sets the magnitude of z to |x| - |y|. Requires |x| >= |y|.
func (z *Int) subAbs(x, y *Int) {
	old := z.used
	var b uint64
	for i := 0; i < y.used; i++ {
		z.w[i], b = sub64b(x.w[i], y.w[i], b)
	}
	for i := y.used; i < x.used; i++ {
		z.w[i], b = sub64b(x.w[i], 0, b)
	}
	if b != 0 {
		panic("bn: subAbs underflow")
	}
	z.used = x.used
	z.clearAbove(x.used, old)
	z.norm()
}

func add64c(x, y, c uint64) (uint64, uint64) {
	s, carry := bits.Add64(x, y, c)
	return s, carry
}

func sub64b(x, y, b uint64) (uint64, uint64) {
	d, borrow := bits.Sub64(x, y, b)
	return d, borrow
}

// Add sets z = x + y and returns z.
func (z *Int) Add(x, y *Int) *Int {
	if x.neg == y.neg {
		neg := x.neg
		z.addAbs(x, y)
		z.neg = neg && !z.IsZero()
		return z
	}
	// Opposite signs: subtract the smaller magnitude from the larger.
	if x.CmpAbs(y) >= 0 {
		neg := x.neg
		z.subAbs(x, y)
		z.neg = neg && !z.IsZero()
	} else {
		neg := y.neg
		z.subAbs(y, x)
		z.neg = neg && !z.IsZero()
	}
	return z
}

// Sub sets z = x - y and returns z.
func (z *Int) Sub(x, y *Int) *Int {
	if x.neg != y.neg {
		neg := x.neg
		z.addAbs(x, y)
		z.neg = neg && !z.IsZero()
		return z
	}
	if x.CmpAbs(y) >= 0 {
		neg := x.neg
		z.subAbs(x, y)
		z.neg = neg && !z.IsZero()
	} else {
		neg := !y.neg
		z.subAbs(y, x)
		z.neg = neg && !z.IsZero()
	}
	return z
}

// Mul sets z = x * y and returns z. Panics if the exact product exceeds the
// digit capacity.
func (z *Int) Mul(x, y *Int) *Int {
	if x.IsZero() || y.IsZero() {
		return z.SetZero()
	}
	var buf [doubleDigits]uint64
	for i := 0; i < x.used; i++ {
		var carry uint64
		xi := x.w[i]
		for j := 0; j < y.used; j++ {
			hi, lo := bits.Mul64(xi, y.w[j])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(lo, buf[i+j], 0)
			hi += c
			buf[i+j] = lo
			carry = hi
		}
		buf[i+y.used] = carry
	}
	n := x.used + y.used
	for n > 1 && buf[n-1] == 0 {
		n--
	}
	if n > Digits {
		panic("bn: mul overflows digit capacity")
	}
	neg := x.neg != y.neg
	old := z.used
	copy(z.w[:n], buf[:n])
	z.used = n
	z.clearAbove(n, old)
	z.norm()
	z.neg = neg && !z.IsZero()
	return z
}

// Sqr sets z = x * x and returns z.
func (z *Int) Sqr(x *Int) *Int {
	return z.Mul(x, x)
}

// Lsh sets z = x << k and returns z. Panics if the result exceeds the digit
// capacity.
func (z *Int) Lsh(x *Int, k uint) *Int {
	if x.IsZero() {
		return z.SetZero()
	}
	if x.BitLen()+int(k) > Digits*DigitBits {
		panic("bn: shift overflows digit capacity")
	}
	neg := x.neg
	s, b := int(k/DigitBits), k%DigitBits
	n := x.used + s
	old := z.used
	if b == 0 {
		copy(z.w[s:n], x.w[:x.used])
	} else {
		if top := x.w[x.used-1] >> (DigitBits - b); top != 0 {
			z.w[n] = top
			n++
		}
		for i := x.used - 1; i > 0; i-- {
			z.w[i+s] = x.w[i]<<b | x.w[i-1]>>(DigitBits-b)
		}
		z.w[s] = x.w[0] << b
	}
	for i := 0; i < s; i++ {
		z.w[i] = 0
	}
	z.used = n
	z.clearAbove(n, old)
	z.norm()
	z.neg = neg
	return z
}

// Rsh sets z = x >> k (magnitude shift, truncating toward zero) and
// returns z.
func (z *Int) Rsh(x *Int, k uint) *Int {
	s, b := int(k/DigitBits), k%DigitBits
	if s >= x.used {
		return z.SetZero()
	}
	neg := x.neg
	n := x.used - s
	old := z.used
	if b == 0 {
		copy(z.w[:n], x.w[s:x.used])
	} else {
		for i := 0; i < n-1; i++ {
			z.w[i] = x.w[i+s]>>b | x.w[i+s+1]<<(DigitBits-b)
		}
		z.w[n-1] = x.w[x.used-1] >> b
	}
	z.used = n
	z.clearAbove(n, old)
	z.norm()
	z.neg = neg && !z.IsZero()
	return z
}

// divRemAbs computes the magnitude quotient and remainder of |x| / |y| by
// binary long division. q and r must not alias x or y.
func divRemAbs(q, r, x, y *Int) {
	if y.IsZero() {
		panic("bn: division by zero")
	}
	q.SetZero()
	r.Abs(x)
	if r.CmpAbs(y) < 0 {
		return
	}
	d := x.BitLen() - y.BitLen()
	t := New().Abs(y)
	t.Lsh(t, uint(d))
	for i := d; i >= 0; i-- {
		if r.CmpAbs(t) >= 0 {
			r.subAbs(r, t)
			q.SetBit(i, 1)
		}
		t.Rsh(t, 1)
	}
}

// Div sets z to the quotient of x / y truncated toward zero and returns z.
// Panics if y is zero.
func (z *Int) Div(x, y *Int) *Int {
	q, r := New(), New()
	divRemAbs(q, r, x, y)
	q.neg = (x.neg != y.neg) && !q.IsZero()
	return z.Set(q)
}

// DivRem sets z to the truncated quotient of x / y, sets r to the
// remainder, and returns z. The remainder carries the sign of the dividend,
// consistent with truncated division: x == z*y + r. Panics if y is zero.
func (z *Int) DivRem(x, y, r *Int) *Int {
	q, rem := New(), New()
	divRemAbs(q, rem, x, y)
	q.neg = (x.neg != y.neg) && !q.IsZero()
	rem.neg = x.neg && !rem.IsZero()
	z.Set(q)
	r.Set(rem)
	return z
}

// Mod sets z = x mod m with a Euclidean reduction: the result is always in
// [0, |m|) regardless of the sign of x. Panics if m is zero.
func (z *Int) Mod(x, m *Int) *Int {
	q, r := New(), New()
	divRemAbs(q, r, x, m)
	if x.neg && !r.IsZero() {
		am := New().Abs(m)
		r.subAbs(am, r)
	}
	return z.Set(r)
}

// ModExp sets z = b^e mod m and returns z. The exponent must be
// non-negative and m must be positive; violations panic.
func (z *Int) ModExp(b, e, m *Int) *Int {
	if e.Sign() < 0 {
		panic("bn: negative exponent")
	}
	if m.Sign() <= 0 {
		panic("bn: non-positive modulus")
	}
	base := New().Mod(b, m)
	res := NewUint64(1)
	if m.used == 1 && m.w[0] == 1 {
		return z.SetZero()
	}
	for i := e.BitLen() - 1; i >= 0; i-- {
		res.Mul(res, res)
		res.Mod(res, m)
		if e.Bit(i) == 1 {
			res.Mul(res, base)
			res.Mod(res, m)
		}
	}
	return z.Set(res)
}

// GCD sets z to the greatest common divisor of x and y and returns z. The
// result is always non-negative; GCD(0, 0) is 0.
func (z *Int) GCD(x, y *Int) *Int {
	a := New().Abs(x)
	b := New().Abs(y)
	for !b.IsZero() {
		t := New().Mod(a, b)
		a.Set(b)
		b.Set(t)
	}
	return z.Set(a)
}

// GCDExt computes g = gcd(x, y) along with Bézout coefficients satisfying
// s*x + t*y == g. g is always non-negative. s and t may be nil when the
// caller does not need them.
func GCDExt(g, s, t, x, y *Int) {
	oldR, r := New().Abs(x), New().Abs(y)
	oldS, sc := NewUint64(1), New()
	oldT, tc := New(), NewUint64(1)

	q, tmp := New(), New()
	for !r.IsZero() {
		q.Div(oldR, r)

		tmp.Sub(oldR, New().Mul(q, r))
		oldR.Set(r)
		r.Set(tmp)

		tmp.Sub(oldS, New().Mul(q, sc))
		oldS.Set(sc)
		sc.Set(tmp)

		tmp.Sub(oldT, New().Mul(q, tc))
		oldT.Set(tc)
		tc.Set(tmp)
	}

	if x.Sign() < 0 {
		oldS.Neg(oldS)
	}
	if y.Sign() < 0 {
		oldT.Neg(oldT)
	}
	g.Set(oldR)
	if s != nil {
		s.Set(oldS)
	}
	if t != nil {
		t.Set(oldT)
	}
}

// ModInv sets z to the inverse of x modulo m, if it exists, and reports
// whether it does. m must be positive.
func (z *Int) ModInv(x, m *Int) bool {
	if m.Sign() <= 0 {
		panic("bn: non-positive modulus")
	}
	g, s := New(), New()
	GCDExt(g, s, nil, x, m)
	if !(g.used == 1 && g.w[0] == 1) {
		return false
	}
	z.Mod(s, m)
	return true
}
