package bn

import (
	"math/big"
	mrand "math/rand"
	"testing"
)

// toBig converts an Int to a math/big value for use as a test oracle.
func toBig(z *Int) *big.Int {
	b := new(big.Int).SetBytes(z.Bytes())
	if z.Sign() < 0 {
		b.Neg(b)
	}
	return b
}

// fromBig converts a math/big value to an Int.
func fromBig(b *big.Int) *Int {
	z := New().SetBytes(b.Bytes())
	if b.Sign() < 0 {
		z.neg = true
	}
	return z
}

func newTestRand(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

func randBytes(rng *mrand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// randBig returns a random signed value of up to maxBits bits.
func randBig(rng *mrand.Rand, maxBits int) *big.Int {
	n := rng.Intn(maxBits) + 1
	b := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), uint(n)))
	if rng.Intn(2) == 1 {
		b.Neg(b)
	}
	return b
}

func TestIntZero(t *testing.T) {
	z := New()
	if !z.IsZero() {
		t.Error("New() is not zero")
	}
	if z.Sign() != 0 {
		t.Errorf("Sign() = %d, want 0", z.Sign())
	}
	// Zero is canonically non-negative even after negation.
	z.Neg(z)
	if z.Sign() != 0 || z.neg {
		t.Error("negated zero is not canonical")
	}
	if z.used != 1 || z.w[0] != 0 {
		t.Errorf("zero representation used=%d w0=%d, want 1, 0", z.used, z.w[0])
	}
}

func TestIntCmp(t *testing.T) {
	cases := []struct {
		a, b int64
		want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, -1},
		{-1, 1, -1},
		{1, -1, 1},
		{-5, -3, -1},
		{-3, -5, 1},
		{7, 7, 0},
		{-7, -7, 0},
	}
	for _, c := range cases {
		got := NewInt64(c.a).Cmp(NewInt64(c.b))
		if got != c.want {
			t.Errorf("Cmp(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestIntCmpZeroSign(t *testing.T) {
	// A zero with a manually poisoned sign flag must still compare equal.
	a := New()
	a.neg = true
	if a.Cmp(New()) != 0 {
		t.Error("zero with stored negative sign does not compare equal to zero")
	}
}

func TestIntAddSubRandom(t *testing.T) {
	rng := mrand.New(mrand.NewSource(1))
	for i := 0; i < 500; i++ {
		a, b := randBig(rng, 1024), randBig(rng, 1024)
		sum := New().Add(fromBig(a), fromBig(b))
		if got, want := toBig(sum), new(big.Int).Add(a, b); got.Cmp(want) != 0 {
			t.Fatalf("Add(%s, %s) = %s, want %s", a, b, got, want)
		}
		diff := New().Sub(fromBig(a), fromBig(b))
		if got, want := toBig(diff), new(big.Int).Sub(a, b); got.Cmp(want) != 0 {
			t.Fatalf("Sub(%s, %s) = %s, want %s", a, b, got, want)
		}
	}
}

func TestIntMulRandom(t *testing.T) {
	rng := mrand.New(mrand.NewSource(2))
	for i := 0; i < 500; i++ {
		a, b := randBig(rng, 900), randBig(rng, 900)
		prod := New().Mul(fromBig(a), fromBig(b))
		if got, want := toBig(prod), new(big.Int).Mul(a, b); got.Cmp(want) != 0 {
			t.Fatalf("Mul(%s, %s) = %s, want %s", a, b, got, want)
		}
	}
}

func TestIntAliasedOperands(t *testing.T) {
	// add(a, a, b) style aliasing: receiver aliases an input.
	a := NewInt64(12345)
	b := NewInt64(67890)
	a.Add(a, b)
	if a.Cmp(NewInt64(80235)) != 0 {
		t.Errorf("aliased Add = %s, want 80235", a)
	}

	c := NewInt64(1000)
	c.Mul(c, c)
	if c.Cmp(NewInt64(1000000)) != 0 {
		t.Errorf("aliased Mul = %s, want 1000000", c)
	}

	d := NewInt64(-42)
	d.Sub(d, d)
	if !d.IsZero() {
		t.Errorf("x - x = %s, want 0", d)
	}
}

func TestIntDivRem(t *testing.T) {
	cases := []struct {
		a, b, q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -3, -1},
		{7, -2, -3, 1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
		{0, 5, 0, 0},
		{5, 7, 0, 5},
	}
	for _, c := range cases {
		q, r := New(), New()
		q.DivRem(NewInt64(c.a), NewInt64(c.b), r)
		if q.Cmp(NewInt64(c.q)) != 0 || r.Cmp(NewInt64(c.r)) != 0 {
			t.Errorf("DivRem(%d, %d) = (%s, %s), want (%d, %d)", c.a, c.b, q, r, c.q, c.r)
		}
	}
}

func TestIntDivRemIdentityRandom(t *testing.T) {
	rng := mrand.New(mrand.NewSource(3))
	for i := 0; i < 300; i++ {
		a := randBig(rng, 1024)
		b := randBig(rng, 500)
		if b.Sign() == 0 {
			continue
		}
		q, r := New(), New()
		q.DivRem(fromBig(a), fromBig(b), r)

		// a == q*b + r, and |r| < |b|.
		check := New().Mul(q, fromBig(b))
		check.Add(check, r)
		if toBig(check).Cmp(a) != 0 {
			t.Fatalf("DivRem identity failed for a=%s b=%s", a, b)
		}
		if r.CmpAbs(fromBig(b)) >= 0 {
			t.Fatalf("|r| >= |b| for a=%s b=%s", a, b)
		}
		// Remainder sign matches the dividend.
		if r.Sign() != 0 && r.Sign() != fromBig(a).Sign() {
			t.Fatalf("remainder sign mismatch for a=%s b=%s", a, b)
		}
	}
}

func TestIntModEuclidean(t *testing.T) {
	// mod(a, m) is in [0, m) for every sign of a.
	m := NewInt64(13)
	for a := int64(-40); a <= 40; a++ {
		r := New().Mod(NewInt64(a), m)
		if r.Sign() < 0 || r.Cmp(m) >= 0 {
			t.Fatalf("Mod(%d, 13) = %s out of range", a, r)
		}
		want := ((a % 13) + 13) % 13
		if r.Cmp(NewInt64(want)) != 0 {
			t.Errorf("Mod(%d, 13) = %s, want %d", a, r, want)
		}
	}
}

func TestIntDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Div by zero did not panic")
		}
	}()
	New().Div(NewInt64(1), New())
}

func TestIntCapacityOverflowPanics(t *testing.T) {
	big1 := New()
	big1.SetBit(Digits*DigitBits-1, 1)
	defer func() {
		if recover() == nil {
			t.Error("Mul overflowing capacity did not panic")
		}
	}()
	New().Mul(big1, big1)
}

func TestIntShifts(t *testing.T) {
	rng := mrand.New(mrand.NewSource(4))
	for i := 0; i < 200; i++ {
		a := randBig(rng, 800)
		k := uint(rng.Intn(300))
		ls := New().Lsh(fromBig(a), k)
		want := new(big.Int).Lsh(a, k)
		if toBig(ls).Cmp(want) != 0 {
			t.Fatalf("Lsh(%s, %d) = %s, want %s", a, k, toBig(ls), want)
		}
		// Rsh is a magnitude shift: |a| >> k, sign preserved.
		rs := New().Rsh(fromBig(a), k)
		wantAbs := new(big.Int).Rsh(new(big.Int).Abs(a), k)
		if a.Sign() < 0 {
			wantAbs.Neg(wantAbs)
		}
		if toBig(rs).Cmp(wantAbs) != 0 {
			t.Fatalf("Rsh(%s, %d) = %s, want %s", a, k, toBig(rs), wantAbs)
		}
	}
}

func TestIntBitAccessors(t *testing.T) {
	z := New()
	z.SetBit(0, 1)
	z.SetBit(65, 1)
	if z.Bit(0) != 1 || z.Bit(65) != 1 || z.Bit(64) != 0 {
		t.Error("SetBit/Bit mismatch")
	}
	if z.BitLen() != 66 {
		t.Errorf("BitLen = %d, want 66", z.BitLen())
	}
	z.SetBit(65, 0)
	if z.BitLen() != 1 {
		t.Errorf("BitLen after clearing = %d, want 1", z.BitLen())
	}
	if New().BitLen() != 0 {
		t.Error("BitLen(0) != 0")
	}
}

func TestIntGCD(t *testing.T) {
	cases := []struct{ a, b, g int64 }{
		{12, 18, 6},
		{-12, 18, 6},
		{12, -18, 6},
		{-12, -18, 6},
		{0, 5, 5},
		{5, 0, 5},
		{0, 0, 0},
		{17, 13, 1},
	}
	for _, c := range cases {
		g := New().GCD(NewInt64(c.a), NewInt64(c.b))
		if g.Cmp(NewInt64(c.g)) != 0 {
			t.Errorf("GCD(%d, %d) = %s, want %d", c.a, c.b, g, c.g)
		}
		if g.Sign() < 0 {
			t.Errorf("GCD(%d, %d) is negative", c.a, c.b)
		}
	}
}

func TestIntGCDExtBezout(t *testing.T) {
	rng := mrand.New(mrand.NewSource(5))
	for i := 0; i < 200; i++ {
		a := randBig(rng, 300)
		b := randBig(rng, 300)
		g, s, u := New(), New(), New()
		GCDExt(g, s, u, fromBig(a), fromBig(b))

		// s*a + u*b == g
		l := New().Mul(s, fromBig(a))
		r := New().Mul(u, fromBig(b))
		l.Add(l, r)
		if l.Cmp(g) != 0 {
			t.Fatalf("Bezout identity failed for a=%s b=%s", a, b)
		}
		want := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
		if toBig(g).Cmp(want) != 0 {
			t.Fatalf("GCDExt gcd = %s, want %s", toBig(g), want)
		}
	}
}

func TestIntModExp(t *testing.T) {
	rng := mrand.New(mrand.NewSource(6))
	for i := 0; i < 100; i++ {
		b := new(big.Int).Abs(randBig(rng, 256))
		e := new(big.Int).Abs(randBig(rng, 128))
		m := new(big.Int).Abs(randBig(rng, 256))
		if m.Sign() == 0 {
			continue
		}
		got := New().ModExp(fromBig(b), fromBig(e), fromBig(m))
		want := new(big.Int).Exp(b, e, m)
		if toBig(got).Cmp(want) != 0 {
			t.Fatalf("ModExp(%s, %s, %s) = %s, want %s", b, e, m, toBig(got), want)
		}
	}
}

func TestIntModInv(t *testing.T) {
	m := NewInt64(97) // prime modulus: everything nonzero is invertible
	for a := int64(1); a < 97; a++ {
		inv := New()
		if !inv.ModInv(NewInt64(a), m) {
			t.Fatalf("ModInv(%d, 97) reported non-invertible", a)
		}
		prod := New().Mul(inv, NewInt64(a))
		prod.Mod(prod, m)
		if prod.Cmp(NewInt64(1)) != 0 {
			t.Errorf("%d * inv(%d) mod 97 = %s, want 1", a, a, prod)
		}
	}
	// Non-invertible case.
	if New().ModInv(NewInt64(6), NewInt64(9)) {
		t.Error("ModInv(6, 9) reported invertible")
	}
}
