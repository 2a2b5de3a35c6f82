package bls12381

import (
	"bytes"
	"math/big"
	mrand "math/rand"
	"testing"
)

// feFromBig converts a reduced big.Int into Montgomery form.
func feFromBig(t *testing.T, b *big.Int) *fe {
	t.Helper()
	if b.Sign() < 0 || b.Cmp(fpBig) >= 0 {
		t.Fatalf("operand %v not reduced", b)
	}
	var z fe
	wordsToFe(&z, bigToWords(b))
	toMont(&z, &z)
	return &z
}

func feToBig(x *fe) *big.Int {
	var plain fe
	fromMont(&plain, x)
	b := new(big.Int)
	for i := fpWords - 1; i >= 0; i-- {
		b.Lsh(b, 64)
		b.Or(b, new(big.Int).SetUint64(plain[i]))
	}
	return b
}

func randFeBig(rnd *mrand.Rand) *big.Int {
	b := new(big.Int)
	for i := 0; i < fpWords; i++ {
		b.Lsh(b, 64)
		b.Or(b, new(big.Int).SetUint64(rnd.Uint64()))
	}
	return b.Mod(b, fpBig)
}

func TestFpMontgomeryRoundTrip(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(1))
	for i := 0; i < 200; i++ {
		want := randFeBig(rnd)
		got := feToBig(feFromBig(t, want))
		if got.Cmp(want) != 0 {
			t.Fatalf("round trip mismatch: got %x want %x", got, want)
		}
	}
}

func TestFpArith(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(2))
	for i := 0; i < 300; i++ {
		ab, bb := randFeBig(rnd), randFeBig(rnd)
		a, b := feFromBig(t, ab), feFromBig(t, bb)

		var z fe
		fpAdd(&z, a, b)
		want := new(big.Int).Add(ab, bb)
		want.Mod(want, fpBig)
		if feToBig(&z).Cmp(want) != 0 {
			t.Fatalf("add mismatch at %d", i)
		}

		fpSub(&z, a, b)
		want.Sub(ab, bb)
		want.Mod(want, fpBig)
		if feToBig(&z).Cmp(want) != 0 {
			t.Fatalf("sub mismatch at %d", i)
		}

		fpMul(&z, a, b)
		want.Mul(ab, bb)
		want.Mod(want, fpBig)
		if feToBig(&z).Cmp(want) != 0 {
			t.Fatalf("mul mismatch at %d", i)
		}

		fpSqr(&z, a)
		want.Mul(ab, ab)
		want.Mod(want, fpBig)
		if feToBig(&z).Cmp(want) != 0 {
			t.Fatalf("sqr mismatch at %d", i)
		}

		fpNeg(&z, a)
		want.Neg(ab)
		want.Mod(want, fpBig)
		if feToBig(&z).Cmp(want) != 0 {
			t.Fatalf("neg mismatch at %d", i)
		}

		fpDouble(&z, a)
		want.Lsh(ab, 1)
		want.Mod(want, fpBig)
		if feToBig(&z).Cmp(want) != 0 {
			t.Fatalf("double mismatch at %d", i)
		}
	}
}

func TestFpEdgeOperands(t *testing.T) {
	zero := &fe{}
	one := feFromBig(t, big.NewInt(1))
	pm1 := feFromBig(t, new(big.Int).Sub(fpBig, big.NewInt(1)))

	var z fe
	fpAdd(&z, pm1, one)
	if !feIsZero(&z) {
		t.Errorf("(p-1) + 1 != 0")
	}
	fpSub(&z, zero, one)
	if !feEqual(&z, pm1) {
		t.Errorf("0 - 1 != p-1")
	}
	fpNeg(&z, zero)
	if !feIsZero(&z) {
		t.Errorf("-0 not canonical zero")
	}
	fpMul(&z, pm1, pm1)
	if !feEqual(&z, one) {
		t.Errorf("(p-1)^2 != 1")
	}
}

func TestFpInverse(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(3))
	one := feFromBig(t, big.NewInt(1))
	for i := 0; i < 50; i++ {
		ab := randFeBig(rnd)
		if ab.Sign() == 0 {
			continue
		}
		a := feFromBig(t, ab)
		var inv, z fe
		fpInverse(&inv, a)
		fpMul(&z, a, &inv)
		if !feEqual(&z, one) {
			t.Fatalf("a * a^-1 != 1 at %d", i)
		}
	}
}

func TestFpSqrt(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(4))
	squares, nonSquares := 0, 0
	for i := 0; i < 100; i++ {
		a := feFromBig(t, randFeBig(rnd))
		var r, check fe
		if fpSqrt(&r, a) {
			squares++
			if !fpIsSquare(a) {
				t.Fatalf("sqrt found but Euler says non-square")
			}
			fpSqr(&check, &r)
			if !feEqual(&check, a) {
				t.Fatalf("sqrt(a)^2 != a")
			}
		} else {
			nonSquares++
			if fpIsSquare(a) && !feIsZero(a) {
				t.Fatalf("no sqrt but Euler says square")
			}
		}
	}
	// Both branches must actually occur over 100 samples.
	if squares == 0 || nonSquares == 0 {
		t.Errorf("degenerate sample: %d squares, %d non-squares", squares, nonSquares)
	}
}

func TestFpExp(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(5))
	for i := 0; i < 30; i++ {
		ab := randFeBig(rnd)
		eb := randFeBig(rnd)
		a := feFromBig(t, ab)
		var z fe
		fpExp(&z, a, bigToWords(eb))
		want := new(big.Int).Exp(ab, eb, fpBig)
		if feToBig(&z).Cmp(want) != 0 {
			t.Fatalf("exp mismatch at %d", i)
		}
	}
}

func TestFpSgn0(t *testing.T) {
	if fpSgn0(&fe{}) != 0 {
		t.Errorf("sgn0(0) != 0")
	}
	if fpSgn0(feFromBig(t, big.NewInt(1))) != 1 {
		t.Errorf("sgn0(1) != 1")
	}
	if fpSgn0(feFromBig(t, big.NewInt(2))) != 0 {
		t.Errorf("sgn0(2) != 0")
	}
	// p-1 is even.
	if fpSgn0(feFromBig(t, new(big.Int).Sub(fpBig, big.NewInt(1)))) != 0 {
		t.Errorf("sgn0(p-1) != 0")
	}
}

func TestFpSelect(t *testing.T) {
	a := feFromBig(t, big.NewInt(7))
	b := feFromBig(t, big.NewInt(11))
	var z fe
	fpSelect(&z, a, b, 1)
	if !feEqual(&z, a) {
		t.Errorf("select(cond=1) != a")
	}
	fpSelect(&z, a, b, 0)
	if !feEqual(&z, b) {
		t.Errorf("select(cond=0) != b")
	}
}

func TestFeBytesRoundTrip(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(6))
	for i := 0; i < 50; i++ {
		a := feFromBig(t, randFeBig(rnd))
		enc := feToBytes(a)
		if len(enc) != FpBytes {
			t.Fatalf("encoding length %d", len(enc))
		}
		var back fe
		if err := feFromBytes(&back, enc); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !feEqual(&back, a) {
			t.Fatalf("round trip mismatch at %d", i)
		}
	}
}

func TestFeBytesRejects(t *testing.T) {
	var z fe
	if err := feFromBytes(&z, make([]byte, FpBytes-1)); err != ErrInvalidEncoding {
		t.Errorf("short input: got %v", err)
	}
	// p itself is not canonical.
	enc := make([]byte, FpBytes)
	copy(enc[FpBytes-len(fpBig.Bytes()):], fpBig.Bytes())
	if err := feFromBytes(&z, enc); err != ErrNonCanonical {
		t.Errorf("modulus input: got %v", err)
	}
	// All 0xff is far above p.
	if err := feFromBytes(&z, bytes.Repeat([]byte{0xff}, FpBytes)); err != ErrNonCanonical {
		t.Errorf("all-ones input: got %v", err)
	}
}
