//go:build blst

package bls12381

// Cross-checks against the blst C library. Build and run with:
//
//	go test -tags blst ./pkg/bls12381 -run Blst

import (
	"bytes"
	"testing"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/bilinearlabs/pairing/pkg/bn"
)

// blst uncompressed serialization is plain affine x||y for finite points,
// matching the unpacked encoding here.

func TestBlstG1Generator(t *testing.T) {
	ref := blst.P1Generator().Serialize()
	mine := G1Generator().Bytes(false)
	if !bytes.Equal(ref, mine) {
		t.Fatalf("generator mismatch:\nblst %x\nours %x", ref, mine)
	}
}

func TestBlstG2Generator(t *testing.T) {
	ref := blst.P2Generator().Serialize()
	mine := G2Generator().Bytes(false)
	// blst serializes Fp2 coordinates c1 before c0; swap halves per
	// coordinate before comparing.
	swapped := make([]byte, 0, len(mine))
	for _, off := range []int{0, 2 * FpBytes} {
		swapped = append(swapped, mine[off+FpBytes:off+2*FpBytes]...)
		swapped = append(swapped, mine[off:off+FpBytes]...)
	}
	if !bytes.Equal(ref, swapped) {
		t.Fatalf("generator mismatch:\nblst %x\nours %x", ref, swapped)
	}
}

func TestBlstG1ScalarMul(t *testing.T) {
	for _, k := range []uint64{1, 2, 3, 1 << 40, ^uint64(0)} {
		enc := make([]byte, 32)
		for i := 0; i < 8; i++ {
			enc[31-i] = byte(k >> (8 * i))
		}
		var s blst.Scalar
		if s.Deserialize(enc) == nil {
			t.Fatalf("scalar %d rejected", k)
		}
		ref := blst.P1Generator().Mult(&s).Serialize()
		mine := G1Mul(G1Generator(), bn.NewUint64(k)).Bytes(false)
		if !bytes.Equal(ref, mine) {
			t.Fatalf("[%d]g1 mismatch", k)
		}
	}
}
