package bls12381

// The context owns the shared, derived state of the curve: the group
// order handle, the precomputed GT generator, and a module logger. One
// context per goroutine, or external serialization; a context has no
// internal locking.

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/bilinearlabs/pairing/pkg/bn"
	"github.com/bilinearlabs/pairing/pkg/log"
)

// Ctx is the explicit lifecycle object for pairing operations. Create it
// with NewCtx and release it with Close; using a closed context panics.
type Ctx struct {
	order  *bn.Int
	gtGen  *GT
	logger *log.Logger
	closed bool
}

// NewCtx validates the curve constants and materializes the shared state.
// Validation failure means corrupted constants and panics.
func NewCtx() *Ctx {
	c := &Ctx{
		logger: log.Default().Module("bls12381"),
	}

	order, err := new(bn.Int).SetString(groupOrderHex, 16)
	if err != nil {
		panic("bls12381: bad group order constant")
	}
	c.order = order

	g1 := G1Generator()
	g2 := G2Generator()
	if !g1.IsValid() || !g2.IsValid() {
		panic("bls12381: generator fails validation")
	}

	c.gtGen = Pair(g1, g2)
	if c.gtGen.IsUnity() {
		panic("bls12381: degenerate pairing")
	}

	c.logger.Debug("context ready", "field_bits", fpBig.BitLen(), "order_bits", order.BitLen())
	return c
}

// Close releases the context. Idempotent; every other method panics once
// the context is closed.
func (c *Ctx) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.order = nil
	c.gtGen = nil
}

func (c *Ctx) ensure() {
	if c.closed {
		panic("bls12381: use of closed context")
	}
}

// Order returns the prime order shared by G1, G2 and GT. The caller must
// not mutate the returned value.
func (c *Ctx) Order() *bn.Int {
	c.ensure()
	return c.order
}

// G1Generator returns a fresh copy of the G1 generator.
func (c *Ctx) G1Generator() *PointG1 {
	c.ensure()
	return G1Generator()
}

// G2Generator returns a fresh copy of the G2 generator.
func (c *Ctx) G2Generator() *PointG2 {
	c.ensure()
	return G2Generator()
}

// GTGenerator returns a fresh copy of e(g1, g2), precomputed at context
// creation.
func (c *Ctx) GTGenerator() *GT {
	c.ensure()
	return new(GT).Set(c.gtGen)
}

// G1MulGen returns [k]g1 with k reduced modulo the group order first.
func (c *Ctx) G1MulGen(k *bn.Int) *PointG1 {
	c.ensure()
	r := new(bn.Int).Mod(k, c.order)
	return G1Mul(G1Generator(), r)
}

// G2MulGen returns [k]g2 with k reduced modulo the group order first.
func (c *Ctx) G2MulGen(k *bn.Int) *PointG2 {
	c.ensure()
	r := new(bn.Int).Mod(k, c.order)
	return G2Mul(G2Generator(), r)
}

// HashToG1 hashes a message to G1.
func (c *Ctx) HashToG1(msg []byte) *PointG1 {
	c.ensure()
	return G1Map(msg)
}

// HashToG2 hashes a message to G2.
func (c *Ctx) HashToG2(msg []byte) *PointG2 {
	c.ensure()
	return G2Map(msg)
}

// G1FromBytes decodes and fully validates a G1 point: any encoding error
// surfaces as is, and an on-curve point outside the prime-order subgroup
// is rejected with ErrPointWrongGroup.
func (c *Ctx) G1FromBytes(in []byte) (*PointG1, error) {
	c.ensure()
	p := &PointG1{}
	if err := p.SetBytes(in); err != nil {
		return nil, err
	}
	if !p.IsValid() {
		return nil, ErrPointWrongGroup
	}
	return p, nil
}

// G2FromBytes decodes and fully validates a G2 point.
func (c *Ctx) G2FromBytes(in []byte) (*PointG2, error) {
	c.ensure()
	p := &PointG2{}
	if err := p.SetBytes(in); err != nil {
		return nil, err
	}
	if !p.IsValid() {
		return nil, ErrPointWrongGroup
	}
	return p, nil
}

// Pair computes the bilinear pairing e(p, q).
func (c *Ctx) Pair(p *PointG1, q *PointG2) *GT {
	c.ensure()
	return Pair(p, q)
}

// PairingCheck reports whether the product of pairings is the identity.
func (c *Ctx) PairingCheck(ps []*PointG1, qs []*PointG2) bool {
	c.ensure()
	return PairingCheck(ps, qs)
}

// Params is the introspection view of the curve constants, hex encoded
// for display and JSON.
type Params struct {
	FieldModulus hexutil.Bytes `json:"fieldModulus"`
	GroupOrder   hexutil.Bytes `json:"groupOrder"`
	CurveB       uint64        `json:"curveB"`
	LoopParam    hexutil.Bytes `json:"loopParam"` // |x|; the sign is negative
	G1Generator  hexutil.Bytes `json:"g1Generator"`
	G2Generator  hexutil.Bytes `json:"g2Generator"`
}

// Params reports the curve constants.
func (c *Ctx) Params() Params {
	c.ensure()
	return Params{
		FieldModulus: fpBig.Bytes(),
		GroupOrder:   c.order.Bytes(),
		CurveB:       4,
		LoopParam:    loopParamBig.Bytes(),
		G1Generator:  G1Generator().Bytes(false),
		G2Generator:  G2Generator().Bytes(false),
	}
}
