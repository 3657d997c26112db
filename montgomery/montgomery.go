// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package montgomery implements Mon, the Montgomery-curve group used by
// X25519/X448 (spec.md §4.4): affine `mge` and projective `pge = (X:Z)`
// points, the constant-time ladder, cofactor multiplication, and
// Elligator 2. Grounded on the teacher's point.go/scalar.go API shape
// (Identity/Generator/ConditionalSelect/disalloweq), generalized to the
// X-only, clamp-by-function-pointer curves the teacher never implements;
// the ladder step itself follows the widely used RFC 7748 §5 pseudocode,
// also demonstrated in the retrieval pack's curve25519-voi and
// cloudflared x25519/x448 files.
package montgomery

import (
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
)

// ClampFunc mutates a little-endian scalar buffer in place per spec.md
// §4.4 ("p25519_clamp", "p448_clamp" function pointers).
type ClampFunc func(buf []byte)

// Params describes one Montgomery curve.
type Params struct {
	Name string

	F *field.Field

	// A is the curve's (x^2 coefficient) constant; B is assumed 1 for
	// both X25519 and X448, matching spec.md §4.4's curve family.
	A *field.Element
	// A24 = (A-2)/4 (RFC 7748 §4.1/§4.2), the constant-a24 multiplier
	// used by the ladder step: 121665 for X25519, 39081 for X448.
	A24 *field.Element

	U *field.Element // base point u-coordinate

	ByteLen int
	Cofactor uint
	Clamp   ClampFunc

	// Z is Elligator 2's non-square map constant (spec.md §4.4).
	Z *field.Element
}

// AffinePoint is `mge`: (u, v), with the identity represented
// out-of-band (the point at infinity has no finite u/v and is never
// constructed by this package's operations, matching X25519/X448's
// "X-coordinate only" protocol use).
type AffinePoint struct {
	_ disalloweq.DisallowEqual
	c *Params
	u, v *field.Element
	isValid bool
}

// U returns the point's u-coordinate.
func (p *AffinePoint) U() *field.Element { return p.u }

// V returns the point's v-coordinate, if known (ladder-only code paths
// leave it unset; callers that need v should recover it from the curve
// equation).
func (p *AffinePoint) V() *field.Element { return p.v }

// ProjectivePoint is `pge = (X:Z)`, used by the ladder.
type ProjectivePoint struct {
	_ disalloweq.DisallowEqual
	c *Params
	x, z *field.Element
	isValid bool
}

// NewProjectivePoint returns a new receiver bound to c, set to the
// identity (X:Z) = (1:0).
func (c *Params) NewProjectivePoint() *ProjectivePoint {
	p := &ProjectivePoint{c: c, x: c.F.Element().One(), z: c.F.Element().Zero()}
	p.isValid = true
	return p
}

// FromU sets p = (u : 1) and returns p.
func (p *ProjectivePoint) FromU(c *Params, u *field.Element) *ProjectivePoint {
	p.c = c
	p.x = c.F.Element().Set(u)
	p.z = c.F.Element().One()
	p.isValid = true
	return p
}

// ToU sets out = x(p)/z(p) and returns out. Constant-time (a single
// inversion).
func (p *ProjectivePoint) ToU(out *field.Element) *field.Element {
	assertProjValid(p)
	zInv := p.c.F.Element().Invert(p.z)
	out.Multiply(p.x, zInv)
	return out
}

func assertProjValid(points ...*ProjectivePoint) {
	for _, p := range points {
		if !p.isValid {
			panic("montgomery: use of uninitialized ProjectivePoint")
		}
	}
}

// cswap conditionally swaps a and b in place iff ctrl == 1, per RFC 7748
// §5's cswap, performed on the XOR of successive scalar bits so that no
// secret bit transition is exposed (spec.md §4.4).
func cswap(ctrl uint64, a, b *field.Element) {
	f := a.Field()
	newA := f.Element().ConditionalSelect(a, b, ctrl)
	newB := f.Element().ConditionalSelect(b, a, ctrl)
	a.Set(newA)
	b.Set(newB)
}
