// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package edwards implements Ed, the twisted-Edwards group used by
// Ed25519/Ed448/Ed1174 (spec.md §4.5): extended coordinates (X, Y, Z,
// T), unified addition, windowed scalar multiplication, and the
// Elligator 2 map inherited via the curve's Montgomery isogeny. Grounded
// on `ok-john-edwards25519/internal/edwards25519.go`'s extended-
// coordinate point types (ProjP1xP1/ProjP2/ProjP3/ProjCached/
// AffineCached) — the teacher itself never implements an Edwards curve —
// generalized off a single hardcoded curve to an arbitrary Params, and
// carrying over the Weierstrass package's disalloweq/assertValid idiom
// for consistency within this repo.
package edwards

import (
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

// Params describes one twisted-Edwards curve: a*x^2+y^2 = 1+d*x^2*y^2.
type Params struct {
	Name string

	F *field.Field
	S *scalar.Field

	A, D *field.Element
	Gx, Gy *field.Element

	AIsNegOne bool
	Cofactor  uint
}

// Point is `xge`, an extended-coordinate point (X, Y, Z, T) with
// x = X/Z, y = Y/Z, x*y = T/Z (spec.md §3, §4.5). The zero value is NOT
// valid; it may only be used as a receiver.
type Point struct {
	_ disalloweq.DisallowEqual
	c *Params
	x, y, z, t *field.Element
	isValid bool
}

// NewPoint returns a new, uninitialized receiver bound to c.
func (c *Params) NewPoint() *Point {
	return &Point{c: c, x: c.F.Element(), y: c.F.Element(), z: c.F.Element(), t: c.F.Element()}
}

// Identity sets v = O and returns v.
func (v *Point) Identity(c *Params) *Point {
	v.c = c
	v.x.Zero()
	v.y.One()
	v.z.One()
	v.t.Zero()
	v.isValid = true
	return v
}

// Generator sets v = G and returns v.
func (v *Point) Generator(c *Params) *Point {
	v.c = c
	v.x.Set(c.Gx)
	v.y.Set(c.Gy)
	v.z.One()
	v.t.Multiply(c.Gx, c.Gy)
	v.isValid = true
	return v
}

// Set sets v = p and returns v.
func (v *Point) Set(p *Point) *Point {
	assertValid(p)
	v.c = p.c
	v.x.Set(p.x)
	v.y.Set(p.y)
	v.z.Set(p.z)
	v.t.Set(p.t)
	v.isValid = true
	return v
}

// Negate sets v = -p and returns v.
func (v *Point) Negate(p *Point) *Point {
	assertValid(p)
	v.c = p.c
	v.x.Negate(p.x)
	v.y.Set(p.y)
	v.z.Set(p.z)
	v.t.Negate(p.t)
	v.isValid = true
	return v
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise.
func (v *Point) ConditionalSelect(a, b *Point, ctrl uint64) *Point {
	assertValid(a, b)
	v.c = a.c
	v.x.ConditionalSelect(a.x, b.x, ctrl)
	v.y.ConditionalSelect(a.y, b.y, ctrl)
	v.z.ConditionalSelect(a.z, b.z, ctrl)
	v.t.ConditionalSelect(a.t, b.t, ctrl)
	v.isValid = true
	return v
}

// Equal returns 1 iff v == p, 0 otherwise.
func (v *Point) Equal(p *Point) uint64 {
	assertValid(v, p)
	f := v.c.F
	x1 := f.Element().Multiply(v.x, p.z)
	x2 := f.Element().Multiply(p.x, v.z)
	y1 := f.Element().Multiply(v.y, p.z)
	y2 := f.Element().Multiply(p.y, v.z)
	return x1.Equal(x2) & y1.Equal(y2)
}

// X returns the point's extended X coordinate.
func (v *Point) X() *field.Element { return v.x }

// Y returns the point's extended Y coordinate.
func (v *Point) Y() *field.Element { return v.y }

// Z returns the point's extended Z coordinate.
func (v *Point) Z() *field.Element { return v.z }

// Affine sets x, y to the point's affine coordinates and returns them.
func (v *Point) Affine() (x, y *field.Element) {
	assertValid(v)
	f := v.c.F
	zInv := f.Element().Invert(v.z)
	x = f.Element().Multiply(v.x, zInv)
	y = f.Element().Multiply(v.y, zInv)
	return x, y
}

// FromAffine sets v from affine (x, y) and returns v.
func (v *Point) FromAffine(c *Params, x, y *field.Element) *Point {
	v.c = c
	v.x = c.F.Element().Set(x)
	v.y = c.F.Element().Set(y)
	v.z = c.F.Element().One()
	v.t = c.F.Element().Multiply(x, y)
	v.isValid = true
	return v
}

func assertValid(points ...*Point) {
	for _, p := range points {
		if !p.isValid {
			panic("edwards: use of uninitialized Point")
		}
	}
}
