// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass

import (
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
)

// AffinePoint is `wge`: `(x, y, inf)` with `inf=1` denoting the identity
// (spec.md §3). All arguments and receivers are allowed to alias. The
// zero value is NOT valid; it may only be used as a receiver.
type AffinePoint struct {
	_ disalloweq.DisallowEqual

	c *Params
	x, y *field.Element
	inf uint64

	isValid bool
}

// NewAffinePoint returns a new, uninitialized receiver bound to c.
func (c *Params) NewAffinePoint() *AffinePoint {
	return &AffinePoint{c: c, x: c.F.Element(), y: c.F.Element()}
}

// Identity sets p = O and returns p.
func (p *AffinePoint) Identity() *AffinePoint {
	p.x.Zero()
	p.y.Zero()
	p.inf = 1
	p.isValid = true
	return p
}

// Generator sets p = G and returns p.
func (p *AffinePoint) Generator(c *Params) *AffinePoint {
	p.c = c
	p.x.Set(c.Gx)
	p.y.Set(c.Gy)
	p.inf = 0
	p.isValid = true
	return p
}

// Set sets p = a and returns p.
func (p *AffinePoint) Set(a *AffinePoint) *AffinePoint {
	assertAffineValid(a)
	p.c = a.c
	p.x.Set(a.x)
	p.y.Set(a.y)
	p.inf = a.inf
	p.isValid = true
	return p
}

// Negate sets p = -a and returns p.
func (p *AffinePoint) Negate(a *AffinePoint) *AffinePoint {
	assertAffineValid(a)
	p.c = a.c
	p.x.Set(a.x)
	p.y.Negate(a.y)
	p.inf = a.inf
	p.isValid = true
	return p
}

// IsIdentity returns 1 iff p == O.
func (p *AffinePoint) IsIdentity() uint64 {
	assertAffineValid(p)
	return p.inf
}

// X returns the point's x-coordinate. Only meaningful if IsIdentity() == 0.
func (p *AffinePoint) X() *field.Element { return p.x }

// Y returns the point's y-coordinate. Only meaningful if IsIdentity() == 0.
func (p *AffinePoint) Y() *field.Element { return p.y }

// IsOnCurve reports whether p satisfies y^2 = x^3 + a*x + b (mod p),
// variable-time; used only for decode validation of public input.
func (p *AffinePoint) IsOnCurve() bool {
	assertAffineValid(p)
	if p.inf == 1 {
		return true
	}
	c := p.c
	lhs := c.F.Element().Square(p.y)
	x2 := c.F.Element().Square(p.x)
	x3 := c.F.Element().Multiply(x2, p.x)
	ax := c.F.Element().Multiply(c.A, p.x)
	rhs := c.F.Element().Add(x3, ax)
	rhs.Add(rhs, c.B)
	return lhs.Equal(rhs) == 1
}

func assertAffineValid(points ...*AffinePoint) {
	for _, p := range points {
		if !p.isValid {
			panic("weierstrass: use of uninitialized AffinePoint")
		}
	}
}

// JacobianPoint is `jge`: `(X, Y, Z)` representing `(X/Z^2, Y/Z^3)` for
// `Z != 0`; `Z = 0` is the identity (spec.md §3). Used for all
// secret-dependent arithmetic.
type JacobianPoint struct {
	_ disalloweq.DisallowEqual

	c *Params
	x, y, z *field.Element

	isValid bool
}

// NewJacobianPoint returns a new, uninitialized receiver bound to c.
func (c *Params) NewJacobianPoint() *JacobianPoint {
	return &JacobianPoint{c: c, x: c.F.Element(), y: c.F.Element(), z: c.F.Element()}
}

// Identity sets v = O and returns v.
func (v *JacobianPoint) Identity(c *Params) *JacobianPoint {
	v.c = c
	v.x.Zero()
	v.y.One()
	v.z.Zero()
	v.isValid = true
	return v
}

// Generator sets v = G and returns v.
func (v *JacobianPoint) Generator(c *Params) *JacobianPoint {
	v.c = c
	v.x.Set(c.Gx)
	v.y.Set(c.Gy)
	v.z.One()
	v.isValid = true
	return v
}

// FromAffine sets v = p and returns v.
func (v *JacobianPoint) FromAffine(p *AffinePoint) *JacobianPoint {
	assertAffineValid(p)
	v.c = p.c
	if p.inf == 1 {
		return v.Identity(p.c)
	}
	v.x.Set(p.x)
	v.y.Set(p.y)
	v.z.One()
	v.isValid = true
	return v
}

// Set sets v = p and returns v.
func (v *JacobianPoint) Set(p *JacobianPoint) *JacobianPoint {
	assertJacobianValid(p)
	v.c = p.c
	v.x.Set(p.x)
	v.y.Set(p.y)
	v.z.Set(p.z)
	v.isValid = true
	return v
}

// ToAffine sets p = v (converted to affine coordinates) and returns p.
// Constant-time with respect to v's coordinates (a single field inversion
// plus multiplications); the identity check on Z is not secret in
// practice since Z==0 only for the explicit identity element.
func (p *AffinePoint) ToAffine(j *JacobianPoint) *AffinePoint {
	assertJacobianValid(j)
	c := j.c
	p.c = c

	isIdentity := j.z.IsZero()
	zInv := c.F.Element().Invert(j.z)
	zInv2 := c.F.Element().Square(zInv)
	zInv3 := c.F.Element().Multiply(zInv2, zInv)

	p.x.Multiply(j.x, zInv2)
	p.y.Multiply(j.y, zInv3)
	p.inf = isIdentity
	p.isValid = true
	return p
}

// IsIdentity returns 1 iff v == O.
func (v *JacobianPoint) IsIdentity() uint64 {
	assertJacobianValid(v)
	return v.z.IsZero()
}

// Negate sets v = -p and returns v.
func (v *JacobianPoint) Negate(p *JacobianPoint) *JacobianPoint {
	assertJacobianValid(p)
	v.c = p.c
	v.x.Set(p.x)
	v.y.Negate(p.y)
	v.z.Set(p.z)
	v.isValid = true
	return v
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise.
func (v *JacobianPoint) ConditionalSelect(a, b *JacobianPoint, ctrl uint64) *JacobianPoint {
	assertJacobianValid(a, b)
	v.c = a.c
	v.x.ConditionalSelect(a.x, b.x, ctrl)
	v.y.ConditionalSelect(a.y, b.y, ctrl)
	v.z.ConditionalSelect(a.z, b.z, ctrl)
	v.isValid = true
	return v
}

// Equal returns 1 iff v == p, 0 otherwise (cross-multiplication, avoids
// inversion).
func (v *JacobianPoint) Equal(p *JacobianPoint) uint64 {
	assertJacobianValid(v, p)
	c := v.c
	vz2 := c.F.Element().Square(v.z)
	pz2 := c.F.Element().Square(p.z)
	vz3 := c.F.Element().Multiply(vz2, v.z)
	pz3 := c.F.Element().Multiply(pz2, p.z)

	x1 := c.F.Element().Multiply(v.x, pz2)
	x2 := c.F.Element().Multiply(p.x, vz2)
	y1 := c.F.Element().Multiply(v.y, pz3)
	y2 := c.F.Element().Multiply(p.y, vz3)

	bothIdentity := v.IsIdentity() & p.IsIdentity()
	eitherIdentity := v.IsIdentity() ^ p.IsIdentity()
	normalEq := x1.Equal(x2) & y1.Equal(y2)

	// (both identity) OR ((neither-xor-identity) AND normalEq)
	return bothIdentity | ((eitherIdentity ^ 1) & normalEq)
}

func assertJacobianValid(points ...*JacobianPoint) {
	for _, p := range points {
		if !p.isValid {
			panic("weierstrass: use of uninitialized JacobianPoint")
		}
	}
}
