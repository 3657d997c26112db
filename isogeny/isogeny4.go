// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package isogeny

import "gitlab.com/crypto-core/ecc-core/field"

// Isogeny4 holds the Montgomery curve constant needed by the Curve448 <->
// Ed448 4-isogeny (spec.md §4.6, §3 glossary "4-isogeny (p448)"): unlike
// Curve25519/Ed25519, Curve448 and Ed448 are not birationally equivalent,
// only 4-isogenous, so the conversion is a genuine rational map rather
// than a simple change of coordinates.
type Isogeny4 struct {
	A *field.Element // Montgomery curve's x^2 coefficient (B assumed 1)
}

// NewIsogeny4 returns an Isogeny4 for the given Montgomery A constant.
func NewIsogeny4(a *field.Element) *Isogeny4 {
	return &Isogeny4{A: a}
}

// EdwardsToMontgomery maps an Ed448 affine point (x, y) to its Curve448
// counterpart (u, v) via the degree-4 isogeny:
//
//	u = y^2 / x^2
//	v = (2 - x^2 - y^2) * y / x^3
//
// x == 0 (the Edwards identity and its 2-torsion partner) is an
// exceptional case handled by the caller via select-masking, matching
// spec.md §4.6's "exceptional cases... handled by the same
// select-masking discipline that covers the identity".
func (iso *Isogeny4) EdwardsToMontgomery(f *field.Field, x, y *field.Element) (u, v *field.Element) {
	x2 := f.Element().Square(x)
	y2 := f.Element().Square(y)
	x3 := f.Element().Multiply(x2, x)

	xInv2 := f.Element().Invert(x2)
	u = f.Element().Multiply(y2, xInv2)

	two := f.Element().Add(f.Element().One(), f.Element().One())
	num := f.Element().Subtract(two, x2)
	num.Subtract(num, y2)
	num.Multiply(num, y)
	v = f.Element().Multiply(num, f.Element().Invert(x3))
	return u, v
}

// MontgomeryToEdwards maps a Curve448 affine point (u, v) back to its
// Ed448 counterpart (x, y) via the dual 4-isogeny:
//
//	x = 4*v*(u^2-1) / (u^4 - 2*u^2 + 4*v^2 + 1)
//	y = -(u^5 - 2*u^3 - 4*u*v^2 + u) / (u^5 - 2*u^2*v^2 - 2*u^3 - 2*v^2 + u)
func (iso *Isogeny4) MontgomeryToEdwards(f *field.Field, u, v *field.Element) (x, y *field.Element) {
	one := f.Element().One()
	u2 := f.Element().Square(u)
	u3 := f.Element().Multiply(u2, u)
	u4 := f.Element().Square(u2)
	u5 := f.Element().Multiply(u4, u)

	v2 := f.Element().Square(v)
	twoV2 := f.Element().Add(v2, v2)

	xNum := f.Element().Subtract(u2, one)
	four_v := f.Element().Add(v, v)
	four_v.Add(four_v, four_v)
	xNum.Multiply(xNum, four_v)

	xDen := f.Element().Add(u2, u2)
	xDen2 := f.Element().Subtract(u4, xDen)
	xDen2.Add(xDen2, one)
	xDen2.Add(xDen2, f.Element().Add(twoV2, twoV2))
	x = f.Element().Multiply(xNum, f.Element().Invert(xDen2))

	twoU3 := f.Element().Add(u3, u3)
	base := f.Element().Subtract(u5, twoU3)
	base.Add(base, u)

	fourV2u := f.Element().Multiply(v2, u)
	fourV2u.Add(fourV2u, fourV2u)
	fourV2u.Add(fourV2u, fourV2u)

	yNum := f.Element().Subtract(fourV2u, base)
	yDen := f.Element().Subtract(base, f.Element().Multiply(twoV2, f.Element().Add(u2, one)))
	y = f.Element().Multiply(yNum, f.Element().Invert(yDen))
	return x, y
}
