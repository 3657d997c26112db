// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package isogeny implements the Montgomery <-> twisted-Edwards
// conversions spec.md §4.6 describes: a birational isomorphism (used by
// Curve25519/Ed25519) and a 4-isogeny (used by Curve448/Ed448, which are
// not strictly isomorphic). Grounded on the teacher's disalloweq/
// constructor idiom; the conversion math itself is not present anywhere
// in the teacher (secp256k1 has no Montgomery/Edwards form) and is
// reconstructed directly from spec.md §4.6's formulas.
package isogeny

import "gitlab.com/crypto-core/ecc-core/field"

// Isomorphism holds the precomputed scaling constant relating a
// Montgomery curve v^2 = u^3 + A*u^2 + u to a birationally equivalent
// twisted-Edwards curve a*x^2+y^2 = 1+d*x^2*y^2, per spec.md §4.6:
// "c^2 = (A +/- 2) / (B*a)".
type Isomorphism struct {
	C      *field.Element
	Invert bool
}

// NewIsomorphism computes the scaling constant c for the Montgomery
// curve (A, B=1) and Edwards curve coefficient a. invert selects the
// "+2"/"-2" branch, matching the curve's fixed sign convention; it is
// stored in Invert, which the conversion methods do not read.
func NewIsomorphism(f *field.Field, montA *field.Element, edA *field.Element, invert bool) *Isomorphism {
	two := f.Element().Add(f.Element().One(), f.Element().One())
	var num *field.Element
	if invert {
		num = f.Element().Subtract(montA, two)
	} else {
		num = f.Element().Add(montA, two)
	}
	den := f.Element().Set(edA)
	ratio := f.Element().Multiply(num, f.Element().Invert(den))
	c, _ := f.Element().Sqrt(ratio)
	return &Isomorphism{C: c, Invert: invert}
}

// EdwardsToMontgomery maps an Edwards affine point (x, y) to its
// Montgomery counterpart (u, v), per spec.md §4.6: "u = (Z+Y)/(Z-Y),
// v = c*Z*u/X" with Z=1 for affine input.
func (iso *Isomorphism) EdwardsToMontgomery(f *field.Field, x, y *field.Element) (u, v *field.Element) {
	one := f.Element().One()
	num := f.Element().Add(one, y)
	den := f.Element().Subtract(one, y)
	u = f.Element().Multiply(num, f.Element().Invert(den))

	v = f.Element().Multiply(iso.C, u)
	v.Multiply(v, f.Element().Invert(x))
	return u, v
}

// MontgomeryToEdwards maps a Montgomery affine point (u, v) to its
// Edwards counterpart (x, y), the symmetric map to EdwardsToMontgomery
// per spec.md §4.6.
func (iso *Isomorphism) MontgomeryToEdwards(f *field.Field, u, v *field.Element) (x, y *field.Element) {
	x = f.Element().Multiply(iso.C, u)
	x.Multiply(x, f.Element().Invert(v))

	one := f.Element().One()
	num := f.Element().Subtract(u, one)
	den := f.Element().Add(u, one)
	y = f.Element().Multiply(num, f.Element().Invert(den))
	return x, y
}
