// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package weierstrass implements Wei, the short-Weierstrass group
// (spec.md §4.3): affine (wge) and Jacobian (jge) points, unified
// addition, windowed and GLV scalar multiplication, and SSWU/SVDW
// hash-to-curve. It generalizes the teacher's secp256k1-only point.go/
// point_mul*.go (which used projective, not Jacobian, coordinates and a
// single hardcoded curve) to an arbitrary curve described by a Params
// value, so the same code serves P192 through SECP256K1.
package weierstrass

import (
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

// GLVParams bundles the constants needed for the GLV endomorphism
// scalar-splitting path (spec.md §4.3), present only for secp256k1.
type GLVParams struct {
	// Beta is the cube root of unity mod p used to compute the
	// endomorphism phi(x, y) = (beta*x, y).
	Beta *field.Element
	// NegLambda is -lambda mod n, the scalar-side eigenvalue.
	NegLambda *scalar.Element
	// G1, G2 are the rounded basis constants used to compute c1, c2.
	G1, G2 *scalar.Element
	// NegB1, B2 hold -b1 and -b2 mod n, the negated short basis vector
	// components.
	NegB1, B2 *scalar.Element
	// Shift is the bit count used in the rounding shift (bits+16 in
	// spec.md §4.3's c1/c2 formulas).
	Shift uint
}

// Params describes one short-Weierstrass curve: its field, scalar field,
// curve coefficients, and generator.
type Params struct {
	Name string

	F *field.Field
	S *scalar.Field

	A, B *field.Element
	Gx, Gy *field.Element

	// Z is the precomputed hash-to-curve map constant (a non-square for
	// SSWU, or the SVDW map's own non-zero, non-square-adjacent constant),
	// per spec.md §4.3.
	Z *field.Element

	// AIsZero / AIsNegThree select the doubling kernel (spec.md §4.3).
	AIsZero     bool
	AIsNegThree bool

	GLV *GLVParams // nil unless the curve has a usable endomorphism.
}

// Generator returns a new affine point set to the curve's generator.
func (c *Params) Generator() *AffinePoint {
	return c.NewAffinePoint().Generator(c)
}
