// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass

import (
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/internal/helpers"
)

// MapToCurve applies the curve's hash-to-curve map (SSWU for a,b != 0,
// SVDW for a = 0) to a field element u, and returns the resulting affine
// point, per spec.md §4.3: "deterministic constant-time maps with
// candidate-selection by is_square; the final sign is taken from the
// preimage u." c.Z MUST be set (the curve's precomputed non-square/
// non-zero map constant).
func MapToCurve(c *Params, u *field.Element) *AffinePoint {
	if c.AIsZero {
		return mapToCurveSVDW(c, u)
	}
	return mapToCurveSSWU(c, u)
}

// mapToCurveSSWU implements the simplified SWU map (RFC 9380 §F.2),
// constant-time, for curves with A, B != 0.
func mapToCurveSSWU(c *Params, u *field.Element) *AffinePoint {
	f := c.F

	negBOverA := f.Element().Invert(c.A)
	negBOverA.Multiply(negBOverA, c.B)
	negBOverA.Negate(negBOverA)

	tv1 := f.Element().Square(u)
	tv1.Multiply(tv1, c.Z)
	tv2 := f.Element().Square(tv1)
	tv2.Add(tv2, tv1)

	x1 := f.Element().Invert(tv2)
	e1 := x1.IsZero()
	x1.Add(x1, f.Element().One())
	x1.ConditionalSelect(x1, f.Element().Negate(f.Element().Invert(c.Z)), e1)
	x1.Multiply(x1, negBOverA)

	gx1 := f.Element().Square(x1)
	gx1.Add(gx1, c.A)
	gx1.Multiply(gx1, x1)
	gx1.Add(gx1, c.B)

	x2 := f.Element().Multiply(tv1, x1)
	tv2.Multiply(tv1, f.Element().Square(tv1))
	gx2 := f.Element().Multiply(gx1, tv2)

	e2 := gx1.IsSquare()
	x := f.Element().ConditionalSelect(x2, x1, e2)
	y2 := f.Element().ConditionalSelect(gx2, gx1, e2)

	y, _ := f.Element().Sqrt(y2)
	e3 := helpers.Uint64IsZero(u.IsOdd() ^ y.IsOdd())
	negY := f.Element().Negate(y)
	y.ConditionalSelect(negY, y, e3)

	p := c.NewAffinePoint()
	p.x.Set(x)
	p.y.Set(y)
	p.inf = 0
	p.isValid = true
	return p
}

// mapToCurveSVDW implements the Shallue-van de Woestijne map (RFC 9380
// §F.1), constant-time, for curves with A = 0 (e.g. SECP256K1).
func mapToCurveSVDW(c *Params, u *field.Element) *AffinePoint {
	f := c.F

	gz := f.Element().Square(c.Z)
	gz.Multiply(gz, c.Z)
	gz.Add(gz, c.B)

	c1 := gz
	c2 := f.Element().Negate(c.Z)
	half := f.Element().Invert(f.Element().Add(f.Element().One(), f.Element().One()))
	c2.Multiply(c2, half)

	threeZ2 := f.Element().Square(c.Z)
	threeZ2.Multiply(threeZ2, f.NewElementFromUint64s(0, 0, 0, 3))
	negC1 := f.Element().Negate(c1)
	c3Sq := f.Element().Multiply(negC1, threeZ2)
	c3, _ := f.Element().Sqrt(c3Sq)
	c3Neg := f.Element().Negate(c3)
	oddSel := c3.IsOdd()
	c3.ConditionalSelect(c3, c3Neg, oddSel)

	fourC1 := f.Element().Add(c1, c1)
	fourC1.Add(fourC1, fourC1)
	fourC1.Negate(fourC1)
	c4 := f.Element().Invert(threeZ2)
	c4.Multiply(c4, fourC1)

	tv1 := f.Element().Square(u)
	tv1.Multiply(tv1, c1)
	tv2 := f.Element().Add(f.Element().One(), tv1)
	tv1.Negate(tv1)
	tv1.Add(tv1, f.Element().One())
	tv3 := f.Element().Multiply(tv1, tv2)
	tv3.Invert(tv3)

	tv4 := f.Element().Multiply(u, tv1)
	tv4.Multiply(tv4, tv3)
	tv4.Multiply(tv4, c3)

	x1 := f.Element().Subtract(c2, tv4)
	gx1 := f.Element().Square(x1)
	gx1.Multiply(gx1, x1)
	gx1.Add(gx1, c.B)
	e1 := gx1.IsSquare()

	x2 := f.Element().Add(c2, tv4)
	gx2 := f.Element().Square(x2)
	gx2.Multiply(gx2, x2)
	gx2.Add(gx2, c.B)
	e2 := gx2.IsSquare() & (e1 ^ 1)

	x3 := f.Element().Square(tv2)
	x3.Multiply(x3, tv3)
	x3.Square(x3)
	x3.Multiply(x3, c4)
	x3.Add(x3, c.Z)

	x := f.Element().ConditionalSelect(x3, x2, e2)
	x.ConditionalSelect(x, x1, e1)

	gx := f.Element().Square(x)
	gx.Multiply(gx, x)
	gx.Add(gx, c.B)
	y, _ := f.Element().Sqrt(gx)

	e3 := helpers.Uint64IsZero(u.IsOdd() ^ y.IsOdd())
	negY := f.Element().Negate(y)
	y.ConditionalSelect(negY, y, e3)

	p := c.NewAffinePoint()
	p.x.Set(x)
	p.y.Set(y)
	p.inf = 0
	p.isValid = true
	return p
}
