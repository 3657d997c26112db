// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package montgomery

import "gitlab.com/crypto-core/ecc-core/field"

// Elligator2Map sets (x, y) from u via Elligator 2, per spec.md §4.4:
//
//	x1 = -A / (1 + Z*u^2), with x1 = 0 => x1 = -A
//	x2 = -x1 - A
//	x  = x1 if g(x1) is square, else x2
//	y  = sign(u) * |sqrt(g(x))|
func (c *Params) Elligator2Map(u *field.Element) (x, y *field.Element) {
	f := c.F

	zu2 := f.Element().Square(u)
	zu2.Multiply(zu2, c.Z)
	denom := f.Element().Add(f.Element().One(), zu2)

	x1 := f.Element().Invert(denom)
	x1.Multiply(x1, c.A)
	x1.Negate(x1)
	isZero := x1.IsZero()
	negA := f.Element().Negate(c.A)
	x1.ConditionalSelect(x1, negA, isZero)

	x2 := f.Element().Negate(x1)
	x2.Subtract(x2, c.A)

	gx1 := c.gOf(x1)
	e := gx1.IsSquare()

	x = f.Element().ConditionalSelect(x2, x1, e)
	gx := c.gOf(x)
	yAbs, _ := f.Element().Sqrt(gx)
	yAbs.ConditionalNegate(yAbs, yAbs.IsOdd())

	negYAbs := f.Element().Negate(yAbs)
	y = f.Element().ConditionalSelect(negYAbs, yAbs, u.IsOdd()^1)
	return x, y
}

// gOf evaluates g(x) = x^3 + A*x^2 + x, the Montgomery curve's RHS (with
// B == 1, per spec.md §4.4).
func (c *Params) gOf(x *field.Element) *field.Element {
	f := c.F
	x2 := f.Element().Square(x)
	x3 := f.Element().Multiply(x2, x)
	ax2 := f.Element().Multiply(c.A, x2)
	g := f.Element().Add(x3, ax2)
	g.Add(g, x)
	return g
}

// Elligator2Inverse recovers a preimage u such that Elligator2Map(u) ==
// (x, y), with u's parity taken from y's, given a 1-bit hint selecting which of the two
// branches (spec.md §4.4's "u^2 = -(x+A)/(x*z)" vs "u^2 = -x/((x+A)*z)")
// produced x, and reports whether a preimage exists.
func (c *Params) Elligator2Inverse(x, y *field.Element, hint uint64) (*field.Element, bool) {
	f := c.F

	var num, den *field.Element
	xPlusA := f.Element().Add(x, c.A)
	if hint == 0 {
		num = f.Element().Negate(xPlusA)
		den = f.Element().Multiply(x, c.Z)
	} else {
		num = f.Element().Negate(x)
		den = f.Element().Multiply(xPlusA, c.Z)
	}

	u, ok := f.Element().SqrtRatio(num, den)
	if ok == 0 {
		return nil, false
	}
	u.ConditionalNegate(u, u.IsOdd())

	negU := f.Element().Negate(u)
	u.ConditionalSelect(negU, u, y.IsOdd()^1)
	return u, true
}
