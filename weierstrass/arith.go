// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass

import "gitlab.com/crypto-core/ecc-core/field"

// Add sets v = p + q (unified, constant-time) and returns v, per
// spec.md §4.3's Brier-Joye-style unified addition: the general add and
// doubling formulas are both evaluated and the result is assembled via
// conditional selection on the identity/equal/negated-equal cases, so no
// data-dependent branch on secret points is taken.
func (v *JacobianPoint) Add(p, q *JacobianPoint) *JacobianPoint {
	assertJacobianValid(p, q)
	c := p.c
	v.c = c

	added := c.NewJacobianPoint().addGeneral(p, q)
	doubled := c.NewJacobianPoint().Double(p)

	pz2 := c.F.Element().Square(p.z)
	qz2 := c.F.Element().Square(q.z)
	pz3 := c.F.Element().Multiply(pz2, p.z)
	qz3 := c.F.Element().Multiply(qz2, q.z)
	u1 := c.F.Element().Multiply(p.x, qz2)
	u2 := c.F.Element().Multiply(q.x, pz2)
	s1 := c.F.Element().Multiply(p.y, qz3)
	s2 := c.F.Element().Multiply(q.y, pz3)

	sameX := u1.Equal(u2)
	sameY := s1.Equal(s2)

	pIsId := p.IsIdentity()
	qIsId := q.IsIdentity()

	// If X-coordinates match: either P == Q (use doubling) or P == -Q
	// (result is identity).
	identity := c.NewJacobianPoint().Identity(c)
	sameXResult := c.NewJacobianPoint().ConditionalSelect(identity, doubled, sameY)

	result := c.NewJacobianPoint().ConditionalSelect(added, sameXResult, sameX)
	result.ConditionalSelect(result, p, qIsId)
	result.ConditionalSelect(result, q, pIsId)

	v.x.Set(result.x)
	v.y.Set(result.y)
	v.z.Set(result.z)
	v.isValid = true
	return v
}

// addGeneral implements add-2007-bl (EFD), valid whenever p != +-q and
// neither is the identity; callers must select away from its output in
// those cases.
func (v *JacobianPoint) addGeneral(p, q *JacobianPoint) *JacobianPoint {
	c := p.c
	f := c.F

	z1z1 := f.Element().Square(p.z)
	z2z2 := f.Element().Square(q.z)
	u1 := f.Element().Multiply(p.x, z2z2)
	u2 := f.Element().Multiply(q.x, z1z1)
	s1 := f.Element().Multiply(p.y, f.Element().Multiply(q.z, z2z2))
	s2 := f.Element().Multiply(q.y, f.Element().Multiply(p.z, z1z1))

	h := f.Element().Subtract(u2, u1)
	i := f.Element().Square(f.Element().Add(h, h))
	j := f.Element().Multiply(h, i)
	rr := f.Element().Add(s2, s2)
	rr.Subtract(rr, f.Element().Add(s1, s1))
	vv := f.Element().Multiply(u1, i)

	x3 := f.Element().Square(rr)
	x3.Subtract(x3, j)
	x3.Subtract(x3, f.Element().Add(vv, vv))

	y3 := f.Element().Subtract(vv, x3)
	y3.Multiply(y3, rr)
	twoS1J := f.Element().Multiply(s1, j)
	twoS1J.Add(twoS1J, twoS1J)
	y3.Subtract(y3, twoS1J)

	z3 := f.Element().Add(p.z, q.z)
	z3.Square(z3)
	z3.Subtract(z3, z1z1)
	z3.Subtract(z3, z2z2)
	z3.Multiply(z3, h)

	v.c = c
	v.x, v.y, v.z = x3, y3, z3
	v.isValid = true
	return v
}

// Double sets v = p + p and returns v, dispatching on the curve's `a` to
// one of three kernels (spec.md §4.3).
func (v *JacobianPoint) Double(p *JacobianPoint) *JacobianPoint {
	assertJacobianValid(p)
	c := p.c
	switch {
	case c.AIsNegThree:
		return v.doubleANegThree(p)
	default:
		return v.doubleGeneric(p)
	}
}

// doubleANegThree implements dbl-2001-b (EFD), for a == -3.
func (v *JacobianPoint) doubleANegThree(p *JacobianPoint) *JacobianPoint {
	c := p.c
	f := c.F

	delta := f.Element().Square(p.z)
	gamma := f.Element().Square(p.y)
	beta := f.Element().Multiply(p.x, gamma)

	xMinusDelta := f.Element().Subtract(p.x, delta)
	xPlusDelta := f.Element().Add(p.x, delta)
	alpha := f.Element().Multiply(xMinusDelta, xPlusDelta)
	alpha3 := f.Element().Add(alpha, alpha)
	alpha3.Add(alpha3, alpha)
	alpha = alpha3

	x3 := f.Element().Square(alpha)
	eightBeta := f.Element().Add(beta, beta)
	eightBeta.Add(eightBeta, eightBeta)
	eightBeta.Add(eightBeta, eightBeta)
	x3.Subtract(x3, eightBeta)

	yPlusZ := f.Element().Add(p.y, p.z)
	z3 := f.Element().Square(yPlusZ)
	z3.Subtract(z3, gamma)
	z3.Subtract(z3, delta)

	fourBeta := f.Element().Add(beta, beta)
	fourBeta.Add(fourBeta, fourBeta)
	fourBetaMinusX3 := f.Element().Subtract(fourBeta, x3)
	y3 := f.Element().Multiply(alpha, fourBetaMinusX3)
	gamma2 := f.Element().Square(gamma)
	eightGamma2 := f.Element().Add(gamma2, gamma2)
	eightGamma2.Add(eightGamma2, eightGamma2)
	eightGamma2.Add(eightGamma2, eightGamma2)
	y3.Subtract(y3, eightGamma2)

	v.c = c
	v.x, v.y, v.z = x3, y3, z3
	v.isValid = true
	return v
}

// doubleGeneric implements dbl-2007-bl (EFD), valid for any a (used
// directly when a == 0, and as the generic fallback otherwise).
func (v *JacobianPoint) doubleGeneric(p *JacobianPoint) *JacobianPoint {
	c := p.c
	f := c.F

	xx := f.Element().Square(p.x)
	yy := f.Element().Square(p.y)
	yyyy := f.Element().Square(yy)
	zz := f.Element().Square(p.z)

	xPlusYY := f.Element().Add(p.x, yy)
	s := f.Element().Square(xPlusYY)
	s.Subtract(s, xx)
	s.Subtract(s, yyyy)
	s.Add(s, s)

	var m *field.Element
	if c.AIsZero {
		m = f.Element().Add(xx, xx)
		m.Add(m, xx)
	} else {
		zz2 := f.Element().Square(zz)
		aZZ2 := f.Element().Multiply(c.A, zz2)
		m = f.Element().Add(xx, xx)
		m.Add(m, xx)
		m.Add(m, aZZ2)
	}

	t := f.Element().Square(m)
	twoS := f.Element().Add(s, s)
	t.Subtract(t, twoS)

	x3 := f.Element().Set(t)
	sMinusT := f.Element().Subtract(s, t)
	y3 := f.Element().Multiply(m, sMinusT)
	eightYYYY := f.Element().Add(yyyy, yyyy)
	eightYYYY.Add(eightYYYY, eightYYYY)
	eightYYYY.Add(eightYYYY, eightYYYY)
	y3.Subtract(y3, eightYYYY)

	yPlusZ := f.Element().Add(p.y, p.z)
	z3 := f.Element().Square(yPlusZ)
	z3.Subtract(z3, yy)
	z3.Subtract(z3, zz)

	v.c = c
	v.x, v.y, v.z = x3, y3, z3
	v.isValid = true
	return v
}

// AddVariableTime sets v = p + q and returns v, via explicit branching on
// P == O, Q == O, P == -Q, and P == Q (spec.md §4.3's "variable-time
// add"). Used only for hash-to-curve, batch verification, and
// precomputation, never on secret points.
func (v *JacobianPoint) AddVariableTime(p, q *JacobianPoint) *JacobianPoint {
	assertJacobianValid(p, q)
	if p.IsIdentity() == 1 {
		return v.Set(q)
	}
	if q.IsIdentity() == 1 {
		return v.Set(p)
	}
	negQ := p.c.NewJacobianPoint().Negate(q)
	if p.Equal(negQ) == 1 {
		return v.Identity(p.c)
	}
	if p.Equal(q) == 1 {
		return v.Double(p)
	}
	return v.addGeneral(p, q)
}
