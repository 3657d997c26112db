// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass

import "gitlab.com/crypto-core/ecc-core/scalar"

// split decomposes k into (k1, k2) with k = k1 + k2*lambda (mod n) and
// |k1|, |k2| roughly sqrt(n), per spec.md §4.3's GLV formulas:
//
//	c1 = (k*g1) >> (bits+16) * (-b1)
//	c2 = (k*g2) >> (bits+16) * (-b2)
//	k2 = c1 + c2
//	k1 = k2*(-lambda) + k
//
// Signs are extracted via scalar.Element.Minimize (half-n
// compare + conditional negate). Variable-time overall: for use
// only on public scalars (verification), matching the teacher's
// splitVartime.
func split(glv *GLVParams, k *scalar.Element) (k1mag, k2mag *scalar.Element, k1neg, k2neg uint64) {
	q1 := new(scalar.Element).MulShift(k, glv.G1, glv.Shift)
	c1 := new(scalar.Element).Multiply(q1, glv.NegB1)

	q2 := new(scalar.Element).MulShift(k, glv.G2, glv.Shift)
	c2 := new(scalar.Element).Multiply(q2, glv.B2)

	k2 := new(scalar.Element).Add(c1, c2)
	k1 := new(scalar.Element).Multiply(k2, glv.NegLambda)
	k1.Add(k1, k)

	k1mag, k1neg = new(scalar.Element).Minimize(k1)
	k2mag, k2neg = new(scalar.Element).Minimize(k2)
	return
}

// scalarMultVartimeGLV sets v = k*p in variable time using the GLV
// endomorphism split, and returns v. p.c MUST have non-nil GLV params.
func (v *JacobianPoint) scalarMultVartimeGLV(k *scalar.Element, p *JacobianPoint) *JacobianPoint {
	c := p.c
	glv := c.GLV

	k1mag, k2mag, k1neg, k2neg := split(glv, k)

	p1 := c.NewJacobianPoint().Set(p)
	if k1neg == 1 {
		p1.Negate(p1)
	}

	// phi(p) = (beta*x(p), y(p)); computed via an affine round-trip since
	// the endomorphism only touches x.
	affine := c.NewAffinePoint().ToAffine(p)
	phiX := c.F.Element().Multiply(glv.Beta, affine.X())
	phiAffine := c.NewAffinePoint()
	phiAffine.x, phiAffine.y, phiAffine.inf, phiAffine.c = phiX, c.F.Element().Set(affine.Y()), affine.inf, c
	phiAffine.isValid = true
	p2 := c.NewJacobianPoint().FromAffine(phiAffine)
	if k2neg == 1 {
		p2.Negate(p2)
	}

	r1 := c.NewJacobianPoint().scalarMultVartimeNAF(k1mag, p1, 4)
	r2 := c.NewJacobianPoint().scalarMultVartimeNAF(k2mag, p2, 4)
	v.Set(r1)
	v.AddVariableTime(v, r2)
	return v
}
