// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass

import (
	"math/big"

	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

// CheckXCongruentR reports whether x(R) == r (mod n), given R in Jacobian
// coordinates and r already reduced mod n, without computing a field
// inversion (spec.md §4.3's "r-value shortcut", ECC_WITH_TRICK): r is
// scaled by Z^2 in the field, and if the direct equality fails, n*Z^2 is
// added repeatedly (at most ceil(p/n) times, which in practice is at most
// once) before comparing again. Variable-time; for use in ECDSA/Schnorr
// verification only, never on secret points.
func CheckXCongruentR(c *Params, r *scalar.Element, rPoint *JacobianPoint) bool {
	f := c.F
	z2 := f.Element().Square(rPoint.z)

	rField := f.Element()
	f.SetBigInt(rField, r.BigInt())
	target := f.Element().Multiply(rField, z2)

	if rPoint.x.Equal(target) == 1 {
		return true
	}

	p := f.P()
	n := c.S.N()
	maxIter := new(big.Int).Div(p, n)

	nField := f.Element()
	f.SetBigInt(nField, n)
	nz2 := f.Element().Multiply(nField, z2)

	cur := f.Element().Set(target)
	for i := int64(0); i < maxIter.Int64()+1; i++ {
		cur.Add(cur, nz2)
		if rPoint.x.Equal(cur) == 1 {
			return true
		}
	}
	return false
}

// CheckXEqualsFieldElement reports whether x(R) == r, given R in Jacobian
// coordinates and r a full (unreduced-mod-n) field element, without a
// field inversion: checks r*Z^2 == X. Used by legacy/BIP-Schnorr
// verification (spec.md §4.8/§4.9), where r is x(R) directly rather than
// x(R) mod n, so unlike CheckXCongruentR no multiple-of-n ambiguity needs
// to be resolved.
func CheckXEqualsFieldElement(c *Params, r *field.Element, rPoint *JacobianPoint) bool {
	f := c.F
	z2 := f.Element().Square(rPoint.z)
	target := f.Element().Multiply(r, z2)
	return rPoint.x.Equal(target) == 1
}

// CheckYSquare reports whether y(R) is a square in the field, given R in
// Jacobian coordinates, without a field inversion: y(R) = Y/Z^3, and
// Y/Z^3 is square iff Y*Z is (multiplying by the square Z^4 preserves
// quadratic-residue class). Spec.md §4.8/§4.9's "y(R)*z(R) is square"
// check.
func CheckYSquare(c *Params, rPoint *JacobianPoint) bool {
	yz := c.F.Element().Multiply(rPoint.y, rPoint.z)
	return yz.IsSquareVar()
}
