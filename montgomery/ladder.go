// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package montgomery

import "gitlab.com/crypto-core/ecc-core/field"

// Ladder computes u(k*P) given a clamped little-endian scalar k and a
// base u-coordinate u, per spec.md §4.4: "one pge_ladder step computes a
// simultaneous differential add+double using 6M + 4S + 8A + 1
// constant-a24 mul", with cswap on the XOR of successive bits.
func (c *Params) Ladder(k []byte, u *field.Element) *field.Element {
	f := c.F

	x1 := f.Element().Set(u)
	x2 := f.Element().One()
	z2 := f.Element().Zero()
	x3 := f.Element().Set(u)
	z3 := f.Element().One()

	bits := c.ByteLen * 8
	swap := uint64(0)
	for i := bits - 1; i >= 0; i-- {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		kt := uint64((k[byteIdx] >> bitIdx) & 1)
		swap ^= kt
		cswap(swap, x2, x3)
		cswap(swap, z2, z3)
		swap = kt

		ladderStep(f, c.A24, x1, x2, z2, x3, z3)
	}
	cswap(swap, x2, x3)
	cswap(swap, z2, z3)

	zInv := f.Element().Invert(z2)
	return f.Element().Multiply(x2, zInv)
}

// ladderStep performs one Montgomery differential add+double step,
// updating (x2,z2) and (x3,z3) in place.
func ladderStep(f *field.Field, a24, x1, x2, z2, x3, z3 *field.Element) {
	a := f.Element().Add(x2, z2)
	aa := f.Element().Square(a)
	b := f.Element().Subtract(x2, z2)
	bb := f.Element().Square(b)
	e := f.Element().Subtract(aa, bb)
	c := f.Element().Add(x3, z3)
	d := f.Element().Subtract(x3, z3)
	da := f.Element().Multiply(d, a)
	cb := f.Element().Multiply(c, b)

	x3new := f.Element().Add(da, cb)
	x3new.Square(x3new)
	z3tmp := f.Element().Subtract(da, cb)
	z3tmp.Square(z3tmp)
	z3new := f.Element().Multiply(x1, z3tmp)

	x2new := f.Element().Multiply(aa, bb)
	eTimesA24 := f.Element().Multiply(e, a24)
	inner := f.Element().Add(aa, eTimesA24)
	z2new := f.Element().Multiply(e, inner)

	x2.Set(x2new)
	z2.Set(z2new)
	x3.Set(x3new)
	z3.Set(z3new)
}

// MulH sets out = cofactor * p, by running the ladder on the curve's
// (small, public) cofactor as scalar, per spec.md §4.4's pge_mulh, used
// for small-subgroup membership tests.
func (c *Params) MulH(u *field.Element) *field.Element {
	k := make([]byte, c.ByteLen)
	k[0] = byte(c.Cofactor)
	return c.Ladder(k, u)
}
