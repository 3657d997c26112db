// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package edwards

import "gitlab.com/crypto-core/ecc-core/field"

// Add sets v = p + q using the unified twisted-Edwards addition formula
// (Hisil-Wong-Carter-Dawson, a=-1 specialization when c.AIsNegOne, the
// generic formula otherwise), per spec.md §4.5. Complete: valid for all
// inputs including p == q and identity operands.
func (v *Point) Add(p, q *Point) *Point {
	assertValid(p, q)
	c := p.c
	f := c.F

	a := f.Element().Multiply(p.x, q.x)
	if c.AIsNegOne {
		a.Negate(a)
	} else {
		a.Multiply(a, c.A)
	}
	b := f.Element().Multiply(p.y, q.y)
	cc := f.Element().Multiply(p.t, q.t)
	cc.Multiply(cc, c.D)
	d := f.Element().Multiply(p.z, q.z)

	e := f.Element().Add(p.x, p.y)
	f2 := f.Element().Add(q.x, q.y)
	e.Multiply(e, f2)
	e.Subtract(e, a)
	e.Subtract(e, b)

	ff := f.Element().Subtract(d, cc)
	g := f.Element().Add(d, cc)
	h := f.Element().Subtract(b, a)

	v.c = c
	v.x.Multiply(e, ff)
	v.y.Multiply(g, h)
	v.z.Multiply(ff, g)
	v.t.Multiply(e, h)
	v.isValid = true
	return v
}

// Double sets v = 2*p, per spec.md §4.5's doubling formula (dedicated,
// faster than Add(p, p)).
func (v *Point) Double(p *Point) *Point {
	assertValid(p)
	c := p.c
	f := c.F

	a := f.Element().Square(p.x)
	b := f.Element().Square(p.y)
	cc := f.Element().Square(p.z)
	cc.Add(cc, cc)
	var d *field.Element
	if c.AIsNegOne {
		d = f.Element().Negate(a)
	} else {
		d = f.Element().Multiply(c.A, a)
	}

	e := f.Element().Add(p.x, p.y)
	e.Square(e)
	e.Subtract(e, a)
	e.Subtract(e, b)

	g := f.Element().Add(d, b)
	ff := f.Element().Subtract(g, cc)
	h := f.Element().Subtract(d, b)

	v.c = c
	v.x.Multiply(e, ff)
	v.y.Multiply(g, h)
	v.z.Multiply(ff, g)
	v.t.Multiply(e, h)
	v.isValid = true
	return v
}
