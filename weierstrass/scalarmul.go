// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass

import (
	"sync"

	"gitlab.com/crypto-core/ecc-core/internal/helpers"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

const windowBits = 4
const windowSize = 1 << windowBits // 16 entries, per spec.md §4.3.

// multTable holds {0*P, 1*P, ..., 15*P} for a windowed-4 multiplier.
type multTable [windowSize]*JacobianPoint

func newMultTable(p *JacobianPoint) *multTable {
	var tbl multTable
	tbl[0] = p.c.NewJacobianPoint().Identity(p.c)
	tbl[1] = p.c.NewJacobianPoint().Set(p)
	for i := 2; i < windowSize; i++ {
		tbl[i] = p.c.NewJacobianPoint().Add(tbl[i-1], p)
	}
	return &tbl
}

// selectAndAdd adds tbl[idx] into acc, selecting the table entry via a
// constant-time multiplexer over all windowSize entries (idx MUST be
// secret-safe to select on; the selection touches every entry
// regardless of idx, per spec.md §4.3's "every one of the 16 entries is
// touched via constant-time selection").
func (tbl *multTable) selectAndAdd(acc *JacobianPoint, idx uint64) {
	c := tbl[0].c
	sel := c.NewJacobianPoint().Identity(c)
	for i := 0; i < windowSize; i++ {
		eq := helpers.Uint64IsZero(idx ^ uint64(i))
		sel.ConditionalSelect(sel, tbl[i], eq)
	}
	acc.Add(acc, sel)
}

// ScalarMult sets v = s*p (constant-time in both s and p) and returns v,
// via a width-4 signed-... (unsigned, per spec.md §4.3's "non-endomorphism
// path") digit ladder with a per-call 16-entry table.
func (v *JacobianPoint) ScalarMult(s *scalar.Element, p *JacobianPoint) *JacobianPoint {
	assertJacobianValid(p)
	c := p.c
	tbl := newMultTable(p)
	sBytes := s.Bytes()

	acc := c.NewJacobianPoint().Identity(c)
	for i, b := range sBytes {
		if i != 0 {
			for j := 0; j < windowBits; j++ {
				acc.Double(acc)
			}
		}
		tbl.selectAndAdd(acc, uint64(b>>4))
		for j := 0; j < windowBits; j++ {
			acc.Double(acc)
		}
		tbl.selectAndAdd(acc, uint64(b&0xf))
	}

	v.Set(acc)
	return v
}

// baseCombCache precomputes, for each nibble position of the scalar
// field's canonical byte width, 16*P at that position, so
// Params.ScalarBaseMult can read off selections instead of doubling at
// multiplication time (spec.md §4.3's "blinded fixed-window 4-bit comb
// over WND_STEPS"). Computed lazily and cached per Params, since building
// it is public (keyed only off the curve's fixed generator).
type baseCombCache struct {
	once   sync.Once
	tables []*multTable // one per nibble position, LSB-nibble table last
}

var baseCombCaches sync.Map // *Params -> *baseCombCache

func (c *Params) baseComb() []*multTable {
	v, _ := baseCombCaches.LoadOrStore(c, &baseCombCache{})
	cache := v.(*baseCombCache)
	cache.once.Do(func() {
		steps := 2 * c.S.ByteLen() // two nibbles per byte
		g := c.NewJacobianPoint().Generator(c)
		tables := make([]*multTable, steps)
		cur := c.NewJacobianPoint().Set(g)
		// Position 0 covers the lowest-order nibble (LSB first internally;
		// ScalarBaseMult below walks bytes MSB-first like the teacher, so
		// we store tables indexed from the most-significant nibble).
		pos := make([]*multTable, steps)
		for i := 0; i < steps; i++ {
			pos[i] = newMultTable(cur)
			for j := 0; j < windowBits; j++ {
				cur.Double(cur)
			}
		}
		for i := 0; i < steps; i++ {
			tables[i] = pos[steps-1-i]
		}
		cache.tables = tables
	})
	return cache.tables
}

// ScalarBaseMult sets v = s*G (constant-time) and returns v, where G is
// the curve's generator, using the precomputed comb table.
func (v *JacobianPoint) ScalarBaseMult(c *Params, s *scalar.Element) *JacobianPoint {
	tables := c.baseComb()
	acc := c.NewJacobianPoint().Identity(c)
	tblIdx := 0
	for _, b := range s.Bytes() {
		tables[tblIdx].selectAndAdd(acc, uint64(b>>4))
		tblIdx++
		tables[tblIdx].selectAndAdd(acc, uint64(b&0xf))
		tblIdx++
	}
	v.Set(acc)
	return v
}

// ScalarBaseMultVartime sets v = s*G in variable time and returns v; for
// use in verification and other public-scalar paths only.
func (v *JacobianPoint) ScalarBaseMultVartime(c *Params, s *scalar.Element) *JacobianPoint {
	tables := c.baseComb()
	acc := c.NewJacobianPoint().Identity(c)
	tblIdx := 0
	for _, b := range s.Bytes() {
		hi := b >> 4
		if hi != 0 {
			acc.AddVariableTime(acc, tables[tblIdx][hi])
		}
		tblIdx++
		lo := b & 0xf
		if lo != 0 {
			acc.AddVariableTime(acc, tables[tblIdx][lo])
		}
		tblIdx++
	}
	v.Set(acc)
	return v
}

// DoubleScalarMultBasepointVartime sets v = u1*G + u2*p, in variable
// time, per spec.md §4.3; used by ECDSA/Schnorr verification. Curves
// with a GLV endomorphism keep the separate endomorphism-split path for
// u2*p (a distinct, curve-specific optimization); everything else goes
// through the JSF-based joint Shamir's trick below, which accumulates
// both terms digit-by-digit instead of computing and adding them
// separately.
func (v *JacobianPoint) DoubleScalarMultBasepointVartime(c *Params, u1, u2 *scalar.Element, p *JacobianPoint) *JacobianPoint {
	if c.GLV == nil {
		g := c.NewJacobianPoint().Generator(c)
		return v.DoubleScalarMultVartime(u1, g, u2, p)
	}
	u1g := c.NewJacobianPoint().ScalarBaseMultVartime(c, u1)
	u2p := c.NewJacobianPoint().scalarMultVartimeGLV(u2, p)
	return v.AddVariableTime(u1g, u2p)
}

// DoubleScalarMultVartime sets v = u1*p1 + u2*p2, in variable time, via
// the JSF-based two-point Shamir's trick (spec.md §4.1): the two
// scalars are jointly re-encoded into a shared digit string (scalar.JSF)
// so the loop does one double and at most one addition per digit pair,
// rather than computing u1*p1 and u2*p2 as two independent
// multiplications and adding the results. p1 and p2 MUST be public.
func (v *JacobianPoint) DoubleScalarMultVartime(u1 *scalar.Element, p1 *JacobianPoint, u2 *scalar.Element, p2 *JacobianPoint) *JacobianPoint {
	c := p1.c
	digits := scalar.JSF(u1, u2)

	neg1 := c.NewJacobianPoint().Negate(p1)
	neg2 := c.NewJacobianPoint().Negate(p2)
	sum := c.NewJacobianPoint().AddVariableTime(p1, p2)
	diff := c.NewJacobianPoint().AddVariableTime(p1, neg2)
	negSum := c.NewJacobianPoint().Negate(sum)
	negDiff := c.NewJacobianPoint().Negate(diff)

	acc := c.NewJacobianPoint().Identity(c)
	for i := len(digits) - 1; i >= 0; i-- {
		acc.Double(acc)
		d := digits[i]
		switch {
		case d.D0 == 1 && d.D1 == 0:
			acc.AddVariableTime(acc, p1)
		case d.D0 == -1 && d.D1 == 0:
			acc.AddVariableTime(acc, neg1)
		case d.D0 == 0 && d.D1 == 1:
			acc.AddVariableTime(acc, p2)
		case d.D0 == 0 && d.D1 == -1:
			acc.AddVariableTime(acc, neg2)
		case d.D0 == 1 && d.D1 == 1:
			acc.AddVariableTime(acc, sum)
		case d.D0 == -1 && d.D1 == -1:
			acc.AddVariableTime(acc, negSum)
		case d.D0 == 1 && d.D1 == -1:
			acc.AddVariableTime(acc, diff)
		case d.D0 == -1 && d.D1 == 1:
			acc.AddVariableTime(acc, negDiff)
		}
	}
	v.Set(acc)
	return v
}

// scalarMultVartimeNAF computes s*p in variable time via width-w NAF.
func (v *JacobianPoint) scalarMultVartimeNAF(s *scalar.Element, p *JacobianPoint, w uint) *JacobianPoint {
	c := p.c
	digits := s.NAF(w)

	// Precompute odd multiples 1P, 3P, 5P, ... up to 2^(w-1)-1.
	half := 1 << (w - 2)
	odd := make([]*JacobianPoint, half)
	pDouble := c.NewJacobianPoint().Double(p)
	odd[0] = c.NewJacobianPoint().Set(p)
	for i := 1; i < half; i++ {
		odd[i] = c.NewJacobianPoint().AddVariableTime(odd[i-1], pDouble)
	}

	acc := c.NewJacobianPoint().Identity(c)
	for i := len(digits) - 1; i >= 0; i-- {
		acc.Double(acc)
		d := digits[i]
		if d == 0 {
			continue
		}
		idx := int(d)
		neg := idx < 0
		if neg {
			idx = -idx
		}
		term := odd[(idx-1)/2]
		if neg {
			term = c.NewJacobianPoint().Negate(term)
		}
		acc.AddVariableTime(acc, term)
	}
	v.Set(acc)
	return v
}
