// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package edwards

import "gitlab.com/crypto-core/ecc-core/scalar"

const (
	windowBits = 4
	windowSize = 16
)

// multTable holds {0*P, 1*P, ..., 15*P}.
type multTable [windowSize]*Point

func newMultTable(p *Point) *multTable {
	var t multTable
	t[0] = p.c.NewPoint().Identity(p.c)
	t[1] = p.c.NewPoint().Set(p)
	for i := 2; i < windowSize; i++ {
		t[i] = p.c.NewPoint().Add(t[i-1], p)
	}
	return &t
}

func ctEqualUint8(a, b uint8) uint64 {
	return uint64(1) - uint64((a^b)|((a^b)>>3)|((a^b)>>2)|((a^b)>>1))&1
}

// selectAndAdd sets acc = acc + t[digit] in constant time with respect to
// digit, scanning every table entry.
func selectAndAdd(acc *Point, t *multTable, digit uint8) {
	sel := acc.c.NewPoint().Identity(acc.c)
	for i := 0; i < windowSize; i++ {
		ctrl := ctEqualUint8(digit, uint8(i))
		sel.ConditionalSelect(sel, t[i], ctrl)
	}
	acc.Add(acc, sel)
}

// ScalarMult sets v = s*p in constant time, using a fresh 4-bit windowed
// table built from p (spec.md §4.5's point-scalar-mult), mirroring the
// Weierstrass package's windowed ladder.
func (v *Point) ScalarMult(s *scalar.Element, p *Point) *Point {
	t := newMultTable(p)
	acc := p.c.NewPoint().Identity(p.c)

	sBytes := s.Bytes()
	for i := 0; i < len(sBytes); i++ {
		b := sBytes[i]
		hi := b >> 4
		lo := b & 0x0f

		for k := 0; k < windowBits; k++ {
			acc.Double(acc)
		}
		selectAndAdd(acc, t, hi)

		for k := 0; k < windowBits; k++ {
			acc.Double(acc)
		}
		selectAndAdd(acc, t, lo)
	}

	v.Set(acc)
	return v
}

// baseCombCaches lazily builds per-curve comb tables for the generator,
// one multTable per nibble position, mirroring the Weierstrass package's
// baseComb.
var baseCombCaches = map[*Params]*cacheEntry{}

type cacheEntry struct {
	tables []*multTable
}

// baseComb returns (building lazily on first use) the per-nibble comb
// table for c's generator. Not goroutine-safe to initialize concurrently
// from multiple curves sharing no lock; curves are constructed once at
// init time in this repo so this is acceptable.
func (c *Params) baseComb() []*multTable {
	if e, ok := baseCombCaches[c]; ok {
		return e.tables
	}

	steps := 2 * c.S.ByteLen()
	g := c.NewPoint().Generator(c)
	tables := make([]*multTable, steps)
	cur := c.NewPoint().Set(g)
	for i := steps - 1; i >= 0; i-- {
		tables[i] = newMultTable(cur)
		for k := 0; k < windowBits; k++ {
			cur.Double(cur)
		}
	}

	e := &cacheEntry{tables: tables}
	baseCombCaches[c] = e
	return tables
}

// ScalarBaseMult sets v = s*G in constant time using the precomputed comb.
func (v *Point) ScalarBaseMult(c *Params, s *scalar.Element) *Point {
	tables := c.baseComb()
	acc := c.NewPoint().Identity(c)

	sBytes := s.Bytes()
	steps := len(tables)
	for i := 0; i < steps; i++ {
		byteIdx := i / 2
		var digit uint8
		if i%2 == 0 {
			digit = sBytes[byteIdx] >> 4
		} else {
			digit = sBytes[byteIdx] & 0x0f
		}
		selectAndAdd(acc, tables[i], digit)
	}

	v.Set(acc)
	return v
}

// DoubleScalarMultTwoPointsVartime sets v = u1*p1 + u2*p2 in variable
// time, via the JSF-based two-point Shamir's trick (spec.md §4.1): for
// joint accumulation of two arbitrary points neither of which is
// necessarily the generator (batch verification's per-item R_i/A_i
// terms). Twisted Edwards addition is complete, so no exceptional-case
// handling is needed to use Add in a variable-time loop. p1 and p2 MUST
// be public.
func (v *Point) DoubleScalarMultTwoPointsVartime(c *Params, u1 *scalar.Element, p1 *Point, u2 *scalar.Element, p2 *Point) *Point {
	digits := scalar.JSF(u1, u2)

	neg1 := c.NewPoint().Negate(p1)
	neg2 := c.NewPoint().Negate(p2)
	sum := c.NewPoint().Add(p1, p2)
	diff := c.NewPoint().Add(p1, neg2)
	negSum := c.NewPoint().Negate(sum)
	negDiff := c.NewPoint().Negate(diff)

	acc := c.NewPoint().Identity(c)
	for i := len(digits) - 1; i >= 0; i-- {
		acc.Double(acc)
		d := digits[i]
		switch {
		case d.D0 == 1 && d.D1 == 0:
			acc.Add(acc, p1)
		case d.D0 == -1 && d.D1 == 0:
			acc.Add(acc, neg1)
		case d.D0 == 0 && d.D1 == 1:
			acc.Add(acc, p2)
		case d.D0 == 0 && d.D1 == -1:
			acc.Add(acc, neg2)
		case d.D0 == 1 && d.D1 == 1:
			acc.Add(acc, sum)
		case d.D0 == -1 && d.D1 == -1:
			acc.Add(acc, negSum)
		case d.D0 == 1 && d.D1 == -1:
			acc.Add(acc, diff)
		case d.D0 == -1 && d.D1 == 1:
			acc.Add(acc, negDiff)
		}
	}
	v.Set(acc)
	return v
}

// DoubleScalarMultVartime sets v = u1*G + u2*p in variable time, using
// interleaved width-4 NAF (spec.md §4.5, mirrors the Weierstrass
// package's non-GLV double-scalar path).
func (v *Point) DoubleScalarMultVartime(c *Params, u1 *scalar.Element, u2 *scalar.Element, p *Point) *Point {
	const w = 4
	g := c.NewPoint().Generator(c)

	naf1 := u1.NAF(w)
	naf2 := u2.NAF(w)

	odd1 := precomputeOdd(g, w)
	odd2 := precomputeOdd(p, w)

	maxLen := len(naf1)
	if len(naf2) > maxLen {
		maxLen = len(naf2)
	}

	acc := c.NewPoint().Identity(c)
	for i := maxLen - 1; i >= 0; i-- {
		acc.Double(acc)

		if i < len(naf1) && naf1[i] != 0 {
			d := naf1[i]
			if d > 0 {
				acc.Add(acc, odd1[(d-1)/2])
			} else {
				neg := c.NewPoint().Negate(odd1[(-d-1)/2])
				acc.Add(acc, neg)
			}
		}
		if i < len(naf2) && naf2[i] != 0 {
			d := naf2[i]
			if d > 0 {
				acc.Add(acc, odd2[(d-1)/2])
			} else {
				neg := c.NewPoint().Negate(odd2[(-d-1)/2])
				acc.Add(acc, neg)
			}
		}
	}

	v.Set(acc)
	return v
}

// precomputeOdd returns the 2^(w-1) odd multiples {1*p, 3*p, 5*p, ...,
// (2^w-1)*p}; wNAF digits only index the lower half of this table.
func precomputeOdd(p *Point, w uint) []*Point {
	n := 1 << (w - 1)
	odd := make([]*Point, n)
	odd[0] = p.c.NewPoint().Set(p)
	twoP := p.c.NewPoint().Double(p)
	for i := 1; i < n; i++ {
		odd[i] = p.c.NewPoint().Add(odd[i-1], twoP)
	}
	return odd
}
