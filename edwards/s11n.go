// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package edwards

import "fmt"

// Bytes encodes p per the Ed25519/Ed448 point format (spec.md §6.2): the
// little-endian encoding of y, with the sign of x folded into the most
// significant bit of the last byte.
func (p *Point) Bytes() []byte {
	assertValid(p)
	x, y := p.Affine()
	buf := y.LittleEndianBytes()
	if x.IsOdd() != 0 {
		buf[len(buf)-1] |= 0x80
	}
	return buf
}

// SetBytes decodes a point per the Ed25519/Ed448 format, recovering x via
// the curve equation x^2 = (y^2-1)/(d*y^2-a) (spec.md §4.5, §6.2).
func (c *Params) SetBytes(p *Point, src []byte) (*Point, error) {
	if len(src) != c.F.ByteLen() {
		return nil, fmt.Errorf("edwards: invalid point length: %d", len(src))
	}

	buf := make([]byte, len(src))
	copy(buf, src)
	signX := buf[len(buf)-1]&0x80 != 0
	buf[len(buf)-1] &= 0x7f

	f := c.F
	y := f.Element()
	f.SetLittleEndianBytes(y, buf)

	y2 := f.Element().Square(y)
	num := f.Element().Subtract(y2, f.Element().One())

	dy2 := f.Element().Multiply(c.D, y2)
	denom := f.Element()
	if c.AIsNegOne {
		denom.Add(dy2, f.Element().One())
	} else {
		a := f.Element().Subtract(dy2, c.A)
		denom.Set(a)
	}

	ratio := f.Element().Multiply(num, f.Element().Invert(denom))
	x, ok := f.Element().Sqrt(ratio)
	if ok == 0 {
		return nil, fmt.Errorf("edwards: invalid point encoding: not on curve")
	}
	if x.IsZero() != 0 && signX {
		return nil, fmt.Errorf("edwards: invalid point encoding: negative zero x")
	}
	if x.IsOdd() != boolToCT(signX) {
		x.Negate(x)
	}

	p.c = c
	p.x.Set(x)
	p.y.Set(y)
	p.z.One()
	p.t.Multiply(x, y)
	p.isValid = true
	return p, nil
}

func boolToCT(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
