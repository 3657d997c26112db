// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass

import (
	"errors"

	"gitlab.com/crypto-core/ecc-core/field"
)

// Point byte-format tags, per spec.md §6.2 (SEC1).
const (
	tagCompressedEven = 0x02
	tagCompressedOdd  = 0x03
	tagUncompressed   = 0x04
	tagHybridEven     = 0x06
	tagHybridOdd      = 0x07
)

// CompressedBytes returns the SEC1 compressed encoding of p:
// `0x02/0x03 || x`. Panics if p is the identity (the identity has no
// SEC1 encoding).
func (p *AffinePoint) CompressedBytes() []byte {
	assertAffineValid(p)
	if p.inf == 1 {
		panic("weierstrass: cannot encode identity point")
	}
	tag := byte(tagCompressedEven)
	if p.y.IsOdd() == 1 {
		tag = tagCompressedOdd
	}
	return append([]byte{tag}, p.x.Bytes()...)
}

// UncompressedBytes returns the SEC1 uncompressed encoding of p:
// `0x04 || x || y`.
func (p *AffinePoint) UncompressedBytes() []byte {
	assertAffineValid(p)
	if p.inf == 1 {
		panic("weierstrass: cannot encode identity point")
	}
	out := append([]byte{tagUncompressed}, p.x.Bytes()...)
	return append(out, p.y.Bytes()...)
}

// SetBytes decodes a SEC1 compressed, uncompressed, or hybrid (0x06/0x07,
// accepted on import per spec.md §6.2) point encoding into p, and
// returns p. The point is validated to lie on the curve.
func (c *Params) SetBytes(p *AffinePoint, src []byte) (*AffinePoint, error) {
	if len(src) < 1 {
		return nil, errors.New("weierstrass: empty point encoding")
	}
	feLen := c.F.ByteLen()

	switch tag := src[0]; tag {
	case tagCompressedEven, tagCompressedOdd:
		if len(src) != 1+feLen {
			return nil, errors.New("weierstrass: invalid compressed point length")
		}
		x := c.F.Element()
		if _, err := c.F.SetCanonicalBytes(x, src[1:]); err != nil {
			return nil, err
		}
		return c.decompress(p, x, tag == tagCompressedOdd)
	case tagUncompressed, tagHybridEven, tagHybridOdd:
		if len(src) != 1+2*feLen {
			return nil, errors.New("weierstrass: invalid uncompressed point length")
		}
		x := c.F.Element()
		if _, err := c.F.SetCanonicalBytes(x, src[1:1+feLen]); err != nil {
			return nil, err
		}
		y := c.F.Element()
		if _, err := c.F.SetCanonicalBytes(y, src[1+feLen:]); err != nil {
			return nil, err
		}
		if tag == tagHybridEven && y.IsOdd() == 1 {
			return nil, errors.New("weierstrass: hybrid parity mismatch")
		}
		if tag == tagHybridOdd && y.IsOdd() == 0 {
			return nil, errors.New("weierstrass: hybrid parity mismatch")
		}
		p.c, p.x, p.y, p.inf = c, x, y, 0
		p.isValid = true
		if !p.IsOnCurve() {
			return nil, errors.New("weierstrass: point not on curve")
		}
		return p, nil
	default:
		return nil, errors.New("weierstrass: unknown point tag")
	}
}

// LiftXSquareY reconstructs a point from its x-coordinate alone, per
// spec.md §4.9's BIP-Schnorr x-only public key convention: of the curve
// equation's two y roots, the one that is itself a square in the field is
// chosen (exactly one of y, -y is square when p == 3 mod 4, since -1 is
// then a non-residue).
func (c *Params) LiftXSquareY(x *field.Element) (*AffinePoint, error) {
	rhs := c.F.Element().Square(x)
	rhs.Multiply(rhs, x)
	ax := c.F.Element().Multiply(c.A, x)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.B)

	y, isSquare := c.F.Element().Sqrt(rhs)
	if isSquare == 0 {
		return nil, errors.New("weierstrass: x is not on curve")
	}
	if !y.IsSquareVar() {
		y.Negate(y)
	}

	p := c.NewAffinePoint()
	p.c, p.inf, p.isValid = c, 0, true
	p.x.Set(x)
	p.y.Set(y)
	return p, nil
}

func (c *Params) decompress(p *AffinePoint, x *field.Element, wantOdd bool) (*AffinePoint, error) {
	rhs := c.F.Element().Square(x)
	rhs.Multiply(rhs, x)
	ax := c.F.Element().Multiply(c.A, x)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.B)

	y, isSquare := c.F.Element().Sqrt(rhs)
	if isSquare == 0 {
		return nil, errors.New("weierstrass: x is not on curve")
	}
	negY := c.F.Element().Negate(y)
	y.ConditionalSelect(y, negY, y.IsOdd()^boolToCT(wantOdd))

	p.c, p.x, p.y, p.inf = c, x, y, 0
	p.isValid = true
	return p, nil
}

func boolToCT(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
