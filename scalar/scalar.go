// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package scalar implements Sc, arithmetic modulo a curve's group order n
// (spec.md §3, §4.1), plus the signed-digit representations (wNAF, JSF)
// used by variable-time multi-scalar multiplication.
package scalar

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
	"gitlab.com/crypto-core/ecc-core/internal/modarith"
)

// Field is a per-curve scalar-field descriptor: the group order n and its
// canonical byte width.
type Field struct {
	mod     *modarith.Modulus
	byteLen int
	halfN   *big.Int
}

// NewField constructs a Field for group order n, encoded canonically in
// byteLen bytes.
func NewField(n *big.Int, byteLen int) *Field {
	return &Field{
		mod:     modarith.NewModulus(n, byteLen),
		byteLen: byteLen,
		halfN:   new(big.Int).Rsh(n, 1),
	}
}

// ByteLen returns the canonical encoding width in bytes.
func (f *Field) ByteLen() int { return f.byteLen }

// N returns a copy of the group order.
func (f *Field) N() *big.Int { return f.mod.BigInt() }

// Element is a scalar modulo n (spec.md §3's Sc).
type Element struct {
	_ disalloweq.DisallowEqual
	f *Field
	e modarith.Element
}

// Field returns the Field s is bound to.
func (s *Element) Field() *Field { return s.f }

// Element returns a new zero Element bound to f.
func (f *Field) Element() *Element {
	s := &Element{f: f}
	s.e = *f.mod.Zero()
	return s
}

// Zero sets s = 0 and returns s.
func (s *Element) Zero() *Element {
	s.e = *s.f.mod.Zero()
	return s
}

// One sets s = 1 and returns s.
func (s *Element) One() *Element {
	s.e = *s.f.mod.One()
	return s
}

// Set sets s = a and returns s.
func (s *Element) Set(a *Element) *Element {
	s.f = a.f
	s.e.Set(&a.e)
	return s
}

// Add sets s = a + b and returns s.
func (s *Element) Add(a, b *Element) *Element {
	s.f = a.f
	s.e.Add(&a.e, &b.e)
	return s
}

// Subtract sets s = a - b and returns s.
func (s *Element) Subtract(a, b *Element) *Element {
	s.f = a.f
	s.e.Sub(&a.e, &b.e)
	return s
}

// Negate sets s = -a and returns s.
func (s *Element) Negate(a *Element) *Element {
	s.f = a.f
	s.e.Negate(&a.e)
	return s
}

// Multiply sets s = a * b and returns s.
func (s *Element) Multiply(a, b *Element) *Element {
	s.f = a.f
	s.e.Multiply(&a.e, &b.e)
	return s
}

// Square sets s = a * a and returns s.
func (s *Element) Square(a *Element) *Element {
	s.f = a.f
	s.e.Square(&a.e)
	return s
}

// Invert sets s = a^-1 (Fermat, a^(n-2); not constant-time) and returns s.
func (s *Element) Invert(a *Element) *Element {
	s.f = a.f
	s.e.Invert(&a.e)
	return s
}

// InvertVar sets s = a^-1 via extended gcd.  Variable-time; public inputs
// only, per spec.md §4.1.
func (s *Element) InvertVar(a *Element) (*Element, bool) {
	s.f = a.f
	_, ok := s.e.InvertVar(&a.e)
	return s, ok
}

// MulShift sets s = floor((a*b) >> shift), rounding the final bit, and
// returns s.  Used by Schnorr-style nonce derivation and GLV scalar
// splitting, per spec.md §4.1.
func (s *Element) MulShift(a, b *Element, shift uint) *Element {
	prod := new(big.Int).Mul(a.e.BigInt(), b.e.BigInt())
	// Round the last discarded bit.
	round := new(big.Int).Rsh(prod, shift-1)
	round.Add(round, big.NewInt(1))
	round.Rsh(round, 1)
	s.f = a.f
	s.f.mod.SetBigInt(&s.e, round)
	return s
}

// ConditionalSelect sets s = a iff ctrl == 0, s = b otherwise.
func (s *Element) ConditionalSelect(a, b *Element, ctrl uint64) *Element {
	s.f = a.f
	s.e.ConditionalSelect(&a.e, &b.e, ctrl)
	return s
}

// ConditionalNegate sets s = a iff ctrl == 0, s = -a otherwise.
func (s *Element) ConditionalNegate(a *Element, ctrl uint64) *Element {
	s.f = a.f
	s.e.ConditionalNegate(&a.e, ctrl)
	return s
}

// Equal returns 1 iff s == a, 0 otherwise.
func (s *Element) Equal(a *Element) uint64 {
	return s.e.Equal(&a.e)
}

// IsZero returns 1 iff s == 0, 0 otherwise.
func (s *Element) IsZero() uint64 {
	return s.e.IsZero()
}

// IsGreaterThanHalfN returns 1 iff s > n/2, 0 otherwise (spec.md §4.1).
func (s *Element) IsGreaterThanHalfN() uint64 {
	if s.e.BigInt().Cmp(s.f.halfN) > 0 {
		return 1
	}
	return 0
}

// Minimize negates s iff s > n/2 and returns (s, sign), where sign is 1
// iff a negation occurred (spec.md §4.1's "minimize").
func (s *Element) Minimize(a *Element) (*Element, uint64) {
	sign := a.IsGreaterThanHalfN()
	s.ConditionalNegate(a, sign)
	return s, sign
}

// Bytes returns the canonical big-endian encoding of s.
func (s *Element) Bytes() []byte {
	return s.e.Bytes()
}

// SetCanonicalBytes sets s = src, requiring src < n.  On failure s is left
// unmodified.
func (f *Field) SetCanonicalBytes(s *Element, src []byte) (*Element, error) {
	s.f = f
	if _, err := f.mod.SetCanonicalBytes(&s.e, src); err != nil {
		return nil, errors.New("scalar: value out of range")
	}
	return s, nil
}

// SetBytes sets s = src mod n and reports via the second return value
// whether a reduction was necessary (1) or not (0), per spec.md §4.1's
// "import-reduce".
func (f *Field) SetBytes(s *Element, src []byte) (*Element, uint64) {
	s.f = f
	_, didReduce := f.mod.SetBytes(&s.e, src)
	return s, didReduce
}

// SetWideBytes sets s = src mod n for an oversized big-endian src (EdDSA's
// 64/112-byte hash-to-scalar reductions, spec.md §4.12) and returns s.
func (f *Field) SetWideBytes(s *Element, src []byte) *Element {
	s.f = f
	f.mod.SetWideBytes(&s.e, src)
	return s
}

// BigInt returns the integer representative of s.  Not secret-safe; for
// use by public, variable-time precomputation only (GLV split, NAF/JSF).
func (s *Element) BigInt() *big.Int {
	return s.e.BigInt()
}

// SetBigInt sets s = x mod n and returns s.
func (f *Field) SetBigInt(s *Element, x *big.Int) *Element {
	s.f = f
	f.mod.SetBigInt(&s.e, x)
	return s
}

// BitLen returns the bit length of s's canonical representative.
func (s *Element) BitLen() int {
	return s.e.BigInt().BitLen()
}

// Bit returns the i'th least-significant bit of s's canonical
// representative.  Variable-time; for use only where s is public (wNAF
// digit extraction, DER encoding length checks).
func (s *Element) Bit(i int) uint {
	return s.e.BigInt().Bit(i)
}

// Random sets s to a uniformly random non-zero value in [1, n) sampled
// from rand (crypto/rand.Reader if nil), via rejection sampling, per
// spec.md §4.1.  It retries internally; entropy-source failure is the
// only error path (spec.md §7 class 4).
func (f *Field) Random(rnd io.Reader) (*Element, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	buf := make([]byte, f.byteLen)
	s := f.Element()
	for i := 0; i < 256; i++ {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, errors.New("scalar: entropy source failure")
		}
		_, didReduce := f.mod.SetBytes(&s.e, buf)
		if didReduce == 0 && s.IsZero() == 0 {
			return s, nil
		}
	}
	return nil, errors.New("scalar: failed rejection sampling")
}

// NAFDigit is one signed digit of a width-w non-adjacent form.
type NAFDigit int8

// NAF computes the width-w non-adjacent form of s's canonical
// representative, least-significant digit first, per spec.md §4.1.  w
// MUST be in [2, 8].  Variable-time; s MUST be public.
func (s *Element) NAF(w uint) []NAFDigit {
	k := new(big.Int).Set(s.e.BigInt())
	var digits []NAFDigit

	width := int64(1) << w
	half := width / 2

	for k.Sign() != 0 {
		var z int64
		if k.Bit(0) == 1 {
			mod := new(big.Int).And(k, big.NewInt(width-1))
			zi := mod.Int64()
			if zi >= half {
				zi -= width
			}
			z = zi
			k.Sub(k, big.NewInt(z))
		}
		digits = append(digits, NAFDigit(z))
		k.Rsh(k, 1)
	}
	return digits
}

// JSFDigitPair is one pair of interleaved JSF digits for two scalars.
type JSFDigitPair struct {
	D0, D1 int8
}

// JSF computes the Joint Sparse Form of (a, b)'s canonical
// representatives, least-significant pair first, per spec.md §4.1.
// Variable-time; a and b MUST be public.
func JSF(a, b *Element) []JSFDigitPair {
	k0 := new(big.Int).Set(a.e.BigInt())
	k1 := new(big.Int).Set(b.e.BigInt())

	var out []JSFDigitPair
	for k0.Sign() != 0 || k1.Sign() != 0 {
		d0 := jsfDigit(k0, k1)
		d1 := jsfDigit(k1, k0)
		out = append(out, JSFDigitPair{D0: int8(d0), D1: int8(d1)})

		if d0 != 0 {
			k0.Sub(k0, big.NewInt(int64(d0)))
		}
		if d1 != 0 {
			k1.Sub(k1, big.NewInt(int64(d1)))
		}
		k0.Rsh(k0, 1)
		k1.Rsh(k1, 1)
	}
	return out
}

// jsfDigit extracts one JSF digit for k from k's low 3 bits and the other
// scalar's low 2 bits, following the standard JSF lookup table (Solinas,
// "Low-Weight Binary Representations for Pairs of Integers").
func jsfDigit(k, other *big.Int) int {
	if k.Bit(0) == 0 {
		return 0
	}
	u := 1
	if k.Uint64()&0x3 == 3 {
		u = -1
	}
	mod8 := k.Uint64() & 0x7
	if (mod8 == 3 || mod8 == 5) && other.Uint64()&0x3 == 2 {
		u = -u
	}
	return u
}
