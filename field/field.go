// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package field implements Fe, prime-field arithmetic modulo a
// curve-specific prime p (spec.md §3, §4.2). All arguments and receivers
// are allowed to alias.
package field

import (
	"encoding/binary"
	"errors"
	"math/big"

	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
	"gitlab.com/crypto-core/ecc-core/internal/modarith"
)

// SqrtKind selects the square-root algorithm a Field's prime requires, per
// spec.md §4.2.
type SqrtKind int

const (
	// SqrtNone indicates the field has no available sqrt algorithm; any
	// attempt to call Sqrt panics (spec.md §7 class 5, an assertion
	// failure; this can only arise from a misconfigured curve).
	SqrtNone SqrtKind = iota
	// Sqrt3Mod4 is used when p ≡ 3 (mod 4): sqrt(a) = a^((p+1)/4).
	Sqrt3Mod4
	// Sqrt5Mod8 is used when p ≡ 5 (mod 8), via Atkin's algorithm.
	Sqrt5Mod8
	// SqrtTonelliShanks is the generic fallback for any odd prime.
	SqrtTonelliShanks
)

// Field is a per-curve prime-field descriptor: the modulus, its canonical
// byte width, and which square-root algorithm to use.  It plays the role
// of the "field backend" spec.md §6.3 describes, calling internal/modarith
// directly; there is no pluggable backend interface.
type Field struct {
	mod       *modarith.Modulus
	byteLen   int
	highMask  byte // mask applied to the most-significant imported byte
	sqrtKind  SqrtKind
	two       *Element
	sqrtExp   *big.Int // precomputed exponent for Sqrt3Mod4/Sqrt5Mod8
	qnr       *Element // a fixed quadratic non-residue, for Tonelli-Shanks
	tsQ       *big.Int
	tsS       uint
}

// ElementSize is kept for call sites that still want a constant-looking
// name; prefer Field.ByteLen in new code since it varies per curve.
const ElementSize = 32

// NewField constructs a Field for modulus p, with values encoded in
// byteLen bytes.  highBits, when non-zero and less than 8, masks the high
// bits of the most significant imported byte (spec.md §4.2, used by
// p25519/p448/p251 whose field is not byte-aligned).
func NewField(p *big.Int, byteLen int, highBits uint, kind SqrtKind) *Field {
	f := &Field{
		mod:      modarith.NewModulus(p, byteLen),
		byteLen:  byteLen,
		sqrtKind: kind,
	}
	if highBits > 0 && highBits < 8 {
		f.highMask = byte(1<<highBits) - 1
	} else {
		f.highMask = 0xff
	}

	switch kind {
	case Sqrt3Mod4:
		// (p+1)/4
		e := new(big.Int).Add(p, big.NewInt(1))
		e.Rsh(e, 2)
		f.sqrtExp = e
	case Sqrt5Mod8:
		// (p-5)/8, used by Atkin's algorithm below.
		e := new(big.Int).Sub(p, big.NewInt(5))
		e.Rsh(e, 3)
		f.sqrtExp = e
	case SqrtTonelliShanks:
		q := new(big.Int).Sub(p, big.NewInt(1))
		var s uint
		for q.Bit(0) == 0 {
			q.Rsh(q, 1)
			s++
		}
		f.tsQ, f.tsS = q, s
		// Find a fixed quadratic non-residue by trial (public, one-time
		// per curve registration; not on any secret path).
		cand := f.Element()
		trial := big.NewInt(2)
		for i := int64(2); ; i++ {
			trial.SetInt64(i)
			f.SetBigInt(cand, trial)
			if cand.e.JacobiVar() == -1 {
				f.qnr = cand
				break
			}
		}
	}

	f.two = f.Element()
	f.SetBigInt(f.two, big.NewInt(2))

	return f
}

// Modulus returns the underlying modulus descriptor.
func (f *Field) Modulus() *modarith.Modulus { return f.mod }

// Field returns the Field an Element is bound to.
func (fe *Element) Field() *Field { return fe.f }

// ByteLen returns the canonical encoding width in bytes.
func (f *Field) ByteLen() int { return f.byteLen }

// P returns a copy of the field's prime.
func (f *Field) P() *big.Int { return f.mod.BigInt() }

// Element is a field element (spec.md §3's Fe).
type Element struct {
	_ disalloweq.DisallowEqual
	f *Field
	e modarith.Element
}

// Element returns a new zero Element bound to f.
func (f *Field) Element() *Element {
	el := &Element{f: f}
	el.e = *f.mod.Zero()
	return el
}

// Zero sets fe = 0 and returns fe.
func (fe *Element) Zero() *Element {
	fe.e = *fe.f.mod.Zero()
	return fe
}

// One sets fe = 1 and returns fe.
func (fe *Element) One() *Element {
	fe.e = *fe.f.mod.One()
	return fe
}

// Set sets fe = a and returns fe.
func (fe *Element) Set(a *Element) *Element {
	fe.f = a.f
	fe.e.Set(&a.e)
	return fe
}

// Add sets fe = a + b and returns fe.
func (fe *Element) Add(a, b *Element) *Element {
	fe.f = a.f
	fe.e.Add(&a.e, &b.e)
	return fe
}

// Subtract sets fe = a - b and returns fe.
func (fe *Element) Subtract(a, b *Element) *Element {
	fe.f = a.f
	fe.e.Sub(&a.e, &b.e)
	return fe
}

// Negate sets fe = -a and returns fe.
func (fe *Element) Negate(a *Element) *Element {
	fe.f = a.f
	fe.e.Negate(&a.e)
	return fe
}

// Multiply sets fe = a * b and returns fe.
func (fe *Element) Multiply(a, b *Element) *Element {
	fe.f = a.f
	fe.e.Multiply(&a.e, &b.e)
	return fe
}

// Square sets fe = a * a and returns fe.
func (fe *Element) Square(a *Element) *Element {
	fe.f = a.f
	fe.e.Square(&a.e)
	return fe
}

// Pow2k sets fe = a^(2^k) and returns fe. k MUST be non-zero.
func (fe *Element) Pow2k(a *Element, k uint) *Element {
	fe.f = a.f
	fe.e.Pow2k(&a.e, k)
	return fe
}

// ConditionalSelect sets fe = a iff ctrl == 0, fe = b otherwise.
func (fe *Element) ConditionalSelect(a, b *Element, ctrl uint64) *Element {
	fe.f = a.f
	fe.e.ConditionalSelect(&a.e, &b.e, ctrl)
	return fe
}

// ConditionalNegate sets fe = a iff ctrl == 0, fe = -a otherwise.
func (fe *Element) ConditionalNegate(a *Element, ctrl uint64) *Element {
	fe.f = a.f
	fe.e.ConditionalNegate(&a.e, ctrl)
	return fe
}

// Equal returns 1 iff fe == a, 0 otherwise.
func (fe *Element) Equal(a *Element) uint64 {
	return fe.e.Equal(&a.e)
}

// IsZero returns 1 iff fe == 0, 0 otherwise.
func (fe *Element) IsZero() uint64 {
	return fe.e.IsZero()
}

// IsOdd returns 1 iff fe's canonical integer representative is odd.
func (fe *Element) IsOdd() uint64 {
	return fe.e.IsOdd()
}

// Bytes returns the canonical big-endian encoding of fe.
func (fe *Element) Bytes() []byte {
	return fe.e.Bytes()
}

// SetCanonicalBytes sets fe = src, requiring src < p and the field's high
// bits (if any) to already be clear.  On failure fe is left unmodified.
func (f *Field) SetCanonicalBytes(fe *Element, src []byte) (*Element, error) {
	if len(src) != f.byteLen {
		return nil, errors.New("field: invalid element length")
	}
	if f.highMask != 0xff && src[0]&^f.highMask != 0 {
		return nil, errors.New("field: high bits set")
	}
	fe.f = f
	if _, err := f.mod.SetCanonicalBytes(&fe.e, src); err != nil {
		return nil, err
	}
	return fe, nil
}

// SetBytes sets fe = src mod p, masking the field's high bits (if any)
// before reduction, per spec.md §4.2's curves "whose field is not
// byte-aligned".  src is big-endian; SetLittleEndianBytes is the
// little-endian variant used for Montgomery curves.
func (f *Field) SetBytes(fe *Element, src []byte) *Element {
	var tmp []byte
	if len(src) == f.byteLen && f.highMask != 0xff {
		tmp = append([]byte(nil), src...)
		tmp[0] &= f.highMask
		src = tmp
	}
	fe.f = f
	f.mod.SetWideBytes(&fe.e, src)
	return fe
}

// SetLittleEndianBytes sets fe = LE(src) mod p, masking the top byte of
// the little-endian encoding (spec.md §6.2, used by X25519/X448 x-coord
// import).
func (f *Field) SetLittleEndianBytes(fe *Element, src []byte) *Element {
	rev := make([]byte, len(src))
	for i, b := range src {
		rev[len(src)-1-i] = b
	}
	if f.highMask != 0xff && len(rev) > 0 {
		rev[0] &= f.highMask
	}
	fe.f = f
	f.mod.SetWideBytes(&fe.e, rev)
	return fe
}

// LittleEndianBytes returns the little-endian canonical encoding of fe.
func (fe *Element) LittleEndianBytes() []byte {
	be := fe.e.Bytes()
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return le
}

// BytesAreCanonical reports whether src is a canonical (< p, high bits
// clear) encoding for f, without constructing an Element.
func (f *Field) BytesAreCanonical(src []byte) bool {
	if len(src) != f.byteLen {
		return false
	}
	if f.highMask != 0xff && src[0]&^f.highMask != 0 {
		return false
	}
	return new(big.Int).SetBytes(src).Cmp(f.mod.BigInt()) < 0
}

// Invert sets fe = a^-1 (or 0 if a == 0) and returns fe. Not
// constant-time (see modarith's Invert).
func (fe *Element) Invert(a *Element) *Element {
	fe.f = a.f
	fe.e.Invert(&a.e)
	return fe
}

// InvertVar sets fe = a^-1 via extended gcd, for public inputs only.
func (fe *Element) InvertVar(a *Element) (*Element, bool) {
	fe.f = a.f
	_, ok := fe.e.InvertVar(&a.e)
	return fe, ok
}

// Sqrt sets fe = sqrt(a) and returns (fe, 1) iff a is a quadratic residue,
// (fe set to zero, 0) otherwise, per spec.md §4.2.
func (fe *Element) Sqrt(a *Element) (*Element, uint64) {
	f := a.f
	switch f.sqrtKind {
	case Sqrt3Mod4:
		cand := f.Element().pow(a, f.sqrtExp)
		return fe.finishSqrt(a, cand)
	case Sqrt5Mod8:
		return fe.sqrtAtkin(a)
	case SqrtTonelliShanks:
		return fe.sqrtTonelliShanks(a)
	default:
		panic("field: curve has no sqrt algorithm")
	}
}

func (fe *Element) pow(a *Element, exp *big.Int) *Element {
	fe.f = a.f
	fe.e.Pow(&a.e, exp)
	return fe
}

func (fe *Element) finishSqrt(a, cand *Element) (*Element, uint64) {
	check := a.f.Element().Square(cand)
	isSqrt := check.Equal(a)
	fe.f = a.f
	fe.ConditionalSelect(a.f.Element(), cand, isSqrt)
	return fe, isSqrt
}

// sqrtAtkin implements Atkin's algorithm for p ≡ 5 (mod 8), per spec.md
// §4.2: https://en.wikipedia.org/wiki/Berlekamp%E2%80%93Rabin_algorithm.
func (fe *Element) sqrtAtkin(a *Element) (*Element, uint64) {
	f := a.f
	// b = (2a)^((p-5)/8)
	two := f.two
	twoA := f.Element().Multiply(two, a)
	b := f.Element().pow(twoA, f.sqrtExp)

	// i = 2*a*b^2
	bb := f.Element().Square(b)
	i := f.Element().Multiply(twoA, bb)

	// r = a*b*(i-1)
	iMinus1 := f.Element().Subtract(i, f.Element().One())
	r := f.Element().Multiply(a, b)
	r.Multiply(r, iMinus1)

	return fe.finishSqrt(a, r)
}

func (fe *Element) sqrtTonelliShanks(a *Element) (*Element, uint64) {
	f := a.f
	if a.IsZero() == 1 {
		fe.f = f
		fe.Zero()
		return fe, 1
	}

	m := f.tsS
	c := f.Element().Set(f.qnr)
	c.pow(c, f.tsQ)
	t := f.Element().pow(a, f.tsQ)
	r := f.Element().pow(a, new(big.Int).Rsh(new(big.Int).Add(f.tsQ, big.NewInt(1)), 1))

	for {
		if t.Equal(f.Element().One()) == 1 {
			return fe.finishSqrt(a, r)
		}

		// Find the least i, 0 < i < m, such that t^(2^i) == 1.
		i := uint(0)
		tt := f.Element().Set(t)
		for ; i < m; i++ {
			if tt.Equal(f.Element().One()) == 1 {
				break
			}
			tt.Square(tt)
		}
		if i == 0 || i == m {
			return fe.finishSqrt(a, r)
		}

		b := f.Element().Set(c)
		for j := uint(0); j < m-i-1; j++ {
			b.Square(b)
		}
		m = i
		c.Square(b)
		t.Multiply(t, c)
		r.Multiply(r, b)
	}
}

// IsSquare returns 1 iff a is a quadratic residue mod p, 0 otherwise, via
// a constant-time Sqrt probe (spec.md §4.2).
func (a *Element) IsSquare() uint64 {
	_, ok := a.f.Element().Sqrt(a)
	return ok
}

// IsSquareVar returns whether a is a quadratic residue, via the Jacobi
// symbol. Variable-time; public inputs only.
func (a *Element) IsSquareVar() bool {
	return a.e.JacobiVar() >= 0
}

// SqrtRatio sets fe = sqrt(u * v^-1) and returns (fe, isSquare), per
// spec.md §4.2's isqrt: "isqrt(u, v) = sqrt(u * v^-1)". When u/v is not a
// square, fe is set to zero and isSquare is 0, matching Sqrt's own
// non-residue convention.
func (fe *Element) SqrtRatio(u, v *Element) (*Element, uint64) {
	f := u.f
	vInv := f.Element().Invert(v)
	uOverV := f.Element().Multiply(u, vInv)
	return fe.Sqrt(uOverV)
}

// BigInt returns the integer representative of fe, for use by group-layer
// code that needs to drive public (non-secret) precomputation.
func (fe *Element) BigInt() *big.Int {
	return fe.e.BigInt()
}

// SetBigInt sets fe = x mod p and returns fe.
func (f *Field) SetBigInt(fe *Element, x *big.Int) *Element {
	fe.f = f
	f.mod.SetBigInt(&fe.e, x)
	return fe
}

// NewElementFromUint64s constructs an element from four big-endian 64-bit
// limbs (most significant first), matching the teacher's
// NewElementFromSaturated constant-table convention for 256-bit curves.
func (f *Field) NewElementFromUint64s(hi, mid1, mid2, lo uint64) *Element {
	var b [32]byte
	binary.BigEndian.PutUint64(b[0:8], hi)
	binary.BigEndian.PutUint64(b[8:16], mid1)
	binary.BigEndian.PutUint64(b[16:24], mid2)
	binary.BigEndian.PutUint64(b[24:32], lo)
	fe := f.Element()
	f.mod.SetWideBytes(&fe.e, b[:])
	return fe
}
