// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package modarith implements the field-backend contract that spec.md §6.3
// calls out as an external collaborator ("curve-specific field backends
// generated by a fiat-like formal tool"): a fixed set of operations
// (add, sub, opp, mul, square, to_bytes, from_bytes, selectznz, plus the
// optional invert/sqrt helpers) over an arbitrary odd modulus.
//
// It is shared, unmodified, by both field.Element (mod p) and
// scalar.Element (mod n), the same way the teacher's field.Element and
// Scalar types are near copies of each other over different moduli.
//
// Unlike a fiat-crypto-generated backend this is not a constant-time limb
// kernel: it performs genuine Barrett reduction (HAC 14.42) but on top of
// math/big shift/mask primitives. Real constant-time arithmetic is the
// generated backend's job, deliberately out of scope per spec.md §1/§6.3.
// field.Field and scalar.Field call this package directly; there is no
// backend interface through which another implementation can be
// substituted.
package modarith

import (
	"crypto/subtle"
	"errors"
	"math/big"
)

const wordBits = 64

// ErrOutOfRange is returned when decoding a value that is not reduced
// modulo the receiver's Modulus.
var ErrOutOfRange = errors.New("modarith: value out of range")

// Modulus bundles an odd modulus with its precomputed Barrett constant and
// canonical byte width.  It plays the role of a per-curve field/scalar
// backend descriptor.
type Modulus struct {
	n       *big.Int // the modulus itself
	mu      *big.Int // floor(2^(2*64*k) / n), Barrett constant
	k       int      // number of 64-bit words in n
	byteLen int      // canonical encoding width
	bitLen  int
}

// NewModulus constructs a Modulus descriptor for n, with canonical
// encodings of byteLen bytes.
func NewModulus(n *big.Int, byteLen int) *Modulus {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		panic("modarith: modulus must be a positive odd integer")
	}

	k := (n.BitLen() + wordBits - 1) / wordBits
	shift := uint(2 * wordBits * k)

	mu := new(big.Int).Lsh(big.NewInt(1), shift)
	mu.Div(mu, n)

	return &Modulus{
		n:       new(big.Int).Set(n),
		mu:      mu,
		k:       k,
		byteLen: byteLen,
		bitLen:  n.BitLen(),
	}
}

// BigInt returns a copy of the modulus.
func (m *Modulus) BigInt() *big.Int { return new(big.Int).Set(m.n) }

// ByteLen returns the canonical encoding width in bytes.
func (m *Modulus) ByteLen() int { return m.byteLen }

// BitLen returns the bit length of the modulus.
func (m *Modulus) BitLen() int { return m.bitLen }

// barrettReduce reduces x (which MUST satisfy 0 <= x < n^2) modulo n, per
// HAC Algorithm 14.42.  Instead of calling big.Int's Mod (which would
// collapse the whole exercise to one stdlib call), this performs the
// explicit Barrett steps spec.md §4.1 describes: a shift, a multiply by
// the precomputed mu, a second shift, and a bounded number of conditional
// subtractions.
func (m *Modulus) barrettReduce(x *big.Int) *big.Int {
	k := uint(m.k)

	// q1 = floor(x / b^(k-1))
	q1 := new(big.Int).Rsh(x, wordBits*(k-1))
	// q2 = q1 * mu
	q2 := new(big.Int).Mul(q1, m.mu)
	// q3 = floor(q2 / b^(k+1))
	q3 := new(big.Int).Rsh(q2, wordBits*(k+1))

	mask := new(big.Int).Lsh(big.NewInt(1), wordBits*(k+1))
	mask.Sub(mask, big.NewInt(1))

	// r1 = x mod b^(k+1)
	r1 := new(big.Int).And(x, mask)
	// r2 = (q3 * n) mod b^(k+1)
	r2 := new(big.Int).Mul(q3, m.n)
	r2.And(r2, mask)

	r := new(big.Int).Sub(r1, r2)
	if r.Sign() < 0 {
		r.Add(r, mask.Add(mask, big.NewInt(1)))
	}

	// At most two conditional subtractions remain, per HAC 14.42.
	for r.Cmp(m.n) >= 0 {
		r.Sub(r, m.n)
	}
	return r
}

// reduceFull reduces an arbitrary non-negative x modulo n.  Used for
// importing wide byte strings, where x may exceed n^2.
func (m *Modulus) reduceFull(x *big.Int) *big.Int {
	if x.BitLen() <= 2*m.bitLen {
		z := new(big.Int).Set(x)
		z.Mod(z, m.n)
		return z
	}
	return new(big.Int).Mod(x, m.n)
}

// Element is a residue modulo a Modulus.  The zero value is invalid; use
// Modulus.Zero or Modulus.Element to construct one.
type Element struct {
	m *Modulus
	v big.Int // always in [0, n)
}

// Zero returns the additive identity bound to m.
func (m *Modulus) Zero() *Element {
	return &Element{m: m}
}

// One returns the multiplicative identity bound to m.
func (m *Modulus) One() *Element {
	e := &Element{m: m}
	e.v.SetUint64(1)
	return e
}

// Element constructs a new zero Element bound to m (alias of Zero, named
// to read naturally as `f.Element()` at call sites).
func (m *Modulus) Element() *Element { return m.Zero() }

func (e *Element) mod() *Modulus { return e.m }

// Set sets e = a and returns e.
func (e *Element) Set(a *Element) *Element {
	e.m = a.m
	e.v.Set(&a.v)
	return e
}

// Add sets e = a + b mod n and returns e.
func (e *Element) Add(a, b *Element) *Element {
	e.m = a.m
	e.v.Add(&a.v, &b.v)
	if e.v.Cmp(a.m.n) >= 0 {
		e.v.Sub(&e.v, a.m.n)
	}
	return e
}

// Sub sets e = a - b mod n and returns e.
func (e *Element) Sub(a, b *Element) *Element {
	e.m = a.m
	e.v.Sub(&a.v, &b.v)
	if e.v.Sign() < 0 {
		e.v.Add(&e.v, a.m.n)
	}
	return e
}

// Negate sets e = -a mod n and returns e.
func (e *Element) Negate(a *Element) *Element {
	e.m = a.m
	if a.v.Sign() == 0 {
		e.v.SetUint64(0)
		return e
	}
	e.v.Sub(a.m.n, &a.v)
	return e
}

// Multiply sets e = a * b mod n and returns e.
func (e *Element) Multiply(a, b *Element) *Element {
	e.m = a.m
	prod := new(big.Int).Mul(&a.v, &b.v)
	e.v.Set(a.m.barrettReduce(prod))
	return e
}

// Square sets e = a * a mod n and returns e.
func (e *Element) Square(a *Element) *Element {
	return e.Multiply(a, a)
}

// Pow2k sets e = a^(2^k) mod n and returns e.  k MUST be non-zero.
func (e *Element) Pow2k(a *Element, k uint) *Element {
	if k == 0 {
		panic("modarith: Pow2k k out of bounds")
	}
	e.Square(a)
	for i := uint(1); i < k; i++ {
		e.Square(e)
	}
	return e
}

// Pow sets e = a^x mod n via math/big's Exp, and returns e.  Not
// constant-time; x MUST NOT be secret.
func (e *Element) Pow(a *Element, x *big.Int) *Element {
	e.m = a.m
	e.v.Set(new(big.Int).Exp(&a.v, x, a.m.n))
	return e
}

// ConditionalSelect sets e = a iff ctrl == 0, e = b otherwise, and returns
// e.  ctrl MUST be 0 or 1.
func (e *Element) ConditionalSelect(a, b *Element, ctrl uint64) *Element {
	e.m = a.m
	if subtle.ConstantTimeByteEq(byte(ctrl), 0) == 1 {
		e.v.Set(&a.v)
	} else {
		e.v.Set(&b.v)
	}
	return e
}

// ConditionalNegate sets e = a iff ctrl == 0, e = -a otherwise.
func (e *Element) ConditionalNegate(a *Element, ctrl uint64) *Element {
	neg := new(Element).Negate(a)
	return e.ConditionalSelect(a, neg, ctrl)
}

// Equal returns 1 iff e == a, 0 otherwise.
func (e *Element) Equal(a *Element) uint64 {
	return uint64(subtle.ConstantTimeCompare(e.paddedBytes(), a.paddedBytes()))
}

// IsZero returns 1 iff e == 0, 0 otherwise.
func (e *Element) IsZero() uint64 {
	return uint64(subtle.ConstantTimeCompare(e.v.Bytes(), nil))
}

// IsOdd returns 1 iff e's integer representative is odd.
func (e *Element) IsOdd() uint64 {
	return uint64(e.v.Bit(0))
}

func (e *Element) paddedBytes() []byte {
	dst := make([]byte, e.m.byteLen)
	e.v.FillBytes(dst)
	return dst
}

// Bytes returns the canonical big-endian encoding of e.
func (e *Element) Bytes() []byte {
	return e.paddedBytes()
}

// SetCanonicalBytes sets e = src, a big-endian encoding of e, requiring
// src < n.  On failure, e is left unmodified.
func (m *Modulus) SetCanonicalBytes(e *Element, src []byte) (*Element, error) {
	z := new(big.Int).SetBytes(src)
	if z.Cmp(m.n) >= 0 {
		return nil, ErrOutOfRange
	}
	e.m = m
	e.v.Set(z)
	return e, nil
}

// SetBytes sets e = src mod n, a big-endian encoding, and reports via the
// second return value whether a reduction was necessary (1) or not (0).
func (m *Modulus) SetBytes(e *Element, src []byte) (*Element, uint64) {
	z := new(big.Int).SetBytes(src)
	didReduce := uint64(0)
	if z.Cmp(m.n) >= 0 {
		didReduce = 1
		z = m.reduceFull(z)
	}
	e.m = m
	e.v.Set(z)
	return e, didReduce
}

// SetWideBytes sets e = src mod n for an oversized src (used by hash-to-
// field and nonce derivation where the input may be up to 2x the field
// width), and returns e.
func (m *Modulus) SetWideBytes(e *Element, src []byte) *Element {
	z := new(big.Int).SetBytes(src)
	e.m = m
	e.v.Set(m.reduceFull(z))
	return e
}

// Invert sets e = a^-1 mod n via Fermat's little theorem (a^(n-2)), which
// for a prime modulus is total over non-zero a.  The exponentiation goes
// through Pow (math/big's Exp) and a == 0 takes a separate branch, so it
// is not constant-time.  If a == 0, e is set to zero.
func (e *Element) Invert(a *Element) *Element {
	if a.v.Sign() == 0 {
		e.m = a.m
		e.v.SetUint64(0)
		return e
	}
	exp := new(big.Int).Sub(a.m.n, big.NewInt(2))
	return e.Pow(a, exp)
}

// InvertVar sets e = a^-1 mod n via the extended Euclidean algorithm.
// Variable-time: for public (non-secret) inputs only, per spec.md §4.2.
func (e *Element) InvertVar(a *Element) (*Element, bool) {
	e.m = a.m
	inv := new(big.Int).ModInverse(&a.v, a.m.n)
	if inv == nil {
		e.v.SetUint64(0)
		return e, false
	}
	e.v.Set(inv)
	return e, true
}

// JacobiVar returns the Jacobi symbol (a.v/n), for public inputs only.
func (a *Element) JacobiVar() int {
	return big.Jacobi(&a.v, a.m.n)
}

// BigInt returns the element's integer representative, for use by
// higher layers that need to drive math/big-based precomputation (GLV
// scalar splitting, NAF/JSF digit extraction). Not secret-safe.
func (e *Element) BigInt() *big.Int {
	return new(big.Int).Set(&e.v)
}

// SetBigInt sets e = x mod n and returns e.
func (m *Modulus) SetBigInt(e *Element, x *big.Int) *Element {
	e.m = m
	e.v.Set(m.reduceFull(new(big.Int).Mod(x, m.n)))
	if e.v.Sign() < 0 {
		e.v.Add(&e.v, m.n)
	}
	return e
}
