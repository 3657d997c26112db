// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package eddsa implements Ed25519/Ed448 (spec.md §4.12) over
// curve.Descriptor's Edwards family. The teacher has no Edwards curve of
// its own; the key-expansion/sign/verify state machine here follows
// RFC 8032 directly (as spec.md §4.12 itself paraphrases it), while the
// PrivateKey/PublicKey object shape and the "hash output keeps reading
// from the io.Reader internal/drbg.Hedge returns" idiom are carried over from the teacher's
// secec/ecdsa.go and this repo's own ecdsa/schnorr packages for
// consistency.
package eddsa

import (
	"crypto"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"io"

	"golang.org/x/crypto/sha3"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/edwards"
	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

var (
	errWrongFamily    = errors.New("eddsa: curve is not a twisted-Edwards curve")
	errInvalidKeySize = errors.New("eddsa: invalid private key size")
)

func eParams(d *curve.Descriptor) (*edwards.Params, error) {
	if d.Family != curve.FamilyEdwards || d.Edwards == nil {
		return nil, errWrongFamily
	}
	return d.Edwards, nil
}

// digestSize returns H's output size for key expansion (2x the scalar
// field's byte length: 64 for Ed25519's SHA-512, 112 for Ed448's
// SHAKE256 with its 56-byte scalar field).
func digestSize(d *curve.Descriptor) int {
	return 2 * d.Edwards.S.ByteLen()
}

// runHash computes the curve's pinned hash construction over data,
// writing outLen bytes of output to a freshly allocated slice. SHA-512
// (Ed25519) always produces a fixed 64-byte digest, so outLen must be 64
// there; SHAKE256 (Ed448) is squeezed for exactly outLen bytes, per
// spec.md §4.12's use of both as "H" with curve-specific output width.
func runHash(d *curve.Descriptor, outLen int, data ...[]byte) []byte {
	out := make([]byte, outLen)
	switch d.Hash {
	case curve.HashSHA512:
		h := sha512.New()
		for _, b := range data {
			_, _ = h.Write(b)
		}
		sum := h.Sum(nil)
		copy(out, sum)
	case curve.HashSHAKE256:
		h := sha3.NewShake256()
		for _, b := range data {
			_, _ = h.Write(b)
		}
		_, _ = io.ReadFull(h, out)
	default:
		panic("eddsa: curve has no EdDSA-compatible hash pinned")
	}
	return out
}

// clampEd25519 is RFC 8032 §5.1.5's scalar clamp: identical bit pattern
// to X25519's clamp (montgomery.P25519Clamp), kept local since the two
// packages' clamp conventions are conceptually independent even though
// the bit masks coincide.
func clampEd25519(s []byte) {
	s[0] &= 248
	s[31] &= 127
	s[31] |= 64
}

// clampEd448 is RFC 8032 §5.2.5's scalar clamp, adapted to this repo's
// 56-byte (448-bit) Ed448 scalar encoding: RFC 8032 clamps a 57-byte
// buffer and always zeroes its last byte, so that byte carries no
// information and is dropped here rather than carried around as a
// structural no-op.
func clampEd448(s []byte) {
	s[0] &= 0xFC
	s[55] |= 0x80
}

func clamp(d *curve.Descriptor, s []byte) {
	switch d.ID {
	case "Ed25519":
		clampEd25519(s)
	case "Ed448":
		clampEd448(s)
	default:
		panic("eddsa: curve has no registered clamp")
	}
}

// reverseBytes returns a little-endian<->big-endian byte-order reversal
// of src as a new slice (RFC 8032 encodes scalars and hash digests
// little-endian; this repo's scalar.Field is big-endian throughout).
func reverseBytes(src []byte) []byte {
	out := make([]byte, len(src))
	for i, b := range src {
		out[len(src)-1-i] = b
	}
	return out
}

// hashToScalarWide reduces a little-endian digest (wider than the scalar
// field, e.g. 64 bytes for Ed25519's n) mod n.
func hashToScalarWide(s *scalar.Field, littleEndianDigest []byte) *scalar.Element {
	be := reverseBytes(littleEndianDigest)
	return s.SetWideBytes(s.Element(), be)
}

// PrivateKey is an EdDSA private key bound to a specific curve: the
// expanded signing scalar and nonce-derivation prefix, per spec.md
// §4.12's "H(priv) split into scalar || prefix".
type PrivateKey struct {
	_ disalloweq.DisallowEqual

	curve     *curve.Descriptor
	seed      []byte // the original, unexpanded private key bytes
	scalarVal *scalar.Element
	prefix    []byte
	publicKey *PublicKey
}

// Curve returns the curve k is defined over.
func (k *PrivateKey) Curve() *curve.Descriptor { return k.curve }

// Seed returns the original (unexpanded) private key bytes.
func (k *PrivateKey) Seed() []byte {
	out := make([]byte, len(k.seed))
	copy(out, k.seed)
	return out
}

// PublicKey returns k's public key.
func (k *PrivateKey) PublicKey() *PublicKey { return k.publicKey }

// Public implements crypto.Signer.
func (k *PrivateKey) Public() crypto.PublicKey { return k.publicKey }

// PublicKey is an EdDSA public key: a compressed Edwards point.
type PublicKey struct {
	_ disalloweq.DisallowEqual

	curve *curve.Descriptor
	point *edwards.Point
	bytes []byte
}

// Curve returns the curve k is defined over.
func (k *PublicKey) Curve() *curve.Descriptor { return k.curve }

// Bytes returns the compressed point encoding of k.
func (k *PublicKey) Bytes() []byte {
	out := make([]byte, len(k.bytes))
	copy(out, k.bytes)
	return out
}

// Equal returns whether x represents the same public key as k.
func (k *PublicKey) Equal(x crypto.PublicKey) bool {
	other, ok := x.(*PublicKey)
	if !ok || other.curve != k.curve {
		return false
	}
	return subtle.ConstantTimeCompare(other.bytes, k.bytes) == 1
}

// NewPrivateKey expands seed (the curve's canonical private key size: 32
// bytes for Ed25519, 56 for Ed448) into a PrivateKey on d, per spec.md
// §4.12's key-expansion step.
func NewPrivateKey(d *curve.Descriptor, seed []byte) (*PrivateKey, error) {
	c, err := eParams(d)
	if err != nil {
		return nil, err
	}
	if len(seed) != c.S.ByteLen() {
		return nil, errInvalidKeySize
	}

	digest := runHash(d, digestSize(d), seed)

	scalarBytes := make([]byte, c.S.ByteLen())
	copy(scalarBytes, digest[:c.S.ByteLen()])
	clamp(d, scalarBytes)

	s := hashToScalarWide(c.S, scalarBytes)
	prefix := append([]byte(nil), digest[c.S.ByteLen():]...)

	point := c.NewPoint().ScalarBaseMult(c, s)
	pub := &PublicKey{curve: d, point: point, bytes: point.Bytes()}

	return &PrivateKey{
		curve:     d,
		seed:      append([]byte(nil), seed...),
		scalarVal: s,
		prefix:    prefix,
		publicKey: pub,
	}, nil
}

// NewPublicKey decodes key (the curve's compressed point encoding) as a
// PublicKey on d.
func NewPublicKey(d *curve.Descriptor, key []byte) (*PublicKey, error) {
	c, err := eParams(d)
	if err != nil {
		return nil, err
	}
	p, err := c.SetBytes(c.NewPoint(), key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(key))
	copy(out, key)
	return &PublicKey{curve: d, point: p, bytes: out}, nil
}
