// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package schnorr implements the two Schnorr signature variants spec.md
// §4.8/§4.9 call for over any p ≡ 3 (mod 4) short-Weierstrass curve:
// legacy Schnorr (r = x(R), inversion-free Jacobian verification via the
// same r-value trick ECDSA uses) and BIP-Schnorr (x-only public keys,
// tagged hashes, batch verification). Generalizes the teacher's
// secp256k1-only secec/schnorr.go off a single hardcoded curve onto
// curve.Descriptor.
package schnorr

import (
	"crypto"
	"errors"
	"fmt"
	"hash"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
	"gitlab.com/crypto-core/ecc-core/scalar"
	"gitlab.com/crypto-core/ecc-core/weierstrass"
)

var (
	errWrongFamily  = errors.New("schnorr: curve is not a short-Weierstrass curve")
	errInvalidPoint = errors.New("schnorr: public key is the point at infinity")
)

func wParams(d *curve.Descriptor) (*weierstrass.Params, error) {
	if d.Family != curve.FamilyWeierstrass || d.Weierstrass == nil {
		return nil, errWrongFamily
	}
	return d.Weierstrass, nil
}

func newHash(d *curve.Descriptor) (func() hash.Hash, error) {
	switch d.Hash {
	case curve.HashSHA256:
		return newSHA256, nil
	case curve.HashSHA384:
		return newSHA384, nil
	case curve.HashSHA512:
		return newSHA512, nil
	default:
		return nil, fmt.Errorf("schnorr: curve %s has no fixed-output pinned hash", d.ID)
	}
}

// PrivateKey is a Schnorr (legacy or BIP-Schnorr) private key bound to a
// specific curve.
type PrivateKey struct {
	_ disalloweq.DisallowEqual

	curve     *curve.Descriptor
	scalarVal *scalar.Element
	publicKey *PublicKey
}

// Curve returns the curve k is defined over.
func (k *PrivateKey) Curve() *curve.Descriptor { return k.curve }

// PublicKey returns k's legacy (even/odd-preserving) public key.
func (k *PrivateKey) PublicKey() *PublicKey { return k.publicKey }

// Public implements crypto.Signer.
func (k *PrivateKey) Public() crypto.PublicKey { return k.publicKey }

// PublicKey is a legacy Schnorr public key: a full curve point, encoded
// SEC1-compressed.
type PublicKey struct {
	_ disalloweq.DisallowEqual

	curve *curve.Descriptor
	point *weierstrass.AffinePoint
}

// Curve returns the curve k is defined over.
func (k *PublicKey) Curve() *curve.Descriptor { return k.curve }

// Point returns the affine point underlying k.
func (k *PublicKey) Point() *weierstrass.AffinePoint { return k.point }

// Bytes returns the SEC1 compressed encoding of k.
func (k *PublicKey) Bytes() []byte { return k.point.CompressedBytes() }

// Equal returns whether x represents the same public key as k.
func (k *PublicKey) Equal(x crypto.PublicKey) bool {
	other, ok := x.(*PublicKey)
	if !ok || other.curve != k.curve {
		return false
	}
	return other.point.X().Equal(k.point.X()) == 1 && other.point.Y().Equal(k.point.Y()) == 1
}

// NewPrivateKey decodes key (a big-endian scalar in [1,n)) as a PrivateKey
// on d.
func NewPrivateKey(d *curve.Descriptor, key []byte) (*PrivateKey, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, err
	}
	if len(key) != c.S.ByteLen() {
		return nil, errors.New("schnorr: invalid private key size")
	}
	s, err := c.S.SetCanonicalBytes(c.S.Element(), key)
	if err != nil || s.IsZero() != 0 {
		return nil, errors.New("schnorr: invalid private key")
	}
	return newPrivateKeyFromScalar(d, c, s)
}

func newPrivateKeyFromScalar(d *curve.Descriptor, c *weierstrass.Params, s *scalar.Element) (*PrivateKey, error) {
	j := c.NewJacobianPoint().ScalarBaseMult(c, s)
	pub := c.NewAffinePoint().ToAffine(j)
	return &PrivateKey{
		curve:     d,
		scalarVal: s,
		publicKey: &PublicKey{curve: d, point: pub},
	}, nil
}

// NewPublicKey decodes key (a SEC1 point encoding) as a PublicKey on d.
func NewPublicKey(d *curve.Descriptor, key []byte) (*PublicKey, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, err
	}
	p, err := c.SetBytes(c.NewAffinePoint(), key)
	if err != nil {
		return nil, fmt.Errorf("schnorr: invalid public key: %w", err)
	}
	if p.IsIdentity() != 0 {
		return nil, errInvalidPoint
	}
	return &PublicKey{curve: d, point: p}, nil
}

// hashToScalarModN reduces a hash digest to a scalar mod n, taking its
// leftmost bytes up to the scalar's canonical byte length (zero-padding
// on the left if the digest is shorter).
func hashToScalarModN(s *scalar.Field, digest []byte) *scalar.Element {
	byteLen := s.ByteLen()
	buf := make([]byte, byteLen)
	if len(digest) >= byteLen {
		copy(buf, digest[:byteLen])
	} else {
		copy(buf[byteLen-len(digest):], digest)
	}
	e, _ := s.SetBytes(s.Element(), buf)
	return e
}
