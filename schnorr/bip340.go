// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

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

const (
	tagBIPSchnorr       = "BIPSchnorr"
	tagBIPSchnorrDerive = "BIPSchnorrDerive"
)

// BIPPublicKey is an x-only BIP-Schnorr public key (spec.md §4.9): a
// single field element, with the normalization convention that the
// corresponding curve point's y-coordinate is itself a square.
type BIPPublicKey struct {
	_ disalloweq.DisallowEqual

	curve  *curve.Descriptor
	point  *weierstrass.AffinePoint // y is square, per LiftXSquareY
	xBytes []byte
}

// Curve returns the curve k is defined over.
func (k *BIPPublicKey) Curve() *curve.Descriptor { return k.curve }

// Bytes returns the x-only encoding of k.
func (k *BIPPublicKey) Bytes() []byte {
	out := make([]byte, len(k.xBytes))
	copy(out, k.xBytes)
	return out
}

// Equal returns whether x represents the same public key as k.
func (k *BIPPublicKey) Equal(x crypto.PublicKey) bool {
	other, ok := x.(*BIPPublicKey)
	if !ok || other.curve != k.curve {
		return false
	}
	return other.point.X().Equal(k.point.X()) == 1
}

// BIPPublicKey returns k's x-only BIP-Schnorr public key, normalizing the
// private scalar so that the public point's y-coordinate is square.
func (k *PrivateKey) BIPPublicKey() (*BIPPublicKey, error) {
	c, err := wParams(k.curve)
	if err != nil {
		return nil, err
	}
	_, xBytes := bipPrivateForSigning(c, k)
	x := c.F.Element()
	if _, err := c.F.SetCanonicalBytes(x, xBytes); err != nil {
		return nil, err
	}
	p, err := c.LiftXSquareY(x)
	if err != nil {
		return nil, err
	}
	return &BIPPublicKey{curve: k.curve, point: p, xBytes: xBytes}, nil
}

// NewBIPPublicKey decodes xBytes (a field element) as a BIPPublicKey on d,
// reconstructing the curve point via LiftXSquareY.
func NewBIPPublicKey(d *curve.Descriptor, xBytes []byte) (*BIPPublicKey, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, err
	}
	x := c.F.Element()
	if _, err := c.F.SetCanonicalBytes(x, xBytes); err != nil {
		return nil, fmt.Errorf("schnorr: invalid x-only public key: %w", err)
	}
	p, err := c.LiftXSquareY(x)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(xBytes))
	copy(out, xBytes)
	return &BIPPublicKey{curve: d, point: p, xBytes: out}, nil
}

// taggedHash computes BIP-340's tagged hash construction,
// H(H(tag) || H(tag) || vals...), generalized over newH so that curves
// pinned to SHA-384/SHA-512 (spec.md §6.1) get the same domain separation
// as secp256k1's SHA-256.
func taggedHash(newH func() hash.Hash, tag string, vals ...[]byte) []byte {
	th := newH()
	_, _ = th.Write([]byte(tag))
	tagDigest := th.Sum(nil)

	h := newH()
	_, _ = h.Write(tagDigest)
	_, _ = h.Write(tagDigest)
	for _, v := range vals {
		_, _ = h.Write(v)
	}
	return h.Sum(nil)
}

// bipPrivateForSigning returns the (possibly negated) scalar whose public
// point has a square y, as BIP-Schnorr signing requires, along with that
// point's x-only encoding.
func bipPrivateForSigning(c *weierstrass.Params, k *PrivateKey) (*scalar.Element, []byte) {
	d := c.S.Element().Set(k.scalarVal)
	P := c.NewJacobianPoint().ScalarBaseMult(c, d)
	if !weierstrass.CheckYSquare(c, P) {
		d.Negate(d)
		P.Negate(P)
	}
	pub := c.NewAffinePoint().ToAffine(P)
	return d, pub.X().Bytes()
}

// SignBIP produces a BIP-Schnorr signature of msg (spec.md §4.9): the same
// equations as legacy Schnorr, but with domain-separated tagged hashes and
// an x-only public key.
func (k *PrivateKey) SignBIP(msg []byte) ([]byte, error) {
	c, err := wParams(k.curve)
	if err != nil {
		return nil, err
	}
	newH, err := newHash(k.curve)
	if err != nil {
		return nil, err
	}

	d, xBytes := bipPrivateForSigning(c, k)

	kPrime := hashToScalarModN(c.S, taggedHash(newH, tagBIPSchnorrDerive, d.Bytes(), xBytes, msg))
	if kPrime.IsZero() != 0 {
		return nil, errors.New("schnorr: k = 0")
	}

	R := c.NewJacobianPoint().ScalarBaseMult(c, kPrime)
	if !weierstrass.CheckYSquare(c, R) {
		kPrime.Negate(kPrime)
		R.Negate(R)
	}
	rBytes := c.NewAffinePoint().ToAffine(R).X().Bytes()

	e := hashToScalarModN(c.S, taggedHash(newH, tagBIPSchnorr, rBytes, xBytes, msg))

	s := c.S.Element().Multiply(e, d)
	s.Add(kPrime, s)

	sig := make([]byte, 0, len(rBytes)+len(s.Bytes()))
	sig = append(sig, rBytes...)
	sig = append(sig, s.Bytes()...)
	return sig, nil
}

// Verify verifies a BIP-Schnorr signature sig of msg under k.
func (k *BIPPublicKey) Verify(msg, sig []byte) bool {
	c, err := wParams(k.curve)
	if err != nil {
		return false
	}
	newH, err := newHash(k.curve)
	if err != nil {
		return false
	}

	feLen := c.F.ByteLen()
	nLen := c.S.ByteLen()
	if len(sig) != feLen+nLen {
		return false
	}
	rBytes, sBytes := sig[:feLen], sig[feLen:]

	r := c.F.Element()
	if _, err := c.F.SetCanonicalBytes(r, rBytes); err != nil {
		return false
	}
	s, err := c.S.SetCanonicalBytes(c.S.Element(), sBytes)
	if err != nil {
		return false
	}

	e := hashToScalarModN(c.S, taggedHash(newH, tagBIPSchnorr, rBytes, k.xBytes, msg))
	negE := c.S.Element().Negate(e)

	Aj := c.NewJacobianPoint().FromAffine(k.point)
	R := c.NewJacobianPoint().DoubleScalarMultBasepointVartime(c, s, negE, Aj)

	if R.IsIdentity() != 0 {
		return false
	}
	if !weierstrass.CheckYSquare(c, R) {
		return false
	}
	return weierstrass.CheckXEqualsFieldElement(c, r, R)
}
