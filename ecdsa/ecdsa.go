// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package ecdsa implements Wei-ECDSA (spec.md §6.1): key generation,
// hedged deterministic-leaning Sign/Verify, public-key recovery, and the
// ECC_WITH_TRICK r-check optimization, over any registered short-
// Weierstrass curve. Generalizes the teacher's secp256k1-only
// secec/ecdsa.go off a single hardcoded curve onto curve.Descriptor,
// keeping its SEC 1 §4.1.3/§4.1.4 step structure and hedged-nonce
// derivation.
package ecdsa

import (
	"crypto"
	csrand "crypto/rand"
	"errors"
	"fmt"
	"io"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/internal/asn1"
	"gitlab.com/crypto-core/ecc-core/internal/disalloweq"
	"gitlab.com/crypto-core/ecc-core/internal/drbg"
	"gitlab.com/crypto-core/ecc-core/scalar"
	"gitlab.com/crypto-core/ecc-core/weierstrass"
)

const (
	maxScalarResamples = 8
	domainSepECDSA     = "ECDSA-Sign"
)

var (
	errWrongFamily   = errors.New("ecdsa: curve is not a short-Weierstrass curve")
	errInvalidScalar = errors.New("ecdsa: invalid scalar")
	errInvalidDigest = errors.New("ecdsa: invalid digest")
	errInvalidRorS   = errors.New("ecdsa: r or s is zero")
	errSNotCanonical = errors.New("ecdsa: s is greater than n/2")
	errRIsInfinity   = errors.New("ecdsa: R is the point at infinity")
	errXNeqR         = errors.New("ecdsa: x(R) does not equal r")

	errEntropySource     = errors.New("ecdsa: entropy source failure")
	errRejectionSampling = errors.New("ecdsa: failed rejection sampling")
)

// PrivateKey is an ECDSA private key bound to a specific curve.
type PrivateKey struct {
	_ disalloweq.DisallowEqual

	curve     *curve.Descriptor
	scalarVal *scalar.Element
	publicKey *PublicKey
}

// Curve returns the curve k is defined over.
func (k *PrivateKey) Curve() *curve.Descriptor { return k.curve }

// Bytes returns the big-endian encoding of the private scalar.
func (k *PrivateKey) Bytes() []byte { return k.scalarVal.Bytes() }

// Scalar returns the scalar underlying k.
func (k *PrivateKey) Scalar() *scalar.Element { return k.scalarVal }

// Public returns the crypto.PublicKey corresponding to k.
func (k *PrivateKey) Public() crypto.PublicKey { return k.publicKey }

// PublicKey returns the public key corresponding to k.
func (k *PrivateKey) PublicKey() *PublicKey { return k.publicKey }

// Equal returns whether x represents the same private key as k.
func (k *PrivateKey) Equal(x crypto.PrivateKey) bool {
	other, ok := x.(*PrivateKey)
	if !ok || other.curve != k.curve {
		return false
	}
	return other.scalarVal.Equal(k.scalarVal) == 1
}

// PublicKey is an ECDSA public key bound to a specific curve.
type PublicKey struct {
	_ disalloweq.DisallowEqual

	curve      *curve.Descriptor
	point      *weierstrass.AffinePoint
	pointBytes []byte // uncompressed SEC1 encoding
}

// Curve returns the curve k is defined over.
func (k *PublicKey) Curve() *curve.Descriptor { return k.curve }

// Bytes returns the uncompressed SEC1 encoding of k.
func (k *PublicKey) Bytes() []byte {
	out := make([]byte, len(k.pointBytes))
	copy(out, k.pointBytes)
	return out
}

// ASN1Bytes returns the ASN.1 encoding of k, per SEC 1 Appendix C.3.
func (k *PublicKey) ASN1Bytes() []byte {
	return buildASN1PublicKey(k)
}

// Point returns the affine point underlying k.
func (k *PublicKey) Point() *weierstrass.AffinePoint { return k.point }

// Equal returns whether x represents the same public key as k.
func (k *PublicKey) Equal(x crypto.PublicKey) bool {
	other, ok := x.(*PublicKey)
	if !ok || other.curve != k.curve {
		return false
	}
	return other.point.X().Equal(k.point.X()) == 1 && other.point.Y().Equal(k.point.Y()) == 1
}

// IsYOdd returns true iff k's y-coordinate is odd.
func (k *PublicKey) IsYOdd() bool {
	return k.point.Y().IsOdd() == 1
}

func wParams(d *curve.Descriptor) (*weierstrass.Params, error) {
	if d.Family != curve.FamilyWeierstrass || d.Weierstrass == nil {
		return nil, errWrongFamily
	}
	return d.Weierstrass, nil
}

// GenerateKey generates a new PrivateKey on d, using rand (crypto/rand.Reader
// if nil).
func GenerateKey(d *curve.Descriptor, rand io.Reader) (*PrivateKey, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, err
	}
	if rand == nil {
		rand = csrand.Reader
	}
	s, err := sampleRandomScalar(c.S, rand)
	if err != nil {
		return nil, err
	}
	return newPrivateKeyFromScalar(d, c, s)
}

// NewPrivateKey decodes key (a big-endian scalar in [1,n)) as a PrivateKey
// on d.
func NewPrivateKey(d *curve.Descriptor, key []byte) (*PrivateKey, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, err
	}
	if len(key) != c.S.ByteLen() {
		return nil, errors.New("ecdsa: invalid private key size")
	}
	s, err := c.S.SetCanonicalBytes(c.S.Element(), key)
	if err != nil || s.IsZero() != 0 {
		return nil, errors.New("ecdsa: invalid private key")
	}
	return newPrivateKeyFromScalar(d, c, s)
}

func newPrivateKeyFromScalar(d *curve.Descriptor, c *weierstrass.Params, s *scalar.Element) (*PrivateKey, error) {
	j := c.NewJacobianPoint().ScalarBaseMult(c, s)
	pub := c.NewAffinePoint().ToAffine(j)

	k := &PrivateKey{
		curve:     d,
		scalarVal: s,
		publicKey: &PublicKey{curve: d, point: pub, pointBytes: pub.UncompressedBytes()},
	}
	return k, nil
}

// NewPublicKey decodes key (a SEC1 compressed/uncompressed/hybrid point
// encoding) as a PublicKey on d. The point at infinity is rejected.
func NewPublicKey(d *curve.Descriptor, key []byte) (*PublicKey, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, err
	}
	p, err := c.SetBytes(c.NewAffinePoint(), key)
	if err != nil {
		return nil, fmt.Errorf("ecdsa: invalid public key: %w", err)
	}
	if p.IsIdentity() != 0 {
		return nil, errors.New("ecdsa: public key is the point at infinity")
	}
	return &PublicKey{curve: d, point: p, pointBytes: p.UncompressedBytes()}, nil
}

// Sign signs hash (the output of hashing a larger message with the curve's
// pinned hash) using k, per SEC 1 §4.1.3. It returns (r, s, recoveryID).
// s is always normalized to be <= n/2. recoveryID is in [0,3].
func (k *PrivateKey) Sign(rand io.Reader, hash []byte) (*scalar.Element, *scalar.Element, byte, error) {
	c, err := wParams(k.curve)
	if err != nil {
		return nil, nil, 0, err
	}
	return sign(c, rand, k, hash)
}

// SignASN1 is Sign, DER-encoding the resulting (r, s).
func (k *PrivateKey) SignASN1(rand io.Reader, hash []byte) ([]byte, error) {
	r, s, _, err := k.Sign(rand, hash)
	if err != nil {
		return nil, err
	}
	return asn1.BuildSignature(r.Bytes(), s.Bytes()), nil
}

// Verify verifies the (r, s) signature of hash using k, per SEC 1 §4.1.4.
func (k *PublicKey) Verify(hash []byte, r, s *scalar.Element) bool {
	c, err := wParams(k.curve)
	if err != nil {
		return false
	}
	return nil == verify(c, k, hash, r, s)
}

// VerifyASN1 decodes sig as a strict DER `ECDSA-Sig-Value` and verifies it.
func (k *PublicKey) VerifyASN1(hash, sig []byte) bool {
	c, err := wParams(k.curve)
	if err != nil {
		return false
	}
	rBytes, sBytes, err := asn1.ReadSignatureStrict(sig)
	if err != nil {
		return false
	}
	r, s, err := canonicalRS(c, rBytes, sBytes)
	if err != nil {
		return false
	}
	return k.Verify(hash, r, s)
}

// VerifyASN1Lax is VerifyASN1, using the lax DER decoder (spec.md §4.7).
func (k *PublicKey) VerifyASN1Lax(hash, sig []byte) bool {
	c, err := wParams(k.curve)
	if err != nil {
		return false
	}
	rBytes, sBytes, err := asn1.ReadSignatureLax(sig)
	if err != nil {
		return false
	}
	r, s, err := canonicalRS(c, rBytes, sBytes)
	if err != nil {
		return false
	}
	return k.Verify(hash, r, s)
}

func canonicalRS(c *weierstrass.Params, rBytes, sBytes []byte) (*scalar.Element, *scalar.Element, error) {
	rCanon, err := asn1.CanonicalScalarBytes(rBytes, c.S.ByteLen())
	if err != nil {
		return nil, nil, err
	}
	sCanon, err := asn1.CanonicalScalarBytes(sBytes, c.S.ByteLen())
	if err != nil {
		return nil, nil, err
	}
	r, err := c.S.SetCanonicalBytes(c.S.Element(), rCanon)
	if err != nil {
		return nil, nil, errInvalidScalar
	}
	s, err := c.S.SetCanonicalBytes(c.S.Element(), sCanon)
	if err != nil {
		return nil, nil, errInvalidScalar
	}
	return r, s, nil
}

// RecoverPublicKey recovers the public key from the signature
// (r, s, recoveryID) over hash, on curve d. recoveryID MUST be in [0,3].
func RecoverPublicKey(d *curve.Descriptor, hash []byte, r, s *scalar.Element, recoveryID byte) (*PublicKey, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, err
	}
	if r.IsZero() != 0 || s.IsZero() != 0 {
		return nil, errInvalidRorS
	}
	if s.IsGreaterThanHalfN() != 0 {
		return nil, errSNotCanonical
	}

	R, err := recoverPoint(c, r, recoveryID)
	if err != nil {
		return nil, err
	}

	e, err := hashToScalar(c.S, hash)
	if err != nil {
		return nil, err
	}
	negE := c.S.Element().Negate(e)

	rInv := c.S.Element().Invert(r)
	u1 := c.S.Element().Multiply(negE, rInv)
	u2 := c.S.Element().Multiply(s, rInv)

	Rj := c.NewJacobianPoint().FromAffine(R)
	Qj := c.NewJacobianPoint().DoubleScalarMultBasepointVartime(c, u1, u2, Rj)
	if Qj.IsIdentity() != 0 {
		return nil, errRIsInfinity
	}
	Q := c.NewAffinePoint().ToAffine(Qj)

	return &PublicKey{curve: d, point: Q, pointBytes: Q.UncompressedBytes()}, nil
}

// recoverPoint reconstructs R = (x(R), y(R)) from r and recoveryID:
// bit 0 selects y's parity, bit 1 signals x(R) = r + n (the rare case
// where r's reduction mod n discarded the high bit of x(R)).
func recoverPoint(c *weierstrass.Params, r *scalar.Element, recoveryID byte) (*weierstrass.AffinePoint, error) {
	if recoveryID > 3 {
		return nil, errors.New("ecdsa: invalid recovery id")
	}

	x := r.BigInt()
	if recoveryID&2 != 0 {
		x.Add(x, c.S.N())
	}
	if x.Cmp(c.F.P()) >= 0 {
		return nil, errors.New("ecdsa: recovered x out of range")
	}

	feLen := c.F.ByteLen()
	xBytes := make([]byte, feLen)
	x.FillBytes(xBytes)

	tag := byte(0x02)
	if recoveryID&1 != 0 {
		tag = 0x03
	}
	buf := append([]byte{tag}, xBytes...)

	return c.SetBytes(c.NewAffinePoint(), buf)
}

func sign(c *weierstrass.Params, rand io.Reader, d *PrivateKey, hBytes []byte) (*scalar.Element, *scalar.Element, byte, error) {
	var recoveryID byte

	e, err := hashToScalar(c.S, hBytes)
	if err != nil {
		return nil, nil, 0, err
	}

	fixedRng, err := drbg.Hedge(rand, domainSepECDSA, d.scalarVal.Bytes(), hBytes)
	if err != nil {
		return nil, nil, 0, err
	}

	var r, s *scalar.Element
	for {
		kScalar, err := sampleRandomScalar(c.S, fixedRng)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("ecdsa: failed to generate k: %w", err)
		}
		Rj := c.NewJacobianPoint().ScalarBaseMult(c, kScalar)
		R := c.NewAffinePoint().ToAffine(Rj)

		rXBig := R.X().BigInt()
		yIsOdd := R.Y().IsOdd()

		rBytes, err := asn1.CanonicalScalarBytes(rXBig.Bytes(), c.S.ByteLen())
		if err != nil {
			continue
		}
		var didReduce uint64
		r, didReduce = c.S.SetBytes(c.S.Element(), rBytes)
		if r.IsZero() != 0 {
			continue
		}

		kInv := c.S.Element().Invert(kScalar)
		s = c.S.Element()
		s.Multiply(r, d.scalarVal).Add(s, e).Multiply(s, kInv)
		if s.IsZero() == 0 {
			recoveryID = (byte(didReduce) << 1) | byte(yIsOdd)
			break
		}
	}

	negateS := s.IsGreaterThanHalfN()
	s.ConditionalNegate(s, negateS)
	recoveryID ^= byte(negateS)

	return r, s, recoveryID, nil
}

func verify(c *weierstrass.Params, q *PublicKey, hBytes []byte, r, s *scalar.Element) error {
	if r.IsZero() != 0 || s.IsZero() != 0 {
		return errInvalidRorS
	}
	if s.IsGreaterThanHalfN() != 0 {
		return errSNotCanonical
	}

	e, err := hashToScalar(c.S, hBytes)
	if err != nil {
		return err
	}

	sInv := c.S.Element().Invert(s)
	u1 := c.S.Element().Multiply(e, sInv)
	u2 := c.S.Element().Multiply(r, sInv)

	Qj := c.NewJacobianPoint().FromAffine(q.point)
	Rj := c.NewJacobianPoint().DoubleScalarMultBasepointVartime(c, u1, u2, Qj)
	if Rj.IsIdentity() != 0 {
		return errRIsInfinity
	}

	if !weierstrass.CheckXCongruentR(c, r, Rj) {
		return errXNeqR
	}
	return nil
}

// hashToScalar converts a hash to a scalar, taking its leftmost
// ceil(log2(n)) bits per SEC 1 §4.1.3 Step 5.
func hashToScalar(s *scalar.Field, hash []byte) (*scalar.Element, error) {
	byteLen := s.ByteLen()
	if len(hash) < byteLen {
		return nil, errInvalidDigest
	}
	buf := append([]byte(nil), hash[:byteLen]...)
	if excess := uint(8*byteLen - s.N().BitLen()); excess > 0 {
		for i := len(buf) - 1; i > 0; i-- {
			buf[i] = buf[i]>>excess | buf[i-1]<<(8-excess)
		}
		buf[0] >>= excess
	}
	e, _ := s.SetBytes(s.Element(), buf)
	return e, nil
}

func sampleRandomScalar(s *scalar.Field, rand io.Reader) (*scalar.Element, error) {
	byteLen := s.ByteLen()
	buf := make([]byte, byteLen)
	e := s.Element()
	for i := 0; i < maxScalarResamples; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.Join(errEntropySource, err)
		}
		_, didReduce := s.SetBytes(e, buf)
		if didReduce == 0 && e.IsZero() == 0 {
			return e, nil
		}
	}
	return nil, errRejectionSampling
}
