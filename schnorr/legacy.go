// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package schnorr

import (
	"errors"

	"gitlab.com/crypto-core/ecc-core/weierstrass"
)

// Sign produces a legacy Schnorr signature of msg (spec.md §4.8):
// `k = H(priv || msg) mod n`; `R = k*G`; if `y(R)` is not a square then
// `k <- -k` (which also negates R). The challenge is
// `e = H(x(R) || A_compressed || msg) mod n`, and the signature is
// `x(R) || (k + e*a mod n)`.
func (k *PrivateKey) Sign(msg []byte) ([]byte, error) {
	c, err := wParams(k.curve)
	if err != nil {
		return nil, err
	}
	newH, err := newHash(k.curve)
	if err != nil {
		return nil, err
	}

	h := newH()
	_, _ = h.Write(k.scalarVal.Bytes())
	_, _ = h.Write(msg)
	kScalar := hashToScalarModN(c.S, h.Sum(nil))
	if kScalar.IsZero() != 0 {
		return nil, errors.New("schnorr: k = 0")
	}

	R := c.NewJacobianPoint().ScalarBaseMult(c, kScalar)
	if !weierstrass.CheckYSquare(c, R) {
		kScalar.Negate(kScalar)
		R.Negate(R)
	}

	rAffine := c.NewAffinePoint().ToAffine(R)
	rBytes := rAffine.X().Bytes()
	aBytes := k.publicKey.Bytes()

	h = newH()
	_, _ = h.Write(rBytes)
	_, _ = h.Write(aBytes)
	_, _ = h.Write(msg)
	e := hashToScalarModN(c.S, h.Sum(nil))

	s := c.S.Element().Multiply(e, k.scalarVal)
	s.Add(kScalar, s)

	sig := make([]byte, 0, len(rBytes)+len(s.Bytes()))
	sig = append(sig, rBytes...)
	sig = append(sig, s.Bytes()...)
	return sig, nil
}

// Verify verifies a legacy Schnorr signature sig of msg under k
// (spec.md §4.8): reconstructs `R = s*G - e*A` in Jacobian form without
// an inversion, then checks `y(R)*z(R)` is square and
// `x(R)*z(R)^2 == r`.
func (k *PublicKey) Verify(msg, sig []byte) bool {
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

	aBytes := k.Bytes()
	h := newH()
	_, _ = h.Write(rBytes)
	_, _ = h.Write(aBytes)
	_, _ = h.Write(msg)
	e := hashToScalarModN(c.S, h.Sum(nil))

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
