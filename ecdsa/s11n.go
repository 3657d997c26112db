// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package ecdsa

import (
	stdasn1 "encoding/asn1"
	"errors"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

var (
	oidEcPublicKey = stdasn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	// namedCurveOIDs maps a curve.Descriptor.ID to its SEC1 Appendix C
	// named-curve OID, for the short-Weierstrass curves this package
	// serves. secp256k1's OID is the SEC2 assignment used throughout the
	// Bitcoin ecosystem; the NIST curves use their FIPS 186-4 OIDs.
	namedCurveOIDs = map[string]stdasn1.ObjectIdentifier{
		"P-192":     {1, 2, 840, 10045, 3, 1, 1},
		"P-224":     {1, 3, 132, 0, 33},
		"P-256":     {1, 2, 840, 10045, 3, 1, 7},
		"P-384":     {1, 3, 132, 0, 34},
		"P-521":     {1, 3, 132, 0, 35},
		"secp256k1": {1, 3, 132, 0, 10},
	}

	errInvalidAsn1SPKI  = errors.New("ecdsa: invalid ASN.1 Subject Public Key Info")
	errInvalidAsn1Algo  = errors.New("ecdsa: algorithm is not ecPublicKey")
	errInvalidAsn1Curve = errors.New("ecdsa: unknown or mismatched named curve")
)

// ParseASN1PublicKey parses an ASN.1 encoded public key as specified in
// SEC 1, Version 2.0, Appendix C.3, checking that the named curve OID
// matches d.
//
// WARNING: This is incomplete and "best-effort": explicit curve
// parameters are not supported, only named curves.
func ParseASN1PublicKey(d *curve.Descriptor, data []byte) (*PublicKey, error) {
	wantOID, ok := namedCurveOIDs[d.ID]
	if !ok {
		return nil, errInvalidAsn1Curve
	}

	var (
		inner     cryptobyte.String
		algorithm cryptobyte.String

		subjectPublicKey       stdasn1.BitString
		oidAlgorithm, oidCurve stdasn1.ObjectIdentifier
	)

	input := cryptobyte.String(data)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1(&algorithm, asn1.SEQUENCE) ||
		!inner.ReadASN1BitString(&subjectPublicKey) ||
		!inner.Empty() ||
		!algorithm.ReadASN1ObjectIdentifier(&oidAlgorithm) ||
		!algorithm.ReadASN1ObjectIdentifier(&oidCurve) ||
		!algorithm.Empty() {
		return nil, errInvalidAsn1SPKI
	}

	if !oidAlgorithm.Equal(oidEcPublicKey) {
		return nil, errInvalidAsn1Algo
	}
	if !oidCurve.Equal(wantOID) {
		return nil, errInvalidAsn1Curve
	}

	return NewPublicKey(d, subjectPublicKey.RightAlign())
}

func buildASN1PublicKey(pk *PublicKey) []byte {
	oid, ok := namedCurveOIDs[pk.curve.ID]
	if !ok {
		panic("ecdsa: no named curve OID for " + pk.curve.ID)
	}

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidEcPublicKey)
			b.AddASN1ObjectIdentifier(oid)
		})
		b.AddASN1BitString(pk.Bytes())
	})
	return b.BytesOrPanic()
}

// ParseCompactSignature parses a "compact" [R | S] signature on d, where
// both r and s MUST be in [1, n).
func ParseCompactSignature(d *curve.Descriptor, data []byte) (*scalar.Element, *scalar.Element, error) {
	c, err := wParams(d)
	if err != nil {
		return nil, nil, err
	}
	n := c.S.ByteLen()
	if len(data) != 2*n {
		return nil, nil, errors.New("ecdsa: invalid compact signature size")
	}

	r, err := c.S.SetCanonicalBytes(c.S.Element(), data[:n])
	if err != nil || r.IsZero() != 0 {
		return nil, nil, errInvalidScalar
	}
	s, err := c.S.SetCanonicalBytes(c.S.Element(), data[n:])
	if err != nil || s.IsZero() != 0 {
		return nil, nil, errInvalidScalar
	}
	return r, s, nil
}

// BuildCompactSignature serializes (r, s) into a "compact" [R | S]
// signature.
func BuildCompactSignature(r, s *scalar.Element) []byte {
	out := make([]byte, 0, 2*len(r.Bytes()))
	out = append(out, r.Bytes()...)
	out = append(out, s.Bytes()...)
	return out
}
