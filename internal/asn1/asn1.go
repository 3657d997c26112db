// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package asn1 implements the strict and lax DER SEQUENCE-of-two-
// INTEGERs readers spec.md §4.7/§6.5 require for ECDSA signatures, plus
// the matching canonical DER writer. Grounded directly on the teacher's
// `secec/asn1.go`, generalized off secp256k1's fixed 32-byte scalar to
// an arbitrary curve byte length, and extended with a lax decoder per
// spec.md §4.7's "a strict and a lax decoder exist — lax tolerates minor
// violations found in historic bitcoin signatures".
package asn1

import (
	"errors"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	// ErrMalformedSignature is returned when a DER signature fails to
	// parse under either the strict or lax reader.
	ErrMalformedSignature = errors.New("asn1: malformed ECDSA-Sig-Value")
	// ErrInvalidInteger is returned when a decoded INTEGER is negative or
	// exceeds the expected scalar byte length.
	ErrInvalidInteger = errors.New("asn1: invalid INTEGER value")
)

// ReadSignatureStrict parses a strict `SEQUENCE { r INTEGER, s INTEGER }`
// DER encoding, rejecting any trailing bytes, non-minimal lengths, or
// non-canonical INTEGER encodings (BER quirks cryptobyte's ReadASN1
// already disallows by default).
func ReadSignatureStrict(data []byte) (r, s []byte, err error) {
	var (
		inner          cryptobyte.String
		rBytes, sBytes []byte
	)

	input := cryptobyte.String(data)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&rBytes) ||
		!inner.ReadASN1Integer(&sBytes) ||
		!inner.Empty() {
		return nil, nil, ErrMalformedSignature
	}
	return rBytes, sBytes, nil
}

// ReadSignatureLax parses a `SEQUENCE { r INTEGER, s INTEGER }` DER
// encoding, ignoring any bytes after the outer SEQUENCE and any bytes
// after s inside it. Lengths and INTEGER encodings are still parsed by
// cryptobyte's DER rules: non-minimal lengths and superfluous leading
// zero bytes fail with ErrMalformedSignature, and an INTEGER with its
// high bit set reads as negative and fails with ErrInvalidInteger.
func ReadSignatureLax(data []byte) (r, s []byte, err error) {
	input := cryptobyte.String(data)

	var inner cryptobyte.String
	if !input.ReadASN1(&inner, asn1.SEQUENCE) {
		return nil, nil, ErrMalformedSignature
	}

	var rBig, sBig big.Int
	if !inner.ReadASN1Integer(&rBig) || !inner.ReadASN1Integer(&sBig) {
		return nil, nil, ErrMalformedSignature
	}
	if rBig.Sign() < 0 || sBig.Sign() < 0 {
		return nil, nil, ErrInvalidInteger
	}

	return rBig.Bytes(), sBig.Bytes(), nil
}

// BuildSignature serializes (r, s) big-endian scalar bytes into a
// canonical `SEQUENCE { r INTEGER, s INTEGER }` DER encoding.
func BuildSignature(r, s []byte) []byte {
	var rBig, sBig big.Int
	rBig.SetBytes(r)
	sBig.SetBytes(s)

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(&rBig)
		b.AddASN1BigInt(&sBig)
	})
	return b.BytesOrPanic()
}

// CanonicalScalarBytes left-pads (or rejects, if too long) a decoded
// INTEGER's bytes to the curve's fixed scalar byte length.
func CanonicalScalarBytes(raw []byte, byteLen int) ([]byte, error) {
	if len(raw) > byteLen {
		return nil, ErrInvalidInteger
	}
	out := make([]byte, byteLen)
	copy(out[byteLen-len(raw):], raw)
	return out, nil
}
