// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package eddsa

import (
	"errors"

	"gitlab.com/crypto-core/ecc-core/curve"
)

// domPrefix returns the curve-specific dom2/dom4 literal (RFC 8032
// §5.1/§5.2), or "" if d has none.
func domPrefix(d *curve.Descriptor) string {
	switch d.ID {
	case "Ed25519":
		return "SigEd25519 no Ed25519 collisions"
	case "Ed448":
		return "SigEd448"
	default:
		return ""
	}
}

// domAlwaysPresent reports whether d always prepends dom, independent of
// ph/ctx (Ed448's dom4 is unconditional; Ed25519's dom2 is only added
// when ph is requested or ctx is non-empty, per spec.md §4.12).
func domAlwaysPresent(d *curve.Descriptor) bool {
	return d.ID == "Ed448"
}

// buildDom constructs spec.md §4.12's "dom" string, or nil if this
// (curve, ph, ctx) combination omits it.
func buildDom(d *curve.Descriptor, ph bool, ctx []byte) []byte {
	if !domAlwaysPresent(d) && !ph && len(ctx) == 0 {
		return nil
	}
	if len(ctx) > 255 {
		return nil // caller-checked; buildDom itself just refuses silently
	}
	prefix := domPrefix(d)
	phFlag := byte(0)
	if ph {
		phFlag = 1
	}
	out := make([]byte, 0, len(prefix)+2+len(ctx))
	out = append(out, []byte(prefix)...)
	out = append(out, phFlag, byte(len(ctx)))
	out = append(out, ctx...)
	return out
}

// prehashSize is RFC 8032's Ed25519ph/Ed448ph pre-hash output width (the
// "PH" function's fixed 64-byte digest for both curves' ph variants).
const prehashSize = 64

func prehashMessage(d *curve.Descriptor, msg []byte) []byte {
	return runHash(d, prehashSize, msg)
}

// SignOptions configures Sign's dom-separation inputs, per spec.md
// §4.12's step 1.
type SignOptions struct {
	// Prehash selects the Ed25519ph/Ed448ph variant: msg is first reduced
	// via the curve's hash to a fixed-size digest before signing.
	Prehash bool
	// Context is an optional, <= 255-byte domain-separation string
	// (RFC 8032's "ctx").
	Context []byte
}

// Sign produces an EdDSA signature of msg under k (spec.md §4.12).
func (k *PrivateKey) Sign(msg []byte, opts SignOptions) ([]byte, error) {
	c, err := eParams(k.curve)
	if err != nil {
		return nil, err
	}
	if len(opts.Context) > 255 {
		return nil, errors.New("eddsa: context too long")
	}

	m := msg
	if opts.Prehash {
		m = prehashMessage(k.curve, msg)
	}
	dom := buildDom(k.curve, opts.Prehash, opts.Context)

	digestLen := digestSize(k.curve)
	kDigest := runHash(k.curve, digestLen, dom, k.prefix, m)
	kScalar := hashToScalarWide(c.S, kDigest)

	R := c.NewPoint().ScalarBaseMult(c, kScalar)
	rBytes := R.Bytes()
	aBytes := k.publicKey.bytes

	eDigest := runHash(k.curve, digestLen, dom, rBytes, aBytes, m)
	e := hashToScalarWide(c.S, eDigest)

	s := c.S.Element().Multiply(e, k.scalarVal)
	s.Add(kScalar, s)

	sig := make([]byte, 0, len(rBytes)+c.S.ByteLen())
	sig = append(sig, rBytes...)
	sig = append(sig, reverseBytes(s.Bytes())...)
	return sig, nil
}
