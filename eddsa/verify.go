// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package eddsa

import "gitlab.com/crypto-core/ecc-core/edwards"

// Verify verifies sig over msg under k (spec.md §4.12): recomputes e and
// checks `R == s*G - e*A` in extended coordinates.
func (k *PublicKey) Verify(msg, sig []byte, opts SignOptions) bool {
	R, check, ok := k.verifyCore(msg, sig, opts)
	if !ok {
		return false
	}
	return R.Equal(check) == 1
}

// VerifyCofactor is the "single-signature cofactor-multiplied" variant
// (spec.md §4.12): both sides of the check are multiplied by the curve's
// cofactor before comparison, matching strict RFC 8032 behavior (this
// accepts a strict superset of what Verify accepts, since it also passes
// for small-order R/A components that a non-cofactored check rejects).
func (k *PublicKey) VerifyCofactor(msg, sig []byte, opts SignOptions) bool {
	c, err := eParams(k.curve)
	if err != nil {
		return false
	}
	R, check, ok := k.verifyCore(msg, sig, opts)
	if !ok {
		return false
	}

	lhs := cofactorMultiply(c, R)
	rhs := cofactorMultiply(c, check)
	return lhs.Equal(rhs) == 1
}

// verifyCore parses sig and recomputes R (decoded from the signature) and
// s*G - e*A, leaving the final comparison to the caller so Verify and
// VerifyCofactor can each apply their own equality check.
func (k *PublicKey) verifyCore(msg, sig []byte, opts SignOptions) (r, check *edwards.Point, ok bool) {
	c, err := eParams(k.curve)
	if err != nil {
		return nil, nil, false
	}
	feLen := c.F.ByteLen()
	nLen := c.S.ByteLen()
	if len(sig) != feLen+nLen {
		return nil, nil, false
	}
	rBytes, sBytesLE := sig[:feLen], sig[feLen:]

	r, err = c.SetBytes(c.NewPoint(), rBytes)
	if err != nil {
		return nil, nil, false
	}
	s, err := c.S.SetCanonicalBytes(c.S.Element(), reverseBytes(sBytesLE))
	if err != nil {
		return nil, nil, false
	}

	m := msg
	if opts.Prehash {
		m = prehashMessage(k.curve, msg)
	}
	if len(opts.Context) > 255 {
		return nil, nil, false
	}
	dom := buildDom(k.curve, opts.Prehash, opts.Context)

	digestLen := digestSize(k.curve)
	eDigest := runHash(k.curve, digestLen, dom, rBytes, k.bytes, m)
	e := hashToScalarWide(c.S, eDigest)
	negE := c.S.Element().Negate(e)

	check = c.NewPoint().DoubleScalarMultVartime(c, s, negE, k.point)
	return r, check, true
}

// cofactorMultiply returns h*p via repeated doubling, h being the
// curve's (small, power-of-two) cofactor.
func cofactorMultiply(c *edwards.Params, p *edwards.Point) *edwards.Point {
	acc := c.NewPoint().Set(p)
	for h := c.Cofactor; h > 1; h >>= 1 {
		acc.Double(acc)
	}
	return acc
}
