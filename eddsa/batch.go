// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package eddsa

import (
	"errors"
	"io"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/internal/drbg"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

// batchFlushSize bounds how many points accumulate between flushes,
// matching schnorr's batch verifier (spec.md §4.10/§4.12).
const batchFlushSize = 64

// BatchItem is one (public key, message, signature) triple to verify as
// part of a batch.
type BatchItem struct {
	PublicKey *PublicKey
	Message   []byte
	Signature []byte
	Options   SignOptions
}

// VerifyBatch batch-verifies EdDSA signatures (spec.md §4.12: "identical
// accumulation strategy as §4.10 but at Edwards level with cofactor
// multiplication"): each item contributes a random coefficient a_i, and
// the batch is accepted iff
//
//	h * sum(a_i * s_i) * G == h * (sum(a_i * R_i) + sum(a_i * e_i * A_i))
//
// where h is the curve's cofactor. VerifyBatch fails closed: any
// malformed input or curve mismatch across items rejects the whole
// batch.
func VerifyBatch(d *curve.Descriptor, items []BatchItem, rand io.Reader) (bool, error) {
	if len(items) == 0 {
		return true, nil
	}
	c, err := eParams(d)
	if err != nil {
		return false, err
	}

	seed := make([]byte, 0, len(items)*8)
	for _, it := range items {
		seed = append(seed, it.Signature...)
	}
	coeffSource, err := drbg.Hedge(rand, "eddsa-batch-verify", seed)
	if err != nil {
		return false, err
	}

	sum := c.S.Element()
	acc := c.NewPoint().Identity(c)
	pending := c.NewPoint().Identity(c)
	pendingCount := 0

	flush := func() {
		if pendingCount > 0 {
			acc.Add(acc, pending)
			pending.Identity(c)
			pendingCount = 0
		}
	}

	for _, it := range items {
		if it.PublicKey == nil || it.PublicKey.curve != d {
			return false, errors.New("eddsa: batch item has mismatched curve")
		}
		feLen := c.F.ByteLen()
		nLen := c.S.ByteLen()
		if len(it.Signature) != feLen+nLen {
			return false, errors.New("eddsa: batch item has malformed signature")
		}
		rBytes, sBytesLE := it.Signature[:feLen], it.Signature[feLen:]

		Rp, err := c.SetBytes(c.NewPoint(), rBytes)
		if err != nil {
			return false, errors.New("eddsa: batch item has invalid R")
		}
		s, err := c.S.SetCanonicalBytes(c.S.Element(), reverseBytes(sBytesLE))
		if err != nil {
			return false, errors.New("eddsa: batch item has invalid s")
		}

		m := it.Message
		if it.Options.Prehash {
			m = prehashMessage(d, it.Message)
		}
		dom := buildDom(d, it.Options.Prehash, it.Options.Context)
		e := hashToScalarWide(c.S, runHash(d, digestSize(d), dom, rBytes, it.PublicKey.bytes, m))

		a, err := sampleBatchCoefficient(c.S, coeffSource)
		if err != nil {
			return false, err
		}

		as := c.S.Element().Multiply(a, s)
		sum.Add(sum, as)

		ae := c.S.Element().Multiply(a, e)
		term := c.NewPoint().DoubleScalarMultTwoPointsVartime(c, a, Rp, ae, it.PublicKey.point)
		pending.Add(pending, term)

		pendingCount++
		if pendingCount >= batchFlushSize {
			flush()
		}
	}
	flush()

	lhs := c.NewPoint().ScalarBaseMult(c, sum)
	rhs := acc

	lhsH := cofactorMultiply(c, lhs)
	rhsH := cofactorMultiply(c, rhs)
	return lhsH.Equal(rhsH) == 1, nil
}

func sampleBatchCoefficient(s *scalar.Field, src io.Reader) (*scalar.Element, error) {
	byteLen := s.ByteLen()
	buf := make([]byte, byteLen)
	for i := 0; i < maxBatchResamples; i++ {
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, err
		}
		buf[0] &= 0x7f
		if e, err := s.SetCanonicalBytes(s.Element(), buf); err == nil {
			return e, nil
		}
	}
	return nil, errors.New("eddsa: failed to sample batch coefficient")
}

const maxBatchResamples = 8
