// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package schnorr

import (
	"errors"
	"io"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/internal/drbg"
	"gitlab.com/crypto-core/ecc-core/scalar"
	"gitlab.com/crypto-core/ecc-core/weierstrass"
)

// batchFlushSize bounds how many per-item terms are summed into the
// pending point before it is added into the batch accumulator, per
// spec.md §4.10. Each item's term is computed by its own
// DoubleScalarMultVartime call; no multi-scalar multiplication spans
// several items.
const batchFlushSize = 64

// BatchItem is one (public key, message, signature) triple to verify as
// part of a batch.
type BatchItem struct {
	PublicKey *BIPPublicKey
	Message   []byte
	Signature []byte
}

// VerifyBatch batch-verifies BIP-Schnorr signatures (spec.md §4.10): each
// item contributes a random coefficient a_i (drawn from a DRBG seeded with
// all the signature material, so the check is non-interactive yet the
// coefficients are unpredictable to a forger), and the batch is accepted
// iff:
//
//	sum(a_i * s_i) * G == sum(a_i * R_i) + sum(a_i * e_i * A_i)
//
// VerifyBatch fails closed: any malformed input or curve mismatch across
// items rejects the whole batch.
func VerifyBatch(d *curve.Descriptor, items []BatchItem, rand io.Reader) (bool, error) {
	if len(items) == 0 {
		return true, nil
	}
	c, err := wParams(d)
	if err != nil {
		return false, err
	}
	newH, err := newHash(d)
	if err != nil {
		return false, err
	}

	feLen := c.F.ByteLen()
	nLen := c.S.ByteLen()

	type parsed struct {
		r *field.Element
		s *scalar.Element
		e *scalar.Element
		A *weierstrass.JacobianPoint
	}
	ps := make([]parsed, len(items))

	seed, err := batchSeed(rand, items)
	if err != nil {
		return false, err
	}
	coeffSource, err := drbg.Hedge(rand, "schnorr-batch-verify", seed)
	if err != nil {
		return false, err
	}

	for i, it := range items {
		if it.PublicKey == nil || it.PublicKey.curve != d {
			return false, errors.New("schnorr: batch item has mismatched curve")
		}
		if len(it.Signature) != feLen+nLen {
			return false, errors.New("schnorr: batch item has malformed signature")
		}
		rBytes, sBytes := it.Signature[:feLen], it.Signature[feLen:]

		r := c.F.Element()
		if _, err := c.F.SetCanonicalBytes(r, rBytes); err != nil {
			return false, err
		}
		s, err := c.S.SetCanonicalBytes(c.S.Element(), sBytes)
		if err != nil {
			return false, err
		}
		e := hashToScalarModN(c.S, taggedHash(newH, tagBIPSchnorr, rBytes, it.PublicKey.xBytes, it.Message))

		ps[i] = parsed{
			r: r,
			s: s,
			e: e,
			A: c.NewJacobianPoint().FromAffine(it.PublicKey.point),
		}
	}

	sum := c.S.Element()
	acc := c.NewJacobianPoint().Identity(c)
	pending := c.NewJacobianPoint().Identity(c)
	pendingCount := 0

	flush := func() {
		if pendingCount > 0 {
			acc.AddVariableTime(acc, pending)
			pending.Identity(c)
			pendingCount = 0
		}
	}

	for i := range ps {
		a, err := sampleBatchCoefficient(c.S, coeffSource, i)
		if err != nil {
			return false, err
		}

		as := c.S.Element().Multiply(a, ps[i].s)
		sum.Add(sum, as)

		rY, err := c.LiftXSquareY(ps[i].r)
		if err != nil {
			return false, errors.New("schnorr: batch item has non-curve r")
		}
		Rj := c.NewJacobianPoint().FromAffine(rY)

		ae := c.S.Element().Multiply(a, ps[i].e)
		term := c.NewJacobianPoint().DoubleScalarMultVartime(ae, ps[i].A, a, Rj)

		pending.AddVariableTime(pending, term)
		pendingCount++
		if pendingCount >= batchFlushSize {
			flush()
		}
	}
	flush()

	negSum := c.S.Element().Negate(sum)
	lhs := c.NewJacobianPoint().ScalarBaseMultVartime(c, negSum)
	lhs.AddVariableTime(lhs, acc)

	return lhs.IsIdentity() == 1, nil
}

func batchSeed(rand io.Reader, items []BatchItem) ([]byte, error) {
	if rand == nil {
		return nil, nil
	}
	var buf [32]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return nil, err
	}
	seed := make([]byte, 0, 32+len(items)*8)
	seed = append(seed, buf[:]...)
	for _, it := range items {
		seed = append(seed, it.Signature...)
	}
	return seed, nil
}

func sampleBatchCoefficient(s *scalar.Field, src io.Reader, index int) (*scalar.Element, error) {
	byteLen := s.ByteLen()
	buf := make([]byte, byteLen)
	for i := 0; i < maxBatchResamples; i++ {
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, err
		}
		buf[0] &= 0x7f // bias towards the canonical range, rejection below is exact
		if e, err := s.SetCanonicalBytes(s.Element(), buf); err == nil {
			return e, nil
		}
	}
	return nil, errors.New("schnorr: failed to sample batch coefficient")
}

const maxBatchResamples = 8
