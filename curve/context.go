// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package curve

import (
	"errors"
	"io"

	"gitlab.com/crypto-core/ecc-core/edwards"
	"gitlab.com/crypto-core/ecc-core/internal/drbg"
	"gitlab.com/crypto-core/ecc-core/scalar"
	"gitlab.com/crypto-core/ecc-core/weierstrass"
)

// Context wraps a Descriptor with the additive scalar-blinding state
// spec.md §3/§5/§9 describe: `(blind, unblind)` with
// `unblind = G * (-blind)`. A blinded base-point scalar multiplication
// computes `(k + blind) * G + unblind` instead of `k * G` directly,
// so that `k` itself never drives the ladder/comb, only `k + blind`
// does (`blind` is refreshed independently of any single secret scalar).
//
// The zero value (from NewContext) is a valid, unblinded Context:
// blind == 0, unblind == the identity.
//
// Context is NOT safe for concurrent use: Randomize is the only mutator,
// and it must not race with a blinded scalar multiplication reading the
// same Context, matching spec.md §5's "owned by the caller, no internal
// synchronization" scheduling model.
type Context struct {
	d *Descriptor

	blind *scalar.Element

	unblindW *weierstrass.JacobianPoint
	unblindE *edwards.Point
}

// NewContext returns an unblinded Context for d.
func NewContext(d *Descriptor) *Context {
	ctx := &Context{d: d}
	ctx.reset()
	return ctx
}

func (ctx *Context) reset() {
	switch ctx.d.Family {
	case FamilyWeierstrass:
		c := ctx.d.Weierstrass
		ctx.blind = c.S.Element()
		ctx.unblindW = c.NewJacobianPoint().Identity(c)
	case FamilyEdwards:
		c := ctx.d.Edwards
		ctx.blind = c.S.Element()
		ctx.unblindE = c.NewPoint().Identity(c)
	default:
		// Montgomery curves are used exclusively as X-only Diffie-Hellman
		// ladders (spec.md §4.4): there is no base-point comb/scalar-mult
		// contract for a secret scalar that additive blinding like this
		// protects, so Context carries no blinding state for this family.
		ctx.blind = nil
	}
}

// Descriptor returns the curve d this Context blinds.
func (ctx *Context) Descriptor() *Descriptor { return ctx.d }

// Randomize refreshes the blinding state from entropy, which MUST be 32
// bytes of fresh randomness (spec.md §5's "32 bytes per randomize call").
// It is the only Context mutator.
func (ctx *Context) Randomize(rand io.Reader) error {
	if ctx.blind == nil {
		return errors.New("curve: family has no blinding state")
	}

	var seed [32]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return err
	}

	switch ctx.d.Family {
	case FamilyWeierstrass:
		c := ctx.d.Weierstrass
		b, err := sampleBlindScalar(c.S, seed[:])
		if err != nil {
			return err
		}
		negB := c.S.Element().Negate(b)
		ctx.blind = b
		ctx.unblindW = c.NewJacobianPoint().ScalarBaseMult(c, negB)
	case FamilyEdwards:
		c := ctx.d.Edwards
		b, err := sampleBlindScalar(c.S, seed[:])
		if err != nil {
			return err
		}
		negB := c.S.Element().Negate(b)
		ctx.blind = b
		ctx.unblindE = c.NewPoint().ScalarBaseMult(c, negB)
	}
	return nil
}

// sampleBlindScalar derives a scalar from seed via internal/drbg.Hedge
// (cSHAKE256 over seed, a counter byte and fresh crypto/rand entropy),
// rejecting and re-deriving with the next counter value on the
// astronomically unlikely chance of an out-of-range sample.
func sampleBlindScalar(s *scalar.Field, seed []byte) (*scalar.Element, error) {
	const maxResamples = 8

	byteLen := s.ByteLen()
	buf := make([]byte, byteLen)
	e := s.Element()
	for i := 0; i < maxResamples; i++ {
		r, err := drbg.Hedge(nil, "curve-context-randomize", seed, []byte{byte(i)})
		if err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		_, didReduce := s.SetBytes(e, buf)
		if didReduce == 0 && e.IsZero() == 0 {
			return e, nil
		}
	}
	return nil, errors.New("curve: failed to sample blind scalar")
}

// BlindScalar returns blind + k (mod n), for use by a blinded base-point
// scalar multiplication: `BlindScalar(k) * G + UnblindWeierstrass()`
// (or `UnblindEdwards()`) equals `k * G`.
func (ctx *Context) BlindScalar(k *scalar.Element) *scalar.Element {
	if ctx.blind == nil {
		return k
	}
	out := k.Field().Element()
	out.Add(k, ctx.blind)
	return out
}

// UnblindWeierstrass returns `G * (-blind)` for a Weierstrass Context.
func (ctx *Context) UnblindWeierstrass() *weierstrass.JacobianPoint {
	return ctx.unblindW
}

// UnblindEdwards returns `G * (-blind)` for an Edwards Context.
func (ctx *Context) UnblindEdwards() *edwards.Point {
	return ctx.unblindE
}
