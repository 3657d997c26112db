// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package ecdh

import (
	"errors"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/field"
)

// ToEdwardsPoint converts k (an X25519/X448 public key) to the Edwards
// point on its twin curve (Ed25519/Ed448 respectively), per spec.md
// §4.11's "utilities for converting between Montgomery and Edwards
// representations". A Montgomery u-coordinate alone does not determine
// the sign of v (the Montgomery ladder is X-only throughout ECDH), so
// oddV selects which of the two curve-equation roots to use, matching
// the sign-bit convention real X25519<->Ed25519 key-conversion tools
// require the caller to supply out of band.
func ToEdwardsPoint(k *PublicKey, oddV bool) (x, y *field.Element, err error) {
	d := k.curve
	mc, err := mParams(d)
	if err != nil {
		return nil, nil, err
	}

	u, err := mc.SetUBytes(k.bytes)
	if err != nil {
		return nil, nil, err
	}
	v, err := recoverV(mc.F, mc.A, u, oddV)
	if err != nil {
		return nil, nil, err
	}

	switch d.ID {
	case "X25519":
		dd, ok := curve.Lookup("Ed25519")
		if !ok || dd.Iso == nil {
			return nil, nil, errors.New("ecdh: Ed25519 twin not registered")
		}
		x, y = dd.Iso.MontgomeryToEdwards(mc.F, u, v)
	case "X448":
		dd, ok := curve.Lookup("Ed448")
		if !ok || dd.Iso4 == nil {
			return nil, nil, errors.New("ecdh: Ed448 twin not registered")
		}
		x, y = dd.Iso4.MontgomeryToEdwards(mc.F, u, v)
	default:
		return nil, nil, errors.New("ecdh: curve has no registered Edwards twin")
	}
	return x, y, nil
}

// ToEdwardsPublicKey converts k to a serialized Edwards public key on its
// twin curve, via ToEdwardsPoint followed by the twin curve's own
// compressed point encoding.
func ToEdwardsPublicKey(k *PublicKey, oddV bool) ([]byte, error) {
	d := k.curve
	var edID string
	switch d.ID {
	case "X25519":
		edID = "Ed25519"
	case "X448":
		edID = "Ed448"
	default:
		return nil, errors.New("ecdh: curve has no registered Edwards twin")
	}
	edDesc, ok := curve.Lookup(edID)
	if !ok {
		return nil, errors.New("ecdh: Edwards twin not registered")
	}

	x, y, err := ToEdwardsPoint(k, oddV)
	if err != nil {
		return nil, err
	}
	p := edDesc.Edwards.NewPoint().FromAffine(edDesc.Edwards, x, y)
	return p.Bytes(), nil
}

// recoverV solves v^2 = u^3 + A*u^2 + u for v (B assumed 1, per spec.md
// §4.4's Montgomery curve family), returning the root whose parity
// matches oddV.
func recoverV(f *field.Field, a, u *field.Element, oddV bool) (*field.Element, error) {
	u2 := f.Element().Square(u)
	u3 := f.Element().Multiply(u2, u)
	au2 := f.Element().Multiply(a, u2)
	rhs := f.Element().Add(u3, au2)
	rhs.Add(rhs, u)

	v, isSquare := f.Element().Sqrt(rhs)
	if isSquare == 0 {
		return nil, errors.New("ecdh: u is not on curve")
	}
	if (v.IsOdd() == 1) != oddV {
		v.Negate(v)
	}
	return v, nil
}
