// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package drbg implements the HMAC-DRBG (NIST SP 800-90A) the core
// consumes as its `init(algo, seed, seed_len)` / `generate(out, out_len)`
// collaborator (spec.md §6.4), plus the cSHAKE256-based nonce-hedging
// idiom the teacher's `secec.mitigateDebianAndSony` demonstrates (Hedge,
// which uses cSHAKE256 for every curve; the curve's pinned hash is not
// consulted). HMACDRBG takes its hash constructor from the caller.
package drbg

import (
	"crypto/hmac"
	"errors"
	"hash"
)

var errEntropySource = errors.New("drbg: entropy source failure")

// HMACDRBG implements the HMAC_DRBG mechanism of NIST SP 800-90A §10.1.2,
// without a dedicated reseed counter (this library always reinstantiates
// rather than reseeding a long-lived generator, matching spec.md §6.4's
// "seed a DRBG ... repeat until a valid (k, r, s) is produced" usage
// pattern).
type HMACDRBG struct {
	newHash func() hash.Hash
	k       []byte
	v       []byte
}

// NewHMACDRBG instantiates an HMAC_DRBG from seed material (entropy
// concatenated with any additional input), per SP 800-90A §10.1.2.3.
func NewHMACDRBG(newHash func() hash.Hash, seed []byte) *HMACDRBG {
	outLen := newHash().Size()
	d := &HMACDRBG{
		newHash: newHash,
		k:       make([]byte, outLen),
		v:       make([]byte, outLen),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	d.update(seed)
	return d
}

func (d *HMACDRBG) update(providedData []byte) {
	mac := hmac.New(d.newHash, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x00})
	mac.Write(providedData)
	d.k = mac.Sum(nil)

	mac = hmac.New(d.newHash, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)

	if len(providedData) == 0 {
		return
	}

	mac = hmac.New(d.newHash, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x01})
	mac.Write(providedData)
	d.k = mac.Sum(nil)

	mac = hmac.New(d.newHash, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)
}

// Generate writes exactly len(out) pseudorandom bytes, per SP 800-90A
// §10.1.2.5's generate algorithm (no additional input branch; this
// library always re-instantiates for each distinct generation instead).
func (d *HMACDRBG) Generate(out []byte) {
	n := 0
	for n < len(out) {
		mac := hmac.New(d.newHash, d.k)
		mac.Write(d.v)
		d.v = mac.Sum(nil)
		n += copy(out[n:], d.v)
	}
	d.update(nil)
}

// Read implements io.Reader by repeatedly calling Generate, so an
// HMACDRBG can be handed directly to scalar-field rejection sampling.
func (d *HMACDRBG) Read(p []byte) (int, error) {
	d.Generate(p)
	return len(p), nil
}
