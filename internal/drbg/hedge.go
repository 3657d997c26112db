// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package drbg

import (
	csrand "crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/sha3"
)

// wantedEntropyBytes matches the teacher's mitigateDebianAndSony: 256
// bits of fresh entropy mixed into every hedged nonce derivation.
const wantedEntropyBytes = 32

// Hedge mixes fresh entropy from rand, the domain-separation string ctx,
// and the secret/message-dependent seed material into a cSHAKE256 XOF,
// following the teacher's `mitigateDebianAndSony`: RFC 6979-style nonce
// determinism, strengthened against the documented bias attacks on pure
// HMAC-DRBG/RFC 6979 generation (eprint.iacr.org/2020/615,
// eprint.iacr.org/2019/1155) by folding in independent entropy per call.
// Returns an io.Reader suitable for rejection-sampling a scalar.
func Hedge(rand io.Reader, ctx string, seeds ...[]byte) (io.Reader, error) {
	if rand == nil {
		rand = csrand.Reader
	}

	var tmp [wantedEntropyBytes]byte
	if _, err := io.ReadFull(rand, tmp[:]); err != nil {
		return nil, errors.Join(errEntropySource, err)
	}

	xof := sha3.NewCShake256(nil, []byte(ctx))
	for _, s := range seeds {
		_, _ = xof.Write(s)
	}
	_, _ = xof.Write(tmp[:])
	return xof, nil
}
