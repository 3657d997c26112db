// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package ecdh

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/crypto-core/ecc-core/curve"
)

func testCurves() []*curve.Descriptor {
	return []*curve.Descriptor{
		curve.MustLookup("X25519"),
		curve.MustLookup("X448"),
	}
}

func TestECDH(t *testing.T) {
	for _, d := range testCurves() {
		d := d
		t.Run(d.ID, func(t *testing.T) {
			alice, err := GenerateKey(d, rand.Reader)
			require.NoError(t, err, "GenerateKey - Alice")
			bob, err := GenerateKey(d, rand.Reader)
			require.NoError(t, err, "GenerateKey - Bob")

			alicePub, err := NewPublicKey(d, alice.PublicKey().Bytes())
			require.NoError(t, err, "NewPublicKey - Alice")
			bobPub, err := NewPublicKey(d, bob.PublicKey().Bytes())
			require.NoError(t, err, "NewPublicKey - Bob")

			aliceShared, err := alice.ECDH(bobPub)
			require.NoError(t, err, "ECDH - Alice")
			bobShared, err := bob.ECDH(alicePub)
			require.NoError(t, err, "ECDH - Bob")

			require.True(t, bytes.Equal(aliceShared, bobShared), "shared secrets should match")

			require.True(t, alice.PublicKey().Equal(alicePub), "PublicKey.Equal")
		})
	}
}

func TestECDHLowOrder(t *testing.T) {
	d := curve.MustLookup("X25519")
	zero := make([]byte, 32)
	low, err := IsLowOrder(d, zero)
	require.NoError(t, err)
	require.True(t, low, "all-zero u is low-order")

	alice, err := GenerateKey(d, rand.Reader)
	require.NoError(t, err)
	low, err = IsLowOrder(d, alice.PublicKey().Bytes())
	require.NoError(t, err)
	require.False(t, low, "a random public key should not be low-order")
}

func TestECDHWrongFamily(t *testing.T) {
	d := curve.MustLookup("secp256k1")
	_, err := GenerateKey(d, rand.Reader)
	require.ErrorIs(t, err, errWrongFamily)
}

func TestECDHConvertToEdwards(t *testing.T) {
	for _, tc := range []struct{ mont, ed string }{
		{"X25519", "Ed25519"},
		{"X448", "Ed448"},
	} {
		tc := tc
		t.Run(tc.mont, func(t *testing.T) {
			d := curve.MustLookup(tc.mont)
			k, err := GenerateKey(d, rand.Reader)
			require.NoError(t, err)

			edBytes, err := ToEdwardsPublicKey(k.PublicKey(), false)
			require.NoError(t, err)

			edDesc := curve.MustLookup(tc.ed)
			_, err = edDesc.Edwards.SetBytes(edDesc.Edwards.NewPoint(), edBytes)
			require.NoError(t, err, "converted point should decode on the Edwards twin")
		})
	}
}
