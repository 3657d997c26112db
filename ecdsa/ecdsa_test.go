// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package ecdsa

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/crypto-core/ecc-core/curve"
)

const testMessage = "Most lawyers couldn't recognize a Ponzi scheme if they were having dinner with Charles Ponzi."

func testMessageHash() []byte {
	h := sha256.Sum256([]byte(testMessage))
	return h[:]
}

func testCurves() []*curve.Descriptor {
	return []*curve.Descriptor{
		curve.MustLookup("secp256k1"),
		curve.MustLookup("P-256"),
	}
}

func TestECDSA(t *testing.T) {
	for _, d := range testCurves() {
		d := d
		t.Run(d.ID, func(t *testing.T) {
			hash := testMessageHash()

			priv, err := GenerateKey(d, rand.Reader)
			require.NoError(t, err, "GenerateKey")

			pub := priv.PublicKey()

			sig, err := priv.SignASN1(rand.Reader, hash)
			require.NoError(t, err, "SignASN1")
			require.True(t, pub.VerifyASN1(hash, sig), "VerifyASN1")

			tmp := bytes.Clone(sig)
			tmp[0] ^= 0x69
			require.False(t, pub.VerifyASN1(hash, tmp), "VerifyASN1 - corrupted sig")

			tmp = bytes.Clone(hash)
			tmp[0] ^= 0x69
			require.False(t, pub.VerifyASN1(tmp, sig), "VerifyASN1 - corrupted hash")

			r, s, _, err := priv.Sign(rand.Reader, hash)
			require.NoError(t, err, "Sign")
			require.True(t, pub.Verify(hash, r, s), "Verify")

			require.True(t, s.IsGreaterThanHalfN() == 0, "s should be low-s normalized")

			roundTrip, err := NewPublicKey(d, pub.Bytes())
			require.NoError(t, err, "NewPublicKey")
			require.True(t, pub.Equal(roundTrip), "pub.Equal(roundTrip)")

			privBytes := priv.Bytes()
			priv2, err := NewPrivateKey(d, privBytes)
			require.NoError(t, err, "NewPrivateKey")
			require.True(t, priv.Equal(priv2), "priv.Equal(priv2)")
		})
	}
}

func TestECDSARecover(t *testing.T) {
	d := curve.MustLookup("secp256k1")
	hash := testMessageHash()

	priv, err := GenerateKey(d, rand.Reader)
	require.NoError(t, err, "GenerateKey")

	r, s, recoveryID, err := priv.Sign(rand.Reader, hash)
	require.NoError(t, err, "Sign")

	q, err := RecoverPublicKey(d, hash, r, s, recoveryID)
	require.NoError(t, err, "RecoverPublicKey")
	require.True(t, priv.PublicKey().Equal(q), "recovered key matches")

	_, err = RecoverPublicKey(d, hash, r, s, recoveryID+27)
	require.Error(t, err, "RecoverPublicKey - bad recovery id")
}

func TestECDSAWrongFamily(t *testing.T) {
	d := curve.MustLookup("X25519")
	_, err := GenerateKey(d, rand.Reader)
	require.ErrorIs(t, err, errWrongFamily)
}

func TestECDSALaxVsStrictDER(t *testing.T) {
	d := curve.MustLookup("secp256k1")
	hash := testMessageHash()

	priv, err := GenerateKey(d, rand.Reader)
	require.NoError(t, err)
	sig, err := priv.SignASN1(rand.Reader, hash)
	require.NoError(t, err)

	pub := priv.PublicKey()
	require.True(t, pub.VerifyASN1(hash, sig))
	require.True(t, pub.VerifyASN1Lax(hash, sig))
}
