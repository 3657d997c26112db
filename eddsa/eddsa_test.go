// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package eddsa

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/crypto-core/ecc-core/curve"
)

func testCurves() []*curve.Descriptor {
	return []*curve.Descriptor{
		curve.MustLookup("Ed25519"),
		curve.MustLookup("Ed448"),
	}
}

func genSeed(t *testing.T, d *curve.Descriptor) []byte {
	c, err := eParams(d)
	require.NoError(t, err)
	seed := make([]byte, c.S.ByteLen())
	_, err = io.ReadFull(rand.Reader, seed)
	require.NoError(t, err)
	return seed
}

func TestEdDSASignVerify(t *testing.T) {
	for _, d := range testCurves() {
		d := d
		t.Run(d.ID, func(t *testing.T) {
			priv, err := NewPrivateKey(d, genSeed(t, d))
			require.NoError(t, err, "NewPrivateKey")

			msg := []byte("Most lawyers couldn't recognize a Ponzi scheme.")

			sig, err := priv.Sign(msg, SignOptions{})
			require.NoError(t, err, "Sign")

			pub := priv.PublicKey()
			require.True(t, pub.Verify(msg, sig, SignOptions{}), "Verify")
			require.True(t, pub.VerifyCofactor(msg, sig, SignOptions{}), "VerifyCofactor")

			tmp := bytes.Clone(sig)
			tmp[0] ^= 0x69
			require.False(t, pub.Verify(msg, tmp, SignOptions{}), "Verify - corrupted sig")
			require.False(t, pub.Verify([]byte("wrong"), sig, SignOptions{}), "Verify - wrong message")

			roundTrip, err := NewPublicKey(d, pub.Bytes())
			require.NoError(t, err, "NewPublicKey")
			require.True(t, pub.Equal(roundTrip), "pub.Equal(roundTrip)")
		})
	}
}

func TestEdDSAContextAndPrehash(t *testing.T) {
	for _, d := range testCurves() {
		d := d
		t.Run(d.ID, func(t *testing.T) {
			priv, err := NewPrivateKey(d, genSeed(t, d))
			require.NoError(t, err)

			msg := []byte("context-separated message")
			opts := SignOptions{Context: []byte("test-context")}

			sig, err := priv.Sign(msg, opts)
			require.NoError(t, err)
			require.True(t, priv.PublicKey().Verify(msg, sig, opts), "Verify with matching context")
			require.False(t, priv.PublicKey().Verify(msg, sig, SignOptions{}), "Verify with missing context should fail")

			phOpts := SignOptions{Prehash: true}
			phSig, err := priv.Sign(msg, phOpts)
			require.NoError(t, err, "Sign - prehash")
			require.True(t, priv.PublicKey().Verify(msg, phSig, phOpts), "Verify - prehash")
		})
	}
}

func TestEdDSABatchVerify(t *testing.T) {
	for _, d := range testCurves() {
		d := d
		t.Run(d.ID, func(t *testing.T) {
			const n = 8
			items := make([]BatchItem, n)
			for i := 0; i < n; i++ {
				priv, err := NewPrivateKey(d, genSeed(t, d))
				require.NoError(t, err)
				msg := []byte{byte(i), 'm', 's', 'g'}
				sig, err := priv.Sign(msg, SignOptions{})
				require.NoError(t, err)
				items[i] = BatchItem{PublicKey: priv.PublicKey(), Message: msg, Signature: sig}
			}

			ok, err := VerifyBatch(d, items, rand.Reader)
			require.NoError(t, err)
			require.True(t, ok, "valid batch should verify")

			items[2].Signature = bytes.Clone(items[2].Signature)
			items[2].Signature[0] ^= 0x69
			ok, err = VerifyBatch(d, items, rand.Reader)
			require.NoError(t, err)
			require.False(t, ok, "batch with one corrupted sig should fail")
		})
	}
}

func TestEdDSAWrongFamily(t *testing.T) {
	d := curve.MustLookup("secp256k1")
	_, err := NewPrivateKey(d, make([]byte, 32))
	require.ErrorIs(t, err, errWrongFamily)
}

func TestClampEd448DoesNotIndexOutOfBounds(t *testing.T) {
	s := make([]byte, 56)
	for i := range s {
		s[i] = 0xff
	}
	clampEd448(s)
	require.EqualValues(t, 0xfc, s[0])
	require.EqualValues(t, 0xff, s[55])
}
