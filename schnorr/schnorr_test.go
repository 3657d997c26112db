// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package schnorr

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/crypto-core/ecc-core/curve"
)

const testMessage = "Most lawyers couldn't recognize a Ponzi scheme if they were having dinner with Charles Ponzi."

func testCurve() *curve.Descriptor {
	return curve.MustLookup("secp256k1")
}

func genPrivateKey(t *testing.T, d *curve.Descriptor) *PrivateKey {
	c, err := wParams(d)
	require.NoError(t, err)
	s, err := c.S.Random(rand.Reader)
	require.NoError(t, err)
	k, err := newPrivateKeyFromScalar(d, c, s)
	require.NoError(t, err)
	return k
}

func TestSchnorrLegacy(t *testing.T) {
	d := testCurve()
	priv := genPrivateKey(t, d)
	msg := []byte(testMessage)

	sig, err := priv.Sign(msg)
	require.NoError(t, err, "Sign")

	pub := priv.PublicKey()
	require.True(t, pub.Verify(msg, sig), "Verify")

	tmp := bytes.Clone(sig)
	tmp[0] ^= 0x69
	require.False(t, pub.Verify(msg, tmp), "Verify - corrupted sig")
	require.False(t, pub.Verify([]byte("wrong message"), sig), "Verify - wrong message")

	roundTrip, err := NewPublicKey(d, pub.Bytes())
	require.NoError(t, err, "NewPublicKey")
	require.True(t, pub.Equal(roundTrip), "pub.Equal(roundTrip)")
}

func TestSchnorrBIP340(t *testing.T) {
	d := testCurve()
	priv := genPrivateKey(t, d)
	msg := []byte(testMessage)

	bipPub, err := priv.BIPPublicKey()
	require.NoError(t, err, "BIPPublicKey")

	sig, err := priv.SignBIP(msg)
	require.NoError(t, err, "SignBIP")
	require.True(t, bipPub.Verify(msg, sig), "Verify")

	tmp := bytes.Clone(sig)
	tmp[len(tmp)-1] ^= 0x69
	require.False(t, bipPub.Verify(msg, tmp), "Verify - corrupted sig")

	roundTrip, err := NewBIPPublicKey(d, bipPub.Bytes())
	require.NoError(t, err, "NewBIPPublicKey")
	require.True(t, bipPub.Equal(roundTrip), "bipPub.Equal(roundTrip)")
}

func TestSchnorrBIP340BatchVerify(t *testing.T) {
	d := testCurve()
	const n = 8

	items := make([]BatchItem, n)
	for i := 0; i < n; i++ {
		priv := genPrivateKey(t, d)
		msg := []byte{byte(i), 'm', 's', 'g'}

		bipPub, err := priv.BIPPublicKey()
		require.NoError(t, err)
		sig, err := priv.SignBIP(msg)
		require.NoError(t, err)

		items[i] = BatchItem{PublicKey: bipPub, Message: msg, Signature: sig}
	}

	ok, err := VerifyBatch(d, items, rand.Reader)
	require.NoError(t, err)
	require.True(t, ok, "valid batch should verify")

	items[3].Signature = bytes.Clone(items[3].Signature)
	items[3].Signature[0] ^= 0x69
	ok, err = VerifyBatch(d, items, rand.Reader)
	require.NoError(t, err)
	require.False(t, ok, "batch with one corrupted sig should fail")
}

func TestSchnorrWrongFamily(t *testing.T) {
	d := curve.MustLookup("Ed25519")
	_, err := NewPrivateKey(d, make([]byte, 32))
	require.ErrorIs(t, err, errWrongFamily)
}
