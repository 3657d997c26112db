// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package asn1

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAndReadStrictRoundTrip(t *testing.T) {
	r := big.NewInt(12345).Bytes()
	s := big.NewInt(67890).Bytes()

	sig := BuildSignature(r, s)
	rGot, sGot, err := ReadSignatureStrict(sig)
	require.NoError(t, err)
	require.True(t, bytes.Equal(r, bytes.TrimLeft(rGot, "\x00")))
	require.True(t, bytes.Equal(s, bytes.TrimLeft(sGot, "\x00")))
}

func TestReadSignatureStrictRejectsTrailingGarbage(t *testing.T) {
	sig := BuildSignature(big.NewInt(1).Bytes(), big.NewInt(2).Bytes())
	sig = append(sig, 0xDE, 0xAD)

	_, _, err := ReadSignatureStrict(sig)
	require.ErrorIs(t, err, ErrMalformedSignature)
}

func TestReadSignatureLaxToleratesTrailingGarbage(t *testing.T) {
	sig := BuildSignature(big.NewInt(1).Bytes(), big.NewInt(2).Bytes())
	withGarbage := append(bytes.Clone(sig), 0xDE, 0xAD)

	r, s, err := ReadSignatureLax(withGarbage)
	require.NoError(t, err)
	require.EqualValues(t, big.NewInt(1), new(big.Int).SetBytes(r))
	require.EqualValues(t, big.NewInt(2), new(big.Int).SetBytes(s))
}

func TestReadSignatureLaxRejectsMalformed(t *testing.T) {
	_, _, err := ReadSignatureLax([]byte{0x30, 0x02, 0x01})
	require.ErrorIs(t, err, ErrMalformedSignature)
}

func TestCanonicalScalarBytes(t *testing.T) {
	out, err := CanonicalScalarBytes([]byte{0x01, 0x02}, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0x01, 0x02}, out)

	_, err = CanonicalScalarBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05}, 4)
	require.ErrorIs(t, err, ErrInvalidInteger)
}
