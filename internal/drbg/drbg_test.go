// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package drbg

import (
	"bytes"
	"crypto/sha256"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHMACDRBGDeterministic(t *testing.T) {
	seed := []byte("fixed seed material")

	d1 := NewHMACDRBG(sha256.New, seed)
	out1 := make([]byte, 64)
	d1.Generate(out1)

	d2 := NewHMACDRBG(sha256.New, seed)
	out2 := make([]byte, 64)
	d2.Generate(out2)

	require.True(t, bytes.Equal(out1, out2), "same seed should produce identical output streams")
}

func TestHMACDRBGDifferentSeedsDiffer(t *testing.T) {
	d1 := NewHMACDRBG(sha256.New, []byte("seed a"))
	d2 := NewHMACDRBG(sha256.New, []byte("seed b"))

	out1 := make([]byte, 32)
	out2 := make([]byte, 32)
	d1.Generate(out1)
	d2.Generate(out2)

	require.False(t, bytes.Equal(out1, out2))
}

func TestHMACDRBGReadInterface(t *testing.T) {
	d := NewHMACDRBG(sha256.New, []byte("seed"))
	var r io.Reader = d

	buf := make([]byte, 100)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 100, n)
}

func TestHedgeDeterministicGivenSameRandAndSeeds(t *testing.T) {
	rand := bytes.NewReader(bytes.Repeat([]byte{0x42}, 32))
	r1, err := Hedge(rand, "test-ctx", []byte("seed material"))
	require.NoError(t, err)

	rand2 := bytes.NewReader(bytes.Repeat([]byte{0x42}, 32))
	r2, err := Hedge(rand2, "test-ctx", []byte("seed material"))
	require.NoError(t, err)

	out1 := make([]byte, 32)
	out2 := make([]byte, 32)
	_, err = io.ReadFull(r1, out1)
	require.NoError(t, err)
	_, err = io.ReadFull(r2, out2)
	require.NoError(t, err)

	require.True(t, bytes.Equal(out1, out2))
}

func TestHedgeDiffersByContext(t *testing.T) {
	fixedRand := func() io.Reader { return bytes.NewReader(bytes.Repeat([]byte{0x01}, 32)) }

	r1, err := Hedge(fixedRand(), "ctx-a", []byte("seed"))
	require.NoError(t, err)
	r2, err := Hedge(fixedRand(), "ctx-b", []byte("seed"))
	require.NoError(t, err)

	out1 := make([]byte, 32)
	out2 := make([]byte, 32)
	_, _ = io.ReadFull(r1, out1)
	_, _ = io.ReadFull(r2, out2)

	require.False(t, bytes.Equal(out1, out2), "distinct context strings should domain-separate the output")
}

func TestHedgeEntropySourceFailure(t *testing.T) {
	_, err := Hedge(bytes.NewReader(nil), "ctx", []byte("seed"))
	require.ErrorIs(t, err, errEntropySource)
}
