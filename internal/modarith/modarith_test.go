// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package modarith

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustToyModulus() *Modulus {
	return NewModulus(big.NewInt(97), 1)
}

func TestModarithArithmetic(t *testing.T) {
	m := mustToyModulus()
	a := m.Element()
	m.SetBigInt(a, big.NewInt(11))
	b := m.Element()
	m.SetBigInt(b, big.NewInt(5))

	sum := m.Element().Add(a, b)
	require.EqualValues(t, big.NewInt(16), sum.BigInt())

	diff := m.Element().Sub(a, b)
	require.EqualValues(t, big.NewInt(6), diff.BigInt())

	prod := m.Element().Multiply(a, b)
	require.EqualValues(t, big.NewInt(55), prod.BigInt())

	neg := m.Element().Negate(a)
	require.EqualValues(t, new(big.Int).Sub(m.BigInt(), big.NewInt(11)), neg.BigInt())

	require.EqualValues(t, uint64(1), a.Equal(a))
	require.EqualValues(t, uint64(0), a.Equal(b))
}

func TestModarithInvert(t *testing.T) {
	m := mustToyModulus()
	a := m.Element()
	m.SetBigInt(a, big.NewInt(42))

	inv := m.Element().Invert(a)
	one := m.Element().Multiply(a, inv)
	require.EqualValues(t, uint64(1), one.Equal(m.One()))

	invVar, ok := m.Element().InvertVar(a)
	require.True(t, ok)
	require.EqualValues(t, uint64(1), inv.Equal(invVar))
}

func TestModarithPow(t *testing.T) {
	m := mustToyModulus()
	a := m.Element()
	m.SetBigInt(a, big.NewInt(3))

	got := m.Element().Pow(a, big.NewInt(5))
	require.EqualValues(t, big.NewInt(3*3*3*3*3%97), got.BigInt())

	squared := m.Element().Pow2k(a, 1)
	require.EqualValues(t, uint64(1), squared.Equal(m.Element().Square(a)))
}

func TestModarithBytesRoundTrip(t *testing.T) {
	m := mustToyModulus()
	a := m.Element()
	m.SetBigInt(a, big.NewInt(42))

	b := a.Bytes()
	require.Len(t, b, 1)

	back, err := m.SetCanonicalBytes(m.Element(), b)
	require.NoError(t, err)
	require.EqualValues(t, uint64(1), back.Equal(a))
}

func TestModarithSetCanonicalBytesRejectsOutOfRange(t *testing.T) {
	m := mustToyModulus()
	_, err := m.SetCanonicalBytes(m.Element(), []byte{97})
	require.Error(t, err)
}

func TestModarithConditionalSelect(t *testing.T) {
	m := mustToyModulus()
	a := m.Element()
	m.SetBigInt(a, big.NewInt(1))
	b := m.Element()
	m.SetBigInt(b, big.NewInt(2))

	sel0 := m.Element().ConditionalSelect(a, b, 0)
	require.EqualValues(t, uint64(1), sel0.Equal(a))
	sel1 := m.Element().ConditionalSelect(a, b, 1)
	require.EqualValues(t, uint64(1), sel1.Equal(b))
}

func TestModarithConditionalNegate(t *testing.T) {
	m := mustToyModulus()
	a := m.Element()
	m.SetBigInt(a, big.NewInt(11))

	same := m.Element().ConditionalNegate(a, 0)
	require.EqualValues(t, uint64(1), same.Equal(a))

	negated := m.Element().ConditionalNegate(a, 1)
	require.EqualValues(t, uint64(1), negated.Equal(m.Element().Negate(a)))
}

func TestModarithSetWideBytesReduces(t *testing.T) {
	m := mustToyModulus()
	wide := make([]byte, 16)
	wide[15] = 200 // 200 mod 97 == 6

	got := m.SetWideBytes(m.Element(), wide)
	require.EqualValues(t, big.NewInt(6), got.BigInt())
}
