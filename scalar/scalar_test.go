// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package scalar

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustSecp256k1N() *Field {
	n, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	return NewField(n, 32)
}

func TestScalarArithmetic(t *testing.T) {
	f := mustSecp256k1N()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(9))
	b := f.Element()
	f.SetBigInt(b, big.NewInt(4))

	require.EqualValues(t, big.NewInt(13), f.Element().Add(a, b).BigInt())
	require.EqualValues(t, big.NewInt(5), f.Element().Subtract(a, b).BigInt())
	require.EqualValues(t, big.NewInt(36), f.Element().Multiply(a, b).BigInt())
}

func TestScalarInvert(t *testing.T) {
	f := mustSecp256k1N()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(12345))

	inv := f.Element().Invert(a)
	one := f.Element().Multiply(a, inv)
	require.EqualValues(t, uint64(1), one.Equal(f.Element().One()))

	invVar, ok := f.Element().InvertVar(a)
	require.True(t, ok)
	require.EqualValues(t, uint64(1), inv.Equal(invVar))
}

func TestScalarMinimizeAndHalfN(t *testing.T) {
	f := mustSecp256k1N()
	nMinus1 := new(big.Int).Sub(f.N(), big.NewInt(1))
	a := f.Element()
	f.SetBigInt(a, nMinus1)

	require.EqualValues(t, uint64(1), a.IsGreaterThanHalfN())

	min, sign := f.Element().Minimize(a)
	require.EqualValues(t, uint64(1), sign)
	require.EqualValues(t, big.NewInt(1), min.BigInt())
}

func TestScalarNAF(t *testing.T) {
	f := mustSecp256k1N()
	k := f.Element()
	f.SetBigInt(k, big.NewInt(0xABCDE))

	for _, w := range []uint{2, 3, 4, 5, 8} {
		digits := k.NAF(w)
		// NAF digits must reconstruct k, and no two consecutive non-zero
		// digits may appear (the defining property of "non-adjacent").
		sum := new(big.Int)
		pow := new(big.Int).SetInt64(1)
		for i, d := range digits {
			if d != 0 {
				term := new(big.Int).Mul(big.NewInt(int64(d)), pow)
				sum.Add(sum, term)
				if i > 0 {
					require.Zero(t, digits[i-1], "width %d: adjacent non-zero digits at %d", w, i)
				}
			}
			pow.Lsh(pow, 1)
		}
		require.EqualValues(t, k.BigInt(), sum, "width %d", w)
	}
}

func TestScalarJSF(t *testing.T) {
	f := mustSecp256k1N()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(0x123456))
	b := f.Element()
	f.SetBigInt(b, big.NewInt(0xABCDEF))

	digits := JSF(a, b)

	sum0 := new(big.Int)
	sum1 := new(big.Int)
	pow := new(big.Int).SetInt64(1)
	for _, d := range digits {
		if d.D0 != 0 {
			sum0.Add(sum0, new(big.Int).Mul(big.NewInt(int64(d.D0)), pow))
		}
		if d.D1 != 0 {
			sum1.Add(sum1, new(big.Int).Mul(big.NewInt(int64(d.D1)), pow))
		}
		pow.Lsh(pow, 1)
	}
	require.EqualValues(t, a.BigInt(), sum0)
	require.EqualValues(t, b.BigInt(), sum1)
}

func TestScalarMulShift(t *testing.T) {
	f := mustSecp256k1N()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(1000000))
	b := f.Element()
	f.SetBigInt(b, big.NewInt(3))

	got := f.Element().MulShift(a, b, 10)
	want := new(big.Int).Mul(big.NewInt(1000000), big.NewInt(3))
	want.Add(want, big.NewInt(1<<9))
	want.Rsh(want, 10)
	require.EqualValues(t, want, got.BigInt())
}

func TestScalarBytesRoundTrip(t *testing.T) {
	f := mustSecp256k1N()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(999999999))

	b := a.Bytes()
	require.Len(t, b, 32)

	back, err := f.SetCanonicalBytes(f.Element(), b)
	require.NoError(t, err)
	require.EqualValues(t, uint64(1), back.Equal(a))
}

func TestScalarRandomIsReduced(t *testing.T) {
	f := mustSecp256k1N()
	s, err := f.Random(nil)
	require.NoError(t, err)
	require.EqualValues(t, uint64(0), s.IsZero())
	require.True(t, s.BigInt().Cmp(f.N()) < 0)
}
