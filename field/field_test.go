// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustP256() *Field {
	p, _ := new(big.Int).SetString("115792089210356248762697446949407573530086143415290314195533631308867097853951", 10)
	return NewField(p, 32, 0, Sqrt3Mod4)
}

func mustP25519() *Field {
	p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	return NewField(p, 32, 0, Sqrt5Mod8)
}

// A small p ≡ 1 (mod 8) prime to exercise the generic Tonelli-Shanks path
// with a small modulus. Among the registered curves only P-224 (whose
// prime is also 1 mod 8) takes this path; the others use the two faster
// special-case branches.
func mustToyTonelliShanks() *Field {
	p := big.NewInt(41) // 41 = 8*5+1
	return NewField(p, 1, 0, SqrtTonelliShanks)
}

func TestFieldArithmetic(t *testing.T) {
	f := mustP256()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(7))
	b := f.Element()
	f.SetBigInt(b, big.NewInt(5))

	sum := f.Element().Add(a, b)
	require.EqualValues(t, big.NewInt(12), sum.BigInt())

	diff := f.Element().Subtract(a, b)
	require.EqualValues(t, big.NewInt(2), diff.BigInt())

	prod := f.Element().Multiply(a, b)
	require.EqualValues(t, big.NewInt(35), prod.BigInt())

	neg := f.Element().Negate(a)
	require.EqualValues(t, new(big.Int).Sub(f.P(), big.NewInt(7)), neg.BigInt())

	require.EqualValues(t, uint64(1), a.Equal(a))
	require.EqualValues(t, uint64(0), a.Equal(b))
}

func TestFieldInvert(t *testing.T) {
	f := mustP256()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(1234567))

	inv := f.Element().Invert(a)
	one := f.Element().Multiply(a, inv)
	require.EqualValues(t, uint64(1), one.Equal(f.Element().One()))

	invVar, ok := f.Element().InvertVar(a)
	require.True(t, ok)
	require.EqualValues(t, uint64(1), inv.Equal(invVar))
}

func TestFieldSqrt3Mod4(t *testing.T) {
	f := mustP256()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(16))

	root, isSquare := f.Element().Sqrt(a)
	require.EqualValues(t, uint64(1), isSquare)
	check := f.Element().Square(root)
	require.EqualValues(t, uint64(1), check.Equal(a))
}

func TestFieldSqrt5Mod8(t *testing.T) {
	f := mustP25519()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(4)) // 2^2, a square.

	root, isSquare := f.Element().Sqrt(a)
	require.EqualValues(t, uint64(1), isSquare)
	check := f.Element().Square(root)
	require.EqualValues(t, uint64(1), check.Equal(a))

	// The field's quadratic non-residue 2 itself should fail.
	nonResidue := f.Element()
	f.SetBigInt(nonResidue, big.NewInt(2))
	require.False(t, nonResidue.IsSquareVar())
	_, isSquare = f.Element().Sqrt(nonResidue)
	require.EqualValues(t, uint64(0), isSquare)
}

func TestFieldSqrtTonelliShanks(t *testing.T) {
	f := mustToyTonelliShanks()

	for _, v := range []int64{1, 2, 4, 5, 8, 9, 16, 18, 20, 21, 23, 25, 31, 32, 36, 37, 40} {
		a := f.Element()
		f.SetBigInt(a, big.NewInt(v))
		root, isSquare := f.Element().Sqrt(a)
		if !a.IsSquareVar() {
			require.EqualValues(t, uint64(0), isSquare, "v=%d", v)
			continue
		}
		require.EqualValues(t, uint64(1), isSquare, "v=%d", v)
		check := f.Element().Square(root)
		require.EqualValues(t, uint64(1), check.Equal(a), "v=%d", v)
	}
}

func TestFieldBytesRoundTrip(t *testing.T) {
	f := mustP256()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(424242))

	b := a.Bytes()
	require.Len(t, b, 32)

	back, err := f.SetCanonicalBytes(f.Element(), b)
	require.NoError(t, err)
	require.EqualValues(t, uint64(1), back.Equal(a))
}

func TestFieldSetCanonicalBytesRejectsOutOfRange(t *testing.T) {
	f := mustP256()
	tooBig := make([]byte, 32)
	for i := range tooBig {
		tooBig[i] = 0xff
	}
	_, err := f.SetCanonicalBytes(f.Element(), tooBig)
	require.Error(t, err)
}

func TestFieldSqrtRatio(t *testing.T) {
	f := mustP256()
	u := f.Element()
	f.SetBigInt(u, big.NewInt(16))
	v := f.Element()
	f.SetBigInt(v, big.NewInt(4))

	root, isSquare := f.Element().SqrtRatio(u, v)
	require.EqualValues(t, uint64(1), isSquare)
	check := f.Element().Square(root)
	ratio := f.Element().Multiply(u, f.Element().Invert(v))
	require.EqualValues(t, uint64(1), check.Equal(ratio))
}

func TestFieldLittleEndianRoundTrip(t *testing.T) {
	f := mustP25519()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(123456789))

	le := a.LittleEndianBytes()
	back := f.SetLittleEndianBytes(f.Element(), le)
	require.EqualValues(t, uint64(1), back.Equal(a))
}

func TestFieldConditionalSelect(t *testing.T) {
	f := mustP256()
	a := f.Element()
	f.SetBigInt(a, big.NewInt(1))
	b := f.Element()
	f.SetBigInt(b, big.NewInt(2))

	sel0 := f.Element().ConditionalSelect(a, b, 0)
	require.EqualValues(t, uint64(1), sel0.Equal(a))
	sel1 := f.Element().ConditionalSelect(a, b, 1)
	require.EqualValues(t, uint64(1), sel1.Equal(b))
}
