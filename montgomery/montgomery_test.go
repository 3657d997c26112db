// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package montgomery_test

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/montgomery"
)

func testParams(t *testing.T, id string) *montgomery.Params {
	d, ok := curve.Lookup(id)
	require.True(t, ok, "curve %s should be registered", id)
	return d.Montgomery
}

func randClamped(t *testing.T, c *montgomery.Params) []byte {
	buf := make([]byte, c.ByteLen)
	_, err := io.ReadFull(rand.Reader, buf)
	require.NoError(t, err)
	c.Clamp(buf)
	return buf
}

func TestMontgomeryLadderAgreement(t *testing.T) {
	for _, id := range []string{"X25519", "X448"} {
		id := id
		t.Run(id, func(t *testing.T) {
			c := testParams(t, id)

			aScalar := randClamped(t, c)
			bScalar := randClamped(t, c)

			aPub := c.Ladder(aScalar, c.U)
			bPub := c.Ladder(bScalar, c.U)

			aShared := c.Ladder(aScalar, bPub)
			bShared := c.Ladder(bScalar, aPub)

			require.EqualValues(t, uint64(1), aShared.Equal(bShared), "shared u-coordinates should match")
		})
	}
}

func TestMontgomeryMulHIdentifiesLowOrder(t *testing.T) {
	c := testParams(t, "X25519")

	zero := c.F.Element().Zero()
	require.EqualValues(t, uint64(1), c.MulH(zero).IsZero(), "h*0 == 0")

	priv := randClamped(t, c)
	pub := c.Ladder(priv, c.U)
	require.EqualValues(t, uint64(0), c.MulH(pub).IsZero(), "a random public key should not be low-order")
}

func TestMontgomeryClampBits(t *testing.T) {
	c := testParams(t, "X25519")
	buf := make([]byte, c.ByteLen)
	for i := range buf {
		buf[i] = 0xff
	}
	c.Clamp(buf)
	require.EqualValues(t, 0xf8, buf[0], "low 3 bits of scalar[0] should be cleared")
	require.EqualValues(t, 0x7f, buf[31], "high bit of scalar[31] should be cleared")
	require.EqualValues(t, uint64(0x40), buf[31]&0x40, "bit 6 of scalar[31] should be set")
}

func TestMontgomeryElligator2MapIsOnCurve(t *testing.T) {
	c := testParams(t, "X25519")

	buf := make([]byte, c.ByteLen)
	_, err := io.ReadFull(rand.Reader, buf)
	require.NoError(t, err)
	u := c.F.SetBytes(c.F.Element(), buf)

	x, y := c.Elligator2Map(u)
	lhs := c.F.Element().Square(y)
	rhs := c.F.Element().Square(x)
	rhs.Multiply(rhs, x)
	ax2 := c.F.Element().Square(x)
	ax2.Multiply(ax2, c.A)
	rhs.Add(rhs, ax2)
	rhs.Add(rhs, x)

	require.EqualValues(t, uint64(1), lhs.Equal(rhs), "Elligator2Map output should satisfy y^2 = x^3 + A*x^2 + x")
}

func TestMontgomeryElligator2InverseRoundTrip(t *testing.T) {
	c := testParams(t, "X25519")

	buf := make([]byte, c.ByteLen)
	_, err := io.ReadFull(rand.Reader, buf)
	require.NoError(t, err)
	u := c.F.SetBytes(c.F.Element(), buf)

	x, y := c.Elligator2Map(u)

	var recovered *field.Element
	for _, hint := range []uint64{0, 1} {
		if uPrime, ok := c.Elligator2Inverse(x, y, hint); ok {
			recovered = uPrime
			break
		}
	}
	require.NotNil(t, recovered, "one of the two hint branches should recover a preimage")

	x2, y2 := c.Elligator2Map(recovered)
	require.EqualValues(t, uint64(1), x.Equal(x2))
	require.EqualValues(t, uint64(1), y.Equal(y2))
}

func TestMontgomeryUBytesRoundTrip(t *testing.T) {
	for _, id := range []string{"X25519", "X448"} {
		id := id
		t.Run(id, func(t *testing.T) {
			c := testParams(t, id)
			u := c.U

			b := c.UBytes(u)
			require.Len(t, b, c.ByteLen)

			back, err := c.SetUBytes(b)
			require.NoError(t, err)
			require.EqualValues(t, uint64(1), back.Equal(u))
		})
	}
}
