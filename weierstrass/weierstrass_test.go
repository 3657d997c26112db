// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package weierstrass_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/crypto-core/ecc-core/curve"
	"gitlab.com/crypto-core/ecc-core/scalar"
	"gitlab.com/crypto-core/ecc-core/weierstrass"
)

func testParams(t *testing.T, id string) *weierstrass.Params {
	d, ok := curve.Lookup(id)
	require.True(t, ok, "curve %s should be registered", id)
	return d.Weierstrass
}

func randScalar(t *testing.T, c *weierstrass.Params) *scalar.Element {
	s, err := c.S.Random(rand.Reader)
	require.NoError(t, err)
	return s
}

func TestWeierstrassScalarMultAgreement(t *testing.T) {
	for _, id := range []string{"secp256k1", "P-256"} {
		id := id
		t.Run(id, func(t *testing.T) {
			c := testParams(t, id)

			s := randScalar(t, c)
			g := c.NewJacobianPoint().Generator(c)

			ctProduct := c.NewJacobianPoint().ScalarBaseMult(c, s)
			vtProduct := c.NewJacobianPoint().ScalarBaseMultVartime(c, s)
			require.EqualValues(t, uint64(1), ctProduct.Equal(vtProduct), "ct vs vartime base-mult")

			generic := c.NewJacobianPoint().ScalarMult(s, g)
			require.EqualValues(t, uint64(1), ctProduct.Equal(generic), "base-mult vs generic scalar-mult")
		})
	}
}

func TestWeierstrassAddDoubleConsistency(t *testing.T) {
	for _, id := range []string{"secp256k1", "P-256"} {
		id := id
		t.Run(id, func(t *testing.T) {
			c := testParams(t, id)
			g := c.NewJacobianPoint().Generator(c)

			doubled := c.NewJacobianPoint().Double(g)
			added := c.NewJacobianPoint().Add(g, g)
			require.EqualValues(t, uint64(1), doubled.Equal(added), "Double(G) == Add(G, G)")

			addedVar := c.NewJacobianPoint().AddVariableTime(g, g)
			require.EqualValues(t, uint64(1), doubled.Equal(addedVar), "Double(G) == AddVariableTime(G, G)")
		})
	}
}

func TestWeierstrassIdentity(t *testing.T) {
	c := testParams(t, "secp256k1")
	g := c.NewJacobianPoint().Generator(c)
	id := c.NewJacobianPoint().Identity(c)

	sum := c.NewJacobianPoint().Add(g, id)
	require.EqualValues(t, uint64(1), sum.Equal(g), "G + identity == G")

	neg := c.NewJacobianPoint().Negate(g)
	sum = c.NewJacobianPoint().Add(g, neg)
	require.EqualValues(t, uint64(1), sum.IsIdentity(), "G + (-G) == identity")
}

func TestWeierstrassCompressedRoundTrip(t *testing.T) {
	// P-224's prime is 1 (mod 8) (neither Sqrt3Mod4 nor Sqrt5Mod8 apply),
	// so it specifically exercises the generic Tonelli-Shanks sqrt path
	// that decompress() depends on.
	for _, id := range []string{"secp256k1", "P-192", "P-224", "P-256", "P-384", "P-521"} {
		id := id
		t.Run(id, func(t *testing.T) {
			c := testParams(t, id)
			g := c.Generator()

			compressed := g.CompressedBytes()
			back, err := c.SetBytes(c.NewAffinePoint(), compressed)
			require.NoError(t, err)
			require.EqualValues(t, uint64(1), back.X().Equal(g.X()))
			require.EqualValues(t, uint64(1), back.Y().Equal(g.Y()))

			uncompressed := g.UncompressedBytes()
			back2, err := c.SetBytes(c.NewAffinePoint(), uncompressed)
			require.NoError(t, err)
			require.EqualValues(t, uint64(1), back2.X().Equal(g.X()))
		})
	}
}

func TestWeierstrassLiftXSquareY(t *testing.T) {
	c := testParams(t, "secp256k1")
	g := c.Generator()

	p, err := c.LiftXSquareY(g.X())
	require.NoError(t, err)
	require.True(t, weierstrass.CheckYSquare(c, c.NewJacobianPoint().FromAffine(p)), "lifted point's y should be square")
}

func TestWeierstrassDoubleScalarMultBasepointVartimeGLV(t *testing.T) {
	// secp256k1 carries GLV params; P-256 does not, so this exercises the
	// endomorphism split path specifically (spec.md §4.3).
	c := testParams(t, "secp256k1")
	g := c.NewJacobianPoint().Generator(c)

	u1 := randScalar(t, c)
	u2 := randScalar(t, c)
	p := c.NewJacobianPoint().ScalarMult(randScalar(t, c), g)

	got := c.NewJacobianPoint().DoubleScalarMultBasepointVartime(c, u1, u2, p)

	u1g := c.NewJacobianPoint().ScalarMult(u1, g)
	u2p := c.NewJacobianPoint().ScalarMult(u2, p)
	want := c.NewJacobianPoint().Add(u1g, u2p)

	require.EqualValues(t, uint64(1), got.Equal(want), "u1*G + u2*P via GLV split should match the generic computation")
}

func TestWeierstrassDoubleScalarMultBasepointVartimeJSF(t *testing.T) {
	// P-256 carries no GLV params, so DoubleScalarMultBasepointVartime
	// routes through the JSF joint-accumulation path exercised here.
	c := testParams(t, "P-256")
	g := c.NewJacobianPoint().Generator(c)

	u1 := randScalar(t, c)
	u2 := randScalar(t, c)
	p := c.NewJacobianPoint().ScalarMult(randScalar(t, c), g)

	got := c.NewJacobianPoint().DoubleScalarMultBasepointVartime(c, u1, u2, p)

	u1g := c.NewJacobianPoint().ScalarMult(u1, g)
	u2p := c.NewJacobianPoint().ScalarMult(u2, p)
	want := c.NewJacobianPoint().Add(u1g, u2p)

	require.EqualValues(t, uint64(1), got.Equal(want), "u1*G + u2*P via JSF should match the generic computation")
}

func TestWeierstrassDoubleScalarMultVartimeArbitraryPoints(t *testing.T) {
	c := testParams(t, "secp256k1")
	g := c.NewJacobianPoint().Generator(c)

	p1 := c.NewJacobianPoint().ScalarMult(randScalar(t, c), g)
	p2 := c.NewJacobianPoint().ScalarMult(randScalar(t, c), g)
	u1 := randScalar(t, c)
	u2 := randScalar(t, c)

	got := c.NewJacobianPoint().DoubleScalarMultVartime(u1, p1, u2, p2)

	want := c.NewJacobianPoint().Add(
		c.NewJacobianPoint().ScalarMult(u1, p1),
		c.NewJacobianPoint().ScalarMult(u2, p2),
	)
	require.EqualValues(t, uint64(1), got.Equal(want), "u1*P1 + u2*P2 via JSF should match the generic computation")
}

func TestWeierstrassMapToCurveIsOnCurveAndDeterministic(t *testing.T) {
	for _, id := range []string{"secp256k1", "P-224", "P-256"} {
		id := id
		t.Run(id, func(t *testing.T) {
			c := testParams(t, id)

			u := c.F.Element().One()
			p1 := weierstrass.MapToCurve(c, u)
			require.True(t, p1.IsOnCurve(), "hash-to-curve map output should be on the curve")

			p2 := weierstrass.MapToCurve(c, u)
			require.EqualValues(t, uint64(1), p1.X().Equal(p2.X()), "map should be deterministic")
			require.EqualValues(t, uint64(1), p1.Y().Equal(p2.Y()))
		})
	}
}

func TestWeierstrassIsOnCurve(t *testing.T) {
	c := testParams(t, "secp256k1")
	g := c.Generator()
	require.True(t, g.IsOnCurve())

	bad := c.NewAffinePoint().Set(g)
	bad.X().Add(bad.X(), c.F.Element().One())
	require.False(t, bad.IsOnCurve())
}
