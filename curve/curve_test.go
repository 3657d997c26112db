// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package curve

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, id := range []string{
		"P-192", "P-224", "P-256", "P-384", "P-521", "secp256k1",
		"X25519", "X448", "Ed25519", "Ed448", "Ed1174",
	} {
		d, ok := Lookup(id)
		require.True(t, ok, "curve %s should be registered", id)
		require.Equal(t, id, d.ID)
	}

	_, ok := Lookup("not-a-curve")
	require.False(t, ok)

	require.Panics(t, func() { MustLookup("not-a-curve") })
}

func TestIDsCoversRegistry(t *testing.T) {
	ids := IDs()
	require.Contains(t, ids, "secp256k1")
	require.Contains(t, ids, "Ed25519")
	require.Len(t, ids, len(registry))
}

func TestIsogeniesLinked(t *testing.T) {
	x25519 := MustLookup("X25519")
	ed25519 := MustLookup("Ed25519")
	require.NotNil(t, x25519.Iso)
	require.Same(t, x25519.Iso, ed25519.Iso, "X25519 and Ed25519 should share the same Isomorphism")

	x448 := MustLookup("X448")
	ed448 := MustLookup("Ed448")
	require.NotNil(t, x448.Iso4)
	require.Same(t, x448.Iso4, ed448.Iso4, "X448 and Ed448 should share the same Isogeny4")
}

func TestContextWeierstrassBlinding(t *testing.T) {
	d := MustLookup("secp256k1")
	ctx := NewContext(d)
	require.NoError(t, ctx.Randomize(rand.Reader))

	c := d.Weierstrass
	k, err := c.S.Random(rand.Reader)
	require.NoError(t, err)

	direct := c.NewJacobianPoint().ScalarBaseMult(c, k)

	blinded := ctx.BlindScalar(k)
	viaBlind := c.NewJacobianPoint().ScalarBaseMult(c, blinded)
	viaBlind.Add(viaBlind, ctx.UnblindWeierstrass())

	require.EqualValues(t, uint64(1), direct.Equal(viaBlind), "(k+blind)*G + unblind == k*G")
}

func TestContextEdwardsBlinding(t *testing.T) {
	d := MustLookup("Ed25519")
	ctx := NewContext(d)
	require.NoError(t, ctx.Randomize(rand.Reader))

	c := d.Edwards
	k, err := c.S.Random(rand.Reader)
	require.NoError(t, err)

	direct := c.NewPoint().ScalarBaseMult(c, k)

	blinded := ctx.BlindScalar(k)
	viaBlind := c.NewPoint().ScalarBaseMult(c, blinded)
	viaBlind.Add(viaBlind, ctx.UnblindEdwards())

	require.EqualValues(t, uint64(1), direct.Equal(viaBlind), "(k+blind)*G + unblind == k*G")
}

func TestContextMontgomeryHasNoBlindingState(t *testing.T) {
	d := MustLookup("X25519")
	ctx := NewContext(d)
	require.Error(t, ctx.Randomize(rand.Reader), "Montgomery curves carry no blinding state")
}
