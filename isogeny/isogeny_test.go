// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package isogeny_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/crypto-core/ecc-core/curve"
)

// TestIsomorphismRoundTrip checks that X25519<->Ed25519's birational map
// (curve.Descriptor.Iso, wired by curve.linkIsogenies) is its own inverse
// on the generator: Edwards -> Montgomery -> Edwards recovers the
// original point.
func TestIsomorphismRoundTrip(t *testing.T) {
	ed, ok := curve.Lookup("Ed25519")
	require.True(t, ok)
	mont, ok := curve.Lookup("X25519")
	require.True(t, ok)
	require.NotNil(t, ed.Iso, "Ed25519 <-> X25519 isomorphism should be linked")

	g := ed.Edwards.NewPoint().Generator(ed.Edwards)
	gx, gy := g.Affine()

	u, v := ed.Iso.EdwardsToMontgomery(ed.Edwards.F, gx, gy)
	require.EqualValues(t, uint64(1), u.Equal(mont.Montgomery.U), "recovered u should match the Montgomery base point")

	x2, y2 := ed.Iso.MontgomeryToEdwards(mont.Montgomery.F, u, v)
	require.EqualValues(t, uint64(1), x2.Equal(gx))
	require.EqualValues(t, uint64(1), y2.Equal(gy))
}

func TestIsogeny4IsLinked(t *testing.T) {
	ed, ok := curve.Lookup("Ed448")
	require.True(t, ok)
	require.NotNil(t, ed.Iso4, "Ed448 <-> X448 4-isogeny should be linked")

	g := ed.Edwards.NewPoint().Generator(ed.Edwards)
	gx, gy := g.Affine()

	u, _ := ed.Iso4.EdwardsToMontgomery(ed.Edwards.F, gx, gy)
	require.EqualValues(t, uint64(0), u.IsZero(), "the 4-isogeny image of the generator should not be the identity")
}
