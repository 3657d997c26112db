// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package curve

import "gitlab.com/crypto-core/ecc-core/isogeny"

// linkIsogenies wires the Montgomery/Edwards twin curves together via
// the Iso/Iso4 fields (spec.md §4.6), run once both families are
// registered so ecdh/eddsa can convert between X25519<->Ed25519 and
// X448<->Ed448 without either package importing the other's Params
// directly.
func linkIsogenies() {
	linkBirational("X25519", "Ed25519")
	link4Isogeny("X448", "Ed448")
}

func linkBirational(montID, edID string) {
	m := registry[montID].Montgomery
	e := registry[edID].Edwards
	iso := isogeny.NewIsomorphism(m.F, m.A, e.A, false)
	registry[montID].Iso = iso
	registry[edID].Iso = iso
}

func link4Isogeny(montID, edID string) {
	m := registry[montID].Montgomery
	iso := isogeny.NewIsogeny4(m.A)
	registry[montID].Iso4 = iso
	registry[edID].Iso4 = iso
}
