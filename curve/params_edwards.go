// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package curve

import (
	"math/big"

	"gitlab.com/crypto-core/ecc-core/edwards"
	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/scalar"
)

func edwardsField(pHex string, byteLen int, highBits uint) *field.Field {
	p := mustHex(pHex)
	return field.NewField(p, byteLen, highBits, sqrtKindForPrime(p))
}

func registerEdwardsCurves() {
	registerEd25519()
	registerEd448()
	registerEd1174()
}

// registerEd25519 registers Ed25519 (RFC 8032 §5.1). a == -1,
// d == -121665/121666 mod p.
func registerEd25519() {
	f := edwardsField("7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFED", 32, 7)
	s := scalar.NewField(mustHex("1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED"), 32)

	c := &edwards.Params{
		Name:      "Ed25519",
		F:         f,
		S:         s,
		A:         feFromHex(f, "-1"),
		D:         feFromHex(f, "52036CEE2B6FFE738CC740797779E89800700A4D4141D8AB75EB4DCA135978A3"),
		Gx:        feFromHex(f, "216936D3CD6E53FEC0A4E231FDD6DC5C692CC7609525A7B2C9562D608F25D51A"),
		Gy:        feFromHex(f, "6666666666666666666666666666666666666666666666666666666666666658"),
		AIsNegOne: true,
		Cofactor:  8,
	}
	register(&Descriptor{ID: "Ed25519", Family: FamilyEdwards, Hash: HashSHA512, Edwards: c})
}

// registerEd448 registers Ed448 (RFC 8032 §5.2). a == 1, d == -39081.
// p = 2^448 - 2^224 - 1.
func registerEd448() {
	p := new(big.Int).Lsh(big.NewInt(1), 448)
	t := new(big.Int).Lsh(big.NewInt(1), 224)
	p.Sub(p, t)
	p.Sub(p, big.NewInt(1))
	f := field.NewField(p, 56, 0, sqrtKindForPrime(p))

	n := mustHex("3FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF7CCA23E9C44EDB49AED63690216CC2728DC58F552378C292AB5844F3")
	s := scalar.NewField(n, 56)

	c := &edwards.Params{
		Name:      "Ed448",
		F:         f,
		S:         s,
		A:         feFromHex(f, "1"),
		D:         feFromHex(f, "-39081"),
		Gx:        feFromHex(f, "4F1970C66BED0DED221D15A622BF36DA9E146570470F1767EA6DE324A3D3A46412AE1AF72AB66511433B80E18B00938E2626A82BC70CC05E"),
		Gy:        feFromHex(f, "693F46716EB6BC248876203756C9C7624BEA73736CA3984087789C1E05A0C2D73AD3FF1CE67C39C4FDBD132C4ED7C8AD9808795BF230FA14"),
		AIsNegOne: false,
		Cofactor:  4,
	}
	register(&Descriptor{ID: "Ed448", Family: FamilyEdwards, Hash: HashSHAKE256, Edwards: c})
}

// registerEd1174 registers Ed1174 (Bernstein/Hamburg's Curve1174), a
// complete twisted-Edwards curve with a == 1, d == -1174. p = 2^251-9.
func registerEd1174() {
	f := edwardsField("7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF7", 32, 3)
	s := scalar.NewField(mustHex("1FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF77965C4DFD307348944D45FD166C971"), 32)

	c := &edwards.Params{
		Name:      "Ed1174",
		F:         f,
		S:         s,
		A:         feFromHex(f, "1"),
		D:         feFromHex(f, "-1174"),
		Gx:        feFromHex(f, "037FBB0CEA308C479343AEE7C029A190C021D96A492ECD6516123F27BCE29EDA"),
		Gy:        feFromHex(f, "06B72F82D47FB7CC6656841169840E0C4FE2DEE2AF3F976BA4CCB1BF9B46360E"),
		AIsNegOne: false,
		Cofactor:  4,
	}
	register(&Descriptor{ID: "Ed1174", Family: FamilyEdwards, Hash: HashSHA512, Edwards: c})
}
