// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package curve

import (
	"math/big"

	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/montgomery"
)

func montgomeryField(pHex string, byteLen int, highBits uint) *field.Field {
	p := mustHex(pHex)
	return field.NewField(p, byteLen, highBits, sqrtKindForPrime(p))
}

func registerMontgomeryCurves() {
	registerX25519()
	registerX448()
}

// registerX25519 registers Curve25519 (RFC 7748 §4.1). p = 2^255-19.
func registerX25519() {
	f := montgomeryField("7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFED", 32, 7)

	c := &montgomery.Params{
		Name:     "X25519",
		F:        f,
		A:        feFromHex(f, "76D06"),   // 486662
		A24:      feFromHex(f, "1DB41"),   // 121665
		U:        feFromHex(f, "9"),
		ByteLen:  32,
		Cofactor: 8,
		Clamp:    montgomery.P25519Clamp,
		Z:        feFromHex(f, "2"),
	}
	register(&Descriptor{ID: "X25519", Family: FamilyMontgomery, Hash: HashSHA512, Montgomery: c})
}

// registerX448 registers Curve448 (RFC 7748 §4.2). p = 2^448-2^224-1.
func registerX448() {
	p := new(big.Int).Lsh(big.NewInt(1), 448)
	t := new(big.Int).Lsh(big.NewInt(1), 224)
	p.Sub(p, t)
	p.Sub(p, big.NewInt(1))

	f := field.NewField(p, 56, 0, sqrtKindForPrime(p))

	c := &montgomery.Params{
		Name:     "X448",
		F:        f,
		A:        feFromHex(f, "262A6"),  // 156326
		A24:      feFromHex(f, "98A9"),   // 39081
		U:        feFromHex(f, "5"),
		ByteLen:  56,
		Cofactor: 4,
		Clamp:    montgomery.P448Clamp,
		Z:        feFromHex(f, "-1"),
	}
	register(&Descriptor{ID: "X448", Family: FamilyMontgomery, Hash: HashSHAKE256, Montgomery: c})
}
