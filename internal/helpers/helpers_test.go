// Copyright 2023 Yawning Angel.  All Rights Reserved.
//
// secp256k1-voi can be used in non-commercial projects of any kind,
// excluding those relating to or containing non-fungible tokens
// ("NFT") or blockchain-related projects.
//
// The package can not be modified to suit your needs. You may not
// redistribute or resell it, even if modified.

package helpers

import (
	"math"
	"testing"
)

func TestUint64IsZero(t *testing.T) {
	for _, v := range []uint64{
		0,
		1,
		math.MaxUint64,
	} {
		var expected uint64
		if v == 0 {
			expected = 1
		}
		if res := Uint64IsZero(v); res != expected {
			t.Errorf("Uint64IsZero(%d) = %d; want %d", v, res, expected)
		}
	}
}

func TestUint64IsNonzero(t *testing.T) {
	for _, v := range []uint64{
		0,
		1,
		math.MaxUint64,
	} {
		var expected uint64
		if v != 0 {
			expected = 1
		}
		if res := Uint64IsNonzero(v); res != expected {
			t.Errorf("Uint64IsNonzero(%d) = %d; want %d", v, res, expected)
		}
	}
}

func TestSelect64(t *testing.T) {
	if res := Select64(0, 5, 9); res != 5 {
		t.Errorf("Select64(0, ...) = %d; want 5", res)
	}
	if res := Select64(1, 5, 9); res != 9 {
		t.Errorf("Select64(1, ...) = %d; want 9", res)
	}
}

func TestSelectByte(t *testing.T) {
	if res := SelectByte(0, 5, 9); res != 5 {
		t.Errorf("SelectByte(0, ...) = %d; want 5", res)
	}
	if res := SelectByte(1, 5, 9); res != 9 {
		t.Errorf("SelectByte(1, ...) = %d; want 9", res)
	}
}

func TestUint64ToMask(t *testing.T) {
	if res := Uint64ToMask(0); res != 0 {
		t.Errorf("Uint64ToMask(0) = %x; want 0", res)
	}
	if res := Uint64ToMask(1); res != math.MaxUint64 {
		t.Errorf("Uint64ToMask(1) = %x; want all-ones", res)
	}
}
