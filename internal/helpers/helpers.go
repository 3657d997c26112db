// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

// Package helpers provides small constant-time integer mask helpers
// shared by the field, scalar, and group packages.
package helpers

// Uint64IsZero returns 1 iff v == 0, 0 otherwise.
func Uint64IsZero(v uint64) uint64 {
	// v | -v has the sign bit set iff v != 0.
	return ((v | -v) >> 63) ^ 1
}

// Uint64IsNonzero returns 1 iff v != 0, 0 otherwise.
func Uint64IsNonzero(v uint64) uint64 {
	return (v | -v) >> 63
}

// Select64 returns a iff ctrl == 0, b otherwise.  ctrl MUST be 0 or 1.
func Select64(ctrl, a, b uint64) uint64 {
	mask := -ctrl
	return a ^ (mask & (a ^ b))
}

// SelectByte returns a iff ctrl == 0, b otherwise.  ctrl MUST be 0 or 1.
func SelectByte(ctrl, a, b byte) byte {
	mask := -ctrl
	return a ^ (mask & (a ^ b))
}

// Uint64ToMask returns 0 iff v == 0, all-ones otherwise.  Intended for use
// as a branch-free "is nonzero" mask.
func Uint64ToMask(v uint64) uint64 {
	return -Uint64IsNonzero(v)
}
