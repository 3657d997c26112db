// Copyright (c) 2023 Yawning Angel
//
// SPDX-License-Identifier: BSD-3-Clause

package montgomery

import (
	"fmt"

	"gitlab.com/crypto-core/ecc-core/field"
)

// UBytes returns the little-endian encoding of u, per RFC 7748's
// "encodeUCoordinate" (spec.md §6.2). For X25519 the top bit of the last
// byte is never set; X448's 448-bit field fills all 56 bytes, so its top
// bit can be set.
func (c *Params) UBytes(u *field.Element) []byte {
	return u.LittleEndianBytes()
}

// SetUBytes decodes a little-endian u-coordinate, masking the field's
// unused high bits before reduction (the top bit for X25519; nothing for
// X448), per spec.md §6.2's lax X25519/X448 decode.
func (c *Params) SetUBytes(src []byte) (*field.Element, error) {
	if len(src) != c.ByteLen {
		return nil, fmt.Errorf("montgomery: invalid u-coordinate length: %d", len(src))
	}
	u := c.F.Element()
	c.F.SetLittleEndianBytes(u, src)
	return u, nil
}

// P25519Clamp implements RFC 7748 §5's X25519 scalar clamp.
func P25519Clamp(buf []byte) {
	buf[0] &= 248
	buf[31] &= 127
	buf[31] |= 64
}

// P448Clamp implements RFC 7748 §5's X448 scalar clamp.
func P448Clamp(buf []byte) {
	buf[0] &= 252
	buf[55] |= 128
}
