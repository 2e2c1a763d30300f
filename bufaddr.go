// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

// addrCodes are the 3270 12-bit-addressing I/O codes, indexed by the low
// 6 bits of a buffer address half. This is the standard GA23-0059-00
// Figure D-1 address-code table.
var addrCodes = [64]byte{
	0x40, 0xc1, 0xc2, 0xc3, 0xc4, 0xc5, 0xc6, 0xc7, 0xc8,
	0xc9, 0x4a, 0x4b, 0x4c, 0x4d, 0x4e, 0x4f, 0x50, 0xd1, 0xd2, 0xd3, 0xd4,
	0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0x5a, 0x5b, 0x5c, 0x5d, 0x5e, 0x5f, 0x60,
	0x61, 0xe2, 0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0x6a, 0x6b, 0x6c,
	0x6d, 0x6e, 0x6f, 0xf0, 0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
	0xf9, 0x7a, 0x7b, 0x7c, 0x7d, 0x7e, 0x7f,
}

// encodeAddr produces the 12-bit wire form of a buffer address, wrapping
// addr into [0, size) first. This is always the form used for outbound
// SBA/RA/EUA operands and for the cursor address in an AID reply.
func encodeAddr(addr, size int) [2]byte {
	addr = wrap(addr, size)
	hi := (addr >> 6) & 0x3f
	lo := addr & 0x3f
	return [2]byte{addrCodes[hi], addrCodes[lo]}
}

// decodeAddr decodes a 2-byte wire buffer address in either the 12-bit or
// 14-bit form, selected by the top two bits of the first byte, and wraps
// the result into [0, size).
func decodeAddr(b1, b2 byte, size int) int {
	var addr int
	if b1&0xc0 != 0 {
		// 12-bit form: both bytes carry "printable" high bits.
		addr = (int(b1&0x3f) << 6) | int(b2&0x3f)
	} else {
		// 14-bit form.
		addr = (int(b1&0x3f) << 8) | int(b2)
	}
	return wrap(addr, size)
}

func wrap(addr, size int) int {
	if size <= 0 {
		return 0
	}
	addr %= size
	if addr < 0 {
		addr += size
	}
	return addr
}
