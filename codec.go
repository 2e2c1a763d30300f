// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

// Codec translates between the host's EBCDIC byte stream and the display
// character set the screen model stores. Implementations decode from a
// single fixed 256-entry table, with no DBCS or per-session table
// switching; the default codec covers the punctuation, alphanumeric, and
// bracket/brace set CP1047 terminals expect.
type Codec interface {
	// Decode converts a slice of EBCDIC bytes into display-charset runes.
	Decode(b []byte) string

	// DecodeByte converts a single EBCDIC byte into its display character.
	// Unmapped code points decode to a space.
	DecodeByte(b byte) rune

	// Encode converts a display-charset string into EBCDIC bytes.
	// Unmapped characters encode as 0x40 (EBCDIC space).
	Encode(s string) []byte

	// EncodeRune converts a single display character into its EBCDIC byte.
	EncodeRune(r rune) byte

	// ID names the codec, e.g. "cp1047".
	ID() string
}

var defaultCodec Codec = cp1047{}

// DefaultCodec returns the built-in CP1047-compatible codec used when a
// Client is constructed without an explicit WithCodec option.
func DefaultCodec() Codec { return defaultCodec }

// cp1047 implements Codec using a fixed EBCDIC<->display translation table
// covering the upper/lower alphanumerics, digits, and the punctuation and
// bracket/brace sets requires.
type cp1047 struct{}

func (cp1047) ID() string { return "cp1047" }

func (c cp1047) Decode(b []byte) string {
	out := make([]rune, len(b))
	for i, v := range b {
		out[i] = c.DecodeByte(v)
	}
	return string(out)
}

func (cp1047) DecodeByte(b byte) rune {
	if r, ok := ebcdicToDisplay[b]; ok {
		return r
	}
	return ' '
}

func (c cp1047) Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, c.EncodeRune(r))
	}
	return out
}

func (cp1047) EncodeRune(r rune) byte {
	if b, ok := displayToEBCDIC[r]; ok {
		return b
	}
	return 0x40 // EBCDIC space
}

// ebcdicToDisplay is the inbound half of the fixed codec, grounded on the
// EBCDIC_TO_ASCII table in the original tn3270.py implementation.
var ebcdicToDisplay = map[byte]rune{
	0x40: ' ', 0x4B: '.', 0x4C: '<', 0x4D: '(', 0x4E: '+', 0x4F: '|',
	0x50: '&', 0x5A: '!', 0x5B: '$', 0x5C: '*', 0x5D: ')', 0x5E: ';',
	0x5F: '^', 0x60: '-', 0x61: '/', 0x6A: '¦', 0x6B: ',', 0x6C: '%',
	0x6D: '_', 0x6E: '>', 0x6F: '?', 0x79: '`', 0x7A: ':', 0x7B: '#',
	0x7C: '@', 0x7D: '\'', 0x7E: '=', 0x7F: '"',
	0x81: 'a', 0x82: 'b', 0x83: 'c', 0x84: 'd', 0x85: 'e', 0x86: 'f',
	0x87: 'g', 0x88: 'h', 0x89: 'i', 0x91: 'j', 0x92: 'k', 0x93: 'l',
	0x94: 'm', 0x95: 'n', 0x96: 'o', 0x97: 'p', 0x98: 'q', 0x99: 'r',
	0xA1: '~', 0xA2: 's', 0xA3: 't', 0xA4: 'u', 0xA5: 'v', 0xA6: 'w',
	0xA7: 'x', 0xA8: 'y', 0xA9: 'z', 0xAD: '[', 0xBD: ']',
	0xC0: '{', 0xC1: 'A', 0xC2: 'B', 0xC3: 'C', 0xC4: 'D', 0xC5: 'E',
	0xC6: 'F', 0xC7: 'G', 0xC8: 'H', 0xC9: 'I', 0xD0: '}', 0xD1: 'J',
	0xD2: 'K', 0xD3: 'L', 0xD4: 'M', 0xD5: 'N', 0xD6: 'O', 0xD7: 'P',
	0xD8: 'Q', 0xD9: 'R', 0xE0: '\\', 0xE2: 'S', 0xE3: 'T', 0xE4: 'U',
	0xE5: 'V', 0xE6: 'W', 0xE7: 'X', 0xE8: 'Y', 0xE9: 'Z',
	0xF0: '0', 0xF1: '1', 0xF2: '2', 0xF3: '3', 0xF4: '4', 0xF5: '5',
	0xF6: '6', 0xF7: '7', 0xF8: '8', 0xF9: '9',
}

// displayToEBCDIC is the outbound half, built by inverting the table above.
var displayToEBCDIC = invert(ebcdicToDisplay)

func invert(m map[byte]rune) map[rune]byte {
	out := make(map[rune]byte, len(m))
	for b, r := range m {
		out[r] = b
	}
	return out
}
