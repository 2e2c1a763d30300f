// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

// AID is an Attention Identifier: the one-byte code identifying which key
// triggered an outbound transmission to the host.
type AID byte

// AID codes.
const (
	AIDNone   AID = 0x60
	AIDEnter  AID = 0x7D
	AIDPF1    AID = 0xF1
	AIDPF2    AID = 0xF2
	AIDPF3    AID = 0xF3
	AIDPF4    AID = 0xF4
	AIDPF5    AID = 0xF5
	AIDPF6    AID = 0xF6
	AIDPF7    AID = 0xF7
	AIDPF8    AID = 0xF8
	AIDPF9    AID = 0xF9
	AIDPF10   AID = 0x7A
	AIDPF11   AID = 0x7B
	AIDPF12   AID = 0x7C
	AIDPF13   AID = 0xC1
	AIDPF14   AID = 0xC2
	AIDPF15   AID = 0xC3
	AIDPF16   AID = 0xC4
	AIDPF17   AID = 0xC5
	AIDPF18   AID = 0xC6
	AIDPF19   AID = 0xC7
	AIDPF20   AID = 0xC8
	AIDPF21   AID = 0xC9
	AIDPF22   AID = 0x4A
	AIDPF23   AID = 0x4B
	AIDPF24   AID = 0x4C
	AIDPA1    AID = 0x6C
	AIDPA2    AID = 0x6E
	AIDPA3    AID = 0x6B
	AIDClear  AID = 0x6D
	AIDSysreq AID = 0xF0

	// AIDStructuredField is the AID value the client uses to introduce an
	// outbound structured-field reply.
	AIDStructuredField AID = 0x88
)

// IsShortRead reports whether aid is one of the Short Read AIDs (CLEAR,
// PA1-PA3): these transmit no cursor address or field data.
func (a AID) IsShortRead() bool {
	switch a {
	case AIDClear, AIDPA1, AIDPA2, AIDPA3:
		return true
	default:
		return false
	}
}

// String renders a human-readable AID name, used for logging.
func (a AID) String() string {
	switch a {
	case AIDNone:
		return "NONE"
	case AIDEnter:
		return "ENTER"
	case AIDClear:
		return "CLEAR"
	case AIDPA1:
		return "PA1"
	case AIDPA2:
		return "PA2"
	case AIDPA3:
		return "PA3"
	case AIDSysreq:
		return "SYSREQ"
	case AIDStructuredField:
		return "SF"
	}
	if a >= AIDPF1 && a <= AIDPF9 {
		return "PF" + string(rune('1'+a-AIDPF1))
	}
	switch a {
	case AIDPF10:
		return "PF10"
	case AIDPF11:
		return "PF11"
	case AIDPF12:
		return "PF12"
	case AIDPF22:
		return "PF22"
	case AIDPF23:
		return "PF23"
	case AIDPF24:
		return "PF24"
	}
	if a >= AIDPF13 && a <= AIDPF21 {
		n := 13 + int(a-AIDPF13)
		return "PF" + itoa(n)
	}
	return "UNKNOWN"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
