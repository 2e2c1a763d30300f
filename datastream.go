// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

// 3270 command codes, both the ASCII and SNA forms the processor accepts
// in parallel.
const (
	cmdWriteASCII byte = 0x01
	cmdWriteSNA   byte = 0xF1
	cmdEWASCII    byte = 0x05
	cmdEWSNA      byte = 0xF5
	cmdEWAASCII   byte = 0x0D
	cmdEWASNA     byte = 0x7E
	cmdWSFASCII   byte = 0x11
	cmdWSFSNA     byte = 0xF3
	cmdRMASCII    byte = 0x06
	cmdRMSNA      byte = 0xF6
	cmdRBASCII    byte = 0x02
	cmdRBSNA      byte = 0xF2
)

// 3270 order codes.
const (
	orderSBA byte = 0x11
	orderSF  byte = 0x1D
	orderSFE byte = 0x29
	orderSA  byte = 0x28
	orderMF  byte = 0x2C
	orderIC  byte = 0x13
	orderPT  byte = 0x05
	orderRA  byte = 0x3C
	orderEUA byte = 0x12
	orderGE  byte = 0x08
)

// FieldValue pairs a field's data-start address with the content the UI
// wants transmitted for it.
type FieldValue struct {
	Address int
	Content string
}

// Processor is the 3270 data-stream processor: it interprets inbound
// commands and orders against a Screen, and builds outbound AID
// transmissions. Malformed sub-structures and unrecognized commands are
// counted rather than raised as errors.
type Processor struct {
	codec  Codec
	screen *Screen

	tn3270eMode bool

	malformedRecords int
	unknownCommands  int
}

// NewProcessor returns a Processor driving screen and decoding/encoding
// with codec.
func NewProcessor(screen *Screen, codec Codec) *Processor {
	return &Processor{screen: screen, codec: codec}
}

// SetTN3270EMode toggles whether inbound records carry a 5-byte TN3270E
// data-type header and outbound AIDs are header-prefixed.
func (p *Processor) SetTN3270EMode(on bool) { p.tn3270eMode = on }

// MalformedRecords returns the running count of discarded malformed
// sub-structures.
func (p *Processor) MalformedRecords() int { return p.malformedRecords }

// UnknownCommands returns the running count of command bytes that fell
// back to the Write path.
func (p *Processor) UnknownCommands() int { return p.unknownCommands }

// ProcessRecord interprets one complete inbound 3270 record (the bytes
// between telnet record boundaries, already de-escaped by the Framer).
// If the record was a Write Structured Field that requires an immediate
// answer (a Read Partition Query), the fully framed reply is returned for
// the caller to write to the transport; the processor never touches the
// transport itself.
func (p *Processor) ProcessRecord(data []byte) []byte {
	data = p.stripTN3270EHeader(data)
	if len(data) < 1 {
		return nil
	}

	cmd := data[0]
	switch cmd {
	case cmdWriteASCII, cmdWriteSNA:
		p.applyWrite(data[1:], false)
	case cmdEWASCII, cmdEWSNA, cmdEWAASCII, cmdEWASNA:
		p.screen.Clear()
		p.applyWrite(data[1:], false)
	case cmdWSFASCII, cmdWSFSNA:
		if reply := p.processWSF(data[1:]); reply != nil {
			return reply.data
		}
	case cmdRMASCII, cmdRMSNA, cmdRBASCII, cmdRBSNA:
		// No screen change; host expects a read reply sent only when the
		// UI issues an AID.
	default:
		p.unknownCommands++
		p.applyWrite(data[1:], true)
	}
	return nil
}

// stripTN3270EHeader removes the 5-byte TN3270E data-type header when the
// client is in TN3270E mode and the header marks 3270-DATA (type 0x00).
func (p *Processor) stripTN3270EHeader(data []byte) []byte {
	if p.tn3270eMode && len(data) >= 5 && data[0] == 0x00 {
		return data[5:]
	}
	return data
}

// applyWrite consumes an optional WCC (unless skipWCC, used for the
// unknown-command fallback where the whole remainder is orders/text with
// no WCC byte) and interprets the order stream that follows.
func (p *Processor) applyWrite(data []byte, skipWCC bool) {
	if !skipWCC {
		if len(data) < 1 {
			return
		}
		data = data[1:] // consume WCC; its bits are opaque to this core
	}
	p.applyOrders(data)
}

// applyOrders interprets the 3270 order stream, mutating the screen in
// place starting at the current cursor address.
func (p *Processor) applyOrders(data []byte) {
	size := p.screen.Size()
	addr := p.screen.CursorAddress
	i := 0

	for i < len(data) {
		b := data[i]
		switch b {
		case orderSBA:
			if i+2 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			addr = decodeAddr(data[i+1], data[i+2], size)
			i += 3

		case orderSF:
			if i+1 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			p.screen.InsertField(addr, data[i+1])
			addr = wrap(addr+1, size)
			i += 2

		case orderSFE:
			if i+1 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			count := int(data[i+1])
			attr := byte(0x00)
			consumed := 2
			for pi := 0; pi < count; pi++ {
				off := i + 2 + pi*2
				if off+1 >= len(data) {
					p.malformedRecords++
					break
				}
				if data[off] == 0xC0 {
					attr = data[off+1]
				}
				consumed = off + 2 - i
			}
			p.screen.InsertField(addr, attr)
			addr = wrap(addr+1, size)
			i += consumed

		case orderSA:
			// Set Attribute: extended highlighting not modeled.
			if i+2 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			i += 3

		case orderMF:
			if i+1 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			count := int(data[i+1])
			i += 2 + count*2
			if i > len(data) {
				p.malformedRecords++
				i = len(data)
			}

		case orderIC:
			p.screen.CursorAddress = addr
			i++

		case orderPT:
			// Program Tab: no-op.
			i++

		case orderRA:
			if i+3 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			end := decodeAddr(data[i+1], data[i+2], size)
			ch := p.codec.DecodeByte(data[i+3])
			for addr != end {
				p.screen.WriteChar(addr, ch)
				addr = wrap(addr+1, size)
			}
			i += 4

		case orderEUA:
			if i+2 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			end := decodeAddr(data[i+1], data[i+2], size)
			for addr != end {
				if idx := p.screen.fieldContaining(addr); idx < 0 || !p.screen.Fields[idx].Protected {
					p.screen.WriteChar(addr, ' ')
				}
				addr = wrap(addr+1, size)
			}
			i += 3

		case orderGE:
			if i+1 >= len(data) {
				p.malformedRecords++
				i = len(data)
				break
			}
			ch := p.codec.DecodeByte(data[i+1])
			p.screen.WriteChar(addr, ch)
			addr = wrap(addr+1, size)
			i += 2

		default:
			ch := p.codec.DecodeByte(b)
			p.screen.WriteChar(addr, ch)
			addr = wrap(addr+1, size)
			i++
		}
	}

	p.screen.CursorAddress = addr
}

// BuildAID constructs the outbound byte sequence for an AID transmission,
// including TN3270E header (if applicable), cursor address, and modified
// field content. The returned bytes are already wrapped in telnet framing
// (IAC-doubled, terminated with IAC EOR) and ready to write to the
// transport. For any AID other than a Short Read, MDT is cleared on every
// field afterward; a Short Read leaves MDT untouched.
func (p *Processor) BuildAID(aid AID, modified []FieldValue) []byte {
	var out []byte
	if p.tn3270eMode {
		out = append(out, 0x00, 0x00, 0x00, 0x00, 0x00)
	}
	out = append(out, byte(aid))

	if !aid.IsShortRead() {
		cur := encodeAddr(p.screen.CursorAddress, p.screen.Size())
		out = append(out, cur[0], cur[1])

		seen := make(map[int]bool, len(modified))
		for _, fv := range modified {
			seen[fv.Address] = true
			out = p.appendFieldSBA(out, fv.Address, fv.Content)
		}

		// Any field with MDT set that the UI didn't mention is promoted
		// from its current cell contents.
		for idx := range p.screen.Fields {
			fld := p.screen.Fields[idx]
			if !fld.Modified {
				continue
			}
			start := wrap(fld.Address+1, p.screen.Size())
			if seen[start] {
				continue
			}
			out = p.appendFieldSBA(out, start, p.screen.fieldText(idx))
		}

		p.screen.ClearModified()
	}

	return FrameRecord(out)
}

func (p *Processor) appendFieldSBA(out []byte, addr int, content string) []byte {
	out = append(out, orderSBA)
	enc := encodeAddr(addr, p.screen.Size())
	out = append(out, enc[0], enc[1])
	out = append(out, p.codec.Encode(content)...)
	return out
}
