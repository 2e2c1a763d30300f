// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

// Structured-field IDs and Read Partition operation types.
const (
	sfIDReadPartition byte = 0x01

	readPartitionQuery     byte = 0x02
	readPartitionQueryList byte = 0xFF
)

// Query Reply QCODEs.
const (
	qrUsableAreaID byte = 0x81
	qrSummaryID    byte = 0x80
	qrHighlighting byte = 0x87
	qrReplyModes   byte = 0x88
)

// pendingReply, when non-nil after processWSF, holds a fully framed
// outbound Query Reply the caller must transmit. The client's PollScreen
// path writes it immediately; the processor itself never touches the
// transport -- only reads suspend, and the core makes no other I/O call.
type pendingReply struct {
	data []byte
}

// processWSF interprets a Write Structured Field command body: a
// concatenation of length-prefixed structured fields. Only Read
// Partition (Query/Query List) is answered; everything else is skipped
// by its own length. A truncated or short (<3 byte) structured field is
// counted as malformed and ends parsing of this WSF body; any reply already
// built is still returned and no error is raised.
func (p *Processor) processWSF(data []byte) *pendingReply {
	i := 0
	var reply *pendingReply

	for i+2 <= len(data) {
		length := int(data[i])<<8 | int(data[i+1])
		if length < 3 || i+length > len(data) {
			p.malformedRecords++
			break
		}
		sfID := data[i+2]
		body := data[i+3 : i+length]

		if sfID == sfIDReadPartition && len(body) >= 2 {
			opType := body[1]
			if opType == readPartitionQuery || opType == readPartitionQueryList {
				reply = &pendingReply{data: p.buildQueryReply()}
			}
		}

		i += length
	}

	return reply
}

// buildQueryReply builds the Usable Area and Summary Query Reply
// structured fields, AID-prefixed and telnet-framed.
func (p *Processor) buildQueryReply() []byte {
	var out []byte
	if p.tn3270eMode {
		out = append(out, 0x00, 0x00, 0x00, 0x00, 0x00)
	}
	out = append(out, byte(AIDStructuredField))
	out = append(out, p.buildQRUsableArea()...)
	out = append(out, p.buildQRSummary()...)
	return FrameRecord(out)
}

func (p *Processor) buildQRUsableArea() []byte {
	body := []byte{
		qrUsableAreaID, 0x81, // QCODE: Usable Area
		0x01, // flags: 12/14-bit addressing
		0x00, // reserved
		byte(p.screen.Cols >> 8), byte(p.screen.Cols), // width
		byte(p.screen.Rows >> 8), byte(p.screen.Rows), // height
		0x00,                   // units: inches
		0x00, 0x00, 0x00, 0x00, // Xr numerator/denominator
		0x00, 0x00, 0x00, 0x00, // Yr numerator/denominator
		0x09, // AW
		0x0C, // AH
		byte(p.screen.Size() >> 8), byte(p.screen.Size()), // buffer size
	}
	return prependLength(body)
}

func (p *Processor) buildQRSummary() []byte {
	body := []byte{
		qrUsableAreaID, qrSummaryID, // QCODE: Summary
		qrUsableAreaID, qrHighlighting, qrReplyModes,
	}
	return prependLength(body)
}

// prependLength prefixes body with its own 2-byte big-endian length,
// length covering the whole structured field including itself.
func prependLength(body []byte) []byte {
	length := len(body) + 2
	return append([]byte{byte(length >> 8), byte(length)}, body...)
}
