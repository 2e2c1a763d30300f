// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessWSFReadPartitionQueryBuildsReply(t *testing.T) {
	s := NewScreen(DefaultRows, DefaultCols)
	p := NewProcessor(s, DefaultCodec())

	body := []byte{0x00, 0x05, sfIDReadPartition, 0xFF, readPartitionQuery}
	reply := p.processWSF(body)

	if assert.NotNil(t, reply) {
		assert.NotEmpty(t, reply.data)
		// Framed: terminates with IAC EOR.
		assert.Equal(t, []byte{tnIAC, tnEOR}, reply.data[len(reply.data)-2:])
	}
}

func TestProcessWSFQueryListAlsoAnswered(t *testing.T) {
	s := NewScreen(DefaultRows, DefaultCols)
	p := NewProcessor(s, DefaultCodec())

	body := []byte{0x00, 0x05, sfIDReadPartition, 0xFF, readPartitionQueryList}
	reply := p.processWSF(body)
	assert.NotNil(t, reply)
}

func TestProcessWSFUnrelatedSFSkippedByLength(t *testing.T) {
	s := NewScreen(DefaultRows, DefaultCols)
	p := NewProcessor(s, DefaultCodec())

	body := []byte{0x00, 0x04, 0x99, 0xAB}
	reply := p.processWSF(body)
	assert.Nil(t, reply)
	assert.Equal(t, 0, p.MalformedRecords())
}

func TestProcessWSFTruncatedLengthIsMalformed(t *testing.T) {
	s := NewScreen(DefaultRows, DefaultCols)
	p := NewProcessor(s, DefaultCodec())

	body := []byte{0x00, 0xFF, 0x01}
	reply := p.processWSF(body)
	assert.Nil(t, reply)
	assert.Equal(t, 1, p.MalformedRecords())
}

func TestBuildQRUsableAreaByteLayout(t *testing.T) {
	s := NewScreen(DefaultRows, DefaultCols)
	p := NewProcessor(s, DefaultCodec())

	body := p.buildQRUsableArea()
	// length(2) + qrUsableAreaID + 0x81 + flags + reserved + width(2) + height(2) + ...
	assert.Equal(t, qrUsableAreaID, body[2])
	assert.Equal(t, byte(0x81), body[3])
	assert.Equal(t, byte(0x01), body[4], "flags")
	assert.Equal(t, byte(0x00), body[5], "reserved")
	assert.Equal(t, []byte{0x00, 0x50}, body[6:8], "width=80")
	assert.Equal(t, []byte{0x00, 0x18}, body[8:10], "height=24")
}

func TestBuildQRSummaryByteLayout(t *testing.T) {
	s := NewScreen(DefaultRows, DefaultCols)
	p := NewProcessor(s, DefaultCodec())

	body := p.buildQRSummary()
	assert.Equal(t, byte(0x81), body[2], "QCODE high byte")
	assert.Equal(t, byte(0x80), body[3], "QCODE low byte")
}

func TestBuildQueryReplyIsAIDPrefixedAndFramed(t *testing.T) {
	s := NewScreen(DefaultRows, DefaultCols)
	p := NewProcessor(s, DefaultCodec())

	out := p.buildQueryReply()
	assert.Equal(t, byte(AIDStructuredField), out[0])
	assert.Equal(t, []byte{tnIAC, tnEOR}, out[len(out)-2:])
}

func TestPrependLengthIncludesItself(t *testing.T) {
	body := []byte{0xAA, 0xBB, 0xCC}
	out := prependLength(body)
	length := int(out[0])<<8 | int(out[1])
	assert.Equal(t, len(out), length)
}
