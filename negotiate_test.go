// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleDoBinaryAndEOR(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "")

	reply := n.handleDo(optBINARY)
	assert.Equal(t, []byte{tnIAC, tnWILL, optBINARY}, reply)
	assert.True(t, n.binaryMode)

	reply = n.handleDo(optEOR)
	assert.Equal(t, []byte{tnIAC, tnWILL, optEOR}, reply)
}

func TestHandleDoUnknownOptionRefused(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "")
	reply := n.handleDo(0x2A)
	assert.Equal(t, []byte{tnIAC, tnWONT, 0x2A}, reply)
}

func TestHandleDoTN3270ESetsMode(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "")
	reply := n.handleDo(optTN3270E)
	assert.Equal(t, []byte{tnIAC, tnWILL, optTN3270E}, reply)
	assert.True(t, n.tn3270eMode)
}

func TestHandleWillEORAndBinary(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "")
	assert.Equal(t, []byte{tnIAC, tnDO, optEOR}, n.handleWill(optEOR))
	assert.Equal(t, []byte{tnIAC, tnDO, optBINARY}, n.handleWill(optBINARY))
	assert.True(t, n.binaryMode)
	assert.Equal(t, []byte{tnIAC, tnDONT, 0x03}, n.handleWill(0x03))
}

func TestHandleSBTTYPESend(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "")
	reply, failed := n.handleSB([]byte{optTTYPE, 0x01})
	assert.False(t, failed)
	want := append([]byte{tnIAC, tnSB, optTTYPE, 0}, []byte("IBM-3279-2-E")...)
	want = append(want, tnIAC, tnSE)
	assert.Equal(t, want, reply)
}

func TestHandleTN3270EDeviceTypeRequestFlow(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "LUPOOL1")

	reply, failed := n.handleSB([]byte{optTN3270E, tn3270eSend, tn3270eDeviceType})
	assert.False(t, failed)
	want := append([]byte{tnIAC, tnSB, optTN3270E, tn3270eDeviceType, tn3270eRequest}, []byte("IBM-3279-2-E")...)
	want = append(want, tn3270eConnect)
	want = append(want, []byte("LUPOOL1")...)
	want = append(want, tnIAC, tnSE)
	assert.Equal(t, want, reply)

	body := []byte{tn3270eDeviceType, tn3270eIs}
	body = append(body, []byte("IBM-3279-2-E")...)
	body = append(body, tn3270eConnect)
	body = append(body, []byte("LUPOOL1")...)
	reply, failed = n.handleSB(append([]byte{optTN3270E}, body...))
	assert.False(t, failed)
	assert.Equal(t, "LUPOOL1", n.assignedLU)
	assert.Equal(t, []byte{tnIAC, tnSB, optTN3270E, tn3270eFunctions, tn3270eRequest, tnIAC, tnSE}, reply)

	reply, failed = n.handleSB([]byte{optTN3270E, tn3270eFunctions, tn3270eIs})
	assert.False(t, failed)
	assert.Nil(t, reply)
	assert.True(t, n.tn3270eNegotiated)
}

// S6: a host REJECTs the requested LU once; the client drops
// the LU name and retries DEVICE_TYPE REQUEST without it. A second REJECT
// with nothing left to drop is a hard negotiation failure.
func TestHandleTN3270ERejectFallsBackThenFails(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "LUPOOL1")

	reply, failed := n.handleSB([]byte{optTN3270E, tn3270eReject})
	assert.False(t, failed)
	assert.True(t, n.droppedLU)
	assert.Equal(t, "", n.requestedLU)
	want := append([]byte{tnIAC, tnSB, optTN3270E, tn3270eDeviceType, tn3270eRequest}, []byte("IBM-3279-2-E")...)
	want = append(want, tn3270eConnect, tnIAC, tnSE)
	assert.Equal(t, want, reply)

	reply, failed = n.handleSB([]byte{optTN3270E, tn3270eReject})
	assert.True(t, failed)
	assert.Nil(t, reply)
}

func TestHandleSBEmptyDataIsNoop(t *testing.T) {
	n := newNegotiator("IBM-3279-2-E", "")
	reply, failed := n.handleSB(nil)
	assert.Nil(t, reply)
	assert.False(t, failed)
}
