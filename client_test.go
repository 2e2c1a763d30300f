// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost drives the server side of a net.Pipe: it completes just enough
// of the TN3270E handshake for Connect to return, then pushes one screen.
func fakeHost(t *testing.T, conn net.Conn, lu string) {
	t.Helper()
	buf := make([]byte, 4096)

	write := func(b []byte) {
		_, err := conn.Write(b)
		require.NoError(t, err)
	}
	readEvent := func() []byte {
		n, err := conn.Read(buf)
		require.NoError(t, err)
		return append([]byte(nil), buf[:n]...)
	}

	// DO TN3270E -> expect WILL TN3270E
	write([]byte{tnIAC, tnDO, optTN3270E})
	readEvent()

	// SB TN3270E SEND DEVICE_TYPE SE -> expect DEVICE_TYPE REQUEST <term> CONNECT <lu>
	write([]byte{tnIAC, tnSB, optTN3270E, tn3270eSend, tn3270eDeviceType, tnIAC, tnSE})
	readEvent()

	// SB TN3270E DEVICE_TYPE IS <term> CONNECT <lu> SE -> expect FUNCTIONS REQUEST
	reply := []byte{tnIAC, tnSB, optTN3270E, tn3270eDeviceType, tn3270eIs}
	reply = append(reply, []byte("IBM-3279-2-E")...)
	reply = append(reply, tn3270eConnect)
	reply = append(reply, []byte(lu)...)
	reply = append(reply, tnIAC, tnSE)
	write(reply)
	readEvent()

	// SB TN3270E FUNCTIONS IS SE -> negotiation completes, no reply expected.
	write([]byte{tnIAC, tnSB, optTN3270E, tn3270eFunctions, tn3270eIs, tnIAC, tnSE})
}

func TestClientConnectNegotiatesTN3270E(t *testing.T) {
	clientConn, hostConn := net.Pipe()
	defer clientConn.Close()
	defer hostConn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fakeHost(t, hostConn, "LUPOOL1")
	}()

	c := NewClient()
	err := c.Connect(clientConn, "mainframe.example", 23, false, "IBM-3279-2-E", "LUPOOL1")
	require.NoError(t, err)

	assert.True(t, c.TN3270ENegotiated())
	assert.Equal(t, "LUPOOL1", c.AssignedLU())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fake host did not finish")
	}
}

func TestClientPollScreenAppliesWriteAndSendAIDRoundTrips(t *testing.T) {
	clientConn, hostConn := net.Pipe()
	defer clientConn.Close()
	defer hostConn.Close()

	go fakeHost(t, hostConn, "")

	c := NewClient()
	err := c.Connect(clientConn, "mainframe.example", 23, false, "IBM-3279-2-E", "")
	require.NoError(t, err)

	screenRecord := FrameRecord([]byte{0x05, 0xC3, 0x11, 0x40, 0x40, 0xC8, 0xC5, 0xD3, 0xD3, 0xD6})
	readAck := make(chan []byte, 1)
	go func() {
		_, werr := hostConn.Write(screenRecord)
		require.NoError(t, werr)
		buf := make([]byte, 4096)
		n, rerr := hostConn.Read(buf)
		require.NoError(t, rerr)
		readAck <- append([]byte(nil), buf[:n]...)
	}()

	screen, err := c.PollScreen()
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(screen.Cells[0:5]))

	err = c.SendAID(AIDEnter, nil)
	require.NoError(t, err)

	select {
	case got := <-readAck:
		// The session negotiated TN3270E, so a 5-byte header precedes the AID.
		assert.Equal(t, byte(AIDEnter), got[5])
		assert.Equal(t, []byte{tnIAC, tnEOR}, got[len(got)-2:])
	case <-time.After(2 * time.Second):
		t.Fatal("host never received AID")
	}
}

func TestClientDisconnectIsIdempotent(t *testing.T) {
	clientConn, hostConn := net.Pipe()
	defer hostConn.Close()

	c := NewClient()
	assert.NoError(t, c.Disconnect())

	go fakeHost(t, hostConn, "")
	require.NoError(t, c.Connect(clientConn, "h", 23, false, "IBM-3279-2-E", ""))

	assert.NoError(t, c.Disconnect())
	assert.NoError(t, c.Disconnect())
}

func TestClientSendAIDWhenNotConnectedFails(t *testing.T) {
	c := NewClient()
	err := c.SendAID(AIDEnter, nil)
	assert.ErrorIs(t, err, ErrTransport)
}
