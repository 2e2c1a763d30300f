// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import "bytes"

// TN3270E sub-negotiation command codes.
const (
	tn3270eConnect    byte = 1
	tn3270eDeviceType byte = 2
	tn3270eFunctions  byte = 3
	tn3270eIs         byte = 4
	tn3270eReject     byte = 6
	tn3270eRequest    byte = 7
	tn3270eSend       byte = 8
)

// negotiator drives the telnet option and TN3270E device-type/functions
// handshake. It consumes ControlEvents the Framer extracts and produces
// raw bytes to write back to the transport.
type negotiator struct {
	termType    string
	requestedLU string
	assignedLU  string

	binaryMode        bool
	tn3270eMode       bool
	tn3270eNegotiated bool

	// droppedLU is set once an LU request has already been dropped in
	// response to a REJECT, so a second REJECT with nothing left to fall
	// back to surfaces as a hard negotiation failure (step 4).
	droppedLU bool
}

func newNegotiator(termType, requestedLU string) *negotiator {
	return &negotiator{termType: termType, requestedLU: requestedLU}
}

// handle processes one control event and returns the bytes (if any) that
// must be written back to the host, and true if negotiation has failed
// outright (NegotiationRejected).
func (n *negotiator) handle(ev ControlEvent) (reply []byte, failed bool) {
	switch ev.Kind {
	case CtrlDO:
		return n.handleDo(ev.Option), false
	case CtrlWILL:
		return n.handleWill(ev.Option), false
	case CtrlSB:
		return n.handleSB(ev.Data)
	default:
		// DONT/WONT require no reply in this client's negotiation table.
		return nil, false
	}
}

func (n *negotiator) handleDo(opt byte) []byte {
	switch opt {
	case optTTYPE:
		return []byte{tnIAC, tnWILL, opt}
	case optEOR:
		return []byte{tnIAC, tnWILL, opt}
	case optBINARY:
		n.binaryMode = true
		return []byte{tnIAC, tnWILL, opt}
	case optTN3270E:
		n.tn3270eMode = true
		return []byte{tnIAC, tnWILL, opt}
	default:
		return []byte{tnIAC, tnWONT, opt}
	}
}

func (n *negotiator) handleWill(opt byte) []byte {
	switch opt {
	case optEOR:
		return []byte{tnIAC, tnDO, opt}
	case optBINARY:
		n.binaryMode = true
		return []byte{tnIAC, tnDO, opt}
	default:
		return []byte{tnIAC, tnDONT, opt}
	}
}

// handleSB processes a completed SB...SE block. data is the sub-option
// byte followed by its payload (the IAC SB / IAC SE framing has already
// been stripped by the Framer).
func (n *negotiator) handleSB(data []byte) (reply []byte, failed bool) {
	if len(data) == 0 {
		return nil, false
	}
	opt := data[0]
	body := data[1:]

	switch opt {
	case optTTYPE:
		// SB TTYPE SEND IAC SE -> SB TTYPE IS <term> IAC SE
		if len(body) >= 1 && body[0] == 1 { // SEND
			var buf bytes.Buffer
			buf.Write([]byte{tnIAC, tnSB, optTTYPE, 0}) // 0 = IS
			buf.WriteString(n.termType)
			buf.Write([]byte{tnIAC, tnSE})
			return buf.Bytes(), false
		}
		return nil, false
	case optTN3270E:
		return n.handleTN3270E(body)
	default:
		return nil, false
	}
}

func (n *negotiator) handleTN3270E(data []byte) (reply []byte, failed bool) {
	if len(data) == 0 {
		return nil, false
	}
	cmd := data[0]

	switch cmd {
	case tn3270eSend:
		if len(data) >= 2 && data[1] == tn3270eDeviceType {
			return n.buildDeviceTypeRequest(), false
		}
		return nil, false

	case tn3270eDeviceType:
		if len(data) >= 2 && data[1] == tn3270eIs {
			// DEVICE_TYPE IS <term_type> CONNECT <lu_name>
			rest := data[2:]
			if idx := bytes.IndexByte(rest, tn3270eConnect); idx >= 0 {
				lu := rest[idx+1:]
				n.assignedLU = string(lu)
			}
			var buf bytes.Buffer
			buf.Write([]byte{tnIAC, tnSB, optTN3270E, tn3270eFunctions, tn3270eRequest})
			buf.Write([]byte{tnIAC, tnSE})
			return buf.Bytes(), false
		}
		return nil, false

	case tn3270eReject:
		if n.requestedLU != "" {
			n.requestedLU = ""
			n.droppedLU = true
			return n.buildDeviceTypeRequest(), false
		}
		// No LU to drop: either we never requested one, or we already
		// fell back once. Nothing left to retry.
		return nil, true

	case tn3270eFunctions:
		if len(data) >= 2 && data[1] == tn3270eIs {
			n.tn3270eNegotiated = true
		}
		return nil, false
	}

	return nil, false
}

// buildDeviceTypeRequest builds SB TN3270E DEVICE_TYPE REQUEST <term_type>
// CONNECT [<lu_name>] SE, appending the requested LU name only when one is
// currently set (step 2).
func (n *negotiator) buildDeviceTypeRequest() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{tnIAC, tnSB, optTN3270E, tn3270eDeviceType, tn3270eRequest})
	buf.WriteString(n.termType)
	buf.WriteByte(tn3270eConnect)
	if n.requestedLU != "" {
		buf.WriteString(n.requestedLU)
	}
	buf.Write([]byte{tnIAC, tnSE})
	return buf.Bytes()
}
