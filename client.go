// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import (
	"fmt"
	"io"
)

// DefaultRows and DefaultCols are the standard 3270 Model 2 geometry.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger attaches a diagnostic Logger collaborator. The zero value
// logs nothing.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCodec overrides the default EBCDIC codec.
func WithCodec(cd Codec) Option {
	return func(c *Client) { c.codec = cd }
}

// WithGeometry overrides the default 24x80 screen geometry.
func WithGeometry(rows, cols int) Option {
	return func(c *Client) { c.rows, c.cols = rows, cols }
}

// Client is a single TN3270E session: the owner of its Screen and receive
// buffer. It is single-threaded and cooperative -- callers must not
// invoke Connect/PollScreen/SendAID concurrently on the same Client.
type Client struct {
	log   Logger
	codec Codec
	rows  int
	cols  int

	conn   io.ReadWriter
	framer *Framer
	neg    *negotiator
	proc   *Processor
	screen *Screen

	pending [][]byte

	Host         string
	Port         int
	TLS          bool
	TerminalType string
	RequestedLU  string

	connected bool
}

// NewClient constructs a Client with the default 24x80 geometry and
// CP1047 codec, or whatever Options override them.
func NewClient(opts ...Option) *Client {
	c := &Client{
		log:   noopLogger{},
		codec: DefaultCodec(),
		rows:  DefaultRows,
		cols:  DefaultCols,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.screen = NewScreen(c.rows, c.cols)
	c.proc = NewProcessor(c.screen, c.codec)
	return c
}

// AssignedLU returns the LU name the host assigned during TN3270E
// negotiation, or "" if none was assigned or TN3270E was not negotiated.
func (c *Client) AssignedLU() string {
	if c.neg == nil {
		return ""
	}
	return c.neg.assignedLU
}

// BinaryMode reports whether the host put the session into telnet binary
// mode during negotiation.
func (c *Client) BinaryMode() bool {
	return c.neg != nil && c.neg.binaryMode
}

// TN3270EMode reports whether the session is using TN3270E framing
// (5-byte data-type headers on every record).
func (c *Client) TN3270EMode() bool {
	return c.neg != nil && c.neg.tn3270eMode
}

// TN3270ENegotiated reports whether the TN3270E device-type/functions
// handshake completed successfully.
func (c *Client) TN3270ENegotiated() bool {
	return c.neg != nil && c.neg.tn3270eNegotiated
}

// MalformedRecords returns the running count of discarded malformed
// sub-structures.
func (c *Client) MalformedRecords() int { return c.proc.MalformedRecords() }

// UnknownCommands returns the running count of command bytes that fell
// back to the Write path.
func (c *Client) UnknownCommands() int { return c.proc.UnknownCommands() }

// Screen returns the current screen snapshot. It remains valid until the
// next PollScreen or SendAID call.
func (c *Client) Screen() *Screen { return c.screen }

// Connect drives telnet option and TN3270E negotiation over conn, an
// already-established (and, if needed, already-TLS-wrapped) byte-stream
// transport. It returns once TN3270ENegotiated() is true, or once the
// initial non-TN3270E screen has arrived. host/port/tls/termType/lu are
// recorded for descriptive purposes only.
func (c *Client) Connect(conn io.ReadWriter, host string, port int, tls bool, termType, lu string) error {
	c.conn = conn
	c.Host, c.Port, c.TLS = host, port, tls
	c.TerminalType, c.RequestedLU = termType, lu

	c.framer = NewFramer()
	c.neg = newNegotiator(termType, lu)
	c.proc.SetTN3270EMode(false)
	c.pending = nil
	c.connected = true

	c.log.Infof("connecting to %s:%d (tls=%v term=%s lu=%s)", host, port, tls, termType, lu)

	buf := make([]byte, 4096)
	sawRecord := false

	for {
		n, err := conn.Read(buf)
		if err != nil || n == 0 {
			c.connected = false
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}

		records, events := c.framer.Feed(buf[:n])

		for _, ev := range events {
			reply, failed := c.neg.handle(ev)
			if failed {
				c.connected = false
				return ErrNegotiationRejected
			}
			c.proc.SetTN3270EMode(c.neg.tn3270eMode)
			if len(reply) > 0 {
				if _, werr := conn.Write(reply); werr != nil {
					c.connected = false
					return fmt.Errorf("%w: %v", ErrTransport, werr)
				}
			}
		}

		for _, rec := range records {
			if reply := c.proc.ProcessRecord(rec); reply != nil {
				if _, werr := conn.Write(reply); werr != nil {
					c.connected = false
					return fmt.Errorf("%w: %v", ErrTransport, werr)
				}
			}
			sawRecord = true
		}

		if c.neg.tn3270eNegotiated {
			return nil
		}
		if !c.neg.tn3270eMode && sawRecord {
			return nil
		}
	}
}

// Disconnect closes the transport (if it implements io.Closer), clears
// the receive buffer, and marks the session disconnected. It is
// idempotent.
func (c *Client) Disconnect() error {
	if !c.connected {
		return nil
	}
	c.connected = false
	c.pending = nil
	if c.framer != nil {
		c.framer = NewFramer()
	}
	if closer, ok := c.conn.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// PollScreen consumes exactly one complete inbound record if available
// and returns the updated screen snapshot. It blocks on the transport
// read only when no complete record is already buffered.
func (c *Client) PollScreen() (*Screen, error) {
	if len(c.pending) == 0 {
		if err := c.fillPending(); err != nil {
			return nil, err
		}
	}
	if len(c.pending) == 0 {
		return c.screen, nil
	}

	rec := c.pending[0]
	c.pending = c.pending[1:]

	if reply := c.proc.ProcessRecord(rec); reply != nil {
		if _, err := c.conn.Write(reply); err != nil {
			c.connected = false
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
	}

	return c.screen, nil
}

// fillPending blocks on a single transport read and feeds it to the
// framer, queuing any records extracted. Control events arriving outside
// negotiation (rare, but some hosts re-probe options mid-session) are
// answered the same way Connect answers them.
func (c *Client) fillPending() error {
	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if err != nil || n == 0 {
		c.connected = false
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	records, events := c.framer.Feed(buf[:n])
	for _, ev := range events {
		reply, failed := c.neg.handle(ev)
		if failed {
			c.connected = false
			return ErrNegotiationRejected
		}
		c.proc.SetTN3270EMode(c.neg.tn3270eMode)
		if len(reply) > 0 {
			if _, werr := c.conn.Write(reply); werr != nil {
				c.connected = false
				return fmt.Errorf("%w: %v", ErrTransport, werr)
			}
		}
	}
	c.pending = append(c.pending, records...)
	return nil
}

// SendAID transmits aid with the given modified-field overrides and
// clears every field's MDT afterward (unless aid is a Short Read, which
// carries no field data at all). It is the only outbound operation other
// than the replies Connect/PollScreen send automatically for TN3270E
// negotiation and Query Reply structured fields.
func (c *Client) SendAID(aid AID, modifiedFields []FieldValue) error {
	if !c.connected {
		return fmt.Errorf("%w: not connected", ErrTransport)
	}
	out := c.proc.BuildAID(aid, modifiedFields)
	if _, err := c.conn.Write(out); err != nil {
		c.connected = false
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	c.log.Debugf("sent AID %s (%d modified fields)", aid, len(modifiedFields))
	return nil
}
