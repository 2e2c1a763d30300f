// Part of the tn3270 client library. Licensed under the MIT license. See
// LICENSE in the project root for license information.

package tn3270

import "errors"

// Sentinel errors collaborators can match with errors.Is.
var (
	// ErrTransport wraps a read/write failure or an unexpected zero-byte
	// read from the transport.
	ErrTransport = errors.New("tn3270: transport error")

	// ErrNegotiationRejected reports a TN3270E REJECT with no LU fallback
	// remaining: either no specific LU was ever requested, or a prior
	// fallback already happened.
	ErrNegotiationRejected = errors.New("tn3270: negotiation rejected")
)
