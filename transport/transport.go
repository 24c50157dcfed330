// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"io"
	"time"

	"github.com/veloq/httpr/upload"
)

// A Version expresses the preferred HTTP protocol version for a
// request.
type Version int

const (
	// VersionDefault leaves protocol selection to the transport.
	VersionDefault Version = iota
	// Version11 forces HTTP/1.1.
	Version11
	// Version2 enables HTTP/2.
	Version2
)

// MaxRedirects is the fixed redirect hop limit applied when redirect
// following is enabled.
const MaxRedirects = 10

// TLSOptions carries the TLS knobs of one request.
type TLSOptions struct {
	// VerifyPeer enables verification of the peer certificate chain.
	VerifyPeer bool
	// VerifyHost enables verification of the certificate host name.
	// The net/http implementation can only verify both or neither,
	// so verification is skipped unless VerifyPeer and VerifyHost are
	// both set.
	VerifyHost bool
	// CAInfo is a path to a PEM file holding one or more certificates
	// to verify the peer with.
	CAInfo string
	// CAPath is a path to a directory of PEM CA certificates.
	CAPath string
	// CRLFile is a path to a certificate revocation list (PEM or
	// DER). Peer certificates whose serial appears on the list are
	// rejected.
	CRLFile string
}

// A Field is one request header field. Fields are sent in the order
// they were configured.
type Field struct {
	Key   string
	Value string
}

// Options is the full configuration of one logical request, applied
// to a Transport before its first attempt. Configure may be called
// any number of times before the first Perform; the setters are pure
// and idempotent.
type Options struct {
	URL    string
	Method string
	Fields []Field

	FollowRedirects bool
	TLS             TLSOptions
	Version         Version

	// AcceptEncoding is sent verbatim as the Accept-Encoding header
	// when non-empty. The response body is delivered as received.
	AcceptEncoding string

	// Body is a pre-buffered request body (POST, PATCH). Ignored when
	// Upload is set.
	Body []byte

	// Upload streams the request body incrementally from a cursor
	// (PUT). The engine rewinds it before every attempt so the full
	// body is resent.
	Upload *upload.Stream
}

// A Binding attaches one attempt's response destination and timeout
// to a Perform call. The engine creates a fresh Binding, with a fresh
// response behind it, for every attempt.
type Binding struct {
	// Timeout bounds the attempt. Zero means no attempt timeout.
	Timeout time.Duration
	// HeaderLine receives each raw response header line, including
	// the status line, on the transport's I/O goroutine.
	HeaderLine func(line []byte)
	// Sink receives the response body bytes.
	Sink io.Writer
}

// A Transport binds one logical request to one reusable non-blocking
// handle: the same Transport carries all attempts of its request,
// never more than one at a time.
//
// Perform arms the handle for a single attempt and returns
// immediately; done fires exactly once per Perform call, on an
// unspecified goroutine, with nil on success or the transport error.
//
// Cancel is advisory: it may be called from any goroutine at any
// time and stops further transport progress, but does not guarantee
// that done fires synchronously or with a particular error. The
// caller reconciles cancellation against an in-flight completion.
type Transport interface {
	Configure(o Options) error
	Perform(b Binding, done func(error))
	Cancel()

	// ResponseCode returns the HTTP status code of the most recent
	// completed attempt, or 0 if it ended in a transport error.
	ResponseCode() int
	// EffectiveURL returns the final URL of the most recent attempt
	// after any redirects.
	EffectiveURL() string
	// TimeToStart returns how long the most recent attempt took to
	// start producing a response.
	TimeToStart() time.Duration
}
