// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

import (
	"errors"
	"strings"
)

// A Kind classifies the failure of a request execution.
type Kind int

const (
	// KindTransport is a connection, DNS, TLS, or I/O failure
	// reported by the transport, or a failure reading the response
	// body. Retryable when the retry policy enables OnFails.
	KindTransport Kind = iota
	// KindTimer is a failure arming or firing the retry timer. It is
	// always fatal: the execution finalizes immediately.
	KindTimer
	// KindCanceled is reported when cancellation wins the race
	// against natural completion.
	KindCanceled
	// KindDeadline is reported by ResponseFuture.Get when the overall
	// execution budget elapses before an outcome arrives.
	KindDeadline
)

var kindNames = []string{
	"transport error",
	"timer error",
	"canceled",
	"deadline exceeded",
}

// String returns a short description of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown error"
}

// An Error is the failure outcome of a request execution. Only the
// final attempt's error is retained; errors recovered by intermediate
// retries are not aggregated.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Op is the HTTP method of the request, in net/http error style
	// ("Get", "Put").
	Op string
	// URL is the request target.
	URL string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Op + " " + e.URL + ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout, either of the
// overall execution budget or of the final attempt.
func (e *Error) Timeout() bool {
	return e.Kind == KindDeadline || isTimeout(e.Err)
}

// isTimeout reports whether err or any wrapped cause carries a
// Timeout() method returning true. Temporary() is deliberately not
// consulted; its semantics are too loose.
func isTimeout(err error) bool {
	var ht hasTimeout
	return errors.As(err, &ht) && ht.Timeout()
}

type hasTimeout interface {
	Timeout() bool
}

// opName is lifted from net/http/client.go: it renders an HTTP method
// the way url.Error does ("GET" becomes "Get").
func opName(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
