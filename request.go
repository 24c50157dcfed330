// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/veloq/httpr/form"
	"github.com/veloq/httpr/response"
	"github.com/veloq/httpr/retry"
	"github.com/veloq/httpr/timeout"
	"github.com/veloq/httpr/transport"
	"github.com/veloq/httpr/upload"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerSpanID    = "X-Span-Id"
	headerRequestID = "X-Request-Id"
)

const dispatchedMsg = "httpr: request already dispatched"

// A Request is one logical HTTP request: a fluent configuration
// surface bound to a single reusable transport handle that carries
// every attempt.
//
// Configuration is immutable after dispatch: all setters panic once
// AsyncPerform or Perform has been called. A Request is dispatched at
// most once.
//
// Setters return the Request for chaining:
//
//	resp, err := client.NewRequest().
//		Get("https://example.com/health").
//		Timeout(200 * time.Millisecond).
//		Retry(3, true).
//		Perform()
type Request struct {
	client *Client
	tr     transport.Transport
	opts   transport.Options
	tmo    timeout.Policy
	policy retry.Policy
	body   *upload.Stream
	err    error

	dispatched atomic.Bool
	exec       atomic.Pointer[execution]
}

// URL sets the target URL.
func (r *Request) URL(url string) *Request {
	r.checkMutable()
	r.opts.URL = url
	return r
}

// Method sets the HTTP method.
func (r *Request) Method(method string) *Request {
	r.checkMutable()
	r.opts.Method = method
	return r
}

// Get configures a GET of the given URL.
func (r *Request) Get(url string) *Request {
	return r.Method(http.MethodGet).URL(url)
}

// Head configures a HEAD of the given URL.
func (r *Request) Head(url string) *Request {
	return r.Method(http.MethodHead).URL(url)
}

// Delete configures a DELETE of the given URL.
func (r *Request) Delete(url string) *Request {
	return r.Method(http.MethodDelete).URL(url)
}

// Options configures an OPTIONS of the given URL.
func (r *Request) Options(url string) *Request {
	return r.Method(http.MethodOptions).URL(url)
}

// Post configures a POST of body to the given URL. The body may be
// nil, a string, a []byte, an io.Reader, or an io.ReadCloser.
func (r *Request) Post(url string, body interface{}) *Request {
	return r.Method(http.MethodPost).URL(url).Body(body)
}

// Patch configures a PATCH of body to the given URL. Body types are
// as for Post.
func (r *Request) Patch(url string, body interface{}) *Request {
	return r.Method(http.MethodPatch).URL(url).Body(body)
}

// Put configures a PUT of body to the given URL. Unlike Post, the
// body is streamed to the transport through a pull cursor rather than
// handed over pre-buffered, and it is rewound and resent in full on
// every retry. Body types are as for Post.
func (r *Request) Put(url string, body interface{}) *Request {
	r.Method(http.MethodPut).URL(url)
	b, err := bodyBytes(body)
	if err != nil {
		r.fail(err)
		return r
	}
	r.body = upload.NewStream(b)
	r.opts.Upload = r.body
	r.opts.Body = nil
	return r
}

// Form configures a POST of the multipart form to the given URL. The
// form is encoded immediately and sent pre-buffered with the matching
// Content-Type header.
func (r *Request) Form(url string, f *form.Form) *Request {
	r.Method(http.MethodPost).URL(url)
	contentType, body, err := f.Encode()
	if err != nil {
		r.fail(err)
		return r
	}
	r.opts.Body = body
	return r.Header("Content-Type", contentType)
}

// Body sets a pre-buffered request body. The body may be nil, a
// string, a []byte, an io.Reader, or an io.ReadCloser; readers are
// drained and buffered at call time.
func (r *Request) Body(body interface{}) *Request {
	r.checkMutable()
	b, err := bodyBytes(body)
	if err != nil {
		r.fail(err)
		return r
	}
	r.opts.Body = b
	r.opts.Upload = nil
	r.body = nil
	return r
}

// Header appends one request header field.
func (r *Request) Header(key, value string) *Request {
	r.checkMutable()
	r.opts.Fields = append(r.opts.Fields, transport.Field{Key: key, Value: value})
	return r
}

// Headers appends request header fields from a map, in key order.
func (r *Request) Headers(h map[string]string) *Request {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Header(k, h[k])
	}
	return r
}

// Timeout sets a fixed per-attempt timeout. Zero disables the attempt
// timeout.
func (r *Request) Timeout(d time.Duration) *Request {
	return r.TimeoutPolicy(timeout.Fixed(d))
}

// TimeoutPolicy sets the per-attempt timeout policy.
func (r *Request) TimeoutPolicy(p timeout.Policy) *Request {
	r.checkMutable()
	r.tmo = p
	return r
}

// Retry sets the maximum number of attempts, including the first, and
// whether transport errors are retried. Attempts below 1 behave as 1
// (no retries). Server-error statuses (>= 500) are retried regardless
// of onFails.
func (r *Request) Retry(attempts int, onFails bool) *Request {
	r.checkMutable()
	r.policy = retry.Policy{Attempts: attempts, OnFails: onFails}.Normalized()
	return r
}

// FollowRedirects sets whether redirects are followed, up to 10 hops.
func (r *Request) FollowRedirects(follow bool) *Request {
	r.checkMutable()
	r.opts.FollowRedirects = follow
	return r
}

// Verify sets whether the peer certificate and host name are
// verified.
func (r *Request) Verify(verify bool) *Request {
	r.checkMutable()
	r.opts.TLS.VerifyPeer = verify
	r.opts.TLS.VerifyHost = verify
	return r
}

// CAInfo sets a file holding one or more certificates to verify the
// peer with.
func (r *Request) CAInfo(path string) *Request {
	r.checkMutable()
	r.opts.TLS.CAInfo = path
	return r
}

// CAPath sets a directory of CA certificates.
func (r *Request) CAPath(path string) *Request {
	r.checkMutable()
	r.opts.TLS.CAPath = path
	return r
}

// CRLFile sets a certificate revocation list applied during peer
// verification.
func (r *Request) CRLFile(path string) *Request {
	r.checkMutable()
	r.opts.TLS.CRLFile = path
	return r
}

// Version sets the preferred HTTP protocol version.
func (r *Request) Version(v transport.Version) *Request {
	r.checkMutable()
	r.opts.Version = v
	return r
}

// AsyncPerform dispatches the request and returns the pending
// outcome immediately. The returned future is bounded by the overall
// execution budget, computed before the first attempt from the
// per-attempt timeout ceiling, the retry policy, and the worst-case
// backoff waits.
//
// AsyncPerform may be called at most once per Request.
func (r *Request) AsyncPerform() *ResponseFuture {
	if !r.dispatched.CompareAndSwap(false, true) {
		panic(dispatchedMsg)
	}

	c := r.client
	policy := r.policy.Normalized()
	fut := &ResponseFuture{
		done:   make(chan struct{}),
		budget: retry.Budget(r.tmo.Ceiling(), policy.Attempts),
		clk:    c.clock(),
		cancel: r.Cancel,
	}

	// The span belongs to the request, not to any caller goroutine.
	_, span := c.tracer().Start(context.Background(), clientSpanName,
		trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("http.url", r.opts.URL))
	if sc := span.SpanContext(); sc.HasTraceID() {
		r.opts.Fields = append(r.opts.Fields,
			transport.Field{Key: headerTraceID, Value: sc.TraceID().String()},
			transport.Field{Key: headerSpanID, Value: sc.SpanID().String()},
		)
	}
	r.opts.Fields = append(r.opts.Fields,
		transport.Field{Key: headerRequestID, Value: uuid.NewString()})

	err := r.err
	if err == nil {
		err = r.tr.Configure(r.opts)
	}
	if err != nil {
		span.SetAttributes(attribute.Bool("error", true))
		span.End()
		fut.complete(nil, &Error{
			Kind: KindTransport,
			Op:   opName(r.opts.Method),
			URL:  r.opts.URL,
			Err:  err,
		})
		return fut
	}

	x := &execution{
		Exec:     Exec{Attempt: 1},
		tr:       r.tr,
		policy:   policy,
		backoff:  retry.NewBackoff(c.Jitter),
		tmo:      r.tmo,
		sched:    c.scheduler(),
		handlers: c.handlerGroup(),
		log:      c.logger(),
		span:     span,
		st:       c.Stats,
		fut:      fut,
		body:     r.body,
		op:       opName(r.opts.Method),
		url:      r.opts.URL,
		signals:  make(chan execSignal, 3),
	}
	r.exec.Store(x)
	go x.run()
	return fut
}

// Perform dispatches the request and blocks until the outcome is
// available or the execution budget elapses. It must not be called
// from the engine's own callbacks; that would deadlock the context
// driving completion.
func (r *Request) Perform() (*response.Response, error) {
	return r.AsyncPerform().Get()
}

// Cancel requests cancellation of the dispatched execution. It is
// advisory and safe to call from any goroutine at any time, including
// concurrently with natural completion; the execution still delivers
// exactly one outcome. Cancel before dispatch is a no-op.
func (r *Request) Cancel() {
	if x := r.exec.Load(); x != nil {
		x.cancelReq()
	}
}

func (r *Request) checkMutable() {
	if r.dispatched.Load() {
		panic(dispatchedMsg)
	}
}

// fail records a builder error. The first error wins and is surfaced
// when the request is dispatched.
func (r *Request) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

const badBodyTypeMsg = "httpr: invalid body type (use nil, string, " +
	"[]byte, io.Reader or io.ReadCloser)"

// bodyBytes converts a generic body parameter to a byte slice. A
// reader is read to the end and, if it is also a Closer, closed.
func bodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return io.ReadAll(x)
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
