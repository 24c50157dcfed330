// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/veloq/httpr/config"
	"github.com/veloq/httpr/form"
	"github.com/veloq/httpr/response"
	"github.com/veloq/httpr/retry"
	"github.com/veloq/httpr/stats"
	"github.com/veloq/httpr/timeout"
	"github.com/veloq/httpr/transport"
)

const (
	tracerName     = "github.com/veloq/httpr"
	clientSpanName = "external"
)

var emptyHandlers = HandlerGroup{}

// A Client is an asynchronous HTTP request engine with retry support.
// Its zero value is a valid configuration: net/http transport,
// defaults from config.Default (redirects followed, TLS verified, one
// attempt, 5 second attempt timeout), no logging, no statistics.
//
// A Client creates Requests; each Request owns one transport handle
// that is reused across all of its attempts. Client is safe for
// concurrent use by multiple goroutines; a Request is not.
type Client struct {
	// Transport creates the transport handle for a new Request. If
	// nil, transport.NewNetHTTP is used.
	Transport func() transport.Transport

	// RetryPolicy is the retry policy applied to new Requests. The
	// zero policy defers to the configuration defaults.
	RetryPolicy retry.Policy

	// TimeoutPolicy is the per-attempt timeout policy applied to new
	// Requests. If nil, a fixed timeout from the configuration
	// defaults is used.
	TimeoutPolicy timeout.Policy

	// Handlers allows custom handler chains to be invoked at
	// designated events during request executions. If nil, no
	// handlers run.
	Handlers *HandlerGroup

	// Logger receives debug events from request executions. If nil,
	// logging is disabled.
	Logger *zerolog.Logger

	// Tracer creates the client span recorded per execution. If nil,
	// the global otel tracer provider is used.
	Tracer trace.Tracer

	// Stats receives execution telemetry. If nil, nothing is
	// recorded.
	Stats *stats.Stats

	// Clock drives retry timers and future deadline waits. If nil,
	// the wall clock is used. Tests inject a mock.
	Clock clock.Clock

	// Scheduler arms retry timers. If nil, a scheduler on Clock is
	// used.
	Scheduler Scheduler

	// Jitter seeds the backoff randomness of each Request: nil (seed
	// from the current time), a time.Time, int, or int64 seed, a
	// rand.Source, or a *rand.Rand.
	Jitter interface{}

	cfg *config.Config
}

// New creates a Client whose request defaults come from cfg.
func New(cfg config.Config) *Client {
	return &Client{
		RetryPolicy: retry.Policy{Attempts: cfg.Attempts, OnFails: cfg.RetryOnFails},
		cfg:         &cfg,
	}
}

// NewRequest creates an empty Request carrying the client's defaults
// and a fresh transport handle. Like the transport it wraps, the
// Request follows redirects and verifies TLS unless configured
// otherwise.
func (c *Client) NewRequest() *Request {
	cfg := c.config()
	return &Request{
		client: c,
		tr:     c.newTransport(),
		opts:   optionsFromConfig(cfg),
		tmo:    c.timeoutPolicy(cfg),
		policy: c.retryPolicy(cfg),
	}
}

// Get issues a GET to the specified URL using the client's defaults
// and blocks for the outcome.
func (c *Client) Get(url string) (*response.Response, error) {
	return c.NewRequest().Get(url).Perform()
}

// Head issues a HEAD to the specified URL using the client's defaults
// and blocks for the outcome.
func (c *Client) Head(url string) (*response.Response, error) {
	return c.NewRequest().Head(url).Perform()
}

// Post issues a POST of body to the specified URL using the client's
// defaults and blocks for the outcome. The body may be nil, a string,
// a []byte, an io.Reader, or an io.ReadCloser.
func (c *Client) Post(url, contentType string, body interface{}) (*response.Response, error) {
	return c.NewRequest().Post(url, body).Header("Content-Type", contentType).Perform()
}

// Put issues a streaming PUT of body to the specified URL using the
// client's defaults and blocks for the outcome. Body types are as for
// Post.
func (c *Client) Put(url string, body interface{}) (*response.Response, error) {
	return c.NewRequest().Put(url, body).Perform()
}

// PostForm issues a multipart form POST to the specified URL using
// the client's defaults and blocks for the outcome.
func (c *Client) PostForm(url string, f *form.Form) (*response.Response, error) {
	return c.NewRequest().Form(url, f).Perform()
}

func (c *Client) config() config.Config {
	if c.cfg != nil {
		return *c.cfg
	}
	return config.Default()
}

func (c *Client) retryPolicy(cfg config.Config) retry.Policy {
	if c.RetryPolicy != (retry.Policy{}) {
		return c.RetryPolicy.Normalized()
	}
	return retry.Policy{Attempts: cfg.Attempts, OnFails: cfg.RetryOnFails}.Normalized()
}

func (c *Client) timeoutPolicy(cfg config.Config) timeout.Policy {
	if c.TimeoutPolicy != nil {
		return c.TimeoutPolicy
	}
	return timeout.Fixed(time.Duration(cfg.TimeoutMS) * time.Millisecond)
}

func (c *Client) newTransport() transport.Transport {
	if c.Transport != nil {
		return c.Transport()
	}
	return transport.NewNetHTTP()
}

func (c *Client) clock() clock.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return clock.New()
}

func (c *Client) scheduler() Scheduler {
	if c.Scheduler != nil {
		return c.Scheduler
	}
	return clockScheduler{clk: c.clock()}
}

func (c *Client) tracer() trace.Tracer {
	if c.Tracer != nil {
		return c.Tracer
	}
	return otel.Tracer(tracerName)
}

func (c *Client) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return zerolog.Nop()
}

func (c *Client) handlerGroup() *HandlerGroup {
	if c.Handlers != nil {
		return c.Handlers
	}
	return &emptyHandlers
}

func optionsFromConfig(cfg config.Config) transport.Options {
	var v transport.Version
	switch cfg.HTTPVersion {
	case "1.1":
		v = transport.Version11
	case "2":
		v = transport.Version2
	}
	return transport.Options{
		FollowRedirects: cfg.FollowRedirects,
		TLS: transport.TLSOptions{
			VerifyPeer: cfg.VerifyTLS,
			VerifyHost: cfg.VerifyTLS,
			CAInfo:     cfg.CAInfo,
			CAPath:     cfg.CAPath,
			CRLFile:    cfg.CRLFile,
		},
		Version:        v,
		AcceptEncoding: cfg.AcceptEncoding,
	}
}
