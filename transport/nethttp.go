// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/http2"
)

// NetHTTP is the production Transport, backed by an http.Client. One
// NetHTTP carries all attempts of one logical request.
type NetHTTP struct {
	mu     sync.Mutex
	opts   Options
	client *http.Client
	cancel context.CancelFunc

	code   int
	effURL string
	tts    time.Duration
}

var _ Transport = (*NetHTTP)(nil)

// NewNetHTTP creates an unconfigured transport handle.
func NewNetHTTP() *NetHTTP {
	return &NetHTTP{}
}

// Configure replaces the handle's request configuration. It may be
// called repeatedly before the first Perform; the last call wins.
func (t *NetHTTP) Configure(o Options) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opts = o
	t.client = nil
	return nil
}

// Perform arms one attempt and returns immediately. done fires exactly
// once, on the transport's I/O goroutine.
func (t *NetHTTP) Perform(b Binding, done func(error)) {
	t.mu.Lock()
	if t.client == nil {
		client, err := buildClient(t.opts)
		if err != nil {
			t.mu.Unlock()
			done(err)
			return
		}
		t.client = client
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if b.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	t.cancel = cancel
	opts := t.opts
	client := t.client
	t.mu.Unlock()

	go t.roundTrip(ctx, cancel, client, opts, b, done)
}

// Cancel stops the in-flight attempt, if any. Advisory: the attempt's
// done callback still fires, typically with a context error.
func (t *NetHTTP) Cancel() {
	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (t *NetHTTP) ResponseCode() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.code
}

func (t *NetHTTP) EffectiveURL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.effURL
}

func (t *NetHTTP) TimeToStart() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tts
}

func (t *NetHTTP) roundTrip(ctx context.Context, cancel context.CancelFunc, client *http.Client, opts Options, b Binding, done func(error)) {
	defer cancel()

	req, err := newRequest(ctx, opts)
	if err != nil {
		done(err)
		return
	}

	start := time.Now()
	resp, err := client.Do(req)

	t.mu.Lock()
	t.tts = time.Since(start)
	if err != nil {
		t.code = 0
		t.mu.Unlock()
		done(err)
		return
	}
	t.code = resp.StatusCode
	t.effURL = resp.Request.URL.String()
	t.mu.Unlock()

	if b.HeaderLine != nil {
		replayHeader(resp, b.HeaderLine)
	}

	var copyErr error
	if b.Sink != nil {
		_, copyErr = io.Copy(b.Sink, resp.Body)
	} else {
		_, copyErr = io.Copy(io.Discard, resp.Body)
	}
	if closeErr := resp.Body.Close(); copyErr == nil {
		copyErr = closeErr
	}
	done(copyErr)
}

func newRequest(ctx context.Context, opts Options) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	switch {
	case opts.Upload != nil:
		body = opts.Upload
	case len(opts.Body) > 0:
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, opts.URL, body)
	if err != nil {
		return nil, err
	}

	if opts.Upload != nil {
		req.ContentLength = opts.Upload.Size()
		// Redirect resends rewind the shared cursor; attempts are
		// sequential so no pull can be concurrent with this.
		req.GetBody = func() (io.ReadCloser, error) {
			opts.Upload.Rewind()
			return io.NopCloser(opts.Upload), nil
		}
	} else if len(opts.Body) > 0 {
		req.ContentLength = int64(len(opts.Body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(opts.Body)), nil
		}
	}

	for _, f := range opts.Fields {
		req.Header.Add(f.Key, f.Value)
	}
	if opts.AcceptEncoding != "" {
		req.Header.Set("Accept-Encoding", opts.AcceptEncoding)
	}
	return req, nil
}

// replayHeader feeds the response status line and header fields
// through the header-line callback in wire form. The status line has
// no colon and is discarded by the parser, matching a transport that
// hands every raw line to the callback.
func replayHeader(resp *http.Response, headerLine func([]byte)) {
	headerLine([]byte(resp.Proto + " " + resp.Status + "\r\n"))
	for k, vv := range resp.Header {
		for _, v := range vv {
			headerLine([]byte(k + ": " + v + "\r\n"))
		}
	}
}

func buildClient(opts Options) (*http.Client, error) {
	tlsCfg, err := buildTLSConfig(opts.TLS)
	if err != nil {
		return nil, err
	}

	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsCfg,
	}
	switch opts.Version {
	case Version2:
		if err := http2.ConfigureTransport(tr); err != nil {
			return nil, errors.Wrap(err, "httpr/transport: enable http2")
		}
	case Version11:
		// Empty TLSNextProto map suppresses protocol upgrade.
		tr.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	}

	client := &http.Client{Transport: tr}
	if opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return errors.Errorf("httpr/transport: stopped after %d redirects", MaxRedirects)
			}
			return nil
		}
	} else {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client, nil
}

func buildTLSConfig(o TLSOptions) (*tls.Config, error) {
	cfg := &tls.Config{
		InsecureSkipVerify: !(o.VerifyPeer && o.VerifyHost), //nolint:gosec // explicit verify(false) request
	}

	if o.CAInfo != "" || o.CAPath != "" {
		pool := x509.NewCertPool()
		if o.CAInfo != "" {
			if err := appendPEMFile(pool, o.CAInfo); err != nil {
				return nil, err
			}
		}
		if o.CAPath != "" {
			entries, err := os.ReadDir(o.CAPath)
			if err != nil {
				return nil, errors.Wrap(err, "httpr/transport: read CA dir")
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if err := appendPEMFile(pool, filepath.Join(o.CAPath, e.Name())); err != nil {
					return nil, err
				}
			}
		}
		cfg.RootCAs = pool
	}

	if o.CRLFile != "" {
		revoked, err := loadCRL(o.CRLFile)
		if err != nil {
			return nil, err
		}
		cfg.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			for _, raw := range rawCerts {
				cert, err := x509.ParseCertificate(raw)
				if err != nil {
					return errors.Wrap(err, "httpr/transport: parse peer certificate")
				}
				if _, ok := revoked[cert.SerialNumber.String()]; ok {
					return errors.Errorf("httpr/transport: certificate %s is revoked", cert.SerialNumber)
				}
			}
			return nil
		}
	}
	return cfg, nil
}

func appendPEMFile(pool *x509.CertPool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "httpr/transport: read CA file")
	}
	if !pool.AppendCertsFromPEM(data) {
		return errors.Errorf("httpr/transport: no certificates in %s", path)
	}
	return nil
}

func loadCRL(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "httpr/transport: read CRL file")
	}
	if block, _ := pem.Decode(data); block != nil {
		data = block.Bytes
	}
	list, err := x509.ParseRevocationList(data)
	if err != nil {
		return nil, errors.Wrap(err, "httpr/transport: parse CRL")
	}
	revoked := make(map[string]struct{}, len(list.RevokedCertificateEntries))
	for _, entry := range list.RevokedCertificateEntries {
		revoked[entry.SerialNumber.String()] = struct{}{}
	}
	return revoked, nil
}
