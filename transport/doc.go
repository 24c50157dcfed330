// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport binds one logical HTTP request to one reusable
// non-blocking handle with a configure, perform, cancel contract.
//
// The engine consumes the Transport interface; NetHTTP is the
// production implementation on top of net/http, handling TLS options,
// the redirect hop limit, HTTP version preference, raw header-line
// replay, and streamed uploads.
package transport
