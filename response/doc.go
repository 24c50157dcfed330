// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package response models the in-progress result of a single HTTP
// request attempt: the status code, a case-preserving header map fed
// incrementally by the transport's header callback, and the body sink.
package response
