// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout provides per-attempt timeout policies for HTTP
// request executions.
package timeout
