// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package upload provides the streaming body source the transport
// pulls from when sending a request body incrementally.
package upload
