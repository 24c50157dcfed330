// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package stats counts request execution outcomes. The counters are
// consumed as record-event sinks by the engine and surfaced through
// snapshots; they carry no behavior of their own.
package stats
