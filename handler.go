// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpr

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client.
//
// Handlers run synchronously on the execution's driver goroutine, so
// they observe a consistent execution state and must not block.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler
// chain for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("httpr: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, e *Exec) {
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, e)
		}
	}
}

// A Handler handles the occurrence of an event during a request
// execution.
type Handler interface {
	Handle(Event, *Exec)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(Event, *Exec)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *Exec) {
	f(evt, e)
}
