// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package inflight tracks the most recently issued call of a client so a
// transport-level cancellation of that call can trigger channel recovery.
//
// At most one handle is tracked at a time. Beginning a new call replaces the
// tracked handle and detaches the listener of the one it replaced, so
// listeners never accumulate across calls.
package inflight

import (
	"sync"

	"go.uber.org/atomic"
)

// Handle represents one outstanding call.
type Handle struct {
	id uint64

	mu       sync.Mutex
	listener func()
}

// ID returns the sequence number of the call, starting at 1.
func (h *Handle) ID() uint64 {
	return h.id
}

// Attached reports whether a termination listener is subscribed to h.
func (h *Handle) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listener != nil
}

// Signal reports an abnormal termination of the call. The listener, if still
// attached, runs at most once and is detached before it runs.
func (h *Handle) Signal() {
	h.mu.Lock()
	listener := h.listener
	h.listener = nil
	h.mu.Unlock()

	if listener != nil {
		listener()
	}
}

func (h *Handle) detach() {
	h.mu.Lock()
	h.listener = nil
	h.mu.Unlock()
}

// Tracker holds the handle of the most recently issued call.
type Tracker struct {
	current *atomic.Pointer[Handle]
	nextID  atomic.Uint64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{current: atomic.NewPointer[Handle](nil)}
}

// Begin creates the handle for a new call and makes it the tracked one.
func (t *Tracker) Begin() *Handle {
	h := &Handle{id: t.nextID.Inc()}
	if prev := t.current.Swap(h); prev != nil {
		prev.detach()
	}
	return h
}

// OnAbnormalTermination subscribes f to h. The subscription is refused when
// h is no longer the tracked handle; it reports whether f was attached.
func (t *Tracker) OnAbnormalTermination(h *Handle, f func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t.current.Load() != h {
		return false
	}
	h.listener = f
	return true
}

// Off detaches h's listener and stops tracking h if it is still the tracked
// handle. A newer call's handle is left alone.
func (t *Tracker) Off(h *Handle) {
	h.detach()
	t.current.CompareAndSwap(h, nil)
}

// Current returns the tracked handle, or nil.
func (t *Tracker) Current() *Handle {
	return t.current.Load()
}

// Close detaches and forgets the tracked handle.
func (t *Tracker) Close() {
	if h := t.current.Swap(nil); h != nil {
		h.detach()
	}
}
