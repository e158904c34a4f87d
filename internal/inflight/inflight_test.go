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

package inflight

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalRunsListenerOnce(t *testing.T) {
	tr := NewTracker()
	h := tr.Begin()

	var fired int
	require.True(t, tr.OnAbnormalTermination(h, func() { fired++ }))
	assert.True(t, h.Attached())

	h.Signal()
	h.Signal()
	assert.Equal(t, 1, fired)
	assert.False(t, h.Attached())
}

func TestOffDetaches(t *testing.T) {
	tr := NewTracker()
	h := tr.Begin()

	var fired bool
	tr.OnAbnormalTermination(h, func() { fired = true })
	tr.Off(h)

	h.Signal()
	assert.False(t, fired)
	assert.Nil(t, tr.Current())
}

func TestBeginReplacesPreviousHandle(t *testing.T) {
	tr := NewTracker()
	a := tr.Begin()

	var aFired bool
	tr.OnAbnormalTermination(a, func() { aFired = true })

	b := tr.Begin()
	assert.Equal(t, b, tr.Current())
	assert.False(t, a.Attached(), "replaced handle must not keep its listener")

	a.Signal()
	assert.False(t, aFired)

	assert.False(t, tr.OnAbnormalTermination(a, func() {}), "stale handle must not subscribe")
	assert.Equal(t, uint64(1), a.ID())
	assert.Equal(t, uint64(2), b.ID())
}

func TestOffOfOlderCallKeepsNewer(t *testing.T) {
	tr := NewTracker()
	a := tr.Begin()
	b := tr.Begin()
	tr.OnAbnormalTermination(b, func() {})

	tr.Off(a)
	assert.Equal(t, b, tr.Current())
	assert.True(t, b.Attached())
}

func TestClose(t *testing.T) {
	tr := NewTracker()
	h := tr.Begin()
	tr.OnAbnormalTermination(h, func() { t.Fatal("listener ran after close") })

	tr.Close()
	tr.Close()
	h.Signal()
	assert.Nil(t, tr.Current())
}

func TestAtMostOneListener(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	handles := make([]*Handle, 64)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := tr.Begin()
			tr.OnAbnormalTermination(h, func() {})
			handles[i] = h
		}(i)
	}
	wg.Wait()

	var attached int
	for _, h := range handles {
		if h.Attached() {
			attached++
		}
	}
	assert.LessOrEqual(t, attached, 1)
}
