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

package searchrpcconfig

import (
	"time"

	"github.com/searchrpc/searchrpc"
)

// Retry configures how failed attempts are retried.
//
//	attempts: 3
//	backoff:
//	  exponential:
//	    first: 10ms
//	    max: 1s
type Retry struct {
	// Attempts is the total attempt budget of a call. Zero keeps
	// retry.DefaultMaxAttempts.
	Attempts uint    `config:"attempts,interpolate"`
	Backoff  Backoff `config:"backoff"`
}

// Backoff specifies the strategy pacing retries. The only strategy is
// exponential with full jitter.
type Backoff struct {
	Exponential ExponentialBackoff `config:"exponential"`
}

// Strategy builds the configured strategy.
func (c Backoff) Strategy() (searchrpc.BackoffStrategy, error) {
	return c.Exponential.Strategy()
}

// ExponentialBackoff waits up to First before the first retry, doubling the
// range on every retry without exceeding Max. Unset values keep the
// client's defaults of 10ms and 1s.
type ExponentialBackoff struct {
	First time.Duration `config:"first,interpolate"`
	Max   time.Duration `config:"max,interpolate"`
}

const (
	_defaultFirstBackoff = 10 * time.Millisecond
	_defaultMaxBackoff   = time.Second
)

// Strategy builds the exponential strategy.
func (c ExponentialBackoff) Strategy() (searchrpc.BackoffStrategy, error) {
	first, max := c.First, c.Max
	if first == 0 {
		first = _defaultFirstBackoff
	}
	if max == 0 {
		max = _defaultMaxBackoff
	}
	return searchrpc.ExponentialBackoff(first, max)
}
