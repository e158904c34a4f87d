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

// Package backoff computes the delay between retry attempts of a unary call.
package backoff

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/multierr"
)

// Strategy is a factory for backoff instances. Implementations must be safe
// for concurrent use since a single strategy serves every call of a client.
type Strategy interface {
	Backoff() Backoff
}

// Backoff returns how long to wait after the given number of failed
// attempts.
type Backoff interface {
	Duration(attempts uint) time.Duration
}

// None never waits between attempts.
var None Strategy = noBackoff{}

type noBackoff struct{}

func (noBackoff) Backoff() Backoff            { return noBackoff{} }
func (noBackoff) Duration(uint) time.Duration { return 0 }

// DefaultExponential is the strategy used between retry attempts unless the
// client is configured otherwise: 10ms for the first retry, doubling, capped
// at one second.
var DefaultExponential = mustExponential(FirstBackoff(10*time.Millisecond), MaxBackoff(time.Second))

// ExponentialOption customizes an Exponential strategy.
type ExponentialOption func(*exponentialOptions)

type exponentialOptions struct {
	first, max time.Duration
	randInt64N func(n int64) int64
}

func (e exponentialOptions) validate() (err error) {
	if e.first <= 0 {
		err = multierr.Append(err, errors.New("invalid first backoff, need greater than zero"))
	}
	if e.max < 0 {
		err = multierr.Append(err, errors.New("invalid max backoff, need greater than or equal to zero"))
	}
	if e.max < e.first {
		err = multierr.Append(err, errors.New("max backoff must be greater than or equal to first backoff"))
	}
	return err
}

var defaultExponentialOpts = exponentialOptions{
	first:      10 * time.Millisecond,
	max:        time.Minute,
	randInt64N: rand.Int63n,
}

// FirstBackoff sets the upper bound of the delay after the first failure.
// Each further attempt doubles the bound.
func FirstBackoff(t time.Duration) ExponentialOption {
	return func(options *exponentialOptions) {
		options.first = t
	}
}

// MaxBackoff caps every delay the strategy returns.
func MaxBackoff(t time.Duration) ExponentialOption {
	return func(options *exponentialOptions) {
		options.max = t
	}
}

// randSource overrides the random number source in tests.
func randSource(f func(n int64) int64) ExponentialOption {
	return func(options *exponentialOptions) {
		options.randInt64N = f
	}
}

// Exponential is a full jitter exponential backoff: after attempt n the delay
// is drawn uniformly from [0, min(first*2^n, max)].
//
// It is stateless and safe to use concurrently.
type Exponential struct {
	opts exponentialOptions
}

// NewExponential returns a new exponential backoff strategy.
func NewExponential(opts ...ExponentialOption) (*Exponential, error) {
	options := defaultExponentialOpts
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return &Exponential{opts: options}, nil
}

func mustExponential(opts ...ExponentialOption) *Exponential {
	e, err := NewExponential(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Backoff returns the strategy itself; Exponential keeps no per-call state.
func (e *Exponential) Backoff() Backoff {
	return e
}

// Duration returns the delay to observe after the given number of attempts.
func (e *Exponential) Duration(attempts uint) time.Duration {
	bound := e.opts.first.Nanoseconds() << attempts

	// Overflowed or went past the cap.
	if bound > e.opts.max.Nanoseconds() || bound <= 0 || attempts >= 63 {
		bound = e.opts.max.Nanoseconds()
	}
	return time.Duration(e.opts.randInt64N(bound + 1))
}
