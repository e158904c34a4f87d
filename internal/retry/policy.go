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

// Package retry provides the bounded retry policy applied around every unary
// call, delivered to gRPC as a client interceptor.
package retry

import (
	"github.com/searchrpc/searchrpc/internal/backoff"
	"github.com/searchrpc/searchrpc/internal/clock"
)

// DefaultMaxAttempts is the total number of attempts, the original one
// included, a call gets before its last failure is returned.
const DefaultMaxAttempts = 3

// Policy defines how a failed attempt is retried.
type Policy struct {
	opts policyOptions
}

// NewPolicy creates a retry Policy.
func NewPolicy(opts ...PolicyOption) *Policy {
	policyOpts := defaultPolicyOpts
	for _, opt := range opts {
		opt.apply(&policyOpts)
	}
	return &Policy{opts: policyOpts}
}

// MaxAttempts returns the attempt budget of the policy.
func (p *Policy) MaxAttempts() uint {
	return p.opts.maxAttempts
}

var defaultPolicyOpts = policyOptions{
	maxAttempts:     DefaultMaxAttempts,
	backoffStrategy: backoff.DefaultExponential,
	clock:           clock.NewReal(),
}

type policyOptions struct {
	// maxAttempts counts the original attempt.
	maxAttempts uint

	// backoffStrategy is consulted after every retryable failure.
	backoffStrategy backoff.Strategy

	// clock paces the backoff.
	clock clock.Clock
}

// PolicyOption customizes the behavior of a retry policy.
type PolicyOption interface {
	apply(*policyOptions)
}

type policyOptionFunc func(*policyOptions)

func (f policyOptionFunc) apply(opts *policyOptions) { f(opts) }

// MaxAttempts sets the total number of attempts, including the first one.
// Values below one are treated as one.
//
// Defaults to DefaultMaxAttempts.
func MaxAttempts(attempts uint) PolicyOption {
	return policyOptionFunc(func(opts *policyOptions) {
		if attempts < 1 {
			attempts = 1
		}
		opts.maxAttempts = attempts
	})
}

// BackoffStrategy sets the backoff strategy used between attempts.
//
// Defaults to backoff.DefaultExponential.
func BackoffStrategy(strategy backoff.Strategy) PolicyOption {
	return policyOptionFunc(func(opts *policyOptions) {
		if strategy != nil {
			opts.backoffStrategy = strategy
		}
	})
}

// Clock sets the clock used to wait out backoffs.
func Clock(c clock.Clock) PolicyOption {
	return policyOptionFunc(func(opts *policyOptions) {
		if c != nil {
			opts.clock = c
		}
	})
}
