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

package retry

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// InterceptorOption customizes the retry interceptor.
type InterceptorOption interface {
	apply(*interceptorOptions)
}

type interceptorOptionFunc func(*interceptorOptions)

func (f interceptorOptionFunc) apply(opts *interceptorOptions) { f(opts) }

type interceptorOptions struct {
	scope  tally.Scope
	logger *zap.Logger
}

var defaultInterceptorOptions = interceptorOptions{
	scope:  tally.NoopScope,
	logger: zap.NewNop(),
}

// WithTally sets the scope retry metrics are recorded to.
func WithTally(scope tally.Scope) InterceptorOption {
	return interceptorOptionFunc(func(opts *interceptorOptions) {
		if scope != nil {
			opts.scope = scope
		}
	})
}

// WithLogger sets the logger retry decisions are logged to.
func WithLogger(logger *zap.Logger) InterceptorOption {
	return interceptorOptionFunc(func(opts *interceptorOptions) {
		if logger != nil {
			opts.logger = logger
		}
	})
}

// NewUnaryInterceptor returns a gRPC unary client interceptor enforcing the
// given policy. A nil policy uses the defaults.
func NewUnaryInterceptor(policy *Policy, opts ...InterceptorOption) grpc.UnaryClientInterceptor {
	if policy == nil {
		policy = NewPolicy()
	}
	options := defaultInterceptorOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	i := &interceptor{
		policy:   policy,
		observer: newObserver(options.logger, options.scope),
	}
	return i.intercept
}

type interceptor struct {
	policy   *Policy
	observer *observer
}

func (i *interceptor) intercept(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) (err error) {
	call := i.observer.begin(method)
	boff := i.policy.opts.backoffStrategy.Backoff()
	maxAttempts := i.policy.opts.maxAttempts

	for attempt := uint(0); attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			call.retryOnError(attempt, err)
		}

		err = invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			call.success()
			return nil
		}
		if !IsRetryable(err) {
			call.fail(_unretryable, attempt+1, err)
			return err
		}
		if attempt+1 == maxAttempts {
			break
		}

		wait := boff.Duration(attempt)
		if !i.fitsDeadline(ctx, wait) {
			call.fail(_noTime, attempt+1, err)
			return err
		}
		select {
		case <-i.policy.opts.clock.After(wait):
		case <-ctx.Done():
			call.fail(_cancelled, attempt+1, err)
			return err
		}
	}
	call.fail(_maxAttempts, maxAttempts, err)
	return err
}

// fitsDeadline reports whether waiting d still leaves time before the call's
// deadline.
func (i *interceptor) fitsDeadline(ctx context.Context, d time.Duration) bool {
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return i.policy.opts.clock.Now().Add(d).Before(deadline)
}
