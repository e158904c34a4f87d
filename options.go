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

package searchrpc

import (
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/searchrpc/searchrpc/internal/backoff"
	"github.com/searchrpc/searchrpc/internal/channel"
	"github.com/searchrpc/searchrpc/internal/clock"
	"github.com/searchrpc/searchrpc/internal/debuglog"
	"github.com/searchrpc/searchrpc/internal/retry"
	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// BackoffStrategy paces the retries of a call.
type BackoffStrategy = backoff.Strategy

// NoBackoff retries immediately.
var NoBackoff BackoffStrategy = backoff.None

// ExponentialBackoff returns a full-jitter exponential strategy: the wait
// before retry n is drawn from [0, min(first*2^n, max)].
func ExponentialBackoff(first, max time.Duration) (BackoffStrategy, error) {
	strategy, err := backoff.NewExponential(backoff.FirstBackoff(first), backoff.MaxBackoff(max))
	if err != nil {
		return nil, err
	}
	return strategy, nil
}

// Clock tells the time deadlines and backoffs are measured with.
type Clock = clock.Clock

// DebugConfig controls the content of the debug log of calls.
type DebugConfig = debuglog.Config

// ClientOption customizes a Client.
type ClientOption interface {
	applyClientOption(*clientOptions)
}

type clientOptionFunc func(*clientOptions)

func (f clientOptionFunc) applyClientOption(opts *clientOptions) { f(opts) }

type clientOptions struct {
	endpoint    string
	insecure    bool
	authority   string
	logger      *zap.Logger
	tracer      opentracing.Tracer
	scope       tally.Scope
	debug       debuglog.Config
	dialOptions []grpc.DialOption
	maxAttempts uint
	backoff     backoff.Strategy
	clock       clock.Clock
	dialer      channel.Dialer
}

func newClientOptions(opts []ClientOption) clientOptions {
	options := clientOptions{
		endpoint:    DefaultEndpoint,
		authority:   DefaultAuthority,
		logger:      zap.NewNop(),
		scope:       tally.NoopScope,
		maxAttempts: retry.DefaultMaxAttempts,
		backoff:     backoff.DefaultExponential,
		clock:       clock.NewReal(),
	}
	for _, opt := range opts {
		opt.applyClientOption(&options)
	}
	return options
}

// WithEndpoint sets the address of the service, host:port. Defaults to
// DefaultEndpoint.
//
// The authority is only kept for DefaultEndpoint; other endpoints are
// addressed by their own host unless WithAuthority says otherwise.
func WithEndpoint(addr string) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		if opts.endpoint != addr && opts.authority == DefaultAuthority {
			opts.authority = ""
		}
		opts.endpoint = addr
	})
}

// WithInsecure disables transport security. Use it only against local or
// test endpoints.
func WithInsecure() ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		opts.insecure = true
	})
}

// WithAuthority overrides the :authority of every call.
func WithAuthority(authority string) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		opts.authority = authority
	})
}

// WithLogger sets the logger of the client. Calls are logged at debug
// level, channel replacements at info.
func WithLogger(logger *zap.Logger) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		if logger != nil {
			opts.logger = logger
		}
	})
}

// WithTracer sets the tracer calls are traced with. Defaults to
// opentracing.GlobalTracer().
func WithTracer(tracer opentracing.Tracer) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		opts.tracer = tracer
	})
}

// WithMetricsScope sets the scope retry metrics are reported to.
func WithMetricsScope(scope tally.Scope) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		if scope != nil {
			opts.scope = scope
		}
	})
}

// WithDebugConfig controls what the debug log of calls may contain.
// Credentials are hidden unless cfg.ShowCredentials is set.
func WithDebugConfig(cfg DebugConfig) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		opts.debug = cfg
	})
}

// WithDialOptions appends gRPC dial options to the ones the client builds.
func WithDialOptions(dialOpts ...grpc.DialOption) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		opts.dialOptions = append(opts.dialOptions, dialOpts...)
	})
}

// WithMaxAttempts sets the attempt budget of every call, the first attempt
// included. Defaults to retry.DefaultMaxAttempts.
func WithMaxAttempts(n uint) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		opts.maxAttempts = n
	})
}

// WithBackoff sets the strategy pacing retries.
func WithBackoff(strategy BackoffStrategy) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		if strategy != nil {
			opts.backoff = strategy
		}
	})
}

// WithClock sets the clock deadlines and backoffs are measured with.
func WithClock(c Clock) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		if c != nil {
			opts.clock = c
		}
	})
}

func withDialer(d channel.Dialer) ClientOption {
	return clientOptionFunc(func(opts *clientOptions) {
		opts.dialer = d
	})
}
