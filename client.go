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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/searchrpc/searchrpc/internal/channel"
	"github.com/searchrpc/searchrpc/internal/clock"
	"github.com/searchrpc/searchrpc/internal/debuglog"
	"github.com/searchrpc/searchrpc/internal/inflight"
	"github.com/searchrpc/searchrpc/internal/retry"
	"github.com/searchrpc/searchrpc/internal/tracing"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// ErrClosed is returned by calls made on a closed Client.
var ErrClosed = channel.ErrClosed

// Client calls methods of one project and collection over a single shared
// channel. It is safe for concurrent use.
type Client struct {
	project    string
	collection string
	creds      Credentials

	// identity is cloned for every call and never mutated.
	identity metadata.MD

	channels *channel.Manager
	calls    *inflight.Tracker
	clock    clock.Clock
	logger   *zap.Logger
	debug    *debuglog.Logger
}

// New builds a Client for the given project and collection, authenticating
// with creds unless a call overrides them.
//
// The channel is created immediately but connects lazily: an unreachable
// endpoint is only reported by calls or by Wait.
func New(project, collection string, creds Credentials, opts ...ClientOption) (*Client, error) {
	options := newClientOptions(opts)
	if err := validate(project, collection, options); err != nil {
		return nil, err
	}

	logger := options.logger.With(
		zap.String("project", project),
		zap.String("collection", collection),
	)
	policy := retry.NewPolicy(
		retry.MaxAttempts(options.maxAttempts),
		retry.BackoffStrategy(options.backoff),
		retry.Clock(options.clock),
	)

	c := &Client{
		project:    project,
		collection: collection,
		creds:      creds,
		identity: metadata.Pairs(
			ProjectHeader, project,
			CollectionHeader, collection,
		),
		calls:  inflight.NewTracker(),
		clock:  options.clock,
		logger: logger,
		debug:  debuglog.New(logger, options.debug),
	}
	c.channels = channel.NewManager(channel.Config{
		Address:   options.endpoint,
		Insecure:  options.insecure,
		Authority: options.authority,
		UserAgent: UserAgent,
		Interceptors: []grpc.UnaryClientInterceptor{
			tracing.NewUnaryInterceptor(options.tracer, tracing.Identity{
				Project:    project,
				Collection: collection,
			}),
			retry.NewUnaryInterceptor(policy,
				retry.WithTally(options.scope),
				retry.WithLogger(logger),
			),
		},
		DialOptions: options.dialOptions,
		Dialer:      options.dialer,
		Logger:      logger,
	})

	if _, err := c.channels.Connect(); err != nil {
		return nil, fmt.Errorf("searchrpc: failed to create channel to %q: %w", options.endpoint, err)
	}
	return c, nil
}

func validate(project, collection string, options clientOptions) (err error) {
	if project == "" {
		err = multierr.Append(err, errors.New("searchrpc: project is required"))
	}
	if collection == "" {
		err = multierr.Append(err, errors.New("searchrpc: collection is required"))
	}
	if options.endpoint == "" {
		err = multierr.Append(err, errors.New("searchrpc: endpoint must not be empty"))
	}
	if options.maxAttempts == 0 {
		err = multierr.Append(err, errors.New("searchrpc: max attempts must be at least 1"))
	}
	return err
}

// Project returns the project every call is made for.
func (c *Client) Project() string { return c.project }

// Collection returns the collection every call is made for.
func (c *Client) Collection() string { return c.collection }

// Endpoint returns the address of the service.
func (c *Client) Endpoint() string { return c.channels.Address() }

// Wait blocks until the channel is ready for calls, ctx is done or d
// elapses. Expiry of d is reported as a searchrpcerrors.ReadinessTimeoutError.
//
// Use it before a burst of calls to keep channel warm-up out of their
// latency.
func (c *Client) Wait(ctx context.Context, d time.Duration) error {
	return c.channels.WaitReady(ctx, d)
}

// Reconnect replaces the channel with a new one. The old channel is closed,
// failing the calls still running on it.
func (c *Client) Reconnect() error {
	_, err := c.channels.Connect()
	return err
}

// Close releases the channel and detaches from the last call. It may be
// called more than once.
func (c *Client) Close() error {
	c.calls.Close()
	return c.channels.Close()
}

// replaceChannel runs when a call on channel generation gen was cancelled
// by the transport.
func (c *Client) replaceChannel(gen uint64) {
	replaced, err := c.channels.ReplaceIfCurrent(gen)
	if err != nil {
		c.logger.Warn("failed to replace channel", zap.Uint64("generation", gen), zap.Error(err))
		return
	}
	if replaced {
		c.logger.Debug("channel replaced", zap.Uint64("generation", gen))
	}
}
