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

// Package channel owns the single gRPC channel of a client: it dials it,
// replaces it on demand and waits for it to become ready.
//
// Channels are lazy. Creating one never checks that the endpoint is
// reachable; that only surfaces when a call is attempted or through
// WaitReady.
package channel

//go:generate mockgen -destination=channeltest/conn.go -package=channeltest github.com/searchrpc/searchrpc/internal/channel Conn

import (
	"context"
	"crypto/tls"
	"errors"
	"sync"
	"time"

	"github.com/searchrpc/searchrpc/searchrpcerrors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ErrClosed is returned by every operation on a Manager after Close.
var ErrClosed = errors.New("channel manager is closed")

// Conn is the part of *grpc.ClientConn the client relies on.
type Conn interface {
	grpc.ClientConnInterface

	GetState() connectivity.State
	WaitForStateChange(ctx context.Context, sourceState connectivity.State) bool
	Connect()
	Close() error
}

var _ Conn = (*grpc.ClientConn)(nil)

// Dialer creates a new channel to target.
type Dialer func(target string, opts ...grpc.DialOption) (Conn, error)

// DialGRPC is the default Dialer, backed by grpc.NewClient.
func DialGRPC(target string, opts ...grpc.DialOption) (Conn, error) {
	return grpc.NewClient(target, opts...)
}

// Config describes the endpoint and the options every channel is dialed
// with.
type Config struct {
	Address string

	// Insecure disables TLS. For local and test endpoints only.
	Insecure bool

	// Authority overrides the :authority header sent on every call.
	Authority string

	UserAgent string

	// Interceptors are chained in order, the first being the outermost.
	Interceptors []grpc.UnaryClientInterceptor

	DialOptions []grpc.DialOption

	// Dialer defaults to DialGRPC.
	Dialer Dialer

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Manager holds exactly one live channel at a time. The channel is swapped
// atomically and the replaced one is closed exactly once.
type Manager struct {
	cfg    Config
	dial   Dialer
	logger *zap.Logger

	mu     sync.Mutex
	conn   Conn
	gen    uint64
	closed bool
}

// NewManager builds a Manager. No channel is dialed until Connect or
// Current is called.
func NewManager(cfg Config) *Manager {
	m := &Manager{cfg: cfg, dial: cfg.Dialer, logger: cfg.Logger}
	if m.dial == nil {
		m.dial = DialGRPC
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	m.logger = m.logger.With(zap.String("address", cfg.Address))
	return m
}

// Address is the endpoint channels are dialed to.
func (m *Manager) Address() string {
	return m.cfg.Address
}

func (m *Manager) dialOptions() []grpc.DialOption {
	var creds credentials.TransportCredentials
	if m.cfg.Insecure {
		creds = insecure.NewCredentials()
	} else {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if m.cfg.Authority != "" {
		opts = append(opts, grpc.WithAuthority(m.cfg.Authority))
	}
	if m.cfg.UserAgent != "" {
		opts = append(opts, grpc.WithUserAgent(m.cfg.UserAgent))
	}
	if len(m.cfg.Interceptors) > 0 {
		opts = append(opts, grpc.WithChainUnaryInterceptor(m.cfg.Interceptors...))
	}
	return append(opts, m.cfg.DialOptions...)
}

// Connect dials a new channel and makes it the live one. The previous
// channel, if any, is closed after the swap.
func (m *Manager) Connect() (Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	return m.connectLocked()
}

func (m *Manager) connectLocked() (Conn, error) {
	conn, err := m.dial(m.cfg.Address, m.dialOptions()...)
	if err != nil {
		return nil, err
	}

	old := m.conn
	m.conn = conn
	m.gen++

	if old != nil {
		if err := old.Close(); err != nil {
			m.logger.Warn("failed to close replaced channel", zap.Error(err))
		}
	}
	m.logger.Debug("channel created",
		zap.Uint64("generation", m.gen),
		zap.Bool("insecure", m.cfg.Insecure))
	return conn, nil
}

// Current returns the live channel and its generation, dialing one if none
// exists.
func (m *Manager) Current() (Conn, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, 0, ErrClosed
	}
	if m.conn == nil {
		if _, err := m.connectLocked(); err != nil {
			return nil, 0, err
		}
	}
	return m.conn, m.gen, nil
}

// Generation returns the generation of the live channel, zero if none was
// dialed yet.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// ReplaceIfCurrent dials a new channel only if gen is still the live
// generation. Concurrent failures observed on the same channel therefore
// cause a single replacement. It reports whether a replacement happened.
func (m *Manager) ReplaceIfCurrent(gen uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.conn == nil || m.gen != gen {
		return false, nil
	}
	m.logger.Info("replacing channel after abnormal termination", zap.Uint64("generation", gen))
	if _, err := m.connectLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the live channel. It is safe to call more than once; later
// calls return nil.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.conn != nil {
		err = multierr.Append(err, m.conn.Close())
		m.conn = nil
	}
	m.logger.Debug("channel manager closed", zap.Uint64("generation", m.gen))
	return err
}

// WaitReady blocks until the live channel reports connectivity.Ready, ctx
// is done or d elapses. An idle channel is asked to connect. Expiry of d is
// reported as a searchrpcerrors.ReadinessTimeoutError.
func (m *Manager) WaitReady(ctx context.Context, d time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	var state connectivity.State
	for ctx.Err() == nil {
		conn, _, err := m.Current()
		if err != nil {
			return err
		}

		state = conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Idle:
			conn.Connect()
		case connectivity.Shutdown:
			// Replaced underneath us; wait on the new one.
			continue
		}

		conn.WaitForStateChange(ctx, state)
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return searchrpcerrors.ReadinessTimeoutf(
		"channel to %q not ready after %v, last state %v", m.cfg.Address, d, state)
}
