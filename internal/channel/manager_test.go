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

package channel

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/searchrpc/searchrpc/internal/channel/channeltest"
	"github.com/searchrpc/searchrpc/searchrpcerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
)

// mockDialer hands out the given connections in order.
type mockDialer struct {
	t     *testing.T
	conns []Conn
	dials int
	opts  []grpc.DialOption
}

func (d *mockDialer) dial(target string, opts ...grpc.DialOption) (Conn, error) {
	require.True(d.t, d.dials < len(d.conns), "unexpected dial to %q", target)
	conn := d.conns[d.dials]
	d.dials++
	d.opts = opts
	return conn, nil
}

func newMockConns(ctrl *gomock.Controller, n int) []Conn {
	conns := make([]Conn, n)
	for i := range conns {
		conns[i] = channeltest.NewMockConn(ctrl)
	}
	return conns
}

func TestCurrentDialsOnce(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	d := &mockDialer{t: t, conns: newMockConns(mockCtrl, 1)}
	m := NewManager(Config{Address: "search:443", Dialer: d.dial})
	assert.Equal(t, uint64(0), m.Generation())

	conn, gen, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
	assert.Same(t, d.conns[0], conn)

	again, gen, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
	assert.Same(t, conn, again)
	assert.Equal(t, 1, d.dials)
}

func TestConnectClosesPreviousExactlyOnce(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	d := &mockDialer{t: t, conns: newMockConns(mockCtrl, 2)}
	m := NewManager(Config{Address: "search:443", Dialer: d.dial})

	first, err := m.Connect()
	require.NoError(t, err)
	first.(*channeltest.MockConn).EXPECT().Close().Return(nil).Times(1)

	second, err := m.Connect()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, uint64(2), m.Generation())

	second.(*channeltest.MockConn).EXPECT().Close().Return(nil).Times(1)
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close(), "second close must be a no-op")
}

func TestReplacedCloseFailureIsLogged(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	core, logs := observer.New(zapcore.WarnLevel)
	d := &mockDialer{t: t, conns: newMockConns(mockCtrl, 2)}
	m := NewManager(Config{Address: "search:443", Dialer: d.dial, Logger: zap.New(core)})

	first, err := m.Connect()
	require.NoError(t, err)
	first.(*channeltest.MockConn).EXPECT().Close().Return(errors.New("great sadness"))

	_, err = m.Connect()
	require.NoError(t, err, "failing to close the old channel must not fail the swap")

	entries := logs.FilterMessage("failed to close replaced channel").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "great sadness", entries[0].ContextMap()["error"])
	assert.Equal(t, "search:443", entries[0].ContextMap()["address"])
}

func TestClosedManager(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	d := &mockDialer{t: t}
	m := NewManager(Config{Address: "search:443", Dialer: d.dial})
	require.NoError(t, m.Close(), "closing before any dial")

	_, _, err := m.Current()
	assert.Equal(t, ErrClosed, err)

	_, err = m.Connect()
	assert.Equal(t, ErrClosed, err)

	replaced, err := m.ReplaceIfCurrent(0)
	assert.NoError(t, err)
	assert.False(t, replaced)

	assert.Equal(t, ErrClosed, m.WaitReady(context.Background(), time.Second))
	assert.Equal(t, 0, d.dials)
}

func TestDialError(t *testing.T) {
	m := NewManager(Config{
		Address: "search:443",
		Dialer: func(string, ...grpc.DialOption) (Conn, error) {
			return nil, errors.New("bad target")
		},
	})
	_, _, err := m.Current()
	assert.EqualError(t, err, "bad target")
	assert.Equal(t, uint64(0), m.Generation())
}

func TestReplaceIfCurrent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	d := &mockDialer{t: t, conns: newMockConns(mockCtrl, 2)}
	m := NewManager(Config{Address: "search:443", Dialer: d.dial})

	replaced, err := m.ReplaceIfCurrent(0)
	require.NoError(t, err)
	assert.False(t, replaced, "nothing to replace before the first dial")

	first, gen, err := m.Current()
	require.NoError(t, err)
	first.(*channeltest.MockConn).EXPECT().Close().Return(nil).Times(1)

	replaced, err = m.ReplaceIfCurrent(gen)
	require.NoError(t, err)
	assert.True(t, replaced)

	replaced, err = m.ReplaceIfCurrent(gen)
	require.NoError(t, err)
	assert.False(t, replaced, "stale generation must not stack replacements")
	assert.Equal(t, 2, d.dials)
	assert.Equal(t, gen+1, m.Generation())

	d.conns[1].(*channeltest.MockConn).EXPECT().Close().Return(nil)
	require.NoError(t, m.Close())
}

func TestWaitReady(t *testing.T) {
	tests := []struct {
		desc   string
		expect func(*channeltest.MockConn)
	}{
		{
			desc: "already ready",
			expect: func(c *channeltest.MockConn) {
				c.EXPECT().GetState().Return(connectivity.Ready)
			},
		},
		{
			desc: "idle channel is asked to connect",
			expect: func(c *channeltest.MockConn) {
				gomock.InOrder(
					c.EXPECT().GetState().Return(connectivity.Idle),
					c.EXPECT().Connect(),
					c.EXPECT().WaitForStateChange(gomock.Any(), connectivity.Idle).Return(true),
					c.EXPECT().GetState().Return(connectivity.Connecting),
					c.EXPECT().WaitForStateChange(gomock.Any(), connectivity.Connecting).Return(true),
					c.EXPECT().GetState().Return(connectivity.Ready),
				)
			},
		},
		{
			desc: "recovers from transient failure",
			expect: func(c *channeltest.MockConn) {
				gomock.InOrder(
					c.EXPECT().GetState().Return(connectivity.TransientFailure),
					c.EXPECT().WaitForStateChange(gomock.Any(), connectivity.TransientFailure).Return(true),
					c.EXPECT().GetState().Return(connectivity.Ready),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			defer mockCtrl.Finish()

			conn := channeltest.NewMockConn(mockCtrl)
			tt.expect(conn)

			d := &mockDialer{t: t, conns: []Conn{conn}}
			m := NewManager(Config{Address: "search:443", Dialer: d.dial})
			assert.NoError(t, m.WaitReady(context.Background(), time.Second))
		})
	}
}

func blockUntilDone(ctx context.Context, _ connectivity.State) bool {
	<-ctx.Done()
	return false
}

func TestWaitReadyTimeout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	conn := channeltest.NewMockConn(mockCtrl)
	conn.EXPECT().GetState().Return(connectivity.Connecting).AnyTimes()
	conn.EXPECT().WaitForStateChange(gomock.Any(), connectivity.Connecting).DoAndReturn(blockUntilDone)

	d := &mockDialer{t: t, conns: []Conn{conn}}
	m := NewManager(Config{Address: "search:443", Dialer: d.dial})

	err := m.WaitReady(context.Background(), 10*time.Millisecond)
	require.Error(t, err)
	assert.True(t, searchrpcerrors.IsReadinessTimeout(err), "got %v", err)
	assert.Equal(t, searchrpcerrors.KindReadinessTimeout, searchrpcerrors.KindOf(nil, err))
	assert.Contains(t, err.Error(), `"search:443"`)
	assert.Contains(t, err.Error(), "CONNECTING")
}

func TestWaitReadyCancelled(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	conn := channeltest.NewMockConn(mockCtrl)
	conn.EXPECT().GetState().Return(connectivity.Connecting).AnyTimes()
	conn.EXPECT().WaitForStateChange(gomock.Any(), connectivity.Connecting).DoAndReturn(blockUntilDone)

	d := &mockDialer{t: t, conns: []Conn{conn}}
	m := NewManager(Config{Address: "search:443", Dialer: d.dial})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := m.WaitReady(ctx, time.Minute)
	assert.Equal(t, context.Canceled, err)
	assert.False(t, searchrpcerrors.IsReadinessTimeout(err))
}

func TestDialOptions(t *testing.T) {
	tests := []struct {
		desc string
		cfg  Config
		want int
	}{
		{desc: "tls only", cfg: Config{}, want: 1},
		{desc: "insecure only", cfg: Config{Insecure: true}, want: 1},
		{
			desc: "everything",
			cfg: Config{
				Authority:    "api.example.com",
				UserAgent:    "searchrpc-go/test",
				Interceptors: []grpc.UnaryClientInterceptor{nil},
				DialOptions:  []grpc.DialOption{grpc.WithDisableRetry()},
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Len(t, NewManager(tt.cfg).dialOptions(), tt.want)
		})
	}
}

func TestWaitReadyAgainstServer(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer()
	go server.Serve(lis)
	defer server.Stop()

	m := NewManager(Config{Address: lis.Addr().String(), Insecure: true})
	defer func() { assert.NoError(t, m.Close()) }()

	require.NoError(t, m.WaitReady(context.Background(), 5*time.Second))

	conn, _, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, connectivity.Ready, conn.GetState())
}

func TestWaitReadyUnreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	m := NewManager(Config{Address: addr, Insecure: true})
	defer func() { assert.NoError(t, m.Close()) }()

	err = m.WaitReady(context.Background(), 100*time.Millisecond)
	assert.True(t, searchrpcerrors.IsReadinessTimeout(err), "got %v", err)
}
