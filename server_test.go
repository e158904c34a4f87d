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
	"net"
	"sync"
	"testing"
	"time"

	"github.com/searchrpc/searchrpc/internal/clock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// handlerFunc answers one attempt of a call.
type handlerFunc func(ctx context.Context, method string, body []byte) ([]byte, error)

// received is one attempt as seen by the test server.
type received struct {
	method   string
	md       metadata.MD
	deadline time.Time
	body     []byte
}

// testServer is an in-process gRPC server that accepts any method and
// records what it receives.
type testServer struct {
	addr string

	mu       sync.Mutex
	received []received
}

func newTestServer(t *testing.T, handle handlerFunc) *testServer {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &testServer{addr: lis.Addr().String()}
	server := grpc.NewServer(
		grpc.ForceServerCodec(wireCodec{}),
		grpc.UnknownServiceHandler(func(_ interface{}, stream grpc.ServerStream) error {
			method, _ := grpc.MethodFromServerStream(stream)

			var body []byte
			if err := stream.RecvMsg(&body); err != nil {
				return err
			}

			ctx := stream.Context()
			md, _ := metadata.FromIncomingContext(ctx)
			deadline, _ := ctx.Deadline()
			s.record(received{method: method, md: md, deadline: deadline, body: body})

			reply, err := handle(ctx, method, body)
			if err != nil {
				return err
			}
			return stream.SendMsg(&reply)
		}),
	)
	go server.Serve(lis)
	t.Cleanup(server.Stop)
	return s
}

func (s *testServer) record(r received) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, r)
}

func (s *testServer) Received() []received {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]received(nil), s.received...)
}

func echo(_ context.Context, _ string, body []byte) ([]byte, error) {
	return append([]byte("echo:"), body...), nil
}

// newTestClient returns a client for project p1 and collection c1 with
// credentials k/s, talking to addr without TLS and without backoff.
func newTestClient(t *testing.T, addr string, opts ...ClientOption) *Client {
	opts = append([]ClientOption{
		WithEndpoint(addr),
		WithInsecure(),
		WithBackoff(NoBackoff),
		// Deadlines travel to the server as wall clock time.
		WithClock(clock.NewFake(time.Now())),
	}, opts...)

	c, err := New("p1", "c1", Credentials{Key: "k", Secret: "s"}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func rawCall(ctx context.Context, c *Client, path string, body string, opts ...CallOption) (string, error) {
	reply, err := Call(ctx, c, path, []byte(body), RawCodec{}.Encode, RawCodec{}.Decode, opts...)
	return string(reply), err
}
