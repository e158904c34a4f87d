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
	"fmt"

	"github.com/searchrpc/searchrpc/searchrpcerrors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Call sends req to the method at path and decodes the reply.
//
// The call is bounded by DefaultDeadline unless WithDeadline says
// otherwise; the deadline is fixed when Call starts and covers all
// attempts. ctx cancels the call and can shorten, but never extend, that
// deadline.
//
// Errors from the transport are returned unmodified.
func Call[Req, Res any](
	ctx context.Context,
	c *Client,
	path string,
	req Req,
	enc Encoder[Req],
	dec Decoder[Res],
	opts ...CallOption,
) (Res, error) {
	var zero Res

	creds := c.creds
	options := CallOptions{Deadline: DefaultDeadline, Credentials: &creds}
	for _, opt := range opts {
		opt.apply(&options)
	}
	deadline := c.clock.Now().Add(options.Deadline)

	md := c.identity.Copy()
	md.Set(AuthorizationHeader, options.Credentials.authorization())

	body, err := enc(req)
	if err != nil {
		return zero, fmt.Errorf("searchrpc: failed to encode request for %q: %w", path, err)
	}

	conn, gen, err := c.channels.Current()
	if err != nil {
		return zero, err
	}

	c.debug.Call(c.channels.Address(), path, options.loggable(), req)

	callCtx, cancel := context.WithDeadline(metadata.NewOutgoingContext(ctx, md), deadline)
	defer cancel()

	h := c.calls.Begin()
	c.calls.OnAbnormalTermination(h, func() { c.replaceChannel(gen) })
	defer c.calls.Off(h)

	var reply []byte
	if err := conn.Invoke(callCtx, path, &body, &reply, grpc.ForceCodec(wireCodec{})); err != nil {
		if searchrpcerrors.IsAbnormalCancellation(ctx, err) {
			h.Signal()
		}
		c.debug.Failure(path, err)
		return zero, err
	}

	res, err := dec(reply)
	if err != nil {
		return zero, fmt.Errorf("searchrpc: failed to decode response of %q: %w", path, err)
	}
	c.debug.Response(path, res)
	return res, nil
}
