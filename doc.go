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

// Package searchrpc is a client for a remote search and record service
// reachable over an authenticated gRPC channel.
//
// A Client owns one channel, shared by every call made through it. Calls are
// unary: a request is encoded by a caller supplied Encoder, sent to a method
// path with the client's identity and credentials attached as metadata, and
// the reply is handed to a Decoder.
//
//	client, err := searchrpc.New("p1", "c1", searchrpc.Credentials{Key: "k", Secret: "s"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	res, err := searchrpc.Call(ctx, client, "/sajari.api.pipeline.v1.Query/Search", req,
//		searchrpc.ProtoEncoder[*pb.SearchRequest](),
//		searchrpc.ProtoDecoder[pb.SearchResponse](),
//		searchrpc.WithDeadline(time.Second))
//
// Failed attempts with transient status codes are retried up to three times
// in total. A call cancelled by the transport rather than by its caller
// causes the channel to be replaced, so that the next call gets a fresh one;
// the failed call itself is not retried.
//
// # Errors
//
// Transport errors are returned unmodified. Use package searchrpcerrors to
// classify them.
package searchrpc
