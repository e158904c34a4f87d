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

// Package tracing starts an opentracing client span around every unary call
// and injects its context into the outgoing metadata.
package tracing

import (
	"context"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const _transportName = "grpc"

// Identity is attached to every span as tags.
type Identity struct {
	Project    string
	Collection string
}

// NewUnaryInterceptor returns a gRPC unary client interceptor that traces
// calls with tracer. A nil tracer uses opentracing.GlobalTracer().
func NewUnaryInterceptor(tracer opentracing.Tracer, id Identity) grpc.UnaryClientInterceptor {
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		var parent opentracing.SpanContext
		if parentSpan := opentracing.SpanFromContext(ctx); parentSpan != nil {
			parent = parentSpan.Context()
		}
		span := tracer.StartSpan(
			method,
			opentracing.ChildOf(parent),
			opentracing.Tags{
				"rpc.project":    id.Project,
				"rpc.collection": id.Collection,
				"rpc.transport":  _transportName,
			},
		)
		ext.SpanKindRPCClient.Set(span)
		defer span.Finish()

		ctx = injectSpan(ctx, tracer, span)
		err := invoker(opentracing.ContextWithSpan(ctx, span), method, req, reply, cc, opts...)
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("rpc.code", status.Code(err).String())
			span.LogKV("event", "error", "message", err.Error())
		}
		return err
	}
}

// injectSpan writes the span context into a copy of the outgoing metadata.
func injectSpan(ctx context.Context, tracer opentracing.Tracer, span opentracing.Span) context.Context {
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	// Injection failures leave the call untraced downstream, nothing more.
	_ = tracer.Inject(span.Context(), opentracing.TextMap, mdCarrier(md))
	return metadata.NewOutgoingContext(ctx, md)
}

// mdCarrier adapts metadata.MD to opentracing's TextMap carrier. gRPC
// metadata keys are lower case.
type mdCarrier metadata.MD

func (c mdCarrier) Set(key, val string) {
	key = strings.ToLower(key)
	c[key] = append(c[key], val)
}

func (c mdCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, vs := range c {
		for _, v := range vs {
			if err := handler(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
