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

package tracing

import (
	"context"
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestInterceptorRecordsSpan(t *testing.T) {
	tracer := mocktracer.New()
	intercept := NewUnaryInterceptor(tracer, Identity{Project: "p1", Collection: "c1"})

	base := metadata.Pairs("project", "p1")
	ctx := metadata.NewOutgoingContext(context.Background(), base)

	var gotMD metadata.MD
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		gotMD, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}
	require.NoError(t, intercept(ctx, "/Search", nil, nil, nil, invoker))

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "/Search", span.OperationName)
	assert.Equal(t, "p1", span.Tag("rpc.project"))
	assert.Equal(t, "c1", span.Tag("rpc.collection"))
	assert.Equal(t, "grpc", span.Tag("rpc.transport"))
	assert.Equal(t, ext.SpanKindRPCClientEnum, span.Tag(string(ext.SpanKind)))
	assert.Nil(t, span.Tag(string(ext.Error)))

	assert.NotEmpty(t, gotMD.Get("mockpfx-ids-traceid"), "span context should be injected")
	assert.Equal(t, []string{"p1"}, gotMD.Get("project"))
	assert.Empty(t, base.Get("mockpfx-ids-traceid"), "caller metadata must not be mutated")
}

func TestInterceptorTagsErrors(t *testing.T) {
	tracer := mocktracer.New()
	intercept := NewUnaryInterceptor(tracer, Identity{})

	want := status.Error(codes.Unavailable, "down")
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return want
	}
	err := intercept(context.Background(), "/Search", nil, nil, nil, invoker)
	assert.Same(t, want, err)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, true, spans[0].Tag(string(ext.Error)))
	assert.Equal(t, "Unavailable", spans[0].Tag("rpc.code"))
}

func TestInterceptorChildOfParent(t *testing.T) {
	tracer := mocktracer.New()
	intercept := NewUnaryInterceptor(tracer, Identity{})

	parent := tracer.StartSpan("parent")
	ctx := opentracing.ContextWithSpan(context.Background(), parent)
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return nil
	}
	require.NoError(t, intercept(ctx, "/Search", nil, nil, nil, invoker))
	parent.Finish()

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, parent.Context().(mocktracer.MockSpanContext).SpanID, spans[0].ParentID)
}
