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
	"fmt"

	"github.com/gogo/protobuf/proto"
	"google.golang.org/grpc/encoding"
)

// Encoder serializes a request message to its wire form.
type Encoder[T any] func(T) ([]byte, error)

// Decoder parses a response message from its wire form.
type Decoder[T any] func([]byte) (T, error)

// ProtoEncoder returns an Encoder for protobuf messages.
func ProtoEncoder[T proto.Message]() Encoder[T] {
	return func(msg T) ([]byte, error) {
		return proto.Marshal(msg)
	}
}

// ProtoDecoder returns a Decoder producing *T, a protobuf message.
//
//	dec := searchrpc.ProtoDecoder[pb.SearchResponse]()
func ProtoDecoder[T any, PT interface {
	*T
	proto.Message
}]() Decoder[PT] {
	return func(data []byte) (PT, error) {
		msg := PT(new(T))
		if err := proto.Unmarshal(data, msg); err != nil {
			return nil, err
		}
		return msg, nil
	}
}

// RawCodec passes bytes through unchanged in both directions.
//
//	searchrpc.Call(ctx, client, path, body, searchrpc.RawCodec{}.Encode, searchrpc.RawCodec{}.Decode)
type RawCodec struct{}

// Encode returns body as is.
func (RawCodec) Encode(body []byte) ([]byte, error) { return body, nil }

// Decode returns data as is.
func (RawCodec) Decode(data []byte) ([]byte, error) { return data, nil }

// wireCodec is forced on every call. Messages reach it already encoded by
// the caller's Encoder, so it only moves bytes. It names itself proto so the
// content-type is the one protobuf servers expect.
type wireCodec struct{}

var _ encoding.Codec = wireCodec{}

func (wireCodec) Marshal(v interface{}) ([]byte, error) {
	bs, ok := v.(*[]byte)
	if !ok {
		return nil, fmt.Errorf("expected sender of type *[]byte but got %T", v)
	}
	return *bs, nil
}

func (wireCodec) Unmarshal(data []byte, v interface{}) error {
	bs, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("expected receiver of type *[]byte but got %T", v)
	}
	// data belongs to a pooled buffer that is released after this returns.
	*bs = append([]byte(nil), data...)
	return nil
}

func (wireCodec) Name() string {
	return "proto"
}
