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

package searchrpcerrors

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
)

const (
	// KindUnknown is any failure that carries no more specific classification.
	KindUnknown Kind = iota

	// KindTransportUnavailable means the channel could not reach the endpoint.
	// These failures are retried up to the retry budget before surfacing.
	KindTransportUnavailable

	// KindDeadlineExceeded means the call ran past its absolute deadline.
	KindDeadlineExceeded

	// KindAuthenticationFailure means the server rejected the credentials.
	// These failures are never retried.
	KindAuthenticationFailure

	// KindAbnormalCancellation means the call was cancelled by the transport
	// while the caller still wanted the result, typically because the
	// connection underneath it died. The client replaces its channel when it
	// sees one.
	KindAbnormalCancellation

	// KindCancelled means the caller cancelled the call.
	KindCancelled

	// KindInvalidArgument means the server rejected the request itself.
	KindInvalidArgument

	// KindReadinessTimeout means Wait gave up before the channel became ready.
	KindReadinessTimeout

	// KindOther covers the remaining gRPC status codes (not found, already
	// exists, internal, ...). Inspect the status for details.
	KindOther
)

var (
	_kindToString = map[Kind]string{
		KindUnknown:               "unknown",
		KindTransportUnavailable:  "transport-unavailable",
		KindDeadlineExceeded:      "deadline-exceeded",
		KindAuthenticationFailure: "authentication-failure",
		KindAbnormalCancellation:  "abnormal-cancellation",
		KindCancelled:             "cancelled",
		KindInvalidArgument:       "invalid-argument",
		KindReadinessTimeout:      "readiness-timeout",
		KindOther:                 "other",
	}
	_stringToKind = map[string]Kind{
		"unknown":                KindUnknown,
		"transport-unavailable":  KindTransportUnavailable,
		"deadline-exceeded":      KindDeadlineExceeded,
		"authentication-failure": KindAuthenticationFailure,
		"abnormal-cancellation":  KindAbnormalCancellation,
		"cancelled":              KindCancelled,
		"invalid-argument":       KindInvalidArgument,
		"readiness-timeout":      KindReadinessTimeout,
		"other":                  KindOther,
	}

	// _grpcCodeToKind maps the gRPC codes with a dedicated kind. Codes missing
	// here classify as KindOther. codes.Canceled needs the caller's context
	// to tell abnormal from explicit cancellation and is handled in KindOf.
	_grpcCodeToKind = map[codes.Code]Kind{
		codes.Unknown:          KindUnknown,
		codes.Unavailable:      KindTransportUnavailable,
		codes.DeadlineExceeded: KindDeadlineExceeded,
		codes.Unauthenticated:  KindAuthenticationFailure,
		codes.PermissionDenied: KindAuthenticationFailure,
		codes.InvalidArgument:  KindInvalidArgument,
	}
)

// Kind classifies a failed call.
//
// Kinds never replace the error a call returns; they are derived from it
// with KindOf.
type Kind int

// String returns the string representation of the Kind.
func (k Kind) String() string {
	s, ok := _kindToString[k]
	if ok {
		return s
	}
	return strconv.Itoa(int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	s, ok := _kindToString[k]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown kind: %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	i, ok := _stringToKind[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown kind string: %s", string(text))
	}
	*k = i
	return nil
}
