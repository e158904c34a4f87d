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
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ReadinessTimeoutError is returned by Client.Wait when the channel did not
// become ready within the requested bound.
type ReadinessTimeoutError struct {
	msg string
}

// ReadinessTimeoutf builds a ReadinessTimeoutError.
func ReadinessTimeoutf(format string, args ...interface{}) *ReadinessTimeoutError {
	return &ReadinessTimeoutError{msg: fmt.Sprintf(format, args...)}
}

func (e *ReadinessTimeoutError) Error() string {
	return "readiness timeout: " + e.msg
}

// IsReadinessTimeout reports whether err is, or wraps, a
// ReadinessTimeoutError.
func IsReadinessTimeout(err error) bool {
	var rerr *ReadinessTimeoutError
	return errors.As(err, &rerr)
}

// KindOf classifies err without altering it.
//
// ctx is the caller's context for the call that failed; it separates
// cancellations the caller asked for from cancellations the transport
// imposed. A nil ctx treats every cancellation as abnormal.
func KindOf(ctx context.Context, err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if IsReadinessTimeout(err) {
		return KindReadinessTimeout
	}

	st, ok := status.FromError(err)
	if !ok {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return KindDeadlineExceeded
		case errors.Is(err, context.Canceled):
			return KindCancelled
		}
		return KindUnknown
	}

	if st.Code() == codes.Canceled {
		if ctx != nil && ctx.Err() != nil {
			return KindCancelled
		}
		return KindAbnormalCancellation
	}
	if kind, ok := _grpcCodeToKind[st.Code()]; ok {
		return kind
	}
	return KindOther
}

// IsAbnormalCancellation reports whether err is a cancellation the caller
// did not ask for.
func IsAbnormalCancellation(ctx context.Context, err error) bool {
	return KindOf(ctx, err) == KindAbnormalCancellation
}
