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

package retry

import (
	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

const (
	_errorTag = "error"

	_unretryable = "unretryable"
	_noTime      = "no_time"
	_maxAttempts = "max_attempts"
	_cancelled   = "cancelled"
)

// observer records what the retry loop decided for every call.
type observer struct {
	logger *zap.Logger

	calls     tally.Counter
	successes tally.Counter
	retries   tally.Counter

	unretryableFailures tally.Counter
	noTimeFailures      tally.Counter
	maxAttemptFailures  tally.Counter
	cancelledFailures   tally.Counter
}

func newObserver(logger *zap.Logger, scope tally.Scope) *observer {
	failures := func(reason string) tally.Counter {
		return scope.Tagged(map[string]string{_errorTag: reason}).Counter("retry_failures")
	}
	return &observer{
		logger:              logger,
		calls:               scope.Counter("retry_calls"),
		successes:           scope.Counter("retry_successes"),
		retries:             scope.Counter("retry_attempts"),
		unretryableFailures: failures(_unretryable),
		noTimeFailures:      failures(_noTime),
		maxAttemptFailures:  failures(_maxAttempts),
		cancelledFailures:   failures(_cancelled),
	}
}

func (o *observer) begin(method string) call {
	o.calls.Inc(1)
	return call{o: o, method: method}
}

// call scopes the observer to one unary call.
type call struct {
	o      *observer
	method string
}

func (c call) retryOnError(attempt uint, err error) {
	c.o.retries.Inc(1)
	c.o.logger.Debug("retrying call after error",
		zap.String("method", c.method),
		zap.Uint("attempt", attempt+1),
		zap.String("code", status.Code(err).String()),
		zap.Error(err),
	)
}

func (c call) success() {
	c.o.successes.Inc(1)
}

func (c call) fail(reason string, attempts uint, err error) {
	switch reason {
	case _unretryable:
		c.o.unretryableFailures.Inc(1)
	case _noTime:
		c.o.noTimeFailures.Inc(1)
	case _maxAttempts:
		c.o.maxAttemptFailures.Inc(1)
	case _cancelled:
		c.o.cancelledFailures.Inc(1)
	}
	c.o.logger.Debug("call failed",
		zap.String("method", c.method),
		zap.String("reason", reason),
		zap.Uint("attempts", attempts),
		zap.Error(err),
	)
}
