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

// Package debuglog writes the client's debug trail: endpoint, method, call
// options, request and response of every call.
//
// Credentials never reach the log unless Config.ShowCredentials is set.
package debuglog

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ShowCredentialsEnv is the environment variable that opts into logging
// credentials when its value is "true" (any case).
const ShowCredentialsEnv = "DEBUG_SHOW_CREDS"

const _hidden = "hidden"

// Config controls what the debug log may contain.
type Config struct {
	// ShowCredentials logs credential keys and secrets in the clear.
	ShowCredentials bool
}

// ConfigFromLookup builds a Config from an environment lookup function such
// as os.LookupEnv.
func ConfigFromLookup(lookup func(string) (string, bool)) Config {
	v, ok := lookup(ShowCredentialsEnv)
	return Config{ShowCredentials: ok && strings.EqualFold(v, "true")}
}

// Credentials is the loggable view of a key/secret pair.
type Credentials struct {
	Key    string
	Secret string
}

// CallOptions is the loggable view of a call's effective options.
type CallOptions struct {
	Deadline    time.Duration
	Credentials Credentials
}

// Logger logs calls at debug level.
type Logger struct {
	log *zap.Logger
	cfg Config
}

// New wraps a zap logger. A nil logger discards everything.
func New(log *zap.Logger, cfg Config) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log, cfg: cfg}
}

// Enabled reports whether debug entries are written at all, so callers can
// skip building expensive fields.
func (l *Logger) Enabled() bool {
	return l.log.Core().Enabled(zapcore.DebugLevel)
}

// Call logs the start of a call.
func (l *Logger) Call(endpoint, method string, opts CallOptions, request interface{}) {
	if !l.Enabled() {
		return
	}
	l.log.Debug("issuing call",
		zap.String("endpoint", endpoint),
		zap.String("method", method),
		zap.Object("callOptions", l.options(opts)),
		zap.String("request", describe(request)),
	)
}

// Response logs the decoded response of a successful call.
func (l *Logger) Response(method string, response interface{}) {
	if !l.Enabled() {
		return
	}
	l.log.Debug("call succeeded",
		zap.String("method", method),
		zap.String("response", describe(response)),
	)
}

// Failure logs a failed call.
func (l *Logger) Failure(method string, err error) {
	l.log.Debug("call failed", zap.String("method", method), zap.Error(err))
}

func (l *Logger) options(opts CallOptions) zapcore.ObjectMarshaler {
	return redactedOptions{opts: opts, show: l.cfg.ShowCredentials}
}

type redactedOptions struct {
	opts CallOptions
	show bool
}

func (r redactedOptions) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddDuration("deadline", r.opts.Deadline)
	if !r.show {
		enc.AddString("credentials", _hidden)
		return nil
	}
	return enc.AddObject("credentials", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("key", r.opts.Credentials.Key)
		enc.AddString("secret", r.opts.Credentials.Secret)
		return nil
	}))
}

func describe(v interface{}) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%+v", v)
}
