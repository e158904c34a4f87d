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

package debuglog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _opts = CallOptions{
	Deadline:    5 * time.Second,
	Credentials: Credentials{Key: "key-id", Secret: "s3cret"},
}

func TestCallHidesCredentialsByDefault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core), Config{})

	l.Call("api.sajari.com:443", "/Search", _opts, "query")

	entries := logs.FilterMessage("issuing call").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/Search", fields["method"])
	assert.Equal(t, "api.sajari.com:443", fields["endpoint"])
	assert.Equal(t, map[string]interface{}{
		"deadline":    5 * time.Second,
		"credentials": "hidden",
	}, fields["callOptions"])
	assert.NotContains(t, entries[0].Message, "s3cret")
}

func TestCallShowsCredentialsWhenAllowed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core), Config{ShowCredentials: true})

	l.Call("localhost:9000", "/Search", _opts, "query")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]interface{}{
		"deadline": 5 * time.Second,
		"credentials": map[string]interface{}{
			"key":    "key-id",
			"secret": "s3cret",
		},
	}, entries[0].ContextMap()["callOptions"])
}

func TestResponseAndFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core), Config{})

	l.Response("/Search", struct{ Total int }{Total: 3})
	l.Failure("/Search", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "{Total:3}", entries[0].ContextMap()["response"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestDisabledAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core), Config{})
	assert.False(t, l.Enabled())

	l.Call("localhost:9000", "/Search", _opts, "query")
	assert.Zero(t, logs.Len())
}

func TestNilLogger(t *testing.T) {
	l := New(nil, Config{})
	assert.False(t, l.Enabled())
	l.Call("localhost:9000", "/Search", _opts, nil)
}

func TestConfigFromLookup(t *testing.T) {
	tests := []struct {
		msg   string
		env   map[string]string
		wantS bool
	}{
		{msg: "unset", env: map[string]string{}, wantS: false},
		{msg: "true", env: map[string]string{ShowCredentialsEnv: "true"}, wantS: true},
		{msg: "TRUE", env: map[string]string{ShowCredentialsEnv: "TRUE"}, wantS: true},
		{msg: "one", env: map[string]string{ShowCredentialsEnv: "1"}, wantS: false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := ConfigFromLookup(func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			assert.Equal(t, tt.wantS, cfg.ShowCredentials)
		})
	}
}
