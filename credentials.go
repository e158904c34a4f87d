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
	"time"

	"github.com/searchrpc/searchrpc/internal/debuglog"
)

// Credentials is a key/secret pair identifying the caller.
type Credentials struct {
	Key    string
	Secret string
}

func (c Credentials) authorization() string {
	return _authScheme + " " + c.Key + " " + c.Secret
}

// CallOption customizes a single call.
type CallOption interface {
	apply(*CallOptions)
}

// CallOptions holds the options of a call. Zero fields inherit the client's
// defaults: DefaultDeadline and the credentials given to New.
//
// CallOptions is itself a CallOption.
//
//	searchrpc.Call(ctx, client, path, req, enc, dec, searchrpc.CallOptions{
//		Deadline:    10 * time.Second,
//		Credentials: &searchrpc.Credentials{Key: "k2", Secret: "s2"},
//	})
type CallOptions struct {
	Deadline time.Duration

	// Credentials, when set, replace the default credentials for the call.
	Credentials *Credentials
}

func (o CallOptions) apply(opts *CallOptions) {
	*opts = mergeCallOptions(*opts, o)
}

// WithDeadline bounds the call to d from the moment it is issued.
func WithDeadline(d time.Duration) CallOption {
	return CallOptions{Deadline: d}
}

// WithCredentials authenticates the call with the given key and secret
// instead of the client's.
func WithCredentials(key, secret string) CallOption {
	return CallOptions{Credentials: &Credentials{Key: key, Secret: secret}}
}

// mergeCallOptions overlays the set fields of call onto defaults.
// Credentials are replaced as a whole.
func mergeCallOptions(defaults, call CallOptions) CallOptions {
	merged := defaults
	if call.Deadline > 0 {
		merged.Deadline = call.Deadline
	}
	if call.Credentials != nil {
		creds := *call.Credentials
		merged.Credentials = &creds
	}
	return merged
}

func (o CallOptions) loggable() debuglog.CallOptions {
	opts := debuglog.CallOptions{Deadline: o.Deadline}
	if o.Credentials != nil {
		opts.Credentials = debuglog.Credentials(*o.Credentials)
	}
	return opts
}
