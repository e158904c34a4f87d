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

import "time"

// Version is the current version of the client.
const Version = "1.4.0"

// UserAgent is sent with every call.
const UserAgent = "searchrpc-go/" + Version

const (
	// DefaultEndpoint is the address dialed when WithEndpoint is not given.
	DefaultEndpoint = "api.sajari.com:443"

	// DefaultAuthority is the :authority sent to the default endpoint and
	// the name its TLS certificate is verified against.
	DefaultAuthority = "api.sajari.com"

	// DefaultDeadline bounds calls that do not set one.
	DefaultDeadline = 5 * time.Second
)

// Metadata keys attached to every call.
const (
	ProjectHeader       = "project"
	CollectionHeader    = "collection"
	AuthorizationHeader = "authorization"
)

const _authScheme = "keysecret"
