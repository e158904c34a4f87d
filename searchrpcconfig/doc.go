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

// Package searchrpcconfig builds searchrpc clients from YAML configuration.
//
//	project: ${SEARCH_PROJECT}
//	collection: ${SEARCH_COLLECTION}
//	credentials:
//	  key: ${SEARCH_KEY_ID}
//	  secret: ${SEARCH_KEY_SECRET}
//	endpoint: api.sajari.com:443
//	insecure: false
//	retry:
//	  attempts: 3
//	  backoff:
//	    exponential:
//	      first: 10ms
//	      max: 1s
//	logging:
//	  level: info
//	  showCredentials: false
//
// String fields accept ${NAME} and ${NAME:default} references, resolved
// from the environment unless another lookup function is given. Setting
// DEBUG_SHOW_CREDS=true in that environment has the same effect as
// logging.showCredentials.
package searchrpcconfig
