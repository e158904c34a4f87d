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

package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuccess(t *testing.T) {
	tests := []struct {
		give string
		want String
	}{
		{give: "", want: nil},
		{
			give: "api.sajari.com:443",
			want: String{literal("api.sajari.com:443")},
		},
		{
			give: "${SEARCH_PROJECT}",
			want: String{variable{Name: "SEARCH_PROJECT"}},
		},
		{
			give: "key ${KEY_ID} end",
			want: String{
				literal("key "),
				variable{Name: "KEY_ID"},
				literal(" end"),
			},
		},
		{
			give: "${HOST:localhost}:${PORT:}",
			want: String{
				variable{Name: "HOST", Default: "localhost", HasDefault: true},
				literal(":"),
				variable{Name: "PORT", HasDefault: true},
			},
		},
		{
			give: "${ENDPOINT:api.sajari.com:443}",
			want: String{variable{Name: "ENDPOINT", Default: "api.sajari.com:443", HasDefault: true}},
		},
		{
			give: "${msg:hello world}",
			want: String{variable{Name: "msg", Default: "hello world", HasDefault: true}},
		},
		{
			give: `cost \${PRICE} $5`,
			want: String{literal("cost ${PRICE} $5")},
		},
		{
			give: "$FOO${bar}",
			want: String{literal("$FOO"), variable{Name: "bar"}},
		},
		{
			give: "${search-key}",
			want: String{variable{Name: "search-key"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			got, err := Parse(tt.give)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		give    string
		wantErr string
	}{
		{give: "${KEY", wantErr: "unterminated variable reference at offset 0"},
		{give: "a ${}", wantErr: "empty variable name"},
		{give: "${KEY.ID}", wantErr: `contains '.'`},
		{give: "${KEY-}", wantErr: "misplaced hyphen"},
		{give: "${KEY--ID}", wantErr: "misplaced hyphen"},
		{give: "${1KEY}", wantErr: "starts with a digit"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			_, err := Parse(tt.give)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
