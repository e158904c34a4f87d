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

package searchrpcconfig

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/searchrpc/searchrpc/internal/interpolate"
	"github.com/uber-go/mapdecode"
	"go.uber.org/zap/zapcore"
)

const (
	_tagName           = "config"
	_interpolateOption = "interpolate"
)

// decodeInto decodes src into dst using the config struct tags. Unknown
// keys are errors.
func decodeInto(dst interface{}, src interface{}, opts ...mapdecode.Option) error {
	opts = append(opts, mapdecode.TagName(_tagName))
	return mapdecode.Decode(dst, src, opts...)
}

// interpolateWith renders fields tagged `config:",interpolate"` with
// variables from resolve before they are decoded.
func interpolateWith(resolve interpolate.VariableResolver) mapdecode.Option {
	return mapdecode.FieldHook(func(dest reflect.StructField, srcData reflect.Value) (reflect.Value, error) {
		if !hasOption(dest.Tag.Get(_tagName), _interpolateOption) {
			return srcData, nil
		}

		// srcData may be an interface{} holding a string.
		v, ok := srcData.Interface().(string)
		if !ok {
			// A number given for an interpolated number field.
			return srcData, nil
		}

		rendered, err := interpolate.Expand(v, resolve)
		if err != nil {
			return srcData, fmt.Errorf("failed to interpolate %q: %v", v, err)
		}
		return reflect.ValueOf(rendered), nil
	})
}

func hasOption(tag, option string) bool {
	opts := strings.Split(tag, ",")
	for _, o := range opts[1:] {
		if o == option {
			return true
		}
	}
	return false
}

// zapLevel decodes a zap level from its name. mapdecode does not use
// encoding.TextUnmarshaler.
type zapLevel zapcore.Level

func (l *zapLevel) Decode(into mapdecode.Into) error {
	var s string
	if err := into(&s); err != nil {
		return fmt.Errorf("could not decode log level: %v", err)
	}
	if err := (*zapcore.Level)(l).UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("could not decode log level: %v", err)
	}
	return nil
}
