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

// Package interpolate expands ${NAME} and ${NAME:default} references in
// configuration strings.
//
// A backslash before the dollar sign keeps the reference literal:
// `\${NAME}` renders as `${NAME}`.
package interpolate

import (
	"fmt"
	"io"
	"strings"
)

type (
	term interface {
		render(resolve VariableResolver) (string, error)
	}

	literal string

	variable struct {
		Name       string
		Default    string
		HasDefault bool
	}
)

func (l literal) render(VariableResolver) (string, error) {
	return string(l), nil
}

func (v variable) render(resolve VariableResolver) (string, error) {
	if val, ok := resolve(v.Name); ok {
		return val, nil
	}
	if v.HasDefault {
		return v.Default, nil
	}
	return "", errUnknownVariable{Name: v.Name}
}

// VariableResolver resolves the value of a variable. os.LookupEnv is one.
//
// A variable without a value and without a default fails rendering.
type VariableResolver func(name string) (value string, ok bool)

// String is a parsed string ready to be rendered against a source of
// variable values.
type String []term

// Render renders the string using resolve for variable values.
func (s String) Render(resolve VariableResolver) (string, error) {
	var sb strings.Builder
	if err := s.RenderTo(&sb, resolve); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo renders the string into w.
func (s String) RenderTo(w io.Writer, resolve VariableResolver) error {
	for _, t := range s {
		value, err := t.render(resolve)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, value); err != nil {
			return err
		}
	}
	return nil
}

// Variables lists the names referenced by the string in order of
// appearance.
func (s String) Variables() []string {
	var names []string
	for _, t := range s {
		if v, ok := t.(variable); ok {
			names = append(names, v.Name)
		}
	}
	return names
}

// Expand parses s and renders it in one step.
func Expand(s string, resolve VariableResolver) (string, error) {
	parsed, err := Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.Render(resolve)
}

type errUnknownVariable struct{ Name string }

func (e errUnknownVariable) Error() string {
	return fmt.Sprintf("variable %q does not have a value or a default", e.Name)
}
