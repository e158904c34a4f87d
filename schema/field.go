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

// Package schema declares the fields of a collection's records.
//
//	fields := []schema.Field{
//		schema.String("id", schema.WithMode(schema.ModeUnique)),
//		schema.String("title", schema.Description("Title of the page")),
//		schema.String("tags", schema.Repeated()),
//		schema.Timestamp("published"),
//	}
package schema

import "fmt"

// Type is the data type of a field's values.
type Type string

// Field types.
const (
	TypeString    Type = "STRING"
	TypeInteger   Type = "INTEGER"
	TypeFloat     Type = "FLOAT"
	TypeDouble    Type = "DOUBLE"
	TypeBoolean   Type = "BOOLEAN"
	TypeTimestamp Type = "TIMESTAMP"
)

// Mode tells whether a field must be set on every record.
type Mode int32

const (
	// ModeNullable fields do not need to be set.
	ModeNullable Mode = iota
	// ModeRequired fields must be set.
	ModeRequired
	// ModeUnique fields must be set and unique across records. They can be
	// used to get and delete records.
	ModeUnique
)

var _modeNames = map[Mode]string{
	ModeNullable: "NULLABLE",
	ModeRequired: "REQUIRED",
	ModeUnique:   "UNIQUE",
}

func (m Mode) String() string {
	if s, ok := _modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	s, ok := _modeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown mode: %d", int32(m))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	for mode, name := range _modeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown mode: %q", text)
}

// Field is a field of a collection's records.
type Field struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        Type   `json:"type"`
	Mode        Mode   `json:"mode"`

	// Repeated fields hold a list of values.
	Repeated bool `json:"repeated"`
	Indexed  bool `json:"indexed,omitempty"`

	// Required and Unique mirror Mode for services that predate it.
	Required bool `json:"required"`
	Unique   bool `json:"unique"`
}

// FieldOption customizes a Field.
type FieldOption func(*Field)

// Description describes the field.
func Description(d string) FieldOption {
	return func(f *Field) { f.Description = d }
}

// Repeated lets the field hold a list of values.
func Repeated() FieldOption {
	return func(f *Field) { f.Repeated = true }
}

// Indexed asks for the field to be indexed.
func Indexed() FieldOption {
	return func(f *Field) { f.Indexed = true }
}

// WithMode sets the mode of the field. Defaults to ModeNullable.
func WithMode(m Mode) FieldOption {
	return func(f *Field) { f.Mode = m }
}

func newField(t Type, name string, opts []FieldOption) Field {
	f := Field{Name: name, Type: t, Mode: ModeNullable}
	for _, opt := range opts {
		opt(&f)
	}
	switch f.Mode {
	case ModeRequired:
		f.Required = true
	case ModeUnique:
		f.Unique = true
	}
	return f
}

// String declares a string field.
func String(name string, opts ...FieldOption) Field {
	return newField(TypeString, name, opts)
}

// Integer declares an integer field.
func Integer(name string, opts ...FieldOption) Field {
	return newField(TypeInteger, name, opts)
}

// Float declares a single precision floating point field.
func Float(name string, opts ...FieldOption) Field {
	return newField(TypeFloat, name, opts)
}

// Double declares a double precision floating point field.
func Double(name string, opts ...FieldOption) Field {
	return newField(TypeDouble, name, opts)
}

// Boolean declares a boolean field.
func Boolean(name string, opts ...FieldOption) Field {
	return newField(TypeBoolean, name, opts)
}

// Timestamp declares a timestamp field.
func Timestamp(name string, opts ...FieldOption) Field {
	return newField(TypeTimestamp, name, opts)
}
