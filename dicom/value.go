// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import "strings"

// ValueKind identifies which variant of Value is populated. Consumers
// dispatch on Kind (or call the typed accessor directly, which returns a
// retrieval error on mismatch rather than panicking) instead of relying on
// an any-typed field, per spec §9's note on modeling the decoded value as
// an explicit sum type.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBytes
	KindInt16
	KindInt32
	KindUint16
	KindUint32
	KindFloat32
	KindFloat64
)

// Value is the decoded payload of a Data Element: a tagged union over a
// trimmed string, an opaque byte vector, or a signed/unsigned integer or
// float scalar-or-vector. IsVector distinguishes a single-element payload
// (scalar) from a length-one vector, per spec §3: a payload whose length
// equals one element's size decodes to scalar, a longer whole multiple
// decodes to a vector.
type Value struct {
	kind     ValueKind
	isVector bool

	str   string
	bytes []byte
	i16   []int16
	i32   []int32
	u16   []uint16
	u32   []uint32
	f32   []float32
	f64   []float64
}

// Kind reports which variant of Value is populated.
func (v Value) Kind() ValueKind { return v.kind }

// IsVector reports whether the value is a multi-element vector, as opposed
// to a single scalar.
func (v Value) IsVector() bool { return v.isVector }

func stringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

func bytesValue(b []byte, isVector bool) Value {
	return Value{kind: KindBytes, bytes: b, isVector: isVector}
}

func int16Value(v []int16, isVector bool) Value {
	return Value{kind: KindInt16, i16: v, isVector: isVector}
}

func int32Value(v []int32, isVector bool) Value {
	return Value{kind: KindInt32, i32: v, isVector: isVector}
}

func uint16Value(v []uint16, isVector bool) Value {
	return Value{kind: KindUint16, u16: v, isVector: isVector}
}

func uint32Value(v []uint32, isVector bool) Value {
	return Value{kind: KindUint32, u32: v, isVector: isVector}
}

func float32Value(v []float32, isVector bool) Value {
	return Value{kind: KindFloat32, f32: v, isVector: isVector}
}

func float64Value(v []float64, isVector bool) Value {
	return Value{kind: KindFloat64, f64: v, isVector: isVector}
}

// kindMismatch is the typed retrieval error returned by an accessor whose
// ValueKind does not match the actual content.
type kindMismatch struct {
	want, got ValueKind
}

func (e *kindMismatch) Error() string {
	return newParseError("value kind mismatch: want %v, got %v", e.want, e.got).Error()
}

// String returns the raw decoded string. Trailing spaces/nulls are not
// stripped here (spec §4.2 note) — use TrimmedString for that.
func (v Value) String() (string, error) {
	if v.kind != KindString {
		return "", &kindMismatch{KindString, v.kind}
	}
	return v.str, nil
}

// TrimmedString returns the decoded string with trailing whitespace and NUL
// bytes removed, the form most DICOM string VRs are conventionally
// compared against.
func (v Value) TrimmedString() (string, error) {
	s, err := v.String()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, " \x00"), nil
}

// Bytes returns the opaque byte payload (OB, UN, or implicit-VR elements).
func (v Value) Bytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, &kindMismatch{KindBytes, v.kind}
	}
	return v.bytes, nil
}

// Int16Slice returns the decoded SS payload, scalar or vector.
func (v Value) Int16Slice() ([]int16, error) {
	if v.kind != KindInt16 {
		return nil, &kindMismatch{KindInt16, v.kind}
	}
	return v.i16, nil
}

// Int32Slice returns the decoded SL payload, scalar or vector.
func (v Value) Int32Slice() ([]int32, error) {
	if v.kind != KindInt32 {
		return nil, &kindMismatch{KindInt32, v.kind}
	}
	return v.i32, nil
}

// Uint16Slice returns the decoded US/AT/OW payload, scalar or vector.
func (v Value) Uint16Slice() ([]uint16, error) {
	if v.kind != KindUint16 {
		return nil, &kindMismatch{KindUint16, v.kind}
	}
	return v.u16, nil
}

// Uint32Slice returns the decoded UL payload, scalar or vector.
func (v Value) Uint32Slice() ([]uint32, error) {
	if v.kind != KindUint32 {
		return nil, &kindMismatch{KindUint32, v.kind}
	}
	return v.u32, nil
}

// Float32Slice returns the decoded FL/OF payload, scalar or vector.
func (v Value) Float32Slice() ([]float32, error) {
	if v.kind != KindFloat32 {
		return nil, &kindMismatch{KindFloat32, v.kind}
	}
	return v.f32, nil
}

// Float64Slice returns the decoded FD payload, scalar or vector.
func (v Value) Float64Slice() ([]float64, error) {
	if v.kind != KindFloat64 {
		return nil, &kindMismatch{KindFloat64, v.kind}
	}
	return v.f64, nil
}

// Int returns the first element of an integer-kinded value as an int64,
// regardless of its specific width or signedness. It is a convenience
// accessor in the spirit of the original C++ source's type-erased int()
// getter, but fails with a typed error instead of throwing on mismatch.
func (v Value) Int() (int64, error) {
	switch v.kind {
	case KindInt16:
		return int64(v.i16[0]), nil
	case KindInt32:
		return int64(v.i32[0]), nil
	case KindUint16:
		return int64(v.u16[0]), nil
	case KindUint32:
		return int64(v.u32[0]), nil
	default:
		return 0, newParseError("value is not an integer kind: %v", v.kind)
	}
}

// Float returns the first element of a float-kinded value as a float64.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindFloat32:
		return float64(v.f32[0]), nil
	case KindFloat64:
		return v.f64[0], nil
	default:
		return 0, newParseError("value is not a float kind: %v", v.kind)
	}
}
