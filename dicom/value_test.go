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

import "testing"

func TestValueTrimmedString(t *testing.T) {
	v := stringValue("MONOCHROME2 \x00")
	got, err := v.TrimmedString()
	if err != nil {
		t.Fatalf("TrimmedString() error = %v", err)
	}
	if want := "MONOCHROME2"; got != want {
		t.Errorf("TrimmedString() = %q, want %q", got, want)
	}
}

func TestValueKindMismatch(t *testing.T) {
	v := stringValue("hello")
	if _, err := v.Bytes(); err == nil {
		t.Error("Bytes() on a string-kinded Value = nil error, want error")
	}
	if _, err := v.Int16Slice(); err == nil {
		t.Error("Int16Slice() on a string-kinded Value = nil error, want error")
	}
}

func TestValueIsVector(t *testing.T) {
	scalar := uint16Value([]uint16{7}, false)
	vector := uint16Value([]uint16{1, 2, 3}, true)

	if scalar.IsVector() {
		t.Error("scalar Value reports IsVector() = true")
	}
	if !vector.IsVector() {
		t.Error("vector Value reports IsVector() = false")
	}
}

func TestValueInt(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int64
	}{
		{"int16", int16Value([]int16{-5}, false), -5},
		{"int32", int32Value([]int32{123456}, false), 123456},
		{"uint16", uint16Value([]uint16{65535}, false), 65535},
		{"uint32", uint32Value([]uint32{1}, false), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.v.Int()
			if err != nil {
				t.Fatalf("Int() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Int() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestValueIntWrongKind(t *testing.T) {
	v := stringValue("not a number")
	if _, err := v.Int(); err == nil {
		t.Error("Int() on a string-kinded Value = nil error, want error")
	}
}

func TestValueFloat(t *testing.T) {
	v := float64Value([]float64{3.5}, false)
	got, err := v.Float()
	if err != nil {
		t.Fatalf("Float() error = %v", err)
	}
	if got != 3.5 {
		t.Errorf("Float() = %v, want 3.5", got)
	}
}
