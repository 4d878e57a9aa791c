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

import (
	"bytes"
	"testing"
)

func TestValueDecoderScalarVsVector(t *testing.T) {
	tests := []struct {
		name   string
		raw    []byte
		length uint32
		want   bool // isVector
		count  int
	}{
		{"scalar", []byte{0x01, 0x00}, 2, false, 1},
		{"vector of 3", []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00}, 6, true, 3},
		{"truncated to floor", []byte{0x01, 0x00, 0x02, 0x00, 0x00}, 5, true, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewByteReader(bytes.NewReader(tc.raw))
			d := NewValueDecoder(r)
			v, err := d.Decode(US, tc.length, defaultDecodingMode)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if v.IsVector() != tc.want {
				t.Errorf("IsVector() = %v, want %v", v.IsVector(), tc.want)
			}
			got, err := v.Uint16Slice()
			if err != nil {
				t.Fatalf("Uint16Slice() error = %v", err)
			}
			if len(got) != tc.count {
				t.Errorf("len(values) = %d, want %d", len(got), tc.count)
			}
		})
	}
}

func TestValueDecoderStringVR(t *testing.T) {
	r := NewByteReader(bytes.NewReader([]byte("MONOCHROME2\x00")))
	d := NewValueDecoder(r)
	v, err := d.Decode(CS, 12, defaultDecodingMode)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := v.TrimmedString()
	if err != nil {
		t.Fatalf("TrimmedString() error = %v", err)
	}
	if want := "MONOCHROME2"; got != want {
		t.Errorf("TrimmedString() = %q, want %q", got, want)
	}
}

func TestValueDecoderUndefinedLengthSequence(t *testing.T) {
	payload := []byte{
		0xFE, 0xFF, 0xE0, 0x00, // item tag prefix, stripped
		0xAA, 0xBB, 0xCC, // item content
		0xFF, 0xFE, 0xE0, 0xDD, 0x00, 0x00, 0x00, 0x00, // sequence delimitation item
	}
	r := NewByteReader(bytes.NewReader(payload))
	d := NewValueDecoder(r)
	v, err := d.Decode(SQ, UndefinedLength, defaultDecodingMode)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := v.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	want := []byte{0xAA, 0xBB, 0xCC}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}
}

func TestValueDecoderDefinedLengthBytes(t *testing.T) {
	r := NewByteReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))
	d := NewValueDecoder(r)
	v, err := d.Decode(OB, 4, defaultDecodingMode)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := v.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Errorf("Bytes() = %v, want [1 2 3 4]", got)
	}
}

func TestValueDecoderImplicitVR(t *testing.T) {
	r := NewByteReader(bytes.NewReader([]byte{0xAA, 0xBB}))
	d := NewValueDecoder(r)
	v, err := d.Decode(vrImplicit, 2, defaultDecodingMode)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := v.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(got, []byte{0xAA, 0xBB}) {
		t.Errorf("Bytes() = %v, want [0xAA 0xBB]", got)
	}
}
