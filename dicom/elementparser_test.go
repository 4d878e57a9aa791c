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

func TestElementParserExplicitShortForm(t *testing.T) {
	// (0028,0010) Rows, VR=US, short-form length=2, value=512.
	raw := []byte{
		0x28, 0x00, 0x10, 0x00, // tag, LE
		'U', 'S', // VR
		0x02, 0x00, // length
		0x00, 0x02, // 512 LE
	}
	mode := DecodingMode{LittleEndian: true, ExplicitVR: true}
	ep := NewElementParser(NewByteReader(bytes.NewReader(raw)), mode)

	elem, err := ep.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if elem.Tag != TagRows {
		t.Errorf("Tag = %v, want %v", elem.Tag, TagRows)
	}
	if elem.VR != US {
		t.Errorf("VR = %v, want US", elem.VR)
	}
	v, _ := elem.Uint16Slice()
	if v[0] != 512 {
		t.Errorf("value = %d, want 512", v[0])
	}
}

func TestElementParserExplicitLongForm(t *testing.T) {
	// (7FE0,0010) PixelData, VR=OB, long-form: 2 reserved + 4-byte length.
	raw := []byte{
		0xE0, 0x7F, 0x10, 0x00, // tag, LE
		'O', 'B', // VR
		0x00, 0x00, // reserved
		0x02, 0x00, 0x00, 0x00, // length = 2
		0xAA, 0xBB,
	}
	mode := DecodingMode{LittleEndian: true, ExplicitVR: true}
	ep := NewElementParser(NewByteReader(bytes.NewReader(raw)), mode)

	elem, err := ep.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if elem.Tag != TagPixelData {
		t.Errorf("Tag = %v, want %v", elem.Tag, TagPixelData)
	}
	got, _ := elem.Bytes()
	if !bytes.Equal(got, []byte{0xAA, 0xBB}) {
		t.Errorf("Bytes() = %v, want [0xAA 0xBB]", got)
	}
}

func TestElementParserImplicitVR(t *testing.T) {
	// (0028,0010) Rows under Implicit VR: tag + 4-byte length, no VR bytes.
	raw := []byte{
		0x28, 0x00, 0x10, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x00, 0x02,
	}
	mode := DecodingMode{LittleEndian: true, ExplicitVR: false}
	ep := NewElementParser(NewByteReader(bytes.NewReader(raw)), mode)

	elem, err := ep.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if elem.VR != vrImplicit {
		t.Errorf("VR = %v, want vrImplicit", elem.VR)
	}
	got, _ := elem.Bytes()
	if !bytes.Equal(got, []byte{0x00, 0x02}) {
		t.Errorf("Bytes() = %v, want [0x00 0x02]", got)
	}
}

func TestElementParserRewindTag(t *testing.T) {
	raw := []byte{0x28, 0x00, 0x10, 0x00}
	mode := DecodingMode{LittleEndian: true, ExplicitVR: true}
	br := NewByteReader(bytes.NewReader(raw))
	ep := NewElementParser(br, mode)

	tag, err := ep.ParseTag()
	if err != nil {
		t.Fatalf("ParseTag() error = %v", err)
	}
	if tag != TagRows {
		t.Fatalf("ParseTag() = %v, want %v", tag, TagRows)
	}
	if err := ep.RewindTag(); err != nil {
		t.Fatalf("RewindTag() error = %v", err)
	}
	tag2, err := ep.ParseTag()
	if err != nil {
		t.Fatalf("second ParseTag() error = %v", err)
	}
	if tag2 != TagRows {
		t.Errorf("ParseTag() after rewind = %v, want %v", tag2, TagRows)
	}
}

func TestElementParserValueBeforeTagFails(t *testing.T) {
	mode := DecodingMode{LittleEndian: true, ExplicitVR: true}
	ep := NewElementParser(NewByteReader(bytes.NewReader(nil)), mode)
	if _, err := ep.ParseValue(); err == nil {
		t.Fatal("ParseValue() before ParseTag() error = nil, want error")
	}
}

func TestElementParserEndOfStream(t *testing.T) {
	mode := DecodingMode{LittleEndian: true, ExplicitVR: true}
	ep := NewElementParser(NewByteReader(bytes.NewReader(nil)), mode)
	_, err := ep.Parse()
	if err == nil {
		t.Fatal("Parse() on empty stream error = nil, want *StreamError")
	}
	if _, ok := err.(*StreamError); !ok {
		t.Errorf("Parse() error type = %T, want *StreamError", err)
	}
}
