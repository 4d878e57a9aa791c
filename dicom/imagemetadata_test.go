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
	"math"
	"testing"
)

func newMinimalSummaryParser() *FileParser {
	p := NewFileParser()
	p.store.Set(&Element{Tag: TagPhotometricInterpretation, VR: CS, Value: stringValue("MONOCHROME2")})
	p.store.Set(&Element{Tag: TagPixelRepresentation, VR: US, Value: uint16Value([]uint16{0}, false)})
	p.store.Set(&Element{Tag: TagBitsAllocated, VR: US, Value: uint16Value([]uint16{8}, false)})
	p.store.Set(&Element{Tag: TagRows, VR: US, Value: uint16Value([]uint16{4}, false)})
	p.store.Set(&Element{Tag: TagColumns, VR: US, Value: uint16Value([]uint16{4}, false)})
	return p
}

func TestParseSummaryRequiredFields(t *testing.T) {
	p := newMinimalSummaryParser()
	m, err := p.ParseSummary()
	if err != nil {
		t.Fatalf("ParseSummary() error = %v", err)
	}
	if m.Rows != 4 || m.Cols != 4 {
		t.Errorf("Rows/Cols = %d/%d, want 4/4", m.Rows, m.Cols)
	}
	if m.BitsAllocated != 8 {
		t.Errorf("BitsAllocated = %d, want 8", m.BitsAllocated)
	}
	if m.IsSigned {
		t.Error("IsSigned = true, want false")
	}
	if m.Channels != 1 {
		t.Errorf("Channels = %d, want 1", m.Channels)
	}
}

func TestParseSummaryMissingRequiredTag(t *testing.T) {
	p := NewFileParser()
	p.store.Set(&Element{Tag: TagPhotometricInterpretation, VR: CS, Value: stringValue("MONOCHROME2")})
	_, err := p.ParseSummary()
	if err == nil {
		t.Fatal("ParseSummary() error = nil, want *MissingTagError")
	}
	if _, ok := err.(*MissingTagError); !ok {
		t.Errorf("ParseSummary() error type = %T, want *MissingTagError", err)
	}
}

func TestParseSummaryUnsupportedPhotometricInterpretation(t *testing.T) {
	p := newMinimalSummaryParser()
	p.store.Set(&Element{Tag: TagPhotometricInterpretation, VR: CS, Value: stringValue("RGB")})

	_, err := p.ParseSummary()
	if err == nil {
		t.Fatal("ParseSummary() error = nil, want *UnsupportedError")
	}
	if _, ok := err.(*UnsupportedError); !ok {
		t.Errorf("ParseSummary() error type = %T, want *UnsupportedError", err)
	}
}

func TestParsePixelSpacingDefaultsOnMissing(t *testing.T) {
	p := newMinimalSummaryParser()
	m, err := p.ParseSummary()
	if err != nil {
		t.Fatalf("ParseSummary() error = %v", err)
	}
	if m.PixelSpacingRow != 0 || m.PixelSpacingCol != 0 {
		t.Errorf("PixelSpacing = (%v,%v), want (0,0)", m.PixelSpacingRow, m.PixelSpacingCol)
	}
}

func TestParsePixelSpacingValid(t *testing.T) {
	p := newMinimalSummaryParser()
	p.store.Set(&Element{Tag: TagPixelSpacing, VR: DS, Value: stringValue(`0.5\0.25`)})

	m, err := p.ParseSummary()
	if err != nil {
		t.Fatalf("ParseSummary() error = %v", err)
	}
	if m.PixelSpacingRow != 0.5 || m.PixelSpacingCol != 0.25 {
		t.Errorf("PixelSpacing = (%v,%v), want (0.5,0.25)", m.PixelSpacingRow, m.PixelSpacingCol)
	}
}

func TestParsePixelSpacingMalformedDefaultsSilently(t *testing.T) {
	p := newMinimalSummaryParser()
	p.store.Set(&Element{Tag: TagPixelSpacing, VR: DS, Value: stringValue("not-a-number\\0.25")})

	m, err := p.ParseSummary()
	if err != nil {
		t.Fatalf("ParseSummary() error = %v", err)
	}
	if m.PixelSpacingRow != 0 || m.PixelSpacingCol != 0 {
		t.Errorf("PixelSpacing = (%v,%v), want (0,0) default on parse failure", m.PixelSpacingRow, m.PixelSpacingCol)
	}
}

func TestParseImagePositionDefaultsToNaN(t *testing.T) {
	p := newMinimalSummaryParser()
	m, err := p.ParseSummary()
	if err != nil {
		t.Fatalf("ParseSummary() error = %v", err)
	}
	if !math.IsNaN(m.ImagePosX) || !math.IsNaN(m.ImagePosY) || !math.IsNaN(m.ImagePosZ) {
		t.Errorf("ImagePos = (%v,%v,%v), want all NaN", m.ImagePosX, m.ImagePosY, m.ImagePosZ)
	}
}

func TestParseImagePositionValid(t *testing.T) {
	p := newMinimalSummaryParser()
	p.store.Set(&Element{Tag: TagImagePositionPatient, VR: DS, Value: stringValue(`1.0\2.0\3.0`)})

	m, err := p.ParseSummary()
	if err != nil {
		t.Fatalf("ParseSummary() error = %v", err)
	}
	if m.ImagePosX != 1.0 || m.ImagePosY != 2.0 || m.ImagePosZ != 3.0 {
		t.Errorf("ImagePos = (%v,%v,%v), want (1,2,3)", m.ImagePosX, m.ImagePosY, m.ImagePosZ)
	}
}
