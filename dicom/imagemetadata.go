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
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// ImageMetadata caches the scalars extracted during summary parsing (spec
// §3): required geometry and sample encoding, plus best-effort spatial
// fields that default rather than fail when absent or unparsable.
type ImageMetadata struct {
	Rows, Cols     int
	BitsAllocated  int
	Channels       int
	IsSigned       bool

	PixelSpacingRow, PixelSpacingCol float64
	ImagePosX, ImagePosY, ImagePosZ  float64
}

func newImageMetadata() *ImageMetadata {
	return &ImageMetadata{
		ImagePosX: math.NaN(),
		ImagePosY: math.NaN(),
		ImagePosZ: math.NaN(),
	}
}

// asDictionaryString returns elem's content as a trimmed string. Under
// Implicit VR every element decodes as an opaque KindBytes payload
// regardless of its dictionary VR, so a CS-like tag (e.g.
// PhotometricInterpretation) must be reinterpreted from those raw bytes as
// ASCII text rather than read through the KindString accessor (spec §4.4:
// Implicit VR carries no VR bytes on the wire, but the dictionary VR for a
// well-known tag is still known to the reader).
func asDictionaryString(elem *Element) (string, error) {
	if elem.Kind() == KindString {
		return elem.TrimmedString()
	}
	b, err := elem.Bytes()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), " \x00"), nil
}

// asDictionaryUint16 returns elem's content as a uint16. Under Implicit VR
// the raw opaque bytes of a US-dictionary tag (Rows, Columns,
// BitsAllocated, BitsStored, HighBit, PixelRepresentation) must be
// reinterpreted as a little-endian uint16, since Implicit VR Little
// Endian is the only implicit transfer syntax the reader selects and is
// always little-endian (spec §4.4).
func asDictionaryUint16(elem *Element, name string) (uint16, error) {
	if elem.Kind() == KindUint16 {
		vals, err := elem.Uint16Slice()
		if err != nil {
			return 0, err
		}
		return vals[0], nil
	}
	b, err := elem.Bytes()
	if err != nil {
		return 0, err
	}
	if len(b) < 2 {
		return 0, newParseError("%s: opaque value too short for US reinterpretation (%d bytes)", name, len(b))
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ParseSummary extracts ImageMetadata from the ElementStore populated by
// the most recent Parse call. It requires PhotometricInterpretation,
// PixelRepresentation, BitsAllocated, Rows, and Columns; each absent tag
// fails with a *MissingTagError, and a PhotometricInterpretation other
// than MONOCHROME2 fails with an *UnsupportedError (spec §4.5). These
// fixed-dictionary tags are reinterpreted from their raw bytes when the
// file was decoded under Implicit VR, where every element value is opaque
// regardless of its dictionary VR.
func (p *FileParser) ParseSummary() (*ImageMetadata, error) {
	store := p.store
	m := newImageMetadata()

	photometric, err := store.MustGet(TagPhotometricInterpretation, "PhotometricInterpretation")
	if err != nil {
		return nil, err
	}
	photometricStr, err := asDictionaryString(photometric)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(photometricStr, "MONOCHROME2") {
		return nil, newUnsupportedError("photometric interpretation %q", photometricStr)
	}
	m.Channels = 1

	pixelRepr, err := store.MustGet(TagPixelRepresentation, "PixelRepresentation")
	if err != nil {
		return nil, err
	}
	pixelReprVal, err := asDictionaryUint16(pixelRepr, "PixelRepresentation")
	if err != nil {
		return nil, err
	}
	m.IsSigned = pixelReprVal != 0

	bitsAllocated, err := store.MustGet(TagBitsAllocated, "BitsAllocated")
	if err != nil {
		return nil, err
	}
	bitsAllocatedVal, err := asDictionaryUint16(bitsAllocated, "BitsAllocated")
	if err != nil {
		return nil, err
	}
	m.BitsAllocated = int(bitsAllocatedVal)

	rows, err := store.MustGet(TagRows, "Rows")
	if err != nil {
		return nil, err
	}
	rowsVal, err := asDictionaryUint16(rows, "Rows")
	if err != nil {
		return nil, err
	}
	m.Rows = int(rowsVal)

	cols, err := store.MustGet(TagColumns, "Columns")
	if err != nil {
		return nil, err
	}
	colsVal, err := asDictionaryUint16(cols, "Columns")
	if err != nil {
		return nil, err
	}
	m.Cols = int(colsVal)

	p.parsePixelSpacing(m)
	p.parseImagePosition(m)

	return m, nil
}

// parsePixelSpacing sets PixelSpacingRow/Col from (0028,0030), leaving
// them at their 0.0 default on any parse failure (spec §4.5).
func (p *FileParser) parsePixelSpacing(m *ImageMetadata) {
	elem, ok := p.store.Get(TagPixelSpacing)
	if !ok {
		return
	}
	s, err := asDictionaryString(elem)
	if err != nil {
		return
	}
	parts := strings.Split(strings.TrimSpace(s), `\`)
	if len(parts) < 2 {
		return
	}
	row, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		p.log.WithError(err).Warn("dicom: failed parsing PixelSpacing row, leaving default")
		return
	}
	col, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		p.log.WithError(err).Warn("dicom: failed parsing PixelSpacing column, leaving default")
		return
	}
	m.PixelSpacingRow, m.PixelSpacingCol = row, col
}

// parseImagePosition sets ImagePosX/Y/Z from (0020,0032), leaving them at
// their NaN default on any parse failure (spec §4.5).
func (p *FileParser) parseImagePosition(m *ImageMetadata) {
	elem, ok := p.store.Get(TagImagePositionPatient)
	if !ok {
		return
	}
	s, err := asDictionaryString(elem)
	if err != nil {
		return
	}
	parts := strings.Split(strings.TrimSpace(s), `\`)
	if len(parts) < 3 {
		return
	}
	vals := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			p.log.WithError(err).Warn("dicom: failed parsing ImagePositionPatient, leaving default")
			return
		}
		vals[i] = v
	}
	m.ImagePosX, m.ImagePosY, m.ImagePosZ = vals[0], vals[1], vals[2]
}
