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
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// PixelDtype identifies which field of PixelMatrix holds the decoded
// samples.
type PixelDtype int

const (
	DtypeUint8 PixelDtype = iota
	DtypeInt8
	DtypeUint16
	DtypeInt16
	DtypeFloat64
)

// PixelMatrix is the reconstructed rows×cols, single-channel pixel matrix:
// the shape+dtype contract ImageBuilder fills in for an external image
// container (spec §1 out-of-scope collaborator). Rescaling promotes the
// matrix to Float64; otherwise it stays in whichever integer dtype
// BitsAllocated/PixelRepresentation selected.
type PixelMatrix struct {
	Rows, Cols, Channels int
	Dtype                PixelDtype

	U8  []uint8
	I8  []int8
	U16 []uint16
	I16 []int16
	F64 []float64
}

// At returns the value at (row, col) as a float64, regardless of the
// underlying dtype.
func (m *PixelMatrix) At(row, col int) (float64, error) {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return 0, newParseError("pixel coordinate (%d,%d) out of bounds for %dx%d matrix", row, col, m.Rows, m.Cols)
	}
	i := row*m.Cols + col
	switch m.Dtype {
	case DtypeUint8:
		return float64(m.U8[i]), nil
	case DtypeInt8:
		return float64(m.I8[i]), nil
	case DtypeUint16:
		return float64(m.U16[i]), nil
	case DtypeInt16:
		return float64(m.I16[i]), nil
	case DtypeFloat64:
		return m.F64[i], nil
	default:
		return 0, newParseError("unknown pixel dtype %v", m.Dtype)
	}
}

// ToImage renders the matrix as a standard library image.Image: image.Gray
// for 8-bit dtypes, image.Gray16 for 16-bit and rescaled (float) dtypes.
// Float64 matrices are linearly normalized against their own observed
// range, the same min/max windowing
// carbocation-genomisc/ukbb/bulkprocess.ApplyPythonicWindowScaling applies
// when it displays a rescaled DICOM frame as a native Go image.
func (m *PixelMatrix) ToImage() (image.Image, error) {
	rect := image.Rect(0, 0, m.Cols, m.Rows)

	switch m.Dtype {
	case DtypeUint8:
		img := image.NewGray(rect)
		copy(img.Pix, m.U8)
		return img, nil

	case DtypeInt8:
		img := image.NewGray(rect)
		for i, v := range m.I8 {
			img.Pix[i] = uint8(int32(v) + 128)
		}
		return img, nil

	case DtypeUint16:
		img := image.NewGray16(rect)
		for i, v := range m.U16 {
			img.SetGray16(i%m.Cols, i/m.Cols, color.Gray16{Y: v})
		}
		return img, nil

	case DtypeInt16:
		img := image.NewGray16(rect)
		for i, v := range m.I16 {
			img.SetGray16(i%m.Cols, i/m.Cols, color.Gray16{Y: uint16(int32(v) + 32768)})
		}
		return img, nil

	case DtypeFloat64:
		return m.floatToGray16(rect), nil

	default:
		return nil, newParseError("unknown pixel dtype %v", m.Dtype)
	}
}

func (m *PixelMatrix) floatToGray16(rect image.Rectangle) *image.Gray16 {
	lo, hi := m.F64[0], m.F64[0]
	for _, v := range m.F64 {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	img := image.NewGray16(rect)
	for i, v := range m.F64 {
		var y uint16
		if span > 0 {
			y = uint16(((v - lo) / span) * float64(0xFFFF))
		}
		img.SetGray16(i%m.Cols, i/m.Cols, color.Gray16{Y: y})
	}
	return img
}

// ImageBuilder reconstructs the pixel matrix from a parsed ElementStore
// and its ImageMetadata summary (spec §4.5).
type ImageBuilder struct {
	store   *ElementStore
	summary *ImageMetadata
	rescale bool
	log     *logrus.Logger
}

// Build reconstructs and returns the pixel matrix.
func (b *ImageBuilder) Build() (*PixelMatrix, error) {
	elem, err := b.store.MustGet(TagPixelData, "PixelData")
	if err != nil {
		return nil, err
	}

	raw, err := pixelDataRawBytes(elem)
	if err != nil {
		return nil, err
	}

	matrix, err := b.reshape(raw)
	if err != nil {
		return nil, err
	}

	if err := b.unpad(matrix); err != nil {
		return nil, err
	}

	if b.rescale {
		matrix = b.applyRescale(matrix)
	}

	return matrix, nil
}

// pixelDataRawBytes returns PixelData's payload as a flat byte buffer in
// host-native order, regardless of whether it was decoded as OB (already
// raw bytes) or OW (decoded, byte-swap-corrected uint16 words). The
// round-trip through NativeEndian for the OW case recovers the exact
// wire-intended byte layout on any host, which is what ImageBuilder then
// reinterprets according to BitsAllocated rather than VR (spec §9, Design
// Notes: "Opaque byte vs. typed pixel data").
func pixelDataRawBytes(elem *Element) ([]byte, error) {
	switch elem.Kind() {
	case KindBytes:
		return elem.Bytes()
	case KindUint16:
		vals, err := elem.Uint16Slice()
		if err != nil {
			return nil, err
		}
		buf := make([]byte, len(vals)*2)
		for i, v := range vals {
			binary.NativeEndian.PutUint16(buf[i*2:], v)
		}
		return buf, nil
	default:
		return nil, newParseError("unexpected PixelData value kind: %v", elem.Kind())
	}
}

// reshape selects the storage dtype from (BitsAllocated, IsSigned) and
// reinterprets raw as a flat rows*cols buffer of that dtype (spec §4.5).
func (b *ImageBuilder) reshape(raw []byte) (*PixelMatrix, error) {
	m := &PixelMatrix{Rows: b.summary.Rows, Cols: b.summary.Cols, Channels: b.summary.Channels}
	count := m.Rows * m.Cols

	switch {
	case b.summary.BitsAllocated == 8 && !b.summary.IsSigned:
		m.Dtype = DtypeUint8
		m.U8 = append([]uint8(nil), raw[:count]...)

	case b.summary.BitsAllocated == 8 && b.summary.IsSigned:
		m.Dtype = DtypeInt8
		m.I8 = make([]int8, count)
		for i := 0; i < count; i++ {
			m.I8[i] = int8(raw[i])
		}

	case b.summary.BitsAllocated == 16 && !b.summary.IsSigned:
		m.Dtype = DtypeUint16
		m.U16 = make([]uint16, count)
		for i := 0; i < count; i++ {
			m.U16[i] = binary.NativeEndian.Uint16(raw[i*2:])
		}

	case b.summary.BitsAllocated == 16 && b.summary.IsSigned:
		m.Dtype = DtypeInt16
		m.I16 = make([]int16, count)
		for i := 0; i < count; i++ {
			m.I16[i] = int16(binary.NativeEndian.Uint16(raw[i*2:]))
		}

	default:
		return nil, newUnsupportedError("bits allocated %d", b.summary.BitsAllocated)
	}

	return m, nil
}

// unpad right-shifts every pixel by hi_bit - bit_stored + 1 bits when
// BitsAllocated != BitsStored, discarding the padding bits above the
// significant range (spec §4.5). Go's >> is an arithmetic shift on signed
// integer types and a logical shift on unsigned ones, exactly the
// signed/unsigned distinction the spec calls for.
func (b *ImageBuilder) unpad(m *PixelMatrix) error {
	bitStoredElem, err := b.store.MustGet(TagBitsStored, "BitsStored")
	if err != nil {
		return err
	}
	bitStoredU16, err := asDictionaryUint16(bitStoredElem, "BitsStored")
	if err != nil {
		return err
	}
	bitStored := int64(bitStoredU16)

	highBitElem, err := b.store.MustGet(TagHighBit, "HighBit")
	if err != nil {
		return err
	}
	highBitU16, err := asDictionaryUint16(highBitElem, "HighBit")
	if err != nil {
		return err
	}
	highBit := int64(highBitU16)

	if int64(b.summary.BitsAllocated) == bitStored {
		return nil
	}

	shift := uint(highBit - bitStored + 1)
	switch m.Dtype {
	case DtypeUint8:
		for i := range m.U8 {
			m.U8[i] >>= shift
		}
	case DtypeInt8:
		for i := range m.I8 {
			m.I8[i] >>= shift
		}
	case DtypeUint16:
		for i := range m.U16 {
			m.U16[i] >>= shift
		}
	case DtypeInt16:
		for i := range m.I16 {
			m.I16[i] >>= shift
		}
	}
	return nil
}

// applyRescale parses RescaleIntercept/Slope as trimmed float strings
// (defaulting to 0.0/1.0 on parse failure, spec §4.5) and applies
// pixel := pixel*slope + intercept elementwise, promoting the matrix to
// Float64. If the resulting slope is 1.0 and intercept 0.0 (parsed or
// defaulted), or either tag is absent, the integer matrix is returned
// unchanged.
func (b *ImageBuilder) applyRescale(m *PixelMatrix) *PixelMatrix {
	interceptElem, hasIntercept := b.store.Get(TagRescaleIntercept)
	slopeElem, hasSlope := b.store.Get(TagRescaleSlope)
	if !hasIntercept || !hasSlope {
		return m
	}

	intercept := b.parseRescaleFloat(interceptElem, 0.0, "RescaleIntercept")
	slope := b.parseRescaleFloat(slopeElem, 1.0, "RescaleSlope")

	if slope == 1.0 && intercept == 0.0 {
		return m
	}

	count := m.Rows * m.Cols
	out := &PixelMatrix{Rows: m.Rows, Cols: m.Cols, Channels: m.Channels, Dtype: DtypeFloat64, F64: make([]float64, count)}
	for i := 0; i < count; i++ {
		v, _ := m.At(i/m.Cols, i%m.Cols)
		out.F64[i] = v*slope + intercept
	}
	return out
}

func (b *ImageBuilder) parseRescaleFloat(elem *Element, fallback float64, name string) float64 {
	s, err := elem.TrimmedString()
	if err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		b.log.WithError(err).Warnf("dicom: failed parsing %s, defaulting to %v", name, fallback)
		return fallback
	}
	return v
}
