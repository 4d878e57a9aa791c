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

// sequenceDelimitationItem is the 8-byte marker that terminates an
// undefined-length sequence: Sequence Delimitation Item tag + zero length.
var sequenceDelimitationItem = [8]byte{0xFF, 0xFE, 0xE0, 0xDD, 0x00, 0x00, 0x00, 0x00}

// itemTagPrefix is the 4-byte Item tag that may lead an undefined-length
// sequence's buffered content; when present it is stripped (spec §4.2).
var itemTagPrefix = [4]byte{0xFE, 0xFF, 0xE0, 0x00}

// ValueDecoder decodes a length-delimited value field into a typed Value,
// dispatching on VR code (spec §4.2).
type ValueDecoder struct {
	reader *ByteReader
}

// NewValueDecoder returns a ValueDecoder reading from r.
func NewValueDecoder(r *ByteReader) *ValueDecoder {
	return &ValueDecoder{reader: r}
}

// Decode reads a value field of length bytes (or UndefinedLength for
// sequences) and decodes it per vr under mode. vr == vrImplicit selects the
// Implicit-VR path, which always decodes as an opaque sequence.
func (d *ValueDecoder) Decode(vr VR, length uint32, mode DecodingMode) (Value, error) {
	if vr == vrImplicit {
		b, err := d.readSequenceBytes(length)
		if err != nil {
			return Value{}, err
		}
		return bytesValue(b, len(b) != 1), nil
	}

	kind, err := lookupVRKind(vr)
	if err != nil {
		return Value{}, err
	}

	switch kind {
	case kindString:
		b, err := d.reader.ReadExact(int(length))
		if err != nil {
			return Value{}, err
		}
		return stringValue(string(b)), nil

	case kindBytes:
		b, err := d.readSequenceBytes(length)
		if err != nil {
			return Value{}, err
		}
		return bytesValue(b, len(b) != 1), nil

	case kindSequence:
		b, err := d.readSequenceBytes(length)
		if err != nil {
			return Value{}, err
		}
		return bytesValue(b, true), nil

	default:
		return d.decodeFixedWidth(kind, length, mode)
	}
}

// decodeFixedWidth decodes a payload of a fixed-width numeric VR. A payload
// of exactly one element's size decodes to a scalar; a whole multiple of k
// > 1 elements decodes to a vector of length k. A payload that is not a
// whole multiple of the element size is silently truncated to floor(L/s)
// elements, matching the reference behavior (spec §4.2).
func (d *ValueDecoder) decodeFixedWidth(kind vrKind, length uint32, mode DecodingMode) (Value, error) {
	size := kind.elementSize()
	count := int(length) / size
	isVector := count != 1
	swap := mode.NeedByteSwap()

	value, err := d.decodeFixedWidthElements(kind, count, isVector, swap)
	if err != nil {
		return Value{}, err
	}

	// A non-whole-multiple length still declares the field's full byte
	// span; the unconsumed remainder must be skipped so the reader stays
	// aligned for the next element (spec §4.2).
	if remainder := int(length) - count*size; remainder > 0 {
		if err := d.reader.Skip(int64(remainder)); err != nil {
			return Value{}, err
		}
	}

	return value, nil
}

func (d *ValueDecoder) decodeFixedWidthElements(kind vrKind, count int, isVector, swap bool) (Value, error) {
	switch kind {
	case kindInt16:
		out := make([]int16, count)
		for i := range out {
			v, err := d.reader.ReadInt16(swap)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return int16Value(out, isVector), nil

	case kindInt32:
		out := make([]int32, count)
		for i := range out {
			v, err := d.reader.ReadInt32(swap)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return int32Value(out, isVector), nil

	case kindUint16:
		out := make([]uint16, count)
		for i := range out {
			v, err := d.reader.ReadUint16(swap)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return uint16Value(out, isVector), nil

	case kindUint32:
		out := make([]uint32, count)
		for i := range out {
			v, err := d.reader.ReadUint32(swap)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return uint32Value(out, isVector), nil

	case kindFloat32:
		out := make([]float32, count)
		for i := range out {
			v, err := d.reader.ReadFloat32(swap)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return float32Value(out, isVector), nil

	case kindFloat64:
		out := make([]float64, count)
		for i := range out {
			v, err := d.reader.ReadFloat64(swap)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return float64Value(out, isVector), nil

	default:
		return Value{}, newParseError("unreachable: fixed-width decode for non-fixed-width kind")
	}
}

// readSequenceBytes implements _read_element_data_sequence (spec §4.2):
// for a defined length it reads exactly that many bytes; for
// UndefinedLength it streams bytes one at a time, maintaining an 8-byte
// trailing window, until that window equals the Sequence Delimitation
// Item. The 8 trailing sentinel bytes are dropped from the result, and a
// leading 4-byte Item tag, if present, is also dropped.
func (d *ValueDecoder) readSequenceBytes(length uint32) ([]byte, error) {
	if length != UndefinedLength {
		return d.reader.ReadExact(int(length))
	}

	var buf []byte
	for {
		b, err := d.reader.ReadExact(1)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b[0])

		if len(buf) >= 8 && matchesWindow(buf[len(buf)-8:], sequenceDelimitationItem[:]) {
			buf = buf[:len(buf)-8]
			break
		}
	}

	if len(buf) >= 4 && matchesWindow(buf[:4], itemTagPrefix[:]) {
		buf = buf[4:]
	}

	return buf, nil
}

func matchesWindow(window, sentinel []byte) bool {
	for i := range sentinel {
		if window[i] != sentinel[i] {
			return false
		}
	}
	return true
}
