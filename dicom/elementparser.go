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

// ElementParser parses one Data Element at a time: a Tag, then an
// (explicit- or implicit-VR) header, then the value field via
// ValueDecoder.
type ElementParser struct {
	reader  *ByteReader
	decoder *ValueDecoder
	mode    DecodingMode

	haveTag bool
	tag     Tag
}

// NewElementParser returns an ElementParser reading from r under mode.
func NewElementParser(r *ByteReader, mode DecodingMode) *ElementParser {
	return &ElementParser{reader: r, decoder: NewValueDecoder(r), mode: mode}
}

// SetMode changes the DecodingMode used for subsequent reads. FileParser
// calls this once, after the meta group, to switch into the transfer
// syntax named by the file.
func (p *ElementParser) SetMode(mode DecodingMode) {
	p.mode = mode
}

// ParseTag reads the next Tag: two uint16s, each byte-swapped independently
// if the current mode requires it. A short read surfaces as a *StreamError, the
// normal end-of-stream signal for FileParser's main loop (spec §4.4).
func (p *ElementParser) ParseTag() (Tag, error) {
	swap := p.mode.NeedByteSwap()
	group, err := p.reader.ReadUint16(swap)
	if err != nil {
		return Tag{}, err
	}
	element, err := p.reader.ReadUint16(swap)
	if err != nil {
		return Tag{}, err
	}

	p.tag = Tag{Group: group, Element: element}
	p.haveTag = true
	return p.tag, nil
}

// RewindTag seeks the reader back by the 4 bytes of a Tag, undoing a
// ParseTag call that was used only to peek at the next group. FileParser
// uses this to detect the end of the meta group.
func (p *ElementParser) RewindTag() error {
	p.haveTag = false
	return p.reader.SeekRelative(-4)
}

// ParseValue reads the (explicit- or implicit-VR) header for the
// most-recently-parsed tag, then decodes the value field, returning the
// populated Element. It fails with a *ParseError if no tag has been
// parsed yet.
func (p *ElementParser) ParseValue() (*Element, error) {
	if !p.haveTag {
		return nil, newParseError("No Tag Id found")
	}

	if !p.mode.ExplicitVR {
		length, err := p.reader.ReadUint32(p.mode.NeedByteSwap())
		if err != nil {
			return nil, err
		}
		value, err := p.decoder.Decode(vrImplicit, length, p.mode)
		if err != nil {
			return nil, err
		}
		return &Element{Tag: p.tag, VR: vrImplicit, Value: value}, nil
	}

	vr, err := p.readExplicitVR()
	if err != nil {
		return nil, err
	}

	length, err := p.readExplicitLength(vr)
	if err != nil {
		return nil, err
	}

	value, err := p.decoder.Decode(vr, length, p.mode)
	if err != nil {
		return nil, err
	}
	return &Element{Tag: p.tag, VR: vr, Value: value}, nil
}

// Parse reads a Tag and then its value in one step.
func (p *ElementParser) Parse() (*Element, error) {
	if _, err := p.ParseTag(); err != nil {
		return nil, err
	}
	return p.ParseValue()
}

// readExplicitVR reads the 2 ASCII VR bytes and packs them canonically
// (spec §4.3). Reading the bytes directly, rather than loading them as a
// native-endian uint16 and conditionally bswap-ing on little-endian hosts
// as the original C++ source does, produces the identical canonical
// big-endian packing without depending on host endianness at all.
func (p *ElementParser) readExplicitVR() (VR, error) {
	b, err := p.reader.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return VR(uint16(b[0])<<8 | uint16(b[1])), nil
}

// readExplicitLength reads the value-field length for vr under Explicit
// VR: a plain 16-bit length, or for the long-form VRs (OB, OW, OF, SQ, UT,
// UN) 2 reserved bytes followed by a 32-bit length (spec §4.3).
func (p *ElementParser) readExplicitLength(vr VR) (uint32, error) {
	swap := p.mode.NeedByteSwap()

	if explicitVRHasLongForm(vr) {
		if err := p.reader.Skip(2); err != nil {
			return 0, err
		}
		return p.reader.ReadUint32(swap)
	}

	length, err := p.reader.ReadUint16(swap)
	if err != nil {
		return 0, err
	}
	return uint32(length), nil
}
