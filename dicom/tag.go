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

import "fmt"

// Tag identifies a Data Element by its (group, element) pair, as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
type Tag struct {
	Group   uint16
	Element uint16
}

// pack returns the canonical ElementStore key for t: group in the high 16
// bits, element in the low 16 bits. This packing is a design choice (the
// original C++ source instead reinterprets a native-endian 4-byte union);
// what matters is that it is used consistently everywhere a Tag is keyed.
func (t Tag) pack() uint32 {
	return uint32(t.Group)<<16 | uint32(t.Element)
}

func tagFromPacked(key uint32) Tag {
	return Tag{Group: uint16(key >> 16), Element: uint16(key)}
}

// IsMetadataElement reports whether t belongs to the file-meta group
// (0002,xxxx), which is always decoded as Little Endian Explicit VR
// regardless of the transfer syntax governing the rest of the file.
func (t Tag) IsMetadataElement() bool {
	return t.Group == 0x0002
}

// String renders t in the conventional "(gggg,eeee)" form.
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// Well-known tags referenced by FileParser and ImageBuilder. Names follow
// the DICOM standard's data dictionary.
var (
	TagTransferSyntaxUID       = Tag{0x0002, 0x0010}
	TagSpecificCharacterSet    = Tag{0x0008, 0x0005}
	TagPhotometricInterpretation = Tag{0x0028, 0x0004}
	TagRows                    = Tag{0x0028, 0x0010}
	TagColumns                 = Tag{0x0028, 0x0011}
	TagBitsAllocated           = Tag{0x0028, 0x0100}
	TagBitsStored              = Tag{0x0028, 0x0101}
	TagHighBit                 = Tag{0x0028, 0x0102}
	TagPixelRepresentation     = Tag{0x0028, 0x0103}
	TagPixelSpacing            = Tag{0x0028, 0x0030}
	TagRescaleIntercept        = Tag{0x0028, 0x1052}
	TagRescaleSlope            = Tag{0x0028, 0x1053}
	TagImagePositionPatient    = Tag{0x0020, 0x0032}
	TagPixelData               = Tag{0x7FE0, 0x0010}

	// TagItem and TagSequenceDelimitationItem bound undefined-length
	// sequence items (spec §4.2).
	TagItem                       = Tag{0xFFFE, 0xE000}
	TagSequenceDelimitationItem    = Tag{0xFFFE, 0xE0DD}
)
