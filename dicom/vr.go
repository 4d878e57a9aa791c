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

// VR models a two-letter DICOM Value Representation code
// (http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2),
// packed as a big-endian uint16 of its two ASCII bytes so that VR("OB") ==
// 0x4F42. This packing is an internal optimization carried over from the
// original C++ source; any bijective representation of the two-letter code
// would do, so long as it is used consistently by the explicit-VR reader.
type VR uint16

// vrOf packs a two-letter VR code into its canonical uint16 form.
func vrOf(code string) VR {
	return VR(uint16(code[0])<<8 | uint16(code[1]))
}

// String returns the two-letter VR code, e.g. "OB".
func (v VR) String() string {
	return string([]byte{byte(v >> 8), byte(v)})
}

// UndefinedLength marks a sequence value field whose length is determined
// by scanning for the Sequence Delimitation Item rather than read directly.
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength uint32 = 0xFFFFFFFF

// vrImplicit marks an element parsed under Implicit VR, where no VR bytes
// are present on the wire and the payload is decoded as an opaque sequence.
const vrImplicit VR = 0

var (
	// textual VRs: strings, stored untrimmed
	CS = vrOf("CS")
	SH = vrOf("SH")
	LO = vrOf("LO")
	ST = vrOf("ST")
	LT = vrOf("LT")
	UT = vrOf("UT")
	PN = vrOf("PN")
	DA = vrOf("DA")
	TM = vrOf("TM")
	DT = vrOf("DT")
	IS = vrOf("IS")
	DS = vrOf("DS")
	UI = vrOf("UI")

	// fixed-width numeric VRs
	SS = vrOf("SS")
	US = vrOf("US")
	SL = vrOf("SL")
	UL = vrOf("UL")
	FL = vrOf("FL")
	FD = vrOf("FD")
	OF = vrOf("OF")
	AT = vrOf("AT")
	OW = vrOf("OW")

	// opaque byte VRs
	OB = vrOf("OB")
	UN = vrOf("UN")

	// sequence
	SQ = vrOf("SQ")
)

// vrKind groups VR codes by how ValueDecoder must decode their payload.
type vrKind int

const (
	kindString vrKind = iota
	kindBytes
	kindInt16
	kindInt32
	kindUint16
	kindUint32
	kindFloat32
	kindFloat64
	kindSequence
)

// elementSize is the size in bytes of one value of a fixed-width numeric
// VR, or 0 when k is not fixed-width.
func (k vrKind) elementSize() int {
	switch k {
	case kindInt16, kindUint16:
		return 2
	case kindInt32, kindUint32, kindFloat32:
		return 4
	case kindFloat64:
		return 8
	default:
		return 0
	}
}

var vrKinds = map[VR]vrKind{
	CS: kindString, DA: kindString, DS: kindString, DT: kindString,
	IS: kindString, LO: kindString, LT: kindString, PN: kindString,
	SH: kindString, ST: kindString, TM: kindString, UI: kindString,
	UT: kindString,

	OB: kindBytes, UN: kindBytes,

	SS: kindInt16,
	SL: kindInt32,
	US: kindUint16, AT: kindUint16, OW: kindUint16,
	UL: kindUint32,
	FL: kindFloat32, OF: kindFloat32,
	FD: kindFloat64,

	SQ: kindSequence,
}

// lookupVRKind returns the decode strategy for vr.
func lookupVRKind(vr VR) (vrKind, error) {
	k, ok := vrKinds[vr]
	if !ok {
		return 0, newParseError("Unknown VR found: %v", vr)
	}
	return k, nil
}

// explicitVRHasLongForm reports whether, under Explicit VR, vr's header
// uses the long form: 2 reserved bytes followed by a 32-bit length, rather
// than a plain 16-bit length (spec §4.3).
func explicitVRHasLongForm(vr VR) bool {
	switch vr {
	case OB, OW, OF, SQ, UT, UN:
		return true
	default:
		return false
	}
}
