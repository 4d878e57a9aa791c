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

import "strings"

// list of transfer syntaxes recognized by FileParser, obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	ImplicitVRLittleEndianUID         = "1.2.840.10008.1.2"
	ExplicitVRLittleEndianUID         = "1.2.840.10008.1.2.1"
	ExplicitVRBigEndianUID            = "1.2.840.10008.1.2.2"
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
)

// DecodingMode captures how the element stream currently being read is
// encoded: byte order, whether VRs are written explicitly, and whether the
// stream is deflated (rejected — see FileParser). It starts at LEE/explicit
// for the meta group (spec §3) and is re-derived from the Transfer Syntax
// UID once the meta group has been read.
type DecodingMode struct {
	LittleEndian bool
	ExplicitVR   bool
	Deflated     bool
}

// defaultDecodingMode is always used for the file-meta group (0002,xxxx),
// regardless of the transfer syntax that governs the rest of the file.
var defaultDecodingMode = DecodingMode{LittleEndian: true, ExplicitVR: true, Deflated: false}

// NeedByteSwap reports whether primitive reads under this mode must
// byte-reverse their raw bytes on the current host. It is recomputed from
// hostLittleEndian on every call rather than cached, since it depends only
// on the (host, mode) pair.
func (m DecodingMode) NeedByteSwap() bool {
	return hostLittleEndian != m.LittleEndian
}

// lookupDecodingMode selects a DecodingMode from a Transfer Syntax UID by
// first-match substring, in priority order. The order matters: several
// UIDs share a prefix, so the most specific (longest) UID must be matched
// first (spec §4.4 step 7). Implementations may instead use exact equality
// after trimming trailing NUL/space; this substring approach matches the
// original C++ source's find() != npos behavior exactly.
func lookupDecodingMode(uid string) DecodingMode {
	switch {
	case strings.Contains(uid, ExplicitVRBigEndianUID):
		return DecodingMode{LittleEndian: false, ExplicitVR: true, Deflated: false}
	case strings.Contains(uid, DeflatedExplicitVRLittleEndianUID):
		return DecodingMode{LittleEndian: true, ExplicitVR: true, Deflated: true}
	case strings.Contains(uid, ExplicitVRLittleEndianUID):
		return DecodingMode{LittleEndian: true, ExplicitVR: true, Deflated: false}
	case strings.Contains(uid, ImplicitVRLittleEndianUID):
		return DecodingMode{LittleEndian: true, ExplicitVR: false, Deflated: false}
	default:
		// Any UID containing none of the above falls through to the
		// meta-group default. Compressed transfer syntaxes
		// (1.2.840.10008.1.2.4.x, 1.2.840.10008.1.2.5) contain the Implicit VR
		// Little Endian UID as a substring and so match that case instead.
		return defaultDecodingMode
	}
}
