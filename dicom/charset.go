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
	"fmt"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// defaultCharacterRepertoire is used when (0008,0005) SpecificCharacterSet
// is absent: DICOM's default repertoire is effectively single-byte
// ISO-IR 6, which Windows-1252 is a safe superset of for display purposes.
var defaultCharacterRepertoire encoding.Encoding = charmap.Windows1252

// lookupLabelByTerm maps DICOM character set defined terms
// (http://dicom.nema.org/medical/dicom/current/output/chtml/part02/sect_D.6.2.html)
// to the charset labels golang.org/x/net/html/charset understands.
var lookupLabelByTerm = map[string]string{
	"ISO_IR 100": "iso-ir-100",
	"ISO_IR 101": "iso-ir-101",
	"ISO_IR 109": "iso-ir-109",
	"ISO_IR 110": "iso-ir-110",
	"ISO_IR 144": "iso-ir-144",
	"ISO_IR 127": "iso-ir-127",
	"ISO_IR 126": "iso-ir-126",
	"ISO_IR 138": "iso-ir-138",
	"ISO_IR 148": "iso-ir-148",
	"ISO_IR 13":  "shift-jis",
	"ISO_IR 166": "tis-620",
	"ISO_IR 192": "utf-8",
	"GB18030":    "gb18030",
	"GBK":        "gbk",
	"ISO 2022 IR 6":   "us-ascii",
	"ISO 2022 IR 100": "iso-ir-100",
	"ISO 2022 IR 101": "iso-ir-101",
	"ISO 2022 IR 109": "iso-ir-109",
	"ISO 2022 IR 110": "iso-ir-110",
	"ISO 2022 IR 144": "iso-ir-144",
	"ISO 2022 IR 127": "iso-ir-127",
	"ISO 2022 IR 126": "iso-ir-126",
	"ISO 2022 IR 138": "iso-ir-138",
	"ISO 2022 IR 148": "iso-ir-148",
	"ISO 2022 IR 13":  "shift-jis",
	"ISO 2022 IR 166": "tis-620",
}

func lookupEncoding(term string) (encoding.Encoding, error) {
	if term == "" {
		return defaultCharacterRepertoire, nil
	}
	label, ok := lookupLabelByTerm[term]
	if !ok {
		return nil, fmt.Errorf("specific character set defined term not found: %v", term)
	}
	coding, _ := charset.Lookup(label)
	if coding == nil {
		return nil, fmt.Errorf("missing encoding for label %q", label)
	}
	return coding, nil
}

// applyCharacterSet transcodes every string-kinded Element's raw bytes
// through the encoding named by (0008,0005) SpecificCharacterSet, an
// enrichment opted into via WithCharacterSetDecoding. When the tag is
// absent, elements are decoded with defaultCharacterRepertoire. It is
// best-effort: an unrecognized character set term leaves elements
// untouched, logged as a warning rather than failing the whole parse.
func (p *FileParser) applyCharacterSet() {
	term := ""
	if elem, ok := p.store.Get(TagSpecificCharacterSet); ok {
		if s, err := elem.TrimmedString(); err == nil {
			term = s
		}
	}

	enc, err := lookupEncoding(term)
	if err != nil {
		p.log.WithError(err).Warn("dicom: specific character set not recognized, leaving string values as-is")
		return
	}

	for _, tag := range p.store.Tags() {
		elem, _ := p.store.Get(tag)
		if elem.Kind() != KindString {
			continue
		}
		raw, _ := elem.String()
		decoded, err := enc.NewDecoder().String(raw)
		if err != nil {
			p.log.WithError(err).WithField("tag", tag).Warn("dicom: failed decoding string value with specific character set")
			continue
		}
		p.store.Set(&Element{Tag: elem.Tag, VR: elem.VR, Value: stringValue(decoded)})
	}
}
