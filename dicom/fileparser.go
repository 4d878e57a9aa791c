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
	"io"

	"github.com/sirupsen/logrus"
)

// preambleLength is the size of the null preamble preceding the "DICM"
// signature (spec §6).
const preambleLength = 128

// FileParser drives the whole-file algorithm described in spec §4.4: skip
// preamble, check magic, parse the meta group as fixed LEE, switch syntax
// by Transfer Syntax UID, then parse the remaining elements. A FileParser
// is reusable: calling Parse again fully resets its ElementStore and any
// cached image data (spec §3 Lifecycle).
type FileParser struct {
	rescale            bool
	decodeCharacterSet bool
	eagerImageBuild    bool
	log                *logrus.Logger

	store    *ElementStore
	summary  *ImageMetadata
	pixels   *PixelMatrix
}

// NewFileParser returns a FileParser configured by opts. Rescaling is on
// by default; see Option for the rest.
func NewFileParser(opts ...Option) *FileParser {
	p := &FileParser{
		rescale: true,
		log:     silentLogger(),
		store:   NewElementStore(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse resets p's state and decodes the DICOM file in r. It always parses
// the full element stream and the image summary; the pixel matrix is built
// eagerly only if WithEagerImageBuild was set, otherwise lazily on first
// call to Image().
func (p *FileParser) Parse(r io.ReadSeeker) error {
	p.store.reset()
	p.summary = nil
	p.pixels = nil

	br := NewByteReader(r)
	if err := br.Seek(preambleLength); err != nil {
		return err
	}

	magic, err := br.ReadExact(4)
	if err != nil {
		return newParseError("not DICOM format")
	}
	if string(magic) != "DICM" {
		return newParseError("not DICOM format")
	}

	ep := NewElementParser(br, defaultDecodingMode)
	if err := p.parseMetaGroup(ep); err != nil {
		return err
	}

	mode, err := p.selectDecodingMode()
	if err != nil {
		return err
	}
	if mode.Deflated {
		return newUnsupportedError("Deflated Explicit VR Little Endian transfer syntax")
	}
	ep.SetMode(mode)

	if err := p.parseMainBody(ep); err != nil {
		return err
	}

	if p.decodeCharacterSet {
		p.applyCharacterSet()
	}

	summary, err := p.ParseSummary()
	if err != nil {
		return err
	}
	p.summary = summary

	if p.eagerImageBuild {
		if _, err := p.Image(); err != nil {
			return err
		}
	}

	return nil
}

// parseMetaGroup repeatedly parses a tag; while its group is 0x0002 the
// element is decoded (always as LEE, spec §3) and stored, otherwise the
// tag is rewound and the loop exits, leaving the reader positioned at the
// first element of the main body.
func (p *FileParser) parseMetaGroup(ep *ElementParser) error {
	for {
		tag, err := ep.ParseTag()
		if err != nil {
			if _, ok := err.(*StreamError); ok {
				return nil
			}
			return err
		}

		if !tag.IsMetadataElement() {
			return ep.RewindTag()
		}

		elem, err := ep.ParseValue()
		if err != nil {
			return err
		}
		p.store.Set(elem)
	}
}

// selectDecodingMode reads the Transfer Syntax UID from the meta group, if
// present, and selects the DecodingMode it names (spec §4.4 step 7). When
// absent, the meta-group default (LEE) persists.
func (p *FileParser) selectDecodingMode() (DecodingMode, error) {
	elem, ok := p.store.Get(TagTransferSyntaxUID)
	if !ok {
		return defaultDecodingMode, nil
	}
	uid, err := elem.TrimmedString()
	if err != nil {
		return DecodingMode{}, err
	}
	return lookupDecodingMode(uid), nil
}

// parseMainBody repeatedly parses one element and stores it, exiting
// cleanly on any *StreamError from reading the element's tag or value, so
// a truncated last element is dropped and the elements before it are kept;
// any other error propagates (spec §4.4 step 9).
func (p *FileParser) parseMainBody(ep *ElementParser) error {
	for {
		elem, err := ep.Parse()
		if err != nil {
			if _, ok := err.(*StreamError); ok {
				return nil
			}
			return err
		}
		p.store.Set(elem)
	}
}

// Elements returns the ElementStore populated by the most recent Parse
// call.
func (p *FileParser) Elements() *ElementStore {
	return p.store
}

// Summary returns the ImageMetadata computed during the most recent Parse
// call.
func (p *FileParser) Summary() *ImageMetadata {
	return p.summary
}

// Image returns the pixel matrix, building it from the ElementStore on
// first access and caching the result for subsequent calls, matching the
// original C++ source's lazy-build-on-first-access behavior.
func (p *FileParser) Image() (*PixelMatrix, error) {
	if p.pixels != nil {
		return p.pixels, nil
	}
	if p.summary == nil {
		return nil, newParseError("Parse must be called before Image")
	}

	builder := &ImageBuilder{
		store:   p.store,
		summary: p.summary,
		rescale: p.rescale,
		log:     p.log,
	}
	matrix, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p.pixels = matrix
	return p.pixels, nil
}
