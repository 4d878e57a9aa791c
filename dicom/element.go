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

// Package dicom provides a parser and in-memory model for DICOM Part 10
// image files. It discovers the on-wire transport syntax, decodes the
// sequence of typed metadata elements into a keyed ElementStore, and
// reconstructs the pixel matrix from the raw frame payload via
// ImageBuilder, applying bit-unpadding and linear rescaling.
//
// Decoding is handled internally by ByteReader (primitive reads),
// ValueDecoder (VR-dispatched value decode), and ElementParser (one
// element at a time); FileParser drives the whole file. Callers normally
// only need FileParser.Parse.
package dicom

// Element is a single decoded Data Element: a Tag, its Value
// Representation, and the decoded Value.
type Element struct {
	Tag Tag
	VR  VR
	Value
}

// ElementStore is a keyed collection of decoded Elements, one per Tag; a
// later occurrence of the same Tag overwrites an earlier one (spec §3).
// Lookups are always by Tag; insertion order carries no meaning.
type ElementStore struct {
	elements map[uint32]*Element
}

// NewElementStore returns an empty ElementStore.
func NewElementStore() *ElementStore {
	return &ElementStore{elements: map[uint32]*Element{}}
}

// Set inserts or overwrites the Element for tag.
func (s *ElementStore) Set(e *Element) {
	s.elements[e.Tag.pack()] = e
}

// Get returns the Element stored for tag, if any.
func (s *ElementStore) Get(tag Tag) (*Element, bool) {
	e, ok := s.elements[tag.pack()]
	return e, ok
}

// MustGet returns the Element stored for tag, or a *MissingTagError naming
// it. name is a human-readable label used in the error message.
func (s *ElementStore) MustGet(tag Tag, name string) (*Element, error) {
	e, ok := s.Get(tag)
	if !ok {
		return nil, newMissingTagError(tag, name)
	}
	return e, nil
}

// Has reports whether tag is present in the store.
func (s *ElementStore) Has(tag Tag) bool {
	_, ok := s.elements[tag.pack()]
	return ok
}

// Len returns the number of distinct tags in the store.
func (s *ElementStore) Len() int {
	return len(s.elements)
}

// Tags returns every Tag present in the store, in unspecified order.
func (s *ElementStore) Tags() []Tag {
	tags := make([]Tag, 0, len(s.elements))
	for k := range s.elements {
		tags = append(tags, tagFromPacked(k))
	}
	return tags
}

// reset clears the store in place so a FileParser can be reused across
// repeated Parse calls (spec §3 Lifecycle).
func (s *ElementStore) reset() {
	s.elements = map[uint32]*Element{}
}
