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

// StreamError is returned when the underlying reader cannot satisfy a read.
// FileParser treats it as a normal end-of-stream signal in two places: the
// main element loop, for a StreamError raised anywhere while reading an
// element (a last element cut off by the end of the stream is dropped), and
// the meta-group loop, for one raised while reading a tag. Any other code
// path treats it as fatal.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("dicom: stream error during %s: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

func newStreamError(op string, err error) *StreamError {
	return &StreamError{Op: op, Err: err}
}

// ParseError is returned for malformed content encountered at a position
// where bytes were successfully read: a missing DICM magic, an unrecognized
// VR code, or a value read attempted before a tag was parsed.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "dicom: parse error: " + e.Msg
}

func newParseError(format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// MissingTagError is returned when a tag required to build the image
// summary or pixel matrix is absent from the ElementStore. The file was
// otherwise well-formed; it is simply missing required information.
type MissingTagError struct {
	Tag  Tag
	Name string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("dicom: missing required tag %v (%s)", e.Tag, e.Name)
}

func newMissingTagError(tag Tag, name string) *MissingTagError {
	return &MissingTagError{Tag: tag, Name: name}
}

// UnsupportedError is returned for well-formed input this package
// deliberately does not support: the Deflated Little Endian transfer
// syntax, a photometric interpretation other than MONOCHROME2, or a bits
// allocated value outside {8, 16}.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return "dicom: unsupported: " + e.Feature
}

func newUnsupportedError(format string, args ...interface{}) *UnsupportedError {
	return &UnsupportedError{Feature: fmt.Sprintf(format, args...)}
}
