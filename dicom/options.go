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

import "github.com/sirupsen/logrus"

// Option configures a FileParser. This generalizes the library's own
// ParseOption pattern (functional options applied in the order given) to
// the handful of parse-time behaviors this package exposes.
type Option func(*FileParser)

// WithRescale controls whether ImageBuilder applies RescaleSlope/Intercept
// when building the pixel matrix. Enabled by default.
func WithRescale(enabled bool) Option {
	return func(p *FileParser) { p.rescale = enabled }
}

// WithCharacterSetDecoding controls whether string VR values are
// transcoded according to (0008,0005) SpecificCharacterSet. Disabled by
// default, since the spec's baseline behavior is to decode string VRs as
// raw ASCII/Latin-1 bytes.
func WithCharacterSetDecoding(enabled bool) Option {
	return func(p *FileParser) { p.decodeCharacterSet = enabled }
}

// WithEagerImageBuild makes Parse build the pixel matrix immediately
// (the original C++ source's parse_all), rather than lazily on first
// access to Image().
func WithEagerImageBuild(enabled bool) Option {
	return func(p *FileParser) { p.eagerImageBuild = enabled }
}

// WithLogger sets the logger used for soft-parse warnings (spec §7): a
// pixel spacing, image position, or rescale field that fails to parse as a
// number silently reverts to its default, but is also logged through l.
// The default logger discards output, so FileParser is silent unless a
// caller opts in.
func WithLogger(l *logrus.Logger) Option {
	return func(p *FileParser) { p.log = l }
}

func silentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(b []byte) (int, error) { return len(b), nil }
