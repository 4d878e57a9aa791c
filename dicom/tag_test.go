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

import "testing"

func TestTagPackRoundTrip(t *testing.T) {
	tests := []Tag{
		{0x0002, 0x0010},
		{0x0028, 0x0100},
		{0x7FE0, 0x0010},
		{0xFFFE, 0xE000},
	}
	for _, tag := range tests {
		t.Run(tag.String(), func(t *testing.T) {
			got := tagFromPacked(tag.pack())
			if got != tag {
				t.Errorf("tagFromPacked(pack(%v)) = %v, want %v", tag, got, tag)
			}
		})
	}
}

func TestTagIsMetadataElement(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want bool
	}{
		{"meta group", Tag{0x0002, 0x0010}, true},
		{"main body", Tag{0x0028, 0x0010}, false},
		{"item tag", Tag{0xFFFE, 0xE000}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.IsMetadataElement(); got != tc.want {
				t.Errorf("IsMetadataElement() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTagString(t *testing.T) {
	got := Tag{0x0028, 0x0010}.String()
	want := "(0028,0010)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
