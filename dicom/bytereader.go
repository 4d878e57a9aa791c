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
	"encoding/binary"
	"io"
	"math"
)

// hostLittleEndian reports whether this process is running on a
// little-endian architecture. It is used to derive DecodingMode's
// need_byte_swap, never to interpret on-wire values directly: the actual
// swap is always a raw byte reversal (see readRaw), never a numeric bswap,
// so that floating point values remain type-correct on every platform.
var hostLittleEndian = detectHostLittleEndian()

func detectHostLittleEndian() bool {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	return buf[0] == 1
}

// ByteReader reads primitive fixed-width values from a seekable byte
// source, with explicit, per-call endianness. It is a thin, allocation-light
// wrapper: every read that cannot be fully satisfied fails with a
// *StreamError, which ElementParser and FileParser rely on as the normal
// end-of-stream signal.
type ByteReader struct {
	r io.ReadSeeker
}

// NewByteReader wraps r for primitive reads.
func NewByteReader(r io.ReadSeeker) *ByteReader {
	return &ByteReader{r: r}
}

// ReadExact returns exactly n bytes from the stream, or a *StreamError.
func (br *ByteReader) ReadExact(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br.r, buf); err != nil {
		return nil, newStreamError("read", err)
	}
	return buf, nil
}

// readRaw reads n bytes and reverses them in place when swap is true. This
// is the only place byte order is manipulated: it is a pure byte reversal
// of the raw representation, never a type-aware bswap.
func (br *ByteReader) readRaw(n int, swap bool) ([]byte, error) {
	b, err := br.ReadExact(n)
	if err != nil {
		return nil, err
	}
	if swap {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	return b, nil
}

// ReadUint16 reads a uint16, byte-reversing first when swap is true.
func (br *ByteReader) ReadUint16(swap bool) (uint16, error) {
	b, err := br.readRaw(2, swap)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(b), nil
}

// ReadUint32 reads a uint32, byte-reversing first when swap is true.
func (br *ByteReader) ReadUint32(swap bool) (uint32, error) {
	b, err := br.readRaw(4, swap)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b), nil
}

// ReadInt16 reads an int16, byte-reversing first when swap is true.
func (br *ByteReader) ReadInt16(swap bool) (int16, error) {
	u, err := br.ReadUint16(swap)
	return int16(u), err
}

// ReadInt32 reads an int32, byte-reversing first when swap is true.
func (br *ByteReader) ReadInt32(swap bool) (int32, error) {
	u, err := br.ReadUint32(swap)
	return int32(u), err
}

// ReadFloat32 reads an IEEE-754 single precision float, byte-reversing the
// raw 4 bytes first when swap is true.
func (br *ByteReader) ReadFloat32(swap bool) (float32, error) {
	b, err := br.readRaw(4, swap)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.NativeEndian.Uint32(b)), nil
}

// ReadFloat64 reads an IEEE-754 double precision float, byte-reversing the
// raw 8 bytes first when swap is true.
func (br *ByteReader) ReadFloat64(swap bool) (float64, error) {
	b, err := br.readRaw(8, swap)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.NativeEndian.Uint64(b)), nil
}

// Skip advances the stream by n bytes without returning them.
func (br *ByteReader) Skip(n int64) error {
	if _, err := br.r.Seek(n, io.SeekCurrent); err != nil {
		return newStreamError("skip", err)
	}
	return nil
}

// Seek moves the stream to an absolute offset from the start.
func (br *ByteReader) Seek(offset int64) error {
	if _, err := br.r.Seek(offset, io.SeekStart); err != nil {
		return newStreamError("seek", err)
	}
	return nil
}

// SeekRelative moves the stream by delta bytes from the current position.
// A negative delta rewinds; ElementParser uses this to un-read a tag it
// peeked at but did not want to consume.
func (br *ByteReader) SeekRelative(delta int64) error {
	if _, err := br.r.Seek(delta, io.SeekCurrent); err != nil {
		return newStreamError("seek relative", err)
	}
	return nil
}
