// Copyright 2013 Richard Lehane. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dvs

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// envelopeHeaderLen is the size of the fixed DVS envelope prefix, in bytes.
const envelopeHeaderLen = 25

var magic = [4]byte{0xFF, 0xEE, 0xEE, 0xDD}

// Envelope is a parsed DVS envelope header together with its payload id,
// positioned to read the compressed payload from the underlying reader.
type Envelope struct {
	r             io.Reader
	PayloadLength uint32
	PayloadID     uint32
}

// NewEnvelope reads the 25-byte envelope header and the 4-byte payload id
// that follows it from r. It fails with ErrBadMagic if the header does not
// start with the DVS magic sequence, or ErrPayloadTooSmall if the declared
// payload length cannot even hold the payload id.
func NewEnvelope(r io.Reader) (*Envelope, error) {
	var hdr [envelopeHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("dvs: reading envelope header: %w", err)
	}
	var got [4]byte
	copy(got[:], hdr[0:4])
	if got != magic {
		return nil, ErrBadMagic
	}
	payloadLength := binary.LittleEndian.Uint32(hdr[21:25])
	if payloadLength < 4 {
		return nil, ErrPayloadTooSmall
	}

	var idBuf [4]byte
	if _, err := io.ReadFull(r, idBuf[:]); err != nil {
		return nil, fmt.Errorf("dvs: reading payload id: %w", err)
	}

	return &Envelope{
		r:             r,
		PayloadLength: payloadLength,
		PayloadID:     binary.LittleEndian.Uint32(idBuf[:]),
	}, nil
}

// Decompress inflates the zlib-compressed payload to w. Afterward it checks
// that the source is exhausted, failing with ErrTrailingData if bytes remain.
func (e *Envelope) Decompress(w io.Writer) error {
	lr := io.LimitReader(e.r, int64(e.PayloadLength)-4)
	zr, err := zlib.NewReader(lr)
	if err != nil {
		return fmt.Errorf("dvs: opening zlib stream: %w", err)
	}
	if _, err := io.Copy(w, zr); err != nil {
		zr.Close()
		return fmt.Errorf("dvs: decompressing payload: %w", err)
	}
	if err := zr.Close(); err != nil {
		return fmt.Errorf("dvs: closing zlib stream: %w", err)
	}

	var probe [1]byte
	n, err := e.r.Read(probe[:])
	if n != 0 || err != io.EOF {
		return ErrTrailingData
	}
	return nil
}

// Decompress is a convenience wrapper that reads a DVS envelope from r and
// writes its decompressed CFBF payload to w.
func Decompress(r io.Reader, w io.Writer) error {
	e, err := NewEnvelope(r)
	if err != nil {
		return err
	}
	return e.Decompress(w)
}
