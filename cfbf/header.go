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

package cfbf

import "encoding/binary"

// signature is the magic byte sequence every CFBF file begins with.
var signature = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// byteOrderMark is the value the header's byte-order field must hold; any
// other value means the file was written big-endian, which this reader does
// not support.
const byteOrderMark uint16 = 0xFFFE

const (
	headerLen       = 512 // the header always occupies a full first sector on disk
	headerCoreLen   = 0x4C
	difatInlineCap  = 109
	dirEntrySize    = 128
	defaultMiniCut  = 4096
	miniSectorShift = 6
)

// Header is the fixed 76-byte prefix of a CFBF file (the leading inline
// DIFAT entries are read lazily by the sector navigator, not stored here).
type Header struct {
	MinorVersion  uint16
	MajorVersion  uint16
	SectorShift   uint16
	MiniSectShift uint16

	NumDirectorySectors uint32
	NumFATSectors       uint32
	FirstDirSector      uint32
	MiniStreamCutoff    uint32
	FirstMiniFATSector  uint32
	NumMiniFATSectors   uint32
	FirstDIFATSector    uint32
	NumDIFATSectors     uint32

	// SectorSize and MiniSectorSize are derived, not stored on disk.
	SectorSize     uint32
	MiniSectorSize uint32
}

// decodeHeader parses the 76-byte CFBF prefix out of buf, which must hold at
// least headerCoreLen bytes read from absolute offset 0.
func decodeHeader(buf []byte) (*Header, error) {
	if len(buf) < headerCoreLen {
		return nil, newErr("decodeHeader", UnexpectedEof, nil)
	}
	var sig [8]byte
	copy(sig[:], buf[0:8])
	if sig != signature {
		return nil, newErr("decodeHeader", BadFormat, nil)
	}
	byteOrder := binary.LittleEndian.Uint16(buf[28:30])
	if byteOrder != byteOrderMark {
		return nil, newErr("decodeHeader", BadFormat, nil)
	}

	h := &Header{
		MinorVersion:        binary.LittleEndian.Uint16(buf[24:26]),
		MajorVersion:        binary.LittleEndian.Uint16(buf[26:28]),
		SectorShift:         binary.LittleEndian.Uint16(buf[30:32]),
		MiniSectShift:       binary.LittleEndian.Uint16(buf[32:34]),
		NumDirectorySectors: binary.LittleEndian.Uint32(buf[40:44]),
		NumFATSectors:       binary.LittleEndian.Uint32(buf[44:48]),
		FirstDirSector:      binary.LittleEndian.Uint32(buf[48:52]),
		MiniStreamCutoff:    binary.LittleEndian.Uint32(buf[56:60]),
		FirstMiniFATSector:  binary.LittleEndian.Uint32(buf[60:64]),
		NumMiniFATSectors:   binary.LittleEndian.Uint32(buf[64:68]),
		FirstDIFATSector:    binary.LittleEndian.Uint32(buf[68:72]),
		NumDIFATSectors:     binary.LittleEndian.Uint32(buf[72:76]),
	}
	h.SectorSize = 1 << h.SectorShift
	h.MiniSectorSize = 1 << h.MiniSectShift
	return h, nil
}
