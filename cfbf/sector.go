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

import (
	"encoding/binary"
	"io"
	"math"
)

// Sentinel sector/entry ids. Any id greater than maxRegSect is a sentinel
// and must never be dereferenced as a real sector number or directory id.
const (
	maxRegSect uint32 = 0xFFFFFFFA // largest real sector number
	difSect    uint32 = 0xFFFFFFFC // this sector holds DIFAT entries
	fatSect    uint32 = 0xFFFFFFFD // this sector holds FAT entries
	endOfChain uint32 = 0xFFFFFFFE // terminates a sector chain
	freeSect   uint32 = 0xFFFFFFFF // unallocated sector / NOSTREAM
	noStream   uint32 = 0xFFFFFFFF // absent tree pointer
)

func leUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func leUint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }
func leUint16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// sectorOffset returns the absolute byte offset of sector s: (s+1)*sectorSize,
// computed in uint64 with an overflow pre-check.
func (c *Container) sectorOffset(s uint32) (int64, error) {
	sectorSize := uint64(c.header.SectorSize)
	if uint64(s) >= math.MaxUint64/sectorSize-1 {
		return 0, newErr("sectorOffset", CorruptChain, nil)
	}
	return int64((uint64(s) + 1) * sectorSize), nil
}

// seekSector positions the cursor at the start of sector s.
func (c *Container) seekSector(s uint32) error {
	return c.seekSectorOffset(s, 0)
}

// seekSectorOffset positions the cursor at byte offset relative to the start
// of sector s, walking the FAT forward as needed when offset crosses sector
// boundaries.
func (c *Container) seekSectorOffset(s uint32, offset uint64) error {
	sectorSize := uint64(c.header.SectorSize)
	for offset >= sectorSize {
		next, err := c.nextSector(s)
		if err != nil {
			return err
		}
		if next > maxRegSect {
			return newErr("seekSectorOffset", CorruptChain, nil)
		}
		s = next
		offset -= sectorSize
	}
	abs, err := c.sectorOffset(s)
	if err != nil {
		return err
	}
	if _, err := c.rs.Seek(abs+int64(offset), io.SeekStart); err != nil {
		return newErr("seekSectorOffset", Io, err)
	}
	return nil
}

// nextSector returns the FAT successor of sector s, locating the owning FAT
// sector via the inline header DIFAT entries (first 109) or the chained
// DIFAT sectors beyond that.
func (c *Container) nextSector(s uint32) (uint32, error) {
	if s > maxRegSect {
		return 0, newErr("nextSector", CorruptChain, nil)
	}
	entriesPerFATSector := c.header.SectorSize / 4
	fatIndex := s / entriesPerFATSector
	fatOffset := uint64(s%entriesPerFATSector) * 4

	var fatSectorLoc uint32
	if fatIndex < difatInlineCap {
		loc, err := c.readU32At(headerCoreLen + int64(fatIndex)*4)
		if err != nil {
			return 0, err
		}
		fatSectorLoc = loc
	} else {
		loc, err := c.difatEntry(fatIndex - difatInlineCap)
		if err != nil {
			return 0, err
		}
		fatSectorLoc = loc
	}
	if fatSectorLoc > maxRegSect {
		return 0, newErr("nextSector", CorruptChain, nil)
	}

	if err := c.seekSectorOffset(fatSectorLoc, fatOffset); err != nil {
		return 0, err
	}
	buf := make([]byte, 4)
	if _, err := io.ReadFull(c.rs, buf); err != nil {
		return 0, newErr("nextSector", UnexpectedEof, err)
	}
	return leUint32(buf), nil
}

// difatEntry returns the j-th FAT sector location stored in the chained
// DIFAT sectors (j is relative to the end of the 109 inline entries).
func (c *Container) difatEntry(j uint32) (uint32, error) {
	if c.header.FirstDIFATSector > maxRegSect {
		return 0, newErr("difatEntry", CorruptChain, nil)
	}
	entriesPerDIFATSector := c.header.SectorSize/4 - 1
	sector := c.header.FirstDIFATSector
	for j >= entriesPerDIFATSector {
		if err := c.seekSectorOffset(sector, uint64(entriesPerDIFATSector)*4); err != nil {
			return 0, err
		}
		buf := make([]byte, 4)
		if _, err := io.ReadFull(c.rs, buf); err != nil {
			return 0, newErr("difatEntry", UnexpectedEof, err)
		}
		next := leUint32(buf)
		if next == endOfChain || next > maxRegSect {
			return 0, newErr("difatEntry", CorruptChain, nil)
		}
		sector = next
		j -= entriesPerDIFATSector
	}
	if err := c.seekSectorOffset(sector, uint64(j)*4); err != nil {
		return 0, err
	}
	buf := make([]byte, 4)
	if _, err := io.ReadFull(c.rs, buf); err != nil {
		return 0, newErr("difatEntry", UnexpectedEof, err)
	}
	return leUint32(buf), nil
}

// nextMiniSector returns the mini-FAT successor of mini-sector m. The
// mini-FAT is itself an ordinary sector chain rooted at
// header.FirstMiniFATSector.
func (c *Container) nextMiniSector(m uint32) (uint32, error) {
	entriesPerSector := c.header.SectorSize / 4
	sectorIndex := m / entriesPerSector
	offset := uint64(m%entriesPerSector) * 4

	sector := c.header.FirstMiniFATSector
	for i := uint32(0); i < sectorIndex; i++ {
		next, err := c.nextSector(sector)
		if err != nil {
			return 0, err
		}
		if next > maxRegSect {
			return 0, newErr("nextMiniSector", CorruptChain, nil)
		}
		sector = next
	}
	if err := c.seekSectorOffset(sector, offset); err != nil {
		return 0, err
	}
	buf := make([]byte, 4)
	if _, err := io.ReadFull(c.rs, buf); err != nil {
		return 0, newErr("nextMiniSector", UnexpectedEof, err)
	}
	return leUint32(buf), nil
}

// seekMiniSectorOffset positions the cursor inside the mini-stream (the
// stream belonging to the root storage) at the given offset relative to
// mini-sector m, walking the mini-FAT forward as needed.
//
// Each loop iteration subtracts the mini-sector size (64 bytes), not the
// regular sector size; the original implementation this reader is modelled
// on subtracted sector_size here, which is a latent bug (see DESIGN.md).
func (c *Container) seekMiniSectorOffset(ministreamStart uint32, m uint32, offset uint64) error {
	for offset >= uint64(c.header.MiniSectorSize) {
		next, err := c.nextMiniSector(m)
		if err != nil {
			return err
		}
		if next > maxRegSect {
			return newErr("seekMiniSectorOffset", CorruptChain, nil)
		}
		m = next
		offset -= uint64(c.header.MiniSectorSize)
	}
	return c.seekSectorOffset(ministreamStart, uint64(m)*uint64(c.header.MiniSectorSize)+offset)
}
