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

import "io"

// copyBufSize bounds how many bytes DumpStream reads from the source in one
// call, so large streams are never loaded wholesale into memory.
const copyBufSize = 512

// DumpStream writes the raw bytes of object to w.
//
// For the root storage object, this copies the mini-stream itself (a normal
// sector chain). For a regular stream object, it copies from the mini-stream
// if the stream is smaller than the header's mini-stream cutoff, otherwise
// from a normal sector chain. Storage and Unknown objects have no byte
// content and return a NotAStream error.
func (c *Container) DumpStream(object *Object, w io.Writer) error {
	switch object.ObjectType {
	case RootStorage:
		return c.dumpNormal(object.StartingSectorLocation, object.StreamSize, w)
	case Stream:
		if object.StreamSize < uint64(c.header.MiniStreamCutoff) {
			return c.dumpMini(object.StartingSectorLocation, object.StreamSize, w)
		}
		return c.dumpNormal(object.StartingSectorLocation, object.StreamSize, w)
	default:
		return newErr("DumpStream", NotAStream, nil)
	}
}

func (c *Container) dumpNormal(startSector uint32, size uint64, w io.Writer) error {
	remaining := size
	current := startSector
	buf := make([]byte, copyBufSize)
	for remaining > 0 {
		if err := c.seekSector(current); err != nil {
			return err
		}
		n := uint64(c.header.SectorSize)
		if remaining < n {
			n = remaining
		}
		if err := c.copyExact(w, buf, n); err != nil {
			return err
		}
		remaining -= n
		if remaining > 0 {
			next, err := c.nextSector(current)
			if err != nil {
				return err
			}
			if next == endOfChain || next > maxRegSect {
				return newErr("DumpStream", CorruptChain, nil)
			}
			current = next
		}
	}
	return nil
}

func (c *Container) dumpMini(startMiniSector uint32, size uint64, w io.Writer) error {
	root, err := c.GetRootObject()
	if err != nil {
		return err
	}
	ministreamStart := root.StartingSectorLocation

	remaining := size
	current := startMiniSector
	buf := make([]byte, copyBufSize)
	for remaining > 0 {
		if err := c.seekMiniSectorOffset(ministreamStart, current, 0); err != nil {
			return err
		}
		n := uint64(c.header.MiniSectorSize)
		if remaining < n {
			n = remaining
		}
		if err := c.copyExact(w, buf, n); err != nil {
			return err
		}
		remaining -= n
		if remaining > 0 {
			next, err := c.nextMiniSector(current)
			if err != nil {
				return err
			}
			if next == endOfChain || next > maxRegSect {
				return newErr("DumpStream", CorruptChain, nil)
			}
			current = next
		}
	}
	return nil
}

// copyExact copies exactly n bytes from the container's current cursor
// position to w, using buf (which must be at least copyBufSize long) as a
// bounded scratch buffer.
func (c *Container) copyExact(w io.Writer, buf []byte, n uint64) error {
	for n > 0 {
		want := uint64(len(buf))
		if n < want {
			want = n
		}
		read, err := io.ReadFull(c.rs, buf[:want])
		if err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				return newErr("DumpStream", UnexpectedEof, err)
			}
			return newErr("DumpStream", Io, err)
		}
		if _, err := w.Write(buf[:read]); err != nil {
			return newErr("DumpStream", Io, err)
		}
		n -= uint64(read)
	}
	return nil
}
