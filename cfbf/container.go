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

// Package cfbf implements a random-access reader for the Microsoft Compound
// File Binary File Format (CFBF, also known as OLE or Structured Storage;
// see [MS-CFB]).
//
// A Container is built over any io.ReadSeeker. From it, callers can fetch
// directory Objects by id, walk the sibling/child tree, and dump the raw
// bytes of any stream:
//
//	f, _ := os.Open("archive.cfbf")
//	defer f.Close()
//	c, err := cfbf.New(f)
//	if err != nil {
//		log.Fatal(err)
//	}
//	root, _ := c.GetRootObject()
//	obj, _ := c.FindChildByPath([]string{"Root Entry", "FileContentStream"})
//	var buf bytes.Buffer
//	c.DumpStream(obj, &buf)
//
// A Container is not safe for concurrent use: nearly every operation moves
// the backing source's seek cursor.
package cfbf

import "io"

// maxTraversalDepth bounds the recursive sibling/child walks performed by
// FindChildByName and FindChildByPath, so a malformed container with a
// degenerate (or cyclic, via sentinel confusion) tree cannot blow the stack.
const maxTraversalDepth = 100000

// Container owns a seekable byte source and the CFBF header decoded from it.
type Container struct {
	rs     io.ReadSeeker
	header *Header
}

// New reads the CFBF header from rs and returns a ready-to-use Container.
// It fails with a BadFormat error if rs does not begin with the CFBF magic
// signature and byte-order mark.
func New(rs io.ReadSeeker) (*Container, error) {
	c := &Container{rs: rs}
	buf, err := c.readAt(0, headerCoreLen)
	if err != nil {
		return nil, newErr("New", Io, err)
	}
	h, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}
	c.header = h
	return c, nil
}

// Header returns the parsed CFBF header.
func (c *Container) Header() *Header { return c.header }

// readAt seeks to the given absolute offset and reads exactly n bytes.
func (c *Container) readAt(off int64, n int) ([]byte, error) {
	if _, err := c.rs.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.rs, buf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, newErr("readAt", UnexpectedEof, err)
		}
		return nil, newErr("readAt", Io, err)
	}
	return buf, nil
}

func (c *Container) readU32At(off int64) (uint32, error) {
	buf, err := c.readAt(off, 4)
	if err != nil {
		return 0, err
	}
	return leUint32(buf), nil
}
