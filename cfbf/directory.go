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
	"io"
	"unicode/utf16"
)

// ObjectType classifies a directory entry.
type ObjectType uint8

const (
	Unknown ObjectType = iota
	Storage
	Stream
	RootStorage
)

func objectTypeFromByte(b byte) ObjectType {
	switch b {
	case 1:
		return Storage
	case 2:
		return Stream
	case 5:
		return RootStorage
	default:
		return Unknown
	}
}

// Object is a decoded 128-byte directory entry.
type Object struct {
	ID           uint32
	Name         string
	ObjectType   ObjectType
	CreationTime uint64
	ModifiedTime uint64

	StartingSectorLocation uint32
	StreamSize             uint64

	leftSiblingID  uint32
	rightSiblingID uint32
	childID        uint32
}

// GetObject decodes and returns the directory entry at index id.
func (c *Container) GetObject(id uint32) (*Object, error) {
	if err := c.seekSectorOffset(c.header.FirstDirSector, uint64(id)*dirEntrySize); err != nil {
		return nil, err
	}
	buf := make([]byte, dirEntrySize)
	if _, err := io.ReadFull(c.rs, buf); err != nil {
		return nil, newErr("GetObject", UnexpectedEof, err)
	}
	return decodeObject(id, buf), nil
}

// GetRootObject is equivalent to GetObject(0).
func (c *Container) GetRootObject() (*Object, error) {
	return c.GetObject(0)
}

func decodeObject(id uint32, buf []byte) *Object {
	nameLen := leUint16(buf[64:66])
	var name string
	if nameLen >= 2 {
		units := int(nameLen/2 - 1)
		raw := make([]uint16, units)
		for i := 0; i < units; i++ {
			raw[i] = leUint16(buf[i*2 : i*2+2])
		}
		name = string(utf16.Decode(raw))
	}
	return &Object{
		ID:                     id,
		Name:                   name,
		ObjectType:             objectTypeFromByte(buf[66]),
		leftSiblingID:          leUint32(buf[68:72]),
		rightSiblingID:         leUint32(buf[72:76]),
		childID:                leUint32(buf[76:80]),
		CreationTime:           leUint64(buf[100:108]),
		ModifiedTime:           leUint64(buf[108:116]),
		StartingSectorLocation: leUint32(buf[116:120]),
		StreamSize:             leUint64(buf[120:128]),
	}
}

// GetLeftSibling returns the left sibling of object, or (nil, nil) if it has
// none.
func (c *Container) GetLeftSibling(object *Object) (*Object, error) {
	return c.resolveRef(object.leftSiblingID)
}

// GetRightSibling returns the right sibling of object, or (nil, nil) if it
// has none.
func (c *Container) GetRightSibling(object *Object) (*Object, error) {
	return c.resolveRef(object.rightSiblingID)
}

// GetFirstChild returns the first child of object, or (nil, nil) if object
// is empty.
func (c *Container) GetFirstChild(object *Object) (*Object, error) {
	return c.resolveRef(object.childID)
}

func (c *Container) resolveRef(id uint32) (*Object, error) {
	if id > maxRegSect {
		return nil, nil
	}
	return c.GetObject(id)
}

// FindChildByName performs an unordered search of the entire directory tree
// (starting at the root), returning the first object whose name equals
// name. Traversal order is left sibling, right sibling, then child.
//
// The CFBF sibling tree is a red-black tree keyed by (name length, UTF-16
// codepoint order), so a name-ordered search would be more efficient; this
// method intentionally matches only on equality and does not rely on that
// ordering.
func (c *Container) FindChildByName(name string) (*Object, error) {
	return c.findByNameRecursive(0, name, 0)
}

func (c *Container) findByNameRecursive(id uint32, name string, depth int) (*Object, error) {
	if id > maxRegSect {
		return nil, nil
	}
	if depth > maxTraversalDepth {
		return nil, newErr("FindChildByName", CorruptChain, nil)
	}
	object, err := c.GetObject(id)
	if err != nil {
		return nil, err
	}
	if object.Name == name {
		return object, nil
	}
	if found, err := c.findByNameRecursive(object.leftSiblingID, name, depth+1); err != nil || found != nil {
		return found, err
	}
	if found, err := c.findByNameRecursive(object.rightSiblingID, name, depth+1); err != nil || found != nil {
		return found, err
	}
	return c.findByNameRecursive(object.childID, name, depth+1)
}

// FindChildByPath performs an ordered search: path[0] must equal the name of
// the root object ("Root Entry"), and each subsequent segment is matched
// against the child of the previous match.
func (c *Container) FindChildByPath(path []string) (*Object, error) {
	if len(path) == 0 {
		return nil, nil
	}
	return c.findByPathRecursive(0, path, 0)
}

func (c *Container) findByPathRecursive(id uint32, path []string, depth int) (*Object, error) {
	if id > maxRegSect {
		return nil, nil
	}
	if depth > maxTraversalDepth {
		return nil, newErr("FindChildByPath", CorruptChain, nil)
	}
	object, err := c.GetObject(id)
	if err != nil {
		return nil, err
	}
	if path[0] == object.Name {
		if len(path) == 1 {
			return object, nil
		}
		return c.findByPathRecursive(object.childID, path[1:], depth+1)
	}
	if found, err := c.findByPathRecursive(object.leftSiblingID, path, depth+1); err != nil || found != nil {
		return found, err
	}
	return c.findByPathRecursive(object.rightSiblingID, path, depth+1)
}
