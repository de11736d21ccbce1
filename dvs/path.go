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
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/stevemuller04/evrecovery/cfbf"
)

// RecoveredPath is the original directory and file name of an archived item,
// reconstructed from an archive's embedded metadata streams.
type RecoveredPath struct {
	Dir  string
	File string
}

// Join returns the full relative path (Dir joined with File).
func (p RecoveredPath) Join() string {
	return filepath.Join(p.Dir, p.File)
}

// RecoverPath locates the "FolderPath" and "Title" metadata streams anywhere
// in c's directory tree (by name, not by a fixed path - see DESIGN.md) and
// decodes each as a length-prefixed UTF-16LE string.
func RecoverPath(c *cfbf.Container) (RecoveredPath, error) {
	dir, err := readPathStream(c, "FolderPath", false)
	if err != nil {
		return RecoveredPath{}, err
	}
	file, err := readPathStream(c, "Title", true)
	if err != nil {
		return RecoveredPath{}, err
	}
	return RecoveredPath{Dir: dir, File: file}, nil
}

func readPathStream(c *cfbf.Container, name string, singleComponent bool) (string, error) {
	obj, err := c.FindChildByName(name)
	if err != nil {
		return "", fmt.Errorf("dvs: searching for %q: %w", name, err)
	}
	if obj == nil {
		return "", fmt.Errorf("%w: %q", ErrPathNotFound, name)
	}
	var buf bytes.Buffer
	if err := c.DumpStream(obj, &buf); err != nil {
		return "", fmt.Errorf("dvs: reading %q: %w", name, err)
	}
	raw, err := decodePathString(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("dvs: decoding %q: %w", name, err)
	}
	if singleComponent {
		return sanitizeComponent(raw), nil
	}
	return sanitizeDirPath(raw), nil
}

// decodePathString interprets buf as a 4-byte little-endian length prefix
// (the length is not otherwise used) followed by a NUL-terminated UTF-16LE
// string, and returns the string with the trailing NUL stripped.
func decodePathString(buf []byte) (string, error) {
	if len(buf) < 6 {
		return "", fmt.Errorf("content too short (%d bytes)", len(buf))
	}
	body := buf[4:]
	units := len(body)/2 - 1
	raw := make([]uint16, units)
	for i := 0; i < units; i++ {
		raw[i] = binary.LittleEndian.Uint16(body[i*2 : i*2+2])
	}
	return string(utf16.Decode(raw)), nil
}

// sanitizeComponent folds every directory separator (and the DEL character)
// in s to '_', producing a string safe to use as a single path component.
func sanitizeComponent(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0x7F {
			return '_'
		}
		return r
	}, s)
}

// sanitizeDirPath normalizes '\\' and DEL to the '/' separator, then drops
// empty, "." and ".." components so the result is always a clean relative
// path with no traversal outside its root.
//
// The original implementation only stripped volume/root prefixes and left
// ".." components intact; this reader drops them outright instead, since a
// recovered path is used to build a filesystem destination and must never
// escape the target directory.
func sanitizeDirPath(s string) string {
	folded := strings.Map(func(r rune) rune {
		if r == '\\' || r == 0x7F {
			return '/'
		}
		return r
	}, s)
	parts := strings.Split(folded, "/")
	clean := parts[:0]
	for _, p := range parts {
		switch p {
		case "", ".", "..":
			continue
		default:
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	return filepath.Join(clean...)
}
