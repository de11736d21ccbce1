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

// Package seekable adapts a non-seekable io.Reader into an io.ReadSeeker by
// reading it to completion into memory. CFBF containers cannot be parsed
// from a forward-only stream - the FAT and directory tree require random
// access - so any input that does not already implement io.Seeker (a pipe,
// stdin, a network connection) must be slurped first.
package seekable

import (
	"bytes"
	"fmt"
	"io"
)

// Buffer is an in-memory io.ReadSeeker produced by Slurp.
type Buffer struct {
	*bytes.Reader
}

// Slurp reads r to completion and returns a seekable view over the result.
// If r already implements io.ReadSeeker, it is returned unchanged and
// nothing is copied into memory.
func Slurp(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("seekable: reading input into memory: %w", err)
	}
	return &Buffer{Reader: bytes.NewReader(data)}, nil
}
