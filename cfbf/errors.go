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

import "fmt"

// Kind classifies the way a Container operation failed.
type Kind int

const (
	// BadFormat means the byte source does not look like a CFBF file at all:
	// bad magic signature or byte-order mark.
	BadFormat Kind = iota
	// CorruptChain means a FAT, mini-FAT or DIFAT chain could not be followed
	// to completion: a sentinel turned up where a real sector or entry id was
	// required, or a traversal ran past its depth cap.
	CorruptChain
	// NotAStream means DumpStream was called on a Storage or Unknown object.
	NotAStream
	// UnexpectedEof means the underlying source produced fewer bytes than the
	// CFBF geometry promised.
	UnexpectedEof
	// Io is any other failure from the byte source or writer.
	Io
)

func (k Kind) String() string {
	switch k {
	case BadFormat:
		return "bad format"
	case CorruptChain:
		return "corrupt chain"
	case NotAStream:
		return "not a stream"
	case UnexpectedEof:
		return "unexpected eof"
	case Io:
		return "io error"
	default:
		return "unknown"
	}
}

// Error is returned by every exported Container operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cfbf: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("cfbf: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}
