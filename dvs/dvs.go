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

// Package dvs decodes Veritas/Symantec Enterprise Vault archive envelopes
// (.dvs files): a small fixed header wrapping a zlib-compressed Compound File
// Binary File, plus helpers to reconstruct the archived item's original path
// and to locate an outsourced payload sibling file.
package dvs

import "errors"

var (
	// ErrBadMagic means the input does not begin with the DVS envelope's
	// magic byte sequence (FF EE EE DD).
	ErrBadMagic = errors.New("dvs: bad magic number")
	// ErrPayloadTooSmall means the envelope's declared payload length is
	// less than 4, too small to hold even the payload id.
	ErrPayloadTooSmall = errors.New("dvs: payload length too small")
	// ErrTrailingData means bytes remained in the source after the
	// declared payload was fully consumed.
	ErrTrailingData = errors.New("dvs: unexpected data after payload")
	// ErrPathNotFound means a required metadata stream could not be
	// located in the CFBF directory tree.
	ErrPathNotFound = errors.New("dvs: embedded path stream not found")
)
