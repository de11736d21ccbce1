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
	"os"
	"strings"
)

// defaultOutsourcedExt is the file extension conventionally used by
// Enterprise Vault for outsourced payload sibling files.
const defaultOutsourcedExt = "dvf"

// OutsourcedPath derives the sibling outsourced-payload path for a .dvs file
// at dvsPath (basename without its .dvs suffix, plus "."+ext), and reports
// whether that file exists. If dvsPath does not end in ".dvs" (for instance
// because the input came from a non-seekable stream with no path of its
// own), it returns ("", false).
func OutsourcedPath(dvsPath, ext string) (string, bool) {
	if ext == "" {
		ext = defaultOutsourcedExt
	}
	if dvsPath == "" || !strings.HasSuffix(strings.ToLower(dvsPath), ".dvs") {
		return "", false
	}
	candidate := dvsPath[:len(dvsPath)-4] + "." + ext
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return candidate, false
	}
	return candidate, true
}
