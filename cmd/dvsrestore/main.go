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

// Command dvsrestore reads an Enterprise Vault DVS file and restores the
// archived item under its original directory and file name.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stevemuller04/evrecovery/cfbf"
	"github.com/stevemuller04/evrecovery/dvs"
	"github.com/stevemuller04/evrecovery/internal/logger"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dvsrestore: error: %s\n", err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var targetDir, ext string
	var pathOnly bool
	var verbose int

	cmd := &cobra.Command{
		Use:          "dvsrestore [FILE]",
		Short:        "Restores the archived item contained in an Enterprise Vault DVS file",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := ""
			if len(args) == 1 {
				inputPath = args[0]
			}
			log := logger.New(os.Stderr, logger.FromVerbosity(verbose))
			if pathOnly {
				return runPathOnly(inputPath, log)
			}
			return runRestore(inputPath, targetDir, ext, log)
		},
	}
	cmd.Flags().StringVarP(&targetDir, "target", "t", "", "directory to restore the file under; if omitted, write to stdout")
	cmd.Flags().BoolVar(&pathOnly, "path-only", false, "print only the reconstructed original path, recover no content")
	cmd.Flags().StringVar(&ext, "ext", "dvf", "file extension used for outsourced payload sibling files")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase debug verbosity (repeatable)")
	return cmd
}

func openInput(inputPath string) (io.Reader, func() error, error) {
	if inputPath == "" || inputPath == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func decodeContainer(inputPath string, log *logger.Logger) (*cfbf.Container, error) {
	r, closeFn, err := openInput(inputPath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	log.Info("reading DVS envelope")
	var cfbfData bytes.Buffer
	if err := dvs.Decompress(r, &cfbfData); err != nil {
		return nil, err
	}
	log.Infof("decoded %d bytes of CFBF data", cfbfData.Len())

	return cfbf.New(bytes.NewReader(cfbfData.Bytes()))
}

func runPathOnly(inputPath string, log *logger.Logger) error {
	c, err := decodeContainer(inputPath, log)
	if err != nil {
		return err
	}
	path, err := dvs.RecoverPath(c)
	if err != nil {
		return err
	}
	fmt.Println(path.Join())
	return nil
}

func runRestore(inputPath, targetDir, ext string, log *logger.Logger) error {
	c, err := decodeContainer(inputPath, log)
	if err != nil {
		return err
	}

	path, err := dvs.RecoverPath(c)
	if err != nil {
		return err
	}
	log.Infof("original path: %s", path.Join())

	var w io.Writer = os.Stdout
	var closeFn = func() error { return nil }
	if targetDir != "" {
		destDir := filepath.Join(targetDir, path.Dir)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return err
		}
		destPath := filepath.Join(destDir, path.File)
		log.Debugf("creating %s", destPath)
		f, err := os.Create(destPath)
		if err != nil {
			return err
		}
		w, closeFn = f, f.Close
	}
	defer closeFn()

	if outsourcedPath, ok := dvs.OutsourcedPath(inputPath, ext); ok {
		log.Infof("found outsourced payload %s", outsourcedPath)
		src, err := os.Open(outsourcedPath)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	}

	log.Info("no outsourced payload found, looking for embedded FileContentStream")
	object, err := c.FindChildByName("FileContentStream")
	if err != nil {
		return err
	}
	if object == nil {
		return errors.New("dvsrestore: neither an embedded FileContentStream nor an outsourced payload file could be found")
	}
	return c.DumpStream(object, w)
}
