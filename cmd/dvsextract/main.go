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

// Command dvsextract reads an Enterprise Vault archive file (.dvs) and
// extracts the archived CFBF payload.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/stevemuller04/evrecovery/dvs"
	"github.com/stevemuller04/evrecovery/internal/logger"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dvsextract: error: %s\n", err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var input, output string
	var verbose int

	cmd := &cobra.Command{
		Use:          "dvsextract",
		Short:        "Extracts the archived CFBF payload from an Enterprise Vault .dvs file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(input, output, logger.New(os.Stderr, logger.FromVerbosity(verbose)))
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "a .dvs file; if omitted, read from stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file; if omitted, write to stdout")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase debug verbosity (repeatable)")
	return cmd
}

func run(input, output string, log *logger.Logger) error {
	var r io.Reader = os.Stdin
	if input != "" && input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	var w io.Writer = os.Stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	log.Info("reading DVS envelope")
	env, err := dvs.NewEnvelope(r)
	if err != nil {
		return err
	}
	log.Debugf("payload id %d, length %d bytes", env.PayloadID, env.PayloadLength)

	log.Info("decompressing payload")
	return env.Decompress(w)
}
