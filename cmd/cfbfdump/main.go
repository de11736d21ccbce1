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

// Command cfbfdump reads a Compound File Binary File Format file (also
// known as an OLE or Structured Storage file) and lists or dumps the
// streams it contains.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/stevemuller04/evrecovery/cfbf"
	"github.com/stevemuller04/evrecovery/internal/logger"
	"github.com/stevemuller04/evrecovery/internal/seekable"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cfbfdump: error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose int

	root := &cobra.Command{
		Use:   "cfbfdump",
		Short: "Reads a Compound File Binary File Format file and dumps its contents",
	}
	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase debug verbosity (repeatable)")

	root.AddCommand(newListCmd(&verbose))
	root.AddCommand(newDumpCmd(&verbose))
	return root
}

func newListCmd(verbose *int) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "Lists all files contained in the CFBF file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(input, logger.New(os.Stderr, logger.FromVerbosity(*verbose)))
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "a CFBF file; if omitted, read from stdin")
	return cmd
}

func newDumpCmd(verbose *int) *cobra.Command {
	var input, output string
	var id uint32
	cmd := &cobra.Command{
		Use:          "dump",
		Short:        "Dumps one stream from the CFBF file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(input, output, id, logger.New(os.Stderr, logger.FromVerbosity(*verbose)))
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "a CFBF file; if omitted, read from stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file; if omitted, write to stdout")
	cmd.Flags().Uint32Var(&id, "id", 0, "the directory id of the stream to dump")
	cmd.MarkFlagRequired("id")
	return cmd
}

func openInput(path string) (io.ReadSeeker, func() error, error) {
	if path == "" || path == "-" {
		rs, err := seekable.Slurp(os.Stdin)
		return rs, func() error { return nil }, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runList(input string, log *logger.Logger) error {
	rs, closeFn, err := openInput(input)
	if err != nil {
		return err
	}
	defer closeFn()

	log.Infof("reading CFBF header")
	c, err := cfbf.New(rs)
	if err != nil {
		return err
	}

	root, err := c.GetRootObject()
	if err != nil {
		return err
	}
	return listRecursive(c, root, "")
}

// listRecursive prints "<id> <path>" for object and its descendants in the
// same left/right/child order FindChildByName uses.
func listRecursive(c *cfbf.Container, object *cfbf.Object, prefix string) error {
	path := prefix
	if object.ObjectType != cfbf.RootStorage {
		path += "/" + object.Name
	}

	if object.ObjectType == cfbf.Storage || object.ObjectType == cfbf.RootStorage {
		fmt.Printf("%d %s/\n", object.ID, path)
	} else {
		fmt.Printf("%d %s\n", object.ID, path)
	}

	left, err := c.GetLeftSibling(object)
	if err != nil {
		return err
	}
	if left != nil {
		if err := listRecursive(c, left, prefix); err != nil {
			return err
		}
	}
	right, err := c.GetRightSibling(object)
	if err != nil {
		return err
	}
	if right != nil {
		if err := listRecursive(c, right, prefix); err != nil {
			return err
		}
	}
	child, err := c.GetFirstChild(object)
	if err != nil {
		return err
	}
	if child != nil {
		if err := listRecursive(c, child, path); err != nil {
			return err
		}
	}
	return nil
}

func runDump(input, output string, id uint32, log *logger.Logger) error {
	rs, closeFn, err := openInput(input)
	if err != nil {
		return err
	}
	defer closeFn()

	c, err := cfbf.New(rs)
	if err != nil {
		return err
	}

	object, err := c.GetObject(id)
	if err != nil {
		return err
	}
	log.Debugf("dumping object %d (%q, %d bytes)", object.ID, object.Name, object.StreamSize)

	var w io.Writer = os.Stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return c.DumpStream(object, w)
}
