// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	exodus "github.com/exodus-go/exodus"
)

func main() {
	infoCmd := flag.NewFlagSet("info", flag.ExitOnError)

	if len(os.Args) < 2 {
		showHelp()
	}

	switch os.Args[1] {
	case "info":
		infoCmd.Parse(os.Args[2:])
		if infoCmd.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "exoinfo info: missing path")
			os.Exit(1)
		}
		if err := printInfo(infoCmd.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, "exoinfo:", err)
			os.Exit(1)
		}
	default:
		showHelp()
	}
}

func printInfo(path string) error {
	f, err := exodus.Open(path, nil)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := f.InitParams()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "title\t%s\n", p.Title)
	fmt.Fprintf(w, "dimensions\t%d\n", p.NumDim)
	fmt.Fprintf(w, "nodes\t%d\n", p.NumNodes)
	fmt.Fprintf(w, "elements\t%d\n", p.NumElem)
	fmt.Fprintf(w, "elem blocks\t%d\n", p.NumElemBlock)
	fmt.Fprintf(w, "edge blocks\t%d\n", p.NumEdgeBlock)
	fmt.Fprintf(w, "face blocks\t%d\n", p.NumFaceBlock)
	fmt.Fprintf(w, "node sets\t%d\n", p.NumNodeSet)
	fmt.Fprintf(w, "side sets\t%d\n", p.NumSideSet)
	fmt.Fprintf(w, "elem sets\t%d\n", p.NumElemSet)

	if ids := f.AssemblyIDs(); len(ids) > 0 {
		fmt.Fprintf(w, "assemblies\t%d\n", len(ids))
	}
	if ids := f.BlobIDs(); len(ids) > 0 {
		fmt.Fprintf(w, "blobs\t%d\n", len(ids))
	}
	if times, err := f.Times(); err == nil && len(times) > 0 {
		fmt.Fprintf(w, "time steps\t%d\n", len(times))
	}
	return nil
}

func showHelp() {
	fmt.Print(
		`
exoinfo: summarize an Exodus II finite-element mesh file

Usage:
	exoinfo info <path>
`)
	os.Exit(1)
}
