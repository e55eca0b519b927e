package main

import (
	"fmt"
	"os"

	"github.com/novvoo/pdfnote/pkg/annot"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", annot.Classify(err), err)
		os.Exit(1)
	}
}
