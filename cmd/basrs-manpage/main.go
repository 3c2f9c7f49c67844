package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/fezjo/basrs/cmd/basrs"
	"github.com/fezjo/basrs/internal/version"
)

func main() {
	rootCmd := basrs.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "BASRS",
		Section: "1",
		Source:  "basrs " + version.Version,
		Manual:  "basrs manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
