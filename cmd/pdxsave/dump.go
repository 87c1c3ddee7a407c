package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdxtools/pdxsave"
	"github.com/pdxtools/pdxsave/save"
)

func dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <save-file>",
		Short: "Parse a save file and print its full tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lenient, _ := cmd.Flags().GetBool("lenient")
			return runDump(args[0], nil, lenient)
		},
	}
	cmd.Flags().Bool("lenient", false, "keep going past recoverable errors")
	return cmd
}

func sectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections <save-file> <key>...",
		Short: "Extract only the named top-level sections as JSON",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lenient, _ := cmd.Flags().GetBool("lenient")
			return runDump(args[0], args[1:], lenient)
		},
	}
	cmd.Flags().Bool("lenient", false, "keep going past recoverable errors")
	return cmd
}

func runDump(path string, keys []string, lenient bool) error {
	var opts []pdxsave.Option
	if lenient {
		opts = append(opts, pdxsave.Lenient())
	}

	var (
		doc *save.Document
		err error
	)
	if keys == nil {
		doc, err = pdxsave.ParseFile(path, opts...)
	} else {
		doc, err = pdxsave.SectionsFile(path, keys, opts...)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for _, d := range doc.Diagnostics() {
		log.Warn().Str("file", path).Msg(d.String())
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(nodeJSON(doc.Root()))
}
