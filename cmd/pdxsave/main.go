// Command pdxsave parses Victoria 2 save files and extracts economic
// data as JSON and CSV.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "pdxsave",
		Short: "Victoria 2 save file parser and economy extractor",
		Long: "pdxsave parses Paradox-script save files into a queryable tree and\n" +
			"extracts world market, country and population economics from them.",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(dumpCmd())
	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(countriesCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
