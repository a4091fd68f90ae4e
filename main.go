package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pngstash",
		Short: "hide, read, and strip messages in png files",
		Long: `pngstash embeds arbitrary messages in png files as custom ancillary
chunks. Everything else in the file is left byte for byte untouched, so the
image still renders everywhere.

Chunk types are 4 ascii letters; the third must be uppercase. Example: ruSt`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		encodeCmd(),
		decodeCmd(),
		removeCmd(),
		printCmd(),
		checkCmd(),
		scanCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
