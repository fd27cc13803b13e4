package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"withefuck/internal/transcript"
)

// debugLogCmd prints a transcript with every control byte escaped, to inspect
// what the shell hook recorded.
var debugLogCmd = &cobra.Command{
	Use:    "debug-log [path]",
	Short:  "Print a transcript as a quoted string",
	Long:   "Prints the transcript at path (default: the latest one) as a Go-quoted string so escape sequences are visible.",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE:   runDebugLog,
}

func runDebugLog(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		p, err := transcript.LatestLogPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strconv.Quote(strings.ToValidUTF8(string(data), "\uFFFD")))
	return nil
}
