package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/internal/util/log"
)

var verbose bool //nolint:gochecknoglobals

var rootCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "cbufc",
	Short: "cbufc inspects and round-trips cbuf schema files",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(verbose)
	},
}

// Execute runs the command tree, exiting nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bailf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func checkErr(err error) {
	if err != nil {
		bailf("error: %v", err)
	}
}

// invocationTag returns a short random tag used to group every log line
// emitted by a single command invocation, independent of which file or
// struct it concerns.
func invocationTag() string {
	return uuid.New().String()[:8]
}

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level trace output")
}
