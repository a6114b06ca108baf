package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

// printHashTable renders a column-aligned, colorized struct/hash table for
// "cbufc hash", header in bold, each hash value in cyan so it stands out
// against the qualified name and size columns.
func printHashTable(w io.Writer, rows [][3]string) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", bold.Sprint("STRUCT"), bold.Sprint("HASH"), bold.Sprint("SIZE"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row[0], cyan.Sprint(row[1]), row[2])
	}
	tw.Flush() //nolint:errcheck
}
