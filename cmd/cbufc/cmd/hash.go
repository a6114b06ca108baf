package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/internal/codec"
	"github.com/verdant-robotics/cbuf/internal/schema"
	"github.com/verdant-robotics/cbuf/internal/util"
	"github.com/verdant-robotics/cbuf/internal/util/log"
)

var hashCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "hash <file.cbuf>",
	Short: "print every struct's qualified name and wire hash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.WithFile(cmd.Context(), args[0], "invocation", invocationTag())
		index, entities, err := loadIndex(ctx, args[0])
		checkErr(err)

		rows := make([][3]string, 0, len(entities))
		for _, e := range entities {
			if e.IsEnum {
				continue
			}
			size, err := structSize(index, e)
			if err != nil {
				log.Warnf(ctx, "could not size %s: %v", e.QualifiedName, err)
			}
			sizeCol := util.When(err != nil, "?", util.HumanBytes(uint64(size)))
			rows = append(rows, [3]string{e.QualifiedName, fmt.Sprintf("0x%016X", e.HashValue), sizeCol})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
		printHashTable(cmd.OutOrStdout(), rows)
	},
}

func structSize(index *schema.Index, e *schema.Entity) (int, error) {
	body, err := codec.NakedSize(index, e, nil)
	if err != nil {
		return 0, err
	}
	if e.IsNakedStruct {
		return body, nil
	}
	return codec.HeaderSize + body, nil
}

func init() { //nolint:gochecknoinits
	rootCmd.AddCommand(hashCmd)
}
