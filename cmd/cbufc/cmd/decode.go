package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/internal/codec"
	"github.com/verdant-robotics/cbuf/internal/util"
	"github.com/verdant-robotics/cbuf/internal/util/log"
)

var decodeOutDir string //nolint:gochecknoglobals

var decodeCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "decode <file.cbuf> <bytes>",
	Short: "decode a framed message and print its field map as JSON",
	Long: "decode a framed message and print its field map as JSON. <bytes> is a path to the " +
		"encoded message, or \"-\" to read it from stdin. With --out-dir, the JSON is written to " +
		"<out-dir>/<type>.json instead of stdout.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, bytesPath := args[0], args[1]
		ctx := log.WithFile(cmd.Context(), schemaPath, "invocation", invocationTag())

		index, _, err := loadIndex(ctx, schemaPath)
		checkErr(err)

		buf, err := readBytesArg(bytesPath)
		checkErr(err)

		msg, err := codec.DeserializeMessage(index, buf, 0)
		checkErr(err)

		log.Debugf(ctx, "decoded %s (%d bytes), fields %v", msg.TypeName, msg.Size, util.Okeys(msg.Fields))

		out := struct {
			Type      string         `json:"type"`
			Timestamp float64        `json:"timestamp"`
			Fields    map[string]any `json:"fields"`
		}{msg.TypeName, msg.Timestamp, msg.Fields}

		if decodeOutDir != "" {
			checkErr(writeDecodedFile(ctx, decodeOutDir, msg.TypeName, out))
			return
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		checkErr(enc.Encode(out))
	},
}

// writeDecodedFile writes v as indented JSON to <dir>/<typeName>.json,
// creating dir if it does not already exist.
func writeDecodedFile(ctx context.Context, dir, typeName string, v any) error {
	if err := util.EnsureDirectoryExists(dir); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, typeName+".json"))
	if err != nil {
		return err
	}
	defer util.MaybeWarn(ctx, f.Close)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readBytesArg(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() { //nolint:gochecknoinits
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVar(&decodeOutDir, "out-dir", "", "write decoded JSON to <out-dir>/<type>.json instead of stdout")
}
