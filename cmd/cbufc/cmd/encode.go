package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/internal/codec"
	"github.com/verdant-robotics/cbuf/internal/util/log"
)

var encodeCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "encode <file.cbuf> <type> <message.json>",
	Short: "serialize a JSON message body against a named struct and write the framed bytes to stdout",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, typeName, jsonPath := args[0], args[1], args[2]
		ctx := log.WithFile(cmd.Context(), schemaPath, "type", typeName, "invocation", invocationTag())

		index, _, err := loadIndex(ctx, schemaPath)
		checkErr(err)

		raw, err := os.ReadFile(jsonPath)
		checkErr(err)

		var body struct {
			Timestamp float64        `json:"timestamp"`
			Fields    map[string]any `json:"fields"`
		}
		checkErr(json.Unmarshal(raw, &body))

		msg := &codec.Message{
			TypeName:  typeName,
			Timestamp: body.Timestamp,
			Fields:    normalizeStructArrays(body.Fields).(map[string]any),
		}

		buf, err := codec.SerializeMessage(index, msg)
		checkErr(err)

		_, err = cmd.OutOrStdout().Write(buf)
		checkErr(err)
	},
}

// normalizeStructArrays walks a JSON-decoded tree and rewrites every
// []any whose elements are all map[string]any into a []map[string]any,
// matching the array-of-struct convention codec.Message.Fields expects.
// encoding/json has no way to target that conversion during Unmarshal
// itself, so it happens once here instead.
func normalizeStructArrays(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = normalizeStructArrays(e)
		}
		return out
	case []any:
		structs := make([]map[string]any, 0, len(val))
		allMaps := len(val) > 0
		for _, e := range val {
			m, ok := e.(map[string]any)
			if !ok {
				allMaps = false
				break
			}
			structs = append(structs, normalizeStructArrays(m).(map[string]any))
		}
		if allMaps {
			return structs
		}
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalizeStructArrays(e)
		}
		return out
	default:
		return v
	}
}

func init() { //nolint:gochecknoinits
	rootCmd.AddCommand(encodeCmd)
}
