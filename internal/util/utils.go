package util

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/verdant-robotics/cbuf/internal/util/log"
)

/*
Small helpers shared by the cbufc command tree.
*/

////////////////////////////////////////////////////////////////////////////////

// Okeys returns the keys of a map in sorted order. cbufc uses this to print a
// decoded message's fields in a stable order rather than Go's randomized map
// iteration order.
func Okeys[T cmp.Ordered, K any](m map[T]K) []T {
	keys := make([]T, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// HumanBytes returns a human-readable representation of a number of bytes,
// used by "cbufc hash" when reporting the size of each struct found in a
// schema file.
func HumanBytes(n uint64) string {
	suffix := []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	i := 0
	for n >= 1024 && i < len(suffix)-1 {
		n /= 1024
		i++
	}
	return strconv.FormatUint(n, 10) + " " + suffix[i]
}

// When returns a if cond is true, otherwise b.
func When[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// EnsureDirectoryExists creates dir (and any missing parents) if it does not
// already exist, used by "cbufc decode --out-dir" before writing decoded
// messages out as individual files.
func EnsureDirectoryExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to make directory: %w", err)
		}
	}
	return nil
}

// MaybeWarn logs a warning if f returns an error. It is intended to wrap
// deferred Close calls on the files cbufc opens for reading or writing,
// where a close failure is worth surfacing but should not alter the
// command's exit code.
func MaybeWarn(ctx context.Context, f func() error) {
	if err := f(); err != nil {
		log.Warnf(ctx, "warning: %v", err)
	}
}
