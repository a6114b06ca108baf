package util_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/verdant-robotics/cbuf/internal/util"
)

func TestOkeys(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	require.Equal(t, []string{"a", "b", "c"}, util.Okeys(m))
}

func TestHumanBytes(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1024 * 1024, "1 MB"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, util.HumanBytes(c.n))
	}
}

func TestWhen(t *testing.T) {
	require.Equal(t, "yes", util.When(true, "yes", "no"))
	require.Equal(t, "no", util.When(false, "yes", "no"))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, util.EnsureDirectoryExists(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	require.NoError(t, util.EnsureDirectoryExists(dir))
}

func TestMaybeWarn(t *testing.T) {
	require.NotPanics(t, func() {
		util.MaybeWarn(context.Background(), func() error { return errors.New("ignored") })
	})
}
