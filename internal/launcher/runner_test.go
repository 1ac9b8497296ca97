//go:build !windows

package launcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installFakeLauncher puts an executable script named name at the front of PATH
func installFakeLauncher(t *testing.T, name, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExecRunner_PassesArgsAndEnv(t *testing.T) {
	installFakeLauncher(t, "fake-tw", `printf '%s\n' "$@"; echo "token=$TOWER_ACCESS_TOKEN"`)

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stdout}

	args := DefaultSettings().Args()
	err := r.Run(context.Background(), "fake-tw", args, []string{"TOWER_ACCESS_TOKEN=abc"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, len(args)+1)
	assert.Equal(t, args, lines[:len(args)])
	assert.Equal(t, "token=abc", lines[len(args)])
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	installFakeLauncher(t, "failing-tw", "echo boom >&2; exit 3\n")

	var stderr bytes.Buffer
	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &stderr}

	err := r.Run(context.Background(), "failing-tw", nil, nil)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, stderr.String(), "boom")
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := &ExecRunner{}

	err := r.Run(context.Background(), "definitely-not-a-real-launcher-binary", nil, nil)
	assert.ErrorIs(t, err, errs.ErrLauncherNotFound)
}
