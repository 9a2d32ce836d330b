package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/validation/files"
)

func TestCheckExecutable(t *testing.T) {
	dir := t.TempDir()

	script := filepath.Join(dir, "setup.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.Chmod(script, 0o755))
	assert.NoError(t, files.CheckExecutable(script))

	plain := filepath.Join(dir, "plain.sh")
	require.NoError(t, os.WriteFile(plain, []byte("#!/bin/sh\n"), 0o644))
	require.NoError(t, os.Chmod(plain, 0o644))
	assert.ErrorContains(t, files.CheckExecutable(plain), "not executable")

	assert.Error(t, files.CheckExecutable(dir))
	assert.ErrorIs(t, files.CheckExecutable(filepath.Join(dir, "missing.sh")), os.ErrNotExist)
}
