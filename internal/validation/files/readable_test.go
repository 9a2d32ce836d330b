package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/validation"
	"github.com/devcat-io/devcat/internal/validation/files"
)

func TestCheckReadable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "devcontainer.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	assert.NoError(t, files.CheckReadable(dir))
	assert.NoError(t, files.CheckReadable(file))
	assert.ErrorIs(t, files.CheckReadable(filepath.Join(dir, "missing")), os.ErrNotExist)

	t.Run("unreadable file", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		locked := filepath.Join(t.TempDir(), "locked.sh")
		require.NoError(t, os.WriteFile(locked, nil, 0o600))
		require.NoError(t, os.Chmod(locked, 0o300))
		assert.ErrorIs(t, files.CheckReadable(locked), os.ErrPermission)
	})
}

func TestIsReadable(t *testing.T) {
	v, err := validation.NewValidator()
	require.NoError(t, err)

	type Inputs struct {
		ProjectDir string `validate:"path_read" cli:"project directory"`
	}

	assert.NoError(t, v.Struct(Inputs{ProjectDir: t.TempDir()}))
	assert.ErrorContains(t, v.Struct(Inputs{ProjectDir: "no/such/project"}),
		"project directory must be a readable path: no/such/project")
}

func TestIsReadable_NonStringFieldPanics(t *testing.T) {
	v, err := validation.NewValidator()
	require.NoError(t, err)

	type Bad struct {
		Count int `validate:"path_read"`
	}
	assert.PanicsWithValue(t, "input field name is not a string: Count", func() {
		_ = v.Struct(Bad{Count: 1})
	})
}
