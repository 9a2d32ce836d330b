package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/validation/files"
)

func TestReadJSONCObject(t *testing.T) {
	dir := t.TempDir()

	t.Run("accepts comments and trailing commas", func(t *testing.T) {
		path := filepath.Join(dir, "devcontainer.json")
		content := `{
			// the container name
			"name": "java-backend",
			/* block comment */
			"image": "mcr.microsoft.com/devcontainers/java:21",
			"features": {"ghcr.io/devcontainers/features/aws-cli:1": {},},
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		object, err := files.ReadJSONCObject(path)
		require.NoError(t, err)
		assert.Equal(t, "java-backend", object["name"])
		assert.Contains(t, object, "image")
	})

	t.Run("rejects arrays", func(t *testing.T) {
		path := filepath.Join(dir, "array.json")
		require.NoError(t, os.WriteFile(path, []byte(`["a"]`), 0600))

		_, err := files.ReadJSONCObject(path)
		require.Error(t, err)
	})

	t.Run("rejects null", func(t *testing.T) {
		path := filepath.Join(dir, "null.json")
		require.NoError(t, os.WriteFile(path, []byte(`null`), 0600))

		_, err := files.ReadJSONCObject(path)
		require.Error(t, err)
	})

	t.Run("rejects truncated documents", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": "x"`), 0600))

		_, err := files.ReadJSONCObject(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := files.ReadJSONCObject(filepath.Join(dir, "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
