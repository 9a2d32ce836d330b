package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/validation/files"
)

func TestCheckJSONFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "object", content: `{"name": "python", "tags": ["python"]}`},
		{name: "array", content: `["a", "b"]`},
		{name: "trailing newline", content: "{}\n"},
		{name: "truncated", content: `{"name": "python"`, wantErr: "unexpected EOF"},
		{name: "empty", content: "", wantErr: "file is empty"},
		{name: "two values", content: `{} {}`, wantErr: "unexpected data after the JSON value"},
		{name: "comments are not JSON", content: "// note\n{}", wantErr: "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog-entry.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			err := files.CheckJSONFile(path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("directory", func(t *testing.T) {
		assert.ErrorContains(t, files.CheckJSONFile(t.TempDir()), "is a directory")
	})
}
