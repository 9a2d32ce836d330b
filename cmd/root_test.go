package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/cmd/validate"
	"github.com/devcat-io/devcat/internal/testutil"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	names := map[string]*cobra.Command{}
	for _, c := range root.Commands() {
		names[c.Name()] = c
	}
	for _, want := range []string{"list", "install", "validate", "catalog", "version"} {
		assert.Contains(t, names, want)
	}
	assert.Equal(t, "collections", names["install"].GroupID)
	assert.Equal(t, "catalogs", names["validate"].GroupID)

	for _, sub := range []string{"show", "set-default", "reset"} {
		found, _, err := root.Find([]string{"catalog", sub})
		require.NoError(t, err)
		assert.Equal(t, sub, found.Name())
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := executeRoot(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Collections:")
	assert.Contains(t, out, "Catalogs:")
	assert.Contains(t, out, "$ devcat install")
}

func TestRootCommand_Version(t *testing.T) {
	out, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "devcat ")
}

func TestRootCommand_ValidateDirectory(t *testing.T) {
	fixture := testutil.NewCatalogFixture(t)
	fixture.AddCollection(testutil.CollectionSpec{Name: "default"})

	out, err := executeRoot(t, "validate", fixture.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is valid")

	fixture.Remove("common-assets/macos-ssh-toolkit/README.md")
	_, err = executeRoot(t, "validate", fixture.Root, "--json")
	assert.ErrorIs(t, err, validate.ErrFindings)
}

func TestRootCommand_InstallCollectionNeedsCatalog(t *testing.T) {
	t.Setenv("DEVCAT_CATALOG_URL", "")
	_, err := executeRoot(t, "install", "--collection", "python", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "an explicit catalog is required")
}

func TestIsLoadSettings(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"list", true},
		{"install", true},
		{"validate", true},
		{"show", true},
		{"set-default", true},
		{"version", false},
		{"reset", false},
		{"help", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLoadSettings(&cobra.Command{Use: tt.name}))
		})
	}
}
