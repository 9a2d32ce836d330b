package testutil

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/constants"
)

// CatalogFixture builds a catalog tree on disk. NewCatalogFixture starts from a
// complete, valid layout; tests then break or extend it.
type CatalogFixture struct {
	t    *testing.T
	Root string
}

// CollectionSpec describes a collection to write into a fixture.
type CollectionSpec struct {
	// Dir is the path below collections/; defaults to Name.
	Dir         string
	Name        string
	Description string
	Tags        []string
	Maintainer  string
	MinCLI      string
	Version     string
	// Extra files relative to the collection directory.
	Files map[string]string
}

func NewCatalogFixture(t *testing.T) *CatalogFixture {
	t.Helper()
	f := &CatalogFixture{t: t, Root: t.TempDir()}

	f.WriteFile(filepath.Join(constants.CommonAssetsDir, constants.FunctionsFileName), "#!/bin/sh\n", 0o755)
	f.WriteFile(filepath.Join(constants.CommonAssetsDir, constants.PostCreateWrapperFileName), "#!/bin/sh\n", 0o755)
	f.WriteFile(filepath.Join(constants.CommonAssetsDir, constants.ProjectSetupFileName), "#!/bin/sh\n", 0o755)
	f.WriteFile(filepath.Join(constants.CommonAssetsDir, constants.CommonReadmeFileName), "# Shared assets\n", 0o644)

	for _, toolkit := range []string{constants.MacOSToolkitDir, constants.WindowsToolkitDir} {
		dir := filepath.Join(constants.CommonAssetsDir, toolkit)
		f.WriteFile(filepath.Join(dir, constants.ToolkitReadmeFileName), "# Toolkit\n", 0o644)
		f.WriteFile(filepath.Join(dir, constants.ToolkitConfigTemplate), "Host *\n", 0o644)
		f.WriteFile(filepath.Join(dir, constants.ToolkitDaemonScriptName), "#!/bin/sh\n", 0o755)
	}

	f.WriteFile(filepath.Join(constants.CommonAssetsDir, constants.RootProjectDir, "settings.json"), "{}\n", 0o644)
	f.MkdirAll(constants.CollectionsDir)

	return f
}

// Path joins rel onto the fixture root.
func (f *CatalogFixture) Path(rel ...string) string {
	return filepath.Join(append([]string{f.Root}, rel...)...)
}

func (f *CatalogFixture) WriteFile(rel, content string, mode os.FileMode) {
	f.t.Helper()
	path := f.Path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), mode))
	require.NoError(f.t, os.Chmod(path, mode))
}

func (f *CatalogFixture) MkdirAll(rel string) {
	f.t.Helper()
	require.NoError(f.t, os.MkdirAll(f.Path(rel), 0o755))
}

func (f *CatalogFixture) Remove(rel string) {
	f.t.Helper()
	require.NoError(f.t, os.RemoveAll(f.Path(rel)))
}

// AddCollection writes a valid collection. Empty Description and Version get
// sensible defaults.
func (f *CatalogFixture) AddCollection(spec CollectionSpec) string {
	f.t.Helper()

	dir := spec.Dir
	if dir == "" {
		dir = spec.Name
	}
	rel := filepath.Join(constants.CollectionsDir, dir)

	description := spec.Description
	if description == "" {
		description = "The " + spec.Name + " collection"
	}
	entry := map[string]any{
		"name":        spec.Name,
		"description": description,
	}
	if spec.Tags != nil {
		entry["tags"] = spec.Tags
	}
	if spec.Maintainer != "" {
		entry["maintainer"] = spec.Maintainer
	}
	if spec.MinCLI != "" {
		entry["min_cli_version"] = spec.MinCLI
	}
	f.WriteJSON(filepath.Join(rel, constants.CatalogEntryFileName), entry)

	f.WriteJSON(filepath.Join(rel, constants.DevcontainerFileName), map[string]any{
		"name":              spec.Name,
		"image":             "mcr.microsoft.com/devcontainers/base:ubuntu",
		"postCreateCommand": "bash .devcontainer/" + constants.PostCreateWrapperFileName,
	})

	version := spec.Version
	if version == "" {
		version = "1.0.0"
	}
	f.WriteFile(filepath.Join(rel, constants.VersionFileName), version+"\n", 0o644)

	for name, content := range spec.Files {
		f.WriteFile(filepath.Join(rel, name), content, 0o644)
	}

	return rel
}

func (f *CatalogFixture) WriteJSON(rel string, v any) {
	f.t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(f.t, err)
	f.WriteFile(rel, string(data)+"\n", 0o644)
}

// RequireGit skips the test when no git binary is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}
}

// InitGitRepo commits everything under dir on branch main and creates the
// given tags on that commit. It returns a file:// URL for cloning.
func InitGitRepo(t *testing.T, dir string, tags ...string) string {
	t.Helper()
	RequireGit(t)

	runGit(t, dir, "init", "--quiet", "--initial-branch=main")
	CommitAll(t, dir, "catalog", tags...)

	return "file://" + filepath.ToSlash(dir)
}

// CommitAll records the current state of dir as a new commit, optionally tagged.
func CommitAll(t *testing.T, dir, message string, tags ...string) {
	t.Helper()
	runGit(t, dir, "add", "--all")
	runGit(t, dir, "commit", "--quiet", "--allow-empty", "-m", message)
	for _, tag := range tags {
		runGit(t, dir, "tag", tag)
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	base := []string{
		"-c", "user.name=devcat-test",
		"-c", "user.email=devcat-test@example.com",
		"-c", "commit.gpgsign=false",
		"-c", "tag.gpgsign=false",
	}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}
