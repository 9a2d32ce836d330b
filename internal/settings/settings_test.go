package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/catalogconfig"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/settings"
	"github.com/devcat-io/devcat/internal/testutil"
)

// isolate points HOME and the working directory at empty temp dirs and clears
// the catalog environment.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{constants.EnvVarCatalogURL, constants.EnvVarDefaultCatalogURL, constants.EnvVarMinCatalogVersion} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	t.Chdir(t.TempDir())
	return home
}

func TestNew_BuiltInDefaults(t *testing.T) {
	isolate(t)

	s, err := settings.New(testutil.NewTestLogger(), viper.New())
	require.NoError(t, err)

	assert.False(t, s.Catalog.HasOverride())
	assert.Empty(t, s.OverrideSource)
	assert.Equal(t, settings.SourceBuiltIn, s.DefaultSource)
	assert.Equal(t, constants.DefaultCatalogURL, s.EffectiveDefault())
	assert.Equal(t, constants.DefaultMinCatalogVersion, s.EffectiveMinVersion())
	assert.True(t, s.IsDefaultCatalog())
}

func TestNew_Precedence(t *testing.T) {
	isolate(t)
	require.NoError(t, catalogconfig.Save(&catalogconfig.Config{
		DefaultCatalog:    "https://github.com/config/catalog.git",
		MinCatalogVersion: "2.0.0",
	}))

	t.Run("config file beats built-in", func(t *testing.T) {
		s, err := settings.New(testutil.NewTestLogger(), viper.New())
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/config/catalog.git", s.Catalog.Default)
		assert.Equal(t, settings.SourceConfig, s.DefaultSource)
		assert.Equal(t, "2.0.0", s.Catalog.MinVersion)
		assert.Equal(t, settings.SourceConfig, s.MinVersionSource)
	})

	t.Run("default env beats config file", func(t *testing.T) {
		t.Setenv(constants.EnvVarDefaultCatalogURL, "https://github.com/env-default/catalog.git")
		t.Setenv(constants.EnvVarMinCatalogVersion, "3.0.0")

		s, err := settings.New(testutil.NewTestLogger(), viper.New())
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/env-default/catalog.git", s.Catalog.Default)
		assert.Equal(t, settings.SourceEnv, s.DefaultSource)
		assert.Equal(t, "3.0.0", s.Catalog.MinVersion)
		assert.False(t, s.Catalog.HasOverride())
	})

	t.Run("override env beats default", func(t *testing.T) {
		t.Setenv(constants.EnvVarCatalogURL, "https://github.com/override/catalog.git@main")

		s, err := settings.New(testutil.NewTestLogger(), viper.New())
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/override/catalog.git@main", s.Catalog.Override)
		assert.Equal(t, settings.SourceEnv, s.OverrideSource)
		assert.False(t, s.IsDefaultCatalog())
	})

	t.Run("flag beats everything", func(t *testing.T) {
		t.Setenv(constants.EnvVarCatalogURL, "https://github.com/override/catalog.git")

		v := viper.New()
		v.Set(settings.Flags.Catalog.Name, "https://github.com/config/catalog.git@1.0.0")
		s, err := settings.New(testutil.NewTestLogger(), v)
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/config/catalog.git@1.0.0", s.Catalog.Override)
		assert.Equal(t, settings.SourceFlag, s.OverrideSource)
		assert.True(t, s.IsDefaultCatalog(), "same repository as the configured default")
	})
}

func TestNew_IgnoresUnprefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG", "https://github.com/somebody/other.git")
	t.Setenv("COLLECTION", "python")

	v := viper.New()
	s, err := settings.New(testutil.NewTestLogger(), v)
	require.NoError(t, err)

	assert.False(t, s.Catalog.HasOverride())
	assert.Empty(t, s.OverrideSource)
	assert.Empty(t, v.GetString(settings.Flags.Collection.Name))
}

func TestNew_InvalidConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".devcat")
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n  - ["), 0600))

	_, err := settings.New(testutil.NewTestLogger(), viper.New())
	assert.ErrorContains(t, err, "failed to load catalog config")
}

func TestNew_DotEnvFile(t *testing.T) {
	isolate(t)
	t.Cleanup(func() { os.Unsetenv(constants.EnvVarCatalogURL) })

	envFile := filepath.Join(t.TempDir(), "custom.env")
	require.NoError(t, os.WriteFile(envFile, []byte(constants.EnvVarCatalogURL+"=git@github.com:dotenv/catalog.git\n"), 0600))

	v := viper.New()
	v.Set(settings.Flags.CliEnvFile.Name, envFile)
	s, err := settings.New(testutil.NewTestLogger(), v)
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:dotenv/catalog.git", s.Catalog.Override)
}

func TestLoadEnv_WalksUpToParent(t *testing.T) {
	parentDir := t.TempDir()
	childDir := filepath.Join(parentDir, "project", "nested")
	require.NoError(t, os.MkdirAll(childDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(parentDir, constants.DefaultEnvFileName), []byte("DEVCAT_TEST_VAR=from_parent\n"), 0600))

	t.Setenv("DEVCAT_TEST_VAR", "")
	os.Unsetenv("DEVCAT_TEST_VAR")

	t.Chdir(childDir)

	require.NoError(t, settings.LoadEnv(""))
	assert.Equal(t, "from_parent", os.Getenv("DEVCAT_TEST_VAR"))
}

func TestLoadEnv_NoFileAnywhere(t *testing.T) {
	t.Chdir(t.TempDir())
	err := settings.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "not found in any parent directory")
}
