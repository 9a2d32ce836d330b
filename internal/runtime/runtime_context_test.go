package runtime_test

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/testutil"
)

func TestNewContext(t *testing.T) {
	ctx := runtime.NewContext(testutil.NewTestLogger(), viper.New(), "1.4.0")

	require.NotNil(t, ctx.Git)
	assert.IsType(t, &catalogrepo.GitCLI{}, ctx.Git)
	assert.Equal(t, "1.4.0", ctx.CLIVersion)
	assert.Nil(t, ctx.Settings)
}

func TestAttachSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ctx := runtime.NewContext(testutil.NewTestLogger(), viper.New(), "development")
	ctx.Viper.Set("catalog", "https://example.com/team/catalog.git@2.0.0")

	require.NoError(t, ctx.AttachSettings())
	require.NotNil(t, ctx.Settings)
	assert.Equal(t, "https://example.com/team/catalog.git@2.0.0", ctx.Settings.Catalog.Override)
}

func TestNewEngine(t *testing.T) {
	ctx := runtime.NewContext(testutil.NewTestLogger(), viper.New(), "development")
	ctx.TempDir = t.TempDir()

	e, err := ctx.NewEngine()
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestSetLogger_KeepsInjectedGit(t *testing.T) {
	ctx := runtime.NewContext(testutil.NewTestLogger(), viper.New(), "development")
	var fake catalogrepo.Git = fakeGit{}
	ctx.Git = fake

	ctx.SetLogger(testutil.NewTestLogger())
	assert.Equal(t, fake, ctx.Git)
}

type fakeGit struct{}

func (fakeGit) ListTags(context.Context, string) ([]string, error) { return nil, nil }

func (fakeGit) Clone(context.Context, string, string, string) error { return nil }
