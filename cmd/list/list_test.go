package list

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/settings"
	"github.com/devcat-io/devcat/internal/testutil"
)

const testCatalogURL = "https://git.example.com/acme/catalog.git"

func newTestContext(t *testing.T) (*runtime.Context, *testutil.CatalogFixture) {
	t.Helper()
	fixture := testutil.NewCatalogFixture(t)
	ctx := &runtime.Context{
		Logger:     testutil.NewTestLogger(),
		Viper:      viper.New(),
		Git:        testutil.NewDirGit(fixture.Root, "1.0.0"),
		CLIVersion: "1.0.0",
		TempDir:    t.TempDir(),
		Settings: &settings.Settings{
			Catalog:        catalogrepo.Selection{Override: testCatalogURL + "@main"},
			OverrideSource: settings.SourceFlag,
		},
	}
	return ctx, fixture
}

func addCollections(fixture *testutil.CatalogFixture) {
	fixture.AddCollection(testutil.CollectionSpec{Name: "python", Tags: []string{"python", "data"}, Maintainer: "data-team"})
	fixture.AddCollection(testutil.CollectionSpec{Name: "default", Description: "General purpose toolbox"})
	fixture.AddCollection(testutil.CollectionSpec{Name: "java-backend", Tags: []string{"java", "backend"}})
}

func runList(t *testing.T, ctx *runtime.Context, inputs Inputs) (string, error) {
	t.Helper()
	var out bytes.Buffer
	h := newHandler(ctx, &out)
	h.inputs = inputs
	require.NoError(t, h.ValidateInputs())
	err := h.Execute(context.Background())
	return out.String(), err
}

func TestResolveInputs(t *testing.T) {
	ctx, _ := newTestContext(t)
	v := viper.New()
	v.Set(settings.Flags.Tag.Name, []string{" Python ", "", "data"})
	v.Set(settings.Flags.JSON.Name, true)

	inputs, err := newHandler(ctx, &bytes.Buffer{}).ResolveInputs(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "data"}, inputs.Tags)
	assert.True(t, inputs.JSON)
}

func TestValidateInputs(t *testing.T) {
	ctx, _ := newTestContext(t)

	tests := []struct {
		name    string
		tags    []string
		wantErr string
	}{
		{name: "no tags", tags: nil},
		{name: "valid tags", tags: []string{"python", "machine-learning"}},
		{name: "underscore", tags: []string{"machine_learning"}, wantErr: "--tag[0] must be lowercase dash-separated words"},
		{name: "trailing dash", tags: []string{"ok", "bad-"}, wantErr: "--tag[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(ctx, &bytes.Buffer{})
			h.inputs = Inputs{Tags: tt.tags}
			err := h.ValidateInputs()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExecute_Table(t *testing.T) {
	ctx, fixture := newTestContext(t)
	addCollections(fixture)

	out, err := runList(t, ctx, Inputs{})
	require.NoError(t, err)

	assert.Contains(t, out, testCatalogURL+"@main")
	assert.Contains(t, out, "General purpose toolbox")
	assert.Contains(t, out, "data-team")
	assert.Contains(t, out, "devcat install --collection <name>")

	// default first, then by name
	iDefault := bytes.Index([]byte(out), []byte("default"))
	iJava := bytes.Index([]byte(out), []byte("java-backend"))
	iPython := bytes.Index([]byte(out), []byte("python"))
	assert.Less(t, iDefault, iJava)
	assert.Less(t, iJava, iPython)
}

func TestExecute_JSON(t *testing.T) {
	ctx, fixture := newTestContext(t)
	addCollections(fixture)

	out, err := runList(t, ctx, Inputs{JSON: true, Tags: []string{"data", "backend"}})
	require.NoError(t, err)

	var decoded struct {
		Catalog     string   `json:"catalog"`
		Tags        []string `json:"tags"`
		Total       int      `json:"total"`
		Collections []struct {
			Name string   `json:"name"`
			Path string   `json:"path"`
			Tags []string `json:"tags"`
		} `json:"collections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, testCatalogURL+"@main", decoded.Catalog)
	assert.Equal(t, []string{"data", "backend"}, decoded.Tags)
	assert.Equal(t, 3, decoded.Total)
	require.Len(t, decoded.Collections, 2)
	assert.Equal(t, "java-backend", decoded.Collections[0].Name)
	assert.Equal(t, "collections/java-backend", decoded.Collections[0].Path)
	assert.Equal(t, "python", decoded.Collections[1].Name)
}

func TestExecute_NoTagMatchIsNotAnError(t *testing.T) {
	ctx, fixture := newTestContext(t)
	addCollections(fixture)

	out, err := runList(t, ctx, Inputs{Tags: []string{"rust"}})
	require.NoError(t, err)
	assert.Contains(t, out, "No collections match tags rust (3 collections in catalog)")

	out, err = runList(t, ctx, Inputs{Tags: []string{"rust"}, JSON: true})
	require.NoError(t, err)
	assert.Contains(t, out, `"collections": []`)
}

func TestExecute_EmptyCatalog(t *testing.T) {
	ctx, _ := newTestContext(t)

	out, err := runList(t, ctx, Inputs{})
	require.NoError(t, err)
	assert.Contains(t, out, "The catalog has no collections")
}

func TestExecute_FetchFailure(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Git.(*testutil.DirGit).CloneErr = assert.AnError

	_, err := runList(t, ctx, Inputs{})
	require.Error(t, err)

	var fetchErr *catalogrepo.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
