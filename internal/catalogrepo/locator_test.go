package catalogrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantURL string
		wantRef string
	}{
		{"https no ref", "https://github.com/org/catalog.git", "https://github.com/org/catalog.git", ""},
		{"https with tag", "https://github.com/org/catalog.git@v2.0.0", "https://github.com/org/catalog.git", "v2.0.0"},
		{"https with branch containing slash", "https://github.com/org/catalog@feature/x", "https://github.com/org/catalog", "feature/x"},
		{"https with userinfo", "https://user@github.com/org/catalog.git", "https://user@github.com/org/catalog.git", ""},
		{"https with userinfo and ref", "https://user@github.com/org/catalog.git@main", "https://user@github.com/org/catalog.git", "main"},
		{"scp-like no ref", "git@github.com:org/catalog.git", "git@github.com:org/catalog.git", ""},
		{"scp-like with ref", "git@github.com:org/catalog.git@v2.0.0", "git@github.com:org/catalog.git", "v2.0.0"},
		{"ssh url", "ssh://git@github.com/org/catalog.git", "ssh://git@github.com/org/catalog.git", ""},
		{"ssh url with ref", "ssh://git@github.com/org/catalog.git@release-1", "ssh://git@github.com/org/catalog.git", "release-1"},
		{"file url with ref", "file:///tmp/catalog@1.2.3", "file:///tmp/catalog", "1.2.3"},
		{"surrounding whitespace", "  https://github.com/org/catalog.git  ", "https://github.com/org/catalog.git", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocator(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, loc.CloneURL)
			assert.Equal(t, tt.wantRef, loc.Ref)
			assert.Equal(t, tt.wantRef != "", loc.HasRef())
		})
	}
}

func TestParseLocator_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no scheme", "github.com/org/catalog"},
		{"unknown scheme", "ftp://example.com/catalog.git"},
		{"https without host", "https:///org/catalog.git"},
		{"trailing at", "https://github.com/org/catalog.git@"},
		{"plain word", "catalog"},
		{"contains space", "https://github.com/org/my catalog.git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocator(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLocator)
		})
	}
}

func TestLocator_String(t *testing.T) {
	assert.Equal(t, "https://h/o/r.git", Locator{CloneURL: "https://h/o/r.git"}.String())
	assert.Equal(t, "git@h:o/r.git@v1.0.0", Locator{CloneURL: "git@h:o/r.git", Ref: "v1.0.0"}.String())
}

func TestParseLocator_RoundTripsString(t *testing.T) {
	for _, s := range []string{
		"https://github.com/org/catalog.git@1.4.0",
		"git@github.com:org/catalog.git@main",
		"https://github.com/org/catalog.git",
	} {
		loc, err := ParseLocator(s)
		require.NoError(t, err)
		assert.Equal(t, s, loc.String())
	}
}
