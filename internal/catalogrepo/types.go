package catalogrepo

import (
	"sort"

	"github.com/rs/zerolog"
)

// entryFile is the on-disk shape of catalog-entry.json. It is decoded with
// unknown fields disallowed, so the permitted field set is enforced at parse time.
type entryFile struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	Maintainer    string   `json:"maintainer"`
	MinCLIVersion string   `json:"min_cli_version"`
}

// CollectionEntry describes one collection discovered in a checked-out catalog.
// The validate tags are checked by the collection validator, not at parse time.
type CollectionEntry struct {
	Name          string   `json:"name" validate:"collection_name" cli:"name"`
	Description   string   `json:"description" validate:"required,not_blank" cli:"description"`
	Tags          []string `json:"tags,omitempty" validate:"dive,tag_token" cli:"tags"`
	Maintainer    string   `json:"maintainer,omitempty" cli:"maintainer"`
	MinCLIVersion string   `json:"min_cli_version,omitempty" validate:"omitempty,semver_strict" cli:"min_cli_version"`

	// Path is the absolute collection directory inside the checkout.
	Path string `json:"-"`
	// RelPath is Path relative to the catalog root, slash separated.
	RelPath string `json:"path"`
}

// HasAnyTag reports whether the entry carries at least one of the given tags.
func (c CollectionEntry) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range c.Tags {
			if want == have {
				return true
			}
		}
	}
	return false
}

func (c CollectionEntry) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", c.Name)
	e.Str("path", c.RelPath)
	e.Strs("tags", c.Tags)
	if c.MinCLIVersion != "" {
		e.Str("min_cli_version", c.MinCLIVersion)
	}
}

func newCollectionEntry(f entryFile, path, relPath string) CollectionEntry {
	return CollectionEntry{
		Name:          f.Name,
		Description:   f.Description,
		Tags:          normalizeTags(f.Tags),
		Maintainer:    f.Maintainer,
		MinCLIVersion: f.MinCLIVersion,
		Path:          path,
		RelPath:       relPath,
	}
}

// normalizeTags treats tags as a set: duplicates dropped, output sorted.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
