package catalogrepo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/report"
)

// DiscoveryResult holds the collections that parsed and the findings for those that did not.
type DiscoveryResult struct {
	Collections []CollectionEntry
	Findings    []report.Finding
}

// SkippedDir is a directory under collections/ that could not be scanned.
type SkippedDir struct {
	Path string
	Err  error
}

// FindCandidates walks collectionsRoot and returns every directory that holds an
// entry-description file, in walk order. It does not descend into a collection
// once found. Subdirectories that cannot be read are skipped and returned
// separately; only a failure on collectionsRoot itself is an error. A missing
// root yields no candidates.
func FindCandidates(collectionsRoot string) ([]string, []SkippedDir, error) {
	if _, err := os.Stat(collectionsRoot); errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}

	var (
		candidates []string
		skipped    []SkippedDir
	)
	err := filepath.WalkDir(collectionsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == collectionsRoot {
				return err
			}
			skipped = append(skipped, SkippedDir{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() || path == collectionsRoot {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}

		entryPath := filepath.Join(path, constants.CatalogEntryFileName)
		if info, statErr := os.Stat(entryPath); statErr == nil && !info.IsDir() {
			candidates = append(candidates, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", collectionsRoot, err)
	}

	return candidates, skipped, nil
}

// ParseEntryFile decodes a catalog-entry.json. The document must be a single
// JSON object using only the permitted fields.
func ParseEntryFile(path string) (entryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entryFile{}, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var f entryFile
	if err := decoder.Decode(&f); err != nil {
		return entryFile{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return entryFile{}, fmt.Errorf("invalid %s: unexpected data after the JSON object", filepath.Base(path))
	}

	return f, nil
}

// LoadCollection parses the entry-description file of one collection directory.
func LoadCollection(catalogRoot, dir string) (CollectionEntry, error) {
	f, err := ParseEntryFile(filepath.Join(dir, constants.CatalogEntryFileName))
	if err != nil {
		return CollectionEntry{}, err
	}
	return newCollectionEntry(f, dir, RelativeTo(catalogRoot, dir)), nil
}

// Discover finds and parses every collection in the catalog. Parse failures
// are findings; only I/O failures while scanning are returned as errors.
func Discover(logger *zerolog.Logger, catalogRoot string) (*DiscoveryResult, error) {
	collectionsRoot := filepath.Join(catalogRoot, constants.CollectionsDir)

	candidates, skipped, err := FindCandidates(collectionsRoot)
	if err != nil {
		return nil, err
	}

	logger.Debug().Msgf("Found %d collection candidates under %s", len(candidates), constants.CollectionsDir)

	result := &DiscoveryResult{}
	for _, sd := range skipped {
		logger.Debug().Err(sd.Err).Msgf("Cannot scan %s", RelativeTo(catalogRoot, sd.Path))
		result.Findings = append(result.Findings, report.Collection(RelativeTo(catalogRoot, sd.Path), "cannot read directory: %v", sd.Err))
	}
	for _, dir := range candidates {
		entry, err := LoadCollection(catalogRoot, dir)
		if err != nil {
			logger.Debug().Err(err).Msgf("Skipping collection at %s", RelativeTo(catalogRoot, dir))
			result.Findings = append(result.Findings, report.Collection(RelativeTo(catalogRoot, dir), "%v", err))
			continue
		}
		result.Collections = append(result.Collections, entry)
	}

	SortCollections(result.Collections)
	return result, nil
}

// SortCollections orders entries by name, except that "default" always comes first.
// Entries sharing a name keep path order.
func SortCollections(entries []CollectionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		aDefault := a.Name == constants.DefaultCollectionName
		bDefault := b.Name == constants.DefaultCollectionName
		if aDefault != bDefault {
			return aDefault
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.RelPath < b.RelPath
	})
}

// FilterByTags keeps the entries carrying any of the tags. No tags means no filtering.
func FilterByTags(entries []CollectionEntry, tags []string) []CollectionEntry {
	if len(tags) == 0 {
		return entries
	}
	filtered := make([]CollectionEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasAnyTag(tags) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FindByName returns the first entry with the given name.
func FindByName(entries []CollectionEntry, name string) (CollectionEntry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return CollectionEntry{}, false
}

// RelativeTo renders path relative to root with forward slashes, for messages.
func RelativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
