// Package merge writes a selected collection and the shared assets into a project.
package merge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
)

// Plan describes one install. It is consumed by a single Merge call.
type Plan struct {
	Collection       catalogrepo.CollectionEntry
	CommonAssetsPath string
	TargetPath       string
	CatalogURL       string
}

type Merger struct {
	logger *zerolog.Logger
}

func NewMerger(logger *zerolog.Logger) *Merger {
	return &Merger{logger: logger}
}

// Merge copies the collection, then the shared assets on top of it (shared
// files win), records the catalog URL in the copied catalog-entry.json and
// finally drops template-only files. Running it again with the same plan
// produces the same bytes.
func (m *Merger) Merge(plan Plan) error {
	if plan.TargetPath == "" {
		return errors.New("merge target path is empty")
	}

	m.logger.Debug().Str("collection", plan.Collection.Name).Str("target", plan.TargetPath).Msg("Copying collection files")
	if err := m.copyTree(plan.Collection.Path, plan.TargetPath); err != nil {
		return fmt.Errorf("failed to copy collection %s: %w", plan.Collection.Name, err)
	}

	m.logger.Debug().Str("source", plan.CommonAssetsPath).Msg("Copying shared assets")
	if err := m.copyTree(plan.CommonAssetsPath, plan.TargetPath); err != nil {
		return fmt.Errorf("failed to copy %s: %w", constants.CommonAssetsDir, err)
	}

	entryPath := filepath.Join(plan.TargetPath, constants.CatalogEntryFileName)
	if err := SetCatalogURL(entryPath, plan.CatalogURL); err != nil {
		return err
	}

	for _, name := range constants.TemplateOnlyFiles {
		p := filepath.Join(plan.TargetPath, name)
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove template file %s: %w", name, err)
		}
	}

	return nil
}

// copyTree copies src into dst, overwriting same-named files and keeping permissions.
func (m *Merger) copyTree(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		targetPath := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetPath, err)
			}
			return os.Chmod(targetPath, info.Mode().Perm()|0o700)
		case info.Mode()&os.ModeSymlink != 0:
			return copySymlink(path, targetPath)
		case info.Mode().IsRegular():
			m.logger.Debug().Msgf("Copying file: %s -> %s", rel, targetPath)
			return copyFile(path, targetPath, info.Mode().Perm())
		default:
			m.logger.Debug().Msgf("Skipping special file %s", rel)
			return nil
		}
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if info, err := os.Lstat(dst); err == nil && !info.Mode().IsRegular() {
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("failed to replace %s: %w", dst, err)
		}
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0o600)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to write file %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile leaves the mode of an existing file untouched.
	return os.Chmod(dst, perm)
}

func copySymlink(src, dst string) error {
	link, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return os.Symlink(link, dst)
}

// SetCatalogURL adds or replaces the catalogURL field of a catalog-entry.json.
// Keys are written sorted so the output is stable, and the file is replaced
// atomically.
func SetCatalogURL(path, catalogURL string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", constants.CatalogEntryFileName, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", constants.CatalogEntryFileName, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc map[string]any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", constants.CatalogEntryFileName, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	doc[constants.CatalogURLField] = catalogURL

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode %s: %w", constants.CatalogEntryFileName, err)
	}
	out := buf.Bytes()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+constants.CatalogEntryFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
