package catalogcheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/report"
	"github.com/devcat-io/devcat/internal/validation"
	"github.com/devcat-io/devcat/internal/validation/files"
	"github.com/devcat-io/devcat/internal/versions"
)

// Checker validates individual collections. The zero value is not usable; use NewChecker.
type Checker struct {
	validator *validation.Validator
}

func NewChecker() (*Checker, error) {
	v, err := validation.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}
	return &Checker{validator: v}, nil
}

// CheckCollection runs every per-collection rule. Each violated rule yields
// its own finding located at the collection's catalog-relative path.
func (c *Checker) CheckCollection(entry catalogrepo.CollectionEntry, commonAssetsPath string) []report.Finding {
	var findings []report.Finding
	add := func(format string, args ...any) {
		findings = append(findings, report.Collection(entry.RelPath, format, args...))
	}

	if err := c.validator.Struct(entry); err != nil {
		for _, ve := range c.validator.ParseValidationErrors(err) {
			add("%s: %s", constants.CatalogEntryFileName, ve.Detail)
		}
	}

	if dirName := filepath.Base(entry.Path); entry.Name != dirName {
		add("name %q does not match directory name %q", entry.Name, dirName)
	}

	for _, msg := range checkDevcontainer(filepath.Join(entry.Path, constants.DevcontainerFileName)) {
		add("%s: %s", constants.DevcontainerFileName, msg)
	}

	if msg := checkVersionFile(filepath.Join(entry.Path, constants.VersionFileName)); msg != "" {
		add("%s: %s", constants.VersionFileName, msg)
	}

	conflicts, err := sharedNameConflicts(entry.Path, commonAssetsPath)
	if err != nil {
		add("cannot compare with %s: %v", constants.CommonAssetsDir, err)
	}
	for _, name := range conflicts {
		add("%q also exists at the top level of %s/ and would be overwritten on install", name, constants.CommonAssetsDir)
	}

	return findings
}

func checkDevcontainer(path string) []string {
	doc, err := files.ReadJSONCObject(path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{"file is missing"}
	}
	if err != nil {
		return []string{fmt.Sprintf("invalid JSON: %v", err)}
	}

	var problems []string

	name, _ := doc[constants.ContainerNameField].(string)
	if strings.TrimSpace(name) == "" {
		problems = append(problems, fmt.Sprintf("%q must be a non-empty string", constants.ContainerNameField))
	}

	hasSource := false
	for _, field := range constants.ContainerSourceFields {
		if v, ok := doc[field]; ok && v != nil {
			hasSource = true
			break
		}
	}
	if !hasSource {
		problems = append(problems, fmt.Sprintf("must define one of %s", strings.Join(constants.ContainerSourceFields, ", ")))
	}

	command := postCreateCommandText(doc[constants.PostCreateCommandField])
	if !referencesEntryPoint(command) {
		problems = append(problems, fmt.Sprintf("%s must call %s", constants.PostCreateCommandField,
			strings.Join(constants.PostCreateEntryPoints, " or ")))
	}

	return problems
}

// postCreateCommandText flattens the string, array and object forms of a
// devcontainer lifecycle command into one searchable string.
func postCreateCommandText(v any) string {
	switch cmd := v.(type) {
	case string:
		return cmd
	case []any:
		parts := make([]string, 0, len(cmd))
		for _, p := range cmd {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]any:
		keys := make([]string, 0, len(cmd))
		for k := range cmd {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(cmd))
		for _, k := range keys {
			parts = append(parts, postCreateCommandText(cmd[k]))
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func referencesEntryPoint(command string) bool {
	for _, entryPoint := range constants.PostCreateEntryPoints {
		if strings.Contains(command, entryPoint) {
			return true
		}
	}
	return false
}

func checkVersionFile(path string) string {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "file is missing"
	}
	if err != nil {
		return fmt.Sprintf("cannot read: %v", err)
	}
	if _, err := versions.ParseRelease(strings.TrimSpace(string(data))); err != nil {
		return err.Error()
	}
	return ""
}

// sharedNameConflicts lists the top-level names present both in the collection
// and in the shared assets, sorted.
func sharedNameConflicts(collectionPath, commonAssetsPath string) ([]string, error) {
	shared, err := os.ReadDir(commonAssetsPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sharedNames := make(map[string]struct{}, len(shared))
	for _, e := range shared {
		sharedNames[e.Name()] = struct{}{}
	}

	own, err := os.ReadDir(collectionPath)
	if err != nil {
		return nil, err
	}

	var conflicts []string
	for _, e := range own {
		if _, ok := sharedNames[e.Name()]; ok {
			conflicts = append(conflicts, e.Name())
		}
	}
	return conflicts, nil
}
