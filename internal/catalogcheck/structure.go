// Package catalogcheck validates a checked-out catalog and reports every
// defect it finds as a finding instead of stopping at the first one.
package catalogcheck

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/report"
	"github.com/devcat-io/devcat/internal/validation/files"
)

type requiredFile struct {
	name       string
	executable bool
}

var sharedFiles = []requiredFile{
	{name: constants.FunctionsFileName, executable: true},
	{name: constants.PostCreateWrapperFileName, executable: true},
	{name: constants.ProjectSetupFileName, executable: true},
	{name: constants.CommonReadmeFileName},
}

var toolkitFiles = []requiredFile{
	{name: constants.ToolkitReadmeFileName},
	{name: constants.ToolkitConfigTemplate},
	{name: constants.ToolkitDaemonScriptName, executable: true},
}

var toolkitDirs = []string{constants.MacOSToolkitDir, constants.WindowsToolkitDir}

// CheckStructure verifies the catalog's top-level layout and shared assets.
// A missing directory is reported once; its expected contents are not.
func CheckStructure(root string) []report.Finding {
	var findings []report.Finding

	commonOK := checkDir(root, constants.CommonAssetsDir, &findings)
	checkDir(root, constants.CollectionsDir, &findings)
	if !commonOK {
		return findings
	}

	for _, f := range sharedFiles {
		checkFile(root, path.Join(constants.CommonAssetsDir, f.name), f.executable, &findings)
	}

	for _, toolkit := range toolkitDirs {
		rel := path.Join(constants.CommonAssetsDir, toolkit)
		if !checkDir(root, rel, &findings) {
			continue
		}
		for _, f := range toolkitFiles {
			checkFile(root, path.Join(rel, f.name), f.executable, &findings)
		}
	}

	findings = append(findings, checkRootProjectJSON(root)...)
	return findings
}

func checkDir(root, rel string, findings *[]report.Finding) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	switch {
	case errors.Is(err, os.ErrNotExist):
		*findings = append(*findings, report.Structure(rel, "required directory is missing"))
		return false
	case err != nil:
		*findings = append(*findings, report.Structure(rel, "cannot read directory: %v", err))
		return false
	case !info.IsDir():
		*findings = append(*findings, report.Structure(rel, "expected a directory, found a file"))
		return false
	}
	return true
}

func checkFile(root, rel string, executable bool, findings *[]report.Finding) {
	p := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
		*findings = append(*findings, report.Structure(rel, "required file is missing"))
		return
	case err != nil:
		*findings = append(*findings, report.Structure(rel, "cannot read file: %v", err))
		return
	case info.IsDir():
		*findings = append(*findings, report.Structure(rel, "expected a file, found a directory"))
		return
	}

	if executable {
		if err := files.CheckExecutable(p); err != nil {
			*findings = append(*findings, report.Structure(rel, "script must be executable (chmod +x), mode is %s", info.Mode().Perm()))
		}
	}
}

// checkRootProjectJSON parses every .json file below the root project assets.
// The directory itself is optional.
func checkRootProjectJSON(root string) []report.Finding {
	rootProject := filepath.Join(root, constants.CommonAssetsDir, constants.RootProjectDir)
	if _, err := os.Stat(rootProject); err != nil {
		return nil
	}

	var findings []report.Finding
	_ = filepath.WalkDir(rootProject, func(p string, d fs.DirEntry, err error) error {
		rel := catalogrepo.RelativeTo(root, p)
		if err != nil {
			findings = append(findings, report.Structure(rel, "cannot read: %v", err))
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".json") {
			return nil
		}
		if err := files.CheckJSONFile(p); err != nil {
			findings = append(findings, report.Structure(rel, "invalid JSON: %v", err))
		}
		return nil
	})
	return findings
}
