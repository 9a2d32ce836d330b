package catalogcheck

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/report"
)

// CheckCatalog validates the whole catalog rooted at root. Findings are
// ordered structure, discovery, per collection (in discovery order), then
// cross-collection. The error is only for failures that prevent scanning.
func (c *Checker) CheckCatalog(logger *zerolog.Logger, root string) (*report.Report, error) {
	r := &report.Report{}

	r.Add(CheckStructure(root)...)

	discovered, err := catalogrepo.Discover(logger, root)
	if err != nil {
		return nil, err
	}
	r.Add(discovered.Findings...)
	r.CollectionCount = len(discovered.Collections)

	commonAssets := filepath.Join(root, constants.CommonAssetsDir)
	for _, entry := range discovered.Collections {
		findings := c.CheckCollection(entry, commonAssets)
		logger.Debug().Object("collection", entry).Int("findings", len(findings)).Msg("Checked collection")
		r.Add(findings...)
	}

	r.Add(CheckUniqueNames(discovered.Collections)...)

	for _, f := range r.Findings {
		logger.Debug().Object("finding", f).Msg("Validation finding")
	}
	return r, nil
}

// CheckUniqueNames reports every repeated collection name. A name used k
// times yields k-1 findings, each pointing back at the first occurrence.
func CheckUniqueNames(entries []catalogrepo.CollectionEntry) []report.Finding {
	var findings []report.Finding
	first := make(map[string]string, len(entries))
	for _, e := range entries {
		if firstPath, ok := first[e.Name]; ok {
			findings = append(findings, report.Catalog(e.RelPath,
				"collection name %q is already used by %s", e.Name, firstPath))
			continue
		}
		first[e.Name] = e.RelPath
	}
	return findings
}
