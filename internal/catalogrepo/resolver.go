package catalogrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/versions"
)

var ErrNoQualifyingTag = errors.New("no qualifying catalog release tag")

// Selection is what the environment says about which catalog to use.
type Selection struct {
	// Override is the highest-precedence locator (flag or DEVCAT_CATALOG_URL).
	Override string
	// Default is the configured default locator, used when Override is empty.
	// Empty means the built-in default catalog.
	Default string
	// MinVersion is the lowest release tag accepted when resolving the default catalog.
	MinVersion string
}

// HasOverride reports whether the caller named a catalog explicitly.
func (s Selection) HasOverride() bool {
	return strings.TrimSpace(s.Override) != ""
}

func (s Selection) defaultLocator() string {
	if d := strings.TrimSpace(s.Default); d != "" {
		return d
	}
	return constants.DefaultCatalogURL
}

func (s Selection) minVersion() string {
	if m := strings.TrimSpace(s.MinVersion); m != "" {
		return m
	}
	return constants.DefaultMinCatalogVersion
}

// Resolver turns a Selection into a concrete Locator.
type Resolver struct {
	logger *zerolog.Logger
	git    Git
}

func NewResolver(logger *zerolog.Logger, git Git) *Resolver {
	return &Resolver{
		logger: logger,
		git:    git,
	}
}

// Resolve picks the catalog locator. A pinned ref is always honoured. An
// unpinned default catalog is pinned to its highest release tag at or above
// the minimum version; any other unpinned catalog uses its default branch.
func (r *Resolver) Resolve(ctx context.Context, sel Selection) (Locator, error) {
	defaultLoc, defaultErr := ParseLocator(sel.defaultLocator())

	var loc Locator
	isDefault := false
	if sel.HasOverride() {
		parsed, err := ParseLocator(sel.Override)
		if err != nil {
			return Locator{}, err
		}
		loc = parsed
		isDefault = defaultErr == nil && parsed.CloneURL == defaultLoc.CloneURL
	} else {
		if defaultErr != nil {
			return Locator{}, fmt.Errorf("default catalog: %w", defaultErr)
		}
		loc = defaultLoc
		isDefault = true
	}

	if loc.HasRef() || !isDefault {
		r.logger.Debug().Str("url", loc.CloneURL).Str("ref", loc.Ref).Msg("Using catalog locator as given")
		return loc, nil
	}

	floor := sel.minVersion()
	r.logger.Debug().Str("url", loc.CloneURL).Str("min_version", floor).Msg("Resolving latest catalog release tag")

	tags, err := r.git.ListTags(ctx, loc.CloneURL)
	if err != nil {
		return Locator{}, &FetchError{URL: loc.CloneURL, Err: err}
	}

	tag, ok, err := versions.LatestRelease(tags, floor)
	if err != nil {
		return Locator{}, err
	}
	if !ok {
		return Locator{}, fmt.Errorf("%w: %s has no MAJOR.MINOR.PATCH tag >= %s (found %d tags); pin a ref with %s@<ref> or lower %s",
			ErrNoQualifyingTag, loc.CloneURL, floor, len(tags), loc.CloneURL, constants.EnvVarMinCatalogVersion)
	}

	r.logger.Debug().Str("tag", tag).Msg("Resolved catalog release")
	loc.Ref = tag
	return loc, nil
}
