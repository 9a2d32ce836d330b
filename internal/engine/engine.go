// Package engine runs the catalog pipeline: resolve a locator, fetch the
// catalog, then either validate it or install one collection from it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/devcat-io/devcat/internal/catalogcheck"
	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/logger"
	"github.com/devcat-io/devcat/internal/merge"
	"github.com/devcat-io/devcat/internal/report"
	"github.com/devcat-io/devcat/internal/versions"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCLITooOld          = errors.New("devcat is older than the collection requires")
	ErrLocatorRequired    = errors.New("an explicit catalog is required")
	ErrNoCollections      = errors.New("catalog has no collections")
)

// Selector chooses which collection to install. Entries arrive in display
// order; the returned name must be one of them.
type Selector interface {
	SelectCollection(ctx context.Context, catalog catalogrepo.Locator, entries []catalogrepo.CollectionEntry) (string, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx context.Context, catalog catalogrepo.Locator, entries []catalogrepo.CollectionEntry) (string, error)

func (f SelectorFunc) SelectCollection(ctx context.Context, catalog catalogrepo.Locator, entries []catalogrepo.CollectionEntry) (string, error) {
	return f(ctx, catalog, entries)
}

// Named always selects the given collection.
func Named(name string) Selector {
	return SelectorFunc(func(context.Context, catalogrepo.Locator, []catalogrepo.CollectionEntry) (string, error) {
		return name, nil
	})
}

// InstallResult describes a completed install.
type InstallResult struct {
	Catalog    catalogrepo.Locator
	Collection catalogrepo.CollectionEntry
	TargetPath string
}

// ListResult is the ordered, filtered set of collections of one catalog.
type ListResult struct {
	Catalog     catalogrepo.Locator
	Collections []catalogrepo.CollectionEntry
	// Total counts the collections before tag filtering.
	Total int
}

type Engine struct {
	logger     *zerolog.Logger
	resolver   *catalogrepo.Resolver
	fetcher    *catalogrepo.Fetcher
	checker    *catalogcheck.Checker
	merger     *merge.Merger
	cliVersion string
}

func New(log *zerolog.Logger, git catalogrepo.Git, opts ...Option) (*Engine, error) {
	cfg := &Config{}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	checker, err := catalogcheck.NewChecker()
	if err != nil {
		return nil, err
	}

	fetcher := catalogrepo.NewFetcher(log, git)
	if cfg.tempDir != "" {
		fetcher = catalogrepo.NewFetcherWithTempDir(log, git, cfg.tempDir)
	}

	return &Engine{
		logger:     log,
		resolver:   catalogrepo.NewResolver(log, git),
		fetcher:    fetcher,
		checker:    checker,
		merger:     merge.NewMerger(log),
		cliVersion: cfg.cliVersion,
	}, nil
}

// run is one invocation: a run-scoped logger and the state it is in.
type run struct {
	logger *zerolog.Logger
	id     string
	state  State
}

func (e *Engine) newRun(op string) *run {
	l, id := logger.ForRun(e.logger)
	child := l.With().Str("op", op).Logger()
	return &run{logger: &child, id: id}
}

func (r *run) enter(s State) {
	r.logger.Debug().Stringer("from", r.state).Stringer("to", s).Msg("State transition")
	r.state = s
}

// checkout resolves and fetches the catalog. The caller owns the returned
// Checkout and must release it with r.release.
func (e *Engine) checkout(ctx context.Context, r *run, sel catalogrepo.Selection) (catalogrepo.Locator, *catalogrepo.Checkout, error) {
	r.enter(StateResolving)
	loc, err := e.resolver.Resolve(ctx, sel)
	if err != nil {
		return catalogrepo.Locator{}, nil, err
	}

	r.enter(StateFetching)
	co, err := e.fetcher.Fetch(ctx, loc, r.id)
	if err != nil {
		return loc, nil, err
	}
	return loc, co, nil
}

func (r *run) release(co *catalogrepo.Checkout) {
	r.enter(StateCleaningUp)
	if err := co.Close(); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to remove catalog checkout")
	}
	r.enter(StateDone)
}

// List returns the catalog's collections in display order, keeping only those
// that carry any of tags when tags is non-empty.
func (e *Engine) List(ctx context.Context, sel catalogrepo.Selection, tags []string) (*ListResult, error) {
	r := e.newRun("list")

	loc, co, err := e.checkout(ctx, r, sel)
	if err != nil {
		r.enter(StateDone)
		return nil, err
	}
	defer r.release(co)

	r.enter(StateDiscovering)
	discovered, err := catalogrepo.Discover(r.logger, co.Root())
	if err != nil {
		return nil, err
	}
	for _, f := range discovered.Findings {
		r.logger.Warn().Object("finding", f).Msg("Skipping unreadable collection")
	}

	return &ListResult{
		Catalog:     loc,
		Collections: catalogrepo.FilterByTags(discovered.Collections, tags),
		Total:       len(discovered.Collections),
	}, nil
}

// Validate fetches the catalog and checks all of it.
func (e *Engine) Validate(ctx context.Context, sel catalogrepo.Selection) (catalogrepo.Locator, *report.Report, error) {
	r := e.newRun("validate")

	loc, co, err := e.checkout(ctx, r, sel)
	if err != nil {
		r.enter(StateDone)
		return loc, nil, err
	}
	defer r.release(co)

	r.enter(StateValidating)
	rep, err := e.checker.CheckCatalog(r.logger, co.Root())
	return loc, rep, err
}

// ValidateDir checks a catalog working copy in place, without fetching.
func (e *Engine) ValidateDir(dir string) (*report.Report, error) {
	r := e.newRun("validate")

	co, err := catalogrepo.OpenLocal(r.logger, dir)
	if err != nil {
		return nil, err
	}
	defer r.release(co)

	r.enter(StateValidating)
	return e.checker.CheckCatalog(r.logger, co.Root())
}

// Install merges one collection into <projectDir>/.devcontainer. The selector
// names the collection; nothing is written unless that collection exists and
// this build of devcat is new enough for it.
func (e *Engine) Install(ctx context.Context, sel catalogrepo.Selection, selector Selector, projectDir string) (*InstallResult, error) {
	r := e.newRun("install")

	loc, co, err := e.checkout(ctx, r, sel)
	if err != nil {
		r.enter(StateDone)
		return nil, err
	}
	defer r.release(co)

	r.enter(StateDiscovering)
	discovered, err := catalogrepo.Discover(r.logger, co.Root())
	if err != nil {
		return nil, err
	}
	if len(discovered.Collections) == 0 {
		return nil, fmt.Errorf("%w: %s has no readable collections under %s/", ErrNoCollections, loc, constants.CollectionsDir)
	}

	name, err := selector.SelectCollection(ctx, loc, discovered.Collections)
	if err != nil {
		return nil, err
	}

	entry, ok := catalogrepo.FindByName(discovered.Collections, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not in catalog %s; run `devcat list --catalog %s` to see the available collections",
			ErrCollectionNotFound, name, loc, loc)
	}

	if err := e.checkCLIVersion(entry); err != nil {
		return nil, err
	}

	r.enter(StateMerging)
	target := filepath.Join(projectDir, constants.InstallSubdirectoryName)
	plan := merge.Plan{
		Collection:       entry,
		CommonAssetsPath: filepath.Join(co.Root(), constants.CommonAssetsDir),
		TargetPath:       target,
		CatalogURL:       loc.CloneURL,
	}
	if err := e.merger.Merge(plan); err != nil {
		return nil, err
	}

	r.logger.Debug().Object("collection", entry).Str("target", target).Msg("Installed collection")
	return &InstallResult{Catalog: loc, Collection: entry, TargetPath: target}, nil
}

func (e *Engine) checkCLIVersion(entry catalogrepo.CollectionEntry) error {
	if entry.MinCLIVersion == "" {
		return nil
	}
	current := versions.Clean(e.cliVersion)
	if !versions.IsSemver(current) {
		e.logger.Debug().Str("version", e.cliVersion).Msg("Development build, skipping minimum version check")
		return nil
	}

	ok, err := versions.AtLeast(current, entry.MinCLIVersion)
	if err != nil {
		return fmt.Errorf("collection %s: %w", entry.Name, err)
	}
	if !ok {
		return fmt.Errorf("%w: collection %s needs devcat %s or newer, this is %s; upgrade devcat and retry",
			ErrCLITooOld, entry.Name, entry.MinCLIVersion, current)
	}
	return nil
}
