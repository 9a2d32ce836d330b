package catalogrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"

	"github.com/devcat-io/devcat/internal/constants"
)

// FetchError is a fatal failure to reach or clone a catalog. Its message is
// meant to be shown to the user as-is.
type FetchError struct {
	URL string
	Ref string
	Err error
}

func (e *FetchError) Error() string {
	target := e.URL
	if e.Ref != "" {
		target += " (ref " + e.Ref + ")"
	}
	return fmt.Sprintf(`could not fetch catalog %s: %v

Make sure you can access this repository:
  - over HTTPS you need a personal access token or a configured git credential helper
  - over SSH you need a key loaded in your agent (ssh-add -l) and the host in ~/.ssh/known_hosts

To diagnose, run:
  git ls-remote %s`, target, e.Err, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Checkout is the ephemeral working copy of one catalog. It belongs to the
// invocation that created it and must be closed on every exit path.
type Checkout struct {
	logger *zerolog.Logger
	dir    string
	root   string
	closed bool
}

// Root is the repository root of the cloned catalog.
func (c *Checkout) Root() string {
	return c.root
}

// Dir is the temporary directory that owns the clone.
func (c *Checkout) Dir() string {
	return c.dir
}

// Close removes the temporary directory and confirms it is gone. Removal is
// attempted a few times since antivirus or indexers can briefly hold files.
func (c *Checkout) Close() error {
	if c == nil || c.closed {
		return nil
	}

	err := retry.Do(
		func() error {
			if err := os.RemoveAll(c.dir); err != nil {
				return err
			}
			if _, err := os.Stat(c.dir); !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checkout directory %s still present", c.dir)
			}
			return nil
		},
		retry.Attempts(constants.CleanupAttempts),
		retry.Delay(constants.CleanupDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("failed to remove catalog checkout %s: %w", c.dir, err)
	}

	c.closed = true
	c.logger.Debug().Str("dir", c.dir).Msg("Removed catalog checkout")
	return nil
}

// Fetcher clones catalogs into fresh temporary directories.
type Fetcher struct {
	logger  *zerolog.Logger
	git     Git
	tempDir string
}

func NewFetcher(logger *zerolog.Logger, git Git) *Fetcher {
	return &Fetcher{
		logger: logger,
		git:    git,
	}
}

// NewFetcherWithTempDir creates a Fetcher that places checkouts under tempDir (for testing).
func NewFetcherWithTempDir(logger *zerolog.Logger, git Git, tempDir string) *Fetcher {
	return &Fetcher{
		logger:  logger,
		git:     git,
		tempDir: tempDir,
	}
}

// Fetch makes a shallow clone of loc. On failure nothing is left on disk and
// the error is a *FetchError. The catalog is never substituted with another source.
func (f *Fetcher) Fetch(ctx context.Context, loc Locator, runID string) (*Checkout, error) {
	dir, err := os.MkdirTemp(f.tempDir, constants.CheckoutDirPrefix+runID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout directory: %w", err)
	}

	checkout := &Checkout{
		logger: f.logger,
		dir:    dir,
		root:   filepath.Join(dir, constants.CheckoutRepoDirName),
	}

	f.logger.Debug().Str("url", loc.CloneURL).Str("ref", loc.Ref).Str("dir", dir).Msg("Cloning catalog")

	if err := f.git.Clone(ctx, loc.CloneURL, loc.Ref, checkout.root); err != nil {
		if closeErr := checkout.Close(); closeErr != nil {
			f.logger.Warn().Err(closeErr).Msg("Failed to clean up after clone failure")
		}
		return nil, &FetchError{URL: loc.CloneURL, Ref: loc.Ref, Err: err}
	}

	return checkout, nil
}

// OpenLocal wraps an existing catalog directory (for validating a working copy).
// Closing it is a no-op: the directory is not owned by devcat.
func OpenLocal(logger *zerolog.Logger, root string) (*Checkout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("catalog directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", abs)
	}
	return &Checkout{logger: logger, dir: abs, root: abs, closed: true}, nil
}
