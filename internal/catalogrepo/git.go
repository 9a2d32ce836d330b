package catalogrepo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

const tagRefPrefix = "refs/tags/"

// Git is the subset of git the engine needs. The CLI implementation shells out
// to the git binary; tests substitute their own.
type Git interface {
	// ListTags returns the tag names published by the remote.
	ListTags(ctx context.Context, url string) ([]string, error)
	// Clone makes a depth-1 clone of ref (or the default branch when ref is empty) into dest.
	Clone(ctx context.Context, url, ref, dest string) error
}

// GitError carries the failing git invocation and whatever git printed to stderr.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// GitCLI runs the git binary found on PATH.
type GitCLI struct {
	logger *zerolog.Logger
	binary string
}

func NewGitCLI(logger *zerolog.Logger) *GitCLI {
	return &GitCLI{
		logger: logger,
		binary: "git",
	}
}

func (g *GitCLI) ListTags(ctx context.Context, url string) ([]string, error) {
	out, err := g.run(ctx, "ls-remote", "--tags", "--refs", url)
	if err != nil {
		return nil, err
	}
	return parseTagRefs(out), nil
}

func (g *GitCLI) Clone(ctx context.Context, url, ref, dest string) error {
	args := []string{"clone", "--depth", "1", "--single-branch", "--no-tags"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, "--", url, dest)

	_, err := g.run(ctx, args...)
	return err
}

func (g *GitCLI) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, g.binary, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	// Never block on a credential prompt; failures must surface as errors.
	command.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	g.logger.Debug().Strs("args", args).Msg("Running git")

	if err := command.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", &GitError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

// parseTagRefs extracts tag names from `git ls-remote --tags --refs` output.
func parseTagRefs(output string) []string {
	var tags []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		ref := fields[1]
		if !strings.HasPrefix(ref, tagRefPrefix) {
			continue
		}
		tags = append(tags, strings.TrimPrefix(ref, tagRefPrefix))
	}
	return tags
}
