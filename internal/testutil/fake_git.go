package testutil

import (
	"context"
	"os"
	"sync"
)

// DirGit is a catalogrepo.Git that serves a directory on disk instead of a
// remote. Every URL clones the same directory.
type DirGit struct {
	Root     string
	Tags     []string
	ListErr  error
	CloneErr error

	mu     sync.Mutex
	Clones []string
}

func NewDirGit(root string, tags ...string) *DirGit {
	return &DirGit{Root: root, Tags: tags}
}

func (g *DirGit) ListTags(context.Context, string) ([]string, error) {
	if g.ListErr != nil {
		return nil, g.ListErr
	}
	return g.Tags, nil
}

func (g *DirGit) Clone(_ context.Context, url, ref, dest string) error {
	g.mu.Lock()
	g.Clones = append(g.Clones, url+"@"+ref)
	g.mu.Unlock()
	if g.CloneErr != nil {
		return g.CloneErr
	}
	return os.CopyFS(dest, os.DirFS(g.Root))
}
