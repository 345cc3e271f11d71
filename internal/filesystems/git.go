package filesystems

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFS serves a shallow clone of a remote repository from a temp directory.
// Paths are relative to the clone root.
type GitFS struct {
	repoURL   string
	ref       string
	localPath string
	local     *LocalFS
}

// NewGitFS clones repoURL at ref (default branch when empty) with depth 1.
func NewGitFS(ctx context.Context, repoURL, ref string) (*GitFS, error) {
	tempDir, err := os.MkdirTemp("", "stackgen-git-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	gfs := &GitFS{
		repoURL:   repoURL,
		ref:       ref,
		localPath: tempDir,
		local:     NewLocalFS(),
	}

	if err := gfs.clone(ctx); err != nil {
		os.RemoveAll(tempDir)
		return nil, err
	}
	return gfs, nil
}

func (gfs *GitFS) clone(ctx context.Context) error {
	opts := &git.CloneOptions{
		URL:          gfs.repoURL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if gfs.ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(gfs.ref)
	}

	_, err := git.PlainCloneContext(ctx, gfs.localPath, false, opts)
	if err != nil && gfs.ref != "" {
		// ref may be a tag rather than a branch
		if rmErr := os.RemoveAll(gfs.localPath); rmErr != nil {
			return fmt.Errorf("failed to reset clone directory: %w", rmErr)
		}
		opts.ReferenceName = plumbing.NewTagReferenceName(gfs.ref)
		_, err = git.PlainCloneContext(ctx, gfs.localPath, false, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to clone repository %s: %w", gfs.repoURL, err)
	}
	return nil
}

// Cleanup removes the clone.
func (gfs *GitFS) Cleanup() error {
	if gfs.localPath == "" {
		return nil
	}
	return os.RemoveAll(gfs.localPath)
}

func (gfs *GitFS) ReadFile(name string) ([]byte, error) {
	return gfs.local.ReadFile(gfs.local.Join(gfs.localPath, name))
}

func (gfs *GitFS) ReadDir(name string) iter.Seq2[DirEntry, error] {
	return gfs.local.ReadDir(gfs.local.Join(gfs.localPath, name))
}

func (gfs *GitFS) Stat(name string) (FileInfo, error) {
	return gfs.local.Stat(gfs.local.Join(gfs.localPath, name))
}

func (gfs *GitFS) Join(elem ...string) string {
	return gfs.local.Join(elem...)
}

func (gfs *GitFS) Base(path string) string {
	return gfs.local.Base(path)
}

func (gfs *GitFS) Dir(path string) string {
	return gfs.local.Dir(path)
}

func (gfs *GitFS) Rel(basepath, targpath string) (string, error) {
	return gfs.local.Rel(basepath, targpath)
}
