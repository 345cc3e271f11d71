package filesystems

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// GitHubFS serves a repository from its zipball archive. The archive is
// downloaded lazily on first access and indexed in memory.
type GitHubFS struct {
	ctx      context.Context
	owner    string
	repo     string
	ref      string
	basePath string
	token    string

	httpClient *http.Client
	client     *github.Client

	once      sync.Once
	initErr   error
	archive   string
	zipReader *zip.ReadCloser
	files     map[string]*zip.File
	children  map[string][]string
}

// NewGitHubFS creates a GitHubFS rooted at basePath inside owner/repo@ref.
// An empty ref resolves to the repository's default branch.
func NewGitHubFS(ctx context.Context, owner, repo, ref, basePath, token string) *GitHubFS {
	httpClient := http.DefaultClient
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	return &GitHubFS{
		ctx:        ctx,
		owner:      owner,
		repo:       repo,
		ref:        ref,
		basePath:   strings.Trim(basePath, "/"),
		token:      token,
		httpClient: httpClient,
		client:     github.NewClient(httpClient),
	}
}

func (gfs *GitHubFS) ensureInitialized() error {
	gfs.once.Do(func() {
		gfs.initErr = gfs.downloadAndIndex()
	})
	return gfs.initErr
}

func (gfs *GitHubFS) resolveRef() error {
	if gfs.ref != "" {
		return nil
	}
	repository, _, err := gfs.client.Repositories.Get(gfs.ctx, gfs.owner, gfs.repo)
	if err != nil {
		return fmt.Errorf("failed to resolve default branch of %s/%s: %w", gfs.owner, gfs.repo, err)
	}
	gfs.ref = repository.GetDefaultBranch()
	return nil
}

func (gfs *GitHubFS) downloadAndIndex() error {
	if err := gfs.resolveRef(); err != nil {
		return err
	}

	tempFile, err := os.CreateTemp("", fmt.Sprintf("stackgen-github-%s-%s-*.zip", gfs.owner, gfs.repo))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	gfs.archive = tempFile.Name()

	err = gfs.downloadZipball(tempFile)
	closeErr := tempFile.Close()
	if err != nil {
		return fmt.Errorf("failed to download repository: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to write archive: %w", closeErr)
	}

	zipReader, err := zip.OpenReader(gfs.archive)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
	}
	gfs.zipReader = zipReader
	gfs.index()
	return nil
}

func (gfs *GitHubFS) archiveURL() string {
	if gfs.token != "" {
		return fmt.Sprintf("https://api.github.com/repos/%s/%s/zipball/%s", gfs.owner, gfs.repo, gfs.ref)
	}
	return fmt.Sprintf("https://codeload.github.com/%s/%s/zip/%s", gfs.owner, gfs.repo, gfs.ref)
}

func (gfs *GitHubFS) downloadZipball(w io.Writer) error {
	url := gfs.archiveURL()
	req, err := http.NewRequestWithContext(gfs.ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := gfs.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d %s for %s", resp.StatusCode, http.StatusText(resp.StatusCode), url)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// index strips the "<repo>-<sha>/" prefix GitHub adds and records the
// parent/child structure of every entry.
func (gfs *GitHubFS) index() {
	gfs.files = make(map[string]*zip.File)
	gfs.children = map[string][]string{".": nil}

	seen := make(map[string]bool)
	addChild := func(p string) {
		for p != "." && !seen[p] {
			seen[p] = true
			parent := path.Dir(p)
			gfs.children[parent] = append(gfs.children[parent], path.Base(p))
			p = parent
		}
	}

	for _, f := range gfs.zipReader.File {
		_, rest, ok := strings.Cut(strings.Trim(f.Name, "/"), "/")
		if !ok || rest == "" {
			continue
		}
		if f.FileInfo().IsDir() {
			if _, exists := gfs.children[rest]; !exists {
				gfs.children[rest] = nil
			}
		} else {
			gfs.files[rest] = f
			if dir := path.Dir(rest); dir != "." {
				if _, exists := gfs.children[dir]; !exists {
					gfs.children[dir] = nil
				}
			}
		}
		addChild(rest)
	}

	for dir := range gfs.children {
		sort.Strings(gfs.children[dir])
	}
}

// resolvePath maps a caller path onto the archive, rejecting escapes.
func (gfs *GitHubFS) resolvePath(name string) (string, error) {
	clean := path.Clean("/" + strings.TrimPrefix(name, "/"))
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("path traversal detected: %s", name)
	}
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" {
		clean = "."
	}
	if gfs.basePath != "" {
		clean = path.Join(gfs.basePath, clean)
	}
	return clean, nil
}

// Cleanup closes the archive and removes it from disk.
func (gfs *GitHubFS) Cleanup() error {
	var err error
	if gfs.zipReader != nil {
		err = gfs.zipReader.Close()
	}
	if gfs.archive != "" {
		if rmErr := os.Remove(gfs.archive); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

func (gfs *GitHubFS) ReadFile(name string) ([]byte, error) {
	if err := gfs.ensureInitialized(); err != nil {
		return nil, err
	}
	target, err := gfs.resolvePath(name)
	if err != nil {
		return nil, err
	}

	f, ok := gfs.files[target]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (gfs *GitHubFS) Stat(name string) (FileInfo, error) {
	if err := gfs.ensureInitialized(); err != nil {
		return nil, err
	}
	target, err := gfs.resolvePath(name)
	if err != nil {
		return nil, err
	}

	if _, ok := gfs.children[target]; ok {
		return &archiveFileInfo{name: path.Base(target), isDir: true}, nil
	}
	if f, ok := gfs.files[target]; ok {
		return &archiveFileInfo{name: path.Base(target), size: int64(f.UncompressedSize64), modTime: f.Modified}, nil
	}
	return nil, fmt.Errorf("stat %s: %w", name, fs.ErrNotExist)
}

func (gfs *GitHubFS) ReadDir(name string) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		if err := gfs.ensureInitialized(); err != nil {
			yield(nil, err)
			return
		}
		dir, err := gfs.resolvePath(name)
		if err != nil {
			yield(nil, err)
			return
		}

		children, ok := gfs.children[dir]
		if !ok {
			yield(nil, fmt.Errorf("readdir %s: %w", name, fs.ErrNotExist))
			return
		}

		for _, child := range children {
			childPath := path.Join(dir, child)
			_, isDir := gfs.children[childPath]
			info := &archiveFileInfo{name: child, isDir: isDir}
			if f, ok := gfs.files[childPath]; ok {
				info.size = int64(f.UncompressedSize64)
				info.modTime = f.Modified
			}
			if !yield(&archiveDirEntry{info}, nil) {
				return
			}
		}
	}
}

func (gfs *GitHubFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (gfs *GitHubFS) Base(p string) string {
	return path.Base(p)
}

func (gfs *GitHubFS) Dir(p string) string {
	return path.Dir(p)
}

func (gfs *GitHubFS) Rel(basepath, targpath string) (string, error) {
	base := path.Clean(basepath)
	target := path.Clean(targpath)
	if base == target {
		return ".", nil
	}
	if base == "." {
		return target, nil
	}
	if rest, ok := strings.CutPrefix(target, base+"/"); ok {
		return rest, nil
	}
	return "", fmt.Errorf("rel: %s is not below %s", targpath, basepath)
}

type archiveDirEntry struct {
	info *archiveFileInfo
}

func (e *archiveDirEntry) Name() string { return e.info.name }
func (e *archiveDirEntry) IsDir() bool  { return e.info.isDir }

func (e *archiveDirEntry) Type() fs.FileMode {
	return e.info.Mode().Type()
}

func (e *archiveDirEntry) Info() (FileInfo, error) {
	return e.info, nil
}

type archiveFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (fi *archiveFileInfo) Name() string { return fi.name }
func (fi *archiveFileInfo) Size() int64  { return fi.size }

func (fi *archiveFileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}

func (fi *archiveFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *archiveFileInfo) IsDir() bool        { return fi.isDir }
func (fi *archiveFileInfo) Sys() any           { return nil }
