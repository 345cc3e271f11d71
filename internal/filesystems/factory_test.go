package filesystems

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileSystem_Local(t *testing.T) {
	for _, uri := range []string{".", "/tmp/project", "file:///tmp/project"} {
		filesystem, err := NewFileSystem(context.Background(), uri, "")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", uri, err)
		}
		if _, ok := filesystem.(*LocalFS); !ok {
			t.Errorf("%s: expected *LocalFS, got %T", uri, filesystem)
		}
	}
}

func TestNewFileSystem_GitHub(t *testing.T) {
	filesystem, err := NewFileSystem(context.Background(), "github://railwayapp/cli/tree/main/docs", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gfs, ok := filesystem.(*GitHubFS)
	if !ok {
		t.Fatalf("expected *GitHubFS, got %T", filesystem)
	}
	if gfs.owner != "railwayapp" || gfs.repo != "cli" || gfs.ref != "main" || gfs.basePath != "docs" {
		t.Errorf("unexpected parse: owner=%s repo=%s ref=%s base=%s", gfs.owner, gfs.repo, gfs.ref, gfs.basePath)
	}
}

func TestNewFileSystem_Errors(t *testing.T) {
	for _, uri := range []string{"ftp://example.com/repo", "github://", "git:///onlyone"} {
		if _, err := NewFileSystem(context.Background(), uri, ""); err == nil {
			t.Errorf("%s: expected error", uri)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := map[string]string{
		"./project":              "./project",
		"file:///srv/app":        "/srv/app",
		"github://owner/repo":    ".",
		"git://github.com/o/r":   ".",
		"unknown://something/x":  "unknown://something/x",
	}
	for uri, expected := range tests {
		if got := BasePath(uri); got != expected {
			t.Errorf("BasePath(%q) = %q, want %q", uri, got, expected)
		}
	}
}

func TestLocalFS_ReadDirAndStat(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}

	lfs := NewLocalFS()
	seen := make(map[string]bool)
	for entry, err := range lfs.ReadDir(dir) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[entry.Name()] = entry.IsDir()
	}
	if isDir, ok := seen["src"]; !ok || !isDir {
		t.Errorf("expected src directory, got %v", seen)
	}
	if isDir, ok := seen["package.json"]; !ok || isDir {
		t.Errorf("expected package.json file, got %v", seen)
	}

	info, err := lfs.Stat(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Size() != 2 {
		t.Errorf("expected size 2, got %d", info.Size())
	}
}
