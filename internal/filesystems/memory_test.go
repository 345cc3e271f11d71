package filesystems

import (
	"errors"
	"io/fs"
	"testing"
)

func readDirNames(t *testing.T, mfs *MemoryFS, dir string) []string {
	t.Helper()
	names := make([]string, 0)
	for entry, err := range mfs.ReadDir(dir) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		names = append(names, entry.Name())
	}
	return names
}

func TestMemoryFS_ReadFile(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("dir1/dir2/test.txt", []byte("content"))

	content, err := mfs.ReadFile("dir1/dir2/test.txt")
	if err != nil {
		t.Fatalf("expected no error reading file in nested directory, got %v", err)
	}
	if string(content) != "content" {
		t.Errorf("expected 'content', got '%s'", string(content))
	}

	_, err = mfs.ReadFile("missing.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemoryFS_ReadDir(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("file2.txt", []byte("content2"))
	mfs.AddFile("file1.txt", []byte("content1"))
	mfs.AddDir("subdir")
	mfs.AddFile("subdir/file3.txt", []byte("content3"))
	mfs.AddFile("nested/deep/file4.txt", []byte("content4"))

	tests := []struct {
		dir      string
		expected []string
	}{
		{".", []string{"file1.txt", "file2.txt", "nested", "subdir"}},
		{"subdir", []string{"file3.txt"}},
		{"nested", []string{"deep"}},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			entries := readDirNames(t, mfs, tt.dir)
			if len(entries) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %v", len(tt.expected), entries)
			}
			for i, name := range tt.expected {
				if entries[i] != name {
					t.Errorf("expected entry %d to be '%s', got '%s'", i, name, entries[i])
				}
			}
		})
	}
}

func TestMemoryFS_ReadDir_Missing(t *testing.T) {
	mfs := NewMemoryFS()
	for _, err := range mfs.ReadDir("nope") {
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected fs.ErrNotExist, got %v", err)
		}
		return
	}
	t.Fatal("expected an error from ReadDir")
}

func TestMemoryFS_Stat(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("test.txt", []byte("hello world"))
	mfs.AddDir("empty")

	info, err := mfs.Stat("test.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Size() != 11 || info.IsDir() {
		t.Errorf("expected 11 byte file, got size=%d dir=%v", info.Size(), info.IsDir())
	}

	info, err = mfs.Stat("empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected directory")
	}

	root, err := mfs.Stat(".")
	if err != nil || !root.IsDir() {
		t.Errorf("expected root to be a directory, got %v", err)
	}
}

func TestMemoryFS_DirEntry_Info(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("test.txt", []byte("hello world"))
	mfs.AddDir("testdir")

	for entry, err := range mfs.ReadDir(".") {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := entry.Info()
		if err != nil {
			t.Fatalf("unexpected error getting info for %s: %v", entry.Name(), err)
		}

		switch entry.Name() {
		case "test.txt":
			if info.Size() != 11 || info.IsDir() {
				t.Errorf("unexpected file info: size=%d dir=%v", info.Size(), info.IsDir())
			}
		case "testdir":
			if !entry.IsDir() || !info.IsDir() {
				t.Error("expected directory entry to report as directory")
			}
		}
	}
}

func TestMemoryFS_Rel(t *testing.T) {
	mfs := NewMemoryFS()

	tests := []struct {
		base, target, expected string
	}{
		{"dir", "dir", "."},
		{"dir", "dir/subdir/file.txt", "subdir/file.txt"},
		{".", "a/b", "a/b"},
	}
	for _, tt := range tests {
		rel, err := mfs.Rel(tt.base, tt.target)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rel != tt.expected {
			t.Errorf("Rel(%q, %q) = %q, want %q", tt.base, tt.target, rel, tt.expected)
		}
	}

	if _, err := mfs.Rel("a", "b/c"); err == nil {
		t.Error("expected error for path outside base")
	}
}

func TestMemoryFS_RemoveFile(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("a/b.txt", []byte("x"))
	mfs.RemoveFile("a/b.txt")

	if _, err := mfs.ReadFile("a/b.txt"); err == nil {
		t.Fatal("expected file to be gone")
	}
	if info, err := mfs.Stat("a"); err != nil || !info.IsDir() {
		t.Fatal("expected parent directory to remain")
	}
}
