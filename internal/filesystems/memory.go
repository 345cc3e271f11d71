package filesystems

import (
	"fmt"
	"io/fs"
	"iter"
	"path"
	"sort"
	"strings"
	"time"
)

// MemoryFS is an in-memory FileSystem used for fixtures and tests.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{".": true},
	}
}

// AddFile stores content at name, creating parent directories.
func (mfs *MemoryFS) AddFile(name string, content []byte) {
	name = path.Clean(name)
	mfs.files[name] = content
	mfs.addParents(name)
}

// AddDir creates an (optionally empty) directory and its parents.
func (mfs *MemoryFS) AddDir(name string) {
	name = path.Clean(name)
	mfs.dirs[name] = true
	mfs.addParents(name)
}

// RemoveFile deletes a file; directories are left in place.
func (mfs *MemoryFS) RemoveFile(name string) {
	delete(mfs.files, path.Clean(name))
}

func (mfs *MemoryFS) addParents(name string) {
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		mfs.dirs[dir] = true
	}
}

func (mfs *MemoryFS) ReadFile(name string) ([]byte, error) {
	content, ok := mfs.files[path.Clean(name)]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}
	return content, nil
}

func (mfs *MemoryFS) Stat(name string) (FileInfo, error) {
	name = path.Clean(name)
	if mfs.dirs[name] {
		return &memoryFileInfo{name: path.Base(name), mode: fs.ModeDir | 0o755, isDir: true}, nil
	}
	if content, ok := mfs.files[name]; ok {
		return &memoryFileInfo{name: path.Base(name), size: int64(len(content)), mode: 0o644}, nil
	}
	return nil, fmt.Errorf("stat %s: %w", name, fs.ErrNotExist)
}

func (mfs *MemoryFS) ReadDir(name string) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		dir := path.Clean(name)
		if !mfs.dirs[dir] {
			yield(nil, fmt.Errorf("readdir %s: %w", name, fs.ErrNotExist))
			return
		}

		children := make(map[string]bool) // name -> isDir
		collect := func(p string, isDir bool) {
			rest, ok := mfs.childOf(dir, p)
			if !ok {
				return
			}
			child, _, nested := strings.Cut(rest, "/")
			children[child] = children[child] || isDir || nested
		}
		for p := range mfs.files {
			collect(p, false)
		}
		for p := range mfs.dirs {
			collect(p, true)
		}

		names := make([]string, 0, len(children))
		for child := range children {
			names = append(names, child)
		}
		sort.Strings(names)

		for _, child := range names {
			if !yield(&memoryDirEntry{mfs: mfs, name: child, fullPath: path.Join(dir, child), isDir: children[child]}, nil) {
				return
			}
		}
	}
}

// childOf returns p relative to dir when p lies strictly below dir.
func (mfs *MemoryFS) childOf(dir, p string) (string, bool) {
	if p == "." || p == dir {
		return "", false
	}
	if dir == "." {
		return p, true
	}
	return strings.CutPrefix(p, dir+"/")
}

func (mfs *MemoryFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (mfs *MemoryFS) Base(p string) string {
	return path.Base(p)
}

func (mfs *MemoryFS) Dir(p string) string {
	return path.Dir(p)
}

func (mfs *MemoryFS) Rel(basepath, targpath string) (string, error) {
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

type memoryDirEntry struct {
	mfs      *MemoryFS
	name     string
	fullPath string
	isDir    bool
}

func (e *memoryDirEntry) Name() string { return e.name }
func (e *memoryDirEntry) IsDir() bool  { return e.isDir }

func (e *memoryDirEntry) Type() fs.FileMode {
	if e.isDir {
		return fs.ModeDir
	}
	return 0
}

func (e *memoryDirEntry) Info() (FileInfo, error) {
	return e.mfs.Stat(e.fullPath)
}

type memoryFileInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	isDir bool
}

func (fi *memoryFileInfo) Name() string       { return fi.name }
func (fi *memoryFileInfo) Size() int64        { return fi.size }
func (fi *memoryFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memoryFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *memoryFileInfo) IsDir() bool        { return fi.isDir }
func (fi *memoryFileInfo) Sys() any           { return nil }
