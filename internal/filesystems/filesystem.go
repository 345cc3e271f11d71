package filesystems

import (
	"io/fs"
	"iter"
	"time"
)

// FileSystem abstracts read access to a project tree so detection can run
// against a local checkout, a clone, an archive or an in-memory fixture.
type FileSystem interface {
	// ReadFile reads the named file and returns its contents
	ReadFile(name string) ([]byte, error)

	// ReadDir returns an iterator over the entries of the named directory.
	// Entry order is backend specific; callers that need a stable order sort.
	ReadDir(name string) iter.Seq2[DirEntry, error]

	// Stat describes the named file or directory
	Stat(name string) (FileInfo, error)

	Join(elem ...string) string
	Base(path string) string
	Dir(path string) string
	Rel(basepath, targpath string) (string, error)
}

// Cleaner is implemented by backends that hold temporary resources.
type Cleaner interface {
	Cleanup() error
}

// DirEntry provides information about a directory entry
type DirEntry interface {
	Name() string
	IsDir() bool
	Type() fs.FileMode
	Info() (FileInfo, error)
}

// FileInfo provides information about a file
type FileInfo interface {
	Name() string
	Size() int64
	Mode() fs.FileMode
	ModTime() time.Time
	IsDir() bool
	Sys() any
}

// Cleanup releases backend resources if filesystem holds any.
func Cleanup(filesystem FileSystem) error {
	if c, ok := filesystem.(Cleaner); ok {
		return c.Cleanup()
	}
	return nil
}
