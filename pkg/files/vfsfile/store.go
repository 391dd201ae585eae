// Package vfsfile lists any avfs.VFS, such as an in-memory memfs tree.
package vfsfile

import (
	"context"
	"net/url"
	"os"

	"github.com/avfs/avfs"
	"github.com/filetug/dirnav/pkg/files"
)

var _ files.Store = (*Store)(nil)

type Store struct {
	vfs   avfs.VFS
	title string
}

func (s Store) RootURL() url.URL {
	return url.URL{
		Scheme: "vfs",
		Path:   "/",
	}
}

func (s Store) RootTitle() string {
	return s.title
}

func (s Store) Getwd() (string, error) {
	return s.vfs.Getwd()
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.vfs.ReadDir(name)
}

func (s Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.vfs.Stat(name)
}

// VFS exposes the underlying file system, e.g. for tests that mutate it between listings.
func (s Store) VFS() avfs.VFS {
	return s.vfs
}

func NewStore(vfs avfs.VFS, title string) *Store {
	if title == "" {
		title = "vfs"
	}
	return &Store{vfs: vfs, title: title}
}
