package osfile

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/filetug/dirnav/pkg/files"
)

var osOpen = os.Open
var osStat = os.Stat
var osGetwd = os.Getwd
var osHostname = os.Hostname

var _ files.Store = (*Store)(nil)

// Store lists the local filesystem.
type Store struct {
	title string
	root  string
}

func (s Store) RootURL() url.URL {
	return url.URL{
		Scheme: "file",
		Path:   s.root,
	}
}

func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".local")
}

func (s Store) Getwd() (string, error) {
	return osGetwd()
}

// ReadDir returns children in directory order, unlike os.ReadDir which sorts them by name.
func (s Store) ReadDir(ctx context.Context, name string) (entries []os.DirEntry, err error) {
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	var dir *os.File
	if dir, err = osOpen(name); err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := dir.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if entries, err = dir.ReadDir(-1); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osStat(name)
}

func NewStore(root string) *Store {
	if root == "" {
		_, _ = fmt.Fprintf(os.Stderr, "osfile store root is empty, defaulting to /\n")
		root = "/"
	}
	store := Store{root: root}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	store.title = "🖥️" + store.title
	return &store
}
