package files

import (
	"os"
	"path/filepath"
)

// NewDirEntry creates a detached os.DirEntry, e.g. for stores that do not list a real filesystem.
func NewDirEntry(name string, isDir bool, o ...FileInfoOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	dirEntry := DirEntry{
		name:  name,
		isDir: isDir,
	}
	if len(o) > 0 {
		dirEntry.info = NewFileInfo(dirEntry, o...)
	}
	return dirEntry
}

var _ os.DirEntry = (*DirEntry)(nil)

type DirEntry struct {
	name  string
	isDir bool
	info  *FileInfo
}

func (d DirEntry) Name() string { return d.name }
func (d DirEntry) IsDir() bool  { return d.isDir }
func (d DirEntry) Type() os.FileMode {
	if d.isDir {
		return os.ModeDir
	}
	return 0
}
func (d DirEntry) Info() (os.FileInfo, error) {
	if d.info == nil {
		return nil, nil
	}
	return d.info, nil
}

// ChildPaths joins each entry name onto dir, keeping the entries order.
func ChildPaths(dir string, entries []os.DirEntry) []string {
	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = filepath.Join(dir, entry.Name())
	}
	return paths
}

// EntryName returns the last element of a child path.
func EntryName(p string) string {
	if p == "" {
		return ""
	}
	name := filepath.Base(p)
	if name == "." {
		return p
	}
	return name
}
