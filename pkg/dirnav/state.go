package dirnav

import "time"

// State is a snapshot of a Navigator. Slices are copies and safe to keep.
type State struct {
	// Stack holds absolute locations, root-most first. The last one is current.
	Stack []string `yaml:"stack" json:"stack"`

	// Entries are full child paths of the last successfully listed location.
	Entries []string `yaml:"entries" json:"entries"`

	LastError string `yaml:"last_error,omitempty" json:"last_error,omitempty"`

	// Generation increments on every successful listing.
	Generation uint64 `yaml:"generation" json:"generation"`
}

func (s State) Current() string {
	if len(s.Stack) == 0 {
		return ""
	}
	return s.Stack[len(s.Stack)-1]
}

func (s State) Depth() int {
	return len(s.Stack)
}

func (s State) HasError() bool {
	return s.LastError != ""
}

// EntryKind is how an entry classifies when stat-ed on demand.
type EntryKind int

const (
	EntryUnknown EntryKind = iota
	EntryFile
	EntryDir
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDir:
		return "dir"
	default:
		return "unknown"
	}
}

// EntryInfo describes a path at the moment it was stat-ed.
type EntryInfo struct {
	Path    string    `yaml:"path" json:"path"`
	Name    string    `yaml:"name" json:"name"`
	Kind    EntryKind `yaml:"kind" json:"kind"`
	Size    int64     `yaml:"size,omitempty" json:"size,omitempty"`
	ModTime time.Time `yaml:"mod_time,omitempty" json:"mod_time,omitempty"`
}
