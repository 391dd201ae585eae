package dirnav

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/filetug/dirnav/pkg/files"
	"github.com/filetug/dirnav/pkg/logging"
	"github.com/rs/zerolog"
)

// Navigator tracks a location stack over a files.Store and the listing of its top.
// Operations are serialized; each one runs to completion before the next starts.
type Navigator struct {
	mu    sync.Mutex
	store files.Store
	log   zerolog.Logger

	stack      []string
	entries    []string
	lastErr    *ListingError
	generation uint64
}

type Option func(nav *Navigator)

func WithLogger(logger zerolog.Logger) Option {
	return func(nav *Navigator) {
		nav.log = logger
	}
}

var filepathAbs = filepath.Abs

// Initialize starts a session at the store's working directory and lists it.
// Only a failure to determine that directory is returned; a failed first listing
// is recorded as the last error like any other.
func Initialize(ctx context.Context, store files.Store, o ...Option) (*Navigator, error) {
	if store == nil {
		return nil, &StartupError{Err: errors.New("store not set")}
	}
	nav := &Navigator{
		store:   store,
		log:     logging.GetLogger("navigator"),
		entries: []string{},
	}
	for _, opt := range o {
		opt(nav)
	}

	wd, err := store.Getwd()
	if err != nil {
		return nil, &StartupError{Err: err}
	}
	if wd == "" {
		return nil, &StartupError{Err: errors.New("empty working directory")}
	}
	if !filepath.IsAbs(wd) {
		if wd, err = filepathAbs(wd); err != nil {
			return nil, &StartupError{Err: err}
		}
	}
	nav.stack = []string{wd}
	nav.log.Debug().Str("dir", wd).Msg("navigation session started")

	nav.reload(ctx)
	return nav, nil
}

// EnterDirectory pushes the entry at index and lists it, whether it is a directory or not.
// An index outside the current listing is rejected without touching the state.
func (nav *Navigator) EnterDirectory(ctx context.Context, index int) error {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return nav.enter(ctx, index)
}

// EnterEntry is EnterDirectory for callers that may hold an index from an older listing.
// generation must be the State.Generation the index was read from.
func (nav *Navigator) EnterEntry(ctx context.Context, generation uint64, index int) error {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	if generation != nav.generation {
		return fmt.Errorf("%w: generation %d, current %d", ErrStaleIndex, generation, nav.generation)
	}
	return nav.enter(ctx, index)
}

func (nav *Navigator) enter(ctx context.Context, index int) error {
	if index < 0 || index >= len(nav.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(nav.entries))
	}
	nav.stack = append(nav.stack, nav.entries[index])
	nav.reload(ctx)
	return nil
}

// GoUp pops the current location unless it is the session root, then lists the top.
func (nav *Navigator) GoUp(ctx context.Context) {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	if len(nav.stack) > 1 {
		nav.stack = nav.stack[:len(nav.stack)-1]
	}
	nav.reload(ctx)
}

// ClearError forgets the last error. Stack and entries are left as they are.
func (nav *Navigator) ClearError() {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	nav.lastErr = nil
}

// reload lists the top of the stack. On failure the stack is rolled back one
// level (never below the session root) and the previous entries are kept.
func (nav *Navigator) reload(ctx context.Context) {
	current := nav.stack[len(nav.stack)-1]
	nav.log.Info().Str("dir", current).Msg("reloading path list")

	children, err := nav.store.ReadDir(ctx, current)
	if err != nil {
		nav.lastErr = &ListingError{Path: current, Err: err}
		if len(nav.stack) > 1 {
			nav.stack = nav.stack[:len(nav.stack)-1]
		}
		nav.log.Warn().Err(err).
			Str("dir", current).
			Str("rollback", nav.stack[len(nav.stack)-1]).
			Msg("failed to list directory")
		return
	}

	nav.lastErr = nil
	nav.entries = files.ChildPaths(current, children)
	nav.generation++
	nav.log.Info().Str("dir", current).Int("entries", len(nav.entries)).Msg("path list reloaded")
}

// State returns a snapshot that stays valid after further operations.
func (nav *Navigator) State() State {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	state := State{
		Stack:      append([]string(nil), nav.stack...),
		Entries:    append([]string{}, nav.entries...),
		Generation: nav.generation,
	}
	if nav.lastErr != nil {
		state.LastError = nav.lastErr.Error()
	}
	return state
}

func (nav *Navigator) Current() string {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return nav.stack[len(nav.stack)-1]
}

func (nav *Navigator) Depth() int {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return len(nav.stack)
}

func (nav *Navigator) Entries() []string {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return append([]string{}, nav.entries...)
}

// LastError returns the message of the unresolved failure, or "" if there is none.
func (nav *Navigator) LastError() string {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	if nav.lastErr == nil {
		return ""
	}
	return nav.lastErr.Error()
}

// LastListingError returns the unresolved failure for errors.Is/As inspection.
func (nav *Navigator) LastListingError() error {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	if nav.lastErr == nil {
		return nil
	}
	return nav.lastErr
}

func (nav *Navigator) Store() files.Store {
	return nav.store
}

// Classify stats path when asked. The result is not cached, so it may disagree with
// a listing taken earlier if the filesystem changed in between.
func (nav *Navigator) Classify(ctx context.Context, path string) EntryKind {
	return nav.Describe(ctx, path).Kind
}

// Describe is Classify plus the size and modification time of path.
// Kind is EntryUnknown when path cannot be stat-ed.
func (nav *Navigator) Describe(ctx context.Context, path string) EntryInfo {
	entry := EntryInfo{Path: path, Name: files.EntryName(path)}
	info, err := nav.store.Stat(ctx, path)
	if err != nil || info == nil {
		if err != nil {
			nav.log.Debug().Err(err).Str("path", path).Msg("failed to stat entry")
		}
		return entry
	}
	entry.ModTime = info.ModTime()
	if info.IsDir() {
		entry.Kind = EntryDir
		return entry
	}
	entry.Kind = EntryFile
	entry.Size = info.Size()
	return entry
}

// ChildCount counts the immediate children of a directory entry.
func (nav *Navigator) ChildCount(ctx context.Context, path string) (int, error) {
	children, err := nav.store.ReadDir(ctx, path)
	if err != nil {
		return 0, err
	}
	return len(children), nil
}
