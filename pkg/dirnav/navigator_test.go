package dirnav

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/avfs/avfs/vfs/memfs"
	"github.com/filetug/dirnav/pkg/files/osfile"
	"github.com/filetug/dirnav/pkg/files/vfsfile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMemFS builds /tmp/a/{b/d.txt, c.txt} and starts in /tmp/a.
func newMemFS(t *testing.T) *memfs.MemFS {
	t.Helper()
	vfs := memfs.New()
	require.NoError(t, vfs.MkdirAll("/tmp/a/b", 0o755))
	require.NoError(t, vfs.WriteFile("/tmp/a/c.txt", []byte("c"), 0o644))
	require.NoError(t, vfs.WriteFile("/tmp/a/b/d.txt", []byte("d"), 0o644))
	require.NoError(t, vfs.Chdir("/tmp/a"))
	return vfs
}

func newMemNavigator(t *testing.T) (*Navigator, *memfs.MemFS) {
	t.Helper()
	vfs := newMemFS(t)
	nav, err := Initialize(context.Background(), vfsfile.NewStore(vfs, "mem"), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return nav, vfs
}

func indexOf(t *testing.T, entries []string, p string) int {
	t.Helper()
	for i, entry := range entries {
		if entry == p {
			return i
		}
	}
	t.Fatalf("%s not found in %v", p, entries)
	return -1
}

func TestInitialize_Scenario(t *testing.T) {
	ctx := context.Background()
	nav, _ := newMemNavigator(t)

	state := nav.State()
	assert.Equal(t, []string{"/tmp/a"}, state.Stack)
	assert.ElementsMatch(t, []string{"/tmp/a/b", "/tmp/a/c.txt"}, state.Entries)
	assert.Empty(t, state.LastError)
	assert.Equal(t, uint64(1), state.Generation)

	err := nav.EnterDirectory(ctx, indexOf(t, state.Entries, "/tmp/a/b"))
	require.NoError(t, err)

	state = nav.State()
	assert.Equal(t, []string{"/tmp/a", "/tmp/a/b"}, state.Stack)
	assert.Equal(t, []string{"/tmp/a/b/d.txt"}, state.Entries)
	assert.Empty(t, state.LastError)
	assert.Equal(t, "/tmp/a/b", nav.Current())
	assert.Equal(t, 2, nav.Depth())
}

func TestEnterDirectory_TargetDeleted(t *testing.T) {
	ctx := context.Background()
	nav, vfs := newMemNavigator(t)
	before := nav.State()

	require.NoError(t, vfs.RemoveAll("/tmp/a/b"))
	err := nav.EnterDirectory(ctx, indexOf(t, before.Entries, "/tmp/a/b"))
	require.NoError(t, err)

	after := nav.State()
	assert.Equal(t, []string{"/tmp/a"}, after.Stack)
	assert.Equal(t, before.Entries, after.Entries, "entries must stay as they were")
	assert.Equal(t, before.Generation, after.Generation)
	assert.Contains(t, after.LastError, "/tmp/a/b")

	var listingErr *ListingError
	require.True(t, errors.As(nav.LastListingError(), &listingErr))
	assert.Equal(t, "/tmp/a/b", listingErr.Path)
}

func TestEnterDirectory_CurrentDeletedKeepsStaleEntries(t *testing.T) {
	ctx := context.Background()
	nav, vfs := newMemNavigator(t)
	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, nav.Entries(), "/tmp/a/b")))
	inside := nav.State()

	require.NoError(t, vfs.RemoveAll("/tmp/a/b"))
	require.NoError(t, nav.EnterDirectory(ctx, 0))

	after := nav.State()
	assert.Equal(t, []string{"/tmp/a", "/tmp/a/b"}, after.Stack)
	assert.Equal(t, []string{"/tmp/a/b/d.txt"}, after.Entries)
	assert.Equal(t, inside.Entries, after.Entries)
	assert.True(t, after.HasError())

	nav.GoUp(ctx)
	after = nav.State()
	assert.Equal(t, []string{"/tmp/a"}, after.Stack)
	assert.Equal(t, []string{"/tmp/a/c.txt"}, after.Entries)
	assert.False(t, after.HasError(), "successful listing clears the error")
}

func TestEnterDirectory_RegularFile(t *testing.T) {
	ctx := context.Background()
	nav, _ := newMemNavigator(t)
	before := nav.State()

	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, before.Entries, "/tmp/a/c.txt")))

	after := nav.State()
	assert.Equal(t, before.Stack, after.Stack)
	assert.Equal(t, before.Entries, after.Entries)
	assert.Contains(t, after.LastError, "/tmp/a/c.txt")
}

func TestEnterDirectory_IndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	nav, _ := newMemNavigator(t)
	before := nav.State()

	for _, index := range []int{-1, len(before.Entries), 100} {
		err := nav.EnterDirectory(ctx, index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, before, nav.State())
}

func TestEnterEntry_StaleGeneration(t *testing.T) {
	ctx := context.Background()
	nav, _ := newMemNavigator(t)
	old := nav.State()

	nav.GoUp(ctx)
	current := nav.State()
	require.Equal(t, old.Generation+1, current.Generation)

	err := nav.EnterEntry(ctx, old.Generation, 0)
	assert.ErrorIs(t, err, ErrStaleIndex)
	assert.Equal(t, current, nav.State())

	err = nav.EnterEntry(ctx, current.Generation, indexOf(t, current.Entries, "/tmp/a/b"))
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/a/b", nav.Current())

	err = nav.EnterEntry(ctx, nav.State().Generation, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestGoUp_AtRootStillReloads(t *testing.T) {
	ctx := context.Background()
	nav, vfs := newMemNavigator(t)

	require.NoError(t, vfs.WriteFile("/tmp/a/new.txt", nil, 0o644))
	nav.GoUp(ctx)

	state := nav.State()
	assert.Equal(t, []string{"/tmp/a"}, state.Stack)
	assert.Contains(t, state.Entries, "/tmp/a/new.txt")
	assert.Equal(t, uint64(2), state.Generation)
}

func TestGoUp_FromSubdirectory(t *testing.T) {
	ctx := context.Background()
	nav, _ := newMemNavigator(t)
	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, nav.Entries(), "/tmp/a/b")))

	nav.GoUp(ctx)
	state := nav.State()
	assert.Equal(t, []string{"/tmp/a"}, state.Stack)
	assert.ElementsMatch(t, []string{"/tmp/a/b", "/tmp/a/c.txt"}, state.Entries)
}

func TestGoUp_ParentDeleted(t *testing.T) {
	ctx := context.Background()
	vfs := newMemFS(t)
	require.NoError(t, vfs.MkdirAll("/tmp/a/b/x", 0o755))
	nav, err := Initialize(ctx, vfsfile.NewStore(vfs, "mem"), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, nav.Entries(), "/tmp/a/b")))
	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, nav.Entries(), "/tmp/a/b/x")))
	inside := nav.State()

	require.NoError(t, vfs.RemoveAll("/tmp/a/b"))
	nav.GoUp(ctx)

	state := nav.State()
	assert.Equal(t, []string{"/tmp/a"}, state.Stack, "pop for GoUp, then pop for the failed listing")
	assert.Equal(t, inside.Entries, state.Entries)
	assert.Contains(t, state.LastError, "/tmp/a/b")
}

func TestClearError(t *testing.T) {
	ctx := context.Background()
	nav, _ := newMemNavigator(t)

	nav.ClearError()
	assert.Empty(t, nav.LastError())

	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, nav.Entries(), "/tmp/a/c.txt")))
	withError := nav.State()
	require.True(t, withError.HasError())
	assert.Equal(t, withError.LastError, nav.LastError())

	nav.ClearError()
	cleared := nav.State()
	assert.Empty(t, cleared.LastError)
	assert.Nil(t, nav.LastListingError())
	assert.Equal(t, withError.Stack, cleared.Stack)
	assert.Equal(t, withError.Entries, cleared.Entries)
	assert.Equal(t, withError.Generation, cleared.Generation)
}

func TestState_IsSnapshot(t *testing.T) {
	nav, _ := newMemNavigator(t)
	state := nav.State()
	state.Stack[0] = "/changed"
	state.Entries[0] = "/changed"

	fresh := nav.State()
	assert.Equal(t, "/tmp/a", fresh.Stack[0])
	assert.NotEqual(t, "/changed", fresh.Entries[0])

	entries := nav.Entries()
	entries[0] = "/changed"
	assert.NotEqual(t, "/changed", nav.Entries()[0])
}

func TestClassifyAndChildCount(t *testing.T) {
	ctx := context.Background()
	nav, _ := newMemNavigator(t)

	assert.Equal(t, EntryDir, nav.Classify(ctx, "/tmp/a/b"))
	assert.Equal(t, EntryFile, nav.Classify(ctx, "/tmp/a/c.txt"))
	assert.Equal(t, EntryUnknown, nav.Classify(ctx, "/tmp/a/missing"))

	count, err := nav.ChildCount(ctx, "/tmp/a/b")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = nav.ChildCount(ctx, "/tmp/a/c.txt")
	assert.Error(t, err)

	assert.NotNil(t, nav.Store())
}

func TestNavigator_Logging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	vfs := newMemFS(t)
	nav, err := Initialize(ctx, vfsfile.NewStore(vfs, "mem"), WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, nav.Entries(), "/tmp/a/c.txt")))

	out := buf.String()
	assert.Contains(t, out, "reloading path list")
	assert.Contains(t, out, "path list reloaded")
	assert.Contains(t, out, "failed to list directory")
	assert.Contains(t, out, `"rollback":"/tmp/a"`)
}

func TestNavigator_OSFilesystem(t *testing.T) {
	ctx := context.Background()
	tempDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "c.txt"), []byte("c"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".hidden"), nil, 0o644))
	t.Chdir(tempDir)

	nav, err := Initialize(ctx, osfile.NewStore("/"), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	state := nav.State()
	assert.Equal(t, []string{tempDir}, state.Stack)
	assert.ElementsMatch(t, []string{
		filepath.Join(tempDir, "b"),
		filepath.Join(tempDir, "c.txt"),
		filepath.Join(tempDir, ".hidden"),
	}, state.Entries, "hidden entries are not filtered")

	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, state.Entries, filepath.Join(tempDir, "c.txt"))))
	assert.Equal(t, []string{tempDir}, nav.State().Stack)
	assert.Error(t, nav.LastListingError())

	require.NoError(t, nav.EnterDirectory(ctx, indexOf(t, state.Entries, filepath.Join(tempDir, "b"))))
	assert.Equal(t, []string{tempDir, filepath.Join(tempDir, "b")}, nav.State().Stack)
	assert.Empty(t, nav.Entries())
	assert.Empty(t, nav.LastError())
}

func TestNavigator_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	ctx := context.Background()
	tempDir := t.TempDir()
	locked := filepath.Join(tempDir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })
	t.Chdir(tempDir)

	nav, err := Initialize(ctx, osfile.NewStore("/"), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	before := nav.State()

	require.NoError(t, nav.EnterDirectory(ctx, 0))
	assert.True(t, errors.Is(nav.LastListingError(), fs.ErrPermission))
	assert.Equal(t, before.Stack, nav.State().Stack)
	assert.Equal(t, before.Entries, nav.State().Entries)
}
