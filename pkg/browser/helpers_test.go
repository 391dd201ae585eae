package browser

import (
	"context"
	"testing"

	"github.com/avfs/avfs/vfs/memfs"
	"github.com/filetug/dirnav/pkg/dirnav"
	"github.com/filetug/dirnav/pkg/files/vfsfile"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testApp is a minimal App for tests that need a deterministic QueueUpdateDraw hook.
type testApp struct {
	queueUpdateDraw func(f func())
	focused         tview.Primitive
	stopped         bool
}

func (a *testApp) Run() error { return nil }

func (a *testApp) QueueUpdateDraw(f func()) {
	if a.queueUpdateDraw != nil {
		a.queueUpdateDraw(f)
		return
	}
	f()
}

func (a *testApp) SetFocus(p tview.Primitive) {
	a.focused = p
}

func (a *testApp) SetRoot(root tview.Primitive, fullscreen bool) {
	_, _ = root, fullscreen
}

func (a *testApp) Stop() {
	a.stopped = true
}

func (a *testApp) EnableMouse(_ bool) {}

// inlineJobs runs navigator actions on the calling goroutine.
func inlineJobs(b *Browser) {
	b.dispatch = func(j job) {
		j(context.Background())
	}
}

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

func newTestNavigator(t *testing.T) (*dirnav.Navigator, *memfs.MemFS) {
	t.Helper()
	vfs := newMemFS(t)
	nav, err := dirnav.Initialize(context.Background(), vfsfile.NewStore(vfs, "mem"), dirnav.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return nav, vfs
}

func newTestBrowser(t *testing.T) (*Browser, *testApp, *dirnav.Navigator) {
	t.Helper()
	nav, _ := newTestNavigator(t)
	app := &testApp{}
	b := NewBrowser(app, nav, nil, inlineJobs, WithLogger(zerolog.Nop()))
	t.Cleanup(b.Close)
	return b, app, nav
}

// entryIndex returns the index of p in the listing on screen.
func entryIndex(t *testing.T, b *Browser, p string) int {
	t.Helper()
	for i, entry := range b.view.state.Entries {
		if entry == p {
			return i
		}
	}
	t.Fatalf("%s is not listed in %v", p, b.view.state.Entries)
	return -1
}
