package files

import (
	"context"
	"net/url"
	"os"
)

//go:generate mockgen -destination=mock_store.go -package=files . Store

// Store is a read-only view of a hierarchical filesystem.
type Store interface {
	RootTitle() string
	RootURL() url.URL

	// Getwd returns the directory a navigation session starts from.
	Getwd() (string, error)

	// ReadDir lists immediate children of the named directory in enumeration order.
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)

	Stat(ctx context.Context, name string) (os.FileInfo, error)
}
