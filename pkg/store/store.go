package store

import (
	"context"
	"time"

	"github.com/matzehuels/tableplan/pkg/layout"
)

// DefaultLayoutName is the document name written by [Adapter.Save].
const DefaultLayoutName = "main layout"

// Document is a persisted layout.
type Document struct {
	Name      string
	Tables    layout.TableList
	UpdatedAt time.Time
}

// Store is a layout persistence backend.
type Store interface {
	// Fetch returns the venue's document, or nil without error when the
	// venue has none.
	Fetch(ctx context.Context, venueID string) (*Document, error)

	// Put replaces the venue's document.
	Put(ctx context.Context, venueID string, doc Document) error
}
