package store

import (
	"context"
	stderrors "errors"
	"net"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/httputil"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/observability"
)

// Adapter is the editor's view of a Store.
type Adapter struct {
	store  Store
	logger *log.Logger
	name   string
	now    func() time.Time
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the adapter's logger.
func WithLogger(l *log.Logger) AdapterOption {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithLayoutName overrides [DefaultLayoutName] for saved documents.
func WithLayoutName(name string) AdapterOption {
	return func(a *Adapter) {
		if name != "" {
			a.name = name
		}
	}
}

// NewAdapter wraps s.
func NewAdapter(s Store, opts ...AdapterOption) *Adapter {
	a := &Adapter{store: s, logger: log.Default(), name: DefaultLayoutName, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store returns the wrapped backend.
func (a *Adapter) Store() Store { return a.store }

// Load returns the venue's tables. A venue with no document, or a document
// without tables, yields an empty list and nil. Any failure also yields an
// empty list, together with a structured error for the caller to report.
func (a *Adapter) Load(ctx context.Context, venueID string) (layout.TableList, error) {
	if err := errors.ValidateVenueID(venueID); err != nil {
		return layout.TableList{}, err
	}

	start := time.Now()
	doc, err := a.store.Fetch(ctx, venueID)
	n := 0
	if doc != nil {
		n = doc.Tables.Len()
	}
	observability.Store().OnLoad(ctx, venueID, n, time.Since(start), err)

	if err != nil {
		a.logger.Warn("load layout failed", "venue", venueID, "error", err)
		return layout.TableList{}, wrap(err, "load layout for %s", venueID)
	}
	if doc == nil {
		a.logger.Debug("no saved layout", "venue", venueID)
		return layout.TableList{}, nil
	}
	a.logger.Debug("layout loaded", "venue", venueID, "name", doc.Name, "tables", n)
	return doc.Tables, nil
}

// Save writes tables as the venue's document named [DefaultLayoutName].
// Tables that violate invariants are rejected before anything is written.
func (a *Adapter) Save(ctx context.Context, venueID string, tables layout.TableList) error {
	if err := errors.ValidateVenueID(venueID); err != nil {
		return err
	}
	for i, t := range tables.Tables() {
		if err := t.Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "table %d", i)
		}
	}

	start := time.Now()
	err := a.store.Put(ctx, venueID, Document{Name: a.name, Tables: tables, UpdatedAt: a.now()})
	observability.Store().OnSave(ctx, venueID, tables.Len(), time.Since(start), err)

	if err != nil {
		a.logger.Warn("save layout failed", "venue", venueID, "error", err)
		return wrap(err, "save layout for %s", venueID)
	}
	a.logger.Debug("layout saved", "venue", venueID, "tables", tables.Len())
	return nil
}

// wrap keeps an existing structured code and classifies everything else as
// a timeout, a network failure or a generic store failure.
func wrap(err error, format string, args ...any) error {
	if code := errors.GetCode(err); code != "" {
		return errors.Wrap(code, err, format, args...)
	}
	return errors.Wrap(classify(err), err, format, args...)
}

func classify(err error) errors.Code {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.ErrCodeTimeout
	case stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.ErrCodeTimeout
	case httputil.IsRetryable(err), stderrors.As(err, &netErr):
		return errors.ErrCodeNetwork
	}
	return errors.ErrCodeStore
}
