// Package editor is the seating-layout editor: it owns the table list and
// routes host input through selection, transform and history.
//
// An Editor is driven from a single event loop. Every model change goes
// through one commit function that replaces the live list and pushes exactly
// one history snapshot, so the rendered list always equals the snapshot under
// the history cursor. Undo and redo move the cursor and never push.
//
// Persistence failures are never fatal. A failed load leaves an empty,
// editable layout; a failed save leaves the local list and history untouched.
// Both are reported to the injected [Notifier].
package editor

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tableplan/pkg/assets"
	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/history"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/selection"
	"github.com/matzehuels/tableplan/pkg/transform"
)

// Spawn area for tables added without a position.
const (
	spawnWidth  = 400.0
	spawnHeight = 300.0
)

// Editor is a single editing session for one venue.
// It is not safe for concurrent use; see [Editor.SaveAsync] and
// [Editor.Fetch] for the operations that may run off the event loop.
type Editor struct {
	id      string
	venueID string
	persist Persistence

	tables layout.TableList
	sel    *selection.Manager
	hist   *history.History
	ctrl   *transform.Controller

	notifier Notifier
	logger   *log.Logger
	assets   assets.Provider
	rand     *rand.Rand
}

// Option configures an Editor.
type Option func(*Editor)

// WithSelection injects the selection manager.
func WithSelection(s *selection.Manager) Option {
	return func(e *Editor) { e.sel = s }
}

// WithHistory injects the history. The editor starts from its current
// snapshot.
func WithHistory(h *history.History) Option {
	return func(e *Editor) { e.hist = h }
}

// WithController injects the transform controller.
func WithController(c *transform.Controller) Option {
	return func(e *Editor) { e.ctrl = c }
}

// WithNotifier sets where user-visible notifications go.
func WithNotifier(n Notifier) Option {
	return func(e *Editor) { e.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithAssets sets the icon provider used by [Editor.IconFor].
func WithAssets(p assets.Provider) Option {
	return func(e *Editor) { e.assets = p }
}

// WithRand sets the source for spawn positions of new tables.
func WithRand(r *rand.Rand) Option {
	return func(e *Editor) { e.rand = r }
}

// New creates an editor for venueID with an empty layout. Call [Editor.Load]
// to fetch the saved one. p may be nil for an editor that never persists.
func New(venueID string, p Persistence, opts ...Option) *Editor {
	e := &Editor{
		id:      uuid.NewString(),
		venueID: venueID,
		persist: p,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sel == nil {
		e.sel = selection.New()
	}
	if e.hist == nil {
		e.hist = history.New(layout.TableList{})
	}
	if e.ctrl == nil {
		e.ctrl = transform.NewController()
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.notifier == nil {
		e.notifier = LogNotifier{Logger: e.logger}
	}
	if e.rand == nil {
		e.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.logger = e.logger.With("session", e.id[:8])
	e.tables = e.hist.Current()
	return e
}

// ID returns the session id.
func (e *Editor) ID() string { return e.id }

// Venue returns the venue being edited.
func (e *Editor) Venue() string { return e.venueID }

// Tables returns the live list.
func (e *Editor) Tables() layout.TableList { return e.tables }

// Selected returns the selected index.
func (e *Editor) Selected() (int, bool) { return e.sel.Index() }

// SelectedTable returns the selected table.
func (e *Editor) SelectedTable() (layout.Table, bool) {
	i, ok := e.sel.Index()
	if !ok {
		return layout.Table{}, false
	}
	return e.tables.At(i)
}

// Select selects index i. Out-of-range indices clear the selection.
func (e *Editor) Select(i int) {
	if _, ok := e.tables.At(i); !ok {
		e.sel.Clear()
		return
	}
	e.sel.Select(i)
}

func (e *Editor) Step() int       { return e.hist.Step() }
func (e *Editor) HistoryLen() int { return e.hist.Len() }
func (e *Editor) CanUndo() bool   { return e.hist.CanUndo() }
func (e *Editor) CanRedo() bool   { return e.hist.CanRedo() }

// Controller exposes the transform controller, e.g. to change the grid.
func (e *Editor) Controller() *transform.Controller { return e.ctrl }

// IconFor resolves the icon of the table at index i.
func (e *Editor) IconFor(i int) (assets.Handle, error) {
	t, ok := e.tables.At(i)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no table at index %d", i)
	}
	if e.assets == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no asset provider configured")
	}
	return e.assets.Resolve(layout.IconName(t.Type))
}
