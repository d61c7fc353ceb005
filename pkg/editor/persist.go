package editor

import (
	"context"

	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/layout"
)

// Persistence loads and saves a venue's tables. *store.Adapter implements it.
type Persistence interface {
	Load(ctx context.Context, venueID string) (layout.TableList, error)
	Save(ctx context.Context, venueID string, tables layout.TableList) error
}

// Notification texts shown after a save.
const (
	savedTitle      = "Layout Saved."
	savedMessage    = "Your layout has been successfully saved."
	saveFailedTitle = "Save failed"
	loadFailedTitle = "Could not load layout"
)

// Load fetches the venue's layout and makes it the live list with a fresh
// history. On failure the editor is reset to an empty layout, the user is
// notified and the error is returned.
func (e *Editor) Load(ctx context.Context) error {
	tables, err := e.Fetch(ctx)
	e.ApplyLoad(tables, err)
	return err
}

// Fetch reads the venue's layout without touching editor state. It may run
// off the event loop; pass its result to ApplyLoad on the loop.
func (e *Editor) Fetch(ctx context.Context) (layout.TableList, error) {
	if e.persist == nil {
		return layout.TableList{}, nil
	}
	return e.persist.Load(ctx, e.venueID)
}

// ApplyLoad installs a fetched layout: the selection is cleared, any gesture
// cancelled and history restarted at tables. A non-nil err is reported to
// the user, and tables (empty on failure) is installed all the same.
func (e *Editor) ApplyLoad(tables layout.TableList, err error) {
	if err != nil {
		e.notifier.Notify(Notification{Level: LevelWarning, Title: loadFailedTitle, Message: errors.UserMessage(err)})
		tables = layout.TableList{}
	}
	e.ctrl.Cancel()
	e.sel.Clear()
	e.hist.Reset(tables)
	e.tables = tables
	e.logger.Info("layout loaded", "venue", e.venueID, "tables", tables.Len())
}

// Save writes the live list and reports the outcome to the user. A failure
// leaves the list and history unchanged.
func (e *Editor) Save(ctx context.Context) error {
	err := e.save(ctx, e.tables)
	e.notifySave(err)
	return err
}

// SaveAsync captures the live list now and writes it in a goroutine, so edits
// made afterwards are not part of this save. The result is delivered on the
// returned channel, which is then closed. If ctx is done by the time the
// write returns, the notification is dropped.
func (e *Editor) SaveAsync(ctx context.Context) <-chan error {
	snapshot := e.tables
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := e.save(ctx, snapshot)
		if ctx.Err() == nil {
			e.notifySave(err)
		}
		done <- err
	}()
	return done
}

func (e *Editor) save(ctx context.Context, tables layout.TableList) error {
	if e.persist == nil {
		return errors.New(errors.ErrCodeUnsupported, "editor has no layout store")
	}
	return e.persist.Save(ctx, e.venueID, tables)
}

func (e *Editor) notifySave(err error) {
	if err != nil {
		e.notifier.Notify(Notification{Level: LevelError, Title: saveFailedTitle, Message: errors.UserMessage(err)})
		return
	}
	e.notifier.Notify(Notification{Level: LevelSuccess, Title: savedTitle, Message: savedMessage})
}
