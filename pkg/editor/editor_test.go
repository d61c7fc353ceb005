package editor

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tableplan/pkg/assets"
	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/history"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/store"
	"github.com/matzehuels/tableplan/pkg/transform"
)

type recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

type fakePersistence struct {
	mu      sync.Mutex
	saved   map[string]layout.TableList
	loadErr error
	saveErr error
	gate    chan struct{}
}

func (f *fakePersistence) Load(ctx context.Context, venueID string) (layout.TableList, error) {
	if f.loadErr != nil {
		return layout.TableList{}, f.loadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved[venueID], nil
}

func (f *fakePersistence) Save(ctx context.Context, venueID string, tables layout.TableList) error {
	if f.gate != nil {
		<-f.gate
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = make(map[string]layout.TableList)
	}
	f.saved[venueID] = tables
	return nil
}

func newEditor(t *testing.T, p Persistence, opts ...Option) (*Editor, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []Option{
		WithNotifier(rec),
		WithLogger(log.New(io.Discard)),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}
	return New("club-1", p, append(base, opts...)...), rec
}

func TestAddTableDefaults(t *testing.T) {
	e, _ := newEditor(t, nil)
	i := e.AddTable()
	e.AddTable()

	tbl, _ := e.Tables().At(i)
	if tbl.Name != "Table 1" || tbl.Type != layout.Normal || tbl.Capacity != 10 || tbl.Reserved {
		t.Errorf("AddTable() = %v", tbl)
	}
	if tbl.Width != 100 || tbl.Height != 100 {
		t.Errorf("size = %v", tbl.Size)
	}
	if tbl.X < 0 || tbl.X >= 400 || tbl.Y < 0 || tbl.Y >= 300 {
		t.Errorf("spawn position %v outside [0,400)x[0,300)", tbl.Point)
	}
	second, _ := e.Tables().At(1)
	if second.Name != "Table 2" {
		t.Errorf("second name = %q", second.Name)
	}
}

func TestAddUndoRedoScenario(t *testing.T) {
	e, _ := newEditor(t, nil)

	e.AddTable()
	e.AddTable()
	e.AddTable()
	if e.Tables().Len() != 3 || e.HistoryLen() != 4 || e.Step() != 3 {
		t.Fatalf("after 3 adds: len=%d history=%d step=%d", e.Tables().Len(), e.HistoryLen(), e.Step())
	}

	e.Undo()
	e.Undo()
	if e.Tables().Len() != 1 || e.Step() != 1 {
		t.Fatalf("after 2 undos: len=%d step=%d", e.Tables().Len(), e.Step())
	}

	e.AddTable()
	if e.Tables().Len() != 2 || e.HistoryLen() != 3 || e.Step() != 2 {
		t.Fatalf("after add: len=%d history=%d step=%d", e.Tables().Len(), e.HistoryLen(), e.Step())
	}

	if e.Redo() {
		t.Error("Redo() should be a no-op")
	}
	if e.Tables().Len() != 2 {
		t.Errorf("len after redo = %d, want 2", e.Tables().Len())
	}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	e, _ := newEditor(t, nil)
	initial := e.Tables()

	e.AddTable()
	e.AddTableOfType(layout.Bar, &layout.Point{X: 5, Y: 5})
	e.Select(0)
	e.UpdateSelected(layout.Patch{Name: layout.Ptr("Window")})
	e.OnTransformCommit(1, layout.Geometry{Point: layout.Point{X: 1, Y: 1}, Size: layout.Size{Width: 80, Height: 80}})
	e.Select(1)
	e.DeleteSelected()
	final := e.Tables()
	const n = 5

	for range n {
		e.Undo()
	}
	if !e.Tables().Equal(initial) {
		t.Errorf("after %d undos: %v", n, e.Tables().All())
	}
	if e.Undo() {
		t.Error("Undo() past the floor should be a no-op")
	}
	for range n {
		e.Redo()
	}
	if !e.Tables().Equal(final) {
		t.Errorf("after %d redos: %v, want %v", n, e.Tables().All(), final.All())
	}
}

func TestHistoryMatchesRenderedList(t *testing.T) {
	h := history.New(layout.TableList{})
	e, _ := newEditor(t, nil, WithHistory(h))

	check := func(stage string) {
		t.Helper()
		if !h.Current().Equal(e.Tables()) {
			t.Errorf("%s: history snapshot and live list diverged", stage)
		}
	}
	e.AddTable()
	check("add")
	e.Select(0)
	e.DuplicateSelected()
	check("duplicate")
	e.Undo()
	check("undo")
	e.Redo()
	check("redo")
	e.Clear()
	check("clear")
}

func TestDeleteShiftsIndicesAndClearsSelection(t *testing.T) {
	e, _ := newEditor(t, nil)
	for j := range 4 {
		e.AddTableOfType(layout.Normal, &layout.Point{X: float64(j) * 200, Y: 0})
	}
	before := e.Tables()

	e.PointerDown(layout.Point{X: 250, Y: 50})
	if i, ok := e.Selected(); !ok || i != 1 {
		t.Fatalf("PointerDown selected %d, %v", i, ok)
	}
	if !e.DeleteSelected() {
		t.Fatal("DeleteSelected() = false")
	}

	if _, ok := e.Selected(); ok {
		t.Error("selection should be None after deleting it")
	}
	if e.Tables().Len() != 3 {
		t.Fatalf("Len() = %d, want 3", e.Tables().Len())
	}
	for i := 1; i < 3; i++ {
		got, _ := e.Tables().At(i)
		want, _ := before.At(i + 1)
		if got != want {
			t.Errorf("index %d = %v, want old index %d", i, got, i+1)
		}
	}
	if e.DeleteSelected() {
		t.Error("DeleteSelected() without selection should be a no-op")
	}
	if e.HistoryLen() != 6 {
		t.Errorf("HistoryLen() = %d, want 6", e.HistoryLen())
	}
}

func TestDeleteBeforeSelectionClearsIt(t *testing.T) {
	e, _ := newEditor(t, nil)
	for j := range 3 {
		e.AddTableOfType(layout.Normal, &layout.Point{X: float64(j) * 200, Y: 0})
	}
	e.Select(2)
	e.Select(0)
	e.DeleteSelected()
	e.Select(1)
	e.Undo()
	if _, ok := e.Selected(); ok {
		t.Error("undo that changes the length should clear the selection")
	}
}

func TestPointerDownBackgroundClears(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTableOfType(layout.Normal, &layout.Point{X: 0, Y: 0})
	e.PointerDown(layout.Point{X: 10, Y: 10})
	if _, ok := e.Selected(); !ok {
		t.Fatal("table not selected")
	}
	e.PointerDown(layout.Point{X: 900, Y: 900})
	if _, ok := e.Selected(); ok {
		t.Error("background click should clear the selection")
	}
}

func TestResizeBelowMinimumKeepsGeometry(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTableOfType(layout.Normal, &layout.Point{X: 0, Y: 0})
	e.Select(0)
	steps := e.HistoryLen()

	if !e.BeginResize(transform.HandleBottomRight) {
		t.Fatal("BeginResize() = false")
	}
	// 100x100 -> proposed 10x200
	if e.EndDrag(layout.Point{X: -90, Y: 100}) {
		t.Error("EndDrag() committed a degenerate resize")
	}
	tbl, _ := e.Tables().At(0)
	if tbl.Width != 100 || tbl.Height != 100 {
		t.Errorf("geometry = %v, want 100x100", tbl.Size)
	}
	if e.HistoryLen() != steps {
		t.Error("rejected resize pushed history")
	}
}

func TestDragCommitsOnce(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTableOfType(layout.Normal, &layout.Point{X: 0, Y: 0})
	e.Select(0)
	steps := e.HistoryLen()

	e.BeginMove()
	for d := 1.0; d <= 10; d++ {
		if _, ok := e.DragFrame(layout.Point{X: d, Y: d}); !ok {
			t.Fatal("DragFrame() ok = false during a drag")
		}
	}
	if e.HistoryLen() != steps {
		t.Fatal("drag frames must not push history")
	}
	if !e.EndDrag(layout.Point{X: 10, Y: 10}) {
		t.Fatal("EndDrag() = false")
	}
	if e.HistoryLen() != steps+1 {
		t.Errorf("HistoryLen() = %d, want %d", e.HistoryLen(), steps+1)
	}
	tbl, _ := e.Tables().At(0)
	if tbl.X != 10 || tbl.Y != 10 {
		t.Errorf("moved to %v, want (10,10)", tbl.Point)
	}
}

func TestOnlySelectedTableTransforms(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTable()
	if e.BeginMove() || e.BeginResize(transform.HandleRight) {
		t.Error("transform should require a selection")
	}
	if _, ok := e.DragFrame(layout.Point{X: 1}); ok {
		t.Error("DragFrame() without a gesture should report false")
	}
}

func TestEndTransformBakesScale(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTableOfType(layout.Normal, &layout.Point{X: 0, Y: 0})
	e.Select(0)
	e.BeginResize(transform.HandleBottomRight)
	if !e.EndTransform(transform.NodeState{Width: 100, Height: 100, ScaleX: 2, ScaleY: 1.5}) {
		t.Fatal("EndTransform() = false")
	}
	tbl, _ := e.Tables().At(0)
	if tbl.Width != 200 || tbl.Height != 150 {
		t.Errorf("size = %v, want 200x150", tbl.Size)
	}
}

func TestOnTransformCommitOutOfRange(t *testing.T) {
	e, _ := newEditor(t, nil)
	g := layout.Geometry{Size: layout.Size{Width: 60, Height: 60}}
	if e.OnTransformCommit(3, g) || e.HistoryLen() != 1 {
		t.Error("out-of-range commit should be a no-op")
	}
	e.AddTable()
	if e.OnTransformCommit(0, layout.Geometry{Size: layout.Size{Width: 10, Height: 60}}) {
		t.Error("commit below the minimum size should be rejected")
	}
}

func TestUpdateTable(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTable()
	steps := e.HistoryLen()

	tests := []struct {
		name  string
		patch layout.Patch
		code  errors.Code
		push  bool
	}{
		{"rename", layout.Patch{Name: layout.Ptr("Window")}, "", true},
		{"same value", layout.Patch{Name: layout.Ptr("Window")}, "", false},
		{"reserve", layout.Patch{Reserved: layout.Ptr(true)}, "", true},
		{"zero capacity", layout.Patch{Capacity: layout.Ptr(0)}, errors.ErrCodeInvalidTable, false},
		{"control name", layout.Patch{Name: layout.Ptr("a\nb")}, errors.ErrCodeInvalidTable, false},
		{"empty patch", layout.Patch{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.UpdateTable(0, tt.patch)
			if got := errors.GetCode(err); got != tt.code {
				t.Fatalf("UpdateTable() code = %q, want %q", got, tt.code)
			}
			if tt.push {
				steps++
			}
			if e.HistoryLen() != steps {
				t.Errorf("HistoryLen() = %d, want %d", e.HistoryLen(), steps)
			}
		})
	}

	if err := e.UpdateTable(9, layout.Patch{Name: layout.Ptr("x")}); err != nil {
		t.Errorf("out-of-range UpdateTable() = %v, want nil", err)
	}
	tbl, _ := e.Tables().At(0)
	if tbl.Name != "Window" || !tbl.Reserved {
		t.Errorf("table = %v", tbl)
	}
}

func TestDuplicateSelected(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTableOfType(layout.Booth, &layout.Point{X: 10, Y: 30})
	if _, ok := e.DuplicateSelected(); ok {
		t.Error("DuplicateSelected() without selection should fail")
	}

	e.Select(0)
	i, ok := e.DuplicateSelected()
	if !ok || i != 1 {
		t.Fatalf("DuplicateSelected() = %d, %v", i, ok)
	}
	cp, _ := e.Tables().At(1)
	if cp.X != 30 || cp.Y != 50 || cp.Name != "Booth 1 (Copy)" || cp.Type != layout.Booth {
		t.Errorf("copy = %v", cp)
	}
	if sel, _ := e.Selected(); sel != 1 {
		t.Errorf("selection = %d, want the copy", sel)
	}
}

func TestClear(t *testing.T) {
	e, _ := newEditor(t, nil)
	if e.Clear() {
		t.Error("Clear() on an empty layout should be a no-op")
	}
	e.AddTable()
	e.AddTable()
	e.Select(1)
	if !e.Clear() || e.Tables().Len() != 0 {
		t.Fatal("Clear() did not empty the layout")
	}
	if _, ok := e.Selected(); ok {
		t.Error("Clear() should drop the selection")
	}
	e.Undo()
	if e.Tables().Len() != 2 {
		t.Errorf("Undo() after Clear() = %d tables, want 2", e.Tables().Len())
	}
}

func TestUndoResetsSelectionWhenLengthChanges(t *testing.T) {
	e, _ := newEditor(t, nil)
	e.AddTable()
	e.AddTable()
	e.Select(1)
	e.Undo()
	if _, ok := e.Selected(); ok {
		t.Error("selection should reset when undo changes the length")
	}

	e.Redo()
	e.Select(0)
	e.UpdateSelected(layout.Patch{Capacity: layout.Ptr(4)})
	e.Undo()
	if i, ok := e.Selected(); !ok || i != 0 {
		t.Error("selection should survive an undo that keeps the length")
	}
}

func TestSaveSuccess(t *testing.T) {
	p := &fakePersistence{}
	e, rec := newEditor(t, p)
	e.AddTable()

	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !p.saved["club-1"].Equal(e.Tables()) {
		t.Error("saved list differs from live list")
	}
	notes := rec.all()
	if len(notes) != 1 || notes[0].Title != "Layout Saved." || notes[0].Level != LevelSuccess {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestSaveFailureKeepsLocalState(t *testing.T) {
	p := &fakePersistence{saveErr: errors.New(errors.ErrCodeNetwork, "backend unreachable")}
	e, rec := newEditor(t, p)
	e.AddTable()
	e.AddTable()
	tables, step, n := e.Tables(), e.Step(), e.HistoryLen()

	err := e.Save(context.Background())
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Fatalf("Save() error = %v", err)
	}
	if !e.Tables().Equal(tables) || e.Step() != step || e.HistoryLen() != n {
		t.Error("failed save changed local state")
	}
	notes := rec.all()
	if len(notes) != 1 || notes[0].Level != LevelError || notes[0].Message != "backend unreachable" {
		t.Errorf("notifications = %+v", notes)
	}
	if !e.CanUndo() {
		t.Error("editor should stay usable after a failed save")
	}
}

func TestSaveAsyncSnapshotsNow(t *testing.T) {
	p := &fakePersistence{gate: make(chan struct{})}
	e, rec := newEditor(t, p)
	e.AddTable()

	done := e.SaveAsync(context.Background())
	e.AddTable()
	e.AddTable()
	close(p.gate)

	if err := <-done; err != nil {
		t.Fatalf("SaveAsync: %v", err)
	}
	if got := p.saved["club-1"].Len(); got != 1 {
		t.Errorf("saved %d tables, want the 1 present at save time", got)
	}
	if e.Tables().Len() != 3 {
		t.Errorf("live list has %d tables, want 3", e.Tables().Len())
	}
	if len(rec.all()) != 1 {
		t.Errorf("notifications = %+v", rec.all())
	}
}

func TestSaveAsyncCancelledDiscardsNotification(t *testing.T) {
	p := &fakePersistence{gate: make(chan struct{})}
	e, rec := newEditor(t, p)
	e.AddTable()

	ctx, cancel := context.WithCancel(context.Background())
	done := e.SaveAsync(ctx)
	cancel()
	close(p.gate)
	<-done

	if n := rec.all(); len(n) != 0 {
		t.Errorf("cancelled save delivered %+v", n)
	}
}

func TestLoad(t *testing.T) {
	saved := layout.NewTableList(
		layout.NewTable(layout.VIP, layout.Point{}, "VIP 1"),
		layout.NewTable(layout.Bar, layout.Point{X: 300}, "Bar 2"),
	)
	p := &fakePersistence{saved: map[string]layout.TableList{"club-1": saved}}
	e, _ := newEditor(t, p)
	e.AddTable()
	e.Select(0)

	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !e.Tables().Equal(saved) {
		t.Errorf("Tables() = %v", e.Tables().All())
	}
	if e.HistoryLen() != 1 || e.CanUndo() {
		t.Error("Load() should restart history")
	}
	if _, ok := e.Selected(); ok {
		t.Error("Load() should clear the selection")
	}
}

func TestLoadFailureLeavesEmptyEditableLayout(t *testing.T) {
	p := &fakePersistence{loadErr: errors.New(errors.ErrCodeTimeout, "layout store timed out")}
	e, rec := newEditor(t, p)

	err := e.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Load() error = %v", err)
	}
	if e.Tables().Len() != 0 {
		t.Error("failed load should leave an empty layout")
	}
	if n := rec.all(); len(n) != 1 || n[0].Level != LevelWarning {
		t.Errorf("notifications = %+v", n)
	}

	e.AddTable()
	if e.Tables().Len() != 1 {
		t.Error("editor not usable after failed load")
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	adapter := store.NewAdapter(store.NewMemoryStore(), store.WithLogger(log.New(io.Discard)))

	a, _ := newEditor(t, adapter)
	a.AddTableOfType(layout.VIP, nil)
	a.AddTableOfType(layout.Booth, nil)
	a.Select(1)
	a.UpdateSelected(layout.Patch{Reserved: layout.Ptr(true), Capacity: layout.Ptr(3)})
	if err := a.Save(ctx); err != nil {
		t.Fatal(err)
	}

	b, _ := newEditor(t, adapter)
	if err := b.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if !b.Tables().Equal(a.Tables()) {
		t.Errorf("load(save(L)) = %v, want %v", b.Tables().All(), a.Tables().All())
	}
}

func TestSaveWithoutPersistence(t *testing.T) {
	e, _ := newEditor(t, nil)
	if err := e.Save(context.Background()); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Save() error = %v", err)
	}
}

func TestIconFor(t *testing.T) {
	e, _ := newEditor(t, nil, WithAssets(assets.NewBuiltin()))
	e.AddTableOfType(layout.VIP, nil)

	h, err := e.IconFor(0)
	if err != nil || h.Name() != "table-vip" {
		t.Errorf("IconFor(0) = %v, %v", h, err)
	}
	if _, err := e.IconFor(5); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("IconFor(5) error = %v", err)
	}

	bare, _ := newEditor(t, nil)
	bare.AddTable()
	if _, err := bare.IconFor(0); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("IconFor without provider error = %v", err)
	}
}

func TestSessionID(t *testing.T) {
	a, _ := newEditor(t, nil)
	b, _ := newEditor(t, nil)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("session ids %q and %q", a.ID(), b.ID())
	}
}
