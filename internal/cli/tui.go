package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tableplan/pkg/assets"
	"github.com/matzehuels/tableplan/pkg/editor"
	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/render"
	"github.com/matzehuels/tableplan/pkg/transform"
)

// Rows taken by the header and the two footer lines.
const (
	headerRows = 1
	footerRows = 2
)

// noteTTL is how long a notification stays in the status line.
const noteTTL = 4 * time.Second

// Canvas styles
var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleHandle   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleText     = lipgloss.NewStyle().Foreground(colorWhite)
	styleHelp     = lipgloss.NewStyle().Foreground(colorDim)

	noteStyles = map[editor.Level]lipgloss.Style{
		editor.LevelInfo:    lipgloss.NewStyle().Foreground(colorGray),
		editor.LevelSuccess: lipgloss.NewStyle().Foreground(colorGreen),
		editor.LevelWarning: lipgloss.NewStyle().Foreground(colorYellow),
		editor.LevelError:   lipgloss.NewStyle().Foreground(colorRed),
	}
)

const helpLine = "a add · 1-4 add type · d delete · c copy · t type · +/- seats · x reserve · u undo · r redo · s save · g snap · f fit · q quit"

// =============================================================================
// Messages
// =============================================================================

type loadedMsg struct {
	tables layout.TableList
	err    error
}

// savedMsg carries the list that was written, which may be older than the
// editor's current one if edits continued during the save.
type savedMsg struct {
	tables layout.TableList
	err    error
}

type noteMsg editor.Notification

// =============================================================================
// EditorModel - Interactive floor plan editor
// =============================================================================

// EditorModel is the bubbletea model driving an editor.Editor from mouse and
// keyboard events. The editor is only touched from Update, which bubbletea
// runs on a single goroutine.
type EditorModel struct {
	ctx    context.Context
	ed     *editor.Editor
	notes  <-chan editor.Notification
	assets assets.Provider

	vp            render.Viewport
	width, height int
	grid          float64

	// drag state, in cells
	dragging         bool
	dragCol, dragRow int

	loading  bool
	saving   bool
	saved    layout.TableList
	note     *editor.Notification
	noteAt   time.Time
	quitWarn bool
	now      func() time.Time
}

// NewEditorModel creates a model for ed. notes delivers the editor's
// notifications; see [newNoteChannel]. grid is the snap size used when
// snapping is toggled on.
func NewEditorModel(ctx context.Context, ed *editor.Editor, notes <-chan editor.Notification, grid float64) EditorModel {
	if grid <= 0 {
		grid = 10
	}
	return EditorModel{
		ctx:     ctx,
		ed:      ed,
		notes:   notes,
		assets:  assets.NewBuiltin(),
		vp:      render.NewViewport(80, 20),
		width:   80,
		height:  20 + headerRows + footerRows,
		grid:    grid,
		loading: true,
		now:     time.Now,
	}
}

// newNoteChannel returns a notifier feeding a buffered channel. Notifications
// that arrive while the buffer is full are dropped rather than blocking a
// save goroutine.
func newNoteChannel() (editor.Notifier, <-chan editor.Notification) {
	ch := make(chan editor.Notification, 16)
	return editor.NotifierFunc(func(n editor.Notification) {
		select {
		case ch <- n:
		default:
		}
	}), ch
}

func (m EditorModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForNote())
}

func (m EditorModel) load() tea.Cmd {
	ed, ctx := m.ed, m.ctx
	return func() tea.Msg {
		tables, err := ed.Fetch(ctx)
		return loadedMsg{tables: tables, err: err}
	}
}

func (m EditorModel) waitForNote() tea.Cmd {
	if m.notes == nil {
		return nil
	}
	notes := m.notes
	return func() tea.Msg {
		n, ok := <-notes
		if !ok {
			return nil
		}
		return noteMsg(n)
	}
}

func (m EditorModel) save() tea.Cmd {
	snapshot := m.ed.Tables()
	done := m.ed.SaveAsync(m.ctx)
	return func() tea.Msg {
		return savedMsg{tables: snapshot, err: <-done}
	}
}

// Dirty reports whether the live layout differs from the last load or save.
func (m EditorModel) Dirty() bool {
	return !m.ed.Tables().Equal(m.saved)
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Cols = max(msg.Width, 1)
		m.vp.Rows = max(msg.Height-headerRows-footerRows, 1)
		return m, nil

	case loadedMsg:
		m.loading = false
		m.ed.ApplyLoad(msg.tables, msg.err)
		m.saved = m.ed.Tables()
		if b, ok := m.ed.Tables().Bounds(); ok {
			m.vp = m.vp.Fit(b)
		}
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err == nil {
			m.saved = msg.tables
		}
		return m, nil

	case noteMsg:
		n := editor.Notification(msg)
		m.note, m.noteAt = &n, m.now()
		return m, m.waitForNote()

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// canvasCell converts a screen position to a canvas cell.
func (m EditorModel) canvasCell(x, y int) (int, int) {
	return x, y - headerRows
}

func (m EditorModel) handleMouse(msg tea.MouseMsg) EditorModel {
	if m.loading {
		return m
	}
	col, row := m.canvasCell(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.vp = m.vp.Pan(0, -1)
			return m
		case tea.MouseButtonWheelDown:
			m.vp = m.vp.Pan(0, 1)
			return m
		case tea.MouseButtonLeft:
		default:
			return m
		}

		p := m.vp.CellCenter(col, row)
		if h := m.ed.HandleAt(p, m.vp.CellWidth); h != transform.HandleNone {
			m.dragging = m.ed.BeginResize(h)
		} else if _, hit := m.ed.PointerDown(p); hit {
			m.dragging = m.ed.BeginMove()
		}
		m.dragCol, m.dragRow = col, row
		m.quitWarn = false

	case tea.MouseActionMotion:
		if m.dragging {
			m.ed.DragFrame(m.vp.Delta(col-m.dragCol, row-m.dragRow))
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.ed.EndDrag(m.vp.Delta(col-m.dragCol, row-m.dragRow))
			m.dragging = false
		}
	}
	return m
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.quitWarn = false
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.Dirty() && !m.quitWarn {
			m.quitWarn = true
			m.setNote(editor.LevelWarning, "Unsaved changes", "press q again to quit, s to save")
			return m, nil
		}
		return m, tea.Quit
	case "esc":
		m.ed.CancelDrag()
		m.dragging = false
		m.ed.Select(-1)
		return m, nil
	case "up", "k":
		m.vp = m.vp.Pan(0, -1)
		return m, nil
	case "down", "j":
		m.vp = m.vp.Pan(0, 1)
		return m, nil
	case "left", "h":
		m.vp = m.vp.Pan(-2, 0)
		return m, nil
	case "right", "l":
		m.vp = m.vp.Pan(2, 0)
		return m, nil
	case "f":
		if b, ok := m.ed.Tables().Bounds(); ok {
			m.vp = m.vp.Fit(b)
		}
		return m, nil
	}

	if m.loading || m.dragging {
		return m, nil
	}

	switch key {
	case "a":
		m.ed.AddTable()
	case "1", "2", "3", "4":
		typ := layout.TableTypes[int(key[0]-'1')]
		at := m.vp.ToPoint(m.vp.Cols/2, m.vp.Rows/2)
		m.ed.AddTableOfType(typ, &at)
	case "d", "delete", "backspace":
		m.ed.DeleteSelected()
	case "c":
		m.ed.DuplicateSelected()
	case "t":
		if t, ok := m.ed.SelectedTable(); ok {
			m.update(layout.Patch{Type: layout.Ptr(t.Type.Next())})
		}
	case "+", "=":
		if t, ok := m.ed.SelectedTable(); ok {
			m.update(layout.Patch{Capacity: layout.Ptr(t.Capacity + 1)})
		}
	case "-":
		if t, ok := m.ed.SelectedTable(); ok {
			m.update(layout.Patch{Capacity: layout.Ptr(t.Capacity - 1)})
		}
	case "x":
		if t, ok := m.ed.SelectedTable(); ok {
			m.update(layout.Patch{Reserved: layout.Ptr(!t.Reserved)})
		}
	case "u", "ctrl+z":
		m.ed.Undo()
	case "r", "ctrl+y":
		m.ed.Redo()
	case "g":
		ctrl := m.ed.Controller()
		if ctrl.Grid() > 0 {
			ctrl.SetGrid(0)
			m.setNote(editor.LevelInfo, "Snap off", "")
		} else {
			ctrl.SetGrid(m.grid)
			m.setNote(editor.LevelInfo, "Snap on", fmt.Sprintf("grid %.0f", m.grid))
		}
	case "s":
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, m.save()
	}
	return m, nil
}

func (m *EditorModel) update(p layout.Patch) {
	if err := m.ed.UpdateSelected(p); err != nil {
		m.setNote(editor.LevelError, "Invalid edit", errors.UserMessage(err))
	}
}

func (m *EditorModel) setNote(level editor.Level, title, message string) {
	m.note = &editor.Notification{Level: level, Title: title, Message: message}
	m.noteAt = m.now()
}

// =============================================================================
// View
// =============================================================================

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerLine())
	b.WriteString("\n")

	sel, _ := m.ed.Selected()
	var overlay *render.Overlay
	if kind, i, g := m.ed.Dragging(); kind != transform.Idle {
		overlay = &render.Overlay{Index: i, Geometry: g}
	}
	frame := m.vp.Rasterize(m.ed.Tables(), sel, overlay)
	for r, row := range frame {
		if r > 0 {
			b.WriteString("\n")
		}
		for _, cell := range row {
			b.WriteString(m.cellStyle(cell).Render(string(cell.Rune)))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(styleHelp.Render(truncate(helpLine, m.width)))
	return b.String()
}

func (m EditorModel) cellStyle(c render.Cell) lipgloss.Style {
	switch {
	case c.Table < 0:
		return lipgloss.NewStyle()
	case c.Kind == render.Handle:
		return styleHandle
	case c.Selected:
		return styleSelected
	case c.Kind == render.Text:
		return styleText
	case c.Reserved && c.Kind == render.Border:
		return styleReserved
	}
	return typeStyle(m.assets, c.Type)
}

func (m EditorModel) headerLine() string {
	tables := m.ed.Tables()
	left := styleHeader.Render(appName+" · "+m.ed.Venue()) + StyleDim.Render(fmt.Sprintf("  %d tables · %d seats · step %d/%d",
		tables.Len(), tables.TotalCapacity(), m.ed.Step()+1, m.ed.HistoryLen()))
	if m.Dirty() {
		left += StyleWarning.Render("  ●")
	}
	if m.ed.Controller().Grid() > 0 {
		left += StyleDim.Render("  snap")
	}
	return left
}

func (m EditorModel) statusLine() string {
	switch {
	case m.loading:
		return StyleDim.Render("Loading " + m.ed.Venue() + "...")
	case m.saving:
		return StyleDim.Render("Saving...")
	case m.note != nil && m.now().Sub(m.noteAt) < noteTTL:
		text := m.note.Title
		if m.note.Message != "" {
			text += " " + m.note.Message
		}
		return noteStyles[m.note.Level].Render(text)
	}

	t, ok := m.ed.SelectedTable()
	if !ok {
		return StyleDim.Render("Click a table to select it")
	}
	line := fmt.Sprintf("%s · %s · %d seats · %.0f×%.0f at %.0f,%.0f",
		t.Name, t.Type, t.Capacity, t.Width, t.Height, t.X, t.Y)
	if t.Reserved {
		line += " · reserved"
	}
	return StyleHighlight.Render(line)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
