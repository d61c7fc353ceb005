package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tableplan/pkg/editor"
	"github.com/matzehuels/tableplan/pkg/history"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/store"
	"github.com/matzehuels/tableplan/pkg/transform"
)

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	grid    float64 // snap size; 0 uses the config
	snap    bool    // start with snapping on
	logFile string  // where logs go while the terminal is taken over
}

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [venue]",
		Short: "Edit a venue's layout in the terminal",
		Long: `Open the interactive floor plan editor.

Click a table to select it, drag it to move, and drag its bottom-right
corner to resize. Tables never shrink below 50×50; a resize that would is
discarded. Every change can be undone.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeVenues,
		RunE: func(cmd *cobra.Command, args []string) error {
			venue, err := c.venueArg(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("snap") {
				opts.snap = c.Config.Editor.Snap
			}
			if opts.grid <= 0 {
				opts.grid = c.Config.Editor.Grid
			}
			return c.runEdit(cmd, venue, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.grid, "grid", 0, "snap grid size in canvas units (default from config)")
	cmd.Flags().BoolVar(&opts.snap, "snap", false, "start with grid snapping on")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while editing")

	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, venue string, opts editOpts) error {
	ctx := cmd.Context()

	b, err := c.openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	// The terminal belongs to the editor while it runs.
	restore, err := c.redirectLogs(opts.logFile)
	if err != nil {
		return err
	}
	defer restore()

	ctrl := transform.NewController()
	if opts.snap {
		ctrl.SetGrid(opts.grid)
	}
	notifier, notes := newNoteChannel()
	ed := editor.New(venue,
		store.NewAdapter(b, store.WithLogger(c.Logger)),
		editor.WithController(ctrl),
		editor.WithHistory(history.New(layout.TableList{}, history.WithLimit(c.Config.Editor.HistoryLimit))),
		editor.WithNotifier(notifier),
		editor.WithLogger(c.Logger),
	)

	model := NewEditorModel(ctx, ed, notes, opts.grid)
	final, err := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(EditorModel); ok && m.Dirty() {
		printWarning("Quit with unsaved changes")
	}
	return nil
}

// redirectLogs points the logger at path, or discards logs when path is
// empty. The returned func restores stderr.
func (c *CLI) redirectLogs(path string) (func(), error) {
	var w io.Writer = io.Discard
	var f *os.File
	if path != "" {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	}
	// Derived loggers copy the writer, so the trace hooks are rebuilt too.
	c.Logger.SetOutput(w)
	registerHooks(c.Logger)
	return func() {
		c.Logger.SetOutput(os.Stderr)
		registerHooks(c.Logger)
		if f != nil {
			f.Close()
		}
	}, nil
}
