package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tableplan/pkg/assets"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/store"
)

// showCommand creates the show command, which prints a venue's tables.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show [venue]",
		Short:             "Print a venue's tables",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeVenues,
		RunE: func(cmd *cobra.Command, args []string) error {
			venue, err := c.venueArg(args)
			if err != nil {
				return err
			}
			tables, err := c.loadLayout(cmd.Context(), venue)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(venue))
			if tables.Len() == 0 {
				printInfo("No tables yet")
				printNextStep("Start editing", "tableplan edit "+venue)
				return nil
			}
			fmt.Println(renderTableList(tables))
			printLayoutStats(tables.Len(), tables.TotalCapacity(), countReserved(tables))
			return nil
		},
	}
}

// loadLayout opens the configured backend and loads one venue with a
// spinner. Unlike the editor, a load failure is returned as an error.
func (c *CLI) loadLayout(ctx context.Context, venue string) (layout.TableList, error) {
	b, err := c.openBackend(ctx)
	if err != nil {
		return layout.TableList{}, err
	}
	defer b.Close()

	prog := newProgress(c.Logger)
	adapter := store.NewAdapter(b, store.WithLogger(c.Logger))
	tables, err := withSpinner(ctx, "Loading "+venue+"...", func() (layout.TableList, error) {
		return adapter.Load(ctx, venue)
	})
	if err != nil {
		return tables, err
	}
	prog.done(fmt.Sprintf("Loaded %d tables", tables.Len()))
	return tables, nil
}

// renderTableList formats tables as a bordered lipgloss table.
func renderTableList(tables layout.TableList) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	icons := assets.NewBuiltin()

	rows := make([][]string, 0, tables.Len())
	all := tables.All()
	for i, t := range tables.Tables() {
		mark := ""
		if t.Reserved {
			mark = "✓"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			t.Name,
			t.Type.String(),
			strconv.Itoa(t.Capacity),
			fmt.Sprintf("%.0f, %.0f", t.X, t.Y),
			fmt.Sprintf("%.0f × %.0f", t.Width, t.Height),
			mark,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Name", "Type", "Seats", "Position", "Size", "Reserved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorDim)
			case col == 2:
				return typeStyle(icons, all[row].Type).Padding(0, 1)
			case col == 3:
				return base.Foreground(colorCyan)
			case col == 6 && all[row].Reserved:
				return base.Foreground(colorRed)
			}
			return base.Foreground(colorWhite)
		}).
		Render()
}

func countReserved(tables layout.TableList) int {
	n := 0
	for _, t := range tables.Tables() {
		if t.Reserved {
			n++
		}
	}
	return n
}
