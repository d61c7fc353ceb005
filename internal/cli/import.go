package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tableplan/pkg/store"
)

// importCommand creates the import command, which replaces a venue's layout
// with a JSON document: a save request, a venue response, a layout record or
// a bare array of tables.
func (c *CLI) importCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <venue> <file|->",
		Short: "Replace a venue's layout from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			venue, err := c.venueArg(args[:1])
			if err != nil {
				return err
			}
			return c.runImport(cmd.Context(), venue, args[1], cmd.InOrStdin(), dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without saving")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, venue, path string, stdin io.Reader, dryRun bool) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rec, err := store.ParseDocument(data)
	if err != nil {
		return err
	}
	doc := store.DecodeDocument(rec, c.Logger.With("file", path))
	for i, t := range doc.Tables.Tables() {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("table %d: %w", i, err)
		}
	}
	printInfo("Parsed %d tables", doc.Tables.Len())
	if dryRun {
		printLayoutStats(doc.Tables.Len(), doc.Tables.TotalCapacity(), countReserved(doc.Tables))
		return nil
	}

	b, err := c.openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	name := doc.Name
	if name == "" {
		name = store.DefaultLayoutName
	}
	adapter := store.NewAdapter(b, store.WithLogger(c.Logger), store.WithLayoutName(name))
	if err := adapter.Save(ctx, venue, doc.Tables); err != nil {
		return err
	}
	printSuccess("Imported %d tables into %s", doc.Tables.Len(), venue)
	printLayoutStats(doc.Tables.Len(), doc.Tables.TotalCapacity(), countReserved(doc.Tables))
	printNextStep("View it", "tableplan show "+venue)
	return nil
}
