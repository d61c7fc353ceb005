package render

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/layout"
	"github.com/matzehuels/tableplan/pkg/store"
)

// Format is an export output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatSVG, FormatPNG, FormatDOT, FormatJSON}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q", s)
}

// Export writes tables to w in the given format. JSON output is a save
// request body, so it can be imported or posted to a venue as-is.
func Export(ctx context.Context, w io.Writer, f Format, name string, tables layout.TableList, opts Options) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatDOT:
		data = []byte(ToDOT(tables, opts))
	case FormatSVG:
		data, err = RenderSVG(ctx, ToDOT(tables, opts))
	case FormatPNG:
		data, err = RenderPNG(ctx, ToDOT(tables, opts))
	case FormatJSON:
		rec := store.EncodeDocument(store.Document{Name: name, Tables: tables})
		data, err = json.MarshalIndent(store.SaveRequest{TableLayout: &rec}, "", "  ")
		data = append(data, '\n')
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "export %s", f)
	}
	_, err = w.Write(data)
	return err
}
