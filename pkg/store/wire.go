package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/layout"
)

// TableRecord is the persisted form of a table.
type TableRecord struct {
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	Name       string  `json:"name" bson:"name"`
	Type       string  `json:"type" bson:"type"`
	People     int     `json:"people" bson:"people"`
	IsReserved bool    `json:"isReserved" bson:"isReserved"`
}

// LayoutRecord is the persisted form of a layout document.
type LayoutRecord struct {
	Name   string        `json:"name" bson:"name"`
	Tables []TableRecord `json:"tables" bson:"tables"`
}

// SaveRequest is the body of POST /club/{venue}/save-layout.
type SaveRequest struct {
	TableLayout *LayoutRecord `json:"tableLayout"`
}

// VenueEntry is one element of a venue's tableLayout array.
type VenueEntry struct {
	TableLayout *LayoutRecord `json:"tableLayout"`
}

// FetchResponse is the body of GET /club/{venue}. Only the layout fields
// are modelled; other venue fields are ignored.
type FetchResponse struct {
	Username    string       `json:"username,omitempty"`
	TableLayout []VenueEntry `json:"tableLayout"`
}

// Layout returns the current layout record, or nil when the venue has none.
func (r FetchResponse) Layout() *LayoutRecord {
	if len(r.TableLayout) == 0 {
		return nil
	}
	return r.TableLayout[0].TableLayout
}

// NewFetchResponse wraps doc the way the venue endpoint returns it.
// A nil doc yields an empty tableLayout array.
func NewFetchResponse(venueID string, doc *Document) FetchResponse {
	resp := FetchResponse{Username: venueID, TableLayout: []VenueEntry{}}
	if doc != nil {
		rec := EncodeDocument(*doc)
		resp.TableLayout = append(resp.TableLayout, VenueEntry{TableLayout: &rec})
	}
	return resp
}

// EncodeTables converts tables to wire records, preserving order.
func EncodeTables(l layout.TableList) []TableRecord {
	out := make([]TableRecord, 0, l.Len())
	for _, t := range l.Tables() {
		out = append(out, TableRecord{
			X:          t.X,
			Y:          t.Y,
			Width:      t.Width,
			Height:     t.Height,
			Name:       t.Name,
			Type:       t.Type.String(),
			People:     t.Capacity,
			IsReserved: t.Reserved,
		})
	}
	return out
}

// EncodeDocument converts doc to its wire record.
func EncodeDocument(doc Document) LayoutRecord {
	return LayoutRecord{Name: doc.Name, Tables: EncodeTables(doc.Tables)}
}

// DecodeTables converts wire records to a table list. Records written by
// older clients may violate table invariants; they are repaired and each
// repair is logged at warn level:
//
//   - an unknown type becomes Normal
//   - a width or height below the minimum is raised to the minimum
//   - a capacity below 1 becomes 1
//   - control characters are removed from the name
//
// A nil logger uses log.Default().
func DecodeTables(records []TableRecord, logger *log.Logger) layout.TableList {
	if logger == nil {
		logger = log.Default()
	}
	tables := make([]layout.Table, 0, len(records))
	for i, r := range records {
		typ, err := layout.ParseTableType(r.Type)
		if err != nil {
			logger.Warn("unknown table type, using Normal", "index", i, "type", r.Type)
		}
		t := layout.Table{
			Geometry: layout.Geometry{
				Point: layout.Point{X: r.X, Y: r.Y},
				Size:  layout.Size{Width: r.Width, Height: r.Height},
			},
			Name:     r.Name,
			Type:     typ,
			Capacity: r.People,
			Reserved: r.IsReserved,
		}
		if t.Width < layout.MinSize || t.Height < layout.MinSize {
			logger.Warn("table below minimum size, raising", "index", i, "size", fmt.Sprintf("%gx%g", t.Width, t.Height))
			t.Width = max(t.Width, layout.MinSize)
			t.Height = max(t.Height, layout.MinSize)
		}
		if t.Capacity < 1 {
			logger.Warn("table capacity below 1, raising", "index", i, "people", t.Capacity)
			t.Capacity = 1
		}
		if clean := stripControl(t.Name); clean != t.Name {
			logger.Warn("table name has control characters, removing", "index", i, "name", clean)
			t.Name = clean
		}
		tables = append(tables, t)
	}
	return layout.NewTableList(tables...)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// DecodeDocument converts a wire record to a document.
func DecodeDocument(rec LayoutRecord, logger *log.Logger) Document {
	return Document{Name: rec.Name, Tables: DecodeTables(rec.Tables, logger)}
}

// ParseDocument reads a layout from any of the shapes the wire uses: a save
// request body, a venue fetch response, a bare layout record, or a bare
// array of tables. A venue with no layout yields an empty record.
func ParseDocument(data []byte) (LayoutRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return LayoutRecord{}, errors.New(errors.ErrCodeInvalidFormat, "empty layout document")
	}

	if data[0] == '[' {
		var tables []TableRecord
		if err := json.Unmarshal(data, &tables); err != nil {
			return LayoutRecord{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse table array")
		}
		return LayoutRecord{Tables: tables}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return LayoutRecord{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout document")
	}

	raw, ok := probe["tableLayout"]
	if !ok {
		var rec LayoutRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return LayoutRecord{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout record")
		}
		return rec, nil
	}

	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.HasPrefix(raw, []byte("[")):
		var resp FetchResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return LayoutRecord{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse venue response")
		}
		if rec := resp.Layout(); rec != nil {
			return *rec, nil
		}
		return LayoutRecord{}, nil
	case bytes.Equal(raw, []byte("null")):
		return LayoutRecord{}, errors.New(errors.ErrCodeInvalidFormat, "tableLayout is null")
	default:
		var req SaveRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return LayoutRecord{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse save request")
		}
		return *req.TableLayout, nil
	}
}
