package store

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/layout"
)

var quiet = log.New(io.Discard)

func sampleTables() layout.TableList {
	return layout.NewTableList(
		layout.Table{
			Geometry: layout.Geometry{Point: layout.Point{X: 12.5, Y: -3}, Size: layout.Size{Width: 100, Height: 100}},
			Name:     "Table 1", Type: layout.Normal, Capacity: 10,
		},
		layout.Table{
			Geometry: layout.Geometry{Point: layout.Point{X: 220, Y: 40}, Size: layout.Size{Width: 200, Height: 60}},
			Name:     "Bar", Type: layout.Bar, Capacity: 8, Reserved: true,
		},
	)
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := json.Marshal(EncodeTables(sampleTables()))
	if err != nil {
		t.Fatal(err)
	}
	var recs []map[string]any
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatal(err)
	}
	want := []string{"height", "isReserved", "name", "people", "type", "width", "x", "y"}
	if len(recs[0]) != len(want) {
		t.Errorf("record has %d fields, want %d: %v", len(recs[0]), len(want), recs[0])
	}
	for _, k := range want {
		if _, ok := recs[0][k]; !ok {
			t.Errorf("record missing %q", k)
		}
	}
	if recs[1]["type"] != "Bar" || recs[1]["isReserved"] != true {
		t.Errorf("second record = %v", recs[1])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleTables()
	data, _ := json.Marshal(SaveRequest{TableLayout: &LayoutRecord{Name: DefaultLayoutName, Tables: EncodeTables(want)}})

	rec, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	got := DecodeTables(rec.Tables, quiet)
	if !got.Equal(want) {
		t.Errorf("round trip = %v, want %v", got.All(), want.All())
	}
}

func TestDecodeNormalizesLegacyRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	got := DecodeTables([]TableRecord{
		{X: 1, Y: 2, Width: 30, Height: 120, Name: "tiny", Type: "Lounge", People: 0},
		{X: 5, Y: 5, Width: 60, Height: 60, Name: "ok", Type: "booth", People: 4},
		{X: 9, Y: 9, Width: 60, Height: 60, Name: "Bar\x07 1\n", Type: "Bar", People: 2},
	}, logger)

	first, _ := got.At(0)
	if first.Type != layout.Normal || first.Width != layout.MinSize || first.Height != 120 || first.Capacity != 1 {
		t.Errorf("normalized table = %v", first)
	}
	if err := first.Validate(); err != nil {
		t.Errorf("normalized table invalid: %v", err)
	}
	second, _ := got.At(1)
	if second.Type != layout.Booth || second.Capacity != 4 {
		t.Errorf("valid record changed: %v", second)
	}

	third, _ := got.At(2)
	if third.Name != "Bar 1" || third.Validate() != nil {
		t.Errorf("name not cleaned: %q", third.Name)
	}

	out := buf.String()
	for _, s := range []string{"unknown table type", "minimum size", "capacity", "control characters"} {
		if !strings.Contains(out, s) {
			t.Errorf("log missing %q:\n%s", s, out)
		}
	}
}

func TestFetchResponseLayout(t *testing.T) {
	body := `{"username":"club","tableLayout":[{"tableLayout":{"name":"main layout","tables":[{"x":1,"y":2,"width":100,"height":100,"name":"A","type":"VIP","people":12,"isReserved":false}]}}]}`
	var resp FetchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatal(err)
	}
	rec := resp.Layout()
	if rec == nil || len(rec.Tables) != 1 || rec.Tables[0].Type != "VIP" {
		t.Fatalf("Layout() = %+v", rec)
	}

	if (FetchResponse{}).Layout() != nil {
		t.Error("empty response should have no layout")
	}
	if NewFetchResponse("c", nil).TableLayout == nil {
		t.Error("NewFetchResponse(nil) should encode an empty array")
	}
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTables int
		wantName   string
		wantErr    bool
	}{
		{"save request", `{"tableLayout":{"name":"n","tables":[{"type":"Normal"}]}}`, 1, "n", false},
		{"fetch response", `{"tableLayout":[{"tableLayout":{"name":"m","tables":[{},{}]}}]}`, 2, "m", false},
		{"venue without layout", `{"tableLayout":[]}`, 0, "", false},
		{"bare record", `{"name":"r","tables":[]}`, 0, "r", false},
		{"bare array", `[{"name":"a"},{"name":"b"},{"name":"c"}]`, 3, "", false},
		{"missing tables", `{"tableLayout":{"name":"n"}}`, 0, "n", false},
		{"null layout", `{"tableLayout":null}`, 0, "", true},
		{"garbage", `not json`, 0, "", true},
		{"empty", `  `, 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseDocument([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("error code = %q", errors.GetCode(err))
				}
				return
			}
			if len(rec.Tables) != tt.wantTables || rec.Name != tt.wantName {
				t.Errorf("ParseDocument() = %d tables name %q", len(rec.Tables), rec.Name)
			}
		})
	}
}
