package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/tableplan/pkg/assets"
	"github.com/matzehuels/tableplan/pkg/layout"
)

// Graphviz measures in inches at 72 points per inch; one canvas unit is
// drawn as one point.
const pointsPerInch = 72.0

// Options configures DOT output.
type Options struct {
	// Title is drawn above the plan when non-empty.
	Title string

	// Assets supplies fill colours. Nil uses the built-in glyphs.
	Assets assets.Provider

	// Detailed adds type and seat count to each label.
	Detailed bool
}

// ToDOT converts tables to a Graphviz graph with pinned node positions.
// Reserved tables are drawn dashed.
func ToDOT(tables layout.TableList, opts Options) string {
	provider := opts.Assets
	if provider == nil {
		provider = assets.NewBuiltin()
	}

	var buf bytes.Buffer
	buf.WriteString("graph floorplan {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  outputorder=nodesfirst;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=18;\n", opts.Title)
	}
	buf.WriteString("  node [shape=box, style=\"filled\", fixedsize=true, fontsize=10, fontcolor=white, penwidth=1.5];\n")
	buf.WriteString("\n")

	for i, t := range tables.Tables() {
		glyph := assets.GlyphFor(provider, t.Type)
		attrs := []string{
			fmt.Sprintf("label=%q", label(t, opts.Detailed)),
			fmt.Sprintf("pos=\"%s,%s!\"", inches(t.X+t.Width/2), inches(-(t.Y + t.Height/2))),
			fmt.Sprintf("width=%s", inches(t.Width)),
			fmt.Sprintf("height=%s", inches(t.Height)),
			fmt.Sprintf("fillcolor=%q", glyph.Fill),
		}
		if t.Reserved {
			attrs = append(attrs, "style=\"filled,dashed\"", "color=\"#B00020\"")
		}
		fmt.Fprintf(&buf, "  t%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(t layout.Table, detailed bool) string {
	name := t.Name
	if name == "" {
		name = t.Type.String()
	}
	if !detailed {
		return name
	}
	l := fmt.Sprintf("%s\n%s · %d seats", name, t.Type, t.Capacity)
	if t.Reserved {
		l += "\nreserved"
	}
	return l
}

func inches(v float64) string {
	return fmt.Sprintf("%.3f", v/pointsPerInch)
}
