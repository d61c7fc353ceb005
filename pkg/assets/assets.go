// Package assets resolves table icons by name.
//
// The editor never interprets an icon; it asks a [Provider] for a [Handle]
// and passes it to whatever surface draws the table. The built-in provider
// serves terminal glyphs and fill colours for the standard table types.
package assets

import (
	"fmt"
	"strings"
	"sync"

	"github.com/matzehuels/tableplan/pkg/errors"
	"github.com/matzehuels/tableplan/pkg/layout"
)

// Handle is an opaque renderable asset.
type Handle interface {
	Name() string
}

// Provider resolves asset names.
type Provider interface {
	Resolve(name string) (Handle, error)
}

// Glyph is the built-in asset: a symbol and a fill colour.
type Glyph struct {
	ID     string
	Symbol rune
	Fill   string // hex colour, "#rrggbb"
}

func (g Glyph) Name() string { return g.ID }

// Builtin is a Provider backed by a fixed glyph table. Further glyphs can be
// registered at startup.
type Builtin struct {
	mu     sync.RWMutex
	glyphs map[string]Glyph
}

var defaultGlyphs = map[layout.TableType]Glyph{
	layout.Normal: {Symbol: '○', Fill: "#4B8BBE"},
	layout.VIP:    {Symbol: '★', Fill: "#D4AF37"},
	layout.Booth:  {Symbol: '▤', Fill: "#8E5572"},
	layout.Bar:    {Symbol: '▬', Fill: "#5C946E"},
}

// NewBuiltin returns a provider with a glyph for every table type, keyed by
// [layout.IconName].
func NewBuiltin() *Builtin {
	b := &Builtin{glyphs: make(map[string]Glyph, len(defaultGlyphs))}
	for t, g := range defaultGlyphs {
		g.ID = layout.IconName(t)
		b.glyphs[g.ID] = g
	}
	return b
}

// Register adds or replaces a glyph.
func (b *Builtin) Register(g Glyph) error {
	if g.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "glyph name is empty")
	}
	if !strings.HasPrefix(g.Fill, "#") || len(g.Fill) != 7 {
		return errors.New(errors.ErrCodeInvalidInput, "glyph %s: fill %q is not #rrggbb", g.ID, g.Fill)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.glyphs[g.ID] = g
	return nil
}

// Resolve implements Provider.
func (b *Builtin) Resolve(name string) (Handle, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	g, ok := b.glyphs[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "asset %q", name)
	}
	return g, nil
}

// GlyphFor resolves the icon of a table type through p and falls back to the
// Normal glyph when p has none or returns a non-glyph handle.
func GlyphFor(p Provider, t layout.TableType) Glyph {
	if p != nil {
		if h, err := p.Resolve(layout.IconName(t)); err == nil {
			if g, ok := h.(Glyph); ok {
				return g
			}
		}
	}
	g := defaultGlyphs[layout.Normal]
	g.ID = layout.IconName(layout.Normal)
	return g
}

// String is used in debug logs.
func (g Glyph) String() string {
	return fmt.Sprintf("%s(%c %s)", g.ID, g.Symbol, g.Fill)
}
