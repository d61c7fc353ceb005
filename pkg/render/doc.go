// Package render draws seating layouts outside the interactive editor.
//
// Two targets are supported:
//
//   - Graphviz: [ToDOT] writes each table as a fixed-size box pinned at its
//     canvas position; [RenderSVG] and [RenderPNG] lay it out with neato,
//     which honours pinned positions. [Export] bundles these with the JSON
//     wire format behind a single format switch.
//   - Terminal: [Viewport] maps canvas points to character cells and
//     [Viewport.Rasterize] produces a cell grid the CLI styles and prints.
//
// Canvas coordinates grow right and down; Graphviz grows up, so y is
// negated when writing DOT.
//
//	dot := render.ToDOT(tables, render.Options{Title: "club-1"})
//	svg, err := render.RenderSVG(ctx, dot)
package render
