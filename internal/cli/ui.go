package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tableplan/pkg/assets"
	"github.com/matzehuels/tableplan/pkg/layout"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle renders venue names in headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders the selected table's details.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleReserved    = lipgloss.NewStyle().Foreground(colorRed)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	stylePath        = lipgloss.NewStyle().Foreground(colorWhite)
)

// statusIcons maps a message kind to its leading glyph.
var statusIcons = map[string]string{
	"success": lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	"warning": lipgloss.NewStyle().Foreground(colorYellow).Render("!"),
	"info":    lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

// typeStyle colours text with the glyph fill of a table type.
func typeStyle(p assets.Provider, t layout.TableType) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(assets.GlyphFor(p, t).Fill))
}

// =============================================================================
// Status Output
// =============================================================================

func printStatus(kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if kind == "warning" {
		msg = StyleWarning.Render(msg)
	}
	fmt.Println(statusIcons[kind] + " " + msg)
}

func printSuccess(format string, args ...any) { printStatus("success", format, args...) }
func printWarning(format string, args ...any) { printStatus("warning", format, args...) }
func printInfo(format string, args ...any)    { printStatus("info", format, args...) }

// printDetail prints an indented, dimmed line under a status message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written or existing file path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + stylePath.Render(path))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printLayoutStats prints table, seat and reservation totals on one line.
func printLayoutStats(tables, seats, reserved int) {
	fmt.Println("  " + layoutStats(tables, seats, reserved))
}

func layoutStats(tables, seats, reserved int) string {
	parts := []string{
		StyleDim.Render(plural(tables, "table")),
		StyleDim.Render(plural(seats, "seat")),
	}
	if reserved > 0 {
		parts = append(parts, styleReserved.Render(fmt.Sprintf("%d reserved", reserved)))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
