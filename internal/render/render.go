// Package render draws a computed coordinate assignment as a colorized
// ASCII strip, one line per layer, in the teacher's printer.go idiom: named
// color helpers gated on TTY detection, rather than ANSI codes inlined at
// call sites.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/brandeskopf/xcoord/xcoord"
)

func colorNode() *color.Color {
	return color.New(color.FgCyan)
}

func colorDummy() *color.Color {
	return color.New(color.FgHiBlack)
}

func colorAxis() *color.Color {
	return color.New(color.FgHiBlack)
}

// Renderer writes a layout as an ASCII strip to an underlying writer,
// colorizing output only when that writer is a terminal.
type Renderer struct {
	w      io.Writer
	color  bool
	scale  float64 // characters per unit x-coordinate; 0 picks a default.
}

// New creates a Renderer writing to w. Color is enabled automatically when
// w is *os.File and isatty reports it as a terminal; a non-nil forceColor
// overrides that detection.
func New(w io.Writer, forceColor *bool) *Renderer {
	useColor := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if forceColor != nil {
		useColor = *forceColor
	}
	return &Renderer{w: w, color: useColor}
}

// Render writes one line per layer of g's layering, placing each vertex at
// a column proportional to its x-coordinate, dummies dimmed and real
// vertices in the node color.
func (r *Renderer) Render(g *xcoord.Graph, xs map[xcoord.VertexID]float64) error {
	layering, err := g.BuildLayering()
	if err != nil {
		return err
	}

	scale := r.scale
	if scale == 0 {
		scale = 1.0
	}

	minX, maxX := minMax(xs)
	width := int((maxX-minX)*scale) + 8

	for rank, layer := range layering {
		line := make([]rune, width)
		for i := range line {
			line[i] = ' '
		}
		for _, v := range layer {
			a, _ := g.Node(v)
			col := int((xs[v] - minX) * scale)
			if col < 0 {
				col = 0
			}
			if col >= len(line) {
				col = len(line) - 1
			}
			glyph := '#'
			if a.Dummy.IsDummy() {
				glyph = '.'
			}
			line[col] = glyph
		}

		rendered := string(line)
		if _, err := fmt.Fprintf(r.w, "%s %s\n", r.rankLabel(rank), r.colorizeLine(layer, g, rendered)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) rankLabel(rank int) string {
	label := fmt.Sprintf("L%-3d", rank)
	if !r.color {
		return label
	}
	return colorAxis().Sprint(label)
}

func (r *Renderer) colorizeLine(layer []xcoord.VertexID, g *xcoord.Graph, line string) string {
	if !r.color {
		return line
	}
	var b strings.Builder
	for _, ch := range line {
		switch ch {
		case '#':
			b.WriteString(colorNode().Sprintf("%c", ch))
		case '.':
			b.WriteString(colorDummy().Sprintf("%c", ch))
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func minMax(xs map[xcoord.VertexID]float64) (float64, float64) {
	first := true
	var lo, hi float64
	for _, x := range xs {
		if first {
			lo, hi = x, x
			first = false
			continue
		}
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// Summary formats the per-alignment and final widths the way the teacher's
// PrintReport formats a workflow footer, for the CLI's closing status line.
func Summary(w io.Writer, widths map[string]float64, selected string, final float64, useColor bool) {
	bold := fmt.Sprintf
	if useColor {
		bold = color.New(color.Bold).Sprintf
	}
	fmt.Fprintln(w, bold("layout summary"))
	for _, key := range []string{"ul", "ur", "dl", "dr"} {
		marker := "  "
		if key == selected {
			marker = "->"
		}
		fmt.Fprintf(w, "%s %-2s width=%.2f\n", marker, key, widths[key])
	}
	fmt.Fprintf(w, "final width: %.2f\n", final)
}
