// Package plot renders simple line charts of time-series results as
// SVG. It backs the regression plotter and the result viewer; there is
// no interactive styling, just data lines, optional min/max bands,
// axes, and a legend.
package plot

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Default palette, one entry per added series.
var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}

type series struct {
	label string
	x, y  []float64
	color string
}

type band struct {
	x, lo, hi []float64
	color     string
}

// Chart accumulates series and renders them to SVG.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int

	lines []series
	bands []band
}

// New creates a chart with the default 800x600 canvas.
func New(title string) *Chart {
	return &Chart{Title: title, Width: 800, Height: 600}
}

// AddLine appends a data line. An empty color picks from the palette.
func (c *Chart) AddLine(label string, x, y []float64, color string) {
	if color == "" {
		color = palette[len(c.lines)%len(palette)]
	}
	c.lines = append(c.lines, series{label: label, x: x, y: y, color: color})
}

// AddBand appends a shaded min/max band.
func (c *Chart) AddBand(x, lo, hi []float64, color string) {
	if color == "" {
		color = palette[len(c.bands)%len(palette)]
	}
	c.bands = append(c.bands, band{x: x, lo: lo, hi: hi, color: color})
}

type bounds struct {
	xmin, xmax, ymin, ymax float64
}

func (c *Chart) dataBounds() bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	grow := func(x, y []float64) {
		for i := range x {
			b.xmin = math.Min(b.xmin, x[i])
			b.xmax = math.Max(b.xmax, x[i])
			b.ymin = math.Min(b.ymin, y[i])
			b.ymax = math.Max(b.ymax, y[i])
		}
	}
	for _, s := range c.lines {
		grow(s.x, s.y)
	}
	for _, bd := range c.bands {
		grow(bd.x, bd.lo)
		grow(bd.x, bd.hi)
	}
	if math.IsInf(b.xmin, 1) {
		b = bounds{0, 1, 0, 1}
	}
	if b.xmax == b.xmin {
		b.xmax = b.xmin + 1
	}
	if b.ymax == b.ymin {
		b.ymax = b.ymin + 1
	}
	return b
}

const (
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 40
	marginBottom = 50
	tickCount    = 5
)

// RenderSVG writes the chart as an SVG document.
func (c *Chart) RenderSVG(w io.Writer) error {
	b := c.dataBounds()
	plotW := float64(c.Width - marginLeft - marginRight)
	plotH := float64(c.Height - marginTop - marginBottom)

	px := func(x float64) float64 {
		return marginLeft + (x-b.xmin)/(b.xmax-b.xmin)*plotW
	}
	py := func(y float64) float64 {
		return float64(c.Height-marginBottom) - (y-b.ymin)/(b.ymax-b.ymin)*plotH
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", c.Width, c.Height)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="white"/>`+"\n", c.Width, c.Height)

	// Bands under the lines.
	for _, bd := range c.bands {
		var pts []string
		for i := range bd.x {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", px(bd.x[i]), py(bd.hi[i])))
		}
		for i := len(bd.x) - 1; i >= 0; i-- {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", px(bd.x[i]), py(bd.lo[i])))
		}
		fmt.Fprintf(&sb, `<polygon points="%s" fill="%s" fill-opacity="0.3" stroke="none"/>`+"\n",
			strings.Join(pts, " "), bd.color)
	}

	for _, s := range c.lines {
		var pts []string
		for i := range s.x {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", px(s.x[i]), py(s.y[i])))
		}
		fmt.Fprintf(&sb, `<polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			strings.Join(pts, " "), s.color)
	}

	// Axes.
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n",
		marginLeft, c.Height-marginBottom, c.Width-marginRight, c.Height-marginBottom)
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n",
		marginLeft, marginTop, marginLeft, c.Height-marginBottom)

	// Ticks and labels.
	for i := 0; i <= tickCount; i++ {
		frac := float64(i) / tickCount
		xv := b.xmin + frac*(b.xmax-b.xmin)
		yv := b.ymin + frac*(b.ymax-b.ymin)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%d" font-size="11" text-anchor="middle">%s</text>`+"\n",
			px(xv), c.Height-marginBottom+18, formatTick(xv))
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" font-size="11" text-anchor="end">%s</text>`+"\n",
			marginLeft-6, py(yv)+4, formatTick(yv))
	}

	if c.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="16" text-anchor="middle">%s</text>`+"\n",
			c.Width/2, marginTop-14, escape(c.Title))
	}
	if c.XLabel != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="13" text-anchor="middle">%s</text>`+"\n",
			c.Width/2, c.Height-10, escape(c.XLabel))
	}
	if c.YLabel != "" {
		fmt.Fprintf(&sb, `<text x="16" y="%d" font-size="13" text-anchor="middle" transform="rotate(-90 16 %d)">%s</text>`+"\n",
			c.Height/2, c.Height/2, escape(c.YLabel))
	}

	// Legend in the top-right corner.
	ly := marginTop + 8
	for _, s := range c.lines {
		if s.label == "" {
			continue
		}
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
			c.Width-marginRight-130, ly, c.Width-marginRight-105, ly, s.color)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="12">%s</text>`+"\n",
			c.Width-marginRight-98, ly+4, escape(s.label))
		ly += 18
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// SaveSVG renders the chart to a file.
func (c *Chart) SaveSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := c.RenderSVG(f); err != nil {
		return fmt.Errorf("plot: failed to render %s: %w", path, err)
	}
	return nil
}

func formatTick(v float64) string {
	if v != 0 && (math.Abs(v) < 1e-3 || math.Abs(v) >= 1e4) {
		return fmt.Sprintf("%.2e", v)
	}
	return fmt.Sprintf("%.3g", v)
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
