// Command ema-plot is a quick interactive viewer for simple_plot.dat
// solver results: it plots the mean trace with its min/max envelope for
// every species in the file.
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/emalab/ematools/pkg/regression"
)

var seriesColors = []color.NRGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
}

func main() {
	path := "."
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if filepath.Ext(path) != ".dat" {
		path = filepath.Join(path, "simple_plot.dat")
	}

	series, err := regression.SimplePlotReader{}.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("loaded %s: %d series, %d samples\n", path, len(series), len(series[0].X))

	title := filepath.Base(filepath.Dir(path))

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Simple plot results - " + title))
		w.Option(app.Size(unit.Dp(900), unit.Dp(640)))

		if err := run(w, series); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run(w *app.Window, series []regression.Series) error {
	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()
			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					switch ke.Name {
					case key.NameEscape, "Q":
						return nil
					}
				}
			}

			paint.Fill(gtx.Ops, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			renderChart(gtx, series, e.Size.X, e.Size.Y)

			e.Frame(gtx.Ops)
		}
	}
}

const (
	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 30.0
	marginBottom = 50.0
)

func renderChart(gtx layout.Context, series []regression.Series, width, height int) {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for i := range s.X {
			xmin = math.Min(xmin, s.X[i])
			xmax = math.Max(xmax, s.X[i])
			ymin = math.Min(ymin, s.YMin[i])
			ymax = math.Max(ymax, s.YMax[i])
		}
	}
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}

	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom
	px := func(x float64) float64 { return marginLeft + (x-xmin)/(xmax-xmin)*plotW }
	py := func(y float64) float64 { return float64(height) - marginBottom - (y-ymin)/(ymax-ymin)*plotH }

	black := color.NRGBA{A: 0xff}

	// Axes.
	renderLine(gtx, marginLeft, float64(height)-marginBottom,
		float64(width)-marginRight, float64(height)-marginBottom, 1.5, black)
	renderLine(gtx, marginLeft, marginTop, marginLeft, float64(height)-marginBottom, 1.5, black)

	// Tick labels.
	for i := 0; i <= 5; i++ {
		frac := float64(i) / 5
		xv := xmin + frac*(xmax-xmin)
		yv := ymin + frac*(ymax-ymin)
		renderText(gtx, px(xv)-20, float64(height)-marginBottom+8, fmt.Sprintf("%.3g", xv))
		renderText(gtx, 4, py(yv)-8, fmt.Sprintf("%.3g", yv))
	}

	for n, s := range series {
		c := seriesColors[n%len(seriesColors)]
		band := c
		band.A = 0x50

		for i := 1; i < len(s.X); i++ {
			// Envelope drawn as thin min/max traces rather than a fill;
			// good enough for an interactive check.
			renderLine(gtx, px(s.X[i-1]), py(s.YMin[i-1]), px(s.X[i]), py(s.YMin[i]), 1, band)
			renderLine(gtx, px(s.X[i-1]), py(s.YMax[i-1]), px(s.X[i]), py(s.YMax[i]), 1, band)
			renderLine(gtx, px(s.X[i-1]), py(s.Y[i-1]), px(s.X[i]), py(s.Y[i]), 2, c)
		}
	}
}

// renderLine draws a stroked line segment, matching the board viewer's
// track rendering.
func renderLine(gtx layout.Context, x1, y1, x2, y2, width float64, lineColor color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y2)))
	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()
	paint.FillShape(gtx.Ops, lineColor, stroke)
}

func renderText(gtx layout.Context, x, y float64, s string) {
	collection := gofont.Collection()
	shaper := text.NewShaper(text.WithCollection(collection))

	macro := op.Record(gtx.Ops)
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
	paint.ColorOp{Color: color.NRGBA{A: 0xff}}.Add(gtx.Ops)

	label := widget.Label{
		Alignment: text.Start,
		MaxLines:  1,
	}
	label.Layout(gtx, shaper, font.Font{}, unit.Sp(12), s, op.CallOp{})

	stack.Pop()
	call := macro.Stop()
	call.Add(gtx.Ops)
}
