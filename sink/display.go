package sink

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
)

// DisplayOptions controls row layout and brightness of a Display.
type DisplayOptions struct {
	RowHeight  int
	MaxEntries int
	Brightness int // percent, 0..100
}

// Display renders the outcome onto a Matrix: one row per result with the route label, total
// minutes and leave-in minutes in the route color. The best row carries a bar on its left edge.
type Display struct {
	m      Matrix
	opts   DisplayOptions
	colors map[[3]uint8]color.RGBA
}

// NewDisplay creates a Display drawing onto m; zero options fall back to defaults.
func NewDisplay(m Matrix, opts DisplayOptions) *Display {
	if opts.RowHeight < glyphHeight {
		opts.RowHeight = glyphHeight + 2
	}
	if opts.Brightness <= 0 || opts.Brightness > 100 {
		opts.Brightness = 100
	}
	return &Display{m: m, opts: opts, colors: make(map[[3]uint8]color.RGBA)}
}

func (d *Display) Name() string { return "display" }

// Entries is the number of rows the display shows.
func (d *Display) Entries() int {
	n := d.m.Bounds().Dy() / d.opts.RowHeight
	if d.opts.MaxEntries > 0 && d.opts.MaxEntries < n {
		n = d.opts.MaxEntries
	}
	return n
}

func (d *Display) Publish(_ context.Context, o planner.Outcome) error {
	frame := d.Render(o)
	return d.m.Swap(frame)
}

// Render draws the outcome into a new off-screen frame.
func (d *Display) Render(o planner.Outcome) *image.RGBA {
	bounds := d.m.Bounds()
	frame := image.NewRGBA(bounds)
	o = o.Top(d.Entries())
	best := o.BestIndex()

	for i, r := range o.Results {
		y := bounds.Min.Y + i*d.opts.RowHeight
		top := y + (d.opts.RowHeight-glyphHeight)/2
		c := d.color(r.Color)

		if i == best {
			bar := d.color([3]uint8{255, 255, 255})
			for by := y; by < y+d.opts.RowHeight && by < bounds.Max.Y; by++ {
				frame.SetRGBA(bounds.Min.X, by, bar)
			}
		}

		drawText(frame, bounds.Min.X+2, top, rowText(r), c)
	}
	return frame
}

func rowText(r planner.Result) string {
	if !r.Available {
		return fmt.Sprintf("%-4s --", r.Label)
	}
	total, _ := r.TotalMinutes()
	leave, _ := r.LeaveInMinutes()
	return fmt.Sprintf("%-4s %2d %2d", r.Label, total, leave)
}

func (d *Display) color(rgb [3]uint8) color.RGBA {
	if c, ok := d.colors[rgb]; ok {
		return c
	}
	scale := func(v uint8) uint8 { return uint8(int(v) * d.opts.Brightness / 100) }
	c := color.RGBA{R: scale(rgb[0]), G: scale(rgb[1]), B: scale(rgb[2]), A: 255}
	d.colors[rgb] = c
	return c
}

func (d *Display) Close() error { return d.m.Close() }
