// Package charts renders analysis results as PNG images with gonum/plot.
// Every chart is drawn on its own plot created inside render; nothing is
// shared between charts or requests.
package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Chart is a rendered image.
type Chart struct {
	Name string
	PNG  []byte
}

// Base64 encodes the PNG for JSON transport.
func (c Chart) Base64() string { return base64.StdEncoding.EncodeToString(c.PNG) }

// Options sizes the output, in inches.
type Options struct {
	Width         float64
	Height        float64
	HeatmapHeight float64
	// MaxColumns bounds the per-column charts (bars, histograms, box plots).
	MaxColumns int
}

// DefaultOptions returns 10x6 in charts and a 10x8 in heatmap.
func DefaultOptions() Options {
	return Options{Width: 10, Height: 6, HeatmapHeight: 8, MaxColumns: 3}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.HeatmapHeight <= 0 {
		o.HeatmapHeight = d.HeatmapHeight
	}
	if o.MaxColumns <= 0 {
		o.MaxColumns = d.MaxColumns
	}
	return o
}

var (
	barBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// render creates a plot, lets draw populate it and encodes it as PNG.
func render(name string, width, height float64, draw func(p *plot.Plot) error) (Chart, error) {
	p := plot.New()
	if err := draw(p); err != nil {
		return Chart{}, fmt.Errorf("render %s: %w", name, err)
	}
	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, "png")
	if err != nil {
		return Chart{}, fmt.Errorf("render %s: %w", name, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return Chart{}, fmt.Errorf("encode %s: %w", name, err)
	}
	return Chart{Name: name, PNG: buf.Bytes()}, nil
}

// Map keys charts by name with base64 payloads.
func Map(cs []Chart) map[string]string {
	out := make(map[string]string, len(cs))
	for _, c := range cs {
		out[c.Name] = c.Base64()
	}
	return out
}
