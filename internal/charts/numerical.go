package charts

import (
	"fmt"
	"image/color"

	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const histBins = 30

// Numerical draws the correlation heatmap, the outlier bar chart (only when
// some column has outliers) and a histogram plus box plot for each leading
// numerical column.
func Numerical(a *analysis.NumericalAnalysis, opt Options) ([]Chart, error) {
	opt = opt.normalized()
	var out []Chart
	if len(a.Corr.Columns) > 0 {
		c, err := render("correlation_matrix", opt.Width, opt.HeatmapHeight, func(p *plot.Plot) error {
			return drawHeatmap(p, a.Corr)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if a.AnyOutliers() {
		c, err := render("outliers", opt.Width, opt.Height, func(p *plot.Plot) error {
			return drawOutliers(p, a.Columns)
		})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	for i, col := range a.Columns {
		if i == opt.MaxColumns {
			break
		}
		if len(col.Values) == 0 {
			continue
		}
		h, err := render("hist_"+col.Name, opt.Width, opt.Height, func(p *plot.Plot) error {
			p.Title.Text = "Distribution of " + col.Name
			p.Y.Label.Text = "Count"
			hist, err := plotter.NewHist(plotter.Values(col.Values), histBins)
			if err != nil {
				return err
			}
			hist.FillColor = barBlue
			p.Add(hist)
			return nil
		})
		if err != nil {
			return nil, err
		}
		b, err := render("box_"+col.Name, opt.Width, opt.Height, func(p *plot.Plot) error {
			p.Title.Text = "Boxplot of " + col.Name
			box, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(col.Values))
			if err != nil {
				return err
			}
			box.Horizontal = true
			p.Add(box)
			p.NominalY(col.Name)
			return nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, h, b)
	}
	return out, nil
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ with the first
// column drawn on the top row.
type corrGrid struct {
	m analysis.CorrMatrix
}

func (g corrGrid) Dims() (c, r int)   { n := len(g.m.Columns); return n, n }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
func (g corrGrid) Z(c, r int) float64 { return float64(g.m.Values[len(g.m.Columns)-1-r][c]) }

func drawHeatmap(p *plot.Plot, m analysis.CorrMatrix) error {
	p.Title.Text = "Correlation Matrix"
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	n := len(m.Columns)
	var xys plotter.XYs
	var texts []string
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := m.Values[n-1-r][c]
			if !v.Valid() {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			texts = append(texts, fmt.Sprintf("%.2f", float64(v)))
		}
	}
	if len(xys) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	p.NominalX(m.Columns...)
	rows := make([]string, n)
	for i, name := range m.Columns {
		rows[n-1-i] = name
	}
	p.NominalY(rows...)
	return nil
}

func drawOutliers(p *plot.Plot, cols []analysis.NumericalColumn) error {
	p.Title.Text = "Outliers Detection"
	p.X.Label.Text = "Columns"
	p.Y.Label.Text = "Number of Outliers"
	names := make([]string, len(cols))
	vals := make(plotter.Values, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		vals[i] = float64(c.Outliers)
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = red
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	return nil
}
