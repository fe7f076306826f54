package charts

import (
	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Categorical draws one bar chart per leading categorical column. Values
// seen once are folded into an "Others" bar.
func Categorical(a *analysis.CategoricalAnalysis, opt Options) ([]Chart, error) {
	opt = opt.normalized()
	var out []Chart
	for i, col := range a.Columns {
		if i == opt.MaxColumns {
			break
		}
		labels, values := foldSingletons(col.Counts)
		if len(values) == 0 {
			continue
		}
		c, err := render("bar_"+col.Name, opt.Width, opt.Height, func(p *plot.Plot) error {
			p.Title.Text = "Bar Plot of " + col.Name
			p.Y.Label.Text = "Count"
			bars, err := plotter.NewBarChart(values, vg.Points(20))
			if err != nil {
				return err
			}
			bars.Color = barBlue
			bars.LineStyle.Width = 0
			p.Add(bars)
			p.NominalX(labels...)
			return nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func foldSingletons(counts []analysis.CategoryCount) ([]string, plotter.Values) {
	var labels []string
	var values plotter.Values
	others := 0
	for _, cc := range counts {
		if cc.Count == 1 {
			others++
			continue
		}
		labels = append(labels, cc.Value)
		values = append(values, float64(cc.Count))
	}
	if others > 0 {
		labels = append(labels, "Others")
		values = append(values, float64(others))
	}
	return labels, values
}
