package charts

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"github.com/KaramelBytes/autoinsight/internal/table"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func names(cs []Chart) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestFoldSingletons(t *testing.T) {
	labels, values := foldSingletons([]analysis.CategoryCount{{Value: "red", Count: 3}, {Value: "blue", Count: 2}, {Value: "green", Count: 1}, {Value: "pink", Count: 1}})
	if len(labels) != 3 || labels[2] != "Others" || values[2] != 2 || values[0] != 3 {
		t.Fatalf("labels=%v values=%v", labels, values)
	}
	labels, _ = foldSingletons([]analysis.CategoryCount{{Value: "a", Count: 2}})
	if len(labels) != 1 {
		t.Fatalf("no Others bar expected, got %v", labels)
	}
}

func TestCategoricalCharts(t *testing.T) {
	header := []string{"c1", "c2", "c3", "c4", "empty"}
	records := [][]string{
		{"a", "x", "p", "q", ""},
		{"a", "y", "p", "q", ""},
		{"b", "x", "r", "q", ""},
	}
	tb := table.New("cat.csv", header, records)
	a := analysis.AnalyzeCategorical(tb, []string{"empty", "c1", "c2", "c3", "c4"})
	cs, err := Categorical(a, DefaultOptions())
	if err != nil {
		t.Fatalf("Categorical: %v", err)
	}
	// only the first three columns are charted; the empty one draws nothing
	got := names(cs)
	if len(got) != 2 || got[0] != "bar_c1" || got[1] != "bar_c2" {
		t.Fatalf("charts = %v", got)
	}
	for _, c := range cs {
		if !bytes.HasPrefix(c.PNG, pngMagic) {
			t.Fatalf("%s is not a PNG", c.Name)
		}
	}
}

func TestNumericalCharts(t *testing.T) {
	header := []string{"x", "y", "z", "w"}
	records := [][]string{
		{"1", "2", "5", "1"},
		{"2", "4", "3", "1"},
		{"3", "6", "4", "1"},
		{"4", "8", "", "1"},
		{"100", "10", "2", "1"},
	}
	tb := table.New("num.csv", header, records)
	a := analysis.AnalyzeNumerical(tb, header)
	opt := Options{Width: 4, Height: 3}
	cs, err := Numerical(a, opt)
	if err != nil {
		t.Fatalf("Numerical: %v", err)
	}
	want := []string{"correlation_matrix", "outliers", "hist_x", "box_x", "hist_y", "box_y", "hist_z", "box_z"}
	got := names(cs)
	if len(got) != len(want) {
		t.Fatalf("charts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chart %d = %q, want %q", i, got[i], want[i])
		}
		if !bytes.HasPrefix(cs[i].PNG, pngMagic) {
			t.Fatalf("%s is not a PNG", got[i])
		}
	}
	m := Map(cs)
	raw, err := base64.StdEncoding.DecodeString(m["outliers"])
	if err != nil || !bytes.Equal(raw, cs[1].PNG) {
		t.Fatalf("base64 round trip failed: %v", err)
	}
}

func TestNumericalChartsWithoutOutliers(t *testing.T) {
	tb := table.New("n.csv", []string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})
	cs, err := Numerical(analysis.AnalyzeNumerical(tb, []string{"a"}), Options{Width: 3, Height: 2})
	if err != nil {
		t.Fatalf("Numerical: %v", err)
	}
	for _, c := range cs {
		if c.Name == "outliers" {
			t.Fatalf("outlier chart drawn with no outliers")
		}
	}
	if len(cs) != 3 {
		t.Fatalf("charts = %v", names(cs))
	}
}
