package summary

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/autoinsight/internal/analysis"
	"github.com/KaramelBytes/autoinsight/internal/table"
)

func TestCategoricalSummaryColorScenario(t *testing.T) {
	tb := table.New("c.csv", []string{"color"}, [][]string{{"red"}, {"red"}, {"blue"}, {"green"}})
	got := ForCategorical(analysis.AnalyzeCategorical(tb, []string{"color"}))
	want := []string{
		"The dataset contains 4 rows and 1 categorical columns.",
		"Most columns have clear majority categories such as: color: red (2 rows).",
		"Some columns contain rare categories occurring only once, such as: color: [blue, green].",
		"There are no missing values in the categorical columns.",
		"Overall, the dataset is clean and suitable for exploratory analysis or simple classification tasks.",
	}
	if len(got) != len(want) {
		t.Fatalf("sentences = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
}

func TestCategoricalSummaryNoDistribution(t *testing.T) {
	tb := table.New("c.csv", []string{"empty", "k"}, [][]string{{"", "a"}, {"", "a"}})
	got := ForCategorical(analysis.AnalyzeCategorical(tb, []string{"empty"}))
	if got[1] != "The dataset does not show clear dominant categories." {
		t.Fatalf("majority sentence = %q", got[1])
	}
	if got[2] != "No extremely rare categories were detected." {
		t.Fatalf("rare sentence = %q", got[2])
	}
	if got[3] != "The dataset contains 2 missing values across categorical columns." {
		t.Fatalf("missing sentence = %q", got[3])
	}
}

func TestNumericalSummary(t *testing.T) {
	header := []string{"a", "b", "c", "d"}
	records := [][]string{
		{"1", "10", "3", "1"},
		{"2", "8", "1", "1"},
		{"3", "6", "2", "1"},
		{"4", "4", "", "1"},
		{"100", "2", "5", "1"},
	}
	tb := table.New("n.csv", header, records)
	got := ForNumerical(analysis.AnalyzeNumerical(tb, header))
	want := []string{
		"The dataset contains 5 rows and 4 numerical columns.",
		"Typical averages include: {a: 22.00, b: 6.00, c: 2.75}.",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
	if !strings.HasPrefix(got[2], "The strongest correlation is between ") {
		t.Fatalf("correlation sentence = %q", got[2])
	}
	tail := got[len(got)-3:]
	if tail[0] != "There are 1 missing values in the numerical columns." {
		t.Fatalf("missing sentence = %q", tail[0])
	}
	if tail[1] != "Some outliers were detected in the dataset." {
		t.Fatalf("outlier sentence = %q", tail[1])
	}
	if tail[2] != "Overall, the dataset is clean and suitable for analysis or ML tasks." {
		t.Fatalf("closing = %q", tail[2])
	}
}

func TestNumericalSummaryWithoutCorrelation(t *testing.T) {
	tb := table.New("n.csv", []string{"x"}, [][]string{{"1"}, {"2"}, {"3"}})
	got := ForNumerical(analysis.AnalyzeNumerical(tb, []string{"x"}))
	want := []string{
		"The dataset contains 3 rows and 1 numerical columns.",
		"Typical averages include: {x: 2.00}.",
		"All numerical columns are complete with no missing values.",
		"No major outliers were found in the numerical columns.",
		"Overall, the dataset is clean and suitable for analysis or ML tasks.",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("sentences = %#v", got)
	}
}

func TestTopCorrelationSigned(t *testing.T) {
	s := Sentence(TopCorrelation{A: "a", B: "b", R: -0.9712})
	if s != "The strongest correlation is between a and b (correlation: -0.97)." {
		t.Fatalf("sentence = %q", s)
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"One.", "Two."}); got != "One. Two." {
		t.Fatalf("join = %q", got)
	}
}
