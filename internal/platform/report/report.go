// Package report prints console previews of the tables written by the
// exploration flow.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Frame is an in-memory table of string cells. An empty cell is a missing
// value.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Shape returns the number of rows and columns.
func (f Frame) Shape() (int, int) {
	return len(f.Rows), len(f.Columns)
}

// Column returns the cells of column i. Short rows yield empty cells.
func (f Frame) Column(i int) []string {
	out := make([]string, len(f.Rows))
	for r, row := range f.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// Stats is the describe summary of a numeric column.
type Stats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// PrintHead renders the first n rows of f under title.
func PrintHead(w io.Writer, f Frame, n int, title string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)

	header := table.Row{}
	for _, c := range f.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for i, row := range f.Rows {
		if i == n {
			break
		}
		r := make(table.Row, len(row))
		for j, cell := range row {
			r[j] = cell
		}
		t.AppendRow(r)
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Summarize prints the shape, the column names, the missing values per
// column and a describe table for the numeric columns of f.
func Summarize(w io.Writer, f Frame, name string) {
	rows, cols := f.Shape()
	fmt.Fprintf(w, "\n--- %s summary ---\n", name)
	fmt.Fprintf(w, "Shape: (%d, %d)\n", rows, cols)
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(f.Columns, ", "))

	var missing []string
	for i, c := range f.Columns {
		n := 0
		for _, cell := range f.Column(i) {
			if strings.TrimSpace(cell) == "" {
				n++
			}
		}
		if n > 0 {
			missing = append(missing, fmt.Sprintf("%s=%d", c, n))
		}
	}
	if len(missing) == 0 {
		fmt.Fprintln(w, "Missing values: none")
	} else {
		fmt.Fprintf(w, "Missing values: %s\n", strings.Join(missing, ", "))
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	header := table.Row{""}
	var stats []Stats
	for i, c := range f.Columns {
		values, ok := numericColumn(f.Column(i))
		if !ok {
			continue
		}
		header = append(header, c)
		stats = append(stats, Describe(values))
	}
	if len(stats) == 0 {
		return
	}
	t.AppendHeader(header)
	labels := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	for li, label := range labels {
		row := table.Row{label}
		for _, s := range stats {
			row = append(row, s.field(li))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max of values. Quartiles use linear interpolation between closest
// ranks. Std is NaN for fewer than two values.
func Describe(values []float64) Stats {
	n := len(values)
	if n == 0 {
		nan := math.NaN()
		return Stats{Mean: nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	std := math.NaN()
	if n > 1 {
		var ss float64
		for _, v := range sorted {
			ss += (v - mean) * (v - mean)
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return Stats{
		Count: n,
		Mean:  mean,
		Std:   std,
		Min:   sorted[0],
		P25:   quantile(sorted, 0.25),
		P50:   quantile(sorted, 0.5),
		P75:   quantile(sorted, 0.75),
		Max:   sorted[n-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func (s Stats) field(i int) string {
	switch i {
	case 0:
		return strconv.Itoa(s.Count)
	case 1:
		return formatFloat(s.Mean)
	case 2:
		return formatFloat(s.Std)
	case 3:
		return formatFloat(s.Min)
	case 4:
		return formatFloat(s.P25)
	case 5:
		return formatFloat(s.P50)
	case 6:
		return formatFloat(s.P75)
	default:
		return formatFloat(s.Max)
	}
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// numericColumn parses the non-empty cells of a column. It reports false
// when any of them is not a finite number or when all of them are empty.
func numericColumn(cells []string) ([]float64, bool) {
	var values []float64
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		values = append(values, v)
	}
	return values, len(values) > 0
}
