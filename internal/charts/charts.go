// Package charts maps a chart kind to a pure function turning parsed
// spreadsheet rows and an axis selection into a renderable series. All
// selection state stays with the caller.
package charts

import (
	"errors"
	"fmt"
	"math"

	"excel-analytics-api/internal/spreadsheet"
)

type Kind string

const (
	Bar       Kind = "bar"
	Line      Kind = "line"
	Pie       Kind = "pie"
	Scatter   Kind = "scatter"
	Histogram Kind = "histogram"
)

const defaultBins = 10

var ErrUnknownKind = errors.New("unknown chart kind")

type Selection struct {
	X    string
	Y    string
	Bins int
}

type Series struct {
	Kind   Kind         `json:"kind"`
	Labels []string     `json:"labels,omitempty"`
	Values []float64    `json:"values,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
}

type builder func(rows []spreadsheet.Row, sel Selection) *Series

var builders = map[Kind]builder{
	Bar:       labeledValues,
	Line:      labeledValues,
	Pie:       labeledValues,
	Scatter:   scatterPoints,
	Histogram: histogramBins,
}

func Build(kind Kind, rows []spreadsheet.Row, sel Selection) (*Series, error) {
	b, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	s := b(rows, sel)
	s.Kind = kind

	return s, nil
}

// labeledValues pairs the display form of the X cell with the numeric Y
// cell. Rows without a numeric Y are skipped.
func labeledValues(rows []spreadsheet.Row, sel Selection) *Series {
	s := &Series{Labels: []string{}, Values: []float64{}}
	for _, row := range rows {
		y := row[sel.Y]
		if y.Kind != spreadsheet.KindNumber {
			continue
		}
		s.Labels = append(s.Labels, row[sel.X].String())
		s.Values = append(s.Values, y.Number)
	}
	return s
}

func scatterPoints(rows []spreadsheet.Row, sel Selection) *Series {
	s := &Series{Points: [][2]float64{}}
	for _, row := range rows {
		x, y := row[sel.X], row[sel.Y]
		if x.Kind != spreadsheet.KindNumber || y.Kind != spreadsheet.KindNumber {
			continue
		}
		s.Points = append(s.Points, [2]float64{x.Number, y.Number})
	}
	return s
}

// histogramBins buckets the numeric X column into equal-width bins.
func histogramBins(rows []spreadsheet.Row, sel Selection) *Series {
	bins := sel.Bins
	if bins <= 0 {
		bins = defaultBins
	}

	var values []float64
	for _, row := range rows {
		if c := row[sel.X]; c.Kind == spreadsheet.KindNumber {
			values = append(values, c.Number)
		}
	}

	s := &Series{Labels: []string{}, Values: []float64{}}
	if len(values) == 0 {
		return s
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		// all values equal, a single bucket holds everything
		s.Labels = append(s.Labels, fmt.Sprintf("%g", lo))
		s.Values = append(s.Values, float64(len(values)))
		return s
	}

	counts := make([]float64, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	for i := 0; i < bins; i++ {
		from := lo + float64(i)*width
		s.Labels = append(s.Labels, fmt.Sprintf("%g to %g", from, from+width))
	}
	s.Values = counts

	return s
}
