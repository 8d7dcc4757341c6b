package analysis

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/box/scoring"
)

const histogramBins = 15

// SizeHistogram bins the sizes of every square in results.
func SizeHistogram(results []*Result) histogram.Histogram {
	var sizes []float64
	for _, r := range results {
		sizes = append(sizes, lo.Map(r.Squares, func(sq scoring.Square, _ int) float64 {
			return float64(sq.Size)
		})...)
	}
	return histogram.Hist(histogramBins, sizes)
}

// ScoreHistogram bins every player score in results.
func ScoreHistogram(results []*Result) histogram.Histogram {
	scores := lo.FlatMap(results, func(r *Result, _ int) []float64 {
		return []float64{float64(r.PlayerScores[0]), float64(r.PlayerScores[1])}
	})
	return histogram.Hist(histogramBins, scores)
}

// WriteHistogram draws h as text, scaling the bars to width columns.
func WriteHistogram(w io.Writer, title string, h histogram.Histogram, width int) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if h.Count == 0 {
		_, err := fmt.Fprintln(w, "(no data)")
		return err
	}
	return histogram.Fprint(w, h, histogram.Linear(width))
}
