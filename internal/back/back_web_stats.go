package back

// This file contains functions specific to the web frontend.

import (
	"bytes"
	"io"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

const emptySVG = `<svg xmlns="http://www.w3.org/2000/svg"/>`

// ratingBinWidth is the width of a histogram bar in rating units.
const ratingBinWidth = 100

// GetRatingsDistributionGraph renders the share of players per rating bin
// as an SVG bar chart.
func (b *Back) GetRatingsDistributionGraph() ([]byte, error) {
	start := time.Now()
	defer func() { log.Printf("info: computed ratings stats in %s", time.Since(start)) }()

	bars, maxValue := b.getRatingsStats(chart.Style{
		FontColor:   drawing.ColorBlack,
		FillColor:   drawing.ColorFromHex("285577"),
		StrokeColor: drawing.ColorFromHex("4c7899"),
		StrokeWidth: 1,
	})
	if len(bars) == 0 {
		return []byte(emptySVG), nil
	}

	graph := chart.BarChart{
		Height: 300,
		Width:  600,
		Canvas: chart.Style{FillColor: chart.ColorTransparent},
		Background: chart.Style{
			FillColor: chart.ColorTransparent,
		},
		YAxis: chart.YAxis{
			Ticks: []chart.Tick{
				{Value: 0},
				{Value: maxValue},
			},
		},
		Bars: bars,
	}
	graph.BarWidth = (graph.Width - (len(bars) * graph.BarSpacing)) / len(bars)

	return renderChart(graph)
}

// getRatingsStats returns one bar per bin between the lowest and highest
// populated bins and the highest bar value.
func (b *Back) getRatingsStats(barStyle chart.Style) ([]chart.Value, float64) {
	if len(b.leaderboard) == 0 {
		return nil, 0
	}

	bins := make(map[int]int, 20)
	minBin, maxBin := math.MaxInt64, math.MinInt64
	maxValue := math.MinInt64

	for k := range b.leaderboard {
		r := ratingBin(b.leaderboard[k].Rating)
		bins[r]++
		if r < minBin {
			minBin = r
		}
		if r > maxBin {
			maxBin = r
		}

		if bins[r] > maxValue {
			maxValue = bins[r]
		}
	}

	valuesCount := float64(len(b.leaderboard))
	bars := make([]chart.Value, 0, (maxBin-minBin)/ratingBinWidth+1)
	for i := minBin; i <= maxBin; i += ratingBinWidth {
		bars = append(bars, chart.Value{
			Value: float64(bins[i]) / valuesCount,
			Label: strconv.Itoa(i),
			Style: barStyle,
		})
	}

	return bars, float64(maxValue) / valuesCount
}

func ratingBin(rating int) int {
	return int(math.Round(float64(rating)/ratingBinWidth) * ratingBinWidth)
}

type renderable interface {
	Render(chart.RendererProvider, io.Writer) error
}

func renderChart(r renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
