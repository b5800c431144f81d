package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default raster size
const (
	DefaultWidth  = 800
	DefaultHeight = 360

	// maxRasterBars limits map and treemap rasters to the largest groups
	maxRasterBars = 15
)

var (
	palette = []drawing.Color{
		drawing.ColorFromHex("5D69B1"),
		drawing.ColorFromHex("52BCA3"),
		drawing.ColorFromHex("99C945"),
		drawing.ColorFromHex("CC61B0"),
		drawing.ColorFromHex("24796C"),
		drawing.ColorFromHex("DAA51B"),
		drawing.ColorFromHex("2F8AC4"),
		drawing.ColorFromHex("764E9F"),
		drawing.ColorFromHex("ED645A"),
		drawing.ColorFromHex("CC3A8E"),
		drawing.ColorFromHex("A5AA99"),
	}
	highlightColor = drawing.ColorFromHex("800080")
	plainBarColor  = drawing.ColorFromHex("20B2AA")
)

// pointStyle renders markers without a connecting line
func pointStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    col,
	}
}

// Rasterize draws a figure. Empty figures and render failures produce a blank
// image so callers always have something to show.
func Rasterize(fig *Figure, width, height int) image.Image {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if fig.IsEmpty() {
		return blank(width, height)
	}

	var buf bytes.Buffer
	if err := renderChart(fig, width, height, &buf); err != nil {
		return blank(width, height)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return blank(width, height)
	}
	return img
}

// EncodePNG rasterizes a figure and encodes it as PNG
func EncodePNG(fig *Figure, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Rasterize(fig, width, height)); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", fig.ID, err)
	}
	return buf.Bytes(), nil
}

func renderChart(fig *Figure, width, height int, buf *bytes.Buffer) error {
	switch fig.Kind {
	case KindBar, KindHistogram:
		return barChart(fig.Title, fig.Bars, width, height).Render(chart.PNG, buf)
	case KindMap:
		return barChart(fig.Title, regionBars(fig.Regions), width, height).Render(chart.PNG, buf)
	case KindTreemap:
		return barChart(fig.Title, treeBars(fig.Tree), width, height).Render(chart.PNG, buf)
	case KindLine, KindScatter:
		ch := seriesChart(fig, width, height)
		return ch.Render(chart.PNG, buf)
	default:
		return fmt.Errorf("unsupported figure kind %q", fig.Kind)
	}
}

func barChart(title string, bars []Bar, width, height int) chart.BarChart {
	values := make([]chart.Value, 0, len(bars))
	for _, b := range bars {
		col := plainBarColor
		if b.Highlight {
			col = highlightColor
		}
		values = append(values, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	barWidth := 40
	if n := len(values); n > 0 {
		barWidth = int(math.Max(8, math.Min(60, float64(width)/float64(n)*0.6)))
	}
	return chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barWidth / 2,
		Bars:       values,
	}
}

func seriesChart(fig *Figure, width, height int) chart.Chart {
	var xs, ys []float64
	series := make([]chart.Series, 0, len(fig.Series))
	for i, s := range fig.Series {
		col := palette[i%len(palette)]
		sx := make([]float64, len(s.Points))
		sy := make([]float64, len(s.Points))
		for j, p := range s.Points {
			x := p.X
			if fig.LogX && x > 0 {
				x = math.Log10(x)
			}
			sx[j], sy[j] = x, p.Y
		}
		xs = append(xs, sx...)
		ys = append(ys, sy...)

		st := pointStyle(col, 4)
		if fig.Kind == KindLine {
			st = chart.Style{StrokeColor: col, StrokeWidth: 2, DotWidth: 3, DotColor: col}
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: sx, YValues: sy, Style: st})
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		Width:      width,
		Height:     height,
		XAxis:      chart.XAxis{Name: fig.XLabel, Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: fig.YLabel, Range: paddedRange(ys)},
		Series:     series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}

// paddedRange widens the data extent so single points and flat lines still
// have a non-zero axis.
func paddedRange(values []float64) *chart.ContinuousRange {
	if len(values) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(1, math.Abs(lo)*0.05)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func regionBars(regions []RegionCount) []Bar {
	sorted := make([]RegionCount, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	bars := make([]Bar, 0, maxRasterBars)
	for _, r := range sorted {
		if len(bars) == maxRasterBars || r.Count == 0 {
			break
		}
		bars = append(bars, Bar{Label: r.Code, Value: float64(r.Count)})
	}
	return bars
}

func treeBars(root *Node) []Bar {
	if root == nil {
		return nil
	}
	bars := make([]Bar, 0, len(root.Children))
	for _, c := range root.Children {
		if len(bars) == maxRasterBars {
			break
		}
		bars = append(bars, Bar{Label: c.Label, Value: float64(c.Count)})
	}
	return bars
}

// blank returns a white image
func blank(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}
