package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jwulff/glucowise-go/internal/bloodsugar"
	"github.com/jwulff/glucowise-go/internal/domain"
)

// Target range lines drawn on every chart.
const (
	TargetLow  = bloodsugar.ThresholdLow
	TargetHigh = bloodsugar.ThresholdHigh
)

// Glyphs of the chart.
const (
	glyphLine   = '.'
	glyphTarget = '-'
	glyphMarker = ':'
)

// ChartPoint represents a single point on the chart.
type ChartPoint struct {
	Time  time.Time
	Value float64 // mg/dL
}

// PointsFromReadings converts readings to chart points.
func PointsFromReadings(readings []*domain.BloodReading) []ChartPoint {
	points := make([]ChartPoint, len(readings))
	for i, r := range readings {
		points[i] = ChartPoint{Time: r.Date, Value: r.Value}
	}
	return points
}

// ChartConfig configures the chart rendering.
type ChartConfig struct {
	Width  int // plot columns
	Height int // plot rows
	Start  time.Time
	End    time.Time
	// Padding in mg/dL above/below data range.
	Padding int
	// MarkerHours is the spacing of vertical hour markers.
	MarkerHours int
	Location    *time.Location
}

// DayChartConfig returns a config covering the calendar day of day in loc,
// one column per 20 minutes.
func DayChartConfig(day time.Time, loc *time.Location) ChartConfig {
	if loc == nil {
		loc = time.Local
	}
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return ChartConfig{
		Width:       72,
		Height:      12,
		Start:       start,
		End:         start.AddDate(0, 0, 1),
		Padding:     15,
		MarkerHours: 6,
		Location:    loc,
	}
}

// ApplyDefaults applies default values to zero fields.
func (c *ChartConfig) ApplyDefaults() {
	if c.Width <= 1 {
		c.Width = 72
	}
	if c.Height <= 1 {
		c.Height = 12
	}
	if c.Padding == 0 {
		c.Padding = 15
	}
	if c.MarkerHours == 0 {
		c.MarkerHours = 6
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.End.IsZero() {
		c.End = time.Now()
	}
	if c.Start.IsZero() {
		c.Start = c.End.Add(-24 * time.Hour)
	}
}

// SortChartPoints sorts points by time ascending.
func SortChartPoints(points []ChartPoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
}

// Glyph returns the rune a reading is drawn with.
func Glyph(mgdl float64) rune {
	switch bloodsugar.ClassifyRange(mgdl) {
	case bloodsugar.RangeUrgentLow:
		return '!'
	case bloodsugar.RangeLow:
		return 'v'
	case bloodsugar.RangeHigh:
		return '^'
	case bloodsugar.RangeVeryHigh:
		return '#'
	default:
		return 'o'
	}
}

// RenderChart renders the points inside the configured window as a text
// chart with a value axis on the left and an hour axis below. It returns
// "" when no point falls in the window.
func RenderChart(points []ChartPoint, cfg ChartConfig) string {
	cfg.ApplyDefaults()

	var visible []ChartPoint
	for _, p := range points {
		if !p.Time.Before(cfg.Start) && !p.Time.After(cfg.End) {
			visible = append(visible, p)
		}
	}
	if len(visible) == 0 {
		return ""
	}
	SortChartPoints(visible)

	lo, hi := calculateDataRange(visible, cfg.Padding)
	grid := NewGrid(cfg.Width, cfg.Height)
	labels := map[int]int{}

	// Markers first so the target range and line are drawn over them.
	markers := hourMarkers(cfg)
	for _, m := range markers {
		x := timeToX(m, cfg)
		for y := 0; y < cfg.Height; y++ {
			grid.Set(x, y, glyphMarker)
		}
	}

	for _, target := range []int{TargetLow, TargetHigh} {
		if target < lo || target > hi {
			continue
		}
		y := glucoseToY(target, lo, hi, cfg.Height)
		for x := 0; x < cfg.Width; x++ {
			grid.Set(x, y, glyphTarget)
		}
		labels[y] = target
	}
	labels[0] = hi
	labels[cfg.Height-1] = lo

	xs := make([]int, len(visible))
	ys := make([]int, len(visible))
	for i, p := range visible {
		xs[i] = timeToX(p.Time, cfg)
		ys[i] = glucoseToY(int(math.Round(p.Value)), lo, hi, cfg.Height)
		if i > 0 {
			drawLine(grid, xs[i-1], ys[i-1], xs[i], ys[i])
		}
	}
	// Points go last so they are never hidden by a line.
	for i, p := range visible {
		grid.Set(xs[i], ys[i], Glyph(p.Value))
	}

	var b strings.Builder
	for y := 0; y < cfg.Height; y++ {
		label := ""
		if v, ok := labels[y]; ok {
			label = strconv.Itoa(v)
		}
		fmt.Fprintf(&b, "%4s |%s\n", label, grid.Row(y))
	}
	fmt.Fprintf(&b, "     +%s\n", strings.Repeat("-", cfg.Width))
	fmt.Fprintf(&b, "      %s\n", hourAxis(markers, cfg))
	return b.String()
}

// calculateDataRange computes the min/max glucose with padding.
func calculateDataRange(points []ChartPoint, padding int) (int, int) {
	if len(points) == 0 {
		return TargetLow, TargetHigh
	}

	dataMin := int(math.Round(points[0].Value))
	dataMax := dataMin
	for _, p := range points[1:] {
		v := int(math.Round(p.Value))
		dataMin = min(dataMin, v)
		dataMax = max(dataMax, v)
	}

	// Ensure minimum range of 30 mg/dL
	const minRange = 30
	extraPadding := 0
	if rawRange := dataMax - dataMin; rawRange < minRange {
		extraPadding = (minRange - rawRange) / 2
	}

	minGlucose := max(dataMin-padding-extraPadding, 40)
	maxGlucose := min(dataMax+padding+extraPadding, 400)
	return minGlucose, maxGlucose
}

// timeToX converts a time to its column.
func timeToX(t time.Time, cfg ChartConfig) int {
	span := cfg.End.Sub(cfg.Start)
	if span <= 0 {
		return 0
	}
	offset := t.Sub(cfg.Start)
	return int(math.Round(float64(offset) / float64(span) * float64(cfg.Width-1)))
}

// glucoseToY converts a glucose value to its row.
func glucoseToY(glucose, minGlucose, maxGlucose, height int) int {
	glucoseRange := maxGlucose - minGlucose
	if glucoseRange == 0 {
		return height / 2
	}
	glucose = min(max(glucose, minGlucose), maxGlucose)

	// Higher glucose = lower Y (top of chart)
	normalized := float64(glucose-minGlucose) / float64(glucoseRange)
	return height - 1 - int(math.Round(normalized*float64(height-1)))
}

// hourMarkers returns the whole local hours in the window divisible by
// cfg.MarkerHours.
func hourMarkers(cfg ChartConfig) []time.Time {
	var markers []time.Time
	t := cfg.Start.Truncate(time.Hour)
	if t.Before(cfg.Start) {
		t = t.Add(time.Hour)
	}
	for ; !t.After(cfg.End); t = t.Add(time.Hour) {
		local := t.In(cfg.Location)
		if local.Minute() == 0 && local.Hour()%cfg.MarkerHours == 0 {
			markers = append(markers, t)
		}
	}
	return markers
}

// hourAxis labels each marker with its local hour where the label fits.
func hourAxis(markers []time.Time, cfg ChartConfig) string {
	axis := []rune(strings.Repeat(" ", cfg.Width+2))
	next := 0
	for _, m := range markers {
		x := timeToX(m, cfg)
		label := m.In(cfg.Location).Format("15")
		if x < next || x+len(label) > len(axis) {
			continue
		}
		copy(axis[x:], []rune(label))
		next = x + len(label) + 1
	}
	return strings.TrimRight(string(axis), " ")
}

// drawLine draws a line between two points (Bresenham) without
// overwriting anything but blanks, markers and the target range.
func drawLine(g *Grid, x0, y0, x1, y1 int) {
	dx := intAbs(x1 - x0)
	dy := -intAbs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		switch g.At(x, y) {
		case ' ', glyphMarker, glyphTarget:
			g.Set(x, y, glyphLine)
		}

		if x == x1 && y == y1 {
			break
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// intAbs returns the absolute value of an integer.
func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
