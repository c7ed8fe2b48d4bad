package output

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// Chart dimensions
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// Series is one labelled line of a chart. Undefined, NaN and infinite
// points are left out of the line.
type Series struct {
	Label  string
	Values []entities.Measure
}

// LineChart is a set of monthly series sharing a date axis
type LineChart struct {
	Title  string
	Months []time.Time
	Series []Series
}

// RenderDemandChart plots actual demand against the rolling forecast
func RenderDemandChart(filename string, table *entities.MonthlyTable) error {
	actual := make([]entities.Measure, table.Len())
	forecast := make([]entities.Measure, table.Len())
	for i, r := range table.Records {
		actual[i] = entities.Known(float64(r.ActualDemand))
		forecast[i] = r.ForecastRolling3M
	}

	chart := LineChart{
		Title:  "Demand vs Forecast",
		Months: months(table),
		Series: []Series{
			{Label: "Actual Demand", Values: actual},
			{Label: "Rolling 3M Forecast", Values: forecast},
		},
	}
	return chart.Save(filename)
}

// RenderCapacityChart plots baseline utilization against spiked utilization
func RenderCapacityChart(filename string, table *entities.MonthlyTable, spikeLabel string) error {
	baseline := make([]entities.Measure, table.Len())
	spiked := make([]entities.Measure, table.Len())
	for i, r := range table.Records {
		baseline[i] = entities.Known(r.UtilizationPct)
		spiked[i] = entities.Known(r.SpikeUtilizationPct)
	}

	chart := LineChart{
		Title:  "Capacity Utilization: Baseline vs Demand Spike",
		Months: months(table),
		Series: []Series{
			{Label: "Utilization % (Baseline)", Values: baseline},
			{Label: fmt.Sprintf("Utilization %% (%s Demand Spike)", spikeLabel), Values: spiked},
		},
	}
	return chart.Save(filename)
}

// Save renders the chart as a PNG. The plot is discarded once written.
func (c LineChart) Save(filename string) error {
	p := plot.New()
	p.Title.Text = c.Title
	p.Legend.Top = true

	p.X.Tick.Marker = monthTicks(c.Months)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	if len(c.Months) > 0 {
		p.X.Min = monthX(c.Months[0])
		p.X.Max = monthX(c.Months[len(c.Months)-1])
	}

	for i, s := range c.Series {
		xys := finitePoints(c.Months, s.Values)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("failed to build series %q: %w", s.Label, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}

	if err := p.Save(chartWidth, chartHeight, filename); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", filename, err)
	}
	return nil
}

func months(table *entities.MonthlyTable) []time.Time {
	out := make([]time.Time, table.Len())
	for i, r := range table.Records {
		out[i] = r.Month
	}
	return out
}

func monthX(t time.Time) float64 {
	return float64(t.Unix())
}

func monthTicks(months []time.Time) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(months))
	for i, m := range months {
		ticks[i] = plot.Tick{Value: monthX(m), Label: m.Format("2006-01-02")}
	}
	return ticks
}

func finitePoints(months []time.Time, values []entities.Measure) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if i >= len(months) || !v.IsFinite() {
			continue
		}
		xys = append(xys, plotter.XY{X: monthX(months[i]), Y: v.Value})
	}
	return xys
}
