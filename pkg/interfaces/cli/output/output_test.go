package output

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

func sampleTable(months int) *entities.MonthlyTable {
	table := entities.NewMonthlyTable(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), months)
	inventory := entities.Quantity(3000)
	for i := range table.Records {
		r := &table.Records[i]
		r.ActualDemand = entities.Quantity(900 + 25*i)
		inventory += 1000 - r.ActualDemand
		r.EndingInventory = inventory
		if i >= 2 {
			r.ForecastRolling3M = entities.Known(float64(900 + 25*(i-1)))
			r.MonthsOfSupply = entities.Known(float64(inventory) / r.ForecastRolling3M.Value)
		}
		r.UtilizationPct = float64(r.ActualDemand) / 10
		r.SpikeDemand = float64(r.ActualDemand) * 1.2
		r.SpikeUtilizationPct = r.SpikeDemand / 10
	}
	table.Advance(entities.StageCapacity)
	return table
}

func TestPrintPreview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintPreview(&buf, sampleTable(12)))

	out := buf.String()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 15)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "=== Preview ===", lines[1])

	header := strings.Fields(lines[2])
	assert.Equal(t, entities.AllColumns(), header)

	first := strings.Fields(lines[3])
	require.Len(t, first, 8)
	assert.Equal(t, "2024-01-31", first[0])
	assert.Equal(t, "900", first[1])
	assert.Equal(t, "NaN", first[2])
	assert.Equal(t, "NaN", first[4])
	assert.Equal(t, "90.00", first[5])

	// every table line is right-aligned to the same width
	for i := 3; i < 15; i++ {
		assert.Len(t, lines[i], len(lines[2]), "line %d", i)
	}

	assert.Contains(t, out, "Total demand: 12,450 units over 12 months")
	assert.Contains(t, out, "Peak utilization: 117.5% baseline, 141.0% with spike")
}

func TestPrintPreview_PartialTable(t *testing.T) {
	table := sampleTable(3)
	table.Stage = entities.StageDemand

	var buf bytes.Buffer
	require.NoError(t, PrintPreview(&buf, table))

	out := buf.String()
	assert.Contains(t, out, "Forecast_Rolling_3M")
	assert.NotContains(t, out, "Ending_Inventory")
	assert.NotContains(t, out, "Closing inventory")
}

func TestPreviewCell_SpecialValues(t *testing.T) {
	assert.Equal(t, "inf", previewCell(entities.Cell{Kind: entities.MeasureCell, Measure: entities.Known(math.Inf(1))}))
	assert.Equal(t, "-inf", previewCell(entities.Cell{Kind: entities.MeasureCell, Measure: entities.Known(math.Inf(-1))}))
	assert.Equal(t, "NaN", previewCell(entities.Cell{Kind: entities.MeasureCell, Measure: entities.Known(math.NaN())}))
	assert.Equal(t, "-2.50", previewCell(entities.Cell{Kind: entities.MeasureCell, Measure: entities.Known(-2.5)}))
}

func TestLineChart_SaveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	table := sampleTable(12)
	table.Records[5].UtilizationPct = math.Inf(1)

	require.NoError(t, RenderCapacityChart(path, table, "+20%"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, cfg.Height, "chart should be landscape")
}

func TestFinitePoints_SkipsUndefined(t *testing.T) {
	table := sampleTable(4)
	values := []entities.Measure{entities.Undefined, entities.Known(math.NaN()), entities.Known(1), entities.Known(2)}

	xys := finitePoints(months(table), values)

	require.Len(t, xys, 2)
	assert.Equal(t, 1.0, xys[0].Y)
	assert.Equal(t, monthX(table.Records[3].Month), xys[1].X)
}

func TestReporter_Report(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	var console bytes.Buffer
	reporter := NewReporter(Config{OutputDir: dir, SpikeLabel: "+20%", Out: &console})

	files, err := reporter.Report(sampleTable(12))
	require.NoError(t, err)

	require.Len(t, files, 3)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), f)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	out := console.String()
	assert.True(t, strings.HasPrefix(out, "\n=== Preview ==="))
	assert.True(t, strings.HasSuffix(out, "Saved outputs to "+dir+" (plots + results.csv)\n"))

	// running again into an existing directory succeeds
	_, err = reporter.Report(sampleTable(12))
	require.NoError(t, err)
}

func TestReporter_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	reporter := NewReporter(Config{OutputDir: filepath.Join(blocker, "outputs"), Out: &bytes.Buffer{}})
	_, err := reporter.Report(sampleTable(12))
	assert.Error(t, err)
}
