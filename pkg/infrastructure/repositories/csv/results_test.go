package csv

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

func sampleTable() *entities.MonthlyTable {
	table := entities.NewMonthlyTable(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 3)
	demands := []entities.Quantity{902, 1070, 1104}
	inventory := []entities.Quantity{3098, 3028, 2924}
	for i := range table.Records {
		r := &table.Records[i]
		r.ActualDemand = demands[i]
		r.EndingInventory = inventory[i]
		r.UtilizationPct = float64(demands[i]) / 10
		r.SpikeDemand = float64(demands[i]) * 1.2
		r.SpikeUtilizationPct = r.UtilizationPct * 1.2
	}
	table.Records[2].ForecastRolling3M = entities.Known(1025.3333333333333)
	table.Records[2].MonthsOfSupply = entities.Known(2.851755526657997)
	table.Advance(entities.StageCapacity)
	return table
}

func TestWriter_WriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	require.NoError(t, NewWriter().WriteResults(path, sampleTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "Month,Actual_Demand,Forecast_Rolling_3M,Ending_Inventory,MOS,Utilization_%,Spike_Demand,Spike_Utilization_%", string(lines[0]))
	assert.Equal(t, "2024-01-31,902,,3098,", string(lines[1][:len("2024-01-31,902,,3098,")]))
	assert.Contains(t, string(lines[3]), "2024-03-31,1104,1025.3333333333333,2924,2.851755526657997,110.4,")
}

func TestWriter_OverwritesIdentically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	writer := NewWriter()

	require.NoError(t, writer.WriteResults(path, sampleTable()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, writer.WriteResults(path, sampleTable()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoader_LoadResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	original := sampleTable()
	require.NoError(t, NewWriter().WriteResults(path, original))

	loaded, err := NewLoader().LoadResults(path)
	require.NoError(t, err)

	assert.Equal(t, entities.StageCapacity, loaded.Stage)
	require.Equal(t, original.Len(), loaded.Len())
	assert.Equal(t, original.Records, loaded.Records)
}

func TestLoader_PartialStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	content := "Month,Actual_Demand,Forecast_Rolling_3M\n2024-01-31,900,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := NewLoader().LoadResults(path)
	require.NoError(t, err)

	assert.Equal(t, entities.StageDemand, loaded.Stage)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, entities.Quantity(900), loaded.Records[0].ActualDemand)
	assert.False(t, loaded.Records[0].ForecastRolling3M.Valid)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"unknown column count", "Month,Actual_Demand\n"},
		{"header mismatch", "Month,Demand,Forecast\n2024-01-31,900,\n"},
		{"bad date", "Month,Actual_Demand,Forecast_Rolling_3M\n01/31/2024,900,\n"},
		{"bad quantity", "Month,Actual_Demand,Forecast_Rolling_3M\n2024-01-31,lots,\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "results.csv")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := NewLoader().LoadResults(path)
			assert.Error(t, err)
		})
	}

	_, err := NewLoader().LoadResults(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestFormatRow_SpecialValues(t *testing.T) {
	cells := []entities.Cell{
		{Kind: entities.MeasureCell, Measure: entities.Undefined},
		{Kind: entities.MeasureCell, Measure: entities.Known(math.NaN())},
		{Kind: entities.MeasureCell, Measure: entities.Known(math.Inf(1))},
		{Kind: entities.MeasureCell, Measure: entities.Known(math.Inf(-1))},
		{Kind: entities.MeasureCell, Measure: entities.Known(1324.8)},
		{Kind: entities.IntegerCell, Integer: -250},
	}

	assert.Equal(t, []string{"", "", "inf", "-inf", "1324.8", "-250"}, FormatRow(cells))
}
