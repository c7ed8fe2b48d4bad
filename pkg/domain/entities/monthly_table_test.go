package entities

import (
	"math"
	"testing"
	"time"
)

func TestMonthEnd(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		offset int
		want   string
	}{
		{0, "2024-01-31"},
		{1, "2024-02-29"},
		{5, "2024-06-30"},
		{11, "2024-12-31"},
		{12, "2025-01-31"},
	}

	for _, tc := range testCases {
		got := MonthEnd(start, tc.offset).Format("2006-01-02")
		if got != tc.want {
			t.Errorf("MonthEnd offset %d: expected %s, got %s", tc.offset, tc.want, got)
		}
	}
}

func TestNewMonthlyTable_StrictlyIncreasingMonths(t *testing.T) {
	table := NewMonthlyTable(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), MonthsInHorizon)

	if table.Len() != MonthsInHorizon {
		t.Fatalf("Expected %d rows, got %d", MonthsInHorizon, table.Len())
	}
	if table.Stage != StageEmpty {
		t.Errorf("Expected new table at stage Empty, got %s", table.Stage)
	}
	for i := 1; i < table.Len(); i++ {
		if !table.Records[i].Month.After(table.Records[i-1].Month) {
			t.Errorf("Month %d (%s) not after month %d (%s)", i, table.Records[i].Month, i-1, table.Records[i-1].Month)
		}
	}
}

func TestColumnsThrough(t *testing.T) {
	testCases := []struct {
		stage Stage
		count int
		last  string
	}{
		{StageEmpty, 0, ""},
		{StageDemand, 3, ColumnForecastRolling3M},
		{StageInventory, 5, ColumnMonthsOfSupply},
		{StageCapacity, 8, ColumnSpikeUtilizationPct},
	}

	for _, tc := range testCases {
		t.Run(tc.stage.String(), func(t *testing.T) {
			cols := ColumnsThrough(tc.stage)
			if len(cols) != tc.count {
				t.Fatalf("Expected %d columns, got %d: %v", tc.count, len(cols), cols)
			}
			if tc.count > 0 && cols[len(cols)-1] != tc.last {
				t.Errorf("Expected last column %s, got %s", tc.last, cols[len(cols)-1])
			}

			stage, err := StageForColumnCount(tc.count)
			if err != nil {
				t.Fatalf("StageForColumnCount(%d): %v", tc.count, err)
			}
			if stage != tc.stage {
				t.Errorf("Expected stage %s, got %s", tc.stage, stage)
			}
		})
	}

	if _, err := StageForColumnCount(4); err == nil {
		t.Error("Expected error for a column count no stage produces")
	}
}

func TestMonthlyTable_CellsFollowStage(t *testing.T) {
	table := NewMonthlyTable(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 1)
	table.Records[0].ActualDemand = 900

	table.Advance(StageDemand)
	if got := len(table.Cells(0)); got != 3 {
		t.Errorf("Expected 3 cells after demand stage, got %d", got)
	}

	table.Advance(StageCapacity)
	table.Advance(StageInventory)
	if table.Stage != StageCapacity {
		t.Errorf("Advance must never move a table backwards, got %s", table.Stage)
	}
	cells := table.Cells(0)
	if len(cells) != len(table.Columns()) {
		t.Fatalf("Expected %d cells, got %d", len(table.Columns()), len(cells))
	}
	if cells[1].Kind != IntegerCell || cells[1].Integer != 900 {
		t.Errorf("Expected demand cell 900, got %+v", cells[1])
	}
	if cells[2].Measure.Valid {
		t.Errorf("Expected undefined forecast cell, got %+v", cells[2].Measure)
	}
}

func TestMeasure_IsFinite(t *testing.T) {
	if Undefined.IsFinite() {
		t.Error("Undefined measure must not be finite")
	}
	if !Known(1.5).IsFinite() {
		t.Error("Known(1.5) must be finite")
	}
	if Known(math.Inf(1)).IsFinite() || Known(math.NaN()).IsFinite() {
		t.Error("Inf and NaN measures must not be finite")
	}
}
