package entities

import (
	"fmt"
	"math"
	"time"
)

// Stage identifies how far a MonthlyTable has progressed through the pipeline
type Stage int

const (
	StageEmpty Stage = iota
	StageDemand
	StageInventory
	StageCapacity
)

// String method for Stage enum
func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "Empty"
	case StageDemand:
		return "Demand"
	case StageInventory:
		return "Inventory"
	case StageCapacity:
		return "Capacity"
	default:
		return "Unknown"
	}
}

// Column names, in output order
const (
	ColumnMonth               = "Month"
	ColumnActualDemand        = "Actual_Demand"
	ColumnForecastRolling3M   = "Forecast_Rolling_3M"
	ColumnEndingInventory     = "Ending_Inventory"
	ColumnMonthsOfSupply      = "MOS"
	ColumnUtilizationPct      = "Utilization_%"
	ColumnSpikeDemand         = "Spike_Demand"
	ColumnSpikeUtilizationPct = "Spike_Utilization_%"
)

var stageColumns = map[Stage][]string{
	StageDemand:    {ColumnMonth, ColumnActualDemand, ColumnForecastRolling3M},
	StageInventory: {ColumnEndingInventory, ColumnMonthsOfSupply},
	StageCapacity:  {ColumnUtilizationPct, ColumnSpikeDemand, ColumnSpikeUtilizationPct},
}

// AllColumns returns every column a fully simulated table carries
func AllColumns() []string {
	return ColumnsThrough(StageCapacity)
}

// ColumnsThrough returns the columns present once the given stage has run
func ColumnsThrough(stage Stage) []string {
	var cols []string
	for s := StageDemand; s <= stage && s <= StageCapacity; s++ {
		cols = append(cols, stageColumns[s]...)
	}
	return cols
}

// StageForColumnCount maps a column count back to the stage that produced it
func StageForColumnCount(n int) (Stage, error) {
	for s := StageEmpty; s <= StageCapacity; s++ {
		if len(ColumnsThrough(s)) == n {
			return s, nil
		}
	}
	return StageEmpty, fmt.Errorf("no stage produces %d columns", n)
}

// MonthlyTable is the ordered, chronological sequence of monthly records.
// Columns are only ever appended: each stage advances Stage and fills its
// own fields, never earlier ones.
type MonthlyTable struct {
	Records []MonthlyRecord
	Stage   Stage
}

// NewMonthlyTable creates a table of month-end rows starting at start
func NewMonthlyTable(start time.Time, months int) *MonthlyTable {
	records := make([]MonthlyRecord, months)
	for i := range records {
		records[i].Month = MonthEnd(start, i)
	}
	return &MonthlyTable{Records: records}
}

// Len returns the number of rows
func (t *MonthlyTable) Len() int {
	return len(t.Records)
}

// Columns returns the column names currently present
func (t *MonthlyTable) Columns() []string {
	return ColumnsThrough(t.Stage)
}

// Advance moves the table to stage if it is not already past it
func (t *MonthlyTable) Advance(stage Stage) {
	if stage > t.Stage {
		t.Stage = stage
	}
}

// CellKind describes how a cell value should be rendered
type CellKind int

const (
	DateCell CellKind = iota
	IntegerCell
	MeasureCell
)

// Cell is a single typed value of a table row
type Cell struct {
	Kind    CellKind
	Date    time.Time
	Integer Quantity
	Measure Measure
}

// Cells returns row i as typed cells, one per present column
func (t *MonthlyTable) Cells(i int) []Cell {
	r := t.Records[i]
	cells := make([]Cell, 0, len(AllColumns()))
	if t.Stage >= StageDemand {
		cells = append(cells,
			Cell{Kind: DateCell, Date: r.Month},
			Cell{Kind: IntegerCell, Integer: r.ActualDemand},
			Cell{Kind: MeasureCell, Measure: r.ForecastRolling3M},
		)
	}
	if t.Stage >= StageInventory {
		cells = append(cells,
			Cell{Kind: IntegerCell, Integer: r.EndingInventory},
			Cell{Kind: MeasureCell, Measure: r.MonthsOfSupply},
		)
	}
	if t.Stage >= StageCapacity {
		cells = append(cells,
			Cell{Kind: MeasureCell, Measure: Known(r.UtilizationPct)},
			Cell{Kind: MeasureCell, Measure: Known(r.SpikeDemand)},
			Cell{Kind: MeasureCell, Measure: Known(r.SpikeUtilizationPct)},
		)
	}
	return cells
}

// TotalDemand sums actual demand across all rows
func (t *MonthlyTable) TotalDemand() Quantity {
	var total Quantity
	for _, r := range t.Records {
		total += r.ActualDemand
	}
	return total
}

// InventoryBounds returns the closing and the lowest ending inventory
func (t *MonthlyTable) InventoryBounds() (closing, lowest Quantity) {
	if len(t.Records) == 0 {
		return 0, 0
	}
	lowest = t.Records[0].EndingInventory
	for _, r := range t.Records {
		lowest = min(lowest, r.EndingInventory)
	}
	return t.Records[len(t.Records)-1].EndingInventory, lowest
}

// UtilizationPeaks returns the highest baseline and spiked utilization
func (t *MonthlyTable) UtilizationPeaks() (peak, peakSpike float64) {
	if len(t.Records) == 0 {
		return 0, 0
	}
	peak, peakSpike = math.Inf(-1), math.Inf(-1)
	for _, r := range t.Records {
		peak = math.Max(peak, r.UtilizationPct)
		peakSpike = math.Max(peakSpike, r.SpikeUtilizationPct)
	}
	return peak, peakSpike
}
