package entities

import (
	"math"
	"time"
)

// MonthsInHorizon is the number of monthly records in a simulation table
const MonthsInHorizon = 12

// Quantity represents an integer quantity of discrete units
type Quantity int64

// Measure is a floating-point value that may be undefined, such as a rolling
// forecast before enough history exists. A defined Measure may still hold NaN
// or ±Inf; those are valid results of division, not missing data.
type Measure struct {
	Value float64
	Valid bool
}

// Undefined is the zero Measure
var Undefined = Measure{}

// Known wraps a defined value
func Known(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// IsFinite reports whether the measure is defined and neither NaN nor infinite
func (m Measure) IsFinite() bool {
	return m.Valid && !math.IsNaN(m.Value) && !math.IsInf(m.Value, 0)
}

// MonthlyRecord is one row of the simulation table. Fields are filled in by
// successive pipeline stages; see Stage.
type MonthlyRecord struct {
	Month             time.Time
	ActualDemand      Quantity
	ForecastRolling3M Measure

	EndingInventory Quantity
	MonthsOfSupply  Measure

	UtilizationPct      float64
	SpikeDemand         float64
	SpikeUtilizationPct float64
}

// MonthEnd returns the last day of the month that is offset months after start
func MonthEnd(start time.Time, offset int) time.Time {
	return time.Date(start.Year(), start.Month()+time.Month(offset)+1, 0, 0, 0, 0, 0, time.UTC)
}
