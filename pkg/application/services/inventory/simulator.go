package inventory

import (
	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// Config holds the inventory roll-forward parameters
type Config struct {
	StartingInventory entities.Quantity
	InboundSupply     entities.Quantity // received every month
}

// DefaultConfig returns 3000 units on hand and 1000 units inbound per month
func DefaultConfig() Config {
	return Config{
		StartingInventory: 3000,
		InboundSupply:     1000,
	}
}

// Simulator rolls inventory forward month by month
type Simulator struct {
	config Config
}

// NewSimulator creates a new inventory simulator
func NewSimulator(config Config) *Simulator {
	return &Simulator{config: config}
}

// Simulate appends Ending_Inventory and MOS to the table and returns it.
// Negative inventory is a valid outcome, as are infinite or NaN months of
// supply when the forecast is zero.
func (s *Simulator) Simulate(table *entities.MonthlyTable) *entities.MonthlyTable {
	current := s.config.StartingInventory
	for i := range table.Records {
		r := &table.Records[i]
		current = current + s.config.InboundSupply - r.ActualDemand
		r.EndingInventory = current
		r.MonthsOfSupply = monthsOfSupply(current, r.ForecastRolling3M)
	}

	table.Advance(entities.StageInventory)
	return table
}

func monthsOfSupply(ending entities.Quantity, forecast entities.Measure) entities.Measure {
	if !forecast.Valid {
		return entities.Undefined
	}
	return entities.Known(float64(ending) / forecast.Value)
}
