package capacity

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// Config holds the capacity scenario parameters
type Config struct {
	DailyCapacity entities.Quantity
	SpikePct      float64 // 0.20 means demand 20% above actual
}

// DefaultConfig returns a capacity of 1000 units and a 20% demand spike
func DefaultConfig() Config {
	return Config{
		DailyCapacity: 1000,
		SpikePct:      0.20,
	}
}

// SpikeLabel renders the spike percentage for display, e.g. "+20%"
func (c Config) SpikeLabel() string {
	pct := decimal.NewFromFloat(c.SpikePct).Mul(hundred)
	if pct.IsNegative() {
		return pct.String() + "%"
	}
	return "+" + pct.String() + "%"
}

// Simulator derives utilization under baseline and spiked demand
type Simulator struct {
	config     Config
	multiplier decimal.Decimal
}

// NewSimulator creates a new capacity simulator
func NewSimulator(config Config) *Simulator {
	return &Simulator{
		config:     config,
		multiplier: decimal.NewFromInt(1).Add(decimal.NewFromFloat(config.SpikePct)),
	}
}

// Simulate appends Utilization_%, Spike_Demand and Spike_Utilization_% to the
// table and returns it. Figures are computed in decimal so that values such
// as 1104 * 1.2 come out as exactly 1324.8.
func (s *Simulator) Simulate(table *entities.MonthlyTable) *entities.MonthlyTable {
	for i := range table.Records {
		r := &table.Records[i]
		actual := decimal.NewFromInt(int64(r.ActualDemand))
		spike := actual.Mul(s.multiplier)

		r.UtilizationPct = s.utilization(actual)
		r.SpikeDemand = spike.InexactFloat64()
		r.SpikeUtilizationPct = s.utilization(spike)
	}

	table.Advance(entities.StageCapacity)
	return table
}

// utilization returns demand as a percentage of daily capacity. A zero
// capacity yields ±Inf, or NaN for zero demand.
func (s *Simulator) utilization(demand decimal.Decimal) float64 {
	if s.config.DailyCapacity == 0 {
		switch demand.Sign() {
		case 1:
			return math.Inf(1)
		case -1:
			return math.Inf(-1)
		default:
			return math.NaN()
		}
	}
	capacity := decimal.NewFromInt(int64(s.config.DailyCapacity))
	return demand.Div(capacity).Mul(hundred).InexactFloat64()
}
