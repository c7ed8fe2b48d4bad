package demand

import (
	"math/rand"
	"time"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// ForecastWindow is the number of months in the trailing forecast average,
// including the current month
const ForecastWindow = 3

// Config holds the parameters for synthetic demand generation
type Config struct {
	Seed       int64
	MinDemand  int // inclusive
	MaxDemand  int // exclusive
	StartMonth time.Time
	Months     int
}

// DefaultConfig returns the reference scenario: seed 42, demand in [800, 1200)
// over the twelve months of 2024
func DefaultConfig() Config {
	return Config{
		Seed:       42,
		MinDemand:  800,
		MaxDemand:  1200,
		StartMonth: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Months:     entities.MonthsInHorizon,
	}
}

// Generator produces a synthetic monthly demand series
type Generator struct {
	config Config
}

// NewGenerator creates a new demand generator
func NewGenerator(config Config) *Generator {
	if config.Months == 0 {
		config.Months = entities.MonthsInHorizon
	}
	return &Generator{config: config}
}

// Generate builds a new table holding Month, Actual_Demand and
// Forecast_Rolling_3M. The same seed always yields the same table.
func (g *Generator) Generate() *entities.MonthlyTable {
	// The source is scoped to this call so repeated calls are independent
	rng := rand.New(rand.NewSource(g.config.Seed))

	table := entities.NewMonthlyTable(g.config.StartMonth, g.config.Months)
	span := g.config.MaxDemand - g.config.MinDemand
	for i := range table.Records {
		qty := g.config.MinDemand
		if span > 0 {
			qty += rng.Intn(span)
		}
		table.Records[i].ActualDemand = entities.Quantity(qty)
	}

	applyRollingForecast(table, ForecastWindow)
	table.Advance(entities.StageDemand)
	return table
}

// applyRollingForecast sets each row's forecast to the mean demand of the
// window ending at that row. Rows without a full window stay undefined.
func applyRollingForecast(table *entities.MonthlyTable, window int) {
	var sum entities.Quantity
	for i := range table.Records {
		sum += table.Records[i].ActualDemand
		if i >= window {
			sum -= table.Records[i-window].ActualDemand
		}

		if i+1 < window {
			table.Records[i].ForecastRolling3M = entities.Undefined
			continue
		}
		table.Records[i].ForecastRolling3M = entities.Known(float64(sum) / float64(window))
	}
}
