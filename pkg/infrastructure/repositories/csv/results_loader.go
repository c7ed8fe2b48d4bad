package csv

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// Loader reads simulation results back from CSV
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadResults reads a results file written by Writer. The header must be a
// stage-complete prefix of the full column list.
func (l *Loader) LoadResults(filename string) (*entities.MonthlyTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read results CSV: %w", err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("results CSV must have a header row")
	}

	header := records[0]
	stage, err := entities.StageForColumnCount(len(header))
	if err != nil {
		return nil, fmt.Errorf("results CSV header: %w", err)
	}
	expectedHeader := entities.ColumnsThrough(stage)
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("results CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	table := &entities.MonthlyTable{
		Records: make([]entities.MonthlyRecord, 0, len(records)-1),
		Stage:   stage,
	}
	for i, record := range records[1:] {
		r, err := parseRecord(record, stage)
		if err != nil {
			return nil, fmt.Errorf("results CSV row %d: %w", i+2, err)
		}
		table.Records = append(table.Records, r)
	}

	return table, nil
}

func parseRecord(record []string, stage entities.Stage) (entities.MonthlyRecord, error) {
	var r entities.MonthlyRecord
	var err error

	if stage >= entities.StageDemand {
		if r.Month, err = time.Parse(DateLayout, strings.TrimSpace(record[0])); err != nil {
			return r, fmt.Errorf("invalid month %q: %w", record[0], err)
		}
		if r.ActualDemand, err = parseQuantity(record[1]); err != nil {
			return r, fmt.Errorf("invalid actual demand: %w", err)
		}
		if r.ForecastRolling3M, err = parseMeasure(record[2]); err != nil {
			return r, fmt.Errorf("invalid forecast: %w", err)
		}
	}

	if stage >= entities.StageInventory {
		if r.EndingInventory, err = parseQuantity(record[3]); err != nil {
			return r, fmt.Errorf("invalid ending inventory: %w", err)
		}
		if r.MonthsOfSupply, err = parseMeasure(record[4]); err != nil {
			return r, fmt.Errorf("invalid months of supply: %w", err)
		}
	}

	if stage >= entities.StageCapacity {
		floats := []*float64{&r.UtilizationPct, &r.SpikeDemand, &r.SpikeUtilizationPct}
		for j, dst := range floats {
			m, err := parseMeasure(record[5+j])
			if err != nil {
				return r, fmt.Errorf("invalid %s: %w", entities.AllColumns()[5+j], err)
			}
			*dst = m.Value
			if !m.Valid {
				*dst = math.NaN()
			}
		}
	}

	return r, nil
}

func parseQuantity(s string) (entities.Quantity, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return entities.Quantity(n), nil
}

// parseMeasure accepts the formats written by formatMeasure; strconv already
// understands inf and -inf
func parseMeasure(s string) (entities.Measure, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return entities.Undefined, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return entities.Undefined, err
	}
	return entities.Known(v), nil
}

// validateHeader checks if the CSV header matches expected columns
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		if strings.TrimSpace(col) != expected[i] {
			return false
		}
	}
	return true
}
