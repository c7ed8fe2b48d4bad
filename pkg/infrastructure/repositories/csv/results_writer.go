package csv

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// DateLayout is the layout of the Month column
const DateLayout = "2006-01-02"

// Writer serializes simulation tables to CSV
type Writer struct{}

// NewWriter creates a new CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteResults writes the table with a header row and no index column,
// replacing any existing file
func (w *Writer) WriteResults(filename string, table *entities.MonthlyTable) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create results file %s: %w", filename, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns()); err != nil {
		file.Close()
		return fmt.Errorf("failed to write results header: %w", err)
	}

	for i := 0; i < table.Len(); i++ {
		if err := writer.Write(FormatRow(table.Cells(i))); err != nil {
			file.Close()
			return fmt.Errorf("failed to write results row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush results CSV: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close results file %s: %w", filename, err)
	}
	return nil
}

// FormatRow renders cells the way they are stored on disk: undefined and NaN
// values become empty cells, infinities become inf/-inf and numbers use their
// shortest exact decimal form.
func FormatRow(cells []entities.Cell) []string {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = formatCell(c)
	}
	return row
}

func formatCell(c entities.Cell) string {
	switch c.Kind {
	case entities.DateCell:
		return c.Date.Format(DateLayout)
	case entities.IntegerCell:
		return strconv.FormatInt(int64(c.Integer), 10)
	default:
		return formatMeasure(c.Measure)
	}
}

func formatMeasure(m entities.Measure) string {
	switch {
	case !m.Valid, math.IsNaN(m.Value):
		return ""
	case math.IsInf(m.Value, 1):
		return "inf"
	case math.IsInf(m.Value, -1):
		return "-inf"
	default:
		return decimal.NewFromFloat(m.Value).String()
	}
}
