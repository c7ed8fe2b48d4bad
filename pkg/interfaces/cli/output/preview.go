package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// PrintPreview writes every row and column of the table, right-aligned,
// followed by a short summary of the run
func PrintPreview(w io.Writer, table *entities.MonthlyTable) error {
	var out strings.Builder

	out.WriteString("\n=== Preview ===\n")
	writeAligned(&out, previewRows(table))
	writeSummary(&out, table)

	_, err := io.WriteString(w, out.String())
	return err
}

func previewRows(table *entities.MonthlyTable) [][]string {
	rows := make([][]string, 0, table.Len()+1)
	rows = append(rows, table.Columns())
	for i := 0; i < table.Len(); i++ {
		cells := table.Cells(i)
		row := make([]string, len(cells))
		for j, c := range cells {
			row[j] = previewCell(c)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeAligned(out *strings.Builder, rows [][]string) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		out.WriteString("Empty table\n")
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for j, cell := range row {
			widths[j] = max(widths[j], len(cell))
		}
	}

	for _, row := range rows {
		for j, cell := range row {
			if j > 0 {
				out.WriteString("  ")
			}
			fmt.Fprintf(out, "%*s", widths[j], cell)
		}
		out.WriteString("\n")
	}
}

func previewCell(c entities.Cell) string {
	switch c.Kind {
	case entities.DateCell:
		return c.Date.Format("2006-01-02")
	case entities.IntegerCell:
		return strconv.FormatInt(int64(c.Integer), 10)
	}

	m := c.Measure
	switch {
	case !m.Valid, math.IsNaN(m.Value):
		return "NaN"
	case math.IsInf(m.Value, 1):
		return "inf"
	case math.IsInf(m.Value, -1):
		return "-inf"
	default:
		return decimal.NewFromFloat(m.Value).StringFixed(2)
	}
}

func writeSummary(out *strings.Builder, table *entities.MonthlyTable) {
	if table.Len() == 0 || table.Stage < entities.StageDemand {
		return
	}

	p := message.NewPrinter(language.English)
	out.WriteString("\n")
	p.Fprintf(out, "Total demand: %d units over %d months\n", int64(table.TotalDemand()), table.Len())

	if table.Stage >= entities.StageInventory {
		closing, lowest := table.InventoryBounds()
		p.Fprintf(out, "Closing inventory: %d units (lowest %d)\n", int64(closing), int64(lowest))
	}

	if table.Stage >= entities.StageCapacity {
		peak, peakSpike := table.UtilizationPeaks()
		p.Fprintf(out, "Peak utilization: %.1f%% baseline, %.1f%% with spike\n", peak, peakSpike)
	}
}
