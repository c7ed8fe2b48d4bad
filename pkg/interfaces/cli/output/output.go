package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/supplysim/pkg/domain/entities"
	"github.com/vsinha/supplysim/pkg/infrastructure/repositories/csv"
)

// Fixed file names inside the output directory
const (
	DemandChartFile   = "demand_vs_forecast.png"
	CapacityChartFile = "capacity_utilization.png"
	ResultsFile       = "results.csv"
)

// Config holds configuration for report generation
type Config struct {
	OutputDir  string
	SpikeLabel string    // e.g. "+20%", used in the capacity chart legend
	Out        io.Writer // console preview and confirmation
}

// Reporter prints the table preview and writes the charts and results CSV
type Reporter struct {
	config Config
	writer *csv.Writer
	loader *csv.Loader
}

// NewReporter creates a new reporter
func NewReporter(config Config) *Reporter {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &Reporter{
		config: config,
		writer: csv.NewWriter(),
		loader: csv.NewLoader(),
	}
}

// OutputDir returns the directory the reporter writes into
func (r *Reporter) OutputDir() string {
	return r.config.OutputDir
}

// Report prints the preview, then writes both charts and the results CSV,
// overwriting earlier runs. It returns the paths written.
func (r *Reporter) Report(table *entities.MonthlyTable) ([]string, error) {
	if err := PrintPreview(r.config.Out, table); err != nil {
		return nil, fmt.Errorf("failed to print preview: %w", err)
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	demandChart := filepath.Join(r.config.OutputDir, DemandChartFile)
	if err := RenderDemandChart(demandChart, table); err != nil {
		return nil, fmt.Errorf("failed to render demand chart: %w", err)
	}

	capacityChart := filepath.Join(r.config.OutputDir, CapacityChartFile)
	if err := RenderCapacityChart(capacityChart, table, r.config.SpikeLabel); err != nil {
		return nil, fmt.Errorf("failed to render capacity chart: %w", err)
	}

	resultsFile := filepath.Join(r.config.OutputDir, ResultsFile)
	if err := r.writer.WriteResults(resultsFile, table); err != nil {
		return nil, fmt.Errorf("failed to write results CSV: %w", err)
	}
	if err := r.verify(resultsFile, table); err != nil {
		return nil, err
	}

	fmt.Fprintf(r.config.Out, "\nSaved outputs to %s (plots + %s)\n", r.config.OutputDir, ResultsFile)

	return []string{demandChart, capacityChart, resultsFile}, nil
}

// verify reloads the written CSV and checks its shape against the table
func (r *Reporter) verify(filename string, table *entities.MonthlyTable) error {
	written, err := r.loader.LoadResults(filename)
	if err != nil {
		return fmt.Errorf("failed to reload results CSV: %w", err)
	}
	if written.Len() != table.Len() {
		return fmt.Errorf("results CSV has %d rows, expected %d", written.Len(), table.Len())
	}
	if len(written.Columns()) != len(table.Columns()) {
		return fmt.Errorf("results CSV has %d columns, expected %d", len(written.Columns()), len(table.Columns()))
	}
	return nil
}
