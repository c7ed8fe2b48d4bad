package orchestration

import (
	"fmt"
	"time"

	"github.com/vsinha/supplysim/pkg/application/dto"
	"github.com/vsinha/supplysim/pkg/application/services/capacity"
	"github.com/vsinha/supplysim/pkg/application/services/demand"
	"github.com/vsinha/supplysim/pkg/application/services/inventory"
	"github.com/vsinha/supplysim/pkg/domain/entities"
	"github.com/vsinha/supplysim/pkg/infrastructure/events"
)

// Reporter is the final pipeline stage: it presents and persists the table
type Reporter interface {
	Report(table *entities.MonthlyTable) ([]string, error)
	OutputDir() string
}

// SimulationOrchestrator runs demand generation, inventory simulation,
// capacity simulation and reporting, once each and in that order
type SimulationOrchestrator struct {
	demandGenerator    *demand.Generator
	inventorySimulator *inventory.Simulator
	capacitySimulator  *capacity.Simulator
	reporter           Reporter
	eventStore         events.EventStore
	seed               int64
}

// NewSimulationOrchestrator creates a new simulation orchestrator
func NewSimulationOrchestrator(
	demandConfig demand.Config,
	inventoryConfig inventory.Config,
	capacityConfig capacity.Config,
	reporter Reporter,
	eventStore events.EventStore,
) *SimulationOrchestrator {
	return &SimulationOrchestrator{
		demandGenerator:    demand.NewGenerator(demandConfig),
		inventorySimulator: inventory.NewSimulator(inventoryConfig),
		capacitySimulator:  capacity.NewSimulator(capacityConfig),
		reporter:           reporter,
		eventStore:         eventStore,
		seed:               demandConfig.Seed,
	}
}

// Run executes the full pipeline. Any reporting failure aborts the run; there
// is no partial result.
func (o *SimulationOrchestrator) Run(runID string) (*dto.SimulationResult, error) {
	result := &dto.SimulationResult{RunID: runID}

	// Step 1: Generate demand and rolling forecast
	start := time.Now()
	table := o.demandGenerator.Generate()
	elapsed := o.record(result, events.DemandGeneratedEvent, start)
	if err := o.emit(runID, events.DemandGeneratedEvent, events.DemandGenerated{
		Seed:        o.seed,
		Rows:        table.Len(),
		TotalDemand: int64(table.TotalDemand()),
		Elapsed:     elapsed,
	}); err != nil {
		return nil, err
	}

	// Step 2: Roll inventory forward
	start = time.Now()
	table = o.inventorySimulator.Simulate(table)
	elapsed = o.record(result, events.InventorySimulatedEvent, start)
	closing, lowest := table.InventoryBounds()
	if err := o.emit(runID, events.InventorySimulatedEvent, events.InventorySimulated{
		Rows:             table.Len(),
		ClosingInventory: int64(closing),
		MinInventory:     int64(lowest),
		Elapsed:          elapsed,
	}); err != nil {
		return nil, err
	}

	// Step 3: Baseline and spiked utilization
	start = time.Now()
	table = o.capacitySimulator.Simulate(table)
	elapsed = o.record(result, events.CapacitySimulatedEvent, start)
	peak, peakSpike := table.UtilizationPeaks()
	if err := o.emit(runID, events.CapacitySimulatedEvent, events.CapacitySimulated{
		Rows:                 table.Len(),
		PeakUtilization:      peak,
		PeakSpikeUtilization: peakSpike,
		Elapsed:              elapsed,
	}); err != nil {
		return nil, err
	}

	// Step 4: Preview, charts and CSV
	start = time.Now()
	files, err := o.reporter.Report(table)
	if err != nil {
		return nil, fmt.Errorf("failed to report results: %w", err)
	}
	elapsed = o.record(result, events.ReportWrittenEvent, start)
	if err := o.emit(runID, events.ReportWrittenEvent, events.ReportWritten{
		OutputDir: o.reporter.OutputDir(),
		Files:     files,
		Elapsed:   elapsed,
	}); err != nil {
		return nil, err
	}

	result.Table = table
	result.Files = files
	return result, nil
}

func (o *SimulationOrchestrator) record(result *dto.SimulationResult, stage string, start time.Time) time.Duration {
	elapsed := time.Since(start)
	result.StageTimings = append(result.StageTimings, dto.StageTiming{Stage: stage, Elapsed: elapsed})
	return elapsed
}

func (o *SimulationOrchestrator) emit(runID, eventType string, data interface{}) error {
	if o.eventStore == nil {
		return nil
	}
	if err := o.eventStore.AppendEvent(runID, events.NewEvent(eventType, runID, data)); err != nil {
		return fmt.Errorf("failed to record %s: %w", eventType, err)
	}
	return nil
}
