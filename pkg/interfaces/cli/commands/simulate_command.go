package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/vsinha/supplysim/pkg/application/dto"
	"github.com/vsinha/supplysim/pkg/application/services/orchestration"
	"github.com/vsinha/supplysim/pkg/config"
	"github.com/vsinha/supplysim/pkg/infrastructure/events"
	"github.com/vsinha/supplysim/pkg/interfaces/cli/output"
	"github.com/vsinha/supplysim/pkg/logger"
)

// SimulateCommand runs the demand, inventory and capacity simulation and
// writes its report
type SimulateCommand struct {
	config *config.Config
	log    *logger.Logger
	out    io.Writer
}

// NewSimulateCommand creates a new simulate command writing its report to stdout
func NewSimulateCommand(cfg *config.Config, log *logger.Logger) *SimulateCommand {
	return &SimulateCommand{
		config: cfg,
		log:    log,
		out:    os.Stdout,
	}
}

// WithOutput redirects the console report
func (c *SimulateCommand) WithOutput(w io.Writer) *SimulateCommand {
	c.out = w
	return c
}

// Execute runs the pipeline once
func (c *SimulateCommand) Execute(ctx context.Context) (*dto.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	capacityConfig := c.config.CapacitySimulator()

	c.log.Info().
		Str("run_id", runID).
		Int64("seed", c.config.Demand.Seed).
		Int64("starting_inventory", c.config.Inventory.StartingInventory).
		Int64("inbound_supply", c.config.Inventory.InboundSupply).
		Int64("daily_capacity", c.config.Capacity.DailyCapacity).
		Float64("spike_pct", c.config.Capacity.SpikePct).
		Str("output_dir", c.config.Output.Dir).
		Msg("starting simulation")

	eventStore := events.NewInMemoryEventStore()
	if err := eventStore.Subscribe(events.PipelineEventTypes, events.NewLogHandler(c.log.Zerolog())); err != nil {
		return nil, fmt.Errorf("failed to subscribe stage logger: %w", err)
	}

	reporter := output.NewReporter(output.Config{
		OutputDir:  c.config.Output.Dir,
		SpikeLabel: capacityConfig.SpikeLabel(),
		Out:        c.out,
	})

	orchestrator := orchestration.NewSimulationOrchestrator(
		c.config.DemandGenerator(),
		c.config.InventorySimulator(),
		capacityConfig,
		reporter,
		eventStore,
	)

	result, err := orchestrator.Run(runID)
	if err != nil {
		return nil, fmt.Errorf("simulation run %s failed: %w", runID, err)
	}

	c.log.Info().
		Str("run_id", runID).
		Int("rows", result.Table.Len()).
		Int("files", len(result.Files)).
		Dur("elapsed", result.TotalElapsed()).
		Msg("simulation complete")

	return result, nil
}
