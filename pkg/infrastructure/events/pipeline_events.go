package events

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	DemandGeneratedEvent    = "demand.generated"
	InventorySimulatedEvent = "inventory.simulated"
	CapacitySimulatedEvent  = "capacity.simulated"
	ReportWrittenEvent      = "report.written"
)

// PipelineEventTypes lists every stage event, in pipeline order
var PipelineEventTypes = []string{
	DemandGeneratedEvent,
	InventorySimulatedEvent,
	CapacitySimulatedEvent,
	ReportWrittenEvent,
}

type DemandGenerated struct {
	Seed        int64         `json:"seed"`
	Rows        int           `json:"rows"`
	TotalDemand int64         `json:"total_demand"`
	Elapsed     time.Duration `json:"elapsed"`
}

type InventorySimulated struct {
	Rows             int           `json:"rows"`
	ClosingInventory int64         `json:"closing_inventory"`
	MinInventory     int64         `json:"min_inventory"`
	Elapsed          time.Duration `json:"elapsed"`
}

type CapacitySimulated struct {
	Rows                 int           `json:"rows"`
	PeakUtilization      float64       `json:"peak_utilization_pct"`
	PeakSpikeUtilization float64       `json:"peak_spike_utilization_pct"`
	Elapsed              time.Duration `json:"elapsed"`
}

type ReportWritten struct {
	OutputDir string        `json:"output_dir"`
	Files     []string      `json:"files"`
	Elapsed   time.Duration `json:"elapsed"`
}

// LogHandler writes one structured log line per stage event
type LogHandler struct {
	log zerolog.Logger
}

func NewLogHandler(log zerolog.Logger) *LogHandler {
	return &LogHandler{log: log}
}

func (h *LogHandler) CanHandle(eventType string) bool {
	for _, t := range PipelineEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

func (h *LogHandler) Handle(event Event) error {
	e := h.log.Info().
		Str("run_id", event.StreamID()).
		Str("stage", event.Type()).
		Int("version", event.Version())

	switch data := event.Data().(type) {
	case DemandGenerated:
		e = e.Int64("seed", data.Seed).Int("rows", data.Rows).
			Int64("total_demand", data.TotalDemand).Dur("elapsed", data.Elapsed)
	case InventorySimulated:
		e = e.Int("rows", data.Rows).Int64("closing_inventory", data.ClosingInventory).
			Int64("min_inventory", data.MinInventory).Dur("elapsed", data.Elapsed)
	case CapacitySimulated:
		e = e.Int("rows", data.Rows).Float64("peak_utilization_pct", data.PeakUtilization).
			Float64("peak_spike_utilization_pct", data.PeakSpikeUtilization).Dur("elapsed", data.Elapsed)
	case ReportWritten:
		e = e.Str("output_dir", data.OutputDir).Strs("files", data.Files).Dur("elapsed", data.Elapsed)
	}

	e.Msg("stage completed")
	return nil
}
