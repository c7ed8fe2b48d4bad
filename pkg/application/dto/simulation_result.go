package dto

import (
	"time"

	"github.com/vsinha/supplysim/pkg/domain/entities"
)

// SimulationResult contains the complete output of a pipeline run
type SimulationResult struct {
	RunID        string
	Table        *entities.MonthlyTable
	Files        []string
	StageTimings []StageTiming
}

// StageTiming records how long one pipeline stage took
type StageTiming struct {
	Stage   string
	Elapsed time.Duration
}

// TotalElapsed sums the stage timings
func (r *SimulationResult) TotalElapsed() time.Duration {
	var total time.Duration
	for _, s := range r.StageTimings {
		total += s.Elapsed
	}
	return total
}
