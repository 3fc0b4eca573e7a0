// Package trace holds the record types emitted by a simulation run.
// This package has no dependencies on sim/ or sim/link/; it stores pure data
// types, so artifact writers and external consumers can import it alone.
package trace

import "time"

// PlantInputs are the per-step actuation inputs to the plant.
type PlantInputs struct {
	HeaterDuty   float64 `json:"heater_duty" yaml:"heater_duty"`     // [0,1]
	WorkloadFrac float64 `json:"workload_frac" yaml:"workload_frac"` // [0,1]
	DtS          float64 `json:"dt_s" yaml:"dt_s"`                   // integration step, seconds
}

// PlantOutputs are the observables produced by one plant step.
type PlantOutputs struct {
	TempC       float64 `json:"temp_c"`
	ResonanceNm float64 `json:"resonance_nm"`
	DetuneNm    float64 `json:"detune_nm"` // target - resonance
	Locked      bool    `json:"locked"`
	CRCFailProb float64 `json:"crc_fail_prob"` // [0,1]
}

// CRCEvent records one sampled CRC outcome.
type CRCEvent struct {
	Cycle       int64   `json:"cycle"`
	ChunkIdx    int64   `json:"chunk_idx"`
	CRCFail     bool    `json:"crc_fail"`
	CRCFailProb float64 `json:"crc_fail_prob"`
}

// LinkStateSample records the link monitor state after one observation.
type LinkStateSample struct {
	Cycle         int64 `json:"cycle"`
	LinkUp        bool  `json:"link_up"`
	TotalFrames   int64 `json:"total_frames"`
	TotalCRCFails int64 `json:"total_crc_fails"`
	ConsecFails   int64 `json:"consec_fails"`
	ConsecPasses  int64 `json:"consec_passes"`
}

// TimeSeriesSample records the observables for one chunk of the run.
// ControllerError is nil for cycles the closed loop did not drive.
type TimeSeriesSample struct {
	Cycle            int64    `json:"cycle"`
	TempC            float64  `json:"temp_c"`
	DetuneNm         float64  `json:"detune_nm"`
	Locked           bool     `json:"locked"`
	CRCFailProb      float64  `json:"crc_fail_prob"`
	HeaterDuty       float64  `json:"heater_duty"`
	WorkloadFrac     float64  `json:"workload_frac"`
	ControllerError  *float64 `json:"controller_error"`
	ControllerActive bool     `json:"controller_active"`
}

// ChunkSummary identifies one chunk of simulated cycles. EndCycle is exclusive.
type ChunkSummary struct {
	ChunkIdx   int64 `json:"chunk_idx"`
	StartCycle int64 `json:"start_cycle"`
	EndCycle   int64 `json:"end_cycle"`
}

// RunMetrics captures run-level bookkeeping.
type RunMetrics struct {
	RunID        string    `json:"run_id"`
	ScenarioName string    `json:"scenario_name"`
	TotalCycles  int64     `json:"total_cycles"`
	TotalChunks  int64     `json:"total_chunks"`
	StartTime    time.Time `json:"start_time"`
	FinishTime   time.Time `json:"finish_time"`
}
