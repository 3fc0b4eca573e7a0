// Package testutil provides shared test infrastructure for the resonator
// simulator. It consolidates golden dataset types and assertion helpers used
// across sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenCase `json:"tests"`
}

// GoldenCase pins one hand-computed scenario: a constant-input run whose
// thermal trajectory follows the closed form of the RC recurrence.
type GoldenCase struct {
	Name         string  `json:"name"`
	Seed         int64   `json:"seed"`
	Cycles       int64   `json:"cycles"`
	CycleChunks  int64   `json:"cycle_chunks"`
	HeaterDuty   float64 `json:"heater_duty"`
	WorkloadFrac float64 `json:"workload_frac"`
	RelTol       float64 `json:"rel_tol"`

	Expected GoldenExpectation `json:"expected"`
}

// GoldenExpectation holds the expected observables for a golden case.
// TempsC lists the per-chunk sampled temperature, one entry per chunk.
type GoldenExpectation struct {
	TempsC        []float64 `json:"temps_c"`
	FinalDetuneNm float64   `json:"final_detune_nm"`
	AllLocked     bool      `json:"all_locked"`
	ZeroFails     bool      `json:"zero_fails"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
