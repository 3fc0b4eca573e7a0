package sim

import (
	"math/rand"

	"github.com/ring-sim/ring-sim/sim/trace"
)

// DefaultDtS is the integration step (seconds) used when no schedule
// provides one.
const DefaultDtS = 0.1

// Plant chains the thermal, resonator, and impairment models behind a single
// per-cycle step.
type Plant struct {
	cfg      PlantConfig
	state    ThermalState
	noiseRNG *rand.Rand // nil disables thermal process noise
}

// NewPlant creates a Plant resting at ambient temperature.
func NewPlant(cfg PlantConfig) *Plant {
	return &Plant{cfg: cfg, state: NewThermalState(cfg)}
}

// NewPlantWithNoise creates a Plant that perturbs the device temperature each
// step with Gaussian process noise of cfg.TempNoiseStdC, drawn from rng.
// A zero noise config behaves identically to NewPlant.
func NewPlantWithNoise(cfg PlantConfig, rng *rand.Rand) *Plant {
	p := NewPlant(cfg)
	p.noiseRNG = rng
	return p
}

// Step advances the plant by one cycle and returns the observables computed
// on the new temperature.
func (p *Plant) Step(in trace.PlantInputs) trace.PlantOutputs {
	next := StepThermal(p.cfg, p.state, in.HeaterDuty, in.WorkloadFrac, in.DtS)
	if p.noiseRNG != nil && p.cfg.TempNoiseStdC > 0 {
		next.TempC += p.cfg.TempNoiseStdC * p.noiseRNG.NormFloat64()
	}
	p.state = next

	resonance, detune, locked := EvalResonator(p.cfg, next.TempC)
	return trace.PlantOutputs{
		TempC:       next.TempC,
		ResonanceNm: resonance,
		DetuneNm:    detune,
		Locked:      locked,
		CRCFailProb: CRCFailProbability(p.cfg, detune, locked),
	}
}

// Reset returns the plant to ambient temperature.
func (p *Plant) Reset() {
	p.state = NewThermalState(p.cfg)
}

// Temperature returns the current device temperature.
func (p *Plant) Temperature() float64 {
	return p.state.TempC
}

// Config returns the plant parameters.
func (p *Plant) Config() PlantConfig {
	return p.cfg
}
