package sim

import (
	"fmt"
	"math"

	"github.com/ring-sim/ring-sim/sim/link"
	"github.com/ring-sim/ring-sim/sim/rtl"
)

// PlantConfig groups the physical parameters of the thermally tuned resonator.
type PlantConfig struct {
	// Thermal RC network
	AmbientC      float64 `yaml:"ambient_c"`         // ambient temperature (°C)
	RThermalCPerW float64 `yaml:"r_thermal_c_per_w"` // thermal resistance (must be > 0)
	CThermalJPerC float64 `yaml:"c_thermal_j_per_c"` // thermal capacitance (must be > 0)
	HeaterMaxW    float64 `yaml:"heater_max_w"`      // heater power at duty 1.0
	WorkloadMaxW  float64 `yaml:"workload_max_w"`    // workload dissipation at frac 1.0

	// Resonator optics
	Lambda0Nm          float64 `yaml:"lambda0_nm"`           // resonance at ambient
	DLambdaDTNmPerC    float64 `yaml:"dlambda_dt_nm_per_c"`  // thermo-optic slope
	LockWindowNm       float64 `yaml:"lock_window_nm"`       // |detune| <= window counts as locked
	TargetWavelengthNm float64 `yaml:"target_wavelength_nm"` // laser wavelength to track

	// CRC impairment mapping (all in |detune| nm)
	CRCHalfPointNm float64 `yaml:"crc_half_point_nm"` // |detune| where failure probability crosses 0.5
	CRCFloorNm     float64 `yaml:"crc_floor_nm"`      // below this, probability is exactly 0
	CRCCeilNm      float64 `yaml:"crc_ceil_nm"`       // at or above this, probability is exactly 1

	// Optional Gaussian sensor noise added to the temperature each step.
	// Zero (the default) disables noise and keeps runs analytically clean.
	TempNoiseStdC float64 `yaml:"temp_noise_std_c"`
}

// DefaultPlantConfig returns the reference plant parameters.
func DefaultPlantConfig() PlantConfig {
	return PlantConfig{
		AmbientC:           25.0,
		RThermalCPerW:      10.0,
		CThermalJPerC:      0.1,
		HeaterMaxW:         1.0,
		WorkloadMaxW:       0.5,
		Lambda0Nm:          1550.0,
		DLambdaDTNmPerC:    0.1,
		LockWindowNm:       0.5,
		TargetWavelengthNm: 1550.0,
		CRCHalfPointNm:     0.3,
		CRCFloorNm:         0.0,
		CRCCeilNm:          1.0,
	}
}

// Validate checks the plant parameters. NaN and +Inf fail the positivity checks.
func (cfg PlantConfig) Validate() error {
	if !isPositiveFinite(cfg.RThermalCPerW) {
		return fmt.Errorf("plant: r_thermal_c_per_w must be positive and finite, got %v", cfg.RThermalCPerW)
	}
	if !isPositiveFinite(cfg.CThermalJPerC) {
		return fmt.Errorf("plant: c_thermal_j_per_c must be positive and finite, got %v", cfg.CThermalJPerC)
	}
	if cfg.HeaterMaxW < 0 {
		return fmt.Errorf("plant: heater_max_w must be >= 0, got %v", cfg.HeaterMaxW)
	}
	if cfg.WorkloadMaxW < 0 {
		return fmt.Errorf("plant: workload_max_w must be >= 0, got %v", cfg.WorkloadMaxW)
	}
	if cfg.LockWindowNm < 0 {
		return fmt.Errorf("plant: lock_window_nm must be >= 0, got %v", cfg.LockWindowNm)
	}
	if cfg.CRCCeilNm <= cfg.CRCFloorNm {
		return fmt.Errorf("plant: crc_ceil_nm (%v) must be greater than crc_floor_nm (%v)", cfg.CRCCeilNm, cfg.CRCFloorNm)
	}
	if cfg.CRCFloorNm < 0 {
		return fmt.Errorf("plant: crc_floor_nm must be >= 0, got %v", cfg.CRCFloorNm)
	}
	if cfg.TempNoiseStdC < 0 {
		return fmt.Errorf("plant: temp_noise_std_c must be >= 0, got %v", cfg.TempNoiseStdC)
	}
	return nil
}

// PIDConfig groups gains and bounds shared by both PID variants.
type PIDConfig struct {
	Kp            float64 `yaml:"kp"`
	Ki            float64 `yaml:"ki"`
	Kd            float64 `yaml:"kd"`
	SetpointNm    float64 `yaml:"setpoint_nm"` // detune setpoint, usually 0
	OutputMin     float64 `yaml:"output_min"`
	OutputMax     float64 `yaml:"output_max"`
	IntegratorMin float64 `yaml:"integrator_min"`
	IntegratorMax float64 `yaml:"integrator_max"`
	UnlockBoost   float64 `yaml:"unlock_boost"` // extra push toward lock while unlocked
}

// DefaultPIDConfig returns gains tuned for the reference plant.
func DefaultPIDConfig() PIDConfig {
	return PIDConfig{
		Kp:            0.05,
		Ki:            0.001,
		Kd:            0.01,
		SetpointNm:    0.0,
		OutputMin:     0.0,
		OutputMax:     1.0,
		IntegratorMin: -10.0,
		IntegratorMax: 10.0,
		UnlockBoost:   0.1,
	}
}

// Validate checks ordering of the PID bounds.
func (cfg PIDConfig) Validate() error {
	if cfg.OutputMax <= cfg.OutputMin {
		return fmt.Errorf("pid: output_max (%v) must be greater than output_min (%v)", cfg.OutputMax, cfg.OutputMin)
	}
	if cfg.IntegratorMax < cfg.IntegratorMin {
		return fmt.Errorf("pid: integrator_max (%v) must be >= integrator_min (%v)", cfg.IntegratorMax, cfg.IntegratorMin)
	}
	return nil
}

// PositionalPIDConfig extends PIDConfig with the output bias the positional
// form recomputes from each cycle.
type PositionalPIDConfig struct {
	PIDConfig `yaml:",inline"`
	Bias      float64 `yaml:"bias"`
}

// DefaultPositionalPIDConfig returns the positional variant defaults.
func DefaultPositionalPIDConfig() PositionalPIDConfig {
	return PositionalPIDConfig{PIDConfig: DefaultPIDConfig()}
}

// BangBangConfig groups the bang-bang controller parameters.
type BangBangConfig struct {
	DeadbandNm  float64 `yaml:"deadband_nm"` // no action while |error| <= deadband
	StepSize    float64 `yaml:"step_size"`   // duty increment per correction
	UnlockBoost float64 `yaml:"unlock_boost"`
	SetpointNm  float64 `yaml:"setpoint_nm"`
	OutputMin   float64 `yaml:"output_min"`
	OutputMax   float64 `yaml:"output_max"`
}

// DefaultBangBangConfig returns the bang-bang defaults.
func DefaultBangBangConfig() BangBangConfig {
	return BangBangConfig{
		DeadbandNm:  0.1,
		StepSize:    0.05,
		UnlockBoost: 0.2,
		SetpointNm:  0.0,
		OutputMin:   0.0,
		OutputMax:   1.0,
	}
}

// Validate checks the bang-bang parameters.
func (cfg BangBangConfig) Validate() error {
	if cfg.OutputMax <= cfg.OutputMin {
		return fmt.Errorf("bangbang: output_max (%v) must be greater than output_min (%v)", cfg.OutputMax, cfg.OutputMin)
	}
	if cfg.DeadbandNm < 0 {
		return fmt.Errorf("bangbang: deadband_nm must be >= 0, got %v", cfg.DeadbandNm)
	}
	if cfg.StepSize < 0 {
		return fmt.Errorf("bangbang: step_size must be >= 0, got %v", cfg.StepSize)
	}
	return nil
}

// SimConfig is the top-level configuration for one simulation run.
// At most one of PID, PositionalPID, BangBang may be set; all nil means the
// run is open loop and inputs come from the schedule alone.
type SimConfig struct {
	Name       string `yaml:"name"`
	Cycles     int64  `yaml:"cycles"`
	CycleChunk int64  `yaml:"cycle_chunks"` // cycles per chunk (one plant step per chunk)
	Seed       int64  `yaml:"seed"`
	OutDir     string `yaml:"out_dir"` // empty means timestamped default under artifacts/runs

	Plant PlantConfig `yaml:"plant"`

	PID           *PIDConfig           `yaml:"pid"`
	PositionalPID *PositionalPIDConfig `yaml:"positional_pid"`
	BangBang      *BangBangConfig      `yaml:"bangbang"`

	Link *link.Config `yaml:"link_monitor"` // nil disables link monitoring
	RTL  rtl.Config   `yaml:"rtl"`
}

// DefaultSimConfig returns a runnable open-loop configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Name:       "dev",
		Cycles:     100,
		CycleChunk: 10,
		Seed:       42,
		Plant:      DefaultPlantConfig(),
	}
}

// Validate fails fast on unusable configuration.
func (cfg SimConfig) Validate() error {
	if cfg.Name == "" {
		return fmt.Errorf("config: name must not be empty")
	}
	if cfg.Cycles < 0 {
		return fmt.Errorf("config: cycles must be >= 0, got %d", cfg.Cycles)
	}
	if cfg.CycleChunk <= 0 {
		return fmt.Errorf("config: cycle_chunks must be > 0, got %d", cfg.CycleChunk)
	}
	if err := cfg.Plant.Validate(); err != nil {
		return err
	}

	controllers := 0
	if cfg.PID != nil {
		controllers++
		if err := cfg.PID.Validate(); err != nil {
			return err
		}
	}
	if cfg.PositionalPID != nil {
		controllers++
		if err := cfg.PositionalPID.Validate(); err != nil {
			return err
		}
	}
	if cfg.BangBang != nil {
		controllers++
		if err := cfg.BangBang.Validate(); err != nil {
			return err
		}
	}
	if controllers > 1 {
		return fmt.Errorf("config: at most one controller section may be set, got %d", controllers)
	}

	if cfg.Link != nil {
		if err := cfg.Link.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasController reports whether any controller section is configured.
func (cfg SimConfig) HasController() bool {
	return cfg.PID != nil || cfg.PositionalPID != nil || cfg.BangBang != nil
}

func isPositiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
