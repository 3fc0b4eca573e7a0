package sim

// ThermalState is the lumped thermal state of the device. Steps return new
// values; a state is never mutated in place.
type ThermalState struct {
	TempC float64
}

// NewThermalState returns the state resting at ambient temperature.
func NewThermalState(cfg PlantConfig) ThermalState {
	return ThermalState{TempC: cfg.AmbientC}
}

// StepThermal advances the first-order RC network by one forward-Euler step.
// Heater duty and workload fraction are clamped to [0, 1]; out-of-range
// commands behave exactly like their clamped values.
//
// Steady state at constant power P is AmbientC + P*RThermal.
func StepThermal(cfg PlantConfig, state ThermalState, heaterDuty, workloadFrac, dtS float64) ThermalState {
	duty := clamp01(heaterDuty)
	frac := clamp01(workloadFrac)

	powerW := duty*cfg.HeaterMaxW + frac*cfg.WorkloadMaxW
	dTdt := (powerW*cfg.RThermalCPerW - (state.TempC - cfg.AmbientC)) / (cfg.RThermalCPerW * cfg.CThermalJPerC)
	return ThermalState{TempC: state.TempC + dtS*dTdt}
}

func clamp01(x float64) float64 {
	return clamp(x, 0, 1)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
