package sim

import "math"

// EvalResonator maps a device temperature to resonance wavelength, detune,
// and lock state.
//
// Detune is target minus resonance: a resonance sitting below target gives a
// positive detune, and heating (which red-shifts the resonance) shrinks it
// toward zero. The lock boundary is inclusive, so |detune| exactly equal to
// the lock window still counts as locked.
func EvalResonator(cfg PlantConfig, tempC float64) (resonanceNm, detuneNm float64, locked bool) {
	resonanceNm = cfg.Lambda0Nm + cfg.DLambdaDTNmPerC*(tempC-cfg.AmbientC)
	detuneNm = cfg.TargetWavelengthNm - resonanceNm
	locked = math.Abs(detuneNm) <= cfg.LockWindowNm
	return resonanceNm, detuneNm, locked
}
