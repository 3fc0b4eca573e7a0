package sim

import (
	"math"
	"testing"
)

func TestEvalResonator_AtAmbient_ZeroDetune(t *testing.T) {
	cfg := DefaultPlantConfig()

	resonance, detune, locked := EvalResonator(cfg, cfg.AmbientC)

	if resonance != cfg.Lambda0Nm {
		t.Errorf("expected resonance %v at ambient, got %v", cfg.Lambda0Nm, resonance)
	}
	if detune != 0 {
		t.Errorf("expected zero detune at ambient, got %v", detune)
	}
	if !locked {
		t.Error("expected locked at zero detune")
	}
}

func TestEvalResonator_SignConvention(t *testing.T) {
	// Heating red-shifts the resonance past the target, so a hot device has
	// negative detune and a cold device positive detune.
	cfg := DefaultPlantConfig()

	_, hotDetune, _ := EvalResonator(cfg, cfg.AmbientC+3)
	_, coldDetune, _ := EvalResonator(cfg, cfg.AmbientC-3)

	if hotDetune >= 0 {
		t.Errorf("expected negative detune when hot, got %v", hotDetune)
	}
	if coldDetune <= 0 {
		t.Errorf("expected positive detune when cold, got %v", coldDetune)
	}
	if math.Abs(hotDetune+coldDetune) > 1e-12 {
		t.Errorf("expected symmetric detunes, got %v and %v", hotDetune, coldDetune)
	}
}

func TestEvalResonator_LockBoundaryInclusive(t *testing.T) {
	// 5 °C above ambient shifts the resonance by exactly the 0.5 nm lock
	// window; the boundary counts as locked on both sides.
	cfg := DefaultPlantConfig()

	tests := []struct {
		name       string
		tempC      float64
		wantDetune float64
		wantLocked bool
	}{
		{"hot boundary", cfg.AmbientC + 5, -0.5, true},
		{"cold boundary", cfg.AmbientC - 5, 0.5, true},
		{"just past hot boundary", cfg.AmbientC + 5.01, -0.501, false},
		{"just past cold boundary", cfg.AmbientC - 5.01, 0.501, false},
		{"well inside", cfg.AmbientC + 1, -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, detune, locked := EvalResonator(cfg, tt.tempC)
			if math.Abs(detune-tt.wantDetune) > 1e-9 {
				t.Errorf("detune: got %v, want %v", detune, tt.wantDetune)
			}
			if locked != tt.wantLocked {
				t.Errorf("locked: got %v, want %v", locked, tt.wantLocked)
			}
		})
	}
}

func TestEvalResonator_OffsetTarget(t *testing.T) {
	// A target 0.2 nm above the cold resonance needs 2 °C of heating to close.
	cfg := DefaultPlantConfig()
	cfg.TargetWavelengthNm = cfg.Lambda0Nm + 0.2

	_, detuneAtAmbient, _ := EvalResonator(cfg, cfg.AmbientC)
	if math.Abs(detuneAtAmbient-0.2) > 1e-12 {
		t.Errorf("expected +0.2 nm detune at ambient, got %v", detuneAtAmbient)
	}

	_, detuneTuned, locked := EvalResonator(cfg, cfg.AmbientC+2)
	if math.Abs(detuneTuned) > 1e-12 {
		t.Errorf("expected zero detune at +2 °C, got %v", detuneTuned)
	}
	if !locked {
		t.Error("expected locked once tuned onto target")
	}
}
