package sim

import "math"

// CRCFailProbability maps |detune| to a CRC failure probability in [0, 1].
//
// An unlocked link always fails. At or below the floor the probability is
// exactly 0; at or above the ceiling it is exactly 1. In between, the
// normalized detune is remapped piecewise-linearly so the configured half
// point lands at 0.5, then shaped with a cubic smoothstep. The result is
// monotone non-decreasing in |detune| and symmetric in its sign.
func CRCFailProbability(cfg PlantConfig, detuneNm float64, locked bool) float64 {
	if !locked {
		return 1.0
	}
	d := math.Abs(detuneNm)
	if d <= cfg.CRCFloorNm {
		return 0.0
	}
	if d >= cfg.CRCCeilNm {
		return 1.0
	}

	span := cfg.CRCCeilNm - cfg.CRCFloorNm
	x := (d - cfg.CRCFloorNm) / span
	x50 := clamp01((cfg.CRCHalfPointNm - cfg.CRCFloorNm) / span)

	var xn float64
	if x50 > 0 && x50 < 1 {
		if x <= x50 {
			xn = 0.5 * x / x50
		} else {
			xn = 0.5 + 0.5*(x-x50)/(1-x50)
		}
	} else {
		// Half point pinned to an endpoint: fall back to the plain ramp.
		xn = x
	}

	s := xn * xn * (3 - 2*xn)
	return clamp01(s)
}
