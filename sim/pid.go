package sim

// IncrementalPID is a velocity-form PID loop: each cycle it computes a duty
// delta from the PID terms and accumulates it into the persisted duty. The
// persisted duty is the actuator state, so the controller recovers gracefully
// from saturation without separate anti-windup on the output.
//
// While the resonator is unlocked, the detune measurement is outside the
// usable range and the proportional term alone is too weak to reacquire
// quickly, so an extra UnlockBoost is added in the direction of the error.
type IncrementalPID struct {
	cfg PIDConfig

	duty       float64
	integrator float64
	lastError  float64
}

// NewIncrementalPID returns a reset incremental PID controller.
func NewIncrementalPID(cfg PIDConfig) *IncrementalPID {
	p := &IncrementalPID{cfg: cfg}
	p.Reset()
	return p
}

// Reset zeroes the duty, integrator, and error memory.
func (p *IncrementalPID) Reset() {
	p.duty = 0.0
	p.integrator = 0.0
	p.lastError = 0.0
}

// Update advances the loop by one cycle and returns the new heater duty and
// the tracking error it was computed from.
func (p *IncrementalPID) Update(detuneNm, dtS float64, locked bool) (float64, float64) {
	err := detuneNm - p.cfg.SetpointNm

	p.integrator += err * dtS
	p.integrator = clamp(p.integrator, p.cfg.IntegratorMin, p.cfg.IntegratorMax)

	derivative := 0.0
	if dtS > 0 {
		derivative = (err - p.lastError) / dtS
	}

	delta := p.cfg.Kp*err + p.cfg.Ki*p.integrator + p.cfg.Kd*derivative
	p.duty += delta
	if !locked {
		p.duty += boostToward(err, p.cfg.UnlockBoost)
	}
	p.duty = clamp(p.duty, p.cfg.OutputMin, p.cfg.OutputMax)

	p.lastError = err
	return p.duty, err
}

// PositionalPID recomputes the absolute heater duty from the PID terms every
// cycle instead of accumulating deltas. Without output memory it cannot creep
// after saturation, which makes it the safer choice when the plant model is
// well known and a fixed Bias puts the output near the operating point.
type PositionalPID struct {
	cfg PositionalPIDConfig

	integrator float64
	lastError  float64
}

// NewPositionalPID returns a reset positional PID controller.
func NewPositionalPID(cfg PositionalPIDConfig) *PositionalPID {
	p := &PositionalPID{cfg: cfg}
	p.Reset()
	return p
}

// Reset zeroes the integrator and error memory.
func (p *PositionalPID) Reset() {
	p.integrator = 0.0
	p.lastError = 0.0
}

// Update advances the loop by one cycle and returns the recomputed heater
// duty and the tracking error it was computed from.
func (p *PositionalPID) Update(detuneNm, dtS float64, locked bool) (float64, float64) {
	err := detuneNm - p.cfg.SetpointNm

	p.integrator += err * dtS
	p.integrator = clamp(p.integrator, p.cfg.IntegratorMin, p.cfg.IntegratorMax)

	derivative := 0.0
	if dtS > 0 {
		derivative = (err - p.lastError) / dtS
	}

	out := p.cfg.Bias + p.cfg.Kp*err + p.cfg.Ki*p.integrator + p.cfg.Kd*derivative
	if !locked {
		out += boostToward(err, p.cfg.UnlockBoost)
	}
	out = clamp(out, p.cfg.OutputMin, p.cfg.OutputMax)

	p.lastError = err
	return out, err
}

// boostToward returns boost signed to push the error toward zero: positive
// error gets +boost, zero or negative error gets -boost.
func boostToward(err, boost float64) float64 {
	if err > 0 {
		return boost
	}
	return -boost
}
