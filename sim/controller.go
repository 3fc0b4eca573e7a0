package sim

// Controller closes the loop between observed plant output and the next
// heater duty. Implementations keep only the small state their control law
// needs (an integrator, the previous error, the persisted duty); everything
// else is derived from the observation passed to Update.
type Controller interface {
	// Update consumes one plant observation and returns the heater duty to
	// apply on the next plant step, clamped to the configured output range,
	// together with the tracking error (detune minus setpoint) the duty was
	// computed from. The kernel records the error in the time series.
	Update(detuneNm, dtS float64, locked bool) (duty, errorNm float64)

	// Reset restores the initial internal state. The kernel resets every
	// controller at the start of a run so repeated runs are independent.
	Reset()
}

// newController builds the controller selected by the configuration, or nil
// when no controller section is set and the run is open loop. Validate
// guarantees at most one section is present.
func newController(cfg SimConfig) Controller {
	switch {
	case cfg.PID != nil:
		return NewIncrementalPID(*cfg.PID)
	case cfg.PositionalPID != nil:
		return NewPositionalPID(*cfg.PositionalPID)
	case cfg.BangBang != nil:
		return NewBangBang(*cfg.BangBang)
	default:
		return nil
	}
}
