package sim

// BangBang is a hysteresis controller that nudges the persisted heater duty
// by a fixed step whenever the tracking error leaves the deadband, and holds
// it otherwise. While the resonator is unlocked it adds StepSize plus
// UnlockBoost each cycle until lock is reacquired.
type BangBang struct {
	cfg BangBangConfig

	duty float64
}

// NewBangBang returns a reset bang-bang controller.
func NewBangBang(cfg BangBangConfig) *BangBang {
	b := &BangBang{cfg: cfg}
	b.Reset()
	return b
}

// Reset zeroes the persisted duty.
func (b *BangBang) Reset() {
	b.duty = 0.0
}

// Update applies one bang-bang decision and returns the new heater duty and
// the tracking error it was computed from.
func (b *BangBang) Update(detuneNm, dtS float64, locked bool) (float64, float64) {
	_ = dtS // the decision is rate-independent

	err := detuneNm - b.cfg.SetpointNm

	switch {
	case !locked:
		b.duty += b.cfg.StepSize + b.cfg.UnlockBoost
	case err < -b.cfg.DeadbandNm:
		b.duty += b.cfg.StepSize
	case err > b.cfg.DeadbandNm:
		b.duty -= b.cfg.StepSize
	}
	b.duty = clamp(b.duty, b.cfg.OutputMin, b.cfg.OutputMax)

	return b.duty, err
}
