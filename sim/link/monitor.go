// Package link implements the CRC-driven link state machine with hysteresis.
// A healthy link needs a streak of consecutive CRC failures to be declared
// down, and a longer streak of passes to be declared up again, so isolated
// errors do not flap the link.
package link

import (
	"fmt"

	"github.com/ring-sim/ring-sim/sim/trace"
)

// Config holds the hysteresis thresholds.
type Config struct {
	FailsToDown int64 `yaml:"fails_to_down"` // consecutive fails before an up link goes down
	PassesToUp  int64 `yaml:"passes_to_up"`  // consecutive passes before a down link recovers
}

// DefaultConfig returns the reference thresholds (4 fails down, 8 passes up).
func DefaultConfig() Config {
	return Config{FailsToDown: 4, PassesToUp: 8}
}

// Validate checks that both thresholds are usable.
func (cfg Config) Validate() error {
	if cfg.FailsToDown < 1 {
		return fmt.Errorf("link_monitor: fails_to_down must be >= 1, got %d", cfg.FailsToDown)
	}
	if cfg.PassesToUp < 1 {
		return fmt.Errorf("link_monitor: passes_to_up must be >= 1, got %d", cfg.PassesToUp)
	}
	return nil
}

// Monitor tracks link health from a stream of CRC outcomes.
// The link starts up with all counters zero.
type Monitor struct {
	cfg Config

	linkUp        bool
	totalFrames   int64
	totalCRCFails int64
	consecFails   int64
	consecPasses  int64
}

// NewMonitor creates a Monitor in the initial up state.
func NewMonitor(cfg Config) *Monitor {
	m := &Monitor{cfg: cfg}
	m.Reset()
	return m
}

// Reset restores the initial state: link up, all counters zero.
func (m *Monitor) Reset() {
	m.linkUp = true
	m.totalFrames = 0
	m.totalCRCFails = 0
	m.consecFails = 0
	m.consecPasses = 0
}

// Observe folds one CRC outcome into the state machine and returns the state
// AFTER the update. valid=false freezes counters and link state entirely; the
// returned sample still reports the current state at that cycle.
func (m *Monitor) Observe(cycle int64, crcFail, valid bool) trace.LinkStateSample {
	if valid {
		m.totalFrames++
		if crcFail {
			m.totalCRCFails++
			m.consecFails++
			m.consecPasses = 0
			if m.linkUp && m.consecFails >= m.cfg.FailsToDown {
				m.linkUp = false
			}
		} else {
			m.consecPasses++
			m.consecFails = 0
			if !m.linkUp && m.consecPasses >= m.cfg.PassesToUp {
				m.linkUp = true
			}
		}
	}
	return trace.LinkStateSample{
		Cycle:         cycle,
		LinkUp:        m.linkUp,
		TotalFrames:   m.totalFrames,
		TotalCRCFails: m.totalCRCFails,
		ConsecFails:   m.consecFails,
		ConsecPasses:  m.consecPasses,
	}
}

// LinkUp reports the current link state.
func (m *Monitor) LinkUp() bool {
	return m.linkUp
}
