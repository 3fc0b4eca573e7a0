package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults valid", DefaultConfig(), false},
		{"minimum thresholds", Config{FailsToDown: 1, PassesToUp: 1}, false},
		{"zero fails_to_down", Config{FailsToDown: 0, PassesToUp: 8}, true},
		{"zero passes_to_up", Config{FailsToDown: 4, PassesToUp: 0}, true},
		{"negative threshold", Config{FailsToDown: -1, PassesToUp: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMonitor_InitialState_UpAllZero(t *testing.T) {
	m := NewMonitor(DefaultConfig())

	require.True(t, m.LinkUp())
	s := m.Observe(0, false, false) // invalid observation just snapshots
	assert.True(t, s.LinkUp)
	assert.Zero(t, s.TotalFrames)
	assert.Zero(t, s.TotalCRCFails)
	assert.Zero(t, s.ConsecFails)
	assert.Zero(t, s.ConsecPasses)
}

func TestMonitor_GoesDownAtFourthConsecutiveFail(t *testing.T) {
	// GIVEN a monitor with the default 4/8 thresholds
	m := NewMonitor(DefaultConfig())

	// WHEN three consecutive failures arrive
	for i := int64(0); i < 3; i++ {
		s := m.Observe(i, true, true)
		// THEN the link is still up
		assert.True(t, s.LinkUp, "link should stay up through fail %d", i+1)
	}

	// WHEN the fourth consecutive failure arrives
	s := m.Observe(3, true, true)

	// THEN the link goes down exactly at the fourth
	assert.False(t, s.LinkUp)
	assert.Equal(t, int64(4), s.ConsecFails)
	assert.Equal(t, int64(4), s.TotalCRCFails)
	assert.Equal(t, int64(4), s.TotalFrames)
}

func TestMonitor_RecoversAtEighthConsecutivePass(t *testing.T) {
	// GIVEN a monitor already down
	m := NewMonitor(DefaultConfig())
	for i := int64(0); i < 4; i++ {
		m.Observe(i, true, true)
	}
	require.False(t, m.LinkUp())

	// WHEN seven consecutive passes arrive
	for i := int64(4); i < 11; i++ {
		s := m.Observe(i, false, true)
		// THEN the link is still down
		assert.False(t, s.LinkUp, "link should stay down through pass %d", i-3)
	}

	// WHEN the eighth consecutive pass arrives
	s := m.Observe(11, false, true)

	// THEN the link recovers exactly at the eighth
	assert.True(t, s.LinkUp)
	assert.Equal(t, int64(8), s.ConsecPasses)
	assert.Equal(t, int64(0), s.ConsecFails)
}

func TestMonitor_PassResetsFailStreak(t *testing.T) {
	// GIVEN three fails followed by a pass
	m := NewMonitor(DefaultConfig())
	for i := int64(0); i < 3; i++ {
		m.Observe(i, true, true)
	}
	s := m.Observe(3, false, true)
	require.True(t, s.LinkUp)
	require.Equal(t, int64(0), s.ConsecFails)

	// WHEN three more fails arrive
	for i := int64(4); i < 7; i++ {
		s = m.Observe(i, true, true)
	}

	// THEN the link is still up: the streak restarted from zero
	assert.True(t, s.LinkUp)
	assert.Equal(t, int64(3), s.ConsecFails)
}

func TestMonitor_FailResetsPassStreak(t *testing.T) {
	// GIVEN a down link mid-recovery
	m := NewMonitor(DefaultConfig())
	for i := int64(0); i < 4; i++ {
		m.Observe(i, true, true)
	}
	for i := int64(4); i < 11; i++ {
		m.Observe(i, false, true)
	}
	require.False(t, m.LinkUp())

	// WHEN a fail interrupts at seven passes
	s := m.Observe(11, true, true)

	// THEN the pass streak restarts and the link stays down
	assert.False(t, s.LinkUp)
	assert.Equal(t, int64(0), s.ConsecPasses)
	assert.Equal(t, int64(1), s.ConsecFails)
}

func TestMonitor_InvalidObservationFreezesEverything(t *testing.T) {
	// GIVEN a monitor with some history
	m := NewMonitor(DefaultConfig())
	m.Observe(0, true, true)
	m.Observe(1, true, true)
	before := m.Observe(2, true, true)

	// WHEN an invalid observation arrives with a failing CRC
	s := m.Observe(3, true, false)

	// THEN nothing moved except the reported cycle
	assert.Equal(t, before.LinkUp, s.LinkUp)
	assert.Equal(t, before.TotalFrames, s.TotalFrames)
	assert.Equal(t, before.TotalCRCFails, s.TotalCRCFails)
	assert.Equal(t, before.ConsecFails, s.ConsecFails)
	assert.Equal(t, before.ConsecPasses, s.ConsecPasses)
	assert.Equal(t, int64(3), s.Cycle)

	// AND a fourth valid fail still takes the link down (streak preserved)
	s = m.Observe(4, true, true)
	assert.False(t, s.LinkUp)
}

func TestMonitor_CountersMatchFedSequence(t *testing.T) {
	// GIVEN a fixed mixed sequence
	m := NewMonitor(Config{FailsToDown: 2, PassesToUp: 3})
	seq := []bool{true, false, true, true, false, false, false, true}

	var fails int64
	var last = m.Observe(0, false, false)
	for i, f := range seq {
		last = m.Observe(int64(i), f, true)
		if f {
			fails++
		}
	}

	assert.Equal(t, int64(len(seq)), last.TotalFrames)
	assert.Equal(t, fails, last.TotalCRCFails)
	// seq ends ...false,false,false,true: down at the double fail (idx 2,3),
	// back up after three passes (idx 4,5,6), down again needs two fails so up.
	assert.True(t, last.LinkUp)
	assert.Equal(t, int64(1), last.ConsecFails)
}

func TestMonitor_ResetRestoresInitialState(t *testing.T) {
	m := NewMonitor(DefaultConfig())
	for i := int64(0); i < 6; i++ {
		m.Observe(i, true, true)
	}
	require.False(t, m.LinkUp())

	m.Reset()

	s := m.Observe(0, false, false)
	assert.True(t, s.LinkUp)
	assert.Zero(t, s.TotalFrames)
	assert.Zero(t, s.TotalCRCFails)
	assert.Zero(t, s.ConsecFails)
	assert.Zero(t, s.ConsecPasses)
}

func TestMonitor_CustomThresholds(t *testing.T) {
	// 1 fail down, 1 pass up: no hysteresis, immediate flapping
	m := NewMonitor(Config{FailsToDown: 1, PassesToUp: 1})

	s := m.Observe(0, true, true)
	assert.False(t, s.LinkUp)

	s = m.Observe(1, false, true)
	assert.True(t, s.LinkUp)

	s = m.Observe(2, true, true)
	assert.False(t, s.LinkUp)
}
