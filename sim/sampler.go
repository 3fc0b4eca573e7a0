package sim

import (
	"math/rand"

	"github.com/ring-sim/ring-sim/sim/trace"
)

// CRCEventSampler realizes the impairment model's failure probability into
// concrete per-chunk CRC outcomes. It owns a dedicated RNG stream so event
// realization never perturbs other randomized subsystems.
//
// An unlocked resonator forces a failure outright, consistent with the
// impairment model pinning the probability to 1; no draw is consumed, so the
// stream position depends only on the number of locked samples.
type CRCEventSampler struct {
	rng *rand.Rand
}

// NewCRCEventSampler returns a sampler drawing from rng, which should come
// from PartitionedRNG.ForSubsystem(SubsystemCRCEvents).
func NewCRCEventSampler(rng *rand.Rand) *CRCEventSampler {
	return &CRCEventSampler{rng: rng}
}

// Sample realizes one Bernoulli outcome for the chunk starting at cycle.
func (s *CRCEventSampler) Sample(cycle, chunkIdx int64, out trace.PlantOutputs) trace.CRCEvent {
	fail := true
	if out.Locked {
		fail = s.rng.Float64() < out.CRCFailProb
	}
	return trace.CRCEvent{
		Cycle:       cycle,
		ChunkIdx:    chunkIdx,
		CRCFail:     fail,
		CRCFailProb: out.CRCFailProb,
	}
}
