package rtl

import (
	"fmt"

	"github.com/ring-sim/ring-sim/sim/trace"
)

// compareStates checks the simulated samples against the RTL samples index by
// index. The first divergence produces the failing Result; a clean pass
// reports the verified sample count.
func compareStates(sim, rtl []trace.LinkStateSample) Result {
	if len(sim) != len(rtl) {
		return Result{
			OK:      false,
			Message: fmt.Sprintf("sample count mismatch: sim=%d rtl=%d", len(sim), len(rtl)),
		}
	}
	for i := range sim {
		if msg := compareSample(i, sim[i], rtl[i]); msg != "" {
			return Result{OK: false, Message: msg}
		}
	}
	return Result{OK: true, Message: fmt.Sprintf("%d samples verified", len(sim))}
}

// compareSample returns an empty string when the samples agree, otherwise a
// message naming the first mismatching field.
func compareSample(idx int, sim, rtl trace.LinkStateSample) string {
	switch {
	case sim.LinkUp != rtl.LinkUp:
		return mismatch(idx, "link_up", sim.LinkUp, rtl.LinkUp)
	case sim.TotalFrames != rtl.TotalFrames:
		return mismatch(idx, "total_frames", sim.TotalFrames, rtl.TotalFrames)
	case sim.TotalCRCFails != rtl.TotalCRCFails:
		return mismatch(idx, "total_crc_fails", sim.TotalCRCFails, rtl.TotalCRCFails)
	case sim.ConsecFails != rtl.ConsecFails:
		return mismatch(idx, "consec_fails", sim.ConsecFails, rtl.ConsecFails)
	case sim.ConsecPasses != rtl.ConsecPasses:
		return mismatch(idx, "consec_passes", sim.ConsecPasses, rtl.ConsecPasses)
	}
	return ""
}

func mismatch(idx int, field string, sim, rtl any) string {
	return fmt.Sprintf("sample %d: %s mismatch: sim=%v rtl=%v", idx, field, sim, rtl)
}
