package trace

import (
	"math"
	"testing"
)

func TestSummarize_NilResult_ReturnsNil(t *testing.T) {
	if got := Summarize(nil); got != nil {
		t.Errorf("expected nil summary for nil result, got %+v", got)
	}
}

func TestSummarize_EmptyResult_ZeroValues(t *testing.T) {
	// GIVEN a result with no recorded streams
	res := NewRunResult()

	// WHEN summarized
	summary := Summarize(res)

	// THEN all aggregates are zero and the link is reported unmonitored
	if summary.Samples != 0 {
		t.Errorf("expected 0 samples, got %d", summary.Samples)
	}
	if summary.EventCount != 0 || summary.FailCount != 0 || summary.FailRate != 0 {
		t.Error("expected zero CRC statistics")
	}
	if summary.LinkMonitored {
		t.Error("expected LinkMonitored=false without link states")
	}
}

func TestSummarize_TemperatureStatistics(t *testing.T) {
	// GIVEN samples with known temperatures 20, 30, 40
	res := NewRunResult()
	for i, temp := range []float64{20, 30, 40} {
		res.RecordSample(TimeSeriesSample{Cycle: int64(i * 10), TempC: temp, Locked: true})
	}

	// WHEN summarized
	summary := Summarize(res)

	// THEN mean/min/max match and the locked fraction is 1
	if math.Abs(summary.TempMeanC-30) > 1e-9 {
		t.Errorf("expected mean 30, got %v", summary.TempMeanC)
	}
	if summary.TempMinC != 20 || summary.TempMaxC != 40 {
		t.Errorf("expected min 20 max 40, got %v %v", summary.TempMinC, summary.TempMaxC)
	}
	if summary.LockedFraction != 1.0 {
		t.Errorf("expected locked fraction 1.0, got %v", summary.LockedFraction)
	}
	if summary.TempStdDevC <= 0 {
		t.Errorf("expected positive stddev, got %v", summary.TempStdDevC)
	}
}

func TestSummarize_DetuneAndLockAggregates(t *testing.T) {
	// GIVEN samples with detunes of both signs and mixed lock state
	res := NewRunResult()
	res.RecordSample(TimeSeriesSample{Cycle: 0, DetuneNm: -0.4, Locked: true})
	res.RecordSample(TimeSeriesSample{Cycle: 10, DetuneNm: 0.8, Locked: false})

	// WHEN summarized
	summary := Summarize(res)

	// THEN |detune| aggregates use absolute values
	if math.Abs(summary.AbsDetuneMeanNm-0.6) > 1e-9 {
		t.Errorf("expected mean |detune| 0.6, got %v", summary.AbsDetuneMeanNm)
	}
	if summary.AbsDetuneMaxNm != 0.8 {
		t.Errorf("expected max |detune| 0.8, got %v", summary.AbsDetuneMaxNm)
	}
	if summary.LockedFraction != 0.5 {
		t.Errorf("expected locked fraction 0.5, got %v", summary.LockedFraction)
	}
}

func TestSummarize_CRCFailureRate(t *testing.T) {
	// GIVEN four events with one failure
	res := NewRunResult()
	res.RecordEvent(CRCEvent{Cycle: 0, CRCFail: false})
	res.RecordEvent(CRCEvent{Cycle: 10, CRCFail: true})
	res.RecordEvent(CRCEvent{Cycle: 20, CRCFail: false})
	res.RecordEvent(CRCEvent{Cycle: 30, CRCFail: false})

	// WHEN summarized
	summary := Summarize(res)

	// THEN the failure rate is 1/4
	if summary.EventCount != 4 || summary.FailCount != 1 {
		t.Errorf("expected 4 events 1 fail, got %d/%d", summary.EventCount, summary.FailCount)
	}
	if summary.FailRate != 0.25 {
		t.Errorf("expected fail rate 0.25, got %v", summary.FailRate)
	}
}

func TestSummarize_LinkTransitionsCounted(t *testing.T) {
	// GIVEN link states that go up -> down -> up
	res := NewRunResult()
	res.RecordLinkState(LinkStateSample{Cycle: 0, LinkUp: true, TotalFrames: 1})
	res.RecordLinkState(LinkStateSample{Cycle: 10, LinkUp: false, TotalFrames: 2, TotalCRCFails: 1})
	res.RecordLinkState(LinkStateSample{Cycle: 20, LinkUp: false, TotalFrames: 3, TotalCRCFails: 2})
	res.RecordLinkState(LinkStateSample{Cycle: 30, LinkUp: true, TotalFrames: 4, TotalCRCFails: 2})

	// WHEN summarized
	summary := Summarize(res)

	// THEN both transitions are counted and totals come from the last sample
	if !summary.LinkMonitored {
		t.Fatal("expected LinkMonitored=true")
	}
	if summary.LinkTransitions != 2 {
		t.Errorf("expected 2 transitions, got %d", summary.LinkTransitions)
	}
	if !summary.LinkUpAtEnd {
		t.Error("expected link up at end")
	}
	if summary.TotalFrames != 4 || summary.TotalCRCFails != 2 {
		t.Errorf("expected totals 4/2, got %d/%d", summary.TotalFrames, summary.TotalCRCFails)
	}
}
