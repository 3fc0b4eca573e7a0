package trace

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunSummary aggregates statistics from a RunResult.
type RunSummary struct {
	Samples int

	TempMeanC   float64
	TempStdDevC float64
	TempMinC    float64
	TempMaxC    float64
	TempP50C    float64
	TempP95C    float64

	AbsDetuneMeanNm float64
	AbsDetuneMaxNm  float64
	LockedFraction  float64

	EventCount int
	FailCount  int
	FailRate   float64

	LinkMonitored   bool
	LinkUpAtEnd     bool
	LinkTransitions int
	TotalFrames     int64
	TotalCRCFails   int64
}

// Summarize computes aggregate statistics from a RunResult.
// Safe for nil input (returns nil) and for empty streams (zero-value fields).
func Summarize(res *RunResult) *RunSummary {
	if res == nil {
		return nil
	}
	summary := &RunSummary{Samples: len(res.TimeSeries)}

	if len(res.TimeSeries) > 0 {
		temps := make([]float64, 0, len(res.TimeSeries))
		lockedCount := 0
		for _, s := range res.TimeSeries {
			temps = append(temps, s.TempC)
			ad := math.Abs(s.DetuneNm)
			summary.AbsDetuneMeanNm += ad
			if ad > summary.AbsDetuneMaxNm {
				summary.AbsDetuneMaxNm = ad
			}
			if s.Locked {
				lockedCount++
			}
		}
		summary.AbsDetuneMeanNm /= float64(len(temps))
		summary.LockedFraction = float64(lockedCount) / float64(len(temps))

		summary.TempMeanC = stat.Mean(temps, nil)
		if len(temps) > 1 {
			summary.TempStdDevC = stat.StdDev(temps, nil)
		}
		sorted := make([]float64, len(temps))
		copy(sorted, temps)
		sort.Float64s(sorted)
		summary.TempMinC = sorted[0]
		summary.TempMaxC = sorted[len(sorted)-1]
		summary.TempP50C = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		summary.TempP95C = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	}

	summary.EventCount = len(res.Events)
	for _, e := range res.Events {
		if e.CRCFail {
			summary.FailCount++
		}
	}
	if summary.EventCount > 0 {
		summary.FailRate = float64(summary.FailCount) / float64(summary.EventCount)
	}

	if len(res.LinkStates) > 0 {
		summary.LinkMonitored = true
		last := res.LinkStates[len(res.LinkStates)-1]
		summary.LinkUpAtEnd = last.LinkUp
		summary.TotalFrames = last.TotalFrames
		summary.TotalCRCFails = last.TotalCRCFails
		up := true // monitor starts up
		for _, s := range res.LinkStates {
			if s.LinkUp != up {
				summary.LinkTransitions++
				up = s.LinkUp
			}
		}
	}

	return summary
}
