package trace

// RunResult collects every record stream produced by one simulation run.
// LinkStates is nil when the run had no link monitor.
type RunResult struct {
	Metrics    RunMetrics
	Chunks     []ChunkSummary
	TimeSeries []TimeSeriesSample
	Events     []CRCEvent
	LinkStates []LinkStateSample
}

// NewRunResult creates a RunResult ready for recording. Slices for the
// always-present streams are allocated; LinkStates stays nil until the first
// link observation is recorded.
func NewRunResult() *RunResult {
	return &RunResult{
		Chunks:     make([]ChunkSummary, 0),
		TimeSeries: make([]TimeSeriesSample, 0),
		Events:     make([]CRCEvent, 0),
	}
}

// RecordChunk appends a chunk summary.
func (r *RunResult) RecordChunk(c ChunkSummary) {
	r.Chunks = append(r.Chunks, c)
}

// RecordSample appends a time-series sample.
func (r *RunResult) RecordSample(s TimeSeriesSample) {
	r.TimeSeries = append(r.TimeSeries, s)
}

// RecordEvent appends a CRC event.
func (r *RunResult) RecordEvent(e CRCEvent) {
	r.Events = append(r.Events, e)
}

// RecordLinkState appends a link state sample.
func (r *RunResult) RecordLinkState(s LinkStateSample) {
	r.LinkStates = append(r.LinkStates, s)
}
