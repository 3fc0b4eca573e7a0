package sim

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ring-sim/ring-sim/sim/link"
	"github.com/ring-sim/ring-sim/sim/trace"
)

// Mode names the operating mode a simulator was wired for. The mode is fixed
// at construction from which input sources the configuration provides, so the
// per-chunk loop never has to guess which combination it is in.
type Mode int

const (
	// ModeBaseline runs chunk accounting only: no input source is wired,
	// so the plant is never stepped and no events are sampled.
	ModeBaseline Mode = iota
	// ModeOpenLoop drives the plant from the schedule alone.
	ModeOpenLoop
	// ModeClosedLoop lets the controller set the heater duty from plant
	// feedback; the schedule, when present, still supplies the workload.
	ModeClosedLoop
)

func (m Mode) String() string {
	switch m {
	case ModeBaseline:
		return "baseline"
	case ModeOpenLoop:
		return "open-loop"
	case ModeClosedLoop:
		return "closed-loop"
	default:
		return "unknown"
	}
}

// Simulator advances the co-simulation in chunks of cycles. It is the sole
// authority on time: the plant, controller, sampler, and link monitor are all
// driven from its loop and hold no independent notion of the current cycle.
//
// One chunk performs at most one plant step, one CRC event realization, one
// link observation, and one time-series sample, all tagged with the chunk's
// start cycle.
type Simulator struct {
	cfg      SimConfig
	mode     Mode
	plant    *Plant
	schedule Schedule
	ctrl     Controller
	sampler  *CRCEventSampler
	monitor  *link.Monitor

	// lastOut feeds the controller on the next chunk; nil until the first
	// plant step completes, which keeps the first closed-loop chunk on the
	// schedule's inputs.
	lastOut *trace.PlantOutputs
}

// NewSimulator validates the configuration and wires the subsystems for one
// run. A nil schedule is allowed; with no controller section either, the
// simulator runs in baseline mode. Randomized subsystems draw from streams
// partitioned off cfg.Seed, so re-creating a simulator with the same
// configuration reproduces a run bit for bit.
func NewSimulator(cfg SimConfig, schedule Schedule) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))

	s := &Simulator{
		cfg:      cfg,
		plant:    NewPlantWithNoise(cfg.Plant, rng.ForSubsystem(SubsystemThermalNoise)),
		schedule: schedule,
		ctrl:     newController(cfg),
		sampler:  NewCRCEventSampler(rng.ForSubsystem(SubsystemCRCEvents)),
	}
	if cfg.Link != nil {
		s.monitor = link.NewMonitor(*cfg.Link)
	}

	switch {
	case s.ctrl != nil:
		s.mode = ModeClosedLoop
	case s.schedule != nil:
		s.mode = ModeOpenLoop
	default:
		s.mode = ModeBaseline
	}

	return s, nil
}

// Mode reports the operating mode the simulator was wired for.
func (s *Simulator) Mode() Mode {
	return s.mode
}

// Run executes the configured number of cycles and returns the collected
// records. Stateful components are reset first, so a freshly constructed
// simulator and one reused after a completed run start identically except
// for their RNG stream positions.
func (s *Simulator) Run() *trace.RunResult {
	start := time.Now().UTC()
	res := trace.NewRunResult()

	if s.ctrl != nil {
		s.ctrl.Reset()
	}
	if s.monitor != nil {
		s.monitor.Reset()
	}
	s.plant.Reset()
	s.lastOut = nil

	cycles := s.cfg.Cycles
	step := s.cfg.CycleChunk

	logrus.Infof("[run %s] %s: %d cycles in chunks of %d", s.cfg.Name, s.mode, cycles, step)

	var cur, idx int64
	for cur < cycles {
		nxt := min(cur+step, cycles)
		res.RecordChunk(trace.ChunkSummary{ChunkIdx: idx, StartCycle: cur, EndCycle: nxt})

		in, ctrlErr, ok := s.resolveInputs(cur)
		if !ok {
			cur = nxt
			idx++
			continue
		}

		out := s.plant.Step(in)
		s.lastOut = &out

		ev := s.sampler.Sample(cur, idx, out)
		res.RecordEvent(ev)

		if s.monitor != nil {
			res.RecordLinkState(s.monitor.Observe(cur, ev.CRCFail, true))
		}

		res.RecordSample(trace.TimeSeriesSample{
			Cycle:            cur,
			TempC:            out.TempC,
			DetuneNm:         out.DetuneNm,
			Locked:           out.Locked,
			CRCFailProb:      out.CRCFailProb,
			HeaterDuty:       in.HeaterDuty,
			WorkloadFrac:     in.WorkloadFrac,
			ControllerError:  ctrlErr,
			ControllerActive: ctrlErr != nil,
		})

		logrus.Debugf("[chunk %04d] cycles [%d,%d) temp=%.3fC detune=%+.4fnm locked=%t fail=%t",
			idx, cur, nxt, out.TempC, out.DetuneNm, out.Locked, ev.CRCFail)

		cur = nxt
		idx++
	}

	res.Metrics = trace.RunMetrics{
		RunID:        uuid.NewString(),
		ScenarioName: s.cfg.Name,
		TotalCycles:  cycles,
		TotalChunks:  int64(len(res.Chunks)),
		StartTime:    start,
		FinishTime:   time.Now().UTC(),
	}

	logrus.Infof("[run %s] simulation ended: %d chunks, %d events", s.cfg.Name, len(res.Chunks), len(res.Events))
	return res
}

// resolveInputs decides where this chunk's plant inputs come from. The third
// return is false when no input source applies and the chunk is skipped.
// A non-nil error pointer marks the chunk as controller-driven.
func (s *Simulator) resolveInputs(cycle int64) (trace.PlantInputs, *float64, bool) {
	switch {
	case s.mode == ModeClosedLoop && s.lastOut != nil:
		// The controller runs on the feedback timestep; the plant keeps
		// the schedule's dt so open- and closed-loop trajectories stay
		// comparable.
		duty, errNm := s.ctrl.Update(s.lastOut.DetuneNm, DefaultDtS, s.lastOut.Locked)
		in := trace.PlantInputs{HeaterDuty: duty, WorkloadFrac: 0.0, DtS: DefaultDtS}
		if s.schedule != nil {
			sched := s.schedule(cycle)
			in.WorkloadFrac = sched.WorkloadFrac
			in.DtS = sched.DtS
		}
		return in, &errNm, true

	case s.schedule != nil:
		// Open loop, or the first closed-loop chunk before any feedback
		// exists: the schedule supplies everything.
		return s.schedule(cycle), nil, true

	default:
		return trace.PlantInputs{}, nil, false
	}
}
