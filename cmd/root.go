package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ring-sim/ring-sim/sim"
	"github.com/ring-sim/ring-sim/sim/link"
	"github.com/ring-sim/ring-sim/sim/rtl"
	"github.com/ring-sim/ring-sim/sim/trace"
)

var (
	// CLI flags for the run itself
	scenarioName string // Scenario name used in logs and artifact paths
	scenarioPath string // Optional YAML scenario file
	cycles       int64  // Total simulated cycles
	cycleChunks  int64  // Cycles per chunk (one plant step per chunk)
	seed         int64  // Master seed for every random stream
	outDir       string // Artifact directory; empty picks a timestamped default
	logLevel     string // Log verbosity level

	// CLI flags for the control loop
	controllerKind string  // none, pid, pid-positional, bangbang
	scheduleKind   string  // none, constant, step, ramp, heater-off
	heaterDuty     float64 // Scheduled heater duty in [0,1]
	workloadFrac   float64 // Scheduled workload fraction in [0,1]
	workloadHigh   float64 // Final workload fraction for step/ramp schedules
	stepAtCycle    int64   // Cycle where the step schedule raises the workload
	rampCycles     int64   // Cycles for the ramp schedule to reach its final workload

	// CLI flags for the link monitor and the RTL cross-check
	withLinkMonitor bool
	failsToDown     int64
	passesToUp      int64
	validateRTL     bool
	rtlTool         string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ring-sim",
	Short: "Closed-loop thermal simulator for a wavelength-locked resonator link",
}

// runCmd executes one simulation scenario from CLI flags, optionally layered
// over a YAML scenario file.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := assembleConfig(cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		schedule, err := buildSchedule(scheduleKind)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		s, err := sim.NewSimulator(cfg, schedule)
		if err != nil {
			logrus.Fatalf("Simulator setup failed: %v", err)
		}
		res := s.Run()

		dir := cfg.OutDir
		if dir == "" {
			dir = sim.DefaultOutDir(cfg.Name, time.Now())
		}
		if err := sim.WriteRunArtifacts(dir, res); err != nil {
			logrus.Fatalf("Writing artifacts failed: %v", err)
		}

		verdict, err := rtl.NewRunner(cfg.RTL).Validate(context.Background(), res.Events, res.LinkStates)
		if err != nil {
			logrus.Fatalf("RTL validation could not run: %v", err)
		}
		if cfg.RTL.Enabled {
			logrus.Infof("RTL validation: %s", verdict.Message)
		}

		printRunSummary(os.Stdout, cfg.Name, res, dir)

		if !verdict.OK {
			logrus.Errorf("RTL validation failed: %s", verdict.Message)
			os.Exit(1)
		}
	},
}

// assembleConfig layers the three configuration sources: built-in defaults,
// then the YAML scenario file, then any flag the user set explicitly.
func assembleConfig(changed func(string) bool) (sim.SimConfig, error) {
	cfg := sim.DefaultSimConfig()
	if scenarioPath != "" {
		loaded, err := loadScenario(scenarioPath)
		if err != nil {
			return sim.SimConfig{}, err
		}
		cfg = loaded
	}

	if changed("name") {
		cfg.Name = scenarioName
	}
	if changed("cycles") {
		cfg.Cycles = cycles
	}
	if changed("cycle-chunks") {
		cfg.CycleChunk = cycleChunks
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("out-dir") {
		cfg.OutDir = outDir
	}

	if changed("controller") {
		if err := selectController(&cfg, controllerKind); err != nil {
			return sim.SimConfig{}, err
		}
	}

	if withLinkMonitor && cfg.Link == nil {
		lc := link.DefaultConfig()
		cfg.Link = &lc
	}
	if cfg.Link != nil {
		if changed("fails-to-down") {
			cfg.Link.FailsToDown = failsToDown
		}
		if changed("passes-to-up") {
			cfg.Link.PassesToUp = passesToUp
		}
	}

	if validateRTL {
		cfg.RTL.Enabled = true
	}
	if changed("rtl-tool") {
		cfg.RTL.Tool = rtlTool
	}

	return cfg, nil
}

// selectController switches the active controller section to the given kind.
// A YAML-tuned section of the same kind is kept; sections of other kinds are
// cleared so the flag always wins.
func selectController(cfg *sim.SimConfig, kind string) error {
	pid, pos, bb := cfg.PID, cfg.PositionalPID, cfg.BangBang
	cfg.PID, cfg.PositionalPID, cfg.BangBang = nil, nil, nil

	switch kind {
	case "none":
	case "pid":
		if pid == nil {
			d := sim.DefaultPIDConfig()
			pid = &d
		}
		cfg.PID = pid
	case "pid-positional":
		if pos == nil {
			d := sim.DefaultPositionalPIDConfig()
			pos = &d
		}
		cfg.PositionalPID = pos
	case "bangbang":
		if bb == nil {
			d := sim.DefaultBangBangConfig()
			bb = &d
		}
		cfg.BangBang = bb
	default:
		return fmt.Errorf("unknown controller %q (want none, pid, pid-positional, or bangbang)", kind)
	}
	return nil
}

// buildSchedule maps the --schedule flag to an input schedule.
func buildSchedule(kind string) (sim.Schedule, error) {
	switch kind {
	case "none":
		return nil, nil
	case "constant":
		return sim.ConstantHeater(heaterDuty, workloadFrac), nil
	case "step":
		return sim.StepWorkload(heaterDuty, workloadFrac, workloadHigh, stepAtCycle), nil
	case "ramp":
		return sim.RampWorkload(heaterDuty, workloadFrac, workloadHigh, rampCycles), nil
	case "heater-off":
		return sim.HeaterOffWorkloadOn(workloadFrac), nil
	default:
		return nil, fmt.Errorf("unknown schedule %q (want none, constant, step, ramp, or heater-off)", kind)
	}
}

// printRunSummary writes the one-line result the original tooling greps for.
func printRunSummary(w io.Writer, name string, res *trace.RunResult, dir string) {
	linkState := "n/a"
	if n := len(res.LinkStates); n > 0 {
		linkState = "UP"
		if !res.LinkStates[n-1].LinkUp {
			linkState = "DOWN"
		}
	}
	fails := 0
	for _, ev := range res.Events {
		if ev.CRCFail {
			fails++
		}
	}
	fmt.Fprintf(w, "%s: cycles=%d chunks=%d link=%s crc_fails=%d -> %s\n",
		name, res.Metrics.TotalCycles, res.Metrics.TotalChunks, linkState, fails,
		filepath.Join(dir, sim.MetricsFile))
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioName, "name", "dev", "Scenario name for logs and artifact paths")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (explicit flags override its values)")
	runCmd.Flags().Int64Var(&cycles, "cycles", 100, "Total simulated cycles")
	runCmd.Flags().Int64Var(&cycleChunks, "cycle-chunks", 10, "Cycles per chunk (one plant step per chunk)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for every random stream")
	runCmd.Flags().StringVar(&outDir, "out-dir", "", "Artifact directory (default artifacts/runs/<timestamp>_<name>)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Control loop
	runCmd.Flags().StringVar(&controllerKind, "controller", "none", "Controller: none, pid, pid-positional, bangbang")
	runCmd.Flags().StringVar(&scheduleKind, "schedule", "constant", "Input schedule: none, constant, step, ramp, heater-off")
	runCmd.Flags().Float64Var(&heaterDuty, "heater", 0.5, "Scheduled heater duty in [0,1]")
	runCmd.Flags().Float64Var(&workloadFrac, "workload", 0.0, "Scheduled workload fraction in [0,1] (start value for step/ramp)")
	runCmd.Flags().Float64Var(&workloadHigh, "workload-high", 1.0, "Final workload fraction for step and ramp schedules")
	runCmd.Flags().Int64Var(&stepAtCycle, "step-at-cycle", 50, "Cycle where the step schedule raises the workload")
	runCmd.Flags().Int64Var(&rampCycles, "ramp-cycles", 100, "Cycles for the ramp schedule to reach its final workload")

	// Link monitor and RTL cross-check
	runCmd.Flags().BoolVar(&withLinkMonitor, "with-link-monitor", false, "Track link state from CRC events")
	runCmd.Flags().Int64Var(&failsToDown, "fails-to-down", 4, "Consecutive CRC failures before the link goes down")
	runCmd.Flags().Int64Var(&passesToUp, "passes-to-up", 8, "Consecutive CRC passes before the link recovers")
	runCmd.Flags().BoolVar(&validateRTL, "validate-rtl", false, "Replay events through the external RTL harness after the run")
	runCmd.Flags().StringVar(&rtlTool, "rtl-tool", "", "External RTL tool (default "+rtl.DefaultTool+")")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
