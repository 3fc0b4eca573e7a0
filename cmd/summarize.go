package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ring-sim/ring-sim/sim"
	"github.com/ring-sim/ring-sim/sim/trace"
)

var summarizeDir string

// summarizeCmd reloads a recorded run and prints aggregate statistics.
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print aggregate statistics for a recorded run",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := sim.ReadRunResult(summarizeDir)
		if err != nil {
			logrus.Fatalf("Loading run failed: %v", err)
		}
		printSummary(os.Stdout, res)
	},
}

func printSummary(w io.Writer, res *trace.RunResult) {
	s := trace.Summarize(res)
	fmt.Fprintf(w, "run %s (%s)\n", res.Metrics.RunID, res.Metrics.ScenarioName)
	fmt.Fprintf(w, "  cycles: %d in %d chunks\n", res.Metrics.TotalCycles, res.Metrics.TotalChunks)
	if s.Samples > 0 {
		fmt.Fprintf(w, "  temp C: mean=%.3f std=%.3f min=%.3f p50=%.3f p95=%.3f max=%.3f\n",
			s.TempMeanC, s.TempStdDevC, s.TempMinC, s.TempP50C, s.TempP95C, s.TempMaxC)
		fmt.Fprintf(w, "  detune nm: mean_abs=%.4f max_abs=%.4f locked=%.0f%%\n",
			s.AbsDetuneMeanNm, s.AbsDetuneMaxNm, 100*s.LockedFraction)
	}
	fmt.Fprintf(w, "  crc: %d events, %d fails (%.2f%%)\n", s.EventCount, s.FailCount, 100*s.FailRate)
	if s.LinkMonitored {
		state := "UP"
		if !s.LinkUpAtEnd {
			state = "DOWN"
		}
		fmt.Fprintf(w, "  link: %s at end, %d transitions, %d/%d frames failed\n",
			state, s.LinkTransitions, s.TotalCRCFails, s.TotalFrames)
	}
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeDir, "dir", "", "Run artifact directory (required)")
	_ = summarizeCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(summarizeCmd)
}
