package rtl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ring-sim/ring-sim/sim/trace"
)

// ExecRunner drives an external RTL simulation binary. The CRC event stream
// is fed to the tool as JSON lines on stdin; the tool replays it through the
// RTL link monitor and prints one JSON link-state sample per line on stdout.
type ExecRunner struct {
	cfg Config
}

// NewExecRunner creates an ExecRunner, applying the default tool name.
func NewExecRunner(cfg Config) *ExecRunner {
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	return &ExecRunner{cfg: cfg}
}

// Validate implements Runner.
//
// Outcomes:
//   - disabled config: approving Result, nil error
//   - no events: approving Result ("No events to validate"), nil error
//   - tool ran, outputs compared: Result carries the verdict
//   - tool missing or failed to run: non-nil error (ErrToolUnavailable when
//     the tool could not be launched at all)
func (r *ExecRunner) Validate(ctx context.Context, events []trace.CRCEvent, states []trace.LinkStateSample) (Result, error) {
	if !r.cfg.Enabled {
		return Result{OK: true, Message: "RTL validation disabled"}, nil
	}
	if len(events) == 0 {
		return Result{OK: true, Message: "No events to validate"}, nil
	}

	if r.cfg.TimeoutS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutS)*time.Second)
		defer cancel()
	}

	if _, err := exec.LookPath(r.cfg.Tool); err != nil {
		return Result{}, fmt.Errorf("%w: %s not found in PATH: %v", ErrToolUnavailable, r.cfg.Tool, err)
	}

	var stdin bytes.Buffer
	enc := json.NewEncoder(&stdin)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return Result{}, fmt.Errorf("rtl: encode event: %w", err)
		}
	}

	logrus.Debugf("rtl: running %s with %d events", r.cfg.Tool, len(events))
	cmd := exec.CommandContext(ctx, r.cfg.Tool)
	cmd.Dir = r.cfg.WorkDir
	cmd.Stdin = &stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("rtl: %s: %w", r.cfg.Tool, ctx.Err())
		}
		return Result{}, fmt.Errorf("rtl: %s failed: %v (stderr: %s)", r.cfg.Tool, err, strings.TrimSpace(stderr.String()))
	}

	rtlStates, err := parseStates(stdout.Bytes())
	if err != nil {
		return Result{}, fmt.Errorf("rtl: parse %s output: %w", r.cfg.Tool, err)
	}
	return compareStates(states, rtlStates), nil
}

// parseStates decodes one link-state sample per non-empty stdout line.
func parseStates(out []byte) ([]trace.LinkStateSample, error) {
	var states []trace.LinkStateSample
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var s trace.LinkStateSample
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		states = append(states, s)
	}
	return states, sc.Err()
}
