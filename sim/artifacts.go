package sim

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/ring-sim/ring-sim/sim/trace"
)

// Artifact file names within a run's output directory.
const (
	MetricsFile    = "metrics.json"
	TimeSeriesFile = "timeseries.json"
	EventsFile     = "events.jsonl"
	LinkStateFile  = "link_state.json"
)

type metricsDocument struct {
	Run    trace.RunMetrics     `json:"run"`
	Chunks []trace.ChunkSummary `json:"chunks"`
}

type timeSeriesDocument struct {
	Samples []trace.TimeSeriesSample `json:"samples"`
}

type linkStateDocument struct {
	Samples []trace.LinkStateSample `json:"samples"`
}

// WriteRunArtifacts persists a run result under outDir, creating the
// directory if needed. metrics.json is always written; the time series, event
// log, and link state files are written only when their streams are non-empty,
// so a consumer can take file presence as "this run produced data of that
// kind".
func WriteRunArtifacts(outDir string, res *trace.RunResult) error {
	if res == nil {
		return fmt.Errorf("artifacts: nil run result")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("artifacts: creating %s: %w", outDir, err)
	}

	chunks := res.Chunks
	if chunks == nil {
		chunks = []trace.ChunkSummary{}
	}
	if err := writeJSON(filepath.Join(outDir, MetricsFile), metricsDocument{Run: res.Metrics, Chunks: chunks}); err != nil {
		return err
	}

	if len(res.TimeSeries) > 0 {
		if err := writeJSON(filepath.Join(outDir, TimeSeriesFile), timeSeriesDocument{Samples: res.TimeSeries}); err != nil {
			return err
		}
	}
	if len(res.Events) > 0 {
		if err := writeJSONLines(filepath.Join(outDir, EventsFile), res.Events); err != nil {
			return err
		}
	}
	if len(res.LinkStates) > 0 {
		if err := writeJSON(filepath.Join(outDir, LinkStateFile), linkStateDocument{Samples: res.LinkStates}); err != nil {
			return err
		}
	}

	logrus.Debugf("[artifacts] run %s written to %s", res.Metrics.RunID, outDir)
	return nil
}

// ReadRunResult loads a previously written run from dir. metrics.json must
// exist; the optional streams are loaded when present.
func ReadRunResult(dir string) (*trace.RunResult, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetricsFile))
	if err != nil {
		return nil, fmt.Errorf("artifacts: reading %s: %w", MetricsFile, err)
	}
	var doc metricsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("artifacts: decoding %s: %w", MetricsFile, err)
	}
	res := &trace.RunResult{Metrics: doc.Run, Chunks: doc.Chunks}

	if data, err := os.ReadFile(filepath.Join(dir, TimeSeriesFile)); err == nil {
		var ts timeSeriesDocument
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil, fmt.Errorf("artifacts: decoding %s: %w", TimeSeriesFile, err)
		}
		res.TimeSeries = ts.Samples
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("artifacts: reading %s: %w", TimeSeriesFile, err)
	}

	events, err := readEventLog(filepath.Join(dir, EventsFile))
	if err != nil {
		return nil, err
	}
	res.Events = events

	if data, err := os.ReadFile(filepath.Join(dir, LinkStateFile)); err == nil {
		var ls linkStateDocument
		if err := json.Unmarshal(data, &ls); err != nil {
			return nil, fmt.Errorf("artifacts: decoding %s: %w", LinkStateFile, err)
		}
		res.LinkStates = ls.Samples
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("artifacts: reading %s: %w", LinkStateFile, err)
	}

	return res, nil
}

// DefaultOutDir builds the conventional artifact path for a run:
// artifacts/runs/<UTC timestamp>_<sanitized name>.
func DefaultOutDir(name string, now time.Time) string {
	return filepath.Join("artifacts", "runs", now.UTC().Format("20060102_150405")+"_"+sanitizeRunName(name))
}

// sanitizeRunName reduces a scenario name to a filesystem-safe slug.
// Letters, digits, '-' and '_' pass through; everything else becomes '_',
// then leading and trailing underscores are trimmed.
func sanitizeRunName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	clean := strings.Trim(b.String(), "_")
	if clean == "" {
		return "scenario"
	}
	return clean
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("artifacts: encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("artifacts: writing %s: %w", path, err)
	}
	return nil
}

func writeJSONLines(path string, events []trace.CRCEvent) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("artifacts: encoding %s: %w", filepath.Base(path), err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("artifacts: writing %s: %w", path, err)
	}
	return nil
}

func readEventLog(path string) ([]trace.CRCEvent, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("artifacts: reading %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var events []trace.CRCEvent
	dec := json.NewDecoder(f)
	for dec.More() {
		var ev trace.CRCEvent
		if err := dec.Decode(&ev); err != nil {
			return nil, fmt.Errorf("artifacts: decoding %s: %w", filepath.Base(path), err)
		}
		events = append(events, ev)
	}
	return events, nil
}
