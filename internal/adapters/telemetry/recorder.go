// Package telemetry records pipeline activity for inspection. Recording is
// fire-and-forget: it never blocks the pipeline and never surfaces errors.
package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/bjornf-dev/stockscout/internal/ports"
)

const (
	pathKey = "telemetry.path"

	logFileMode = 0o600
	logDirMode  = 0o700
)

// Activity is one recorded pipeline event.
type Activity struct {
	Time      time.Time      `json:"time"`
	Agent     string         `json:"agent"`
	Activity  string         `json:"activity"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type Recorder struct {
	mu         sync.Mutex
	activities []Activity
	counts     map[string]int
	clock      ports.Clock

	// logPath, when set, receives each activity as one JSON line. Sink
	// failures are swallowed; the in-memory record is the source of truth.
	logPath string
}

var _ ports.Telemetry = (*Recorder)(nil)

// NewRecorder keeps activities in memory. When cfg carries telemetry.path,
// activities are additionally appended to that file as JSON lines.
func NewRecorder(cfg *viper.Viper, clock ports.Clock) *Recorder {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	logPath := ""
	if cfg != nil {
		logPath = cfg.GetString(pathKey)
	}

	return &Recorder{
		counts:  make(map[string]int),
		clock:   clock,
		logPath: logPath,
	}
}

func (r *Recorder) RecordActivity(agent, activity, sessionID string, metadata map[string]any) {
	entry := Activity{
		Time:      r.clock.Now(),
		Agent:     agent,
		Activity:  activity,
		SessionID: sessionID,
		Metadata:  metadata,
	}

	r.mu.Lock()
	r.activities = append(r.activities, entry)
	r.counts[agent]++
	r.mu.Unlock()

	r.appendToLog(entry)
}

// Activities returns recorded entries, optionally filtered. Empty filter
// values match everything.
func (r *Recorder) Activities(agent, sessionID string) []Activity {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]Activity, 0, len(r.activities))
	for _, entry := range r.activities {
		if agent != "" && entry.Agent != agent {
			continue
		}
		if sessionID != "" && entry.SessionID != sessionID {
			continue
		}
		matched = append(matched, entry)
	}

	return matched
}

// Snapshot returns per-agent activity counts.
func (r *Recorder) Snapshot() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]int, len(r.counts))
	for agent, count := range r.counts {
		snapshot[agent] = count
	}

	return snapshot
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activities = nil
	r.counts = make(map[string]int)
}

func (r *Recorder) appendToLog(entry Activity) {
	if r.logPath == "" {
		return
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}

	if err := os.MkdirAll(filepath.Dir(r.logPath), logDirMode); err != nil {
		return
	}

	file, err := os.OpenFile(r.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return
	}
	defer func() { _ = file.Close() }()

	_, _ = file.Write(append(line, '\n'))
}
