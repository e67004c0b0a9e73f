package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordActivityAccumulates(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder(nil, nil)

	recorder.RecordActivity("research", "research_completed", "sess-1", map[string]any{"ticker": "AAPL"})
	recorder.RecordActivity("analysis", "analysis_completed", "sess-1", nil)
	recorder.RecordActivity("research", "research_completed", "sess-2", nil)

	all := recorder.Activities("", "")
	require.Len(t, all, 3)
	assert.Equal(t, "research", all[0].Agent)
	assert.Equal(t, "AAPL", all[0].Metadata["ticker"])
	assert.False(t, all[0].Time.IsZero())

	assert.Len(t, recorder.Activities("research", ""), 2)
	assert.Len(t, recorder.Activities("", "sess-1"), 2)
	assert.Len(t, recorder.Activities("analysis", "sess-2"), 0)

	snapshot := recorder.Snapshot()
	assert.Equal(t, 2, snapshot["research"])
	assert.Equal(t, 1, snapshot["analysis"])
}

func TestRecorderReset(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder(nil, nil)
	recorder.RecordActivity("research", "research_completed", "sess-1", nil)

	recorder.Reset()

	assert.Empty(t, recorder.Activities("", ""))
	assert.Empty(t, recorder.Snapshot())
}

func TestRecorderAppendsJSONLines(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "telemetry", "activity.jsonl")
	cfg := viper.New()
	cfg.Set("telemetry.path", logPath)

	recorder := NewRecorder(cfg, nil)
	recorder.RecordActivity("research", "research_completed", "sess-1", map[string]any{"ticker": "AAPL"})
	recorder.RecordActivity("report", "report_generated", "sess-1", nil)

	file, err := os.Open(logPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	var entries []Activity
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Activity
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	assert.Equal(t, "research_completed", entries[0].Activity)
	assert.Equal(t, "report_generated", entries[1].Activity)
}

func TestRecorderSinkFailureDoesNotPanic(t *testing.T) {
	t.Parallel()

	// Point the sink somewhere unwritable: a path under a regular file.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := viper.New()
	cfg.Set("telemetry.path", filepath.Join(blocker, "activity.jsonl"))

	recorder := NewRecorder(cfg, nil)
	recorder.RecordActivity("research", "research_completed", "sess-1", nil)

	assert.Len(t, recorder.Activities("", ""), 1, "in-memory record survives sink failure")
}

func TestRecorderConcurrentUse(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder.RecordActivity("research", "research_completed", "sess-1", nil)
		}()
	}
	wg.Wait()

	assert.Len(t, recorder.Activities("research", "sess-1"), 10)
	assert.Equal(t, 10, recorder.Snapshot()["research"])
}
