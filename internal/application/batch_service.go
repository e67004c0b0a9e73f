package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

// BatchService fans one pipeline run per ticker out over goroutines sharing a
// single batch session, then folds the outcomes into a comparative report.
type BatchService struct {
	sessions  ports.SessionStore
	runner    Runner
	reporter  ports.Reporter
	telemetry ports.Telemetry
	clock     ports.Clock
}

func NewBatchService(sessions ports.SessionStore, runner Runner, reporter ports.Reporter, telemetry ports.Telemetry, clock ports.Clock) *BatchService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &BatchService{
		sessions:  sessions,
		runner:    runner,
		reporter:  reporter,
		telemetry: telemetry,
		clock:     clock,
	}
}

// RunBatch researches every ticker concurrently under one shared session.
// Each ticker contributes exactly one outcome; one ticker's failure never
// disturbs its siblings. An empty ticker list yields a well-formed empty
// result.
func (s *BatchService) RunBatch(ctx context.Context, tickers []string) domain.BatchResult {
	session := s.sessions.Create()
	sessionID := session.ID()

	now := s.clock.Now()
	session.SetMetadata("tickers", tickers, now)
	session.SetMetadata("start_time", now.Format(time.RFC3339), now)
	session.SetMetadata("type", "batch_research", now)
	s.sessions.Save(session)

	s.record("batch", "batch_started", sessionID, map[string]any{"tickers": len(tickers)})

	outcomes := make([]domain.TickerOutcome, len(tickers))
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			outcomes[i] = s.runner.Run(ctx, ticker, sessionID)
		}(i, ticker)
	}
	wg.Wait()

	result := domain.BatchResult{
		SessionID: sessionID,
		Summary:   domain.BatchSummary{Total: len(tickers)},
	}
	for _, outcome := range outcomes {
		if outcome.Failed() {
			result.FailedTickers = append(result.FailedTickers, outcome.Ticker)
			result.Summary.Failed++
			continue
		}
		result.IndividualReports = append(result.IndividualReports, outcome.Report)
		result.Summary.Successful++
	}

	comparative, err := s.reporter.GenerateComparativeReport(ctx, result.IndividualReports, sessionID)
	if err != nil {
		// The per-ticker reports are already persisted; a comparative
		// failure degrades the batch, it does not abort it.
		s.record("report", "comparative_failed", sessionID, map[string]any{"error": err.Error()})
		comparative = domain.ComparativeReport{
			ReportDate:     s.clock.Now(),
			StocksAnalyzed: len(result.IndividualReports),
			Summary:        fmt.Sprintf("comparative report unavailable: %v", err),
		}
	}
	result.Comparative = comparative

	now = s.clock.Now()
	session.SetMetadata("end_time", now.Format(time.RFC3339), now)
	session.SetMetadata("successful_count", result.Summary.Successful, now)
	session.SetMetadata("failed_count", result.Summary.Failed, now)
	session.SetMetadata("status", "completed", now)
	s.sessions.Save(session)

	s.record("batch", "batch_completed", sessionID, map[string]any{
		"successful": result.Summary.Successful,
		"failed":     result.Summary.Failed,
	})

	return result
}

func (s *BatchService) record(agent, activity, sessionID string, metadata map[string]any) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.RecordActivity(agent, activity, sessionID, metadata)
}
