package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bjornf-dev/stockscout/internal/domain"
	"github.com/bjornf-dev/stockscout/internal/ports"
)

// Runner executes the research pipeline for one ticker. Run always returns an
// outcome; failures are tagged in the outcome rather than raised.
type Runner interface {
	Run(ctx context.Context, ticker, sessionID string) domain.TickerOutcome
}

// PipelineService drives the research, analyze, and report stages for a
// single ticker and persists the finished report in the memory bank.
type PipelineService struct {
	sessions   ports.SessionStore
	memory     ports.MemoryStore
	researcher ports.Researcher
	analyzer   ports.Analyzer
	reporter   ports.Reporter
	telemetry  ports.Telemetry
	clock      ports.Clock
}

var _ Runner = (*PipelineService)(nil)

func NewPipelineService(
	sessions ports.SessionStore,
	memory ports.MemoryStore,
	researcher ports.Researcher,
	analyzer ports.Analyzer,
	reporter ports.Reporter,
	telemetry ports.Telemetry,
	clock ports.Clock,
) *PipelineService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &PipelineService{
		sessions:   sessions,
		memory:     memory,
		researcher: researcher,
		analyzer:   analyzer,
		reporter:   reporter,
		telemetry:  telemetry,
		clock:      clock,
	}
}

// Run executes the full pipeline for one ticker. Every invocation ends in
// exactly one outcome: a stage error, a persistence error, or even a panic in
// a collaborator becomes a tagged failure, never an escaped error.
func (s *PipelineService) Run(ctx context.Context, ticker, sessionID string) (outcome domain.TickerOutcome) {
	session := s.obtainSession(sessionID)
	sessionID = session.ID()

	defer func() {
		if r := recover(); r != nil {
			outcome = s.fail(ticker, sessionID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if ticker == "" {
		return s.fail(ticker, sessionID, "empty ticker")
	}
	if err := ctx.Err(); err != nil {
		return s.fail(ticker, sessionID, err.Error())
	}

	research, err := s.researcher.Research(ctx, ticker)
	if err != nil {
		return s.fail(ticker, sessionID, fmt.Sprintf("research failed: %v", err))
	}

	now := s.clock.Now()
	session.AddResearchResult(ticker, research, now)
	session.UpdateState(domain.StateKeyLastResearch, now.Format(time.RFC3339), now)
	s.sessions.Save(session)
	s.record("research", "research_completed", sessionID, map[string]any{
		"ticker":   ticker,
		"degraded": research.Degraded(),
	})

	analysis, err := s.analyzer.Analyze(ctx, ticker, research, sessionID)
	if err != nil {
		return s.fail(ticker, sessionID, err.Error())
	}

	session.UpdateState(domain.StateKeyAnalysis, analysis, s.clock.Now())
	s.sessions.Save(session)
	s.record("analysis", "analysis_completed", sessionID, map[string]any{
		"ticker":         ticker,
		"recommendation": analysis.Recommendation.Action,
	})

	report, err := s.reporter.GenerateReport(ctx, ticker, research, analysis, sessionID)
	if err != nil {
		return s.fail(ticker, sessionID, fmt.Sprintf("report generation failed: %v", err))
	}

	if err := s.memory.Store(ctx, ticker, report); err != nil {
		return s.fail(ticker, sessionID, fmt.Sprintf("store report: %v", err))
	}

	s.record("report", "report_stored", sessionID, map[string]any{"ticker": ticker})

	return domain.TickerOutcome{
		Ticker:    ticker,
		SessionID: sessionID,
		Status:    domain.OutcomeOK,
		Report:    report,
	}
}

// obtainSession resolves the caller's session id, creating a fresh session
// when the id is empty or no longer live.
func (s *PipelineService) obtainSession(sessionID string) *domain.Session {
	if sessionID != "" {
		if session, err := s.sessions.Get(sessionID); err == nil {
			return session
		}
	}

	return s.sessions.Create()
}

// fail records the failure activity and builds the tagged outcome. Every
// failed run goes through here, so no failure is invisible to telemetry.
func (s *PipelineService) fail(ticker, sessionID, msg string) domain.TickerOutcome {
	s.record("pipeline", "pipeline_failed", sessionID, map[string]any{
		"ticker": ticker,
		"error":  msg,
	})
	return domain.FailedOutcome(ticker, sessionID, msg)
}

func (s *PipelineService) record(agent, activity, sessionID string, metadata map[string]any) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.RecordActivity(agent, activity, sessionID, metadata)
}
