package domain

// OutcomeStatus tags a per-ticker pipeline result.
type OutcomeStatus string

const (
	OutcomeOK    OutcomeStatus = "ok"
	OutcomeError OutcomeStatus = "error"
)

// TickerOutcome is the terminal result of one ticker's pipeline run. The
// pipeline never lets a stage failure escape as a panic or a bare error; every
// invocation ends in exactly one outcome, success or tagged failure.
type TickerOutcome struct {
	Ticker    string
	SessionID string
	Status    OutcomeStatus
	Report    Report
	Err       string
}

func (o TickerOutcome) Failed() bool { return o.Status == OutcomeError }

// FailedOutcome builds the tagged failure descriptor for a ticker.
func FailedOutcome(ticker, sessionID, msg string) TickerOutcome {
	return TickerOutcome{
		Ticker:    ticker,
		SessionID: sessionID,
		Status:    OutcomeError,
		Err:       msg,
	}
}

// BatchSummary counts outcomes for one batch. Total is always the number of
// input tickers, Successful+Failed == Total.
type BatchSummary struct {
	Total      int
	Successful int
	Failed     int
}

// BatchResult aggregates a batch run. It is transient: individual reports are
// persisted through the memory bank as part of each ticker's pipeline, the
// aggregate itself is not.
type BatchResult struct {
	SessionID         string
	IndividualReports []Report
	Comparative       ComparativeReport
	FailedTickers     []string
	Summary           BatchSummary
}
