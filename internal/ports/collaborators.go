package ports

import (
	"context"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

// Researcher gathers raw findings for a ticker. Ordinary failures degrade to
// best-effort payloads with the Err field set; an error return is reserved
// for unrecoverable conditions such as a cancelled context.
type Researcher interface {
	Research(ctx context.Context, ticker string) (domain.ResearchData, error)
}

// Analyzer turns research data into a scored analysis. The session id is for
// activity correlation only. Error messages are propagated verbatim into the
// pipeline's failure descriptor.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string, research domain.ResearchData, sessionID string) (domain.Analysis, error)
}

// Reporter renders analyses into report payloads. Both methods default
// gracefully on missing fields rather than failing.
type Reporter interface {
	GenerateReport(ctx context.Context, ticker string, research domain.ResearchData, analysis domain.Analysis, sessionID string) (domain.Report, error)
	GenerateComparativeReport(ctx context.Context, reports []domain.Report, sessionID string) (domain.ComparativeReport, error)
}
