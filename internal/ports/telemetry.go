package ports

// Telemetry receives activity records from the pipeline, one per stage
// transition. Implementations must be fire-and-forget: they never block and
// never fail the caller.
type Telemetry interface {
	RecordActivity(agent, activity, sessionID string, metadata map[string]any)
}
