package store

import (
	"context"
	"time"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose restricts LLM event queries to one purpose label.
	Purpose string
}

// CategoryScoreData is one category's averaged score as persisted.
type CategoryScoreData struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ReportData is what gets recorded when an assessment is submitted.
// Individual responses are never stored.
type ReportData struct {
	SessionID string
	BankID    string
	Timestamp time.Time // zero means now
	Scores    []CategoryScoreData
	Top       []CategoryScoreData
	Insight   string
}

// ReportRecord is a stored report read back from the database.
type ReportRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
	BankID    string
	Scores    []CategoryScoreData
	Top       []CategoryScoreData
	Insight   string
}

// ReportRepo manages submitted assessment reports.
type ReportRepo interface {
	// Save stores a report and returns its ID.
	Save(ctx context.Context, data ReportData) (int, error)

	// Get returns a report by ID, or nil if it does not exist.
	Get(ctx context.Context, id int) (*ReportRecord, error)

	// List returns reports newest first.
	List(ctx context.Context, opts QueryOpts) ([]ReportRecord, error)

	// Delete removes a report. It reports whether a row was deleted.
	Delete(ctx context.Context, id int) (bool, error)

	// Count returns the number of stored reports.
	Count(ctx context.Context) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for one purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns an event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
