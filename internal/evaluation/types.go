package evaluation

import "time"

// SpanKind classifies a run of text produced by the alignment engine.
type SpanKind string

const (
	// SpanEqual marks text present in both reports at the same relative position
	SpanEqual SpanKind = "equal"
	// SpanMissing marks text present only in the reference (the generator omitted it)
	SpanMissing SpanKind = "missing"
	// SpanAdded marks text present only in the generated report
	SpanAdded SpanKind = "added"
)

// Span is one classified run of text. Spans carry their own content so
// both annotated documents can be rebuilt without the original strings.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// CaseMetrics quantifies one case's alignment in characters.
type CaseMetrics struct {
	EqualChars   int
	MissingChars int
	AddedChars   int

	// MatchRatio is the share of the reference reproduced verbatim.
	MatchRatio float64
	// MissingRatio is the share of the reference the generator omitted.
	MissingRatio float64
	// AddedRatio is the share of the generated report absent from the reference.
	AddedRatio float64
}

// CaseAudit holds the audit outcome for a single completed case.
type CaseAudit struct {
	CaseID      string
	CaseName    string
	TemplateKey string
	Compared    bool
	Spans       []Span
	Metrics     CaseMetrics
	Latency     time.Duration
}

// AuditSummary holds aggregate audit metrics across a batch.
type AuditSummary struct {
	TotalCases      int
	ComparedCases   int
	SkippedNoRef    int
	AvgMatchRatio   float64
	AvgMissingRatio float64
	AvgAddedRatio   float64
	ByCategory      map[string]*CategorySummary
}

// CategorySummary holds audit metrics grouped by template category.
type CategorySummary struct {
	Count           int
	AvgMatchRatio   float64
	AvgMissingRatio float64
	AvgAddedRatio   float64
}
