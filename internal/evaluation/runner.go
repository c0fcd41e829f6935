package evaluation

import (
	"context"
	"time"

	"github.com/radyosim/backend/internal/domain/entities"
)

// Runner audits a batch of completed cases: it aligns each generated
// report against its reference and aggregates quality metrics per
// template category.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Run audits every completed case. Cases without a reference are counted
// but not compared; failed or unfinished cases are skipped entirely.
func (r *Runner) Run(ctx context.Context, cases []*entities.Case) (*AuditSummary, []CaseAudit, error) {
	summary := &AuditSummary{
		ByCategory: make(map[string]*CategorySummary),
	}

	audits := make([]CaseAudit, 0, len(cases))

	for _, c := range cases {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		if c.Status != entities.StatusCompleted || c.Result == nil {
			continue
		}
		summary.TotalCases++

		audit := CaseAudit{
			CaseID:      c.ID,
			CaseName:    c.Name,
			TemplateKey: c.TemplateKey,
		}

		reference, err := LoadReference(c)
		if err != nil || reference == "" {
			summary.SkippedNoRef++
			audits = append(audits, audit)
			continue
		}

		start := time.Now()
		audit.Spans = Align(reference, c.Result.GeneratedReport)
		audit.Latency = time.Since(start)
		audit.Metrics = ComputeMetrics(audit.Spans)
		audit.Compared = true

		r.updateSummary(summary, &audit)
		audits = append(audits, audit)
	}

	r.finalizeSummary(summary)
	return summary, audits, nil
}

func (r *Runner) updateSummary(s *AuditSummary, audit *CaseAudit) {
	s.ComparedCases++
	s.AvgMatchRatio += audit.Metrics.MatchRatio
	s.AvgMissingRatio += audit.Metrics.MissingRatio
	s.AvgAddedRatio += audit.Metrics.AddedRatio

	category := audit.TemplateKey
	if cat, _, err := entities.ParseTemplateKey(audit.TemplateKey); err == nil {
		category = cat
	}

	if _, ok := s.ByCategory[category]; !ok {
		s.ByCategory[category] = &CategorySummary{}
	}
	cs := s.ByCategory[category]
	cs.Count++
	cs.AvgMatchRatio += audit.Metrics.MatchRatio
	cs.AvgMissingRatio += audit.Metrics.MissingRatio
	cs.AvgAddedRatio += audit.Metrics.AddedRatio
}

func (r *Runner) finalizeSummary(s *AuditSummary) {
	if s.ComparedCases > 0 {
		n := float64(s.ComparedCases)
		s.AvgMatchRatio /= n
		s.AvgMissingRatio /= n
		s.AvgAddedRatio /= n
	}

	for _, cs := range s.ByCategory {
		if cs.Count > 0 {
			n := float64(cs.Count)
			cs.AvgMatchRatio /= n
			cs.AvgMissingRatio /= n
			cs.AvgAddedRatio /= n
		}
	}
}
