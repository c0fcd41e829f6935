package services

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/radyosim/backend/internal/domain/entities"
	"github.com/radyosim/backend/internal/infrastructure/observability"
	apperrors "github.com/radyosim/backend/pkg/errors"
)

// BatchService groups loose files into cases and runs the pipeline over
// them. Cases are keyed by id; each pipeline invocation touches only its
// own case record.
type BatchService struct {
	pipeline *PipelineService
	metrics  *observability.Metrics

	mu    sync.RWMutex
	cases map[string]*entities.Case
	order []string
}

// NewBatchService creates a new batch service
func NewBatchService(pipeline *PipelineService, metrics *observability.Metrics) *BatchService {
	return &BatchService{
		pipeline: pipeline,
		metrics:  metrics,
		cases:    make(map[string]*entities.Case),
	}
}

// GroupFiles groups a flat file listing into candidate cases by shared
// parent directory. A directory becomes a case only when it contains an
// audio file; a reference text file is optional. The grouped cases
// replace any previous grouping and are ordered by case name using
// Turkish collation, since case folders carry Turkish names.
func (s *BatchService) GroupFiles(files []string) []*entities.Case {
	type group struct {
		audio     string
		reference string
	}
	groups := make(map[string]*group)

	// First file of each kind per directory wins; listings are walked in
	// path order so this is deterministic.
	for _, file := range files {
		dir := filepath.Dir(file)
		g := groups[dir]
		if g == nil {
			g = &group{}
			groups[dir] = g
		}
		switch {
		case entities.IsAudioFile(file) && g.audio == "":
			g.audio = file
		case entities.IsReferenceFile(file) && g.reference == "":
			g.reference = file
		}
	}

	cases := make([]*entities.Case, 0, len(groups))
	for dir, g := range groups {
		if g.audio == "" {
			continue
		}
		c := &entities.Case{
			ID:   uuid.NewString(),
			Name: filepath.Base(dir),
			Path: dir,
			Audio: &entities.AudioPayload{
				Path: g.audio,
				Name: filepath.Base(g.audio),
			},
			ReferencePath: g.reference,
			Status:        entities.StatusPending,
		}
		cases = append(cases, c)
	}

	collator := collate.New(language.Turkish)
	sort.Slice(cases, func(i, j int) bool {
		return collator.CompareString(cases[i].Name, cases[j].Name) < 0
	})

	s.mu.Lock()
	s.cases = make(map[string]*entities.Case, len(cases))
	s.order = make([]string, 0, len(cases))
	for _, c := range cases {
		s.cases[c.ID] = c
		s.order = append(s.order, c.ID)
	}
	s.mu.Unlock()

	observability.GetLogger().Info().Int("cases", len(cases)).Msg("grouped files into cases")
	return cases
}

// SetTemplate assigns a template to one case. Template selection is
// per-case and user-driven; grouping never infers it.
func (s *BatchService) SetTemplate(caseID, templateKey string) bool {
	s.mu.RLock()
	c, ok := s.cases[caseID]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	c.TemplateKey = templateKey
	return true
}

// SetTemplateForAll assigns the same template to every grouped case
func (s *BatchService) SetTemplateForAll(templateKey string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cases {
		c.TemplateKey = templateKey
	}
}

// Get returns one case by id
func (s *BatchService) Get(caseID string) (*entities.Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	return c, ok
}

// Cases returns the grouped cases in display order
func (s *BatchService) Cases() []*entities.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Case, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cases[id])
	}
	return out
}

// RunCase runs the pipeline against one case by id. References are never
// required in batch mode.
func (s *BatchService) RunCase(ctx context.Context, caseID string, opts RunOptions) error {
	c, ok := s.Get(caseID)
	if !ok {
		return apperrors.NewNotFoundError("case not found: " + caseID)
	}
	opts.RequireReference = false
	err := s.pipeline.Run(ctx, c, opts)
	observability.RecordCaseProcessed(ctx, s.metrics, string(c.Status))
	return err
}

// RunAll runs every grouped case. Each case is an independently fallible
// unit; a failure is recorded on its own case record and never aborts
// the rest of the batch.
func (s *BatchService) RunAll(ctx context.Context, opts RunOptions) {
	opts.RequireReference = false
	for _, c := range s.Cases() {
		if err := s.pipeline.Run(ctx, c, opts); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Str("case_id", c.ID).
				Str("case", c.Name).
				Err(err).
				Msg("case run failed, continuing batch")
		}
		observability.RecordCaseProcessed(ctx, s.metrics, string(c.Status))
	}
}
