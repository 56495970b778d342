package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/Najnomics/business-analysis-ai-V2/internal/application"
	domai "github.com/Najnomics/business-analysis-ai-V2/internal/domain/ai"
	domain "github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// PromptBuilder builds the per-framework instruction prompt.
type PromptBuilder interface {
	Build(framework domain.Framework, businessInput string) (string, error)
}

// Notifier is told about analyses that ran to natural completion.
// Implementations must not block the orchestrator.
type Notifier interface {
	AnalysisCompleted(userID string, a *domain.BusinessAnalysis)
}

// providerStat is the synthetic confidence/time attached to each
// provider's payload. No real measurement happens; the values mirror
// what the platform has always reported.
type providerStat struct {
	confidence     float64
	processingTime float64
}

var providerStats = map[string]providerStat{
	"deepseek": {confidence: 0.85, processingTime: 2.3},
	"gemini":   {confidence: 0.82, processingTime: 1.9},
}

const (
	consensusScore   = 0.84
	minInputLength   = 3
	defaultHistLimit = 10
	maxHistLimit     = 100

	staleRestartError = "analysis interrupted by server restart"
)

var keyRecommendations = []string{
	"Focus on digital transformation opportunities",
	"Leverage AI technology for competitive advantage",
	"Develop strong customer acquisition strategy",
	"Build scalable revenue model",
	"Implement comprehensive risk management",
}

// errCancelled is the loop's internal stop signal. The cancel endpoint
// already wrote the terminal status, so the loop exits without writing.
var errCancelled = errors.New("analysis cancelled")

// Service implements use-cases untuk BusinessAnalysis.
// One background goroutine per analysis; no cap, no queue.
type Service struct {
	Repo      domain.Repository
	Providers []domai.Client // fixed invocation order: deepseek before gemini
	Prompts   PromptBuilder
	Clock     application.Clock
	Registry  *Registry
	Notifier  Notifier // optional
}

// Command untuk create analysis
type CreateCommand struct {
	BusinessInput string
	Providers     []string // empty means all configured providers
}

// Create validates the input, persists the pending record and schedules
// the background run. It never blocks on the analysis itself.
func (s *Service) Create(ctx context.Context, cmd CreateCommand, userID string) (*domain.BusinessAnalysis, error) {
	input := strings.TrimSpace(cmd.BusinessInput)
	if len(input) < minInputLength {
		return nil, domain.ErrInvalidInput
	}

	providers, err := s.resolveProviders(cmd.Providers)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now().UTC()
	a := &domain.BusinessAnalysis{
		ID:            domain.AnalysisID(uuid.New().String()),
		UserID:        userID,
		BusinessInput: input,
		Results:       map[domain.Framework]domain.FrameworkResults{},
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Insert(ctx, a); err != nil {
		return nil, fmt.Errorf("persisting analysis: %w", err)
	}

	// The run outlives the request, so it gets its own cancellable
	// context instead of the handler's.
	runCtx, cancel := context.WithCancel(context.Background())
	s.Registry.Add(a.ID, cancel)
	go s.run(runCtx, a, providers)

	return a, nil
}

// resolveProviders keeps the declared adapter order regardless of the
// order names were requested in. Names match case-insensitively.
func (s *Service) resolveProviders(names []string) ([]domai.Client, error) {
	if len(names) == 0 {
		return s.Providers, nil
	}
	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[strings.ToLower(n)] = true
	}
	var out []domai.Client
	for _, p := range s.Providers {
		if requested[p.Name()] {
			out = append(out, p)
			delete(requested, p.Name())
		}
	}
	for n := range requested {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, n)
	}
	return out, nil
}

// run is the task boundary: every error below it ends up on the record,
// never in a caller.
func (s *Service) run(ctx context.Context, a *domain.BusinessAnalysis, providers []domai.Client) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("analysis %s panicked: %v", a.ID, r)
			s.fail(a.ID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	err := s.process(ctx, a, providers)
	switch {
	case err == nil:
		// completion already written and registry entry removed
	case errors.Is(err, errCancelled), ctx.Err() != nil:
		// A cancelled run context also surfaces as driver errors from
		// in-flight writes; none of that may overwrite the cancelled
		// status the cancel endpoint already stored.
		log.Printf("analysis %s was cancelled", a.ID)
	default:
		log.Printf("analysis %s failed: %v", a.ID, err)
		s.fail(a.ID, err.Error())
	}
}

func (s *Service) process(ctx context.Context, a *domain.BusinessAnalysis, providers []domai.Client) error {
	if err := s.Repo.SetStatus(ctx, a.ID, domain.StatusProcessing, s.Clock.Now().UTC()); err != nil {
		return fmt.Errorf("marking processing: %w", err)
	}

	results := make(map[domain.Framework]domain.FrameworkResults)

	for _, framework := range domain.Frameworks() {
		// Cancellation is cooperative: the registry entry disappearing is
		// the signal, checked once per framework.
		if ctx.Err() != nil || !s.Registry.Contains(a.ID) {
			return errCancelled
		}

		prompt, err := s.Prompts.Build(framework, a.BusinessInput)
		if err != nil {
			return err
		}

		frameworkResults := make(domain.FrameworkResults, len(providers))
		for _, p := range providers {
			payload, err := p.Analyze(ctx, framework, prompt)
			if err != nil {
				if ctx.Err() != nil {
					return errCancelled
				}
				return fmt.Errorf("%s analysis for %s: %w", p.Name(), framework, err)
			}
			stat := providerStats[p.Name()]
			frameworkResults[p.Name()] = domain.ProviderResult{
				Analysis:        payload,
				ConfidenceScore: stat.confidence,
				ProcessingTime:  stat.processingTime,
			}
		}
		results[framework] = frameworkResults
	}

	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	consensus := domain.Consensus{
		ConsensusScore:      consensusScore,
		ModelsUsed:          names,
		FrameworksAnalyzed:  len(results),
		ConflictingInsights: []string{},
		KeyRecommendations:  keyRecommendations,
	}

	if err := s.Repo.Complete(context.Background(), a.ID, results, consensus, s.Clock.Now().UTC()); err != nil {
		return fmt.Errorf("writing completion: %w", err)
	}
	s.Registry.Remove(a.ID)

	if s.Notifier != nil {
		// The caller still holds (and encodes) the record Create returned,
		// so the notifier gets its own copy instead of writes to a.
		done := *a
		done.Results = results
		done.Consensus = consensus
		done.ConfidenceScore = consensusScore
		done.Status = domain.StatusCompleted
		s.Notifier.AnalysisCompleted(done.UserID, &done)
	}
	return nil
}

// fail writes the terminal failed state. Uses a fresh context because
// the run context may already be cancelled.
func (s *Service) fail(id domain.AnalysisID, errText string) {
	if err := s.Repo.SetFailed(context.Background(), id, errText, s.Clock.Now().UTC()); err != nil {
		log.Printf("failed to mark analysis %s failed: %v", id, err)
	}
	s.Registry.Remove(id)
}

// Cancel stops an in-flight analysis. Reports false when the record does
// not exist for this owner or when the analysis already finished; a
// second cancel on the same id therefore returns false.
func (s *Service) Cancel(ctx context.Context, id domain.AnalysisID, userID string) (bool, error) {
	if _, err := s.Repo.Get(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if !s.Registry.Cancel(id) {
		return false, nil
	}

	// Written immediately, without waiting for the loop to notice. The
	// loop performs no writes after observing the cancellation.
	if err := s.Repo.SetStatus(ctx, id, domain.StatusCancelled, s.Clock.Now().UTC()); err != nil {
		return true, fmt.Errorf("marking cancelled: %w", err)
	}
	return true, nil
}

// Get returns one analysis scoped to its owner.
func (s *Service) Get(ctx context.Context, id domain.AnalysisID, userID string) (*domain.BusinessAnalysis, error) {
	return s.Repo.Get(ctx, userID, id)
}

// History returns the owner's analyses most-recent-first.
func (s *Service) History(ctx context.Context, userID string, skip, limit int64, search string) ([]*domain.BusinessAnalysis, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultHistLimit
	}
	if limit > maxHistLimit {
		limit = maxHistLimit
	}
	return s.Repo.History(ctx, userID, skip, limit, search)
}

// Delete removes one analysis; reports the deleted count (0 or 1).
func (s *Service) Delete(ctx context.Context, id domain.AnalysisID, userID string) (int64, error) {
	return s.Repo.Delete(ctx, userID, id)
}

// DeleteMany removes a batch of analyses owned by the user.
func (s *Service) DeleteMany(ctx context.Context, ids []domain.AnalysisID, userID string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.Repo.DeleteMany(ctx, userID, ids)
}

// RecoverStale marks records a previous process left in processing as
// failed. The registry is in-memory, so those runs are gone for good.
func (s *Service) RecoverStale(ctx context.Context) (int64, error) {
	return s.Repo.FailStaleProcessing(ctx, staleRestartError, s.Clock.Now().UTC())
}
