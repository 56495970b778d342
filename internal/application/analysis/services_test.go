package analysis

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Najnomics/business-analysis-ai-V2/internal/application"
	domai "github.com/Najnomics/business-analysis-ai-V2/internal/domain/ai"
	domain "github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// memRepo is an in-memory Repository. Complete signals on a channel so
// tests can wait for the background run deterministically.
type memRepo struct {
	mu        sync.Mutex
	records   map[domain.AnalysisID]*domain.BusinessAnalysis
	completed chan domain.AnalysisID

	lastSkip, lastLimit int64
}

func newMemRepo() *memRepo {
	return &memRepo{
		records:   make(map[domain.AnalysisID]*domain.BusinessAnalysis),
		completed: make(chan domain.AnalysisID, 8),
	}
}

func (r *memRepo) Insert(ctx context.Context, a *domain.BusinessAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *memRepo) Get(ctx context.Context, userID string, id domain.AnalysisID) (*domain.BusinessAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.records[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) SetStatus(ctx context.Context, id domain.AnalysisID, status domain.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.records[id]; ok {
		a.Status = status
		a.UpdatedAt = at
	}
	return nil
}

func (r *memRepo) SetFailed(ctx context.Context, id domain.AnalysisID, errText string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.records[id]; ok {
		a.Status = domain.StatusFailed
		a.Error = errText
		a.UpdatedAt = at
	}
	return nil
}

func (r *memRepo) Complete(ctx context.Context, id domain.AnalysisID, results map[domain.Framework]domain.FrameworkResults, consensus domain.Consensus, at time.Time) error {
	r.mu.Lock()
	if a, ok := r.records[id]; ok {
		a.Results = results
		a.Consensus = consensus
		a.ConfidenceScore = consensus.ConsensusScore
		a.Status = domain.StatusCompleted
		a.UpdatedAt = at
	}
	r.mu.Unlock()
	r.completed <- id
	return nil
}

func (r *memRepo) History(ctx context.Context, userID string, skip, limit int64, search string) ([]*domain.BusinessAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSkip, r.lastLimit = skip, limit

	var out []*domain.BusinessAnalysis
	for _, a := range r.records {
		if a.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(a.BusinessInput), strings.ToLower(search)) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if skip >= int64(len(out)) {
		return nil, nil
	}
	out = out[skip:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) Delete(ctx context.Context, userID string, id domain.AnalysisID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.records[id]; ok && a.UserID == userID {
		delete(r.records, id)
		return 1, nil
	}
	return 0, nil
}

func (r *memRepo) DeleteMany(ctx context.Context, userID string, ids []domain.AnalysisID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if a, ok := r.records[id]; ok && a.UserID == userID {
			delete(r.records, id)
			n++
		}
	}
	return n, nil
}

func (r *memRepo) FailStaleProcessing(ctx context.Context, errText string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.records {
		if a.Status == domain.StatusProcessing {
			a.Status = domain.StatusFailed
			a.Error = errText
			a.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func (r *memRepo) get(id domain.AnalysisID) *domain.BusinessAnalysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.records[id]
	return &cp
}

// fakeProvider answers instantly unless a gate channel is set, in which
// case every call blocks until the gate is fed or the context dies. The
// first call closes started so tests can line up with the run loop.
type fakeProvider struct {
	name      string
	gate      chan struct{}
	started   chan struct{}
	startOnce sync.Once
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Analyze(ctx context.Context, framework domain.Framework, prompt string) (domai.Payload, error) {
	if p.started != nil {
		p.startOnce.Do(func() { close(p.started) })
	}
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return domai.Payload{"analysis": "result for " + string(framework)}, nil
}

// ctxAwareRepo fails writes once their context is cancelled, the way a
// real driver would. The processing write additionally blocks so tests
// can land a cancel while it is in flight.
type ctxAwareRepo struct {
	*memRepo
	processing chan struct{}
	release    chan struct{}
}

func (r *ctxAwareRepo) SetStatus(ctx context.Context, id domain.AnalysisID, status domain.Status, at time.Time) error {
	if status == domain.StatusProcessing {
		close(r.processing)
		select {
		case <-r.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return r.memRepo.SetStatus(ctx, id, status, at)
}

type recordingNotifier struct {
	notified chan *domain.BusinessAnalysis
}

func (n *recordingNotifier) AnalysisCompleted(userID string, a *domain.BusinessAnalysis) {
	n.notified <- a
}

type stubPrompts struct{}

func (stubPrompts) Build(framework domain.Framework, businessInput string) (string, error) {
	return "Analyze " + businessInput + " with " + string(framework), nil
}

func newTestService(repo *memRepo, providers ...domai.Client) *Service {
	return &Service{
		Repo:      repo,
		Providers: providers,
		Prompts:   stubPrompts{},
		Clock:     application.SystemClock{},
		Registry:  NewRegistry(),
	}
}

func waitCompleted(t *testing.T, repo *memRepo) domain.AnalysisID {
	t.Helper()
	select {
	case id := <-repo.completed:
		return id
	case <-time.After(5 * time.Second):
		t.Fatal("analysis did not complete in time")
		return ""
	}
}

func TestCreateRejectsShortInput(t *testing.T) {
	svc := newTestService(newMemRepo(), &fakeProvider{name: "deepseek"})

	_, err := svc.Create(context.Background(), CreateCommand{BusinessInput: "  ab  "}, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateRejectsUnknownProvider(t *testing.T) {
	svc := newTestService(newMemRepo(), &fakeProvider{name: "deepseek"})

	_, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "AI-powered food delivery startup",
		Providers:     []string{"gpt4"},
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestAnalysisRunsToCompletion(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo,
		&fakeProvider{name: "deepseek"},
		&fakeProvider{name: "gemini"},
	)

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "AI-powered food delivery startup",
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)

	id := waitCompleted(t, repo)
	require.Equal(t, created.ID, id)

	a := repo.get(id)
	assert.Equal(t, domain.StatusCompleted, a.Status)
	assert.Len(t, a.Results, len(domain.Frameworks()))
	for fw, results := range a.Results {
		require.Len(t, results, 2, "framework %s", fw)
		assert.Equal(t, 0.85, results["deepseek"].ConfidenceScore)
		assert.Equal(t, 2.3, results["deepseek"].ProcessingTime)
		assert.Equal(t, 0.82, results["gemini"].ConfidenceScore)
		assert.Equal(t, 1.9, results["gemini"].ProcessingTime)
	}

	assert.Equal(t, 0.84, a.Consensus.ConsensusScore)
	assert.Equal(t, []string{"deepseek", "gemini"}, a.Consensus.ModelsUsed)
	assert.Equal(t, len(domain.Frameworks()), a.Consensus.FrameworksAnalyzed)
	assert.Empty(t, a.Consensus.ConflictingInsights)
	assert.Len(t, a.Consensus.KeyRecommendations, 5)

	assert.Equal(t, 0, svc.Registry.Len(), "registry entry must be gone after completion")
}

func TestProviderSubsetKeepsDeclaredOrder(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo,
		&fakeProvider{name: "deepseek"},
		&fakeProvider{name: "gemini"},
	)

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "specialty coffee subscription",
		Providers:     []string{"gemini"},
	}, "user-1")
	require.NoError(t, err)

	waitCompleted(t, repo)
	a := repo.get(created.ID)
	assert.Equal(t, []string{"gemini"}, a.Consensus.ModelsUsed)
	for _, results := range a.Results {
		assert.Len(t, results, 1)
	}
}

func TestProviderNamesMatchCaseInsensitively(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo,
		&fakeProvider{name: "deepseek"},
		&fakeProvider{name: "gemini"},
	)

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "specialty coffee subscription",
		Providers:     []string{"DeepSeek"},
	}, "user-1")
	require.NoError(t, err)

	waitCompleted(t, repo)
	assert.Equal(t, []string{"deepseek"}, repo.get(created.ID).Consensus.ModelsUsed)
}

func TestNotifierGetsOwnCompletedCopy(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo,
		&fakeProvider{name: "deepseek"},
		&fakeProvider{name: "gemini"},
	)
	notifier := &recordingNotifier{notified: make(chan *domain.BusinessAnalysis, 2)}
	svc.Notifier = notifier

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "AI-powered food delivery startup",
	}, "user-1")
	require.NoError(t, err)

	// The handler encodes the returned record while the run goroutine is
	// still working; the record must stay untouched.
	encoded, err := json.Marshal(created)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"status":"pending"`)

	select {
	case got := <-notifier.notified:
		assert.NotSame(t, created, got, "notifier must not share the caller's record")
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, domain.StatusCompleted, got.Status)
		assert.Len(t, got.Results, len(domain.Frameworks()))
		assert.Equal(t, 0.84, got.Consensus.ConsensusScore)
	case <-time.After(5 * time.Second):
		t.Fatal("notifier was never called")
	}

	assert.Equal(t, domain.StatusPending, created.Status, "caller's record must not change")

	select {
	case <-notifier.notified:
		t.Fatal("notifier must fire exactly once")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelMidFlight(t *testing.T) {
	repo := newMemRepo()
	gate := make(chan struct{})
	started := make(chan struct{})
	svc := newTestService(repo, &fakeProvider{name: "deepseek", gate: gate, started: started})

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "AI-powered food delivery startup",
	}, "user-1")
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("run loop never reached the provider")
	}

	// The provider is stuck on the gate; the cancel fires the context
	// and the loop exits without a completion write.
	ok, err := svc.Cancel(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, domain.StatusCancelled, repo.get(created.ID).Status)

	// Second cancel finds no registry entry.
	ok, err = svc.Cancel(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	select {
	case <-repo.completed:
		t.Fatal("cancelled analysis must not complete")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, domain.StatusCancelled, repo.get(created.ID).Status)
}

func TestCancelDuringProcessingWriteStaysCancelled(t *testing.T) {
	repo := &ctxAwareRepo{
		memRepo:    newMemRepo(),
		processing: make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := &Service{
		Repo:      repo,
		Providers: []domai.Client{&fakeProvider{name: "deepseek"}},
		Prompts:   stubPrompts{},
		Clock:     application.SystemClock{},
		Registry:  NewRegistry(),
	}

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "AI-powered food delivery startup",
	}, "user-1")
	require.NoError(t, err)

	select {
	case <-repo.processing:
	case <-time.After(5 * time.Second):
		t.Fatal("run loop never reached the processing write")
	}

	// Cancel lands while the processing write is still in flight on the
	// run context. The interrupted write surfaces as context.Canceled in
	// the loop, which must not be recorded as a failure.
	ok, err := svc.Cancel(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(200 * time.Millisecond)
	a := repo.get(created.ID)
	assert.Equal(t, domain.StatusCancelled, a.Status, "cancelled analysis must stay cancelled")
	assert.Empty(t, a.Error)
}

func TestCancelUnknownAnalysis(t *testing.T) {
	svc := newTestService(newMemRepo(), &fakeProvider{name: "deepseek"})

	ok, err := svc.Cancel(context.Background(), "missing", "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCancelWrongOwner(t *testing.T) {
	repo := newMemRepo()
	gate := make(chan struct{})
	svc := newTestService(repo, &fakeProvider{name: "deepseek", gate: gate})

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "AI-powered food delivery startup",
	}, "user-1")
	require.NoError(t, err)

	ok, err := svc.Cancel(context.Background(), created.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, ok, "other users must not see the analysis")

	close(gate)
	waitCompleted(t, repo)
	assert.Equal(t, domain.StatusCompleted, repo.get(created.ID).Status)
}

func TestCancelAfterCompletion(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeProvider{name: "deepseek"})

	created, err := svc.Create(context.Background(), CreateCommand{
		BusinessInput: "AI-powered food delivery startup",
	}, "user-1")
	require.NoError(t, err)
	waitCompleted(t, repo)

	ok, err := svc.Cancel(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.StatusCompleted, repo.get(created.ID).Status)
}

func TestHistoryClampsPagination(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeProvider{name: "deepseek"})

	_, err := svc.History(context.Background(), "user-1", -3, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), repo.lastSkip)
	assert.Equal(t, int64(10), repo.lastLimit)

	_, err = svc.History(context.Background(), "user-1", 5, 1000, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.lastSkip)
	assert.Equal(t, int64(100), repo.lastLimit)
}

func TestRecoverStale(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Insert(context.Background(), &domain.BusinessAnalysis{
		ID:     "stuck",
		UserID: "user-1",
		Status: domain.StatusProcessing,
	}))
	require.NoError(t, repo.Insert(context.Background(), &domain.BusinessAnalysis{
		ID:     "done",
		UserID: "user-1",
		Status: domain.StatusCompleted,
	}))

	svc := newTestService(repo, &fakeProvider{name: "deepseek"})
	n, err := svc.RecoverStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stuck := repo.get("stuck")
	assert.Equal(t, domain.StatusFailed, stuck.Status)
	assert.Equal(t, staleRestartError, stuck.Error)
	assert.Equal(t, domain.StatusCompleted, repo.get("done").Status)
}

func TestDeleteManyEmptyList(t *testing.T) {
	svc := newTestService(newMemRepo(), &fakeProvider{name: "deepseek"})

	n, err := svc.DeleteMany(context.Background(), nil, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
