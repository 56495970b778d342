package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Najnomics/business-analysis-ai-V2/internal/application"
	appanalysis "github.com/Najnomics/business-analysis-ai-V2/internal/application/analysis"
	appauth "github.com/Najnomics/business-analysis-ai-V2/internal/application/auth"
	appexport "github.com/Najnomics/business-analysis-ai-V2/internal/application/export"
	domai "github.com/Najnomics/business-analysis-ai-V2/internal/domain/ai"
	domain "github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/ai/mock"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/ai/prompt"
	exportrender "github.com/Najnomics/business-analysis-ai-V2/internal/infra/export"
)

// In-memory repos so the full HTTP surface can be exercised without a
// database. The analysis repo signals completions for deterministic
// waiting on the background run.

type memAnalyses struct {
	mu        sync.Mutex
	records   map[domain.AnalysisID]*domain.BusinessAnalysis
	completed chan domain.AnalysisID
}

func newMemAnalyses() *memAnalyses {
	return &memAnalyses{
		records:   make(map[domain.AnalysisID]*domain.BusinessAnalysis),
		completed: make(chan domain.AnalysisID, 8),
	}
}

func (r *memAnalyses) Insert(ctx context.Context, a *domain.BusinessAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *memAnalyses) Get(ctx context.Context, userID string, id domain.AnalysisID) (*domain.BusinessAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.records[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAnalyses) SetStatus(ctx context.Context, id domain.AnalysisID, status domain.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.records[id]; ok {
		a.Status = status
		a.UpdatedAt = at
	}
	return nil
}

func (r *memAnalyses) SetFailed(ctx context.Context, id domain.AnalysisID, errText string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.records[id]; ok {
		a.Status = domain.StatusFailed
		a.Error = errText
		a.UpdatedAt = at
	}
	return nil
}

func (r *memAnalyses) Complete(ctx context.Context, id domain.AnalysisID, results map[domain.Framework]domain.FrameworkResults, consensus domain.Consensus, at time.Time) error {
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

func (r *memAnalyses) History(ctx context.Context, userID string, skip, limit int64, search string) ([]*domain.BusinessAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memAnalyses) Delete(ctx context.Context, userID string, id domain.AnalysisID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.records[id]; ok && a.UserID == userID {
		delete(r.records, id)
		return 1, nil
	}
	return 0, nil
}

func (r *memAnalyses) DeleteMany(ctx context.Context, userID string, ids []domain.AnalysisID) (int64, error) {
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

func (r *memAnalyses) FailStaleProcessing(ctx context.Context, errText string, at time.Time) (int64, error) {
	return 0, nil
}

type memUsers struct {
	mu   sync.Mutex
	byID map[users.UserID]*users.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[users.UserID]*users.User)}
}

func (r *memUsers) Insert(ctx context.Context, u *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, users.ErrNotFound
}

func (r *memUsers) FindByID(ctx context.Context, id users.UserID) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, users.ErrNotFound
}

func (r *memUsers) UpdatePassword(ctx context.Context, id users.UserID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

type memResets struct {
	mu     sync.Mutex
	tokens map[string]*users.PasswordReset
}

func newMemResets() *memResets {
	return &memResets{tokens: make(map[string]*users.PasswordReset)}
}

func (r *memResets) Insert(ctx context.Context, reset *users.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reset
	r.tokens[reset.Token] = &cp
	return nil
}

func (r *memResets) FindValid(ctx context.Context, token string, now time.Time) (*users.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reset, ok := r.tokens[token]
	if !ok || reset.Used || !reset.ExpiresAt.After(now) {
		return nil, users.ErrNotFound
	}
	cp := *reset
	return &cp, nil
}

func (r *memResets) MarkUsed(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reset, ok := r.tokens[token]; ok {
		reset.Used = true
	}
	return nil
}

type testEnv struct {
	server   *httptest.Server
	analyses *memAnalyses
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	analyses := newMemAnalyses()
	userRepo := newMemUsers()

	authSvc := &appauth.Service{
		Users:     userRepo,
		Resets:    newMemResets(),
		Clock:     application.SystemClock{},
		JWTSecret: []byte("test-secret"),
	}
	analysisSvc := &appanalysis.Service{
		Repo: analyses,
		Providers: []domai.Client{
			mock.ForVendor("deepseek"),
			mock.ForVendor("gemini"),
		},
		Prompts:  prompt.NewBuilder(),
		Clock:    application.SystemClock{},
		Registry: appanalysis.NewRegistry(),
	}
	exportSvc := &appexport.Service{
		Repo: analyses,
		Renderers: map[appexport.Format]appexport.Renderer{
			appexport.FormatPDF:  exportrender.PDFRenderer{},
			appexport.FormatDOCX: exportrender.DOCXRenderer{},
		},
	}

	srv := httptest.NewServer(NewRouter(authSvc, analysisSvc, exportSvc))
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, analyses: analyses}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, payload)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) registerUser(t *testing.T, name, email string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, resp, &res)
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func (e *testEnv) waitCompleted(t *testing.T) domain.AnalysisID {
	t.Helper()
	select {
	case id := <-e.analyses.completed:
		return id
	case <-time.After(10 * time.Second):
		t.Fatal("analysis did not complete in time")
		return ""
	}
}

func TestPublicEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var root map[string]any
	decode(t, resp, &root)
	assert.Equal(t, "2.0.0", root["version"])

	resp = env.do(t, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats map[string]any
	decode(t, resp, &stats)
	assert.Contains(t, stats, "venturesAnalyzed")
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/analysis/history", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/analysis/history", "garbage-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Ada", "ada@example.com")

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Again", "email": "ada@example.com", "password": "hunter22",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalysisLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "Ada", "ada@example.com")

	resp := env.do(t, http.MethodPost, "/api/analysis/business", token, map[string]any{
		"business_input": "AI-powered food delivery startup",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "pending", created.Status)

	env.waitCompleted(t)

	resp = env.do(t, http.MethodGet, "/api/analysis/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched struct {
		Status  string                    `json:"status"`
		Results map[string]map[string]any `json:"comprehensive_results"`
	}
	decode(t, resp, &fetched)
	assert.Equal(t, "completed", fetched.Status)
	assert.Len(t, fetched.Results, 25)

	// history sees it, search included
	resp = env.do(t, http.MethodGet, "/api/analysis/history?search=delivery", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []map[string]any
	decode(t, resp, &history)
	assert.Len(t, history, 1)

	// completed analyses cannot be cancelled
	resp = env.do(t, http.MethodPost, "/api/analysis/"+created.ID+"/cancel", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// export as PDF
	resp = env.do(t, http.MethodGet, "/api/analysis/"+created.ID+"/export/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "business_analysis_"+created.ID+".pdf")
	resp.Body.Close()

	// unsupported export format
	resp = env.do(t, http.MethodGet, "/api/analysis/"+created.ID+"/export/csv", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// delete, then the record is gone
	resp = env.do(t, http.MethodDelete, "/api/analysis/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodDelete, "/api/analysis/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalysisOwnershipHiddenAcrossUsers(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "Ada", "ada@example.com")
	other := env.registerUser(t, "Eve", "eve@example.com")

	resp := env.do(t, http.MethodPost, "/api/analysis/business", owner, map[string]any{
		"business_input": "specialty coffee subscription",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)
	env.waitCompleted(t)

	// the other account sees 404, not 403
	resp = env.do(t, http.MethodGet, "/api/analysis/"+created.ID, other, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/analysis/history", other, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []map[string]any
	decode(t, resp, &history)
	assert.Empty(t, history)
}

func TestCreateAnalysisValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "Ada", "ada@example.com")

	resp := env.do(t, http.MethodPost, "/api/analysis/business", token, map[string]any{
		"business_input": "ab",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/analysis/business", token, map[string]any{
		"business_input": "valid business idea",
		"ai_models":      []string{"gpt4"},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// model names are accepted in any case
	resp = env.do(t, http.MethodPost, "/api/analysis/business", token, map[string]any{
		"business_input": "valid business idea",
		"ai_models":      []string{"DeepSeek"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	env.waitCompleted(t)
}

func TestMalformedAnalysisIDReads404(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "Ada", "ada@example.com")

	for _, path := range []string{
		"/api/analysis/not-a-uuid",
		"/api/analysis/not-a-uuid/export/pdf",
	} {
		resp := env.do(t, http.MethodGet, path, token, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp := env.do(t, http.MethodPost, "/api/analysis/not-a-uuid/cancel", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/analysis/not-a-uuid", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBulkDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "Ada", "ada@example.com")

	var ids []string
	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodPost, "/api/analysis/business", token, map[string]any{
			"business_input": "bulk target business",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var created struct {
			ID string `json:"id"`
		}
		decode(t, resp, &created)
		ids = append(ids, created.ID)
		env.waitCompleted(t)
	}

	resp := env.do(t, http.MethodDelete, "/api/analysis/bulk", token, ids)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res struct {
		DeletedCount int `json:"deleted_count"`
	}
	decode(t, resp, &res)
	assert.Equal(t, 2, res.DeletedCount)
}
