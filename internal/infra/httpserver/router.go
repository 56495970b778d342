package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/Najnomics/business-analysis-ai-V2/internal/application/analysis"
	appauth "github.com/Najnomics/business-analysis-ai-V2/internal/application/auth"
	appexport "github.com/Najnomics/business-analysis-ai-V2/internal/application/export"
	domain "github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
	"github.com/Najnomics/business-analysis-ai-V2/internal/middleware"
)

type Router struct {
	authSvc     *appauth.Service
	analysisSvc *appanalysis.Service
	exportSvc   *appexport.Service
}

func NewRouter(authSvc *appauth.Service, analysisSvc *appanalysis.Service, exportSvc *appexport.Service) http.Handler {
	r := &Router{authSvc: authSvc, analysisSvc: analysisSvc, exportSvc: exportSvc}
	mux := chi.NewRouter()

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/", r.wrap(r.handleRoot))
		rt.Get("/stats", r.wrap(r.handleStats))

		rt.Post("/auth/register", r.wrap(r.handleRegister))
		rt.Post("/auth/login", r.wrap(r.handleLogin))
		rt.Post("/auth/forgot-password", r.wrap(r.handleForgotPassword))
		rt.Post("/auth/reset-password", r.wrap(r.handleResetPassword))

		rt.Group(func(pr chi.Router) {
			pr.Use(middleware.JWTAuth(authSvc))

			pr.Post("/analysis/business", r.wrap(r.handleCreateAnalysis))
			pr.Get("/analysis/history", r.wrap(r.handleHistory))
			pr.Delete("/analysis/bulk", r.wrap(r.handleBulkDelete))
			pr.Post("/analysis/{id}/cancel", r.wrap(r.handleCancel))
			pr.Get("/analysis/{id}", r.wrap(r.handleGetAnalysis))
			pr.Delete("/analysis/{id}", r.wrap(r.handleDeleteAnalysis))
			pr.Get("/analysis/{id}/export/{format}", r.wrap(r.handleExport))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError carries an explicit status through the wrap layer.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func errStatus(status int, format string, args ...any) error {
	return &httpError{status: status, msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var he *httpError
			if errors.As(err, &he) {
				http.Error(w, he.msg, he.status)
				return
			}
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.Error(w, "Analysis not found", http.StatusNotFound)
			case errors.Is(err, domain.ErrInvalidInput),
				errors.Is(err, domain.ErrUnknownProvider),
				errors.Is(err, users.ErrEmailTaken),
				errors.Is(err, users.ErrInvalidResetToken):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, users.ErrInvalidCredentials):
				http.Error(w, err.Error(), http.StatusUnauthorized)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// GET /api/
func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, map[string]any{
		"message":    "Somna AI - Business Analysis Platform",
		"version":    "2.0.0",
		"powered_by": "Elite Global AI",
	})
}

// GET /api/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, map[string]any{
		"users":             "12,847+",
		"avgGenerationTime": "42 seconds",
		"accountsCreated":   "12,847",
		"venturesAnalyzed":  "23,156",
	})
}

// POST /api/auth/register
func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errStatus(http.StatusBadRequest, "invalid request body")
	}
	if err := middleware.ValidateEmail(body.Email); err != nil {
		return errStatus(http.StatusBadRequest, "%s", err)
	}
	if err := middleware.ValidatePassword(body.Password); err != nil {
		return errStatus(http.StatusBadRequest, "%s", err)
	}

	res, err := r.authSvc.Register(req.Context(), middleware.SanitizeString(body.Name), body.Email, body.Password)
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// POST /api/auth/login
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errStatus(http.StatusBadRequest, "invalid request body")
	}

	res, err := r.authSvc.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// POST /api/auth/forgot-password
func (r *Router) handleForgotPassword(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errStatus(http.StatusBadRequest, "invalid request body")
	}

	if err := r.authSvc.ForgotPassword(req.Context(), body.Email); err != nil {
		return err
	}
	// Balasan sama untuk email terdaftar maupun tidak
	return writeJSON(w, map[string]string{
		"message": "If the email exists, you will receive a password reset link",
	})
}

// POST /api/auth/reset-password
func (r *Router) handleResetPassword(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errStatus(http.StatusBadRequest, "invalid request body")
	}
	if err := middleware.ValidatePassword(body.NewPassword); err != nil {
		return errStatus(http.StatusBadRequest, "%s", err)
	}

	if err := r.authSvc.ResetPassword(req.Context(), body.Token, body.NewPassword); err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"message": "Password reset successfully"})
}

// POST /api/analysis/business
func (r *Router) handleCreateAnalysis(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())

	var body struct {
		BusinessInput string   `json:"business_input"`
		AIModels      []string `json:"ai_models"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return errStatus(http.StatusBadRequest, "invalid request body")
	}
	if err := middleware.ValidateProviders(body.AIModels); err != nil {
		return errStatus(http.StatusBadRequest, "%s", err)
	}

	middleware.IncrementAnalyses()
	a, err := r.analysisSvc.Create(req.Context(), appanalysis.CreateCommand{
		BusinessInput: body.BusinessInput,
		Providers:     body.AIModels,
	}, string(user.ID))
	if err != nil {
		return err
	}
	return writeJSON(w, a)
}

// POST /api/analysis/{id}/cancel
func (r *Router) handleCancel(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		// malformed ids cannot name a record, same answer as a miss
		return domain.ErrNotFound
	}

	ok, err := r.analysisSvc.Cancel(req.Context(), domain.AnalysisID(id), string(user.ID))
	if err != nil {
		return err
	}
	if !ok {
		return errStatus(http.StatusNotFound, "Analysis not found or not cancellable")
	}
	return writeJSON(w, map[string]string{"message": "Analysis cancelled successfully"})
}

// GET /api/analysis/history?skip=&limit=&search=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())

	skip, _ := strconv.ParseInt(req.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(req.URL.Query().Get("limit"), 10, 64)
	search := req.URL.Query().Get("search")

	list, err := r.analysisSvc.History(req.Context(), string(user.ID), middleware.ValidateSkip(skip), middleware.ValidateLimit(limit), search)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// DELETE /api/analysis/bulk
// Body: ["<id>", ...]
func (r *Router) handleBulkDelete(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())

	var ids []domain.AnalysisID
	if err := json.NewDecoder(req.Body).Decode(&ids); err != nil {
		return errStatus(http.StatusBadRequest, "invalid request body")
	}

	deleted, err := r.analysisSvc.DeleteMany(req.Context(), ids, string(user.ID))
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{
		"message":       fmt.Sprintf("Deleted %d analyses successfully", deleted),
		"deleted_count": deleted,
	})
}

// GET /api/analysis/{id}
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return domain.ErrNotFound
	}

	a, err := r.analysisSvc.Get(req.Context(), domain.AnalysisID(id), string(user.ID))
	if err != nil {
		return err
	}
	return writeJSON(w, a)
}

// DELETE /api/analysis/{id}
func (r *Router) handleDeleteAnalysis(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return domain.ErrNotFound
	}

	deleted, err := r.analysisSvc.Delete(req.Context(), domain.AnalysisID(id), string(user.ID))
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errStatus(http.StatusNotFound, "Analysis not found")
	}
	return writeJSON(w, map[string]string{"message": "Analysis deleted successfully"})
}

// GET /api/analysis/{id}/export/{format}?style=designed|black_and_white
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	user := middleware.GetUserFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return domain.ErrNotFound
	}
	format := appexport.Format(chi.URLParam(req, "format"))
	style := appexport.Style(req.URL.Query().Get("style"))

	doc, err := r.exportSvc.Export(req.Context(), domain.AnalysisID(id), string(user.ID), format, style)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errStatus(http.StatusNotFound, "Analysis not found")
		}
		if errors.Is(err, appexport.ErrUnsupported) {
			return errStatus(http.StatusBadRequest, "%s", err)
		}
		return err
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	_, err = w.Write(doc.Data)
	return err
}
