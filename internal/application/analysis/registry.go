package analysis

import (
	"context"
	"sync"

	domain "github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// Registry maps in-flight analysis ids to their cancel handles. The
// orchestrator inserts on start and removes on natural completion or
// failure; Cancel both fires the handle and removes the entry, so a
// second cancel for the same id reports false.
//
// Contents are process-local; records stuck in processing after a
// restart are swept by Service.RecoverStale.
type Registry struct {
	mu sync.Mutex
	m  map[domain.AnalysisID]context.CancelFunc
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[domain.AnalysisID]context.CancelFunc)}
}

func (r *Registry) Add(id domain.AnalysisID, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[id] = cancel
}

// Contains reports whether the analysis is still registered; the
// orchestrator loop checks this before every framework.
func (r *Registry) Contains(id domain.AnalysisID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.m[id]
	return ok
}

// Remove drops the entry without firing the handle. Used on natural
// completion and on failure.
func (r *Registry) Remove(id domain.AnalysisID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
}

// Cancel fires the handle and removes the entry. Reports whether the id
// was registered.
func (r *Registry) Cancel(id domain.AnalysisID) bool {
	r.mu.Lock()
	cancel, ok := r.m[id]
	if ok {
		delete(r.m, id)
	}
	r.mu.Unlock()

	if ok {
		cancel()
	}
	return ok
}

// Len reports the number of in-flight analyses.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}
