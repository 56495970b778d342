package ai

import "errors"

// ErrNotConfigured indicates an adapter running without credentials.
// Adapters treat it as a signal to fall back to the mock path; it never
// reaches the orchestrator.
var ErrNotConfigured = errors.New("ai provider not configured")
