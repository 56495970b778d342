package analysis

import "errors"

// ErrNotFound is returned for a missing record and for an id/owner
// mismatch alike, so callers cannot probe for records they do not own.
var ErrNotFound = errors.New("analysis not found")

// ErrInvalidInput indicates the business input failed validation before
// any record was created.
var ErrInvalidInput = errors.New("business input must be at least 3 characters long")

// ErrUnknownFramework indicates a framework id outside the fixed set.
// Defensive only; the enumeration is closed.
var ErrUnknownFramework = errors.New("unknown analysis framework")

// ErrUnknownProvider indicates a requested AI model name that no
// configured adapter answers to.
var ErrUnknownProvider = errors.New("unknown ai model")
