package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProviderFetch indicates a recoverable provider failure (network error,
// malformed response, timeout). The sync orchestrator treats it as a signal
// to fall back to the next configured provider for the affected pairs.
var ErrProviderFetch = errors.New("provider fetch failed")

// ErrUnsupportedBase indicates that a provider was asked to quote against a
// home currency it does not support. This is a caller error and is never
// retried.
var ErrUnsupportedBase = errors.New("unsupported home currency")

// ErrNoRateAvailable indicates that no rate exists for a pair, in either
// direction, at any historical date.
var ErrNoRateAvailable = errors.New("no exchange rate available")

// ErrNoPairSource indicates that auto-routing was requested for a currency
// that has no configured pair source.
var ErrNoPairSource = errors.New("no pair source configured")
