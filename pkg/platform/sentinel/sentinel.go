package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and gateway layers return
// these (optionally wrapped) so the engine can translate them into user-facing
// replies.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: entity already exists where uniqueness is expected
// - ErrUnavailable: backing service or resource temporarily unreachable
//
// For input validation failures use internal/registration/validate directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
