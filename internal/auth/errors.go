package auth

import "errors"

// Token validation failures.  Every kind collapses to "unauthenticated" for
// the caller; the distinction exists so the gate can log why a credential
// was rejected.
var (
    ErrInvalidSignature = errors.New("token signature invalid")
    ErrMalformed        = errors.New("token malformed")
    ErrExpired          = errors.New("token expired")
    ErrUnsupported      = errors.New("token unsupported")
)

// Authorization outcomes.  Handlers translate these into HTTP 401 and 403.
var (
    // ErrUnauthenticated is returned when a protected operation is attempted
    // without a resolved identity.
    ErrUnauthenticated = errors.New("unauthenticated")

    // ErrForbidden is returned when the identity is valid but lacks the
    // required role or does not own the target resource.
    ErrForbidden = errors.New("forbidden")
)
