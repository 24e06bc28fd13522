// Package service implements the advisory booking lifecycle: the state
// machine over pending/approved/rejected, ownership-gated transitions and
// best-effort notification dispatch.
package service

import (
    "context"
    "log"
    "time"

    "github.com/lexisware/portfolio-backend/internal/auth"
    "github.com/lexisware/portfolio-backend/internal/model"
    "github.com/lexisware/portfolio-backend/internal/repository"
)

// notifyTimeout bounds a single notification dispatch.  Dispatch runs
// detached from the request, so this never delays a response.
const notifyTimeout = 10 * time.Second

// Notifier is the side-channel notification port.  Implementations must be
// safe for concurrent use; every call is best-effort and failures are only
// logged, never surfaced to the caller of the lifecycle operation.
type Notifier interface {
    Welcome(ctx context.Context, email, name string) error
    AdvisoryRequested(ctx context.Context, a model.Advisory) error
    AdvisoryReceived(ctx context.Context, a model.Advisory) error
    AdvisoryDecided(ctx context.Context, a model.Advisory) error
    AdvisoryReminder(ctx context.Context, a model.Advisory) error
}

// AdvisoryService governs booking status transitions.  Mutations check
// ownership against the acting identity before touching the repository;
// reads are unrestricted (the platform's listings are public by design).
type AdvisoryService struct {
    advisories *repository.AdvisoryRepo
    notifier   Notifier
}

func NewAdvisoryService(repo *repository.AdvisoryRepo, n Notifier) *AdvisoryService {
    return &AdvisoryService{advisories: repo, notifier: n}
}

// notifyAsync dispatches one notification on its own goroutine with a
// detached context.  The triggering request completes without waiting;
// failure is logged and swallowed.
func (s *AdvisoryService) notifyAsync(what string, a model.Advisory, send func(context.Context, model.Advisory) error) {
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
        defer cancel()
        if err := send(ctx, a); err != nil {
            log.Printf("advisory: %s notification failed (id=%d): %v", what, a.ID, err)
        }
    }()
}

// Create registers a new booking.  The status is forced to pending no matter
// what the caller supplied; success is defined purely by persistence.  The
// assigned programmer and the requester are then notified independently,
// each dispatch best-effort.
func (s *AdvisoryService) Create(ctx context.Context, a model.Advisory) (model.Advisory, error) {
    a.Status = model.StatusPending

    created, err := s.advisories.Create(ctx, a)
    if err != nil {
        return model.Advisory{}, err
    }

    s.notifyAsync("request", created, s.notifier.AdvisoryRequested)
    s.notifyAsync("confirmation", created, s.notifier.AdvisoryReceived)
    return created, nil
}

// UpdateStatus transitions a booking.  Only the assigned programmer or an
// administrator may transition; everyone else gets ErrForbidden.  A terminal
// booking may currently be transitioned again — the status is overwritten,
// so a repeated approve succeeds.  The requester is notified of the outcome
// best-effort.
func (s *AdvisoryService) UpdateStatus(ctx context.Context, id int64, status string, ident *auth.Identity) (model.Advisory, error) {
    a, err := s.advisories.GetByID(ctx, id)
    if err != nil {
        return model.Advisory{}, err
    }
    if err := auth.RequireOwnerOrAdmin(ident, a.ProgrammerID); err != nil {
        return model.Advisory{}, err
    }

    updated, err := s.advisories.UpdateStatus(ctx, id, status)
    if err != nil {
        return model.Advisory{}, err
    }

    s.notifyAsync("decision", updated, s.notifier.AdvisoryDecided)
    return updated, nil
}

// Approve marks the booking approved.
func (s *AdvisoryService) Approve(ctx context.Context, id int64, ident *auth.Identity) (model.Advisory, error) {
    return s.UpdateStatus(ctx, id, model.StatusApproved, ident)
}

// Reject marks the booking rejected.
func (s *AdvisoryService) Reject(ctx context.Context, id int64, ident *auth.Identity) (model.Advisory, error) {
    return s.UpdateStatus(ctx, id, model.StatusRejected, ident)
}

// Delete hard-deletes a booking under the same ownership rule as
// UpdateStatus.  No notification is sent.
func (s *AdvisoryService) Delete(ctx context.Context, id int64, ident *auth.Identity) error {
    a, err := s.advisories.GetByID(ctx, id)
    if err != nil {
        return err
    }
    if err := auth.RequireOwnerOrAdmin(ident, a.ProgrammerID); err != nil {
        return err
    }
    return s.advisories.Delete(ctx, id)
}

// Get returns one booking by id.
func (s *AdvisoryService) Get(ctx context.Context, id int64) (model.Advisory, error) {
    return s.advisories.GetByID(ctx, id)
}

// ListAll returns every booking, newest first.
func (s *AdvisoryService) ListAll(ctx context.Context, page, size int) ([]model.Advisory, int64, error) {
    return s.advisories.ListAll(ctx, page, size)
}

// ListByProgrammer returns the bookings assigned to one programmer.
func (s *AdvisoryService) ListByProgrammer(ctx context.Context, programmerID string, page, size int) ([]model.Advisory, int64, error) {
    return s.advisories.ListByProgrammer(ctx, programmerID, page, size)
}

// ListByRequester returns the bookings requested from one email.
func (s *AdvisoryService) ListByRequester(ctx context.Context, email string, page, size int) ([]model.Advisory, int64, error) {
    return s.advisories.ListByRequester(ctx, email, page, size)
}

// ListByStatus filters bookings by processing state.
func (s *AdvisoryService) ListByStatus(ctx context.Context, status string, page, size int) ([]model.Advisory, int64, error) {
    return s.advisories.ListByStatus(ctx, status, page, size)
}
