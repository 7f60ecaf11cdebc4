package botclient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// window returns the start of the fixed one-hour window containing now.
func window(now time.Time) time.Time {
	return now.UTC().Truncate(time.Hour)
}

// ConsumeWindow atomically takes one unit of the client's hourly issuance
// budget and reports whether the client is now over its threshold. The
// increment-and-compare runs as a single statement, so concurrent requests
// can never both pass a check that should have failed the second one.
func (s *Service) ConsumeWindow(ctx context.Context, clientID uuid.UUID, limit int, now time.Time) (bool, error) {
	count, err := s.clients.IncrementWindow(ctx, clientID, window(now))
	if err != nil {
		return false, fmt.Errorf("botclient.ConsumeWindow: %w", err)
	}
	return count > limit, nil
}

// ReleaseWindow returns one unit of issuance budget, undoing ConsumeWindow
// for a request that was denied after the rate check. Best effort: counters
// only drift in the caller-friendly direction if this fails.
func (s *Service) ReleaseWindow(ctx context.Context, clientID uuid.UUID, now time.Time) error {
	if err := s.clients.DecrementWindow(ctx, clientID, window(now)); err != nil {
		return fmt.Errorf("botclient.ReleaseWindow: %w", err)
	}
	return nil
}

// RecordIssuance advances the client's cumulative issuance counter. Called
// only after a token has actually been minted.
func (s *Service) RecordIssuance(ctx context.Context, clientID uuid.UUID) error {
	if err := s.clients.IncrementIssued(ctx, clientID); err != nil {
		return fmt.Errorf("botclient.RecordIssuance: %w", err)
	}
	return nil
}
