package draft

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PurgeExpired hard-deletes every draft whose review window has passed and
// returns the count. Triggered externally (CLI or scheduler); idempotent and
// safely restartable.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := s.actions.PurgeExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("draft.PurgeExpired: %w", err)
	}

	s.metrics.RecordDraftsPurged(count)
	if count > 0 {
		s.log.InfoContext(ctx, "expired drafts purged", slog.Int64("count", count))
	}
	return count, nil
}

// CountExpired reports how many drafts a purge would delete, without
// deleting them. Backs the purge command's dry-run mode.
func (s *Service) CountExpired(ctx context.Context) (int64, error) {
	count, err := s.actions.CountExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("draft.CountExpired: %w", err)
	}
	return count, nil
}
