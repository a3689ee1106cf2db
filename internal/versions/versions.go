// Package versions allocates monotonically increasing versions per
// (owner, category) on top of store.Versions.
package versions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/validate"
)

// DefaultAttempts bounds Append retries after a version conflict.
const DefaultAttempts = 5

// Store appends immutable records. Every successful write advances the
// (owner, category) sequence by exactly one.
type Store struct {
	versions store.Versions
	log      zerolog.Logger
	attempts int
	backoff  time.Duration
}

func New(v store.Versions, log zerolog.Logger, attempts int) *Store {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Store{versions: v, log: log, attempts: attempts, backoff: 5 * time.Millisecond}
}

// UpdateOrCreate writes content and payload as the next version, starting at 1.
// Version allocation is a single conditional insert in the driver; a lost race
// is retried up to the configured bound, then surfaces as model.ConcurrencyError.
func (s *Store) UpdateOrCreate(ctx context.Context, ownerID string, category model.Category, content string, payload []byte) (*model.VersionRecord, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return nil, err
	}
	if category == "" {
		return nil, model.NewValidationError("category", "is required")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	for attempt := 1; attempt <= s.attempts; attempt++ {
		rec, err := s.versions.Append(ctx, &model.VersionRecord{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			Category:  category,
			Content:   content,
			Payload:   payload,
			CreatedAt: now,
		})
		if err == nil {
			s.log.Debug().
				Str("owner_id", ownerID).
				Str("category", string(category)).
				Int("version", rec.Version).
				Int("attempt", attempt).
				Msg("version appended")
			return rec, nil
		}
		if !store.IsVersionConflict(err) {
			return nil, err
		}
		s.log.Warn().
			Str("owner_id", ownerID).
			Str("category", string(category)).
			Int("attempt", attempt).
			Msg("version conflict, retrying")
		if attempt < s.attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * s.backoff):
			}
		}
	}
	return nil, model.ConcurrencyError{OwnerID: ownerID, Category: category, Attempts: s.attempts}
}

// FindLatestByType returns the record holding the highest version.
func (s *Store) FindLatestByType(ctx context.Context, ownerID string, category model.Category) (*model.VersionRecord, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return nil, err
	}
	rec, err := s.versions.Latest(ctx, ownerID, category)
	if store.IsNotFound(err) {
		return nil, model.NewNotFoundError(string(category), "no versions for owner "+ownerID)
	}
	return rec, err
}

// History lists every version in ascending order.
func (s *Store) History(ctx context.Context, ownerID string, category model.Category) ([]*model.VersionRecord, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return nil, err
	}
	return s.versions.List(ctx, ownerID, category)
}

// DeleteByOwner removes the owner's history in every category.
func (s *Store) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return 0, err
	}
	return s.versions.DeleteByOwner(ctx, ownerID)
}
