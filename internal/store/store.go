package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned by Versions.Append when another writer
	// claimed the same (owner, category, version) first.
	ErrVersionConflict = errors.New("version already allocated")
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite, memory).
type Store interface {
	Documents() Documents
	Versions() Versions
	Samples() Samples
	Close() error
}

// Documents persists content records together with their embeddings.
type Documents interface {
	// Create persists d as given; ID, embedding and timestamps are set by the caller.
	Create(ctx context.Context, d *model.Document) (*model.Document, error)
	Get(ctx context.Context, id string) (*model.Document, error)
	// Update replaces content, metadata, embedding and UpdatedAt of an existing record.
	Update(ctx context.Context, d *model.Document) (*model.Document, error)
	// Delete reports whether a record existed.
	Delete(ctx context.Context, id string) (bool, error)
	// ListByOwner returns newest first. Empty docType means every type; limit <= 0 means no limit.
	ListByOwner(ctx context.Context, ownerID string, docType model.DocumentType, limit int) ([]*model.Document, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int, error)
	// Nearest ranks matching documents by cosine similarity to q.Vector, see similarity.Rank.
	Nearest(ctx context.Context, q model.VectorQuery) ([]model.SearchResult, error)
}

// Versions is the append-only history per (owner, category).
type Versions interface {
	// Append stores rec at the next version for its owner and category in a
	// single statement and returns it with Version set. A lost race surfaces
	// as ErrVersionConflict; nothing is written in that case.
	Append(ctx context.Context, rec *model.VersionRecord) (*model.VersionRecord, error)
	Latest(ctx context.Context, ownerID string, category model.Category) (*model.VersionRecord, error)
	// List returns every version in ascending order.
	List(ctx context.Context, ownerID string, category model.Category) ([]*model.VersionRecord, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int, error)
}

// Samples holds the writing samples a style profile is computed from.
type Samples interface {
	Add(ctx context.Context, s *model.StyleSample) (*model.StyleSample, error)
	// List returns samples oldest first.
	List(ctx context.Context, ownerID string) ([]*model.StyleSample, error)
	// Delete reports whether a sample existed.
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int, error)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsVersionConflict reports whether err is, or wraps, ErrVersionConflict.
func IsVersionConflict(err error) bool { return errors.Is(err, ErrVersionConflict) }
