// Package docstore is the document store: content records tagged by owner
// and type, each carrying an embedding, with cosine-similarity search.
package docstore

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/embeddings"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/validate"
)

// DefaultLimit is used when a search does not specify one.
const DefaultLimit = 10

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	// EmbedTimeout bounds each provider call. Default 30s.
	EmbedTimeout time.Duration
	// Dimension pins the embedding length up front. When 0 it is pinned by
	// the first successful embedding.
	Dimension int
	// DefaultLimit applies to searches with Limit 0. Default 10.
	DefaultLimit int
}

// Service persists documents and their embeddings. The embedding provider is
// called exactly once per store, per content-changing update and per search.
type Service struct {
	docs     store.Documents
	embedder embeddings.Provider
	log      zerolog.Logger

	timeout      time.Duration
	defaultLimit int
	dim          atomic.Int64
	now          func() time.Time
}

func New(docs store.Documents, embedder embeddings.Provider, log zerolog.Logger, opts Options) *Service {
	s := &Service{
		docs:         docs,
		embedder:     embedder,
		log:          log,
		timeout:      opts.EmbedTimeout,
		defaultLimit: opts.DefaultLimit,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	if s.timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	if s.defaultLimit <= 0 {
		s.defaultLimit = DefaultLimit
	}
	if opts.Dimension > 0 {
		s.dim.Store(int64(opts.Dimension))
	}
	return s
}

// Dimension returns the pinned embedding length, or 0 if none is pinned yet.
func (s *Service) Dimension() int { return int(s.dim.Load()) }

// Store validates in, embeds its content once and persists the record.
func (s *Service) Store(ctx context.Context, in model.NewDocument) (*model.Document, error) {
	if err := validateNew(in); err != nil {
		return nil, err
	}
	vec, err := s.embed(ctx, "store", in.Content)
	if err != nil {
		return nil, err
	}
	now := s.now()
	doc, err := s.docs.Create(ctx, &model.Document{
		ID:           uuid.NewString(),
		OwnerID:      in.OwnerID,
		Content:      in.Content,
		DocumentType: in.DocumentType,
		Metadata:     in.Metadata,
		Embedding:    vec,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.log.Error().Stack().Err(err).Str("owner_id", in.OwnerID).Msg("store document failed")
		return nil, err
	}
	s.log.Debug().Str("id", doc.ID).Str("owner_id", doc.OwnerID).Str("type", string(doc.DocumentType)).Msg("document stored")
	return doc, nil
}

// Update applies patch to the document id. The embedding is regenerated only
// when the content actually changes. An unknown id yields a NotFoundError.
func (s *Service) Update(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error) {
	if err := validate.NonEmpty("id", id); err != nil {
		return nil, err
	}
	if patch.Content != nil {
		if err := validate.Content("content", *patch.Content, 1); err != nil {
			return nil, err
		}
	}
	if err := validate.Metadata(patch.Metadata); err != nil {
		return nil, err
	}

	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *cur
	if patch.Content != nil && *patch.Content != cur.Content {
		vec, err := s.embed(ctx, "update", *patch.Content)
		if err != nil {
			return nil, err
		}
		next.Content = *patch.Content
		next.Embedding = vec
	}
	if patch.Metadata != nil {
		next.Metadata = patch.Metadata
	}
	next.UpdatedAt = s.now()

	out, err := s.docs.Update(ctx, &next)
	if store.IsNotFound(err) {
		return nil, model.NewNotFoundError("document", id)
	}
	if err != nil {
		s.log.Error().Stack().Err(err).Str("id", id).Msg("update document failed")
		return nil, err
	}
	return out, nil
}

// Delete removes the document id and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if err := validate.NonEmpty("id", id); err != nil {
		return false, err
	}
	return s.docs.Delete(ctx, id)
}

// Get fetches a document by id.
func (s *Service) Get(ctx context.Context, id string) (*model.Document, error) {
	if err := validate.NonEmpty("id", id); err != nil {
		return nil, err
	}
	doc, err := s.docs.Get(ctx, id)
	if store.IsNotFound(err) {
		return nil, model.NewNotFoundError("document", id)
	}
	return doc, err
}

// ListByOwner returns an owner's documents newest first, optionally filtered by type.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, docType model.DocumentType, limit int) ([]*model.Document, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := validate.OptionalDocumentType(docType); err != nil {
		return nil, err
	}
	if err := validate.Limit(limit); err != nil {
		return nil, err
	}
	return s.docs.ListByOwner(ctx, ownerID, docType, limit)
}

// DeleteByOwner removes every document of an owner and returns how many were removed.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return 0, err
	}
	return s.docs.DeleteByOwner(ctx, ownerID)
}

// SimilaritySearch embeds q.Query once and ranks matching documents by cosine
// similarity, dropping results below q.Threshold.
func (s *Service) SimilaritySearch(ctx context.Context, q model.SearchQuery) ([]model.SearchResult, error) {
	if err := validate.NonEmpty("query", q.Query); err != nil {
		return nil, err
	}
	if err := validate.Text(q.Query); err != nil {
		return nil, err
	}
	if q.OwnerID != "" {
		if err := validate.OwnerID(q.OwnerID); err != nil {
			return nil, err
		}
	}
	if err := validate.OptionalDocumentType(q.DocumentType); err != nil {
		return nil, err
	}
	if err := validateRanking(q.Limit, q.Threshold); err != nil {
		return nil, err
	}

	vec, err := s.embed(ctx, "search", q.Query)
	if err != nil {
		return nil, err
	}
	return s.docs.Nearest(ctx, model.VectorQuery{
		Vector:       vec,
		OwnerID:      q.OwnerID,
		DocumentType: q.DocumentType,
		Limit:        s.limit(q.Limit),
		Threshold:    q.Threshold,
	})
}

// FindSimilarDocuments ranks the owner's other documents against the stored
// embedding of id. The provider is not called.
func (s *Service) FindSimilarDocuments(ctx context.Context, id string, limit int, threshold float64) ([]model.SearchResult, error) {
	if err := validateRanking(limit, threshold); err != nil {
		return nil, err
	}
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.docs.Nearest(ctx, model.VectorQuery{
		Vector:    src.Embedding,
		OwnerID:   src.OwnerID,
		ExcludeID: src.ID,
		Limit:     s.limit(limit),
		Threshold: threshold,
	})
}

// BatchStore stores docs one after another. The first failure aborts the rest
// and is returned as a *model.BatchError listing what was stored before it.
func (s *Service) BatchStore(ctx context.Context, docs []model.NewDocument) ([]*model.Document, error) {
	stored := make([]*model.Document, 0, len(docs))
	for i, in := range docs {
		doc, err := s.Store(ctx, in)
		if err != nil {
			s.log.Warn().Err(err).Int("index", i).Int("stored", len(stored)).Msg("batch store aborted")
			return stored, &model.BatchError{Stored: stored, FailedIndex: i, Err: err}
		}
		stored = append(stored, doc)
	}
	return stored, nil
}

func (s *Service) limit(n int) int {
	if n <= 0 {
		return s.defaultLimit
	}
	return n
}

// embed makes exactly one provider call under the configured timeout and
// checks the vector against the pinned dimension.
func (s *Service) embed(ctx context.Context, op, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.log.Error().Stack().Err(err).Str("op", op).Msg("embedding provider call failed")
		return nil, model.EmbeddingError{Op: op, Err: err}
	}
	if err := checkVector(vec); err != nil {
		return nil, model.EmbeddingError{Op: op, Err: err}
	}
	n := int64(len(vec))
	if s.dim.CompareAndSwap(0, n) {
		s.log.Info().Int64("dimension", n).Msg("embedding dimension pinned")
	} else if want := s.dim.Load(); want != n {
		return nil, model.EmbeddingError{Op: op, Err: fmt.Errorf("provider returned %d dimensions, store uses %d", n, want)}
	}
	return vec, nil
}

func checkVector(vec []float32) error {
	if len(vec) == 0 {
		return fmt.Errorf("provider returned an empty vector")
	}
	var norm float64
	for _, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("provider returned a non-finite component")
		}
		norm += f * f
	}
	if norm == 0 {
		return fmt.Errorf("provider returned a zero vector")
	}
	return nil
}

func validateNew(in model.NewDocument) error {
	if err := validate.OwnerID(in.OwnerID); err != nil {
		return err
	}
	if err := validate.Content("content", in.Content, 1); err != nil {
		return err
	}
	if err := validate.DocumentType(in.DocumentType); err != nil {
		return err
	}
	return validate.Metadata(in.Metadata)
}

func validateRanking(limit int, threshold float64) error {
	if err := validate.Limit(limit); err != nil {
		return err
	}
	return validate.Threshold(threshold)
}
