// Package services orchestrates the analyzers, the version store and the
// document store into the use cases exposed by the CLI.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/contextanalysis"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/docstore"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/validate"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/versions"
)

// ContextService analyzes and versions an owner's professional context.
type ContextService struct {
	versions *versions.Store
	docs     *docstore.Service
	analyzer *contextanalysis.Analyzer
	log      zerolog.Logger
}

func NewContextService(v *versions.Store, docs *docstore.Service, analyzer *contextanalysis.Analyzer, log zerolog.Logger) *ContextService {
	return &ContextService{versions: v, docs: docs, analyzer: analyzer, log: log}
}

// Analyze runs the analyzer without persisting anything.
func (s *ContextService) Analyze(content string) (model.ContextAnalysis, error) {
	if err := validate.Content("content", content, validate.MinAnalysisLength); err != nil {
		return model.ContextAnalysis{}, err
	}
	return s.analyzer.Analyze(content)
}

// Save analyzes content and appends it as the owner's next context version.
// The document copy is written first so a provider failure leaves no version
// behind; if the version append then fails the document is removed again.
func (s *ContextService) Save(ctx context.Context, ownerID, content string) (*model.ContextSnapshot, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := validate.Content("content", content, validate.MinPersistedLength); err != nil {
		return nil, err
	}
	analysis, err := s.analyzer.Analyze(content)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return nil, errors.Wrap(err, "encode context analysis")
	}

	doc, err := s.docs.Store(ctx, model.NewDocument{
		OwnerID:      ownerID,
		Content:      content,
		DocumentType: model.DocumentTypeContext,
		Metadata: map[string]interface{}{
			"category":   string(model.CategoryContext),
			"topics":     analysis.Topics,
			"confidence": analysis.Confidence,
		},
	})
	if err != nil {
		return nil, err
	}

	rec, err := s.versions.UpdateOrCreate(ctx, ownerID, model.CategoryContext, content, payload)
	if err != nil {
		if _, derr := s.docs.Delete(ctx, doc.ID); derr != nil {
			s.log.Error().Stack().Err(derr).Str("document_id", doc.ID).Msg("orphaned context document")
		}
		return nil, err
	}
	s.log.Info().Str("owner_id", ownerID).Int("version", rec.Version).Str("document_id", doc.ID).Msg("context saved")
	return snapshotFromRecord(rec, analysis), nil
}

// Latest returns the snapshot with the highest version.
func (s *ContextService) Latest(ctx context.Context, ownerID string) (*model.ContextSnapshot, error) {
	rec, err := s.versions.FindLatestByType(ctx, ownerID, model.CategoryContext)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(rec)
}

// History lists every snapshot in ascending version order.
func (s *ContextService) History(ctx context.Context, ownerID string) ([]*model.ContextSnapshot, error) {
	recs, err := s.versions.History(ctx, ownerID, model.CategoryContext)
	if err != nil {
		return nil, err
	}
	out := make([]*model.ContextSnapshot, 0, len(recs))
	for _, rec := range recs {
		snap, err := decodeSnapshot(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// Insights derives strengths and suggestions from the latest snapshot.
func (s *ContextService) Insights(ctx context.Context, ownerID string) (model.ContextInsights, error) {
	snap, err := s.Latest(ctx, ownerID)
	if err != nil {
		return model.ContextInsights{}, err
	}
	return s.analyzer.Insights(snap.Analysis), nil
}

func decodeSnapshot(rec *model.VersionRecord) (*model.ContextSnapshot, error) {
	var analysis model.ContextAnalysis
	if err := json.Unmarshal(rec.Payload, &analysis); err != nil {
		return nil, errors.Wrapf(err, "decode context version %d", rec.Version)
	}
	return snapshotFromRecord(rec, analysis), nil
}

func snapshotFromRecord(rec *model.VersionRecord, analysis model.ContextAnalysis) *model.ContextSnapshot {
	return &model.ContextSnapshot{
		ID:        rec.ID,
		OwnerID:   rec.OwnerID,
		Version:   rec.Version,
		Content:   rec.Content,
		Analysis:  analysis,
		CreatedAt: rec.CreatedAt.In(time.UTC),
	}
}
