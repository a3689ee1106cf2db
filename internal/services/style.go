package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/docstore"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/styleanalysis"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/validate"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/versions"
)

// NewSample is the input for adding a writing sample.
type NewSample struct {
	OwnerID     string `json:"ownerId"`
	Content     string `json:"content"`
	Platform    string `json:"platform"`
	ContentType string `json:"contentType"`
}

// StyleService keeps an owner's writing samples and the profile derived from them.
type StyleService struct {
	samples  store.Samples
	versions *versions.Store
	docs     *docstore.Service
	analyzer *styleanalysis.Analyzer
	log      zerolog.Logger
	now      func() time.Time
	locks    ownerLocks
}

func NewStyleService(samples store.Samples, v *versions.Store, docs *docstore.Service, analyzer *styleanalysis.Analyzer, log zerolog.Logger) *StyleService {
	return &StyleService{
		samples:  samples,
		versions: v,
		docs:     docs,
		analyzer: analyzer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// recomputePasses bounds how often AddSample recomputes when samples written
// by another process show up between analysis and the version append.
const recomputePasses = 3

// AddSample stores the sample, recomputes the profile over every sample the
// owner has and appends it as the next writing_style version. Calls for one
// owner are serialized from the sample insert through the append. When no
// version could be appended the sample and its document are removed again.
func (s *StyleService) AddSample(ctx context.Context, in NewSample) (*model.WritingStyleProfile, error) {
	if err := validate.OwnerID(in.OwnerID); err != nil {
		return nil, err
	}
	if err := validate.Content("content", in.Content, validate.MinPersistedLength); err != nil {
		return nil, err
	}

	meta := map[string]interface{}{}
	if in.Platform != "" {
		meta["platform"] = in.Platform
	}
	if in.ContentType != "" {
		meta["contentType"] = in.ContentType
	}
	doc, err := s.docs.Store(ctx, model.NewDocument{
		OwnerID:      in.OwnerID,
		Content:      in.Content,
		DocumentType: model.DocumentTypeWritingSample,
		Metadata:     meta,
	})
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(in.OwnerID)
	defer unlock()

	if _, err := s.samples.Add(ctx, &model.StyleSample{
		ID:          doc.ID,
		OwnerID:     in.OwnerID,
		Content:     in.Content,
		Platform:    in.Platform,
		ContentType: in.ContentType,
		CreatedAt:   doc.CreatedAt,
	}); err != nil {
		s.log.Error().Stack().Err(err).Str("owner_id", in.OwnerID).Msg("add sample failed")
		s.discard(ctx, doc.ID, false)
		return nil, err
	}

	profile, err := s.recompute(ctx, in.OwnerID, in.Content)
	if err != nil {
		s.log.Error().Stack().Err(err).Str("owner_id", in.OwnerID).Msg("style recompute failed; removing sample")
		s.discard(ctx, doc.ID, true)
		return nil, err
	}
	return profile, nil
}

// discard removes a sample document, and the sample row when withSample is
// set, after a failed AddSample.
func (s *StyleService) discard(ctx context.Context, id string, withSample bool) {
	ctx = context.WithoutCancel(ctx)
	if withSample {
		if _, err := s.samples.Delete(ctx, id); err != nil {
			s.log.Error().Stack().Err(err).Str("sample_id", id).Msg("orphaned style sample")
		}
	}
	if _, err := s.docs.Delete(ctx, id); err != nil {
		s.log.Error().Stack().Err(err).Str("document_id", id).Msg("orphaned sample document")
	}
}

// recompute analyzes every stored sample and appends the result. If the
// sample set changed while it ran, the profile is recomputed and appended
// again; failures after the first append are logged and the last appended
// profile is returned.
func (s *StyleService) recompute(ctx context.Context, ownerID, content string) (*model.WritingStyleProfile, error) {
	var last *model.WritingStyleProfile
	for pass := 1; pass <= recomputePasses; pass++ {
		list, err := s.samples.List(ctx, ownerID)
		var profile *model.WritingStyleProfile
		if err == nil {
			profile, err = s.appendProfile(ctx, ownerID, content, list)
		}
		if err != nil {
			if last == nil {
				return nil, err
			}
			s.log.Warn().Err(err).Str("owner_id", ownerID).Int("pass", pass).Msg("style recompute pass failed")
			return last, nil
		}
		last = profile

		changed, err := s.samplesChanged(ctx, ownerID, list)
		if err != nil {
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("sample recheck failed")
			return last, nil
		}
		if !changed {
			return last, nil
		}
		s.log.Debug().Str("owner_id", ownerID).Int("pass", pass).Msg("samples changed during recompute")
	}
	return last, nil
}

func (s *StyleService) appendProfile(ctx context.Context, ownerID, content string, list []*model.StyleSample) (*model.WritingStyleProfile, error) {
	all := make([]model.StyleSample, 0, len(list))
	for _, smp := range list {
		all = append(all, *smp)
	}
	profile, err := s.analyzer.Analyze(all)
	if err != nil {
		return nil, err
	}
	profile.OwnerID = ownerID
	profile.LastAnalyzed = s.now()

	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, errors.Wrap(err, "encode style profile")
	}
	rec, err := s.versions.UpdateOrCreate(ctx, ownerID, model.CategoryWritingStyle, content, payload)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("owner_id", ownerID).
		Int("samples", profile.SampleCount).
		Int("version", rec.Version).
		Str("tone", profile.Tone).
		Msg("style profile recomputed")
	return &profile, nil
}

// samplesChanged reports whether the stored samples differ from seen.
func (s *StyleService) samplesChanged(ctx context.Context, ownerID string, seen []*model.StyleSample) (bool, error) {
	now, err := s.samples.List(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if len(now) != len(seen) {
		return true, nil
	}
	for i := range now {
		if now[i].ID != seen[i].ID {
			return true, nil
		}
	}
	return false, nil
}

// AnalyzeSamples builds a profile without persisting anything.
func (s *StyleService) AnalyzeSamples(samples []model.StyleSample) (model.WritingStyleProfile, error) {
	for i, smp := range samples {
		if err := validate.Content(fmt.Sprintf("samples[%d].content", i), smp.Content, validate.MinAnalysisLength); err != nil {
			return model.WritingStyleProfile{}, err
		}
	}
	p, err := s.analyzer.Analyze(samples)
	if err != nil {
		return model.WritingStyleProfile{}, err
	}
	p.LastAnalyzed = s.now()
	return p, nil
}

// Profile returns the owner's latest profile.
func (s *StyleService) Profile(ctx context.Context, ownerID string) (*model.WritingStyleProfile, error) {
	rec, err := s.versions.FindLatestByType(ctx, ownerID, model.CategoryWritingStyle)
	if err != nil {
		return nil, err
	}
	var p model.WritingStyleProfile
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		return nil, errors.Wrapf(err, "decode style version %d", rec.Version)
	}
	return &p, nil
}

// Samples lists the owner's samples, oldest first.
func (s *StyleService) Samples(ctx context.Context, ownerID string) ([]*model.StyleSample, error) {
	if err := validate.OwnerID(ownerID); err != nil {
		return nil, err
	}
	return s.samples.List(ctx, ownerID)
}

// CompareOwners compares the latest profiles of two owners.
func (s *StyleService) CompareOwners(ctx context.Context, ownerA, ownerB string) (model.StyleComparison, error) {
	a, err := s.Profile(ctx, ownerA)
	if err != nil {
		return model.StyleComparison{}, err
	}
	b, err := s.Profile(ctx, ownerB)
	if err != nil {
		return model.StyleComparison{}, err
	}
	return styleanalysis.Compare(*a, *b), nil
}
