package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/docstore"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/validate"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/versions"
)

// OwnerDeletion counts what a cascade removed.
type OwnerDeletion struct {
	OwnerID   string `json:"ownerId"`
	Documents int    `json:"documents"`
	Versions  int    `json:"versions"`
	Samples   int    `json:"samples"`
}

// OwnerService handles owner lifecycle operations.
type OwnerService struct {
	docs     *docstore.Service
	versions *versions.Store
	samples  store.Samples
	log      zerolog.Logger
}

func NewOwnerService(docs *docstore.Service, v *versions.Store, samples store.Samples, log zerolog.Logger) *OwnerService {
	return &OwnerService{docs: docs, versions: v, samples: samples, log: log}
}

// DeleteOwner removes every document, version record and sample of the owner.
// It stops at the first failing store; a rerun finishes the cascade.
func (s *OwnerService) DeleteOwner(ctx context.Context, ownerID string) (OwnerDeletion, error) {
	out := OwnerDeletion{OwnerID: ownerID}
	if err := validate.OwnerID(ownerID); err != nil {
		return out, err
	}
	var err error
	if out.Documents, err = s.docs.DeleteByOwner(ctx, ownerID); err != nil {
		return out, err
	}
	if out.Versions, err = s.versions.DeleteByOwner(ctx, ownerID); err != nil {
		return out, err
	}
	if out.Samples, err = s.samples.DeleteByOwner(ctx, ownerID); err != nil {
		return out, err
	}
	s.log.Info().
		Str("owner_id", ownerID).
		Int("documents", out.Documents).
		Int("versions", out.Versions).
		Int("samples", out.Samples).
		Msg("owner deleted")
	return out, nil
}
