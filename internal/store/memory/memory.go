// Package memory is an in-process store.Store used by tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/similarity"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
)

// New returns an empty store. All sub-stores share one lock, so every
// operation, including version allocation, is serialized.
func New() store.Store {
	return &memStore{
		docs:    make(map[string]*model.Document),
		samples: make(map[string][]*model.StyleSample),
		history: make(map[historyKey][]*model.VersionRecord),
	}
}

type historyKey struct {
	owner    string
	category model.Category
}

type memStore struct {
	mu      sync.RWMutex
	docs    map[string]*model.Document
	samples map[string][]*model.StyleSample
	history map[historyKey][]*model.VersionRecord
}

func (s *memStore) Documents() store.Documents { return (*documents)(s) }
func (s *memStore) Versions() store.Versions   { return (*versions)(s) }
func (s *memStore) Samples() store.Samples     { return (*samples)(s) }
func (s *memStore) Close() error               { return nil }

// HealthPing implements health.HealthPinger.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

// --- Documents ---
type documents memStore

func (d *documents) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := cloneDocument(doc)
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	d.docs[c.ID] = c
	return cloneDocument(c), nil
}

func (d *documents) Get(ctx context.Context, id string) (*model.Document, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (d *documents) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, ok := d.docs[doc.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := cloneDocument(doc)
	c.OwnerID = cur.OwnerID
	c.DocumentType = cur.DocumentType
	c.CreatedAt = cur.CreatedAt
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	d.docs[c.ID] = c
	return cloneDocument(c), nil
}

func (d *documents) Delete(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.docs[id]
	delete(d.docs, id)
	return ok, nil
}

func (d *documents) ListByOwner(ctx context.Context, ownerID string, docType model.DocumentType, limit int) ([]*model.Document, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []*model.Document
	for _, doc := range d.docs {
		if doc.OwnerID != ownerID || (docType != "" && doc.DocumentType != docType) {
			continue
		}
		out = append(out, cloneDocument(doc))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (d *documents) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for id, doc := range d.docs {
		if doc.OwnerID == ownerID {
			delete(d.docs, id)
			n++
		}
	}
	return n, nil
}

func (d *documents) Nearest(ctx context.Context, q model.VectorQuery) ([]model.SearchResult, error) {
	d.mu.RLock()
	candidates := make([]*model.Document, 0, len(d.docs))
	for _, doc := range d.docs {
		if similarity.Matches(doc, q) {
			candidates = append(candidates, cloneDocument(doc))
		}
	}
	d.mu.RUnlock()
	return similarity.Rank(candidates, q), nil
}

// --- Versions ---
type versions memStore

func (v *versions) Append(ctx context.Context, rec *model.VersionRecord) (*model.VersionRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	key := historyKey{rec.OwnerID, rec.Category}
	c := cloneVersion(rec)
	c.Version = len(v.history[key]) + 1
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	v.history[key] = append(v.history[key], c)
	return cloneVersion(c), nil
}

func (v *versions) Latest(ctx context.Context, ownerID string, category model.Category) (*model.VersionRecord, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	h := v.history[historyKey{ownerID, category}]
	if len(h) == 0 {
		return nil, store.ErrNotFound
	}
	return cloneVersion(h[len(h)-1]), nil
}

func (v *versions) List(ctx context.Context, ownerID string, category model.Category) ([]*model.VersionRecord, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	h := v.history[historyKey{ownerID, category}]
	out := make([]*model.VersionRecord, 0, len(h))
	for _, r := range h {
		out = append(out, cloneVersion(r))
	}
	return out, nil
}

func (v *versions) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for key, h := range v.history {
		if key.owner == ownerID {
			n += len(h)
			delete(v.history, key)
		}
	}
	return n, nil
}

// --- Samples ---
type samples memStore

func (s *samples) Add(ctx context.Context, in *model.StyleSample) (*model.StyleSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *in
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.samples[c.OwnerID] = append(s.samples[c.OwnerID], &c)
	out := c
	return &out, nil
}

func (s *samples) List(ctx context.Context, ownerID string) ([]*model.StyleSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.samples[ownerID]
	out := make([]*model.StyleSample, 0, len(list))
	for _, smp := range list {
		c := *smp
		out = append(out, &c)
	}
	return out, nil
}

func (s *samples) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for owner, list := range s.samples {
		for i, smp := range list {
			if smp.ID != id {
				continue
			}
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				delete(s.samples, owner)
			} else {
				s.samples[owner] = list
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *samples) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.samples[ownerID])
	delete(s.samples, ownerID)
	return n, nil
}

func cloneDocument(d *model.Document) *model.Document {
	c := *d
	if d.Metadata != nil {
		c.Metadata = make(map[string]interface{}, len(d.Metadata))
		for k, v := range d.Metadata {
			c.Metadata[k] = v
		}
	}
	if d.Embedding != nil {
		c.Embedding = append([]float32(nil), d.Embedding...)
	}
	return &c
}

func cloneVersion(r *model.VersionRecord) *model.VersionRecord {
	c := *r
	c.Payload = append([]byte(nil), r.Payload...)
	return &c
}
