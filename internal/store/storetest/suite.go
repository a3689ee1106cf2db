// Package storetest is a driver-independent compliance suite for store.Store.
package storetest

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// Every case uses fresh owner ids, so a shared database is fine.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	t.Cleanup(func() { _ = s.Close() })

	t.Run("DocumentsCRUD", func(t *testing.T) { testDocumentsCRUD(t, s) })
	t.Run("DocumentsNearest", func(t *testing.T) { testDocumentsNearest(t, s) })
	t.Run("VersionsSequential", func(t *testing.T) { testVersionsSequential(t, s) })
	t.Run("VersionsConcurrent", func(t *testing.T) { testVersionsConcurrent(t, s) })
	t.Run("Samples", func(t *testing.T) { testSamples(t, s) })
	t.Run("DeleteByOwner", func(t *testing.T) { testDeleteByOwner(t, s) })
}

func newOwner() string { return "owner-" + uuid.NewString() }

// base is truncated to microseconds, the coarsest precision among drivers.
var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newDoc(owner string, typ model.DocumentType, content string, vec []float32, at time.Time) *model.Document {
	return &model.Document{
		ID:           uuid.NewString(),
		OwnerID:      owner,
		Content:      content,
		DocumentType: typ,
		Metadata:     map[string]interface{}{"platform": "linkedin"},
		Embedding:    vec,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

func testDocumentsCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := newOwner()
	docs := s.Documents()

	content := "Héllo, wörld!\n  Line two with trailing space "
	d1, err := docs.Create(ctx, newDoc(owner, model.DocumentTypeContent, content, []float32{0.1, 0.2, 0.3}, base))
	require.NoError(t, err)

	got, err := docs.Get(ctx, d1.ID)
	require.NoError(t, err)
	assert.Equal(t, content, got.Content, "content round-trips byte for byte")
	assert.Len(t, got.Embedding, 3)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3}, got.Embedding, 1e-6)
	assert.Equal(t, owner, got.OwnerID)
	assert.Equal(t, model.DocumentTypeContent, got.DocumentType)
	assert.Equal(t, "linkedin", got.Metadata["platform"])
	assert.True(t, got.CreatedAt.Equal(base), "created_at %v", got.CreatedAt)

	_, err = docs.Get(ctx, uuid.NewString())
	assert.True(t, store.IsNotFound(err), "get unknown: %v", err)

	d2, err := docs.Create(ctx, newDoc(owner, model.DocumentTypeTrend, "second", []float32{0.3, 0.2, 0.1}, base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = docs.Create(ctx, newDoc(owner, model.DocumentTypeContent, "third", []float32{0.2, 0.2, 0.2}, base.Add(2*time.Minute)))
	require.NoError(t, err)

	all, err := docs.ListByOwner(ctx, owner, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Content, "newest first")
	assert.Equal(t, content, all[2].Content)

	onlyContent, err := docs.ListByOwner(ctx, owner, model.DocumentTypeContent, 0)
	require.NoError(t, err)
	assert.Len(t, onlyContent, 2)

	limited, err := docs.ListByOwner(ctx, owner, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	upd := *got
	upd.Content = "rewritten"
	upd.Metadata = map[string]interface{}{"platform": "blog"}
	upd.Embedding = []float32{0.9, 0.1, 0}
	upd.UpdatedAt = base.Add(time.Hour)
	updated, err := docs.Update(ctx, &upd)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Content)

	got, err = docs.Get(ctx, d1.ID)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got.Content)
	assert.Equal(t, "blog", got.Metadata["platform"])
	assert.InDeltaSlice(t, []float32{0.9, 0.1, 0}, got.Embedding, 1e-6)
	assert.True(t, got.CreatedAt.Equal(base), "created_at is immutable")
	assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))

	missing := *got
	missing.ID = uuid.NewString()
	_, err = docs.Update(ctx, &missing)
	assert.True(t, store.IsNotFound(err), "update unknown: %v", err)

	existed, err := docs.Delete(ctx, d2.ID)
	require.NoError(t, err)
	assert.True(t, existed)
	existed, err = docs.Delete(ctx, d2.ID)
	require.NoError(t, err)
	assert.False(t, existed, "delete is idempotent")
}

func testDocumentsNearest(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := newOwner()
	other := newOwner()
	docs := s.Documents()

	mk := func(o string, typ model.DocumentType, name string, vec []float32, at time.Time) *model.Document {
		d, err := docs.Create(ctx, newDoc(o, typ, name, vec, at))
		require.NoError(t, err)
		return d
	}
	exact := mk(owner, model.DocumentTypeContent, "exact", []float32{1, 0, 0}, base)
	mk(owner, model.DocumentTypeContent, "close", []float32{0.8, 0.6, 0}, base)
	mk(owner, model.DocumentTypeContent, "orthogonal", []float32{0, 1, 0}, base)
	mk(owner, model.DocumentTypeContent, "opposite", []float32{-1, 0, 0}, base)
	twinOld := mk(owner, model.DocumentTypeTrend, "twin-old", []float32{0.6, 0.8, 0}, base)
	twinNew := mk(owner, model.DocumentTypeTrend, "twin-new", []float32{0.6, 0.8, 0}, base.Add(time.Hour))
	mk(other, model.DocumentTypeContent, "other-owner", []float32{1, 0, 0}, base)

	q := []float32{1, 0, 0}

	res, err := docs.Nearest(ctx, model.VectorQuery{Vector: q, OwnerID: owner, Threshold: 0.5})
	require.NoError(t, err)
	names := contents(res)
	assert.Equal(t, []string{"exact", "close", "twin-new", "twin-old"}, names)
	assert.InDelta(t, 1.0, res[0].Similarity, 1e-5)
	assert.InDelta(t, 0.8, res[1].Similarity, 1e-5)
	for i, r := range res {
		assert.GreaterOrEqual(t, r.Similarity, 0.5)
		assert.LessOrEqual(t, r.Similarity, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, r.Similarity, res[i-1].Similarity)
		}
	}
	assert.Equal(t, twinNew.ID, res[2].Document.ID, "ties go to the most recent")
	assert.Equal(t, twinOld.ID, res[3].Document.ID)
	assert.Len(t, res[0].Document.Embedding, 3)

	res, err = docs.Nearest(ctx, model.VectorQuery{Vector: q, OwnerID: owner, Threshold: 0})
	require.NoError(t, err)
	assert.Len(t, res, 6, "threshold 0 keeps everything for the owner")
	for _, r := range res {
		assert.GreaterOrEqual(t, r.Similarity, 0.0, "negative cosine clamps to 0")
	}

	res, err = docs.Nearest(ctx, model.VectorQuery{Vector: q, OwnerID: owner, DocumentType: model.DocumentTypeTrend, Threshold: 0.1})
	require.NoError(t, err)
	assert.Equal(t, []string{"twin-new", "twin-old"}, contents(res))

	res, err = docs.Nearest(ctx, model.VectorQuery{Vector: q, OwnerID: owner, ExcludeID: exact.ID, Threshold: 0.5, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"close", "twin-new"}, contents(res))
}

func testVersionsSequential(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := newOwner()
	v := s.Versions()

	_, err := v.Latest(ctx, owner, model.CategoryContext)
	assert.True(t, store.IsNotFound(err), "latest of empty history: %v", err)

	for i := 1; i <= 3; i++ {
		rec, err := v.Append(ctx, &model.VersionRecord{
			ID:        uuid.NewString(),
			OwnerID:   owner,
			Category:  model.CategoryContext,
			Content:   "snapshot",
			Payload:   []byte(`{"n":` + strconv.Itoa(i) + `}`),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		assert.Equal(t, i, rec.Version)
	}
	// a second category keeps its own sequence
	rec, err := v.Append(ctx, &model.VersionRecord{ID: uuid.NewString(), OwnerID: owner, Category: model.CategoryWritingStyle, Payload: []byte(`{}`)})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)

	latest, err := v.Latest(ctx, owner, model.CategoryContext)
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Version)
	assert.JSONEq(t, `{"n":3}`, string(latest.Payload))

	list, err := v.List(ctx, owner, model.CategoryContext)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, r := range list {
		assert.Equal(t, i+1, r.Version)
	}
}

func testVersionsConcurrent(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := newOwner()
	v := s.Versions()

	const writers = 12
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, err := v.Append(ctx, &model.VersionRecord{ID: uuid.NewString(), OwnerID: owner, Category: model.CategoryContext, Payload: []byte(`{}`)})
				if store.IsVersionConflict(err) {
					continue
				}
				errs <- err
				return
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := v.List(ctx, owner, model.CategoryContext)
	require.NoError(t, err)
	got := make([]int, 0, len(list))
	for _, r := range list {
		got = append(got, r.Version)
	}
	sort.Ints(got)
	want := make([]int, writers)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, got, "versions are 1..N with no gaps or repeats")
}

func testSamples(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := newOwner()
	sm := s.Samples()

	for i, p := range []string{"linkedin", "blog", "twitter"} {
		_, err := sm.Add(ctx, &model.StyleSample{
			ID:          uuid.NewString(),
			OwnerID:     owner,
			Content:     "sample from " + p,
			Platform:    p,
			ContentType: "post",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	list, err := sm.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "linkedin", list[0].Platform, "oldest first")
	assert.Equal(t, "twitter", list[2].Platform)
	assert.Equal(t, "post", list[1].ContentType)

	empty, err := sm.List(ctx, newOwner())
	require.NoError(t, err)
	assert.Empty(t, empty)

	ok, err := sm.Delete(ctx, list[1].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = sm.Delete(ctx, list[1].ID)
	require.NoError(t, err)
	assert.False(t, ok, "second delete finds nothing")
	list, err = sm.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "twitter", list[1].Platform)
}

func testDeleteByOwner(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := newOwner()
	keep := newOwner()

	for _, o := range []string{owner, owner, keep} {
		_, err := s.Documents().Create(ctx, newDoc(o, model.DocumentTypeContext, "c", []float32{1, 1}, base))
		require.NoError(t, err)
		_, err = s.Versions().Append(ctx, &model.VersionRecord{ID: uuid.NewString(), OwnerID: o, Category: model.CategoryContext, Payload: []byte(`{}`)})
		require.NoError(t, err)
		_, err = s.Samples().Add(ctx, &model.StyleSample{ID: uuid.NewString(), OwnerID: o, Content: "x"})
		require.NoError(t, err)
	}

	n, err := s.Documents().DeleteByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = s.Versions().DeleteByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = s.Samples().DeleteByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := s.Documents().ListByOwner(ctx, owner, "", 0)
	require.NoError(t, err)
	assert.Empty(t, left)
	kept, err := s.Documents().ListByOwner(ctx, keep, "", 0)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
	latest, err := s.Versions().Latest(ctx, keep, model.CategoryContext)
	require.NoError(t, err)
	assert.Equal(t, 1, latest.Version)
}

func contents(res []model.SearchResult) []string {
	out := make([]string, 0, len(res))
	for _, r := range res {
		out = append(out, r.Document.Content)
	}
	return out
}
