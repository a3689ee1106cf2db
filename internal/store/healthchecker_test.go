package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store/memory"
)

// readOnlyStore hides the HealthPing of the wrapped store so the probe falls
// back to a document read.
type readOnlyStore struct {
	store.Store
	docs store.Documents
}

func (r readOnlyStore) Documents() store.Documents { return r.docs }

type failingDocs struct{ store.Documents }

func (failingDocs) Get(context.Context, string) (*model.Document, error) {
	return nil, errors.New("connection refused")
}

func TestStoreHealthChecker_Ping(t *testing.T) {
	hc := store.NewStoreHealthChecker(memory.New(), zerolog.Nop(), time.Second)
	assert.Equal(t, "store", hc.Name())
	assert.False(t, hc.IsHealthy())
	require.NoError(t, hc.Probe(context.Background()))
	assert.True(t, hc.IsHealthy())
}

func TestStoreHealthChecker_ReadFallback(t *testing.T) {
	mem := memory.New()
	hc := store.NewStoreHealthChecker(readOnlyStore{Store: mem, docs: mem.Documents()}, zerolog.Nop(), 0)
	require.NoError(t, hc.Probe(context.Background()), "not found means the store answered")
	assert.True(t, hc.IsHealthy())

	hc = store.NewStoreHealthChecker(readOnlyStore{Store: mem, docs: failingDocs{}}, zerolog.Nop(), 0)
	assert.Error(t, hc.Probe(context.Background()))
	assert.False(t, hc.IsHealthy())
}

type failingVersions struct{ store.Versions }

func (failingVersions) Latest(context.Context, string, model.Category) (*model.VersionRecord, error) {
	return nil, errors.New("table missing")
}

// versionsBroken answers document reads but not version reads.
type versionsBroken struct{ readOnlyStore }

func (v versionsBroken) Versions() store.Versions { return failingVersions{} }

func TestStoreHealthChecker_ReadFallbackCoversVersions(t *testing.T) {
	mem := memory.New()
	hc := store.NewStoreHealthChecker(versionsBroken{readOnlyStore{Store: mem, docs: mem.Documents()}}, zerolog.Nop(), 0)
	err := hc.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "versions")
	assert.False(t, hc.IsHealthy())
}
