// Package factory is the composition root: it turns a Config into a store,
// an embedding provider and the services built on them.
package factory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/config"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/contextanalysis"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/docstore"
	emb "github.com/Akashyo7/Ai-Nidhi-sub000/internal/embeddings"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/health"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/lexicon"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/services"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/styleanalysis"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/versions"
)

// Engine holds the wired services. Close releases the store.
type Engine struct {
	Store    store.Store
	Embedder emb.Provider
	Docs     *docstore.Service
	Versions *versions.Store
	Context  *services.ContextService
	Style    *services.StyleService
	Owners   *services.OwnerService
}

// NewEngine opens the configured store and provider and wires the services.
func NewEngine(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Engine, error) {
	st, err := NewStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	p, err := NewEmbeddingProvider(ctx, cfg, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return Wire(cfg, st, p, log), nil
}

// Wire builds the services over an already opened store and provider.
func Wire(cfg *config.Config, st store.Store, p emb.Provider, log zerolog.Logger) *Engine {
	tables := lexicon.Default()
	docs := docstore.New(st.Documents(), p, log.With().Str("component", "docstore").Logger(), docstore.Options{
		EmbedTimeout: embedTimeout(cfg),
		Dimension:    cfg.EmbedDimension,
		DefaultLimit: cfg.SearchLimit,
	})
	ver := versions.New(st.Versions(), log.With().Str("component", "versions").Logger(), cfg.VersionRetryAttempts)
	svcLog := log.With().Str("component", "services").Logger()

	log.Debug().
		Str("driver", cfg.DBDriver).
		Str("provider", cfg.EmbedProvider).
		Str("lexicon", tables.Version).
		Msg("engine wired")

	return &Engine{
		Store:    st,
		Embedder: p,
		Docs:     docs,
		Versions: ver,
		Context:  services.NewContextService(ver, docs, contextanalysis.New(tables), svcLog),
		Style:    services.NewStyleService(st.Samples(), ver, docs, styleanalysis.New(tables), svcLog),
		Owners:   services.NewOwnerService(docs, ver, st.Samples(), svcLog),
	}
}

// Doctor probes the store and the provider until both report healthy or the
// bootstrap timeout passes, and returns the per-component status.
func (e *Engine) Doctor(ctx context.Context, cfg *config.Config, log zerolog.Logger) (map[string]bool, error) {
	probe := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	storeHC := store.NewStoreHealthChecker(e.Store, log, probe)
	embedHC := emb.NewProviderHealthChecker(e.Embedder, log, probe).WithDimension(e.Docs.Dimension())

	// first probes run inline so a healthy setup passes without waiting a tick
	if err := storeHC.Probe(ctx); err != nil {
		log.Debug().Err(err).Str("component", storeHC.Name()).Str("driver", cfg.DBDriver).Msg("initial probe failed")
	}
	if err := embedHC.Probe(ctx); err != nil {
		log.Debug().Err(err).Str("component", embedHC.Name()).Str("provider", cfg.EmbedProvider).Msg("initial probe failed")
	}

	deps := []health.HealthChecker{storeHC, embedHC}
	svc := health.NewServiceHealthChecker(log, deps...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for _, d := range deps {
		go d.Start(runCtx, interval)
	}
	go svc.Start(runCtx, interval)

	err := health.WaitUntilHealthy(runCtx, svc, bootstrapTimeout(cfg))
	return svc.Components(), err
}

// Close releases the store.
func (e *Engine) Close() error {
	if e == nil || e.Store == nil {
		return nil
	}
	return e.Store.Close()
}
