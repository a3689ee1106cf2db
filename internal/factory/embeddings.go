package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/config"
	emb "github.com/Akashyo7/Ai-Nidhi-sub000/internal/embeddings"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/embeddings/hashing"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/embeddings/ollama"
)

// NewEmbeddingProvider creates the provider named by cfg.EmbedProvider.
// Remote providers get an async warmup so a cold model loads before the
// first real request; failures there are only logged.
func NewEmbeddingProvider(ctx context.Context, cfg *config.Config, log zerolog.Logger) (emb.Provider, error) {
	switch cfg.EmbedProvider {
	case "hashing":
		return hashing.New(cfg.EmbedDimension), nil
	case "", "ollama":
		p := ollama.New(cfg.OllamaURL, cfg.EmbedModel, embedTimeout(cfg))
		if cfg.BootstrapTimeoutSeconds > 0 {
			go warmup(ctx, p, cfg, log)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown EMBED_PROVIDER: %s", cfg.EmbedProvider)
}

func warmup(ctx context.Context, p emb.Provider, cfg *config.Config, log zerolog.Logger) {
	warmupCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout(cfg))
	defer cancel()

	if vec, err := p.Embed(warmupCtx, "factory-warmup-check"); err != nil || len(vec) == 0 {
		log.Warn().Err(err).Int("vec_len", len(vec)).
			Str("provider", cfg.EmbedProvider).Str("model", cfg.EmbedModel).
			Msg("embedding provider warmup failed")
		return
	}
	log.Debug().Str("provider", cfg.EmbedProvider).Str("model", cfg.EmbedModel).
		Msg("embedding provider warmup completed")
}

func embedTimeout(cfg *config.Config) time.Duration {
	if cfg.EmbedTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.EmbedTimeoutSeconds) * time.Second
}
