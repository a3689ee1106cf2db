// Package embeddings defines the text-to-vector capability injected into the
// document store.
package embeddings

import "context"

// Provider produces vector representations for text. Every vector returned by
// one provider has the same length.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
