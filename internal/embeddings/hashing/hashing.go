// Package hashing implements a deterministic, offline embeddings.Provider using
// signed feature hashing of words and word bigrams.
package hashing

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/pkg/errors"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/textstats"
)

// DefaultDimension is used when New is given a non-positive dimension.
const DefaultDimension = 256

// Provider maps text to a fixed-length L2-normalized vector. Texts sharing
// vocabulary land close together, which is enough for local runs and tests.
type Provider struct {
	dim int
}

func New(dim int) *Provider {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Provider{dim: dim}
}

// Dimension returns the length of every vector produced by p.
func (p *Provider) Dimension() int { return p.dim }

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errors.New("empty text")
	}

	tokens := textstats.NormalizedWords(text)
	if len(tokens) == 0 {
		tokens = []string{text}
	}

	acc := make([]float64, p.dim)
	for i, tok := range tokens {
		p.add(acc, tok, 1)
		if i > 0 {
			p.add(acc, tokens[i-1]+" "+tok, 0.5)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil, errors.New("text produced a zero vector")
	}
	vec := make([]float32, p.dim)
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec, nil
}

func (p *Provider) add(acc []float64, feature string, weight float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	idx := int(sum % uint64(p.dim))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	acc[idx] += weight
}
