// Package similarity implements cosine scoring and result ranking for
// drivers that cannot push the similarity operator down into the database.
package similarity

import (
	"math"
	"sort"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

// Cosine returns the cosine similarity (1 - cosine distance) of a and b clamped to [0,1].
// Mismatched lengths and zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return Clamp(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// Clamp bounds a similarity to [0,1]; NaN becomes 0.
func Clamp(s float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Matches reports whether doc passes the owner, type and exclusion filters of q.
func Matches(doc *model.Document, q model.VectorQuery) bool {
	if q.OwnerID != "" && doc.OwnerID != q.OwnerID {
		return false
	}
	if q.DocumentType != "" && doc.DocumentType != q.DocumentType {
		return false
	}
	return q.ExcludeID == "" || doc.ID != q.ExcludeID
}

// Rank scores candidates against q.Vector and returns those at or above q.Threshold,
// sorted by descending similarity, ties broken by most recent CreatedAt, truncated to q.Limit.
// Candidates failing the filters of q are skipped.
func Rank(candidates []*model.Document, q model.VectorQuery) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(candidates))
	for _, doc := range candidates {
		if !Matches(doc, q) {
			continue
		}
		s := Cosine(q.Vector, doc.Embedding)
		if s < q.Threshold {
			continue
		}
		results = append(results, model.SearchResult{Document: doc, Similarity: s})
	}
	Sort(results)
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}

// Sort orders results by descending similarity, then most recent CreatedAt, then ID.
func Sort(results []model.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if !a.Document.CreatedAt.Equal(b.Document.CreatedAt) {
			return a.Document.CreatedAt.After(b.Document.CreatedAt)
		}
		return a.Document.ID < b.Document.ID
	})
}
