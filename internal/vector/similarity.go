// Package vector implements similarity ranking over embedding vectors.
package vector

import (
	"math"
	"sort"

	"github.com/sandevgo/scribe/internal/core"
)

// Candidate is one vector under comparison. Payload travels through TopK
// untouched.
type Candidate struct {
	ID      string
	Vector  []float32
	Payload any
}

// Ranked is a candidate with its similarity to the query.
type Ranked struct {
	ID         string
	Similarity float64
	Payload    any
}

// Cosine returns the cosine similarity of a and b. Zero-magnitude vectors
// compare as 0 rather than erroring.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, core.ErrDimensionMismatch
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// TopK ranks candidates by descending similarity to query and returns at
// most k of them. Ties keep candidate order (stable sort). k <= 0 yields nil.
func TopK(query []float32, candidates []Candidate, k int) ([]Ranked, error) {
	if k <= 0 {
		return nil, nil
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		sim, err := Cosine(query, c.Vector)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, Ranked{ID: c.ID, Similarity: sim, Payload: c.Payload})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}
