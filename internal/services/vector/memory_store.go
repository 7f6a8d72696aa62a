package vector

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore keeps vectors in process and ranks by cosine similarity.
// Used when no hosted index is configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	dim     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Upsert(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim, err := batchDimension(s.dim, records)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for _, r := range records {
		values := make([]float32, len(r.Values))
		copy(values, r.Values)
		meta := make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			meta[k] = v
		}
		s.records[r.ID] = Record{ID: r.ID, Values: values, Metadata: meta}
	}
	s.dim = dim
	return nil
}

// batchDimension checks every record before anything is stored, so a bad
// batch leaves the store untouched. dim is the store's current dimension,
// zero while empty.
func batchDimension(dim int, records []Record) (int, error) {
	for _, r := range records {
		if r.ID == "" {
			return 0, &VectorError{Type: "validation", Operation: "upsert", Message: "record without ID"}
		}
		if len(r.Values) == 0 {
			return 0, &VectorError{Type: "validation", Operation: "upsert", Message: "empty vector for " + r.ID}
		}
		if dim == 0 {
			dim = len(r.Values)
		} else if len(r.Values) != dim {
			return 0, newDimensionError("upsert", dim, len(r.Values))
		}
	}
	return dim, nil
}

func (s *MemoryStore) Query(ctx context.Context, vec []float32, topK int) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, nil
	}
	if len(vec) != s.dim {
		return nil, newDimensionError("query", s.dim, len(vec))
	}

	matches := make([]Match, 0, len(s.records))
	for _, r := range s.records {
		matches = append(matches, Match{ID: r.ID, Score: cosine(vec, r.Values), Metadata: r.Metadata})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len returns the number of stored vectors.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
