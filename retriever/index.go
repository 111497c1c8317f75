package retriever

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Entry is one indexed recipe block with its popularity metadata.
type Entry struct {
	Text  string `json:"text"`
	Loves int    `json:"loves"`
}

// Result is a retrieved entry with a relevance score.
type Result struct {
	Text  string
	Loves int
	Score float64
}

// Index is a brute-force cosine similarity store. Vectors are assumed
// L2-normalized so dot product equals cosine similarity. Safe for concurrent
// search; mutation takes the write lock.
type Index struct {
	mu      sync.RWMutex
	dim     int
	vectors [][]float64
	entries []Entry
}

// NewIndex creates an empty index.
func NewIndex() *Index { return &Index{} }

// Init resets the index to the given dimensionality.
func (ix *Index) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid index dimension")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dim = dimension
	ix.vectors = nil
	ix.entries = nil
	return nil
}

// Upsert appends entries with their vectors.
func (ix *Index) Upsert(entries []Entry, vectors [][]float64) error {
	if len(entries) != len(vectors) {
		return errors.New("entries and vectors length mismatch")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, v := range vectors {
		if len(v) != ix.dim {
			return errors.New("vector dimension mismatch")
		}
	}
	ix.entries = append(ix.entries, entries...)
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Search returns the topK most similar entries, best first.
func (ix *Index) Search(vector []float64, topK int) ([]Result, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if topK <= 0 {
		topK = 4
	}
	idxs := make([]int, len(ix.vectors))
	scores := make([]float64, len(ix.vectors))
	for i, v := range ix.vectors {
		idxs[i] = i
		scores[i] = dot(v, vector)
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]Result, 0, topK)
	for _, i := range idxs[:topK] {
		results = append(results, Result{Text: ix.entries[i].Text, Loves: ix.entries[i].Loves, Score: scores[i]})
	}
	return results, nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// indexFile is the on-disk layout of a persisted index. EmbedderName guards
// against loading vectors produced by a different embedder configuration.
type indexFile struct {
	EmbedderName string      `json:"embedder"`
	Dimension    int         `json:"dimension"`
	Entries      []Entry     `json:"entries"`
	Vectors      [][]float64 `json:"vectors"`
}

// Save persists the index to path, creating parent directories as needed.
func (ix *Index) Save(path, embedderName string) error {
	ix.mu.RLock()
	file := indexFile{
		EmbedderName: embedderName,
		Dimension:    ix.dim,
		Entries:      ix.entries,
		Vectors:      ix.vectors,
	}
	ix.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadIndex reads a persisted index. It fails when the file was written by a
// different embedder, forcing a rebuild instead of serving stale vectors.
func LoadIndex(path, embedderName string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", path, err)
	}
	if file.EmbedderName != embedderName {
		return nil, fmt.Errorf("index %s was built with embedder %q, want %q", path, file.EmbedderName, embedderName)
	}
	ix := NewIndex()
	if err := ix.Init(file.Dimension); err != nil {
		return nil, err
	}
	if err := ix.Upsert(file.Entries, file.Vectors); err != nil {
		return nil, err
	}
	return ix, nil
}
