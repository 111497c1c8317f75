package retriever

import (
	"context"
	"fmt"
	"os"
	"sync"

	"dapoerjuna/logging"
	"dapoerjuna/recipe"
)

// DefaultK is the fixed retrieval fan-out when none is configured.
const DefaultK = 4

// Options configure a Retriever.
type Options struct {
	K      int
	Logger logging.Logger
}

// Retriever adapts the similarity index to the orchestrator: query in,
// blank-line-joined recipe blocks out. Deterministic for identical index
// state and query; mutates nothing shared.
type Retriever struct {
	embedder Embedder
	k        int
	logger   logging.Logger

	mu    sync.RWMutex
	index *Index
}

// New creates a Retriever with an empty index. Call Build before Retrieve.
func New(embedder Embedder, optFns ...func(o *Options)) *Retriever {
	opts := Options{K: DefaultK, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.K <= 0 {
		opts.K = DefaultK
	}
	return &Retriever{embedder: embedder, k: opts.K, logger: opts.Logger, index: NewIndex()}
}

// Build prepares the embedder over the store's blocks and populates the
// index. When indexPath names a usable persisted index for this embedder and
// corpus size it is loaded instead of re-embedding; otherwise the index is
// built and, when indexPath is non-empty, saved. force skips the load path.
func (r *Retriever) Build(ctx context.Context, store *recipe.Store, indexPath string, force bool) error {
	blocks := store.Blocks()
	records := store.Records()
	if err := r.embedder.Prepare(ctx, blocks); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}

	if indexPath != "" && !force {
		if ix, err := LoadIndex(indexPath, r.embedder.Name()); err == nil && ix.Len() == len(blocks) {
			r.swap(ix)
			r.logger.Info("retriever.index.loaded", "path", indexPath, "entries", ix.Len())
			return nil
		} else if err != nil && !os.IsNotExist(err) {
			r.logger.Warn("retriever.index.load_failed", "path", indexPath, "error", err.Error())
		}
	}

	ix := NewIndex()
	if err := ix.Init(r.embedder.Dimension()); err != nil {
		return err
	}
	entries := make([]Entry, len(blocks))
	vectors := make([][]float64, len(blocks))
	for i, block := range blocks {
		vec, err := r.embedder.Embed(ctx, block)
		if err != nil {
			return fmt.Errorf("embed block %d: %w", i, err)
		}
		entries[i] = Entry{Text: block, Loves: records[i].Loves}
		vectors[i] = vec
	}
	if err := ix.Upsert(entries, vectors); err != nil {
		return err
	}
	r.swap(ix)
	r.logger.Info("retriever.index.built", "entries", ix.Len(), "dimension", r.embedder.Dimension())

	if indexPath != "" {
		if err := ix.Save(indexPath, r.embedder.Name()); err != nil {
			r.logger.Warn("retriever.index.save_failed", "path", indexPath, "error", err.Error())
		}
	}
	return nil
}

func (r *Retriever) swap(ix *Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = ix
}

func (r *Retriever) current() *Index {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

// Search returns the top-k scored entries for the query.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]Result, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if k <= 0 {
		k = r.k
	}
	return r.current().Search(vec, k)
}

// Retrieve returns the top-k recipe blocks for the query, blank-line joined.
func (r *Retriever) Retrieve(ctx context.Context, query string) (string, error) {
	results, err := r.Search(ctx, query, r.k)
	if err != nil {
		return "", err
	}
	blocks := make([]string, len(results))
	for i, res := range results {
		blocks[i] = res.Text
	}
	return recipe.JoinBlocks(blocks), nil
}
