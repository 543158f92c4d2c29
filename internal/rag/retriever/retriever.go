package retriever

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/metrics"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

type Retriever struct {
	store        vectorDB.Store
	collection   string
	previewChars int
	logger       *logger_i.Logger
}

func New(store vectorDB.Store, collection string) *Retriever {
	return &Retriever{
		store:        store,
		collection:   collection,
		previewChars: config.ResultPreviewChars,
		logger:       logger_i.NewLogger("Retriever"),
	}
}

// Search runs a similarity query and maps the hits into RetrievedResults,
// preserving the store's native ranking order. maxResults is clamped into
// [1,10] whatever the caller asked for. An uninitialized store surfaces
// ragErrors.ErrNotInitialized, which is not the same thing as zero
// matches.
func (r *Retriever) Search(ctx context.Context, query string, maxResults int) ([]docModel.RetrievedResult, error) {
	return r.search(ctx, query, Clamp(maxResults))
}

// SearchWide behaves like Search but honors counts beyond the standard
// clamp; the comprehensive modes retrieve expanded context through it.
func (r *Retriever) SearchWide(ctx context.Context, query string, nResults int) ([]docModel.RetrievedResult, error) {
	if nResults < config.MinSearchResults {
		nResults = config.MinSearchResults
	}
	return r.search(ctx, query, nResults)
}

func (r *Retriever) search(ctx context.Context, query string, maxResults int) ([]docModel.RetrievedResult, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	if strings.TrimSpace(query) == "" {
		return nil, ragErrors.NewInputError("empty search query")
	}

	collection, err := r.store.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	hits, err := collection.Query(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	results := make([]docModel.RetrievedResult, 0, len(hits.Documents))
	for i, text := range hits.Documents {
		meta := hits.Metadatas[i]
		distance := hits.Distances[i]
		results = append(results, docModel.RetrievedResult{
			ChunkId:           stringField(meta, "chunk_id"),
			Text:              text,
			Preview:           r.preview(text),
			SourceFile:        stringField(meta, "source_file"),
			ChunkIndex:        intField(meta, "chunk_index"),
			TotalChunks:       intField(meta, "total_chunks"),
			Distance:          distance,
			SimilarityPercent: SimilarityPercent(distance),
		})
	}
	r.logger.Debug("search complete", "query", query, "hits", len(results))
	return results, nil
}

// Clamp bounds a requested result count into [1,10].
func Clamp(maxResults int) int {
	if maxResults < config.MinSearchResults {
		return config.MinSearchResults
	}
	if maxResults > config.MaxSearchResults {
		return config.MaxSearchResults
	}
	return maxResults
}

// SimilarityPercent transforms a cosine distance in [0,2] into a
// human-readable percentage: 0 -> 100%, 1 -> 50%, 2 -> 0%. Distances
// past 2 floor at 0 rather than going negative.
func SimilarityPercent(distance float32) float64 {
	percent := (2 - float64(distance)) / 2 * 100
	if percent < 0 {
		return 0
	}
	return percent
}

// preview collapses whitespace runs and truncates for display. The full
// text stays on the result for downstream consumers.
func (r *Retriever) preview(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if len(collapsed) <= r.previewChars {
		return collapsed
	}
	cut := r.previewChars
	for cut > 0 && !utf8.RuneStart(collapsed[cut]) {
		cut--
	}
	return collapsed[:cut] + "..."
}

func stringField(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func intField(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
