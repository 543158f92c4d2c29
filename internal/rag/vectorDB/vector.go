package vectorDB

import "context"

// QueryResult holds index-aligned retrieval output. Distances use the
// store's native metric and must stay within [0,2] (cosine distance);
// the similarity-percent derivation downstream depends on that bound.
type QueryResult struct {
	Documents []string
	Metadatas []map[string]any
	Distances []float32
}

// Collection is one named index of text passages.
type Collection interface {
	// Add stores documents under the given ids. All three slices must
	// have matching lengths. Atomicity across the batch is not
	// guaranteed; a failure may leave a partial write.
	Add(ctx context.Context, ids []string, documents []string, metadatas []map[string]any) error

	// Query returns the nResults nearest passages to queryText in the
	// store's native ranking order (ascending distance).
	Query(ctx context.Context, queryText string, nResults int) (QueryResult, error)
}

// AnswerCache is an optional store capability: previously generated
// answers keyed by query similarity. A near-identical query can reuse
// the stored answer instead of paying for a fresh completion. Entries
// are not invalidated by re-ingestion; callers decide where staleness
// is acceptable.
type AnswerCache interface {
	// CachedAnswer returns a stored answer whose query is semantically
	// close enough to this one, or found=false.
	CachedAnswer(ctx context.Context, query string) (answer string, found bool, err error)

	// SaveAnswer stores the answer under the query. Same query
	// overwrites.
	SaveAnswer(ctx context.Context, query string, answer string) error
}

// Store is the vector index capability this core consumes. It treats the
// index engine as a black box behind these two lookups.
type Store interface {
	// GetOrCreateCollection returns the named collection, creating it
	// on first use.
	GetOrCreateCollection(ctx context.Context, name string) (Collection, error)

	// Collection returns the named collection, or
	// ragErrors.ErrNotInitialized when it has never been created.
	Collection(ctx context.Context, name string) (Collection, error)
}
