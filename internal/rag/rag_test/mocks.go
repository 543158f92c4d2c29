package rag_test

import (
	"context"
	"sort"
	"strings"

	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/rag/ingest"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB"
)

// MockExtractor satisfies ingest.TextExtractor without touching real PDF
// parsing; the raw upload bytes stand in for the extracted page text.
type MockExtractor struct {
	OnExtract func(ctx context.Context, data []byte) ([]string, error)
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte) ([]string, error) {
	if m.OnExtract != nil {
		return m.OnExtract(ctx, data)
	}
	return []string{string(data)}, nil
}

var _ ingest.TextExtractor = (*MockExtractor)(nil)

// MockCompleter satisfies llm.Completer.
type MockCompleter struct {
	OnComplete func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error)
}

func (m *MockCompleter) Complete(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
	if m.OnComplete != nil {
		return m.OnComplete(ctx, credential, systemPrompt, userPrompt)
	}
	return "mock completion", nil
}

// FakeVectorStore is an in-memory stand-in for the vector index. It
// ranks by naive term overlap, which is enough to drive the pipeline
// end to end deterministically.
type FakeVectorStore struct {
	collections map[string]*fakeCollection
}

func NewFakeVectorStore() *FakeVectorStore {
	return &FakeVectorStore{collections: make(map[string]*fakeCollection)}
}

func (s *FakeVectorStore) GetOrCreateCollection(ctx context.Context, name string) (vectorDB.Collection, error) {
	if coll, ok := s.collections[name]; ok {
		return coll, nil
	}
	coll := &fakeCollection{}
	s.collections[name] = coll
	return coll, nil
}

func (s *FakeVectorStore) Collection(ctx context.Context, name string) (vectorDB.Collection, error) {
	coll, ok := s.collections[name]
	if !ok {
		return nil, ragErrors.ErrNotInitialized
	}
	return coll, nil
}

type fakeEntry struct {
	id       string
	document string
	metadata map[string]any
}

type fakeCollection struct {
	entries []fakeEntry
}

func (c *fakeCollection) Add(ctx context.Context, ids []string, documents []string, metadatas []map[string]any) error {
	for i := range ids {
		c.entries = append(c.entries, fakeEntry{
			id:       ids[i],
			document: documents[i],
			metadata: metadatas[i],
		})
	}
	return nil
}

func (c *fakeCollection) Query(ctx context.Context, queryText string, nResults int) (vectorDB.QueryResult, error) {
	type scored struct {
		entry    fakeEntry
		distance float32
	}

	queryTerms := strings.Fields(strings.ToLower(queryText))
	ranked := make([]scored, 0, len(c.entries))
	for _, entry := range c.entries {
		ranked = append(ranked, scored{entry: entry, distance: termDistance(queryTerms, entry.document)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].distance < ranked[j].distance })
	if len(ranked) > nResults {
		ranked = ranked[:nResults]
	}

	var out vectorDB.QueryResult
	for _, r := range ranked {
		out.Documents = append(out.Documents, r.entry.document)
		out.Metadatas = append(out.Metadatas, r.entry.metadata)
		out.Distances = append(out.Distances, r.distance)
	}
	return out, nil
}

// termDistance maps term overlap onto the cosine-distance domain: full
// overlap -> 0, none -> 2.
func termDistance(queryTerms []string, document string) float32 {
	if len(queryTerms) == 0 {
		return 2
	}
	doc := strings.ToLower(document)
	matches := 0
	for _, term := range queryTerms {
		if strings.Contains(doc, term) {
			matches++
		}
	}
	return 2 * (1 - float32(matches)/float32(len(queryTerms)))
}
