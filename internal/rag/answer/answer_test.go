package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/rag/conversation"
	"github.com/researchkit/researcherAPI/internal/rag/retriever"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB"
)

// --- Mocks ---

type mockCompleter struct {
	completeFunc func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error)
	lastPrompt   string
}

func (m *mockCompleter) Complete(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
	m.lastPrompt = userPrompt
	if m.completeFunc == nil {
		return "generated answer", nil
	}
	return m.completeFunc(ctx, credential, systemPrompt, userPrompt)
}

type mockCollection struct {
	result vectorDB.QueryResult
	err    error
}

func (m *mockCollection) Add(ctx context.Context, ids []string, documents []string, metadatas []map[string]any) error {
	return nil
}

func (m *mockCollection) Query(ctx context.Context, queryText string, nResults int) (vectorDB.QueryResult, error) {
	return m.result, m.err
}

type mockStore struct {
	collection vectorDB.Collection
}

func (m *mockStore) GetOrCreateCollection(ctx context.Context, name string) (vectorDB.Collection, error) {
	return m.collection, nil
}

func (m *mockStore) Collection(ctx context.Context, name string) (vectorDB.Collection, error) {
	return m.collection, nil
}

type mockAnswerCache struct {
	cachedFunc func(ctx context.Context, query string) (string, bool, error)
	saveFunc   func(ctx context.Context, query string, answer string) error
}

func (m *mockAnswerCache) CachedAnswer(ctx context.Context, query string) (string, bool, error) {
	if m.cachedFunc == nil {
		return "", false, nil
	}
	return m.cachedFunc(ctx, query)
}

func (m *mockAnswerCache) SaveAnswer(ctx context.Context, query string, answer string) error {
	if m.saveFunc == nil {
		return nil
	}
	return m.saveFunc(ctx, query, answer)
}

func singleHit() vectorDB.QueryResult {
	return vectorDB.QueryResult{
		Documents: []string{"Photosynthesis converts light into chemical energy."},
		Metadatas: []map[string]any{{
			"chunk_id":     "deadbeef_para_0",
			"source_file":  "plants.pdf",
			"chunk_index":  int64(0),
			"total_chunks": int64(1),
		}},
		Distances: []float32{0.3},
	}
}

func newTestAnswerer(coll *mockCollection, completer *mockCompleter, opts ...Option) *Answerer {
	ret := retriever.New(&mockStore{collection: coll}, "docs")
	return New(ret, completer, opts...)
}

// --- Unit Tests ---

func TestEnhance_NoCredentialPassthrough(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			t.Fatal("completer must not be called without a credential")
			return "", nil
		},
	}
	a := newTestAnswerer(&mockCollection{}, completer)

	raw := "Found 2 relevant passage(s) for: \"energy\"\n..."
	got := a.Enhance(context.Background(), raw, "")

	if got != raw {
		t.Errorf("raw results modified without credential:\ngot  %q\nwant %q", got, raw)
	}
}

func TestEnhance_AppendsAnalysis(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			return "summary of findings", nil
		},
	}
	a := newTestAnswerer(&mockCollection{}, completer)

	got := a.Enhance(context.Background(), "raw body", "key-123")

	want := "raw body" + enhancementHeader + "summary of findings"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEnhance_FailureKeepsRawResults(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			return "", &ragErrors.ApiError{Provider: "gemini", Err: errors.New("quota exceeded")}
		},
	}
	a := newTestAnswerer(&mockCollection{}, completer)

	got := a.Enhance(context.Background(), "raw body", "key-123")

	if !strings.HasPrefix(got, "raw body") {
		t.Error("raw results dropped on enhancement failure")
	}
	if !strings.Contains(got, "AI enhancement unavailable") {
		t.Errorf("missing failure notice: %q", got)
	}
}

func TestComprehensive_RequiresCredential(t *testing.T) {
	a := newTestAnswerer(&mockCollection{result: singleHit()}, &mockCompleter{})

	_, err := a.Comprehensive(context.Background(), "how do plants eat", 5, "")

	var inputErr *ragErrors.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestComprehensive_NoResults(t *testing.T) {
	a := newTestAnswerer(&mockCollection{}, &mockCompleter{})

	got, err := a.Comprehensive(context.Background(), "unindexed topic", 5, "key-123")
	if err != nil {
		t.Fatalf("Comprehensive failed: %v", err)
	}
	want := `No relevant documents found for: "unindexed topic"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestComprehensive_AppendsRetrievalStats(t *testing.T) {
	completer := &mockCompleter{}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, completer)

	got, err := a.Comprehensive(context.Background(), "how do plants eat", 5, "key-123")
	if err != nil {
		t.Fatalf("Comprehensive failed: %v", err)
	}
	if !strings.HasPrefix(got, "generated answer") {
		t.Errorf("completion missing from response: %q", got)
	}
	if !strings.Contains(got, "Based on 1 passage(s) from 1 source document(s).") {
		t.Errorf("retrieval stats missing: %q", got)
	}
	if !strings.Contains(completer.lastPrompt, "plants.pdf") {
		t.Error("prompt missing source attribution")
	}
}

func TestComprehensive_ProviderErrorPropagates(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			return "", &ragErrors.ApiError{Provider: "openai", Err: errors.New("503")}
		},
	}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, completer)

	_, err := a.Comprehensive(context.Background(), "how do plants eat", 5, "key-123")

	var apiErr *ragErrors.ApiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected ApiError, got %v", err)
	}
}

func TestComprehensive_CacheHitSkipsCompletion(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			t.Fatal("completer must not be called on a cache hit")
			return "", nil
		},
	}
	cache := &mockAnswerCache{
		cachedFunc: func(ctx context.Context, query string) (string, bool, error) {
			return "previously generated answer", true, nil
		},
	}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, completer, WithAnswerCache(cache))

	got, err := a.Comprehensive(context.Background(), "how do plants eat", 5, "key-123")
	if err != nil {
		t.Fatalf("Comprehensive failed: %v", err)
	}
	if got != "previously generated answer" {
		t.Errorf("got %q, want the cached answer", got)
	}
}

func TestComprehensive_CacheMissSavesAnswer(t *testing.T) {
	var savedQuery, savedAnswer string
	cache := &mockAnswerCache{
		saveFunc: func(ctx context.Context, query string, answer string) error {
			savedQuery, savedAnswer = query, answer
			return nil
		},
	}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, &mockCompleter{}, WithAnswerCache(cache))

	got, err := a.Comprehensive(context.Background(), "how do plants eat", 5, "key-123")
	if err != nil {
		t.Fatalf("Comprehensive failed: %v", err)
	}
	if savedQuery != "how do plants eat" {
		t.Errorf("cache saved under query %q", savedQuery)
	}
	if savedAnswer != got {
		t.Error("cached answer differs from the returned answer")
	}
}

func TestComprehensive_CacheFailureIsAMiss(t *testing.T) {
	cache := &mockAnswerCache{
		cachedFunc: func(ctx context.Context, query string) (string, bool, error) {
			return "", false, errors.New("cache backend down")
		},
		saveFunc: func(ctx context.Context, query string, answer string) error {
			return errors.New("cache backend down")
		},
	}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, &mockCompleter{}, WithAnswerCache(cache))

	got, err := a.Comprehensive(context.Background(), "how do plants eat", 5, "key-123")
	if err != nil {
		t.Fatalf("cache failure must not surface: %v", err)
	}
	if !strings.HasPrefix(got, "generated answer") {
		t.Errorf("got %q, want a freshly generated answer", got)
	}
}

func TestConverse_NeverTouchesCache(t *testing.T) {
	cache := &mockAnswerCache{
		cachedFunc: func(ctx context.Context, query string) (string, bool, error) {
			t.Error("conversational mode looked up the answer cache")
			return "", false, nil
		},
		saveFunc: func(ctx context.Context, query string, answer string) error {
			t.Error("conversational mode wrote to the answer cache")
			return nil
		},
	}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, &mockCompleter{}, WithAnswerCache(cache))

	if _, err := a.Converse(context.Background(), conversation.NewHistory(), "question", 5, "key-123"); err != nil {
		t.Fatalf("Converse failed: %v", err)
	}
}

func TestConverse_RequiresCredential(t *testing.T) {
	a := newTestAnswerer(&mockCollection{result: singleHit()}, &mockCompleter{})

	_, err := a.Converse(context.Background(), conversation.NewHistory(), "hello", 5, "")

	var inputErr *ragErrors.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestConverse_RecordsTurns(t *testing.T) {
	a := newTestAnswerer(&mockCollection{result: singleHit()}, &mockCompleter{})
	history := conversation.NewHistory()

	response, err := a.Converse(context.Background(), history, "what is photosynthesis", 5, "key-123")
	if err != nil {
		t.Fatalf("Converse failed: %v", err)
	}

	turns := history.All()
	if len(turns) != 1 {
		t.Fatalf("history has %d turns, want 1", len(turns))
	}
	if turns[0].UserMessage != "what is photosynthesis" {
		t.Errorf("UserMessage got %q", turns[0].UserMessage)
	}
	if turns[0].AssistantResponse != response {
		t.Error("recorded response differs from returned response")
	}
}

func TestConverse_FailureRecordedInHistory(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			return "", &ragErrors.ApiError{Provider: "gemini", Err: errors.New("timeout")}
		},
	}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, completer)
	history := conversation.NewHistory()

	response, err := a.Converse(context.Background(), history, "question", 5, "key-123")
	if err != nil {
		t.Fatalf("failure should land in the response, not the error: %v", err)
	}
	if !strings.Contains(response, "Answer generation failed") {
		t.Errorf("response got %q", response)
	}

	turns := history.All()
	if len(turns) != 1 {
		t.Fatalf("failed turn not recorded, history has %d turns", len(turns))
	}
	if turns[0].AssistantResponse != response {
		t.Error("recorded failure differs from returned response")
	}
}

func TestConverse_FoldsRecentHistoryOnly(t *testing.T) {
	completer := &mockCompleter{}
	a := newTestAnswerer(&mockCollection{result: singleHit()}, completer, WithHistoryWindow(2))
	history := conversation.NewHistory()
	history.Append(docModel.ConversationTurn{UserMessage: "oldest question", AssistantResponse: "r1"})
	history.Append(docModel.ConversationTurn{UserMessage: "middle question", AssistantResponse: "r2"})
	history.Append(docModel.ConversationTurn{UserMessage: "newest question", AssistantResponse: "r3"})

	if _, err := a.Converse(context.Background(), history, "follow up", 5, "key-123"); err != nil {
		t.Fatalf("Converse failed: %v", err)
	}

	if strings.Contains(completer.lastPrompt, "oldest question") {
		t.Error("prompt includes turns beyond the history window")
	}
	if !strings.Contains(completer.lastPrompt, "middle question") || !strings.Contains(completer.lastPrompt, "newest question") {
		t.Error("prompt missing recent turns")
	}
}

func TestConverse_NoResultsStillRecorded(t *testing.T) {
	a := newTestAnswerer(&mockCollection{}, &mockCompleter{})
	history := conversation.NewHistory()

	response, err := a.Converse(context.Background(), history, "nothing indexed", 5, "key-123")
	if err != nil {
		t.Fatalf("Converse failed: %v", err)
	}
	if !strings.Contains(response, "No relevant documents found") {
		t.Errorf("response got %q", response)
	}
	if history.Len() != 1 {
		t.Errorf("empty-result turn not recorded, history has %d turns", history.Len())
	}
}
