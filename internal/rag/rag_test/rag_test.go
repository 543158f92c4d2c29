package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/data/store"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/rag"
)

func testContext() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func newTestService(completer *MockCompleter) (rag.Service, *FakeVectorStore) {
	fakeStore := NewFakeVectorStore()
	s := rag.NewService(&MockExtractor{}, fakeStore, completer, store.InitSessionStore())
	return s, fakeStore
}

func mustIngest(t *testing.T, s rag.Service, name, content string) docModel.IngestReport {
	t.Helper()
	report := s.IngestDocuments(testContext(), []docModel.FileUpload{
		{Name: name, Data: []byte(content)},
	})
	if report.ValidFiles != 1 {
		t.Fatalf("ingest of %s failed: %+v", name, report.Outcomes)
	}
	return report
}

func TestSearch_BeforeAnyIngest(t *testing.T) {
	s, _ := newTestService(&MockCompleter{})

	_, err := s.Search(testContext(), "anything", 5, "")

	if !errors.Is(err, ragErrors.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestIngestThenSearch_FullFlow(t *testing.T) {
	s, _ := newTestService(&MockCompleter{})

	content := strings.Repeat("Hello world. ", 200) //well past one chunk
	report := mustIngest(t, s, "greetings.pdf", content)

	if report.TotalChunks < 2 {
		t.Fatalf("expected multiple chunks, got %d", report.TotalChunks)
	}

	result, err := s.Search(testContext(), "hello world", 3, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !strings.Contains(result, "greetings.pdf") {
		t.Errorf("results missing source attribution: %q", result)
	}
	if !strings.Contains(result, "% match]") {
		t.Errorf("results missing similarity: %q", result)
	}
	if strings.Contains(result, "0.0% match") {
		t.Errorf("matching document scored zero similarity: %q", result)
	}
	if strings.Contains(result, "=== AI Analysis ===") {
		t.Error("search without credential produced an AI section")
	}
}

func TestSearch_WithCredentialEnhances(t *testing.T) {
	completer := &MockCompleter{
		OnComplete: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			if credential != "key-123" {
				t.Errorf("credential got %q", credential)
			}
			return "these results describe greetings", nil
		},
	}
	s, _ := newTestService(completer)
	mustIngest(t, s, "greetings.pdf", "Hello world, a short note about greetings.")

	result, err := s.Search(testContext(), "greetings", 3, "key-123")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !strings.Contains(result, "=== AI Analysis ===") {
		t.Errorf("enhanced search missing analysis section: %q", result)
	}
	if !strings.Contains(result, "these results describe greetings") {
		t.Errorf("completion missing from result: %q", result)
	}
}

func TestComprehensiveSearch_RequiresKey(t *testing.T) {
	s, _ := newTestService(&MockCompleter{})
	mustIngest(t, s, "doc.pdf", "Indexed content about research methods.")

	_, err := s.ComprehensiveSearch(testContext(), "research methods", 5, "")

	var inputErr *ragErrors.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestComprehensiveSearch_FullFlow(t *testing.T) {
	var sawPrompt string
	completer := &MockCompleter{
		OnComplete: func(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error) {
			sawPrompt = userPrompt
			return "structured analysis", nil
		},
	}
	s, _ := newTestService(completer)
	mustIngest(t, s, "methods.pdf", "A detailed survey of research methods in biology.")

	result, err := s.ComprehensiveSearch(testContext(), "research methods", 5, "key-123")
	if err != nil {
		t.Fatalf("ComprehensiveSearch failed: %v", err)
	}

	if !strings.HasPrefix(result, "structured analysis") {
		t.Errorf("result got %q", result)
	}
	if !strings.Contains(result, "Based on") || !strings.Contains(result, "source document(s).") {
		t.Errorf("retrieval stats missing: %q", result)
	}
	if !strings.Contains(sawPrompt, "methods.pdf") {
		t.Error("prompt missing source attribution")
	}
}

func TestChat_SessionFlow(t *testing.T) {
	s, _ := newTestService(&MockCompleter{})
	mustIngest(t, s, "doc.pdf", "Document content about the solar system and planets.")

	ctx := testContext()

	response, history, err := s.Chat(ctx, "chat-1", "tell me about planets", 5, "key-123")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if response == "" {
		t.Fatal("empty chat response")
	}
	if len(history) != 1 {
		t.Fatalf("history has %d turns after first message, want 1", len(history))
	}

	_, history, err = s.Chat(ctx, "chat-1", "and the moons?", 5, "key-123")
	if err != nil {
		t.Fatalf("second Chat failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d turns after second message, want 2", len(history))
	}
	if history[0].UserMessage != "tell me about planets" {
		t.Errorf("history order wrong: %+v", history)
	}

	s.ClearChat(ctx, "chat-1")

	_, history, err = s.Chat(ctx, "chat-1", "starting fresh", 5, "key-123")
	if err != nil {
		t.Fatalf("Chat after clear failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history has %d turns after clear, want 1", len(history))
	}
}

func TestChat_SessionsAreIsolated(t *testing.T) {
	s, _ := newTestService(&MockCompleter{})
	mustIngest(t, s, "doc.pdf", "Shared indexed content.")

	ctx := testContext()

	if _, _, err := s.Chat(ctx, "chat-a", "first question", 5, "key-123"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	_, history, err := s.Chat(ctx, "chat-b", "unrelated question", 5, "key-123")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("chat-b sees %d turns, want its own 1", len(history))
	}
}
