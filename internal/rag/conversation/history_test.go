package conversation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/researchkit/researcherAPI/internal/domain/docModel"
)

func TestHistory_RecentReturnsLastNInOrder(t *testing.T) {
	h := NewHistory()
	for i := 1; i <= 5; i++ {
		h.Append(docModel.ConversationTurn{
			UserMessage:       fmt.Sprintf("q%d", i),
			AssistantResponse: fmt.Sprintf("a%d", i),
		})
	}

	recent := h.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("Recent(3) returned %d turns", len(recent))
	}
	for i, want := range []string{"q3", "q4", "q5"} {
		if recent[i].UserMessage != want {
			t.Errorf("recent[%d] got %s, want %s", i, recent[i].UserMessage, want)
		}
	}
}

func TestHistory_RecentBeyondLength(t *testing.T) {
	h := NewHistory()
	h.Append(docModel.ConversationTurn{UserMessage: "only"})

	if got := h.Recent(10); len(got) != 1 {
		t.Errorf("Recent(10) returned %d turns, want 1", len(got))
	}
	if got := h.Recent(0); got != nil {
		t.Errorf("Recent(0) returned %v, want nil", got)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	h.Append(docModel.ConversationTurn{UserMessage: "q"})
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len after Clear got %d, want 0", h.Len())
	}

	// Cleared history stays usable.
	h.Append(docModel.ConversationTurn{UserMessage: "again"})
	if h.Len() != 1 {
		t.Errorf("Len after re-append got %d, want 1", h.Len())
	}
}

func TestHistory_CopiesAreIndependent(t *testing.T) {
	h := NewHistory()
	h.Append(docModel.ConversationTurn{UserMessage: "original"})

	all := h.All()
	all[0].UserMessage = "mutated"

	if h.All()[0].UserMessage != "original" {
		t.Error("mutating the returned slice changed the stored history")
	}
}

func TestHistory_ConcurrentAppend(t *testing.T) {
	h := NewHistory()

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			h.Append(docModel.ConversationTurn{UserMessage: "m"})
			_ = h.Recent(3)
		}()
	}
	wg.Wait()

	if h.Len() != writers {
		t.Errorf("Len got %d, want %d", h.Len(), writers)
	}
}
