// Package conversation holds per-session chat memory. A History is
// append-only (clear excepted), in-memory, and dies with the session.
package conversation

import (
	"sync"

	"github.com/researchkit/researcherAPI/internal/domain/docModel"
)

type History struct {
	mu    sync.RWMutex
	turns []docModel.ConversationTurn
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Append(turn docModel.ConversationTurn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
}

// Recent returns the last n turns in original order. n larger than the
// history returns everything.
func (h *History) Recent(n int) []docModel.ConversationTurn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 || len(h.turns) == 0 {
		return nil
	}
	start := len(h.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]docModel.ConversationTurn, len(h.turns)-start)
	copy(out, h.turns[start:])
	return out
}

func (h *History) All() []docModel.ConversationTurn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]docModel.ConversationTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
