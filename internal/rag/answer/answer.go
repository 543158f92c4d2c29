// Package answer composes prompts from retrieved passages and drives
// the completion capability: single-shot enhancement, comprehensive
// analysis, and conversational mode with session memory.
package answer

import (
	"context"
	"fmt"
	"time"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
	"github.com/researchkit/researcherAPI/internal/metrics"
	"github.com/researchkit/researcherAPI/internal/rag/conversation"
	"github.com/researchkit/researcherAPI/internal/rag/llm"
	"github.com/researchkit/researcherAPI/internal/rag/retriever"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

const enhancementHeader = "\n\n=== AI Analysis ===\n"

type Answerer struct {
	retriever     *retriever.Retriever
	completer     llm.Completer
	cache         vectorDB.AnswerCache
	historyWindow int
	logger        *logger_i.Logger
}

type Option func(*Answerer)

// WithHistoryWindow overrides how many prior turns fold into the
// conversational prompt.
func WithHistoryWindow(n int) Option {
	return func(a *Answerer) {
		if n > 0 {
			a.historyWindow = n
		}
	}
}

// WithAnswerCache enables semantic answer caching for the comprehensive
// mode. Conversational answers are never cached; they depend on session
// history.
func WithAnswerCache(cache vectorDB.AnswerCache) Option {
	return func(a *Answerer) {
		a.cache = cache
	}
}

func New(ret *retriever.Retriever, completer llm.Completer, opts ...Option) *Answerer {
	a := &Answerer{
		retriever:     ret,
		completer:     completer,
		historyWindow: config.ChatHistoryWindow,
		logger:        logger_i.NewLogger("Answerer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Enhance appends an AI analysis section to already-formatted search
// results. Without a credential the raw results pass through untouched;
// enhancement is additive, never required. A completion failure appends
// an explicit notice instead of silently dropping the section.
func (a *Answerer) Enhance(ctx context.Context, rawResults, credential string) string {
	if credential == "" {
		return rawResults
	}

	completion, err := a.complete(ctx, credential, enhancePrompt(rawResults))
	if err != nil {
		a.logger.Warn("enhancement failed, returning raw results", "error", err)
		return rawResults + enhancementHeader + fmt.Sprintf("AI enhancement unavailable: %v", err)
	}
	return rawResults + enhancementHeader + completion
}

// Comprehensive runs the expanded-retrieval structured analysis. The
// credential is required here; unlike Enhance there is no graceful
// fallback.
func (a *Answerer) Comprehensive(ctx context.Context, query string, maxResults int, credential string) (string, error) {
	if credential == "" {
		return "", ragErrors.NewInputError("comprehensive search requires an API key")
	}

	if cached, found := a.cachedAnswer(ctx, query); found {
		return cached, nil
	}

	results, err := a.retrieveExpanded(ctx, query, maxResults)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("No relevant documents found for: %q", query), nil
	}

	completion, err := a.complete(ctx, credential, comprehensivePrompt(query, assembleContext(results)))
	if err != nil {
		return "", err
	}

	answer := completion + retrievalStats(results)
	a.saveAnswer(ctx, query, answer)
	return answer, nil
}

// cachedAnswer is best effort; a cache failure is a miss, never an
// error surfaced to the caller.
func (a *Answerer) cachedAnswer(ctx context.Context, query string) (string, bool) {
	if a.cache == nil {
		return "", false
	}
	answer, found, err := a.cache.CachedAnswer(ctx, query)
	if err != nil {
		a.logger.Warn("answer cache lookup failed", "error", err)
		return "", false
	}
	return answer, found
}

func (a *Answerer) saveAnswer(ctx context.Context, query, answer string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.SaveAnswer(ctx, query, answer); err != nil {
		a.logger.Warn("answer cache save failed", "error", err)
	}
}

// Converse answers within a session. The turn is recorded on success and
// on failure alike; a completion error lands in the history as the
// assistant side so the user sees it there too.
func (a *Answerer) Converse(ctx context.Context, history *conversation.History, message string, maxResults int, credential string) (string, error) {
	if credential == "" {
		return "", ragErrors.NewInputError("chat requires an API key")
	}

	results, err := a.retrieveExpanded(ctx, message, maxResults)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		response := fmt.Sprintf("No relevant documents found for: %q", message)
		history.Append(docModel.ConversationTurn{UserMessage: message, AssistantResponse: response})
		return response, nil
	}

	prompt := conversationalPrompt(message, assembleContext(results), history.Recent(a.historyWindow))
	completion, err := a.complete(ctx, credential, prompt)
	if err != nil {
		failure := fmt.Sprintf("Answer generation failed: %v", err)
		history.Append(docModel.ConversationTurn{UserMessage: message, AssistantResponse: failure})
		return failure, nil
	}

	response := completion + retrievalStats(results)
	history.Append(docModel.ConversationTurn{UserMessage: message, AssistantResponse: response})
	return response, nil
}

// retrieveExpanded fetches up to 2x the requested count (capped) for
// richer generation context.
func (a *Answerer) retrieveExpanded(ctx context.Context, query string, maxResults int) ([]docModel.RetrievedResult, error) {
	expanded := retriever.Clamp(maxResults) * 2
	if expanded > config.ComprehensiveResults {
		expanded = config.ComprehensiveResults
	}

	collection, err := a.retriever.SearchWide(ctx, query, expanded)
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (a *Answerer) complete(ctx context.Context, credential, userPrompt string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()
	return a.completer.Complete(ctx, credential, config.SystemPrompt, userPrompt)
}

func retrievalStats(results []docModel.RetrievedResult) string {
	return fmt.Sprintf("\n\n---\nBased on %d passage(s) from %d source document(s).",
		len(results), distinctSources(results))
}
