package rag

import (
	"context"
	"time"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/data/store"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/internal/metrics"
	"github.com/researchkit/researcherAPI/internal/rag/answer"
	"github.com/researchkit/researcherAPI/internal/rag/chunker"
	"github.com/researchkit/researcherAPI/internal/rag/ingest"
	"github.com/researchkit/researcherAPI/internal/rag/llm"
	"github.com/researchkit/researcherAPI/internal/rag/retriever"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

// Service is the public contract of the core. The HTTP layer only ever
// talks to this interface; it does not need to know about the vector
// store, the extractor, or the completion provider behind it.
type Service interface {
	IngestDocuments(ctx context.Context, files []docModel.FileUpload) docModel.IngestReport
	Search(ctx context.Context, query string, maxResults int, credential string) (string, error)
	ComprehensiveSearch(ctx context.Context, query string, maxResults int, credential string) (string, error)
	Chat(ctx context.Context, chatId, message string, maxResults int, credential string) (string, []docModel.ConversationTurn, error)
	ClearChat(ctx context.Context, chatId string)
}

type service struct {
	ingestor  *ingest.Ingestor
	retriever *retriever.Retriever
	answerer  *answer.Answerer
	sessions  store.SessionStore
	logger    *logger_i.Logger
}

// NewService wires the pipeline: extractor -> chunker -> store on the
// write path, store -> retriever -> answerer on the read path.
func NewService(extractor ingest.TextExtractor, vectorStore vectorDB.Store, completer llm.Completer, sessions store.SessionStore) Service {
	splitter := chunker.New(config.ChunkMaxChars, config.ChunkOverlapChars)
	ret := retriever.New(vectorStore, config.CollectionName)

	// Stores that can also cache answers get the comprehensive-mode
	// semantic cache for free.
	var answerOpts []answer.Option
	if cache, ok := vectorStore.(vectorDB.AnswerCache); ok {
		answerOpts = append(answerOpts, answer.WithAnswerCache(cache))
	}

	return &service{
		ingestor:  ingest.New(extractor, splitter, vectorStore, config.CollectionName),
		retriever: ret,
		answerer:  answer.New(ret, completer, answerOpts...),
		sessions:  sessions,
		logger:    logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) IngestDocuments(ctx context.Context, files []docModel.FileUpload) docModel.IngestReport {
	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("ingest", time.Since(start)) }()

	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	log.Debug("ingesting batch", "files", len(files))
	return s.ingestor.Ingest(ctx, files)
}

// Search returns the formatted result list, AI-enhanced when a
// credential is supplied. Without one the raw formatted results come
// back unchanged.
func (s *service) Search(ctx context.Context, query string, maxResults int, credential string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("search", time.Since(start)) }()
	metrics.IncrementSearches("basic")

	results, err := s.retriever.Search(ctx, query, maxResults)
	if err != nil {
		return "", err
	}

	formatted := retriever.FormatResults(query, results)
	if len(results) == 0 {
		return formatted, nil
	}
	return s.answerer.Enhance(ctx, formatted, credential), nil
}

func (s *service) ComprehensiveSearch(ctx context.Context, query string, maxResults int, credential string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("comprehensive_search", time.Since(start)) }()
	metrics.IncrementSearches("comprehensive")

	return s.answerer.Comprehensive(ctx, query, maxResults, credential)
}

func (s *service) Chat(ctx context.Context, chatId, message string, maxResults int, credential string) (string, []docModel.ConversationTurn, error) {
	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("chat", time.Since(start)) }()
	metrics.IncrementSearches("chat")

	history := s.sessions.GetOrInitSession(ctx, chatId)
	response, err := s.answerer.Converse(ctx, history, message, maxResults, credential)
	if err != nil {
		return "", history.All(), err
	}
	return response, history.All(), nil
}

func (s *service) ClearChat(ctx context.Context, chatId string) {
	s.sessions.ClearSession(ctx, chatId)
}
