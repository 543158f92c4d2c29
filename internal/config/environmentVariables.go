package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//chunking
	ChunkMaxChars     = 1000
	ChunkOverlapChars = 200

	//retrieval
	MinSearchResults     = 1
	MaxSearchResults     = 10
	ResultPreviewChars   = 500
	ComprehensiveResults = 20 //cap for the 2x expanded retrieval

	//conversation
	ChatHistoryWindow = 3

	//the single shared collection; passed explicitly through every call,
	//never read as a global by the core packages
	CollectionName = "pdf_documents"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second //completions are slow
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//vectorDB
	EmbeddingOutputDimensionality int32 = 1536
	QdrantHost                          = "127.0.0.1"
	QdrantGrpcPort                      = 6334
	QdrantUseTLS                        = false
	QdrantPoolSize                      = 1

	//semantic answer cache
	CacheCollectionName   = "semantic-cache"
	CacheSimilarityCutoff = 0.97

	//llm
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIModelName      = "gpt-4o-mini"

	SystemPrompt = "You are a research assistant. Answer strictly from the provided document excerpts. If the excerpts do not contain the answer, say so."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisReportStore                = 0
	RedisReportTTL                  = 24 * time.Hour
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, ingest reports live in memory

	//ingest
	MaxUploadBytes  = 32 << 20 //32mb
	IngestBatchSize = 100      //embedding APIs cap batch inputs
)

// LLMProvider selects the completion backend: "gemini" or "openai".
func LLMProvider() string {
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		return p
	}
	return "gemini"
}

func GoogleAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func QdrantAddr() (string, int) {
	host := os.Getenv("QDRANT_HOST")
	port, err := strconv.Atoi(os.Getenv("QDRANT_PORT"))
	if host == "" || err != nil {
		return QdrantHost, QdrantGrpcPort
	}
	return host, port
}
