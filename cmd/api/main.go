// @title           Researcher RAG API
// @version         1.0
// @description     This API ingests PDF documents, indexes them in a vector store, and answers questions over them with retrieval augmented generation.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/data/store"
	"github.com/researchkit/researcherAPI/internal/handlers"
	"github.com/researchkit/researcherAPI/internal/rag"
	"github.com/researchkit/researcherAPI/internal/rag/embedding/googleEmbedding"
	"github.com/researchkit/researcherAPI/internal/rag/ingest"
	"github.com/researchkit/researcherAPI/internal/rag/llm"
	"github.com/researchkit/researcherAPI/internal/rag/llm/gemini"
	"github.com/researchkit/researcherAPI/internal/rag/llm/openaiLLM"
	"github.com/researchkit/researcherAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/researchkit/researcherAPI/internal/server"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

var listenAddr string

func main() {

	_ = godotenv.Load()

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	if embeddingService == nil {
		logger.Error("Embedding service failed to initialize. Shutting down.")
		return
	}

	vectorStore := qdrantDB.GetQdrantStore(serviceContext, embeddingService)
	if vectorStore == nil {
		logger.Error("Vector store failed to initialize. Shutting down.")
		return
	}

	var completer llm.Completer
	switch config.LLMProvider() {
	case "openai":
		completer = openaiLLM.NewCompleter(config.OpenAIModelName)
	default:
		completer = gemini.NewCompleter(config.GeminiModelName)
	}

	var reportStore store.ReportStore
	if redisReports := store.GetRedisReportStore(serviceContext); redisReports != nil {
		reportStore = redisReports
	} else if config.FALLBACK_REDIS_TO_INTERNALSTORE {
		logger.Error("Redis report store is offline")
		reportStore = store.InitInMemoryReportStore()
	} else {
		logger.Error("Redis report store is offline. Shutting down.")
		return
	}

	ragService := rag.NewService(ingest.NewPDFExtractor(), vectorStore, completer, store.InitSessionStore())

	handlers.Init(ragService, reportStore)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
