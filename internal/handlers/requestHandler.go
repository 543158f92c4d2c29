package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/researchkit/researcherAPI/internal/adapter"
	"github.com/researchkit/researcherAPI/internal/adapter/utils"
	"github.com/researchkit/researcherAPI/internal/api"
	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/data/store"
	"github.com/researchkit/researcherAPI/internal/rag"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

var (
	ragService rag.Service
	reports    store.ReportStore
)

// Init hands the handler package its collaborators. Must run before the
// router starts serving.
func Init(service rag.Service, reportStore store.ReportStore) {
	logRH = logger_i.NewLogger("Handlers")
	ragService = service
	reports = reportStore
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostIngestHandler handles the uploading of PDF documents for indexing.
// @Summary      Upload documents for ingestion
// @Description  Receives one or more PDF files via multipart/form-data, chunks and indexes them synchronously, and returns a per-file report.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        documents  formData  file  true  "The PDF file(s) to upload"
// @Success      200  {object}  api.IngestResponse  "Per-file ingest report"
// @Failure      400  {object}  api.ErrorResponse   "Missing files or upload too large"
// @Router       /documents [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
			return
		}

		uploads, errString := readUploads(r)
		if errString != "" {
			WriteErrorResponse(w, http.StatusBadRequest, errString)
			return
		}

		report := ragService.IngestDocuments(r.Context(), uploads)

		reportId := utils.GetNewUUID()
		if reports != nil {
			if err := reports.SaveReport(r.Context(), reportId, report); err != nil {
				logRH.Error("Couldn't persist ingest report", "report Id", reportId, "error", err)
			}
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToIngestResponse(reportId, report))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetReportHandler godoc
// @Summary      Get an ingest report
// @Description  Retrieves a previously returned ingest report by its ID.
// @Tags         Ingestion
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  docModel.IngestReport  "The stored report"
// @Failure      404  {object}  api.ErrorResponse      "Report not found or expired"
// @Router       /reports/{id} [get]
func GetReportHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")

		logRH.Debug("Get Report Request:", "URL path", r.URL.Path)
		if reports == nil {
			WriteErrorResponse(w, http.StatusNotFound, "Report not found")
			return
		}

		report, found := reports.GetReport(r.Context(), idString)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, "Report not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, report)
	}
}

// SearchHandler godoc
// @Summary      Search the indexed documents
// @Description  Runs a similarity search and returns a formatted result list. With an X-API-Key header the list is followed by an AI analysis; without one the raw results come back unchanged.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header    string             false  "LLM provider credential"
// @Param        request    body      api.SearchRequest  true   "Search query and optional result count"
// @Success      200  {object}  api.SearchResponse  "Formatted search results"
// @Failure      400  {object}  api.ErrorResponse   "Empty query"
// @Failure      409  {object}  api.ErrorResponse   "No documents ingested yet"
// @Router       /search [post]
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		requestData, ok := decodeSearchRequest(w, r)
		if !ok {
			return
		}

		result, err := ragService.Search(r.Context(), requestData.Query, requestData.MaxResults, credentialFrom(r))
		if err != nil {
			logRH.Warn("Search failed", "error", err)
			WriteErrorResponse(w, adapter.HttpStatusFor(err), err.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(requestData.Query, result))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// ComprehensiveSearchHandler godoc
// @Summary      Comprehensive AI answer over the indexed documents
// @Description  Retrieves an expanded result set and synthesizes a structured answer. Requires an X-API-Key header.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header    string             true  "LLM provider credential"
// @Param        request    body      api.SearchRequest  true  "Search query and optional result count"
// @Success      200  {object}  api.SearchResponse  "Synthesized answer with retrieval stats"
// @Failure      400  {object}  api.ErrorResponse   "Empty query or missing credential"
// @Failure      409  {object}  api.ErrorResponse   "No documents ingested yet"
// @Failure      502  {object}  api.ErrorResponse   "LLM provider failure"
// @Router       /search/comprehensive [post]
func ComprehensiveSearchHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		requestData, ok := decodeSearchRequest(w, r)
		if !ok {
			return
		}

		result, err := ragService.ComprehensiveSearch(r.Context(), requestData.Query, requestData.MaxResults, credentialFrom(r))
		if err != nil {
			logRH.Warn("Comprehensive search failed", "error", err)
			WriteErrorResponse(w, adapter.HttpStatusFor(err), err.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(requestData.Query, result))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// ChatHandler godoc
// @Summary      Conversational question over the indexed documents
// @Description  Answers a message in the context of a chat session. Omitting chat_id starts a new session; the response carries the id to continue it.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header    string           true  "LLM provider credential"
// @Param        request    body      api.ChatRequest  true  "Chat message and optional chat ID"
// @Success      200  {object}  api.ChatResponse   "The assistant response and session history"
// @Failure      400  {object}  api.ErrorResponse  "Empty message or missing credential"
// @Failure      409  {object}  api.ErrorResponse  "No documents ingested yet"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.ChatRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Chat handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Message == "" {
			logRH.Warn("Bad Chat Request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
			return
		}

		chatId := requestData.ChatId
		if chatId == "" {
			chatId = utils.GetNewUUID()
			logRH.Debug(" New Chat request : ", "chatId:", chatId)
		}

		response, history, err := ragService.Chat(request.Context(), chatId, requestData.Message, requestData.MaxResults, credentialFrom(request))
		if err != nil {
			logRH.Warn("Chat failed", "chatId:", chatId, "error", err)
			WriteErrorResponse(w, adapter.HttpStatusFor(err), err.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(chatId, response, history))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// ClearChatHandler godoc
// @Summary      Clear a chat session
// @Description  Discards the stored turns of a session. The chat ID stays usable afterwards.
// @Tags         Chat
// @Param        id  path  string  true  "Chat ID"
// @Success      204  "Session cleared"
// @Failure      400  {object}  api.ErrorResponse  "Missing chat ID"
// @Router       /chat/{id} [delete]
func ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		if idString == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "chat id is required")
			return
		}

		ragService.ClearChat(r.Context(), idString)
		w.WriteHeader(http.StatusNoContent)
	}
}
