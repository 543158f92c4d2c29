package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/researchkit/researcherAPI/internal/adapter"
	"github.com/researchkit/researcherAPI/internal/api"
	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.ToErrorResponse(httpCode, message))
}

func validateContext(ctx context.Context) bool {
	log := logRH
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		log = log.With("traceId", trace)
	}
	if ctx.Err() != nil {
		log.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		log.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func credentialFrom(r *http.Request) string {
	return r.Header.Get("X-API-Key")
}

func decodeSearchRequest(w http.ResponseWriter, r *http.Request) (api.SearchRequest, bool) {
	var requestData api.SearchRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the Search handler reader :", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Search Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return api.SearchRequest{}, false
	}
	return requestData, true
}

// readUploads pulls every file under the "documents" field into memory.
// Ingestion is synchronous, nothing is spooled to disk.
func readUploads(r *http.Request) ([]docModel.FileUpload, string) {
	if r.MultipartForm == nil || len(r.MultipartForm.File["documents"]) == 0 {
		return nil, "at least one file is required under the documents field"
	}

	var uploads []docModel.FileUpload
	for _, header := range r.MultipartForm.File["documents"] {
		fileReader, err := header.Open()
		if err != nil {
			return nil, "Could not retrieve file " + header.Filename
		}

		data, err := io.ReadAll(fileReader)
		closeErr := fileReader.Close()
		if err != nil {
			return nil, "Could not read file " + header.Filename
		}
		if closeErr != nil {
			logRH.Error("Couldn't close uploaded file reader :", closeErr)
		}

		uploads = append(uploads, docModel.FileUpload{
			Name: header.Filename,
			Data: data,
		})
	}
	return uploads, ""
}
