package adapter

import (
	"errors"
	"net/http"

	"github.com/researchkit/researcherAPI/internal/api"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/internal/domain/ragErrors"
)

func ToIngestResponse(reportId string, report docModel.IngestReport) api.IngestResponse {
	return api.IngestResponse{
		ReportId: reportId,
		Report:   report,
	}
}

func ToSearchResponse(query, formatted string) api.SearchResponse {
	return api.SearchResponse{
		Query:   query,
		Results: formatted,
	}
}

func ToChatResponse(chatId, response string, history []docModel.ConversationTurn) api.ChatResponse {
	return api.ChatResponse{
		ChatId:   chatId,
		Response: response,
		History:  history,
	}
}

func ToErrorResponse(code int, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// HttpStatusFor maps the core error taxonomy onto status codes. Input
// mistakes are the caller's fault, an uninitialized store is a
// conflict-of-state, and everything else is upstream trouble.
func HttpStatusFor(err error) int {
	var inputErr *ragErrors.InputError
	var apiErr *ragErrors.ApiError

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, ragErrors.ErrNotInitialized):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
