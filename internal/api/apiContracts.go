package api

import "github.com/researchkit/researcherAPI/internal/domain/docModel"

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"empty search query"`
}

type IngestResponse struct {
	ReportId string                `json:"report_id"`
	Report   docModel.IngestReport `json:"report"`
}

type SearchResponse struct {
	Query   string `json:"query"`
	Results string `json:"results"`
}

type ChatResponse struct {
	ChatId   string                      `json:"chat_id"`
	Response string                      `json:"response"`
	History  []docModel.ConversationTurn `json:"history"`
}

// requests---------------------

type SearchRequest struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"max_results,omitempty"`
}

type ChatRequest struct {
	ChatId     string `json:"chat_id,omitempty"`
	Message    string `json:"message" validate:"required"`
	MaxResults int    `json:"max_results,omitempty"`
}
