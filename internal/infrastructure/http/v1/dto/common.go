// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"fmt"

	"jobdesk/internal/core/id"
)

// --- Pagination ---

// PageMeta contains pagination metadata for list responses.
type PageMeta struct {
	PerPage     int `json:"perPage"`
	CurrentPage int `json:"currentPage"`
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
}

// NewPageMeta builds pagination metadata from a page window and total count.
func NewPageMeta(perPage, currentPage, totalCount int) PageMeta {
	totalPages := 0
	if perPage > 0 {
		totalPages = totalCount / perPage
		if totalCount%perPage > 0 {
			totalPages++
		}
	}
	return PageMeta{
		PerPage:     perPage,
		CurrentPage: currentPage,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
	}
}

// ContentRange renders the page window as a Content-Range header value,
// e.g. "organizations 0-9/42". An empty page renders as "organizations */42".
func ContentRange(unit string, offset, count, total int) string {
	if count == 0 {
		return fmt.Sprintf("%s */%d", unit, total)
	}
	return fmt.Sprintf("%s %d-%d/%d", unit, offset, offset+count-1, total)
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
