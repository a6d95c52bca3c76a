package controllers

import (
	"time"

	budge_uuid "github.com/budgeapp/backend/internal/uuid"
)

type URIID struct {
	ID budge_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// MessageResponse carries a human readable confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"category deleted"`
}

// Pagination is part of every list response.
type Pagination struct {
	Page  int   `json:"page"`  // 1-based page that was returned
	Limit int   `json:"limit"` // Requested page size
	Total int64 `json:"total"` // Total number of matching resources
	Pages int64 `json:"pages"` // Total number of pages
}

// DateRangeQuery restricts an operation to dates in [StartDate, EndDate].
type DateRangeQuery struct {
	StartDate time.Time `form:"startDate" time_format:"2006-01-02" time_utc:"1" example:"2025-01-01"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02" time_utc:"1" example:"2025-01-31"`
}
