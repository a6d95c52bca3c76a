package controllers

import (
	"errors"
	"net/http"

	"github.com/budgeapp/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no category matching your query"`
}

// status returns the appropriate HTTP status for a domain error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errInvalidFormat    = errors.New("the format parameter must be json or csv")
	errSyncNotSet       = errors.New("bank sync is not configured on this server")
	errMessageEmpty     = errors.New("the message must not be empty")
	errDateRangeInvalid = errors.New("startDate must not be after endDate")
)
