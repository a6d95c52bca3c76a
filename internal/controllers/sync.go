package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/banksync"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// defaultSyncDays is how far back a sync reaches when the caller does
// not specify a start date.
const defaultSyncDays = 30

// SyncRequest optionally narrows the imported date range.
type SyncRequest struct {
	StartDate time.Time `json:"startDate" example:"2025-01-01T00:00:00Z"`
	EndDate   time.Time `json:"endDate" example:"2025-01-31T00:00:00Z"`
}

type SyncResponse struct {
	Accounts int `json:"accounts"` // Number of bank accounts seen
	Imported int `json:"imported"` // Number of transactions created
	Skipped  int `json:"skipped"`  // Number of duplicates suppressed
}

// RegisterSyncRoutes registers the routes for bank sync with the
// RouterGroup that is passed.
func RegisterSyncRoutes(r *gin.RouterGroup, fetcher banksync.Fetcher) {
	r.OPTIONS("/bank", OptionsSyncBank)
	r.POST("/bank", func(c *gin.Context) { SyncBank(c, fetcher) })
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sync
// @Success		204
// @Router			/v1/sync/bank [options]
func OptionsSyncBank(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Sync bank transactions
// @Description	Imports transactions from the linked bank. Already imported transactions are skipped.
// @Tags			Sync
// @Accept			json
// @Produce		json
// @Success		200		{object}	SyncResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Failure		503		{object}	httpError
// @Param			sync	body		SyncRequest	false	"Date range, defaults to the last 30 days"
// @Router			/v1/sync/bank [post]
func SyncBank(c *gin.Context, fetcher banksync.Fetcher) {
	if fetcher == nil {
		c.JSON(http.StatusServiceUnavailable, httpError{Error: errSyncNotSet.Error()})
		return
	}

	var request SyncRequest
	err := httputil.BindData(c, &request)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if request.EndDate.IsZero() {
		request.EndDate = time.Now().UTC()
	}
	if request.StartDate.IsZero() {
		request.StartDate = request.EndDate.AddDate(0, 0, -defaultSyncDays)
	}
	if request.StartDate.After(request.EndDate) {
		c.JSON(http.StatusBadRequest, httpError{Error: errDateRangeInvalid.Error()})
		return
	}

	result, err := banksync.Import(c.Request.Context(), models.DB, auth.UserID(c), fetcher, request.StartDate, request.EndDate)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{
		Accounts: result.Accounts,
		Imported: result.Imported,
		Skipped:  result.Skipped,
	})
}
