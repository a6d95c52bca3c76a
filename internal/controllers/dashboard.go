package controllers

import (
	"net/http"
	"time"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/ledger"
	"github.com/budgeapp/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// trendMonths is the number of calendar months in the dashboard trend.
const trendMonths = 6

type DashboardResponse struct {
	Analytics Analytics            `json:"analytics"`
	Trend     []ledger.MonthBucket `json:"trend"`
}

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns aggregate figures and the six month trend for the caller's transactions
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			startDate	query	string	false	"Only transactions on or after this date (YYYY-MM-DD)"
// @Param			endDate		query	string	false	"Only transactions on or before this date (YYYY-MM-DD)"
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidQuery.Error()})
		return
	}

	from, to, err := bindDateRange(query)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	analytics, _, _, err := analyticsForUser(auth.UserID(c), from, to)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// The trend always covers the last six months regardless of the
	// requested range.
	transactions, err := models.TransactionsForUser(models.DB, auth.UserID(c), models.TransactionFilter{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Analytics: analytics,
		Trend:     ledger.MonthlyTrend(transactions, trendMonths, time.Now()),
	})
}
