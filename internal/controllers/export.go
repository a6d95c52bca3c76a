package controllers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExportResponse is the JSON bundle of all data the caller owns,
// together with the aggregate snapshot for the requested range.
type ExportResponse struct {
	ExportedAt   time.Time            `json:"exportedAt"`
	User         models.User          `json:"user"`
	Analytics    Analytics            `json:"analytics"`
	Transactions []models.Transaction `json:"transactions"`
	Categories   []models.Category    `json:"categories"`
	Accounts     json.RawMessage      `json:"accounts"`
	Settings     json.RawMessage      `json:"settings"`
}

type exportQuery struct {
	Format string `form:"format" example:"json"`
	DateRangeQuery
}

// RegisterExportRoutes registers the routes for data export with the
// RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExport)
	r.GET("", GetExport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/privacy/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export data
// @Description	Exports the caller's data as a JSON bundle or the transactions as CSV
// @Tags			Export
// @Produce		json
// @Produce		text/csv
// @Success		200	{object}	ExportResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			format		query	string	false	"json (default) or csv"
// @Param			startDate	query	string	false	"Only transactions on or after this date (YYYY-MM-DD)"
// @Param			endDate		query	string	false	"Only transactions on or before this date (YYYY-MM-DD)"
// @Router			/v1/privacy/export [get]
func GetExport(c *gin.Context) {
	var query exportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidQuery.Error()})
		return
	}

	from, to, err := bindDateRange(query.DateRangeQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	userID := auth.UserID(c)

	analytics, transactions, categories, err := analyticsForUser(userID, from, to)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	switch query.Format {
	case "", "json":
		exportJSON(c, userID, analytics, transactions, categories)
	case "csv":
		exportCSV(c, transactions, categories)
	default:
		c.JSON(http.StatusBadRequest, httpError{Error: errInvalidFormat.Error()})
	}
}

func exportJSON(c *gin.Context, userID uuid.UUID, analytics Analytics, transactions []models.Transaction, categories []models.Category) {
	var user models.User
	if err := models.DB.First(&user, userID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	accounts, err := models.BankAccount{}.Export(models.DB, userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	settings, err := models.Settings{}.Export(models.DB, userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		ExportedAt:   time.Now().UTC(),
		User:         user,
		Analytics:    analytics,
		Transactions: transactions,
		Categories:   categories,
		Accounts:     accounts,
		Settings:     settings,
	})
}

func exportCSV(c *gin.Context, transactions []models.Transaction, categories []models.Category) {
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)

	_ = writer.Write([]string{"id", "date", "type", "category", "description", "amount", "notes"})
	for _, transaction := range transactions {
		_ = writer.Write([]string{
			transaction.ID.String(),
			transaction.Date.Format("2006-01-02"),
			string(transaction.Type),
			categoryNames[transaction.CategoryID],
			transaction.Description,
			transaction.Amount.String(),
			transaction.Notes,
		})
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	filename := fmt.Sprintf("budge-export-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", []byte(out.String()))
}
