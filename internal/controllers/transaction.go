package controllers

import (
	"net/http"
	"time"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/models"
	budge_uuid "github.com/budgeapp/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// TransactionEditable represents all user configurable parameters.
// Field names match the model so that partial updates can select
// the changed columns.
type TransactionEditable struct {
	CategoryID          uuid.UUID                  `json:"category" example:"d4b2a1ee-27c4-4b17-737f-ac3e8e7c2a1a"`
	Type                models.CategoryType        `json:"type" example:"expense"`
	Amount              decimal.Decimal            `json:"amount" example:"14.50"`
	Description         string                     `json:"description" example:"Lunch at the corner place"`
	Date                time.Time                  `json:"date" example:"2025-01-05T00:00:00Z"`
	Notes               string                     `json:"notes"`
	IsRecurring         bool                       `json:"isRecurring" default:"false"`
	RecurrenceFrequency models.RecurrenceFrequency `json:"recurrenceFrequency" example:"monthly"`
	RecurrenceInterval  uint                       `json:"recurrenceInterval" example:"1"`
	RecurrenceEndDate   *time.Time                 `json:"recurrenceEndDate"`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		CategoryID:          editable.CategoryID,
		Type:                editable.Type,
		Amount:              editable.Amount,
		Description:         editable.Description,
		Date:                editable.Date,
		Notes:               editable.Notes,
		IsRecurring:         editable.IsRecurring,
		RecurrenceFrequency: editable.RecurrenceFrequency,
		RecurrenceInterval:  editable.RecurrenceInterval,
		RecurrenceEndDate:   editable.RecurrenceEndDate,
	}
}

type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   Pagination           `json:"pagination"`
}

// TransactionQuery collects the supported list filters. The fields
// carried into the gorm query are named after the model fields they
// filter on; everything else is marked as a meta field.
type TransactionQuery struct {
	Type       string       `form:"type" example:"expense"`
	CategoryID budge_uuid.UUID `form:"category"`
	StartDate  time.Time    `form:"startDate" time_format:"2006-01-02" time_utc:"1" filterField:"false" example:"2025-01-01"`
	EndDate    time.Time    `form:"endDate" time_format:"2006-01-02" time_utc:"1" filterField:"false" example:"2025-01-31"`
	Page       int          `form:"page" filterField:"false" example:"1"`
	Limit      int          `form:"limit" filterField:"false" example:"50"`
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.PUT("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	_, err := getUserTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchPutDelete(c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transaction := editable.model()
	transaction.UserID = auth.UserID(c)

	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Transaction: transaction})
}

// @Summary		Get transactions
// @Description	Returns the caller's transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			type		query	string	false	"Filter by type (income or expense)"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			startDate	query	string	false	"Only transactions on or after this date (YYYY-MM-DD)"
// @Param			endDate		query	string	false	"Only transactions on or before this date (YYYY-MM-DD)"
// @Param			page		query	int		false	"Page, starting at 1"
// @Param			limit		query	int		false	"Page size, at most 100. Defaults to 50."
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidQuery.Error()})
		return
	}

	// Fields set in the URL are filtered on even when they hold their
	// zero value
	queryFields, _ := httputil.GetURLFields(c.Request.URL, query)

	transactionType := models.CategoryType(query.Type)
	if query.Type != "" && !transactionType.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrTransactionTypeInvalid.Error()})
		return
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultPageSize
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}

	filter := models.TransactionFilter{
		Type:       transactionType,
		CategoryID: query.CategoryID.UUID,
		From:       query.StartDate,
		To:         query.EndDate,
	}

	dbQuery := models.TransactionQuery(models.DB, auth.UserID(c), filter, queryFields...)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions := make([]models.Transaction, 0)
	err := dbQuery.
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	pages := total / int64(query.Limit)
	if total%int64(query.Limit) > 0 {
		pages++
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Transactions: transactions,
		Pagination: Pagination{
			Page:  query.Page,
			Limit: query.Limit,
			Total: total,
			Pages: pages,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, err := getUserTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: transaction})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		URIID				true	"ID of the transaction"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
// @Router			/v1/transactions/{id} [put]
func UpdateTransaction(c *gin.Context) {
	transaction, err := getUserTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var data TransactionEditable
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: transaction})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, err := getUserTransaction(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "transaction deleted"})
}

// getUserTransaction verifies that the transaction from the URL
// parameters exists and is owned by the caller, and returns it.
func getUserTransaction(c *gin.Context) (models.Transaction, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.Transaction{}, httputil.ErrInvalidUUID
	}

	var transaction models.Transaction
	err := models.DB.
		Where(&models.Transaction{UserID: auth.UserID(c)}).
		First(&transaction, uri.ID.UUID).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}
