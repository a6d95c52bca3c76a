package controllers

import (
	"net/http"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable budget settings.
type BudgetEditable struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget" example:"3000"`
}

type BudgetResponse struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget" example:"3000"`
}

// RegisterBudgetRoutes registers the routes for budget settings with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly", OptionsBudgetMonthly)
	r.GET("/monthly", GetMonthlyBudget)
	r.PUT("/monthly", UpdateMonthlyBudget)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/budget/monthly [options]
func OptionsBudgetMonthly(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get monthly budget
// @Description	Returns the caller's overall monthly budget. Settings are created with defaults on first access.
// @Tags			Budget
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		500	{object}	httpError
// @Router			/v1/budget/monthly [get]
func GetMonthlyBudget(c *gin.Context) {
	settings, err := models.SettingsForUser(models.DB, auth.UserID(c))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{MonthlyBudget: settings.MonthlyBudget})
}

// @Summary		Update monthly budget
// @Description	Sets the caller's overall monthly budget
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			budget	body		BudgetEditable	true	"Budget settings"
// @Router			/v1/budget/monthly [put]
func UpdateMonthlyBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.MonthlyBudget.IsNegative() {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrMonthlyBudgetNegative.Error()})
		return
	}

	settings, err := models.SettingsForUser(models.DB, auth.UserID(c))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&settings).Update("MonthlyBudget", editable.MonthlyBudget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{MonthlyBudget: settings.MonthlyBudget})
}
