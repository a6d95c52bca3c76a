package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/llm"
	"github.com/gin-gonic/gin"
)

// topCategoryCount limits how many breakdown entries are handed to
// the advisor prompt.
const topCategoryCount = 3

// ChatRequest is a single user message to the financial advisor.
type ChatRequest struct {
	Message string `json:"message" example:"How am I doing this month?"`
}

type ChatResponse struct {
	Message string   `json:"message"`
	Kind    llm.Kind `json:"kind" example:"llm"` // "llm" when the model answered, "fallback" otherwise
}

// RegisterChatRoutes registers the routes for the AI chat with the
// RouterGroup that is passed.
func RegisterChatRoutes(r *gin.RouterGroup, advisor *llm.Advisor) {
	r.OPTIONS("/chat", OptionsChat)
	r.POST("/chat", func(c *gin.Context) { Chat(c, advisor) })
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			AIChat
// @Success		204
// @Router			/v1/ai-chat/chat [options]
func OptionsChat(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Chat with the financial advisor
// @Description	Answers a free-form question from the caller's aggregate figures. Falls back to a deterministic summary when no language model is configured or reachable.
// @Tags			AIChat
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChatResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			chat	body		ChatRequest	true	"Message"
// @Router			/v1/ai-chat/chat [post]
func Chat(c *gin.Context, advisor *llm.Advisor) {
	var request ChatRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if strings.TrimSpace(request.Message) == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errMessageEmpty.Error()})
		return
	}

	analytics, _, _, err := analyticsForUser(auth.UserID(c), time.Time{}, time.Time{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	topCategories := analytics.Breakdown
	if len(topCategories) > topCategoryCount {
		topCategories = topCategories[:topCategoryCount]
	}

	summary := llm.Summary{
		Income:            analytics.Income,
		Expenses:          analytics.Expenses,
		Balance:           analytics.Balance,
		SavingsRate:       analytics.SavingsRate,
		MonthlyBudget:     analytics.MonthlyBudget,
		BudgetUtilization: analytics.BudgetUtilization,
		TopCategories:     topCategories,
	}

	advice := advisor.Advise(c.Request.Context(), request.Message, summary)

	c.JSON(http.StatusOK, ChatResponse{Message: advice.Message, Kind: advice.Kind})
}
