package controllers

import (
	"errors"
	"net/http"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name   string              `json:"name" example:"Groceries"`
	Color  string              `json:"color" example:"#FF9800"`
	Type   models.CategoryType `json:"type" example:"expense"` // Immutable after creation
	Budget *decimal.Decimal    `json:"budget" example:"400"`
	Icon   string              `json:"icon" example:"shopping-cart"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:   editable.Name,
		Color:  editable.Color,
		Type:   editable.Type,
		Budget: editable.Budget,
		Icon:   editable.Icon,
	}
}

type CategoryResponse struct {
	Category models.Category `json:"category"`
}

type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
}

// categoryInUseResponse is returned when a deletion is blocked by
// referencing transactions.
type categoryInUseResponse struct {
	Error            string `json:"error"`
	TransactionCount int64  `json:"transactionCount"`
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.PUT("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the category"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	_, err := getUserCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchPutDelete(c)
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	category := editable.model()
	category.UserID = auth.UserID(c)

	if err := models.DB.Create(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Category: category})
}

// @Summary		Get categories
// @Description	Returns the caller's categories, ordered by (type, name)
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			type	query	string	false	"Filter by type (income or expense)"
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	categoryType := models.CategoryType(c.Query("type"))
	if categoryType != "" && !categoryType.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrCategoryTypeInvalid.Error()})
		return
	}

	categories, err := models.CategoriesForUser(models.DB, auth.UserID(c), categoryType)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Categories: categories})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the category"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	category, err := getUserCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// @Summary		Update category
// @Description	Update an existing category. Only values to be updated need to be specified. The type cannot be changed.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		URIID				true	"ID of the category"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
// @Router			/v1/categories/{id} [put]
func UpdateCategory(c *gin.Context) {
	category, err := getUserCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var data CategoryEditable
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// @Summary		Delete category
// @Description	Deletes a category. Fails while transactions reference it.
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	MessageResponse
// @Failure		400	{object}	categoryInUseResponse
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the category"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	category, err := getUserCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		var inUse models.CategoryInUseError
		if errors.As(err, &inUse) {
			c.JSON(http.StatusBadRequest, categoryInUseResponse{
				Error:            models.ErrCategoryInUse.Error(),
				TransactionCount: inUse.TransactionCount,
			})
			return
		}

		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "category deleted"})
}

// getUserCategory verifies that the category from the URL parameters
// exists and is owned by the caller, and returns it.
func getUserCategory(c *gin.Context) (models.Category, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.Category{}, httputil.ErrInvalidUUID
	}

	var category models.Category
	err := models.DB.
		Where(&models.Category{UserID: auth.UserID(c)}).
		First(&category, uri.ID.UUID).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}
