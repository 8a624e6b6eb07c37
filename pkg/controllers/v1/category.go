package v1

import (
	"net/http"
	"net/url"

	"github.com/OuterCloud/family-account-book/pkg/httperrors"
	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
)

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`   // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=Groceries"`          // The transactions of the category
	Sum          string `json:"sum" example:"https://example.com/api/v1/analytics/categories/Groceries/sum"`                // Ranged sums for the category
	Series       string `json:"series" example:"https://example.com/api/v1/analytics/categories/Groceries/series"`          // Per month series for the category
	Percentage   string `json:"percentage" example:"https://example.com/api/v1/analytics/categories/Groceries/percentage"` // Monthly share of the category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.Category
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	base := c.GetString(string(models.ContextURL))
	analytics := base + "/v1/analytics/categories/" + url.PathEscape(model.Name)

	return Category{
		Category: model,
		Links: CategoryLinks{
			Self:         base + "/v1/categories/" + model.ID.String(),
			Transactions: base + "/v1/transactions?category=" + url.QueryEscape(model.Name),
			Sum:          analytics + "/sum",
			Series:       analytics + "/series",
			Percentage:   analytics + "/percentage",
		},
	}
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                     // Data for the category
	Error *string   `json:"error,omitempty" example:"the category name must be unique"` // The error, if any occurred
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of categories
	Error *string    `json:"error,omitempty" example:"there is a problem with the database"` // The error, if any occurred
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
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
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	if _, ok := co.getCategory(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getCategory returns the category for the ID in the path. If the boolean is
// false, the error response has already been written.
func (co Controller) getCategory(c *gin.Context) (models.Category, bool) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return models.Category{}, false
	}

	category, ok, err := co.Ledger.GetCategory(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return models.Category{}, false
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return models.Category{}, false
	}

	return category, true
}

// @Summary		Get categories
// @Description	Returns all categories ordered by name
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	categories, err := co.Ledger.ListCategories(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		ledger.CategoryCreate	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var create ledger.CategoryCreate
	if err := httputil.BindData(c, &create); err != nil {
		abort(c, err)
		return
	}

	category, err := co.Ledger.CreateCategory(c.Request.Context(), create)
	if err != nil {
		abort(c, err)
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Failure		500	{object}	CategoryResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	category, ok := co.getCategory(c)
	if !ok {
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Update category
// @Description	Updates an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			category	body		ledger.CategoryPatch	true	"Category"
// @Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	var patch ledger.CategoryPatch
	if err := httputil.BindData(c, &patch); err != nil {
		abort(c, err)
		return
	}

	category, ok, err := co.Ledger.UpdateCategory(c.Request.Context(), id, patch)
	if err != nil {
		abort(c, err)
		return
	}

	if !ok {
		abort(c, httperrors.ErrNotFound)
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Delete category
// @Description	Deletes a category. Categories that are used by transactions or have child categories cannot be deleted.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		409	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	category, ok := co.getCategory(c)
	if !ok {
		return
	}

	deleted, err := co.Ledger.DeleteCategory(c.Request.Context(), category.ID)
	if err != nil {
		abort(c, err)
		return
	}

	if !deleted {
		abort(c, httperrors.ErrInUse)
		return
	}

	c.Status(http.StatusNoContent)
}
