package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
	"github.com/walletwise/finance/pkg/models"
	"golang.org/x/exp/slices"
)

type CategoryQueryFilter struct {
	Type models.CategoryType `form:"type" example:"expense"` // Only categories of this type
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

// GetCategories lists the system categories and the categories of the user.
//
//	@Summary		List categories
//	@Description	Returns the list of categories
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	Response[[]models.Category]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			type	query	string	false	"Only categories of this type"
//	@Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	var categoryType *models.CategoryType
	if slices.Contains(httputil.GetURLFields(c.Request.URL, filter), "Type") {
		categoryType = &filter.Type
	}

	categories, err := co.Client.ListCategories(c.Request.Context(), categoryType)
	respond(c, http.StatusOK, categories, err)
}

// GetCategory returns a single category.
//
//	@Summary		Get category
//	@Description	Returns a specific category
//	@Tags			Categories
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Category]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	category, err := co.Client.GetCategory(c.Request.Context(), id)
	respond(c, http.StatusOK, category, err)
}

// CreateCategory creates a category.
//
//	@Summary		Create category
//	@Description	Creates a new category
//	@Tags			Categories
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[models.Category]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			category	body	finance.CategoryInput	true	"Category"
//	@Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	in, err := bind[finance.CategoryInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	category, err := co.Client.CreateCategory(c.Request.Context(), in)
	respond(c, http.StatusCreated, category, err)
}

// UpdateCategory replaces all fields of the category.
//
//	@Summary		Update category
//	@Description	Updates a specific category. All fields are replaced.
//	@Tags			Categories
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Category]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			category	body	finance.CategoryInput	true	"Category"
//	@Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[finance.CategoryInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	category, err := co.Client.UpdateCategory(c.Request.Context(), id, in)
	respond(c, http.StatusOK, category, err)
}

// DeleteCategory deletes the category.
//
//	@Summary		Delete category
//	@Description	Deletes a specific category
//	@Tags			Categories
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.DeleteCategory(c.Request.Context(), id))
}
