package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// GetBudgets returns all budgets with the amount spent in their period.
//
//	@Summary		List budgets
//	@Description	Returns the list of budgets
//	@Tags			Budgets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]finance.BudgetStatus]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	budgets, err := co.Client.ListBudgets(c.Request.Context())
	respond(c, http.StatusOK, budgets, err)
}

// GetBudget returns a single budget.
//
//	@Summary		Get budget
//	@Description	Returns a specific budget
//	@Tags			Budgets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[finance.BudgetStatus]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	budget, err := co.Client.GetBudget(c.Request.Context(), id)
	respond(c, http.StatusOK, budget, err)
}

// CreateBudget creates a budget.
//
//	@Summary		Create budget
//	@Description	Creates a new budget
//	@Tags			Budgets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[finance.BudgetStatus]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			budget	body	finance.BudgetInput	true	"Budget"
//	@Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	in, err := bind[finance.BudgetInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	budget, err := co.Client.CreateBudget(c.Request.Context(), in)
	respond(c, http.StatusCreated, budget, err)
}

// UpdateBudget replaces all fields of the budget.
//
//	@Summary		Update budget
//	@Description	Updates a specific budget. All fields are replaced.
//	@Tags			Budgets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[finance.BudgetStatus]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			budget	body	finance.BudgetInput	true	"Budget"
//	@Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[finance.BudgetInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	budget, err := co.Client.UpdateBudget(c.Request.Context(), id, in)
	respond(c, http.StatusOK, budget, err)
}

// DeleteBudget deletes the budget.
//
//	@Summary		Delete budget
//	@Description	Deletes a specific budget
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.DeleteBudget(c.Request.Context(), id))
}
