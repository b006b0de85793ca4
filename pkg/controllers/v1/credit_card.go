package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
)

// RegisterCreditCardRoutes registers the routes for credit cards with
// the RouterGroup that is passed.
func (co Controller) RegisterCreditCardRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCreditCards)
		r.POST("", co.CreateCreditCard)
	}

	// Credit card with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetCreditCard)
		r.PATCH("/:id", co.UpdateCreditCard)
		r.DELETE("/:id", co.DeleteCreditCard)
	}
}

// GetCreditCards lists the credit cards of the signed in user.
//
//	@Summary		List credit cards
//	@Description	Returns the list of credit cards
//	@Tags			Credit Cards
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.CreditCard]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/credit-cards [get]
func (co Controller) GetCreditCards(c *gin.Context) {
	cards, err := co.Client.ListCreditCards(c.Request.Context())
	respond(c, http.StatusOK, cards, err)
}

// GetCreditCard returns a single credit card.
//
//	@Summary		Get credit card
//	@Description	Returns a specific credit card
//	@Tags			Credit Cards
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.CreditCard]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/credit-cards/{id} [get]
func (co Controller) GetCreditCard(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	card, err := co.Client.GetCreditCard(c.Request.Context(), id)
	respond(c, http.StatusOK, card, err)
}

// CreateCreditCard creates a credit card.
//
//	@Summary		Create credit card
//	@Description	Creates a new credit card
//	@Tags			Credit Cards
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[models.CreditCard]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			creditCard	body	finance.CreditCardInput	true	"Credit card"
//	@Router			/v1/credit-cards [post]
func (co Controller) CreateCreditCard(c *gin.Context) {
	in, err := bind[finance.CreditCardInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	card, err := co.Client.CreateCreditCard(c.Request.Context(), in)
	respond(c, http.StatusCreated, card, err)
}

// UpdateCreditCard replaces all fields of the credit card.
//
//	@Summary		Update credit card
//	@Description	Updates a specific credit card. All fields are replaced.
//	@Tags			Credit Cards
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.CreditCard]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			creditCard	body	finance.CreditCardInput	true	"Credit card"
//	@Router			/v1/credit-cards/{id} [patch]
func (co Controller) UpdateCreditCard(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[finance.CreditCardInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	card, err := co.Client.UpdateCreditCard(c.Request.Context(), id, in)
	respond(c, http.StatusOK, card, err)
}

// DeleteCreditCard deletes the credit card.
//
//	@Summary		Delete credit card
//	@Description	Deletes a specific credit card
//	@Tags			Credit Cards
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/credit-cards/{id} [delete]
func (co Controller) DeleteCreditCard(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.DeleteCreditCard(c.Request.Context(), id))
}
