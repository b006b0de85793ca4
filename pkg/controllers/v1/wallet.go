package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
)

// RegisterWalletRoutes registers the routes for wallets with
// the RouterGroup that is passed.
func (co Controller) RegisterWalletRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetWallets)
		r.POST("", co.CreateWallet)
	}

	// Wallet with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetWallet)
		r.PATCH("/:id", co.UpdateWallet)
		r.DELETE("/:id", co.DeleteWallet)
	}
}

// GetWallets lists the wallets, the default wallet first.
//
//	@Summary		List wallets
//	@Description	Returns the list of wallets
//	@Tags			Wallets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.Wallet]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/wallets [get]
func (co Controller) GetWallets(c *gin.Context) {
	wallets, err := co.Client.ListWallets(c.Request.Context())
	respond(c, http.StatusOK, wallets, err)
}

// GetWallet returns a single wallet.
//
//	@Summary		Get wallet
//	@Description	Returns a specific wallet
//	@Tags			Wallets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Wallet]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/wallets/{id} [get]
func (co Controller) GetWallet(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	wallet, err := co.Client.GetWallet(c.Request.Context(), id)
	respond(c, http.StatusOK, wallet, err)
}

// CreateWallet creates a wallet.
//
//	@Summary		Create wallet
//	@Description	Creates a new wallet
//	@Tags			Wallets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[models.Wallet]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			wallet	body	finance.WalletInput	true	"Wallet"
//	@Router			/v1/wallets [post]
func (co Controller) CreateWallet(c *gin.Context) {
	in, err := bind[finance.WalletInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	wallet, err := co.Client.CreateWallet(c.Request.Context(), in)
	respond(c, http.StatusCreated, wallet, err)
}

// UpdateWallet replaces the wallet. The balance cannot be updated.
//
//	@Summary		Update wallet
//	@Description	Updates a specific wallet. All fields are replaced.
//	@Tags			Wallets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Wallet]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			wallet	body	finance.WalletInput	true	"Wallet"
//	@Router			/v1/wallets/{id} [patch]
func (co Controller) UpdateWallet(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[finance.WalletInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	wallet, err := co.Client.UpdateWallet(c.Request.Context(), id, in)
	respond(c, http.StatusOK, wallet, err)
}

// DeleteWallet deletes the wallet.
//
//	@Summary		Delete wallet
//	@Description	Deletes a specific wallet
//	@Tags			Wallets
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/wallets/{id} [delete]
func (co Controller) DeleteWallet(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.DeleteWallet(c.Request.Context(), id))
}
