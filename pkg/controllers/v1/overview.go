package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/httputil"
)

func (co Controller) RegisterOverviewRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetOverview)
}

// GetOverview returns the dashboard of the signed in user.
//
//	@Summary		Overview
//	@Description	Returns the dashboard of the signed in user
//	@Tags			Overview
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[finance.Overview]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/overview [get]
func (co Controller) GetOverview(c *gin.Context) {
	overview, err := co.Client.Overview(c.Request.Context())
	respond(c, http.StatusOK, overview, err)
}
