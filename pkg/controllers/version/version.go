package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/httputil"
)

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Version string `json:"version" example:"1.4.0"` // Running version of the server
}

// RegisterRoutes registers the version endpoint. The version is set at
// build time by the caller.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	r.GET("", Get(version))
	r.OPTIONS("", httputil.OptionsGet)
}

// Get returns the version of the running server.
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Produce		json
//	@Success		200	{object}	Response
//	@Router			/version [get]
func Get(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{Data: Object{Version: version}})
	}
}
