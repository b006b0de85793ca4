package healthz

import (
	"context"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/walletwise/finance/pkg/httputil"
)

// Pinger checks the connection to the backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

func RegisterRoutes(r *gin.RouterGroup, p Pinger) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", Get(p))
}

// Get returns 204 when the backend is reachable.
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Success		204
//	@Failure		503	{object}	httputil.HTTPError
//	@Router			/healthz [get]
func Get(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Ping(c.Request.Context()); err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("healthz")
			httputil.Abort(c, http.StatusServiceUnavailable, "There is a problem with the database connection")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
