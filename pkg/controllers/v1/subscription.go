package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/httputil"
	"github.com/walletwise/finance/pkg/models"
)

// ActiveSubscription reports if the signed in user has an active subscription.
type ActiveSubscription struct {
	Active bool `json:"active" example:"true"`
}

func (co Controller) RegisterPlanRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetPlans)
}

// RegisterSubscriptionRoutes registers the routes for subscriptions with
// the RouterGroup that is passed.
func (co Controller) RegisterSubscriptionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetSubscriptions)
	r.OPTIONS("/current", httputil.OptionsGet)
	r.GET("/current", co.GetCurrentPlan)
	r.OPTIONS("/active", httputil.OptionsGet)
	r.GET("/active", co.GetActiveSubscription)
}

// GetPlans lists the active plans. No session is needed.
//
//	@Summary		List plans
//	@Description	Returns the active subscription plans
//	@Tags			Subscriptions
//	@Produce		json
//	@Success		200	{object}	Response[[]models.SubscriptionPlan]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/plans [get]
func (co Controller) GetPlans(c *gin.Context) {
	plans, err := co.Client.ListPlans(c.Request.Context())
	respond(c, http.StatusOK, plans, err)
}

// GetSubscriptions lists the subscriptions of the signed in user.
//
//	@Summary		List subscriptions
//	@Description	Returns the subscriptions of the signed in user
//	@Tags			Subscriptions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.Subscription]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/subscriptions [get]
func (co Controller) GetSubscriptions(c *gin.Context) {
	subscriptions, err := co.Client.ListSubscriptions(c.Request.Context())
	respond(c, http.StatusOK, subscriptions, err)
}

// GetCurrentPlan returns the plan of the active subscription, or null
// without one.
//
//	@Summary		Current plan
//	@Description	Returns the plan of the active subscription, or null without one
//	@Tags			Subscriptions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.CurrentPlan]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/subscriptions/current [get]
func (co Controller) GetCurrentPlan(c *gin.Context) {
	plan, err := co.Client.CurrentPlan(c.Request.Context())
	respond[*models.CurrentPlan](c, http.StatusOK, plan, err)
}

// GetActiveSubscription reports if the signed in user has an active subscription.
//
//	@Summary		Active subscription
//	@Description	Reports if the signed in user has an active subscription
//	@Tags			Subscriptions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[ActiveSubscription]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/subscriptions/active [get]
func (co Controller) GetActiveSubscription(c *gin.Context) {
	active, err := co.Client.HasActiveSubscription(c.Request.Context())
	respond(c, http.StatusOK, ActiveSubscription{Active: active}, err)
}
