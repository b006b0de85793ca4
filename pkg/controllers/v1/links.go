package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/httputil"
)

type LinksResponse struct {
	Links Links `json:"links"`
}

// Links are the list endpoints of the v1 API.
type Links struct {
	Wallets       string `json:"wallets" example:"https://example.com/api/v1/wallets"`
	Categories    string `json:"categories" example:"https://example.com/api/v1/categories"`
	CreditCards   string `json:"credit_cards" example:"https://example.com/api/v1/credit-cards"`
	Transactions  string `json:"transactions" example:"https://example.com/api/v1/transactions"`
	Budgets       string `json:"budgets" example:"https://example.com/api/v1/budgets"`
	Summaries     string `json:"summaries" example:"https://example.com/api/v1/summaries"`
	Overview      string `json:"overview" example:"https://example.com/api/v1/overview"`
	Workspaces    string `json:"workspaces" example:"https://example.com/api/v1/workspaces"`
	Notifications string `json:"notifications" example:"https://example.com/api/v1/notifications"`
	Plans         string `json:"plans" example:"https://example.com/api/v1/plans"`
	Subscriptions string `json:"subscriptions" example:"https://example.com/api/v1/subscriptions"`
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetLinks)
	r.OPTIONS("", httputil.OptionsGet)

	co.RegisterWalletRoutes(r.Group("/wallets"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterCreditCardRoutes(r.Group("/credit-cards"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterSummaryRoutes(r.Group("/summaries"))
	co.RegisterOverviewRoutes(r.Group("/overview"))
	co.RegisterWorkspaceRoutes(r.Group("/workspaces"))
	co.RegisterNotificationRoutes(r.Group("/notifications"))
	co.RegisterPlanRoutes(r.Group("/plans"))
	co.RegisterSubscriptionRoutes(r.Group("/subscriptions"))
}

// GetLinks returns the links to all v1 list endpoints.
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Produce		json
//	@Success		200	{object}	LinksResponse
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1 [get]
func GetLinks(c *gin.Context) {
	url := httputil.BaseURL(c) + "/v1"

	c.JSON(http.StatusOK, LinksResponse{
		Links: Links{
			Wallets:       url + "/wallets",
			Categories:    url + "/categories",
			CreditCards:   url + "/credit-cards",
			Transactions:  url + "/transactions",
			Budgets:       url + "/budgets",
			Summaries:     url + "/summaries",
			Overview:      url + "/overview",
			Workspaces:    url + "/workspaces",
			Notifications: url + "/notifications",
			Plans:         url + "/plans",
			Subscriptions: url + "/subscriptions",
		},
	})
}
