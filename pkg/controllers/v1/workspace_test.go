package v1_test

import (
	"net/http"

	"github.com/walletwise/finance/internal/test"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/models"
)

func (suite *TestSuiteStandard) TestWorkspaces() {
	r := suite.request(suite.alice, http.MethodPost, "/v1/workspaces", finance.WorkspaceInput{Name: "Family"})
	workspace := decode[models.Workspace](suite, r, http.StatusCreated)
	suite.Assert().Equal(suite.alice.ID, workspace.OwnerID)
	id := workspace.ID.String()

	shared := suite.createTestWallet(suite.alice, finance.WalletInput{Name: "Household", WorkspaceID: &workspace.ID})

	// Bob is not a member yet
	r = suite.request(suite.bob, http.MethodGet, "/v1/workspaces/"+id+"/membership", nil)
	suite.Assert().False(decode[membership](suite, r, http.StatusOK).Member)

	r = suite.request(suite.alice, http.MethodPost, "/v1/workspaces/"+id+"/members", finance.MemberInput{UserID: suite.bob.ID, Role: models.RoleViewer})
	member := decode[models.WorkspaceMember](suite, r, http.StatusCreated)
	suite.Assert().Equal(models.RoleViewer, member.Role)

	r = suite.request(suite.bob, http.MethodGet, "/v1/workspaces/"+id+"/membership", nil)
	suite.Assert().True(decode[membership](suite, r, http.StatusOK).Member)

	r = suite.request(suite.bob, http.MethodGet, "/v1/workspaces/"+id+"/membership?role=owner&role=admin", nil)
	suite.Assert().False(decode[membership](suite, r, http.StatusOK).Member)

	r = suite.request(suite.bob, http.MethodGet, "/v1/workspaces/"+id+"/resources", nil)
	resources := decode[[]models.WorkspaceResource](suite, r, http.StatusOK)
	suite.Require().Len(resources, 1)
	suite.Assert().Equal("Household", resources[0].ResourceName)

	r = suite.request(suite.alice, http.MethodGet, "/v1/workspaces/"+id+"/members", nil)
	suite.Assert().Len(decode[[]models.WorkspaceMember](suite, r, http.StatusOK), 2)

	// Viewers cannot promote themselves
	r = suite.request(suite.bob, http.MethodPatch, "/v1/workspaces/"+id+"/members/"+suite.bob.ID.String(), map[string]string{"role": "admin"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = suite.request(suite.alice, http.MethodPatch, "/v1/workspaces/"+id+"/members/"+suite.bob.ID.String(), map[string]string{"role": "member"})
	suite.Assert().Equal(models.RoleMember, decode[models.WorkspaceMember](suite, r, http.StatusOK).Role)

	r = suite.request(suite.bob, http.MethodPatch, "/v1/workspaces/"+id, finance.WorkspaceInput{Name: "Bob's"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	// The last owner stays
	r = suite.request(suite.alice, http.MethodDelete, "/v1/workspaces/"+id+"/members/"+suite.alice.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	r = suite.request(suite.bob, http.MethodDelete, "/v1/workspaces/"+id+"/members/"+suite.bob.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodPatch, "/v1/workspaces/"+id, finance.WorkspaceInput{Name: "Household"})
	suite.Assert().Equal("Household", decode[models.Workspace](suite, r, http.StatusOK).Name)

	r = suite.request(suite.alice, http.MethodGet, "/v1/workspaces", nil)
	suite.Assert().Len(decode[[]models.Workspace](suite, r, http.StatusOK), 1)

	r = suite.request(suite.alice, http.MethodDelete, "/v1/wallets/"+shared.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodDelete, "/v1/workspaces/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodGet, "/v1/workspaces/"+id, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

type membership struct {
	Member bool `json:"member"`
}

func (suite *TestSuiteStandard) TestNotifications() {
	for _, title := range []string{"Budget exceeded", "Welcome"} {
		r := suite.request(suite.alice, http.MethodPost, "/v1/notifications", finance.NotificationInput{Title: title, Message: "Hello"})
		suite.Assert().Equal(models.NotificationInfo, decode[models.Notification](suite, r, http.StatusCreated).Type)
	}

	r := suite.request(suite.alice, http.MethodGet, "/v1/notifications", nil)
	notifications := decode[[]models.Notification](suite, r, http.StatusOK)
	suite.Require().Len(notifications, 2)

	r = suite.request(suite.alice, http.MethodPost, "/v1/notifications/"+notifications[0].ID.String()+"/read", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodGet, "/v1/notifications?unread=true", nil)
	suite.Assert().Len(decode[[]models.Notification](suite, r, http.StatusOK), 1)

	r = suite.request(suite.bob, http.MethodPost, "/v1/notifications/"+notifications[1].ID.String()+"/read", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(suite.alice, http.MethodPost, "/v1/notifications/read-all", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodGet, "/v1/notifications?unread=true", nil)
	suite.Assert().Len(decode[[]models.Notification](suite, r, http.StatusOK), 0)

	r = suite.request(suite.alice, http.MethodDelete, "/v1/notifications/"+notifications[1].ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.alice, http.MethodPost, "/v1/notifications", finance.NotificationInput{Title: "No message"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSubscriptions() {
	r := suite.request(suite.alice, http.MethodGet, "/v1/plans", nil)
	plans := decode[[]models.SubscriptionPlan](suite, r, http.StatusOK)
	suite.Require().Len(plans, 3)

	r = suite.request(suite.alice, http.MethodGet, "/v1/subscriptions/current", nil)
	suite.Assert().Nil(decode[*models.CurrentPlan](suite, r, http.StatusOK))

	r = suite.request(suite.alice, http.MethodGet, "/v1/subscriptions/active", nil)
	suite.Assert().False(decode[active](suite, r, http.StatusOK).Active)

	r = suite.request(suite.alice, http.MethodGet, "/v1/subscriptions", nil)
	suite.Assert().Len(decode[[]models.Subscription](suite, r, http.StatusOK), 0)
}

type active struct {
	Active bool `json:"active"`
}
