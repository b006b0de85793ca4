package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
	"github.com/walletwise/finance/pkg/models"
)

// RoleInput changes the role of a workspace member.
type RoleInput struct {
	Role models.WorkspaceRole `json:"role" example:"admin"`
}

// MembershipQuery restricts a membership check to roles.
type MembershipQuery struct {
	Role []models.WorkspaceRole `form:"role" example:"owner"`
}

// Membership reports if the signed in user belongs to a workspace.
type Membership struct {
	Member bool `json:"member" example:"true"`
}

// RegisterWorkspaceRoutes registers the routes for workspaces with
// the RouterGroup that is passed.
func (co Controller) RegisterWorkspaceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetWorkspaces)
		r.POST("", co.CreateWorkspace)
	}

	// Workspace with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetWorkspace)
		r.PATCH("/:id", co.UpdateWorkspace)
		r.DELETE("/:id", co.DeleteWorkspace)
		r.OPTIONS("/:id/resources", httputil.OptionsGet)
		r.GET("/:id/resources", co.GetWorkspaceResources)
		r.OPTIONS("/:id/membership", httputil.OptionsGet)
		r.GET("/:id/membership", co.GetMembership)
	}

	// Members
	{
		r.OPTIONS("/:id/members", httputil.OptionsGetPost)
		r.GET("/:id/members", co.GetMembers)
		r.POST("/:id/members", co.AddMember)
		r.OPTIONS("/:id/members/:userId", httputil.OptionsPatchDelete)
		r.PATCH("/:id/members/:userId", co.UpdateMember)
		r.DELETE("/:id/members/:userId", co.RemoveMember)
	}
}

// GetWorkspaces lists the workspaces the signed in user is a member of.
//
//	@Summary		List workspaces
//	@Description	Returns the workspaces the signed in user is a member of
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.Workspace]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/workspaces [get]
func (co Controller) GetWorkspaces(c *gin.Context) {
	workspaces, err := co.Client.ListWorkspaces(c.Request.Context())
	respond(c, http.StatusOK, workspaces, err)
}

// GetWorkspace returns a workspace with its members.
//
//	@Summary		Get workspace
//	@Description	Returns a specific workspace with its members
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Workspace]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/workspaces/{id} [get]
func (co Controller) GetWorkspace(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	workspace, err := co.Client.GetWorkspace(c.Request.Context(), id)
	respond(c, http.StatusOK, workspace, err)
}

// CreateWorkspace creates a workspace owned by the signed in user.
//
//	@Summary		Create workspace
//	@Description	Creates a new workspace. The signed in user becomes its owner.
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[models.Workspace]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			workspace	body	finance.WorkspaceInput	true	"Workspace"
//	@Router			/v1/workspaces [post]
func (co Controller) CreateWorkspace(c *gin.Context) {
	in, err := bind[finance.WorkspaceInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	workspace, err := co.Client.CreateWorkspace(c.Request.Context(), in)
	respond(c, http.StatusCreated, workspace, err)
}

// UpdateWorkspace renames the workspace. Only owners and admins may do this.
//
//	@Summary		Update workspace
//	@Description	Updates a specific workspace
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.Workspace]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			workspace	body	finance.WorkspaceInput	true	"Workspace"
//	@Router			/v1/workspaces/{id} [patch]
func (co Controller) UpdateWorkspace(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[finance.WorkspaceInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	workspace, err := co.Client.UpdateWorkspace(c.Request.Context(), id, in)
	respond(c, http.StatusOK, workspace, err)
}

// DeleteWorkspace deletes the workspace. Only owners may do this.
//
//	@Summary		Delete workspace
//	@Description	Deletes a specific workspace
//	@Tags			Workspaces
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/workspaces/{id} [delete]
func (co Controller) DeleteWorkspace(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.DeleteWorkspace(c.Request.Context(), id))
}

// GetWorkspaceResources lists the wallets, categories, credit cards
// and budgets shared in the workspace.
//
//	@Summary		Workspace resources
//	@Description	Returns the wallets, categories, credit cards and budgets shared in the workspace
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.WorkspaceResource]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/workspaces/{id}/resources [get]
func (co Controller) GetWorkspaceResources(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	resources, err := co.Client.WorkspaceResources(c.Request.Context(), id)
	respond(c, http.StatusOK, resources, err)
}

// GetMembership checks if the signed in user is a member of the workspace.
// With role parameters, the member must have one of the roles.
//
//	@Summary		Workspace membership
//	@Description	Reports if the signed in user is a member of the workspace, optionally with one of the roles
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[Membership]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			role	query	[]string	false	"Required roles"
//	@Router			/v1/workspaces/{id}/membership [get]
func (co Controller) GetMembership(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var query MembershipQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	var member bool
	if len(query.Role) == 0 {
		member, err = co.Client.IsWorkspaceMember(c.Request.Context(), id)
	} else {
		member, err = co.Client.HasWorkspaceRole(c.Request.Context(), id, query.Role...)
	}

	respond(c, http.StatusOK, Membership{Member: member}, err)
}

// GetMembers lists the members of the workspace.
//
//	@Summary		List members
//	@Description	Returns the members of the workspace
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.WorkspaceMember]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/workspaces/{id}/members [get]
func (co Controller) GetMembers(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	members, err := co.Client.ListMembers(c.Request.Context(), id)
	respond(c, http.StatusOK, members, err)
}

// AddMember adds a user to the workspace. Owners are never added.
//
//	@Summary		Add member
//	@Description	Adds a user to the workspace
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[models.WorkspaceMember]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			member	body	finance.MemberInput	true	"Member"
//	@Router			/v1/workspaces/{id}/members [post]
func (co Controller) AddMember(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[finance.MemberInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	member, err := co.Client.AddMember(c.Request.Context(), id, in)
	respond(c, http.StatusCreated, member, err)
}

// UpdateMember changes the role of a member.
//
//	@Summary		Update member
//	@Description	Changes the role of a workspace member
//	@Tags			Workspaces
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[models.WorkspaceMember]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			userId	path	string	true	"User ID of the member"
//	@Param			role	body	RoleInput	true	"Role"
//	@Router			/v1/workspaces/{id}/members/{userId} [patch]
func (co Controller) UpdateMember(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	userID, err := param(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}

	in, err := bind[RoleInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	member, err := co.Client.UpdateMemberRole(c.Request.Context(), id, userID, in.Role)
	respond(c, http.StatusOK, member, err)
}

// RemoveMember removes a user from the workspace. Members can remove
// themselves to leave it.
//
//	@Summary		Remove member
//	@Description	Removes a user from the workspace
//	@Tags			Workspaces
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Param			userId	path	string	true	"User ID of the member"
//	@Router			/v1/workspaces/{id}/members/{userId} [delete]
func (co Controller) RemoveMember(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	userID, err := param(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.RemoveMember(c.Request.Context(), id, userID))
}
