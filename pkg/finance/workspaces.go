package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
)

// WorkspaceInput is the data of a workspace to create or update.
type WorkspaceInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (in WorkspaceInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", msgRequired)
	}
	return nil
}

// MemberInput adds a user to a workspace.
type MemberInput struct {
	UserID uuid.UUID            `json:"user_id"`
	Role   models.WorkspaceRole `json:"role"`
}

func (in MemberInput) Validate() error {
	if in.UserID == uuid.Nil {
		return invalid("user_id", msgRequired)
	}

	if !in.Role.Valid() {
		return invalid("role", msgInvalidValue)
	}

	return nil
}

// ListWorkspaces returns the workspaces the principal is a member of, by name.
func (c *Client) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	q := backend.NewQuery().OrderBy("name", false)
	workspaces, err := read(ctx, c, cache.Workspaces, q.String(), func(ctx context.Context) ([]models.Workspace, error) {
		return c.backend.Workspaces().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list workspaces", err)
	}

	return workspaces, nil
}

// GetWorkspace returns a workspace with its members.
func (c *Client) GetWorkspace(ctx context.Context, id uuid.UUID) (models.Workspace, error) {
	workspace, err := call(ctx, c, func(ctx context.Context) (models.Workspace, error) {
		return c.backend.Workspaces().Single(ctx, backend.ByID(id).Join("members"))
	})
	if err != nil {
		return models.Workspace{}, c.fail("get workspace", err)
	}

	return workspace, nil
}

// CreateWorkspace creates a workspace. The principal becomes its owner.
func (c *Client) CreateWorkspace(ctx context.Context, in WorkspaceInput) (models.Workspace, error) {
	p, err := c.requireSession(ctx)
	if err != nil {
		return models.Workspace{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Workspace{}, c.validation(err)
	}

	created, err := call(ctx, c, func(ctx context.Context) (models.Workspace, error) {
		return c.backend.Workspaces().Insert(ctx, models.Workspace{
			Name:        in.Name,
			Description: in.Description,
			OwnerID:     p.ID,
		})
	})
	if err != nil {
		return models.Workspace{}, c.fail("create workspace", err)
	}

	c.Invalidate(cache.Workspaces, cache.WorkspaceMembers)
	return c.GetWorkspace(ctx, created.ID)
}

func (c *Client) UpdateWorkspace(ctx context.Context, id uuid.UUID, in WorkspaceInput) (models.Workspace, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return models.Workspace{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Workspace{}, c.validation(err)
	}

	patch := backend.Patch{
		"name":        strings.TrimSpace(in.Name),
		"description": nullable(in.Description),
	}

	updated, err := call(ctx, c, func(ctx context.Context) ([]models.Workspace, error) {
		return c.backend.Workspaces().Update(ctx, backend.ByID(id).Join("members"), patch)
	})
	if err != nil {
		return models.Workspace{}, c.fail("update workspace", err)
	}

	if len(updated) == 0 {
		return models.Workspace{}, c.notFound("update workspace", backend.TableWorkspaces, id)
	}

	c.Invalidate(cache.Workspaces)
	return updated[0], nil
}

// DeleteWorkspace deletes a workspace and its memberships.
func (c *Client) DeleteWorkspace(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.Workspaces().Delete(ctx, backend.ByID(id))
	})
	if err != nil {
		return c.fail("delete workspace", err)
	}

	if deleted == 0 {
		return c.notFound("delete workspace", backend.TableWorkspaces, id)
	}

	c.Invalidate(cache.Keys()...)
	return nil
}

// ListMembers returns the members of a workspace in the order they joined.
func (c *Client) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceMember, error) {
	q := backend.NewQuery().Eq("workspace_id", workspaceID).OrderBy("created_at", false)
	members, err := read(ctx, c, cache.WorkspaceMembers, q.String(), func(ctx context.Context) ([]models.WorkspaceMember, error) {
		return c.backend.WorkspaceMembers().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list workspace members", err)
	}

	return members, nil
}

// AddMember adds a user to the workspace. Only owners and admins can add
// members, and nobody can be added as owner.
func (c *Client) AddMember(ctx context.Context, workspaceID uuid.UUID, in MemberInput) (models.WorkspaceMember, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return models.WorkspaceMember{}, err
	}

	if err := in.Validate(); err != nil {
		return models.WorkspaceMember{}, c.validation(err)
	}

	member, err := call(ctx, c, func(ctx context.Context) (models.WorkspaceMember, error) {
		return c.backend.WorkspaceMembers().Insert(ctx, models.WorkspaceMember{
			WorkspaceID: workspaceID,
			UserID:      in.UserID,
			Role:        in.Role,
		})
	})
	if err != nil {
		return models.WorkspaceMember{}, c.fail("add workspace member", err)
	}

	// Membership changes which rows are visible at all.
	c.Invalidate(cache.Keys()...)
	return member, nil
}

// UpdateMemberRole changes the role of a member.
func (c *Client) UpdateMemberRole(ctx context.Context, workspaceID, userID uuid.UUID, role models.WorkspaceRole) (models.WorkspaceMember, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return models.WorkspaceMember{}, err
	}

	if !role.Valid() {
		return models.WorkspaceMember{}, c.validation(invalid("role", msgInvalidValue))
	}

	q := backend.NewQuery().Eq("workspace_id", workspaceID).Eq("user_id", userID)
	updated, err := call(ctx, c, func(ctx context.Context) ([]models.WorkspaceMember, error) {
		return c.backend.WorkspaceMembers().Update(ctx, q, backend.Patch{"role": role})
	})
	if err != nil {
		return models.WorkspaceMember{}, c.fail("update workspace member", err)
	}

	if len(updated) == 0 {
		return models.WorkspaceMember{}, c.notFound("update workspace member", backend.TableWorkspaceMembers, userID)
	}

	c.Invalidate(cache.Keys()...)
	return updated[0], nil
}

// RemoveMember removes a user from the workspace. Members can leave on
// their own, the last owner cannot.
func (c *Client) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	q := backend.NewQuery().Eq("workspace_id", workspaceID).Eq("user_id", userID)
	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.WorkspaceMembers().Delete(ctx, q)
	})
	if err != nil {
		return c.fail("remove workspace member", err)
	}

	if deleted == 0 {
		return c.notFound("remove workspace member", backend.TableWorkspaceMembers, userID)
	}

	c.Invalidate(cache.Keys()...)
	return nil
}

// WorkspaceResources lists the resources of a workspace, newest first.
func (c *Client) WorkspaceResources(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceResource, error) {
	resources, err := call(ctx, c, func(ctx context.Context) ([]models.WorkspaceResource, error) {
		return c.backend.WorkspaceResources(ctx, workspaceID)
	})
	if err != nil {
		return nil, c.fail("workspace resources", err)
	}

	return resources, nil
}

func (c *Client) IsWorkspaceMember(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	member, err := call(ctx, c, func(ctx context.Context) (bool, error) {
		return c.backend.IsWorkspaceMember(ctx, workspaceID)
	})
	if err != nil {
		return false, c.fail("is workspace member", err)
	}

	return member, nil
}

// HasWorkspaceRole reports if the principal has one of the roles in the workspace.
func (c *Client) HasWorkspaceRole(ctx context.Context, workspaceID uuid.UUID, roles ...models.WorkspaceRole) (bool, error) {
	has, err := call(ctx, c, func(ctx context.Context) (bool, error) {
		return c.backend.HasWorkspaceRole(ctx, workspaceID, roles...)
	})
	if err != nil {
		return false, c.fail("has workspace role", err)
	}

	return has, nil
}
