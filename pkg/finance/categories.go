package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
)

var categoryKeys = []cache.Key{cache.Categories, cache.Transactions, cache.Budgets, cache.CategorySummary}

// CategoryInput is the data of a category to create or update.
type CategoryInput struct {
	Name        string              `json:"name"`
	Type        models.CategoryType `json:"type"`
	Icon        *string             `json:"icon"`
	Color       *string             `json:"color"`
	WorkspaceID *uuid.UUID          `json:"workspace_id"`
}

func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", msgRequired)
	}

	if !in.Type.Valid() {
		return invalid("type", msgInvalidValue)
	}

	return nil
}

// ListCategories returns the categories by name, including the system
// categories. A nil type returns categories of all types.
func (c *Client) ListCategories(ctx context.Context, categoryType *models.CategoryType) ([]models.Category, error) {
	q := backend.NewQuery()
	if categoryType != nil {
		if !categoryType.Valid() {
			return nil, c.validation(invalid("type", msgInvalidValue))
		}
		q = q.Eq("type", *categoryType)
	}
	q = q.OrderBy("name", false)

	categories, err := read(ctx, c, cache.Categories, q.String(), func(ctx context.Context) ([]models.Category, error) {
		return c.backend.Categories().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list categories", err)
	}

	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	category, err := call(ctx, c, func(ctx context.Context) (models.Category, error) {
		return c.backend.Categories().Single(ctx, backend.ByID(id))
	})
	if err != nil {
		return models.Category{}, c.fail("get category", err)
	}

	return category, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (models.Category, error) {
	p, err := c.requireSession(ctx)
	if err != nil {
		return models.Category{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Category{}, c.validation(err)
	}

	category := models.Category{
		WorkspaceID: in.WorkspaceID,
		Name:        in.Name,
		Type:        in.Type,
		Icon:        in.Icon,
		Color:       in.Color,
	}
	category.SetOwner(p.ID)

	created, err := call(ctx, c, func(ctx context.Context) (models.Category, error) {
		return c.backend.Categories().Insert(ctx, category)
	})
	if err != nil {
		return models.Category{}, c.fail("create category", err)
	}

	c.Invalidate(categoryKeys...)
	return created, nil
}

// UpdateCategory updates a category of the principal. System categories
// cannot be changed.
func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (models.Category, error) {
	if _, err := c.requireSession(ctx); err != nil {
		return models.Category{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Category{}, c.validation(err)
	}

	patch := backend.Patch{
		"name":  strings.TrimSpace(in.Name),
		"type":  in.Type,
		"icon":  nullable(in.Icon),
		"color": nullable(in.Color),
	}

	updated, err := call(ctx, c, func(ctx context.Context) ([]models.Category, error) {
		return c.backend.Categories().Update(ctx, backend.ByID(id), patch)
	})
	if err != nil {
		return models.Category{}, c.fail("update category", err)
	}

	if len(updated) == 0 {
		return models.Category{}, c.notFound("update category", backend.TableCategories, id)
	}

	c.Invalidate(categoryKeys...)
	return updated[0], nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.Categories().Delete(ctx, backend.ByID(id))
	})
	if err != nil {
		return c.fail("delete category", err)
	}

	if deleted == 0 {
		return c.notFound("delete category", backend.TableCategories, id)
	}

	c.Invalidate(categoryKeys...)
	return nil
}
