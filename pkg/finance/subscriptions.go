package finance

import (
	"context"
	"errors"

	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
)

// ListPlans returns the plans available for subscription, cheapest first.
func (c *Client) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	q := backend.NewQuery().Eq("is_active", true).OrderBy("price", false)
	plans, err := read(ctx, c, cache.SubscriptionPlans, q.String(), func(ctx context.Context) ([]models.SubscriptionPlan, error) {
		return c.backend.SubscriptionPlans().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list plans", err)
	}

	return plans, nil
}

// ListSubscriptions returns all subscriptions of the principal with their
// plans, newest first.
func (c *Client) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	q := backend.NewQuery().Join("plan").OrderBy("created_at", true)
	subscriptions, err := read(ctx, c, cache.Subscriptions, q.String(), func(ctx context.Context) ([]models.Subscription, error) {
		return c.backend.Subscriptions().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list subscriptions", err)
	}

	return subscriptions, nil
}

// CurrentPlan returns the plan of the active subscription of the principal,
// or nil if there is none.
func (c *Client) CurrentPlan(ctx context.Context) (*models.CurrentPlan, error) {
	plan, err := read(ctx, c, cache.Subscriptions, "current", func(ctx context.Context) (*models.CurrentPlan, error) {
		plan, err := c.backend.CurrentPlan(ctx)
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &plan, nil
	})
	if err != nil {
		return nil, c.fail("current plan", err)
	}

	return plan, nil
}

func (c *Client) HasActiveSubscription(ctx context.Context) (bool, error) {
	active, err := read(ctx, c, cache.Subscriptions, "active", c.backend.HasActiveSubscription)
	if err != nil {
		return false, c.fail("has active subscription", err)
	}

	return active, nil
}
