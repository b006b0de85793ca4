package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/cache"
	"github.com/walletwise/finance/pkg/models"
)

// NotificationInput is a notification the principal sends to themselves,
// e.g. a reminder.
type NotificationInput struct {
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    models.NotificationType `json:"type"`
	Link    *string                 `json:"link"`
}

func (in NotificationInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", msgRequired)
	}

	if strings.TrimSpace(in.Message) == "" {
		return invalid("message", msgRequired)
	}

	if in.Type != "" && !in.Type.Valid() {
		return invalid("type", msgInvalidValue)
	}

	return nil
}

// ListNotifications returns the notifications of the principal, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	q := backend.NewQuery().OrderBy("created_at", true)
	notifications, err := read(ctx, c, cache.Notifications, q.String(), func(ctx context.Context) ([]models.Notification, error) {
		return c.backend.Notifications().Select(ctx, q)
	})
	if err != nil {
		return nil, c.fail("list notifications", err)
	}

	return notifications, nil
}

// UnreadNotifications returns the unread notifications of the principal, newest first.
func (c *Client) UnreadNotifications(ctx context.Context) ([]models.Notification, error) {
	notifications, err := read(ctx, c, cache.Notifications, "unread", c.backend.UnreadNotifications)
	if err != nil {
		return nil, c.fail("unread notifications", err)
	}

	return notifications, nil
}

func (c *Client) CreateNotification(ctx context.Context, in NotificationInput) (models.Notification, error) {
	p, err := c.requireSession(ctx)
	if err != nil {
		return models.Notification{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Notification{}, c.validation(err)
	}

	notification, err := call(ctx, c, func(ctx context.Context) (models.Notification, error) {
		return c.backend.Notifications().Insert(ctx, models.Notification{
			UserID:  p.ID,
			Title:   strings.TrimSpace(in.Title),
			Message: strings.TrimSpace(in.Message),
			Type:    in.Type,
			Link:    in.Link,
		})
	})
	if err != nil {
		return models.Notification{}, c.fail("create notification", err)
	}

	c.Invalidate(cache.Notifications)
	return notification, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	_, err := call(ctx, c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.backend.MarkNotificationRead(ctx, id)
	})
	if err != nil {
		return c.fail("mark notification read", err)
	}

	c.Invalidate(cache.Notifications)
	return nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	_, err := call(ctx, c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.backend.MarkAllNotificationsRead(ctx)
	})
	if err != nil {
		return c.fail("mark all notifications read", err)
	}

	c.Invalidate(cache.Notifications)
	return nil
}

func (c *Client) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	deleted, err := call(ctx, c, func(ctx context.Context) (int64, error) {
		return c.backend.Notifications().Delete(ctx, backend.ByID(id))
	})
	if err != nil {
		return c.fail("delete notification", err)
	}

	if deleted == 0 {
		return c.notFound("delete notification", backend.TableNotifications, id)
	}

	c.Invalidate(cache.Notifications)
	return nil
}
