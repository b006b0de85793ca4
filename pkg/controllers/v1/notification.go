package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
)

type NotificationQueryFilter struct {
	Unread bool `form:"unread" example:"true"` // Only unread notifications
}

// RegisterNotificationRoutes registers the routes for notifications with
// the RouterGroup that is passed.
func (co Controller) RegisterNotificationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetNotifications)
		r.POST("", co.CreateNotification)
		r.OPTIONS("/read-all", httputil.OptionsPost)
		r.POST("/read-all", co.ReadAllNotifications)
	}

	// Notification with ID
	{
		r.OPTIONS("/:id", httputil.OptionsDelete)
		r.DELETE("/:id", co.DeleteNotification)
		r.OPTIONS("/:id/read", httputil.OptionsPost)
		r.POST("/:id/read", co.ReadNotification)
	}
}

// GetNotifications returns the notifications of the signed in user,
// newest first.
//
//	@Summary		List notifications
//	@Description	Returns the notifications of the signed in user, newest first
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response[[]models.Notification]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			unread	query	bool	false	"Only unread notifications"
//	@Router			/v1/notifications [get]
func (co Controller) GetNotifications(c *gin.Context) {
	var query NotificationQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, httputil.ErrInvalidQueryString)
		return
	}

	list := co.Client.ListNotifications
	if query.Unread {
		list = co.Client.UnreadNotifications
	}

	notifications, err := list(c.Request.Context())
	respond(c, http.StatusOK, notifications, err)
}

// CreateNotification creates a notification for the signed in user.
//
//	@Summary		Create notification
//	@Description	Creates a new notification
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	Response[models.Notification]
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			notification	body	finance.NotificationInput	true	"Notification"
//	@Router			/v1/notifications [post]
func (co Controller) CreateNotification(c *gin.Context) {
	in, err := bind[finance.NotificationInput](c)
	if err != nil {
		fail(c, err)
		return
	}

	notification, err := co.Client.CreateNotification(c.Request.Context(), in)
	respond(c, http.StatusCreated, notification, err)
}

// ReadNotification marks the notification as read.
//
//	@Summary		Mark notification read
//	@Description	Marks a specific notification as read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/notifications/{id}/read [post]
func (co Controller) ReadNotification(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.MarkNotificationRead(c.Request.Context(), id))
}

// ReadAllNotifications marks all notifications of the signed in user as read.
//
//	@Summary		Mark all notifications read
//	@Description	Marks all notifications as read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/notifications/read-all [post]
func (co Controller) ReadAllNotifications(c *gin.Context) {
	done(c, co.Client.MarkAllNotificationsRead(c.Request.Context()))
}

// DeleteNotification deletes the notification.
//
//	@Summary		Delete notification
//	@Description	Deletes a specific notification
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		403	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		409	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/notifications/{id} [delete]
func (co Controller) DeleteNotification(c *gin.Context) {
	id, err := param(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	done(c, co.Client.DeleteNotification(c.Request.Context(), id))
}
