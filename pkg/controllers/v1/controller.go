// Package v1 exposes the finance client as a JSON API.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/finance"
	"github.com/walletwise/finance/pkg/httputil"
)

// Controller handles the v1 API requests.
//
// The session principal is read from the request context, see
// backend.WithPrincipal.
type Controller struct {
	Client *finance.Client
}

func New(client *finance.Client) Controller {
	return Controller{Client: client}
}

// Response is the body of all successful responses.
type Response[T any] struct {
	Data T `json:"data"`
}

// status returns the HTTP status for an error.
func status(err error) int {
	var typeError *json.UnmarshalTypeError

	switch {
	case errors.Is(err, finance.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, finance.ErrValidation),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, httputil.ErrInvalidUUID),
		errors.Is(err, httputil.ErrInvalidQueryString),
		errors.As(err, &typeError):
		return http.StatusBadRequest
	case errors.Is(err, finance.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, backend.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, backend.ErrConstraint):
		return http.StatusConflict
	case errors.Is(err, finance.ErrBackend):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// fail writes the error response. Messages of finance errors are safe to
// show, all other errors are logged and replaced.
func fail(c *gin.Context, err error) {
	body := httputil.HTTPError{Error: err.Error()}

	var e *finance.Error
	if errors.As(err, &e) {
		body.Field = e.Field
	} else if status(err) == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		body.Error = "an error occurred on the server during your request, please contact your server administrator. The request id is '" + requestid.Get(c) + "'"
	}

	c.AbortWithStatusJSON(status(err), body)
}

// respond writes the data or the error.
func respond[T any](c *gin.Context, code int, data T, err error) {
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(code, Response[T]{Data: data})
}

// done writes an empty response or the error.
func done(c *gin.Context, err error) {
	if err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// param parses the path parameter as UUID.
func param(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := httputil.UUIDFromString(c.Param(name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return id, nil
}

// bind decodes the body into a new T.
func bind[T any](c *gin.Context) (T, error) {
	var in T
	err := httputil.BindData(c, &in)
	return in, err
}
