package httputil

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty   = errors.New("the request body must not be empty")
	ErrInvalidUUID        = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
)

// HTTPError is the body of all error responses.
type HTTPError struct {
	Error string `json:"error" example:"The requested item does not exist."`
	Field string `json:"field,omitempty" example:"amount"` // Input field that failed validation
}

// Abort stops the request with the status and message.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg})
}
