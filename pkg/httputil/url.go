package httputil

import "github.com/gin-gonic/gin"

// ContextURL is the gin context key of the public base URL of the API.
const ContextURL = "url"

// BaseURL returns the public base URL of the API.
func BaseURL(c *gin.Context) string {
	return c.GetString(ContextURL)
}
