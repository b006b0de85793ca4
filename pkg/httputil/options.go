package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

func options(c *gin.Context, allow string) {
	c.Header("allow", allow)
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	options(c, "OPTIONS, GET")
}

func OptionsPost(c *gin.Context) {
	options(c, "OPTIONS, POST")
}

func OptionsGetPost(c *gin.Context) {
	options(c, "OPTIONS, GET, POST")
}

func OptionsGetPatchDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, PATCH, DELETE")
}

func OptionsPatchDelete(c *gin.Context) {
	options(c, "OPTIONS, PATCH, DELETE")
}

func OptionsDelete(c *gin.Context) {
	options(c, "OPTIONS, DELETE")
}
