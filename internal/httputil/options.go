package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// options answers a preflight request with the allowed verbs.
func options(c *gin.Context, allowed string) {
	c.Header("allow", allowed)
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context)            { options(c, "OPTIONS, GET") }
func OptionsPost(c *gin.Context)           { options(c, "OPTIONS, POST") }
func OptionsGetPost(c *gin.Context)        { options(c, "OPTIONS, GET, POST") }
func OptionsGetPatchDelete(c *gin.Context) { options(c, "OPTIONS, GET, PATCH, DELETE") }
