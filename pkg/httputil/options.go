package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Options returns a handler responding with an empty body and the "allow"
// header set to OPTIONS and the methods.
func Options(methods ...string) gin.HandlerFunc {
	allow := strings.Join(append([]string{http.MethodOptions}, methods...), ", ")

	return func(c *gin.Context) {
		c.Header("allow", allow)
		c.Render(http.StatusNoContent, render.JSON{})
	}
}

func OptionsGet(c *gin.Context) {
	Options(http.MethodGet)(c)
}

func OptionsGetPost(c *gin.Context) {
	Options(http.MethodGet, http.MethodPost)(c)
}

func OptionsGetPatchDelete(c *gin.Context) {
	Options(http.MethodGet, http.MethodPatch, http.MethodDelete)(c)
}
