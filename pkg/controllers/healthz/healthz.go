// Package healthz reports if the backend can reach its database.
package healthz

import (
	"net/http"

	"github.com/OuterCloud/family-account-book/pkg/httperrors"
	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	r.OPTIONS("", Options)
	r.GET("", Get(db))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the handler for the health check.
//
// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/healthz [get]
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}

		if err != nil {
			err = models.TranslateError(err)
			c.JSON(httperrors.Status(err), httperrors.HTTPError{
				Error: err.Error(),
			})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
