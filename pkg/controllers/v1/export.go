package v1

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
)

type ExportResponse struct {
	Version      string                     `json:"version" example:"1.0.0"`                     // Version of the backend that created the export
	Data         map[string]json.RawMessage `json:"data"`                                        // All resources, keyed by the name of their model
	CreationTime time.Time                  `json:"creationTime" example:"2023-10-05T17:00:00Z"` // Time the export was created
	Clacks       string                     `json:"clacks" example:"GNU Terry Pratchett"`
}

// RegisterExportRoutes registers the routes for the export with
// the RouterGroup that is passed.
func (co Controller) RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExport)
	r.GET("", co.GetExport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export
// @Description	Exports all resources of the account book
// @Tags			Export
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	resources := make(map[string]json.RawMessage)
	db := co.DB.WithContext(c.Request.Context())

	for _, model := range models.Registry {
		b, err := model.Export(db)
		if err != nil {
			abort(c, err)
			return
		}

		resources[reflect.TypeOf(model).Name()] = b
	}

	c.JSON(http.StatusOK, ExportResponse{
		Version:      co.Version,
		Data:         resources,
		CreationTime: time.Now(),
		Clacks:       "GNU Terry Pratchett",
	})
}
