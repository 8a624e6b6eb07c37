// Package v1 implements the v1 HTTP API of the account book.
package v1

import (
	"net/http"

	"github.com/OuterCloud/family-account-book/pkg/analytics"
	"github.com/OuterCloud/family-account-book/pkg/events"
	"github.com/OuterCloud/family-account-book/pkg/httperrors"
	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Controller holds the dependencies of all v1 handlers.
type Controller struct {
	DB        *gorm.DB
	Ledger    *ledger.Service
	Analytics *analytics.Engine
	Version   string       // Version of the backend, used in exports
	Locale    language.Tag // Locale used to determine the currency of reports
}

// New returns a Controller for the database.
func New(db *gorm.DB, publisher events.Publisher, version string, locale language.Tag) Controller {
	return Controller{
		DB:        db,
		Ledger:    ledger.New(db, publisher),
		Analytics: analytics.New(db),
		Version:   version,
		Locale:    locale,
	}
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterPersonRoutes(r.Group("/persons"))
	co.RegisterMonthRoutes(r.Group("/months"))
	co.RegisterAnalyticsRoutes(r.Group("/analytics"))
	co.RegisterExportRoutes(r.Group("/export"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of transaction list endpoint
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`     // URL of category list endpoint
	Persons      string `json:"persons" example:"https://example.com/api/v1/persons"`           // URL of person list endpoint
	Months       string `json:"months" example:"https://example.com/api/v1/months/{YYYY-MM}"`   // URL template for monthly reports
	Export       string `json:"export" example:"https://example.com/api/v1/export"`             // URL of the export endpoint
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.ContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Transactions: url + "/v1/transactions",
			Categories:   url + "/v1/categories",
			Persons:      url + "/v1/persons",
			Months:       url + "/v1/months/{YYYY-MM}",
			Export:       url + "/v1/export",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// abort writes the error response for err.
func abort(c *gin.Context, err error) {
	c.JSON(httperrors.Status(err), httperrors.HTTPError{
		Error: err.Error(),
	})
}
