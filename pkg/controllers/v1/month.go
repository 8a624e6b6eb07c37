package v1

import (
	"fmt"
	"net/http"

	"github.com/OuterCloud/family-account-book/pkg/analytics"
	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type MonthLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/months/2023-10"`                                 // The report itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?from=2023-10-01&until=2023-10-31"` // The transactions of the month
}

// Month is the report for a month.
type Month struct {
	analytics.Report
	Currency string     `json:"currency" example:"¥"` // The currency for all amounts
	Links    MonthLinks `json:"links"`
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                                                       // Data for the month
	Error *string `json:"error,omitempty" example:"could not parse the month, use the YYYY-MM format"` // The error, if any occurred
}

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", OptionsMonth)
	r.GET("/:month", co.GetMonth)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get monthly report
// @Description	Returns the expenses per category, their percentages, the incomes and the balance for a month
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [get]
func (co Controller) GetMonth(c *gin.Context) {
	month, err := httputil.ParseMonth(c.Param("month"))
	if err != nil {
		abort(c, err)
		return
	}

	report, err := co.Analytics.MonthlyReport(c.Request.Context(), month.Year(), int(month.Month()))
	if err != nil {
		abort(c, err)
		return
	}

	url := c.GetString(string(models.ContextURL))
	start, end := month.Window()

	c.JSON(http.StatusOK, MonthResponse{Data: &Month{
		Report:   report,
		Currency: co.currency(),
		Links: MonthLinks{
			Self:         fmt.Sprintf("%s/v1/months/%s", url, month),
			Transactions: fmt.Sprintf("%s/v1/transactions?from=%s&until=%s", url, start.Format("2006-01-02"), end.AddDate(0, 0, -1).Format("2006-01-02")),
		},
	}})
}

// currency returns the currency symbol for the locale of the controller.
func (co Controller) currency() string {
	unit, confidence := currency.FromTag(co.Locale)
	if confidence == language.No {
		return ""
	}

	return fmt.Sprintf("%s", currency.Symbol(unit))
}
