package v1

import (
	"net/http"
	"time"

	"github.com/OuterCloud/family-account-book/internal/types"
	"github.com/OuterCloud/family-account-book/pkg/analytics"
	"github.com/OuterCloud/family-account-book/pkg/httputil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategorySum is the sum of the expenses of a category in a date range.
type CategorySum struct {
	Category string          `json:"category" example:"Groceries"`                    // Name of the category
	From     time.Time       `json:"from" example:"2023-10-01T00:00:00Z"`             // First day of the range
	Until    time.Time       `json:"until" example:"2023-10-31T00:00:00Z"`            // Last day of the range
	Subtree  bool            `json:"subtree" example:"false"`                         // Are expenses of child categories included?
	Amount   decimal.Decimal `json:"amount" example:"150" swaggertype:"string"`       // Sum of the expenses
}

type CategorySumResponse struct {
	Data  *CategorySum `json:"data"`                                                             // Data for the sum
	Error *string      `json:"error,omitempty" example:"the from and until query parameters must be set"` // The error, if any occurred
}

// CategorySeries contains the expenses of a category for consecutive months.
type CategorySeries struct {
	Category string                  `json:"category" example:"Groceries"` // Name of the category
	Series   []analytics.MonthAmount `json:"series"`                       // Expenses per month in chronological order
}

type CategorySeriesResponse struct {
	Data  *CategorySeries `json:"data"`                                                                       // Data for the series
	Error *string         `json:"error,omitempty" example:"could not parse the month, use the YYYY-MM format"` // The error, if any occurred
}

// CategoryPercentage is the share of a category in the expenses of a month.
type CategoryPercentage struct {
	Category   string          `json:"category" example:"Groceries"`                  // Name of the category
	Month      types.Month     `json:"month" example:"2023-10-01T00:00:00Z"`          // The month
	Percentage decimal.Decimal `json:"percentage" example:"75" swaggertype:"string"` // Percentage between 0 and 100
}

type CategoryPercentageResponse struct {
	Data  *CategoryPercentage `json:"data"`                                                         // Data for the percentage
	Error *string             `json:"error,omitempty" example:"the month query parameter must be set"` // The error, if any occurred
}

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func (co Controller) RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/categories/:name/sum", OptionsAnalytics)
	r.GET("/categories/:name/sum", co.GetCategorySum)
	r.OPTIONS("/categories/:name/series", OptionsAnalytics)
	r.GET("/categories/:name/series", co.GetCategorySeries)
	r.OPTIONS("/categories/:name/percentage", OptionsAnalytics)
	r.GET("/categories/:name/percentage", co.GetCategoryPercentage)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analytics
// @Success		204
// @Param			name	path	string	true	"Name of the category"
// @Router			/v1/analytics/categories/{name}/sum [options]
// @Router			/v1/analytics/categories/{name}/series [options]
// @Router			/v1/analytics/categories/{name}/percentage [options]
func OptionsAnalytics(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Category sum
// @Description	Returns the sum of the expenses of a category between two days, both included. Unknown categories sum up to 0.
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	CategorySumResponse
// @Failure		400		{object}	CategorySumResponse
// @Failure		500		{object}	CategorySumResponse
// @Param			name	path		string	true	"Name of the category"
// @Param			from	query		string	true	"First day, YYYY-MM-DD"
// @Param			until	query		string	true	"Last day, YYYY-MM-DD"
// @Param			subtree	query		bool	false	"Include expenses of all child categories"
// @Router			/v1/analytics/categories/{name}/sum [get]
func (co Controller) GetCategorySum(c *gin.Context) {
	from, err := httputil.ParseDate(c.Query("from"))
	if err != nil {
		abort(c, err)
		return
	}

	until, err := httputil.ParseDate(c.Query("until"))
	if err != nil {
		abort(c, err)
		return
	}

	if from.IsZero() || until.IsZero() {
		abort(c, errRangeNotSet)
		return
	}

	name := c.Param("name")
	subtree := httputil.QueryBool(c, "subtree")

	var amount decimal.Decimal
	if subtree {
		amount, err = co.Analytics.CategorySubtreeSumInRange(c.Request.Context(), name, from, until)
	} else {
		amount, err = co.Analytics.CategorySumInRange(c.Request.Context(), name, from, until)
	}

	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, CategorySumResponse{Data: &CategorySum{
		Category: name,
		From:     from,
		Until:    until,
		Subtree:  subtree,
		Amount:   amount,
	}})
}

// @Summary		Category series
// @Description	Returns the expenses of a category for every month from the first through the last month
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	CategorySeriesResponse
// @Failure		400		{object}	CategorySeriesResponse
// @Failure		500		{object}	CategorySeriesResponse
// @Param			name	path		string	true	"Name of the category"
// @Param			from	query		string	true	"First month, YYYY-MM"
// @Param			until	query		string	true	"Last month, YYYY-MM"
// @Router			/v1/analytics/categories/{name}/series [get]
func (co Controller) GetCategorySeries(c *gin.Context) {
	if c.Query("from") == "" || c.Query("until") == "" {
		abort(c, errRangeNotSet)
		return
	}

	from, err := httputil.ParseMonth(c.Query("from"))
	if err != nil {
		abort(c, err)
		return
	}

	until, err := httputil.ParseMonth(c.Query("until"))
	if err != nil {
		abort(c, err)
		return
	}

	name := c.Param("name")
	series, err := co.Analytics.PerMonthSeriesForCategory(c.Request.Context(), name, from.Year(), int(from.Month()), until.Year(), int(until.Month()))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, CategorySeriesResponse{Data: &CategorySeries{
		Category: name,
		Series:   series,
	}})
}

// @Summary		Category percentage
// @Description	Returns the share of a category in the expenses of a month
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	CategoryPercentageResponse
// @Failure		400		{object}	CategoryPercentageResponse
// @Failure		500		{object}	CategoryPercentageResponse
// @Param			name	path		string	true	"Name of the category"
// @Param			month	query		string	true	"The month, YYYY-MM"
// @Router			/v1/analytics/categories/{name}/percentage [get]
func (co Controller) GetCategoryPercentage(c *gin.Context) {
	if c.Query("month") == "" {
		abort(c, errMonthNotSet)
		return
	}

	month, err := httputil.ParseMonth(c.Query("month"))
	if err != nil {
		abort(c, err)
		return
	}

	name := c.Param("name")
	percentage, err := co.Analytics.CategoryPercentage(c.Request.Context(), name, month.Year(), int(month.Month()))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryPercentageResponse{Data: &CategoryPercentage{
		Category:   name,
		Month:      month,
		Percentage: percentage,
	}})
}
