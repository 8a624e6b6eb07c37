// Package httperrors maps errors to HTTP responses.
package httperrors

import (
	"errors"
	"net/http"

	"github.com/OuterCloud/family-account-book/pkg/analytics"
	"github.com/OuterCloud/family-account-book/pkg/models"
)

var (
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty   = errors.New("the request body must not be empty")
	ErrInvalidUUID        = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
	ErrInvalidDate        = errors.New("could not parse the date, use the YYYY-MM-DD format")
	ErrInvalidMonth       = errors.New("could not parse the month, use the YYYY-MM format")
	ErrNotFound           = errors.New("there is no resource for the ID you specified")
	ErrInUse              = errors.New("the resource is still in use and cannot be deleted")
	ErrMethodNotAllowed   = errors.New("this HTTP method is not allowed for the endpoint you called")
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// Status returns the appropriate HTTP status for an error.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInUse):
		return http.StatusConflict
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, analytics.ErrInvalidMonth):
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}
