// Package httputil contains helpers for request handling.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/OuterCloud/family-account-book/internal/types"
	"github.com/OuterCloud/family-account-book/pkg/httperrors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// BindData binds the JSON body of the request to data.
//
// Unknown fields are ignored.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return httperrors.ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return httperrors.ErrInvalidBody
	}

	return nil
}

// UUIDFromString parses a UUID. An empty string is the Nil UUID.
func UUIDFromString(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, httperrors.ErrInvalidUUID
	}

	return u, nil
}

// ParseDate parses a date in YYYY-MM-DD or RFC3339 format. An empty string
// is the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	layout := time.RFC3339
	if !strings.Contains(s, "T") {
		layout = time.DateOnly
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, httperrors.ErrInvalidDate
	}

	return t, nil
}

// ParseMonth parses a month in YYYY-MM format.
func ParseMonth(s string) (types.Month, error) {
	m, err := types.ParseMonth(s)
	if err != nil {
		return types.Month{}, httperrors.ErrInvalidMonth
	}

	return m, nil
}

var truthy = []string{"1", "t", "true", "yes"}

// QueryBool reports if the query parameter is set to a true value.
func QueryBool(c *gin.Context, key string) bool {
	return slices.Contains(truthy, strings.ToLower(c.Query(key)))
}

// QueryInt returns the integer value of the query parameter, or the default
// if it is not set.
func QueryInt(c *gin.Context, key string, defaultValue int) (int, error) {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil || i < 0 {
		return 0, httperrors.ErrInvalidQueryString
	}

	return i, nil
}
