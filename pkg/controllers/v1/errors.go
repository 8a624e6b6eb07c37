package v1

import "errors"

var (
	errRangeNotSet = errors.New("the from and until query parameters must be set")
	errMonthNotSet = errors.New("the month query parameter must be set")
)
