package datagov

import "errors"

var (
	ErrRetryableRequest = errors.New("retryable data.gov.in request failed")
	ErrNonRetryable     = errors.New("non-retryable data.gov.in error")
	ErrMalformedPage    = errors.New("malformed data.gov.in page")
)
