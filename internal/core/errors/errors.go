package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidQueryError      = "invalid_query"
	HttpMetricNotFoundError    = "metric_not_found"
	HttpStoreUnavailableError  = "store_unavailable"
	HttpCheckpointUnknownError = "checkpoint_unknown"
)

// ErrorResponse is the error response body for query API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
