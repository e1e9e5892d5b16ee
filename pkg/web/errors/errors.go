// Package errors defines the business error codes exposed by the HTTP API.
package errors

import "net/http"

const (
	CodeOK            = 0
	CodeInvalidParams = 40001
	CodeUnauthorized  = 40002
	CodeNotFound      = 40004
	CodeConflict      = 40009
	CodeInternalError = 50000
	CodeExternalError = 50001
)

// CodeToStatus maps a business code to an HTTP status.
func CodeToStatus(code int) int {
	switch {
	case code == CodeOK:
		return http.StatusOK
	case code == CodeUnauthorized:
		return http.StatusUnauthorized
	case code == CodeNotFound:
		return http.StatusNotFound
	case code == CodeConflict:
		return http.StatusConflict
	case code >= 40000 && code < 50000:
		return http.StatusBadRequest
	case code >= 50000:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
