package server

import (
	"net/http"

	"github.com/jonathan/star-refiner/internal/types"
)

// HTTPStatus maps a terminal workflow status onto an HTTP response code.
// The workflow itself never deals in HTTP codes.
func HTTPStatus(status types.Status) int {
	switch status {
	case types.StatusCompletedHighRating, types.StatusCompletedMaxIter:
		return http.StatusOK
	case types.StatusErrorInputValidation:
		return http.StatusUnprocessableEntity
	case types.StatusErrorAgentProcessing:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
