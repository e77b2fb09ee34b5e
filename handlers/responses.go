// Package handlers wires the HTTP routes to the estimation services. All
// handlers are closures over the PocketBase app and respond with JSON, except
// the file download endpoints.
package handlers

import (
	"github.com/pocketbase/pocketbase/core"
)

// errorResponse is the uniform error body for all JSON endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// jsonError writes a JSON error body with the given status.
func jsonError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, errorResponse{Error: message})
}
