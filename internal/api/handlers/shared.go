package handlers

import (
	"encoding/json"
	"net/http"
)

// parseJSON decodes a request body into the given DTO type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}
