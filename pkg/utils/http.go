package utils

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

func DecodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ErrorResponse is the error body shape of the order API.
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
}

func WriteError(w http.ResponseWriter, code int, errs ...string) error {
	return WriteJSON(w, ErrorResponse{Status: code, Errors: errs}, code)
}
