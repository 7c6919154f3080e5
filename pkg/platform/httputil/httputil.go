// Package httputil centralizes JSON response and error envelope helpers so
// every handler emits the same shapes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"givelink/pkg/domainerrors"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope. Internal
// errors omit the description so store and dependency detail never leaks to
// callers.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeInternal
	message := ""

	var derr domainerrors.Error
	if errors.As(err, &derr) {
		code = derr.Code
		message = derr.Message
	}

	status := domainerrors.ToHTTPStatus(code)
	body := map[string]string{"error": string(code)}
	if message != "" && status < http.StatusInternalServerError {
		body["error_description"] = message
	}
	WriteJSON(w, status, body)
}
