// Package httpx holds the JSON response and request helpers shared by the
// REST handlers and middleware.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
)

// ErrorBody is the wire shape of every error response:
//
//	{"error":{"code":"NOT_FOUND","message":"Product not found"}}
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err onto the application error taxonomy and writes it.
// Internal errors are logged with their cause; the client only sees a
// generic message.
func WriteError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	appErr := common.AsAppError(err)

	if appErr.Kind == common.KindInternal && log != nil {
		log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	WriteJSON(w, appErr.Kind.Status(), ErrorBody{Error: ErrorDetail{
		Code:    appErr.Kind.Code(),
		Message: appErr.Message,
	}})
}

// MaxJSONBodySize caps request bodies read by DecodeJSON.
const MaxJSONBodySize = 1 << 20

// DecodeJSON reads a JSON request body of at most MaxJSONBodySize bytes into
// dst. Malformed or oversized bodies become a BAD_REQUEST app error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return common.NewBadRequestError("Request body too large")
		case errors.Is(err, io.EOF):
			return common.NewBadRequestError("Request body is empty")
		default:
			return common.NewBadRequestError("Invalid JSON body")
		}
	}
	return nil
}
