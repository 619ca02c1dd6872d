// internal/app/system/webjson/webjson.go

// Package webjson holds the small helpers every JSON handler uses for
// writing responses and decoding request bodies.
package webjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Write marshals v and writes it with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error envelope for the API.
type errorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error writes a generic error response.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, errorBody{Message: message})
}

// ErrorCode writes an error response carrying a machine-readable code,
// used by auth failures so clients can distinguish expired from invalid
// tokens.
func ErrorCode(w http.ResponseWriter, status int, message, code string) {
	Write(w, status, errorBody{Message: message, Code: code})
}

// ValidationError writes a 400 with per-field detail.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	Write(w, http.StatusBadRequest, errorBody{Message: "validation failed", Fields: fields})
}

// StoreError logs a store failure with context and writes a 500. Handlers
// call this for any error that is not one of a store's sentinel values so
// driver errors never leak to clients.
func StoreError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	}
	Error(w, http.StatusInternalServerError, "internal error")
}

var errBodyTooLarge = errors.New("request body too large")

// maxBodyBytes caps JSON request bodies. The API has no upload endpoints;
// anything bigger than this is not a legitimate request.
const maxBodyBytes = 1 << 20

// Decode reads a JSON request body into dst. It returns an error suitable
// for a 400 response when the body is missing, malformed, or oversized.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.New("request body is required")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return errors.New("malformed JSON body")
	}
	return nil
}
