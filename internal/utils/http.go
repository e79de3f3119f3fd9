package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodySize caps JSON request bodies read by ReadJSON.
const MaxRequestBodySize = 1 << 20

var (
	ErrEmptyBody     = errors.New("request body is empty")
	ErrMalformedJSON = errors.New("request body contains malformed JSON")
	ErrBodyTooLarge  = errors.New("request body is too large")
)

// WriteJSON serializes data to JSON and writes it with statusCode.
//
// It sets the "Content-Type" header to "application/json". If marshaling
// fails, it responds with 500 Internal Server Error and returns a wrapped
// error.
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ReadJSON decodes a single JSON value from the request body into dst.
//
// Fields of the payload that dst does not declare are silently dropped, so
// the decoded value holds only whitelisted properties. Trailing data after the
// first value, an empty body and bodies above MaxRequestBodySize are errors.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &maxBytesErr):
			return ErrBodyTooLarge
		default:
			return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
		}
	}

	if decoder.More() {
		return fmt.Errorf("%w: body must contain a single JSON value", ErrMalformedJSON)
	}

	return nil
}
