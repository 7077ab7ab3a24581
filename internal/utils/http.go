package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTrailingData is returned by DecodeJSON when the body holds more than
// one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// internalErrorBody is written when a response value cannot be marshaled.
const internalErrorBody = `{"error":"Internal Server Error"}`

// WriteJSON marshals data and writes it with statusCode. If data cannot be
// marshaled the client gets a JSON 500 instead and the error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) error {
	body, err := json.Marshal(data)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body = []byte(internalErrorBody)
		err = fmt.Errorf("error writing data to JSON: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if _, writeErr := w.Write(body); writeErr != nil && err == nil {
		err = writeErr
	}
	return err
}

// DecodeJSON decodes the request body into v keeping numbers as
// json.Number. An empty body is reported as io.EOF so callers can tell it
// apart from malformed JSON.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return io.EOF
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}
