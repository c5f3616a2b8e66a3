package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies. Analytics requests carry whole
// transaction or holding lists, so the limit is generous.
const maxBodyBytes = 8 << 20

// retryAfterSeconds is advertised on upstream market data failures.
const retryAfterSeconds = 30

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	return decodeJSON[T](r, true, false)
}

// parseOptionalJSON is parseJSON for endpoints whose body may be omitted.
// An empty body yields the zero T.
func parseOptionalJSON[T any](r *http.Request) (T, error) {
	return decodeJSON[T](r, true, true)
}

// parseLenientJSON decodes records exported from other tools, so unknown
// fields are ignored.
func parseLenientJSON[T any](r *http.Request) (T, error) {
	return decodeJSON[T](r, false, false)
}

func decodeJSON[T any](r *http.Request, strict, optional bool) (T, error) {
	var req T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&req); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}
