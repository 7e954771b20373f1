package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "bookingwizard/pkg/errors"
)

// DecodeJSON reads a single JSON document from the request body into target.
// An empty body is an error unless allowEmpty is set.
func DecodeJSON(r *http.Request, target any, allowEmpty bool) error {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	if err := decoder.Decode(target); err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			if allowEmpty {
				return nil
			}
			return apperrors.InvalidInput("request body is required")
		case errors.As(err, &maxBytes):
			return apperrors.New(apperrors.CodeInvalidInput, "request body too large", http.StatusRequestEntityTooLarge)
		default:
			return apperrors.InvalidInput("invalid JSON body: " + err.Error())
		}
	}

	if decoder.More() {
		return apperrors.InvalidInput("request body must contain a single JSON document")
	}
	return nil
}
