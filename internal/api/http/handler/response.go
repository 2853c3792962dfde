package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/auth-service/internal/apierrors"
)

const unprocessableMessage = "Unprocessable request body"

// maxBodyBytes bounds request bodies; larger bodies are unprocessable.
const maxBodyBytes = 64 << 10

var validate = validator.New(validator.WithRequiredStructEnabled())

var errUnprocessable = errors.New("unprocessable request body")

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the client-visible message of err. Internal causes are not exposed.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnprocessable) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: unprocessableMessage})
		return
	}
	apiErr := apierrors.From(err)
	writeJSON(w, apiErr.HTTPCode, errorResponse{Error: apiErr.Message})
}

// decodeJSON decodes the body into v and checks that required fields are present.
// Fields that are present but invalid are left to the services.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errUnprocessable, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errUnprocessable, err)
	}
	return nil
}
