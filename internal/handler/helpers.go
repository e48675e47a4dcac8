package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/service"
)

// The API speaks the envelope the web client already understands:
// success {"code":200,"message":...,"data":{...}} and
// error {"code":N,"error":...,"request_data":{...}}.

func writeSuccess(w http.ResponseWriter, logger zerolog.Logger, message string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	logger.Info().Str("message", message).Msg("request succeeded")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"code":    http.StatusOK,
		"message": message,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, status int, message string, requestData any) {
	if requestData == nil {
		requestData = map[string]any{}
	}
	logger.Error().Int("code", status).Str("error", message).Interface("request_data", requestData).Msg("request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":         status,
		"error":        message,
		"request_data": requestData,
	})
}

// decodeInto parses the JSON request body. An empty or malformed body is a
// validation failure for every endpoint, reported the same way.
func decodeInto(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

const emptyBodyMsg = "request body must be non-empty JSON"

// statusFor maps the service error taxonomy onto envelope codes.
func statusFor(err error) int {
	var notFound *service.NotFoundError
	var validation *service.ValidationError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrDuplicateUser),
		errors.Is(err, service.ErrDuplicateGroup),
		errors.Is(err, service.ErrSelfFriend),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrNotMember):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
