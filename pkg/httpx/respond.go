package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/nehueninos/nhnproparts/pkg/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondJSON writes data as the response body. Encode failures are logged
// with the request's logger.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func RespondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	RespondJSON(w, r, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// DecodeJSON decodes a request body, capping it at maxBytes when positive.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	return json.NewDecoder(body).Decode(dst)
}
