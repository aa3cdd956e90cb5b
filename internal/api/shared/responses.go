package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Envelope is the response body used by every endpoint: a human-readable
// message plus the payload. Data is null on errors and on deletes, an
// integer in count mode, and a record or list of records otherwise.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// RespondWithData writes the standard envelope with the given status code,
// message and payload.
//
// Note: net/http suppresses bodies on 204 responses, so the envelope written
// for deletes is dropped on the wire; it is still visible to handler tests
// through httptest's recorder.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Message: message, Data: data}); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes an envelope with a null payload and the given
// client-facing message, and logs it at debug level with the trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithData(w, r, status, message, nil)
}

// RespondWithErrorAndLog writes a sanitized error envelope to the client and
// logs the underlying error. The raw error string is never included in the
// response body.
//
// Log level strategy: 5xx at ERROR, 4xx at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithData(w, r, status, userMessage, nil)
}
