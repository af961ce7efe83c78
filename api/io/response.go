package io

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Response is the envelope every API endpoint returns.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Metadata  interface{} `json:"metadata,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ListMetadata accompanies paginated list responses. Total is the
// filtered count before pagination was applied.
type ListMetadata struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func writeJSON(log *zap.SugaredLogger, w http.ResponseWriter, body Response, statusCode int) {
	body.Timestamp = time.Now().UTC().Format(time.RFC3339)

	jsonData, err := json.Marshal(body)
	if err != nil {
		log.With("err", err).Error("marshalling JSON")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		log.With("err", err).Error("writing response")
	}
}

// Respond sends a success envelope to the client.
func Respond(ctx context.Context, log *zap.SugaredLogger, w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(log, w, Response{Success: true, Data: data}, statusCode)
}

// RespondList sends a success envelope with pagination metadata.
func RespondList(ctx context.Context, log *zap.SugaredLogger, w http.ResponseWriter, data interface{}, meta ListMetadata) {
	writeJSON(log, w, Response{Success: true, Data: data, Metadata: meta}, http.StatusOK)
}

// RespondError sends an error envelope back to the client and logs the
// error internally. If the error is of type *Error its message and
// status are sent back; otherwise a HTTP 500 with an opaque message is
// returned to avoid leaking anything from the server.
func RespondError(ctx context.Context, log *zap.SugaredLogger, w http.ResponseWriter, err error) {
	log.With("err", err).Error("web handler error")

	if webErr, ok := errors.Cause(err).(*Error); ok {
		body := Response{
			Error:   webErr.Err.Error(),
			Details: details(webErr),
		}
		writeJSON(log, w, body, webErr.Status)
		return
	}

	writeJSON(log, w, Response{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
}

func details(e *Error) interface{} {
	if len(e.Fields) == 0 {
		return nil
	}
	return e.Fields
}

// RespondNotFound reports a missing record.
func RespondNotFound(ctx context.Context, log *zap.SugaredLogger, w http.ResponseWriter, what string) {
	writeJSON(log, w, Response{Error: what + " not found"}, http.StatusNotFound)
}

// RespondNotImplemented marks a recognised but unimplemented route.
func RespondNotImplemented(ctx context.Context, log *zap.SugaredLogger, w http.ResponseWriter) {
	writeJSON(log, w, Response{Error: "not implemented"}, http.StatusNotImplemented)
}
