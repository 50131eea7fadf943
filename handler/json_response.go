package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message,omitempty"`
	Data      any                 `json:"data,omitempty"`
	Meta      any                 `json:"meta,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Error     string              `json:"error,omitempty"`
	Path      string              `json:"path,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
	Timestamp *time.Time          `json:"timestamp,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	return WriteJSON(w, j.status, j.body)
}

// JSON renders any value as is.
func JSON(status int, body any) Response {
	return jsonResponse{status: status, body: body}
}

// OK wraps data in a successful envelope.
func OK(data any, message string) Response {
	return JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created is OK with 201.
func Created(data any, message string) Response {
	return JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// List adds pagination metadata.
func List(data any, meta any) Response {
	return JSON(http.StatusOK, Envelope{Success: true, Data: data, Meta: meta})
}

// errorResponse defers to the ErrorHandler installed by Wrap.
type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Fail returns a Response that makes Wrap hand err to its ErrorHandler.
func Fail(err error) Response {
	return errorResponse{err: err}
}
