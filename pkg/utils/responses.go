package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Response is the success envelope.
type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	StatusCode int               `json:"statusCode"`
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Stack      []string          `json:"stack,omitempty"`
}

// WriteJSON writes payload as JSON with the given status code
func WriteJSON(w http.ResponseWriter, code int, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(append(body, '\n'))
	return err
}

// ResponseJSON writes the {data, message} envelope
func ResponseJSON(w http.ResponseWriter, code int, message string, data any) error {
	return WriteJSON(w, code, Response{Data: data, Message: message})
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) error {
	return ResponseJSON(w, http.StatusOK, message, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) error {
	return ResponseJSON(w, http.StatusCreated, message, data)
}

// BuildMessage produces "movies listed", "movie created", "movie retrieved", ...
func BuildMessage(entity, action string) string {
	if action == "list" {
		return fmt.Sprintf("%ss %sed", entity, action)
	}
	return fmt.Sprintf("%s %sd", entity, action)
}

// CacheResponse advertises a client cache TTL. Skipped in debug mode.
func CacheResponse(w http.ResponseWriter, seconds int, debug bool) {
	if debug {
		return
	}
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(seconds))
}
