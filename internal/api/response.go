package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// envelope is the uniform JSON response shape
type envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Details   []string    `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func respondSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(w http.ResponseWriter, status int, name, message string, details []string) {
	writeJSON(w, status, envelope{
		Success:   false,
		Error:     name,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
