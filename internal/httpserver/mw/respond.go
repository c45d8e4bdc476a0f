package mw

import (
	"encoding/json"
	"net/http"
)

type messageBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// reject ends the request with a JSON error body shaped like the handlers' errors.
func reject(w http.ResponseWriter, status int, message string) {
	var body messageBody
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
