package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope codes. 0 means success; non-zero identifies the failure class
// so clients can branch without parsing messages.
const (
	codeOK             = 0
	codeValidation     = 1001
	codeMarketNotFound = 1002
	codeGateway        = 1003
	codeInternal       = 1099
)

// dataEnvelope is the success wrapper. Data has no omitempty: an empty
// result still serializes as an empty array, which clients rely on.
type dataEnvelope struct {
	Code int `json:"code"`
	Data any `json:"data"`
}

// errorEnvelope is the failure wrapper.
type errorEnvelope struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteData writes a 200 success envelope with code 0.
func WriteData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, dataEnvelope{Code: codeOK, Data: data})
}

// WriteError writes an error envelope with the given HTTP status, envelope
// code, error code, and human-readable message.
func WriteError(w http.ResponseWriter, status, code int, errorCode, message string) {
	writeJSON(w, status, errorEnvelope{
		Code:    code,
		Error:   errorCode,
		Message: message,
	})
}

// writeJSON writes a JSON response with the given status code.
// Sets Content-Type to application/json before writing the status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // Write error intentionally ignored in response helper
}

// ParseJSON decodes the request body as JSON into v. Unknown fields are
// tolerated: clients historically send the account field on every
// endpoint.
func ParseJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
