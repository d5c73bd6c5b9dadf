package httpx

import (
	"encoding/json"
	"net/http"
)

// Error types used in the error envelope.
const (
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeRateLimited  = "rate_limited"
	ErrorTypeInternal     = "internal_error"
)

// ErrorItem is one entry of the error envelope.
type ErrorItem struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// ErrorBody is the JSON body of every non-2xx response:
//
//	{"errors":[{"type":"unauthorized","msg":"..."}]}
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// WriteJSON writes v as JSON with caching disabled.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a single-item error envelope.
func WriteError(w http.ResponseWriter, code int, typ, msg string) {
	WriteJSON(w, code, ErrorBody{Errors: []ErrorItem{{Type: typ, Msg: msg}}})
}

// NoCache prevents intermediaries from storing responses that carry tokens
// or user data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
