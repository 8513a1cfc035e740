package handler

import (
	"encoding/json"
	"net/http"

	"github.com/forgo/haven/api/internal/model"
)

// DataResponse wraps a successful payload with optional HATEOAS links
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// WriteJSON writes data as a JSON body with the given status
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data envelope
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, DataResponse{Data: data, Links: links})
}

// WriteError writes an RFC 9457 problem response
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	WriteJSON(w, err.Status, err)
}

// WriteNoContent writes an empty 204 response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON decodes a request body, rejecting unknown fields
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
