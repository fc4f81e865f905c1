package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/dgallion1/vidbrief/internal/doctree"
	"github.com/dgallion1/vidbrief/internal/render"
)

// documentResponse carries a structured text payload in both forms.
type documentResponse struct {
	VideoID  string            `json:"video_id,omitempty"`
	HTML     string            `json:"html"`
	Document *doctree.Document `json:"document"`
}

func newDocumentResponse(videoID string, doc *doctree.Document) (documentResponse, error) {
	out, err := render.HTML(doc)
	if err != nil {
		return documentResponse{}, err
	}
	return documentResponse{VideoID: videoID, HTML: out, Document: doc}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// backendStatus maps a backend failure to the status returned to callers.
func backendStatus(err error) int {
	var se *backend.ServerError
	switch {
	case errors.Is(err, backend.ErrInvalidVideo):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &se) && se.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// backendError answers with the user-facing message for err.
func backendError(w http.ResponseWriter, err error) {
	jsonError(w, backend.UserMessage(err), backendStatus(err))
}
