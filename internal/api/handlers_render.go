package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dgallion1/vidbrief/internal/parser"
	"github.com/dgallion1/vidbrief/internal/render"
)

type renderRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRenderBytes)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	doc := parser.StructurePayload(req.Text)

	switch strings.ToLower(req.Format) {
	case "", "html":
		resp, err := newDocumentResponse("", doc)
		if err != nil {
			s.log.Error("render html", "error", err)
			jsonError(w, "failed to render document", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case "json":
		writeJSON(w, http.StatusOK, map[string]any{"document": doc})
	case "markdown":
		writeJSON(w, http.StatusOK, map[string]any{
			"markdown": render.Markdown(doc),
			"document": doc,
		})
	default:
		jsonError(w, "format must be html, json or markdown", http.StatusBadRequest)
	}
}
