package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/dgallion1/vidbrief/internal/parser"
	"github.com/dgallion1/vidbrief/internal/render"
	"github.com/dgallion1/vidbrief/internal/report"
	"github.com/go-chi/chi/v5"
)

// maxQuestionBytes bounds the ask request body.
const maxQuestionBytes = 64 << 10

func (s *Server) videoID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := backend.ExtractVideoID(chi.URLParam(r, "videoID"))
	if err != nil {
		backendError(w, err)
		return "", false
	}
	return id, true
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := backend.ExtractVideoID(r.URL.Query().Get("url"))
	if err != nil {
		backendError(w, err)
		return
	}

	meta, err := s.backend.Metadata(r.Context(), id)
	if err != nil {
		s.log.Warn("metadata failed", "video_id", id, "error", err)
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.videoID(w, r)
	if !ok {
		return
	}
	kind, err := backend.ParseSummaryType(r.URL.Query().Get("type"))
	if err != nil {
		jsonError(w, "type must be short or detailed", http.StatusBadRequest)
		return
	}
	log := s.log.With("video_id", id, "type", kind)

	text, err := s.backend.Summary(r.Context(), id, kind)
	if err != nil {
		log.Warn("summary failed", "error", err)
		backendError(w, err)
		return
	}

	resp, err := newDocumentResponse(id, parser.StructurePayload(text))
	if err != nil {
		log.Error("render summary", "error", err)
		jsonError(w, "failed to render summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type askRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type askResponse struct {
	documentResponse
	SessionID   string          `json:"session_id"`
	Metrics     *report.Section `json:"metrics,omitempty"`
	MetricsHTML string          `json:"metrics_html,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	id, ok := s.videoID(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuestionBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	sess := s.sessions.Resolve(req.SessionID, id)
	log := s.log.With("video_id", id, "session_id", sess.ID)

	answer, err := s.backend.Ask(r.Context(), id, question, sess.History())
	if err != nil {
		log.Warn("ask failed", "error", err)
		backendError(w, err)
		return
	}
	sess.Append(backend.Exchange{Question: question, Answer: answer.Text})

	doc, err := newDocumentResponse(id, parser.StructurePayload(answer.Text))
	if err != nil {
		log.Error("render answer", "error", err)
		jsonError(w, "failed to render answer", http.StatusInternalServerError)
		return
	}
	resp := askResponse{documentResponse: doc, SessionID: sess.ID}
	if m := report.LayoutMetrics(answer.Metrics); m != nil {
		resp.Metrics = m
		if resp.MetricsHTML, err = render.SectionHTML(m); err != nil {
			log.Error("render metrics", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	id, ok := s.videoID(w, r)
	if !ok {
		return
	}
	log := s.log.With("video_id", id)

	payload, err := s.backend.Insights(r.Context(), id)
	if err != nil {
		log.Warn("insights failed", "error", err)
		backendError(w, err)
		return
	}

	resp, err := newDocumentResponse(id, parser.StructurePayload(payload))
	if err != nil {
		log.Error("render insights", "error", err)
		jsonError(w, "failed to render insights", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	id, ok := s.videoID(w, r)
	if !ok {
		return
	}
	log := s.log.With("video_id", id)

	rep, err := s.backend.Entities(r.Context(), id)
	if err != nil {
		log.Warn("entities failed", "error", err)
		backendError(w, err)
		return
	}

	layout := report.LayoutReport(rep)
	out, err := render.ReportHTML(layout)
	if err != nil {
		log.Error("render report", "error", err)
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"video_id": id,
		"html":     out,
		"layout":   layout,
	})
}
