package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sozercan/listing-lens/internal/analyzer"
	"github.com/sozercan/listing-lens/internal/render"
)

const maxFormBytes = 64 << 10

// analyzeRequest is the body of POST /api/v1/analyze.
type analyzeRequest struct {
	Query string `json:"query"`
}

// analyzeResponse is the reply of POST /api/v1/analyze.
type analyzeResponse struct {
	State   string          `json:"state"`
	Message string          `json:"message,omitempty"`
	Display *render.Display `json:"display,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := s.views.Create()
	slog.Debug("Created view", "view_id", session.ID)
	s.renderPage(w, http.StatusOK, newPage(session))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	slog.Info("Handling analyze form submission")

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := s.views.Get(r.PostFormValue("view_id"))
	if !ok {
		// Expired or forged id: carry on in a fresh view.
		session = s.views.Create()
	}

	// The outbound call is bounded by the analysis timeout alone.
	ctx := context.WithoutCancel(r.Context())
	if _, applied := session.Submit(ctx, r.PostFormValue("query")); !applied {
		slog.Debug("Submission superseded", "view_id", session.ID)
	}

	s.renderPage(w, http.StatusOK, newPage(session))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	session, ok := s.views.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderPage(w, http.StatusOK, newPage(session))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	slog.Info("Handling analyze request")

	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := s.analyzer.Dispatch(context.WithoutCancel(r.Context()), req.Query)

	resp := analyzeResponse{State: state.Phase()}
	status := http.StatusOK
	switch st := state.(type) {
	case analyzer.Succeeded:
		d := render.Build(st.Result)
		resp.Display = &d
	case analyzer.Failed:
		resp.Message = st.Message
		status = http.StatusBadGateway
		if st.Kind == analyzer.FailureValidation {
			status = http.StatusBadRequest
		}
	default:
		slog.Error("Dispatch returned a non-terminal state", "phase", state.Phase())
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "page.html.tmpl", p); err != nil {
		slog.Error("Failed to render page", "view_id", p.ViewID, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
