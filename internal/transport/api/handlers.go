package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/internal/service/memory"
	"github.com/sandevgo/scribe/internal/storage/docstore"
	"github.com/sandevgo/scribe/pkg/log"
)

type envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type pluginInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type statsPayload struct {
	VectorDB docstore.Stats `json:"vectorDB"`
	Memory   memory.Stats   `json:"memory"`
	Plugins  []pluginInfo   `json:"plugins"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"version": core.ScribeVersion,
	})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var msg core.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg.Text == "" || msg.SessionID == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: message and session_id")
		return
	}

	log.FromCtx(r.Context()).Info().Str("session", msg.SessionID).Msg("received message request")
	writeData(w, http.StatusOK, s.agent.Process(r.Context(), msg))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	plugins := make([]pluginInfo, 0)
	for _, p := range s.plugins.List() {
		plugins = append(plugins, pluginInfo{Name: p.Name(), Description: p.Description()})
	}

	writeData(w, http.StatusOK, statsPayload{
		VectorDB: s.docs.Stats(),
		Memory:   s.sessions.Stats(),
		Plugins:  plugins,
	})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.sessions.ClearSession(id)
	writeData(w, http.StatusOK, map[string]any{"session_id": id, "cleared": true})
}

func (s *Server) handleClearSessions(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearAllSessions()
	log.FromCtx(r.Context()).Info().Msg("all sessions cleared")
	writeData(w, http.StatusOK, map[string]any{"cleared": true})
}

func (s *Server) handleClearDocuments(w http.ResponseWriter, r *http.Request) {
	s.docs.Clear()
	log.FromCtx(r.Context()).Info().Msg("document store cleared")
	writeData(w, http.StatusOK, map[string]any{"cleared": true})
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data, Timestamp: time.Now()})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg, Timestamp: time.Now()})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
