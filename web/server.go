// Package web serves a localhost-only single-user API; it intentionally has
// no auth/CSRF protection in this mode.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"gitjrnl/github"
	"gitjrnl/journal"
	"gitjrnl/project"
)

type Server struct {
	saver  *project.Saver
	client github.Client
	mux    *http.ServeMux

	mu sync.Mutex
}

type journalResponse struct {
	ProjectName string         `json:"projectName"`
	Days        []dayView      `json:"days"`
	Total       journal.Totals `json:"total"`
}

type dayView struct {
	DayKey  string          `json:"dayKey"`
	Label   string          `json:"label"`
	Entries []journal.Entry `json:"entries"`
	Total   journal.Totals  `json:"total"`
}

type excludeRequest struct {
	SHA string `json:"sha"`
}

type overrideRequest struct {
	SHA         string  `json:"sha"`
	URL         string  `json:"url"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Duration    float64 `json:"durationMinutes"`
	Status      string  `json:"status"`
	Author      string  `json:"author"`
}

func NewServer(saver *project.Saver, client github.Client) http.Handler {
	server := &Server{
		saver:  saver,
		client: client,
		mux:    http.NewServeMux(),
	}

	server.mux.HandleFunc("GET /api/journal", server.handleAPIJournal)
	server.mux.HandleFunc("GET /api/project", server.handleAPIProject)
	server.mux.HandleFunc("POST /api/exclude", server.handleAPIExclude)
	server.mux.HandleFunc("POST /api/override", server.handleAPIOverrideCreate)
	server.mux.HandleFunc("PATCH /api/override/{id}", server.handleAPIOverridePatch)
	server.mux.HandleFunc("DELETE /api/override/{id}", server.handleAPIOverrideDelete)

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleAPIJournal(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.saver.Project()
	days, total, err := journal.Build(r.Context(), s.client, p)
	if err != nil {
		http.Error(w, fmt.Sprintf("build journal: %v", err), upstreamErrorStatus(err))
		return
	}

	views := make([]dayView, 0, len(days))
	for _, day := range days {
		views = append(views, dayView{
			DayKey:  day.DayKey,
			Label:   day.Label,
			Entries: day.Entries,
			Total:   day.Total,
		})
	}

	writeJSON(w, http.StatusOK, journalResponse{
		ProjectName: p.ProjectName,
		Days:        views,
		Total:       total,
	})
}

func (s *Server) handleAPIProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.saver.Project())
}

func (s *Server) handleAPIExclude(w http.ResponseWriter, r *http.Request) {
	var req excludeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saver.Project().Exclude(req.SHA); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.saver.Schedule()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIOverrideCreate(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.saver.Project()
	var (
		created project.Override
		err     error
	)
	if payload.SHA != "" {
		created, err = p.AddCommitPatch(payload)
	} else {
		created, err = p.AddCommitless(payload)
	}
	if err != nil {
		http.Error(w, err.Error(), overrideErrorStatus(err))
		return
	}
	s.saver.Schedule()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleAPIOverridePatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.saver.Project().EditOverride(id, payload)
	if err != nil {
		http.Error(w, err.Error(), overrideErrorStatus(err))
		return
	}
	s.saver.Schedule()

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAPIOverrideDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saver.Project().RemoveOverride(id); err != nil {
		http.Error(w, err.Error(), overrideErrorStatus(err))
		return
	}
	s.saver.Schedule()

	w.WriteHeader(http.StatusNoContent)
}

func decodePayload(w http.ResponseWriter, r *http.Request) (project.OverridePayload, bool) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return project.OverridePayload{}, false
	}
	return project.OverridePayload{
		SHA:         req.SHA,
		URL:         req.URL,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Duration:    req.Duration,
		Status:      req.Status,
		Author:      req.Author,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func overrideErrorStatus(err error) int {
	if errors.Is(err, project.ErrOverrideNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func upstreamErrorStatus(err error) int {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
