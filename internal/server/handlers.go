package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/star-refiner/internal/db"
	"github.com/jonathan/star-refiner/internal/types"
)

// ChatResponse represents the response for /chat
type ChatResponse struct {
	STARAnswer types.STARAnswer    `json:"star_answer"`
	Feedback   *types.Critique     `json:"feedback,omitempty"`
	History    []types.HistoryItem `json:"history"`
	Metadata   ChatMetadata        `json:"metadata"`
}

// ChatMetadata carries the run outcome alongside the echoed request fields
type ChatMetadata struct {
	Status        string  `json:"status"`
	HighestRating float64 `json:"highest_rating"`
	Role          string  `json:"role"`
	Industry      string  `json:"industry"`
	Question      string  `json:"question"`
	ErrorMessage  string  `json:"error_message,omitempty"`
}

// handleChat runs the full refinement loop for one request
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	payload, state := s.orch.Run(r.Context(), req)

	resp := ChatResponse{
		STARAnswer: payload.Answer,
		Feedback:   bestCritique(payload.History, state.HighestIteration),
		History:    payload.History,
		Metadata: ChatMetadata{
			Status:        string(state.Status),
			HighestRating: state.HighestRating,
			Role:          req.Role,
			Industry:      req.Industry,
			Question:      req.Question,
			ErrorMessage:  state.ErrorMessage,
		},
	}

	s.jsonResponse(w, HTTPStatus(state.Status), resp)
}

// bestCritique finds the critique of the highest-rated iteration
func bestCritique(history []types.HistoryItem, iteration int) *types.Critique {
	for i := range history {
		if history[i].Iteration == iteration {
			return &history[i].Critique
		}
	}
	return nil
}

// handleListRuns returns recent runs from the database
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	runs, err := s.database.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns one run with its iteration history
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	runID := r.PathValue("id")
	run, err := s.database.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	iterations, err := s.database.GetIterations(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"run":        run,
		"iterations": iterations,
	})
}
