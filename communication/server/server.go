package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"sticks/agent"
	"sticks/communication"
	"sticks/game"
	"sticks/policy"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Server exposes one learner over HTTP. Requests are serialised since the
// learner's table has a single owner.
type Server struct {
	mu      sync.Mutex
	learner *agent.Learner
	router  chi.Router
}

// New returns a server playing from table, which it owns from now on.
func New(table *policy.Table, rng policy.Rand) *Server {
	s := &Server{learner: agent.NewLearner(table, rng)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/policy", s.handlePolicy)
	r.Post("/api/move", s.handleMove)
	r.Post("/api/outcome", s.handleOutcome)
	r.Post("/api/abandon", s.handleAbandon)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("starting move service on %s ...", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req communication.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.learner.Table().Size()
	if req.Pile <= 0 || req.Pile > size {
		writeError(w, http.StatusBadRequest, "pile must be within the policy range")
		return
	}
	// A game visits each pile at most once, and the learner's hats are only
	// refilled when the game is reported.
	if s.drawn(req.Pile) || s.learner.Table().Total(req.Pile) == 0 {
		writeError(w, http.StatusConflict, "pile already played in the current game")
		return
	}

	move, err := s.learner.FindMove(game.State{Pile: req.Pile, Turn: game.Player2})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	log.Debug().Msgf("move service took %d from %d", move, req.Pile)
	writeJSON(w, http.StatusOK, communication.MoveResponse{Move: int(move)})
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	var req communication.OutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.learner.Reinforce(req.Won)
	log.Info().Bool("won", req.Won).Msg("move service reinforced its policy")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleAbandon puts back the tokens of a game that will never be reported.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.learner.Abandon()
	log.Info().Msg("move service abandoned the current game")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) drawn(pile int) bool {
	for _, segment := range s.learner.Trajectory() {
		if segment.Pile == pile {
			return true
		}
	}
	return false
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.learner.Table()
	resp := communication.PolicyResponse{
		Size:   table.Size(),
		Counts: make([][3]int, table.Size()),
	}
	for pile := 1; pile <= table.Size(); pile++ {
		resp.Counts[pile-1] = table.Counts(pile)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, communication.ErrorResponse{Error: msg})
}
