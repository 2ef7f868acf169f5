// Package server exposes a match against the MCTS agent over HTTP: the
// current position, a move endpoint for the human side, and a websocket
// that streams the search metrics behind every engine reply.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"mcts/agent"
	"mcts/game"
	"mcts/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Server struct {
	mu     sync.Mutex
	state  game.State
	human  game.Player
	engine *agent.MCTSAgent

	upgrader websocket.Upgrader
	subMu    sync.Mutex
	subs     map[*websocket.Conn]struct{}
}

// New serves the given position with the engine playing the side opposite
// to human.
func New(initial game.State, human game.Player, engine *agent.MCTSAgent) *Server {
	return &Server{
		state:  initial,
		human:  human,
		engine: engine,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[*websocket.Conn]struct{}),
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/state", s.handleState)
	r.Post("/api/move", s.handleMove)
	r.Get("/ws/metrics", s.handleMetricsSocket)
	return r
}

func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("serving match")
	return http.ListenAndServe(addr, s.Router())
}

type stateDTO struct {
	Board      string   `json:"board"`
	Player     string   `json:"player"`
	Over       bool     `json:"over"`
	Result     string   `json:"result,omitempty"`
	LegalMoves []string `json:"legal_moves"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type metricsEvent struct {
	Move string `json:"move"`
	searcher.SearchMetric
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dto := s.snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, dto)
}

// snapshot renders the current position. Caller holds s.mu.
func (s *Server) snapshot() stateDTO {
	dto := stateDTO{
		Board:  fmt.Sprintf("%v", s.state),
		Player: s.state.CurrentPlayer().String(),
		Over:   s.state.GameOver(),
	}
	if result, ok := s.state.Result(); ok {
		dto.Result = result.String()
	} else {
		for _, m := range s.state.LegalMoves(s.state.CurrentPlayer()) {
			dto.LegalMoves = append(dto.LegalMoves, m.String())
		}
	}
	return dto
}

// handleMove applies the human's move, then lets the engine reply until it
// is the human's turn again (covers pass moves).
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.GameOver() || s.state.CurrentPlayer() != s.human {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "not your turn"})
		return
	}

	move := s.matchMove(req.Move)
	if move == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "illegal move"})
		return
	}
	if err := s.apply(s.human, move); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	for !s.state.GameOver() && s.state.CurrentPlayer() != s.human {
		reply, err := s.engine.PickMove(s.state)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if err := s.apply(s.state.CurrentPlayer(), reply); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		s.broadcast(metricsEvent{Move: reply.String(), SearchMetric: s.engine.LastSearch()})
	}

	writeJSON(w, http.StatusOK, s.snapshot())
}

// matchMove resolves the wire representation against the legal moves of the
// side to act. Caller holds s.mu.
func (s *Server) matchMove(wire string) game.Move {
	for _, m := range s.state.LegalMoves(s.state.CurrentPlayer()) {
		if m.String() == wire {
			return m
		}
	}
	return nil
}

// apply plays the move and keeps the engine's tree in sync. Caller holds
// s.mu.
func (s *Server) apply(player game.Player, move game.Move) error {
	next := s.state.Play(move)
	if err := s.engine.ObserveAction(player, move, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Server) handleMetricsSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	s.subMu.Lock()
	s.subs[conn] = struct{}{}
	s.subMu.Unlock()

	// Reader loop only detects closure; inbound messages are ignored
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcast(event metricsEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal metrics event")
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for conn := range s.subs {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(s.subs, conn)
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	conn.Close()
	s.subMu.Lock()
	delete(s.subs, conn)
	s.subMu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}
