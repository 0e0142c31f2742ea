package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bridge/internal/bridge"
	"github.com/robalobadob/bridge/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/move", s.handleMove)
	r.Post("/game/retry", s.handleRetry)
	r.Get("/game/{id}", s.handleStatus)
}

type newGameReq struct {
	Size string `json:"size"` // raw text, validated like console input
}

type moveReq struct {
	GameID    string `json:"gameId"`
	Direction string `json:"direction"` // "U" | "D"
}

type retryReq struct {
	GameID  string `json:"gameId"`
	Command string `json:"command"` // "R" | "Q"
}

type laneMap struct {
	Up   []bridge.Cell `json:"up"`
	Down []bridge.Cell `json:"down"`
}

// gameRes is the common status payload.
type gameRes struct {
	GameID string  `json:"gameId"`
	Size   int     `json:"size"`
	State  string  `json:"state"` // "in_progress" | "failed" | "crossed"
	Tries  int     `json:"tries"`
	Map    laneMap `json:"map"`
	Ended  bool    `json:"ended"`
	Result string  `json:"result,omitempty"` // "success" | "failure" once ended
	Retry  *bool   `json:"retry,omitempty"`
}

func statusOf(g *bridge.Game) gameRes {
	snap := g.Snapshot()
	res := gameRes{
		GameID: g.ID,
		Size:   g.Len(),
		State:  snap.State.String(),
		Tries:  snap.Tries,
		Map:    laneMap{Up: snap.Row(bridge.Up), Down: snap.Row(bridge.Down)},
		Ended:  g.Ended(),
	}
	if res.Ended {
		res.Result = g.Result()
	}
	return res
}

// handleNewGame builds a bridge and installs it as the current session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErr(w, "bad_json", http.StatusBadRequest)
		return
	}
	size, err := bridge.ParseLength(req.Size)
	if err != nil {
		writeJSONErr(w, "invalid_length", http.StatusBadRequest)
		return
	}
	b, err := bridge.Build(size, s.gen())
	if err != nil {
		log.Error().Err(err).Msg("build bridge")
		writeJSONErr(w, "build_failed", http.StatusInternalServerError)
		return
	}
	g := bridge.New(b)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeJSONErr(w, "save_failed", http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", g.ID).Int("size", size).Msg("new game")
	_ = json.NewEncoder(w).Encode(statusOf(g))
}

// handleMove steps onto one lane of the current session.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErr(w, "bad_json", http.StatusBadRequest)
		return
	}
	lane, err := bridge.ParseDirection(req.Direction)
	if err != nil {
		writeJSONErr(w, "invalid_direction", http.StatusBadRequest)
		return
	}
	var res gameRes
	err = s.store.Do(r.Context(), req.GameID, func(g *bridge.Game) error {
		if _, err := g.Move(lane); err != nil {
			return err
		}
		res = statusOf(g)
		return nil
	})
	if err != nil {
		writeGameErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleRetry applies retry/quit after a failed attempt.
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	var req retryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErr(w, "bad_json", http.StatusBadRequest)
		return
	}
	cmd, err := bridge.ParseCommand(req.Command)
	if err != nil {
		writeJSONErr(w, "invalid_command", http.StatusBadRequest)
		return
	}
	var res gameRes
	err = s.store.Do(r.Context(), req.GameID, func(g *bridge.Game) error {
		again, err := g.Retry(cmd)
		if err != nil {
			return err
		}
		res = statusOf(g)
		res.Retry = &again
		return nil
	})
	if err != nil {
		writeGameErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleStatus reports the session without changing it.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var res gameRes
	err := s.store.Do(r.Context(), chi.URLParam(r, "id"), func(g *bridge.Game) error {
		res = statusOf(g)
		return nil
	})
	if err != nil {
		writeGameErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// writeGameErr maps store/state-machine errors to HTTP statuses.
func writeGameErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONErr(w, "not_found", http.StatusNotFound)
	case errors.Is(err, bridge.ErrGameOver):
		writeJSONErr(w, "move_not_allowed", http.StatusConflict)
	case errors.Is(err, bridge.ErrNotFailed):
		writeJSONErr(w, "retry_not_allowed", http.StatusConflict)
	default:
		log.Warn().Err(err).Msg("game request")
		writeJSONErr(w, "internal", http.StatusInternalServerError)
	}
}
