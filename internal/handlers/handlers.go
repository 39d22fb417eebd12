package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/derekprior/courtdraw/internal/format"
	"github.com/derekprior/courtdraw/internal/schedule"
	"github.com/derekprior/courtdraw/internal/strategy"
)

// Handler serves draws over HTTP. It holds no per-draw state.
type Handler struct {
	labels format.Labels
}

// NewHandler creates a new handler
func NewHandler(labels format.Labels) *Handler {
	return &Handler{labels: labels.WithDefaults()}
}

// DrawRequest is the body of POST /api/v1/draw.
type DrawRequest struct {
	Players string `json:"players"`
	Courts  string `json:"courts"`
	Mode    string `json:"mode"`
	Seed    *int64 `json:"seed,omitempty"`
}

// MatchJSON is one match. B is null for a bye.
type MatchJSON struct {
	A       []string `json:"a"`
	B       []string `json:"b"`
	Bye     bool     `json:"bye"`
	Display string   `json:"display"`
}

// CourtJSON is one allocation entry. Match is null for an empty court.
type CourtJSON struct {
	Court   string     `json:"court"`
	Match   *MatchJSON `json:"match"`
	Display string     `json:"display"`
}

type PlacementJSON struct {
	Player    string   `json:"player"`
	Court     string   `json:"court,omitempty"`
	Status    string   `json:"status"`
	Partner   string   `json:"partner,omitempty"`
	Opponents []string `json:"opponents"`
}

// DrawResponse is the result of a draw.
type DrawResponse struct {
	Mode       string          `json:"mode"`
	Allocation []CourtJSON     `json:"allocation"`
	Waiting    []MatchJSON     `json:"waiting"`
	Placements []PlacementJSON `json:"placements"`
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "courtdraw",
	})
}

// Draw pairs the posted roster and allocates courts.
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	var req DrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	mode, err := strategy.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	result, err := schedule.GenerateFromText(req.Players, req.Courts, mode, rand.New(rand.NewSource(seed)))
	if errors.Is(err, schedule.ErrMissingInput) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logrus.WithError(err).Error("draw failed")
		respondError(w, http.StatusInternalServerError, "draw failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"mode":    mode,
		"seed":    seed,
		"courts":  len(result.Assignments),
		"waiting": len(result.Waiting),
	}).Debug("draw generated")

	respondJSON(w, http.StatusOK, h.toResponse(result))
}

func (h *Handler) toResponse(result *schedule.Result) DrawResponse {
	resp := DrawResponse{
		Mode:       string(result.Mode),
		Allocation: make([]CourtJSON, 0, len(result.Assignments)),
		Waiting:    make([]MatchJSON, 0, len(result.Waiting)),
		Placements: make([]PlacementJSON, 0, len(result.Placements)),
	}
	for _, a := range result.Assignments {
		c := CourtJSON{Court: a.Court, Display: h.labels.Match(a.Match)}
		if a.Match != nil {
			m := h.matchJSON(*a.Match)
			c.Match = &m
		}
		resp.Allocation = append(resp.Allocation, c)
	}
	for _, m := range result.Waiting {
		resp.Waiting = append(resp.Waiting, h.matchJSON(m))
	}
	for _, p := range result.Placements {
		opponents := p.Opponents
		if opponents == nil {
			opponents = []string{}
		}
		resp.Placements = append(resp.Placements, PlacementJSON{
			Player:    p.Player,
			Court:     p.Court,
			Status:    string(p.Status),
			Partner:   p.Partner,
			Opponents: opponents,
		})
	}
	return resp
}

func (h *Handler) matchJSON(m strategy.Match) MatchJSON {
	out := MatchJSON{
		A:       m.A.Players,
		Bye:     m.Bye(),
		Display: h.labels.Match(&m),
	}
	if m.B != nil {
		out.B = m.B.Players
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Warn("encoding response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
