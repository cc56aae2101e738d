package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"brainsmath/internal/service"
)

// LeaderboardHandler serves the global ranking
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Page handles GET /api/leaderboard?page=N. A missing or unparseable page
// falls back to the first page.
func (h *LeaderboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.leaderboard.Page(parsePage(r.URL.Query().Get("page")))
	if err != nil {
		log.Printf("failed to load leaderboard: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, newLeaderboardPageView(page))
}

// UserRank handles GET /api/leaderboard/rank?username=name
func (h *LeaderboardHandler) UserRank(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}

	entry, err := h.leaderboard.UserRank(username)
	if err != nil {
		if errors.Is(err, service.ErrNotRanked) {
			respondError(w, http.StatusNotFound, "user has no ranked result")
			return
		}
		log.Printf("failed to load rank for %s: %v", username, err)
		respondError(w, http.StatusInternalServerError, "failed to load rank")
		return
	}

	respondJSON(w, http.StatusOK, newLeaderboardEntryView(entry))
}

func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
