package handlers

import (
	"log"
	"net/http"

	"brainsmath/internal/repository"
	"brainsmath/internal/service"
)

// UserHandler serves the authenticated user's profile and settings
type UserHandler struct {
	scores       *service.ScoreService
	settingsRepo *repository.SettingsRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(scores *service.ScoreService, settingsRepo *repository.SettingsRepository) *UserHandler {
	return &UserHandler{scores: scores, settingsRepo: settingsRepo}
}

// Profile handles GET /api/user, returning the full profile in one response:
// identity, best-score matrix, streak and display preferences
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	bestScores, err := h.scores.BestScores(user.ID)
	if err != nil {
		log.Printf("failed to build best scores for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	streak, err := h.scores.Streak(user.ID)
	if err != nil {
		log.Printf("failed to compute streak for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	results, err := h.scores.History(user.ID)
	if err != nil {
		log.Printf("failed to load results for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	settings, err := h.settingsRepo.GetByUser(user.ID)
	if err != nil {
		log.Printf("failed to load settings for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	theme, font := service.DefaultTheme, service.DefaultFont
	if settings != nil {
		theme, font = settings.Theme, settings.Font
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"username":    user.Username,
		"date_joined": user.CreatedAt,
		"best_scores": newBestScoresView(bestScores),
		"streak":      streakView{Current: streak.Current, Longest: streak.Longest},
		"theme":       theme,
		"font":        font,
		"tests":       newResultViews(results),
	})
}

// GetSettings handles GET /api/user/settings
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	settings, err := h.settingsRepo.GetByUser(user.ID)
	if err != nil {
		log.Printf("failed to load settings for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	theme, font := service.DefaultTheme, service.DefaultFont
	if settings != nil {
		theme, font = settings.Theme, settings.Font
	}

	respondJSON(w, http.StatusOK, map[string]string{"theme": theme, "font": font})
}

// UpdateSettings handles PUT /api/user/settings. Omitted fields keep their
// current value.
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		Theme *string `json:"theme"`
		Font  *string `json:"font"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settingsRepo.GetByUser(user.ID)
	if err != nil {
		log.Printf("failed to load settings for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	theme, font := service.DefaultTheme, service.DefaultFont
	if settings != nil {
		theme, font = settings.Theme, settings.Font
	}
	if req.Theme != nil {
		theme = *req.Theme
	}
	if req.Font != nil {
		font = *req.Font
	}

	if settings == nil {
		_, err = h.settingsRepo.Create(user.ID, theme, font)
	} else {
		err = h.settingsRepo.Update(user.ID, theme, font)
	}
	if err != nil {
		log.Printf("failed to save settings for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"theme": theme, "font": font})
}
