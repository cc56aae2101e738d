package handlers

import (
	"errors"
	"log"
	"net/http"

	"brainsmath/internal/models"
	"brainsmath/internal/service"
	"brainsmath/internal/validation"
)

// ResultHandler serves test submission
type ResultHandler struct {
	scores *service.ScoreService
}

// NewResultHandler creates a new result handler
func NewResultHandler(scores *service.ScoreService) *ResultHandler {
	return &ResultHandler{scores: scores}
}

// Submit handles POST /api/tests
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		Mode       string  `json:"mode"`
		QPM        float64 `json:"qpm"`
		Raw        float64 `json:"raw"`
		Accuracy   int     `json:"accuracy"`
		Difficulty int     `json:"difficulty"`
		Number     int     `json:"number"`
		TimeMs     int     `json:"time"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := &models.Result{
		Mode:       req.Mode,
		QPM:        req.QPM,
		Raw:        req.Raw,
		Accuracy:   req.Accuracy,
		Difficulty: req.Difficulty,
		Number:     req.Number,
		TimeMs:     req.TimeMs,
	}

	created, err := h.scores.Submit(user.ID, result)
	if err != nil {
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		log.Printf("failed to store result for %s: %v", user.Username, err)
		respondError(w, http.StatusInternalServerError, "failed to store result")
		return
	}

	respondJSON(w, http.StatusCreated, newResultView(created))
}
