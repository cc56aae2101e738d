package service

import (
	"fmt"
	"sort"
	"time"

	"brainsmath/internal/models"
	"brainsmath/internal/repository"
	"brainsmath/internal/validation"
)

// ScoreService derives best-score matrices and practice streaks from a user's
// result history. Nothing is precomputed; every call reads the current rows.
type ScoreService struct {
	resultRepo *repository.ResultRepository
}

// NewScoreService creates a new score service
func NewScoreService(resultRepo *repository.ResultRepository) *ScoreService {
	return &ScoreService{resultRepo: resultRepo}
}

// Submit validates and stores a completed test for a user
func (s *ScoreService) Submit(userID int64, result *models.Result) (*models.Result, error) {
	if err := validation.ValidateResult(result); err != nil {
		return nil, err
	}
	result.UserID = userID
	return s.resultRepo.Create(result)
}

// History returns all of a user's results, oldest first
func (s *ScoreService) History(userID int64) ([]models.Result, error) {
	return s.resultRepo.GetByUser(userID)
}

// BestScores builds the full best-result matrix for a user
func (s *ScoreService) BestScores(userID int64) (models.BestScores, error) {
	results, err := s.resultRepo.GetByUser(userID)
	if err != nil {
		return models.BestScores{}, fmt.Errorf("failed to load results: %w", err)
	}
	return aggregateBestScores(results), nil
}

// Streak summarizes a user's consecutive-day practice runs
func (s *ScoreService) Streak(userID int64) (models.StreakSummary, error) {
	times, err := s.resultRepo.GetCreationTimes(userID)
	if err != nil {
		return models.StreakSummary{}, fmt.Errorf("failed to load result times: %w", err)
	}
	return computeStreak(times), nil
}

// aggregateBestScores reduces a result history to the per-cell best. A result
// replaces the held one only on strictly greater qpm, so with id-ascending
// input the earliest submission wins exact ties. Results in unknown buckets
// are skipped rather than rejected.
func aggregateBestScores(results []models.Result) models.BestScores {
	scores := models.NewBestScores()
	for i := range results {
		result := &results[i]

		var row map[int]*models.Result
		var ok bool
		switch result.Mode {
		case models.ModeTime:
			row, ok = scores.Time[result.TimeMs/1000]
		case models.ModeQuestions:
			row, ok = scores.Questions[result.Number]
		}
		if !ok {
			continue
		}
		if _, known := row[result.Difficulty]; !known {
			continue
		}

		if held := row[result.Difficulty]; held == nil || result.QPM > held.QPM {
			row[result.Difficulty] = result
		}
	}
	return scores
}

// dayNumber maps a timestamp to its UTC calendar day as a day count since the
// epoch. Truncating to midnight before dividing sidesteps DST-length days.
func dayNumber(t time.Time) int64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Unix() / 86400
}

// computeStreak walks the distinct practice days in order. The current streak
// is the run ending on the most recent day; a user with at most one practice
// day reports 1 for both values.
func computeStreak(times []time.Time) models.StreakSummary {
	if len(times) == 0 {
		return models.StreakSummary{Current: 1, Longest: 1}
	}

	seen := make(map[int64]struct{}, len(times))
	for _, t := range times {
		seen[dayNumber(t)] = struct{}{}
	}

	days := make([]int64, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	current := 1
	longest := 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}

	return models.StreakSummary{Current: current, Longest: longest}
}
