package service

import (
	"errors"
	"fmt"

	"brainsmath/internal/models"
	"brainsmath/internal/repository"
)

// ErrNotRanked is returned when a user has no qualifying leaderboard result
var ErrNotRanked = errors.New("user has no ranked result")

// LeaderboardService serves the global 1-minute ranking
type LeaderboardService struct {
	resultRepo *repository.ResultRepository
	pageSize   int
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(resultRepo *repository.ResultRepository, pageSize int) *LeaderboardService {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &LeaderboardService{resultRepo: resultRepo, pageSize: pageSize}
}

// Page returns one page of the ranking. Page numbers are 1-based; anything
// below 1 is clamped to the first page, and pages past the end come back
// empty rather than erroring.
func (s *LeaderboardService) Page(page int) (*models.LeaderboardPage, error) {
	page = clampPage(page)

	entries, err := s.resultRepo.GetLeaderboardPage(s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard page: %w", err)
	}

	users, err := s.resultRepo.CountQualifyingUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to count leaderboard users: %w", err)
	}

	return &models.LeaderboardPage{
		Entries:    entries,
		TotalPages: totalPages(users, s.pageSize),
	}, nil
}

// UserRank returns a single user's ranked entry, or ErrNotRanked
func (s *LeaderboardService) UserRank(username string) (*models.LeaderboardEntry, error) {
	entry, err := s.resultRepo.GetUserRank(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user rank: %w", err)
	}
	if entry == nil {
		return nil, ErrNotRanked
	}
	return entry, nil
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func totalPages(users, pageSize int) int {
	if users == 0 {
		return 0
	}
	return (users + pageSize - 1) / pageSize
}
