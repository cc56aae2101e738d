package models

// BestScores is the per-user best-result matrix, derived fresh per request.
// Time cells are keyed by duration in seconds (30, 60, 120, 180), question
// cells by question count (5, 10, 15, 25); the inner maps are keyed by
// difficulty 1..5. Every cell is always present; nil means no result yet.
type BestScores struct {
	Time      map[int]map[int]*Result
	Questions map[int]map[int]*Result
}

// NewBestScores builds an empty matrix with every canonical cell present
func NewBestScores() BestScores {
	scores := BestScores{
		Time:      make(map[int]map[int]*Result, len(TimeBucketsMs)),
		Questions: make(map[int]map[int]*Result, len(QuestionBuckets)),
	}
	for _, ms := range TimeBucketsMs {
		cells := make(map[int]*Result, MaxDifficulty)
		for d := MinDifficulty; d <= MaxDifficulty; d++ {
			cells[d] = nil
		}
		scores.Time[ms/1000] = cells
	}
	for _, n := range QuestionBuckets {
		cells := make(map[int]*Result, MaxDifficulty)
		for d := MinDifficulty; d <= MaxDifficulty; d++ {
			cells[d] = nil
		}
		scores.Questions[n] = cells
	}
	return scores
}

// StreakSummary describes a user's consecutive-day practice runs. Both values
// default to 1 when the user has at most one practice day.
type StreakSummary struct {
	Current int
	Longest int
}

// LeaderboardEntry is one ranked row: a user's single best qualifying result
type LeaderboardEntry struct {
	Rank     int
	Username string
	Result   Result
}

// LeaderboardPage is one page of the global ranking
type LeaderboardPage struct {
	Entries    []LeaderboardEntry
	TotalPages int
}
