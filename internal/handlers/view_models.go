package handlers

import (
	"time"

	"brainsmath/internal/models"
)

// resultView is the wire shape of a single test result
type resultView struct {
	ID         int64     `json:"id"`
	Mode       string    `json:"mode"`
	QPM        float64   `json:"qpm"`
	Raw        float64   `json:"raw"`
	Accuracy   int       `json:"accuracy"`
	Difficulty int       `json:"difficulty"`
	Number     int       `json:"number"`
	TimeMs     int       `json:"time"`
	Creation   time.Time `json:"creation"`
}

func newResultView(result *models.Result) resultView {
	return resultView{
		ID:         result.ID,
		Mode:       result.Mode,
		QPM:        result.QPM,
		Raw:        result.Raw,
		Accuracy:   result.Accuracy,
		Difficulty: result.Difficulty,
		Number:     result.Number,
		TimeMs:     result.TimeMs,
		Creation:   result.Creation,
	}
}

// newResultViews converts a result history for the wire, never marshaling
// as null: an empty history is an empty array.
func newResultViews(results []models.Result) []resultView {
	views := make([]resultView, 0, len(results))
	for i := range results {
		views = append(views, newResultView(&results[i]))
	}
	return views
}

// bestScoresView keeps every cell present, null when no result exists yet.
// Go marshals int-keyed maps with string keys, matching the wire format.
type bestScoresView struct {
	Time      map[int]map[int]*resultView `json:"time"`
	Questions map[int]map[int]*resultView `json:"questions"`
}

func newBestScoresView(scores models.BestScores) bestScoresView {
	view := bestScoresView{
		Time:      make(map[int]map[int]*resultView, len(scores.Time)),
		Questions: make(map[int]map[int]*resultView, len(scores.Questions)),
	}
	for seconds, cells := range scores.Time {
		view.Time[seconds] = viewCells(cells)
	}
	for count, cells := range scores.Questions {
		view.Questions[count] = viewCells(cells)
	}
	return view
}

func viewCells(cells map[int]*models.Result) map[int]*resultView {
	row := make(map[int]*resultView, len(cells))
	for difficulty, result := range cells {
		if result == nil {
			row[difficulty] = nil
			continue
		}
		v := newResultView(result)
		row[difficulty] = &v
	}
	return row
}

// streakView matches the client's expected field names
type streakView struct {
	Current int `json:"user_streak"`
	Longest int `json:"longest_streak"`
}

type leaderboardEntryView struct {
	Rank     int        `json:"rank"`
	Username string     `json:"username"`
	Result   resultView `json:"result"`
}

type leaderboardPageView struct {
	Entries    []leaderboardEntryView `json:"entries"`
	TotalPages int                    `json:"total_pages"`
}

func newLeaderboardPageView(page *models.LeaderboardPage) leaderboardPageView {
	view := leaderboardPageView{
		Entries:    make([]leaderboardEntryView, 0, len(page.Entries)),
		TotalPages: page.TotalPages,
	}
	for i := range page.Entries {
		view.Entries = append(view.Entries, newLeaderboardEntryView(&page.Entries[i]))
	}
	return view
}

func newLeaderboardEntryView(entry *models.LeaderboardEntry) leaderboardEntryView {
	return leaderboardEntryView{
		Rank:     entry.Rank,
		Username: entry.Username,
		Result:   newResultView(&entry.Result),
	}
}
