package service

import (
	"testing"
	"time"

	"brainsmath/internal/models"
)

func timeResult(id int64, seconds, difficulty int, qpm float64) models.Result {
	return models.Result{
		ID:         id,
		Mode:       models.ModeTime,
		QPM:        qpm,
		Difficulty: difficulty,
		TimeMs:     seconds * 1000,
	}
}

func TestAggregateBestScoresEmpty(t *testing.T) {
	scores := aggregateBestScores(nil)

	if got := len(scores.Time); got != len(models.TimeBucketsMs) {
		t.Errorf("time buckets = %d, want %d", got, len(models.TimeBucketsMs))
	}
	if got := len(scores.Questions); got != len(models.QuestionBuckets) {
		t.Errorf("question buckets = %d, want %d", got, len(models.QuestionBuckets))
	}
	for seconds, cells := range scores.Time {
		if len(cells) != models.MaxDifficulty {
			t.Errorf("time[%d] has %d cells, want %d", seconds, len(cells), models.MaxDifficulty)
		}
		for difficulty, cell := range cells {
			if cell != nil {
				t.Errorf("time[%d][%d] = %v, want nil", seconds, difficulty, cell)
			}
		}
	}
}

func TestAggregateBestScoresPicksHighest(t *testing.T) {
	results := []models.Result{
		timeResult(1, 60, 3, 50),
		timeResult(2, 60, 3, 75),
		timeResult(3, 60, 3, 60),
	}

	scores := aggregateBestScores(results)

	best := scores.Time[60][3]
	if best == nil {
		t.Fatal("expected a best result at time[60][3]")
	}
	if best.QPM != 75 {
		t.Errorf("best qpm = %v, want 75", best.QPM)
	}
	if best.ID != 2 {
		t.Errorf("best id = %v, want 2", best.ID)
	}
	if scores.Time[60][4] != nil {
		t.Errorf("time[60][4] = %v, want nil", scores.Time[60][4])
	}
}

func TestAggregateBestScoresTieKeepsEarliest(t *testing.T) {
	// id-ascending input, strictly-greater replacement: first submission wins
	results := []models.Result{
		timeResult(5, 30, 2, 80),
		timeResult(9, 30, 2, 80),
	}

	scores := aggregateBestScores(results)

	best := scores.Time[30][2]
	if best == nil {
		t.Fatal("expected a best result at time[30][2]")
	}
	if best.ID != 5 {
		t.Errorf("best id = %v, want 5 (earliest on tie)", best.ID)
	}
}

func TestAggregateBestScoresSeparatesModes(t *testing.T) {
	results := []models.Result{
		timeResult(1, 60, 1, 40),
		{ID: 2, Mode: models.ModeQuestions, QPM: 55, Difficulty: 1, Number: 10},
	}

	scores := aggregateBestScores(results)

	if scores.Time[60][1] == nil || scores.Time[60][1].QPM != 40 {
		t.Errorf("time[60][1] = %v, want qpm 40", scores.Time[60][1])
	}
	if scores.Questions[10][1] == nil || scores.Questions[10][1].QPM != 55 {
		t.Errorf("questions[10][1] = %v, want qpm 55", scores.Questions[10][1])
	}
}

func TestAggregateBestScoresSkipsUnknownBuckets(t *testing.T) {
	results := []models.Result{
		timeResult(1, 45, 3, 90), // 45s is not a canonical duration
	}

	scores := aggregateBestScores(results)

	for seconds, cells := range scores.Time {
		for difficulty, cell := range cells {
			if cell != nil {
				t.Errorf("time[%d][%d] = %v, want nil", seconds, difficulty, cell)
			}
		}
	}
}

func day(offset int) time.Time {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		times   []time.Time
		current int
		longest int
	}{
		{"no results", nil, 1, 1},
		{"single day", []time.Time{day(0)}, 1, 1},
		{"five consecutive days", []time.Time{day(0), day(1), day(2), day(3), day(4)}, 5, 5},
		{"broken run", []time.Time{day(0), day(1), day(2), day(3), day(4), day(8), day(9), day(10)}, 3, 5},
		{"gap resets current", []time.Time{day(0), day(1), day(5)}, 1, 2},
		{"same day twice counts once", []time.Time{day(0), day(0).Add(3 * time.Hour), day(1)}, 2, 2},
		{"unordered input", []time.Time{day(2), day(0), day(1)}, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeStreak(tt.times)
			if got.Current != tt.current || got.Longest != tt.longest {
				t.Errorf("computeStreak() = {%d, %d}, want {%d, %d}",
					got.Current, got.Longest, tt.current, tt.longest)
			}
		})
	}
}

func TestDayNumberCrossesMidnight(t *testing.T) {
	before := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)
	after := time.Date(2026, time.March, 2, 0, 1, 0, 0, time.UTC)

	if dayNumber(after)-dayNumber(before) != 1 {
		t.Errorf("expected adjacent days, got %d and %d", dayNumber(before), dayNumber(after))
	}
}
