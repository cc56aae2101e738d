package models

import "time"

// Test modes: a test is bounded either by elapsed time or by a question count
const (
	ModeTime      = "time"
	ModeQuestions = "questions"
)

// Difficulty range for test content
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// TimeBucketsMs lists the canonical test durations in milliseconds
var TimeBucketsMs = []int{30000, 60000, 120000, 180000}

// QuestionBuckets lists the canonical question counts
var QuestionBuckets = []int{5, 10, 15, 25}

// LeaderboardTimeMs is the single scope the global leaderboard ranks on:
// the 1-minute time test
const LeaderboardTimeMs = 60000

// Result is one completed test. Rows are immutable once created; exactly one
// of Number/TimeMs is meaningful depending on Mode, the other stays zero.
type Result struct {
	ID         int64
	UserID     int64
	Mode       string
	QPM        float64
	Raw        float64
	Accuracy   int
	Difficulty int
	Number     int
	TimeMs     int
	Creation   time.Time
}

// ValidTimeBucket reports whether ms is a canonical test duration
func ValidTimeBucket(ms int) bool {
	for _, b := range TimeBucketsMs {
		if b == ms {
			return true
		}
	}
	return false
}

// ValidQuestionBucket reports whether n is a canonical question count
func ValidQuestionBucket(n int) bool {
	for _, b := range QuestionBuckets {
		if b == n {
			return true
		}
	}
	return false
}

// ValidDifficulty reports whether d is within the supported range
func ValidDifficulty(d int) bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}
