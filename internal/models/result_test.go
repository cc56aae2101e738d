package models

import "testing"

func TestValidTimeBucket(t *testing.T) {
	tests := []struct {
		name  string
		ms    int
		valid bool
	}{
		{"30 seconds", 30000, true},
		{"1 minute", 60000, true},
		{"2 minutes", 120000, true},
		{"3 minutes", 180000, true},
		{"zero", 0, false},
		{"seconds instead of ms", 60, false},
		{"off-bucket duration", 90000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTimeBucket(tt.ms); got != tt.valid {
				t.Errorf("ValidTimeBucket(%d) = %v, want %v", tt.ms, got, tt.valid)
			}
		})
	}
}

func TestValidQuestionBucket(t *testing.T) {
	for _, n := range QuestionBuckets {
		if !ValidQuestionBucket(n) {
			t.Errorf("ValidQuestionBucket(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, 1, 20, 50} {
		if ValidQuestionBucket(n) {
			t.Errorf("ValidQuestionBucket(%d) = true, want false", n)
		}
	}
}

func TestNewBestScoresIsComplete(t *testing.T) {
	scores := NewBestScores()

	if len(scores.Time) != 4 {
		t.Fatalf("expected 4 time buckets, got %d", len(scores.Time))
	}
	if len(scores.Questions) != 4 {
		t.Fatalf("expected 4 question buckets, got %d", len(scores.Questions))
	}

	for _, seconds := range []int{30, 60, 120, 180} {
		cells, ok := scores.Time[seconds]
		if !ok {
			t.Fatalf("missing time bucket %d", seconds)
		}
		if len(cells) != 5 {
			t.Errorf("time bucket %d has %d cells, want 5", seconds, len(cells))
		}
		for d := MinDifficulty; d <= MaxDifficulty; d++ {
			if cell, ok := cells[d]; !ok || cell != nil {
				t.Errorf("time bucket %d difficulty %d: want present empty cell", seconds, d)
			}
		}
	}

	for _, n := range QuestionBuckets {
		cells, ok := scores.Questions[n]
		if !ok {
			t.Fatalf("missing question bucket %d", n)
		}
		if len(cells) != 5 {
			t.Errorf("question bucket %d has %d cells, want 5", n, len(cells))
		}
	}
}
