package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"brainsmath/internal/models"
)

func TestBestScoresViewWireFormat(t *testing.T) {
	scores := models.NewBestScores()
	scores.Time[60][3] = &models.Result{ID: 1, Mode: models.ModeTime, QPM: 75, Difficulty: 3, TimeMs: 60000}

	data, err := json.Marshal(newBestScoresView(scores))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	raw := string(data)

	// int map keys marshal as strings, and empty cells stay as explicit nulls
	if !strings.Contains(raw, `"60"`) {
		t.Errorf("expected string bucket key \"60\" in %s", raw)
	}
	if !strings.Contains(raw, `"4":null`) {
		t.Errorf("expected null cells for untouched difficulties in %s", raw)
	}

	var decoded struct {
		Time map[string]map[string]*resultView `json:"time"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	best := decoded.Time["60"]["3"]
	if best == nil || best.QPM != 75 {
		t.Errorf("time.60.3 = %v, want qpm 75", best)
	}
}

func TestResultViewsMarshalAsArray(t *testing.T) {
	results := []models.Result{
		{ID: 1, Mode: models.ModeTime, QPM: 60, Difficulty: 2, TimeMs: 30000},
		{ID: 2, Mode: models.ModeQuestions, QPM: 45, Difficulty: 4, Number: 10},
	}

	data, err := json.Marshal(newResultViews(results))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("expected a JSON array, got %s: %v", data, err)
	}
	if len(decoded) != 2 {
		t.Fatalf("array has %d entries, want 2", len(decoded))
	}
	if decoded[0]["qpm"] != 60.0 || decoded[0]["mode"] != "time" {
		t.Errorf("first entry = %v, want the full serialized result", decoded[0])
	}
	if decoded[1]["number"] != 10.0 {
		t.Errorf("second entry = %v, want number 10", decoded[1])
	}

	// a user with no history serializes as [], not null
	empty, err := json.Marshal(newResultViews(nil))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("empty history marshals as %s, want []", empty)
	}
}

func TestStreakViewFieldNames(t *testing.T) {
	data, err := json.Marshal(streakView{Current: 3, Longest: 7})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["user_streak"] != 3 || decoded["longest_streak"] != 7 {
		t.Errorf("streak view = %v, want user_streak=3 longest_streak=7", decoded)
	}
}
