package service

import "testing"

func TestClampPage(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{100, 100},
	}

	for _, tt := range tests {
		if got := clampPage(tt.in); got != tt.want {
			t.Errorf("clampPage(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		users    int
		pageSize int
		want     int
	}{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{100, 50, 2},
		{101, 50, 3},
	}

	for _, tt := range tests {
		if got := totalPages(tt.users, tt.pageSize); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.users, tt.pageSize, got, tt.want)
		}
	}
}
