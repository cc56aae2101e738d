package repository

import (
	"database/sql"
	"fmt"
	"time"

	"brainsmath/internal/database"
	"brainsmath/internal/models"
)

// ResultRepository handles database operations for test results. Results are
// append-only: nothing here updates or deletes rows.
type ResultRepository struct {
	db *database.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *database.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a new test result, assigning id and creation time
func (r *ResultRepository) Create(result *models.Result) (*models.Result, error) {
	now := time.Now()
	query := `
		INSERT INTO results (user_id, mode, qpm, raw, accuracy, difficulty, number, time, creation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		result.UserID,
		result.Mode,
		result.QPM,
		result.Raw,
		result.Accuracy,
		result.Difficulty,
		result.Number,
		result.TimeMs,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}

	created := *result
	created.ID = id
	created.Creation = now
	return &created, nil
}

// Restore inserts a result keeping its original creation time. Used when
// loading a backup; normal submissions go through Create.
func (r *ResultRepository) Restore(result *models.Result) error {
	query := `
		INSERT INTO results (user_id, mode, qpm, raw, accuracy, difficulty, number, time, creation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		result.UserID,
		result.Mode,
		result.QPM,
		result.Raw,
		result.Accuracy,
		result.Difficulty,
		result.Number,
		result.TimeMs,
		result.Creation,
	)
	if err != nil {
		return fmt.Errorf("failed to restore result: %w", err)
	}
	result.ID = id
	return nil
}

// GetByUser retrieves all results for a user, ordered by id ascending.
// The stable ordering matters: best-score aggregation keeps the first result
// seen on exact qpm ties, so the earliest submission wins.
func (r *ResultRepository) GetByUser(userID int64) ([]models.Result, error) {
	query := `
		SELECT id, user_id, mode, qpm, raw, accuracy, difficulty, number, time, creation
		FROM results
		WHERE user_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		var result models.Result
		if err := rows.Scan(
			&result.ID,
			&result.UserID,
			&result.Mode,
			&result.QPM,
			&result.Raw,
			&result.Accuracy,
			&result.Difficulty,
			&result.Number,
			&result.TimeMs,
			&result.Creation,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// GetCreationTimes retrieves the creation timestamps of all of a user's
// results. The streak calculator reduces these to distinct calendar dates.
func (r *ResultRepository) GetCreationTimes(userID int64) ([]time.Time, error) {
	query := "SELECT creation FROM results WHERE user_id = ?"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query result times: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var creation time.Time
		if err := rows.Scan(&creation); err != nil {
			return nil, fmt.Errorf("failed to scan result time: %w", err)
		}
		times = append(times, creation)
	}

	return times, rows.Err()
}

// leaderboardCTE picks each user's single best 1-minute result and numbers
// the survivors by descending qpm. Exact qpm ties break toward the lower id
// in both window functions, so the ranking is fully deterministic. One query
// replaces what would otherwise be a round trip per user.
const leaderboardCTE = `
	WITH best AS (
		SELECT r.id, r.user_id, r.qpm, r.raw, r.accuracy, r.difficulty, r.number, r.time, r.creation,
		       ROW_NUMBER() OVER (PARTITION BY r.user_id ORDER BY r.qpm DESC, r.id ASC) AS pick
		FROM results r
		WHERE r.mode = ? AND r.time = ?
	),
	ranked AS (
		SELECT b.id, b.user_id, b.qpm, b.raw, b.accuracy, b.difficulty, b.number, b.time, b.creation,
		       ROW_NUMBER() OVER (ORDER BY b.qpm DESC, b.id ASC) AS user_rank
		FROM best b
		WHERE b.pick = 1
	)
`

const leaderboardColumns = `
	SELECT rk.user_rank, u.username,
	       rk.id, rk.user_id, rk.qpm, rk.raw, rk.accuracy, rk.difficulty, rk.number, rk.time, rk.creation
	FROM ranked rk
	JOIN users u ON u.id = rk.user_id
`

func scanLeaderboardEntry(rows *sql.Rows) (models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	err := rows.Scan(
		&entry.Rank,
		&entry.Username,
		&entry.Result.ID,
		&entry.Result.UserID,
		&entry.Result.QPM,
		&entry.Result.Raw,
		&entry.Result.Accuracy,
		&entry.Result.Difficulty,
		&entry.Result.Number,
		&entry.Result.TimeMs,
		&entry.Result.Creation,
	)
	if err != nil {
		return entry, fmt.Errorf("failed to scan leaderboard entry: %w", err)
	}
	entry.Result.Mode = models.ModeTime
	return entry, nil
}

// GetLeaderboardPage retrieves one page of the global ranking
func (r *ResultRepository) GetLeaderboardPage(limit, offset int) ([]models.LeaderboardEntry, error) {
	query := leaderboardCTE + leaderboardColumns + `
		ORDER BY rk.user_rank
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, models.ModeTime, models.LeaderboardTimeMs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		entry, err := scanLeaderboardEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// CountQualifyingUsers counts distinct users with at least one result in the
// leaderboard scope
func (r *ResultRepository) CountQualifyingUsers() (int, error) {
	query := "SELECT COUNT(DISTINCT user_id) FROM results WHERE mode = ? AND time = ?"
	var count int
	err := r.db.QueryRow(query, models.ModeTime, models.LeaderboardTimeMs).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leaderboard users: %w", err)
	}
	return count, nil
}

// GetUserRank finds one user's position in the full ranking without paging
// through it. Returns nil when the user has no qualifying result.
func (r *ResultRepository) GetUserRank(username string) (*models.LeaderboardEntry, error) {
	query := leaderboardCTE + leaderboardColumns + `
		WHERE u.username = ?
	`
	rows, err := r.db.Query(query, models.ModeTime, models.LeaderboardTimeMs, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user rank: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query user rank: %w", err)
		}
		return nil, nil
	}

	entry, err := scanLeaderboardEntry(rows)
	if err != nil {
		return nil, err
	}
	return &entry, rows.Err()
}
