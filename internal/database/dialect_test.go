package database

import (
	"testing"
)

func TestDialectProperties(t *testing.T) {
	tests := []struct {
		name             string
		dialect          Dialect
		driverName       string
		lastInsertId     bool
		migrationsSubdir string
	}{
		{
			name:             "sqlite",
			dialect:          NewSQLiteDialect(),
			driverName:       "sqlite3",
			lastInsertId:     true,
			migrationsSubdir: "sqlite",
		},
		{
			name:             "postgres",
			dialect:          NewPostgresDialect(),
			driverName:       "postgres",
			lastInsertId:     false,
			migrationsSubdir: "postgres",
		},
		{
			name:             "mysql",
			dialect:          NewMySQLDialect(),
			driverName:       "mysql",
			lastInsertId:     true,
			migrationsSubdir: "mysql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driverName {
				t.Errorf("DriverName() = %v, want %v", got, tt.driverName)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertId {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertId)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsSubdir)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "sqlite keeps question marks",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM results WHERE user_id = ?",
			expected: "SELECT * FROM results WHERE user_id = ?",
		},
		{
			name:     "mysql keeps question marks",
			dialect:  NewMySQLDialect(),
			query:    "SELECT * FROM results WHERE user_id = ? AND mode = ?",
			expected: "SELECT * FROM results WHERE user_id = ? AND mode = ?",
		},
		{
			name:     "postgres single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM results WHERE user_id = ?",
			expected: "SELECT * FROM results WHERE user_id = $1",
		},
		{
			name:     "postgres numbers placeholders in order",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO results (user_id, mode, qpm) VALUES (?, ?, ?)",
			expected: "INSERT INTO results (user_id, mode, qpm) VALUES ($1, $2, $3)",
		},
		{
			name:     "postgres no placeholders",
			dialect:  NewPostgresDialect(),
			query:    "SELECT COUNT(*) FROM users",
			expected: "SELECT COUNT(*) FROM users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(tt.query); got != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", got, tt.expected)
			}
		})
	}
}
