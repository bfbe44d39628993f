// Package storage keeps the leaderboard in an in-memory SQLite database.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Nothing is written to disk; scores live as long as the process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the leaderboard database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry represents a single finished session.
type ScoreEntry struct {
	ID        int64
	SessionID uuid.UUID
	Player    string
	Score     int
	Length    int
	CreatedAt time.Time
}

// Stats summarises every recorded session.
type Stats struct {
	Games        int
	BestScore    int
	AverageScore float64
	LongestSnake int
}

// Open creates an empty in-memory leaderboard.
// Each Store gets its own database; all connections of one Store share it.
func Open() (*Store, error) {
	dsn := fmt.Sprintf("file:snake-%s?mode=memory&cache=shared", uuid.NewString())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// An in-memory database disappears with its last connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection and drops all scores.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished session. Saving the same session twice
// keeps the first result. Returns the ID of the record.
func (s *Store) SaveScore(sessionID uuid.UUID, player string, score, length int) (int64, error) {
	if player == "" {
		player = "anonymous"
	}

	result, err := s.db.Exec(
		`INSERT INTO scores (session_id, player, score, length, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO NOTHING`,
		sessionID.String(), player, score, length, s.now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		var id int64
		err := s.db.QueryRow("SELECT id FROM scores WHERE session_id = ?", sessionID.String()).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot look up existing score: %w", err)
		}
		return id, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N sessions, highest score first.
// Ties go to the earlier session.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, score, length, created_at
		 FROM scores
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var sessionID string
		var createdAt int64
		if err := rows.Scan(&e.ID, &sessionID, &e.Player, &e.Score, &e.Length, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if e.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, fmt.Errorf("storage: bad session id %q: %w", sessionID, err)
		}
		e.CreatedAt = time.Unix(0, createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded score.
// Returns 0 if no scores exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats aggregates all recorded sessions.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var best, longest sql.NullInt64
	var avg sql.NullFloat64

	err := s.db.QueryRow(
		"SELECT COUNT(*), MAX(score), AVG(score), MAX(length) FROM scores",
	).Scan(&st.Games, &best, &avg, &longest)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.AverageScore = avg.Float64
	st.LongestSnake = int(longest.Int64)
	return st, nil
}
