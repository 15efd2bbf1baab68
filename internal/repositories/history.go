package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

// defaultHistoryMax matches the original extension's search history cap.
const defaultHistoryMax = 10

// HistoryRepository persists a capped, newest-first ring of user searches.
type HistoryRepository struct {
	db  *sql.DB
	max int
}

// NewHistoryRepository creates a HistoryRepository. A max of 0 uses the
// default cap of 10 entries.
func NewHistoryRepository(db *sql.DB, max int) *HistoryRepository {
	if max <= 0 {
		max = defaultHistoryMax
	}
	return &HistoryRepository{db: db, max: max}
}

// Add records a search and trims the history to the cap, discarding the
// oldest entries first.
func (r *HistoryRepository) Add(query, kind string) error {
	entry := models.HistoryEntry{
		ID:        shared.GenerateID(),
		Query:     query,
		Kind:      kind,
		Timestamp: time.Now().UnixMilli(),
	}

	_, err := r.db.Exec(
		"INSERT INTO search_history (id, query, kind, ts) VALUES (?, ?, ?, ?)",
		entry.ID, entry.Query, entry.Kind, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	_, err = r.db.Exec(`
		DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY ts DESC LIMIT ?
		)
	`, r.max)
	if err != nil {
		return fmt.Errorf("failed to trim search history: %w", err)
	}

	return nil
}

// List returns history entries, newest first.
func (r *HistoryRepository) List() ([]models.HistoryEntry, error) {
	rows, err := r.db.Query("SELECT id, query, kind, ts FROM search_history ORDER BY ts DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Kind, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear removes all history entries.
func (r *HistoryRepository) Clear() error {
	return clearTable(r.db, "search_history")
}
