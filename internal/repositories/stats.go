package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dren-arifi/isrcfind/internal/models"
)

// StatsRepository records every successfully fetched track and aggregates
// usage statistics over them (totals, unique artists, decades, average
// duration).
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a StatsRepository backed by the given database.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Record stores a fetched track for statistics. Re-fetching the same track
// updates the existing row rather than double counting.
func (r *StatsRepository) Record(track *models.TrackDetail) error {
	_, err := r.db.Exec(`
		INSERT INTO fetched_tracks (track_id, artist, release_date, duration_ms, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(track_id) DO UPDATE SET fetched_at = excluded.fetched_at
	`, track.ID, track.ArtistName, track.ReleaseDate, track.DurationMS, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record track stats: %w", err)
	}
	return nil
}

// Summarize computes aggregate statistics across all recorded tracks.
func (r *StatsRepository) Summarize() (*models.Stats, error) {
	stats := &models.Stats{Decades: map[string]int{}}

	var totalDuration sql.NullInt64
	err := r.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT artist), SUM(duration_ms) FROM fetched_tracks
	`).Scan(&stats.TotalTracks, &stats.UniqueArtists, &totalDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate track stats: %w", err)
	}

	if stats.TotalTracks > 0 && totalDuration.Valid {
		stats.AverageDuration = int(totalDuration.Int64) / stats.TotalTracks / 1000
	}

	// Release dates are "YYYY", "YYYY-MM", or "YYYY-MM-DD"; the decade is
	// derived from the first three digits of the year.
	rows, err := r.db.Query(`
		SELECT substr(release_date, 1, 3) || '0s', COUNT(*)
		FROM fetched_tracks
		WHERE length(release_date) >= 4
		GROUP BY substr(release_date, 1, 3)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate decades: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			decade string
			count  int
		)
		if err := rows.Scan(&decade, &count); err != nil {
			return nil, fmt.Errorf("failed to scan decade row: %w", err)
		}
		stats.Decades[decade] = count
	}

	return stats, rows.Err()
}

// Clear removes all recorded tracks.
func (r *StatsRepository) Clear() error {
	return clearTable(r.db, "fetched_tracks")
}
