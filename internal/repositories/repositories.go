// package repositories provides SQLite persistence for the lookup service.
//
// Four stores back the application:
//   - [KVStore] : generic key-value storage (credentials, cached token, saved inputs)
//   - [SearchCache] : raw catalog search responses keyed by normalized query
//   - [HistoryRepository] : capped ring of user-initiated searches
//   - [StatsRepository] : aggregate statistics over fetched tracks
package repositories

import (
	"database/sql"
	"fmt"
)

// clearTable removes every row from the named table. Shared by the Clear
// operations of the individual repositories.
func clearTable(db *sql.DB, table string) error {
	if _, err := db.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}
