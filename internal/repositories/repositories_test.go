package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestKVStore(t *testing.T) {
	store := NewKVStore(setupDB(t))

	t.Run("Get Missing Key", func(t *testing.T) {
		_, ok, err := store.Get("missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("missing key should report absent")
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		if err := store.Set("greeting", "hello"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		value, ok, err := store.Get("greeting")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || value != "hello" {
			t.Errorf("expected hello, got %q (found=%v)", value, ok)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		store.Set("greeting", "first")
		store.Set("greeting", "second")

		value, _, _ := store.Get("greeting")
		if value != "second" {
			t.Errorf("expected second, got %q", value)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		store.Set("a", "1")
		store.Set("b", "2")

		if err := store.Remove("a", "b", "nonexistent"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		if _, ok, _ := store.Get("a"); ok {
			t.Error("removed key should be absent")
		}
	})

	t.Run("JSON Round Trip", func(t *testing.T) {
		creds := models.Credentials{
			ClientID:     "id",
			ClientSecret: "secret",
			ExpiresAt:    12345,
		}

		if err := store.SetJSON("credentials", creds); err != nil {
			t.Fatalf("SetJSON failed: %v", err)
		}

		var loaded models.Credentials
		ok, err := store.GetJSON("credentials", &loaded)
		if err != nil {
			t.Fatalf("GetJSON failed: %v", err)
		}
		if !ok {
			t.Fatal("expected credentials to be present")
		}
		if loaded != creds {
			t.Errorf("round trip mismatch: %+v != %+v", loaded, creds)
		}
	})

	t.Run("GetJSON Corrupt Value", func(t *testing.T) {
		store.Set("corrupt", "{not json")

		var dest map[string]string
		if _, err := store.GetJSON("corrupt", &dest); err == nil {
			t.Error("expected decode error for corrupt value")
		}
	})
}

func TestSearchCache(t *testing.T) {
	t.Run("Put And Get", func(t *testing.T) {
		cache := NewSearchCache(setupDB(t), time.Hour)

		if err := cache.Put("Never Gonna Give You Up", "track", []byte(`{"tracks":[]}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		data, ok, err := cache.Get("never gonna  give you up", "track")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok {
			t.Fatal("expected cache hit for normalized query")
		}
		if string(data) != `{"tracks":[]}` {
			t.Errorf("unexpected cached payload: %s", data)
		}
	})

	t.Run("Kind Isolation", func(t *testing.T) {
		cache := NewSearchCache(setupDB(t), time.Hour)
		cache.Put("query", "track", []byte("t"))

		if _, ok, _ := cache.Get("query", "album"); ok {
			t.Error("album lookup should not hit track cache entry")
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		cache := NewSearchCache(setupDB(t), time.Hour)
		cache.Put("stale", "track", []byte("x"))

		cache.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		if _, ok, _ := cache.Get("stale", "track"); ok {
			t.Error("expired entry should miss")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		cache := NewSearchCache(setupDB(t), time.Hour)
		cache.Put("q", "track", []byte("x"))

		if err := cache.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if _, ok, _ := cache.Get("q", "track"); ok {
			t.Error("cache should be empty after Clear")
		}
	})
}

func TestHistoryRepository(t *testing.T) {
	t.Run("Newest First", func(t *testing.T) {
		repo := NewHistoryRepository(setupDB(t), 10)

		repo.Add("first", "track")
		time.Sleep(2 * time.Millisecond)
		repo.Add("second", "album")

		entries, err := repo.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Query != "second" {
			t.Errorf("expected newest entry first, got %q", entries[0].Query)
		}
	})

	t.Run("Cap Enforced", func(t *testing.T) {
		repo := NewHistoryRepository(setupDB(t), 3)

		for _, q := range []string{"a", "b", "c", "d", "e"} {
			if err := repo.Add(q, "track"); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			time.Sleep(2 * time.Millisecond)
		}

		entries, _ := repo.List()
		if len(entries) != 3 {
			t.Fatalf("expected history capped at 3, got %d", len(entries))
		}
		if entries[0].Query != "e" {
			t.Errorf("expected newest entry e, got %q", entries[0].Query)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewHistoryRepository(setupDB(t), 10)
		repo.Add("query", "track")

		if err := repo.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		entries, _ := repo.List()
		if len(entries) != 0 {
			t.Errorf("expected empty history, got %d entries", len(entries))
		}
	})
}

func TestStatsRepository(t *testing.T) {
	repo := NewStatsRepository(setupDB(t))

	tracks := []models.TrackDetail{
		{ID: "t1", ArtistName: "Artist A", ReleaseDate: "1987-07-27", DurationMS: 213000},
		{ID: "t2", ArtistName: "Artist A", ReleaseDate: "1989-03-01", DurationMS: 180000},
		{ID: "t3", ArtistName: "Artist B", ReleaseDate: "2021", DurationMS: 240000},
	}
	for i := range tracks {
		if err := repo.Record(&tracks[i]); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	// Refetching must not double count.
	if err := repo.Record(&tracks[0]); err != nil {
		t.Fatalf("Record refetch failed: %v", err)
	}

	stats, err := repo.Summarize()
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if stats.TotalTracks != 3 {
		t.Errorf("expected 3 tracks, got %d", stats.TotalTracks)
	}
	if stats.UniqueArtists != 2 {
		t.Errorf("expected 2 unique artists, got %d", stats.UniqueArtists)
	}
	if stats.Decades["1980s"] != 2 {
		t.Errorf("expected 2 tracks in 1980s, got %d", stats.Decades["1980s"])
	}
	if stats.Decades["2020s"] != 1 {
		t.Errorf("expected 1 track in 2020s, got %d", stats.Decades["2020s"])
	}
	if stats.AverageDuration != 211 {
		t.Errorf("expected average duration 211s, got %d", stats.AverageDuration)
	}
}
