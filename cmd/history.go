package main

import (
	"context"
	"sort"
	"time"

	"github.com/urfave/cli/v3"
)

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// History lists recent searches, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.history.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		return r.writePlainln("No recent searches.")
	}

	r.writePlainHeader("Recent Searches")
	for i, entry := range entries {
		ts := time.UnixMilli(entry.Timestamp).Format("2006-01-02 15:04")
		r.writePlain("%d. [%s] %s (%s)\n", i+1, entry.Kind, entry.Query, ts)
	}

	return nil
}

// HistoryClear removes all history entries.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.history.Clear(); err != nil {
		return err
	}

	return r.writePlainln("✓ Search history cleared")
}

// Stats summarizes every track fetched so far.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.stats.Summarize()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlainHeader("Track Statistics")
	r.writePlain("Tracks fetched: %d\n", stats.TotalTracks)
	r.writePlain("Unique artists: %d\n", stats.UniqueArtists)

	if stats.AverageDuration > 0 {
		r.writePlain("Average duration: %d:%02d\n", stats.AverageDuration/60, stats.AverageDuration%60)
	}

	if len(stats.Decades) > 0 {
		r.writePlain("\nBy decade:\n")
		for _, decade := range sortedKeys(stats.Decades) {
			r.writePlain("  %s: %d\n", decade, stats.Decades[decade])
		}
	}

	return nil
}

// StatsClear removes all recorded track statistics.
func (r *Runner) StatsClear(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.stats.Clear(); err != nil {
		return err
	}

	return r.writePlainln("✓ Track statistics cleared")
}
