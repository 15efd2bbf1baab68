package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v3"

	"github.com/dren-arifi/isrcfind/internal/formatter"
	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/services"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

// resolveID accepts either a catalog link or a bare resource ID.
func resolveID(ref, kind string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: %s link or ID required", shared.ErrMissingArgument, kind)
	}

	if strings.Contains(ref, "spotify.com/") {
		return services.ParseSpotifyID(ref, kind)
	}

	return ref, nil
}

// FetchTrack fetches full track metadata and records it for statistics.
func (r *Runner) FetchTrack(ctx context.Context, cmd *cli.Command) error {
	id, err := resolveID(cmd.StringArg("ref"), "track")
	if err != nil {
		return err
	}

	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	track, err := s.catalog.GetTrack(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch track: %w", err)
	}

	if err := s.stats.Record(track); err != nil {
		r.logger.Warn("recording track stats", "error", err)
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(track, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		r.writePlainHeader(fmt.Sprintf("%s - %s", track.ArtistName, track.Name))
		r.writePlainln("Album:      %s (%s)", track.AlbumName, track.ReleaseDate)
		r.writePlainln("Duration:   %s", formatter.FormatMillis(track.DurationMS))
		r.writePlainln("Popularity: %d", track.Popularity)
		r.writePlainln("ISRC:       %s", track.ISRC)
		r.writePlainln("UPC:        %s", track.UPC)
		if track.Features != nil {
			r.writePlainln(
				"Audio:      danceability %.2f, energy %.2f, tempo %.0f",
				track.Features.Danceability, track.Features.Energy, track.Features.Tempo,
			)
		}
	}

	if cmd.Bool("copy") && track.ISRC != models.NA {
		if err := clipboard.WriteAll(track.ISRC); err != nil {
			return fmt.Errorf("failed to copy ISRC: %w", err)
		}
		r.writePlainln("✓ Copied %s", track.ISRC)
	}

	return nil
}

// FetchAlbum fetches full album metadata.
func (r *Runner) FetchAlbum(ctx context.Context, cmd *cli.Command) error {
	id, err := resolveID(cmd.StringArg("ref"), "album")
	if err != nil {
		return err
	}

	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	album, err := s.catalog.GetAlbum(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch album: %w", err)
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(album, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		r.writePlainHeader(fmt.Sprintf("%s - %s", album.ArtistName, album.Name))
		r.writePlainln("Released: %s", album.ReleaseDate)
		r.writePlainln("Label:    %s", album.Label)
		r.writePlainln("Tracks:   %d", album.TotalTracks)
		r.writePlainln("UPC:      %s", album.UPC)
	}

	if cmd.Bool("copy") && album.UPC != models.NA {
		if err := clipboard.WriteAll(album.UPC); err != nil {
			return fmt.Errorf("failed to copy UPC: %w", err)
		}
		r.writePlainln("✓ Copied %s", album.UPC)
	}

	return nil
}

// SearchTracks runs a raw catalog track search.
func (r *Runner) SearchTracks(ctx context.Context, cmd *cli.Command) error {
	return r.runSearch(ctx, cmd, "track")
}

// SearchAlbums runs a raw catalog album search.
func (r *Runner) SearchAlbums(ctx context.Context, cmd *cli.Command) error {
	return r.runSearch(ctx, cmd, "album")
}

func (r *Runner) runSearch(ctx context.Context, cmd *cli.Command, kind string) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query required", shared.ErrMissingArgument)
	}

	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	var candidates []models.SearchCandidate
	if kind == "album" {
		candidates, err = s.catalog.SearchAlbums(ctx, query)
	} else {
		candidates, err = s.catalog.SearchTracks(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if err := s.history.Add(query, kind); err != nil {
		r.logger.Warn("recording search history", "error", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(candidates, cmd.Bool("pretty"))
	}

	if len(candidates) == 0 {
		r.writePlainln("No results for %q", query)
		return nil
	}

	for i, c := range candidates {
		r.writePlainln("%d. %s - %s", i+1, c.ArtistName, c.Name)
		if kind == "track" {
			r.writePlainln("   %s • %s", c.AlbumName, c.ISRC)
		} else {
			r.writePlainln("   %s", c.ReleaseDate)
		}
	}

	return nil
}
