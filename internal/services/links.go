package services

import (
	"fmt"
	"strings"

	"github.com/dren-arifi/isrcfind/internal/shared"
)

// trimAfterAny cuts s at the first occurrence of any of the runes in cutset.
func trimAfterAny(s, cutset string) string {
	if idx := strings.IndexAny(s, cutset); idx >= 0 {
		return s[:idx]
	}
	return s
}

// ParseSpotifyID extracts the resource ID from an open.spotify.com link.
// kind is the path segment to match, "track" or "album".
func ParseSpotifyID(link, kind string) (string, error) {
	marker := "spotify.com/" + kind + "/"

	idx := strings.Index(link, marker)
	if idx < 0 {
		return "", fmt.Errorf("%w: not a spotify %s link: %q", shared.ErrInvalidInput, kind, link)
	}

	id := trimAfterAny(link[idx+len(marker):], "?&/")
	if id == "" {
		return "", fmt.Errorf("%w: spotify link has no %s id: %q", shared.ErrInvalidInput, kind, link)
	}

	return id, nil
}

// ParseYouTubeID extracts the video ID from a youtube.com watch link or
// a youtu.be short link.
func ParseYouTubeID(link string) (string, error) {
	if idx := strings.Index(link, "watch?v="); idx >= 0 {
		id := trimAfterAny(link[idx+len("watch?v="):], "?&/")
		if id != "" {
			return id, nil
		}
	}

	if idx := strings.Index(link, "youtu.be/"); idx >= 0 {
		id := trimAfterAny(link[idx+len("youtu.be/"):], "?&/")
		if id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: not a youtube link: %q", shared.ErrInvalidInput, link)
}

// ExtractVideoID accepts either a YouTube link or a bare video ID.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty video reference", shared.ErrInvalidInput)
	}

	if id, err := ParseYouTubeID(input); err == nil {
		return id, nil
	}

	if strings.ContainsAny(input, " /?&=.") {
		return "", fmt.Errorf("%w: not a video id or link: %q", shared.ErrInvalidInput, input)
	}

	return input, nil
}
