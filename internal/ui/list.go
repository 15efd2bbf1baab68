package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/dren-arifi/isrcfind/internal/models"
)

var (
	_ list.Item = resultItem{}
	_ list.Item = candidateItem{}
)

// resultItem wraps [models.LookupResult] to implement [list.Item].
type resultItem struct {
	result models.LookupResult
}

func (i resultItem) FilterValue() string { return i.result.Input }

func (i resultItem) Title() string {
	if i.result.Video != nil {
		return i.result.Video.Title
	}
	return i.result.Input
}

func (i resultItem) Description() string {
	if i.result.Err != nil {
		return fmt.Sprintf("failed: %v", i.result.Err)
	}
	if best := i.result.Best(); best != nil {
		return fmt.Sprintf("%s - %s • %.2f", best.ArtistName, best.Name, best.SimilarityScore)
	}
	if i.result.FallbackAvailable {
		return "no match • fallback available"
	}
	return "no match"
}

// candidateItem wraps [models.SearchCandidate] to implement [list.Item].
type candidateItem struct {
	candidate models.SearchCandidate
}

func (i candidateItem) FilterValue() string { return i.candidate.Name }
func (i candidateItem) Title() string {
	return fmt.Sprintf("%s - %s", i.candidate.ArtistName, i.candidate.Name)
}
func (i candidateItem) Description() string {
	desc := fmt.Sprintf("%.2f • %s", i.candidate.SimilarityScore, i.candidate.ISRC)
	if i.candidate.AlbumName != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.candidate.AlbumName)
	}
	return desc
}
