package tasks

import (
	"fmt"

	"github.com/dren-arifi/isrcfind/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Idle Phase = iota
	FetchVideo
	Search
	Score
	Present
	Fallback
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FetchVideo:
		return "fetch_video"
	case Search:
		return "search"
	case Score:
		return "score"
	case Present:
		return "present"
	case Fallback:
		return "fallback"
	default:
		return ""
	}
}

func fetchVideoUpdate(step, total int, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching video info (%s)...", step, total, videoID),
	}
}

func searchUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Search,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching catalog: %s", step, total, query),
	}
}

func scoreUpdate(step, total, candidates int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Score,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Scoring %d candidates...", step, total, candidates),
	}
}

func presentUpdate(step, total int, result *models.LookupResult) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] No match found", step, total)
	if best := result.Best(); best != nil {
		msg = fmt.Sprintf(
			"[%d/%d] ✓ %s - %s (%.2f)", step, total, best.ArtistName, best.Name, best.SimilarityScore,
		)
	}
	return ProgressUpdate{
		Phase:   Present,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    result,
	}
}

func fallbackUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Fallback,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Low scores, retrying with description: %s", step, total, query),
	}
}

func failedUpdate(step, total int, input string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Present,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, input, err),
	}
}
