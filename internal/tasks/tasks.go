package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/dren-arifi/isrcfind/internal/match"
	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/repositories"
	"github.com/dren-arifi/isrcfind/internal/services"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

// LookupEngine resolves videos to catalog candidates.
//
// A lookup fetches the video metadata, searches the catalog with the
// cleaned title, and scores every candidate against that title. When the
// best score stays below the threshold and the description is non-empty,
// the result carries a fallback query built from the description that
// callers can run with [LookupEngine.RunFallback].
type LookupEngine struct {
	catalog   services.CatalogService
	videos    services.VideoService
	history   *repositories.HistoryRepository
	limiter   *rate.Limiter
	threshold float64
	logger    *log.Logger
}

// NewLookupEngine creates a LookupEngine with the provided services.
func NewLookupEngine(catalog services.CatalogService, videos services.VideoService) *LookupEngine {
	return &LookupEngine{
		catalog:   catalog,
		videos:    videos,
		threshold: match.FallbackThreshold,
		logger:    shared.NewLogger(nil),
	}
}

// WithHistory records every search query in the history ring.
func (e *LookupEngine) WithHistory(history *repositories.HistoryRepository) *LookupEngine {
	e.history = history
	return e
}

// WithRateLimit throttles batch lookups to n requests per second.
func (e *LookupEngine) WithRateLimit(n float64) *LookupEngine {
	if n > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(n), 1)
	}
	return e
}

func (e *LookupEngine) WithThreshold(threshold float64) *LookupEngine {
	if threshold > 0 {
		e.threshold = threshold
	}
	return e
}

func (e *LookupEngine) WithLogger(logger *log.Logger) *LookupEngine {
	e.logger = logger
	return e
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LookupEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *LookupEngine) recordHistory(query, kind string) {
	if e.history == nil {
		return
	}
	if err := e.history.Add(query, kind); err != nil {
		e.logger.Warn("recording search history", "error", err)
	}
}

// scoreCandidates attaches a similarity score against reference to every
// candidate and sorts them by descending score. Returns the best score.
func scoreCandidates(reference string, candidates []models.SearchCandidate) float64 {
	maxScore := 0.0
	for i := range candidates {
		label := strings.TrimSpace(candidates[i].ArtistName + " " + candidates[i].Name)
		score := match.Similarity(reference, label)
		candidates[i].SimilarityScore = score
		if score > maxScore {
			maxScore = score
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SimilarityScore > candidates[j].SimilarityScore
	})

	return maxScore
}

// searchAndScore runs a catalog search for query and ranks the results
// against reference.
func (e *LookupEngine) searchAndScore(ctx context.Context, query, reference string) ([]models.SearchCandidate, float64, error) {
	candidates, err := e.catalog.SearchTracks(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	maxScore := scoreCandidates(reference, candidates)
	return candidates, maxScore, nil
}

// LookupVideo resolves a single video reference (link or bare ID) to
// ranked catalog candidates.
func (e *LookupEngine) LookupVideo(ctx context.Context, progress chan<- ProgressUpdate, input string) (*models.LookupResult, error) {
	return e.lookupVideo(ctx, progress, input, 1, 1)
}

func (e *LookupEngine) lookupVideo(ctx context.Context, progress chan<- ProgressUpdate, input string, step, total int) (*models.LookupResult, error) {
	if e.videos == nil || e.catalog == nil {
		return nil, fmt.Errorf("%w: lookup services not initialized", shared.ErrMissingConfig)
	}

	result := &models.LookupResult{Input: input}

	videoID, err := services.ExtractVideoID(input)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchVideoUpdate(step, total, videoID))

	video, err := e.videos.GetVideoInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	result.Video = video

	query := match.CleanTitle(video.Title)
	if query == "" {
		return nil, fmt.Errorf("%w: video has no usable title", shared.ErrInvalidInput)
	}
	result.Query = query

	e.sendProgress(progress, searchUpdate(step, total, query))
	e.recordHistory(query, "video")

	candidates, maxScore, err := e.searchAndScore(ctx, query, query)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, scoreUpdate(step, total, len(candidates)))

	result.Candidates = candidates
	result.MaxScore = maxScore

	if maxScore < e.threshold && strings.TrimSpace(video.Description) != "" {
		result.FallbackAvailable = true
		result.FallbackQuery = match.FallbackQuery(video.Description)
	}

	e.sendProgress(progress, presentUpdate(step, total, result))
	return result, nil
}

// VideoInfo resolves a video reference (link or bare ID) to its
// metadata without searching the catalog.
func (e *LookupEngine) VideoInfo(ctx context.Context, input string) (*models.VideoMetadata, error) {
	videoID, err := services.ExtractVideoID(input)
	if err != nil {
		return nil, err
	}
	return e.videos.GetVideoInfo(ctx, videoID)
}

// LookupTitle ranks catalog candidates for a free-text title without a
// video fetch.
func (e *LookupEngine) LookupTitle(ctx context.Context, title string) (*models.LookupResult, error) {
	query := match.CleanTitle(title)
	if query == "" {
		return nil, fmt.Errorf("%w: empty title", shared.ErrInvalidInput)
	}

	e.recordHistory(query, "track")

	candidates, maxScore, err := e.searchAndScore(ctx, query, query)
	if err != nil {
		return nil, err
	}

	return &models.LookupResult{
		Input:      title,
		Query:      query,
		Candidates: candidates,
		MaxScore:   maxScore,
	}, nil
}

// RunFallback reruns the search with the result's fallback query,
// ranking the new candidates against the original cleaned title. The
// returned result replaces the original only when the caller accepts it.
func (e *LookupEngine) RunFallback(ctx context.Context, progress chan<- ProgressUpdate, result *models.LookupResult) (*models.LookupResult, error) {
	if result == nil || !result.FallbackAvailable || result.FallbackQuery == "" {
		return nil, fmt.Errorf("%w: no fallback query available", shared.ErrInvalidInput)
	}

	e.sendProgress(progress, fallbackUpdate(1, 1, result.FallbackQuery))
	e.recordHistory(result.FallbackQuery, "video")

	candidates, maxScore, err := e.searchAndScore(ctx, result.FallbackQuery, result.Query)
	if err != nil {
		return nil, err
	}

	fallback := &models.LookupResult{
		Input:      result.Input,
		Video:      result.Video,
		Query:      result.FallbackQuery,
		Candidates: candidates,
		MaxScore:   maxScore,
	}

	e.sendProgress(progress, presentUpdate(1, 1, fallback))
	return fallback, nil
}

// LookupBatch processes inputs sequentially, continuing past per-item
// failures. Failed items appear in the report with their error set.
func (e *LookupEngine) LookupBatch(ctx context.Context, progress chan<- ProgressUpdate, inputs []string) (*models.LookupReport, error) {
	report := &models.LookupReport{TotalItems: len(inputs)}

	for i, input := range inputs {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return report, err
			}
		}

		result, err := e.lookupVideo(ctx, progress, input, i+1, len(inputs))
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}

			e.logger.Warn("lookup failed", "input", input, "error", err)
			e.sendProgress(progress, failedUpdate(i+1, len(inputs), input, err))

			report.Results = append(report.Results, models.LookupResult{Input: input, Err: err})
			report.FailedCount++
			continue
		}

		report.Results = append(report.Results, *result)
		report.SuccessCount++
	}

	return report, nil
}
