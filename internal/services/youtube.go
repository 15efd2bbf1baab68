package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/dren-arifi/isrcfind/internal/formatter"
	"github.com/dren-arifi/isrcfind/internal/match"
	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

// YouTubeAPIURL is the base URL of the YouTube Data API v3.
const YouTubeAPIURL = "https://www.googleapis.com/youtube/v3"

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// YouTubeService fetches video metadata with an API key.
type YouTubeService struct {
	apiKey  string
	client  *http.Client
	baseURL string
	logger  *log.Logger
}

func NewYouTubeService(apiKey, baseURL string) *YouTubeService {
	if baseURL == "" {
		baseURL = YouTubeAPIURL
	}

	return &YouTubeService{
		apiKey:  apiKey,
		client:  newHTTPClient(DefaultTimeout),
		baseURL: baseURL,
		logger:  discardLogger(),
	}
}

func (s *YouTubeService) WithLogger(logger *log.Logger) *YouTubeService {
	s.logger = logger
	return s
}

// GetVideoInfo fetches the snippet and duration for a video and parses
// the description for credits.
func (s *YouTubeService) GetVideoInfo(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is empty", shared.ErrInvalidInput)
	}

	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: youtube api key is not configured", shared.ErrMissingConfig)
	}

	endpoint := fmt.Sprintf(
		"%s/videos?part=snippet,contentDetails&id=%s&key=%s",
		s.baseURL, url.QueryEscape(videoID), url.QueryEscape(s.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", shared.ErrAPIRequest, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, wrapTransportErr("video lookup", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = decodeResponse(resp, nil)
		return nil, fmt.Errorf("%w: youtube returned %d", shared.ErrProvider, resp.StatusCode)
	}

	var body videoListResponse
	if err := decodeResponse(resp, &body); err != nil {
		return nil, err
	}

	if len(body.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
	}

	item := body.Items[0]
	s.logger.Debug("fetched video", "id", item.ID, "title", item.Snippet.Title)

	return &models.VideoMetadata{
		VideoID:           item.ID,
		Title:             item.Snippet.Title,
		Description:       item.Snippet.Description,
		DurationFormatted: formatter.FormatISODuration(item.ContentDetails.Duration),
		Credits:           match.ParseDescription(item.Snippet.Description),
	}, nil
}
