package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/repositories"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

// SpotifyAPIURL is the base URL of the Spotify Web API.
const SpotifyAPIURL = "https://api.spotify.com/v1"

// DefaultSearchLimit caps how many candidates a search returns.
const DefaultSearchLimit = 5

type spotifyArtist struct {
	Name string `json:"name"`
}

type spotifyAlbumRef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ReleaseDate string          `json:"release_date"`
	ExternalIDs spotifyIDs      `json:"external_ids"`
	Images      []spotifyArt    `json:"images"`
	Artists     []spotifyArtist `json:"artists"`
}

type spotifyArt struct {
	URL string `json:"url"`
}

type spotifyIDs struct {
	ISRC string `json:"isrc"`
	UPC  string `json:"upc"`
}

type spotifyTrack struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	DurationMS  int             `json:"duration_ms"`
	Popularity  int             `json:"popularity"`
	Artists     []spotifyArtist `json:"artists"`
	Album       spotifyAlbumRef `json:"album"`
	ExternalIDs spotifyIDs      `json:"external_ids"`
}

type spotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ReleaseDate string          `json:"release_date"`
	Label       string          `json:"label"`
	TotalTracks int             `json:"total_tracks"`
	Artists     []spotifyArtist `json:"artists"`
	Images      []spotifyArt    `json:"images"`
	ExternalIDs spotifyIDs      `json:"external_ids"`
}

type spotifyFeatures struct {
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Tempo        float64 `json:"tempo"`
}

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
	Albums struct {
		Items []spotifyAlbumRef `json:"items"`
	} `json:"albums"`
}

// SpotifyService queries the Spotify Web API with a bearer token from
// its [TokenManager]. Search responses are cached verbatim when a
// [repositories.SearchCache] is attached.
type SpotifyService struct {
	tokens  *TokenManager
	cache   *repositories.SearchCache
	client  *http.Client
	baseURL string
	limit   int
	logger  *log.Logger
}

func NewSpotifyService(tokens *TokenManager, baseURL string) *SpotifyService {
	if baseURL == "" {
		baseURL = SpotifyAPIURL
	}

	return &SpotifyService{
		tokens:  tokens,
		client:  newHTTPClient(DefaultTimeout),
		baseURL: baseURL,
		limit:   DefaultSearchLimit,
		logger:  discardLogger(),
	}
}

func (s *SpotifyService) WithCache(cache *repositories.SearchCache) *SpotifyService {
	s.cache = cache
	return s
}

func (s *SpotifyService) WithLimit(limit int) *SpotifyService {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

func (s *SpotifyService) WithLogger(logger *log.Logger) *SpotifyService {
	s.logger = logger
	return s
}

// doRequest performs an authenticated GET against the API and decodes
// the body into dest. notFoundErr is returned for 404 responses.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, dest any, notFoundErr error) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", shared.ErrAPIRequest, err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return wrapTransportErr(endpoint, err)
	}

	if resp.StatusCode == http.StatusNotFound && notFoundErr != nil {
		_ = decodeResponse(resp, nil)
		return notFoundErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = decodeResponse(resp, nil)
		return fmt.Errorf("%w: spotify returned %d for %s", shared.ErrProvider, resp.StatusCode, endpoint)
	}

	return decodeResponse(resp, dest)
}

func (s *SpotifyService) search(ctx context.Context, query, kind string, dest *searchResponse) error {
	if query == "" {
		return fmt.Errorf("%w: search query is empty", shared.ErrInvalidInput)
	}

	if s.cache != nil {
		raw, hit, err := s.cache.Get(query, kind)
		if err != nil {
			return err
		}

		if hit {
			s.logger.Debug("search cache hit", "query", query, "kind", kind)
			return json.Unmarshal(raw, dest)
		}
	}

	endpoint := fmt.Sprintf(
		"/search?q=%s&type=%s&limit=%d", url.QueryEscape(query), kind, s.limit,
	)

	if err := s.doRequest(ctx, endpoint, dest, nil); err != nil {
		return err
	}

	if s.cache != nil {
		raw, err := json.Marshal(dest)
		if err == nil {
			if err := s.cache.Put(query, kind, raw); err != nil {
				s.logger.Warn("caching search response", "error", err)
			}
		}
	}

	return nil
}

func artistName(artists []spotifyArtist) string {
	if len(artists) == 0 {
		return ""
	}
	return artists[0].Name
}

func firstImage(images []spotifyArt) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func orNA(value string) string {
	if value == "" {
		return models.NA
	}
	return value
}

// SearchTracks returns up to the configured limit of track candidates
// for the query, unscored.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	var resp searchResponse
	if err := s.search(ctx, query, "track", &resp); err != nil {
		return nil, err
	}

	candidates := make([]models.SearchCandidate, 0, len(resp.Tracks.Items))
	for _, item := range resp.Tracks.Items {
		candidates = append(candidates, models.SearchCandidate{
			ID:          item.ID,
			Name:        item.Name,
			ArtistName:  artistName(item.Artists),
			AlbumName:   item.Album.Name,
			ReleaseDate: item.Album.ReleaseDate,
			ISRC:        orNA(item.ExternalIDs.ISRC),
		})
	}

	return candidates, nil
}

// SearchAlbums returns up to the configured limit of album candidates
// for the query.
func (s *SpotifyService) SearchAlbums(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	var resp searchResponse
	if err := s.search(ctx, query, "album", &resp); err != nil {
		return nil, err
	}

	candidates := make([]models.SearchCandidate, 0, len(resp.Albums.Items))
	for _, item := range resp.Albums.Items {
		candidates = append(candidates, models.SearchCandidate{
			ID:          item.ID,
			Name:        item.Name,
			ArtistName:  artistName(item.Artists),
			AlbumName:   item.Name,
			ReleaseDate: item.ReleaseDate,
			ISRC:        models.NA,
		})
	}

	return candidates, nil
}

// GetTrack fetches a track by ID. Audio features are fetched best
// effort and left nil when the features endpoint fails.
func (s *SpotifyService) GetTrack(ctx context.Context, id string) (*models.TrackDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: track id is empty", shared.ErrInvalidInput)
	}

	var track spotifyTrack
	if err := s.doRequest(ctx, "/tracks/"+id, &track, shared.ErrTrackNotFound); err != nil {
		return nil, err
	}

	detail := &models.TrackDetail{
		ID:          track.ID,
		Name:        track.Name,
		ArtistName:  artistName(track.Artists),
		AlbumName:   track.Album.Name,
		ReleaseDate: track.Album.ReleaseDate,
		DurationMS:  track.DurationMS,
		Popularity:  track.Popularity,
		ISRC:        orNA(track.ExternalIDs.ISRC),
		UPC:         orNA(track.Album.ExternalIDs.UPC),
		CoverURL:    firstImage(track.Album.Images),
	}

	var features spotifyFeatures
	if err := s.doRequest(ctx, "/audio-features/"+id, &features, nil); err != nil {
		s.logger.Debug("audio features unavailable", "track", id, "error", err)
	} else {
		detail.Features = &models.AudioFeatures{
			Danceability: features.Danceability,
			Energy:       features.Energy,
			Tempo:        features.Tempo,
		}
	}

	return detail, nil
}

// GetAlbum fetches an album by ID.
func (s *SpotifyService) GetAlbum(ctx context.Context, id string) (*models.AlbumDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: album id is empty", shared.ErrInvalidInput)
	}

	var album spotifyAlbum
	if err := s.doRequest(ctx, "/albums/"+id, &album, shared.ErrAlbumNotFound); err != nil {
		return nil, err
	}

	return &models.AlbumDetail{
		ID:          album.ID,
		Name:        album.Name,
		ArtistName:  artistName(album.Artists),
		ReleaseDate: album.ReleaseDate,
		Label:       album.Label,
		TotalTracks: album.TotalTracks,
		UPC:         orNA(album.ExternalIDs.UPC),
		CoverURL:    firstImage(album.Images),
	}, nil
}
