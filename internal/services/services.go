package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

// DefaultTimeout bounds every outbound request made by this package.
const DefaultTimeout = 15 * time.Second

// Store is the subset of the key-value repository the services need.
// Satisfied by [github.com/dren-arifi/isrcfind/internal/repositories.KVStore].
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(keys ...string) error
	GetJSON(key string, dest any) (bool, error)
	SetJSON(key string, value any) error
}

// CatalogService is the catalog lookup surface consumed by the lookup
// engine and the message bridge.
type CatalogService interface {
	SearchTracks(ctx context.Context, query string) ([]models.SearchCandidate, error)
	SearchAlbums(ctx context.Context, query string) ([]models.SearchCandidate, error)
	GetTrack(ctx context.Context, id string) (*models.TrackDetail, error)
	GetAlbum(ctx context.Context, id string) (*models.AlbumDetail, error)
}

// VideoService resolves video identifiers to their metadata.
type VideoService interface {
	GetVideoInfo(ctx context.Context, videoID string) (*models.VideoMetadata, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// wrapTransportErr classifies a failed round trip: timeouts surface as
// [shared.ErrTimeout], everything else as [shared.ErrAPIRequest].
func wrapTransportErr(op string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %s: %v", shared.ErrTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, op, err)
}

// decodeResponse reads the body and unmarshals it into dest when dest is
// non-nil. The body is always drained so the connection can be reused.
func decodeResponse(resp *http.Response, dest any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response body: %v", shared.ErrAPIRequest, err)
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: decoding response body: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

func discardLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}
