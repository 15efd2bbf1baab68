// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/dren-arifi/isrcfind/internal/models"
)

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	return string(data), err
}

func unmarshalJSON(raw string, dest any) error {
	return json.Unmarshal([]byte(raw), dest)
}

// MemStore is an in-memory key-value store satisfying [services.Store].
type MemStore struct {
	Values map[string]string
	Err    error
}

func NewMemStore() *MemStore {
	return &MemStore{Values: map[string]string{}}
}

func (m *MemStore) Get(key string) (string, bool, error) {
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.Values[key]
	return v, ok, nil
}

func (m *MemStore) Set(key, value string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Values[key] = value
	return nil
}

func (m *MemStore) Remove(keys ...string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, k := range keys {
		delete(m.Values, k)
	}
	return nil
}

func (m *MemStore) GetJSON(key string, dest any) (bool, error) {
	raw, ok, err := m.Get(key)
	if err != nil || !ok {
		return false, err
	}
	return true, unmarshalJSON(raw, dest)
}

func (m *MemStore) SetJSON(key string, value any) error {
	raw, err := marshalJSON(value)
	if err != nil {
		return err
	}
	return m.Set(key, raw)
}

// MockCatalogService is a test double for [services.CatalogService].
// Each field, when set, overrides the zero-value response.
type MockCatalogService struct {
	TrackResults []models.SearchCandidate
	AlbumResults []models.SearchCandidate
	Track        *models.TrackDetail
	Album        *models.AlbumDetail
	SearchErr    error
	GetErr       error
	SearchCalls  []string
}

func (m *MockCatalogService) SearchTracks(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return append([]models.SearchCandidate(nil), m.TrackResults...), nil
}

func (m *MockCatalogService) SearchAlbums(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return append([]models.SearchCandidate(nil), m.AlbumResults...), nil
}

func (m *MockCatalogService) GetTrack(ctx context.Context, id string) (*models.TrackDetail, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Track, nil
}

func (m *MockCatalogService) GetAlbum(ctx context.Context, id string) (*models.AlbumDetail, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Album, nil
}

// MockVideoService is a test double for [services.VideoService].
type MockVideoService struct {
	Videos map[string]*models.VideoMetadata
	Err    error
	Calls  []string
}

func (m *MockVideoService) GetVideoInfo(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	m.Calls = append(m.Calls, videoID)
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Videos[videoID]; ok {
		return v, nil
	}
	return nil, errors.New("video not found: " + videoID)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
