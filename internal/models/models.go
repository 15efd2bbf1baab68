// package models defines the data model for the metadata lookup service
package models

// NA is the sentinel value for identifier fields that were never found.
//
// Callers compare against it directly (fallback triggers, clipboard copy),
// so it is part of the contract, not a display convenience.
const NA = "N/A"

// Credentials holds long-lived Spotify API credentials entered by the user.
//
// ExpiresAt is a unix millisecond timestamp; a record whose ExpiresAt has
// passed is purged on read.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	ExpiresAt    int64  `json:"expires_at"`
}

// DescriptionRecord contains credit fields extracted from a YouTube video description.
//
// Credit fields are empty strings when absent; ISRC and UPC default to [NA].
type DescriptionRecord struct {
	MusicProduced string `json:"music_produced,omitempty"`
	Text          string `json:"text,omitempty"`
	Video         string `json:"video,omitempty"`
	SpecialGuest  string `json:"special_guest,omitempty"`
	ThanksTo      string `json:"thanks_to,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
	Licensing     string `json:"licensing,omitempty"`
	ISRC          string `json:"isrc"`
	UPC           string `json:"upc"`
}

// SearchCandidate is one ranked result of a catalog search.
type SearchCandidate struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ArtistName      string  `json:"artist_name"`
	AlbumName       string  `json:"album_name"`
	ReleaseDate     string  `json:"release_date,omitempty"`
	ISRC            string  `json:"isrc"`
	SimilarityScore float64 `json:"similarity_score"`
}

// AudioFeatures holds the subset of Spotify audio analysis surfaced to users.
type AudioFeatures struct {
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Tempo        float64 `json:"tempo"`
}

// TrackDetail is the full metadata record for a single catalog track.
type TrackDetail struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ArtistName  string         `json:"artist_name"`
	AlbumName   string         `json:"album_name"`
	ReleaseDate string         `json:"release_date"`
	Popularity  int            `json:"popularity"`
	DurationMS  int            `json:"duration_ms"`
	ISRC        string         `json:"isrc"`
	UPC         string         `json:"upc"`
	CoverURL    string         `json:"cover_url,omitempty"`
	Features    *AudioFeatures `json:"audio_features,omitempty"`
}

// AlbumDetail is the full metadata record for a single catalog album.
type AlbumDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ArtistName  string `json:"artist_name"`
	ReleaseDate string `json:"release_date"`
	Label       string `json:"label"`
	TotalTracks int    `json:"total_tracks"`
	UPC         string `json:"upc"`
	CoverURL    string `json:"cover_url,omitempty"`
}

// VideoMetadata is the structured result of a video-info fetch.
type VideoMetadata struct {
	VideoID           string            `json:"video_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	DurationFormatted string            `json:"duration"`
	Credits           DescriptionRecord `json:"credits"`
}

// LookupResult contains the outcome of a single video → catalog lookup.
type LookupResult struct {
	Input             string            `json:"input"`
	Video             *VideoMetadata    `json:"video,omitempty"`
	Query             string            `json:"query"`
	Candidates        []SearchCandidate `json:"candidates"`
	MaxScore          float64           `json:"max_score"`
	FallbackAvailable bool              `json:"fallback_available"`
	FallbackQuery     string            `json:"fallback_query,omitempty"`
	Err               error             `json:"-"`
}

// Matched reports whether at least one candidate was found.
func (r *LookupResult) Matched() bool {
	return len(r.Candidates) > 0
}

// Best returns the highest-scoring candidate, or nil when there are none.
// Candidates are kept sorted by descending score.
func (r *LookupResult) Best() *SearchCandidate {
	if len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}

// LookupReport aggregates per-item outcomes of a batch lookup.
type LookupReport struct {
	Results      []LookupResult `json:"results"`
	SuccessCount int            `json:"success_count"`
	FailedCount  int            `json:"failed_count"`
	TotalItems   int            `json:"total_items"`
}

// HistoryEntry records one user-initiated search for the history ring.
type HistoryEntry struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	Kind      string `json:"kind"` // track, album, video
	Timestamp int64  `json:"timestamp"`
}

// Stats summarizes fetched track metadata across a session or the whole store.
type Stats struct {
	TotalTracks     int            `json:"total_tracks"`
	UniqueArtists   int            `json:"unique_artists"`
	Decades         map[string]int `json:"decades"`
	AverageDuration int            `json:"average_duration"` // seconds
}
