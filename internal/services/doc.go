// Package services wraps the outbound HTTP surface of the application.
//
// [CredentialStore] persists Spotify client credentials in the key-value
// store and purges them once they expire. [TokenManager] exchanges those
// credentials for a bearer token and caches the result. [SpotifyService]
// and [YouTubeService] are thin raw-HTTP clients that decode provider
// responses into the types in [github.com/dren-arifi/isrcfind/internal/models].
package services
