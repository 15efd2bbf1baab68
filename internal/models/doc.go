// Package models defines domain entities for the isrcfind metadata lookup service.
//
// All types are value objects exchanged between the catalog/video services, the
// lookup engine, and the presentation layers:
//   - [Credentials] : long-lived Spotify API credentials with expiry
//   - [DescriptionRecord] : structured credits parsed from a video description
//   - [SearchCandidate] : one scored catalog search result
//   - [TrackDetail] / [AlbumDetail] : full metadata records with ISRC/UPC
//   - [VideoMetadata] : fetched video info with parsed credits
//   - [LookupResult] / [LookupReport] : per-item and batch lookup outcomes
//
// Nothing here owns mutable shared state; the only persistent, serialized record
// is the cached bearer token, which is exclusively owned by services.TokenManager.
package models
