package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/services"
	"github.com/dren-arifi/isrcfind/internal/shared"
	"github.com/dren-arifi/isrcfind/internal/tasks"
)

// Bridge action names, part of the wire contract with the extension popup.
const (
	ActionTestCredentials = "TEST_CREDENTIALS"
	ActionGetTrackData    = "GET_TRACK_DATA"
	ActionGetAlbumData    = "GET_ALBUM_DATA"
	ActionSearchTracks    = "SEARCH_TRACKS"
	ActionSearchAlbums    = "SEARCH_ALBUMS"
	ActionVideoSimilar    = "GET_YOUTUBE_SIMILAR"
	ActionVideoData       = "GET_YOUTUBE_VIDEO_DATA"
)

// BridgeMessage is the request envelope. Action selects the operation;
// the remaining fields are read per action.
type BridgeMessage struct {
	Action       string `json:"action"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	Link         string `json:"link,omitempty"`
	Query        string `json:"query,omitempty"`
	Video        string `json:"video,omitempty"`
}

// BridgeResponse is the response envelope. Success is always present;
// Data carries the action result and Error the failure message.
type BridgeResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BridgeHandler serves the extension message contract on a single
// endpoint plus a health probe.
type BridgeHandler struct {
	creds   *services.CredentialStore
	tokens  *services.TokenManager
	catalog services.CatalogService
	engine  *tasks.LookupEngine
	logger  *log.Logger
}

func NewBridgeHandler(
	creds *services.CredentialStore,
	tokens *services.TokenManager,
	catalog services.CatalogService,
	engine *tasks.LookupEngine,
	logger *log.Logger,
) *BridgeHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BridgeHandler{
		creds:   creds,
		tokens:  tokens,
		catalog: catalog,
		engine:  engine,
		logger:  logger,
	}
}

// Routes implements [Handler].
func (h *BridgeHandler) Routes() []string {
	return []string{"/api/message", "/api/health"}
}

func (h *BridgeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/health" {
		h.writeJSON(w, http.StatusOK, BridgeResponse{Success: true, Data: "ok"})
		return
	}

	if r.Method != http.MethodPost {
		h.writeJSON(w, http.StatusMethodNotAllowed, BridgeResponse{
			Success: false, Error: "POST required",
		})
		return
	}

	var msg BridgeMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.writeJSON(w, http.StatusBadRequest, BridgeResponse{
			Success: false, Error: "invalid JSON body",
		})
		return
	}

	data, err := h.dispatch(r, msg)
	if err != nil {
		h.logger.Warn("bridge action failed", "action", msg.Action, "error", err)
		h.writeJSON(w, http.StatusOK, BridgeResponse{Success: false, Error: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, BridgeResponse{Success: true, Data: data})
}

func (h *BridgeHandler) dispatch(r *http.Request, msg BridgeMessage) (any, error) {
	ctx := r.Context()

	switch msg.Action {
	case ActionTestCredentials:
		err := h.creds.Save(models.Credentials{
			ClientID:     msg.ClientID,
			ClientSecret: msg.ClientSecret,
			ExpiresAt:    msg.ExpiresAt,
		})
		if err != nil {
			return nil, err
		}
		if err := h.tokens.Invalidate(); err != nil {
			return nil, err
		}
		if _, err := h.tokens.Token(ctx); err != nil {
			return nil, err
		}
		return "credentials verified", nil

	case ActionGetTrackData:
		id, err := services.ParseSpotifyID(msg.Link, "track")
		if err != nil {
			return nil, err
		}
		return h.catalog.GetTrack(ctx, id)

	case ActionGetAlbumData:
		id, err := services.ParseSpotifyID(msg.Link, "album")
		if err != nil {
			return nil, err
		}
		return h.catalog.GetAlbum(ctx, id)

	case ActionSearchTracks:
		return h.catalog.SearchTracks(ctx, msg.Query)

	case ActionSearchAlbums:
		return h.catalog.SearchAlbums(ctx, msg.Query)

	case ActionVideoSimilar:
		return h.engine.LookupVideo(ctx, nil, msg.Video)

	case ActionVideoData:
		return h.engine.VideoInfo(ctx, msg.Video)

	default:
		return nil, fmt.Errorf("%w: unknown action %q", shared.ErrInvalidInput, msg.Action)
	}
}

func (h *BridgeHandler) writeJSON(w http.ResponseWriter, status int, resp BridgeResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("writing response", "error", err)
	}
}
