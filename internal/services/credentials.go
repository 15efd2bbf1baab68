package services

import (
	"fmt"
	"time"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/shared"
)

const (
	credentialsKey = "credentials.spotify"
	tokenKey       = "token.spotify"
)

// CredentialStore persists Spotify client credentials with an expiry
// stamp. Expired credentials are removed the next time they are read,
// together with any token minted from them.
type CredentialStore struct {
	store Store
	now   func() time.Time
}

func NewCredentialStore(store Store) *CredentialStore {
	return &CredentialStore{store: store, now: time.Now}
}

// Save validates and stores the credentials. A zero ExpiresAt means the
// credentials never expire.
func (c *CredentialStore) Save(creds models.Credentials) error {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: client id and secret are required", shared.ErrInvalidInput)
	}

	if creds.ExpiresAt != 0 && creds.ExpiresAt <= c.now().UnixMilli() {
		return fmt.Errorf("%w: expiry must be in the future", shared.ErrInvalidInput)
	}

	return c.store.SetJSON(credentialsKey, creds)
}

// Load returns the stored credentials. Credentials past their expiry are
// purged and reported as [shared.ErrCredentialsExpired].
func (c *CredentialStore) Load() (models.Credentials, error) {
	var creds models.Credentials

	found, err := c.store.GetJSON(credentialsKey, &creds)
	if err != nil {
		return models.Credentials{}, err
	}

	if !found || creds.ClientID == "" || creds.ClientSecret == "" {
		return models.Credentials{}, shared.ErrMissingCredentials
	}

	if creds.ExpiresAt != 0 && creds.ExpiresAt <= c.now().UnixMilli() {
		if err := c.Clear(); err != nil {
			return models.Credentials{}, err
		}

		return models.Credentials{}, shared.ErrCredentialsExpired
	}

	return creds, nil
}

// Clear removes the credentials and the cached token.
func (c *CredentialStore) Clear() error {
	return c.store.Remove(credentialsKey, tokenKey)
}
